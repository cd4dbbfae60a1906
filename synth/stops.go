package synth

import (
	"strings"

	"go.uber.org/zap"
)

// Stop is a canonicalized stop record. The ID is the flat identifier used in
// all output tables; AliasGroup joins stops that share one physical location
// under several codes (-1 when the stop has no alias set).
type Stop struct {
	ID          string
	Name        string
	Description string
	Lat         float64
	Lon         float64
	Mode        Mode
	AliasGroup  int
}

// StopRegistry canonicalizes stop and station records from both source modes
// into one insertion-ordered table. Ids are stable across runs given
// identical input; ingestion is single-pass and records are immutable once
// registered. The registry doubles as the coordinate lookup consumed by the
// schedule estimator, so it must be fully populated before trips are
// synthesized.
type StopRegistry struct {
	logger      *zap.Logger
	stops       []Stop
	index       map[string]int
	aliasGroups [][]string
	unmatched   []string
}

// NewStopRegistry creates an empty registry.
func NewStopRegistry(logger *zap.Logger) *StopRegistry {
	return &StopRegistry{
		logger: logger,
		index:  make(map[string]int),
	}
}

// Register canonicalizes one stop record and returns its flat id. A record
// whose id was already registered for the same mode is not re-registered;
// the first-seen record wins and its id is returned.
func (r *StopRegistry) Register(raw RawStop) (string, error) {
	id := strings.TrimSpace(raw.ID)
	if id == "" {
		return "", newDefect(DefectMissingStopIdentity, "stop record has no id", raw.Name)
	}
	r.add(Stop{
		ID:          id,
		Name:        raw.Name,
		Description: raw.Description,
		Lat:         raw.Lat,
		Lon:         raw.Lon,
		Mode:        raw.Mode,
		AliasGroup:  -1,
	})
	return id, nil
}

// RegisterAliasSet materializes a rail station known under several codes:
// one stop record per code, all sharing the same coordinate pair, joined by
// an alias group. The group table is the single owner of the "these ids are
// one place" fact; coordinates are never duplicated into mutable per-alias
// state elsewhere.
func (r *StopRegistry) RegisterAliasSet(canonicalName string, codes []string, lat, lon float64) []string {
	group := len(r.aliasGroups)
	ids := make([]string, 0, len(codes))
	for _, code := range codes {
		code = strings.TrimSpace(code)
		if code == "" {
			continue
		}
		r.add(Stop{
			ID:         code,
			Name:       canonicalName,
			Lat:        lat,
			Lon:        lon,
			Mode:       ModeRail,
			AliasGroup: group,
		})
		ids = append(ids, code)
	}
	r.aliasGroups = append(r.aliasGroups, ids)
	return ids
}

// RegisterStations ingests rail station locations, resolving each station's
// alias codes through the name-keyed code mapping. Stations whose normalized
// name has no mapping entry are retained as standalone stops and reported as
// unmatched; they degrade interchange modelling but never corrupt the feed.
func (r *StopRegistry) RegisterStations(stations []RawStation, codesByName map[string][]string) {
	for _, st := range stations {
		norm := NormalizeStationName(st.Name)
		if norm == "" {
			continue
		}
		if codes := codesByName[norm]; len(codes) > 0 {
			r.RegisterAliasSet(st.Name, codes, st.Lat, st.Lon)
			continue
		}
		id := strings.ReplaceAll(norm, " ", "_")
		r.add(Stop{
			ID:         id,
			Name:       st.Name,
			Lat:        st.Lat,
			Lon:        st.Lon,
			Mode:       ModeRail,
			AliasGroup: -1,
		})
		r.unmatched = append(r.unmatched, st.Name)
		r.logger.Warn("station has no code mapping, retained standalone",
			zap.String("station", st.Name),
			zap.String("stop_id", id),
		)
	}
}

func (r *StopRegistry) add(s Stop) {
	key := s.Mode.scoped(s.ID)
	if _, ok := r.index[key]; ok {
		return
	}
	r.index[key] = len(r.stops)
	r.stops = append(r.stops, s)
}

// Lookup returns the stop registered under the given mode and flat id.
func (r *StopRegistry) Lookup(mode Mode, id string) (Stop, bool) {
	i, ok := r.index[mode.scoped(id)]
	if !ok {
		return Stop{}, false
	}
	return r.stops[i], true
}

// Coordinates returns the coordinate pair for a stop. It satisfies the
// CoordinateSource interface consumed by the schedule estimator.
func (r *StopRegistry) Coordinates(mode Mode, id string) (lat, lon float64, ok bool) {
	s, ok := r.Lookup(mode, id)
	if !ok {
		return 0, 0, false
	}
	return s.Lat, s.Lon, true
}

// Stops returns all registered stops in insertion order.
func (r *StopRegistry) Stops() []Stop {
	return r.stops
}

// Unmatched returns the display names of stations retained standalone
// because their normalized name had no alias-code mapping.
func (r *StopRegistry) Unmatched() []string {
	return r.unmatched
}

// AliasGroups returns the alias join table: group index to member stop ids.
func (r *StopRegistry) AliasGroups() [][]string {
	return r.aliasGroups
}

// stationSuffixes are the facility-type qualifiers stripped during name
// normalization.
var stationSuffixes = []string{" MRT STATION", " LRT STATION", " STATION"}

// NormalizeStationName canonicalizes a station display name for alias
// matching: uppercase, facility-type suffix stripped, whitespace collapsed.
func NormalizeStationName(name string) string {
	s := strings.ToUpper(strings.TrimSpace(name))
	for _, suffix := range stationSuffixes {
		if strings.HasSuffix(s, suffix) {
			s = strings.TrimSuffix(s, suffix)
			break
		}
	}
	return strings.Join(strings.Fields(s), " ")
}
