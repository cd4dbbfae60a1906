package synth

import (
	"strings"

	"go.uber.org/zap"
)

// CanonicalRoute is the single record surviving deduplication of a set of
// directional raw route records sharing one identity key. Attributes come
// from the first-seen record; each observed raw direction keeps its own
// ordered stop sequence.
type CanonicalRoute struct {
	ID        string
	Mode      Mode
	ShortName string
	LongName  string
	Color     string

	sequences map[int][]string
	rawDirs   []int
}

// RawDirections returns the raw direction values observed for this route,
// in observation order.
func (cr *CanonicalRoute) RawDirections() []int {
	out := make([]int, len(cr.rawDirs))
	copy(out, cr.rawDirs)
	return out
}

// Sequence returns the ordered stop ids observed for a raw direction.
func (cr *CanonicalRoute) Sequence(rawDir int) []string {
	return cr.sequences[rawDir]
}

// RouteRegistry canonicalizes route records, collapsing the one-record-per-
// direction duplication of the source systems into one logical route plus a
// per-direction stop sequence. Deduplication is keyed on the identity key
// namespaced by mode; the tie-break is first-seen wins, so the mapping from
// identity key to canonical attributes is stable for downstream consumers.
type RouteRegistry struct {
	logger *zap.Logger
	routes []*CanonicalRoute
	index  map[string]int
}

// NewRouteRegistry creates an empty registry.
func NewRouteRegistry(logger *zap.Logger) *RouteRegistry {
	return &RouteRegistry{
		logger: logger,
		index:  make(map[string]int),
	}
}

// Ingest canonicalizes one directional raw route record and returns the
// canonical route id. A record missing its identity key is rejected with a
// structured error rather than dropped: an undetected drop would leave trip
// generation silently out of sync with the source.
func (r *RouteRegistry) Ingest(raw RawRoute) (string, error) {
	key := strings.TrimSpace(raw.IdentityKey)
	if key == "" {
		return "", defectf(DefectMissingRouteIdentity, nil,
			"%s route record (direction %d) has no identity key", raw.Mode, raw.Direction)
	}

	scoped := raw.Mode.scoped(key)
	i, ok := r.index[scoped]
	if !ok {
		i = len(r.routes)
		r.index[scoped] = i
		r.routes = append(r.routes, &CanonicalRoute{
			ID:        key,
			Mode:      raw.Mode,
			ShortName: raw.ShortName,
			LongName:  raw.LongName,
			Color:     raw.Color,
			sequences: make(map[int][]string),
		})
	}

	route := r.routes[i]
	if _, seen := route.sequences[raw.Direction]; seen {
		// Same key and direction twice: first-seen wins, matching the
		// attribute tie-break.
		r.logger.Debug("duplicate directional route record ignored",
			zap.String("route_id", key),
			zap.Int("direction", raw.Direction),
		)
		return key, nil
	}
	route.sequences[raw.Direction] = raw.StopIDs
	route.rawDirs = append(route.rawDirs, raw.Direction)
	return key, nil
}

// Routes returns all canonical routes in first-seen order.
func (r *RouteRegistry) Routes() []*CanonicalRoute {
	return r.routes
}
