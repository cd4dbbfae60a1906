package synth

import (
	"fmt"
	"sort"

	"go.uber.org/zap"

	"github.com/ph-dataviz/gtfs-sg/gtfs"
)

// ServiceWindow is the validity window of the single default calendar.
type ServiceWindow struct {
	Start gtfs.Date
	End   gtfs.Date
}

// FeedMeta carries the feed_info.txt publisher fields. An empty Version is
// derived from the service window, keeping repeated runs on identical input
// byte-identical.
type FeedMeta struct {
	PublisherName string
	PublisherURL  string
	Language      string
	ContactEmail  string
	ContactURL    string
	Version       string
}

// FeedAssembler merges the synthesized entities of both modes into the final
// cross-referencing table set, enforcing the referential and shape
// invariants before any output is considered valid. It performs no I/O.
type FeedAssembler struct {
	logger    *zap.Logger
	agency    gtfs.Agency
	window    ServiceWindow
	meta      FeedMeta
	serviceID string
}

// NewFeedAssembler creates an assembler emitting the given agency, calendar
// window, and feed metadata.
func NewFeedAssembler(logger *zap.Logger, agency gtfs.Agency, window ServiceWindow, meta FeedMeta, serviceID string) *FeedAssembler {
	return &FeedAssembler{
		logger:    logger,
		agency:    agency,
		window:    window,
		meta:      meta,
		serviceID: serviceID,
	}
}

// Assemble builds the feed. Every invariant violation fails with a distinct
// defect category carrying the offending ids; on error no feed is returned.
func (a *FeedAssembler) Assemble(stops []Stop, routes []*CanonicalRoute, trips []Trip, stopTimes []gtfs.StopTime) (*gtfs.Feed, error) {
	if err := a.checkStopIDs(stops); err != nil {
		return nil, err
	}
	if err := a.checkRouteIDs(routes); err != nil {
		return nil, err
	}
	if err := a.checkTripReferences(routes, trips); err != nil {
		return nil, err
	}
	if err := a.checkStopTimeReferences(stops, stopTimes); err != nil {
		return nil, err
	}
	if err := a.checkTripSchedules(trips, stopTimes); err != nil {
		return nil, err
	}

	feed := &gtfs.Feed{
		Agencies:  []gtfs.Agency{a.agency},
		Stops:     a.buildStops(stops),
		Routes:    a.buildRoutes(routes),
		Trips:     a.buildTrips(trips),
		StopTimes: a.buildStopTimes(stopTimes),
		Calendar:  a.buildCalendar(),
		FeedInfo:  a.buildFeedInfo(),
	}

	a.logger.Info("feed assembled",
		zap.Int("stops", len(feed.Stops)),
		zap.Int("routes", len(feed.Routes)),
		zap.Int("trips", len(feed.Trips)),
		zap.Int("stop_times", len(feed.StopTimes)),
	)
	return feed, nil
}

// checkStopIDs rejects one flat id claimed by stops of two different modes.
// Same-mode duplicates cannot occur: the registry keys stops by their
// namespaced id.
func (a *FeedAssembler) checkStopIDs(stops []Stop) error {
	modeByID := make(map[string]Mode, len(stops))
	var collisions []string
	for _, s := range stops {
		prev, seen := modeByID[s.ID]
		if seen && prev != s.Mode {
			collisions = append(collisions, s.ID)
			continue
		}
		modeByID[s.ID] = s.Mode
	}
	if len(collisions) > 0 {
		return defectf(DefectCrossModeIDCollision, collisions,
			"%d stop ids claimed by both modes", len(collisions))
	}
	return nil
}

func (a *FeedAssembler) checkRouteIDs(routes []*CanonicalRoute) error {
	modeByID := make(map[string]Mode, len(routes))
	var crossMode, duplicates []string
	for _, r := range routes {
		prev, seen := modeByID[r.ID]
		switch {
		case seen && prev != r.Mode:
			crossMode = append(crossMode, r.ID)
		case seen:
			duplicates = append(duplicates, r.ID)
		default:
			modeByID[r.ID] = r.Mode
		}
	}
	if len(crossMode) > 0 {
		return defectf(DefectCrossModeIDCollision, crossMode,
			"%d route ids claimed by both modes", len(crossMode))
	}
	if len(duplicates) > 0 {
		return defectf(DefectDuplicateRouteID, duplicates,
			"%d route ids survived deduplication more than once", len(duplicates))
	}
	return nil
}

func (a *FeedAssembler) checkTripReferences(routes []*CanonicalRoute, trips []Trip) error {
	known := make(map[string]struct{}, len(routes))
	for _, r := range routes {
		known[r.ID] = struct{}{}
	}
	var dangling []string
	for _, t := range trips {
		if _, ok := known[t.RouteID]; !ok {
			dangling = append(dangling, t.ID)
		}
	}
	if len(dangling) > 0 {
		return defectf(DefectDanglingRouteReference, dangling,
			"%d trips reference unknown routes", len(dangling))
	}
	return nil
}

func (a *FeedAssembler) checkStopTimeReferences(stops []Stop, stopTimes []gtfs.StopTime) error {
	known := make(map[string]struct{}, len(stops))
	for _, s := range stops {
		known[s.ID] = struct{}{}
	}
	seen := make(map[string]struct{})
	var dangling []string
	for _, st := range stopTimes {
		if _, ok := known[st.StopID]; ok {
			continue
		}
		if _, dup := seen[st.StopID]; dup {
			continue
		}
		seen[st.StopID] = struct{}{}
		dangling = append(dangling, st.StopID)
	}
	if len(dangling) > 0 {
		sort.Strings(dangling)
		return defectf(DefectDanglingStopReference, dangling,
			"%d stop ids referenced by stop times are not in the stops table", len(dangling))
	}
	return nil
}

// checkTripSchedules requires every trip to carry at least one stop time and
// a sequence contiguous from index zero.
func (a *FeedAssembler) checkTripSchedules(trips []Trip, stopTimes []gtfs.StopTime) error {
	sequences := make(map[string][]int)
	for _, st := range stopTimes {
		sequences[st.TripID] = append(sequences[st.TripID], st.Sequence)
	}

	var incomplete []string
	for _, t := range trips {
		seq, ok := sequences[t.ID]
		if !ok || len(seq) == 0 {
			incomplete = append(incomplete, t.ID)
			continue
		}
		sort.Ints(seq)
		for i, v := range seq {
			if v != i {
				incomplete = append(incomplete, t.ID)
				break
			}
		}
	}
	if len(incomplete) > 0 {
		return defectf(DefectIncompleteTripSchedule, incomplete,
			"%d trips have missing or non-contiguous stop times", len(incomplete))
	}
	return nil
}

func (a *FeedAssembler) buildStops(stops []Stop) []gtfs.Stop {
	out := make([]gtfs.Stop, 0, len(stops))
	for _, s := range stops {
		out = append(out, gtfs.Stop{
			ID:          s.ID,
			Code:        s.ID,
			Name:        s.Name,
			Description: s.Description,
			Lat:         s.Lat,
			Lon:         s.Lon,
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (a *FeedAssembler) buildRoutes(routes []*CanonicalRoute) []gtfs.Route {
	out := make([]gtfs.Route, 0, len(routes))
	for _, r := range routes {
		out = append(out, gtfs.Route{
			ID:        r.ID,
			AgencyID:  a.agency.ID,
			ShortName: r.ShortName,
			LongName:  r.LongName,
			Type:      r.Mode.RouteType(),
			Color:     r.Color,
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (a *FeedAssembler) buildTrips(trips []Trip) []gtfs.Trip {
	out := make([]gtfs.Trip, 0, len(trips))
	for _, t := range trips {
		out = append(out, gtfs.Trip{
			RouteID:     t.RouteID,
			ServiceID:   t.ServiceID,
			ID:          t.ID,
			Headsign:    t.Headsign,
			DirectionID: t.DirectionID,
		})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].RouteID != out[j].RouteID {
			return out[i].RouteID < out[j].RouteID
		}
		return out[i].DirectionID < out[j].DirectionID
	})
	return out
}

func (a *FeedAssembler) buildStopTimes(stopTimes []gtfs.StopTime) []gtfs.StopTime {
	out := make([]gtfs.StopTime, len(stopTimes))
	copy(out, stopTimes)
	sort.Slice(out, func(i, j int) bool {
		if out[i].TripID != out[j].TripID {
			return out[i].TripID < out[j].TripID
		}
		return out[i].Sequence < out[j].Sequence
	})
	return out
}

func (a *FeedAssembler) buildCalendar() []gtfs.Calendar {
	return []gtfs.Calendar{{
		ServiceID: a.serviceID,
		Monday:    1,
		Tuesday:   1,
		Wednesday: 1,
		Thursday:  1,
		Friday:    1,
		Saturday:  1,
		Sunday:    1,
		StartDate: a.window.Start,
		EndDate:   a.window.End,
	}}
}

func (a *FeedAssembler) buildFeedInfo() []gtfs.FeedInfo {
	version := a.meta.Version
	if version == "" {
		version = fmt.Sprintf("%s-%s", a.window.Start, a.window.End)
	}
	return []gtfs.FeedInfo{{
		PublisherName: a.meta.PublisherName,
		PublisherURL:  a.meta.PublisherURL,
		Language:      a.meta.Language,
		StartDate:     a.window.Start,
		EndDate:       a.window.End,
		Version:       version,
		ContactEmail:  a.meta.ContactEmail,
		ContactURL:    a.meta.ContactURL,
	}}
}
