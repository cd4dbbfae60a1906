package synth

import (
	"go.uber.org/zap"

	"github.com/ph-dataviz/gtfs-sg/gtfs"
)

// DefaultServiceID is the id of the single all-days calendar every trip
// references.
const DefaultServiceID = "DAILY"

// Input is the fully-materialized topology handed over by the source
// collaborators. The core never performs I/O; everything it needs is here.
type Input struct {
	BusStops  []RawStop
	BusRoutes []RawRoute

	Stations           []RawStation
	StationCodesByName map[string][]string
	RailRoutes         []RawRoute
}

// PipelineConfig binds one synthesis run to its agency identity, calendar
// window, feed metadata, and per-mode kinematic models.
type PipelineConfig struct {
	Agency    gtfs.Agency
	Window    ServiceWindow
	Meta      FeedMeta
	Bus       Kinematics
	Rail      Kinematics
	ServiceID string
}

// RunReport summarizes the non-fatal findings of a run. Fatal defects never
// appear here; they abort the run as errors.
type RunReport struct {
	StopCount         int
	RouteCount        int
	TripCount         int
	StopTimeCount     int
	UnmatchedStations []string
}

// Pipeline owns one synthesis run end to end. All mutable state (registries,
// coordinate lookup) lives inside Run, scoped to the call, so repeated or
// concurrent runs never interfere.
type Pipeline struct {
	logger *zap.Logger
	cfg    PipelineConfig
}

// NewPipeline creates a pipeline for the given run configuration.
func NewPipeline(logger *zap.Logger, cfg PipelineConfig) *Pipeline {
	if cfg.ServiceID == "" {
		cfg.ServiceID = DefaultServiceID
	}
	return &Pipeline{
		logger: logger,
		cfg:    cfg,
	}
}

// Run executes the five synthesis stages in order. Stages are strictly
// sequential: both modes are fully ingested by the registries before the
// first trip is synthesized, so every id a trip references is already
// stable. On any fatal defect the run aborts with no partial output.
func (p *Pipeline) Run(in Input) (*gtfs.Feed, *RunReport, error) {
	stops := NewStopRegistry(p.logger)
	for _, raw := range in.BusStops {
		if _, err := stops.Register(raw); err != nil {
			return nil, nil, err
		}
	}
	stops.RegisterStations(in.Stations, in.StationCodesByName)

	routes := NewRouteRegistry(p.logger)
	for _, raw := range in.BusRoutes {
		if _, err := routes.Ingest(raw); err != nil {
			return nil, nil, err
		}
	}
	for _, raw := range in.RailRoutes {
		if _, err := routes.Ingest(raw); err != nil {
			return nil, nil, err
		}
	}

	synthesizer := NewTripSynthesizer(p.logger, p.cfg.ServiceID)
	var trips []Trip
	for _, route := range routes.Routes() {
		routeTrips, err := synthesizer.Synthesize(route)
		if err != nil {
			return nil, nil, err
		}
		trips = append(trips, routeTrips...)
	}

	estimator := NewScheduleEstimator(p.logger, stops)
	var stopTimes []gtfs.StopTime
	for _, trip := range trips {
		stopTimes = append(stopTimes, estimator.Estimate(trip, p.kinematicsFor(trip.Mode))...)
	}

	assembler := NewFeedAssembler(p.logger, p.cfg.Agency, p.cfg.Window, p.cfg.Meta, p.cfg.ServiceID)
	feed, err := assembler.Assemble(stops.Stops(), routes.Routes(), trips, stopTimes)
	if err != nil {
		return nil, nil, err
	}

	report := &RunReport{
		StopCount:         len(feed.Stops),
		RouteCount:        len(feed.Routes),
		TripCount:         len(feed.Trips),
		StopTimeCount:     len(feed.StopTimes),
		UnmatchedStations: stops.Unmatched(),
	}
	return feed, report, nil
}

func (p *Pipeline) kinematicsFor(mode Mode) Kinematics {
	if mode == ModeRail {
		return p.cfg.Rail
	}
	return p.cfg.Bus
}
