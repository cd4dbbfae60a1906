package synth

import (
	"go.uber.org/zap"

	"github.com/ph-dataviz/gtfs-sg/config"
	"github.com/ph-dataviz/gtfs-sg/gtfs"
)

// Kinematics is the per-mode travel model used to invent stop timings from
// geography alone. All durations are minutes.
type Kinematics struct {
	AverageSpeedKMH     float64
	DwellMinutes        float64
	MinInterStopMinutes float64
	FallbackLegMinutes  float64
	ServiceStartMinutes int
}

// KinematicsFromConfig converts the YAML configuration form into the model
// the estimator consumes.
func KinematicsFromConfig(c config.KinematicsConfig) Kinematics {
	return Kinematics{
		AverageSpeedKMH:     c.AverageSpeedKMH,
		DwellMinutes:        c.DwellMinutes,
		MinInterStopMinutes: c.MinInterStopMinutes,
		FallbackLegMinutes:  c.FallbackLegMinutes,
		ServiceStartMinutes: c.ServiceStartHour*60 + c.ServiceStartMinute,
	}
}

// CoordinateSource resolves a stop id to its coordinate pair. The stop
// registry satisfies this after ingestion completes.
type CoordinateSource interface {
	Coordinates(mode Mode, stopID string) (lat, lon float64, ok bool)
}

// ScheduleEstimator derives one monotonically non-decreasing time sequence
// per trip. For each consecutive stop pair it takes the haversine distance,
// converts it to minutes at the mode's constant average speed, and clamps
// the result to the configured floor; the floor keeps near-coincident stops
// from producing zero-length legs that break monotonicity and look
// implausible to validators. A constant dwell is added at every stop.
//
// Monotonicity holds by construction: every increment is a floored,
// non-negative leg duration or a non-negative dwell, so no subtraction ever
// occurs on the running clock.
type ScheduleEstimator struct {
	logger *zap.Logger
	coords CoordinateSource
}

// NewScheduleEstimator creates an estimator reading coordinates from the
// given source.
func NewScheduleEstimator(logger *zap.Logger, coords CoordinateSource) *ScheduleEstimator {
	return &ScheduleEstimator{
		logger: logger,
		coords: coords,
	}
}

// Estimate computes the stop time rows for one trip. Stops without a known
// coordinate fall back to a fixed leg duration; the dangling reference
// itself is still rejected fatally at assembly, so the fallback only ever
// smooths over missing geometry, never missing identity.
func (e *ScheduleEstimator) Estimate(trip Trip, k Kinematics) []gtfs.StopTime {
	stopTimes := make([]gtfs.StopTime, 0, len(trip.StopIDs))
	cumMinutes := 0.0
	missing := 0

	for i, stopID := range trip.StopIDs {
		if i > 0 {
			cumMinutes += e.legMinutes(trip.Mode, trip.StopIDs[i-1], stopID, k, &missing)
		}

		arrival := k.ServiceStartMinutes + int(cumMinutes)
		departure := k.ServiceStartMinutes + int(cumMinutes+k.DwellMinutes)

		stopTimes = append(stopTimes, gtfs.StopTime{
			TripID:        trip.ID,
			ArrivalTime:   gtfs.ServiceTimeFromMinutes(arrival),
			DepartureTime: gtfs.ServiceTimeFromMinutes(departure),
			StopID:        stopID,
			Sequence:      i,
		})

		cumMinutes += k.DwellMinutes
	}

	if missing > 0 {
		e.logger.Warn("trip has stops without coordinates, used fallback leg durations",
			zap.String("trip_id", trip.ID),
			zap.Int("legs", missing),
		)
	}
	return stopTimes
}

func (e *ScheduleEstimator) legMinutes(mode Mode, fromID, toID string, k Kinematics, missing *int) float64 {
	fromLat, fromLon, okFrom := e.coords.Coordinates(mode, fromID)
	toLat, toLon, okTo := e.coords.Coordinates(mode, toID)
	if !okFrom || !okTo {
		*missing++
		if k.FallbackLegMinutes > k.MinInterStopMinutes {
			return k.FallbackLegMinutes
		}
		return k.MinInterStopMinutes
	}

	distKM := haversineKM(fromLat, fromLon, toLat, toLon)
	travel := distKM / k.AverageSpeedKMH * 60
	if travel < k.MinInterStopMinutes {
		return k.MinInterStopMinutes
	}
	return travel
}
