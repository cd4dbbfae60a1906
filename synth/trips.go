package synth

import (
	"fmt"
	"sort"

	"go.uber.org/zap"
)

// directionIDByRaw is the total mapping from source direction encodings onto
// the two-valued GTFS domain. LTA encodes outbound as 1 and inbound as 2.
// Any raw value outside this table is a hard error: defaulting would emit
// plausible-looking trips with the wrong directionality.
var directionIDByRaw = map[int]int{
	1: 0,
	2: 1,
}

// Trip is one directional traversal of a canonical route. The stop sequence
// is taken verbatim from the source route definition; loop services may
// legitimately revisit a stop.
type Trip struct {
	ID          string
	RouteID     string
	ServiceID   string
	Headsign    string
	DirectionID int
	Mode        Mode
	StopIDs     []string
}

// TripSynthesizer emits exactly one trip per (route, direction) pair
// actually observed in the source data. It reads stop and route identities
// but owns only the Trip lifecycle.
type TripSynthesizer struct {
	logger    *zap.Logger
	serviceID string
}

// NewTripSynthesizer creates a synthesizer binding all trips to the given
// service calendar id.
func NewTripSynthesizer(logger *zap.Logger, serviceID string) *TripSynthesizer {
	return &TripSynthesizer{
		logger:    logger,
		serviceID: serviceID,
	}
}

// Synthesize produces the trips for one canonical route, ordered by mapped
// direction id for deterministic output.
func (s *TripSynthesizer) Synthesize(route *CanonicalRoute) ([]Trip, error) {
	trips := make([]Trip, 0, 2)
	for _, rawDir := range route.RawDirections() {
		directionID, ok := directionIDByRaw[rawDir]
		if !ok {
			return nil, defectf(DefectUnmappedDirection, []string{route.ID},
				"raw direction value %d has no mapping", rawDir)
		}

		seq := route.Sequence(rawDir)
		if len(seq) < 2 {
			return nil, defectf(DefectShortStopSequence, []string{route.ID},
				"direction %d has %d stops, need at least 2", rawDir, len(seq))
		}

		trips = append(trips, Trip{
			ID:          fmt.Sprintf("%s_%d", route.ID, directionID),
			RouteID:     route.ID,
			ServiceID:   s.serviceID,
			Headsign:    "To " + seq[len(seq)-1],
			DirectionID: directionID,
			Mode:        route.Mode,
			StopIDs:     seq,
		})
	}

	sort.Slice(trips, func(i, j int) bool { return trips[i].DirectionID < trips[j].DirectionID })
	return trips, nil
}
