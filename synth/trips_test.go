package synth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func ingestAll(t *testing.T, records ...RawRoute) *CanonicalRoute {
	t.Helper()
	r := NewRouteRegistry(zap.NewNop())
	for _, raw := range records {
		_, err := r.Ingest(raw)
		require.NoError(t, err)
	}
	require.Len(t, r.Routes(), 1)
	return r.Routes()[0]
}

func TestSynthesizeTwoDirections(t *testing.T) {
	route := ingestAll(t,
		RawRoute{IdentityKey: "12", Mode: ModeBus, Direction: 1, StopIDs: []string{"A", "B", "C"}},
		RawRoute{IdentityKey: "12", Mode: ModeBus, Direction: 2, StopIDs: []string{"C", "B", "A"}},
	)

	s := NewTripSynthesizer(zap.NewNop(), "DAILY")
	trips, err := s.Synthesize(route)
	require.NoError(t, err)
	require.Len(t, trips, 2)

	assert.Equal(t, "12_0", trips[0].ID)
	assert.Equal(t, 0, trips[0].DirectionID)
	assert.Equal(t, []string{"A", "B", "C"}, trips[0].StopIDs)
	assert.Equal(t, "To C", trips[0].Headsign)

	assert.Equal(t, "12_1", trips[1].ID)
	assert.Equal(t, 1, trips[1].DirectionID)
	assert.Equal(t, []string{"C", "B", "A"}, trips[1].StopIDs)
	assert.Equal(t, "To A", trips[1].Headsign)

	for _, trip := range trips {
		assert.Equal(t, "12", trip.RouteID)
		assert.Equal(t, "DAILY", trip.ServiceID)
	}
}

func TestSynthesizeSingleDirection(t *testing.T) {
	route := ingestAll(t,
		RawRoute{IdentityKey: "CT8", Mode: ModeBus, Direction: 1, StopIDs: []string{"A", "B", "A"}},
	)

	s := NewTripSynthesizer(zap.NewNop(), "DAILY")
	trips, err := s.Synthesize(route)
	require.NoError(t, err)
	require.Len(t, trips, 1)

	// Loop services revisit stops; the sequence is kept verbatim.
	assert.Equal(t, []string{"A", "B", "A"}, trips[0].StopIDs)
	assert.Equal(t, "To A", trips[0].Headsign)
}

func TestSynthesizeUnmappedDirection(t *testing.T) {
	route := ingestAll(t,
		RawRoute{IdentityKey: "12", Mode: ModeBus, Direction: 3, StopIDs: []string{"A", "B"}},
	)

	s := NewTripSynthesizer(zap.NewNop(), "DAILY")
	_, err := s.Synthesize(route)
	require.Error(t, err)
	assert.True(t, IsDefect(err, DefectUnmappedDirection))
}

func TestSynthesizeShortSequence(t *testing.T) {
	route := ingestAll(t,
		RawRoute{IdentityKey: "12", Mode: ModeBus, Direction: 1, StopIDs: []string{"A"}},
	)

	s := NewTripSynthesizer(zap.NewNop(), "DAILY")
	_, err := s.Synthesize(route)
	require.Error(t, err)
	assert.True(t, IsDefect(err, DefectShortStopSequence))
}
