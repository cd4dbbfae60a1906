package synth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestRouteRegistryCollapsesDirections(t *testing.T) {
	r := NewRouteRegistry(zap.NewNop())

	outbound := RawRoute{
		IdentityKey: "12",
		Mode:        ModeBus,
		Direction:   1,
		ShortName:   "12",
		LongName:    "Bus 12 (SBST)",
		StopIDs:     []string{"A", "B", "C"},
	}
	inbound := RawRoute{
		IdentityKey: "12",
		Mode:        ModeBus,
		Direction:   2,
		ShortName:   "12",
		LongName:    "Bus 12 (SBST)",
		StopIDs:     []string{"C", "B", "A"},
	}

	id, err := r.Ingest(outbound)
	require.NoError(t, err)
	assert.Equal(t, "12", id)
	id, err = r.Ingest(inbound)
	require.NoError(t, err)
	assert.Equal(t, "12", id)

	routes := r.Routes()
	require.Len(t, routes, 1)
	assert.Equal(t, []int{1, 2}, routes[0].RawDirections())
	assert.Equal(t, []string{"A", "B", "C"}, routes[0].Sequence(1))
	assert.Equal(t, []string{"C", "B", "A"}, routes[0].Sequence(2))
}

func TestRouteRegistryIngestOrderIndependent(t *testing.T) {
	records := []RawRoute{
		{IdentityKey: "12", Mode: ModeBus, Direction: 1, LongName: "dir one first", StopIDs: []string{"A", "B"}},
		{IdentityKey: "12", Mode: ModeBus, Direction: 2, LongName: "dir one first", StopIDs: []string{"B", "A"}},
	}

	forward := NewRouteRegistry(zap.NewNop())
	for _, raw := range records {
		_, err := forward.Ingest(raw)
		require.NoError(t, err)
	}

	reversed := NewRouteRegistry(zap.NewNop())
	for i := len(records) - 1; i >= 0; i-- {
		_, err := reversed.Ingest(records[i])
		require.NoError(t, err)
	}

	require.Len(t, forward.Routes(), 1)
	require.Len(t, reversed.Routes(), 1)
	assert.Equal(t, forward.Routes()[0].Sequence(1), reversed.Routes()[0].Sequence(1))
	assert.Equal(t, forward.Routes()[0].Sequence(2), reversed.Routes()[0].Sequence(2))
	assert.Equal(t, forward.Routes()[0].ID, reversed.Routes()[0].ID)
}

func TestRouteRegistryFirstSeenAttributesWin(t *testing.T) {
	r := NewRouteRegistry(zap.NewNop())

	_, err := r.Ingest(RawRoute{IdentityKey: "NS", Mode: ModeRail, Direction: 1, LongName: "North South Line", Color: "D42E12", StopIDs: []string{"NS1", "NS2"}})
	require.NoError(t, err)
	_, err = r.Ingest(RawRoute{IdentityKey: "NS", Mode: ModeRail, Direction: 2, LongName: "renamed", Color: "000000", StopIDs: []string{"NS2", "NS1"}})
	require.NoError(t, err)

	route := r.Routes()[0]
	assert.Equal(t, "North South Line", route.LongName)
	assert.Equal(t, "D42E12", route.Color)
}

func TestRouteRegistryDuplicateDirectionIgnored(t *testing.T) {
	r := NewRouteRegistry(zap.NewNop())

	_, err := r.Ingest(RawRoute{IdentityKey: "12", Mode: ModeBus, Direction: 1, StopIDs: []string{"A", "B"}})
	require.NoError(t, err)
	_, err = r.Ingest(RawRoute{IdentityKey: "12", Mode: ModeBus, Direction: 1, StopIDs: []string{"X", "Y"}})
	require.NoError(t, err)

	route := r.Routes()[0]
	assert.Equal(t, []int{1}, route.RawDirections())
	assert.Equal(t, []string{"A", "B"}, route.Sequence(1))
}

func TestRouteRegistryMissingIdentityKey(t *testing.T) {
	r := NewRouteRegistry(zap.NewNop())

	_, err := r.Ingest(RawRoute{IdentityKey: "", Mode: ModeBus, Direction: 1, StopIDs: []string{"A", "B"}})
	require.Error(t, err)
	assert.True(t, IsDefect(err, DefectMissingRouteIdentity))
}

func TestRouteRegistrySameKeyDifferentModes(t *testing.T) {
	r := NewRouteRegistry(zap.NewNop())

	_, err := r.Ingest(RawRoute{IdentityKey: "CC", Mode: ModeBus, Direction: 1, StopIDs: []string{"A", "B"}})
	require.NoError(t, err)
	_, err = r.Ingest(RawRoute{IdentityKey: "CC", Mode: ModeRail, Direction: 1, StopIDs: []string{"CC1", "CC2"}})
	require.NoError(t, err)

	// Namespacing keeps them as two canonical routes; the assembler is the
	// one that later rejects the flat-id collision.
	assert.Len(t, r.Routes(), 2)
}
