package datamall

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ph-dataviz/gtfs-sg/synth"
)

func TestRawStopsFromBusStops(t *testing.T) {
	stops := RawStopsFromBusStops([]BusStop{
		{BusStopCode: "01012", RoadName: "Victoria St", Description: "Hotel Grand Pacific", Latitude: 1.29684, Longitude: 103.85253},
		{BusStopCode: "01013", RoadName: "Victoria St", Description: "", Latitude: 1.29770, Longitude: 103.85357},
	})
	require.Len(t, stops, 2)

	assert.Equal(t, synth.RawStop{
		ID:          "01012",
		Name:        "Hotel Grand Pacific",
		Description: "Victoria St",
		Lat:         1.29684,
		Lon:         103.85253,
		Mode:        synth.ModeBus,
	}, stops[0])

	// A blank description gets a generated display name.
	assert.Equal(t, "Bus Stop 01013", stops[1].Name)
}

func TestRawRoutesFromBusData(t *testing.T) {
	routes := []BusRoute{
		// Out of sequence on purpose; grouping must reorder by StopSequence.
		{ServiceNo: "12", Operator: "SBST", Direction: 1, StopSequence: 2, BusStopCode: "01019"},
		{ServiceNo: "12", Operator: "SBST", Direction: 1, StopSequence: 1, BusStopCode: "01013"},
		{ServiceNo: "12", Operator: "SBST", Direction: 2, StopSequence: 1, BusStopCode: "01019"},
		{ServiceNo: "12", Operator: "SBST", Direction: 1, StopSequence: 0, BusStopCode: "01012"},
		{ServiceNo: "12", Operator: "SBST", Direction: 2, StopSequence: 2, BusStopCode: "01012"},
		{ServiceNo: "12", Operator: "SBST", Direction: 2, StopSequence: 0, BusStopCode: "01013"},
	}
	services := []BusService{
		{ServiceNo: "12", Operator: "SBST", Direction: 1},
		{ServiceNo: "12", Operator: "SBST", Direction: 2},
	}

	raw := RawRoutesFromBusData(routes, services)
	require.Len(t, raw, 2)

	assert.Equal(t, "12", raw[0].IdentityKey)
	assert.Equal(t, 1, raw[0].Direction)
	assert.Equal(t, []string{"01012", "01013", "01019"}, raw[0].StopIDs)
	assert.Equal(t, "12", raw[0].ShortName)
	assert.Equal(t, "Bus 12 (SBST)", raw[0].LongName)
	assert.Equal(t, synth.ModeBus, raw[0].Mode)

	assert.Equal(t, 2, raw[1].Direction)
	assert.Equal(t, []string{"01013", "01019", "01012"}, raw[1].StopIDs)
}

func TestRawRoutesFromBusDataUnknownOperator(t *testing.T) {
	routes := []BusRoute{
		{ServiceNo: "77", Direction: 1, StopSequence: 0, BusStopCode: "A"},
		{ServiceNo: "77", Direction: 1, StopSequence: 1, BusStopCode: "B"},
	}

	raw := RawRoutesFromBusData(routes, nil)
	require.Len(t, raw, 1)
	assert.Equal(t, "Bus 77 (LTA)", raw[0].LongName)
}

func TestRawRoutesFromBusDataDeterministicGroupOrder(t *testing.T) {
	routes := []BusRoute{
		{ServiceNo: "7", Direction: 1, StopSequence: 0, BusStopCode: "A"},
		{ServiceNo: "12", Direction: 1, StopSequence: 0, BusStopCode: "B"},
		{ServiceNo: "7", Direction: 2, StopSequence: 0, BusStopCode: "C"},
	}

	first := RawRoutesFromBusData(routes, nil)
	second := RawRoutesFromBusData(routes, nil)
	assert.Equal(t, first, second)

	// Groups follow first appearance in the input.
	require.Len(t, first, 3)
	assert.Equal(t, "7", first[0].IdentityKey)
	assert.Equal(t, 1, first[0].Direction)
	assert.Equal(t, "12", first[1].IdentityKey)
	assert.Equal(t, "7", first[2].IdentityKey)
	assert.Equal(t, 2, first[2].Direction)
}
