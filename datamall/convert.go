package datamall

import (
	"fmt"
	"sort"

	"github.com/ph-dataviz/gtfs-sg/synth"
)

// RawStopsFromBusStops converts API bus stop records into the engine's
// input shape, preserving input order.
func RawStopsFromBusStops(stops []BusStop) []synth.RawStop {
	out := make([]synth.RawStop, 0, len(stops))
	for _, s := range stops {
		name := s.Description
		if name == "" {
			name = "Bus Stop " + s.BusStopCode
		}
		out = append(out, synth.RawStop{
			ID:          s.BusStopCode,
			Name:        name,
			Description: s.RoadName,
			Lat:         s.Latitude,
			Lon:         s.Longitude,
			Mode:        synth.ModeBus,
		})
	}
	return out
}

// RawRoutesFromBusData groups the per-stop BusRoutes records into one
// directional raw route per (service, direction), ordered by stop sequence.
// Group order follows first appearance in the input, keeping the conversion
// deterministic.
func RawRoutesFromBusData(routes []BusRoute, services []BusService) []synth.RawRoute {
	operatorByService := make(map[string]string, len(services))
	for _, s := range services {
		if _, ok := operatorByService[s.ServiceNo]; !ok {
			operatorByService[s.ServiceNo] = s.Operator
		}
	}

	type key struct {
		service string
		dir     int
	}
	grouped := map[key][]BusRoute{}
	var order []key
	for _, r := range routes {
		k := key{r.ServiceNo, r.Direction}
		if _, ok := grouped[k]; !ok {
			order = append(order, k)
		}
		grouped[k] = append(grouped[k], r)
	}

	out := make([]synth.RawRoute, 0, len(order))
	for _, k := range order {
		stops := grouped[k]
		sort.SliceStable(stops, func(i, j int) bool { return stops[i].StopSequence < stops[j].StopSequence })

		codes := make([]string, 0, len(stops))
		for _, s := range stops {
			codes = append(codes, s.BusStopCode)
		}

		operator := operatorByService[k.service]
		if operator == "" {
			operator = "LTA"
		}
		out = append(out, synth.RawRoute{
			IdentityKey: k.service,
			Mode:        synth.ModeBus,
			Direction:   k.dir,
			ShortName:   k.service,
			LongName:    fmt.Sprintf("Bus %s (%s)", k.service, operator),
			StopIDs:     codes,
		})
	}
	return out
}
