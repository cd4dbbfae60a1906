package datamall

import (
	"os"
	"path/filepath"
	"sort"

	"github.com/gocarina/gocsv"
	"go.uber.org/zap"

	"github.com/ph-dataviz/gtfs-sg/synth"
)

// File names of the static rail dataset.
const (
	stationsFile    = "train_stations.csv"
	codeMappingFile = "station_code_mapping.csv"
	linesFile       = "train_lines.csv"
	routesFile      = "train_routes.csv"
)

type stationRecord struct {
	Name string  `csv:"STN_NAM_DE"`
	Type string  `csv:"TYP_CD_DES"`
	Lat  float64 `csv:"latitude"`
	Lon  float64 `csv:"longitude"`
}

type stationCodeRecord struct {
	StationName string `csv:"station_name"`
	StationCode string `csv:"station_code"`
}

type trainLineRecord struct {
	LineCode string `csv:"line_code"`
	LineName string `csv:"line_name"`
	Color    string `csv:"color"`
}

type trainRouteRecord struct {
	LineCode    string `csv:"line_code"`
	Direction   int    `csv:"direction"`
	Sequence    int    `csv:"sequence"`
	StationCode string `csv:"station_code"`
}

// StaticData is the rail topology in the engine's input shape.
type StaticData struct {
	Stations    []synth.RawStation
	CodesByName map[string][]string
	RailRoutes  []synth.RawRoute
}

// LoadStaticData reads the static rail CSVs from dir. A missing stations or
// mapping file is not fatal: the build proceeds bus-only with a warning,
// matching how the datasets are provisioned independently.
func LoadStaticData(logger *zap.Logger, dir string) (*StaticData, error) {
	data := &StaticData{CodesByName: map[string][]string{}}

	var stations []*stationRecord
	if ok, err := readCSVFile(filepath.Join(dir, stationsFile), &stations); err != nil {
		return nil, err
	} else if !ok {
		logger.Warn("train stations file not found, building without rail data",
			zap.String("path", filepath.Join(dir, stationsFile)),
		)
		return data, nil
	}

	var codeMappings []*stationCodeRecord
	if ok, err := readCSVFile(filepath.Join(dir, codeMappingFile), &codeMappings); err != nil {
		return nil, err
	} else if !ok {
		logger.Warn("station code mapping file not found, building without rail data",
			zap.String("path", filepath.Join(dir, codeMappingFile)),
		)
		return data, nil
	}

	var lines []*trainLineRecord
	if _, err := readCSVFile(filepath.Join(dir, linesFile), &lines); err != nil {
		return nil, err
	}
	var routeStops []*trainRouteRecord
	if _, err := readCSVFile(filepath.Join(dir, routesFile), &routeStops); err != nil {
		return nil, err
	}

	for _, s := range stations {
		data.Stations = append(data.Stations, synth.RawStation{
			Name: s.Name,
			Lat:  s.Lat,
			Lon:  s.Lon,
		})
	}
	for _, m := range codeMappings {
		key := synth.NormalizeStationName(m.StationName)
		data.CodesByName[key] = append(data.CodesByName[key], m.StationCode)
	}
	data.RailRoutes = buildRailRoutes(lines, routeStops)

	logger.Info("loaded static rail data",
		zap.Int("stations", len(data.Stations)),
		zap.Int("lines", len(lines)),
		zap.Int("route_stops", len(routeStops)),
	)
	return data, nil
}

// buildRailRoutes groups per-stop line sequence records into one RawRoute
// per (line, direction), ordered by sequence, first-seen group order.
func buildRailRoutes(lines []*trainLineRecord, routeStops []*trainRouteRecord) []synth.RawRoute {
	lineByCode := make(map[string]*trainLineRecord, len(lines))
	for _, l := range lines {
		if _, ok := lineByCode[l.LineCode]; !ok {
			lineByCode[l.LineCode] = l
		}
	}

	type key struct {
		line string
		dir  int
	}
	grouped := map[key][]*trainRouteRecord{}
	var order []key
	for _, rs := range routeStops {
		k := key{rs.LineCode, rs.Direction}
		if _, ok := grouped[k]; !ok {
			order = append(order, k)
		}
		grouped[k] = append(grouped[k], rs)
	}

	routes := make([]synth.RawRoute, 0, len(order))
	for _, k := range order {
		stops := grouped[k]
		sort.SliceStable(stops, func(i, j int) bool { return stops[i].Sequence < stops[j].Sequence })

		codes := make([]string, 0, len(stops))
		for _, s := range stops {
			codes = append(codes, s.StationCode)
		}

		longName := k.line
		color := ""
		if l, ok := lineByCode[k.line]; ok {
			longName = l.LineName
			color = l.Color
		}
		routes = append(routes, synth.RawRoute{
			IdentityKey: k.line,
			Mode:        synth.ModeRail,
			Direction:   k.dir,
			ShortName:   k.line,
			LongName:    longName,
			Color:       color,
			StopIDs:     codes,
		})
	}
	return routes
}

// readCSVFile unmarshals one CSV file into out. The boolean reports whether
// the file existed.
func readCSVFile(path string, out interface{}) (bool, error) {
	f, err := os.Open(path)
	if os.IsNotExist(err) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	defer f.Close()

	if err := gocsv.UnmarshalFile(f, out); err != nil {
		return true, err
	}
	return true, nil
}
