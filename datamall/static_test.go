package datamall

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/ph-dataviz/gtfs-sg/synth"
)

func writeStaticFile(t *testing.T, dir, name, body string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(body), 0o644))
}

func writeStaticFixture(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	writeStaticFile(t, dir, stationsFile,
		"STN_NAM_DE,TYP_CD_DES,latitude,longitude\n"+
			"Jurong East MRT STATION,MRT,1.33315,103.74221\n"+
			"Bukit Batok MRT STATION,MRT,1.34903,103.74957\n")
	writeStaticFile(t, dir, codeMappingFile,
		"station_name,station_code\n"+
			"Jurong East,NS1\n"+
			"Jurong East,EW24\n"+
			"Bukit Batok,NS2\n")
	writeStaticFile(t, dir, linesFile,
		"line_code,line_name,color\n"+
			"NS,North South Line,D42E12\n")
	writeStaticFile(t, dir, routesFile,
		"line_code,direction,sequence,station_code\n"+
			"NS,1,2,NS2\n"+
			"NS,1,1,NS1\n"+
			"NS,2,1,NS2\n"+
			"NS,2,2,NS1\n")
	return dir
}

func TestLoadStaticData(t *testing.T) {
	data, err := LoadStaticData(zap.NewNop(), writeStaticFixture(t))
	require.NoError(t, err)

	require.Len(t, data.Stations, 2)
	assert.Equal(t, "Jurong East MRT STATION", data.Stations[0].Name)
	assert.Equal(t, 1.33315, data.Stations[0].Lat)

	assert.Equal(t, []string{"NS1", "EW24"}, data.CodesByName["JURONG EAST"])
	assert.Equal(t, []string{"NS2"}, data.CodesByName["BUKIT BATOK"])

	require.Len(t, data.RailRoutes, 2)
	outbound := data.RailRoutes[0]
	assert.Equal(t, "NS", outbound.IdentityKey)
	assert.Equal(t, synth.ModeRail, outbound.Mode)
	assert.Equal(t, 1, outbound.Direction)
	assert.Equal(t, "North South Line", outbound.LongName)
	assert.Equal(t, "D42E12", outbound.Color)
	// Records arrive out of sequence; the loader orders them.
	assert.Equal(t, []string{"NS1", "NS2"}, outbound.StopIDs)

	assert.Equal(t, 2, data.RailRoutes[1].Direction)
	assert.Equal(t, []string{"NS2", "NS1"}, data.RailRoutes[1].StopIDs)
}

func TestLoadStaticDataMissingStations(t *testing.T) {
	data, err := LoadStaticData(zap.NewNop(), t.TempDir())
	require.NoError(t, err)
	assert.Empty(t, data.Stations)
	assert.Empty(t, data.RailRoutes)
	assert.Empty(t, data.CodesByName)
}

func TestLoadStaticDataMissingMapping(t *testing.T) {
	dir := t.TempDir()
	writeStaticFile(t, dir, stationsFile,
		"STN_NAM_DE,TYP_CD_DES,latitude,longitude\n"+
			"Jurong East MRT STATION,MRT,1.33315,103.74221\n")

	data, err := LoadStaticData(zap.NewNop(), dir)
	require.NoError(t, err)
	assert.Empty(t, data.Stations)
	assert.Empty(t, data.RailRoutes)
}

func TestLoadStaticDataLineWithoutMetadata(t *testing.T) {
	dir := writeStaticFixture(t)
	// Drop the lines file; routes still build with the line code as name.
	require.NoError(t, os.Remove(filepath.Join(dir, linesFile)))

	data, err := LoadStaticData(zap.NewNop(), dir)
	require.NoError(t, err)
	require.Len(t, data.RailRoutes, 2)
	assert.Equal(t, "NS", data.RailRoutes[0].LongName)
	assert.Equal(t, "", data.RailRoutes[0].Color)
}
