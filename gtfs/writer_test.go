package gtfs

import (
	"archive/zip"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func sampleFeed() *Feed {
	return &Feed{
		Agencies: []Agency{{ID: "LTA", Name: "Land Transport Authority", URL: "https://www.lta.gov.sg", Timezone: "Asia/Singapore", Language: "en"}},
		Stops: []Stop{
			{ID: "01012", Code: "01012", Name: "Hotel Grand Pacific", Description: "Victoria St", Lat: 1.29684, Lon: 103.85253},
		},
		Routes: []Route{{ID: "12", AgencyID: "LTA", ShortName: "12", LongName: "Bus 12 (SBST)", Type: RouteTypeBus}},
		Trips:  []Trip{{RouteID: "12", ServiceID: "DAILY", ID: "12_0", Headsign: "To 01012", DirectionID: 0}},
		StopTimes: []StopTime{
			{TripID: "12_0", ArrivalTime: 21600, DepartureTime: 21660, StopID: "01012", Sequence: 0},
		},
		Calendar: []Calendar{{
			ServiceID: "DAILY",
			Monday:    1, Tuesday: 1, Wednesday: 1, Thursday: 1, Friday: 1, Saturday: 1, Sunday: 1,
			StartDate: NewDate(2025, time.January, 1),
			EndDate:   NewDate(2025, time.December, 31),
		}},
		FeedInfo: []FeedInfo{{
			PublisherName: "LTA",
			PublisherURL:  "https://www.lta.gov.sg",
			Language:      "en",
			StartDate:     NewDate(2025, time.January, 1),
			EndDate:       NewDate(2025, time.December, 31),
			Version:       "20250101-20251231",
		}},
	}
}

func TestFeedWriterWrite(t *testing.T) {
	dir := t.TempDir()
	w := NewFeedWriter(zap.NewNop(), dir)
	require.NoError(t, w.Write(sampleFeed()))

	for name := range sampleFeed().TableCounts() {
		_, err := os.Stat(filepath.Join(dir, name))
		assert.NoError(t, err, name)
	}

	data, err := os.ReadFile(filepath.Join(dir, FileAgency))
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "agency_id,agency_name,agency_url,agency_timezone,agency_lang", strings.TrimSpace(lines[0]))
	assert.Contains(t, lines[1], "LTA")
	assert.Contains(t, lines[1], "Asia/Singapore")

	data, err = os.ReadFile(filepath.Join(dir, FileStopTimes))
	require.NoError(t, err)
	assert.Contains(t, string(data), "06:00:00")
	assert.Contains(t, string(data), "06:01:00")

	data, err = os.ReadFile(filepath.Join(dir, FileCalendar))
	require.NoError(t, err)
	assert.Contains(t, string(data), "20250101")
	assert.Contains(t, string(data), "20251231")
}

func TestFeedWriterDeterministic(t *testing.T) {
	dirA := t.TempDir()
	dirB := t.TempDir()
	require.NoError(t, NewFeedWriter(zap.NewNop(), dirA).Write(sampleFeed()))
	require.NoError(t, NewFeedWriter(zap.NewNop(), dirB).Write(sampleFeed()))

	for name := range sampleFeed().TableCounts() {
		a, err := os.ReadFile(filepath.Join(dirA, name))
		require.NoError(t, err)
		b, err := os.ReadFile(filepath.Join(dirB, name))
		require.NoError(t, err)
		assert.Equal(t, a, b, name)
	}
}

func TestZipFeedDir(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, NewFeedWriter(zap.NewNop(), dir).Write(sampleFeed()))
	// Non-feed files are left out of the archive.
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.md"), []byte("scratch"), 0o644))

	zipPath := filepath.Join(t.TempDir(), "feed.zip")
	require.NoError(t, ZipFeedDir(dir, zipPath))

	zr, err := zip.OpenReader(zipPath)
	require.NoError(t, err)
	defer zr.Close()

	names := make(map[string]bool)
	for _, f := range zr.File {
		names[f.Name] = true
	}
	for name := range sampleFeed().TableCounts() {
		assert.True(t, names[name], name)
	}
	assert.False(t, names["notes.md"])
}
