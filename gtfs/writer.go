package gtfs

import (
	"archive/zip"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/gocarina/gocsv"
	"go.uber.org/zap"
)

// FeedWriter writes a Feed to a directory as the standard GTFS .txt files.
// It owns no synthesis logic; everything it writes has already passed the
// assembler's invariant checks.
type FeedWriter struct {
	dir    string
	logger *zap.Logger
}

// NewFeedWriter creates a writer targeting the given output directory. The
// directory is created on Write if it does not exist.
func NewFeedWriter(logger *zap.Logger, dir string) *FeedWriter {
	return &FeedWriter{
		dir:    dir,
		logger: logger,
	}
}

// Write emits every table of the feed. Files are fully rewritten; a partial
// table set is never left behind on error because the first failure aborts.
func (w *FeedWriter) Write(feed *Feed) error {
	if err := os.MkdirAll(w.dir, 0o755); err != nil {
		return err
	}

	tables := []struct {
		name string
		rows interface{}
		n    int
	}{
		{FileAgency, &feed.Agencies, len(feed.Agencies)},
		{FileStops, &feed.Stops, len(feed.Stops)},
		{FileRoutes, &feed.Routes, len(feed.Routes)},
		{FileTrips, &feed.Trips, len(feed.Trips)},
		{FileStopTimes, &feed.StopTimes, len(feed.StopTimes)},
		{FileCalendar, &feed.Calendar, len(feed.Calendar)},
		{FileFeedInfo, &feed.FeedInfo, len(feed.FeedInfo)},
	}

	for _, table := range tables {
		if err := w.writeTable(table.name, table.rows); err != nil {
			return fmt.Errorf("writing %s: %w", table.name, err)
		}
		w.logger.Info("wrote feed table",
			zap.String("file", table.name),
			zap.Int("rows", table.n),
		)
	}
	return nil
}

func (w *FeedWriter) writeTable(name string, rows interface{}) error {
	f, err := os.Create(filepath.Join(w.dir, name))
	if err != nil {
		return err
	}
	defer f.Close()

	if err := gocsv.Marshal(rows, f); err != nil {
		return err
	}
	return f.Sync()
}

// ZipFeedDir packages the .txt files of a feed directory into a flat zip
// archive, the input shape the canonical validator expects.
func ZipFeedDir(dir, zipPath string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return err
	}

	out, err := os.Create(zipPath)
	if err != nil {
		return err
	}
	defer out.Close()

	zw := zip.NewWriter(out)
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".txt" {
			continue
		}
		if err := addZipEntry(zw, dir, entry.Name()); err != nil {
			zw.Close()
			return err
		}
	}
	return zw.Close()
}

func addZipEntry(zw *zip.Writer, dir, name string) error {
	f, err := os.Open(filepath.Join(dir, name))
	if err != nil {
		return err
	}
	defer f.Close()

	entry, err := zw.Create(name)
	if err != nil {
		return err
	}
	_, err = io.Copy(entry, f)
	return err
}
