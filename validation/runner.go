package validation

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"time"

	"go.uber.org/zap"

	"github.com/ph-dataviz/gtfs-sg/gtfs"
)

// Runner invokes the canonical MobilityData GTFS validator, an external
// Java tool treated as a black box. The runner zips the feed, executes the
// jar, and reads back the structured report; the subprocess exit status is
// logged but deliberately not used for classification.
type Runner struct {
	JarPath     string
	CountryCode string
	OutputDir   string
	Timeout     time.Duration

	logger *zap.Logger
}

// NewRunner creates a runner for the given validator installation.
func NewRunner(logger *zap.Logger, jarPath, countryCode, outputDir string, timeout time.Duration) *Runner {
	return &Runner{
		JarPath:     jarPath,
		CountryCode: countryCode,
		OutputDir:   outputDir,
		Timeout:     timeout,
		logger:      logger,
	}
}

// Run validates the feed directory and returns the parsed report.
func (r *Runner) Run(ctx context.Context, feedDir string) (*Report, error) {
	if _, err := os.Stat(r.JarPath); err != nil {
		return nil, fmt.Errorf("validator jar not found at %s: %w", r.JarPath, err)
	}

	zipPath := filepath.Join(os.TempDir(), "gtfs-sg-feed.zip")
	if err := gtfs.ZipFeedDir(feedDir, zipPath); err != nil {
		return nil, fmt.Errorf("zipping feed: %w", err)
	}
	defer func() { _ = os.Remove(zipPath) }()

	if err := os.MkdirAll(r.OutputDir, 0o755); err != nil {
		return nil, err
	}

	runCtx := ctx
	if r.Timeout > 0 {
		var cancel context.CancelFunc
		runCtx, cancel = context.WithTimeout(ctx, r.Timeout)
		defer cancel()
	}

	cmd := exec.CommandContext(runCtx, "java", "-jar", r.JarPath,
		"-i", zipPath,
		"-o", r.OutputDir,
		"-c", r.CountryCode,
	)
	output, err := cmd.CombinedOutput()
	if err != nil {
		// A non-zero exit does not mean the report is unusable, and a
		// zero exit does not mean the feed is clean. Log and read the
		// report regardless; only a missing report is fatal.
		r.logger.Warn("validator exited non-zero",
			zap.Error(err),
			zap.ByteString("output", lastLines(output, 2048)),
		)
	}

	reportPath := filepath.Join(r.OutputDir, "report.json")
	report, err := LoadReport(reportPath)
	if err != nil {
		return nil, fmt.Errorf("reading validation report %s: %w", reportPath, err)
	}
	return report, nil
}

func lastLines(b []byte, max int) []byte {
	if len(b) <= max {
		return b
	}
	return b[len(b)-max:]
}
