package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"go.uber.org/zap"

	"github.com/ph-dataviz/gtfs-sg/config"
	"github.com/ph-dataviz/gtfs-sg/datamall"
	"github.com/ph-dataviz/gtfs-sg/gtfs"
	"github.com/ph-dataviz/gtfs-sg/synth"
	"github.com/ph-dataviz/gtfs-sg/validation"
)

func main() {
	os.Exit(run())
}

func run() int {
	configPath := flag.String("config", "", "path to config.yml (default: search conventional locations)")
	outputDir := flag.String("output", "", "output directory for GTFS files (overrides config)")
	useCache := flag.Bool("use-cache", false, "load API data from cache instead of fetching")
	saveCache := flag.Bool("save-cache", false, "save fetched API data to cache for replay")
	cacheDir := flag.String("cache-dir", "", "directory for cached API snapshots (overrides config)")
	staticDir := flag.String("static-dir", "", "directory with static rail CSVs (overrides config)")
	validate := flag.Bool("validate", false, "run the canonical validator on the generated feed")
	validatorJar := flag.String("validator-jar", "", "path to the gtfs-validator jar (overrides config)")
	debug := flag.Bool("debug", false, "enable debug logging")
	flag.Parse()

	logger := newLogger(*debug)
	defer func() { _ = logger.Sync() }()

	cfg, err := config.LoadAppConfig(*configPath)
	if err != nil {
		logger.Error("loading config", zap.Error(err))
		return 1
	}
	applyOverrides(&cfg, *outputDir, *cacheDir, *staticDir, *validatorJar)

	ctx := context.Background()

	busStops, busServices, busRoutes, err := acquireBusData(ctx, logger, cfg, *useCache, *saveCache)
	if err != nil {
		logger.Error("acquiring bus data", zap.Error(err))
		return 1
	}
	if len(busStops) == 0 || len(busServices) == 0 || len(busRoutes) == 0 {
		logger.Error("bus dataset is empty",
			zap.Int("stops", len(busStops)),
			zap.Int("services", len(busServices)),
			zap.Int("routes", len(busRoutes)),
		)
		return 1
	}

	static, err := datamall.LoadStaticData(logger, cfg.Output.StaticDir)
	if err != nil {
		logger.Error("loading static rail data", zap.Error(err))
		return 1
	}

	window, err := serviceWindow(cfg.Feed)
	if err != nil {
		logger.Error("resolving service window", zap.Error(err))
		return 1
	}

	pipeline := synth.NewPipeline(logger, synth.PipelineConfig{
		Agency: gtfs.Agency{
			ID:       cfg.Agency.ID,
			Name:     cfg.Agency.Name,
			URL:      cfg.Agency.URL,
			Timezone: cfg.Agency.Timezone,
			Language: cfg.Agency.Language,
		},
		Window: window,
		Meta: synth.FeedMeta{
			PublisherName: cfg.Feed.PublisherName,
			PublisherURL:  cfg.Feed.PublisherURL,
			Language:      cfg.Feed.Language,
			ContactEmail:  cfg.Feed.ContactEmail,
			ContactURL:    cfg.Feed.ContactURL,
		},
		Bus:  synth.KinematicsFromConfig(cfg.Modes.Bus),
		Rail: synth.KinematicsFromConfig(cfg.Modes.Rail),
	})

	feed, report, err := pipeline.Run(synth.Input{
		BusStops:           datamall.RawStopsFromBusStops(busStops),
		BusRoutes:          datamall.RawRoutesFromBusData(busRoutes, busServices),
		Stations:           static.Stations,
		StationCodesByName: static.CodesByName,
		RailRoutes:         static.RailRoutes,
	})
	if err != nil {
		logger.Error("feed synthesis failed", zap.Error(err))
		return 1
	}
	for _, name := range report.UnmatchedStations {
		logger.Warn("station retained without alias codes", zap.String("station", name))
	}

	writer := gtfs.NewFeedWriter(logger, cfg.Output.Dir)
	if err := writer.Write(feed); err != nil {
		logger.Error("writing feed", zap.Error(err))
		return 1
	}
	logger.Info("feed written",
		zap.String("dir", cfg.Output.Dir),
		zap.Int("stops", report.StopCount),
		zap.Int("routes", report.RouteCount),
		zap.Int("trips", report.TripCount),
		zap.Int("stop_times", report.StopTimeCount),
	)

	findings := validation.AuditDirectory(cfg.Output.Dir)
	findings = append(findings, validation.AuditFeed(feed)...)
	for _, f := range findings {
		if f.Severity == validation.SeverityError {
			logger.Error("structure audit", zap.String("finding", f.Message))
		} else {
			logger.Warn("structure audit", zap.String("finding", f.Message))
		}
	}
	if validation.HasErrors(findings) {
		return 1
	}

	if *validate {
		return runValidator(ctx, logger, cfg)
	}
	return 0
}

// runValidator invokes the canonical validator and converts the report
// classification to the process exit code: zero only on PASS.
func runValidator(ctx context.Context, logger *zap.Logger, cfg config.AppConfig) int {
	runner := validation.NewRunner(logger,
		cfg.Validator.JarPath,
		cfg.Validator.CountryCode,
		cfg.Validator.OutputDir,
		time.Duration(cfg.Validator.TimeoutSec)*time.Second,
	)
	report, err := runner.Run(ctx, cfg.Output.Dir)
	if err != nil {
		logger.Error("running canonical validator", zap.Error(err))
		return 1
	}

	verdict := validation.Classify(report)
	logger.Info("validation verdict",
		zap.String("verdict", verdict.String()),
		zap.Int("notices", len(report.Notices)),
	)
	for _, n := range report.Notices {
		logger.Warn("validator notice",
			zap.String("code", n.Code),
			zap.String("severity", n.Severity),
			zap.Int("count", n.TotalNotices),
		)
	}

	// The exit code follows the report classification, never the
	// validator's own exit status: zero only on PASS. WARN gets its own
	// code so callers can tell "sound but noisy" from "broken".
	switch verdict {
	case validation.VerdictPass:
		return 0
	case validation.VerdictWarn:
		return 2
	default:
		return 1
	}
}

func acquireBusData(ctx context.Context, logger *zap.Logger, cfg config.AppConfig, useCache, saveCache bool) ([]datamall.BusStop, []datamall.BusService, []datamall.BusRoute, error) {
	cache := datamall.NewCache(logger, cfg.Output.CacheDir)

	var stops []datamall.BusStop
	var services []datamall.BusService
	var routes []datamall.BusRoute

	if useCache {
		if err := cache.Load("bus_stops", &stops); err != nil {
			return nil, nil, nil, fmt.Errorf("loading bus_stops snapshot: %w", err)
		}
		if err := cache.Load("bus_services", &services); err != nil {
			return nil, nil, nil, fmt.Errorf("loading bus_services snapshot: %w", err)
		}
		if err := cache.Load("bus_routes", &routes); err != nil {
			return nil, nil, nil, fmt.Errorf("loading bus_routes snapshot: %w", err)
		}
		return stops, services, routes, nil
	}

	client := datamall.NewClient(logger, cfg.DataMall)
	var err error
	if stops, err = client.BusStops(ctx); err != nil {
		return nil, nil, nil, err
	}
	if services, err = client.BusServices(ctx); err != nil {
		return nil, nil, nil, err
	}
	if routes, err = client.BusRoutes(ctx); err != nil {
		return nil, nil, nil, err
	}

	if saveCache {
		if err := cache.Save("bus_stops", stops); err != nil {
			return nil, nil, nil, err
		}
		if err := cache.Save("bus_services", services); err != nil {
			return nil, nil, nil, err
		}
		if err := cache.Save("bus_routes", routes); err != nil {
			return nil, nil, nil, err
		}
	}
	return stops, services, routes, nil
}

// serviceWindow anchors the calendar at the configured start date, or at
// the current date when none is configured.
func serviceWindow(feed config.FeedConfig) (synth.ServiceWindow, error) {
	var start gtfs.Date
	if feed.StartDate != "" {
		parsed, err := gtfs.ParseDate(feed.StartDate)
		if err != nil {
			return synth.ServiceWindow{}, fmt.Errorf("feed.startDate: %w", err)
		}
		start = parsed
	} else {
		now := time.Now().UTC()
		start = gtfs.NewDate(now.Year(), now.Month(), now.Day())
	}
	return synth.ServiceWindow{
		Start: start,
		End:   start.AddDays(feed.ValidityDays),
	}, nil
}

func applyOverrides(cfg *config.AppConfig, outputDir, cacheDir, staticDir, validatorJar string) {
	if outputDir != "" {
		cfg.Output.Dir = outputDir
	}
	if cacheDir != "" {
		cfg.Output.CacheDir = cacheDir
	}
	if staticDir != "" {
		cfg.Output.StaticDir = staticDir
	}
	if validatorJar != "" {
		cfg.Validator.JarPath = validatorJar
	}
}

func newLogger(debug bool) *zap.Logger {
	if debug {
		logger, err := zap.NewDevelopment()
		if err != nil {
			panic(err)
		}
		return logger
	}
	logger, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}
	return logger
}
