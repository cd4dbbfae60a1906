package config

import (
	"os"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// LoadAppConfig loads and validates the application configuration. When path
// is empty a small set of conventional locations is searched.
func LoadAppConfig(path string) (AppConfig, error) {
	paths := []string{path}
	if path == "" {
		paths = []string{"config.yml", "./configs/config.yml"}
	}

	var data []byte
	var err error
	for _, p := range paths {
		data, err = os.ReadFile(p)
		if err == nil {
			break
		}
	}
	if err != nil {
		return AppConfig{}, err
	}

	var cfg AppConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return AppConfig{}, err
	}

	applyDefaults(&cfg)

	v := validator.New()
	if err := v.Struct(cfg); err != nil {
		return AppConfig{}, err
	}
	return cfg, nil
}

// applyDefaults fills the fields most deployments never need to set. The
// kinematic constants reproduce plausible urban averages, not measured
// timetables; the emitted schedule is an estimate by design.
func applyDefaults(cfg *AppConfig) {
	if cfg.Agency.Language == "" {
		cfg.Agency.Language = "en"
	}
	if cfg.Feed.PublisherName == "" {
		cfg.Feed.PublisherName = cfg.Agency.Name
	}
	if cfg.Feed.PublisherURL == "" {
		cfg.Feed.PublisherURL = cfg.Agency.URL
	}
	if cfg.Feed.Language == "" {
		cfg.Feed.Language = cfg.Agency.Language
	}
	if cfg.Feed.ValidityDays == 0 {
		cfg.Feed.ValidityDays = 365
	}

	if cfg.DataMall.BaseURL == "" {
		cfg.DataMall.BaseURL = "https://datamall2.mytransport.sg/ltaodataservice"
	}
	if cfg.DataMall.AccountKey == "" {
		cfg.DataMall.AccountKey = os.Getenv("LTA_API_KEY")
	}
	if cfg.DataMall.PageSize == 0 {
		cfg.DataMall.PageSize = 500
	}
	if cfg.DataMall.DelayMS == 0 {
		cfg.DataMall.DelayMS = 500
	}
	if cfg.DataMall.TimeoutMS == 0 {
		cfg.DataMall.TimeoutMS = 30000
	}

	if cfg.Modes.Bus == (KinematicsConfig{}) {
		cfg.Modes.Bus = KinematicsConfig{
			AverageSpeedKMH:     25,
			DwellMinutes:        1,
			MinInterStopMinutes: 1,
			FallbackLegMinutes:  2,
			ServiceStartHour:    6,
		}
	}
	if cfg.Modes.Rail == (KinematicsConfig{}) {
		cfg.Modes.Rail = KinematicsConfig{
			AverageSpeedKMH:     40,
			DwellMinutes:        1,
			MinInterStopMinutes: 1,
			FallbackLegMinutes:  2,
			ServiceStartHour:    5,
			ServiceStartMinute:  30,
		}
	}

	if cfg.Output.Dir == "" {
		cfg.Output.Dir = "gtfs_output"
	}
	if cfg.Output.CacheDir == "" {
		cfg.Output.CacheDir = "api_cache"
	}
	if cfg.Output.StaticDir == "" {
		cfg.Output.StaticDir = "static_data"
	}

	if cfg.Validator.JarPath == "" {
		cfg.Validator.JarPath = "gtfs-validator.jar"
	}
	if cfg.Validator.CountryCode == "" {
		cfg.Validator.CountryCode = "sg"
	}
	if cfg.Validator.OutputDir == "" {
		cfg.Validator.OutputDir = "validation_output"
	}
	if cfg.Validator.TimeoutSec == 0 {
		cfg.Validator.TimeoutSec = 300
	}
}
