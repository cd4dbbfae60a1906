package config

// AgencyConfig identifies the transit agency emitted in agency.txt.
type AgencyConfig struct {
	ID       string `yaml:"id" validate:"required"`
	Name     string `yaml:"name" validate:"required"`
	URL      string `yaml:"url" validate:"required,url"`
	Timezone string `yaml:"timezone" validate:"required"`
	Language string `yaml:"language"`
}

// FeedConfig carries the feed_info.txt publisher fields and the service
// validity window. StartDate is YYYYMMDD; when empty the builder anchors the
// window at the current date.
type FeedConfig struct {
	PublisherName string `yaml:"publisherName"`
	PublisherURL  string `yaml:"publisherURL" validate:"omitempty,url"`
	Language      string `yaml:"language"`
	ContactEmail  string `yaml:"contactEmail" validate:"omitempty,email"`
	ContactURL    string `yaml:"contactURL" validate:"omitempty,url"`
	StartDate     string `yaml:"startDate" validate:"omitempty,len=8,numeric"`
	ValidityDays  int    `yaml:"validityDays" validate:"gte=0"`
}

// DataMallConfig contains LTA DataMall API access configuration. The account
// key may be left empty in the file and supplied via the LTA_API_KEY
// environment variable instead.
type DataMallConfig struct {
	BaseURL    string `yaml:"baseURL" validate:"omitempty,url"`
	AccountKey string `yaml:"accountKey"`
	PageSize   int    `yaml:"pageSize" validate:"gte=0"`
	DelayMS    int    `yaml:"delayMS" validate:"gte=0"`
	TimeoutMS  int    `yaml:"timeoutMS" validate:"gte=0"`
}

// KinematicsConfig is the per-mode travel model used to estimate stop times.
type KinematicsConfig struct {
	AverageSpeedKMH     float64 `yaml:"averageSpeedKmh" validate:"gt=0"`
	DwellMinutes        float64 `yaml:"dwellMinutes" validate:"gte=0"`
	MinInterStopMinutes float64 `yaml:"minInterStopMinutes" validate:"gte=0"`
	FallbackLegMinutes  float64 `yaml:"fallbackLegMinutes" validate:"gte=0"`
	ServiceStartHour    int     `yaml:"serviceStartHour" validate:"gte=0,lte=23"`
	ServiceStartMinute  int     `yaml:"serviceStartMinute" validate:"gte=0,lte=59"`
}

// ModesConfig holds one kinematic model per transit mode.
type ModesConfig struct {
	Bus  KinematicsConfig `yaml:"bus"`
	Rail KinematicsConfig `yaml:"rail"`
}

// OutputConfig controls where the generated feed and caches land.
type OutputConfig struct {
	Dir       string `yaml:"dir"`
	CacheDir  string `yaml:"cacheDir"`
	StaticDir string `yaml:"staticDir"`
}

// ValidatorConfig configures the external canonical validator run.
type ValidatorConfig struct {
	JarPath     string `yaml:"jarPath"`
	CountryCode string `yaml:"countryCode" validate:"omitempty,len=2"`
	OutputDir   string `yaml:"outputDir"`
	TimeoutSec  int    `yaml:"timeoutSec" validate:"gte=0"`
}

// AppConfig is the root configuration structure.
type AppConfig struct {
	Agency    AgencyConfig    `yaml:"agency" validate:"required"`
	Feed      FeedConfig      `yaml:"feed"`
	DataMall  DataMallConfig  `yaml:"datamall"`
	Modes     ModesConfig     `yaml:"modes"`
	Output    OutputConfig    `yaml:"output"`
	Validator ValidatorConfig `yaml:"validator"`
}
