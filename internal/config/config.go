package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/UnknownOlympus/placebridge/internal/httpclient"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment variable read by the service.
const EnvPrefix = "PLACEBRIDGE"

// ConfigFileEnv names an optional YAML file with the same keys as the environment.
const ConfigFileEnv = EnvPrefix + "_CONFIG"

// Config holds the configuration settings for the conversion service.
//
// Fields:
// - Env: The current environment (local, development, production).
// - Port: The port for the HTTP API and monitoring endpoints.
// - Convert: Conversion limits and concurrency.
// - HTTP: Outbound HTTP policy towards the map providers.
// - API: Inbound API policy.
type Config struct {
	Env     string        `mapstructure:"env"`     // Env is the current environment: local, development, production.
	Port    int           `mapstructure:"port"`    // Port is the HTTP server port.
	Convert ConvertConfig `mapstructure:"convert"` // Convert holds the conversion settings.
	HTTP    HTTPConfig    `mapstructure:"http"`    // HTTP holds the outbound client settings.
	API     APIConfig     `mapstructure:"api"`     // API holds the inbound API settings.
}

// ConvertConfig controls how batches are converted.
type ConvertConfig struct {
	MaxDistanceMeters float64 `mapstructure:"max_distance_meters"` // Default distance verdict threshold.
	MaxEntries        int     `mapstructure:"max_entries"`         // Entries beyond this are dropped from a request.
	Workers           int     `mapstructure:"workers"`             // Entries converted concurrently.
	RedirectMaxHops   int     `mapstructure:"redirect_max_hops"`   // Requests spent on one short link.
}

// HTTPConfig controls requests to the map providers.
type HTTPConfig struct {
	Timeout   time.Duration `mapstructure:"timeout"`    // Timeout per request, zero disables it.
	UserAgent string        `mapstructure:"user_agent"` // UserAgent sent with every request.
	Trace     bool          `mapstructure:"trace"`      // Trace dumps requests and responses to stderr.
}

// APIConfig controls the conversion endpoint.
type APIConfig struct {
	RateLimit   float64 `mapstructure:"rate_limit"`   // Requests per second, zero disables throttling.
	AllowOrigin string  `mapstructure:"allow_origin"` // Value of the CORS allow-origin header.
}

var (
	// ErrInvalidMaxEntries is returned when convert.max_entries is not positive.
	ErrInvalidMaxEntries = errors.New("convert.max_entries must be positive")
	// ErrInvalidWorkers is returned when convert.workers is not positive.
	ErrInvalidWorkers = errors.New("convert.workers must be positive")
	// ErrInvalidMaxDistance is returned when convert.max_distance_meters is negative.
	ErrInvalidMaxDistance = errors.New("convert.max_distance_meters must not be negative")
)

func setDefaults(v *viper.Viper) {
	v.SetDefault("env", "production")
	v.SetDefault("port", 8080)
	v.SetDefault("convert.max_distance_meters", 300)
	v.SetDefault("convert.max_entries", 100)
	v.SetDefault("convert.workers", 4)
	v.SetDefault("convert.redirect_max_hops", 6)
	v.SetDefault("http.timeout", "15s")
	v.SetDefault("http.user_agent", httpclient.DefaultUserAgent)
	v.SetDefault("http.trace", false)
	v.SetDefault("api.rate_limit", 0)
	v.SetDefault("api.allow_origin", "*")
}

// Load reads the configuration from the environment and, when path is not empty, from a YAML file.
// Environment variables take precedence over the file.
func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	setDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse configuration: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func (c *Config) validate() error {
	switch {
	case c.Convert.MaxEntries <= 0:
		return ErrInvalidMaxEntries
	case c.Convert.Workers <= 0:
		return ErrInvalidWorkers
	case c.Convert.MaxDistanceMeters < 0:
		return ErrInvalidMaxDistance
	}

	return nil
}

// MustLoad loads .env, then the configuration named by PLACEBRIDGE_CONFIG and the environment.
// It panics when the configuration cannot be loaded.
func MustLoad() *Config {
	_ = godotenv.Load()

	cfg, err := Load(os.Getenv(ConfigFileEnv))
	if err != nil {
		panic("failed to load configuration: " + err.Error())
	}

	return cfg
}
