package config

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

const (
	EnvDevelopment = "development"
	EnvProduction  = "production"

	GeoProviderHTTP        = "http"
	GeoProviderIP2Location = "ip2location"
)

type Config struct {
	Port      string `env:"PORT,      default=8080"`
	Env       string `env:"ENV,       default=development"`
	JWTSecret string `env:"JWT_SECRET"`
	LogLevel  string `env:"LOG_LEVEL, default=info"`

	Upstream UpstreamConfig
	Mongo    MongoConfig
	Redis    RedisConfig
	Recorder RecorderConfig
}

type UpstreamConfig struct {
	IPServiceURL   string        `env:"IP_SERVICE_URL,   default=https://api.ipify.org"`
	GeoServiceURL  string        `env:"GEO_SERVICE_URL,  default=http://ip-api.com"`
	PassServiceURL string        `env:"PASS_SERVICE_URL, default=http://api.open-notify.org"`
	Timeout        time.Duration `env:"UPSTREAM_TIMEOUT, default=10s"`
	PassCount      int           `env:"PASS_COUNT,       default=0"`
	GeoProvider    string        `env:"GEO_PROVIDER,     default=http"`
	IP2LocationDB  string        `env:"IP2LOCATION_DB"`
}

// MongoConfig: an empty URI disables lookup history.
type MongoConfig struct {
	URI      string `env:"MONGO_URI"`
	Database string `env:"MONGO_DB, default=iss_spotter"`
}

// RedisConfig: an empty Addr disables the coordinates cache.
type RedisConfig struct {
	Addr     string        `env:"REDIS_ADDR"`
	DB       int           `env:"REDIS_DB,      default=0"`
	CacheTTL time.Duration `env:"GEO_CACHE_TTL, default=1h"`
}

type RecorderConfig struct {
	Workers int `env:"RECORDER_WORKERS, default=4"`
}

// HistoryEnabled reports whether lookups are persisted.
func (c *Config) HistoryEnabled() bool { return c.Mongo.URI != "" }

// CacheEnabled reports whether resolved coordinates are cached.
func (c *Config) CacheEnabled() bool { return c.Redis.Addr != "" }

// Validate rejects combinations the service cannot start with.
func (c *Config) Validate() error {
	switch c.Upstream.GeoProvider {
	case GeoProviderHTTP:
	case GeoProviderIP2Location:
		if c.Upstream.IP2LocationDB == "" {
			return fmt.Errorf("config: GEO_PROVIDER=%s requires IP2LOCATION_DB", GeoProviderIP2Location)
		}
	default:
		return fmt.Errorf("config: unknown GEO_PROVIDER %q", c.Upstream.GeoProvider)
	}
	if c.Upstream.Timeout <= 0 {
		return fmt.Errorf("config: UPSTREAM_TIMEOUT must be positive")
	}
	if c.Upstream.PassCount < 0 {
		return fmt.Errorf("config: PASS_COUNT must not be negative")
	}
	return nil
}

// LoadFrom reads and validates configuration from an arbitrary lookuper.
func LoadFrom(ctx context.Context, lookuper envconfig.Lookuper) (*Config, error) {
	var cfg Config
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{
		Target:   &cfg,
		Lookuper: lookuper,
	}); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}
