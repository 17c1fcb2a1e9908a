// Package config builds the server configuration from defaults, the
// environment (optionally seeded from a .env file), a JSON or YAML config
// file and command-line flags, in that order of precedence (last wins).
package config

import (
	"fmt"
	"time"

	"github.com/dmitrijs2005/jobboard/internal/common"
	"github.com/dmitrijs2005/jobboard/internal/logging"
	"github.com/dmitrijs2005/jobboard/internal/server/objectstore"
)

// Storage drivers.
const (
	DriverMongo    = "mongo"
	DriverPostgres = "postgres"
	DriverMemory   = "memory"
)

// Config holds runtime settings for the job board server.
//
// SecretKey signs bearer tokens. It has no default; the server refuses to
// start without one.
type Config struct {
	ListenAddr      string
	StorageDriver   string
	MongoURI        string
	MongoDatabase   string
	DatabaseDSN     string
	SecretKey       string
	TokenValidity   time.Duration
	LogLevel        string
	LogFormat       string
	S3Bucket        string
	S3Region        string
	S3BaseEndpoint  string
	S3AccessKey     string
	S3SecretKey     string
	ShutdownTimeout time.Duration
}

// LoadDefaults populates Config with development defaults.
func (c *Config) LoadDefaults() {
	c.ListenAddr = ":4000"
	c.StorageDriver = DriverMongo
	c.MongoURI = "mongodb://localhost:27017"
	c.MongoDatabase = "jobboard"
	c.TokenValidity = 72 * time.Hour
	c.LogLevel = "info"
	c.LogFormat = "json"
	c.S3Region = "us-east-1"
	c.ShutdownTimeout = 5 * time.Second
}

// LoadConfig applies defaults, the environment, the optional config file and
// flags. It panics on unreadable input, like the flag package does.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	loadDotEnv(".env")
	parseEnv(cfg, osLookup)
	parseFile(cfg)
	parseFlags(cfg)
	return cfg
}

func configError(format string, args ...any) error {
	return fmt.Errorf("%w: %s", common.ErrorConfig, fmt.Sprintf(format, args...))
}

// Validate reports the first setting that makes the server unable to start.
func (c *Config) Validate() error {
	if c.SecretKey == "" {
		return configError("token signing secret is not set (SECRET)")
	}
	if c.TokenValidity <= 0 {
		return configError("token validity must be positive, got %s", c.TokenValidity)
	}

	switch c.StorageDriver {
	case DriverMongo:
		if c.MongoURI == "" || c.MongoDatabase == "" {
			return configError("mongo storage needs a URI and a database name")
		}
	case DriverPostgres:
		if c.DatabaseDSN == "" {
			return configError("postgres storage needs a DSN")
		}
	case DriverMemory:
	default:
		return configError("unknown storage driver %q", c.StorageDriver)
	}

	if _, err := logging.ParseLevel(c.LogLevel); err != nil {
		return configError("%v", err)
	}
	if c.LogFormat != "json" && c.LogFormat != "console" {
		return configError("unknown log format %q", c.LogFormat)
	}

	return nil
}

// ObjectStore returns the avatar bucket settings.
func (c *Config) ObjectStore() objectstore.Config {
	return objectstore.Config{
		Bucket:    c.S3Bucket,
		Region:    c.S3Region,
		Endpoint:  c.S3BaseEndpoint,
		AccessKey: c.S3AccessKey,
		SecretKey: c.S3SecretKey,
	}
}
