package config

import (
	"errors"
	"io/fs"
	"os"
	"time"

	"github.com/joho/godotenv"
)

type lookupFunc func(key string) (string, bool)

var osLookup lookupFunc = os.LookupEnv

// loadDotEnv copies variables from path into the environment without
// overriding ones already set. A missing file is not an error.
func loadDotEnv(path string) {
	if err := godotenv.Load(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		panic(err)
	}
}

// parseEnv overlays settings from environment variables.
//
//	PORT               listen port (":" is prepended)
//	STORAGE_DRIVER     mongo | postgres | memory
//	MONGO_URI          MongoDB connection string
//	MONGO_DB           MongoDB database name
//	DATABASE_DSN       PostgreSQL DSN
//	SECRET             token signing secret
//	TOKEN_VALIDITY     token lifetime, e.g. "72h"
//	LOG_LEVEL          debug | info | warn | error
//	LOG_FORMAT         json | console
//	S3_BUCKET, S3_REGION, S3_ENDPOINT, S3_ACCESS_KEY, S3_SECRET_KEY
//	SHUTDOWN_TIMEOUT   graceful shutdown limit, e.g. "5s"
func parseEnv(cfg *Config, lookup lookupFunc) {
	str := func(key string, dst *string) {
		if v, ok := lookup(key); ok && v != "" {
			*dst = v
		}
	}
	dur := func(key string, dst *time.Duration) {
		if v, ok := lookup(key); ok && v != "" {
			d, err := time.ParseDuration(v)
			if err != nil {
				panic(err)
			}
			*dst = d
		}
	}

	if port, ok := lookup("PORT"); ok && port != "" {
		cfg.ListenAddr = ":" + port
	}
	str("STORAGE_DRIVER", &cfg.StorageDriver)
	str("MONGO_URI", &cfg.MongoURI)
	str("MONGO_DB", &cfg.MongoDatabase)
	str("DATABASE_DSN", &cfg.DatabaseDSN)
	str("SECRET", &cfg.SecretKey)
	dur("TOKEN_VALIDITY", &cfg.TokenValidity)
	str("LOG_LEVEL", &cfg.LogLevel)
	str("LOG_FORMAT", &cfg.LogFormat)
	str("S3_BUCKET", &cfg.S3Bucket)
	str("S3_REGION", &cfg.S3Region)
	str("S3_ENDPOINT", &cfg.S3BaseEndpoint)
	str("S3_ACCESS_KEY", &cfg.S3AccessKey)
	str("S3_SECRET_KEY", &cfg.S3SecretKey)
	dur("SHUTDOWN_TIMEOUT", &cfg.ShutdownTimeout)
}
