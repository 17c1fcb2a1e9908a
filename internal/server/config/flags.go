package config

import (
	"flag"
	"os"

	"github.com/dmitrijs2005/jobboard/internal/flagx"
)

// parseFlags overlays settings from command-line flags.
//
//	-a string     listen address (e.g. ":4000")
//	-storage str  storage driver: mongo | postgres | memory
//	-m string     MongoDB URI
//	-db string    MongoDB database name
//	-d string     PostgreSQL DSN
//	-s string     token signing secret
//	-t duration   token validity (e.g. "72h")
//	-l string     log level
//	-f string     log format: json | console
//	-b string     S3 bucket
//	-g string     S3 region
//	-e string     S3 endpoint (MinIO etc.)
//	-u string     S3 access key
//	-p string     S3 secret key
//
// Only these flags are picked out of os.Args (flagx.FilterArgs), so -c is
// left for the config file loader.
func parseFlags(config *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{
		"-a", "-storage", "-m", "-db", "-d", "-s", "-t", "-l", "-f", "-b", "-g", "-e", "-u", "-p",
	})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&config.ListenAddr, "a", config.ListenAddr, "address and port to run server")
	fs.StringVar(&config.StorageDriver, "storage", config.StorageDriver, "storage driver (mongo, postgres, memory)")
	fs.StringVar(&config.MongoURI, "m", config.MongoURI, "MongoDB URI")
	fs.StringVar(&config.MongoDatabase, "db", config.MongoDatabase, "MongoDB database name")
	fs.StringVar(&config.DatabaseDSN, "d", config.DatabaseDSN, "PostgreSQL DSN")
	fs.StringVar(&config.SecretKey, "s", config.SecretKey, "token signing secret")
	fs.DurationVar(&config.TokenValidity, "t", config.TokenValidity, "token validity")
	fs.StringVar(&config.LogLevel, "l", config.LogLevel, "log level")
	fs.StringVar(&config.LogFormat, "f", config.LogFormat, "log format (json, console)")
	fs.StringVar(&config.S3Bucket, "b", config.S3Bucket, "S3 bucket")
	fs.StringVar(&config.S3Region, "g", config.S3Region, "S3 region")
	fs.StringVar(&config.S3BaseEndpoint, "e", config.S3BaseEndpoint, "S3 base endpoint")
	fs.StringVar(&config.S3AccessKey, "u", config.S3AccessKey, "S3 access key")
	fs.StringVar(&config.S3SecretKey, "p", config.S3SecretKey, "S3 secret key")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}
}
