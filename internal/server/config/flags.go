package config

import (
	"flag"
	"io"
	"time"

	"github.com/dmitrijs2005/azyrnyx/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-a string   HTTP bind address (e.g., ":3000")
//	-g string   gRPC bind address (e.g., ":50051"), empty disables gRPC
//	-k string   snapshot store: file, postgres, redis, s3
//	-f string   snapshot file path (file store)
//	-d string   PostgreSQL DSN (postgres store)
//	-r string   redis address (redis store)
//	-b string   S3 bucket (s3 store)
//	-e string   S3 base endpoint (s3 store)
//	-s string   session token signing key
//	-x string   admin secret
//	-q int      quest cooldown, minutes
//	-t int      session token validity, minutes (0 = until next login)
//	-cat string YAML catalog seed file
//	-l string   log level
//
// Only these flags are parsed, so -c / -config and unknown arguments do not
// make parsing fail.
func parseFlags(config *Config, args []string) {
	args = flagx.FilterArgs(args, []string{"-a", "-g", "-k", "-f", "-d", "-r", "-b", "-e", "-s", "-x", "-q", "-t", "-cat", "-l"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	fs.StringVar(&config.EndpointAddrHTTP, "a", config.EndpointAddrHTTP, "HTTP address and port")
	fs.StringVar(&config.EndpointAddrGRPC, "g", config.EndpointAddrGRPC, "gRPC address and port")
	fs.StringVar(&config.StoreKind, "k", config.StoreKind, "snapshot store kind")
	fs.StringVar(&config.SnapshotPath, "f", config.SnapshotPath, "snapshot file path")
	fs.StringVar(&config.DatabaseDSN, "d", config.DatabaseDSN, "database DSN")
	fs.StringVar(&config.RedisAddr, "r", config.RedisAddr, "redis address")
	fs.StringVar(&config.S3Bucket, "b", config.S3Bucket, "S3 bucket")
	fs.StringVar(&config.S3BaseEndpoint, "e", config.S3BaseEndpoint, "S3 base endpoint")
	fs.StringVar(&config.SecretKey, "s", config.SecretKey, "session signing key")
	fs.StringVar(&config.AdminSecret, "x", config.AdminSecret, "admin secret")
	fs.StringVar(&config.CatalogFile, "cat", config.CatalogFile, "catalog seed file")
	fs.StringVar(&config.LogLevel, "l", config.LogLevel, "log level")

	questCooldown := fs.Int("q", int(config.QuestCooldown.Minutes()), "quest cooldown (in minutes)")
	sessionTTL := fs.Int("t", int(config.SessionTokenValidityDuration.Minutes()), "session token validity (in minutes)")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	// minute flags only override when given, so finer JSON values survive
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "q":
			config.QuestCooldown = time.Duration(*questCooldown) * time.Minute
		case "t":
			config.SessionTokenValidityDuration = time.Duration(*sessionTTL) * time.Minute
		}
	})
}
