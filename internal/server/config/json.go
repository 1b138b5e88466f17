package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/azyrnyx/internal/flagx"
	"github.com/dmitrijs2005/azyrnyx/internal/timex"
)

// JsonConfig mirrors Config for JSON unmarshalling. Durations use
// timex.Duration so both "12h" and integer nanoseconds are accepted.
// Pointer fields distinguish "absent" from zero values; absent fields keep
// whatever the previous layers set.
type JsonConfig struct {
	EndpointAddrHTTP             *string         `json:"endpoint_addr_http"`
	EndpointAddrGRPC             *string         `json:"endpoint_addr_grpc"`
	StoreKind                    *string         `json:"store"`
	SnapshotPath                 *string         `json:"snapshot_path"`
	DatabaseDSN                  *string         `json:"database_dsn"`
	RedisAddr                    *string         `json:"redis_addr"`
	RedisPassword                *string         `json:"redis_password"`
	RedisDB                      *int            `json:"redis_db"`
	RedisKey                     *string         `json:"redis_key"`
	S3RootUser                   *string         `json:"s3_root_user"`
	S3RootPassword               *string         `json:"s3_root_password"`
	S3Bucket                     *string         `json:"s3_bucket"`
	S3Key                        *string         `json:"s3_key"`
	S3Region                     *string         `json:"s3_region"`
	S3BaseEndpoint               *string         `json:"s3_base_endpoint"`
	SecretKey                    *string         `json:"secret_key"`
	SessionTokenValidityDuration *timex.Duration `json:"session_token_validity_duration"`
	AdminSecret                  *string         `json:"admin_secret"`
	QuestCooldown                *timex.Duration `json:"quest_cooldown"`
	CatalogFile                  *string         `json:"catalog_file"`
	LogLevel                     *string         `json:"log_level"`
	Argon2Memory                 *uint32         `json:"argon2_memory"`
	Argon2Time                   *uint32         `json:"argon2_time"`
	Argon2Threads                *uint8          `json:"argon2_threads"`
}

// parseJson loads the file named by -c / -config in args, if any, and copies
// the fields it sets into config. An unreadable or invalid file panics: the
// operator asked for it explicitly.
func parseJson(config *Config, args []string) {
	path := flagx.ConfigFileFlag(args)
	if path == "" {
		return
	}

	b, err := os.ReadFile(path)
	if err != nil {
		panic(err)
	}

	c := &JsonConfig{}
	if err := json.Unmarshal(b, c); err != nil {
		panic(err)
	}

	set(&config.EndpointAddrHTTP, c.EndpointAddrHTTP)
	set(&config.EndpointAddrGRPC, c.EndpointAddrGRPC)
	set(&config.StoreKind, c.StoreKind)
	set(&config.SnapshotPath, c.SnapshotPath)
	set(&config.DatabaseDSN, c.DatabaseDSN)
	set(&config.RedisAddr, c.RedisAddr)
	set(&config.RedisPassword, c.RedisPassword)
	set(&config.RedisDB, c.RedisDB)
	set(&config.RedisKey, c.RedisKey)
	set(&config.S3RootUser, c.S3RootUser)
	set(&config.S3RootPassword, c.S3RootPassword)
	set(&config.S3Bucket, c.S3Bucket)
	set(&config.S3Key, c.S3Key)
	set(&config.S3Region, c.S3Region)
	set(&config.S3BaseEndpoint, c.S3BaseEndpoint)
	set(&config.SecretKey, c.SecretKey)
	set(&config.AdminSecret, c.AdminSecret)
	set(&config.CatalogFile, c.CatalogFile)
	set(&config.LogLevel, c.LogLevel)
	set(&config.Argon2Memory, c.Argon2Memory)
	set(&config.Argon2Time, c.Argon2Time)
	set(&config.Argon2Threads, c.Argon2Threads)

	if c.SessionTokenValidityDuration != nil {
		config.SessionTokenValidityDuration = c.SessionTokenValidityDuration.Duration
	}
	if c.QuestCooldown != nil {
		config.QuestCooldown = c.QuestCooldown.Duration
	}
}

func set[T any](dst *T, src *T) {
	if src != nil {
		*dst = *src
	}
}
