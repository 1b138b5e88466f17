package snapshot

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/azyrnyx/internal/server/config"
	"github.com/redis/go-redis/v9"
)

// Open builds the Store selected by cfg.StoreKind.
func Open(ctx context.Context, cfg *config.Config) (Store, error) {
	switch cfg.StoreKind {
	case config.StoreFile, "":
		return NewFileStore(cfg.SnapshotPath), nil
	case config.StorePostgres:
		return NewPostgresStore(ctx, cfg.DatabaseDSN)
	case config.StoreRedis:
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		return NewRedisStore(client, cfg.RedisKey), nil
	case config.StoreS3:
		return NewS3Store(ctx, S3Options{
			Region:       cfg.S3Region,
			BaseEndpoint: cfg.S3BaseEndpoint,
			AccessKey:    cfg.S3RootUser,
			SecretKey:    cfg.S3RootPassword,
			Bucket:       cfg.S3Bucket,
			Key:          cfg.S3Key,
		})
	default:
		return nil, fmt.Errorf("unknown store kind %q", cfg.StoreKind)
	}
}
