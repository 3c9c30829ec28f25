package database

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"go.uber.org/zap"

	"github.com/articlepost/account-service/internal/infra/config"
)

// NewMongoDatabase connects to MongoDB and pings the primary so a bad
// URI fails at startup rather than on the first request.
func NewMongoDatabase(ctx context.Context, cfg config.MongoSettings, log *zap.Logger) (*mongo.Database, error) {
	opts := options.Client().
		ApplyURI(cfg.URI).
		SetConnectTimeout(cfg.ConnectTimeout)
	if cfg.MaxPoolSize > 0 {
		opts.SetMaxPoolSize(cfg.MaxPoolSize)
	}

	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("connect mongo: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, cfg.ConnectTimeout)
	defer cancel()
	if err := client.Ping(pingCtx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("ping mongo: %w", err)
	}

	log.Info("connected to mongo",
		zap.String("database", cfg.Database),
		zap.Uint64("max_pool_size", cfg.MaxPoolSize),
	)

	return client.Database(cfg.Database), nil
}
