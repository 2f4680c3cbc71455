// Package database contains the logic for establishing
// connections to the MongoDB document store.
//
// It handles:
//   - building mongo client options from config (URI, pool, timeouts)
//   - wiring command logging through zerolog (event.CommandMonitor)
//   - pinging the primary at startup and for health checks
package database

import (
	"context"
	"fmt"
	"time"

	"github.com/code2244/bloglist/internal/config"
	loggerConfig "github.com/code2244/bloglist/internal/logger"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// Database wraps the mongo client and the application database.
type Database struct {
	Client     *mongo.Client
	DB         *mongo.Database
	collection string
	log        *zerolog.Logger
}

// DatabasePingTimeout defines the number of seconds to wait for a ping
// before considering the database "unreachable".
const DatabasePingTimeout = 10

// New connects to MongoDB and pings the primary.
//
// The connection string comes from cfg.ConnectionURL, so the test run mode
// talks to the test database.
func New(cfg *config.Config, logger *zerolog.Logger) (*Database, error) {
	clientOpts := ClientOptions(cfg, logger)

	client, err := mongo.Connect(context.Background(), clientOpts)
	if err != nil {
		return nil, fmt.Errorf("failed to create mongo client: %w", err)
	}

	database := &Database{
		Client:     client,
		DB:         client.Database(cfg.Database.Name),
		collection: cfg.Database.Collection,
		log:        logger,
	}

	ctx, cancel := context.WithTimeout(context.Background(), DatabasePingTimeout*time.Second)
	defer cancel()
	if err = database.Ping(ctx); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	logger.Info().
		Str("database", cfg.Database.Name).
		Msg("connected to the database")

	return database, nil
}

// ClientOptions builds the mongo client options for cfg.
func ClientOptions(cfg *config.Config, logger *zerolog.Logger) *options.ClientOptions {
	clientOpts := options.Client().
		ApplyURI(cfg.ConnectionURL()).
		SetMaxPoolSize(cfg.Database.MaxPoolSize).
		SetMinPoolSize(cfg.Database.MinPoolSize).
		SetConnectTimeout(time.Duration(cfg.Database.ConnectTimeout) * time.Second).
		SetServerSelectionTimeout(time.Duration(cfg.Database.ConnectTimeout) * time.Second)

	if cfg.Database.ConnMaxIdleTime > 0 {
		clientOpts.SetMaxConnIdleTime(time.Duration(cfg.Database.ConnMaxIdleTime) * time.Second)
	}

	var threshold time.Duration
	if cfg.Observability != nil {
		threshold = cfg.Observability.Logging.SlowQueryThreshold
	}

	mongoLogger := loggerConfig.NewMongoLogger(*logger)
	clientOpts.SetMonitor(NewCommandMonitor(mongoLogger, cfg.Primary.Env == "local", threshold))

	return clientOpts
}

// Blogs returns the collection blogs are stored in.
func (db *Database) Blogs() *mongo.Collection {
	return db.DB.Collection(db.collection)
}

// Ping checks that the primary is reachable.
func (db *Database) Ping(ctx context.Context) error {
	return db.Client.Ping(ctx, readpref.Primary())
}

// Close disconnects the client, waiting for in-use connections until ctx
// is done.
func (db *Database) Close(ctx context.Context) error {
	db.log.Info().Msg("closing database connection")
	return db.Client.Disconnect(ctx)
}
