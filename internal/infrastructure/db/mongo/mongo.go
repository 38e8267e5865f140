// Package mongo keeps development-backend accounts in MongoDB.
package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

const (
	defaultTimeout = 10 * time.Second
	defaultAppName = "botaxxx-devapi"
	defaultMaxPool = 20
)

// Config captures the settings needed to reach the account database.
type Config struct {
	URI      string
	Database string
	AppName  string
	Timeout  time.Duration
	MaxPool  uint64
}

func (c Config) withDefaults() Config {
	if c.Timeout <= 0 {
		c.Timeout = defaultTimeout
	}
	if c.AppName == "" {
		c.AppName = defaultAppName
	}
	if c.MaxPool == 0 {
		c.MaxPool = defaultMaxPool
	}
	return c
}

// clientOptions tags connections with the app name so they are easy to spot
// in server logs, and bounds connect and pool sizes.
func (c Config) clientOptions() *options.ClientOptions {
	c = c.withDefaults()
	return options.Client().
		ApplyURI(c.URI).
		SetAppName(c.AppName).
		SetConnectTimeout(c.Timeout).
		SetServerSelectionTimeout(c.Timeout).
		SetMaxPoolSize(c.MaxPool)
}

// Connect dials MongoDB, pings the primary and returns the client together
// with the account database.
func Connect(ctx context.Context, cfg Config) (*mongo.Client, *mongo.Database, error) {
	if cfg.URI == "" {
		return nil, nil, fmt.Errorf("mongo connect: empty URI")
	}
	if cfg.Database == "" {
		return nil, nil, fmt.Errorf("mongo connect: empty database name")
	}
	cfg = cfg.withDefaults()

	connectCtx, cancel := context.WithTimeout(ctx, cfg.Timeout)
	defer cancel()

	client, err := mongo.Connect(connectCtx, cfg.clientOptions())
	if err != nil {
		return nil, nil, fmt.Errorf("mongo connect: %w", err)
	}

	if err := client.Ping(connectCtx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, nil, fmt.Errorf("mongo ping: %w", err)
	}

	return client, client.Database(cfg.Database), nil
}

// Checker returns a readiness check for client.
func Checker(client *mongo.Client) func(context.Context) error {
	return func(ctx context.Context) error {
		return client.Ping(ctx, readpref.Primary())
	}
}
