package database

import (
	"context"
	"fmt"
	"time"

	log "github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// fallbackMongoURIs are tried in order when no explicit URI is configured.
// Local deployments commonly run a second mongod on 27018.
var fallbackMongoURIs = []string{
	"mongodb://127.0.0.1:27017/",
	"mongodb://127.0.0.1:27018/",
}

// Mongo wraps the warehouse's document store. A nil *Mongo is a valid
// "not connected" state: the API degrades to SQLite-only.
type Mongo struct {
	Client   *mongo.Client
	Database *mongo.Database
}

// NewMongo connects to MongoDB. With an explicit uri only that server is
// tried; with an empty uri the local fallback ports are probed in order.
// Connection failure is returned, not fatal - the caller decides whether
// the document store is required.
func NewMongo(ctx context.Context, uri, dbName string) (*Mongo, error) {
	uris := fallbackMongoURIs
	if uri != "" {
		uris = []string{uri}
	}

	var lastErr error
	for _, candidate := range uris {
		client, err := connectMongo(ctx, candidate)
		if err != nil {
			lastErr = err
			continue
		}
		log.Infof("MongoDB connected at %s", candidate)
		return &Mongo{
			Client:   client,
			Database: client.Database(dbName),
		}, nil
	}
	return nil, fmt.Errorf("mongodb not reachable: %w", lastErr)
}

func connectMongo(ctx context.Context, uri string) (*mongo.Client, error) {
	opts := options.Client().
		ApplyURI(uri).
		SetServerSelectionTimeout(2 * time.Second)

	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to %s: %w", uri, err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx, nil); err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("failed to ping %s: %w", uri, err)
	}
	return client, nil
}

// Close disconnects from MongoDB
func (m *Mongo) Close(ctx context.Context) error {
	if m == nil || m.Client == nil {
		return nil
	}
	return m.Client.Disconnect(ctx)
}
