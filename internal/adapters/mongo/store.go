// Package mongo stores the catalogue in MongoDB collections.
package mongo

import (
	"context"
	"fmt"
	"regexp"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/robinrobin1706/space-biology/internal/ports"
)

// Collection names.
const (
	ExperimentsCollection = "experiments"
	DataPointsCollection  = "datapoints"
	PapersCollection      = "papers"
	SnapshotsCollection   = "analytics"
)

// Connect opens a client and verifies the server is reachable.
func Connect(ctx context.Context, uri string) (*mongo.Client, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri).SetServerSelectionTimeout(10*time.Second))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mongo: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("failed to ping mongo: %w", err)
	}
	return client, nil
}

// EnsureIndexes creates the indexes the repositories rely on. It is safe to
// call on every start.
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	specs := map[string][]mongo.IndexModel{
		ExperimentsCollection: {
			{Keys: bson.D{{Key: "code", Value: 1}}, Options: options.Index().SetUnique(true)},
			{Keys: bson.D{{Key: "category", Value: 1}}},
		},
		DataPointsCollection: {
			{Keys: bson.D{{Key: "experimentId", Value: 1}, {Key: "timestamp", Value: -1}}},
			{Keys: bson.D{{Key: "timestamp", Value: -1}}},
		},
		PapersCollection: {
			{Keys: bson.D{{Key: "relevance", Value: -1}}},
		},
		SnapshotsCollection: {
			{Keys: bson.D{{Key: "timestamp", Value: -1}}},
		},
	}

	for name, models := range specs {
		if _, err := db.Collection(name).Indexes().CreateMany(ctx, models); err != nil {
			return fmt.Errorf("failed to create %s indexes: %w", name, err)
		}
	}
	return nil
}

// NewStore creates all mongo repository implementations over db. Closing
// the store disconnects client.
func NewStore(client *mongo.Client, db *mongo.Database) *ports.Store {
	return &ports.Store{
		Experiments: NewExperimentRepository(db),
		DataPoints:  NewDataPointRepository(db),
		Papers:      NewPaperRepository(db),
		Snapshots:   NewSnapshotRepository(db),
		Close:       client.Disconnect,
	}
}

// containsRegex matches s anywhere, case-insensitively, with regex
// metacharacters in s taken literally.
func containsRegex(s string) primitive.Regex {
	return primitive.Regex{Pattern: regexp.QuoteMeta(s), Options: "i"}
}
