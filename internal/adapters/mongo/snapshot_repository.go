package mongo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/robinrobin1706/space-biology/internal/domain"
)

type SnapshotRepository struct {
	coll *mongo.Collection
}

func NewSnapshotRepository(db *mongo.Database) *SnapshotRepository {
	return &SnapshotRepository{coll: db.Collection(SnapshotsCollection)}
}

func (r *SnapshotRepository) Create(ctx context.Context, s *domain.Snapshot) error {
	if _, err := r.coll.InsertOne(ctx, toSnapshotDoc(s)); err != nil {
		return fmt.Errorf("failed to create analytics snapshot: %w", err)
	}
	return nil
}

func (r *SnapshotRepository) List(ctx context.Context, limit int) ([]domain.Snapshot, error) {
	opts := options.Find().SetSort(bson.D{{Key: "timestamp", Value: -1}}).SetLimit(int64(limit))

	cur, err := r.coll.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list analytics snapshots: %w", err)
	}
	defer cur.Close(ctx)

	snapshots := []domain.Snapshot{}
	for cur.Next(ctx) {
		var doc snapshotDoc
		if err := cur.Decode(&doc); err != nil {
			return nil, fmt.Errorf("failed to decode analytics snapshot: %w", err)
		}
		snapshots = append(snapshots, doc.toDomain())
	}
	return snapshots, cur.Err()
}
