package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/robinrobin1706/space-biology/internal/domain"
)

type DataPointRepository struct {
	coll *mongo.Collection
}

func NewDataPointRepository(db *mongo.Database) *DataPointRepository {
	return &DataPointRepository{coll: db.Collection(DataPointsCollection)}
}

func (r *DataPointRepository) Create(ctx context.Context, dp *domain.DataPoint) error {
	if _, err := r.coll.InsertOne(ctx, toDataPointDoc(dp)); err != nil {
		return fmt.Errorf("failed to create data point: %w", err)
	}
	return nil
}

func (r *DataPointRepository) ListByExperiment(ctx context.Context, code string) ([]domain.DataPoint, error) {
	return r.find(ctx, bson.M{"experimentId": code})
}

func (r *DataPointRepository) ListSince(ctx context.Context, since time.Time) ([]domain.DataPoint, error) {
	return r.find(ctx, bson.M{"timestamp": bson.M{"$gte": since.UTC()}})
}

func (r *DataPointRepository) CountProcessed(ctx context.Context) (int, error) {
	n, err := r.coll.CountDocuments(ctx, bson.M{"processed": true})
	if err != nil {
		return 0, fmt.Errorf("failed to count data points: %w", err)
	}
	return int(n), nil
}

func (r *DataPointRepository) find(ctx context.Context, filter bson.M) ([]domain.DataPoint, error) {
	cur, err := r.coll.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "timestamp", Value: -1}}))
	if err != nil {
		return nil, fmt.Errorf("failed to list data points: %w", err)
	}
	defer cur.Close(ctx)

	points := []domain.DataPoint{}
	for cur.Next(ctx) {
		var doc dataPointDoc
		if err := cur.Decode(&doc); err != nil {
			return nil, fmt.Errorf("failed to decode data point: %w", err)
		}
		dp, err := doc.toDomain()
		if err != nil {
			return nil, err
		}
		points = append(points, dp)
	}
	return points, cur.Err()
}
