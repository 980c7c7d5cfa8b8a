package mongo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/robinrobin1706/space-biology/internal/domain"
	"github.com/robinrobin1706/space-biology/internal/ports"
)

type PaperRepository struct {
	coll *mongo.Collection
}

func NewPaperRepository(db *mongo.Database) *PaperRepository {
	return &PaperRepository{coll: db.Collection(PapersCollection)}
}

func (r *PaperRepository) Create(ctx context.Context, p *domain.Paper) error {
	if _, err := r.coll.InsertOne(ctx, toPaperDoc(p)); err != nil {
		return fmt.Errorf("failed to create paper: %w", err)
	}
	return nil
}

func (r *PaperRepository) Search(ctx context.Context, q ports.PaperQuery) ([]domain.Paper, error) {
	opts := options.Find().SetSort(bson.D{{Key: "relevance", Value: -1}, {Key: "_id", Value: 1}})
	if q.Limit > 0 {
		opts.SetLimit(int64(q.Limit))
	}

	cur, err := r.coll.Find(ctx, paperFilter(q), opts)
	if err != nil {
		return nil, fmt.Errorf("failed to search papers: %w", err)
	}
	defer cur.Close(ctx)

	papers := []domain.Paper{}
	for cur.Next(ctx) {
		var doc paperDoc
		if err := cur.Decode(&doc); err != nil {
			return nil, fmt.Errorf("failed to decode paper: %w", err)
		}
		papers = append(papers, doc.toDomain())
	}
	return papers, cur.Err()
}

func (r *PaperRepository) Count(ctx context.Context) (int, error) {
	n, err := r.coll.CountDocuments(ctx, bson.M{})
	if err != nil {
		return 0, fmt.Errorf("failed to count papers: %w", err)
	}
	return int(n), nil
}

func paperFilter(q ports.PaperQuery) bson.M {
	filter := bson.M{}
	if q.Search != "" {
		re := containsRegex(q.Search)
		filter["$or"] = bson.A{
			bson.M{"title": bson.M{"$regex": re}},
			bson.M{"summary": bson.M{"$regex": re}},
		}
	}
	if q.MinRelevance > 0 {
		filter["relevance"] = bson.M{"$gte": q.MinRelevance}
	}
	return filter
}
