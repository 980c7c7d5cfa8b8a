package mongo

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/robinrobin1706/space-biology/internal/catalog"
	"github.com/robinrobin1706/space-biology/internal/domain"
)

type ExperimentRepository struct {
	coll *mongo.Collection
}

func NewExperimentRepository(db *mongo.Database) *ExperimentRepository {
	return &ExperimentRepository{coll: db.Collection(ExperimentsCollection)}
}

func (r *ExperimentRepository) Create(ctx context.Context, e *domain.Experiment) error {
	_, err := r.coll.InsertOne(ctx, toExperimentDoc(e))
	if mongo.IsDuplicateKeyError(err) {
		return domain.ErrDuplicateCode
	}
	if err != nil {
		return fmt.Errorf("failed to create experiment: %w", err)
	}
	return nil
}

func (r *ExperimentRepository) GetByCode(ctx context.Context, code string) (*domain.Experiment, error) {
	var doc experimentDoc
	err := r.coll.FindOne(ctx, bson.M{"code": code}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get experiment: %w", err)
	}
	e := doc.toDomain()
	return &e, nil
}

func (r *ExperimentRepository) List(ctx context.Context, spec catalog.Spec, limit int) ([]domain.Experiment, error) {
	opts := options.Find().SetSort(bson.D{{Key: "_id", Value: 1}})
	if limit > 0 {
		opts.SetLimit(int64(limit))
	}

	cur, err := r.coll.Find(ctx, experimentFilter(spec), opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list experiments: %w", err)
	}
	defer cur.Close(ctx)

	experiments := []domain.Experiment{}
	for cur.Next(ctx) {
		var doc experimentDoc
		if err := cur.Decode(&doc); err != nil {
			return nil, fmt.Errorf("failed to decode experiment: %w", err)
		}
		experiments = append(experiments, doc.toDomain())
	}
	return experiments, cur.Err()
}

func (r *ExperimentRepository) UpdateAnalysis(ctx context.Context, code string, a *domain.Analysis) error {
	update := bson.M{"$set": bson.M{"aiAnalysis": toAnalysisDoc(a)}}
	if a == nil {
		update = bson.M{"$unset": bson.M{"aiAnalysis": ""}}
	}
	if _, err := r.coll.UpdateOne(ctx, bson.M{"code": code}, update); err != nil {
		return fmt.Errorf("failed to update experiment analysis: %w", err)
	}
	return nil
}

func (r *ExperimentRepository) Count(ctx context.Context) (int, error) {
	n, err := r.coll.CountDocuments(ctx, bson.M{})
	if err != nil {
		return 0, fmt.Errorf("failed to count experiments: %w", err)
	}
	return int(n), nil
}

// experimentFilter translates spec into a query document with the same
// semantics as catalog.Filter.
func experimentFilter(spec catalog.Spec) bson.M {
	filter := bson.M{}
	if spec.Category != "" {
		filter["category"] = string(spec.Category)
	}
	if spec.Mission != "" {
		filter["impact"] = bson.M{"$regex": containsRegex(spec.Mission)}
	}
	if spec.Search != "" {
		fields := spec.Fields
		if fields == 0 {
			fields = catalog.BackendFields
		}
		re := containsRegex(spec.Search)
		var or bson.A
		for _, f := range []struct {
			flag catalog.FieldSet
			key  string
		}{
			{catalog.FieldTitle, "title"},
			{catalog.FieldCode, "code"},
			{catalog.FieldDescription, "description"},
			{catalog.FieldOrganism, "organism"},
		} {
			if fields.Has(f.flag) {
				or = append(or, bson.M{f.key: bson.M{"$regex": re}})
			}
		}
		filter["$or"] = or
	}
	return filter
}
