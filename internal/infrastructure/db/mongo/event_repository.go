package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/99minutos/error-monitor/internal/core/domain"
)

// EventRepository implements ports.EventRepository and
// ports.CategoryRepository using MongoDB.
type EventRepository struct {
	db *mongo.Database
}

// NewEventRepository creates a new EventRepository.
func NewEventRepository(db *mongo.Database) *EventRepository {
	return &EventRepository{db: db}
}

func (r *EventRepository) coll() *mongo.Collection {
	return r.db.Collection(errorsCollection)
}

// eventQuery translates an EventFilter into a bson filter document.
func eventQuery(filter domain.EventFilter) bson.M {
	q := bson.M{}
	if filter.Resolved != nil {
		q["resolved"] = *filter.Resolved
	}
	if filter.Category != "" && filter.Category != domain.CategoryAll {
		q["category"] = filter.Category
	}
	return q
}

func (r *EventRepository) List(ctx context.Context, filter domain.EventFilter) ([]*domain.ErrorEvent, error) {
	filter = filter.Normalize()
	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetLimit(int64(filter.Limit))

	cur, err := r.coll().Find(ctx, eventQuery(filter), opts)
	if err != nil {
		return nil, fmt.Errorf("list errors: %w", err)
	}
	events := make([]*domain.ErrorEvent, 0)
	if err := cur.All(ctx, &events); err != nil {
		return nil, fmt.Errorf("decode errors: %w", err)
	}
	return events, nil
}

func (r *EventRepository) Create(ctx context.Context, event *domain.ErrorEvent) (*domain.ErrorEvent, error) {
	now := time.Now().UTC()
	doc := *event
	doc.ID = uuid.NewString()
	doc.Unresolve(now)
	doc.CreatedAt = now

	if _, err := r.coll().InsertOne(ctx, &doc); err != nil {
		return nil, fmt.Errorf("insert error: %w", err)
	}
	return &doc, nil
}

func (r *EventRepository) Resolve(ctx context.Context, id, comment, resolvedBy string, at time.Time) (*domain.ErrorEvent, error) {
	at = at.UTC()
	return r.findAndUpdate(ctx, id, bson.M{"$set": bson.M{
		"resolved":        true,
		"resolved_at":     at,
		"resolve_comment": comment,
		"resolved_by":     resolvedBy,
		"updated_at":      at,
	}})
}

func (r *EventRepository) Unresolve(ctx context.Context, id string, at time.Time) (*domain.ErrorEvent, error) {
	return r.findAndUpdate(ctx, id, bson.M{"$set": bson.M{
		"resolved":        false,
		"resolved_at":     nil,
		"resolve_comment": nil,
		"resolved_by":     nil,
		"updated_at":      at.UTC(),
	}})
}

func (r *EventRepository) findAndUpdate(ctx context.Context, id string, update bson.M) (*domain.ErrorEvent, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, domain.ErrEventNotFound
	}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var e domain.ErrorEvent
	if err := r.coll().FindOneAndUpdate(ctx, bson.M{"_id": id}, update, opts).Decode(&e); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrEventNotFound
		}
		return nil, fmt.Errorf("update error: %w", err)
	}
	return &e, nil
}

func (r *EventRepository) DeleteAll(ctx context.Context) (int64, error) {
	res, err := r.coll().DeleteMany(ctx, bson.M{})
	if err != nil {
		return 0, fmt.Errorf("delete errors: %w", err)
	}
	return res.DeletedCount, nil
}

func (r *EventRepository) GroupedCounts(ctx context.Context) ([]domain.GroupCount, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$group", Value: bson.M{
			"_id":   bson.M{"category": "$category", "severity": "$severity", "resolved": "$resolved"},
			"count": bson.M{"$sum": 1},
		}}},
		{{Key: "$project", Value: bson.M{
			"_id":      0,
			"category": "$_id.category",
			"severity": "$_id.severity",
			"resolved": "$_id.resolved",
			"count":    1,
		}}},
		{{Key: "$sort", Value: bson.D{
			{Key: "category", Value: 1},
			{Key: "severity", Value: 1},
			{Key: "resolved", Value: 1},
		}}},
	}

	cur, err := r.coll().Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("group errors: %w", err)
	}
	out := make([]domain.GroupCount, 0)
	if err := cur.All(ctx, &out); err != nil {
		return nil, fmt.Errorf("decode groups: %w", err)
	}
	return out, nil
}

func (r *EventRepository) ListCategories(ctx context.Context) ([]domain.Category, error) {
	opts := options.Find().SetSort(bson.D{{Key: "name", Value: 1}})
	cur, err := r.db.Collection(categoriesCollection).Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	out := make([]domain.Category, 0)
	if err := cur.All(ctx, &out); err != nil {
		return nil, fmt.Errorf("decode categories: %w", err)
	}
	return out, nil
}
