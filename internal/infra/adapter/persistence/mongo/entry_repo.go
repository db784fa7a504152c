// Package mongo stores journal entries in a MongoDB collection.
package mongo

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"daily-journal/internal/domain/entity"
	"daily-journal/internal/repository"
	"daily-journal/internal/resilience/circuitbreaker"
)

// CollectionName is the collection holding one document per journal date.
const CollectionName = "entries"

type document struct {
	ID        string    `bson:"_id"`
	Date      string    `bson:"date"`
	Content   string    `bson:"content"`
	CreatedAt time.Time `bson:"created_at"`
	UpdatedAt time.Time `bson:"updated_at"`
}

func (d document) toEntity() *entity.Entry {
	e := &entity.Entry{
		ID:        d.ID,
		Date:      d.Date,
		Content:   d.Content,
		CreatedAt: d.CreatedAt.UTC(),
		UpdatedAt: d.UpdatedAt.UTC(),
	}
	if e.UpdatedAt.Before(e.CreatedAt) {
		e.UpdatedAt = e.CreatedAt
	}
	return e
}

type EntryRepo struct {
	coll *mongo.Collection
	cb   *circuitbreaker.CircuitBreaker
}

// NewEntryRepo returns a repository over db's entries collection. Every call
// goes through cb.
func NewEntryRepo(db *mongo.Database, cb *circuitbreaker.CircuitBreaker) repository.EntryRepository {
	return &EntryRepo{coll: db.Collection(CollectionName), cb: cb}
}

// EnsureIndexes creates the unique date index that upserts rely on.
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	_, err := db.Collection(CollectionName).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "date", Value: -1}},
		Options: options.Index().SetName("idx_entries_date").SetUnique(true),
	})
	if err != nil {
		return fmt.Errorf("EnsureIndexes: %w", err)
	}
	return nil
}

var byDateDesc = options.Find().SetSort(bson.D{{Key: "date", Value: -1}})

func (repo *EntryRepo) List(ctx context.Context) ([]*entity.Entry, error) {
	entries, err := repo.find(ctx, bson.D{})
	if err != nil {
		return nil, fmt.Errorf("List: %w", err)
	}
	return entries, nil
}

func (repo *EntryRepo) GetByDate(ctx context.Context, date string) (*entity.Entry, error) {
	var (
		doc   document
		found bool
	)
	err := repo.cb.Run(func() error {
		var err error
		found, err = decodeOne(repo.coll.FindOne(ctx, bson.D{{Key: "date", Value: date}}), &doc)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("GetByDate: %w", err)
	}
	if !found {
		return nil, nil
	}
	return doc.toEntity(), nil
}

func (repo *EntryRepo) Upsert(ctx context.Context, e *entity.Entry) (*entity.Entry, error) {
	opts := options.FindOneAndUpdate().
		SetUpsert(true).
		SetReturnDocument(options.After)

	var doc document
	err := repo.cb.Run(func() error {
		return repo.coll.FindOneAndUpdate(ctx, bson.D{{Key: "date", Value: e.Date}}, upsertPipeline(e), opts).Decode(&doc)
	})
	if err != nil {
		return nil, fmt.Errorf("Upsert: %w", err)
	}
	return doc.toEntity(), nil
}

func (repo *EntryRepo) UpdateContent(ctx context.Context, id, content string, updatedAt time.Time) (*entity.Entry, error) {
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var (
		doc   document
		found bool
	)
	err := repo.cb.Run(func() error {
		var err error
		found, err = decodeOne(repo.coll.FindOneAndUpdate(ctx, bson.D{{Key: "_id", Value: id}}, touchPipeline(content, updatedAt), opts), &doc)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("UpdateContent: %w", err)
	}
	if !found {
		return nil, nil
	}
	return doc.toEntity(), nil
}

// decodeOne reports a missing document as found == false rather than an error,
// so lookups by an unknown key do not count against the circuit breaker.
func decodeOne(res *mongo.SingleResult, doc *document) (found bool, err error) {
	err = res.Decode(doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return false, nil
	}
	return err == nil, err
}

// upsertPipeline keeps _id and created_at of an existing document, fills them
// from e on insert, then applies the same updated_at clamp as touchPipeline.
func upsertPipeline(e *entity.Entry) mongo.Pipeline {
	return append(mongo.Pipeline{
		{{Key: "$set", Value: bson.D{
			{Key: "_id", Value: bson.D{{Key: "$ifNull", Value: bson.A{"$_id", e.ID}}}},
			{Key: "created_at", Value: bson.D{{Key: "$ifNull", Value: bson.A{"$created_at", e.CreatedAt}}}},
		}}},
	}, touchPipeline(e.Content, e.UpdatedAt)...)
}

// touchPipeline sets content and keeps updated_at from falling behind created_at.
func touchPipeline(content string, updatedAt time.Time) mongo.Pipeline {
	return mongo.Pipeline{
		{{Key: "$set", Value: bson.D{
			{Key: "content", Value: content},
			{Key: "updated_at", Value: bson.D{{Key: "$max", Value: bson.A{updatedAt, "$created_at"}}}},
		}}},
	}
}

func (repo *EntryRepo) Delete(ctx context.Context, id string) error {
	res, err := repo.cb.Execute(func() (interface{}, error) {
		return repo.coll.DeleteOne(ctx, bson.D{{Key: "_id", Value: id}})
	})
	if err != nil {
		return fmt.Errorf("Delete: %w", err)
	}
	if res.(*mongo.DeleteResult).DeletedCount == 0 {
		return fmt.Errorf("Delete: %w", entity.ErrNotFound)
	}
	return nil
}

func (repo *EntryRepo) Search(ctx context.Context, query string) ([]*entity.Entry, error) {
	entries, err := repo.find(ctx, searchFilter(query))
	if err != nil {
		return nil, fmt.Errorf("Search: %w", err)
	}
	return entries, nil
}

// searchFilter matches query as a literal, case-insensitive substring.
func searchFilter(query string) bson.D {
	return bson.D{{Key: "content", Value: bson.D{
		{Key: "$regex", Value: regexp.QuoteMeta(query)},
		{Key: "$options", Value: "i"},
	}}}
}

func (repo *EntryRepo) find(ctx context.Context, filter bson.D) ([]*entity.Entry, error) {
	var docs []document
	err := repo.cb.Run(func() error {
		cur, err := repo.coll.Find(ctx, filter, byDateDesc)
		if err != nil {
			return err
		}
		return cur.All(ctx, &docs)
	})
	if err != nil {
		return nil, err
	}

	entries := make([]*entity.Entry, 0, len(docs))
	for _, d := range docs {
		entries = append(entries, d.toEntity())
	}
	return entries, nil
}
