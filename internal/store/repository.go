package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/DevSlashRichie/coinme/internal/domain"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Collection - подмножество *mongo.Collection, которым пользуются репозитории
type Collection interface {
	InsertOne(ctx context.Context, document interface{}, opts ...*options.InsertOneOptions) (*mongo.InsertOneResult, error)
	FindOne(ctx context.Context, filter interface{}, opts ...*options.FindOneOptions) *mongo.SingleResult
	Find(ctx context.Context, filter interface{}, opts ...*options.FindOptions) (*mongo.Cursor, error)
	UpdateOne(ctx context.Context, filter interface{}, update interface{}, opts ...*options.UpdateOptions) (*mongo.UpdateResult, error)
	UpdateMany(ctx context.Context, filter interface{}, update interface{}, opts ...*options.UpdateOptions) (*mongo.UpdateResult, error)
}

// MongoRepository - типизированные операции над коллекцией документов T
type MongoRepository[T any] struct {
	collection Collection
}

func NewMongoRepository[T any](collection Collection) *MongoRepository[T] {
	return &MongoRepository[T]{collection: collection}
}

func persistence(op string, err error) error {
	return fmt.Errorf("%w: %s: %v", domain.ErrPersistence, op, err)
}

// Create вставляет документ и возвращает его идентификатор
func (r *MongoRepository[T]) Create(ctx context.Context, document T) (primitive.ObjectID, error) {
	result, err := r.collection.InsertOne(ctx, document)
	if err != nil {
		return primitive.NilObjectID, persistence("insert", err)
	}
	id, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		return primitive.NilObjectID, persistence("insert", fmt.Errorf("unexpected id type %T", result.InsertedID))
	}
	return id, nil
}

// FindOne возвращает первый документ по фильтру или domain.ErrNotFound
func (r *MongoRepository[T]) FindOne(ctx context.Context, filter interface{}) (T, error) {
	var result T
	err := r.collection.FindOne(ctx, filter).Decode(&result)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return result, domain.ErrNotFound
		}
		return result, persistence("find one", err)
	}
	return result, nil
}

// Find возвращает все документы по фильтру, пустой срез если их нет
func (r *MongoRepository[T]) Find(ctx context.Context, filter interface{}, opts ...*options.FindOptions) ([]T, error) {
	cursor, err := r.collection.Find(ctx, filter, opts...)
	if err != nil {
		return nil, persistence("find", err)
	}
	defer cursor.Close(ctx)

	results := make([]T, 0)
	for cursor.Next(ctx) {
		var entity T
		if err := cursor.Decode(&entity); err != nil {
			return nil, persistence("decode", err)
		}
		results = append(results, entity)
	}
	if err := cursor.Err(); err != nil {
		return nil, persistence("cursor", err)
	}
	return results, nil
}

// UpdateOne применяет update к одному документу и возвращает число совпавших
func (r *MongoRepository[T]) UpdateOne(ctx context.Context, filter interface{}, update interface{}) (int64, error) {
	result, err := r.collection.UpdateOne(ctx, filter, update)
	if err != nil {
		return 0, persistence("update", err)
	}
	return result.MatchedCount, nil
}

// UpdateMany применяет update ко всем документам по фильтру и возвращает число измененных
func (r *MongoRepository[T]) UpdateMany(ctx context.Context, filter interface{}, update interface{}) (int64, error) {
	result, err := r.collection.UpdateMany(ctx, filter, update)
	if err != nil {
		return 0, persistence("update many", err)
	}
	return result.ModifiedCount, nil
}
