package store

import (
	"context"
	"testing"

	"github.com/DevSlashRichie/coinme/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type testDoc struct {
	ID   primitive.ObjectID `bson:"_id,omitempty"`
	Name string             `bson:"name"`
}

type MockCollection struct {
	mock.Mock
}

func (m *MockCollection) InsertOne(ctx context.Context, document interface{}, opts ...*options.InsertOneOptions) (*mongo.InsertOneResult, error) {
	args := m.Called(ctx, document, opts)
	return args.Get(0).(*mongo.InsertOneResult), args.Error(1)
}

func (m *MockCollection) FindOne(ctx context.Context, filter interface{}, opts ...*options.FindOneOptions) *mongo.SingleResult {
	args := m.Called(ctx, filter, opts)
	return args.Get(0).(*mongo.SingleResult)
}

func (m *MockCollection) Find(ctx context.Context, filter interface{}, opts ...*options.FindOptions) (*mongo.Cursor, error) {
	args := m.Called(ctx, filter, opts)
	return args.Get(0).(*mongo.Cursor), args.Error(1)
}

func (m *MockCollection) UpdateOne(ctx context.Context, filter interface{}, update interface{}, opts ...*options.UpdateOptions) (*mongo.UpdateResult, error) {
	args := m.Called(ctx, filter, update, opts)
	return args.Get(0).(*mongo.UpdateResult), args.Error(1)
}

func (m *MockCollection) UpdateMany(ctx context.Context, filter interface{}, update interface{}, opts ...*options.UpdateOptions) (*mongo.UpdateResult, error) {
	args := m.Called(ctx, filter, update, opts)
	return args.Get(0).(*mongo.UpdateResult), args.Error(1)
}

func TestCreate(t *testing.T) {
	coll := new(MockCollection)
	repo := NewMongoRepository[testDoc](coll)
	id := primitive.NewObjectID()
	doc := testDoc{Name: "bond"}

	coll.On("InsertOne", mock.Anything, doc, mock.Anything).Return(&mongo.InsertOneResult{InsertedID: id}, nil)

	got, err := repo.Create(context.Background(), doc)
	require.NoError(t, err)
	assert.Equal(t, id, got)
	coll.AssertExpectations(t)
}

func TestCreate_Error(t *testing.T) {
	coll := new(MockCollection)
	repo := NewMongoRepository[testDoc](coll)

	coll.On("InsertOne", mock.Anything, mock.Anything, mock.Anything).Return((*mongo.InsertOneResult)(nil), assert.AnError)

	_, err := repo.Create(context.Background(), testDoc{})
	assert.ErrorIs(t, err, domain.ErrPersistence)
}

func TestFindOne(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		coll := new(MockCollection)
		repo := NewMongoRepository[testDoc](coll)
		expected := testDoc{ID: primitive.NewObjectID(), Name: "loan"}

		coll.On("FindOne", mock.Anything, bson.M{"_id": expected.ID}, mock.Anything).
			Return(mongo.NewSingleResultFromDocument(expected, nil, nil))

		got, err := repo.FindOne(context.Background(), bson.M{"_id": expected.ID})
		require.NoError(t, err)
		assert.Equal(t, expected, got)
	})

	t.Run("NotFound", func(t *testing.T) {
		coll := new(MockCollection)
		repo := NewMongoRepository[testDoc](coll)

		coll.On("FindOne", mock.Anything, mock.Anything, mock.Anything).
			Return(mongo.NewSingleResultFromDocument(bson.D{}, mongo.ErrNoDocuments, nil))

		_, err := repo.FindOne(context.Background(), bson.M{})
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})

	t.Run("Error", func(t *testing.T) {
		coll := new(MockCollection)
		repo := NewMongoRepository[testDoc](coll)

		coll.On("FindOne", mock.Anything, mock.Anything, mock.Anything).
			Return(mongo.NewSingleResultFromDocument(bson.D{}, assert.AnError, nil))

		_, err := repo.FindOne(context.Background(), bson.M{})
		assert.ErrorIs(t, err, domain.ErrPersistence)
	})
}

func TestFind(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		coll := new(MockCollection)
		repo := NewMongoRepository[testDoc](coll)
		docs := []interface{}{
			bson.M{"name": "A"},
			bson.M{"name": "B"},
		}
		cursor, _ := mongo.NewCursorFromDocuments(docs, nil, nil)
		coll.On("Find", mock.Anything, bson.M{"name": bson.M{"$exists": true}}, mock.Anything).Return(cursor, nil)

		results, err := repo.Find(context.Background(), bson.M{"name": bson.M{"$exists": true}})
		require.NoError(t, err)
		require.Len(t, results, 2)
		assert.Equal(t, "A", results[0].Name)
		assert.Equal(t, "B", results[1].Name)
		coll.AssertExpectations(t)
	})

	t.Run("Empty", func(t *testing.T) {
		coll := new(MockCollection)
		repo := NewMongoRepository[testDoc](coll)
		cursor, _ := mongo.NewCursorFromDocuments([]interface{}{}, nil, nil)
		coll.On("Find", mock.Anything, mock.Anything, mock.Anything).Return(cursor, nil)

		results, err := repo.Find(context.Background(), bson.M{})
		require.NoError(t, err)
		assert.NotNil(t, results)
		assert.Empty(t, results)
	})

	t.Run("ErrorBeforeCursor", func(t *testing.T) {
		coll := new(MockCollection)
		repo := NewMongoRepository[testDoc](coll)
		coll.On("Find", mock.Anything, mock.Anything, mock.Anything).Return((*mongo.Cursor)(nil), assert.AnError)

		results, err := repo.Find(context.Background(), bson.M{})
		assert.Nil(t, results)
		assert.ErrorIs(t, err, domain.ErrPersistence)
	})
}

func TestUpdateOne(t *testing.T) {
	coll := new(MockCollection)
	repo := NewMongoRepository[testDoc](coll)
	filter := bson.M{"name": "A"}
	update := bson.M{"$set": bson.M{"name": "B"}}

	coll.On("UpdateOne", mock.Anything, filter, update, mock.Anything).Return(&mongo.UpdateResult{MatchedCount: 1}, nil)

	matched, err := repo.UpdateOne(context.Background(), filter, update)
	require.NoError(t, err)
	assert.Equal(t, int64(1), matched)
	coll.AssertExpectations(t)
}

func TestUpdateMany_Error(t *testing.T) {
	coll := new(MockCollection)
	repo := NewMongoRepository[testDoc](coll)
	coll.On("UpdateMany", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return((*mongo.UpdateResult)(nil), assert.AnError)

	_, err := repo.UpdateMany(context.Background(), bson.M{}, bson.M{})
	assert.ErrorIs(t, err, domain.ErrPersistence)
}

func TestRedactMongoURI(t *testing.T) {
	assert.Equal(t, "mongodb://xxxxx:xxxxx@db:27017/coinme", redactMongoURI("mongodb://admin:secret@db:27017/coinme"))
	assert.Equal(t, "mongodb://localhost:27017", redactMongoURI("mongodb://localhost:27017"))
}
