package store

import (
	"context"
	"fmt"

	"github.com/DevSlashRichie/coinme/internal/domain"
	"github.com/DevSlashRichie/coinme/internal/logger"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// TransactionStore хранит транзакции в коллекции transactions. Записи не изменяются.
type TransactionStore struct {
	repo *MongoRepository[domain.Transaction]
}

func NewTransactionStore(client *MongoClient) *TransactionStore {
	return NewTransactionStoreWithCollection(client.Database.Collection(TransactionsCollection))
}

func NewTransactionStoreWithCollection(collection Collection) *TransactionStore {
	return &TransactionStore{repo: NewMongoRepository[domain.Transaction](collection)}
}

func (s *TransactionStore) Insert(ctx context.Context, tx *domain.Transaction) error {
	id, err := s.repo.Create(ctx, *tx)
	if err != nil {
		logger.CtxError(ctx, "Failed to insert transaction", err)
		return err
	}
	tx.ID = id
	return nil
}

func (s *TransactionStore) FindByID(ctx context.Context, id primitive.ObjectID) (domain.Transaction, error) {
	tx, err := s.repo.FindOne(ctx, bson.M{"_id": id})
	if err != nil {
		return domain.Transaction{}, fmt.Errorf("transaction %s: %w", id.Hex(), err)
	}
	return tx, nil
}

func (s *TransactionStore) FindByOwner(ctx context.Context, owner domain.Party) ([]domain.Transaction, error) {
	return s.repo.Find(ctx, partyFilter("owner", owner), byCreatedAt())
}

func (s *TransactionStore) FindByCreator(ctx context.Context, creator primitive.ObjectID) ([]domain.Transaction, error) {
	return s.repo.Find(ctx, bson.M{"createdBy": creator}, byCreatedAt())
}
