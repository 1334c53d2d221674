package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/DevSlashRichie/coinme/internal/domain"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// TransactionStore хранит транзакции в порядке вставки
type TransactionStore struct {
	mu  sync.Mutex
	txs []domain.Transaction
}

func NewTransactionStore() *TransactionStore {
	return &TransactionStore{}
}

func (s *TransactionStore) Insert(ctx context.Context, tx *domain.Transaction) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if tx.ID.IsZero() {
		tx.ID = primitive.NewObjectID()
	}
	s.txs = append(s.txs, *tx)
	return nil
}

func (s *TransactionStore) FindByID(ctx context.Context, id primitive.ObjectID) (domain.Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, tx := range s.txs {
		if tx.ID == id {
			return tx, nil
		}
	}
	return domain.Transaction{}, fmt.Errorf("transaction %s: %w", id.Hex(), domain.ErrNotFound)
}

func (s *TransactionStore) filter(match func(domain.Transaction) bool) []domain.Transaction {
	s.mu.Lock()
	defer s.mu.Unlock()

	result := make([]domain.Transaction, 0)
	for _, tx := range s.txs {
		if match(tx) {
			result = append(result, tx)
		}
	}
	return result
}

func (s *TransactionStore) FindByOwner(ctx context.Context, owner domain.Party) ([]domain.Transaction, error) {
	return s.filter(func(tx domain.Transaction) bool { return tx.Owner == owner }), nil
}

func (s *TransactionStore) FindByCreator(ctx context.Context, creator primitive.ObjectID) ([]domain.Transaction, error) {
	return s.filter(func(tx domain.Transaction) bool { return tx.CreatedBy == creator }), nil
}
