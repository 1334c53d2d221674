package service

import (
	"context"
	"time"

	"github.com/DevSlashRichie/coinme/internal/domain"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// LoanStore - хранилище кредитов
type LoanStore interface {
	Insert(ctx context.Context, loan *domain.Loan) error
	FindByID(ctx context.Context, id primitive.ObjectID) (domain.Loan, error)
	FindByBorrower(ctx context.Context, borrower domain.Party) ([]domain.Loan, error)
	// ApplyPayment пишет платеж условно: совпадение версии и статус active, иначе domain.ErrConflict
	ApplyPayment(ctx context.Context, id primitive.ObjectID, expectedVersion int64, u domain.LoanPaymentUpdate) error
	SetStatus(ctx context.Context, id primitive.ObjectID, status domain.LoanStatus) error
}

// SecurityStore - хранилище ценных бумаг
type SecurityStore interface {
	Insert(ctx context.Context, security *domain.Security) error
	FindByID(ctx context.Context, id primitive.ObjectID) (domain.Security, error)
	FindByOwner(ctx context.Context, owner domain.Party) ([]domain.Security, error)
	SetStatus(ctx context.Context, id primitive.ObjectID, status domain.SecurityStatus) error
	MarkMatured(ctx context.Context, now time.Time) (int64, error)
}

// TransactionStore - хранилище транзакций, только вставка и чтение
type TransactionStore interface {
	Insert(ctx context.Context, tx *domain.Transaction) error
	FindByID(ctx context.Context, id primitive.ObjectID) (domain.Transaction, error)
	FindByOwner(ctx context.Context, owner domain.Party) ([]domain.Transaction, error)
	FindByCreator(ctx context.Context, creator primitive.ObjectID) ([]domain.Transaction, error)
}

// BalanceCache - кеш балансов владельцев
type BalanceCache interface {
	Get(ctx context.Context, owner domain.Party) (float64, bool, error)
	Set(ctx context.Context, owner domain.Party, balance float64) error
	Invalidate(ctx context.Context, owner domain.Party) error
}
