package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/DevSlashRichie/coinme/internal/calculations"
	"github.com/DevSlashRichie/coinme/internal/domain"
	"github.com/DevSlashRichie/coinme/internal/logger"
	"github.com/DevSlashRichie/coinme/internal/metrics"
	"github.com/DevSlashRichie/coinme/internal/validators"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.opentelemetry.io/otel/attribute"
)

// CreateTransactionInput - параметры новой транзакции
type CreateTransactionInput struct {
	Owner       domain.Party           `json:"owner"`
	Amount      float64                `json:"amount" validate:"gte=0"`
	Description string                 `json:"description" validate:"required"`
	Category    string                 `json:"category" validate:"required"`
	Type        domain.TransactionType `json:"type" validate:"required,oneof=income withdrawal"`
	CreatedBy   primitive.ObjectID     `json:"-"`
}

// TransactionService - запись транзакций и расчет баланса
type TransactionService struct {
	txs   TransactionStore
	cache BalanceCache
	now   func() time.Time
}

func NewTransactionService(txs TransactionStore, cache BalanceCache) *TransactionService {
	return &TransactionService{txs: txs, cache: cache, now: time.Now}
}

func (s *TransactionService) CreateTransaction(ctx context.Context, in CreateTransactionInput) (tx domain.Transaction, err error) {
	const op = "create_transaction"
	ctx, span := startOperation(ctx, op, attribute.String("type", string(in.Type)), attribute.Float64("amount", in.Amount))
	defer func() { finishOperation(ctx, span, op, err) }()

	if err = in.Owner.Validate(); err != nil {
		return domain.Transaction{}, err
	}
	if err = validators.Struct(in); err != nil {
		return domain.Transaction{}, err
	}
	if err = validators.CheckAmount("amount", in.Amount); err != nil {
		return domain.Transaction{}, err
	}
	if err = requireCreator(in.CreatedBy); err != nil {
		return domain.Transaction{}, err
	}

	tx = domain.Transaction{
		Owner:       in.Owner,
		Amount:      in.Amount,
		Description: in.Description,
		Category:    in.Category,
		Type:        in.Type,
		CreatedBy:   in.CreatedBy,
		CreatedAt:   s.now().UTC(),
	}
	if err = s.txs.Insert(ctx, &tx); err != nil {
		return domain.Transaction{}, err
	}

	if cerr := s.cache.Invalidate(ctx, in.Owner); cerr != nil {
		logger.CtxWarn(ctx, "Failed to invalidate cached balance", slog.String("error", cerr.Error()))
	}
	span.SetAttributes(idAttr("transaction_id", tx.ID))
	return tx, nil
}

func (s *TransactionService) GetTransaction(ctx context.Context, id primitive.ObjectID) (tx domain.Transaction, err error) {
	const op = "get_transaction"
	ctx, span := startOperation(ctx, op, idAttr("transaction_id", id))
	defer func() { finishOperation(ctx, span, op, err) }()

	return s.txs.FindByID(ctx, id)
}

func (s *TransactionService) GetCreatorTransactions(ctx context.Context, creator primitive.ObjectID) (txs []domain.Transaction, err error) {
	const op = "get_creator_transactions"
	ctx, span := startOperation(ctx, op, idAttr("creator_id", creator))
	defer func() { finishOperation(ctx, span, op, err) }()

	return s.txs.FindByCreator(ctx, creator)
}

func (s *TransactionService) GetOwnerTransactions(ctx context.Context, owner domain.Party) (txs []domain.Transaction, err error) {
	const op = "get_owner_transactions"
	ctx, span := startOperation(ctx, op, partyAttrs("owner", owner)...)
	defer func() { finishOperation(ctx, span, op, err) }()

	if err = owner.Validate(); err != nil {
		return nil, err
	}
	return s.txs.FindByOwner(ctx, owner)
}

// GetOwnerBalance возвращает баланс владельца: из кеша или свертку всех его транзакций.
// Ошибки кеша не прерывают расчет.
func (s *TransactionService) GetOwnerBalance(ctx context.Context, owner domain.Party) (balance float64, err error) {
	const op = "get_owner_balance"
	ctx, span := startOperation(ctx, op, partyAttrs("owner", owner)...)
	defer func() { finishOperation(ctx, span, op, err) }()

	if err = owner.Validate(); err != nil {
		return 0, err
	}

	cached, ok, cerr := s.cache.Get(ctx, owner)
	switch {
	case cerr != nil:
		metrics.BalanceCacheLookups.WithLabelValues("error").Inc()
		logger.CtxWarn(ctx, "Balance cache lookup failed", slog.String("error", cerr.Error()))
	case ok:
		metrics.BalanceCacheLookups.WithLabelValues("hit").Inc()
		span.SetAttributes(attribute.Bool("cache_hit", true))
		return cached, nil
	default:
		metrics.BalanceCacheLookups.WithLabelValues("miss").Inc()
	}

	txs, err := s.txs.FindByOwner(ctx, owner)
	if err != nil {
		return 0, err
	}
	balance, err = calculations.Balance(txs)
	if err != nil {
		return 0, err
	}

	if cerr := s.cache.Set(ctx, owner, balance); cerr != nil {
		logger.CtxWarn(ctx, "Failed to cache balance", slog.String("error", cerr.Error()))
	}
	span.SetAttributes(attribute.Bool("cache_hit", false), attribute.Int("transactions", len(txs)))
	return balance, nil
}
