package store

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/DevSlashRichie/coinme/internal/domain"
	"github.com/DevSlashRichie/coinme/internal/logger"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// LoanStore хранит кредиты в коллекции loans
type LoanStore struct {
	repo *MongoRepository[domain.Loan]
}

func NewLoanStore(client *MongoClient) *LoanStore {
	return NewLoanStoreWithCollection(client.Database.Collection(LoansCollection))
}

func NewLoanStoreWithCollection(collection Collection) *LoanStore {
	return &LoanStore{repo: NewMongoRepository[domain.Loan](collection)}
}

func byCreatedAt() *options.FindOptions {
	return options.Find().SetSort(bson.D{{Key: "createdAt", Value: 1}})
}

func partyFilter(prefix string, p domain.Party) bson.M {
	return bson.M{prefix + ".id": p.ID, prefix + ".type": p.Kind}
}

// Insert сохраняет новый кредит и проставляет ему идентификатор
func (s *LoanStore) Insert(ctx context.Context, loan *domain.Loan) error {
	if loan.PaymentHistory == nil {
		// $push не работает с null
		loan.PaymentHistory = []domain.PaymentEntry{}
	}
	id, err := s.repo.Create(ctx, *loan)
	if err != nil {
		logger.CtxError(ctx, "Failed to insert loan", err)
		return err
	}
	loan.ID = id
	return nil
}

func (s *LoanStore) FindByID(ctx context.Context, id primitive.ObjectID) (domain.Loan, error) {
	loan, err := s.repo.FindOne(ctx, bson.M{"_id": id})
	if err != nil {
		return domain.Loan{}, fmt.Errorf("loan %s: %w", id.Hex(), err)
	}
	return loan, nil
}

func (s *LoanStore) FindByBorrower(ctx context.Context, borrower domain.Party) ([]domain.Loan, error) {
	return s.repo.Find(ctx, partyFilter("borrower", borrower), byCreatedAt())
}

// ApplyPayment записывает платеж, только если кредит активен и не менялся с версии expectedVersion.
// Ноль совпадений означает конкурентную запись: domain.ErrConflict.
func (s *LoanStore) ApplyPayment(ctx context.Context, id primitive.ObjectID, expectedVersion int64, u domain.LoanPaymentUpdate) error {
	filter := bson.M{
		"_id":     id,
		"version": expectedVersion,
		"status":  domain.LoanActive,
	}
	update := bson.M{
		"$set": bson.M{
			"remainingBalance": u.RemainingBalance,
			"status":           u.Status,
			"nextPaymentDue":   u.NextPaymentDue,
		},
		"$push": bson.M{"paymentHistory": u.Entry},
		"$inc":  bson.M{"version": 1},
	}

	matched, err := s.repo.UpdateOne(ctx, filter, update)
	if err != nil {
		logger.CtxError(ctx, "Failed to apply loan payment", err, slog.String("loan_id", id.Hex()))
		return err
	}
	if matched == 0 {
		return fmt.Errorf("%w: loan %s changed since version %d", domain.ErrConflict, id.Hex(), expectedVersion)
	}
	return nil
}

// SetStatus безусловно меняет статус и увеличивает версию
func (s *LoanStore) SetStatus(ctx context.Context, id primitive.ObjectID, status domain.LoanStatus) error {
	update := bson.M{
		"$set": bson.M{"status": status},
		"$inc": bson.M{"version": 1},
	}
	matched, err := s.repo.UpdateOne(ctx, bson.M{"_id": id}, update)
	if err != nil {
		return err
	}
	if matched == 0 {
		return fmt.Errorf("loan %s: %w", id.Hex(), domain.ErrNotFound)
	}
	return nil
}
