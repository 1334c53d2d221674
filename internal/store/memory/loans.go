package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/DevSlashRichie/coinme/internal/domain"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// LoanStore - потокобезопасное хранилище кредитов в памяти с той же семантикой, что у MongoDB
type LoanStore struct {
	mu    sync.Mutex
	loans map[primitive.ObjectID]domain.Loan
}

func NewLoanStore() *LoanStore {
	return &LoanStore{loans: make(map[primitive.ObjectID]domain.Loan)}
}

func cloneLoan(l domain.Loan) domain.Loan {
	history := make([]domain.PaymentEntry, len(l.PaymentHistory))
	copy(history, l.PaymentHistory)
	l.PaymentHistory = history
	return l
}

func (s *LoanStore) Insert(ctx context.Context, loan *domain.Loan) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if loan.ID.IsZero() {
		loan.ID = primitive.NewObjectID()
	}
	if loan.PaymentHistory == nil {
		loan.PaymentHistory = []domain.PaymentEntry{}
	}
	s.loans[loan.ID] = cloneLoan(*loan)
	return nil
}

func (s *LoanStore) FindByID(ctx context.Context, id primitive.ObjectID) (domain.Loan, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	loan, ok := s.loans[id]
	if !ok {
		return domain.Loan{}, fmt.Errorf("loan %s: %w", id.Hex(), domain.ErrNotFound)
	}
	return cloneLoan(loan), nil
}

func (s *LoanStore) FindByBorrower(ctx context.Context, borrower domain.Party) ([]domain.Loan, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	result := make([]domain.Loan, 0)
	for _, l := range s.loans {
		if l.Borrower == borrower {
			result = append(result, cloneLoan(l))
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].CreatedAt.Before(result[j].CreatedAt) })
	return result, nil
}

// ApplyPayment применяет платеж при совпадении версии и активном статусе
func (s *LoanStore) ApplyPayment(ctx context.Context, id primitive.ObjectID, expectedVersion int64, u domain.LoanPaymentUpdate) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	loan, ok := s.loans[id]
	if !ok || loan.Version != expectedVersion || loan.Status != domain.LoanActive {
		return fmt.Errorf("%w: loan %s changed since version %d", domain.ErrConflict, id.Hex(), expectedVersion)
	}
	s.loans[id] = u.Apply(loan)
	return nil
}

func (s *LoanStore) SetStatus(ctx context.Context, id primitive.ObjectID, status domain.LoanStatus) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	loan, ok := s.loans[id]
	if !ok {
		return fmt.Errorf("loan %s: %w", id.Hex(), domain.ErrNotFound)
	}
	loan.Status = status
	loan.Version++
	s.loans[id] = loan
	return nil
}
