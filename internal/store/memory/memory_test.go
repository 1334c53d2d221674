package memory

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/DevSlashRichie/coinme/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestLoanStoreVersionPrecondition(t *testing.T) {
	ctx := context.Background()
	s := NewLoanStore()
	loan := domain.Loan{Status: domain.LoanActive, RemainingBalance: 1000}
	require.NoError(t, s.Insert(ctx, &loan))
	require.False(t, loan.ID.IsZero())

	u := domain.LoanPaymentUpdate{RemainingBalance: 900, Status: domain.LoanActive, Entry: domain.PaymentEntry{Amount: 100}}
	require.NoError(t, s.ApplyPayment(ctx, loan.ID, 0, u))

	// устаревшая версия
	assert.ErrorIs(t, s.ApplyPayment(ctx, loan.ID, 0, u), domain.ErrConflict)

	got, err := s.FindByID(ctx, loan.ID)
	require.NoError(t, err)
	assert.Equal(t, 900.0, got.RemainingBalance)
	assert.Equal(t, int64(1), got.Version)
	assert.Len(t, got.PaymentHistory, 1)

	// статус не active
	require.NoError(t, s.SetStatus(ctx, loan.ID, domain.LoanDefaulted))
	assert.ErrorIs(t, s.ApplyPayment(ctx, loan.ID, 2, u), domain.ErrConflict)
}

func TestLoanStoreReturnsCopies(t *testing.T) {
	ctx := context.Background()
	s := NewLoanStore()
	loan := domain.Loan{Status: domain.LoanActive, PaymentHistory: []domain.PaymentEntry{{Amount: 1}}}
	require.NoError(t, s.Insert(ctx, &loan))

	got, err := s.FindByID(ctx, loan.ID)
	require.NoError(t, err)
	got.PaymentHistory[0].Amount = 999

	again, err := s.FindByID(ctx, loan.ID)
	require.NoError(t, err)
	assert.Equal(t, 1.0, again.PaymentHistory[0].Amount)
}

func TestLoanStoreConcurrentCompareAndSwap(t *testing.T) {
	ctx := context.Background()
	s := NewLoanStore()
	loan := domain.Loan{Status: domain.LoanActive}
	require.NoError(t, s.Insert(ctx, &loan))

	var wg sync.WaitGroup
	var mu sync.Mutex
	wins := 0
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			err := s.ApplyPayment(ctx, loan.ID, 0, domain.LoanPaymentUpdate{Status: domain.LoanActive})
			if err == nil {
				mu.Lock()
				wins++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, wins)
}

func TestLoanStoreNotFound(t *testing.T) {
	s := NewLoanStore()
	_, err := s.FindByID(context.Background(), primitive.NewObjectID())
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.ErrorIs(t, s.SetStatus(context.Background(), primitive.NewObjectID(), domain.LoanPaid), domain.ErrNotFound)
}

func TestSecurityStoreMarkMatured(t *testing.T) {
	ctx := context.Background()
	s := NewSecurityStore()
	now := time.Date(2025, time.January, 1, 0, 0, 0, 0, time.UTC)
	past := now.AddDate(0, 0, -1)
	future := now.AddDate(0, 1, 0)

	due := domain.Security{Status: domain.SecurityActive, MaturityDate: &past}
	later := domain.Security{Status: domain.SecurityActive, MaturityDate: &future}
	open := domain.Security{Status: domain.SecurityActive}
	cancelled := domain.Security{Status: domain.SecurityCancelled, MaturityDate: &past}
	for _, sec := range []*domain.Security{&due, &later, &open, &cancelled} {
		require.NoError(t, s.Insert(ctx, sec))
	}

	n, err := s.MarkMatured(ctx, now)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	got, _ := s.FindByID(ctx, due.ID)
	assert.Equal(t, domain.SecurityMatured, got.Status)
	got, _ = s.FindByID(ctx, cancelled.ID)
	assert.Equal(t, domain.SecurityCancelled, got.Status)
}

func TestSecurityStoreFindByOwner(t *testing.T) {
	ctx := context.Background()
	s := NewSecurityStore()
	owner := domain.Party{Kind: domain.PartyUser, ID: primitive.NewObjectID()}
	other := domain.Party{Kind: domain.PartyBusiness, ID: owner.ID}

	require.NoError(t, s.Insert(ctx, &domain.Security{Owner: owner, Name: "a"}))
	require.NoError(t, s.Insert(ctx, &domain.Security{Owner: other, Name: "b"}))

	got, err := s.FindByOwner(ctx, owner)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "a", got[0].Name)
}

func TestTransactionStoreQueries(t *testing.T) {
	ctx := context.Background()
	s := NewTransactionStore()
	owner := domain.Party{Kind: domain.PartyBusiness, ID: primitive.NewObjectID()}
	creator := primitive.NewObjectID()

	first := domain.Transaction{Owner: owner, Amount: 500, Type: domain.TransactionIncome, CreatedBy: creator}
	second := domain.Transaction{Owner: owner, Amount: 200, Type: domain.TransactionWithdrawal}
	require.NoError(t, s.Insert(ctx, &first))
	require.NoError(t, s.Insert(ctx, &second))

	byOwner, err := s.FindByOwner(ctx, owner)
	require.NoError(t, err)
	assert.Len(t, byOwner, 2)

	byCreator, err := s.FindByCreator(ctx, creator)
	require.NoError(t, err)
	require.Len(t, byCreator, 1)
	assert.Equal(t, first.ID, byCreator[0].ID)

	got, err := s.FindByID(ctx, second.ID)
	require.NoError(t, err)
	assert.Equal(t, 200.0, got.Amount)

	_, err = s.FindByID(ctx, primitive.NewObjectID())
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
