package calculations

import (
	"errors"
	"testing"

	"github.com/DevSlashRichie/coinme/internal/domain"
)

func tx(typ domain.TransactionType, amount float64) domain.Transaction {
	return domain.Transaction{Type: typ, Amount: amount}
}

func TestBalance(t *testing.T) {
	tests := []struct {
		name string
		txs  []domain.Transaction
		want float64
	}{
		{"пустой список", nil, 0},
		{"доходы и списания", []domain.Transaction{
			tx(domain.TransactionIncome, 500),
			tx(domain.TransactionWithdrawal, 200),
			tx(domain.TransactionIncome, 100),
		}, 400},
		{"отрицательный баланс", []domain.Transaction{
			tx(domain.TransactionWithdrawal, 75.5),
		}, -75.5},
		{"дробные суммы", []domain.Transaction{
			tx(domain.TransactionIncome, 0.1),
			tx(domain.TransactionIncome, 0.2),
			tx(domain.TransactionWithdrawal, 0.3),
		}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Balance(tt.txs)
			if err != nil {
				t.Fatalf("Balance() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("Balance() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestBalanceOrderIndependent(t *testing.T) {
	txs := []domain.Transaction{
		tx(domain.TransactionIncome, 0.1),
		tx(domain.TransactionWithdrawal, 33.33),
		tx(domain.TransactionIncome, 1e6),
		tx(domain.TransactionIncome, 0.7),
		tx(domain.TransactionWithdrawal, 0.01),
	}

	want, err := Balance(txs)
	if err != nil {
		t.Fatalf("Balance() error = %v", err)
	}

	// все перестановки по алгоритму Хипа
	var permute func(k int)
	permute = func(k int) {
		if k == 1 {
			got, err := Balance(txs)
			if err != nil {
				t.Fatalf("Balance() error = %v", err)
			}
			if got != want {
				t.Fatalf("Balance() = %v for %v, want %v", got, txs, want)
			}
			return
		}
		for i := 0; i < k; i++ {
			permute(k - 1)
			if k%2 == 0 {
				txs[i], txs[k-1] = txs[k-1], txs[i]
			} else {
				txs[0], txs[k-1] = txs[k-1], txs[0]
			}
		}
	}
	permute(len(txs))
}

func TestBalanceUnknownType(t *testing.T) {
	_, err := Balance([]domain.Transaction{tx("refund", 10)})
	if !errors.Is(err, domain.ErrValidation) {
		t.Errorf("expected ErrValidation, got %v", err)
	}
}
