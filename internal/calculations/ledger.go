package calculations

import (
	"fmt"

	"github.com/DevSlashRichie/coinme/internal/domain"
	"github.com/shopspring/decimal"
)

// Accumulate добавляет транзакцию к балансу: доход со знаком плюс, списание со знаком минус
func Accumulate(balance decimal.Decimal, tx domain.Transaction) (decimal.Decimal, error) {
	amount := decimal.NewFromFloat(tx.Amount)
	switch tx.Type {
	case domain.TransactionIncome:
		return balance.Add(amount), nil
	case domain.TransactionWithdrawal:
		return balance.Sub(amount), nil
	default:
		return balance, fmt.Errorf("%w: unknown transaction type %q", domain.ErrValidation, tx.Type)
	}
}

// Balance сворачивает транзакции в баланс. Сумма в decimal не зависит от порядка.
func Balance(txs []domain.Transaction) (float64, error) {
	total := decimal.Zero
	for _, tx := range txs {
		var err error
		if total, err = Accumulate(total, tx); err != nil {
			return 0, err
		}
	}
	return total.InexactFloat64(), nil
}
