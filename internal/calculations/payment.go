package calculations

import (
	"fmt"
	"math"
	"time"

	"github.com/DevSlashRichie/coinme/internal/domain"
	"github.com/DevSlashRichie/coinme/pkg/utils"
)

// AllocatePayment делит платеж на проценты за месяц и основной долг.
// Если проценты превышают платеж, доля основного долга прижимается к нулю
// и весь платеж учитывается как проценты.
func AllocatePayment(remainingBalance, annualRate, amount float64) PaymentAllocation {
	monthlyInterest := remainingBalance * (annualRate / 12.0)
	principal := math.Min(amount-monthlyInterest, remainingBalance)
	principal = utils.ClampZero(principal)

	return PaymentAllocation{
		MonthlyInterest:  monthlyInterest,
		PrincipalPortion: principal,
		InterestPortion:  amount - principal,
	}
}

// ApplyPayment проверяет, что кредит принимает платеж, и рассчитывает новое
// состояние: остаток, статус, дату следующего платежа и запись истории.
// Сам кредит не меняется.
func ApplyPayment(loan domain.Loan, amount float64, at time.Time) (domain.LoanPaymentUpdate, PaymentAllocation, error) {
	if loan.Status != domain.LoanActive {
		return domain.LoanPaymentUpdate{}, PaymentAllocation{},
			fmt.Errorf("%w: loan is %s, only active loans accept payments", domain.ErrInvalidState, loan.Status)
	}
	if !utils.IsFinite(amount) || amount <= 0 {
		return domain.LoanPaymentUpdate{}, PaymentAllocation{},
			fmt.Errorf("%w: payment amount must be positive", domain.ErrInvalidAmount)
	}
	if amount > loan.RemainingBalance {
		return domain.LoanPaymentUpdate{}, PaymentAllocation{},
			fmt.Errorf("%w: payment amount %.2f exceeds remaining balance %.2f",
				domain.ErrInvalidAmount, amount, loan.RemainingBalance)
	}

	alloc := AllocatePayment(loan.RemainingBalance, loan.InterestRate, amount)

	newBalance := utils.ClampZero(utils.Round(loan.RemainingBalance - alloc.PrincipalPortion))

	entryType := domain.PaymentInterest
	if alloc.PrincipalPortion > alloc.InterestPortion {
		entryType = domain.PaymentPrincipal
	}

	nextDue, err := AdvanceLoanDate(loan.NextPaymentDue, loan.PaymentFrequency)
	if err != nil {
		return domain.LoanPaymentUpdate{}, PaymentAllocation{}, err
	}

	status := domain.LoanActive
	if newBalance == 0 {
		status = domain.LoanPaid
	}

	return domain.LoanPaymentUpdate{
		RemainingBalance: newBalance,
		Status:           status,
		NextPaymentDue:   nextDue,
		Entry: domain.PaymentEntry{
			Date:   at,
			Amount: utils.Round(amount),
			Type:   entryType,
		},
	}, alloc, nil
}
