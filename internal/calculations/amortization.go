package calculations

import (
	"fmt"
	"math"

	"github.com/DevSlashRichie/coinme/internal/domain"
	"github.com/DevSlashRichie/coinme/pkg/utils"
)

// PaymentAmount рассчитывает фиксированный аннуитетный платеж, округленный до целых
func PaymentAmount(principal, annualRate float64, termMonths int) (float64, error) {
	if !utils.IsFinite(principal) || principal <= 0 {
		return 0, fmt.Errorf("%w: principal must be positive", domain.ErrValidation)
	}
	if !utils.IsFinite(annualRate) || annualRate < 0 || annualRate > 1 {
		return 0, fmt.Errorf("%w: interest rate must be within [0; 1]", domain.ErrValidation)
	}
	if termMonths <= 0 {
		return 0, fmt.Errorf("%w: term must be a positive number of months", domain.ErrValidation)
	}

	r := annualRate / 12.0
	n := float64(termMonths)

	// при нулевой ставке общая формула делит на ноль
	if r == 0.0 {
		return utils.Round(principal / n), nil
	}

	factor := math.Pow(1.0+r, n)
	return utils.Round(principal * r * factor / (factor - 1.0)), nil
}

// Schedule строит прогнозный график погашения от текущего остатка кредита.
// Последняя строка забирает остаток, чтобы долг закрылся в ноль.
func Schedule(loan domain.Loan) (*ScheduleResult, error) {
	r := loan.InterestRate / 12.0
	payment := loan.PaymentAmount
	remaining := loan.RemainingBalance
	n := loan.TermMonths

	schedule := make([]ScheduleEntry, 0, n)
	cumI := 0.0
	cumP := 0.0
	totalPaid := 0.0
	due := loan.NextPaymentDue

	for m := 1; m <= n && remaining > 0; m++ {
		interest := utils.Round2(remaining * r)
		principalComponent := payment - interest
		monthly := payment

		if m == n || principalComponent >= remaining {
			principalComponent = remaining
			monthly = principalComponent + interest
		}
		if principalComponent <= 0 {
			return nil, fmt.Errorf("%w: payment %.2f does not cover period interest %.2f",
				domain.ErrInvalidAmount, payment, interest)
		}

		principalComponent = utils.Round2(principalComponent)
		monthly = utils.Round2(monthly)

		remaining = utils.ClampZero(utils.Round2(remaining - principalComponent))
		cumI = utils.Round2(cumI + interest)
		cumP = utils.Round2(cumP + principalComponent)
		totalPaid = utils.Round2(totalPaid + monthly)

		schedule = append(schedule, ScheduleEntry{
			Period:              m,
			DueDate:             due,
			Payment:             monthly,
			Interest:            interest,
			PrincipalComponent:  principalComponent,
			RemainingPrincipal:  remaining,
			CumulativeInterest:  cumI,
			CumulativePrincipal: cumP,
		})

		next, err := AdvanceLoanDate(due, loan.PaymentFrequency)
		if err != nil {
			return nil, err
		}
		due = next
	}

	summary := LoanSummary{
		RemainingBalance: utils.Round2(loan.RemainingBalance),
		InterestRate:     loan.InterestRate,
		Periods:          len(schedule),
		PaymentAmount:    payment,
		TotalPaid:        totalPaid,
		TotalInterest:    cumI,
	}

	return &ScheduleResult{
		Summary:  summary,
		Schedule: schedule,
	}, nil
}
