package calculations

import (
	"math"
	"time"

	"github.com/DevSlashRichie/coinme/internal/domain"
	"github.com/DevSlashRichie/coinme/pkg/utils"
)

// dayCountYear - год по конвенции actual/365
const dayCountYear = 365 * 24 * time.Hour

func yearsBetween(from, to time.Time) float64 {
	return float64(to.Sub(from)) / float64(dayCountYear)
}

// ProjectEarnings рассчитывает прогноз процентов по ценной бумаге.
// Для бессрочной бумаги расчет идет только до now.
func ProjectEarnings(s domain.Security, now time.Time) (*domain.InterestEarnings, error) {
	k, err := SecurityIntervalMonths(s.PaymentFrequency)
	if err != nil {
		return nil, err
	}
	perYear, err := PaymentsPerYear(s.PaymentFrequency)
	if err != nil {
		return nil, err
	}

	upper := now
	if s.MaturityDate != nil {
		upper = *s.MaturityDate
	}

	principalAmount := s.Cost * s.Amount
	totalInterest := utils.Round(principalAmount * s.InterestRate * yearsBetween(s.StartDate, upper))

	// n-я дата считается от даты начала, чтобы прижатие дня не накапливалось
	next := s.StartDate
	for n := 1; !next.After(now); n++ {
		next = AddMonths(s.StartDate, n*k)
	}
	var nextPaymentDate *time.Time
	if next.Before(upper) {
		nextPaymentDate = &next
	}

	var remainingPayments *int
	if s.MaturityDate != nil {
		remaining := int(math.Ceil(yearsBetween(now, *s.MaturityDate) * float64(perYear)))
		if remaining < 0 {
			remaining = 0
		}
		remainingPayments = &remaining
	}

	return &domain.InterestEarnings{
		TotalInterest:     totalInterest,
		NextPaymentDate:   nextPaymentDate,
		RemainingPayments: remainingPayments,
	}, nil
}
