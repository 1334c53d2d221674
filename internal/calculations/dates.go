package calculations

import (
	"fmt"
	"time"

	"github.com/DevSlashRichie/coinme/internal/domain"
)

// AddMonths прибавляет календарные месяцы, прижимая день к последнему дню
// целевого месяца: 31 января + 1 месяц = 28 (29) февраля.
func AddMonths(t time.Time, months int) time.Time {
	y, m, d := t.Date()
	hh, mm, ss := t.Clock()
	first := time.Date(y, m+time.Month(months), 1, hh, mm, ss, t.Nanosecond(), t.Location())
	if last := daysIn(first.Year(), first.Month()); d > last {
		d = last
	}
	return time.Date(first.Year(), first.Month(), d, hh, mm, ss, t.Nanosecond(), t.Location())
}

func daysIn(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// AdvanceLoanDate сдвигает дату на один период платежа по кредиту
func AdvanceLoanDate(t time.Time, f domain.LoanFrequency) (time.Time, error) {
	switch f {
	case domain.LoanWeekly:
		return t.AddDate(0, 0, 7), nil
	case domain.LoanBiweekly:
		return t.AddDate(0, 0, 14), nil
	case domain.LoanMonthly:
		return AddMonths(t, 1), nil
	default:
		return time.Time{}, fmt.Errorf("%w: unknown loan payment frequency %q", domain.ErrValidation, f)
	}
}

// SecurityIntervalMonths возвращает длину периода выплат в месяцах
func SecurityIntervalMonths(f domain.SecurityFrequency) (int, error) {
	switch f {
	case domain.SecurityMonthly:
		return 1, nil
	case domain.SecurityQuarterly:
		return 3, nil
	case domain.SecurityAnnually:
		return 12, nil
	default:
		return 0, fmt.Errorf("%w: unknown security payment frequency %q", domain.ErrValidation, f)
	}
}

// AdvanceSecurityDate сдвигает дату на один период выплат по ценной бумаге
func AdvanceSecurityDate(t time.Time, f domain.SecurityFrequency) (time.Time, error) {
	k, err := SecurityIntervalMonths(f)
	if err != nil {
		return time.Time{}, err
	}
	return AddMonths(t, k), nil
}

// PaymentsPerYear возвращает число выплат в год
func PaymentsPerYear(f domain.SecurityFrequency) (int, error) {
	k, err := SecurityIntervalMonths(f)
	if err != nil {
		return 0, err
	}
	return 12 / k, nil
}
