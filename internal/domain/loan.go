package domain

import (
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// LoanFrequency - периодичность платежей по кредиту
type LoanFrequency string

const (
	LoanWeekly   LoanFrequency = "weekly"
	LoanBiweekly LoanFrequency = "biweekly"
	LoanMonthly  LoanFrequency = "monthly"
)

// LoanStatus - статус кредита
type LoanStatus string

const (
	LoanPending   LoanStatus = "pending"
	LoanActive    LoanStatus = "active"
	LoanPaid      LoanStatus = "paid"
	LoanDefaulted LoanStatus = "defaulted"
	LoanRejected  LoanStatus = "rejected"
)

// PaymentType - классификация записи истории платежей
type PaymentType string

const (
	PaymentPrincipal PaymentType = "principal"
	PaymentInterest  PaymentType = "interest"
)

// PaymentEntry - одна запись истории платежей
type PaymentEntry struct {
	Date   time.Time   `json:"date" bson:"date"`
	Amount float64     `json:"amount" bson:"amount"`
	Type   PaymentType `json:"type" bson:"type"`
}

// Loan - кредит заемщика
type Loan struct {
	ID               primitive.ObjectID `json:"_id" bson:"_id,omitempty"`
	Borrower         Party              `json:"borrower" bson:"borrower"`
	PrincipalAmount  float64            `json:"principalAmount" bson:"principalAmount"`
	InterestRate     float64            `json:"interestRate" bson:"interestRate"`
	TermMonths       int                `json:"termMonths" bson:"termMonths"`
	StartDate        time.Time          `json:"startDate" bson:"startDate"`
	EndDate          time.Time          `json:"endDate" bson:"endDate"`
	PaymentFrequency LoanFrequency      `json:"paymentFrequency" bson:"paymentFrequency"`
	PaymentAmount    float64            `json:"paymentAmount" bson:"paymentAmount"`
	Status           LoanStatus         `json:"status" bson:"status"`
	RemainingBalance float64            `json:"remainingBalance" bson:"remainingBalance"`
	NextPaymentDue   time.Time          `json:"nextPaymentDue" bson:"nextPaymentDue"`
	PaymentHistory   []PaymentEntry     `json:"paymentHistory" bson:"paymentHistory"`
	CreatedBy        primitive.ObjectID `json:"createdBy" bson:"createdBy"`
	CreatedAt        time.Time          `json:"createdAt" bson:"createdAt"`
	Version          int64              `json:"version" bson:"version"`
}

// ParseLoanFrequency проверяет периодичность кредита
func ParseLoanFrequency(s string) (LoanFrequency, error) {
	switch LoanFrequency(s) {
	case LoanWeekly, LoanBiweekly, LoanMonthly:
		return LoanFrequency(s), nil
	default:
		return "", fmt.Errorf("%w: payment frequency must be weekly, biweekly or monthly, got %q", ErrValidation, s)
	}
}

// ParseLoanStatusUpdate проверяет статус для административного перехода.
// pending не является допустимой целью.
func ParseLoanStatusUpdate(s string) (LoanStatus, error) {
	switch LoanStatus(s) {
	case LoanActive, LoanPaid, LoanDefaulted, LoanRejected:
		return LoanStatus(s), nil
	default:
		return "", fmt.Errorf("%w: loan status must be active, paid, defaulted or rejected, got %q", ErrValidation, s)
	}
}

// LoanPaymentUpdate - изменения, которые платеж записывает одним условным обновлением
type LoanPaymentUpdate struct {
	RemainingBalance float64
	Status           LoanStatus
	NextPaymentDue   time.Time
	Entry            PaymentEntry
}

// Apply возвращает копию кредита с примененным платежом
func (u LoanPaymentUpdate) Apply(l Loan) Loan {
	l.RemainingBalance = u.RemainingBalance
	l.Status = u.Status
	l.NextPaymentDue = u.NextPaymentDue
	history := make([]PaymentEntry, len(l.PaymentHistory), len(l.PaymentHistory)+1)
	copy(history, l.PaymentHistory)
	l.PaymentHistory = append(history, u.Entry)
	l.Version++
	return l
}
