package domain

import (
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// SecurityFrequency - периодичность выплаты процентов
type SecurityFrequency string

const (
	SecurityMonthly   SecurityFrequency = "monthly"
	SecurityQuarterly SecurityFrequency = "quarterly"
	SecurityAnnually  SecurityFrequency = "annually"
)

// SecurityStatus - статус ценной бумаги
type SecurityStatus string

const (
	SecurityActive    SecurityStatus = "active"
	SecurityMatured   SecurityStatus = "matured"
	SecurityCancelled SecurityStatus = "cancelled"
)

// Security - процентная ценная бумага инвестора
type Security struct {
	ID               primitive.ObjectID `json:"_id" bson:"_id,omitempty"`
	Owner            Party              `json:"owner" bson:"owner"`
	Name             string             `json:"name" bson:"name"`
	Cost             float64            `json:"cost" bson:"cost"`
	Amount           float64            `json:"amount" bson:"amount"`
	InterestRate     float64            `json:"interestRate" bson:"interestRate"`
	StartDate        time.Time          `json:"startDate" bson:"startDate"`
	MaturityDate     *time.Time         `json:"maturityDate" bson:"maturityDate"`
	PaymentFrequency SecurityFrequency  `json:"paymentFrequency" bson:"paymentFrequency"`
	Status           SecurityStatus     `json:"status" bson:"status"`
	CreatedBy        primitive.ObjectID `json:"createdBy" bson:"createdBy"`
	CreatedAt        time.Time          `json:"createdAt" bson:"createdAt"`
}

// InterestEarnings - прогноз начисления процентов
type InterestEarnings struct {
	TotalInterest     float64    `json:"totalInterest"`
	NextPaymentDate   *time.Time `json:"nextPaymentDate"`
	RemainingPayments *int       `json:"remainingPayments"`
}

// ParseSecurityFrequency проверяет периодичность выплат
func ParseSecurityFrequency(s string) (SecurityFrequency, error) {
	switch SecurityFrequency(s) {
	case SecurityMonthly, SecurityQuarterly, SecurityAnnually:
		return SecurityFrequency(s), nil
	default:
		return "", fmt.Errorf("%w: payment frequency must be monthly, quarterly or annually, got %q", ErrValidation, s)
	}
}

// ParseSecurityStatus проверяет статус ценной бумаги
func ParseSecurityStatus(s string) (SecurityStatus, error) {
	switch SecurityStatus(s) {
	case SecurityActive, SecurityMatured, SecurityCancelled:
		return SecurityStatus(s), nil
	default:
		return "", fmt.Errorf("%w: security status must be active, matured or cancelled, got %q", ErrValidation, s)
	}
}
