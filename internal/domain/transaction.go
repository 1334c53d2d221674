package domain

import (
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// TransactionType - направление движения денег
type TransactionType string

const (
	TransactionIncome     TransactionType = "income"
	TransactionWithdrawal TransactionType = "withdrawal"
)

// Transaction - неизменяемая запись движения денег
type Transaction struct {
	ID          primitive.ObjectID `json:"_id" bson:"_id,omitempty"`
	Owner       Party              `json:"owner" bson:"owner"`
	Amount      float64            `json:"amount" bson:"amount"`
	Description string             `json:"description" bson:"description"`
	Category    string             `json:"category" bson:"category"`
	Type        TransactionType    `json:"type" bson:"type"`
	CreatedBy   primitive.ObjectID `json:"createdBy" bson:"createdBy"`
	CreatedAt   time.Time          `json:"createdAt" bson:"createdAt"`
}

// ParseTransactionType проверяет тип транзакции
func ParseTransactionType(s string) (TransactionType, error) {
	switch TransactionType(s) {
	case TransactionIncome, TransactionWithdrawal:
		return TransactionType(s), nil
	default:
		return "", fmt.Errorf("%w: transaction type must be income or withdrawal, got %q", ErrValidation, s)
	}
}
