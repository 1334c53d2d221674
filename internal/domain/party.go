package domain

import (
	"fmt"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// PartyKind различает владельцев записей
type PartyKind string

const (
	PartyUser     PartyKind = "user"
	PartyBusiness PartyKind = "business"
)

// Party - владелец или заемщик: вид + идентификатор
type Party struct {
	Kind PartyKind          `json:"type" bson:"type" validate:"required,oneof=user business"`
	ID   primitive.ObjectID `json:"id" bson:"id"`
}

// ParsePartyKind проверяет вид владельца
func ParsePartyKind(s string) (PartyKind, error) {
	switch PartyKind(s) {
	case PartyUser, PartyBusiness:
		return PartyKind(s), nil
	default:
		return "", fmt.Errorf("%w: owner type must be user or business, got %q", ErrValidation, s)
	}
}

// ParseID разбирает hex-идентификатор документа
func ParseID(name, hex string) (primitive.ObjectID, error) {
	id, err := primitive.ObjectIDFromHex(hex)
	if err != nil {
		return primitive.NilObjectID, fmt.Errorf("%w: %s is not a valid id", ErrValidation, name)
	}
	return id, nil
}

// NewParty собирает Party из строковых параметров запроса
func NewParty(kind, id string) (Party, error) {
	k, err := ParsePartyKind(kind)
	if err != nil {
		return Party{}, err
	}
	oid, err := ParseID("owner id", id)
	if err != nil {
		return Party{}, err
	}
	return Party{Kind: k, ID: oid}, nil
}

// Validate проверяет, что вид известен и идентификатор задан
func (p Party) Validate() error {
	if _, err := ParsePartyKind(string(p.Kind)); err != nil {
		return err
	}
	if p.ID.IsZero() {
		return fmt.Errorf("%w: owner id is required", ErrValidation)
	}
	return nil
}
