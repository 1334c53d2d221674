package store

import (
	"context"
	"fmt"
	"time"

	"github.com/DevSlashRichie/coinme/internal/domain"
	"github.com/DevSlashRichie/coinme/internal/logger"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// SecurityStore хранит ценные бумаги в коллекции securities
type SecurityStore struct {
	repo *MongoRepository[domain.Security]
}

func NewSecurityStore(client *MongoClient) *SecurityStore {
	return NewSecurityStoreWithCollection(client.Database.Collection(SecuritiesCollection))
}

func NewSecurityStoreWithCollection(collection Collection) *SecurityStore {
	return &SecurityStore{repo: NewMongoRepository[domain.Security](collection)}
}

func (s *SecurityStore) Insert(ctx context.Context, security *domain.Security) error {
	id, err := s.repo.Create(ctx, *security)
	if err != nil {
		logger.CtxError(ctx, "Failed to insert security", err)
		return err
	}
	security.ID = id
	return nil
}

func (s *SecurityStore) FindByID(ctx context.Context, id primitive.ObjectID) (domain.Security, error) {
	security, err := s.repo.FindOne(ctx, bson.M{"_id": id})
	if err != nil {
		return domain.Security{}, fmt.Errorf("security %s: %w", id.Hex(), err)
	}
	return security, nil
}

func (s *SecurityStore) FindByOwner(ctx context.Context, owner domain.Party) ([]domain.Security, error) {
	return s.repo.Find(ctx, partyFilter("owner", owner), byCreatedAt())
}

func (s *SecurityStore) SetStatus(ctx context.Context, id primitive.ObjectID, status domain.SecurityStatus) error {
	matched, err := s.repo.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M{"status": status}})
	if err != nil {
		return err
	}
	if matched == 0 {
		return fmt.Errorf("security %s: %w", id.Hex(), domain.ErrNotFound)
	}
	return nil
}

// MarkMatured переводит в matured активные бумаги со сроком погашения не позже now
func (s *SecurityStore) MarkMatured(ctx context.Context, now time.Time) (int64, error) {
	filter := bson.M{
		"status":       domain.SecurityActive,
		"maturityDate": bson.M{"$ne": nil, "$lte": now},
	}
	return s.repo.UpdateMany(ctx, filter, bson.M{"$set": bson.M{"status": domain.SecurityMatured}})
}
