package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/DevSlashRichie/coinme/internal/domain"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type SecurityStore struct {
	mu         sync.Mutex
	securities map[primitive.ObjectID]domain.Security
}

func NewSecurityStore() *SecurityStore {
	return &SecurityStore{securities: make(map[primitive.ObjectID]domain.Security)}
}

func cloneSecurity(s domain.Security) domain.Security {
	if s.MaturityDate != nil {
		m := *s.MaturityDate
		s.MaturityDate = &m
	}
	return s
}

func (s *SecurityStore) Insert(ctx context.Context, security *domain.Security) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if security.ID.IsZero() {
		security.ID = primitive.NewObjectID()
	}
	s.securities[security.ID] = cloneSecurity(*security)
	return nil
}

func (s *SecurityStore) FindByID(ctx context.Context, id primitive.ObjectID) (domain.Security, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sec, ok := s.securities[id]
	if !ok {
		return domain.Security{}, fmt.Errorf("security %s: %w", id.Hex(), domain.ErrNotFound)
	}
	return cloneSecurity(sec), nil
}

func (s *SecurityStore) FindByOwner(ctx context.Context, owner domain.Party) ([]domain.Security, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	result := make([]domain.Security, 0)
	for _, sec := range s.securities {
		if sec.Owner == owner {
			result = append(result, cloneSecurity(sec))
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].CreatedAt.Before(result[j].CreatedAt) })
	return result, nil
}

func (s *SecurityStore) SetStatus(ctx context.Context, id primitive.ObjectID, status domain.SecurityStatus) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	sec, ok := s.securities[id]
	if !ok {
		return fmt.Errorf("security %s: %w", id.Hex(), domain.ErrNotFound)
	}
	sec.Status = status
	s.securities[id] = sec
	return nil
}

func (s *SecurityStore) MarkMatured(ctx context.Context, now time.Time) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var n int64
	for id, sec := range s.securities {
		if sec.Status == domain.SecurityActive && sec.MaturityDate != nil && !sec.MaturityDate.After(now) {
			sec.Status = domain.SecurityMatured
			s.securities[id] = sec
			n++
		}
	}
	return n, nil
}
