package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/DevSlashRichie/coinme/internal/calculations"
	"github.com/DevSlashRichie/coinme/internal/domain"
	"github.com/DevSlashRichie/coinme/internal/logger"
	"github.com/DevSlashRichie/coinme/internal/metrics"
	"github.com/DevSlashRichie/coinme/internal/validators"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.opentelemetry.io/otel/attribute"
)

// CreateSecurityInput - параметры новой ценной бумаги. MaturityDate nil означает бессрочную бумагу.
type CreateSecurityInput struct {
	Owner            domain.Party             `json:"owner"`
	Name             string                   `json:"name" validate:"required"`
	Cost             float64                  `json:"cost" validate:"gte=1"`
	Amount           float64                  `json:"amount" validate:"gte=1"`
	InterestRate     float64                  `json:"interestRate" validate:"gte=0,lte=1"`
	StartDate        time.Time                `json:"startDate" validate:"required"`
	MaturityDate     *time.Time               `json:"maturityDate"`
	PaymentFrequency domain.SecurityFrequency `json:"paymentFrequency" validate:"required,oneof=monthly quarterly annually"`
	CreatedBy        primitive.ObjectID       `json:"-"`
}

// SecurityService - операции над ценными бумагами
type SecurityService struct {
	securities SecurityStore
	now        func() time.Time
}

func NewSecurityService(securities SecurityStore) *SecurityService {
	return &SecurityService{securities: securities, now: time.Now}
}

func validateSecurity(in CreateSecurityInput) error {
	if err := in.Owner.Validate(); err != nil {
		return err
	}
	if err := validators.Struct(in); err != nil {
		return err
	}
	if err := validators.CheckRate(in.InterestRate); err != nil {
		return err
	}
	if in.MaturityDate != nil && !in.MaturityDate.After(in.StartDate) {
		return fmt.Errorf("%w: maturity date must be after start date", domain.ErrValidation)
	}
	return requireCreator(in.CreatedBy)
}

// CreateSecurity сохраняет активную ценную бумагу. Все проверки выполняются до записи.
func (s *SecurityService) CreateSecurity(ctx context.Context, in CreateSecurityInput) (sec domain.Security, err error) {
	const op = "create_security"
	ctx, span := startOperation(ctx, op,
		attribute.String("name", in.Name),
		attribute.String("payment_frequency", string(in.PaymentFrequency)),
	)
	defer func() { finishOperation(ctx, span, op, err) }()

	if err = validateSecurity(in); err != nil {
		return domain.Security{}, err
	}

	sec = domain.Security{
		Owner:            in.Owner,
		Name:             in.Name,
		Cost:             in.Cost,
		Amount:           in.Amount,
		InterestRate:     in.InterestRate,
		StartDate:        in.StartDate,
		MaturityDate:     in.MaturityDate,
		PaymentFrequency: in.PaymentFrequency,
		Status:           domain.SecurityActive,
		CreatedBy:        in.CreatedBy,
		CreatedAt:        s.now().UTC(),
	}
	if err = s.securities.Insert(ctx, &sec); err != nil {
		return domain.Security{}, err
	}

	span.SetAttributes(idAttr("security_id", sec.ID))
	logger.CtxInfo(ctx, "Security created", slog.String("security_id", sec.ID.Hex()))
	return sec, nil
}

func (s *SecurityService) GetSecurity(ctx context.Context, id primitive.ObjectID) (sec domain.Security, err error) {
	const op = "get_security"
	ctx, span := startOperation(ctx, op, idAttr("security_id", id))
	defer func() { finishOperation(ctx, span, op, err) }()

	return s.securities.FindByID(ctx, id)
}

func (s *SecurityService) GetOwnerSecurities(ctx context.Context, owner domain.Party) (secs []domain.Security, err error) {
	const op = "get_owner_securities"
	ctx, span := startOperation(ctx, op, partyAttrs("owner", owner)...)
	defer func() { finishOperation(ctx, span, op, err) }()

	if err = owner.Validate(); err != nil {
		return nil, err
	}
	return s.securities.FindByOwner(ctx, owner)
}

func (s *SecurityService) UpdateSecurityStatus(ctx context.Context, id primitive.ObjectID, status string) (err error) {
	const op = "update_security_status"
	ctx, span := startOperation(ctx, op, idAttr("security_id", id), attribute.String("status", status))
	defer func() { finishOperation(ctx, span, op, err) }()

	next, err := domain.ParseSecurityStatus(status)
	if err != nil {
		return err
	}
	return s.securities.SetStatus(ctx, id, next)
}

// CalculateInterestEarnings прогнозирует проценты по бумаге на текущий момент
func (s *SecurityService) CalculateInterestEarnings(ctx context.Context, id primitive.ObjectID) (earnings *domain.InterestEarnings, err error) {
	const op = "calculate_interest_earnings"
	ctx, span := startOperation(ctx, op, idAttr("security_id", id))
	defer func() { finishOperation(ctx, span, op, err) }()

	sec, err := s.securities.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	earnings, err = calculations.ProjectEarnings(sec, s.now().UTC())
	if err != nil {
		return nil, err
	}
	span.SetAttributes(attribute.Float64("total_interest", earnings.TotalInterest))
	return earnings, nil
}

// MatureDueSecurities переводит в matured активные бумаги с наступившим сроком погашения
func (s *SecurityService) MatureDueSecurities(ctx context.Context, now time.Time) (n int64, err error) {
	const op = "mature_due_securities"
	ctx, span := startOperation(ctx, op)
	defer func() { finishOperation(ctx, span, op, err) }()

	n, err = s.securities.MarkMatured(ctx, now)
	if err != nil {
		return 0, err
	}
	span.SetAttributes(attribute.Int64("matured", n))
	if n > 0 {
		metrics.SecuritiesMatured.Add(float64(n))
		logger.CtxInfo(ctx, "Securities matured", slog.Int64("count", n))
	}
	return n, nil
}
