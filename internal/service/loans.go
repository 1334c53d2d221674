package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/DevSlashRichie/coinme/internal/calculations"
	"github.com/DevSlashRichie/coinme/internal/config"
	"github.com/DevSlashRichie/coinme/internal/domain"
	"github.com/DevSlashRichie/coinme/internal/logger"
	"github.com/DevSlashRichie/coinme/internal/metrics"
	"github.com/DevSlashRichie/coinme/internal/validators"
	"github.com/DevSlashRichie/coinme/pkg/utils"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.opentelemetry.io/otel/attribute"
)

// CreateLoanInput - параметры нового кредита
type CreateLoanInput struct {
	Borrower         domain.Party         `json:"borrower"`
	PrincipalAmount  float64              `json:"principalAmount" validate:"gt=0"`
	InterestRate     float64              `json:"interestRate" validate:"gte=0,lte=1"`
	TermMonths       int                  `json:"termMonths" validate:"gt=0"`
	StartDate        time.Time            `json:"startDate" validate:"required"`
	PaymentFrequency domain.LoanFrequency `json:"paymentFrequency" validate:"required,oneof=weekly biweekly monthly"`
	CreatedBy        primitive.ObjectID   `json:"-"`
}

// LoanService - операции над кредитами
type LoanService struct {
	cfg   *config.Config
	loans LoanStore
	now   func() time.Time
}

func NewLoanService(cfg *config.Config, loans LoanStore) *LoanService {
	return &LoanService{cfg: cfg, loans: loans, now: time.Now}
}

func requireCreator(id primitive.ObjectID) error {
	if id.IsZero() {
		return fmt.Errorf("%w: creator id is required", domain.ErrValidation)
	}
	return nil
}

func (s *LoanService) validateCreate(in CreateLoanInput) error {
	if err := in.Borrower.Validate(); err != nil {
		return err
	}
	if err := validators.Struct(in); err != nil {
		return err
	}
	if err := validators.CheckPrincipal(s.cfg, in.PrincipalAmount); err != nil {
		return err
	}
	if err := validators.CheckRate(in.InterestRate); err != nil {
		return err
	}
	if err := validators.CheckTermMonths(s.cfg, in.TermMonths); err != nil {
		return err
	}
	return requireCreator(in.CreatedBy)
}

// CreateLoan рассчитывает фиксированный платеж и сохраняет активный кредит
func (s *LoanService) CreateLoan(ctx context.Context, in CreateLoanInput) (loan domain.Loan, err error) {
	const op = "create_loan"
	ctx, span := startOperation(ctx, op,
		attribute.Float64("principal_amount", in.PrincipalAmount),
		attribute.Float64("interest_rate", in.InterestRate),
		attribute.Int("term_months", in.TermMonths),
	)
	defer func() { finishOperation(ctx, span, op, err) }()

	if err = s.validateCreate(in); err != nil {
		return domain.Loan{}, err
	}

	payment, err := calculations.PaymentAmount(in.PrincipalAmount, in.InterestRate, in.TermMonths)
	if err != nil {
		return domain.Loan{}, err
	}
	nextDue, err := calculations.AdvanceLoanDate(in.StartDate, in.PaymentFrequency)
	if err != nil {
		return domain.Loan{}, err
	}

	loan = domain.Loan{
		Borrower:         in.Borrower,
		PrincipalAmount:  in.PrincipalAmount,
		InterestRate:     in.InterestRate,
		TermMonths:       in.TermMonths,
		StartDate:        in.StartDate,
		EndDate:          calculations.AddMonths(in.StartDate, in.TermMonths),
		PaymentFrequency: in.PaymentFrequency,
		PaymentAmount:    payment,
		Status:           domain.LoanActive,
		RemainingBalance: utils.Round(in.PrincipalAmount),
		NextPaymentDue:   nextDue,
		PaymentHistory:   []domain.PaymentEntry{},
		CreatedBy:        in.CreatedBy,
		CreatedAt:        s.now().UTC(),
	}
	if err = s.loans.Insert(ctx, &loan); err != nil {
		return domain.Loan{}, err
	}

	span.SetAttributes(idAttr("loan_id", loan.ID), attribute.Float64("payment_amount", payment))
	logger.CtxInfo(ctx, "Loan created",
		slog.String("loan_id", loan.ID.Hex()),
		slog.Float64("payment_amount", payment),
	)
	return loan, nil
}

func (s *LoanService) GetLoan(ctx context.Context, id primitive.ObjectID) (loan domain.Loan, err error) {
	const op = "get_loan"
	ctx, span := startOperation(ctx, op, idAttr("loan_id", id))
	defer func() { finishOperation(ctx, span, op, err) }()

	return s.loans.FindByID(ctx, id)
}

func (s *LoanService) GetBorrowerLoans(ctx context.Context, borrower domain.Party) (loans []domain.Loan, err error) {
	const op = "get_borrower_loans"
	ctx, span := startOperation(ctx, op, partyAttrs("borrower", borrower)...)
	defer func() { finishOperation(ctx, span, op, err) }()

	if err = borrower.Validate(); err != nil {
		return nil, err
	}
	return s.loans.FindByBorrower(ctx, borrower)
}

// MakePayment применяет платеж к кредиту. Цикл чтение-расчет-запись повторяется
// при конкурентном изменении кредита.
func (s *LoanService) MakePayment(ctx context.Context, id primitive.ObjectID, amount float64) (err error) {
	const op = "make_payment"
	ctx, span := startOperation(ctx, op, idAttr("loan_id", id), attribute.Float64("amount", amount))
	defer func() { finishOperation(ctx, span, op, err) }()

	var applied domain.LoanPaymentUpdate
	var alloc calculations.PaymentAllocation
	attempts := 0

	err = retryOnConflict(ctx, s.cfg.PaymentMaxRetries, s.cfg.PaymentRetryInterval, func(attempt int) error {
		attempts = attempt
		loan, err := s.loans.FindByID(ctx, id)
		if err != nil {
			return err
		}
		update, a, err := calculations.ApplyPayment(loan, amount, s.now().UTC())
		if err != nil {
			return err
		}
		if err := s.loans.ApplyPayment(ctx, id, loan.Version, update); err != nil {
			if errors.Is(err, domain.ErrConflict) {
				metrics.PaymentConflicts.Inc()
				logger.CtxDebug(ctx, "Payment conflict, retrying",
					slog.String("loan_id", id.Hex()),
					slog.Int("attempt", attempt),
				)
			}
			return err
		}
		applied, alloc = update, a
		return nil
	})
	span.SetAttributes(attribute.Int("attempts", attempts))
	if err != nil {
		return err
	}

	span.SetAttributes(
		attribute.Float64("principal_portion", alloc.PrincipalPortion),
		attribute.Float64("interest_portion", alloc.InterestPortion),
		attribute.Float64("remaining_balance", applied.RemainingBalance),
	)
	logger.CtxInfo(ctx, "Payment applied",
		slog.String("loan_id", id.Hex()),
		slog.Float64("amount", amount),
		slog.Float64("remaining_balance", applied.RemainingBalance),
		slog.String("status", string(applied.Status)),
	)
	return nil
}

// UpdateLoanStatus выполняет административный переход статуса без проверки текущего
func (s *LoanService) UpdateLoanStatus(ctx context.Context, id primitive.ObjectID, status string) (err error) {
	const op = "update_loan_status"
	ctx, span := startOperation(ctx, op, idAttr("loan_id", id), attribute.String("status", status))
	defer func() { finishOperation(ctx, span, op, err) }()

	next, err := domain.ParseLoanStatusUpdate(status)
	if err != nil {
		return err
	}
	return s.loans.SetStatus(ctx, id, next)
}

// LoanSchedule строит прогноз оставшихся платежей по кредиту
func (s *LoanService) LoanSchedule(ctx context.Context, id primitive.ObjectID) (result *calculations.ScheduleResult, err error) {
	const op = "loan_schedule"
	ctx, span := startOperation(ctx, op, idAttr("loan_id", id))
	defer func() { finishOperation(ctx, span, op, err) }()

	loan, err := s.loans.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return calculations.Schedule(loan)
}
