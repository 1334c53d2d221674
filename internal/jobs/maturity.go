package jobs

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/DevSlashRichie/coinme/internal/logger"
	"github.com/robfig/cron/v3"
)

// Maturer переводит в matured бумаги с наступившим сроком погашения
type Maturer interface {
	MatureDueSecurities(ctx context.Context, now time.Time) (int64, error)
}

// MaturitySweep - периодический обход ценных бумаг по расписанию cron
type MaturitySweep struct {
	svc  Maturer
	cron *cron.Cron
	now  func() time.Time
}

// NewMaturitySweep регистрирует обход по расписанию. Пустое расписание отключает обход, тогда возвращается nil.
func NewMaturitySweep(ctx context.Context, svc Maturer, schedule string) (*MaturitySweep, error) {
	if schedule == "" {
		logger.Info("Maturity sweep disabled")
		return nil, nil
	}

	m := &MaturitySweep{svc: svc, cron: cron.New(), now: time.Now}
	if _, err := m.cron.AddFunc(schedule, func() { m.RunOnce(ctx) }); err != nil {
		return nil, fmt.Errorf("invalid maturity sweep schedule %q: %w", schedule, err)
	}
	logger.Info("Maturity sweep scheduled", slog.String("schedule", schedule))
	return m, nil
}

// RunOnce выполняет один обход и возвращает число погашенных бумаг
func (m *MaturitySweep) RunOnce(ctx context.Context) int64 {
	n, err := m.svc.MatureDueSecurities(ctx, m.now().UTC())
	if err != nil {
		logger.CtxError(ctx, "Maturity sweep failed", err)
		return 0
	}
	logger.CtxDebug(ctx, "Maturity sweep finished", slog.Int64("matured", n))
	return n
}

func (m *MaturitySweep) Start() {
	if m == nil {
		return
	}
	m.cron.Start()
}

// Stop останавливает планировщик и ждет завершения текущего обхода
func (m *MaturitySweep) Stop() {
	if m == nil {
		return
	}
	<-m.cron.Stop().Done()
}
