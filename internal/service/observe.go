package service

import (
	"context"
	"log/slog"

	"github.com/DevSlashRichie/coinme/internal/domain"
	"github.com/DevSlashRichie/coinme/internal/logger"
	"github.com/DevSlashRichie/coinme/internal/metrics"
	"github.com/DevSlashRichie/coinme/internal/tracing"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// startOperation открывает спан операции
func startOperation(ctx context.Context, op string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	return tracing.Tracer().Start(ctx, op, trace.WithAttributes(attrs...))
}

// finishOperation закрывает спан и пишет метрики по результату операции
func finishOperation(ctx context.Context, span trace.Span, op string, err error) {
	defer span.End()

	if err == nil {
		span.SetAttributes(attribute.Bool("success", true))
		metrics.OperationCalls.WithLabelValues(op, "success").Inc()
		return
	}

	kind := domain.Kind(err)
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
	span.SetAttributes(attribute.String("error", kind))
	metrics.OperationCalls.WithLabelValues(op, "error").Inc()
	metrics.CalculationErrors.WithLabelValues(op, kind).Inc()

	switch kind {
	case "persistence", "internal":
		logger.CtxError(ctx, "Operation failed", err, slog.String("operation", op))
	default:
		logger.CtxWarn(ctx, "Operation rejected", slog.String("operation", op), slog.String("error", err.Error()))
	}
}

func idAttr(key string, id interface{ Hex() string }) attribute.KeyValue {
	return attribute.String(key, id.Hex())
}

func partyAttrs(prefix string, p domain.Party) []attribute.KeyValue {
	return []attribute.KeyValue{
		attribute.String(prefix+"_type", string(p.Kind)),
		attribute.String(prefix+"_id", p.ID.Hex()),
	}
}
