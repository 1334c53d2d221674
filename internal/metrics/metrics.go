package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// OperationCalls счетчик вызовов операций сервиса
	OperationCalls = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "operation_calls_total",
			Help: "Общее количество вызовов операций",
		},
		[]string{"operation", "status"},
	)

	// CalculationErrors счетчик ошибок операций по видам
	CalculationErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "calculation_errors_total",
			Help: "Количество ошибок расчетов",
		},
		[]string{"operation", "error_type"},
	)

	// PaymentConflicts счетчик конфликтов конкурентной записи платежей
	PaymentConflicts = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "payment_conflicts_total",
			Help: "Конфликты условной записи платежа",
		},
	)

	// BalanceCacheLookups счетчик обращений к кешу балансов
	BalanceCacheLookups = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "balance_cache_lookups_total",
			Help: "Обращения к кешу балансов",
		},
		[]string{"result"},
	)

	// SecuritiesMatured счетчик ценных бумаг, переведенных в matured
	SecuritiesMatured = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "securities_matured_total",
			Help: "Ценные бумаги, погашенные фоновым обходом",
		},
	)
)
