package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.ExponentialBuckets(0.001, 2, 12), // 1ms to ~4s
		},
		[]string{"method", "path", "status"},
	)

	MQConsumeLatency = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "mq_consume_latency_ms",
			Help:    "MQ message consumption latency in milliseconds",
			Buckets: prometheus.ExponentialBuckets(10, 2, 10), // 10ms to ~10s
		},
		[]string{"routing_key", "queue"},
	)

	ScheduleRecalculations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "schedule_recalculations_total",
			Help: "Total number of schedule recalculations",
		},
		[]string{"trigger"}, // trigger: stage_edit, completion, start_date, contract_edit
	)

	PaymentsRecorded = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "payments_recorded_total",
			Help: "Total number of installments marked as paid",
		},
	)

	ReceiptsIssued = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "receipts_issued_total",
			Help: "Total number of receipts issued",
		},
	)

	SlowQueries = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "db_slow_queries_total",
			Help: "Total number of queries slower than the slow-query threshold",
		},
	)
)

func RecordHTTPRequestDuration(method, path, status string, duration time.Duration) {
	HTTPRequestDuration.WithLabelValues(method, path, status).Observe(duration.Seconds())
}

func RecordMQConsumeLatency(routingKey, queue string, duration time.Duration) {
	MQConsumeLatency.WithLabelValues(routingKey, queue).Observe(float64(duration.Milliseconds()))
}

func IncrementScheduleRecalculation(trigger string) {
	ScheduleRecalculations.WithLabelValues(trigger).Inc()
}

func IncrementPaymentRecorded() {
	PaymentsRecorded.Inc()
}

func IncrementReceiptIssued() {
	ReceiptsIssued.Inc()
}

func IncrementSlowQuery() {
	SlowQueries.Inc()
}
