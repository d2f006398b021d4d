package calc

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics инкапсулирует Prometheus-метрики вычислений.
//
// Метрики:
// * vec1_operations_total{op,outcome} — counter
// * vec1_operation_duration_seconds{op} — histogram
// * vec1_batch_size — histogram
type Metrics struct {
	operations *prometheus.CounterVec
	duration   *prometheus.HistogramVec
	batchSize  prometheus.Histogram
}

// NewMetrics создаёт метрики и регистрирует их в reg (nil — дефолтный регистр).
func NewMetrics(reg prometheus.Registerer) *Metrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}

	m := &Metrics{
		operations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "vec1",
			Name:      "operations_total",
			Help:      "Число вычисленных операций по результату.",
		}, []string{"op", "outcome"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "vec1",
			Name:      "operation_duration_seconds",
			Help:      "Длительность вычисления операции.",
			Buckets:   []float64{1e-7, 1e-6, 1e-5, 1e-4, 1e-3, 1e-2},
		}, []string{"op"}),
		batchSize: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "vec1",
			Name:      "batch_size",
			Help:      "Количество запросов в batch.",
			Buckets:   prometheus.ExponentialBuckets(1, 4, 8),
		}),
	}

	reg.MustRegister(m.operations, m.duration, m.batchSize)
	return m
}

func (m *Metrics) observe(op, outcome string, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.operations.WithLabelValues(op, outcome).Inc()
	m.duration.WithLabelValues(op).Observe(elapsed.Seconds())
}

func (m *Metrics) observeBatch(size int) {
	if m == nil {
		return
	}
	m.batchSize.Observe(float64(size))
}
