package metrics

import (
	"errors"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "chantify"

// Payment generation outcomes.
const (
	PaymentOutcomeCreated  = "created"
	PaymentOutcomeExisting = "existing"
	PaymentOutcomeFailed   = "failed"
)

// PayrollMetrics records clock and payroll events. A nil *PayrollMetrics is
// valid and records nothing, so services and tests can run without one.
type PayrollMetrics struct {
	clockIns            prometheus.Counter
	clockOuts           prometheus.Counter
	hoursCredited       prometheus.Counter
	summaryRecomputes   prometheus.Counter
	paymentsGenerated   *prometheus.CounterVec
	paymentStatusToggle *prometheus.CounterVec
	batchFailures       prometheus.Counter
	batchDuration       prometheus.Histogram
}

// New builds the collectors and registers them with registerer, falling back
// to the default registerer when nil. Collectors that are already registered
// are reused.
func New(registerer prometheus.Registerer) *PayrollMetrics {
	if registerer == nil {
		registerer = prometheus.DefaultRegisterer
	}

	m := &PayrollMetrics{
		clockIns: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "clock_ins_total",
			Help:      "Time sessions opened.",
		}),
		clockOuts: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "clock_outs_total",
			Help:      "Time sessions completed.",
		}),
		hoursCredited: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "hours_credited_total",
			Help:      "Worked hours added to monthly summaries.",
		}),
		summaryRecomputes: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "summary_recomputes_total",
			Help:      "Monthly summaries rebuilt from completed sessions.",
		}),
		paymentsGenerated: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "payments_generated_total",
			Help:      "getOrCreate payment calls by outcome.",
		}, []string{"outcome"}),
		paymentStatusToggle: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "payment_status_changes_total",
			Help:      "Payment status transitions by resulting status.",
		}, []string{"status"}),
		batchFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "payroll_batch_failures_total",
			Help:      "Workers that failed during monthly payment generation.",
		}),
		batchDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "payroll_batch_duration_seconds",
			Help:      "Latency of monthly payment generation for one company.",
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30, 60, 120},
		}),
	}

	m.clockIns = register(registerer, m.clockIns)
	m.clockOuts = register(registerer, m.clockOuts)
	m.hoursCredited = register(registerer, m.hoursCredited)
	m.summaryRecomputes = register(registerer, m.summaryRecomputes)
	m.paymentsGenerated = register(registerer, m.paymentsGenerated)
	m.paymentStatusToggle = register(registerer, m.paymentStatusToggle)
	m.batchFailures = register(registerer, m.batchFailures)
	m.batchDuration = register(registerer, m.batchDuration)

	return m
}

func register[C prometheus.Collector](registerer prometheus.Registerer, c C) C {
	if err := registerer.Register(c); err != nil {
		var are prometheus.AlreadyRegisteredError
		if errors.As(err, &are) {
			if existing, ok := are.ExistingCollector.(C); ok {
				return existing
			}
		}
		panic(err)
	}
	return c
}

func (m *PayrollMetrics) IncClockIn() {
	if m == nil {
		return
	}
	m.clockIns.Inc()
}

func (m *PayrollMetrics) IncClockOut(hours float64) {
	if m == nil {
		return
	}
	m.clockOuts.Inc()
	if hours > 0 {
		m.hoursCredited.Add(hours)
	}
}

func (m *PayrollMetrics) IncSummaryRecompute() {
	if m == nil {
		return
	}
	m.summaryRecomputes.Inc()
}

func (m *PayrollMetrics) IncPaymentGenerated(outcome string) {
	if m == nil {
		return
	}
	m.paymentsGenerated.WithLabelValues(outcome).Inc()
}

func (m *PayrollMetrics) IncStatusChange(status string) {
	if m == nil {
		return
	}
	m.paymentStatusToggle.WithLabelValues(status).Inc()
}

func (m *PayrollMetrics) AddBatchFailures(count int) {
	if m == nil || count <= 0 {
		return
	}
	m.batchFailures.Add(float64(count))
}

func (m *PayrollMetrics) ObserveBatchDuration(duration time.Duration) {
	if m == nil {
		return
	}
	m.batchDuration.Observe(duration.Seconds())
}
