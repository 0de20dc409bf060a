package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// CommissionMetrics holds the commission engine collectors.
type CommissionMetrics struct {
	// Recorded sales by owning role
	SalesRecordedTotal *prometheus.CounterVec
	CommissionAmountTotal *prometheus.CounterVec

	// Triggers that did not record a sale (duplicate, inactive product)
	SalesSkippedTotal *prometheus.CounterVec

	// Ledger sync
	LedgerSyncFailuresTotal prometheus.Counter
	LedgerSyncRetriesTotal  *prometheus.CounterVec

	TriggerDuration *prometheus.HistogramVec

	// Alert fan-out by channel and result
	AlertsTotal *prometheus.CounterVec
}

// NewCommissionMetrics registers the collectors with reg. Passing nil uses the
// default registerer.
func NewCommissionMetrics(reg prometheus.Registerer) *CommissionMetrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	factory := promauto.With(reg)

	return &CommissionMetrics{
		SalesRecordedTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "commission_sales_recorded_total",
				Help: "Sales recorded by the commission engine",
			},
			[]string{"role"},
		),

		CommissionAmountTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "commission_amount_total",
				Help: "Sum of commission amounts attributed, in minor units",
			},
			[]string{"role"},
		),

		SalesSkippedTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "commission_sales_skipped_total",
				Help: "Purchase triggers that did not create a sale",
			},
			[]string{"reason"},
		),

		LedgerSyncFailuresTotal: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "commission_ledger_sync_failures_total",
				Help: "Ledger synchronizations that failed and left the sale retryable",
			},
		),

		LedgerSyncRetriesTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "commission_ledger_sync_retries_total",
				Help: "Ledger sync retries by result",
			},
			[]string{"result"},
		),

		TriggerDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "commission_trigger_duration_seconds",
				Help:    "Duration of lead-purchased handling",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"outcome"},
		),

		AlertsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "commission_alerts_total",
				Help: "Admin alerts sent per channel",
			},
			[]string{"channel", "result"},
		),
	}
}

func (m *CommissionMetrics) RecordSaleRecorded(role string, amount int64) {
	m.SalesRecordedTotal.WithLabelValues(role).Inc()
	if amount > 0 {
		m.CommissionAmountTotal.WithLabelValues(role).Add(float64(amount))
	}
}

func (m *CommissionMetrics) RecordSaleSkipped(reason string) {
	m.SalesSkippedTotal.WithLabelValues(reason).Inc()
}

func (m *CommissionMetrics) RecordLedgerSyncFailure() {
	m.LedgerSyncFailuresTotal.Inc()
}

func (m *CommissionMetrics) RecordLedgerSyncRetry(result string) {
	m.LedgerSyncRetriesTotal.WithLabelValues(result).Inc()
}

func (m *CommissionMetrics) RecordTriggerDuration(outcome string, durationSeconds float64) {
	m.TriggerDuration.WithLabelValues(outcome).Observe(durationSeconds)
}

func (m *CommissionMetrics) RecordAlert(channel string, err error) {
	result := "ok"
	if err != nil {
		result = "error"
	}
	m.AlertsTotal.WithLabelValues(channel, result).Inc()
}
