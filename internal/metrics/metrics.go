package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the prometheus instruments for the activation engine and
// periodic jobs. Pass prometheus.DefaultRegisterer in main; tests pass a
// fresh registry so repeated construction does not collide.
type Metrics struct {
	// JobRuns counts periodic job invocations by job name and outcome
	// (ok / error).
	JobRuns *prometheus.CounterVec

	// ActivationFlips counts persisted is_active transitions by target
	// state (active / inactive).
	ActivationFlips *prometheus.CounterVec

	// SpendRecordsTotal counts accepted ledger entries.
	SpendRecordsTotal prometheus.Counter

	// SpendAmountTotal accumulates accepted spend in currency units.
	SpendAmountTotal prometheus.Counter
}

func New(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		JobRuns: f.NewCounterVec(prometheus.CounterOpts{
			Name: "adagency_job_runs_total",
			Help: "Periodic job invocations by job and outcome.",
		}, []string{"job", "outcome"}),
		ActivationFlips: f.NewCounterVec(prometheus.CounterOpts{
			Name: "adagency_activation_flips_total",
			Help: "Persisted campaign is_active transitions by target state.",
		}, []string{"to"}),
		SpendRecordsTotal: f.NewCounter(prometheus.CounterOpts{
			Name: "adagency_spend_records_total",
			Help: "Accepted spend ledger entries.",
		}),
		SpendAmountTotal: f.NewCounter(prometheus.CounterOpts{
			Name: "adagency_spend_amount_total",
			Help: "Accepted spend in currency units.",
		}),
	}
}
