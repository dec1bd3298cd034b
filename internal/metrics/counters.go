package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	TicksTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "transaction_signer",
		Name:      "ticks_total",
	})

	TickErrorsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "transaction_signer",
		Name:      "tick_errors_total",
	})

	SubmittedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "transaction_signer",
		Name:      "submitted_total",
		Help:      "Total signed transactions accepted by the chain node.",
	})

	ConfirmedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "transaction_signer",
			Name:      "confirmed_total",
			Help:      "Total submitted transactions that reached a terminal state.",
		},
		[]string{"successful"},
	)
)
