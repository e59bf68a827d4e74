// Package metrics provides Prometheus metrics for the billing engine.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds all application metrics.
type Metrics struct {
	BillsCreated      prometheus.Counter
	PaymentsRecorded  prometheus.Counter
	StockRejections   prometheus.Counter
	BillingDuration   prometheus.Histogram
	AmountBilledTotal prometheus.Counter
}

// New creates and registers all metrics.
func New() *Metrics {
	m := &Metrics{
		BillsCreated: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "bills_created_total",
			Help: "Total bills created by the billing engine",
		}),
		PaymentsRecorded: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "payments_recorded_total",
			Help: "Total payments applied to bills",
		}),
		StockRejections: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "billing_stock_rejections_total",
			Help: "Billing runs aborted by insufficient medicine stock",
		}),
		BillingDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "billing_run_duration_seconds",
			Help:    "Bill creation duration",
			Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1},
		}),
		AmountBilledTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "amount_billed_total",
			Help: "Cumulative billed amount in currency units",
		}),
	}

	prometheus.MustRegister(
		m.BillsCreated,
		m.PaymentsRecorded,
		m.StockRejections,
		m.BillingDuration,
		m.AmountBilledTotal,
	)

	return m
}

// Handler returns the Prometheus HTTP handler.
func Handler() http.Handler {
	return promhttp.Handler()
}
