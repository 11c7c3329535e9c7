// Package metrics holds the business counters the services increment.
// HTTP metrics stay with the gin middleware.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	PriceUpdatesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "aw_price_updates_total",
			Help: "Bulk price update batches by outcome",
		},
		[]string{"action"},
	)

	PriceUpdateVariants = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "aw_price_update_variants",
			Help:    "Number of variants touched by one bulk price update",
			Buckets: prometheus.ExponentialBuckets(1, 4, 8),
		},
	)

	DistributionsCreatedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "aw_distributions_created_total",
			Help: "Total distributions persisted",
		},
	)

	WithdrawalDecisionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "aw_withdrawal_decisions_total",
			Help: "Withdrawal requests processed by decision and result",
		},
		[]string{"decision", "result"},
	)

	WalletCreditsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "aw_wallet_credits_total",
			Help: "Total partner wallet credits recorded",
		},
	)

	OrdersPlacedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "aw_orders_placed_total",
			Help: "Total orders placed",
		},
	)

	InvoicesRenderedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "aw_invoices_rendered_total",
			Help: "Invoices rendered by branding",
		},
		[]string{"branded"},
	)
)
