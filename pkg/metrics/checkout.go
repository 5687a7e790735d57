package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const (
	OutcomeSuccess  = "success"
	OutcomeDeclined = "declined"
	OutcomeTimeout  = "timeout"
	OutcomeError    = "error"
)

// CheckoutMetrics records order placement, gateway round-trips and wallet movements.
type CheckoutMetrics struct {
	orders   *prometheus.CounterVec
	gateway  *prometheus.HistogramVec
	wallet   *prometheus.CounterVec
	rupiah   *prometheus.CounterVec
	statuses *prometheus.CounterVec
}

// NewCheckoutMetrics registers the checkout metrics on the provided registerer.
// A nil registerer yields a recorder whose methods are no-ops.
func NewCheckoutMetrics(reg prometheus.Registerer) *CheckoutMetrics {
	if reg == nil {
		return &CheckoutMetrics{}
	}
	orders := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "warung",
		Name:      "orders_placed_total",
		Help:      "Checkout attempts by payment method and outcome.",
	}, []string{"method", "outcome"})
	gateway := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "warung",
		Name:      "payment_gateway_duration_seconds",
		Help:      "Duration of payment gateway charges in seconds.",
		Buckets:   []float64{0.01, 0.05, 0.1, 0.5, 1, 2, 3, 5, 10},
	}, []string{"method", "outcome"})
	wallet := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "warung",
		Name:      "wallet_movements_total",
		Help:      "Wallet ledger entries by transaction type.",
	}, []string{"type"})
	rupiah := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "warung",
		Name:      "wallet_movements_rupiah_total",
		Help:      "Rupiah moved through wallets by transaction type.",
	}, []string{"type"})
	statuses := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "warung",
		Name:      "order_status_transitions_total",
		Help:      "Order status transitions by target status.",
	}, []string{"status"})
	reg.MustRegister(orders, gateway, wallet, rupiah, statuses)
	return &CheckoutMetrics{
		orders:   orders,
		gateway:  gateway,
		wallet:   wallet,
		rupiah:   rupiah,
		statuses: statuses,
	}
}

// IncOrder counts a checkout attempt.
func (c *CheckoutMetrics) IncOrder(method, outcome string) {
	if c == nil || c.orders == nil {
		return
	}
	c.orders.WithLabelValues(normalizeLabel(method), normalizeLabel(outcome)).Inc()
}

// ObserveGateway records how long a gateway charge took.
func (c *CheckoutMetrics) ObserveGateway(method, outcome string, duration time.Duration) {
	if c == nil || c.gateway == nil {
		return
	}
	c.gateway.WithLabelValues(normalizeLabel(method), normalizeLabel(outcome)).Observe(duration.Seconds())
}

// AddWalletMovement counts one ledger entry of amount rupiah.
func (c *CheckoutMetrics) AddWalletMovement(kind string, amount int64) {
	if c == nil || c.wallet == nil {
		return
	}
	label := normalizeLabel(kind)
	c.wallet.WithLabelValues(label).Inc()
	if amount > 0 {
		c.rupiah.WithLabelValues(label).Add(float64(amount))
	}
}

// IncStatusTransition counts an order moving into status.
func (c *CheckoutMetrics) IncStatusTransition(status string) {
	if c == nil || c.statuses == nil {
		return
	}
	c.statuses.WithLabelValues(normalizeLabel(status)).Inc()
}

func normalizeLabel(value string) string {
	if value == "" {
		return "unknown"
	}
	return value
}
