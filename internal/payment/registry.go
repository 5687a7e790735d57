package payment

import (
	"fmt"
	"time"

	"github.com/angelmondragon/warungsunda-backend/pkg/enums"
	"github.com/angelmondragon/warungsunda-backend/pkg/metrics"
)

// Registry maps a payment method to the gateway that settles it.
type Registry struct {
	gateways map[enums.PaymentMethod]Gateway
}

func NewRegistry() *Registry {
	return &Registry{gateways: map[enums.PaymentMethod]Gateway{}}
}

// NewDefaultRegistry routes qris and card through a simulated processor and cash to the counter.
func NewDefaultRegistry(delay, timeout time.Duration, m *metrics.CheckoutMetrics) *Registry {
	simulated := NewSimulatedGateway(delay, timeout, WithMetrics(m))
	return NewRegistry().
		Register(enums.PaymentMethodQRIS, simulated).
		Register(enums.PaymentMethodCard, simulated).
		Register(enums.PaymentMethodCash, NewCounterGateway())
}

func (r *Registry) Register(method enums.PaymentMethod, gateway Gateway) *Registry {
	r.gateways[method] = gateway
	return r
}

func (r *Registry) Lookup(method enums.PaymentMethod) (Gateway, error) {
	gateway, ok := r.gateways[method]
	if !ok {
		return nil, fmt.Errorf("no gateway registered for payment method %q", method)
	}
	return gateway, nil
}
