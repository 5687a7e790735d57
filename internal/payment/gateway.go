package payment

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/angelmondragon/warungsunda-backend/pkg/enums"
	"github.com/angelmondragon/warungsunda-backend/pkg/metrics"
	"github.com/google/uuid"
)

var (
	// ErrDeclined means the payer refused or the charge was rejected.
	ErrDeclined = errors.New("payment declined")
	// ErrTimeout means the gateway did not answer within its deadline.
	ErrTimeout = errors.New("payment gateway timeout")
)

// Gateway charges a payer for an order. Void releases a settled charge
// whose order could not be recorded.
type Gateway interface {
	Charge(ctx context.Context, req ChargeRequest) (*ChargeResult, error)
	Void(ctx context.Context, paymentID string) error
}

// ChargeRequest describes one charge attempt.
type ChargeRequest struct {
	Reference string
	Method    enums.PaymentMethod
	Amount    int64
}

// ChargeResult is a settled charge.
type ChargeResult struct {
	PaymentID string
	Amount    int64
	SettledAt time.Time
}

// Decider picks the outcome of a simulated charge; nil approves everything.
type Decider func(req ChargeRequest) error

// SimulatedGateway stands in for a QR or card processor.
type SimulatedGateway struct {
	delay   time.Duration
	timeout time.Duration
	decide  Decider
	clock   func() time.Time
	newID   func() string
	metrics *metrics.CheckoutMetrics

	mu     sync.Mutex
	voided map[string]struct{}
}

// SimulatedOption customises a SimulatedGateway.
type SimulatedOption func(*SimulatedGateway)

func WithDecider(fn Decider) SimulatedOption {
	return func(g *SimulatedGateway) { g.decide = fn }
}

func WithClock(fn func() time.Time) SimulatedOption {
	return func(g *SimulatedGateway) { g.clock = fn }
}

func WithIDSource(fn func() string) SimulatedOption {
	return func(g *SimulatedGateway) { g.newID = fn }
}

func WithMetrics(m *metrics.CheckoutMetrics) SimulatedOption {
	return func(g *SimulatedGateway) { g.metrics = m }
}

// NewSimulatedGateway waits delay before settling. A positive timeout bounds each charge.
func NewSimulatedGateway(delay, timeout time.Duration, opts ...SimulatedOption) *SimulatedGateway {
	g := &SimulatedGateway{
		delay:   delay,
		timeout: timeout,
		clock:   time.Now,
		newID:   uuid.NewString,
		voided:  make(map[string]struct{}),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

func (g *SimulatedGateway) Charge(ctx context.Context, req ChargeRequest) (*ChargeResult, error) {
	if req.Amount <= 0 {
		return nil, fmt.Errorf("charge amount must be positive")
	}
	started := time.Now()
	result, err := g.charge(ctx, req)
	g.metrics.ObserveGateway(string(req.Method), outcomeOf(err), time.Since(started))
	return result, err
}

func (g *SimulatedGateway) charge(ctx context.Context, req ChargeRequest) (*ChargeResult, error) {
	if g.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, g.timeout)
		defer cancel()
	}

	if g.delay > 0 {
		timer := time.NewTimer(g.delay)
		defer timer.Stop()
		select {
		case <-timer.C:
		case <-ctx.Done():
			if errors.Is(ctx.Err(), context.DeadlineExceeded) {
				return nil, ErrTimeout
			}
			return nil, ctx.Err()
		}
	} else if err := ctx.Err(); err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return nil, ErrTimeout
		}
		return nil, err
	}

	if g.decide != nil {
		if err := g.decide(req); err != nil {
			return nil, err
		}
	}
	return &ChargeResult{
		PaymentID: PaymentID(req.Method, g.newID()),
		Amount:    req.Amount,
		SettledAt: g.clock().UTC(),
	}, nil
}

func (g *SimulatedGateway) Void(ctx context.Context, paymentID string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if paymentID == "" {
		return fmt.Errorf("payment id required")
	}
	g.mu.Lock()
	g.voided[paymentID] = struct{}{}
	g.mu.Unlock()
	return nil
}

// Voided reports whether paymentID has been released.
func (g *SimulatedGateway) Voided(paymentID string) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	_, ok := g.voided[paymentID]
	return ok
}

// CounterGateway settles immediately; the customer pays at the counter.
type CounterGateway struct {
	clock func() time.Time
	newID func() string
}

func NewCounterGateway() *CounterGateway {
	return &CounterGateway{clock: time.Now, newID: uuid.NewString}
}

func (g *CounterGateway) Charge(ctx context.Context, req ChargeRequest) (*ChargeResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if req.Amount <= 0 {
		return nil, fmt.Errorf("charge amount must be positive")
	}
	return &ChargeResult{
		PaymentID: PaymentID(req.Method, g.newID()),
		Amount:    req.Amount,
		SettledAt: g.clock().UTC(),
	}, nil
}

// Void is a no-op: nothing is collected until the customer reaches the counter.
func (g *CounterGateway) Void(ctx context.Context, paymentID string) error {
	if paymentID == "" {
		return fmt.Errorf("payment id required")
	}
	return ctx.Err()
}

// PaymentID formats a gateway reference as `<method>_<id>`.
func PaymentID(method enums.PaymentMethod, id string) string {
	if method == "" {
		method = enums.PaymentMethodQRIS
	}
	return fmt.Sprintf("%s_%s", method, id)
}

func outcomeOf(err error) string {
	switch {
	case err == nil:
		return metrics.OutcomeSuccess
	case errors.Is(err, ErrDeclined):
		return metrics.OutcomeDeclined
	case errors.Is(err, ErrTimeout):
		return metrics.OutcomeTimeout
	default:
		return metrics.OutcomeError
	}
}
