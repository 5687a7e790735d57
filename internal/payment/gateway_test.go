package payment

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/angelmondragon/warungsunda-backend/pkg/enums"
	"github.com/angelmondragon/warungsunda-backend/pkg/metrics"
	"github.com/prometheus/client_golang/prometheus"
)

func TestSimulatedGatewaySettles(t *testing.T) {
	settled := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	g := NewSimulatedGateway(0, 0,
		WithClock(func() time.Time { return settled }),
		WithIDSource(func() string { return "abc" }),
	)
	res, err := g.Charge(context.Background(), ChargeRequest{Reference: "order-1", Method: enums.PaymentMethodQRIS, Amount: 52500})
	if err != nil {
		t.Fatalf("charge: %v", err)
	}
	if res.PaymentID != "qris_abc" {
		t.Fatalf("unexpected payment id %q", res.PaymentID)
	}
	if res.Amount != 52500 || !res.SettledAt.Equal(settled) {
		t.Fatalf("unexpected result %+v", res)
	}
}

func TestSimulatedGatewayDeclines(t *testing.T) {
	reg := prometheus.NewRegistry()
	g := NewSimulatedGateway(0, 0,
		WithDecider(func(ChargeRequest) error { return ErrDeclined }),
		WithMetrics(metrics.NewCheckoutMetrics(reg)),
	)
	_, err := g.Charge(context.Background(), ChargeRequest{Method: enums.PaymentMethodCard, Amount: 1000})
	if !errors.Is(err, ErrDeclined) {
		t.Fatalf("expected ErrDeclined, got %v", err)
	}

	families, err := reg.Gather()
	if err != nil {
		t.Fatalf("gather: %v", err)
	}
	found := false
	for _, fam := range families {
		if fam.GetName() != "warung_payment_gateway_duration_seconds" {
			continue
		}
		for _, metric := range fam.GetMetric() {
			for _, label := range metric.GetLabel() {
				if label.GetName() == "outcome" && label.GetValue() == metrics.OutcomeDeclined {
					found = true
				}
			}
		}
	}
	if !found {
		t.Fatal("expected declined observation")
	}
}

func TestSimulatedGatewayTimesOut(t *testing.T) {
	g := NewSimulatedGateway(time.Second, 10*time.Millisecond)
	_, err := g.Charge(context.Background(), ChargeRequest{Method: enums.PaymentMethodQRIS, Amount: 1000})
	if !errors.Is(err, ErrTimeout) {
		t.Fatalf("expected ErrTimeout, got %v", err)
	}
}

func TestSimulatedGatewayHonoursCancellation(t *testing.T) {
	g := NewSimulatedGateway(time.Second, 0)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := g.Charge(ctx, ChargeRequest{Method: enums.PaymentMethodQRIS, Amount: 1000})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestGatewaysRejectNonPositiveAmounts(t *testing.T) {
	if _, err := NewSimulatedGateway(0, 0).Charge(context.Background(), ChargeRequest{Amount: 0}); err == nil {
		t.Fatal("expected simulated gateway error")
	}
	if _, err := NewCounterGateway().Charge(context.Background(), ChargeRequest{Amount: -1}); err == nil {
		t.Fatal("expected counter gateway error")
	}
}

func TestDefaultRegistryRoutesMethods(t *testing.T) {
	reg := NewDefaultRegistry(0, time.Second, nil)
	for _, method := range []enums.PaymentMethod{enums.PaymentMethodQRIS, enums.PaymentMethodCard, enums.PaymentMethodCash} {
		gateway, err := reg.Lookup(method)
		if err != nil {
			t.Fatalf("lookup %s: %v", method, err)
		}
		res, err := gateway.Charge(context.Background(), ChargeRequest{Method: method, Amount: 1000})
		if err != nil {
			t.Fatalf("charge %s: %v", method, err)
		}
		if want := string(method) + "_"; len(res.PaymentID) <= len(want) || res.PaymentID[:len(want)] != want {
			t.Fatalf("payment id %q lacks prefix %q", res.PaymentID, want)
		}
	}
	if _, err := reg.Lookup(enums.PaymentMethodWallet); err == nil {
		t.Fatal("wallet must not have a gateway")
	}
}

func TestSimulatedGatewayVoidsSettledCharge(t *testing.T) {
	g := NewSimulatedGateway(0, 0, WithIDSource(func() string { return "v1" }))
	res, err := g.Charge(context.Background(), ChargeRequest{Method: enums.PaymentMethodQRIS, Amount: 1000})
	if err != nil {
		t.Fatalf("charge: %v", err)
	}
	if g.Voided(res.PaymentID) {
		t.Fatal("fresh charge must not be voided")
	}
	if err := g.Void(context.Background(), res.PaymentID); err != nil {
		t.Fatalf("void: %v", err)
	}
	if !g.Voided(res.PaymentID) {
		t.Fatal("expected charge to be voided")
	}
	if err := g.Void(context.Background(), ""); err == nil {
		t.Fatal("expected error for empty payment id")
	}
}

func TestCounterGatewayVoid(t *testing.T) {
	g := NewCounterGateway()
	if err := g.Void(context.Background(), "cash_1"); err != nil {
		t.Fatalf("void: %v", err)
	}
	if err := g.Void(context.Background(), ""); err == nil {
		t.Fatal("expected error for empty payment id")
	}
}
