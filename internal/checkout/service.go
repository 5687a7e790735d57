package checkout

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/angelmondragon/warungsunda-backend/internal/cart"
	"github.com/angelmondragon/warungsunda-backend/internal/menu"
	"github.com/angelmondragon/warungsunda-backend/internal/orders"
	"github.com/angelmondragon/warungsunda-backend/internal/payment"
	"github.com/angelmondragon/warungsunda-backend/internal/wallet"
	"github.com/angelmondragon/warungsunda-backend/pkg/auth"
	"github.com/angelmondragon/warungsunda-backend/pkg/config"
	"github.com/angelmondragon/warungsunda-backend/pkg/db/models"
	"github.com/angelmondragon/warungsunda-backend/pkg/enums"
	pkgerrors "github.com/angelmondragon/warungsunda-backend/pkg/errors"
	"github.com/angelmondragon/warungsunda-backend/pkg/ids"
	"github.com/angelmondragon/warungsunda-backend/pkg/logger"
	"github.com/angelmondragon/warungsunda-backend/pkg/metrics"
	"github.com/angelmondragon/warungsunda-backend/pkg/qr"
	"github.com/go-playground/validator/v10"
	"gorm.io/gorm"
)

const voidTimeout = 5 * time.Second

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

// CartStore is the slice of the cart store checkout reads and clears.
type CartStore interface {
	GetCart(ctx context.Context) []cart.Line
	ClearCart(ctx context.Context)
}

type userLoader interface {
	FindByID(ctx context.Context, id string) (*models.User, error)
}

type walletDebiter interface {
	Debit(ctx context.Context, tx *gorm.DB, input wallet.MovementInput) (*models.Transaction, error)
}

type gatewayLookup interface {
	Lookup(method enums.PaymentMethod) (payment.Gateway, error)
}

// Service reduces a cart to a persisted order.
type Service interface {
	Quote(lines []cart.Line) Quote
	PlaceOrder(ctx context.Context, actor auth.Actor, store CartStore, method enums.PaymentMethod) (*models.Order, error)
	PlaceAnonymousOrder(ctx context.Context, store CartStore, input AnonymousOrderInput) (*models.Order, error)
	QRIS(ctx context.Context, lines []cart.Line) (*QRISPayload, error)
	MenuLink() string
	MenuQR() ([]byte, error)
}

// AnonymousOrderInput carries the guest details collected at the counter page.
type AnonymousOrderInput struct {
	CustomerName  string
	CustomerEmail string
	PaymentMethod enums.PaymentMethod
}

// Deps groups the collaborators of the checkout service. Metrics is optional.
type Deps struct {
	Tx       txRunner
	Orders   orders.Repository
	Users    userLoader
	Wallet   walletDebiter
	Gateways gatewayLookup
	Menu     *menu.Repository
	IDs      ids.Generator
	Config   config.CheckoutConfig
	Metrics  *metrics.CheckoutMetrics
	Logger   *logger.Logger
	Clock    func() time.Time
}

type service struct {
	tx       txRunner
	orders   orders.Repository
	users    userLoader
	wallet   walletDebiter
	gateways gatewayLookup
	menu     *menu.Repository
	ids      ids.Generator
	cfg      config.CheckoutConfig
	metrics  *metrics.CheckoutMetrics
	logg     *logger.Logger
	clock    func() time.Time
	validate *validator.Validate
}

// PaymentDescription is the ledger text for a wallet-paid order.
func PaymentDescription(orderID string) string {
	return fmt.Sprintf("Pembayaran untuk pesanan #%s", orderID)
}

// NewService builds the checkout service.
func NewService(deps Deps) (Service, error) {
	if deps.Tx == nil {
		return nil, fmt.Errorf("tx runner required")
	}
	if deps.Orders == nil {
		return nil, fmt.Errorf("orders repository required")
	}
	if deps.Users == nil {
		return nil, fmt.Errorf("user loader required")
	}
	if deps.Wallet == nil {
		return nil, fmt.Errorf("wallet service required")
	}
	if deps.Gateways == nil {
		return nil, fmt.Errorf("payment gateways required")
	}
	if deps.Menu == nil {
		return nil, fmt.Errorf("menu repository required")
	}
	if deps.IDs == nil {
		return nil, fmt.Errorf("id generator required")
	}
	if deps.Logger == nil {
		deps.Logger = logger.Nop()
	}
	if deps.Clock == nil {
		deps.Clock = time.Now
	}
	if deps.Config.ReadyOffset <= 0 {
		deps.Config.ReadyOffset = 15 * time.Minute
	}
	if deps.Config.MerchantName == "" {
		deps.Config.MerchantName = "Warung Sunda"
	}
	return &service{
		tx:       deps.Tx,
		orders:   deps.Orders,
		users:    deps.Users,
		wallet:   deps.Wallet,
		gateways: deps.Gateways,
		menu:     deps.Menu,
		ids:      deps.IDs,
		cfg:      deps.Config,
		metrics:  deps.Metrics,
		logg:     deps.Logger,
		clock:    deps.Clock,
		validate: validator.New(),
	}, nil
}

func (s *service) Quote(lines []cart.Line) Quote {
	return BuildQuote(lines, s.cfg.TaxBasisPoints)
}

func (s *service) PlaceOrder(ctx context.Context, actor auth.Actor, store CartStore, method enums.PaymentMethod) (*models.Order, error) {
	if store == nil {
		return nil, fmt.Errorf("cart store required")
	}
	lines := store.GetCart(ctx)
	if len(lines) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "cart is empty")
	}
	if actor.IsZero() {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "authentication required")
	}
	if !method.IsValid() {
		return nil, invalidMethod(method)
	}
	if err := s.verifyLines(ctx, lines); err != nil {
		return nil, err
	}

	user, err := s.users.FindByID(ctx, actor.UserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "authentication required")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load customer")
	}

	subtotal := cart.Subtotal(lines)
	if method == enums.PaymentMethodWallet && user.WalletBalance < subtotal {
		s.metrics.IncOrder(string(method), metrics.OutcomeDeclined)
		return nil, insufficientFunds(subtotal, user.WalletBalance)
	}

	email := user.Email
	order := s.newOrder(user.ID, user.Name, &email, method, lines)
	return s.place(ctx, store, order, lines)
}

func (s *service) PlaceAnonymousOrder(ctx context.Context, store CartStore, input AnonymousOrderInput) (*models.Order, error) {
	if store == nil {
		return nil, fmt.Errorf("cart store required")
	}
	lines := store.GetCart(ctx)
	if len(lines) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "cart is empty")
	}

	name := strings.TrimSpace(input.CustomerName)
	if name == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "customer name is required")
	}
	var email *string
	if trimmed := strings.TrimSpace(input.CustomerEmail); trimmed != "" {
		if err := s.validate.Var(trimmed, "email"); err != nil {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "customer email is invalid").
				WithDetails(map[string]any{"customerEmail": trimmed})
		}
		email = &trimmed
	}

	method := input.PaymentMethod
	if method == "" {
		method = enums.PaymentMethodQRIS
	}
	if !method.IsValid() {
		return nil, invalidMethod(method)
	}
	if method == enums.PaymentMethodWallet {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "wallet payment requires an account").
			WithDetails(map[string]any{"paymentMethod": method})
	}
	if err := s.verifyLines(ctx, lines); err != nil {
		return nil, err
	}

	order := s.newOrder(models.AnonymousCustomerID, name, email, method, lines)
	return s.place(ctx, store, order, lines)
}

// place charges the payer, persists the order, then clears the cart.
// A failed charge leaves both the cart and the orders table untouched, and a
// failed write voids the charge it followed.
func (s *service) place(ctx context.Context, store CartStore, order *models.Order, lines []cart.Line) (*models.Order, error) {
	ctx = s.logg.WithFields(s.logg.WithOrderID(ctx, order.ID), map[string]any{
		"payment_method": order.PaymentMethod,
		"customer_id":    order.CustomerID,
	})
	method := order.PaymentMethod

	var gateway payment.Gateway
	if method != enums.PaymentMethodWallet {
		g, reference, err := s.charge(ctx, order, lines)
		if err != nil {
			return nil, err
		}
		gateway = g
		order.PaymentReference = &reference
	}

	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		if err := s.orders.WithTx(tx).Create(ctx, order); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "create order")
		}
		if method == enums.PaymentMethodWallet {
			orderID := order.ID
			entry, err := s.wallet.Debit(ctx, tx, wallet.MovementInput{
				UserID:      order.CustomerID,
				Amount:      order.TotalAmount,
				OrderID:     &orderID,
				Description: PaymentDescription(order.ID),
			})
			if err != nil {
				return err
			}
			order.PaymentReference = &entry.ID
			if err := tx.WithContext(ctx).
				Model(&models.Order{}).
				Where("id = ?", order.ID).
				Update("payment_reference", entry.ID).Error; err != nil {
				return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "store payment reference")
			}
		}
		if err := s.menu.WithTx(tx).IncrementOrders(ctx, itemCounts(lines)); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "update menu popularity")
		}
		return nil
	})
	if err != nil {
		s.metrics.IncOrder(string(method), outcomeForError(err))
		s.logg.Warn(s.logg.WithField(ctx, "error", err.Error()), "checkout.order_failed")
		if gateway != nil {
			s.void(ctx, gateway, *order.PaymentReference)
		}
		return nil, err
	}

	store.ClearCart(ctx)
	s.metrics.IncOrder(string(method), metrics.OutcomeSuccess)
	if method == enums.PaymentMethodWallet {
		s.metrics.AddWalletMovement(string(enums.TransactionTypePayment), order.TotalAmount)
	}
	s.logg.Info(s.logg.WithField(ctx, "total_amount", order.TotalAmount), "checkout.order_placed")
	return order, nil
}

func (s *service) charge(ctx context.Context, order *models.Order, lines []cart.Line) (payment.Gateway, string, error) {
	gateway, err := s.gateways.Lookup(order.PaymentMethod)
	if err != nil {
		return nil, "", pkgerrors.Wrap(pkgerrors.CodeValidation, err, "payment method not supported").
			WithDetails(map[string]any{"paymentMethod": order.PaymentMethod})
	}
	quote := s.Quote(lines)
	result, err := gateway.Charge(ctx, payment.ChargeRequest{
		Reference: order.ID,
		Method:    order.PaymentMethod,
		Amount:    quote.GrandTotal,
	})
	if err == nil {
		return gateway, result.PaymentID, nil
	}

	var typed error
	switch {
	case errors.Is(err, payment.ErrDeclined):
		typed = pkgerrors.Wrap(pkgerrors.CodePaymentFailed, err, "payment was declined").
			WithDetails(map[string]any{"paymentMethod": order.PaymentMethod})
	case errors.Is(err, payment.ErrTimeout), errors.Is(err, context.DeadlineExceeded), errors.Is(err, context.Canceled):
		typed = pkgerrors.Wrap(pkgerrors.CodeDependency, err, "payment gateway unavailable").
			WithDetails(map[string]any{"paymentMethod": order.PaymentMethod})
	default:
		typed = pkgerrors.Wrap(pkgerrors.CodePaymentFailed, err, "payment failed").
			WithDetails(map[string]any{"paymentMethod": order.PaymentMethod})
	}
	s.metrics.IncOrder(string(order.PaymentMethod), outcomeForError(err))
	s.logg.Warn(s.logg.WithField(ctx, "error", err.Error()), "checkout.payment_failed")
	return nil, "", typed
}

// void releases a charge after the order write failed. It runs detached from
// the request so a cancelled client still gets its money back.
func (s *service) void(ctx context.Context, gateway payment.Gateway, paymentID string) {
	voidCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), voidTimeout)
	defer cancel()

	ctx = s.logg.WithField(ctx, "payment_id", paymentID)
	if err := gateway.Void(voidCtx, paymentID); err != nil {
		s.logg.Error(ctx, "checkout.void_failed", err)
		return
	}
	s.logg.Info(ctx, "checkout.payment_voided")
}

// verifyLines checks every cart line against the menu before anything is
// charged. The price captured at add time is kept, but quantities, totals
// and availability are checked again.
func (s *service) verifyLines(ctx context.Context, lines []cart.Line) error {
	for _, line := range lines {
		details := map[string]any{"itemId": line.ItemID}
		if line.Quantity <= 0 || line.Price <= 0 {
			return s.rejectCart(ctx, pkgerrors.New(pkgerrors.CodeValidation, "cart line is invalid").
				WithDetails(map[string]any{"itemId": line.ItemID, "quantity": line.Quantity, "price": line.Price}))
		}
		if line.Total != line.Price*int64(line.Quantity) {
			return s.rejectCart(ctx, pkgerrors.New(pkgerrors.CodeValidation, "cart line total does not match its price").
				WithDetails(map[string]any{"itemId": line.ItemID, "total": line.Total}))
		}

		item, err := s.menu.FindByID(ctx, line.ItemID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return s.rejectCart(ctx, pkgerrors.New(pkgerrors.CodeNotFound, "menu item not found").WithDetails(details))
			}
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load menu item")
		}
		if !item.IsAvailable() {
			return s.rejectCart(ctx, pkgerrors.New(pkgerrors.CodeValidation, "menu item is not available").WithDetails(details))
		}
	}
	return nil
}

func (s *service) rejectCart(ctx context.Context, err error) error {
	s.logg.Warn(s.logg.WithField(ctx, "error", err.Error()), "checkout.cart_rejected")
	return err
}

func (s *service) QRIS(ctx context.Context, lines []cart.Line) (*QRISPayload, error) {
	if len(lines) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "cart is empty")
	}
	quote := s.Quote(lines)
	id := strconv.FormatInt(s.clock().UnixMilli(), 10)
	text := QRISText(s.cfg.MerchantName, quote.GrandTotal, id)
	png, err := qr.PNG(text, qr.DefaultSize)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "render qris code")
	}
	s.logg.Debug(s.logg.WithField(ctx, "qris_id", id), "checkout.qris_rendered")
	return &QRISPayload{ID: "QR" + id, Amount: quote.GrandTotal, Text: text, PNG: png}, nil
}

func (s *service) MenuLink() string {
	return s.cfg.MenuURL
}

func (s *service) MenuQR() ([]byte, error) {
	png, err := qr.PNG(s.cfg.MenuURL, qr.DefaultSize)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "render menu qr code")
	}
	return png, nil
}

func (s *service) newOrder(customerID, customerName string, email *string, method enums.PaymentMethod, lines []cart.Line) *models.Order {
	now := s.clock().UTC()
	items := make([]models.OrderItem, 0, len(lines))
	for _, line := range lines {
		item := models.OrderItem{
			ItemID:   line.ItemID,
			Name:     line.Name,
			Price:    line.Price,
			Quantity: line.Quantity,
			Total:    line.Total,
		}
		if line.SpecialInstructions != "" {
			instructions := line.SpecialInstructions
			item.SpecialInstructions = &instructions
		}
		items = append(items, item)
	}
	return &models.Order{
		ID:                 s.ids.New(ids.PrefixOrder),
		CustomerID:         customerID,
		CustomerName:       customerName,
		CustomerEmail:      email,
		Items:              items,
		TotalAmount:        cart.Subtotal(lines),
		Status:             enums.OrderStatusConfirmed,
		PaymentMethod:      method,
		PaymentStatus:      enums.PaymentStatusCompleted,
		EstimatedReadyTime: now.Add(s.cfg.ReadyOffset),
		CreatedAt:          now,
	}
}

func itemCounts(lines []cart.Line) map[string]int {
	counts := make(map[string]int, len(lines))
	for _, line := range lines {
		counts[line.ItemID] += line.Quantity
	}
	return counts
}

func insufficientFunds(required, available int64) error {
	return pkgerrors.New(pkgerrors.CodeInsufficient, "insufficient wallet balance").
		WithDetails(map[string]any{"required": required, "available": available})
}

func invalidMethod(method enums.PaymentMethod) error {
	return pkgerrors.New(pkgerrors.CodeValidation, "invalid payment method").
		WithDetails(map[string]any{"paymentMethod": method})
}

func outcomeForError(err error) string {
	switch {
	case errors.Is(err, payment.ErrDeclined), pkgerrors.HasCode(err, pkgerrors.CodeInsufficient):
		return metrics.OutcomeDeclined
	case errors.Is(err, payment.ErrTimeout), errors.Is(err, context.DeadlineExceeded):
		return metrics.OutcomeTimeout
	default:
		return metrics.OutcomeError
	}
}
