package controllers

import (
	"context"
	"net/http"
	"time"

	"github.com/angelmondragon/warungsunda-backend/internal/cart"
	"github.com/angelmondragon/warungsunda-backend/internal/checkout"
	"github.com/angelmondragon/warungsunda-backend/internal/menu"
	"github.com/angelmondragon/warungsunda-backend/pkg/auth"
	"github.com/angelmondragon/warungsunda-backend/pkg/db/models"
	"github.com/angelmondragon/warungsunda-backend/pkg/enums"
	pkgerrors "github.com/angelmondragon/warungsunda-backend/pkg/errors"
)

// memoryCarts hands every request the same in-memory cart.
type memoryCarts struct {
	storage *cart.MemoryStorage
}

func newMemoryCarts() *memoryCarts {
	return &memoryCarts{storage: cart.NewMemoryStorage()}
}

func (m *memoryCarts) For(http.ResponseWriter, *http.Request) *cart.Store {
	return cart.NewStore(m.storage, time.Hour, nil)
}

type stubMenuService struct {
	items map[string]models.MenuItem
}

func newStubMenuService(items ...models.MenuItem) *stubMenuService {
	s := &stubMenuService{items: map[string]models.MenuItem{}}
	for _, item := range items {
		s.items[item.ID] = item
	}
	return s
}

func (s *stubMenuService) List(ctx context.Context, filter menu.ListFilter) ([]models.MenuItem, error) {
	var out []models.MenuItem
	for _, item := range s.items {
		if filter.Category != "" && item.Category != filter.Category {
			continue
		}
		out = append(out, item)
	}
	return out, nil
}

func (s *stubMenuService) Get(ctx context.Context, id string) (*models.MenuItem, error) {
	item, ok := s.items[id]
	if !ok {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "menu item not found")
	}
	return &item, nil
}

func (s *stubMenuService) GetAvailable(ctx context.Context, id string) (*models.MenuItem, error) {
	item, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if !item.IsAvailable() {
		return nil, pkgerrors.New(pkgerrors.CodeStateConflict, "menu item is unavailable")
	}
	return item, nil
}

func (s *stubMenuService) Add(ctx context.Context, input menu.ItemInput) (*models.MenuItem, error) {
	item := models.MenuItem{ID: "item-new", Name: input.Name, Price: input.Price, Category: input.Category, Status: input.Status}
	s.items[item.ID] = item
	return &item, nil
}

func (s *stubMenuService) Update(ctx context.Context, id string, input menu.ItemInput) (*models.MenuItem, error) {
	if _, ok := s.items[id]; !ok {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "menu item not found")
	}
	item := models.MenuItem{ID: id, Name: input.Name, Price: input.Price, Category: input.Category, Status: input.Status}
	s.items[id] = item
	return &item, nil
}

func (s *stubMenuService) SetAvailability(ctx context.Context, id string, status enums.MenuItemStatus) (*models.MenuItem, error) {
	item, ok := s.items[id]
	if !ok {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "menu item not found")
	}
	item.Status = status
	s.items[id] = item
	return &item, nil
}

type stubCheckoutService struct {
	order      *models.Order
	err        error
	actor      auth.Actor
	method     enums.PaymentMethod
	anonymous  checkout.AnonymousOrderInput
	qris       *checkout.QRISPayload
	clearOnPay bool
}

func (s *stubCheckoutService) Quote(lines []cart.Line) checkout.Quote {
	return checkout.BuildQuote(lines, 500)
}

func (s *stubCheckoutService) PlaceOrder(ctx context.Context, actor auth.Actor, store checkout.CartStore, method enums.PaymentMethod) (*models.Order, error) {
	s.actor = actor
	s.method = method
	if s.err != nil {
		return nil, s.err
	}
	if s.clearOnPay {
		store.ClearCart(ctx)
	}
	return s.order, nil
}

func (s *stubCheckoutService) PlaceAnonymousOrder(ctx context.Context, store checkout.CartStore, input checkout.AnonymousOrderInput) (*models.Order, error) {
	s.anonymous = input
	if s.err != nil {
		return nil, s.err
	}
	return s.order, nil
}

func (s *stubCheckoutService) QRIS(ctx context.Context, lines []cart.Line) (*checkout.QRISPayload, error) {
	if len(lines) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "cart is empty")
	}
	return s.qris, nil
}

func (s *stubCheckoutService) MenuLink() string {
	return "http://warung.test/menu"
}

func (s *stubCheckoutService) MenuQR() ([]byte, error) {
	return []byte("\x89PNG\r\n\x1a\n"), nil
}

type stubPinger struct {
	err error
}

func (s stubPinger) Ping(context.Context) error {
	return s.err
}

var nasiTimbel = models.MenuItem{
	ID:       "item-1",
	Name:     "Nasi Timbel Komplit",
	Price:    25000,
	Category: enums.MenuCategoryLunch,
	Status:   enums.MenuItemStatusAvailable,
}

var esCendol = models.MenuItem{
	ID:       "item-9",
	Name:     "Es Cendol",
	Price:    8000,
	Category: enums.MenuCategoryBeverages,
	Status:   enums.MenuItemStatusUnavailable,
}
