package cart

import (
	"context"
	"encoding/json"
	"time"

	"github.com/angelmondragon/warungsunda-backend/pkg/db/models"
	pkgerrors "github.com/angelmondragon/warungsunda-backend/pkg/errors"
	"github.com/angelmondragon/warungsunda-backend/pkg/logger"
)

// DefaultTTL is how long a stored cart survives without writes.
const DefaultTTL = 7 * 24 * time.Hour

// Store reads and rewrites one client's cart through its Storage. Storage
// failures are logged and never surfaced: a broken cart reads as empty.
type Store struct {
	storage Storage
	ttl     time.Duration
	logg    *logger.Logger
}

// NewStore binds a cart store to storage. A non-positive ttl uses DefaultTTL.
func NewStore(storage Storage, ttl time.Duration, logg *logger.Logger) *Store {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	if logg == nil {
		logg = logger.Nop()
	}
	return &Store{storage: storage, ttl: ttl, logg: logg}
}

// GetCart returns the stored lines, or an empty cart when nothing usable is stored.
func (s *Store) GetCart(ctx context.Context) []Line {
	raw, ok, err := s.storage.Load(ctx)
	if err != nil {
		s.logg.Warn(s.logg.WithField(ctx, "error", err.Error()), "cart.read_failed")
		return []Line{}
	}
	if !ok || raw == "" {
		return []Line{}
	}

	var lines []Line
	if err := json.Unmarshal([]byte(raw), &lines); err != nil {
		s.logg.Warn(s.logg.WithField(ctx, "error", err.Error()), "cart.decode_failed")
		return []Line{}
	}
	if lines == nil {
		return []Line{}
	}
	return lines
}

// SetCart replaces the stored cart.
func (s *Store) SetCart(ctx context.Context, lines []Line) {
	if lines == nil {
		lines = []Line{}
	}
	payload, err := json.Marshal(lines)
	if err != nil {
		s.logg.Error(ctx, "cart.encode_failed", err)
		return
	}
	if err := s.storage.Save(ctx, string(payload), s.ttl); err != nil {
		s.logg.Error(ctx, "cart.write_failed", err)
	}
}

// AddItem merges quantity of item into the cart and returns the new lines.
func (s *Store) AddItem(ctx context.Context, item models.MenuItem, quantity int, instructions string) ([]Line, error) {
	if quantity <= 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "quantity must be greater than zero").
			WithDetails(map[string]any{"quantity": quantity})
	}
	if item.ID == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "item id is required")
	}

	lines := Merge(s.GetCart(ctx), item, quantity, instructions)
	s.SetCart(ctx, lines)

	ctx = s.logg.WithFields(ctx, map[string]any{"item_id": item.ID, "quantity": quantity})
	s.logg.Debug(ctx, "cart.item_added")
	return lines, nil
}

// RemoveItem drops itemID from the cart. The cart is rewritten even when
// itemID is absent so the storage ttl is refreshed.
func (s *Store) RemoveItem(ctx context.Context, itemID string) []Line {
	lines, _ := Remove(s.GetCart(ctx), itemID)
	s.SetCart(ctx, lines)
	return lines
}

// UpdateQuantity sets the quantity of itemID. Zero or less removes it.
func (s *Store) UpdateQuantity(ctx context.Context, itemID string, quantity int) []Line {
	lines, _ := SetQuantity(s.GetCart(ctx), itemID, quantity)
	s.SetCart(ctx, lines)
	return lines
}

// ClearCart deletes the stored cart.
func (s *Store) ClearCart(ctx context.Context) {
	if err := s.storage.Delete(ctx); err != nil {
		s.logg.Error(ctx, "cart.clear_failed", err)
	}
}

// Total returns the cart subtotal.
func (s *Store) Total(ctx context.Context) int64 {
	return Subtotal(s.GetCart(ctx))
}

// ItemCount returns the number of units in the cart.
func (s *Store) ItemCount(ctx context.Context) int {
	return Count(s.GetCart(ctx))
}
