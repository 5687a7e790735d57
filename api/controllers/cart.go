package controllers

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/angelmondragon/warungsunda-backend/api/responses"
	"github.com/angelmondragon/warungsunda-backend/api/validators"
	"github.com/angelmondragon/warungsunda-backend/internal/cart"
	"github.com/angelmondragon/warungsunda-backend/internal/checkout"
	"github.com/angelmondragon/warungsunda-backend/internal/menu"
	"github.com/angelmondragon/warungsunda-backend/pkg/logger"
)

const maxInstructionsLen = 200

// CartProvider binds a cart store to the current request's storage.
type CartProvider interface {
	For(w http.ResponseWriter, r *http.Request) *cart.Store
}

// CartPricer is the slice of the checkout service used to price a cart.
type CartPricer interface {
	Quote(lines []cart.Line) checkout.Quote
}

type cartResponse struct {
	Items     []cart.Line `json:"items"`
	Subtotal  int64       `json:"subtotal"`
	ItemCount int         `json:"itemCount"`
}

func newCartResponse(lines []cart.Line) cartResponse {
	if lines == nil {
		lines = []cart.Line{}
	}
	return cartResponse{Items: lines, Subtotal: cart.Subtotal(lines), ItemCount: cart.Count(lines)}
}

type addCartItemRequest struct {
	ItemID              string `json:"itemId" validate:"required"`
	Quantity            int    `json:"quantity" validate:"gt=0"`
	SpecialInstructions string `json:"specialInstructions" validate:"max=200"`
}

type updateCartItemRequest struct {
	Quantity *int `json:"quantity" validate:"required"`
}

func CartGet(carts CartProvider) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		store := carts.For(w, r)
		responses.WriteSuccess(w, newCartResponse(store.GetCart(r.Context())))
	}
}

// CartAddItem adds an orderable menu item, merging with an existing line of the same item.
func CartAddItem(carts CartProvider, menuSvc menu.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body addCartItemRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		item, err := menuSvc.GetAvailable(r.Context(), strings.TrimSpace(body.ItemID))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		store := carts.For(w, r)
		lines, err := store.AddItem(r.Context(), *item, body.Quantity, validators.SanitizeString(body.SpecialInstructions, maxInstructionsLen))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, newCartResponse(lines))
	}
}

// CartUpdateItem sets a line's quantity; zero or less removes the line.
func CartUpdateItem(carts CartProvider, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body updateCartItemRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		store := carts.For(w, r)
		lines := store.UpdateQuantity(r.Context(), chi.URLParam(r, "itemId"), *body.Quantity)
		responses.WriteSuccess(w, newCartResponse(lines))
	}
}

func CartRemoveItem(carts CartProvider) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		store := carts.For(w, r)
		lines := store.RemoveItem(r.Context(), chi.URLParam(r, "itemId"))
		responses.WriteSuccess(w, newCartResponse(lines))
	}
}

func CartClear(carts CartProvider) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		carts.For(w, r).ClearCart(r.Context())
		responses.WriteSuccess(w, newCartResponse(nil))
	}
}

// CartQuote prices the cart including tax.
func CartQuote(carts CartProvider, pricer CartPricer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		lines := carts.For(w, r).GetCart(r.Context())
		responses.WriteSuccess(w, map[string]any{
			"items": newCartResponse(lines).Items,
			"quote": pricer.Quote(lines),
		})
	}
}

// CartQRIS renders the mock QRIS charge for the cart. ?format=png streams the
// QR image, otherwise the copyable payload is returned as JSON.
func CartQRIS(carts CartProvider, svc checkout.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		format, err := validators.ParseQueryEnum(r, "format", "json", "png")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		lines := carts.For(w, r).GetCart(r.Context())
		payload, err := svc.QRIS(r.Context(), lines)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if format == "png" {
			responses.WritePNG(w, payload.PNG)
			return
		}
		responses.WriteSuccess(w, payload)
	}
}
