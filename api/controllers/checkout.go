package controllers

import (
	"net/http"

	"github.com/angelmondragon/warungsunda-backend/api/middleware"
	"github.com/angelmondragon/warungsunda-backend/api/responses"
	"github.com/angelmondragon/warungsunda-backend/api/validators"
	"github.com/angelmondragon/warungsunda-backend/internal/checkout"
	"github.com/angelmondragon/warungsunda-backend/pkg/enums"
	pkgerrors "github.com/angelmondragon/warungsunda-backend/pkg/errors"
	"github.com/angelmondragon/warungsunda-backend/pkg/logger"
)

type checkoutRequest struct {
	PaymentMethod enums.PaymentMethod `json:"paymentMethod" validate:"required"`
}

type anonymousCheckoutRequest struct {
	CustomerName  string              `json:"customerName" validate:"required,max=120"`
	CustomerEmail string              `json:"customerEmail" validate:"omitempty,email"`
	PaymentMethod enums.PaymentMethod `json:"paymentMethod"`
}

// Checkout places an order for the signed-in customer from their cart.
func Checkout(carts CartProvider, svc checkout.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "checkout service unavailable"))
			return
		}

		var body checkoutRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		order, err := svc.PlaceOrder(r.Context(), middleware.ActorFromContext(r.Context()), carts.For(w, r), body.PaymentMethod)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, order)
	}
}

// AnonymousCheckout places a guest order, defaulting to QRIS payment.
func AnonymousCheckout(carts CartProvider, svc checkout.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "checkout service unavailable"))
			return
		}

		var body anonymousCheckoutRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		order, err := svc.PlaceAnonymousOrder(r.Context(), carts.For(w, r), checkout.AnonymousOrderInput{
			CustomerName:  body.CustomerName,
			CustomerEmail: body.CustomerEmail,
			PaymentMethod: body.PaymentMethod,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, order)
	}
}
