package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/angelmondragon/warungsunda-backend/api/responses"
	"github.com/angelmondragon/warungsunda-backend/api/validators"
	"github.com/angelmondragon/warungsunda-backend/internal/inventory"
	"github.com/angelmondragon/warungsunda-backend/internal/menu"
	"github.com/angelmondragon/warungsunda-backend/pkg/enums"
	pkgerrors "github.com/angelmondragon/warungsunda-backend/pkg/errors"
	"github.com/angelmondragon/warungsunda-backend/pkg/logger"
)

type menuItemRequest struct {
	Name        string               `json:"name" validate:"required,max=120"`
	Description string               `json:"description" validate:"max=1000"`
	Price       int64                `json:"price" validate:"gt=0"`
	Category    enums.MenuCategory   `json:"category" validate:"required"`
	ImageURL    string               `json:"imageUrl"`
	Ingredients []string             `json:"ingredients"`
	Status      enums.MenuItemStatus `json:"status"`
	PrepTime    int                  `json:"prepTime" validate:"min=0"`
	Calories    int                  `json:"calories" validate:"min=0"`
	Tags        []string             `json:"tags"`
	Rating      float64              `json:"rating" validate:"min=0,max=5"`
	TotalOrders int                  `json:"totalOrders" validate:"min=0"`
}

func (m menuItemRequest) toInput() menu.ItemInput {
	return menu.ItemInput{
		Name:        validators.SanitizeString(m.Name, 120),
		Description: validators.SanitizeString(m.Description, 1000),
		Price:       m.Price,
		Category:    m.Category,
		ImageURL:    m.ImageURL,
		Ingredients: m.Ingredients,
		Status:      m.Status,
		PrepTime:    m.PrepTime,
		Calories:    m.Calories,
		Tags:        m.Tags,
		Rating:      m.Rating,
		TotalOrders: m.TotalOrders,
	}
}

type availabilityRequest struct {
	Status enums.MenuItemStatus `json:"status" validate:"required"`
}

func AdminMenuCreate(svc menu.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body menuItemRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		item, err := svc.Add(r.Context(), body.toInput())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, item)
	}
}

// AdminMenuReplace overwrites every writable field of an existing item.
func AdminMenuReplace(svc menu.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body menuItemRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		item, err := svc.Update(r.Context(), chi.URLParam(r, "itemId"), body.toInput())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, item)
	}
}

func AdminMenuAvailability(svc menu.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body availabilityRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		item, err := svc.SetAvailability(r.Context(), chi.URLParam(r, "itemId"), body.Status)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, item)
	}
}

// AdminInventory lists stock levels; ?lowStock=true keeps only items at or below their reorder level.
func AdminInventory(svc inventory.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "inventory service unavailable"))
			return
		}
		lowStock, err := validators.ParseQueryBool(r, "lowStock")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		items, err := svc.List(r.Context(), lowStock)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, items)
	}
}
