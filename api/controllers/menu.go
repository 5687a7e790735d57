package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/angelmondragon/warungsunda-backend/api/responses"
	"github.com/angelmondragon/warungsunda-backend/api/validators"
	"github.com/angelmondragon/warungsunda-backend/internal/menu"
	"github.com/angelmondragon/warungsunda-backend/pkg/enums"
	pkgerrors "github.com/angelmondragon/warungsunda-backend/pkg/errors"
	"github.com/angelmondragon/warungsunda-backend/pkg/logger"
)

// MenuHandoff is the slice of the checkout service behind the menu QR endpoints.
type MenuHandoff interface {
	MenuLink() string
	MenuQR() ([]byte, error)
}

// PublicMenuList returns the menu, optionally narrowed by ?category= and ?status=.
func PublicMenuList(svc menu.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "menu service unavailable"))
			return
		}

		category, err := validators.ParseQueryEnum(r, "category", menuCategories()...)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		status, err := validators.ParseQueryEnum(r, "status",
			string(enums.MenuItemStatusAvailable), string(enums.MenuItemStatusUnavailable))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		items, err := svc.List(r.Context(), menu.ListFilter{
			Category: enums.MenuCategory(category),
			Status:   enums.MenuItemStatus(status),
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, items)
	}
}

func PublicMenuItem(svc menu.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "menu service unavailable"))
			return
		}
		item, err := svc.Get(r.Context(), chi.URLParam(r, "itemId"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, item)
	}
}

// PublicMenuLink returns the copyable menu URL shown under the table QR code.
func PublicMenuLink(svc MenuHandoff) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		responses.WriteSuccess(w, map[string]string{"url": svc.MenuLink()})
	}
}

func PublicMenuQR(svc MenuHandoff, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		png, err := svc.MenuQR()
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WritePNG(w, png)
	}
}

func menuCategories() []string {
	return []string{
		string(enums.MenuCategoryBreakfast),
		string(enums.MenuCategoryLunch),
		string(enums.MenuCategoryDinner),
		string(enums.MenuCategorySnacks),
		string(enums.MenuCategoryBeverages),
	}
}
