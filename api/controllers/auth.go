package controllers

import (
	"net/http"
	"time"

	"github.com/angelmondragon/warungsunda-backend/api/middleware"
	"github.com/angelmondragon/warungsunda-backend/api/responses"
	"github.com/angelmondragon/warungsunda-backend/api/validators"
	"github.com/angelmondragon/warungsunda-backend/internal/auth"
	pkgAuth "github.com/angelmondragon/warungsunda-backend/pkg/auth"
	pkgerrors "github.com/angelmondragon/warungsunda-backend/pkg/errors"
	"github.com/angelmondragon/warungsunda-backend/pkg/logger"
)

// SessionCookie controls how the session token cookie is written.
type SessionCookie struct {
	Secure bool
}

func (c SessionCookie) set(w http.ResponseWriter, session *auth.SessionResponse) {
	http.SetCookie(w, &http.Cookie{
		Name:     pkgAuth.SessionCookieName,
		Value:    session.Token,
		Path:     "/",
		Expires:  session.ExpiresAt,
		MaxAge:   int(time.Until(session.ExpiresAt).Seconds()),
		HttpOnly: true,
		Secure:   c.Secure,
		SameSite: http.SameSiteStrictMode,
	})
}

func (c SessionCookie) clear(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     pkgAuth.SessionCookieName,
		Value:    "",
		Path:     "/",
		Expires:  time.Unix(0, 0),
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   c.Secure,
		SameSite: http.SameSiteStrictMode,
	})
}

// AuthLogin wires the login endpoint into the HTTP layer.
func AuthLogin(svc auth.Service, cookie SessionCookie, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "auth service unavailable"))
			return
		}

		var body auth.LoginRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		result, err := svc.Login(r.Context(), body)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		cookie.set(w, result)
		responses.WriteSuccess(w, result)
	}
}

// AuthRegister creates a customer account and signs it in.
func AuthRegister(svc auth.Service, cookie SessionCookie, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "auth service unavailable"))
			return
		}

		var body auth.RegisterRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		result, err := svc.Register(r.Context(), body)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		cookie.set(w, result)
		responses.WriteSuccessStatus(w, http.StatusCreated, result)
	}
}

// AuthLogout revokes the presented session, if any, and always clears the cookie.
func AuthLogout(svc auth.Service, cookie SessionCookie, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "auth service unavailable"))
			return
		}

		if token := middleware.TokenFromRequest(r); token != "" {
			if err := svc.Logout(r.Context(), token); err != nil {
				responses.WriteError(r.Context(), logg, w, err)
				return
			}
		}

		cookie.clear(w)
		w.WriteHeader(http.StatusNoContent)
	}
}

func AuthMe(svc auth.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "auth service unavailable"))
			return
		}
		user, err := svc.Me(r.Context(), middleware.UserIDFromContext(r.Context()))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, user)
	}
}
