package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/angelmondragon/warungsunda-backend/api/responses"
	pkgAuth "github.com/angelmondragon/warungsunda-backend/pkg/auth"
	"github.com/angelmondragon/warungsunda-backend/pkg/auth/session"
	"github.com/angelmondragon/warungsunda-backend/pkg/config"
	pkgerrors "github.com/angelmondragon/warungsunda-backend/pkg/errors"
	"github.com/angelmondragon/warungsunda-backend/pkg/logger"
)

var errNoCredentials = errors.New("no credentials")

// Auth validates the session token from the session cookie or a bearer header
// and seeds the request context with the actor.
func Auth(cfg config.JWTConfig, verifier session.AccessSessionChecker, logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx, err := authenticate(r, cfg, verifier, logg)
			if err != nil {
				if errors.Is(err, errNoCredentials) {
					err = pkgerrors.New(pkgerrors.CodeUnauthorized, "authentication required")
				}
				responses.WriteError(r.Context(), logg, w, err)
				return
			}
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// OptionalAuth attaches the actor when a valid session is presented and
// otherwise lets the request continue anonymously.
func OptionalAuth(cfg config.JWTConfig, verifier session.AccessSessionChecker, logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx, err := authenticate(r, cfg, verifier, logg)
			if err != nil {
				if !errors.Is(err, errNoCredentials) && logg != nil {
					logg.Debug(logg.WithField(r.Context(), "error", err.Error()), "auth.optional_session_ignored")
				}
				next.ServeHTTP(w, r)
				return
			}
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func authenticate(r *http.Request, cfg config.JWTConfig, verifier session.AccessSessionChecker, logg *logger.Logger) (context.Context, error) {
	token := TokenFromRequest(r)
	if token == "" {
		return nil, errNoCredentials
	}

	claims, err := pkgAuth.ParseSessionToken(cfg, token)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeUnauthorized, err, "invalid token")
	}
	if claims.ID == "" {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "missing session id")
	}

	if verifier != nil {
		ok, err := verifier.HasSession(r.Context(), claims.ID)
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "validate session")
		}
		if !ok {
			return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "session unavailable")
		}
	}

	actor := pkgAuth.Actor{UserID: claims.UserID, Role: claims.Role}
	ctx := WithActor(r.Context(), actor)
	ctx = context.WithValue(ctx, ctxSessionID, claims.ID)
	if logg != nil {
		ctx = logg.WithUserID(ctx, actor.UserID)
		ctx = logg.WithActorRole(ctx, string(actor.Role))
	}
	return ctx, nil
}

// TokenFromRequest prefers the bearer header over the session cookie.
func TokenFromRequest(r *http.Request) string {
	if raw := strings.TrimSpace(r.Header.Get("Authorization")); raw != "" {
		if strings.HasPrefix(strings.ToLower(raw), "bearer ") {
			return strings.TrimSpace(raw[7:])
		}
		return raw
	}
	if cookie, err := r.Cookie(pkgAuth.SessionCookieName); err == nil {
		return strings.TrimSpace(cookie.Value)
	}
	return ""
}
