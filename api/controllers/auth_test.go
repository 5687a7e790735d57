package controllers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/angelmondragon/warungsunda-backend/api/middleware"
	"github.com/angelmondragon/warungsunda-backend/internal/auth"
	"github.com/angelmondragon/warungsunda-backend/internal/users"
	pkgAuth "github.com/angelmondragon/warungsunda-backend/pkg/auth"
	"github.com/angelmondragon/warungsunda-backend/pkg/enums"
	pkgerrors "github.com/angelmondragon/warungsunda-backend/pkg/errors"
)

type stubAuthService struct {
	session      *auth.SessionResponse
	err          error
	revoked      string
	registerSeen auth.RegisterRequest
}

func (s *stubAuthService) Login(ctx context.Context, req auth.LoginRequest) (*auth.SessionResponse, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.session, nil
}

func (s *stubAuthService) Register(ctx context.Context, req auth.RegisterRequest) (*auth.SessionResponse, error) {
	s.registerSeen = req
	if s.err != nil {
		return nil, s.err
	}
	return s.session, nil
}

func (s *stubAuthService) Logout(ctx context.Context, token string) error {
	s.revoked = token
	return nil
}

func (s *stubAuthService) Me(ctx context.Context, userID string) (*users.UserDTO, error) {
	if userID == "" {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "authentication required")
	}
	return &users.UserDTO{ID: userID, Role: enums.UserRoleCustomer}, nil
}

func sessionFixture() *auth.SessionResponse {
	return &auth.SessionResponse{
		Token:     "signed.jwt.token",
		ExpiresAt: time.Now().Add(time.Hour),
		User:      &users.UserDTO{ID: "user-1", Email: "budi@warungsunda.id", Role: enums.UserRoleCustomer},
	}
}

func findCookie(rec *httptest.ResponseRecorder, name string) *http.Cookie {
	for _, c := range rec.Result().Cookies() {
		if c.Name == name {
			return c
		}
	}
	return nil
}

func TestAuthLoginSetsSessionCookie(t *testing.T) {
	svc := &stubAuthService{session: sessionFixture()}
	handler := AuthLogin(svc, SessionCookie{}, nil)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", strings.NewReader(`{"email":"budi@warungsunda.id","password":"password123"}`))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	cookie := findCookie(rec, pkgAuth.SessionCookieName)
	require.NotNil(t, cookie)
	require.Equal(t, "signed.jwt.token", cookie.Value)
	require.True(t, cookie.HttpOnly)
	require.Equal(t, http.SameSiteStrictMode, cookie.SameSite)
}

func TestAuthLoginRejectsBadCredentials(t *testing.T) {
	svc := &stubAuthService{err: pkgerrors.New(pkgerrors.CodeUnauthorized, "invalid credentials")}
	handler := AuthLogin(svc, SessionCookie{}, nil)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", strings.NewReader(`{"email":"budi@warungsunda.id","password":"nope"}`))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	require.Equal(t, http.StatusUnauthorized, rec.Code)
	require.Nil(t, findCookie(rec, pkgAuth.SessionCookieName))
}

func TestAuthRegisterCreated(t *testing.T) {
	svc := &stubAuthService{session: sessionFixture()}
	handler := AuthRegister(svc, SessionCookie{}, nil)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/register", strings.NewReader(`{"name":"Budi","email":"budi@warungsunda.id","password":"password123"}`))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code)
	require.Equal(t, "Budi", svc.registerSeen.Name)
}

func TestAuthRegisterRejectsShortPassword(t *testing.T) {
	handler := AuthRegister(&stubAuthService{session: sessionFixture()}, SessionCookie{}, nil)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/register", strings.NewReader(`{"name":"Budi","email":"budi@warungsunda.id","password":"short"}`))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAuthLogoutRevokesAndClearsCookie(t *testing.T) {
	svc := &stubAuthService{}
	handler := AuthLogout(svc, SessionCookie{}, nil)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/logout", nil)
	req.AddCookie(&http.Cookie{Name: pkgAuth.SessionCookieName, Value: "signed.jwt.token"})
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	require.Equal(t, http.StatusNoContent, rec.Code)
	require.Equal(t, "signed.jwt.token", svc.revoked)
	cookie := findCookie(rec, pkgAuth.SessionCookieName)
	require.NotNil(t, cookie)
	require.Empty(t, cookie.Value)
	require.Less(t, cookie.MaxAge, 0)
}

func TestAuthMeUsesContextUser(t *testing.T) {
	handler := AuthMe(&stubAuthService{}, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/auth/me", nil)
	req = req.WithContext(middleware.WithActor(req.Context(), pkgAuth.Actor{UserID: "user-2", Role: enums.UserRoleCustomer}))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "user-2", decode[users.UserDTO](t, rec).Data.ID)
}
