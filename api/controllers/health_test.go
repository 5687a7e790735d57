package controllers

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/angelmondragon/warungsunda-backend/pkg/config"
)

func TestHealthReady(t *testing.T) {
	cfg := &config.Config{App: config.AppConfig{Env: "test"}}

	rec := httptest.NewRecorder()
	HealthReady(cfg, nil, ReadinessCheck{Name: "db", Pinger: stubPinger{}})(rec, httptest.NewRequest(http.MethodGet, "/health/ready", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "test", rec.Header().Get("X-Warung-Env"))

	rec = httptest.NewRecorder()
	HealthReady(cfg, nil,
		ReadinessCheck{Name: "db", Pinger: stubPinger{}},
		ReadinessCheck{Name: "redis", Pinger: stubPinger{err: errors.New("connection refused")}},
	)(rec, httptest.NewRequest(http.MethodGet, "/health/ready", nil))
	require.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestPublicMenuHandoff(t *testing.T) {
	svc := &stubCheckoutService{}

	rec := httptest.NewRecorder()
	PublicMenuLink(svc)(rec, httptest.NewRequest(http.MethodGet, "/api/public/menu-link", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "http://warung.test/menu", decode[map[string]string](t, rec).Data["url"])

	rec = httptest.NewRecorder()
	PublicMenuQR(svc, nil)(rec, httptest.NewRequest(http.MethodGet, "/api/public/menu-qr", nil))
	require.Equal(t, "image/png", rec.Header().Get("Content-Type"))
}

func TestPublicMenuListRejectsUnknownCategory(t *testing.T) {
	rec := httptest.NewRecorder()
	PublicMenuList(newStubMenuService(nasiTimbel), nil)(rec, httptest.NewRequest(http.MethodGet, "/api/public/menu?category=desserts", nil))
	require.Equal(t, http.StatusBadRequest, rec.Code)

	rec = httptest.NewRecorder()
	PublicMenuList(newStubMenuService(nasiTimbel, esCendol), nil)(rec, httptest.NewRequest(http.MethodGet, "/api/public/menu?category=lunch", nil))
	require.Equal(t, http.StatusOK, rec.Code)
}
