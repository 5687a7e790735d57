package app

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/require"

	"github.com/angelmondragon/warungsunda-backend/api/routes"
	"github.com/angelmondragon/warungsunda-backend/internal/fixtures"
	"github.com/angelmondragon/warungsunda-backend/pkg/config"
	"github.com/angelmondragon/warungsunda-backend/pkg/db/dbtest"
	"github.com/angelmondragon/warungsunda-backend/pkg/logger"
)

func testConfig() *config.Config {
	return &config.Config{
		App: config.AppConfig{Env: "test", CORSOrigins: []string{"http://localhost:3000"}},
		DB:  config.DBConfig{Driver: config.DBDriverSQLite},
		JWT: config.JWTConfig{Secret: "test-secret", Issuer: "warung-sunda", ExpirationMinutes: 60},
		Password: config.PasswordConfig{
			ArgonMemoryKB: 64, ArgonTime: 1, ArgonParallelism: 1, ArgonSaltLen: 16, ArgonKeyLen: 32,
		},
		Cart: config.CartConfig{Backend: config.CartBackendCookie, TTL: time.Hour},
		Checkout: config.CheckoutConfig{
			ReadyOffset:    15 * time.Minute,
			TaxBasisPoints: 500,
			GatewayTimeout: time.Second,
			MenuURL:        "http://warung.test/menu",
			MerchantName:   "Warung Sunda",
		},
		FeatureFlags: config.FeatureFlagsConfig{SeedFixtures: true},
	}
}

type client struct {
	t    *testing.T
	base string
	http *http.Client
}

func newStack(t *testing.T) (*httptest.Server, *client) {
	t.Helper()
	opts := Options{
		Config:   testConfig(),
		Logger:   logger.Nop(),
		DB:       dbtest.New(t),
		Registry: prometheus.NewRegistry(),
	}
	require.NoError(t, Seed(context.Background(), opts))

	deps, err := Build(opts)
	require.NoError(t, err)

	srv := httptest.NewServer(routes.NewRouter(deps))
	t.Cleanup(srv.Close)
	return srv, newClient(t, srv)
}

func newClient(t *testing.T, srv *httptest.Server) *client {
	jar, err := cookiejar.New(nil)
	require.NoError(t, err)
	return &client{t: t, base: srv.URL, http: &http.Client{Jar: jar}}
}

func (c *client) call(method, path, body string) (int, map[string]any) {
	c.t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req, err := http.NewRequest(method, c.base+path, reader)
	require.NoError(c.t, err)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	require.NoError(c.t, err)
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(c.t, err)
	out := map[string]any{}
	if len(raw) > 0 && strings.HasPrefix(resp.Header.Get("Content-Type"), "application/json") {
		require.NoError(c.t, json.Unmarshal(raw, &out))
	}
	return resp.StatusCode, out
}

func (c *client) login(email string) {
	c.t.Helper()
	status, _ := c.call(http.MethodPost, "/api/v1/auth/login", `{"email":"`+email+`","password":"`+fixtures.DefaultPassword+`"}`)
	require.Equal(c.t, http.StatusOK, status)
}

// setCookie plants a cookie in the client's jar as if the server had sent it.
func (c *client) setCookie(name, value string) {
	c.t.Helper()
	u, err := url.Parse(c.base)
	require.NoError(c.t, err)
	c.http.Jar.SetCookies(u, []*http.Cookie{{Name: name, Value: value, Path: "/"}})
}

// signedCart signs raw cart JSON the way the cookie backend does.
func signedCart(t *testing.T, key, lines string) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"lines": lines,
		"exp":   time.Now().Add(time.Hour).Unix(),
	}).SignedString([]byte(key))
	require.NoError(t, err)
	return token
}

func data(body map[string]any) map[string]any {
	out, _ := body["data"].(map[string]any)
	return out
}

func errorCode(body map[string]any) string {
	e, _ := body["error"].(map[string]any)
	code, _ := e["code"].(string)
	return code
}

func TestWalletCheckoutAndCancelRoundTrip(t *testing.T) {
	srv, budi := newStack(t)
	budi.login("budi@example.com")

	status, body := budi.call(http.MethodPost, "/api/v1/cart/items", `{"itemId":"item-1","quantity":2}`)
	require.Equal(t, http.StatusCreated, status)
	require.EqualValues(t, 50000, data(body)["subtotal"])

	status, body = budi.call(http.MethodPost, "/api/v1/checkout", `{"paymentMethod":"wallet"}`)
	require.Equal(t, http.StatusCreated, status)
	order := data(body)
	require.EqualValues(t, 50000, order["totalAmount"])
	require.Equal(t, "confirmed", order["status"])
	orderID := order["id"].(string)

	status, body = budi.call(http.MethodGet, "/api/v1/wallet", "")
	require.Equal(t, http.StatusOK, status)
	require.EqualValues(t, 100000, data(body)["balance"])

	status, body = budi.call(http.MethodGet, "/api/v1/cart", "")
	require.Equal(t, http.StatusOK, status)
	require.Empty(t, data(body)["items"])

	siti := newClient(t, srv)
	siti.login("siti@example.com")
	status, body = siti.call(http.MethodPost, "/api/v1/orders/"+orderID+"/cancel", "")
	require.Equal(t, http.StatusForbidden, status, "customers may only cancel their own orders")

	status, body = budi.call(http.MethodPost, "/api/v1/orders/"+orderID+"/cancel", "")
	require.Equal(t, http.StatusOK, status)
	require.Equal(t, "cancelled", data(body)["status"])
	require.Equal(t, "refunded", data(body)["paymentStatus"])

	status, body = budi.call(http.MethodGet, "/api/v1/wallet", "")
	require.EqualValues(t, 150000, data(body)["balance"])

	status, body = budi.call(http.MethodPost, "/api/v1/orders/"+orderID+"/cancel", "")
	require.Equal(t, http.StatusUnprocessableEntity, status)
	require.Equal(t, "STATE_CONFLICT", errorCode(body))
}

func TestCheckoutEmptyCartAndInsufficientFunds(t *testing.T) {
	_, siti := newStack(t)
	siti.login("siti@example.com")

	status, body := siti.call(http.MethodPost, "/api/v1/checkout", `{"paymentMethod":"wallet"}`)
	require.Equal(t, http.StatusBadRequest, status)
	require.Equal(t, "VALIDATION_ERROR", errorCode(body))

	status, _ = siti.call(http.MethodPost, "/api/v1/cart/items", `{"itemId":"item-6","quantity":3}`)
	require.Equal(t, http.StatusCreated, status)

	status, body = siti.call(http.MethodPost, "/api/v1/checkout", `{"paymentMethod":"wallet"}`)
	require.Equal(t, http.StatusPaymentRequired, status)
	require.Equal(t, "INSUFFICIENT_FUNDS", errorCode(body))

	status, body = siti.call(http.MethodGet, "/api/v1/wallet", "")
	require.EqualValues(t, 75000, data(body)["balance"])
}

func TestCheckoutRejectsForgedCartCookie(t *testing.T) {
	_, budi := newStack(t)
	budi.login("budi@example.com")
	forged := `[{"itemId":"item-1","name":"Nasi Timbel","price":25000,"quantity":100,"total":1}]`

	// plain JSON is not a cart the server issued, so it reads as empty
	budi.setCookie("warung_sunda_cart", url.QueryEscape(forged))
	status, body := budi.call(http.MethodGet, "/api/v1/cart", "")
	require.Equal(t, http.StatusOK, status)
	require.Empty(t, data(body)["items"])

	status, body = budi.call(http.MethodPost, "/api/v1/checkout", `{"paymentMethod":"wallet"}`)
	require.Equal(t, http.StatusBadRequest, status)
	require.Equal(t, "VALIDATION_ERROR", errorCode(body))

	// a validly signed cart is still checked line by line against the menu
	budi.setCookie("warung_sunda_cart", signedCart(t, "test-secret", forged))
	status, body = budi.call(http.MethodPost, "/api/v1/checkout", `{"paymentMethod":"wallet"}`)
	require.Equal(t, http.StatusBadRequest, status)
	require.Equal(t, "VALIDATION_ERROR", errorCode(body))

	status, body = budi.call(http.MethodGet, "/api/v1/wallet", "")
	require.Equal(t, http.StatusOK, status)
	require.EqualValues(t, 150000, data(body)["balance"])

	status, body = budi.call(http.MethodGet, "/api/v1/orders", "")
	require.Equal(t, http.StatusOK, status)
	before := body["data"]

	ghost := `[{"itemId":"item-999","name":"Rendang","price":1000,"quantity":1,"total":1000}]`
	budi.setCookie("warung_sunda_cart", signedCart(t, "test-secret", ghost))
	status, body = budi.call(http.MethodPost, "/api/v1/checkout/anonymous", `{"customerName":"Tamu"}`)
	require.Equal(t, http.StatusNotFound, status)
	require.Equal(t, "NOT_FOUND", errorCode(body))

	_, body = budi.call(http.MethodGet, "/api/v1/orders", "")
	require.Equal(t, before, body["data"], "rejected carts must not create orders")
}

func TestAnonymousCheckoutAndPublicTracking(t *testing.T) {
	_, guest := newStack(t)

	status, _ := guest.call(http.MethodPost, "/api/v1/checkout", `{"paymentMethod":"qris"}`)
	require.Equal(t, http.StatusUnauthorized, status)

	status, _ = guest.call(http.MethodPost, "/api/v1/cart/items", `{"itemId":"item-11","quantity":1,"specialInstructions":"  kurang manis  "}`)
	require.Equal(t, http.StatusCreated, status)

	status, body := guest.call(http.MethodPost, "/api/v1/checkout/anonymous", `{"customerName":"Asep"}`)
	require.Equal(t, http.StatusCreated, status)
	order := data(body)
	require.Equal(t, "anonymous", order["customerId"])
	require.Equal(t, "qris", order["paymentMethod"])

	status, body = guest.call(http.MethodGet, "/api/v1/orders/"+order["id"].(string), "")
	require.Equal(t, http.StatusOK, status)
	require.Equal(t, "Asep", data(body)["customerName"])
}

func TestStaffWorkflow(t *testing.T) {
	srv, budi := newStack(t)

	status, _ := budi.call(http.MethodGet, "/api/v1/admin/inventory", "")
	require.Equal(t, http.StatusUnauthorized, status)

	budi.login("budi@example.com")
	status, _ = budi.call(http.MethodPatch, "/api/v1/admin/orders/order-1002/status", `{"status":"ready"}`)
	require.Equal(t, http.StatusForbidden, status)

	staff := newClient(t, srv)
	staff.login("dadang@warungsunda.id")

	status, body := staff.call(http.MethodPatch, "/api/v1/admin/orders/order-1002/status", `{"status":"ready"}`)
	require.Equal(t, http.StatusOK, status)
	require.Equal(t, "ready", data(body)["status"])

	status, body = staff.call(http.MethodPatch, "/api/v1/admin/orders/order-1001/status", `{"status":"preparing"}`)
	require.Equal(t, http.StatusUnprocessableEntity, status)

	status, _ = staff.call(http.MethodPatch, "/api/v1/admin/orders/order-missing/status", `{"status":"ready"}`)
	require.Equal(t, http.StatusNotFound, status)

	status, _ = staff.call(http.MethodPatch, "/api/v1/admin/menu/item-12/availability", `{"status":"unavailable"}`)
	require.Equal(t, http.StatusOK, status)

	status, body = budi.call(http.MethodPost, "/api/v1/cart/items", `{"itemId":"item-12","quantity":1}`)
	require.Equal(t, http.StatusUnprocessableEntity, status)

	status, body = staff.call(http.MethodGet, "/api/v1/admin/inventory?lowStock=true", "")
	require.Equal(t, http.StatusOK, status)
	require.Len(t, body["data"], 2)
}

func TestLogoutRevokesSession(t *testing.T) {
	_, budi := newStack(t)
	budi.login("budi@example.com")

	status, _ := budi.call(http.MethodGet, "/api/v1/auth/me", "")
	require.Equal(t, http.StatusOK, status)

	status, _ = budi.call(http.MethodPost, "/api/v1/auth/logout", "")
	require.Equal(t, http.StatusNoContent, status)

	status, _ = budi.call(http.MethodGet, "/api/v1/auth/me", "")
	require.Equal(t, http.StatusUnauthorized, status)
}

func TestHealthAndMetrics(t *testing.T) {
	srv, c := newStack(t)

	status, _ := c.call(http.MethodGet, "/health/ready", "")
	require.Equal(t, http.StatusOK, status)

	resp, err := http.Get(srv.URL + "/metrics")
	require.NoError(t, err)
	defer resp.Body.Close()
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.Contains(t, string(raw), "warung_http_requests_total")
}

func TestBuildRequiresDatabase(t *testing.T) {
	_, err := Build(Options{Config: testConfig()})
	require.Error(t, err)
}
