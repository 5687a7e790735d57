package cart

import (
	"fmt"
	"net/http"

	"github.com/angelmondragon/warungsunda-backend/pkg/config"
	"github.com/angelmondragon/warungsunda-backend/pkg/logger"
)

// Factory builds a per-request Store for the configured backend.
type Factory struct {
	cfg  config.CartConfig
	kv   KV
	logg *logger.Logger
}

// NewFactory validates the backend wiring. kv is required by the redis and
// memory backends and ignored by the cookie backend, which needs a signing key.
func NewFactory(cfg config.CartConfig, kv KV, logg *logger.Logger) (*Factory, error) {
	switch cfg.Backend {
	case config.CartBackendCookie, "":
		cfg.Backend = config.CartBackendCookie
		if cfg.SigningKey == "" {
			return nil, fmt.Errorf("cart backend %q requires a signing key", cfg.Backend)
		}
	case config.CartBackendRedis, config.CartBackendMemory:
		if kv == nil {
			return nil, fmt.Errorf("cart backend %q requires a key/value store", cfg.Backend)
		}
	default:
		return nil, fmt.Errorf("unsupported cart backend %q", cfg.Backend)
	}
	if cfg.CookieName == "" {
		cfg.CookieName = "warung_sunda_cart"
	}
	if cfg.SessionCookie == "" {
		cfg.SessionCookie = "warung_sunda_cart_sid"
	}
	if cfg.TTL <= 0 {
		cfg.TTL = DefaultTTL
	}
	if logg == nil {
		logg = logger.Nop()
	}
	return &Factory{cfg: cfg, kv: kv, logg: logg}, nil
}

// Backend reports the resolved backend name.
func (f *Factory) Backend() string {
	return f.cfg.Backend
}

// For returns a Store bound to the request/response pair.
func (f *Factory) For(w http.ResponseWriter, r *http.Request) *Store {
	var storage Storage
	switch f.cfg.Backend {
	case config.CartBackendCookie:
		storage = NewCookieStorage(w, r, CookieOptions{
			Name:       f.cfg.CookieName,
			Secure:     f.cfg.SecureCookie,
			SigningKey: []byte(f.cfg.SigningKey),
		})
	default:
		storage = NewSessionStorage(f.kv, w, r, CookieOptions{Name: f.cfg.SessionCookie, Secure: f.cfg.SecureCookie})
	}
	return NewStore(storage, f.cfg.TTL, f.logg)
}
