package cart

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Storage persists the serialized cart for one client.
type Storage interface {
	Load(ctx context.Context) (string, bool, error)
	Save(ctx context.Context, value string, ttl time.Duration) error
	Delete(ctx context.Context) error
}

// MaxCookieBytes is the largest cookie value browsers reliably keep.
const MaxCookieBytes = 4096

var (
	// ErrCartTooLarge means the encoded cart no longer fits in a cookie.
	ErrCartTooLarge = errors.New("cart exceeds cookie size limit")
	// ErrUnsignedCart means the cookie was not issued by this server.
	ErrUnsignedCart = errors.New("cart cookie signature invalid")
)

var cartSigningMethod = jwt.SigningMethodHS256

// CookieOptions controls the attributes of cookies written by the cart.
// SigningKey is required by CookieStorage and unused by SessionStorage.
type CookieOptions struct {
	Name       string
	Secure     bool
	SigningKey []byte
}

type cartClaims struct {
	Lines string `json:"lines"`
	jwt.RegisteredClaims
}

// CookieStorage keeps the cart in an HTTP cookie bound to a single request.
// The JSON lines travel inside an HS256 token so a client cannot rewrite
// prices or totals. Writes are mirrored locally so later reads in the same
// request observe them.
type CookieStorage struct {
	w    http.ResponseWriter
	r    *http.Request
	opts CookieOptions

	written bool
	value   string
	present bool
}

func NewCookieStorage(w http.ResponseWriter, r *http.Request, opts CookieOptions) *CookieStorage {
	return &CookieStorage{w: w, r: r, opts: opts}
}

func (s *CookieStorage) Load(context.Context) (string, bool, error) {
	if s.written {
		return s.value, s.present, nil
	}
	cookie, err := s.r.Cookie(s.opts.Name)
	if err != nil || cookie.Value == "" {
		return "", false, nil
	}
	if len(s.opts.SigningKey) == 0 {
		return "", true, fmt.Errorf("cart signing key not configured")
	}

	claims := &cartClaims{}
	_, err = jwt.ParseWithClaims(cookie.Value, claims,
		func(*jwt.Token) (any, error) { return s.opts.SigningKey, nil },
		jwt.WithValidMethods([]string{cartSigningMethod.Alg()}),
	)
	if err != nil {
		return "", true, fmt.Errorf("%w: %v", ErrUnsignedCart, err)
	}
	return claims.Lines, true, nil
}

func (s *CookieStorage) Save(_ context.Context, value string, ttl time.Duration) error {
	if len(s.opts.SigningKey) == 0 {
		return fmt.Errorf("cart signing key not configured")
	}
	now := time.Now()
	signed, err := jwt.NewWithClaims(cartSigningMethod, cartClaims{
		Lines: value,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}).SignedString(s.opts.SigningKey)
	if err != nil {
		return fmt.Errorf("signing cart cookie: %w", err)
	}
	if len(signed) > MaxCookieBytes {
		return fmt.Errorf("%w: %d bytes", ErrCartTooLarge, len(signed))
	}

	http.SetCookie(s.w, &http.Cookie{
		Name:     s.opts.Name,
		Value:    signed,
		Path:     "/",
		MaxAge:   int(ttl.Seconds()),
		Expires:  now.Add(ttl),
		HttpOnly: true,
		Secure:   s.opts.Secure,
		SameSite: http.SameSiteStrictMode,
	})
	s.written, s.value, s.present = true, value, true
	return nil
}

func (s *CookieStorage) Delete(context.Context) error {
	http.SetCookie(s.w, &http.Cookie{
		Name:     s.opts.Name,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		Expires:  time.Unix(0, 0),
		HttpOnly: true,
		Secure:   s.opts.Secure,
		SameSite: http.SameSiteStrictMode,
	})
	s.written, s.value, s.present = true, "", false
	return nil
}

// MemoryStorage holds a single serialized cart in process memory.
type MemoryStorage struct {
	value   string
	present bool
}

func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{}
}

func (s *MemoryStorage) Load(context.Context) (string, bool, error) {
	return s.value, s.present, nil
}

func (s *MemoryStorage) Save(_ context.Context, value string, _ time.Duration) error {
	s.value, s.present = value, true
	return nil
}

func (s *MemoryStorage) Delete(context.Context) error {
	s.value, s.present = "", false
	return nil
}
