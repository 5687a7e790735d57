package cart

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	redislib "github.com/redis/go-redis/v9"
)

// KV is the key/value surface a server-side cart needs. *redis.Client satisfies it.
type KV interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	Del(ctx context.Context, keys ...string) error
	CartKey(sessionID string) string
}

// SessionStorage keeps the cart server-side under a key derived from a
// cart-session cookie. The session id is minted on first write.
type SessionStorage struct {
	kv   KV
	w    http.ResponseWriter
	r    *http.Request
	opts CookieOptions

	sessionID string
}

func NewSessionStorage(kv KV, w http.ResponseWriter, r *http.Request, opts CookieOptions) *SessionStorage {
	s := &SessionStorage{kv: kv, w: w, r: r, opts: opts}
	if cookie, err := r.Cookie(opts.Name); err == nil {
		if _, parseErr := uuid.Parse(cookie.Value); parseErr == nil {
			s.sessionID = cookie.Value
		}
	}
	return s
}

// SessionID returns the cart session id, empty until one exists.
func (s *SessionStorage) SessionID() string {
	return s.sessionID
}

func (s *SessionStorage) Load(ctx context.Context) (string, bool, error) {
	if s.sessionID == "" {
		return "", false, nil
	}
	value, err := s.kv.Get(ctx, s.kv.CartKey(s.sessionID))
	if err != nil {
		if isMiss(err) {
			return "", false, nil
		}
		return "", false, err
	}
	return value, true, nil
}

func (s *SessionStorage) Save(ctx context.Context, value string, ttl time.Duration) error {
	if s.sessionID == "" {
		s.sessionID = uuid.NewString()
	}
	if err := s.kv.Set(ctx, s.kv.CartKey(s.sessionID), value, ttl); err != nil {
		return err
	}
	// refresh the id cookie so it outlives the stored value
	http.SetCookie(s.w, &http.Cookie{
		Name:     s.opts.Name,
		Value:    s.sessionID,
		Path:     "/",
		MaxAge:   int(ttl.Seconds()),
		Expires:  time.Now().Add(ttl),
		HttpOnly: true,
		Secure:   s.opts.Secure,
		SameSite: http.SameSiteStrictMode,
	})
	return nil
}

func (s *SessionStorage) Delete(ctx context.Context) error {
	if s.sessionID == "" {
		return nil
	}
	return s.kv.Del(ctx, s.kv.CartKey(s.sessionID))
}

func isMiss(err error) bool {
	return errors.Is(err, redislib.Nil)
}

var errUnsupportedValue = errors.New("cart kv accepts string or []byte values")

type memoryEntry struct {
	value     string
	expiresAt time.Time
}

// MemoryKV is an in-process KV used by the memory cart backend. Misses
// return redis.Nil so both backends read the same way.
type MemoryKV struct {
	mu   sync.Mutex
	now  func() time.Time
	data map[string]memoryEntry
}

func NewMemoryKV() *MemoryKV {
	return &MemoryKV{now: time.Now, data: make(map[string]memoryEntry)}
}

func (m *MemoryKV) Get(_ context.Context, key string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	entry, ok := m.data[key]
	if !ok {
		return "", redislib.Nil
	}
	if !entry.expiresAt.IsZero() && !m.now().Before(entry.expiresAt) {
		delete(m.data, key)
		return "", redislib.Nil
	}
	return entry.value, nil
}

func (m *MemoryKV) Set(_ context.Context, key string, value any, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	entry := memoryEntry{}
	switch v := value.(type) {
	case string:
		entry.value = v
	case []byte:
		entry.value = string(v)
	default:
		return errUnsupportedValue
	}
	if ttl > 0 {
		entry.expiresAt = m.now().Add(ttl)
	}
	m.data[key] = entry
	return nil
}

func (m *MemoryKV) Del(_ context.Context, keys ...string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, key := range keys {
		delete(m.data, key)
	}
	return nil
}

func (m *MemoryKV) CartKey(sessionID string) string {
	return "cart:" + sessionID
}

// Len reports how many carts are stored.
func (m *MemoryKV) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.data)
}
