package middleware

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"io"
	"net"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/angelmondragon/warungsunda-backend/api/responses"
	"github.com/angelmondragon/warungsunda-backend/pkg/config"
	pkgerrors "github.com/angelmondragon/warungsunda-backend/pkg/errors"
	"github.com/angelmondragon/warungsunda-backend/pkg/logger"
)

// maxAuthBody bounds how much of a login/register body is buffered to find the e-mail.
const maxAuthBody = 64 << 10

// WindowLimiter counts hits per scope inside a fixed window.
type WindowLimiter interface {
	FixedWindowAllow(ctx context.Context, scope string, limit int64, window time.Duration) (bool, int64, error)
}

// AuthRateLimitPolicy throttles one auth surface (login, register) by client IP
// and by the hashed e-mail in the request body.
type AuthRateLimitPolicy struct {
	Name       string
	Window     time.Duration
	IPLimit    int64
	EmailLimit int64
}

// AuthRateLimitPolicyFromConfig builds the named policy from the configured limits.
func AuthRateLimitPolicyFromConfig(name string, cfg config.RateLimitConfig) AuthRateLimitPolicy {
	return AuthRateLimitPolicy{
		Name:       strings.ToLower(strings.TrimSpace(name)),
		Window:     cfg.AuthWindow,
		IPLimit:    int64(cfg.AuthIPLimit),
		EmailLimit: int64(cfg.AuthEmailLimit),
	}
}

func (p AuthRateLimitPolicy) active() bool {
	return p.Window > 0 && (p.IPLimit > 0 || p.EmailLimit > 0)
}

func (p AuthRateLimitPolicy) scope(kind, subject string) string {
	name := p.Name
	if name == "" {
		name = "auth"
	}
	return name + ":" + kind + ":" + subject
}

// AuthRateLimit rejects requests over the policy limits with 429. A nil
// limiter or an inactive policy passes every request through.
func AuthRateLimit(policy AuthRateLimitPolicy, limiter WindowLimiter, logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if limiter == nil || !policy.active() {
			return next
		}

		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()

			if policy.IPLimit > 0 {
				if ip := clientIP(r); ip != "" {
					if !checkWindow(ctx, w, logg, limiter, policy, "ip", ip, policy.IPLimit) {
						return
					}
				}
			}

			if policy.EmailLimit > 0 {
				body, err := io.ReadAll(io.LimitReader(r.Body, maxAuthBody))
				if err != nil {
					responses.WriteError(ctx, logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "unreadable request body"))
					return
				}
				r.Body = io.NopCloser(bytes.NewReader(body))

				if email := emailFromBody(body); email != "" {
					if !checkWindow(ctx, w, logg, limiter, policy, "email", hashEmail(email), policy.EmailLimit) {
						return
					}
				}
			}

			next.ServeHTTP(w, r)
		})
	}
}

// checkWindow reports whether the request may continue; otherwise the error
// response has already been written.
func checkWindow(ctx context.Context, w http.ResponseWriter, logg *logger.Logger, limiter WindowLimiter, policy AuthRateLimitPolicy, kind, subject string, limit int64) bool {
	allowed, count, err := limiter.FixedWindowAllow(ctx, policy.scope(kind, subject), limit, policy.Window)
	if err != nil {
		responses.WriteError(ctx, logg, w, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "rate limiter unavailable"))
		return false
	}
	if allowed {
		return true
	}

	if logg != nil {
		ctx = logg.WithFields(ctx, map[string]any{
			"policy":   policy.Name,
			"scope":    kind,
			"subject":  subject,
			"attempts": count,
			"limit":    limit,
		})
		logg.Warn(ctx, "auth.rate_limited")
	}
	w.Header().Set("Retry-After", strconv.Itoa(int(policy.Window.Round(time.Second).Seconds())))
	responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeRateLimit, "too many attempts, try again later"))
	return false
}

func clientIP(r *http.Request) string {
	if forwarded := r.Header.Get("X-Forwarded-For"); forwarded != "" {
		first, _, _ := strings.Cut(forwarded, ",")
		if ip := strings.TrimSpace(first); ip != "" {
			return ip
		}
	}
	if ip := strings.TrimSpace(r.Header.Get("X-Real-IP")); ip != "" {
		return ip
	}
	if host, _, err := net.SplitHostPort(r.RemoteAddr); err == nil {
		return host
	}
	return r.RemoteAddr
}

func emailFromBody(payload []byte) string {
	var body struct {
		Email string `json:"email"`
	}
	if err := json.Unmarshal(payload, &body); err != nil {
		return ""
	}
	return strings.ToLower(strings.TrimSpace(body.Email))
}

// hashEmail keeps raw addresses out of Redis keys and logs.
func hashEmail(email string) string {
	sum := sha256.Sum256([]byte(email))
	return hex.EncodeToString(sum[:8])
}
