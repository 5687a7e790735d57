package auth

import (
	"github.com/angelmondragon/warungsunda-backend/pkg/enums"
	"github.com/golang-jwt/jwt/v5"
)

// SessionTokenPayload captures the data available when minting a session JWT.
type SessionTokenPayload struct {
	UserID string
	Role   enums.UserRole
	JTI    string
}

// SessionClaims represents the typed JWT carried in the session cookie.
type SessionClaims struct {
	UserID string         `json:"user_id"`
	Role   enums.UserRole `json:"role"`
	jwt.RegisteredClaims
}

// SessionCookieName is the cookie that carries the signed session token.
const SessionCookieName = "warung_sunda_session"
