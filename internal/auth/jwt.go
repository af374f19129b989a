// Package auth provides session tokens and password hashing.
//
// ────────────────────────────────────────────────────────────────────
// LEARNING NOTE — what is a JWT?
// ────────────────────────────────────────────────────────────────────
// A JSON Web Token (JWT) is a compact, self-contained way to represent
// claims between two parties. It has three Base64-encoded sections
// separated by dots:
//
//	HEADER.PAYLOAD.SIGNATURE
//
// The PAYLOAD carries our custom claims (user_id, role) plus standard
// ones (jti, expiry, issued-at). The SIGNATURE is an HMAC-SHA256 of
// HEADER+PAYLOAD under a secret only the server knows.
//
// LEARNING NOTE — why a session id inside a signed token?
// A valid signature alone cannot be revoked: the token stays good until
// it expires. The jti claim names a row in the local sessions table, so
// logging out or deleting a user ends the session immediately even
// though the token itself is still correctly signed.
package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Claims are the JWT claims embedded in each token. The session id travels
// in the registered jti claim (RegisteredClaims.ID).
type Claims struct {
	UserID string `json:"user_id"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}

// SessionID returns the session the token was issued for.
func (c *Claims) SessionID() string { return c.ID }

// TokenDuration is how long a session token stays valid after being issued.
const TokenDuration = 72 * time.Hour

// GenerateToken creates a signed JWT for the given user and session.
func GenerateToken(userID, role, sessionID, secret string) (string, error) {
	now := time.Now()
	claims := Claims{
		UserID: userID,
		Role:   role,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        sessionID,
			ExpiresAt: jwt.NewNumericDate(now.Add(TokenDuration)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(secret))
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// ParseToken validates a JWT string and returns the embedded claims.
// It rejects tokens with:
//   - wrong or missing signature
//   - expired tokens (ExpiresAt in the past)
//   - unexpected signing algorithm (algorithm confusion attack prevention)
//   - no session id
func ParseToken(tokenStr, secret string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(t *jwt.Token) (any, error) {
		// Guard against "alg:none" or RS256 tokens being passed to an HS256 server.
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil {
		return nil, fmt.Errorf("parse token: %w", err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, errors.New("invalid token")
	}
	if claims.ID == "" {
		return nil, errors.New("token has no session")
	}
	return claims, nil
}
