package session

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// CookieSigner signs session ids so that a forged cookie is rejected before any store lookup
type CookieSigner struct {
	secret string
}

// NewCookieSigner creates a new cookie signer
func NewCookieSigner(secret string) *CookieSigner {
	return &CookieSigner{secret: secret}
}

// Sign returns an HS256 token carrying the session id and its expiry
func (cs *CookieSigner) Sign(sessionID string, expiresAt time.Time) (string, error) {
	claims := jwt.MapClaims{
		"sid": sessionID,
		"exp": expiresAt.Unix(),
		"iat": time.Now().Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString([]byte(cs.secret))
	if err != nil {
		return "", fmt.Errorf("failed to sign session cookie: %w", err)
	}

	return tokenString, nil
}

// Verify validates the token and returns the session id it carries
func (cs *CookieSigner) Verify(tokenString string) (string, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (any, error) {
		// Validate the signing method
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(cs.secret), nil
	})
	if err != nil {
		return "", fmt.Errorf("failed to parse session cookie: %w", err)
	}

	if !token.Valid {
		return "", fmt.Errorf("session cookie is invalid")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", fmt.Errorf("invalid session cookie claims")
	}

	sessionID, ok := claims["sid"].(string)
	if !ok || sessionID == "" {
		return "", fmt.Errorf("sid not found in session cookie")
	}

	return sessionID, nil
}
