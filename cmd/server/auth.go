// Authentication for the CoreDB HTTP server.
package main

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
)

// AuthConfig configures bearer-token authentication. A nil config or
// empty JWTSecret disables authentication entirely.
type AuthConfig struct {
	// JWTSecret is the shared secret for HS256 JWT validation.
	JWTSecret string

	// Issuer is the expected "iss" claim (optional).
	Issuer string

	// Audience is the expected "aud" claim (optional).
	Audience string
}

func (c *AuthConfig) enabled() bool {
	return c != nil && c.JWTSecret != ""
}

// validateJWT checks an HS256 token against the configured secret and
// claims.
func (c *AuthConfig) validateJWT(tokenString string) error {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(c.JWTSecret), nil
	}, jwt.WithValidMethods([]string{"HS256", "HS384", "HS512"}))
	if err != nil {
		return fmt.Errorf("invalid token: %w", err)
	}
	if !token.Valid {
		return errors.New("invalid token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return errors.New("invalid token claims")
	}

	if c.Issuer != "" {
		issuer, _ := claims.GetIssuer()
		if issuer != c.Issuer {
			return fmt.Errorf("invalid issuer: expected %s, got %s", c.Issuer, issuer)
		}
	}

	if c.Audience != "" {
		audiences, _ := claims.GetAudience()
		found := false
		for _, aud := range audiences {
			if aud == c.Audience {
				found = true
				break
			}
		}
		if !found {
			return fmt.Errorf("invalid audience: expected %s", c.Audience)
		}
	}

	return nil
}

// requireAuth wraps a handler with bearer-token validation. When
// authentication is not configured the handler runs untouched.
func (c *AuthConfig) requireAuth(next http.HandlerFunc) http.HandlerFunc {
	if !c.enabled() {
		return next
	}
	return func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			writeError(w, http.StatusUnauthorized, "missing bearer token")
			return
		}
		if err := c.validateJWT(strings.TrimPrefix(header, "Bearer ")); err != nil {
			writeError(w, http.StatusUnauthorized, err.Error())
			return
		}
		next(w, r)
	}
}
