/*
Copyright 2026 OctoAgent Authors
SPDX-License-Identifier: Apache-2.0
*/

// Package auth gates non-discovery routes behind a bearer token. The
// discovery prefix stays open so clients can fetch the agent card before
// they authenticate.
package auth

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
)

// wellKnownPrefix is exempt from authentication.
const wellKnownPrefix = "/.well-known"

// ErrInvalidToken means the token was present but failed verification.
var ErrInvalidToken = errors.New("invalid token")

// Verifier checks a bearer token after the header shape has been validated.
type Verifier interface {
	Verify(ctx context.Context, token string) error
}

type insecure struct{}

func (insecure) Verify(context.Context, string) error { return nil }

// Insecure accepts any well-formed bearer token without verifying it.
// The middleware still rejects requests with a missing or malformed header.
func Insecure() Verifier { return insecure{} }

type hmacVerifier struct {
	secret []byte
}

// HMAC verifies tokens as HS256-signed JWTs against a shared secret.
func HMAC(secret []byte) Verifier { return hmacVerifier{secret: secret} }

func (v hmacVerifier) Verify(_ context.Context, token string) error {
	_, err := jwt.Parse(token, func(*jwt.Token) (any, error) {
		return v.secret, nil
	}, jwt.WithValidMethods([]string{"HS256"}))
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}
	return nil
}

type tokenKey struct{}

// TokenFromContext returns the bearer token the middleware attached, or ""
// when the request did not pass through the middleware.
func TokenFromContext(ctx context.Context) string {
	token, _ := ctx.Value(tokenKey{}).(string)
	return token
}

// Middleware enforces `Authorization: Bearer <token>` on everything outside
// the well-known prefix. The raw token is attached to the request context
// before the handler runs.
func Middleware(verifier Verifier) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if strings.HasPrefix(c.Request().URL.Path, wellKnownPrefix) {
				return next(c)
			}

			token, ok := bearerToken(c.Request().Header.Get(echo.HeaderAuthorization))
			if !ok {
				return c.JSON(http.StatusUnauthorized, map[string]string{
					"detail": "Missing or invalid Authorization header",
				})
			}

			if err := verifier.Verify(c.Request().Context(), token); err != nil {
				return c.JSON(http.StatusForbidden, map[string]string{
					"detail": "Invalid token",
				})
			}

			req := c.Request()
			c.SetRequest(req.WithContext(context.WithValue(req.Context(), tokenKey{}, token)))
			return next(c)
		}
	}
}

// bearerToken extracts the token from an Authorization header value. The
// scheme match is case-insensitive.
func bearerToken(header string) (string, bool) {
	scheme, token, found := strings.Cut(header, " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	if token == "" {
		return "", false
	}
	return token, true
}
