package middleware

import (
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"

	"github.com/taskboard/taskboard-api/internal/core/domain"
)

// Context keys set by Auth for downstream middleware and handlers.
const (
	CtxUserID   = "user_id"
	CtxUsername = "username"
	CtxRole     = "role"
)

// Auth validates the bearer JWT and injects the principal's claims into the
// request context. A missing credential maps to 401, a token that cannot be
// verified (bad signature, wrong algorithm, expired) maps to 403; both are
// resolved by the central error handler.
func Auth(jwtSecret string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get("Authorization")
			if authHeader == "" {
				return domain.ErrMissingToken
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") || parts[1] == "" {
				return domain.ErrMissingToken
			}

			claims := jwt.MapClaims{}
			tkn, err := jwt.ParseWithClaims(parts[1], claims, func(token *jwt.Token) (interface{}, error) {
				if token.Method.Alg() != jwt.SigningMethodHS256.Alg() {
					return nil, jwt.ErrTokenSignatureInvalid
				}
				return []byte(jwtSecret), nil
			})
			if err != nil || !tkn.Valid {
				return domain.ErrInvalidToken
			}

			role, _ := claims[CtxRole].(string)
			if !domain.ValidRole(role) {
				return domain.ErrInvalidToken
			}

			c.Set(CtxUserID, claims[CtxUserID])
			c.Set(CtxUsername, claims[CtxUsername])
			c.Set(CtxRole, role)

			return next(c)
		}
	}
}

// Principal rebuilds the authenticated identity from the context values set
// by Auth. The role is always present when Auth ran; empty values mean the
// middleware was skipped.
func Principal(c echo.Context) domain.Principal {
	userID, _ := c.Get(CtxUserID).(string)
	username, _ := c.Get(CtxUsername).(string)
	role, _ := c.Get(CtxRole).(string)
	return domain.Principal{UserID: userID, Username: username, Role: role}
}
