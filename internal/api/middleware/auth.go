package middleware

import (
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"

	"github.com/tagblog/tagblog/internal/core/ports"
)

// BearerAuth validates an API token and loads the matching user into context.
// It only acts when an Authorization header is present, so browser sessions
// handled by LoadUser pass through untouched.
func BearerAuth(secretKey string, auth ports.AuthService) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get("Authorization")
			if authHeader == "" {
				return next(c)
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid authorization header")
			}

			claims := jwt.MapClaims{}
			tkn, err := jwt.ParseWithClaims(parts[1], claims, func(token *jwt.Token) (interface{}, error) {
				if token.Method.Alg() != jwt.SigningMethodHS256.Alg() {
					return nil, jwt.ErrTokenSignatureInvalid
				}
				return []byte(secretKey), nil
			})
			if err != nil || !tkn.Valid {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
			}

			uid, ok := claims["uid"].(float64)
			if !ok {
				return echo.NewHTTPError(http.StatusUnauthorized, "token missing user identity")
			}

			user, err := auth.CurrentUser(c.Request().Context(), int64(uid))
			if err != nil || user == nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "unknown user")
			}

			c.Set(CurrentUserKey, user)
			return next(c)
		}
	}
}
