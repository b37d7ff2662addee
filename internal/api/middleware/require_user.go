package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/tagblog/tagblog/internal/core/domain"
)

// LoginPath is where unauthenticated browsers are sent by RequireUser.
const LoginPath = "/auth/login"

// RequireUser guards operations that need an authenticated user. Browsers
// are redirected to the login page; API clients (negotiating JSON) get a 401.
// It relies on LoadUser (or the bearer Auth middleware) having run first.
func RequireUser() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if _, ok := c.Get(CurrentUserKey).(*domain.User); ok {
				return next(c)
			}
			if wantsJSON(c) {
				return echo.NewHTTPError(http.StatusUnauthorized, "login required")
			}
			return c.Redirect(http.StatusSeeOther, LoginPath)
		}
	}
}

func wantsJSON(c echo.Context) bool {
	accept := c.Request().Header.Get(echo.HeaderAccept)
	contentType := c.Request().Header.Get(echo.HeaderContentType)
	return accept == echo.MIMEApplicationJSON || contentType == echo.MIMEApplicationJSON
}
