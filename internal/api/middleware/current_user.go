package middleware

import (
	"github.com/labstack/echo/v4"

	"github.com/tagblog/tagblog/internal/core/ports"
	"github.com/tagblog/tagblog/internal/session"
)

// CurrentUserKey is the context key the loader stores the resolved user under.
const CurrentUserKey = "current_user"

// LoadUser resolves the session's user id to a row before any handler runs.
// A missing cookie, a stale id or a deleted user all resolve to anonymous;
// this middleware never fails a request.
func LoadUser(auth ports.AuthService) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			sess, err := session.Current(c)
			if err != nil {
				return next(c)
			}
			id, ok := sess.UserID()
			if !ok {
				return next(c)
			}
			user, err := auth.CurrentUser(c.Request().Context(), id)
			if err == nil && user != nil {
				c.Set(CurrentUserKey, user)
			}
			return next(c)
		}
	}
}
