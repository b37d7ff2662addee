package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/tagblog/tagblog/internal/api/middleware"
	"github.com/tagblog/tagblog/internal/core/domain"
)

// ctxUser extracts the user resolved by the LoadUser/BearerAuth middleware
// and fast-fails before any service call. Mutating handlers sit behind
// RequireUser, so a missing user here means a wiring mistake rather than an
// ordinary anonymous request.
func ctxUser(c echo.Context) (*domain.User, error) {
	user, ok := c.Get(middleware.CurrentUserKey).(*domain.User)
	if !ok || user == nil {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "missing authenticated user")
	}
	return user, nil
}
