package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/brightpaths/org-system/internal/api/middleware"
	"github.com/brightpaths/org-system/internal/core/domain"
)

// ctxClaims extracts the identity injected by the JWTAuth middleware and
// fast-fails before any service call: a missing user_id means the route was
// registered without the middleware, which is a wiring bug, not a client
// error, but 401 is still the only safe answer.
func ctxClaims(c echo.Context) (actorID string, role domain.Role, err error) {
	actorID, _ = c.Get(middleware.CtxUserID).(string)
	if actorID == "" {
		return "", "", echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}

	roleStr, _ := c.Get(middleware.CtxRole).(string)
	return actorID, domain.Role(roleStr), nil
}
