package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/craftdesk/client-portal/internal/core/domain"
)

// ctxPrincipal extracts the principal injected by the Auth middleware and
// fast-fails before any service call: both claims must be present, their
// absence means the middleware did not run or the token is structurally
// unusable.
func ctxPrincipal(c echo.Context) (domain.Principal, error) {
	userID, _ := c.Get("user_id").(string)
	role, _ := c.Get("role").(string)
	if userID == "" || role == "" {
		return domain.Principal{}, echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}
	return domain.Principal{UserID: userID, Role: role}, nil
}
