package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/sgsm/taskboard/internal/core/domain"
)

// ctxActor builds the request actor from the claims injected by the Auth
// middleware. A missing subject or role means the middleware did not run or
// the token predates the current claim layout; both are rejected with 401.
func ctxActor(c echo.Context) (domain.Actor, error) {
	id, _ := c.Get("user_id").(string)
	role, _ := c.Get("role").(string)
	if id == "" || role == "" {
		return domain.Actor{}, echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}

	username, _ := c.Get("username").(string)
	return domain.Actor{
		ID:       id,
		Username: username,
		Role:     domain.GlobalRole(role),
	}, nil
}

// bindAndValidate decodes the request body into req and runs the registered
// validator when one is set.
func bindAndValidate(c echo.Context, req any) error {
	if err := c.Bind(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if c.Echo().Validator == nil {
		return nil
	}
	if err := c.Validate(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return nil
}
