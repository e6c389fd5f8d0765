package handlers

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
)

// actorID extracts the acting user's id from the user_id query parameter.
// Identity arrives pre-resolved from the gateway; handlers trust it as
// given.
func actorID(c echo.Context) (uint, error) {
	raw := c.QueryParam("user_id")
	if raw == "" {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "user_id is required")
	}
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || id == 0 {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "Invalid user_id")
	}
	return uint(id), nil
}

// pathID parses a numeric path parameter.
func pathID(c echo.Context, name string) (uint, error) {
	id, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "Invalid "+name)
	}
	return uint(id), nil
}

// pagination reads skip/limit query parameters with bounds.
func pagination(c echo.Context, defaultLimit, maxLimit int) (skip, limit int) {
	skip, _ = strconv.Atoi(c.QueryParam("skip"))
	limit, _ = strconv.Atoi(c.QueryParam("limit"))
	if skip < 0 {
		skip = 0
	}
	if limit < 1 || limit > maxLimit {
		limit = defaultLimit
	}
	return skip, limit
}
