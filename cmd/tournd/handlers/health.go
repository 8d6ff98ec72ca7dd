package handlers

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"
	apierr "github.com/openchess/tournhall/pkg/api/types/errors"
)

func HealthHandler(ping func(ctx context.Context) error) echo.HandlerFunc {
	return func(c echo.Context) error {
		if err := ping(c.Request().Context()); err != nil {
			return apierr.ServiceUnavailable("database is unreachable", err)
		}
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	}
}
