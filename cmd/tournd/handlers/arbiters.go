package handlers

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	apiarbiters "github.com/openchess/tournhall/pkg/api/types/arbiters"
	apierr "github.com/openchess/tournhall/pkg/api/types/errors"
	"github.com/openchess/tournhall/pkg/domain"
	kdbarbiter "github.com/openchess/tournhall/pkg/domain/arbiter/db"
)

func ArbiterSummaryHandler(dbArbiter kdbarbiter.ArbiterInterface, paramKey string) echo.HandlerFunc {
	return func(c echo.Context) error {
		username := c.Param(paramKey)
		if err := requireSelfOrManager(c, username); err != nil {
			return err
		}

		ctx := c.Request().Context()
		summary, err := dbArbiter.Summary(ctx, username)
		if err != nil {
			if errors.Is(err, domain.ErrMissing) {
				return apierr.NotFound()
			}
			return apierr.InternalServerError(err)
		}

		return c.JSON(http.StatusOK, apiarbiters.ComposeSummary(summary))
	}
}
