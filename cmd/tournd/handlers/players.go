package handlers

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	apierr "github.com/openchess/tournhall/pkg/api/types/errors"
	apiplayers "github.com/openchess/tournhall/pkg/api/types/players"
	"github.com/openchess/tournhall/pkg/domain"
	kdbplayer "github.com/openchess/tournhall/pkg/domain/player/db"
)

// requireSelfOrManager guards personal reports.
// The subject user themself and managers may read; everyone else is refused.
func requireSelfOrManager(c echo.Context, username string) error {
	identity, ok := IdentityOf(c)
	if !ok {
		return apierr.Unauthorized("login first", nil)
	}
	if identity.Role != domain.RoleManager && identity.Username != username {
		return apierr.Forbidden("this report belongs to someone else")
	}
	return nil
}

func PlayerSummaryHandler(dbPlayer kdbplayer.PlayerInterface, paramKey string) echo.HandlerFunc {
	return func(c echo.Context) error {
		username := c.Param(paramKey)
		if err := requireSelfOrManager(c, username); err != nil {
			return err
		}

		ctx := c.Request().Context()
		summary, err := dbPlayer.Summary(ctx, username)
		if err != nil {
			if errors.Is(err, domain.ErrMissing) {
				return apierr.NotFound()
			}
			return apierr.InternalServerError(err)
		}

		return c.JSON(http.StatusOK, apiplayers.ComposeSummary(summary))
	}
}

func PlayerOpponentsHandler(dbPlayer kdbplayer.PlayerInterface, paramKey string) echo.HandlerFunc {
	return func(c echo.Context) error {
		username := c.Param(paramKey)
		if err := requireSelfOrManager(c, username); err != nil {
			return err
		}

		ctx := c.Request().Context()
		report, err := dbPlayer.Opponents(ctx, username)
		if err != nil {
			if errors.Is(err, domain.ErrMissing) {
				return apierr.NotFound()
			}
			return apierr.InternalServerError(err)
		}

		return c.JSON(http.StatusOK, apiplayers.ComposeOpponentReport(report))
	}
}
