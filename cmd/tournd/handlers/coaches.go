package handlers

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	apicoaches "github.com/openchess/tournhall/pkg/api/types/coaches"
	apierr "github.com/openchess/tournhall/pkg/api/types/errors"
	"github.com/openchess/tournhall/pkg/domain"
	kdbcoach "github.com/openchess/tournhall/pkg/domain/coach/db"
	"github.com/openchess/tournhall/pkg/utils/slices"
)

func CreateContractHandler(dbCoach kdbcoach.CoachInterface, paramKey string) echo.HandlerFunc {
	return func(c echo.Context) error {
		username := c.Param(paramKey)

		identity, ok := IdentityOf(c)
		if !ok {
			return apierr.Unauthorized("login first", nil)
		}
		// coaches sign their own contracts; managers may sign for anyone.
		if identity.Role == domain.RoleCoach && identity.Username != username {
			return apierr.Forbidden("coaches may sign contracts for themselves only")
		}

		req := apicoaches.ContractRequest{}
		if err := c.Bind(&req); err != nil {
			return apierr.BadRequest("send team_id, start_date and end_date as json", err)
		}
		contract, err := req.ToSpec(username)
		if err != nil {
			return apierr.BadRequest("dates should be formatted as YYYY-MM-DD", err)
		}
		if contract.EndDate.Before(contract.StartDate) {
			return apierr.BadRequest("end_date should not precede start_date", nil)
		}

		ctx := c.Request().Context()
		if err := dbCoach.NewContract(ctx, contract); err != nil {
			if errors.Is(err, domain.ErrMissing) {
				return apierr.BadRequest("the coach or team does not exist", err)
			}
			if errors.Is(err, domain.ErrContractOverlap) {
				return apierr.Conflict(
					"contract period overlaps an existing contract",
					apierr.WithAdvice("a coach serves one team at a time"),
					apierr.WithError(err),
				)
			}
			return apierr.InternalServerError(err)
		}

		return c.JSON(http.StatusCreated, apicoaches.ComposeContract(contract))
	}
}

func FindContractsHandler(dbCoach kdbcoach.CoachInterface, paramKey string) echo.HandlerFunc {
	return func(c echo.Context) error {
		username := c.Param(paramKey)

		ctx := c.Request().Context()
		contracts, err := dbCoach.Contracts(ctx, username)
		if err != nil {
			return apierr.InternalServerError(err)
		}

		return c.JSON(http.StatusOK, slices.Map(contracts, apicoaches.ComposeContract))
	}
}
