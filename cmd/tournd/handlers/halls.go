package handlers

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	apierr "github.com/openchess/tournhall/pkg/api/types/errors"
	apihalls "github.com/openchess/tournhall/pkg/api/types/halls"
	"github.com/openchess/tournhall/pkg/cache"
	"github.com/openchess/tournhall/pkg/domain"
	kdbhall "github.com/openchess/tournhall/pkg/domain/hall/db"
	"github.com/openchess/tournhall/pkg/utils/slices"
)

func FindHallsHandler(dbHall kdbhall.HallInterface, store cache.Store) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx := c.Request().Context()

		found, err := cache.Through(
			ctx, store, "halls", cache.TTLHalls,
			func(ctx context.Context) ([]apihalls.Detail, error) {
				halls, err := dbHall.Find(ctx)
				if err != nil {
					return nil, err
				}
				return slices.Map(halls, apihalls.ComposeDetail), nil
			},
		)
		if err != nil {
			return apierr.InternalServerError(err)
		}
		return c.JSON(http.StatusOK, found)
	}
}

func GetHallTablesHandler(dbHall kdbhall.HallInterface, store cache.Store, paramKey string) echo.HandlerFunc {
	return func(c echo.Context) error {
		hallId, err := strconv.Atoi(c.Param(paramKey))
		if err != nil {
			return apierr.BadRequest("hall id should be an integer", err)
		}

		ctx := c.Request().Context()
		tables, err := cache.Through(
			ctx, store, "tables_"+strconv.Itoa(hallId), cache.TTLTables,
			func(ctx context.Context) ([]apihalls.Table, error) {
				if _, err := dbHall.Get(ctx, hallId); err != nil {
					return nil, err
				}
				found, err := dbHall.Tables(ctx, hallId)
				if err != nil {
					return nil, err
				}
				return slices.Map(found, apihalls.ComposeTable), nil
			},
		)
		if err != nil {
			if errors.Is(err, domain.ErrMissing) {
				return apierr.NotFound()
			}
			return apierr.InternalServerError(err)
		}
		return c.JSON(http.StatusOK, tables)
	}
}

func RenameHallHandler(dbHall kdbhall.HallInterface, store cache.Store, paramKey string) echo.HandlerFunc {
	return func(c echo.Context) error {
		hallId, err := strconv.Atoi(c.Param(paramKey))
		if err != nil {
			return apierr.BadRequest("hall id should be an integer", err)
		}

		req := apihalls.RenameRequest{}
		if err := c.Bind(&req); err != nil {
			return apierr.BadRequest("send the new name as json", err)
		}
		if req.Name == "" {
			return apierr.BadRequest("name should not be empty", nil)
		}

		ctx := c.Request().Context()
		if err := dbHall.Rename(ctx, hallId, req.Name); err != nil {
			if errors.Is(err, domain.ErrMissing) {
				return apierr.NotFound()
			}
			return apierr.InternalServerError(err)
		}

		// stale cache would otherwise serve the old name for TTLHalls.
		if err := store.Delete(ctx, "halls"); err != nil {
			c.Logger().Warnf("failed to drop halls cache: %s", err)
		}

		hall, err := dbHall.Get(ctx, hallId)
		if err != nil {
			return apierr.InternalServerError(err)
		}
		return c.JSON(http.StatusOK, apihalls.ComposeDetail(hall))
	}
}
