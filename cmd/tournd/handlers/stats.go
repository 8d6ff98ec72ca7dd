package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	apierr "github.com/openchess/tournhall/pkg/api/types/errors"
	apistats "github.com/openchess/tournhall/pkg/api/types/stats"
	"github.com/openchess/tournhall/pkg/cache"
	"github.com/openchess/tournhall/pkg/domain"
	kdbstats "github.com/openchess/tournhall/pkg/domain/stats/db"
	"github.com/openchess/tournhall/pkg/utils/slices"
)

func GetStatsHandler(dbStats kdbstats.StatsInterface, store cache.Store) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx := c.Request().Context()

		found, err := cache.Through(
			ctx, store, "statistics", cache.TTLStatistics,
			func(ctx context.Context) ([]apistats.Stat, error) {
				stats, err := dbStats.Find(ctx)
				if err != nil {
					return nil, err
				}
				return slices.Map(stats, apistats.ComposeStat), nil
			},
		)
		if err != nil {
			return apierr.InternalServerError(err)
		}
		return c.JSON(http.StatusOK, found)
	}
}

func GetStatHandler(dbStats kdbstats.StatsInterface, store cache.Store, paramKey string) echo.HandlerFunc {
	return func(c echo.Context) error {
		name := c.Param(paramKey)

		ctx := c.Request().Context()
		stat, err := cache.Through(
			ctx, store, "statistics_"+name, cache.TTLStatistics,
			func(ctx context.Context) (apistats.Stat, error) {
				found, err := dbStats.Get(ctx, name)
				if err != nil {
					return apistats.Stat{}, err
				}
				return apistats.ComposeStat(found), nil
			},
		)
		if err != nil {
			if errors.Is(err, domain.ErrMissing) {
				return apierr.NotFound()
			}
			return apierr.InternalServerError(err)
		}
		return c.JSON(http.StatusOK, stat)
	}
}
