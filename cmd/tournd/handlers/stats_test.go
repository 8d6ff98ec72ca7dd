package handlers_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	httptestutil "github.com/openchess/tournhall/internal/testutils/http"
	apistats "github.com/openchess/tournhall/pkg/api/types/stats"
	"github.com/openchess/tournhall/pkg/cache"
	cachemock "github.com/openchess/tournhall/pkg/cache/mock"
	"github.com/openchess/tournhall/pkg/domain"
	dbstatsmock "github.com/openchess/tournhall/pkg/domain/stats/db/mock"

	"github.com/openchess/tournhall/cmd/tournd/handlers"
)

func statFixture() domain.Stat {
	return domain.Stat{
		Name:       domain.StatTotalMatches,
		Category:   domain.StatCategoryMatches,
		Payload:    json.RawMessage(`{"total":42}`),
		ComputedAt: time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC),
	}
}

func TestGetStatsHandler(t *testing.T) {

	t.Run("it lists statistics from the database and caches them", func(t *testing.T) {
		mckstats := dbstatsmock.NewStatsInterface()
		mckstats.Impl.Find = func(ctx context.Context) ([]domain.Stat, error) {
			return []domain.Stat{statFixture()}, nil
		}
		store := cachemock.NewStore()
		store.Impl.Get = func(ctx context.Context, key string) ([]byte, bool, error) {
			return nil, false, nil
		}
		store.Impl.Set = func(ctx context.Context, key string, value []byte, ttl time.Duration) error {
			return nil
		}

		e := echo.New()
		c, respRec := httptestutil.Get(e, "/api/stats")

		testee := handlers.GetStatsHandler(mckstats, store)
		if err := testee(c); err != nil {
			t.Fatal(err)
		}
		if respRec.Code != http.StatusOK {
			t.Fatalf("status code is not 200: %d", respRec.Code)
		}

		actual := []apistats.Stat{}
		if err := json.Unmarshal(respRec.Body.Bytes(), &actual); err != nil {
			t.Fatal(err)
		}
		expected := apistats.ComposeStat(statFixture())
		if len(actual) != 1 || !actual[0].Equal(&expected) {
			t.Errorf("unexpected response: %+v", actual)
		}

		if store.Calls.Set.Times() != 1 || store.Calls.Set[0].Key != "statistics" {
			t.Errorf("unexpected Set calls: %+v", store.Calls.Set)
		}
		if store.Calls.Set[0].TTL != cache.TTLStatistics {
			t.Errorf("unexpected ttl: %s", store.Calls.Set[0].TTL)
		}
	})

	t.Run("it serves cached statistics without touching the database", func(t *testing.T) {
		cached, err := json.Marshal([]apistats.Stat{apistats.ComposeStat(statFixture())})
		if err != nil {
			t.Fatal(err)
		}

		// Find stays unset: touching the database would panic.
		mckstats := dbstatsmock.NewStatsInterface()
		store := cachemock.NewStore()
		store.Impl.Get = func(ctx context.Context, key string) ([]byte, bool, error) {
			return cached, true, nil
		}

		e := echo.New()
		c, respRec := httptestutil.Get(e, "/api/stats")

		testee := handlers.GetStatsHandler(mckstats, store)
		if err := testee(c); err != nil {
			t.Fatal(err)
		}
		if respRec.Code != http.StatusOK {
			t.Fatalf("status code is not 200: %d", respRec.Code)
		}
	})

	t.Run("it answers 500 when the database fails", func(t *testing.T) {
		mckstats := dbstatsmock.NewStatsInterface()
		mckstats.Impl.Find = func(ctx context.Context) ([]domain.Stat, error) {
			return nil, errors.New("fake database error")
		}
		store := cachemock.NewStore()
		store.Impl.Get = func(ctx context.Context, key string) ([]byte, bool, error) {
			return nil, false, nil
		}

		e := echo.New()
		c, _ := httptestutil.Get(e, "/api/stats")

		testee := handlers.GetStatsHandler(mckstats, store)
		err := testee(c)
		httperr := new(echo.HTTPError)
		if !errors.As(err, &httperr) || httperr.Code != http.StatusInternalServerError {
			t.Errorf("unmatch: error: %+v", err)
		}
	})
}

func TestGetStatHandler(t *testing.T) {

	t.Run("it serves a single statistic by name", func(t *testing.T) {
		mckstats := dbstatsmock.NewStatsInterface()
		mckstats.Impl.Get = func(ctx context.Context, name string) (domain.Stat, error) {
			if name != domain.StatTotalMatches {
				t.Errorf("unmatch: name: %s", name)
			}
			return statFixture(), nil
		}
		store := cachemock.NewStore()
		store.Impl.Get = func(ctx context.Context, key string) ([]byte, bool, error) {
			return nil, false, nil
		}
		store.Impl.Set = func(ctx context.Context, key string, value []byte, ttl time.Duration) error {
			return nil
		}

		e := echo.New()
		c, respRec := httptestutil.Get(e, "/api/stats/total_matches")
		c.SetParamNames("name")
		c.SetParamValues(domain.StatTotalMatches)

		testee := handlers.GetStatHandler(mckstats, store, "name")
		if err := testee(c); err != nil {
			t.Fatal(err)
		}
		if respRec.Code != http.StatusOK {
			t.Fatalf("status code is not 200: %d", respRec.Code)
		}

		actual := apistats.Stat{}
		if err := json.Unmarshal(respRec.Body.Bytes(), &actual); err != nil {
			t.Fatal(err)
		}
		expected := apistats.ComposeStat(statFixture())
		if !actual.Equal(&expected) {
			t.Errorf("unexpected response: %+v", actual)
		}

		// each stat is cached under its own key.
		if store.Calls.Set.Times() != 1 ||
			store.Calls.Set[0].Key != "statistics_"+domain.StatTotalMatches {
			t.Errorf("unexpected Set calls: %+v", store.Calls.Set)
		}
	})

	t.Run("it answers 404 for an unknown statistic", func(t *testing.T) {
		mckstats := dbstatsmock.NewStatsInterface()
		mckstats.Impl.Get = func(ctx context.Context, name string) (domain.Stat, error) {
			return domain.Stat{}, domain.ErrMissing
		}
		store := cachemock.NewStore()
		store.Impl.Get = func(ctx context.Context, key string) ([]byte, bool, error) {
			return nil, false, nil
		}

		e := echo.New()
		c, _ := httptestutil.Get(e, "/api/stats/no_such_stat")
		c.SetParamNames("name")
		c.SetParamValues("no_such_stat")

		testee := handlers.GetStatHandler(mckstats, store, "name")
		err := testee(c)
		httperr := new(echo.HTTPError)
		if !errors.As(err, &httperr) || httperr.Code != http.StatusNotFound {
			t.Errorf("unmatch: error: %+v", err)
		}
	})
}
