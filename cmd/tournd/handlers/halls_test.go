package handlers_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	httptestutil "github.com/openchess/tournhall/internal/testutils/http"
	apihalls "github.com/openchess/tournhall/pkg/api/types/halls"
	cachemock "github.com/openchess/tournhall/pkg/cache/mock"
	"github.com/openchess/tournhall/pkg/domain"
	dbhallmock "github.com/openchess/tournhall/pkg/domain/hall/db/mock"
	"github.com/openchess/tournhall/pkg/utils/cmp"

	"github.com/openchess/tournhall/cmd/tournd/handlers"
)

func TestFindHallsHandler(t *testing.T) {

	halls := []domain.Hall{
		{Id: 1, Name: "Grand Hall", Country: "Norway", Capacity: 120},
		{Id: 2, Name: "Riverside", Country: "Japan", Capacity: 60},
	}

	t.Run("it serves from the database on a cache miss and fills the cache", func(t *testing.T) {
		mckhall := dbhallmock.NewHallInterface()
		mckhall.Impl.Find = func(ctx context.Context) ([]domain.Hall, error) {
			return halls, nil
		}
		store := cachemock.NewStore()
		store.Impl.Get = func(ctx context.Context, key string) ([]byte, bool, error) {
			return nil, false, nil
		}
		store.Impl.Set = func(ctx context.Context, key string, value []byte, ttl time.Duration) error {
			return nil
		}

		e := echo.New()
		c, respRec := httptestutil.Get(e, "/api/halls")

		testee := handlers.FindHallsHandler(mckhall, store)
		if err := testee(c); err != nil {
			t.Fatal(err)
		}
		if respRec.Code != http.StatusOK {
			t.Fatalf("status code is not 200: %d", respRec.Code)
		}

		actual := []apihalls.Detail{}
		if err := json.Unmarshal(respRec.Body.Bytes(), &actual); err != nil {
			t.Fatal(err)
		}
		expected := []apihalls.Detail{
			{Id: 1, Name: "Grand Hall", Country: "Norway", Capacity: 120},
			{Id: 2, Name: "Riverside", Country: "Japan", Capacity: 60},
		}
		if !cmp.SliceEqWith(actual, expected, func(a, b apihalls.Detail) bool { return a.Equal(&b) }) {
			t.Errorf("unmatch: response: %+v", actual)
		}

		if store.Calls.Get.Times() != 1 || store.Calls.Get[0] != "halls" {
			t.Errorf("unmatch: cache reads: %+v", store.Calls.Get)
		}
		if store.Calls.Set.Times() != 1 {
			t.Error("cache is not filled")
		}
	})

	t.Run("it serves from the cache on a hit, not touching the database", func(t *testing.T) {
		cached, err := json.Marshal([]apihalls.Detail{
			{Id: 1, Name: "Grand Hall", Country: "Norway", Capacity: 120},
		})
		if err != nil {
			t.Fatal(err)
		}

		mckhall := dbhallmock.NewHallInterface() // no Impl: Find would panic
		store := cachemock.NewStore()
		store.Impl.Get = func(ctx context.Context, key string) ([]byte, bool, error) {
			return cached, true, nil
		}

		e := echo.New()
		c, respRec := httptestutil.Get(e, "/api/halls")

		testee := handlers.FindHallsHandler(mckhall, store)
		if err := testee(c); err != nil {
			t.Fatal(err)
		}
		if respRec.Code != http.StatusOK {
			t.Fatalf("status code is not 200: %d", respRec.Code)
		}
	})

	t.Run("it falls back to the database when the cache errors", func(t *testing.T) {
		mckhall := dbhallmock.NewHallInterface()
		mckhall.Impl.Find = func(ctx context.Context) ([]domain.Hall, error) {
			return halls, nil
		}
		store := cachemock.NewStore()
		store.Impl.Get = func(ctx context.Context, key string) ([]byte, bool, error) {
			return nil, false, errors.New("fake redis down")
		}
		store.Impl.Set = func(ctx context.Context, key string, value []byte, ttl time.Duration) error {
			return errors.New("fake redis down")
		}

		e := echo.New()
		c, respRec := httptestutil.Get(e, "/api/halls")

		testee := handlers.FindHallsHandler(mckhall, store)
		if err := testee(c); err != nil {
			t.Fatal(err)
		}
		if respRec.Code != http.StatusOK {
			t.Fatalf("status code is not 200: %d", respRec.Code)
		}
		if mckhall.Calls.Find.Times() != 1 {
			t.Error("database is not queried")
		}
	})
}

func TestRenameHallHandler(t *testing.T) {

	t.Run("it renames and drops the cache", func(t *testing.T) {
		mckhall := dbhallmock.NewHallInterface()
		mckhall.Impl.Rename = func(ctx context.Context, hallId int, name string) error {
			return nil
		}
		mckhall.Impl.Get = func(ctx context.Context, hallId int) (domain.Hall, error) {
			return domain.Hall{Id: 1, Name: "New Grand Hall", Country: "Norway", Capacity: 120}, nil
		}
		store := cachemock.NewStore()
		store.Impl.Delete = func(ctx context.Context, keys ...string) error {
			return nil
		}

		e := echo.New()
		c, respRec := httptestutil.Put(
			e, "/api/halls/1",
			strings.NewReader(`{"name": "New Grand Hall"}`),
			httptestutil.ContentType("application/json"),
		)
		c.SetParamNames("hallId")
		c.SetParamValues("1")

		testee := handlers.RenameHallHandler(mckhall, store, "hallId")
		if err := testee(c); err != nil {
			t.Fatal(err)
		}
		if respRec.Code != http.StatusOK {
			t.Fatalf("status code is not 200: %d", respRec.Code)
		}

		if mckhall.Calls.Rename.Times() != 1 {
			t.Fatal("HallInterface.Rename is not called")
		}
		if call := mckhall.Calls.Rename[0]; call.HallId != 1 || call.Name != "New Grand Hall" {
			t.Errorf("unmatch: Rename call: %+v", call)
		}
		if store.Calls.Delete.Times() != 1 {
			t.Error("cache is not dropped")
		}
	})

	t.Run("it responds 404 for an unknown hall", func(t *testing.T) {
		mckhall := dbhallmock.NewHallInterface()
		mckhall.Impl.Rename = func(ctx context.Context, hallId int, name string) error {
			return domain.ErrMissing
		}
		store := cachemock.NewStore()

		e := echo.New()
		c, _ := httptestutil.Put(
			e, "/api/halls/999",
			strings.NewReader(`{"name": "Anything"}`),
			httptestutil.ContentType("application/json"),
		)
		c.SetParamNames("hallId")
		c.SetParamValues("999")

		testee := handlers.RenameHallHandler(mckhall, store, "hallId")
		err := testee(c)
		httperr := new(echo.HTTPError)
		if !errors.As(err, &httperr) || httperr.Code != http.StatusNotFound {
			t.Errorf("unmatch: error: %+v", err)
		}
	})
}
