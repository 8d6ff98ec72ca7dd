package tests

import (
	"context"
	"errors"
	"testing"
	"time"

	testutilctx "github.com/openchess/tournhall/internal/testutils/context"
	"github.com/openchess/tournhall/pkg/conn/db/postgres/pool/testenv"
	"github.com/openchess/tournhall/pkg/domain"
	kpgcoach "github.com/openchess/tournhall/pkg/domain/coach/db/postgres"
	"github.com/openchess/tournhall/pkg/internal/db/postgres/tables"
	"github.com/openchess/tournhall/pkg/utils/try"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func staff() tables.Operation {
	return tables.Operation{
		Users: []tables.User{
			{Username: "vladimir", PasswordHash: "#vladimir", Role: "coach"},
			{Username: "susan", PasswordHash: "#susan", Role: "coach"},
		},
		Coaches: []tables.Coach{
			{Username: "vladimir", Name: "Vladimir", Surname: "K.", Nationality: "RU"},
			{Username: "susan", Name: "Susan", Surname: "P.", Nationality: "US"},
		},
		Teams: []tables.Team{
			{Id: 10, Name: "Alpha"},
			{Id: 20, Name: "Beta"},
		},
	}
}

func TestNewContract(t *testing.T) {
	ctx, cancel := testutilctx.WithTest(context.Background(), t)
	defer cancel()
	poolBroaker := testenv.NewPoolBroaker(ctx, t)

	t.Run("it signs contracts over disjoint periods", func(t *testing.T) {
		pool := poolBroaker.GetPool(ctx, t)
		given := staff()
		if err := given.Apply(ctx, pool); err != nil {
			t.Fatal(err)
		}
		testee := kpgcoach.New(pool)

		contracts := []domain.CoachContract{
			{
				CoachUsername: "vladimir", TeamId: 10,
				StartDate: day(2024, 1, 1), EndDate: day(2024, 6, 30),
			},
			{
				CoachUsername: "vladimir", TeamId: 20,
				StartDate: day(2024, 7, 1), EndDate: day(2024, 12, 31),
			},
		}
		for _, contract := range contracts {
			if err := testee.NewContract(ctx, contract); err != nil {
				t.Fatal(err)
			}
		}

		actual := try.To(testee.Contracts(ctx, "vladimir")).OrFatal(t)
		if len(actual) != len(contracts) {
			t.Fatalf("unexpected contracts: %+v", actual)
		}
		for i := range actual {
			if actual[i].CoachUsername != contracts[i].CoachUsername ||
				actual[i].TeamId != contracts[i].TeamId ||
				!actual[i].StartDate.Equal(contracts[i].StartDate) ||
				!actual[i].EndDate.Equal(contracts[i].EndDate) {
				t.Errorf("unmatch: actual = %+v, expected = %+v", actual[i], contracts[i])
			}
		}
	})

	for name, when := range map[string]domain.CoachContract{
		"a period sharing a single day": {
			CoachUsername: "vladimir", TeamId: 20,
			StartDate: day(2024, 6, 30), EndDate: day(2024, 9, 30),
		},
		"a period inside the existing one": {
			CoachUsername: "vladimir", TeamId: 20,
			StartDate: day(2024, 3, 1), EndDate: day(2024, 3, 31),
		},
		"a period containing the existing one": {
			CoachUsername: "vladimir", TeamId: 20,
			StartDate: day(2023, 12, 1), EndDate: day(2024, 7, 31),
		},
	} {
		t.Run("it rejects "+name, func(t *testing.T) {
			pool := poolBroaker.GetPool(ctx, t)
			given := staff()
			given.CoachContracts = []tables.CoachContract{
				{
					CoachUsername: "vladimir", TeamId: 10,
					StartDate: day(2024, 1, 1), EndDate: day(2024, 6, 30),
				},
			}
			if err := given.Apply(ctx, pool); err != nil {
				t.Fatal(err)
			}
			testee := kpgcoach.New(pool)

			if err := testee.NewContract(ctx, when); !errors.Is(err, domain.ErrContractOverlap) {
				t.Errorf("unexpected error: %s", err)
			}
		})
	}

	t.Run("another coach may serve the team over the same period", func(t *testing.T) {
		pool := poolBroaker.GetPool(ctx, t)
		given := staff()
		given.CoachContracts = []tables.CoachContract{
			{
				CoachUsername: "vladimir", TeamId: 10,
				StartDate: day(2024, 1, 1), EndDate: day(2024, 6, 30),
			},
		}
		if err := given.Apply(ctx, pool); err != nil {
			t.Fatal(err)
		}
		testee := kpgcoach.New(pool)

		if err := testee.NewContract(ctx, domain.CoachContract{
			CoachUsername: "susan", TeamId: 10,
			StartDate: day(2024, 1, 1), EndDate: day(2024, 6, 30),
		}); err != nil {
			t.Errorf("unexpected error: %s", err)
		}
	})

	t.Run("it errors for an unknown coach", func(t *testing.T) {
		pool := poolBroaker.GetPool(ctx, t)
		given := staff()
		if err := given.Apply(ctx, pool); err != nil {
			t.Fatal(err)
		}
		testee := kpgcoach.New(pool)

		if err := testee.NewContract(ctx, domain.CoachContract{
			CoachUsername: "nobody", TeamId: 10,
			StartDate: day(2024, 1, 1), EndDate: day(2024, 6, 30),
		}); !errors.Is(err, domain.ErrMissing) {
			t.Errorf("unexpected error: %s", err)
		}
	})

	t.Run("it errors for an unknown team", func(t *testing.T) {
		pool := poolBroaker.GetPool(ctx, t)
		given := staff()
		if err := given.Apply(ctx, pool); err != nil {
			t.Fatal(err)
		}
		testee := kpgcoach.New(pool)

		if err := testee.NewContract(ctx, domain.CoachContract{
			CoachUsername: "vladimir", TeamId: 404,
			StartDate: day(2024, 1, 1), EndDate: day(2024, 6, 30),
		}); !errors.Is(err, domain.ErrMissing) {
			t.Errorf("unexpected error: %s", err)
		}
	})

	t.Run("it returns an empty list for a coach without contracts", func(t *testing.T) {
		pool := poolBroaker.GetPool(ctx, t)
		given := staff()
		if err := given.Apply(ctx, pool); err != nil {
			t.Fatal(err)
		}
		testee := kpgcoach.New(pool)

		actual := try.To(testee.Contracts(ctx, "susan")).OrFatal(t)
		if len(actual) != 0 {
			t.Errorf("unexpected contracts: %+v", actual)
		}
	})
}
