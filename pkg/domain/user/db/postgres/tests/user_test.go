package tests

import (
	"context"
	"errors"
	"testing"
	"time"

	testutilctx "github.com/openchess/tournhall/internal/testutils/context"
	"github.com/openchess/tournhall/pkg/conn/db/postgres/pool/testenv"
	"github.com/openchess/tournhall/pkg/domain"
	"github.com/openchess/tournhall/pkg/internal/db/postgres/tables"
	kpguser "github.com/openchess/tournhall/pkg/domain/user/db/postgres"
	"github.com/openchess/tournhall/pkg/utils/cmp"
	"github.com/openchess/tournhall/pkg/utils/pointer"
	"github.com/openchess/tournhall/pkg/utils/try"
)

func TestNew(t *testing.T) {
	ctx, cancel := testutilctx.WithTest(context.Background(), t)
	defer cancel()
	poolBroaker := testenv.NewPoolBroaker(ctx, t)

	t.Run("it registers a player with their teams", func(t *testing.T) {
		pool := poolBroaker.GetPool(ctx, t)
		given := tables.Operation{
			Teams: []tables.Team{
				{Id: 10, Name: "Alpha"},
				{Id: 20, Name: "Beta"},
			},
		}
		if err := given.Apply(ctx, pool); err != nil {
			t.Fatal(err)
		}
		testee := kpguser.New(pool)

		born := time.Date(1990, 11, 30, 0, 0, 0, 0, time.UTC)
		if err := testee.New(ctx, domain.NewUser{
			Username:     "magnus",
			PasswordHash: "#magnus",
			Role:         domain.RolePlayer,
			Player: &domain.PlayerProfile{
				Name: "Magnus", Surname: "C.", Nationality: "NO",
				DateOfBirth: born, EloRating: 2830,
				FideId: pointer.Ref("1503014"),
				Teams:  []int{20, 10},
			},
		}); err != nil {
			t.Fatal(err)
		}

		user := try.To(testee.Get(ctx, "magnus")).OrFatal(t)
		if user.Username != "magnus" || user.PasswordHash != "#magnus" || user.Role != domain.RolePlayer {
			t.Errorf("unexpected user: %+v", user)
		}

		player := try.To(testee.GetPlayer(ctx, "magnus")).OrFatal(t)
		if player.Name != "Magnus" || player.EloRating != 2830 ||
			!player.DateOfBirth.Equal(born) ||
			player.FideId == nil || *player.FideId != "1503014" {
			t.Errorf("unexpected player: %+v", player)
		}
		if !cmp.SliceContentEq(player.Teams, []int{10, 20}) {
			t.Errorf("unexpected teams: %v", player.Teams)
		}
	})

	t.Run("it registers a manager", func(t *testing.T) {
		pool := poolBroaker.GetPool(ctx, t)
		testee := kpguser.New(pool)

		if err := testee.New(ctx, domain.NewUser{
			Username: "arkady", PasswordHash: "#arkady", Role: domain.RoleManager,
		}); err != nil {
			t.Fatal(err)
		}

		var registered int
		if err := pool.QueryRow(
			ctx, `select count(*) from "managers" where "username" = 'arkady'`,
		).Scan(&registered); err != nil {
			t.Fatal(err)
		}
		if registered != 1 {
			t.Errorf("manager row is not registered")
		}
	})

	t.Run("it registers an arbiter with certifications", func(t *testing.T) {
		pool := poolBroaker.GetPool(ctx, t)
		testee := kpguser.New(pool)

		if err := testee.New(ctx, domain.NewUser{
			Username: "judit", PasswordHash: "#judit", Role: domain.RoleArbiter,
			Arbiter: &domain.ArbiterProfile{
				Name: "Judit", Surname: "P.", Nationality: "HU",
				ExperienceLevel: "international",
				Certifications:  []string{"FIDE Arbiter", "International Arbiter"},
			},
		}); err != nil {
			t.Fatal(err)
		}

		arbiter := try.To(testee.GetArbiter(ctx, "judit")).OrFatal(t)
		if arbiter.ExperienceLevel != "international" {
			t.Errorf("unexpected arbiter: %+v", arbiter)
		}
		if !cmp.SliceContentEq(arbiter.Certifications, []string{"FIDE Arbiter", "International Arbiter"}) {
			t.Errorf("unexpected certifications: %v", arbiter.Certifications)
		}
	})

	t.Run("it registers a coach with certifications", func(t *testing.T) {
		pool := poolBroaker.GetPool(ctx, t)
		testee := kpguser.New(pool)

		if err := testee.New(ctx, domain.NewUser{
			Username: "vladimir", PasswordHash: "#vladimir", Role: domain.RoleCoach,
			Coach: &domain.CoachProfile{
				Name: "Vladimir", Surname: "K.", Nationality: "RU",
				Certifications: []string{"FIDE Trainer"},
			},
		}); err != nil {
			t.Fatal(err)
		}

		coach := try.To(testee.GetCoach(ctx, "vladimir")).OrFatal(t)
		if coach.Name != "Vladimir" ||
			!cmp.SliceContentEq(coach.Certifications, []string{"FIDE Trainer"}) {
			t.Errorf("unexpected coach: %+v", coach)
		}
	})

	t.Run("it rejects a username taken already", func(t *testing.T) {
		pool := poolBroaker.GetPool(ctx, t)
		given := tables.Operation{
			Users: []tables.User{
				{Username: "arkady", PasswordHash: "#arkady", Role: "manager"},
			},
			Managers: []tables.Manager{{Username: "arkady"}},
		}
		if err := given.Apply(ctx, pool); err != nil {
			t.Fatal(err)
		}
		testee := kpguser.New(pool)

		err := testee.New(ctx, domain.NewUser{
			Username: "arkady", PasswordHash: "#other", Role: domain.RoleManager,
		})
		if !errors.Is(err, domain.ErrAlreadyExists) {
			t.Errorf("unexpected error: %s", err)
		}
	})

	t.Run("it rejects a player naming an unknown team", func(t *testing.T) {
		pool := poolBroaker.GetPool(ctx, t)
		testee := kpguser.New(pool)

		err := testee.New(ctx, domain.NewUser{
			Username: "hikaru", PasswordHash: "#hikaru", Role: domain.RolePlayer,
			Player: &domain.PlayerProfile{
				Name: "Hikaru", Surname: "N.", Nationality: "US",
				DateOfBirth: time.Date(1987, 12, 9, 0, 0, 0, 0, time.UTC),
				EloRating:   2780,
				Teams:       []int{404},
			},
		})
		if !errors.Is(err, domain.ErrMissing) {
			t.Errorf("unexpected error: %s", err)
		}

		// the whole registration rolls back.
		if _, err := testee.Get(ctx, "hikaru"); !errors.Is(err, domain.ErrMissing) {
			t.Errorf("user should not be registered: %s", err)
		}
	})
}

func TestGet(t *testing.T) {
	ctx, cancel := testutilctx.WithTest(context.Background(), t)
	defer cancel()
	poolBroaker := testenv.NewPoolBroaker(ctx, t)
	pool := poolBroaker.GetPool(ctx, t)
	testee := kpguser.New(pool)

	if _, err := testee.Get(ctx, "nobody"); !errors.Is(err, domain.ErrMissing) {
		t.Errorf("unexpected error: %s", err)
	}
	if _, err := testee.GetPlayer(ctx, "nobody"); !errors.Is(err, domain.ErrMissing) {
		t.Errorf("unexpected error: %s", err)
	}
	if _, err := testee.GetCoach(ctx, "nobody"); !errors.Is(err, domain.ErrMissing) {
		t.Errorf("unexpected error: %s", err)
	}
	if _, err := testee.GetArbiter(ctx, "nobody"); !errors.Is(err, domain.ErrMissing) {
		t.Errorf("unexpected error: %s", err)
	}
}
