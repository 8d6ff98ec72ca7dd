// Package tables declares the premise of database tests.
//
// An Operation lists rows to be inserted before the testee runs.
// Fields follow the table layout of the schema repository.
package tables

import (
	"context"
	"time"

	kpool "github.com/openchess/tournhall/pkg/conn/db/postgres/pool"
	xe "github.com/openchess/tournhall/pkg/errors"
)

type User struct {
	Username     string
	PasswordHash string
	Role         string
}

type Manager struct {
	Username string
}

type Title struct {
	Id   int
	Name string
}

type Player struct {
	Username    string
	Name        string
	Surname     string
	Nationality string
	DateOfBirth time.Time
	EloRating   int
	FideId      *string
	TitleId     *int
}

type Coach struct {
	Username    string
	Name        string
	Surname     string
	Nationality string
}

type CoachCertification struct {
	CoachUsername string
	Certification string
}

type Arbiter struct {
	Username        string
	Name            string
	Surname         string
	Nationality     string
	ExperienceLevel string
}

type ArbiterCertification struct {
	ArbiterUsername string
	Certification   string
}

type Sponsor struct {
	Id   int
	Name string
}

type Team struct {
	Id        int
	Name      string
	SponsorId *int
}

type PlayerTeam struct {
	PlayerUsername string
	TeamId         int
}

type CoachContract struct {
	CoachUsername string
	TeamId        int
	StartDate     time.Time
	EndDate       time.Time
}

type Hall struct {
	Id       int
	Name     string
	Country  string
	Capacity int
}

type MatchTable struct {
	Id     int
	HallId int
}

type Match struct {
	Id              int
	Date            time.Time
	TimeSlot        int
	HallId          int
	TableId         int
	TeamWhite       int
	TeamBlack       int
	ArbiterUsername string
	Rating          *float64
	RatedAt         *time.Time
}

type MatchAssignment struct {
	MatchId     int
	WhitePlayer string
	BlackPlayer string
	Result      *string
}

// Operation declares the premise of a test.
//
// Rows are inserted in foreign-key order by Apply.
type Operation struct {
	Users                 []User
	Managers              []Manager
	Titles                []Title
	Players               []Player
	Coaches               []Coach
	CoachCertifications   []CoachCertification
	Arbiters              []Arbiter
	ArbiterCertifications []ArbiterCertification
	Sponsors              []Sponsor
	Teams                 []Team
	PlayerTeams           []PlayerTeam
	CoachContracts        []CoachContract
	Halls                 []Hall
	MatchTables           []MatchTable
	Matches               []Match
	MatchAssignments      []MatchAssignment
}

func (op *Operation) Apply(ctx context.Context, pool kpool.Pool) error {
	for _, u := range op.Users {
		if _, err := pool.Exec(
			ctx,
			`insert into "users" ("username", "password_hash", "role") values ($1, $2, $3)`,
			u.Username, u.PasswordHash, u.Role,
		); err != nil {
			return xe.Wrap(err)
		}
	}
	for _, m := range op.Managers {
		if _, err := pool.Exec(
			ctx,
			`insert into "managers" ("username") values ($1)`,
			m.Username,
		); err != nil {
			return xe.Wrap(err)
		}
	}
	for _, t := range op.Titles {
		if _, err := pool.Exec(
			ctx,
			`insert into "titles" ("id", "name") values ($1, $2)`,
			t.Id, t.Name,
		); err != nil {
			return xe.Wrap(err)
		}
	}
	for _, p := range op.Players {
		if _, err := pool.Exec(
			ctx,
			`
			insert into "players"
				("username", "name", "surname", "nationality", "date_of_birth", "elo_rating", "fide_id", "title_id")
			values ($1, $2, $3, $4, $5, $6, $7, $8)
			`,
			p.Username, p.Name, p.Surname, p.Nationality,
			p.DateOfBirth, p.EloRating, p.FideId, p.TitleId,
		); err != nil {
			return xe.Wrap(err)
		}
	}
	for _, c := range op.Coaches {
		if _, err := pool.Exec(
			ctx,
			`insert into "coaches" ("username", "name", "surname", "nationality") values ($1, $2, $3, $4)`,
			c.Username, c.Name, c.Surname, c.Nationality,
		); err != nil {
			return xe.Wrap(err)
		}
	}
	for _, c := range op.CoachCertifications {
		if _, err := pool.Exec(
			ctx,
			`insert into "coach_certifications" ("coach_username", "certification") values ($1, $2)`,
			c.CoachUsername, c.Certification,
		); err != nil {
			return xe.Wrap(err)
		}
	}
	for _, a := range op.Arbiters {
		if _, err := pool.Exec(
			ctx,
			`
			insert into "arbiters"
				("username", "name", "surname", "nationality", "experience_level")
			values ($1, $2, $3, $4, $5)
			`,
			a.Username, a.Name, a.Surname, a.Nationality, a.ExperienceLevel,
		); err != nil {
			return xe.Wrap(err)
		}
	}
	for _, a := range op.ArbiterCertifications {
		if _, err := pool.Exec(
			ctx,
			`insert into "arbiter_certifications" ("arbiter_username", "certification") values ($1, $2)`,
			a.ArbiterUsername, a.Certification,
		); err != nil {
			return xe.Wrap(err)
		}
	}
	for _, s := range op.Sponsors {
		if _, err := pool.Exec(
			ctx,
			`insert into "sponsors" ("id", "name") values ($1, $2)`,
			s.Id, s.Name,
		); err != nil {
			return xe.Wrap(err)
		}
	}
	for _, t := range op.Teams {
		if _, err := pool.Exec(
			ctx,
			`insert into "teams" ("id", "name", "sponsor_id") values ($1, $2, $3)`,
			t.Id, t.Name, t.SponsorId,
		); err != nil {
			return xe.Wrap(err)
		}
	}
	for _, pt := range op.PlayerTeams {
		if _, err := pool.Exec(
			ctx,
			`insert into "player_teams" ("player_username", "team_id") values ($1, $2)`,
			pt.PlayerUsername, pt.TeamId,
		); err != nil {
			return xe.Wrap(err)
		}
	}
	for _, c := range op.CoachContracts {
		if _, err := pool.Exec(
			ctx,
			`
			insert into "coach_contracts" ("coach_username", "team_id", "start_date", "end_date")
			values ($1, $2, $3, $4)
			`,
			c.CoachUsername, c.TeamId, c.StartDate, c.EndDate,
		); err != nil {
			return xe.Wrap(err)
		}
	}
	for _, h := range op.Halls {
		if _, err := pool.Exec(
			ctx,
			`insert into "halls" ("id", "name", "country", "capacity") values ($1, $2, $3, $4)`,
			h.Id, h.Name, h.Country, h.Capacity,
		); err != nil {
			return xe.Wrap(err)
		}
	}
	for _, mt := range op.MatchTables {
		if _, err := pool.Exec(
			ctx,
			`insert into "match_tables" ("id", "hall_id") values ($1, $2)`,
			mt.Id, mt.HallId,
		); err != nil {
			return xe.Wrap(err)
		}
	}
	for _, m := range op.Matches {
		if _, err := pool.Exec(
			ctx,
			`
			insert into "matches"
				("id", "date", "time_slot", "hall_id", "table_id",
				 "team_white", "team_black", "arbiter_username", "rating", "rated_at")
			values ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
			`,
			m.Id, m.Date, m.TimeSlot, m.HallId, m.TableId,
			m.TeamWhite, m.TeamBlack, m.ArbiterUsername, m.Rating, m.RatedAt,
		); err != nil {
			return xe.Wrap(err)
		}
	}
	for _, a := range op.MatchAssignments {
		if _, err := pool.Exec(
			ctx,
			`
			insert into "match_assignments" ("match_id", "white_player", "black_player", "result")
			values ($1, $2, $3, $4)
			`,
			a.MatchId, a.WhitePlayer, a.BlackPlayer, a.Result,
		); err != nil {
			return xe.Wrap(err)
		}
	}
	return nil
}
