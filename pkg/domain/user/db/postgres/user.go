package user

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v4"
	kpool "github.com/openchess/tournhall/pkg/conn/db/postgres/pool"
	"github.com/openchess/tournhall/pkg/domain"
	kerr "github.com/openchess/tournhall/pkg/domain/errors/dberrors/postgres"
	kdbuser "github.com/openchess/tournhall/pkg/domain/user/db"
	xe "github.com/openchess/tournhall/pkg/errors"
)

type pgUser struct {
	pool kpool.Pool
}

func New(pool kpool.Pool) kdbuser.UserInterface {
	return &pgUser{pool: pool}
}

func (u *pgUser) New(ctx context.Context, user domain.NewUser) error {
	tx, err := u.pool.Begin(ctx)
	if err != nil {
		return xe.Wrap(err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(
		ctx,
		`insert into "users" ("username", "password_hash", "role") values ($1, $2, $3)`,
		user.Username, user.PasswordHash, string(user.Role),
	); err != nil {
		if kerr.IsUniqueViolation(err, "") {
			return kerr.Duplication{Table: "users", Identity: user.Username}
		}
		return xe.Wrap(err)
	}

	switch user.Role {
	case domain.RoleManager:
		if _, err := tx.Exec(
			ctx, `insert into "managers" ("username") values ($1)`, user.Username,
		); err != nil {
			return xe.Wrap(err)
		}
	case domain.RolePlayer:
		p := user.Player
		if _, err := tx.Exec(
			ctx,
			`
			insert into "players"
				("username", "name", "surname", "nationality", "date_of_birth", "elo_rating", "fide_id", "title_id")
			values ($1, $2, $3, $4, $5, $6, $7, $8)
			`,
			user.Username, p.Name, p.Surname, p.Nationality,
			p.DateOfBirth, p.EloRating, p.FideId, p.TitleId,
		); err != nil {
			return xe.Wrap(err)
		}
		for _, teamId := range p.Teams {
			if _, err := tx.Exec(
				ctx,
				`insert into "player_teams" ("player_username", "team_id") values ($1, $2)`,
				user.Username, teamId,
			); err != nil {
				if kerr.IsForeignKeyViolation(err) {
					return kerr.Missing{Table: "teams", Identity: "requested team"}
				}
				return xe.Wrap(err)
			}
		}
	case domain.RoleCoach:
		c := user.Coach
		if _, err := tx.Exec(
			ctx,
			`insert into "coaches" ("username", "name", "surname", "nationality") values ($1, $2, $3, $4)`,
			user.Username, c.Name, c.Surname, c.Nationality,
		); err != nil {
			return xe.Wrap(err)
		}
		for _, cert := range c.Certifications {
			if _, err := tx.Exec(
				ctx,
				`insert into "coach_certifications" ("coach_username", "certification") values ($1, $2)`,
				user.Username, cert,
			); err != nil {
				return xe.Wrap(err)
			}
		}
	case domain.RoleArbiter:
		a := user.Arbiter
		if _, err := tx.Exec(
			ctx,
			`
			insert into "arbiters" ("username", "name", "surname", "nationality", "experience_level")
			values ($1, $2, $3, $4, $5)
			`,
			user.Username, a.Name, a.Surname, a.Nationality, a.ExperienceLevel,
		); err != nil {
			return xe.Wrap(err)
		}
		for _, cert := range a.Certifications {
			if _, err := tx.Exec(
				ctx,
				`insert into "arbiter_certifications" ("arbiter_username", "certification") values ($1, $2)`,
				user.Username, cert,
			); err != nil {
				return xe.Wrap(err)
			}
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return xe.Wrap(err)
	}
	return nil
}

func (u *pgUser) Get(ctx context.Context, username string) (domain.User, error) {
	conn, err := u.pool.Acquire(ctx)
	if err != nil {
		return domain.User{}, xe.Wrap(err)
	}
	defer conn.Release()

	var user domain.User
	var role string
	if err := conn.QueryRow(
		ctx,
		`select "username", "password_hash", "role" from "users" where "username" = $1`,
		username,
	).Scan(&user.Username, &user.PasswordHash, &role); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.User{}, kerr.Missing{Table: "users", Identity: username}
		}
		return domain.User{}, xe.Wrap(err)
	}
	if user.Role, err = domain.AsRole(role); err != nil {
		return domain.User{}, xe.Wrap(err)
	}
	return user, nil
}

func (u *pgUser) GetPlayer(ctx context.Context, username string) (domain.PlayerProfile, error) {
	conn, err := u.pool.Acquire(ctx)
	if err != nil {
		return domain.PlayerProfile{}, xe.Wrap(err)
	}
	defer conn.Release()

	var p domain.PlayerProfile
	if err := conn.QueryRow(
		ctx,
		`
		select "username", "name", "surname", "nationality", "date_of_birth", "elo_rating", "fide_id", "title_id"
		from "players" where "username" = $1
		`,
		username,
	).Scan(
		&p.Username, &p.Name, &p.Surname, &p.Nationality,
		&p.DateOfBirth, &p.EloRating, &p.FideId, &p.TitleId,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.PlayerProfile{}, kerr.Missing{Table: "players", Identity: username}
		}
		return domain.PlayerProfile{}, xe.Wrap(err)
	}

	rows, err := conn.Query(
		ctx,
		`select "team_id" from "player_teams" where "player_username" = $1 order by "team_id"`,
		username,
	)
	if err != nil {
		return domain.PlayerProfile{}, xe.Wrap(err)
	}
	defer rows.Close()
	for rows.Next() {
		var teamId int
		if err := rows.Scan(&teamId); err != nil {
			return domain.PlayerProfile{}, xe.Wrap(err)
		}
		p.Teams = append(p.Teams, teamId)
	}
	if err := rows.Err(); err != nil {
		return domain.PlayerProfile{}, xe.Wrap(err)
	}

	return p, nil
}

func (u *pgUser) GetCoach(ctx context.Context, username string) (domain.CoachProfile, error) {
	conn, err := u.pool.Acquire(ctx)
	if err != nil {
		return domain.CoachProfile{}, xe.Wrap(err)
	}
	defer conn.Release()

	var c domain.CoachProfile
	if err := conn.QueryRow(
		ctx,
		`select "username", "name", "surname", "nationality" from "coaches" where "username" = $1`,
		username,
	).Scan(&c.Username, &c.Name, &c.Surname, &c.Nationality); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.CoachProfile{}, kerr.Missing{Table: "coaches", Identity: username}
		}
		return domain.CoachProfile{}, xe.Wrap(err)
	}

	certs, err := certifications(ctx, conn, "coach_certifications", "coach_username", username)
	if err != nil {
		return domain.CoachProfile{}, err
	}
	c.Certifications = certs
	return c, nil
}

func (u *pgUser) GetArbiter(ctx context.Context, username string) (domain.ArbiterProfile, error) {
	conn, err := u.pool.Acquire(ctx)
	if err != nil {
		return domain.ArbiterProfile{}, xe.Wrap(err)
	}
	defer conn.Release()

	var a domain.ArbiterProfile
	if err := conn.QueryRow(
		ctx,
		`
		select "username", "name", "surname", "nationality", "experience_level"
		from "arbiters" where "username" = $1
		`,
		username,
	).Scan(&a.Username, &a.Name, &a.Surname, &a.Nationality, &a.ExperienceLevel); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.ArbiterProfile{}, kerr.Missing{Table: "arbiters", Identity: username}
		}
		return domain.ArbiterProfile{}, xe.Wrap(err)
	}

	certs, err := certifications(ctx, conn, "arbiter_certifications", "arbiter_username", username)
	if err != nil {
		return domain.ArbiterProfile{}, err
	}
	a.Certifications = certs
	return a, nil
}

func certifications(
	ctx context.Context, conn kpool.Queryer, table string, column string, username string,
) ([]string, error) {
	rows, err := conn.Query(
		ctx,
		`select "certification" from "`+table+`" where "`+column+`" = $1 order by "certification"`,
		username,
	)
	if err != nil {
		return nil, xe.Wrap(err)
	}
	defer rows.Close()

	certs := []string{}
	for rows.Next() {
		var cert string
		if err := rows.Scan(&cert); err != nil {
			return nil, xe.Wrap(err)
		}
		certs = append(certs, cert)
	}
	if err := rows.Err(); err != nil {
		return nil, xe.Wrap(err)
	}
	return certs, nil
}
