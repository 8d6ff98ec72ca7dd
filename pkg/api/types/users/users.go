package users

import (
	"time"

	"github.com/openchess/tournhall/pkg/domain"
	"github.com/openchess/tournhall/pkg/utils/cmp"
)

// format of date-only fields on the wire.
const DateFormat = "2006-01-02"

// NewUserRequest registers a user. Role decides which profile fields
// are read; the rest are ignored.
type NewUserRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Role     string `json:"role"`

	// player, coach and arbiter
	Name        string `json:"name,omitempty"`
	Surname     string `json:"surname,omitempty"`
	Nationality string `json:"nationality,omitempty"`

	// player only
	DateOfBirth string `json:"date_of_birth,omitempty"`
	EloRating   int    `json:"elo_rating,omitempty"`
	FideId      string `json:"fide_id,omitempty"`
	TitleId     int    `json:"title_id,omitempty"`
	Teams       []int  `json:"teams,omitempty"`

	// arbiter only
	ExperienceLevel string `json:"experience_level,omitempty"`

	// coach and arbiter
	Certifications []string `json:"certifications,omitempty"`
}

type Detail struct {
	Username string `json:"username"`
	Role     string `json:"role"`
}

func (d *Detail) Equal(o *Detail) bool {
	return d.Username == o.Username && d.Role == o.Role
}

func ComposeDetail(u domain.User) Detail {
	return Detail{
		Username: u.Username,
		Role:     u.Role.String(),
	}
}

// ToSpec converts the request into a registration spec with the given
// password hash. The caller parses and validates the role beforehand.
func (r *NewUserRequest) ToSpec(role domain.Role, passwordHash string) (domain.NewUser, error) {
	spec := domain.NewUser{
		Username:     r.Username,
		PasswordHash: passwordHash,
		Role:         role,
	}

	switch role {
	case domain.RolePlayer:
		dob, err := time.Parse(DateFormat, r.DateOfBirth)
		if err != nil {
			return domain.NewUser{}, err
		}
		spec.Player = &domain.PlayerProfile{
			Username:    r.Username,
			Name:        r.Name,
			Surname:     r.Surname,
			Nationality: r.Nationality,
			DateOfBirth: dob,
			EloRating:   r.EloRating,
			FideId:      r.FideId,
			TitleId:     r.TitleId,
			Teams:       r.Teams,
		}
	case domain.RoleCoach:
		spec.Coach = &domain.CoachProfile{
			Username:       r.Username,
			Name:           r.Name,
			Surname:        r.Surname,
			Nationality:    r.Nationality,
			Certifications: r.Certifications,
		}
	case domain.RoleArbiter:
		spec.Arbiter = &domain.ArbiterProfile{
			Username:        r.Username,
			Name:            r.Name,
			Surname:         r.Surname,
			Nationality:     r.Nationality,
			ExperienceLevel: r.ExperienceLevel,
			Certifications:  r.Certifications,
		}
	}

	return spec, nil
}

type PlayerProfile struct {
	Username    string `json:"username"`
	Name        string `json:"name"`
	Surname     string `json:"surname"`
	Nationality string `json:"nationality"`
	DateOfBirth string `json:"date_of_birth"`
	EloRating   int    `json:"elo_rating"`
	FideId      string `json:"fide_id"`
	TitleId     int    `json:"title_id"`
	Teams       []int  `json:"teams"`
}

func (p *PlayerProfile) Equal(o *PlayerProfile) bool {
	return p.Username == o.Username &&
		p.Name == o.Name &&
		p.Surname == o.Surname &&
		p.Nationality == o.Nationality &&
		p.DateOfBirth == o.DateOfBirth &&
		p.EloRating == o.EloRating &&
		p.FideId == o.FideId &&
		p.TitleId == o.TitleId &&
		cmp.SliceContentEq(p.Teams, o.Teams)
}

func ComposePlayerProfile(p domain.PlayerProfile) PlayerProfile {
	return PlayerProfile{
		Username:    p.Username,
		Name:        p.Name,
		Surname:     p.Surname,
		Nationality: p.Nationality,
		DateOfBirth: p.DateOfBirth.Format(DateFormat),
		EloRating:   p.EloRating,
		FideId:      p.FideId,
		TitleId:     p.TitleId,
		Teams:       p.Teams,
	}
}

type ArbiterProfile struct {
	Username        string   `json:"username"`
	Name            string   `json:"name"`
	Surname         string   `json:"surname"`
	Nationality     string   `json:"nationality"`
	ExperienceLevel string   `json:"experience_level"`
	Certifications  []string `json:"certifications"`
}

func (a *ArbiterProfile) Equal(o *ArbiterProfile) bool {
	return a.Username == o.Username &&
		a.Name == o.Name &&
		a.Surname == o.Surname &&
		a.Nationality == o.Nationality &&
		a.ExperienceLevel == o.ExperienceLevel &&
		cmp.SliceContentEq(a.Certifications, o.Certifications)
}

func ComposeArbiterProfile(a domain.ArbiterProfile) ArbiterProfile {
	return ArbiterProfile{
		Username:        a.Username,
		Name:            a.Name,
		Surname:         a.Surname,
		Nationality:     a.Nationality,
		ExperienceLevel: a.ExperienceLevel,
		Certifications:  a.Certifications,
	}
}
