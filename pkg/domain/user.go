package domain

import (
	"fmt"
	"time"
)

type Role string

const (
	RoleManager Role = "manager"
	RolePlayer  Role = "player"
	RoleCoach   Role = "coach"
	RoleArbiter Role = "arbiter"
)

func (r Role) String() string {
	return string(r)
}

func AsRole(s string) (Role, error) {
	switch Role(s) {
	case RoleManager, RolePlayer, RoleCoach, RoleArbiter:
		return Role(s), nil
	}
	return "", fmt.Errorf(`unknown role: %s (should be one of "manager", "player", "coach" or "arbiter")`, s)
}

// User is an account row. PasswordHash is a bcrypt digest, never the raw password.
type User struct {
	Username     string
	PasswordHash string
	Role         Role
}

// PlayerProfile is role-specific detail of a player user.
type PlayerProfile struct {
	Username    string
	Name        string
	Surname     string
	Nationality string
	DateOfBirth time.Time
	EloRating   int
	FideId      string
	TitleId     int

	// team ids the player is a member of
	Teams []int
}

// CoachProfile is role-specific detail of a coach user.
type CoachProfile struct {
	Username       string
	Name           string
	Surname        string
	Nationality    string
	Certifications []string
}

// ArbiterProfile is role-specific detail of an arbiter user.
type ArbiterProfile struct {
	Username        string
	Name            string
	Surname         string
	Nationality     string
	ExperienceLevel string
	Certifications  []string
}

// NewUser is a request to register a user along with its role profile.
//
// Exactly one of Player/Coach/Arbiter should be non-nil for the
// corresponding role; all should be nil for managers.
type NewUser struct {
	Username     string
	PasswordHash string
	Role         Role

	Player  *PlayerProfile
	Coach   *CoachProfile
	Arbiter *ArbiterProfile
}
