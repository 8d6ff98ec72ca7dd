package domain

import "errors"

var (
	// requested record is not found.
	ErrMissing = errors.New("record is missing")

	// record with the same identity already exists.
	ErrAlreadyExists = errors.New("record already exists")

	// a hall table, arbiter, team or player is occupied by an overlapping match.
	ErrBooked = errors.New("scheduling conflict")

	// both sides of a match are the same team.
	ErrSameTeam = errors.New("a team cannot play against itself")

	// the player does not belong to the team they are assigned for.
	ErrNotTeamMember = errors.New("player is not a member of the team")

	// the match has a rating already; ratings are write-once.
	ErrAlreadyRated = errors.New("match is rated already")

	// the rating is out of its allowed range.
	ErrInvalidRating = errors.New("rating should be between 1 and 10")

	// the match date has not passed yet; it cannot be rated nor given a result.
	ErrNotYetPlayed = errors.New("match is not played yet")

	// the acting arbiter is not the one assigned to the match.
	ErrNotAssignedArbiter = errors.New("arbiter is not assigned to the match")

	// the match is protected from destructive operations.
	ErrMatchProtected = errors.New("the match is protected")

	// a coach contract overlaps an existing one.
	ErrContractOverlap = errors.New("contract period overlaps an existing contract")

	// login credentials do not match.
	ErrBadCredential = errors.New("username or password is wrong")
)
