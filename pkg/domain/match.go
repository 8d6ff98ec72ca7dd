package domain

import (
	"fmt"
	"time"
)

// A match day is divided into four one-hour slots (1..4).
// Every match takes two consecutive slots, so valid start slots are 1..3.
const (
	MinTimeSlot   = 1
	MaxTimeSlot   = 4
	MatchSlotSpan = 2
	MaxStartSlot  = MaxTimeSlot - MatchSlotSpan + 1
)

// SlotsOverlap tells whether two matches starting at slot a and slot b
// on the same date occupy a common slot.
func SlotsOverlap(a int, b int) bool {
	d := a - b
	if d < 0 {
		d = -d
	}
	return d < MatchSlotSpan
}

type MatchResult string

const (
	WhiteWins MatchResult = "white wins"
	BlackWins MatchResult = "black wins"
	Draw      MatchResult = "draw"
)

func (r MatchResult) String() string {
	return string(r)
}

func AsMatchResult(s string) (MatchResult, error) {
	switch MatchResult(s) {
	case WhiteWins, BlackWins, Draw:
		return MatchResult(s), nil
	}
	return "", fmt.Errorf(`unknown result: %s (should be one of "white wins", "black wins" or "draw")`, s)
}

// MatchBody is the scheduling core of a match.
type MatchBody struct {
	Id              int
	Date            time.Time // date only; time-of-day is carried by TimeSlot
	TimeSlot        int
	HallId          int
	TableId         int
	TeamWhite       int
	TeamBlack       int
	ArbiterUsername string
}

// Match is MatchBody plus its (optional) assignment and rating.
type Match struct {
	MatchBody

	Assignment *MatchAssignment
	Rating     *Rating
}

// MatchAssignment pairs the players fielded for a match.
type MatchAssignment struct {
	WhitePlayer string
	BlackPlayer string
	Result      *MatchResult
}

// Rating is the one-shot arbiter evaluation of a played match.
type Rating struct {
	Value   float64
	RatedAt time.Time
}

// NewMatch is a request to schedule a match.
type NewMatch struct {
	Date            time.Time
	TimeSlot        int
	HallId          int
	TableId         int
	TeamWhite       int
	TeamBlack       int
	ArbiterUsername string
}

// MatchFindQuery narrows Find results. Empty fields do not narrow.
type MatchFindQuery struct {
	TeamId          *int
	ArbiterUsername *string
	PlayerUsername  *string
	Since           *time.Time
	Until           *time.Time
}
