package domain

import "time"

// CoachContract binds a coach to a team for a date range, inclusive on
// both ends.
type CoachContract struct {
	CoachUsername string
	TeamId        int
	StartDate     time.Time
	EndDate       time.Time
}

// Overlaps tells whether two contract periods share at least one day.
func (c CoachContract) Overlaps(other CoachContract) bool {
	return !c.StartDate.After(other.EndDate) && !other.StartDate.After(c.EndDate)
}
