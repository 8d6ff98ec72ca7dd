package arbiters

import (
	apiusers "github.com/openchess/tournhall/pkg/api/types/users"
	"github.com/openchess/tournhall/pkg/domain"
)

type Summary struct {
	Profile       apiusers.ArbiterProfile `json:"profile"`
	MatchesRated  int                     `json:"matches_rated"`
	AverageRating *float64                `json:"average_rating"`
}

func (s *Summary) Equal(o *Summary) bool {
	if (s.AverageRating == nil) != (o.AverageRating == nil) {
		return false
	}
	return s.Profile.Equal(&o.Profile) &&
		s.MatchesRated == o.MatchesRated &&
		(s.AverageRating == nil || *s.AverageRating == *o.AverageRating)
}

func ComposeSummary(s domain.ArbiterSummary) Summary {
	return Summary{
		Profile:       apiusers.ComposeArbiterProfile(s.Profile),
		MatchesRated:  s.MatchesRated,
		AverageRating: s.AverageRating,
	}
}
