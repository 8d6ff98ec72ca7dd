package players

import (
	apiusers "github.com/openchess/tournhall/pkg/api/types/users"
	"github.com/openchess/tournhall/pkg/domain"
	"github.com/openchess/tournhall/pkg/utils/cmp"
	"github.com/openchess/tournhall/pkg/utils/slices"
)

type Summary struct {
	Profile       apiusers.PlayerProfile `json:"profile"`
	MatchesPlayed int                    `json:"matches_played"`
	Wins          int                    `json:"wins"`
	Losses        int                    `json:"losses"`
	Draws         int                    `json:"draws"`
}

func (s *Summary) Equal(o *Summary) bool {
	return s.Profile.Equal(&o.Profile) &&
		s.MatchesPlayed == o.MatchesPlayed &&
		s.Wins == o.Wins &&
		s.Losses == o.Losses &&
		s.Draws == o.Draws
}

func ComposeSummary(s domain.PlayerSummary) Summary {
	return Summary{
		Profile:       apiusers.ComposePlayerProfile(s.Profile),
		MatchesPlayed: s.MatchesPlayed,
		Wins:          s.Wins,
		Losses:        s.Losses,
		Draws:         s.Draws,
	}
}

type Opponent struct {
	Username  string `json:"username"`
	EloRating int    `json:"elo_rating"`
	Games     int    `json:"games"`
}

type OpponentReport struct {
	Opponents          []Opponent `json:"opponents"`
	MostFrequent       []string   `json:"most_frequent"`
	MostFrequentAvgElo float64    `json:"most_frequent_avg_elo"`
}

func (r *OpponentReport) Equal(o *OpponentReport) bool {
	return cmp.SliceContentEq(r.Opponents, o.Opponents) &&
		cmp.SliceContentEq(r.MostFrequent, o.MostFrequent) &&
		r.MostFrequentAvgElo == o.MostFrequentAvgElo
}

func ComposeOpponentReport(r domain.OpponentReport) OpponentReport {
	return OpponentReport{
		Opponents: slices.Map(
			r.Opponents,
			func(rec domain.OpponentRecord) Opponent {
				return Opponent{
					Username:  rec.Username,
					EloRating: rec.EloRating,
					Games:     rec.Games,
				}
			},
		),
		MostFrequent:       r.MostFrequent,
		MostFrequentAvgElo: r.MostFrequentAvgElo,
	}
}
