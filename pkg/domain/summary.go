package domain

// OpponentRecord is one opponent a player has faced over the board.
type OpponentRecord struct {
	Username  string
	EloRating int
	Games     int
}

// PlayerSummary is the self-service view of a player's record.
type PlayerSummary struct {
	Profile PlayerProfile

	MatchesPlayed int
	Wins          int
	Losses        int
	Draws         int
}

// OpponentReport lists every opponent of a player. MostFrequent holds
// the usernames with the highest Games count (more than one on tie),
// and MostFrequentAvgElo is the mean Elo over them.
type OpponentReport struct {
	Opponents          []OpponentRecord
	MostFrequent       []string
	MostFrequentAvgElo float64
}

// ArbiterSummary is the self-service view of an arbiter's rating record.
type ArbiterSummary struct {
	Profile ArbiterProfile

	MatchesRated  int
	AverageRating *float64
}
