package domain

import (
	"encoding/json"
	"time"
)

// Stat is one aggregated statistic row. Payload is schemaless JSON since
// every stat has its own shape.
type Stat struct {
	Name       string
	Category   string
	Payload    json.RawMessage
	ComputedAt time.Time
}

// Stat categories.
const (
	StatCategoryGeneral  = "general"
	StatCategoryTeams    = "teams"
	StatCategoryPlayers  = "players"
	StatCategoryMatches  = "matches"
	StatCategoryArbiters = "arbiters"
	StatCategoryHalls    = "halls"
	StatCategorySummary  = "summary"
	StatCategoryMeta     = "meta"
)

// Stat names computed by the aggregation loop.
const (
	StatMatchesPerTeam      = "matches_per_team"
	StatTeamWinRates        = "team_win_rates"
	StatTopPlayersByElo     = "top_players_by_elo"
	StatMostActivePlayers   = "most_active_players"
	StatAvgEloByNationality = "avg_elo_by_nationality"
	StatTotalMatches        = "total_matches"
	StatMatchesByResult     = "matches_by_result"
	StatMatchesPerMonth     = "matches_per_month"
	StatArbiterAvgRatings   = "arbiter_avg_ratings"
	StatHallUtilization     = "hall_utilization"
	StatSummary             = "summary"
	StatLastComputedAt      = "last_computed_at"
)
