package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	apierr "github.com/openchess/tournhall/pkg/api/types/errors"
	apimatches "github.com/openchess/tournhall/pkg/api/types/matches"
	"github.com/openchess/tournhall/pkg/audit"
	"github.com/openchess/tournhall/pkg/domain"
	kdbmatch "github.com/openchess/tournhall/pkg/domain/match/db"
	"github.com/openchess/tournhall/pkg/utils/pointer"
	"github.com/openchess/tournhall/pkg/utils/slices"
)

func FindMatchesHandler(dbMatch kdbmatch.MatchInterface) echo.HandlerFunc {
	return func(c echo.Context) error {
		query := domain.MatchFindQuery{}

		if team := c.QueryParam("team"); team != "" {
			teamId, err := strconv.Atoi(team)
			if err != nil {
				return apierr.BadRequest("team should be an integer team id", err)
			}
			query.TeamId = &teamId
		}
		if arbiter := c.QueryParam("arbiter"); arbiter != "" {
			query.ArbiterUsername = &arbiter
		}
		if player := c.QueryParam("player"); player != "" {
			query.PlayerUsername = &player
		}
		if since := c.QueryParam("since"); since != "" {
			t, err := time.Parse(apimatches.DateFormat, since)
			if err != nil {
				return apierr.BadRequest("since should be formatted as YYYY-MM-DD", err)
			}
			query.Since = &t
		}
		if until := c.QueryParam("until"); until != "" {
			t, err := time.Parse(apimatches.DateFormat, until)
			if err != nil {
				return apierr.BadRequest("until should be formatted as YYYY-MM-DD", err)
			}
			query.Until = &t
		}

		ctx := c.Request().Context()
		found, err := dbMatch.Find(ctx, query)
		if err != nil {
			return apierr.InternalServerError(err)
		}

		return c.JSON(http.StatusOK, slices.Map(found, apimatches.ComposeDetail))
	}
}

func GetMatchHandler(dbMatch kdbmatch.MatchInterface, paramKey string) echo.HandlerFunc {
	return func(c echo.Context) error {
		matchId, err := strconv.Atoi(c.Param(paramKey))
		if err != nil {
			return apierr.BadRequest("match id should be an integer", err)
		}

		ctx := c.Request().Context()
		match, err := dbMatch.Get(ctx, matchId)
		if err != nil {
			if errors.Is(err, domain.ErrMissing) {
				return apierr.NotFound()
			}
			return apierr.InternalServerError(err)
		}
		return c.JSON(http.StatusOK, apimatches.ComposeDetail(match))
	}
}

func CreateMatchHandler(dbMatch kdbmatch.MatchInterface, auditor audit.Client) echo.HandlerFunc {
	return func(c echo.Context) error {
		req := apimatches.NewMatchRequest{}
		if err := c.Bind(&req); err != nil {
			return apierr.BadRequest("send the match spec as json", err)
		}

		spec, err := req.ToSpec()
		if err != nil {
			return apierr.BadRequest("date should be formatted as YYYY-MM-DD", err)
		}
		if spec.TimeSlot < domain.MinTimeSlot || domain.MaxStartSlot < spec.TimeSlot {
			return apierr.BadRequest(
				"time_slot should be 1, 2 or 3: a match takes two consecutive slots of four",
				nil,
			)
		}

		ctx := c.Request().Context()
		matchId, err := dbMatch.New(ctx, spec)
		if err != nil {
			if errors.Is(err, domain.ErrSameTeam) {
				return apierr.BadRequest("team_white and team_black should differ", err)
			}
			if errors.Is(err, domain.ErrMissing) {
				return apierr.BadRequest("the hall, table, arbiter or a team does not exist", err)
			}
			if errors.Is(err, domain.ErrBooked) {
				return apierr.Conflict(
					"scheduling conflict",
					apierr.WithAdvice("the table, arbiter or a team is occupied by an overlapping match"),
					apierr.WithError(err),
				)
			}
			return apierr.InternalServerError(err)
		}

		identity, _ := IdentityOf(c)
		auditor.Emit(domain.AuditEvent{
			EventType: domain.AuditMatchCreated,
			Username:  identity.Username,
			Details: map[string]string{
				"match_id": strconv.Itoa(matchId),
				"date":     req.Date,
			},
			IpAddress: c.RealIP(),
			UserAgent: c.Request().UserAgent(),
		})

		match, err := dbMatch.Get(ctx, matchId)
		if err != nil {
			return apierr.InternalServerError(err)
		}
		return c.JSON(http.StatusCreated, apimatches.ComposeDetail(match))
	}
}

func DeleteMatchHandler(dbMatch kdbmatch.MatchInterface, paramKey string) echo.HandlerFunc {
	return func(c echo.Context) error {
		matchId, err := strconv.Atoi(c.Param(paramKey))
		if err != nil {
			return apierr.BadRequest("match id should be an integer", err)
		}

		ctx := c.Request().Context()
		if err := dbMatch.Delete(ctx, matchId); err != nil {
			if errors.Is(err, domain.ErrMissing) {
				return apierr.NotFound()
			}
			if errors.Is(err, domain.ErrMatchProtected) {
				return apierr.Conflict(
					"match is rated",
					apierr.WithAdvice("rated matches are part of the permanent record and can not be deleted"),
					apierr.WithError(err),
				)
			}
			return apierr.InternalServerError(err)
		}
		return c.NoContent(http.StatusNoContent)
	}
}

func AssignPlayersHandler(dbMatch kdbmatch.MatchInterface, paramKey string) echo.HandlerFunc {
	return func(c echo.Context) error {
		matchId, err := strconv.Atoi(c.Param(paramKey))
		if err != nil {
			return apierr.BadRequest("match id should be an integer", err)
		}

		req := apimatches.AssignmentRequest{}
		if err := c.Bind(&req); err != nil {
			return apierr.BadRequest("send white_player and black_player as json", err)
		}
		if req.WhitePlayer == "" || req.BlackPlayer == "" {
			return apierr.BadRequest("white_player and black_player are required", nil)
		}

		ctx := c.Request().Context()
		if err := dbMatch.Assign(ctx, matchId, req.WhitePlayer, req.BlackPlayer); err != nil {
			if errors.Is(err, domain.ErrMissing) {
				return apierr.NotFound()
			}
			if errors.Is(err, domain.ErrNotTeamMember) {
				return apierr.BadRequest("each player should belong to the team they play for", err)
			}
			if errors.Is(err, domain.ErrBooked) {
				return apierr.Conflict(
					"player is occupied",
					apierr.WithAdvice("a player can not be fielded for two overlapping matches"),
					apierr.WithError(err),
				)
			}
			if errors.Is(err, domain.ErrMatchProtected) {
				return apierr.Conflict(
					"match result is on record",
					apierr.WithAdvice("the lineup of a finished match can not change"),
					apierr.WithError(err),
				)
			}
			return apierr.InternalServerError(err)
		}

		match, err := dbMatch.Get(ctx, matchId)
		if err != nil {
			return apierr.InternalServerError(err)
		}
		return c.JSON(http.StatusOK, apimatches.ComposeDetail(match))
	}
}

func SetResultHandler(dbMatch kdbmatch.MatchInterface, paramKey string) echo.HandlerFunc {
	return func(c echo.Context) error {
		matchId, err := strconv.Atoi(c.Param(paramKey))
		if err != nil {
			return apierr.BadRequest("match id should be an integer", err)
		}

		req := apimatches.ResultRequest{}
		if err := c.Bind(&req); err != nil {
			return apierr.BadRequest("send the result as json", err)
		}
		result, err := domain.AsMatchResult(req.Result)
		if err != nil {
			return apierr.BadRequest(`result should be one of "white wins", "black wins" or "draw"`, err)
		}

		identity, ok := IdentityOf(c)
		if !ok {
			return apierr.Unauthorized("login first", nil)
		}

		ctx := c.Request().Context()
		if err := dbMatch.SetResult(ctx, matchId, identity.Username, result); err != nil {
			return matchWriteError(err)
		}

		match, err := dbMatch.Get(ctx, matchId)
		if err != nil {
			return apierr.InternalServerError(err)
		}
		return c.JSON(http.StatusOK, apimatches.ComposeDetail(match))
	}
}

func RateMatchHandler(dbMatch kdbmatch.MatchInterface, auditor audit.Client, paramKey string) echo.HandlerFunc {
	return func(c echo.Context) error {
		matchId, err := strconv.Atoi(c.Param(paramKey))
		if err != nil {
			return apierr.BadRequest("match id should be an integer", err)
		}

		req := pointer.Ref(apimatches.RatingRequest{})
		if err := c.Bind(req); err != nil {
			return apierr.BadRequest("send the rating as json", err)
		}
		if req.Rating < 1 || 10 < req.Rating {
			return apierr.BadRequest("rating should be between 1 and 10", nil)
		}

		identity, ok := IdentityOf(c)
		if !ok {
			return apierr.Unauthorized("login first", nil)
		}

		ctx := c.Request().Context()
		if err := dbMatch.Rate(ctx, matchId, identity.Username, req.Rating); err != nil {
			return matchWriteError(err)
		}

		auditor.Emit(domain.AuditEvent{
			EventType: domain.AuditMatchRated,
			Username:  identity.Username,
			Details: map[string]string{
				"match_id": strconv.Itoa(matchId),
				"rating":   strconv.FormatFloat(req.Rating, 'f', -1, 64),
			},
			IpAddress: c.RealIP(),
			UserAgent: c.Request().UserAgent(),
		})

		match, err := dbMatch.Get(ctx, matchId)
		if err != nil {
			return apierr.InternalServerError(err)
		}
		return c.JSON(http.StatusOK, apimatches.ComposeDetail(match))
	}
}

func matchWriteError(err error) error {
	switch {
	case errors.Is(err, domain.ErrMissing):
		return apierr.NotFound()
	case errors.Is(err, domain.ErrNotAssignedArbiter):
		return apierr.Forbidden("only the arbiter assigned to this match may do this")
	case errors.Is(err, domain.ErrNotYetPlayed):
		return apierr.Conflict(
			"match is not played yet",
			apierr.WithAdvice("wait for the match date"),
			apierr.WithError(err),
		)
	case errors.Is(err, domain.ErrInvalidRating):
		return apierr.BadRequest("rating should be between 1 and 10", err)
	case errors.Is(err, domain.ErrAlreadyRated):
		return apierr.Conflict(
			"match is rated already",
			apierr.WithAdvice("ratings are write-once and can not be changed"),
			apierr.WithError(err),
		)
	default:
		return apierr.InternalServerError(err)
	}
}
