package httpapi

import (
	"net/http"
	"strings"
	"time"

	"github.com/riskibarqy/hockey-league/internal/domain/matchup"
	"github.com/riskibarqy/hockey-league/internal/domain/statline"
)

type teamWeekDTO struct {
	TeamID        string         `json:"teamId"`
	SeasonID      int64          `json:"seasonId"`
	WeekID        string         `json:"weekId"`
	Days          int            `json:"days"`
	SkaterStarted bool           `json:"skaterStarted"`
	GoalieStarted bool           `json:"goalieStarted"`
	Adds          int            `json:"adds"`
	MissedStarts  int            `json:"missedStarts"`
	BenchStarts   int            `json:"benchStarts"`
	Stats         statline.Stats `json:"stats"`
	Rating        statline.Value `json:"rating"`
}

type playerWeekDTO struct {
	PlayerID   string         `json:"playerId"`
	PlayerName string         `json:"playerName"`
	TeamID     string         `json:"teamId"`
	WeekID     string         `json:"weekId"`
	Group      string         `json:"group"`
	Days       int            `json:"days"`
	Stats      statline.Stats `json:"stats"`
	Rating     statline.Value `json:"rating"`
}

type teamDayDTO struct {
	TeamID        string         `json:"teamId"`
	WeekID        string         `json:"weekId"`
	Date          string         `json:"date"`
	SkaterStarted bool           `json:"skaterStarted"`
	GoalieStarted bool           `json:"goalieStarted"`
	Adds          int            `json:"adds"`
	MissedStarts  int            `json:"missedStarts"`
	BenchStarts   int            `json:"benchStarts"`
	Stats         statline.Stats `json:"stats"`
	Rating        statline.Value `json:"rating"`
}

type matchupDTO struct {
	ID         string `json:"id"`
	WeekID     string `json:"weekId"`
	HomeTeamID string `json:"homeTeamId"`
	AwayTeamID string `json:"awayTeamId"`
	HomeScore  int    `json:"homeScore"`
	AwayScore  int    `json:"awayScore"`
	HomeWin    *bool  `json:"homeWin"`
	AwayWin    *bool  `json:"awayWin"`
}

func (h *Handler) weekIDFromPath(r *http.Request) string {
	return strings.TrimSpace(r.PathValue("weekID"))
}

func (h *Handler) ListTeamWeeks(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListTeamWeeks")
	defer span.End()

	rows, err := h.statsQuery.TeamWeeks(ctx, h.weekIDFromPath(r))
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	out := make([]teamWeekDTO, 0, len(rows))
	for _, row := range rows {
		out = append(out, teamWeekDTO{
			TeamID:        row.TeamID,
			SeasonID:      row.SeasonID,
			WeekID:        row.WeekID,
			Days:          row.Days,
			SkaterStarted: row.SkaterStarted,
			GoalieStarted: row.GoalieStarted,
			Adds:          row.Adds,
			MissedStarts:  row.MissedStarts,
			BenchStarts:   row.BenchStarts,
			Stats:         row.Stats,
			Rating:        row.Rating,
		})
	}
	writeSuccess(ctx, w, http.StatusOK, out)
}

func (h *Handler) ListPlayerWeeks(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListPlayerWeeks")
	defer span.End()

	rows, err := h.statsQuery.PlayerWeeks(ctx, h.weekIDFromPath(r))
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	out := make([]playerWeekDTO, 0, len(rows))
	for _, row := range rows {
		out = append(out, playerWeekDTO{
			PlayerID:   row.PlayerID,
			PlayerName: row.PlayerName,
			TeamID:     row.TeamID,
			WeekID:     row.WeekID,
			Group:      string(row.Group),
			Days:       row.Days,
			Stats:      row.Stats,
			Rating:     row.Rating,
		})
	}
	writeSuccess(ctx, w, http.StatusOK, out)
}

func (h *Handler) ListTeamDays(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListTeamDays")
	defer span.End()

	rows, err := h.statsQuery.TeamDays(ctx, h.weekIDFromPath(r))
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	out := make([]teamDayDTO, 0, len(rows))
	for _, row := range rows {
		out = append(out, teamDayDTO{
			TeamID:        row.TeamID,
			WeekID:        row.WeekID,
			Date:          row.Date.UTC().Format(time.DateOnly),
			SkaterStarted: row.SkaterStarted,
			GoalieStarted: row.GoalieStarted,
			Adds:          row.Adds,
			MissedStarts:  row.MissedStarts,
			BenchStarts:   row.BenchStarts,
			Stats:         row.Stats,
			Rating:        row.Rating,
		})
	}
	writeSuccess(ctx, w, http.StatusOK, out)
}

func (h *Handler) ListMatchups(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListMatchups")
	defer span.End()

	rows, err := h.statsQuery.Matchups(ctx, h.weekIDFromPath(r))
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	out := make([]matchupDTO, 0, len(rows))
	for _, row := range rows {
		out = append(out, toMatchupDTO(row))
	}
	writeSuccess(ctx, w, http.StatusOK, out)
}

func toMatchupDTO(row matchup.Matchup) matchupDTO {
	return matchupDTO{
		ID:         row.ID,
		WeekID:     row.WeekID,
		HomeTeamID: row.HomeTeamID,
		AwayTeamID: row.AwayTeamID,
		HomeScore:  row.HomeScore,
		AwayScore:  row.AwayScore,
		HomeWin:    row.HomeWin,
		AwayWin:    row.AwayWin,
	}
}
