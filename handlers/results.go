// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"database/sql"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/dustin/go-humanize"

	"github.com/danielhkuo/ballotbox/middleware"
	"github.com/danielhkuo/ballotbox/models"
	"github.com/danielhkuo/ballotbox/voting"
)

type ResultsHandler struct {
	db  *sql.DB
	agg *voting.Aggregator
}

func NewResultsHandler(db *sql.DB) *ResultsHandler {
	return &ResultsHandler{db: db, agg: voting.NewAggregator(db)}
}

// Dashboard handles GET /admin/dashboard
// Runs the aggregate queries off the request goroutine and joins the result
// channel, so a cancelled request stops waiting immediately.
func (h *ResultsHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	select {
	case res := <-h.agg.SnapshotAsync(ctx):
		if res.Err != nil {
			slog.Error("failed to build dashboard snapshot", "error", res.Err)
			middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
			return
		}
		snap := res.Snapshot
		middleware.JSONResponse(w, http.StatusOK, models.DashboardResponse{
			RegisteredVoters: snap.Metrics.RegisteredVoters,
			TotalCandidates:  snap.Metrics.TotalCandidates,
			VotesCast:        snap.Metrics.VotesCast,
			VotersTurnedOut:  snap.Metrics.VotersTurnedOut,
			TurnoutFraction:  snap.Metrics.TurnoutFraction(),
			TurnoutPercent:   fmt.Sprintf("%.1f%%", snap.Metrics.TurnoutFraction()*100),
			Tally:            snap.Tally,
		})
	case <-ctx.Done():
		middleware.ErrorResponse(w, http.StatusServiceUnavailable, "Request cancelled")
	}
}

// ListVotes handles GET /admin/votes
// Returns the vote ledger joined to voter/position/candidate names, newest
// first, with a humanized age for the review screen.
func (h *ResultsHandler) ListVotes(w http.ResponseWriter, r *http.Request) {
	rows, err := h.db.Query(`
		SELECT v.id, v.voter_id, s.student_id, p.name, c.name, v.cast_at, v.origin_address
		FROM vote_ledger v
		JOIN voters s ON v.voter_id = s.id
		LEFT JOIN positions p ON v.position_id = p.id
		LEFT JOIN candidates c ON v.candidate_id = c.id
		ORDER BY v.cast_at DESC
	`)
	if err != nil {
		slog.Error("failed to query votes", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}
	defer rows.Close()

	votes := []models.VoteRecord{}
	for rows.Next() {
		var (
			rec           models.VoteRecord
			positionName  sql.NullString
			candidateName sql.NullString
		)
		if err := rows.Scan(&rec.ID, &rec.VoterID, &rec.StudentID, &positionName,
			&candidateName, &rec.CastAt, &rec.OriginAddress); err != nil {
			slog.Error("failed to scan vote", "error", err)
			middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
			return
		}
		rec.PositionName = positionName.String
		rec.CandidateName = candidateName.String
		rec.CastAgo = humanize.Time(rec.CastAt)
		votes = append(votes, rec)
	}
	if err := rows.Err(); err != nil {
		slog.Error("failed to read votes", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, votes)
}

// DeleteVote handles DELETE /admin/votes/{id}
// Administrative override. The voting core itself never deletes ledger rows;
// the ledger stays append-only from its perspective.
func (h *ResultsHandler) DeleteVote(w http.ResponseWriter, r *http.Request) {
	voteID := r.PathValue("id")
	if voteID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "id is required")
		return
	}

	res, err := h.db.Exec(`DELETE FROM vote_ledger WHERE id = $1`, voteID)
	if err != nil {
		slog.Error("failed to delete vote", "error", err, "vote_id", voteID)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}
	affected, err := res.RowsAffected()
	if err != nil {
		slog.Error("failed to read rows affected", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}
	if affected == 0 {
		middleware.ErrorResponse(w, http.StatusNotFound, "Vote not found")
		return
	}

	slog.Info("vote deleted by admin", "vote_id", voteID)
	middleware.JSONResponse(w, http.StatusOK, map[string]string{"message": "Vote deleted"})
}
