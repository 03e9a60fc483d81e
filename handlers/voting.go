// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"database/sql"
	"errors"
	"log/slog"
	"net/http"

	"github.com/danielhkuo/ballotbox/middleware"
	"github.com/danielhkuo/ballotbox/models"
	"github.com/danielhkuo/ballotbox/voting"
)

type VotingHandler struct {
	db     *sql.DB
	guard  *voting.Guard
	engine *voting.Engine
}

func NewVotingHandler(db *sql.DB) *VotingHandler {
	return &VotingHandler{
		db:     db,
		guard:  voting.NewGuard(db),
		engine: voting.NewEngine(db),
	}
}

// Login handles POST /login
// Authenticates a voter for the login screen. A voter who already voted
// gets a successful response with already_voted set; the client must not
// open a ballot for them.
func (h *VotingHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req models.LoginRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if req.StudentID == "" || req.Password == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "student_id and password are required")
		return
	}

	session, err := h.guard.Authenticate(r.Context(), req.StudentID, req.Password)
	if err != nil {
		writeAuthError(w, err)
		return
	}

	message := "Login successful"
	if session.AlreadyVoted {
		message = "You have already cast your vote. You cannot vote again."
	}

	middleware.JSONResponse(w, http.StatusOK, models.LoginResponse{
		StudentID:    session.StudentID,
		FullName:     session.FullName,
		AlreadyVoted: session.AlreadyVoted,
		Message:      message,
	})
}

// GetBallot handles GET /ballot
// Returns the active positions with their active candidates, in display
// order — the data the voting screen renders.
func (h *VotingHandler) GetBallot(w http.ResponseWriter, r *http.Request) {
	rows, err := h.db.Query(`
		SELECT id, name, description, display_order
		FROM positions
		WHERE active = TRUE
		ORDER BY display_order
	`)
	if err != nil {
		slog.Error("failed to query positions", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}
	defer rows.Close()

	contests := []models.PositionWithCandidates{}
	for rows.Next() {
		var pos models.Position
		if err := rows.Scan(&pos.ID, &pos.Name, &pos.Description, &pos.DisplayOrder); err != nil {
			slog.Error("failed to scan position", "error", err)
			middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
			return
		}
		pos.Active = true
		contests = append(contests, models.PositionWithCandidates{Position: pos, Candidates: []models.Candidate{}})
	}
	if err := rows.Err(); err != nil {
		slog.Error("failed to read positions", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	for i := range contests {
		candidates, err := h.candidatesForPosition(contests[i].Position.ID)
		if err != nil {
			slog.Error("failed to query candidates", "error", err, "position_id", contests[i].Position.ID)
			middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
			return
		}
		contests[i].Candidates = candidates
	}

	middleware.JSONResponse(w, http.StatusOK, contests)
}

func (h *VotingHandler) candidatesForPosition(positionID string) ([]models.Candidate, error) {
	rows, err := h.db.Query(`
		SELECT id, position_id, name, student_id, program, year_of_study
		FROM candidates
		WHERE position_id = $1 AND active = TRUE
		ORDER BY name
	`, positionID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	candidates := []models.Candidate{}
	for rows.Next() {
		var c models.Candidate
		if err := rows.Scan(&c.ID, &c.PositionID, &c.Name, &c.StudentID, &c.Program, &c.YearOfStudy); err != nil {
			return nil, err
		}
		c.Active = true
		candidates = append(candidates, c)
	}
	return candidates, rows.Err()
}

// SubmitBallot handles POST /ballots
// Authenticates the voter and commits all selections as a single atomic
// transaction. Exactly one ballot per voter, ever.
func (h *VotingHandler) SubmitBallot(w http.ResponseWriter, r *http.Request) {
	var req models.SubmitBallotRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if req.StudentID == "" || req.Password == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "student_id and password are required")
		return
	}

	session, err := h.guard.Authenticate(r.Context(), req.StudentID, req.Password)
	if err != nil {
		writeAuthError(w, err)
		return
	}

	ballot := voting.NewBallot()
	for positionID, candidateID := range req.Selections {
		ballot.Select(positionID, candidateID)
	}

	result := h.engine.Commit(r.Context(), session, ballot, middleware.GetClientIP(r))

	switch result.Status {
	case voting.StatusSuccess:
		middleware.JSONResponse(w, http.StatusCreated, models.SubmitBallotResponse{
			VotesCast: result.VotesCast,
			Message:   "Thank you for your vote! Your votes have been recorded.",
		})
	case voting.StatusEmpty:
		middleware.ErrorResponse(w, http.StatusBadRequest, "Please select at least one candidate to vote for")
	case voting.StatusAlreadyVoted:
		middleware.ErrorResponse(w, http.StatusConflict, "You have already cast your vote. You cannot vote again.")
	case voting.StatusInvalidSelection:
		slog.Warn("ballot rejected", "reason", result.Err, "student_id", req.StudentID)
		middleware.ErrorResponse(w, http.StatusUnprocessableEntity, "Ballot contains an invalid candidate selection")
	default:
		slog.Error("failed to commit ballot", "error", result.Err, "student_id", req.StudentID)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to record votes, please try again")
	}
}

// writeAuthError maps guard errors to distinct user-facing messages.
// "Unknown voter" and "wrong password" call for different user actions, so
// they are never conflated.
func writeAuthError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, voting.ErrVoterNotFound):
		middleware.ErrorResponse(w, http.StatusUnauthorized, "Student ID not found or inactive")
	case errors.Is(err, voting.ErrBadCredential):
		middleware.ErrorResponse(w, http.StatusUnauthorized, "Incorrect password. Please try again.")
	default:
		slog.Error("failed to authenticate voter", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
	}
}
