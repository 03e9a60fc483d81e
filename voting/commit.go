// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package voting

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/danielhkuo/ballotbox/auth"
)

// CommitStatus is the semantic outcome of a ballot commit.
type CommitStatus int

const (
	StatusSuccess CommitStatus = iota
	StatusEmpty
	StatusAlreadyVoted
	StatusInvalidSelection
	StatusPersistenceError
)

func (s CommitStatus) String() string {
	switch s {
	case StatusSuccess:
		return "success"
	case StatusEmpty:
		return "empty"
	case StatusAlreadyVoted:
		return "already-voted"
	case StatusInvalidSelection:
		return "invalid-selection"
	case StatusPersistenceError:
		return "persistence-error"
	default:
		return "unknown"
	}
}

// CommitResult reports the outcome of Engine.Commit. Err carries detail for
// StatusInvalidSelection and StatusPersistenceError and is nil otherwise.
type CommitResult struct {
	Status    CommitStatus
	VotesCast int
	Err       error
}

// Retryable reports whether the caller may retry the commit. Only transient
// persistence failures qualify; a retried commit after the flag was already
// set short-circuits to StatusAlreadyVoted rather than double-voting.
func (r CommitResult) Retryable() bool {
	return r.Status == StatusPersistenceError
}

// Engine atomically persists a completed ballot. All writes for one ballot
// happen in a single transaction together with the voter's has_voted flag,
// so either every selection lands or none do. The database transaction, not
// process memory, is the authority for the single-ballot invariant: several
// server instances can share one database safely.
type Engine struct {
	db *sql.DB
}

func NewEngine(db *sql.DB) *Engine {
	return &Engine{db: db}
}

// Commit validates and persists a ballot for an authenticated voter.
//
// The has_voted flag is claimed first, inside the transaction, with a
// compare-and-set UPDATE. Concurrent commits for the same voter serialize on
// that row: exactly one sees has_voted = FALSE and proceeds, the rest get
// StatusAlreadyVoted. This closes the race window between authentication
// and commit.
func (e *Engine) Commit(ctx context.Context, session *VoterSession, ballot *Ballot, originAddr string) CommitResult {
	if session.AlreadyVoted {
		return CommitResult{Status: StatusAlreadyVoted}
	}
	if ballot.Len() == 0 {
		return CommitResult{Status: StatusEmpty}
	}

	tx, err := e.db.BeginTx(ctx, nil)
	if err != nil {
		return CommitResult{Status: StatusPersistenceError, Err: fmt.Errorf("failed to begin transaction: %w", err)}
	}
	defer tx.Rollback()

	// Claim the voter's single ballot. Zero rows affected means another
	// session won the race (or a retry after success).
	res, err := tx.ExecContext(ctx, `
		UPDATE voters SET has_voted = TRUE
		WHERE id = $1 AND has_voted = FALSE
	`, session.VoterID)
	if err != nil {
		return CommitResult{Status: StatusPersistenceError, Err: fmt.Errorf("failed to claim ballot: %w", err)}
	}
	claimed, err := res.RowsAffected()
	if err != nil {
		return CommitResult{Status: StatusPersistenceError, Err: fmt.Errorf("failed to read rows affected: %w", err)}
	}
	if claimed == 0 {
		return CommitResult{Status: StatusAlreadyVoted}
	}

	// Every selection must name an active candidate standing for the
	// selected position.
	standing, err := activeCandidates(ctx, tx)
	if err != nil {
		return CommitResult{Status: StatusPersistenceError, Err: err}
	}
	selections := ballot.Selections()
	for positionID, candidateID := range selections {
		if standing[candidateID] != positionID {
			return CommitResult{
				Status: StatusInvalidSelection,
				Err:    fmt.Errorf("candidate %s is not standing for position %s", candidateID, positionID),
			}
		}
	}

	castAt := time.Now().UTC()
	for positionID, candidateID := range selections {
		_, err = tx.ExecContext(ctx, `
			INSERT INTO vote_ledger (id, voter_id, position_id, candidate_id, cast_at, origin_address)
			VALUES ($1, $2, $3, $4, $5, $6)
		`, auth.NewID(), session.VoterID, positionID, candidateID, castAt, originAddr)
		if err != nil {
			return CommitResult{Status: StatusPersistenceError, Err: fmt.Errorf("failed to insert vote: %w", err)}
		}
	}

	if err := tx.Commit(); err != nil {
		return CommitResult{Status: StatusPersistenceError, Err: fmt.Errorf("failed to commit ballot: %w", err)}
	}

	slog.Info("ballot committed",
		"voter_id", session.VoterID,
		"votes_cast", len(selections),
		"origin", originAddr,
	)

	return CommitResult{Status: StatusSuccess, VotesCast: len(selections)}
}

// activeCandidates maps candidate id -> position id for candidates that are
// active and standing for an active position.
func activeCandidates(ctx context.Context, tx *sql.Tx) (map[string]string, error) {
	rows, err := tx.QueryContext(ctx, `
		SELECT c.id, c.position_id
		FROM candidates c
		JOIN positions p ON c.position_id = p.id
		WHERE c.active = TRUE AND p.active = TRUE
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query candidates: %w", err)
	}
	defer rows.Close()

	standing := make(map[string]string)
	for rows.Next() {
		var candidateID, positionID string
		if err := rows.Scan(&candidateID, &positionID); err != nil {
			return nil, fmt.Errorf("failed to scan candidate: %w", err)
		}
		standing[candidateID] = positionID
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read candidates: %w", err)
	}
	return standing, nil
}
