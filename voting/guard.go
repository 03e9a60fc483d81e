// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package voting

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/danielhkuo/ballotbox/auth"
)

var (
	// ErrVoterNotFound covers unknown student IDs and inactive voters alike.
	ErrVoterNotFound = errors.New("voter not found or inactive")
	ErrBadCredential = errors.New("incorrect password")
)

// VoterSession is the handle produced by a successful authentication.
// AlreadyVoted means the identity is valid but barred from opening a new
// ballot; it is not an authentication failure.
type VoterSession struct {
	VoterID      string // database id, not the student-facing identifier
	StudentID    string
	FullName     string
	AlreadyVoted bool
	Credential   auth.CredentialCheck
}

// Guard authenticates voters. Read-only; it never mutates voter state.
type Guard struct {
	db *sql.DB
}

func NewGuard(db *sql.DB) *Guard {
	return &Guard{db: db}
}

// Authenticate looks up an active voter by student ID and verifies the
// password. Unknown and inactive voters both yield ErrVoterNotFound; a wrong
// password yields ErrBadCredential. A voter who has already voted still
// authenticates, with the AlreadyVoted marker set on the session.
func (g *Guard) Authenticate(ctx context.Context, studentID, password string) (*VoterSession, error) {
	var (
		id         string
		fullName   string
		storedHash sql.NullString
		hasVoted   bool
	)
	err := g.db.QueryRowContext(ctx, `
		SELECT id, full_name, password_hash, has_voted
		FROM voters
		WHERE student_id = $1 AND active = TRUE
	`, studentID).Scan(&id, &fullName, &storedHash, &hasVoted)

	if err == sql.ErrNoRows {
		return nil, ErrVoterNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to look up voter: %w", err)
	}

	check, ok := auth.VerifyCredential(storedHash.String, password)
	if !ok {
		return nil, ErrBadCredential
	}
	if check == auth.CheckPlaintextLegacy {
		slog.Warn("voter verified via legacy plaintext credential", "student_id", studentID)
	}

	return &VoterSession{
		VoterID:      id,
		StudentID:    studentID,
		FullName:     fullName,
		AlreadyVoted: hasVoted,
		Credential:   check,
	}, nil
}
