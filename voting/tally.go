// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package voting

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/danielhkuo/ballotbox/models"
)

// Aggregator computes turnout and per-position tallies from the live vote
// ledger. All operations are read-only and tolerate concurrent commits; each
// figure comes from a single query execution, so a call is internally
// consistent even while ballots land.
type Aggregator struct {
	db *sql.DB
}

func NewAggregator(db *sql.DB) *Aggregator {
	return &Aggregator{db: db}
}

// Metrics holds the dashboard counters, captured by one statement.
type Metrics struct {
	RegisteredVoters int // active voters
	TotalCandidates  int // active candidates
	VotesCast        int // ledger rows
	VotersTurnedOut  int // distinct voters with at least one ledger row
}

// TurnoutFraction is voters who cast a ballot over registered voters,
// 0 when nobody is registered.
func (m Metrics) TurnoutFraction() float64 {
	if m.RegisteredVoters == 0 {
		return 0
	}
	return float64(m.VotersTurnedOut) / float64(m.RegisteredVoters)
}

// Metrics fetches all dashboard counters in a single round trip.
func (a *Aggregator) Metrics(ctx context.Context) (Metrics, error) {
	var m Metrics
	err := a.db.QueryRowContext(ctx, `
		SELECT
			(SELECT COUNT(*) FROM voters WHERE active = TRUE),
			(SELECT COUNT(*) FROM candidates WHERE active = TRUE),
			(SELECT COUNT(*) FROM vote_ledger),
			(SELECT COUNT(DISTINCT voter_id) FROM vote_ledger)
	`).Scan(&m.RegisteredVoters, &m.TotalCandidates, &m.VotesCast, &m.VotersTurnedOut)
	if err != nil {
		return Metrics{}, fmt.Errorf("failed to query metrics: %w", err)
	}
	return m, nil
}

func (a *Aggregator) TotalRegisteredVoters(ctx context.Context) (int, error) {
	m, err := a.Metrics(ctx)
	return m.RegisteredVoters, err
}

func (a *Aggregator) TotalCandidates(ctx context.Context) (int, error) {
	m, err := a.Metrics(ctx)
	return m.TotalCandidates, err
}

func (a *Aggregator) TotalVotesCast(ctx context.Context) (int, error) {
	m, err := a.Metrics(ctx)
	return m.VotesCast, err
}

func (a *Aggregator) TurnoutFraction(ctx context.Context) (float64, error) {
	m, err := a.Metrics(ctx)
	return m.TurnoutFraction(), err
}

// TallyByPosition returns vote counts for every active position, including
// positions with zero votes, ordered by display order.
func (a *Aggregator) TallyByPosition(ctx context.Context) ([]models.PositionTally, error) {
	rows, err := a.db.QueryContext(ctx, `
		SELECT p.id, p.name, COUNT(v.id)
		FROM positions p
		LEFT JOIN vote_ledger v ON p.id = v.position_id
		WHERE p.active = TRUE
		GROUP BY p.id, p.name, p.display_order
		ORDER BY p.display_order
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query tally: %w", err)
	}
	defer rows.Close()

	tally := []models.PositionTally{}
	for rows.Next() {
		var t models.PositionTally
		if err := rows.Scan(&t.PositionID, &t.Name, &t.Votes); err != nil {
			return nil, fmt.Errorf("failed to scan tally row: %w", err)
		}
		tally = append(tally, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read tally: %w", err)
	}
	return tally, nil
}

// Snapshot bundles metrics and tally for the dashboard.
type Snapshot struct {
	Metrics Metrics
	Tally   []models.PositionTally
}

func (a *Aggregator) Snapshot(ctx context.Context) (*Snapshot, error) {
	m, err := a.Metrics(ctx)
	if err != nil {
		return nil, err
	}
	tally, err := a.TallyByPosition(ctx)
	if err != nil {
		return nil, err
	}
	return &Snapshot{Metrics: m, Tally: tally}, nil
}

// SnapshotResult is delivered on the channel returned by SnapshotAsync.
type SnapshotResult struct {
	Snapshot *Snapshot
	Err      error
}

// SnapshotAsync runs Snapshot off the caller's goroutine and delivers the
// result on a buffered channel. The caller joins the channel when ready, so
// slow aggregate queries never block an interactive path, and no shared
// state is touched from the background goroutine.
func (a *Aggregator) SnapshotAsync(ctx context.Context) <-chan SnapshotResult {
	ch := make(chan SnapshotResult, 1)
	go func() {
		snap, err := a.Snapshot(ctx)
		ch <- SnapshotResult{Snapshot: snap, Err: err}
		close(ch)
	}()
	return ch
}
