// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package handlers contains HTTP request handlers for the Ballotbox API.

# Handler Types

Each handler is a struct created via a constructor that accepts *sql.DB:

  - VotingHandler: voter login, ballot retrieval, ballot submission
  - ResultsHandler: dashboard metrics, vote ledger review
  - AdminHandler: record management (students, positions, candidates,
    settings, admin users)

# Voting Flow

	POST /login    → Login (already_voted marker when applicable)
	GET  /ballot   → GetBallot (active positions + candidates)
	POST /ballots  → SubmitBallot (authenticate + atomic commit)

SubmitBallot delegates to voting.Engine; the commit status maps onto HTTP:

	StatusSuccess           → 201
	StatusEmpty             → 400
	StatusAlreadyVoted      → 409
	StatusInvalidSelection  → 422
	StatusPersistenceError  → 500 (caller may retry)

# Admin Surface

All /admin/ routes require HTTP Basic auth (middleware.RequireAdmin):

	GET  /admin/dashboard          → metrics + per-position tally
	GET  /admin/votes              → ledger review (humanized timestamps)
	DELETE /admin/votes/{id}       → administrative override
	CRUD /admin/students, /admin/positions, /admin/candidates,
	     /admin/settings, /admin/users

The admin CRUD endpoints are deliberately plain parameterized statements;
election invariants live entirely in the voting package.
*/
package handlers
