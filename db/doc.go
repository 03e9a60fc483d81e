// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package db handles database schema creation.

# Schema

Six tables:

  - voters: registered students, with has_voted flag and active flag
  - positions: contested positions, ordered by display_order
  - candidates: each belongs to one position
  - vote_ledger: append-only vote records (voter, position, candidate,
    cast_at, origin_address)
  - admin_users: administrative accounts
  - election_settings: free-form key/value settings

# Usage

	err := db.CreateSchema(dbConn)

The DDL uses IF NOT EXISTS so it is safe to run at every startup, and it
sticks to the SQL subset that both postgres and sqlite accept.

# Design Notes

vote_ledger carries a UNIQUE (voter_id, position_id) constraint. The commit
engine already guarantees one ballot per voter via the has_voted flag; the
constraint is a second, schema-level line of defense for the same invariant.
*/
package db
