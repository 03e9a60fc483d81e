// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package voting implements the election core: voter authentication, the
in-memory ballot, the atomic ballot commit, and results aggregation.

# Components

  - Guard: authenticates a voter by student ID + password among active
    voters. A voter who already voted still authenticates; the session
    carries an AlreadyVoted marker so callers refuse to open a new ballot.
  - Ballot: per-session position -> candidate selections, one per position
    (selecting again overwrites). Pure memory, discarded after commit.
  - Engine: commits a ballot all-or-nothing and flips the voter's has_voted
    flag in the same transaction.
  - Aggregator: turnout and per-position tallies against the live ledger.

# The Single-Ballot Invariant

has_voted is monotonic: the core flips it false -> true exactly once and
never back. Two checkpoints enforce it:

 1. At authentication, the AlreadyVoted marker bars the UI from opening a
    ballot (Engine.Commit also refuses a marked session outright).
 2. Inside the commit transaction, a compare-and-set UPDATE claims the flag:

	UPDATE voters SET has_voted = TRUE WHERE id = $1 AND has_voted = FALSE

Concurrent commits for the same voter — double submission, a retried
request, or two server instances sharing a database — serialize on that row.
Exactly one claims it and inserts ledger rows; the rest observe zero rows
affected and return StatusAlreadyVoted. The database transaction is the
authority; no in-process lock is involved.

# Commit Outcomes

Commit returns a CommitResult variant:

  - StatusSuccess: all selections and the flag landed
  - StatusEmpty: ballot had no selections; nothing written
  - StatusAlreadyVoted: terminal for the session; nothing written
  - StatusInvalidSelection: a candidate was inactive or not standing for
    the selected position; nothing written
  - StatusPersistenceError: transient failure, safe to retry (a retry after
    an invisible success resolves to StatusAlreadyVoted, never a double vote)

# Aggregation

Aggregator figures come from single query executions (one subselect
statement for counters, one LEFT JOIN for the tally), so each call is
internally consistent while commits are in flight. SnapshotAsync returns a
buffered channel for callers that want the work off their goroutine; the
result is joined explicitly, never pushed into shared state.
*/
package voting
