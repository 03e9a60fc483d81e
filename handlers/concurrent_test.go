// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers_test

import (
	"fmt"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/danielhkuo/ballotbox/cliparse"
	"github.com/danielhkuo/ballotbox/models"
	"github.com/danielhkuo/ballotbox/router"
	"github.com/danielhkuo/ballotbox/testutil"
)

// TestConcurrentSubmitSameVoter fires simultaneous ballot submissions for one
// voter through the full route stack. Exactly one may land.
func TestConcurrentSubmitSameVoter(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	testutil.CreateTestVoter(t, conn, "S7001", "hunter2")
	presidentID := testutil.CreateTestPosition(t, conn, "President", 1)
	aliceID := testutil.CreateTestCandidate(t, conn, presidentID, "Alice")

	mux := router.NewRouter(conn, cliparse.Config{})

	const workers = 6
	codes := make([]int, workers)
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			req := testutil.MakeRequest("POST", "/ballots", models.SubmitBallotRequest{
				StudentID:  "S7001",
				Password:   "hunter2",
				Selections: map[string]string{presidentID: aliceID},
			}, nil)
			w := httptest.NewRecorder()
			mux.ServeHTTP(w, req)
			codes[i] = w.Code
		}(i)
	}
	wg.Wait()

	var created, conflicts int
	for _, code := range codes {
		switch code {
		case 201:
			created++
		case 409:
			conflicts++
		default:
			t.Errorf("Unexpected status code %d", code)
		}
	}

	if created != 1 {
		t.Errorf("Expected exactly 1 accepted ballot, got %d", created)
	}
	if conflicts != workers-1 {
		t.Errorf("Expected %d conflicts, got %d", workers-1, conflicts)
	}

	var rows int
	if err := conn.QueryRow(`SELECT COUNT(*) FROM vote_ledger`).Scan(&rows); err != nil {
		t.Fatalf("Failed to count ledger rows: %v", err)
	}
	if rows != 1 {
		t.Errorf("Expected 1 ledger row, got %d", rows)
	}
}

// TestConcurrentSubmitDistinctVoters checks that the per-voter claim does not
// serialize away other voters' ballots.
func TestConcurrentSubmitDistinctVoters(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	presidentID := testutil.CreateTestPosition(t, conn, "President", 1)
	aliceID := testutil.CreateTestCandidate(t, conn, presidentID, "Alice")

	const voters = 5
	for i := 0; i < voters; i++ {
		testutil.CreateTestVoter(t, conn, fmt.Sprintf("S71%02d", i), "hunter2")
	}

	mux := router.NewRouter(conn, cliparse.Config{})

	codes := make([]int, voters)
	var wg sync.WaitGroup
	for i := 0; i < voters; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			req := testutil.MakeRequest("POST", "/ballots", models.SubmitBallotRequest{
				StudentID:  fmt.Sprintf("S71%02d", i),
				Password:   "hunter2",
				Selections: map[string]string{presidentID: aliceID},
			}, nil)
			w := httptest.NewRecorder()
			mux.ServeHTTP(w, req)
			codes[i] = w.Code
		}(i)
	}
	wg.Wait()

	for i, code := range codes {
		if code != 201 {
			t.Errorf("Expected voter %d to be accepted, got status %d", i, code)
		}
	}

	var rows int
	if err := conn.QueryRow(`SELECT COUNT(*) FROM vote_ledger`).Scan(&rows); err != nil {
		t.Fatalf("Failed to count ledger rows: %v", err)
	}
	if rows != voters {
		t.Errorf("Expected %d ledger rows, got %d", voters, rows)
	}
}
