// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package voting_test

import (
	"context"
	"errors"
	"testing"

	"github.com/danielhkuo/ballotbox/auth"
	"github.com/danielhkuo/ballotbox/testutil"
	"github.com/danielhkuo/ballotbox/voting"
)

func TestAuthenticateSuccess(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	voterID := testutil.CreateTestVoter(t, conn, "S1001", "hunter2")

	guard := voting.NewGuard(conn)
	session, err := guard.Authenticate(context.Background(), "S1001", "hunter2")
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if session.VoterID != voterID {
		t.Errorf("Expected voter id %s, got %s", voterID, session.VoterID)
	}
	if session.StudentID != "S1001" {
		t.Errorf("Unexpected student id: %s", session.StudentID)
	}
	if session.AlreadyVoted {
		t.Error("Fresh voter should not be marked as already voted")
	}
	if session.Credential != auth.CheckHashed {
		t.Errorf("Expected hashed credential check, got %v", session.Credential)
	}
}

func TestAuthenticateUnknownVoter(t *testing.T) {
	conn := testutil.SetupTestDB(t)

	guard := voting.NewGuard(conn)
	_, err := guard.Authenticate(context.Background(), "S9999", "whatever")
	if !errors.Is(err, voting.ErrVoterNotFound) {
		t.Errorf("Expected ErrVoterNotFound, got %v", err)
	}
}

func TestAuthenticateInactiveVoter(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	testutil.CreateTestVoter(t, conn, "S1002", "hunter2")
	testutil.DeactivateVoter(t, conn, "S1002")

	guard := voting.NewGuard(conn)

	// Correct password makes no difference for an inactive account.
	_, err := guard.Authenticate(context.Background(), "S1002", "hunter2")
	if !errors.Is(err, voting.ErrVoterNotFound) {
		t.Errorf("Expected ErrVoterNotFound for inactive voter, got %v", err)
	}
}

func TestAuthenticateWrongPassword(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	testutil.CreateTestVoter(t, conn, "S1003", "hunter2")

	guard := voting.NewGuard(conn)
	_, err := guard.Authenticate(context.Background(), "S1003", "hunter3")
	if !errors.Is(err, voting.ErrBadCredential) {
		t.Errorf("Expected ErrBadCredential, got %v", err)
	}
}

func TestAuthenticateAlreadyVotedMarker(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	testutil.CreateTestVoter(t, conn, "S1004", "hunter2")
	if _, err := conn.Exec(`UPDATE voters SET has_voted = TRUE WHERE student_id = $1`, "S1004"); err != nil {
		t.Fatalf("Failed to mark voter: %v", err)
	}

	guard := voting.NewGuard(conn)
	session, err := guard.Authenticate(context.Background(), "S1004", "hunter2")
	if err != nil {
		t.Fatalf("Already-voted voter should still authenticate, got %v", err)
	}
	if !session.AlreadyVoted {
		t.Error("Expected AlreadyVoted marker on the session")
	}
}

func TestAuthenticateLegacyPlaintext(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	testutil.CreateLegacyVoter(t, conn, "S1005", "oldpassword")

	guard := voting.NewGuard(conn)
	session, err := guard.Authenticate(context.Background(), "S1005", "oldpassword")
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if session.Credential != auth.CheckPlaintextLegacy {
		t.Errorf("Expected plaintext-legacy credential check, got %v", session.Credential)
	}

	_, err = guard.Authenticate(context.Background(), "S1005", "wrong")
	if !errors.Is(err, voting.ErrBadCredential) {
		t.Errorf("Expected ErrBadCredential on legacy mismatch, got %v", err)
	}
}
