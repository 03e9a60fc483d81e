// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package testutil

import (
	"bytes"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	_ "modernc.org/sqlite"

	"github.com/danielhkuo/ballotbox/auth"
	"github.com/danielhkuo/ballotbox/db"
)

// SetupTestDB creates a fresh in-memory sqlite database with the full
// schema. The pool is capped at one connection so concurrent transactions
// serialize the way they would on a shared server database, instead of each
// goroutine getting its own private :memory: database.
func SetupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	conn, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	conn.SetMaxOpenConns(1)
	t.Cleanup(func() { conn.Close() })

	if _, err := conn.Exec(`PRAGMA foreign_keys = ON`); err != nil {
		t.Fatalf("Failed to enable foreign keys: %v", err)
	}

	if err := db.CreateSchema(conn); err != nil {
		t.Fatalf("Failed to create schema: %v", err)
	}

	return conn
}

// CreateTestVoter enrolls an active voter with a hashed password and
// returns the database id.
func CreateTestVoter(t *testing.T, conn *sql.DB, studentID, password string) string {
	t.Helper()

	id := auth.NewID()
	_, err := conn.Exec(`
		INSERT INTO voters (id, student_id, full_name, password_hash, has_voted, active, created_at)
		VALUES ($1, $2, $3, $4, FALSE, TRUE, $5)
	`, id, studentID, "Test Voter "+studentID, auth.HashCredential(password), time.Now().UTC())
	if err != nil {
		t.Fatalf("Failed to create test voter: %v", err)
	}

	return id
}

// CreateLegacyVoter enrolls an active voter whose stored credential is the
// plaintext password (legacy seed-data shape).
func CreateLegacyVoter(t *testing.T, conn *sql.DB, studentID, password string) string {
	t.Helper()

	id := auth.NewID()
	_, err := conn.Exec(`
		INSERT INTO voters (id, student_id, full_name, password_hash, has_voted, active, created_at)
		VALUES ($1, $2, $3, $4, FALSE, TRUE, $5)
	`, id, studentID, "Legacy Voter "+studentID, password, time.Now().UTC())
	if err != nil {
		t.Fatalf("Failed to create legacy voter: %v", err)
	}

	return id
}

// DeactivateVoter flips a voter's active flag off.
func DeactivateVoter(t *testing.T, conn *sql.DB, studentID string) {
	t.Helper()

	if _, err := conn.Exec(`UPDATE voters SET active = FALSE WHERE student_id = $1`, studentID); err != nil {
		t.Fatalf("Failed to deactivate voter: %v", err)
	}
}

// CreateTestPosition inserts an active position and returns its id.
func CreateTestPosition(t *testing.T, conn *sql.DB, name string, displayOrder int) string {
	t.Helper()

	id := auth.NewID()
	_, err := conn.Exec(`
		INSERT INTO positions (id, name, display_order, active)
		VALUES ($1, $2, $3, TRUE)
	`, id, name, displayOrder)
	if err != nil {
		t.Fatalf("Failed to create test position: %v", err)
	}

	return id
}

// CreateTestCandidate inserts an active candidate for a position and
// returns its id.
func CreateTestCandidate(t *testing.T, conn *sql.DB, positionID, name string) string {
	t.Helper()

	id := auth.NewID()
	_, err := conn.Exec(`
		INSERT INTO candidates (id, position_id, name, active)
		VALUES ($1, $2, $3, TRUE)
	`, id, positionID, name)
	if err != nil {
		t.Fatalf("Failed to create test candidate: %v", err)
	}

	return id
}

// CreateTestAdmin inserts an active admin user with a hashed password.
func CreateTestAdmin(t *testing.T, conn *sql.DB, username, password string) string {
	t.Helper()

	id := auth.NewID()
	_, err := conn.Exec(`
		INSERT INTO admin_users (id, username, password_hash, full_name, role, active)
		VALUES ($1, $2, $3, $4, 'admin', TRUE)
	`, id, username, auth.HashCredential(password), "Test Admin")
	if err != nil {
		t.Fatalf("Failed to create test admin: %v", err)
	}

	return id
}

// InsertTestVote writes a ledger row directly, bypassing the commit engine.
// Used by aggregator tests to stage vote history.
func InsertTestVote(t *testing.T, conn *sql.DB, voterID, positionID, candidateID string) string {
	t.Helper()

	id := auth.NewID()
	_, err := conn.Exec(`
		INSERT INTO vote_ledger (id, voter_id, position_id, candidate_id, cast_at, origin_address)
		VALUES ($1, $2, $3, $4, $5, '127.0.0.1')
	`, id, voterID, positionID, candidateID, time.Now().UTC())
	if err != nil {
		t.Fatalf("Failed to insert test vote: %v", err)
	}

	return id
}

// MakeRequest creates an HTTP test request
func MakeRequest(method, path string, body interface{}, headers map[string]string) *http.Request {
	var req *http.Request
	if body != nil {
		jsonBody, _ := json.Marshal(body)
		req = httptest.NewRequest(method, path, bytes.NewReader(jsonBody))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}

	for k, v := range headers {
		req.Header.Set(k, v)
	}

	return req
}

// AssertStatus checks that the response has the expected status code
func AssertStatus(t *testing.T, w *httptest.ResponseRecorder, expected int) {
	t.Helper()
	if w.Code != expected {
		t.Errorf("Expected status %d, got %d. Body: %s", expected, w.Code, w.Body.String())
	}
}

// AssertJSON decodes the response body into the provided struct
func AssertJSON(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	if err := json.NewDecoder(w.Body).Decode(v); err != nil {
		t.Fatalf("Failed to decode JSON response: %v", err)
	}
}
