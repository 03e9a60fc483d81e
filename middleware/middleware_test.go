// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/danielhkuo/ballotbox/middleware"
	"github.com/danielhkuo/ballotbox/models"
	"github.com/danielhkuo/ballotbox/testutil"
)

func TestGetClientIP(t *testing.T) {
	tests := []struct {
		name       string
		remoteAddr string
		headers    map[string]string
		expected   string
	}{
		{
			name:       "X-Forwarded-For single",
			remoteAddr: "10.0.0.1:1234",
			headers:    map[string]string{"X-Forwarded-For": "203.0.113.7"},
			expected:   "203.0.113.7",
		},
		{
			name:       "X-Forwarded-For chain takes first",
			remoteAddr: "10.0.0.1:1234",
			headers:    map[string]string{"X-Forwarded-For": "203.0.113.7, 10.0.0.2"},
			expected:   "203.0.113.7",
		},
		{
			name:       "X-Real-IP",
			remoteAddr: "10.0.0.1:1234",
			headers:    map[string]string{"X-Real-IP": "198.51.100.9"},
			expected:   "198.51.100.9",
		},
		{
			name:       "RemoteAddr strips port",
			remoteAddr: "192.0.2.5:4567",
			expected:   "192.0.2.5",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", "/", nil)
			req.RemoteAddr = tt.remoteAddr
			for k, v := range tt.headers {
				req.Header.Set(k, v)
			}
			if got := middleware.GetClientIP(req); got != tt.expected {
				t.Errorf("Expected %s, got %s", tt.expected, got)
			}
		})
	}
}

func TestErrorResponse(t *testing.T) {
	w := httptest.NewRecorder()
	middleware.ErrorResponse(w, http.StatusNotFound, "nothing here")

	testutil.AssertStatus(t, w, 404)
	if ct := w.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("Expected application/json, got %s", ct)
	}

	var resp models.ErrorResponse
	testutil.AssertJSON(t, w, &resp)
	if resp.Error != "Not Found" {
		t.Errorf("Unexpected error field: %s", resp.Error)
	}
	if resp.Message != "nothing here" {
		t.Errorf("Unexpected message: %s", resp.Message)
	}
}

func TestRequireAdminNoCredentials(t *testing.T) {
	conn := testutil.SetupTestDB(t)

	handler := middleware.RequireAdmin(conn, func(w http.ResponseWriter, r *http.Request) {
		t.Error("Handler must not run without credentials")
	})

	w := httptest.NewRecorder()
	handler(w, httptest.NewRequest("GET", "/admin/dashboard", nil))

	testutil.AssertStatus(t, w, 401)
	if w.Header().Get("WWW-Authenticate") == "" {
		t.Error("Expected WWW-Authenticate challenge header")
	}
}

func TestRequireAdminWrongPassword(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	testutil.CreateTestAdmin(t, conn, "root", "admin-pw")

	handler := middleware.RequireAdmin(conn, func(w http.ResponseWriter, r *http.Request) {
		t.Error("Handler must not run with wrong password")
	})

	req := httptest.NewRequest("GET", "/admin/dashboard", nil)
	req.SetBasicAuth("root", "wrong")
	w := httptest.NewRecorder()
	handler(w, req)

	testutil.AssertStatus(t, w, 401)
}

func TestRequireAdminInactiveAccount(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	adminID := testutil.CreateTestAdmin(t, conn, "retired", "admin-pw")
	if _, err := conn.Exec(`UPDATE admin_users SET active = FALSE WHERE id = $1`, adminID); err != nil {
		t.Fatalf("Failed to deactivate admin: %v", err)
	}

	handler := middleware.RequireAdmin(conn, func(w http.ResponseWriter, r *http.Request) {
		t.Error("Handler must not run for inactive admin")
	})

	req := httptest.NewRequest("GET", "/admin/dashboard", nil)
	req.SetBasicAuth("retired", "admin-pw")
	w := httptest.NewRecorder()
	handler(w, req)

	testutil.AssertStatus(t, w, 401)
}

func TestRequireAdminSuccess(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	testutil.CreateTestAdmin(t, conn, "root", "admin-pw")

	called := false
	handler := middleware.RequireAdmin(conn, func(w http.ResponseWriter, r *http.Request) {
		called = true
		w.WriteHeader(http.StatusOK)
	})

	req := httptest.NewRequest("GET", "/admin/dashboard", nil)
	req.SetBasicAuth("root", "admin-pw")
	w := httptest.NewRecorder()
	handler(w, req)

	testutil.AssertStatus(t, w, 200)
	if !called {
		t.Error("Expected wrapped handler to run")
	}
}

func TestCORSPreflight(t *testing.T) {
	handler := middleware.CORS(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("Preflight must not reach the wrapped handler")
	}))

	req := httptest.NewRequest("OPTIONS", "/ballots", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("Expected 200 for preflight, got %d", w.Code)
	}
	if got := w.Header().Get("Access-Control-Allow-Origin"); got != "http://localhost:5173" {
		t.Errorf("Unexpected allow-origin header: %s", got)
	}
}

func TestCORSPassesThrough(t *testing.T) {
	handler := middleware.CORS(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	}))

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest("GET", "/", nil))

	if w.Code != http.StatusTeapot {
		t.Errorf("Expected wrapped handler status, got %d", w.Code)
	}
	if w.Header().Get("Access-Control-Allow-Methods") == "" {
		t.Error("Expected CORS headers on normal responses too")
	}
}
