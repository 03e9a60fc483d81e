// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"database/sql"
	"net/http"

	"github.com/danielhkuo/ballotbox/cliparse"
	"github.com/danielhkuo/ballotbox/handlers"
	"github.com/danielhkuo/ballotbox/middleware"
)

func NewRouter(db *sql.DB, cfg cliparse.Config) *http.ServeMux {
	mux := http.NewServeMux()

	// Initialize handlers
	votingHandler := handlers.NewVotingHandler(db)
	resultsHandler := handlers.NewResultsHandler(db)
	adminHandler := handlers.NewAdminHandler(db)

	// Health check
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	// Voter operations (public)
	mux.HandleFunc("POST /login", middleware.WithLogging(votingHandler.Login))
	mux.HandleFunc("GET /ballot", middleware.WithLogging(votingHandler.GetBallot))
	mux.HandleFunc("POST /ballots", middleware.WithLogging(votingHandler.SubmitBallot))

	// Admin login (public; the rest of /admin/ is basic-auth gated)
	mux.HandleFunc("POST /admin/login", middleware.WithLogging(adminHandler.Login))

	admin := func(h http.HandlerFunc) http.HandlerFunc {
		return middleware.WithLogging(middleware.RequireAdmin(db, h))
	}

	// Dashboard and vote review
	mux.HandleFunc("GET /admin/dashboard", admin(resultsHandler.Dashboard))
	mux.HandleFunc("GET /admin/votes", admin(resultsHandler.ListVotes))
	mux.HandleFunc("DELETE /admin/votes/{id}", admin(resultsHandler.DeleteVote))

	// Record management
	mux.HandleFunc("GET /admin/students", admin(adminHandler.ListVoters))
	mux.HandleFunc("POST /admin/students", admin(adminHandler.CreateVoter))
	mux.HandleFunc("PUT /admin/students/{id}", admin(adminHandler.UpdateVoter))
	mux.HandleFunc("DELETE /admin/students/{id}", admin(adminHandler.DeleteVoter))

	mux.HandleFunc("GET /admin/positions", admin(adminHandler.ListPositions))
	mux.HandleFunc("POST /admin/positions", admin(adminHandler.CreatePosition))
	mux.HandleFunc("PUT /admin/positions/{id}", admin(adminHandler.UpdatePosition))
	mux.HandleFunc("DELETE /admin/positions/{id}", admin(adminHandler.DeletePosition))

	mux.HandleFunc("GET /admin/candidates", admin(adminHandler.ListCandidates))
	mux.HandleFunc("POST /admin/candidates", admin(adminHandler.CreateCandidate))
	mux.HandleFunc("PUT /admin/candidates/{id}", admin(adminHandler.UpdateCandidate))
	mux.HandleFunc("DELETE /admin/candidates/{id}", admin(adminHandler.DeleteCandidate))

	mux.HandleFunc("GET /admin/settings", admin(adminHandler.ListSettings))
	mux.HandleFunc("POST /admin/settings", admin(adminHandler.CreateSetting))
	mux.HandleFunc("PUT /admin/settings/{id}", admin(adminHandler.UpdateSetting))
	mux.HandleFunc("DELETE /admin/settings/{id}", admin(adminHandler.DeleteSetting))

	mux.HandleFunc("GET /admin/users", admin(adminHandler.ListAdminUsers))
	mux.HandleFunc("POST /admin/users", admin(adminHandler.CreateAdminUser))
	mux.HandleFunc("PUT /admin/users/{id}", admin(adminHandler.UpdateAdminUser))
	mux.HandleFunc("DELETE /admin/users/{id}", admin(adminHandler.DeleteAdminUser))

	// Root endpoint
	mux.HandleFunc("GET /", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ballotbox API v1"))
	})

	return mux
}
