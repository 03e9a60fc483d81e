// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package main provides the entry point for the Ballotbox API server.

Ballotbox is a campus election backend: administrators manage positions,
candidates, and registered voters; students authenticate and cast a single
ballot across the open positions; administrators review turnout and
per-position tallies. A voter can vote exactly once — the commit path
enforces this inside a database transaction, so the guarantee holds even
with several server instances sharing one database.

# Starting the Server

The server requires environment variables or CLI flags for configuration:

	DATABASE_URL=postgres://... go run main.go

Or with flags:

	go run main.go -p 3318 -d "postgres://..." -t postgres

A .env file in the working directory is loaded if present.

# Configuration

Required settings:

  - DATABASE_URL (-d): database connection string

Optional settings:

  - PORT (-p): server port (default: 3318)
  - DATABASE_TYPE (-t): "postgres" or "sqlite" (default: sqlite)

# Architecture

The server uses a handler-based architecture with dependency injection:

  - voting: election core (identity guard, ballot model, commit engine,
    results aggregator)
  - handlers: HTTP request handlers (voting, results, admin CRUD)
  - router: route definitions using Go 1.22+ routing
  - middleware: CORS, logging, admin gate, JSON helpers
  - models: entity and request/response types
  - auth: credential hashing and ID generation
  - db: schema creation
  - cliparse: configuration parsing

See package documentation for each component.
*/
package main
