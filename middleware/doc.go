// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package middleware provides HTTP middleware and request/response helpers.

# Middleware

  - WithLogging: request start/completion logging with duration
  - RequireAdmin: HTTP Basic auth checked against active admin_users rows
  - CORS: cross-origin headers and preflight handling

# Helpers

  - JSONResponse / ErrorResponse: JSON encoding with standard error shape
  - ParseJSONBody: request body decoding
  - GetClientIP: client address from X-Forwarded-For, X-Real-IP, or
    RemoteAddr — recorded as origin_address on vote ledger rows
*/
package middleware
