// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package router defines the HTTP route table using Go 1.22+ ServeMux routing.

Public routes cover the voter flow (login, ballot retrieval, submission)
and the admin login screen. Everything under /admin/ except the login
endpoint is wrapped in middleware.RequireAdmin in addition to request
logging.

	mux := router.NewRouter(dbConn, cfg)
*/
package router
