// Copyright (c) 2025 OptimisticPessimist.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package main provides the entry point for the pscweb3 scheduling API server.

pscweb3 is a theater production management backend: it tracks projects,
members, scripts, and castings, and schedules rehearsals through
availability polls. Candidate slots are analyzed against the script so the
director sees which scenes each slot makes rehearsable.

# Starting the Server

The server requires environment variables or CLI flags for configuration:

	DATABASE_URL=rehearsals.db ADMIN_KEY_SALT=... go run .

Or with flags:

	go run . -p 3411 -d "postgres://..." -t postgres

A .env file in the working directory is loaded at startup.

# Configuration

Required settings:

  - DATABASE_URL (-d): SQLite file path or PostgreSQL connection string
  - ADMIN_KEY_SALT (--admin-salt): Secret for admin key HMAC

Optional settings:

  - PORT (-p): Server port (default: 3411)
  - DATABASE_TYPE (-t): "sqlite" (default) or "postgres"

# Architecture

The server uses a handler-based architecture with dependency injection:

  - handlers: HTTP request handlers (projects, scripts, polls, schedule)
  - engine: Pure slot analysis and recommendation ranking
  - router: Route definitions using Go 1.22+ routing
  - middleware: CORS, logging, JSON helpers
  - models: Request/response and domain types
  - auth: ID generation and admin key validation
  - db: Schema creation
  - cliparse: Configuration parsing

See package documentation for each component.
*/
package main
