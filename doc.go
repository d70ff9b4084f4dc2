/*
Package main provides the entry point for the qr-vote API server.

qr-vote is the backend for a QR-code-based anonymous voting app: an
administrator issues batches of single-use tokens, a voter scans one,
exchanges it for a short-lived signed credential, and casts exactly
one vote while the session window is open.

# Starting the Server

The server requires environment variables or CLI flags for
configuration:

	DATABASE_URL=vote.db TOKEN_SECRET=... SESSION_SECRET=... \
	VOTER_HASH_SECRET=... ADMIN_KEY_SALT=... go run main.go

Or with flags:

	go run main.go -p 3412 -d vote.db --token-secret ...

A .env file is loaded if present (godotenv).

# Configuration

Required settings:

  - DATABASE_URL (-d): sqlite path or PostgreSQL connection string
  - TOKEN_SECRET: Keyed-hash secret for stored tokens
  - SESSION_SECRET: Credential signing secret
  - VOTER_HASH_SECRET: Vote anonymization secret
  - ADMIN_KEY_SALT: Secret for admin key HMAC

Optional settings:

  - PORT (-p): Server port (default: 3412)
  - DATABASE_TYPE (-t): "sqlite" (default) or "postgres"

The three voting secrets must be distinct; each rotates independently.

# Architecture

The server uses a handler-based architecture with dependency injection:

  - voting: Core engine (issuer, redeemer, recorder, window guard)
  - store: Conditional-write storage contract + SQL implementation
  - auth: Keyed hashing and session credentials
  - handlers: HTTP request handlers
  - router: Route definitions using Go 1.22+ routing
  - middleware: CORS, logging, JSON helpers
  - models: Request/response and domain types
  - db: Schema creation
  - cliparse: Configuration parsing

See package documentation for each component.
*/
package main
