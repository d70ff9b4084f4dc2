package db

import (
	"database/sql"
	"fmt"
)

// CreateSchema creates all tables needed for the application.
// Safe to call multiple times - uses IF NOT EXISTS.
// Portable across postgres and sqlite: no NOW() defaults, timestamps
// are set by the application.
func CreateSchema(db *sql.DB) error {
	_, err := db.Exec(schema)
	if err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}

	return nil
}

const schema = `
-- Voting sessions
CREATE TABLE IF NOT EXISTS voting_session (
    session_id TEXT PRIMARY KEY,
    title TEXT NOT NULL,
    description TEXT NOT NULL DEFAULT '',
    start_time TIMESTAMP NOT NULL,
    end_time TIMESTAMP NOT NULL,
    created_at TIMESTAMP NOT NULL,
    updated_at TIMESTAMP NOT NULL
);

-- Candidates
CREATE TABLE IF NOT EXISTS candidate (
    candidate_id TEXT PRIMARY KEY,
    voting_session_id TEXT NOT NULL REFERENCES voting_session(session_id) ON DELETE CASCADE,
    name TEXT NOT NULL,
    description TEXT NOT NULL DEFAULT '',
    image_url TEXT NOT NULL DEFAULT '',
    display_order INTEGER NOT NULL DEFAULT 0
);

CREATE INDEX IF NOT EXISTS idx_candidate_session ON candidate(voting_session_id);

-- Single-use voting tokens, keyed by hash (raw tokens are never stored)
CREATE TABLE IF NOT EXISTS voting_token (
    hashed_token TEXT PRIMARY KEY,
    pk TEXT NOT NULL UNIQUE,
    voting_session_id TEXT NOT NULL,
    voter_id TEXT NOT NULL,
    is_used BOOLEAN NOT NULL DEFAULT FALSE,
    created_at TIMESTAMP NOT NULL,
    used_at TIMESTAMP,
    ttl BIGINT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_voting_token_session ON voting_token(voting_session_id);

-- Votes: append-only audit trail
CREATE TABLE IF NOT EXISTS vote (
    pk TEXT PRIMARY KEY,
    sk TEXT NOT NULL,
    vote_id TEXT NOT NULL,
    voting_session_id TEXT NOT NULL,
    candidate_id TEXT NOT NULL,
    voter_hash TEXT NOT NULL,
    cast_at TIMESTAMP NOT NULL,
    idempotency_key TEXT,
    UNIQUE (voting_session_id, voter_hash),
    UNIQUE (voting_session_id, idempotency_key)
);

CREATE INDEX IF NOT EXISTS idx_vote_candidate ON vote(voting_session_id, candidate_id);
`
