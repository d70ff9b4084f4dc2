/*
Package db handles database schema creation.

# Schema Creation

CreateSchema initializes all required tables:

	if err := db.CreateSchema(conn); err != nil {
		log.Fatal(err)
	}

Safe to call multiple times - uses IF NOT EXISTS for all tables and
indexes. The DDL avoids NOW() defaults and JSON column types so the
same schema runs on postgres (lib/pq) and sqlite (modernc.org/sqlite);
all timestamps are written by the application.

# Tables

  - voting_session: Session metadata and voting window
  - candidate: Candidates per session
  - voting_token: Hashed single-use tokens
  - vote: Immutable vote records

# Constraints

The correctness-bearing constraints:

  - voting_token.hashed_token PRIMARY KEY: lookup by keyed hash only
  - voting_token.is_used: flipped by a guarded UPDATE, at most once
  - vote.pk PRIMARY KEY: one record per sessionId#voteId
  - vote UNIQUE (voting_session_id, voter_hash): one vote per voter
    per session, independent of token single-use enforcement
  - vote UNIQUE (voting_session_id, idempotency_key): idempotent
    client retries (NULL keys exempt)

# Relationships

	voting_session 1──* candidate
	voting_session 1──* voting_token
	voting_session 1──* vote

# TTL Cleanup

voting_token.ttl is a unix-seconds expiry checked at redemption time.
Background deletion of expired rows is left to external tooling, the
table is small and expired rows are inert.
*/
package db
