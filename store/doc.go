/*
Package store defines the conditional-write storage contract consumed
by the voting engine, and its SQL implementation.

# Contract

Four typed interfaces (TokenStore, SessionStore, CandidateStore,
VoteStore) are bundled into Store. Three sentinel errors carry the
outcomes the engine's correctness depends on:

  - ErrNotFound: the record is absent
  - ErrAlreadyExists: a conditional insert found the key taken
  - ErrPreconditionFailed: a conditional update lost a race

Any other error is an ambiguous storage failure. Callers must not
treat it as a definite outcome: a timeout during MarkTokenUsed may or
may not have flipped the token, so state should be re-read before
retrying.

# Conditional Writes

MarkTokenUsed is the single synchronization point for token
redemption:

	UPDATE voting_token
	SET is_used = TRUE, used_at = $1
	WHERE hashed_token = $2 AND is_used = FALSE

Two concurrent redemptions race on this statement; the database
executes it atomically, so exactly one sees RowsAffected == 1 and the
other receives ErrPreconditionFailed.

InsertVote relies on the table's PRIMARY KEY plus UNIQUE constraints
on (session, voter_hash) and (session, idempotency_key); a conflict on
any of them surfaces as ErrAlreadyExists.

# Drivers

NewSQL works against lib/pq (postgres) and modernc.org/sqlite.
Duplicate-key detection matches both drivers' error strings, and all
queries use $N placeholders in strictly ascending order so positional
binding behaves identically on both.
*/
package store
