/*
Package handlers contains HTTP request handlers for the voting API.

# Handler Types

Each handler is a struct with store, engine, and config dependencies:

  - SessionHandler: Session creation, candidates, window status
  - TokenHandler: Token issuance (admin) and redemption (public)
  - VoteHandler: Vote submission

Handlers are created via constructor functions:

	tokenHandler := handlers.NewTokenHandler(st, engine, cfg)

They stay thin: all correctness-bearing logic lives in the voting
engine, and handlers only parse requests, check admin keys, and map
engine error kinds to HTTP statuses.

# Admin Flow

Session setup happens before voting opens:

	POST /sessions                  → CreateSession (returns admin_key)
	POST /sessions/{id}/candidates  → AddCandidate (pending window only)
	POST /sessions/{id}/tokens      → IssueTokens (raw tokens for QR codes)

Admin operations require the X-Admin-Key header, validated against the
per-session HMAC key.

# Voter Flow

	POST /tokens/redeem       → RedeemToken (token → session credential)
	POST /sessions/{id}/votes → CastVote (credential + candidate → vote)

# Error Mapping

Engine sentinels map to statuses in writeEngineError:

	InvalidToken / InvalidCredential / CredentialExpired → 401
	TokenAlreadyUsed / NotStarted / Closed / Duplicate   → 409
	TokenExpired                                         → 410
	InvalidParameter / InvalidCandidate                  → 400
	SessionNotFound                                      → 404
	storage failures                                     → 500

Externally, an unknown token and a forged token produce identical
responses; raw tokens and credentials are never logged or echoed.
*/
package handlers
