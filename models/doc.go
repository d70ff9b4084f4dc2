/*
Package models defines request, response, and domain types for the API.

# Request Types

Types for parsing incoming JSON:

  - CreateSessionRequest: title, description, start_time, end_time
  - AddCandidateRequest: name, description, image_url, display_order
  - IssueTokensRequest: count, expiration_hours
  - RedeemTokenRequest: token
  - CastVoteRequest: candidate_id, credential, idempotency_token

# Response Types

Types for JSON responses:

  - CreateSessionResponse: session_id, admin_key
  - AddCandidateResponse: candidate_id
  - IssueTokensResponse: session_id, issued_count, tokens
  - RedeemTokenResponse: credential
  - CastVoteResponse: vote_id
  - WindowStatusResponse: status, start_time, end_time, message
  - ErrorResponse: error, message

# Domain Types

Internal data structures:

  - VotingSession: voting window metadata
  - Candidate: one selectable candidate, ordered by display_order
  - VotingToken: hashed single-use token record (raw token never stored)
  - Vote: immutable vote record with anonymized voter hash

# Constants

Window status values, derived from the current time against the
session's [start_time, end_time) window:

	StatusPending = "PENDING"
	StatusActive  = "ACTIVE"
	StatusClosed  = "CLOSED"
*/
package models
