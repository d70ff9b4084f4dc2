package store

import (
	"context"
	"errors"
	"time"

	"github.com/sewaniwa/qr-vote-app/models"
)

var (
	// ErrNotFound means the requested record does not exist.
	ErrNotFound = errors.New("record not found")
	// ErrAlreadyExists means a conditional insert found the key taken.
	ErrAlreadyExists = errors.New("record already exists")
	// ErrPreconditionFailed means a conditional update observed state
	// that no longer satisfies its precondition. It is a definite
	// outcome, distinct from an ambiguous storage failure.
	ErrPreconditionFailed = errors.New("precondition failed")
)

// TokenStore persists single-use voting tokens keyed by their hash.
type TokenStore interface {
	// PutToken inserts a fresh unused token record.
	PutToken(ctx context.Context, t *models.VotingToken) error
	// GetToken fetches a token by its keyed hash. ErrNotFound when absent.
	GetToken(ctx context.Context, hashedToken string) (*models.VotingToken, error)
	// MarkTokenUsed flips is_used false->true atomically. Returns
	// ErrPreconditionFailed if the token was already used and
	// ErrNotFound if no such token exists. This conditional update is
	// the sole cross-request synchronization point for redemption.
	MarkTokenUsed(ctx context.Context, hashedToken string, usedAt time.Time) error
}

// SessionStore persists voting session metadata.
type SessionStore interface {
	PutSession(ctx context.Context, s *models.VotingSession) error
	GetSession(ctx context.Context, sessionID string) (*models.VotingSession, error)
}

// CandidateStore persists candidates and serves the per-session listing.
type CandidateStore interface {
	PutCandidate(ctx context.Context, c *models.Candidate) error
	GetCandidate(ctx context.Context, candidateID string) (*models.Candidate, error)
	// CandidatesBySession returns candidates ordered by display_order.
	CandidatesBySession(ctx context.Context, sessionID string) ([]models.Candidate, error)
}

// VoteStore persists immutable vote records.
type VoteStore interface {
	// InsertVote writes a vote only if no conflicting record exists
	// (same composite key, same voter hash in the session, or same
	// idempotency key). ErrAlreadyExists on conflict.
	InsertVote(ctx context.Context, v *models.Vote) error
	// VoteByIdempotencyKey finds a prior vote written with the given
	// idempotency key, for idempotent client retries.
	VoteByIdempotencyKey(ctx context.Context, sessionID, key string) (*models.Vote, error)
}

// Store bundles all record types behind one dependency.
type Store interface {
	TokenStore
	SessionStore
	CandidateStore
	VoteStore
}
