package voting

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/sewaniwa/qr-vote-app/auth"
	"github.com/sewaniwa/qr-vote-app/models"
	"github.com/sewaniwa/qr-vote-app/store"
)

// CastVote records one vote for a verified credential. Credential
// errors from auth.VerifyCredential propagate unchanged.
//
// The primary double-voting guard is upstream: a credential can only
// exist because a token was redeemed, and redemption happens at most
// once per token. The conditional insert here (plus the per-session
// voter-hash uniqueness) is defense in depth against replayed
// submissions.
func (e *Engine) CastVote(ctx context.Context, sessionID, candidateID, credential, idempotencyKey string) (string, error) {
	if sessionID == "" {
		return "", fmt.Errorf("%w: session id is required", ErrInvalidParameter)
	}
	if candidateID == "" {
		return "", fmt.Errorf("%w: candidate id is required", ErrInvalidParameter)
	}

	voterID, err := auth.VerifyCredential(credential, e.cfg.SessionSecret)
	if err != nil {
		return "", err
	}

	sess, err := e.store.GetSession(ctx, sessionID)
	if errors.Is(err, store.ErrNotFound) {
		return "", ErrSessionNotFound
	}
	if err != nil {
		return "", fmt.Errorf("%w: get session: %w", ErrStorage, err)
	}

	// Re-derive the window server-side; client-reported status is
	// never trusted on the enforcement path.
	switch WindowState(sess, time.Now()) {
	case models.StatusPending:
		return "", ErrVotingNotStarted
	case models.StatusClosed:
		return "", ErrVotingClosed
	}

	candidate, err := e.store.GetCandidate(ctx, candidateID)
	if errors.Is(err, store.ErrNotFound) {
		return "", ErrInvalidCandidate
	}
	if err != nil {
		return "", fmt.Errorf("%w: get candidate: %w", ErrStorage, err)
	}
	if candidate.VotingSessionID != sessionID {
		return "", ErrInvalidCandidate
	}

	voterHash := auth.HashVoter(voterID, e.cfg.VoterHashSecret)
	voteID := uuid.NewString()
	now := time.Now()

	vote := &models.Vote{
		PK:              sessionID + "#" + voteID,
		SK:              candidateID + "#" + now.UTC().Format(time.RFC3339Nano),
		VoteID:          voteID,
		VotingSessionID: sessionID,
		CandidateID:     candidateID,
		VoterHash:       voterHash,
		Timestamp:       now,
		IdempotencyKey:  idempotencyKey,
	}

	err = e.store.InsertVote(ctx, vote)
	if errors.Is(err, store.ErrAlreadyExists) {
		// The idempotent short-circuit only applies when the prior vote
		// is this voter's identical submission; another voter's key
		// colliding must not report their vote as ours.
		if idempotencyKey != "" {
			prior, lookupErr := e.store.VoteByIdempotencyKey(ctx, sessionID, idempotencyKey)
			if lookupErr == nil && prior.VoterHash == voterHash && prior.CandidateID == candidateID {
				return prior.VoteID, nil
			}
		}
		return "", ErrDuplicateVote
	}
	if err != nil {
		return "", fmt.Errorf("%w: insert vote: %w", ErrStorage, err)
	}

	return voteID, nil
}

// Candidates lists a session's candidates in display order.
func (e *Engine) Candidates(ctx context.Context, sessionID string) ([]models.Candidate, error) {
	if sessionID == "" {
		return nil, fmt.Errorf("%w: session id is required", ErrInvalidParameter)
	}
	if _, err := e.store.GetSession(ctx, sessionID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrSessionNotFound
		}
		return nil, fmt.Errorf("%w: get session: %w", ErrStorage, err)
	}
	candidates, err := e.store.CandidatesBySession(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("%w: list candidates: %w", ErrStorage, err)
	}
	return candidates, nil
}
