package voting

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sewaniwa/qr-vote-app/auth"
	"github.com/sewaniwa/qr-vote-app/store"
)

// RedeemToken validates a presented raw token, atomically flips it to
// used, and mints a signed session credential for its voter ID.
//
// Per-token state machine: ISSUED(unused) -> REDEEMED(used), at most
// once. Two concurrent calls for the same token race on the store's
// conditional update; exactly one succeeds, the loser gets
// ErrTokenAlreadyUsed.
//
// An unknown hash and a forged token are indistinguishable: both fail
// with ErrInvalidToken.
func (e *Engine) RedeemToken(ctx context.Context, raw string) (string, error) {
	// Shape check first: garbage never touches the store.
	if !hasTokenShape(raw) {
		return "", ErrInvalidToken
	}

	hashed := auth.HashToken(raw, e.cfg.TokenSecret)

	record, err := e.store.GetToken(ctx, hashed)
	if errors.Is(err, store.ErrNotFound) {
		return "", ErrInvalidToken
	}
	if err != nil {
		return "", fmt.Errorf("%w: get token: %w", ErrStorage, err)
	}

	// Read-only pre-checks. Retrying the same token after these fail
	// deterministically again; the conditional update below is what
	// decides contested redemptions.
	if record.IsUsed {
		return "", ErrTokenAlreadyUsed
	}
	if time.Now().Unix() > record.TTL {
		return "", ErrTokenExpired
	}

	err = e.store.MarkTokenUsed(ctx, hashed, time.Now())
	if errors.Is(err, store.ErrPreconditionFailed) {
		// Lost the race: a concurrent redemption flipped the token
		// between our read and this write. Expected contention, not a
		// system fault.
		return "", ErrTokenAlreadyUsed
	}
	if errors.Is(err, store.ErrNotFound) {
		return "", ErrInvalidToken
	}
	if err != nil {
		// Ambiguous outcome: the flip may have landed. Surface as a
		// storage error, never as a token state error, so the caller
		// knows to re-verify before retrying.
		return "", fmt.Errorf("%w: mark token used: %w", ErrStorage, err)
	}

	credential, err := auth.SignCredential(record.VoterID, e.cfg.SessionSecret)
	if err != nil {
		return "", fmt.Errorf("failed to mint credential: %w", err)
	}
	return credential, nil
}
