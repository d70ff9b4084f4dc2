package voting

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/sewaniwa/qr-vote-app/auth"
	"github.com/sewaniwa/qr-vote-app/models"
)

// TokenPrefix is the fixed prefix of every raw voting token. A cheap
// prefix check rejects non-token strings before any store access.
const TokenPrefix = "VOTE_"

// MaxBatchSize bounds a single IssueTokens call.
const MaxBatchSize = 1000

// rawToken builds the self-describing token string embedded in a QR
// code: prefix + tokenId + sessionId.
func rawToken(tokenID, sessionID string) string {
	return TokenPrefix + tokenID + "_" + sessionID
}

// hasTokenShape is the local pre-check used by the redeemer.
func hasTokenShape(raw string) bool {
	return strings.HasPrefix(raw, TokenPrefix) && len(raw) > len(TokenPrefix)
}

// IssueTokens generates a batch of single-use tokens for a session and
// persists their hashed form unused. The returned slice is the only
// place raw tokens ever exist in full; the store sees keyed hashes
// only.
//
// Writes are per-token with no cross-record atomicity. On a write
// failure the tokens issued so far are returned alongside the error so
// the caller can report partial success.
func (e *Engine) IssueTokens(ctx context.Context, sessionID string, count int, expiration time.Duration) ([]models.IssuedToken, error) {
	if sessionID == "" {
		return nil, fmt.Errorf("%w: session id is required", ErrInvalidParameter)
	}
	if count < 1 || count > MaxBatchSize {
		return nil, fmt.Errorf("%w: count must be between 1 and %d", ErrInvalidParameter, MaxBatchSize)
	}

	now := time.Now()
	ttl := now.Add(expiration).Unix()

	issued := make([]models.IssuedToken, 0, count)
	for i := 0; i < count; i++ {
		tokenID := uuid.NewString()
		voterID := "voter_" + uuid.NewString()
		raw := rawToken(tokenID, sessionID)

		record := &models.VotingToken{
			HashedToken:     auth.HashToken(raw, e.cfg.TokenSecret),
			PK:              sessionID + "#" + tokenID,
			VotingSessionID: sessionID,
			VoterID:         voterID,
			IsUsed:          false,
			CreatedAt:       now,
			TTL:             ttl,
		}

		if err := e.store.PutToken(ctx, record); err != nil {
			return issued, fmt.Errorf("%w: issued %d of %d tokens: %w", ErrStorage, len(issued), count, err)
		}

		issued = append(issued, models.IssuedToken{
			TokenID:  tokenID,
			RawToken: raw,
			VoterID:  voterID,
		})
	}

	return issued, nil
}
