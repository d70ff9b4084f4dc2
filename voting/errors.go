package voting

import "errors"

// Expected engine outcomes. Handlers map these to HTTP statuses with
// errors.Is; none of them are retried automatically inside the engine.
var (
	ErrInvalidParameter = errors.New("invalid parameter")
	// ErrInvalidToken covers malformed, forged, and never-issued
	// tokens alike. The causes are deliberately indistinguishable so
	// the redemption endpoint cannot be used as a token-existence
	// oracle.
	ErrInvalidToken     = errors.New("invalid token")
	ErrTokenAlreadyUsed = errors.New("token already used")
	ErrTokenExpired     = errors.New("token expired")
	ErrSessionNotFound  = errors.New("voting session not found")
	ErrVotingNotStarted = errors.New("voting has not started")
	ErrVotingClosed     = errors.New("voting is closed")
	ErrInvalidCandidate = errors.New("invalid candidate")
	ErrDuplicateVote    = errors.New("duplicate vote")
	// ErrStorage wraps collaborator store failures, including
	// ambiguous ones (a timeout during the token flip may or may not
	// have landed). Callers must re-read state before retrying rather
	// than assume the write failed.
	ErrStorage = errors.New("storage failure")
)
