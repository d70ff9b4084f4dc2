package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/sewaniwa/qr-vote-app/auth"
	"github.com/sewaniwa/qr-vote-app/middleware"
	"github.com/sewaniwa/qr-vote-app/voting"
)

// writeEngineError maps engine error kinds to HTTP responses. The
// messages are stable categories only; internal state transitions and
// storage details are never exposed to callers.
func writeEngineError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, voting.ErrInvalidParameter):
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid parameters")
	case errors.Is(err, voting.ErrInvalidToken):
		middleware.ErrorResponse(w, http.StatusUnauthorized, "Invalid token")
	case errors.Is(err, voting.ErrTokenAlreadyUsed):
		middleware.ErrorResponse(w, http.StatusConflict, "Token already used")
	case errors.Is(err, voting.ErrTokenExpired):
		middleware.ErrorResponse(w, http.StatusGone, "Token expired")
	case errors.Is(err, auth.ErrInvalidCredential):
		middleware.ErrorResponse(w, http.StatusUnauthorized, "Invalid session credential")
	case errors.Is(err, auth.ErrCredentialExpired):
		middleware.ErrorResponse(w, http.StatusUnauthorized, "Session credential expired")
	case errors.Is(err, voting.ErrSessionNotFound):
		middleware.ErrorResponse(w, http.StatusNotFound, "Voting session not found")
	case errors.Is(err, voting.ErrVotingNotStarted):
		middleware.ErrorResponse(w, http.StatusConflict, "Voting has not started")
	case errors.Is(err, voting.ErrVotingClosed):
		middleware.ErrorResponse(w, http.StatusConflict, "Voting is closed")
	case errors.Is(err, voting.ErrInvalidCandidate):
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid candidate")
	case errors.Is(err, voting.ErrDuplicateVote):
		middleware.ErrorResponse(w, http.StatusConflict, "Duplicate vote")
	default:
		slog.Error("storage failure", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Storage error")
	}
}
