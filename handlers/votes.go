package handlers

import (
	"log/slog"
	"net/http"

	"github.com/sewaniwa/qr-vote-app/cliparse"
	"github.com/sewaniwa/qr-vote-app/middleware"
	"github.com/sewaniwa/qr-vote-app/models"
	"github.com/sewaniwa/qr-vote-app/voting"
)

type VoteHandler struct {
	engine *voting.Engine
	cfg    cliparse.Config
}

func NewVoteHandler(engine *voting.Engine, cfg cliparse.Config) *VoteHandler {
	return &VoteHandler{engine: engine, cfg: cfg}
}

// CastVote handles POST /sessions/:id/votes
func (h *VoteHandler) CastVote(w http.ResponseWriter, r *http.Request) {
	sessionID := r.PathValue("id")
	if sessionID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "session_id is required")
		return
	}

	var req models.CastVoteRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if req.CandidateID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "candidate_id is required")
		return
	}
	if req.Credential == "" {
		middleware.ErrorResponse(w, http.StatusUnauthorized, "credential is required")
		return
	}

	voteID, err := h.engine.CastVote(r.Context(), sessionID, req.CandidateID, req.Credential, req.IdempotencyToken)
	if err != nil {
		writeEngineError(w, err)
		return
	}

	// The credential and voter identity are deliberately absent here.
	slog.Info("vote recorded", "session_id", sessionID, "vote_id", voteID)

	middleware.JSONResponse(w, http.StatusCreated, models.CastVoteResponse{
		VoteID: voteID,
	})
}
