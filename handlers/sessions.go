package handlers

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/sewaniwa/qr-vote-app/auth"
	"github.com/sewaniwa/qr-vote-app/cliparse"
	"github.com/sewaniwa/qr-vote-app/middleware"
	"github.com/sewaniwa/qr-vote-app/models"
	"github.com/sewaniwa/qr-vote-app/store"
	"github.com/sewaniwa/qr-vote-app/voting"
)

type SessionHandler struct {
	store  store.Store
	engine *voting.Engine
	cfg    cliparse.Config
}

func NewSessionHandler(st store.Store, engine *voting.Engine, cfg cliparse.Config) *SessionHandler {
	return &SessionHandler{store: st, engine: engine, cfg: cfg}
}

// CreateSession handles POST /sessions
func (h *SessionHandler) CreateSession(w http.ResponseWriter, r *http.Request) {
	var req models.CreateSessionRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	// Validate input
	if req.Title == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "title is required")
		return
	}
	startTime, err := time.Parse(time.RFC3339, req.StartTime)
	if err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "start_time must be RFC3339")
		return
	}
	endTime, err := time.Parse(time.RFC3339, req.EndTime)
	if err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "end_time must be RFC3339")
		return
	}
	if !endTime.After(startTime) {
		middleware.ErrorResponse(w, http.StatusBadRequest, "end_time must be after start_time")
		return
	}

	sessionID, err := auth.GenerateID(16)
	if err != nil {
		slog.Error("failed to generate session ID", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to create session")
		return
	}

	adminKey := auth.GenerateAdminKey(sessionID, h.cfg.AdminKeySalt)

	now := time.Now()
	err = h.store.PutSession(r.Context(), &models.VotingSession{
		SessionID:   sessionID,
		Title:       req.Title,
		Description: req.Description,
		StartTime:   startTime,
		EndTime:     endTime,
		CreatedAt:   now,
		UpdatedAt:   now,
	})
	if err != nil {
		slog.Error("failed to insert session", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to create session")
		return
	}

	slog.Info("session created", "session_id", sessionID, "start", startTime, "end", endTime)

	middleware.JSONResponse(w, http.StatusCreated, models.CreateSessionResponse{
		SessionID: sessionID,
		AdminKey:  adminKey,
	})
}

// AddCandidate handles POST /sessions/:id/candidates
func (h *SessionHandler) AddCandidate(w http.ResponseWriter, r *http.Request) {
	sessionID := r.PathValue("id")
	if sessionID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "session_id is required")
		return
	}

	// Validate admin key
	adminKey := r.Header.Get("X-Admin-Key")
	if err := auth.ValidateAdminKey(sessionID, adminKey, h.cfg.AdminKeySalt); err != nil {
		middleware.ErrorResponse(w, http.StatusUnauthorized, "Invalid admin key")
		return
	}

	var req models.AddCandidateRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if req.Name == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "name is required")
		return
	}

	// Candidates are only added before voting opens
	sess, err := h.store.GetSession(r.Context(), sessionID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeEngineError(w, voting.ErrSessionNotFound)
			return
		}
		writeEngineError(w, fmt.Errorf("%w: get session: %w", voting.ErrStorage, err))
		return
	}
	if voting.WindowState(sess, time.Now()) != models.StatusPending {
		middleware.ErrorResponse(w, http.StatusConflict, "Candidates cannot be added after voting opens")
		return
	}

	candidateID, err := auth.GenerateID(12)
	if err != nil {
		slog.Error("failed to generate candidate ID", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to create candidate")
		return
	}

	err = h.store.PutCandidate(r.Context(), &models.Candidate{
		CandidateID:     candidateID,
		VotingSessionID: sessionID,
		Name:            req.Name,
		Description:     req.Description,
		ImageURL:        req.ImageURL,
		DisplayOrder:    req.DisplayOrder,
	})
	if err != nil {
		slog.Error("failed to insert candidate", "error", err, "session_id", sessionID)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to create candidate")
		return
	}

	slog.Info("candidate added", "session_id", sessionID, "candidate_id", candidateID)

	middleware.JSONResponse(w, http.StatusCreated, models.AddCandidateResponse{
		CandidateID: candidateID,
	})
}

// GetStatus handles GET /sessions/:id/status
func (h *SessionHandler) GetStatus(w http.ResponseWriter, r *http.Request) {
	sessionID := r.PathValue("id")
	if sessionID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "session_id is required")
		return
	}

	status, err := h.engine.WindowStatus(r.Context(), sessionID)
	if err != nil {
		writeEngineError(w, err)
		return
	}

	middleware.JSONResponse(w, http.StatusOK, status)
}

// GetCandidates handles GET /sessions/:id/candidates
func (h *SessionHandler) GetCandidates(w http.ResponseWriter, r *http.Request) {
	sessionID := r.PathValue("id")
	if sessionID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "session_id is required")
		return
	}

	candidates, err := h.engine.Candidates(r.Context(), sessionID)
	if err != nil {
		writeEngineError(w, err)
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.CandidateListResponse{
		SessionID:  sessionID,
		Candidates: candidates,
	})
}
