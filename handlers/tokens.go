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

const defaultExpirationHours = 24

type TokenHandler struct {
	store  store.Store
	engine *voting.Engine
	cfg    cliparse.Config
}

func NewTokenHandler(st store.Store, engine *voting.Engine, cfg cliparse.Config) *TokenHandler {
	return &TokenHandler{store: st, engine: engine, cfg: cfg}
}

// IssueTokens handles POST /sessions/:id/tokens
// Admin-only: generates a batch of single-use tokens for QR codes.
func (h *TokenHandler) IssueTokens(w http.ResponseWriter, r *http.Request) {
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

	var req models.IssueTokensRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if req.ExpirationHours == 0 {
		req.ExpirationHours = defaultExpirationHours
	}

	// The engine does not re-validate session existence; the handler
	// does it as the collaborator check.
	if _, err := h.store.GetSession(r.Context(), sessionID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeEngineError(w, voting.ErrSessionNotFound)
			return
		}
		writeEngineError(w, fmt.Errorf("%w: get session: %w", voting.ErrStorage, err))
		return
	}

	expiration := time.Duration(req.ExpirationHours) * time.Hour
	issued, err := h.engine.IssueTokens(r.Context(), sessionID, req.Count, expiration)
	if err != nil {
		if errors.Is(err, voting.ErrInvalidParameter) {
			middleware.ErrorResponse(w, http.StatusBadRequest,
				fmt.Sprintf("count must be between 1 and %d", voting.MaxBatchSize))
			return
		}
		// Partial batch success: report how many landed before the
		// failure. Already-written tokens stay valid.
		slog.Error("token issuance failed", "error", err, "session_id", sessionID, "issued", len(issued))
		middleware.ErrorResponse(w, http.StatusInternalServerError,
			fmt.Sprintf("storage failure after issuing %d of %d tokens", len(issued), req.Count))
		return
	}

	slog.Info("tokens issued", "session_id", sessionID, "count", len(issued))

	middleware.JSONResponse(w, http.StatusCreated, models.IssueTokensResponse{
		SessionID:   sessionID,
		IssuedCount: len(issued),
		Tokens:      issued,
	})
}

// RedeemToken handles POST /tokens/redeem
// Exchanges a scanned raw token for a signed session credential.
func (h *TokenHandler) RedeemToken(w http.ResponseWriter, r *http.Request) {
	var req models.RedeemTokenRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if req.Token == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "token is required")
		return
	}

	credential, err := h.engine.RedeemToken(r.Context(), req.Token)
	if err != nil {
		// Never log the raw token; the client IP hash is enough to
		// correlate abuse.
		ipHash := auth.HashIP(middleware.GetClientIP(r), h.cfg.AdminKeySalt)
		slog.Warn("token redemption rejected", "ip_hash", ipHash)
		writeEngineError(w, err)
		return
	}

	slog.Info("token redeemed")

	middleware.JSONResponse(w, http.StatusOK, models.RedeemTokenResponse{
		Credential: credential,
	})
}
