package router

import (
	"database/sql"
	"net/http"

	"github.com/sewaniwa/qr-vote-app/cliparse"
	"github.com/sewaniwa/qr-vote-app/handlers"
	"github.com/sewaniwa/qr-vote-app/middleware"
	"github.com/sewaniwa/qr-vote-app/store"
	"github.com/sewaniwa/qr-vote-app/voting"
)

func NewRouter(db *sql.DB, cfg cliparse.Config) *http.ServeMux {
	mux := http.NewServeMux()

	// Initialize store, engine, handlers
	st := store.NewSQL(db)
	engine := voting.NewEngine(st, cfg)

	sessionHandler := handlers.NewSessionHandler(st, engine, cfg)
	tokenHandler := handlers.NewTokenHandler(st, engine, cfg)
	voteHandler := handlers.NewVoteHandler(engine, cfg)

	// Health check
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	// Session management (admin operations)
	mux.HandleFunc("POST /sessions", middleware.WithLogging(sessionHandler.CreateSession))
	mux.HandleFunc("POST /sessions/{id}/candidates", middleware.WithLogging(sessionHandler.AddCandidate))
	mux.HandleFunc("POST /sessions/{id}/tokens", middleware.WithLogging(tokenHandler.IssueTokens))

	// Voting operations (public)
	mux.HandleFunc("POST /tokens/redeem", middleware.WithLogging(tokenHandler.RedeemToken))
	mux.HandleFunc("POST /sessions/{id}/votes", middleware.WithLogging(voteHandler.CastVote))

	// Session info (public)
	mux.HandleFunc("GET /sessions/{id}/status", middleware.WithLogging(sessionHandler.GetStatus))
	mux.HandleFunc("GET /sessions/{id}/candidates", middleware.WithLogging(sessionHandler.GetCandidates))

	// Root endpoint
	mux.HandleFunc("GET /", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("qr-vote API v1"))
	})

	return mux
}
