/*
Package router defines HTTP routes for the voting API.

# Route Registration

NewRouter creates a configured http.ServeMux with all endpoints:

	mux := router.NewRouter(db, cfg)

# Endpoints

Health:

	GET /health

Session management (admin, requires X-Admin-Key):

	POST /sessions                 - Create voting session
	POST /sessions/{id}/candidates - Add candidate (before voting opens)
	POST /sessions/{id}/tokens     - Issue single-use tokens

Voting (public):

	POST /tokens/redeem       - Exchange raw token for credential
	POST /sessions/{id}/votes - Cast a vote

Session info (public):

	GET /sessions/{id}/status     - Voting window status
	GET /sessions/{id}/candidates - Candidate list, display order

# Handler Initialization

The router builds the SQL store and voting engine, then injects them
into the handlers:

	st := store.NewSQL(db)
	engine := voting.NewEngine(st, cfg)
	tokenHandler := handlers.NewTokenHandler(st, engine, cfg)
*/
package router
