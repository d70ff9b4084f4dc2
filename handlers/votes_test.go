package handlers

import (
	"context"
	"net/http/httptest"
	"testing"

	"github.com/sewaniwa/qr-vote-app/auth"
	"github.com/sewaniwa/qr-vote-app/models"
	"github.com/sewaniwa/qr-vote-app/testutil"
	"github.com/sewaniwa/qr-vote-app/voting"
)

// redeemTestCredential issues and redeems one token for the session.
func redeemTestCredential(t *testing.T, engine *voting.Engine, raw string) string {
	t.Helper()
	credential, err := engine.RedeemToken(context.Background(), raw)
	if err != nil {
		t.Fatalf("RedeemToken() error = %v", err)
	}
	return credential
}

func TestCastVoteHandler(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	cfg := testutil.GetTestConfig()
	engine := testutil.NewTestEngine(conn, cfg)
	h := NewVoteHandler(engine, cfg)

	sessionID, _ := testutil.CreateTestSession(t, conn, cfg, models.StatusActive)
	candidateID := testutil.AddTestCandidate(t, conn, sessionID, "Alice", 1)

	castVote := func(sessionID string, body models.CastVoteRequest) *httptest.ResponseRecorder {
		w := httptest.NewRecorder()
		req := testutil.MakeRequest("POST", "/sessions/"+sessionID+"/votes", body, nil)
		req.SetPathValue("id", sessionID)
		h.CastVote(w, req)
		return w
	}

	t.Run("valid vote", func(t *testing.T) {
		raw := testutil.IssueTestToken(t, conn, cfg, sessionID)
		credential := redeemTestCredential(t, engine, raw)

		w := castVote(sessionID, models.CastVoteRequest{
			CandidateID: candidateID,
			Credential:  credential,
		})
		testutil.AssertStatus(t, w, 201)

		var resp models.CastVoteResponse
		testutil.AssertJSON(t, w, &resp)
		if resp.VoteID == "" {
			t.Error("response missing vote_id")
		}
	})

	t.Run("credential replay conflicts", func(t *testing.T) {
		raw := testutil.IssueTestToken(t, conn, cfg, sessionID)
		credential := redeemTestCredential(t, engine, raw)

		w := castVote(sessionID, models.CastVoteRequest{CandidateID: candidateID, Credential: credential})
		testutil.AssertStatus(t, w, 201)

		w = castVote(sessionID, models.CastVoteRequest{CandidateID: candidateID, Credential: credential})
		testutil.AssertStatus(t, w, 409)
	})

	t.Run("idempotent retry returns same vote", func(t *testing.T) {
		raw := testutil.IssueTestToken(t, conn, cfg, sessionID)
		credential := redeemTestCredential(t, engine, raw)
		body := models.CastVoteRequest{
			CandidateID:      candidateID,
			Credential:       credential,
			IdempotencyToken: "handler-retry-1",
		}

		w := castVote(sessionID, body)
		testutil.AssertStatus(t, w, 201)
		var first models.CastVoteResponse
		testutil.AssertJSON(t, w, &first)

		w = castVote(sessionID, body)
		testutil.AssertStatus(t, w, 201)
		var second models.CastVoteResponse
		testutil.AssertJSON(t, w, &second)

		if second.VoteID != first.VoteID {
			t.Errorf("retry vote_id = %q, want %q", second.VoteID, first.VoteID)
		}
	})

	t.Run("missing credential", func(t *testing.T) {
		w := castVote(sessionID, models.CastVoteRequest{CandidateID: candidateID})
		testutil.AssertStatus(t, w, 401)
	})

	t.Run("missing candidate id", func(t *testing.T) {
		raw := testutil.IssueTestToken(t, conn, cfg, sessionID)
		credential := redeemTestCredential(t, engine, raw)

		w := castVote(sessionID, models.CastVoteRequest{Credential: credential})
		testutil.AssertStatus(t, w, 400)
	})

	t.Run("forged credential", func(t *testing.T) {
		forged, err := auth.SignCredential("voter_forged", "not-the-session-secret")
		if err != nil {
			t.Fatalf("SignCredential() error = %v", err)
		}
		w := castVote(sessionID, models.CastVoteRequest{CandidateID: candidateID, Credential: forged})
		testutil.AssertStatus(t, w, 401)
	})

	t.Run("unknown candidate", func(t *testing.T) {
		raw := testutil.IssueTestToken(t, conn, cfg, sessionID)
		credential := redeemTestCredential(t, engine, raw)

		w := castVote(sessionID, models.CastVoteRequest{CandidateID: "no-such-candidate", Credential: credential})
		testutil.AssertStatus(t, w, 400)
	})

	t.Run("closed session", func(t *testing.T) {
		closedID, _ := testutil.CreateTestSession(t, conn, cfg, models.StatusClosed)
		closedCandidate := testutil.AddTestCandidate(t, conn, closedID, "Bob", 1)
		raw := testutil.IssueTestToken(t, conn, cfg, sessionID)
		credential := redeemTestCredential(t, engine, raw)

		w := castVote(closedID, models.CastVoteRequest{CandidateID: closedCandidate, Credential: credential})
		testutil.AssertStatus(t, w, 409)
	})

	t.Run("pending session", func(t *testing.T) {
		pendingID, _ := testutil.CreateTestSession(t, conn, cfg, models.StatusPending)
		pendingCandidate := testutil.AddTestCandidate(t, conn, pendingID, "Carol", 1)
		raw := testutil.IssueTestToken(t, conn, cfg, sessionID)
		credential := redeemTestCredential(t, engine, raw)

		w := castVote(pendingID, models.CastVoteRequest{CandidateID: pendingCandidate, Credential: credential})
		testutil.AssertStatus(t, w, 409)
	})
}
