package handlers

import (
	"context"
	"errors"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/sewaniwa/qr-vote-app/auth"
	"github.com/sewaniwa/qr-vote-app/models"
	"github.com/sewaniwa/qr-vote-app/store"
	"github.com/sewaniwa/qr-vote-app/testutil"
	"github.com/sewaniwa/qr-vote-app/voting"
)

func TestIssueTokensHandler(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	cfg := testutil.GetTestConfig()
	h := NewTokenHandler(store.NewSQL(conn), testutil.NewTestEngine(conn, cfg), cfg)

	sessionID, adminKey := testutil.CreateTestSession(t, conn, cfg, models.StatusPending)

	t.Run("valid batch", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := testutil.MakeRequest("POST", "/sessions/"+sessionID+"/tokens",
			models.IssueTokensRequest{Count: 5},
			map[string]string{"X-Admin-Key": adminKey})
		req.SetPathValue("id", sessionID)
		h.IssueTokens(w, req)

		testutil.AssertStatus(t, w, 201)

		var resp models.IssueTokensResponse
		testutil.AssertJSON(t, w, &resp)
		if resp.IssuedCount != 5 || len(resp.Tokens) != 5 {
			t.Fatalf("issued_count = %d, len(tokens) = %d, want 5", resp.IssuedCount, len(resp.Tokens))
		}
		for _, tok := range resp.Tokens {
			if !strings.HasPrefix(tok.RawToken, voting.TokenPrefix) {
				t.Errorf("raw token %q missing prefix", tok.RawToken)
			}
		}
	})

	t.Run("wrong admin key", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := testutil.MakeRequest("POST", "/sessions/"+sessionID+"/tokens",
			models.IssueTokensRequest{Count: 5},
			map[string]string{"X-Admin-Key": "bogus"})
		req.SetPathValue("id", sessionID)
		h.IssueTokens(w, req)
		testutil.AssertStatus(t, w, 401)
	})

	t.Run("count out of range", func(t *testing.T) {
		for _, count := range []int{-1, voting.MaxBatchSize + 1} {
			w := httptest.NewRecorder()
			req := testutil.MakeRequest("POST", "/sessions/"+sessionID+"/tokens",
				models.IssueTokensRequest{Count: count},
				map[string]string{"X-Admin-Key": adminKey})
			req.SetPathValue("id", sessionID)
			h.IssueTokens(w, req)
			testutil.AssertStatus(t, w, 400)
		}
	})

	t.Run("unknown session", func(t *testing.T) {
		// The key is deterministic, so a valid key can exist for a
		// session that was never created.
		ghostID := "no-such-session"
		ghostKey := auth.GenerateAdminKey(ghostID, cfg.AdminKeySalt)

		w := httptest.NewRecorder()
		req := testutil.MakeRequest("POST", "/sessions/"+ghostID+"/tokens",
			models.IssueTokensRequest{Count: 5},
			map[string]string{"X-Admin-Key": ghostKey})
		req.SetPathValue("id", ghostID)
		h.IssueTokens(w, req)
		testutil.AssertStatus(t, w, 404)
	})
}

// outageSessionStore simulates a store outage on session reads.
type outageSessionStore struct {
	store.Store
}

func (s *outageSessionStore) GetSession(ctx context.Context, sessionID string) (*models.VotingSession, error) {
	return nil, errors.New("connection refused")
}

// TestIssueTokensStoreOutage verifies a failing session lookup surfaces
// as a storage error, not as session-not-found.
func TestIssueTokensStoreOutage(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	cfg := testutil.GetTestConfig()
	h := NewTokenHandler(&outageSessionStore{}, testutil.NewTestEngine(conn, cfg), cfg)

	sessionID := "outage-session"
	adminKey := auth.GenerateAdminKey(sessionID, cfg.AdminKeySalt)

	w := httptest.NewRecorder()
	req := testutil.MakeRequest("POST", "/sessions/"+sessionID+"/tokens",
		models.IssueTokensRequest{Count: 5},
		map[string]string{"X-Admin-Key": adminKey})
	req.SetPathValue("id", sessionID)
	h.IssueTokens(w, req)

	testutil.AssertStatus(t, w, 500)
}

func TestRedeemTokenHandler(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	cfg := testutil.GetTestConfig()
	h := NewTokenHandler(store.NewSQL(conn), testutil.NewTestEngine(conn, cfg), cfg)

	sessionID, _ := testutil.CreateTestSession(t, conn, cfg, models.StatusActive)

	t.Run("valid redemption", func(t *testing.T) {
		raw := testutil.IssueTestToken(t, conn, cfg, sessionID)

		w := httptest.NewRecorder()
		h.RedeemToken(w, testutil.MakeRequest("POST", "/tokens/redeem",
			models.RedeemTokenRequest{Token: raw}, nil))

		testutil.AssertStatus(t, w, 200)

		var resp models.RedeemTokenResponse
		testutil.AssertJSON(t, w, &resp)
		if _, err := auth.VerifyCredential(resp.Credential, cfg.SessionSecret); err != nil {
			t.Errorf("returned credential does not verify: %v", err)
		}
	})

	t.Run("second redemption conflicts", func(t *testing.T) {
		raw := testutil.IssueTestToken(t, conn, cfg, sessionID)

		w := httptest.NewRecorder()
		h.RedeemToken(w, testutil.MakeRequest("POST", "/tokens/redeem",
			models.RedeemTokenRequest{Token: raw}, nil))
		testutil.AssertStatus(t, w, 200)

		w = httptest.NewRecorder()
		h.RedeemToken(w, testutil.MakeRequest("POST", "/tokens/redeem",
			models.RedeemTokenRequest{Token: raw}, nil))
		testutil.AssertStatus(t, w, 409)
	})

	t.Run("unknown token", func(t *testing.T) {
		w := httptest.NewRecorder()
		h.RedeemToken(w, testutil.MakeRequest("POST", "/tokens/redeem",
			models.RedeemTokenRequest{Token: "VOTE_fake_" + sessionID}, nil))
		testutil.AssertStatus(t, w, 401)
	})

	t.Run("expired token", func(t *testing.T) {
		raw := testutil.WriteExpiredToken(t, conn, cfg, sessionID)

		w := httptest.NewRecorder()
		h.RedeemToken(w, testutil.MakeRequest("POST", "/tokens/redeem",
			models.RedeemTokenRequest{Token: raw}, nil))
		testutil.AssertStatus(t, w, 410)
	})

	t.Run("missing token field", func(t *testing.T) {
		w := httptest.NewRecorder()
		h.RedeemToken(w, testutil.MakeRequest("POST", "/tokens/redeem",
			models.RedeemTokenRequest{}, nil))
		testutil.AssertStatus(t, w, 400)
	})

	t.Run("invalid json", func(t *testing.T) {
		w := httptest.NewRecorder()
		h.RedeemToken(w, testutil.MakeRequest("POST", "/tokens/redeem", nil, nil))
		testutil.AssertStatus(t, w, 400)
	})
}
