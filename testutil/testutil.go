package testutil

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	_ "modernc.org/sqlite"

	"github.com/sewaniwa/qr-vote-app/auth"
	"github.com/sewaniwa/qr-vote-app/cliparse"
	"github.com/sewaniwa/qr-vote-app/db"
	"github.com/sewaniwa/qr-vote-app/models"
	"github.com/sewaniwa/qr-vote-app/store"
	"github.com/sewaniwa/qr-vote-app/voting"
)

// dbCounter gives every test its own in-memory database name.
var dbCounter atomic.Int64

// SetupTestDB creates a fresh in-memory sqlite database with the full
// schema. A single connection serializes writes; the conditional-write
// statements themselves are what the tests exercise.
func SetupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:testdb%d?mode=memory&cache=shared", dbCounter.Add(1))
	conn, err := sql.Open("sqlite", dsn)
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	conn.SetMaxOpenConns(1)

	if err := db.CreateSchema(conn); err != nil {
		t.Fatalf("Failed to create schema: %v", err)
	}

	t.Cleanup(func() { conn.Close() })
	return conn
}

// GetTestConfig returns a standard test configuration
func GetTestConfig() cliparse.Config {
	return cliparse.Config{
		Port:            3412,
		DatabaseType:    "sqlite",
		TokenSecret:     "test-token-secret",
		SessionSecret:   "test-session-secret",
		VoterHashSecret: "test-voter-secret",
		AdminKeySalt:    "test-admin-salt",
	}
}

// NewTestEngine wires a voting engine over the test database
func NewTestEngine(conn *sql.DB, cfg cliparse.Config) *voting.Engine {
	return voting.NewEngine(store.NewSQL(conn), cfg)
}

// CreateTestSession creates a voting session whose window matches the
// requested status ("PENDING", "ACTIVE", or "CLOSED") and returns its
// ID and admin key.
func CreateTestSession(t *testing.T, conn *sql.DB, cfg cliparse.Config, status string) (sessionID, adminKey string) {
	t.Helper()

	sessionID, _ = auth.GenerateID(16)
	adminKey = auth.GenerateAdminKey(sessionID, cfg.AdminKeySalt)

	now := time.Now()
	var start, end time.Time
	switch status {
	case models.StatusPending:
		start, end = now.Add(time.Hour), now.Add(2*time.Hour)
	case models.StatusClosed:
		start, end = now.Add(-2*time.Hour), now.Add(-time.Hour)
	default: // ACTIVE
		start, end = now.Add(-time.Hour), now.Add(time.Hour)
	}

	err := store.NewSQL(conn).PutSession(context.Background(), &models.VotingSession{
		SessionID:   sessionID,
		Title:       "Test Session",
		Description: "A test voting session",
		StartTime:   start,
		EndTime:     end,
		CreatedAt:   now,
		UpdatedAt:   now,
	})
	if err != nil {
		t.Fatalf("Failed to create test session: %v", err)
	}

	return sessionID, adminKey
}

// AddTestCandidate adds a candidate to a session and returns its ID
func AddTestCandidate(t *testing.T, conn *sql.DB, sessionID, name string, displayOrder int) string {
	t.Helper()

	candidateID, _ := auth.GenerateID(12)
	err := store.NewSQL(conn).PutCandidate(context.Background(), &models.Candidate{
		CandidateID:     candidateID,
		VotingSessionID: sessionID,
		Name:            name,
		DisplayOrder:    displayOrder,
	})
	if err != nil {
		t.Fatalf("Failed to create test candidate: %v", err)
	}

	return candidateID
}

// IssueTestToken issues a single token through the engine and returns
// its raw form.
func IssueTestToken(t *testing.T, conn *sql.DB, cfg cliparse.Config, sessionID string) string {
	t.Helper()

	issued, err := NewTestEngine(conn, cfg).IssueTokens(context.Background(), sessionID, 1, 24*time.Hour)
	if err != nil {
		t.Fatalf("Failed to issue test token: %v", err)
	}
	return issued[0].RawToken
}

// WriteExpiredToken writes a token record whose ttl already passed and
// returns the raw token that hashes to it.
func WriteExpiredToken(t *testing.T, conn *sql.DB, cfg cliparse.Config, sessionID string) string {
	t.Helper()

	tokenID, _ := auth.GenerateID(16)
	raw := voting.TokenPrefix + tokenID + "_" + sessionID
	now := time.Now()
	err := store.NewSQL(conn).PutToken(context.Background(), &models.VotingToken{
		HashedToken:     auth.HashToken(raw, cfg.TokenSecret),
		PK:              sessionID + "#" + tokenID,
		VotingSessionID: sessionID,
		VoterID:         "voter_expired_" + tokenID,
		IsUsed:          false,
		CreatedAt:       now.Add(-2 * time.Hour),
		TTL:             now.Add(-time.Hour).Unix(),
	})
	if err != nil {
		t.Fatalf("Failed to write expired token: %v", err)
	}
	return raw
}

// MakeRequest creates an HTTP test request
func MakeRequest(method, path string, body interface{}, headers map[string]string) *http.Request {
	var req *http.Request
	if body != nil {
		jsonBody, _ := json.Marshal(body)
		req = httptest.NewRequest(method, path, bytes.NewReader(jsonBody))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}

	for k, v := range headers {
		req.Header.Set(k, v)
	}

	return req
}

// AssertStatus checks that the response has the expected status code
func AssertStatus(t *testing.T, w *httptest.ResponseRecorder, expected int) {
	t.Helper()
	if w.Code != expected {
		t.Errorf("Expected status %d, got %d. Body: %s", expected, w.Code, w.Body.String())
	}
}

// AssertJSON decodes the response body into the provided struct
func AssertJSON(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	if err := json.NewDecoder(w.Body).Decode(v); err != nil {
		t.Fatalf("Failed to decode JSON response: %v", err)
	}
}
