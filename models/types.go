package models

import "time"

// Voting window status constants
const (
	StatusPending = "PENDING"
	StatusActive  = "ACTIVE"
	StatusClosed  = "CLOSED"
)

// Request types

type CreateSessionRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	StartTime   string `json:"start_time"` // RFC3339
	EndTime     string `json:"end_time"`   // RFC3339
}

type AddCandidateRequest struct {
	Name         string `json:"name"`
	Description  string `json:"description"`
	ImageURL     string `json:"image_url"`
	DisplayOrder int    `json:"display_order"`
}

type IssueTokensRequest struct {
	Count           int `json:"count"`
	ExpirationHours int `json:"expiration_hours"`
}

type RedeemTokenRequest struct {
	Token string `json:"token"`
}

type CastVoteRequest struct {
	CandidateID      string `json:"candidate_id"`
	Credential       string `json:"credential"`
	IdempotencyToken string `json:"idempotency_token,omitempty"`
}

// Response types

type CreateSessionResponse struct {
	SessionID string `json:"session_id"`
	AdminKey  string `json:"admin_key"`
}

type AddCandidateResponse struct {
	CandidateID string `json:"candidate_id"`
}

type IssuedToken struct {
	TokenID  string `json:"token_id"`
	RawToken string `json:"raw_token"`
	VoterID  string `json:"voter_id"`
}

type IssueTokensResponse struct {
	SessionID   string        `json:"session_id"`
	IssuedCount int           `json:"issued_count"`
	Tokens      []IssuedToken `json:"tokens"`
}

type RedeemTokenResponse struct {
	Credential string `json:"credential"`
}

type CastVoteResponse struct {
	VoteID string `json:"vote_id"`
}

type WindowStatusResponse struct {
	Status      string    `json:"status"`
	StartTime   time.Time `json:"start_time"`
	EndTime     time.Time `json:"end_time"`
	CurrentTime time.Time `json:"current_time"`
	Message     string    `json:"message"`
}

type CandidateListResponse struct {
	SessionID  string      `json:"session_id"`
	Candidates []Candidate `json:"candidates"`
}

// Domain types

type VotingSession struct {
	SessionID   string    `json:"session_id"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	StartTime   time.Time `json:"start_time"`
	EndTime     time.Time `json:"end_time"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type Candidate struct {
	CandidateID     string `json:"candidate_id"`
	VotingSessionID string `json:"voting_session_id"`
	Name            string `json:"name"`
	Description     string `json:"description,omitempty"`
	ImageURL        string `json:"image_url,omitempty"`
	DisplayOrder    int    `json:"display_order"`
}

// VotingToken is the persisted form of an issued token. The raw token
// string is never stored; HashedToken is the lookup key.
type VotingToken struct {
	HashedToken     string     `json:"-"`
	PK              string     `json:"-"` // votingSessionId#tokenId
	VotingSessionID string     `json:"voting_session_id"`
	VoterID         string     `json:"-"` // never expose in JSON
	IsUsed          bool       `json:"is_used"`
	CreatedAt       time.Time  `json:"created_at"`
	UsedAt          *time.Time `json:"used_at,omitempty"`
	TTL             int64      `json:"ttl"` // unix seconds
}

// Vote is append-only: never updated or deleted once written.
type Vote struct {
	PK              string    `json:"-"` // votingSessionId#voteId
	SK              string    `json:"-"` // candidateId#timestamp
	VoteID          string    `json:"vote_id"`
	VotingSessionID string    `json:"voting_session_id"`
	CandidateID     string    `json:"candidate_id"`
	VoterHash       string    `json:"-"` // never expose in JSON
	Timestamp       time.Time `json:"timestamp"`
	IdempotencyKey  string    `json:"-"`
}

// Error response

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
