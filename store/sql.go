package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/sewaniwa/qr-vote-app/models"
)

// SQL implements Store on top of database/sql. Conditional writes rely
// on single-statement atomicity: the token flip is an UPDATE guarded by
// a WHERE clause on is_used, and vote inserts are guarded by primary
// key and UNIQUE constraints. Works against both lib/pq and
// modernc.org/sqlite.
type SQL struct {
	db *sql.DB
}

func NewSQL(db *sql.DB) *SQL {
	return &SQL{db: db}
}

// isUniqueViolation matches the driver-specific duplicate key errors
// from sqlite and postgres
func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	return strings.Contains(msg, "UNIQUE constraint failed") ||
		strings.Contains(msg, "duplicate key value violates unique constraint")
}

func (s *SQL) PutToken(ctx context.Context, t *models.VotingToken) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO voting_token (hashed_token, pk, voting_session_id, voter_id, is_used, created_at, ttl)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`, t.HashedToken, t.PK, t.VotingSessionID, t.VoterID, t.IsUsed, t.CreatedAt, t.TTL)
	if isUniqueViolation(err) {
		return ErrAlreadyExists
	}
	if err != nil {
		return fmt.Errorf("failed to insert token: %w", err)
	}
	return nil
}

func (s *SQL) GetToken(ctx context.Context, hashedToken string) (*models.VotingToken, error) {
	var t models.VotingToken
	var usedAt sql.NullTime
	err := s.db.QueryRowContext(ctx, `
		SELECT hashed_token, pk, voting_session_id, voter_id, is_used, created_at, used_at, ttl
		FROM voting_token
		WHERE hashed_token = $1
	`, hashedToken).Scan(
		&t.HashedToken, &t.PK, &t.VotingSessionID, &t.VoterID,
		&t.IsUsed, &t.CreatedAt, &usedAt, &t.TTL,
	)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query token: %w", err)
	}
	if usedAt.Valid {
		t.UsedAt = &usedAt.Time
	}
	return &t, nil
}

func (s *SQL) MarkTokenUsed(ctx context.Context, hashedToken string, usedAt time.Time) error {
	res, err := s.db.ExecContext(ctx, `
		UPDATE voting_token
		SET is_used = TRUE, used_at = $1
		WHERE hashed_token = $2 AND is_used = FALSE
	`, usedAt, hashedToken)
	if err != nil {
		return fmt.Errorf("failed to mark token used: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read update result: %w", err)
	}
	if affected == 1 {
		return nil
	}

	// The guarded update matched nothing: either the token never
	// existed or a concurrent redemption won the race.
	var exists bool
	err = s.db.QueryRowContext(ctx, `
		SELECT EXISTS(SELECT 1 FROM voting_token WHERE hashed_token = $1)
	`, hashedToken).Scan(&exists)
	if err != nil {
		return fmt.Errorf("failed to check token existence: %w", err)
	}
	if !exists {
		return ErrNotFound
	}
	return ErrPreconditionFailed
}

func (s *SQL) PutSession(ctx context.Context, sess *models.VotingSession) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO voting_session (session_id, title, description, start_time, end_time, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`, sess.SessionID, sess.Title, sess.Description, sess.StartTime, sess.EndTime, sess.CreatedAt, sess.UpdatedAt)
	if isUniqueViolation(err) {
		return ErrAlreadyExists
	}
	if err != nil {
		return fmt.Errorf("failed to insert session: %w", err)
	}
	return nil
}

func (s *SQL) GetSession(ctx context.Context, sessionID string) (*models.VotingSession, error) {
	var sess models.VotingSession
	err := s.db.QueryRowContext(ctx, `
		SELECT session_id, title, description, start_time, end_time, created_at, updated_at
		FROM voting_session
		WHERE session_id = $1
	`, sessionID).Scan(
		&sess.SessionID, &sess.Title, &sess.Description,
		&sess.StartTime, &sess.EndTime, &sess.CreatedAt, &sess.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query session: %w", err)
	}
	return &sess, nil
}

func (s *SQL) PutCandidate(ctx context.Context, c *models.Candidate) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO candidate (candidate_id, voting_session_id, name, description, image_url, display_order)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, c.CandidateID, c.VotingSessionID, c.Name, c.Description, c.ImageURL, c.DisplayOrder)
	if isUniqueViolation(err) {
		return ErrAlreadyExists
	}
	if err != nil {
		return fmt.Errorf("failed to insert candidate: %w", err)
	}
	return nil
}

func (s *SQL) GetCandidate(ctx context.Context, candidateID string) (*models.Candidate, error) {
	var c models.Candidate
	err := s.db.QueryRowContext(ctx, `
		SELECT candidate_id, voting_session_id, name, description, image_url, display_order
		FROM candidate
		WHERE candidate_id = $1
	`, candidateID).Scan(
		&c.CandidateID, &c.VotingSessionID, &c.Name,
		&c.Description, &c.ImageURL, &c.DisplayOrder,
	)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query candidate: %w", err)
	}
	return &c, nil
}

func (s *SQL) CandidatesBySession(ctx context.Context, sessionID string) ([]models.Candidate, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT candidate_id, voting_session_id, name, description, image_url, display_order
		FROM candidate
		WHERE voting_session_id = $1
		ORDER BY display_order, candidate_id
	`, sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to query candidates: %w", err)
	}
	defer rows.Close()

	candidates := []models.Candidate{}
	for rows.Next() {
		var c models.Candidate
		if err := rows.Scan(
			&c.CandidateID, &c.VotingSessionID, &c.Name,
			&c.Description, &c.ImageURL, &c.DisplayOrder,
		); err != nil {
			return nil, fmt.Errorf("failed to scan candidate: %w", err)
		}
		candidates = append(candidates, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate candidates: %w", err)
	}
	return candidates, nil
}

func (s *SQL) InsertVote(ctx context.Context, v *models.Vote) error {
	// NULL idempotency key so the UNIQUE constraint only bites when a
	// key was actually supplied
	var idemKey *string
	if v.IdempotencyKey != "" {
		idemKey = &v.IdempotencyKey
	}
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO vote (pk, sk, vote_id, voting_session_id, candidate_id, voter_hash, cast_at, idempotency_key)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`, v.PK, v.SK, v.VoteID, v.VotingSessionID, v.CandidateID, v.VoterHash, v.Timestamp, idemKey)
	if isUniqueViolation(err) {
		return ErrAlreadyExists
	}
	if err != nil {
		return fmt.Errorf("failed to insert vote: %w", err)
	}
	return nil
}

func (s *SQL) VoteByIdempotencyKey(ctx context.Context, sessionID, key string) (*models.Vote, error) {
	var v models.Vote
	var idemKey sql.NullString
	err := s.db.QueryRowContext(ctx, `
		SELECT pk, sk, vote_id, voting_session_id, candidate_id, voter_hash, cast_at, idempotency_key
		FROM vote
		WHERE voting_session_id = $1 AND idempotency_key = $2
	`, sessionID, key).Scan(
		&v.PK, &v.SK, &v.VoteID, &v.VotingSessionID,
		&v.CandidateID, &v.VoterHash, &v.Timestamp, &idemKey,
	)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query vote: %w", err)
	}
	if idemKey.Valid {
		v.IdempotencyKey = idemKey.String
	}
	return &v, nil
}
