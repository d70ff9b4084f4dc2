package voting

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/sewaniwa/qr-vote-app/models"
	"github.com/sewaniwa/qr-vote-app/store"
)

// WindowState derives a session's status from the clock: startTime is
// inclusive, endTime is exclusive. Pure function; the recorder calls
// it server-side rather than trusting client-reported status.
func WindowState(s *models.VotingSession, now time.Time) string {
	if now.Before(s.StartTime) {
		return models.StatusPending
	}
	if !now.Before(s.EndTime) {
		return models.StatusClosed
	}
	return models.StatusActive
}

// WindowStatus returns the session's derived status with the window
// bounds and a human-readable countdown/closed message for UIs.
func (e *Engine) WindowStatus(ctx context.Context, sessionID string) (*models.WindowStatusResponse, error) {
	if sessionID == "" {
		return nil, fmt.Errorf("%w: session id is required", ErrInvalidParameter)
	}

	sess, err := e.store.GetSession(ctx, sessionID)
	if errors.Is(err, store.ErrNotFound) {
		return nil, ErrSessionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: get session: %w", ErrStorage, err)
	}

	now := time.Now()
	status := WindowState(sess, now)

	var message string
	switch status {
	case models.StatusPending:
		message = "Voting opens " + humanize.Time(sess.StartTime)
	case models.StatusActive:
		message = "Voting closes " + humanize.Time(sess.EndTime)
	default:
		message = "Voting closed " + humanize.Time(sess.EndTime)
	}

	return &models.WindowStatusResponse{
		Status:      status,
		StartTime:   sess.StartTime,
		EndTime:     sess.EndTime,
		CurrentTime: now,
		Message:     message,
	}, nil
}
