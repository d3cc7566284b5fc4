package store

import (
	"context"
	"errors"
	"fmt"

	"jobtrail/ingest-service/internal/kanban"
)

var (
	// ErrNotFound means no job_feed row matched the (user, job) pair.
	ErrNotFound = errors.New("job not found")
	// ErrInvalidTransition means the requested status move is not allowed
	// by the kanban state machine.
	ErrInvalidTransition = errors.New("invalid status transition")
)

// UpdateJobStatus moves a feed entry through the kanban state machine,
// validating ownership and the transition. On HIRED it deactivates all of
// the user's search preferences so the scheduler stops ingesting for them.
func (s *Store) UpdateJobStatus(ctx context.Context, userID, jobID string, to kanban.Status) error {
	var current string
	err := s.pool.QueryRow(ctx,
		`SELECT status FROM job_feed WHERE id = $1 AND user_id = $2`,
		jobID, userID,
	).Scan(&current)
	if err != nil {
		return ErrNotFound
	}

	from, err := kanban.ParseStatus(current)
	if err != nil {
		return fmt.Errorf("stored status: %w", err)
	}
	if !kanban.IsTransitionAllowed(from, to) {
		return fmt.Errorf("%w: %s → %s", ErrInvalidTransition, from, to)
	}

	tag, err := s.pool.Exec(ctx,
		`UPDATE job_feed SET status = $1, updated_at = now()
		 WHERE id = $2 AND user_id = $3 AND status = $4`,
		string(to), jobID, userID, current,
	)
	if err != nil {
		return fmt.Errorf("update status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		// Row moved under us — the guard on the old status lost a race.
		return ErrInvalidTransition
	}

	if kanban.IsHired(to) {
		if _, err := s.pool.Exec(ctx,
			`UPDATE search_preferences SET is_active = false WHERE user_id = $1`,
			userID,
		); err != nil {
			return fmt.Errorf("archive preferences: %w", err)
		}
	}
	return nil
}
