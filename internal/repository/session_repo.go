package repository

import (
	"context"

	"github.com/PY-Dev20/traint-5x5/internal/models"
)

// SessionRepository reads program sessions and their exercise rows. Rows are
// returned in storage order; callers apply their own ordering.
type SessionRepository struct {
	db DBTX
}

func NewSessionRepository(db DBTX) *SessionRepository {
	return &SessionRepository{db: db}
}

func (r *SessionRepository) ListByProgramID(ctx context.Context, programID int64) ([]models.ProgramSession, error) {
	query := `
		SELECT id, program_id, day_number, name
		FROM program_sessions
		WHERE program_id = $1
	`
	rows, err := r.db.Query(ctx, query, programID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	sessions := make([]models.ProgramSession, 0)
	for rows.Next() {
		var session models.ProgramSession
		if err := rows.Scan(
			&session.ID,
			&session.ProgramID,
			&session.DayNumber,
			&session.Name,
		); err != nil {
			return nil, err
		}
		sessions = append(sessions, session)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return sessions, nil
}

func (r *SessionRepository) ListExercises(ctx context.Context, sessionID int64) ([]models.SessionExercise, error) {
	query := `
		SELECT id, session_id, exercise_id, sets, reps, sort_order
		FROM session_exercises
		WHERE session_id = $1
	`
	rows, err := r.db.Query(ctx, query, sessionID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]models.SessionExercise, 0)
	for rows.Next() {
		var item models.SessionExercise
		if err := rows.Scan(
			&item.ID,
			&item.SessionID,
			&item.ExerciseID,
			&item.Sets,
			&item.Reps,
			&item.Order,
		); err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}
