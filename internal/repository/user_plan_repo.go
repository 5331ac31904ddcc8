package repository

import (
	"context"
	"errors"

	"github.com/PY-Dev20/traint-5x5/internal/models"
	"github.com/jackc/pgx/v5"
)

type UserPlanRepository struct {
	db DBTX
}

func NewUserPlanRepository(db DBTX) *UserPlanRepository {
	return &UserPlanRepository{db: db}
}

// Upsert inserts the (user, program) pair unless it already exists and returns
// the stored row. The unique constraint on the pair decides concurrent races;
// created reports whether this call inserted the row.
func (r *UserPlanRepository) Upsert(
	ctx context.Context,
	userID int64,
	programID int64,
) (*models.UserPlan, bool, error) {
	insert := `
		INSERT INTO user_plans (user_id, program_id)
		VALUES ($1, $2)
		ON CONFLICT (user_id, program_id) DO NOTHING
		RETURNING id, user_id, program_id, created_at
	`
	plan, err := r.scanPlan(r.db.QueryRow(ctx, insert, userID, programID))
	if err == nil {
		return plan, true, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return nil, false, err
	}

	existing := `
		SELECT id, user_id, program_id, created_at
		FROM user_plans
		WHERE user_id = $1 AND program_id = $2
	`
	plan, err = r.scanPlan(r.db.QueryRow(ctx, existing, userID, programID))
	if err != nil {
		return nil, false, err
	}
	return plan, false, nil
}

func (r *UserPlanRepository) scanPlan(row pgx.Row) (*models.UserPlan, error) {
	var plan models.UserPlan
	if err := row.Scan(&plan.ID, &plan.UserID, &plan.ProgramID, &plan.CreatedAt); err != nil {
		return nil, err
	}
	return &plan, nil
}
