package repository

import (
	"context"

	"github.com/PY-Dev20/traint-5x5/internal/models"
)

type CoachRepository struct {
	db DBTX
}

func NewCoachRepository(db DBTX) *CoachRepository {
	return &CoachRepository{db: db}
}

func (r *CoachRepository) GetByID(ctx context.Context, coachID int64) (*models.Coach, error) {
	query := `
		SELECT id, user_id, bio, specialties, experience_years, is_featured, photo
		FROM coaches
		WHERE id = $1
	`
	var coach models.Coach
	err := r.db.QueryRow(ctx, query, coachID).Scan(
		&coach.ID,
		&coach.UserID,
		&coach.Bio,
		&coach.Specialties,
		&coach.ExperienceYears,
		&coach.IsFeatured,
		&coach.Photo,
	)
	if err != nil {
		return nil, err
	}
	return &coach, nil
}

type CategoryRepository struct {
	db DBTX
}

func NewCategoryRepository(db DBTX) *CategoryRepository {
	return &CategoryRepository{db: db}
}

func (r *CategoryRepository) GetByID(ctx context.Context, categoryID int64) (*models.ProgramCategory, error) {
	query := `SELECT id, name FROM program_categories WHERE id = $1`

	var category models.ProgramCategory
	if err := r.db.QueryRow(ctx, query, categoryID).Scan(&category.ID, &category.Name); err != nil {
		return nil, err
	}
	return &category, nil
}
