package repository

import (
	"context"

	"github.com/PY-Dev20/traint-5x5/internal/models"
)

const exerciseColumns = `
	id, name, description, category, instructions, difficulty,
	target_muscles, main_muscle, equipment, mechanics, demo_video_url
`

type ExerciseRepository struct {
	db DBTX
}

func NewExerciseRepository(db DBTX) *ExerciseRepository {
	return &ExerciseRepository{db: db}
}

func (r *ExerciseRepository) List(ctx context.Context) ([]models.Exercise, error) {
	query := `SELECT ` + exerciseColumns + ` FROM exercises ORDER BY id`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	exercises := make([]models.Exercise, 0)
	for rows.Next() {
		var exercise models.Exercise
		if err := scanExercise(rows, &exercise); err != nil {
			return nil, err
		}
		exercises = append(exercises, exercise)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return exercises, nil
}

func (r *ExerciseRepository) GetByID(ctx context.Context, id int64) (*models.Exercise, error) {
	query := `SELECT ` + exerciseColumns + ` FROM exercises WHERE id = $1`
	var exercise models.Exercise
	if err := scanExercise(r.db.QueryRow(ctx, query, id), &exercise); err != nil {
		return nil, err
	}
	return &exercise, nil
}

// GetByIDs returns the exercises that exist among ids, keyed by id.
func (r *ExerciseRepository) GetByIDs(ctx context.Context, ids []int64) (map[int64]models.Exercise, error) {
	exercises := make(map[int64]models.Exercise, len(ids))
	if len(ids) == 0 {
		return exercises, nil
	}

	query := `SELECT ` + exerciseColumns + ` FROM exercises WHERE id = ANY($1)`
	rows, err := r.db.Query(ctx, query, ids)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var exercise models.Exercise
		if err := scanExercise(rows, &exercise); err != nil {
			return nil, err
		}
		exercises[exercise.ID] = exercise
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return exercises, nil
}

func scanExercise(row rowScanner, exercise *models.Exercise) error {
	var difficulty string
	err := row.Scan(
		&exercise.ID,
		&exercise.Name,
		&exercise.Description,
		&exercise.Category,
		&exercise.Instructions,
		&difficulty,
		&exercise.TargetMuscles,
		&exercise.MainMuscle,
		&exercise.Equipment,
		&exercise.Mechanics,
		&exercise.DemoVideoURL,
	)
	if err != nil {
		return err
	}
	exercise.Difficulty = models.Difficulty(difficulty)
	return nil
}
