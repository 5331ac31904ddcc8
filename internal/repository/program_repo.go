package repository

import (
	"context"

	"github.com/PY-Dev20/traint-5x5/internal/models"
)

const programColumns = `
	id, name, description, difficulty, duration_weeks, is_custom,
	category_id, coach_id, created_by, thumbnail
`

type ProgramRepository struct {
	db DBTX
}

func NewProgramRepository(db DBTX) *ProgramRepository {
	return &ProgramRepository{db: db}
}

func (r *ProgramRepository) GetByID(ctx context.Context, programID int64) (*models.Program, error) {
	query := `SELECT ` + programColumns + ` FROM programs WHERE id = $1`

	var program models.Program
	if err := scanProgram(r.db.QueryRow(ctx, query, programID), &program); err != nil {
		return nil, err
	}
	return &program, nil
}

func (r *ProgramRepository) ListByCustom(ctx context.Context, isCustom bool) ([]models.Program, error) {
	query := `
		SELECT ` + programColumns + `
		FROM programs
		WHERE is_custom = $1
		ORDER BY id
	`
	rows, err := r.db.Query(ctx, query, isCustom)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	programs := make([]models.Program, 0)
	for rows.Next() {
		var program models.Program
		if err := scanProgram(rows, &program); err != nil {
			return nil, err
		}
		programs = append(programs, program)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return programs, nil
}

func scanProgram(row rowScanner, program *models.Program) error {
	var difficulty string
	err := row.Scan(
		&program.ID,
		&program.Name,
		&program.Description,
		&difficulty,
		&program.DurationWeeks,
		&program.IsCustom,
		&program.CategoryID,
		&program.CoachID,
		&program.CreatedBy,
		&program.Thumbnail,
	)
	if err != nil {
		return err
	}
	program.Difficulty = models.Difficulty(difficulty)
	return nil
}
