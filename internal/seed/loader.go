package seed

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/PY-Dev20/traint-5x5/internal/repository"
	"github.com/jackc/pgx/v5"
)

type txBeginner interface {
	Begin(ctx context.Context) (pgx.Tx, error)
}

type Summary struct {
	Users            int
	Categories       int
	Exercises        int
	Coaches          int
	Programs         int
	Sessions         int
	SessionExercises int
}

// Load upserts the catalog in a single transaction. Rows are matched by slug
// or email, and each program's sessions are replaced wholesale.
func Load(ctx context.Context, db txBeginner, catalog *Catalog) (Summary, error) {
	tx, err := db.Begin(ctx)
	if err != nil {
		return Summary{}, fmt.Errorf("begin seed transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	summary, err := load(ctx, tx, catalog)
	if err != nil {
		return Summary{}, err
	}
	if err := tx.Commit(ctx); err != nil {
		return Summary{}, fmt.Errorf("commit seed transaction: %w", err)
	}

	slog.Info("catalog seeded",
		"users", summary.Users,
		"exercises", summary.Exercises,
		"programs", summary.Programs,
		"sessions", summary.Sessions,
	)
	return summary, nil
}

func load(ctx context.Context, db repository.DBTX, catalog *Catalog) (Summary, error) {
	var summary Summary

	userIDs := make(map[string]int64, len(catalog.Users))
	for _, user := range catalog.Users {
		var id int64
		query := `
			INSERT INTO users (email, role)
			VALUES ($1, $2)
			ON CONFLICT (email) DO UPDATE SET role = EXCLUDED.role
			RETURNING id
		`
		if err := db.QueryRow(ctx, query, user.Email, user.Role).Scan(&id); err != nil {
			return summary, fmt.Errorf("upsert user %q: %w", user.Email, err)
		}
		userIDs[user.Email] = id
		summary.Users++
	}

	categoryIDs := make(map[string]int64, len(catalog.Categories))
	for _, category := range catalog.Categories {
		var id int64
		query := `
			INSERT INTO program_categories (slug, name)
			VALUES ($1, $2)
			ON CONFLICT (slug) DO UPDATE SET name = EXCLUDED.name
			RETURNING id
		`
		if err := db.QueryRow(ctx, query, category.Slug, jsonb(category.Name)).Scan(&id); err != nil {
			return summary, fmt.Errorf("upsert category %q: %w", category.Slug, err)
		}
		categoryIDs[category.Slug] = id
		summary.Categories++
	}

	exerciseIDs := make(map[string]int64, len(catalog.Exercises))
	for _, exercise := range catalog.Exercises {
		var id int64
		query := `
			INSERT INTO exercises (
				slug, name, description, category, instructions, difficulty,
				target_muscles, main_muscle, equipment, mechanics, demo_video_url
			)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
			ON CONFLICT (slug) DO UPDATE SET
				name = EXCLUDED.name,
				description = EXCLUDED.description,
				category = EXCLUDED.category,
				instructions = EXCLUDED.instructions,
				difficulty = EXCLUDED.difficulty,
				target_muscles = EXCLUDED.target_muscles,
				main_muscle = EXCLUDED.main_muscle,
				equipment = EXCLUDED.equipment,
				mechanics = EXCLUDED.mechanics,
				demo_video_url = EXCLUDED.demo_video_url
			RETURNING id
		`
		targets := exercise.TargetMuscles
		if targets == nil {
			targets = []string{}
		}
		if err := db.QueryRow(ctx, query,
			exercise.Slug,
			jsonb(exercise.Name),
			jsonb(exercise.Description),
			jsonb(exercise.Category),
			jsonb(exercise.Instructions),
			string(exercise.Difficulty),
			targets,
			exercise.MainMuscle,
			exercise.Equipment,
			exercise.Mechanics,
			nullable(exercise.DemoVideoURL),
		).Scan(&id); err != nil {
			return summary, fmt.Errorf("upsert exercise %q: %w", exercise.Slug, err)
		}
		exerciseIDs[exercise.Slug] = id
		summary.Exercises++
	}

	coachIDs := make(map[string]int64, len(catalog.Coaches))
	for _, coach := range catalog.Coaches {
		var id int64
		query := `
			INSERT INTO coaches (user_id, bio, specialties, experience_years, is_featured, photo)
			VALUES ($1, $2, $3, $4, $5, $6)
			ON CONFLICT (user_id) DO UPDATE SET
				bio = EXCLUDED.bio,
				specialties = EXCLUDED.specialties,
				experience_years = EXCLUDED.experience_years,
				is_featured = EXCLUDED.is_featured,
				photo = EXCLUDED.photo
			RETURNING id
		`
		if err := db.QueryRow(ctx, query,
			userIDs[coach.User],
			jsonb(coach.Bio),
			jsonb(coach.Specialties),
			coach.ExperienceYears,
			coach.IsFeatured,
			nullable(coach.Photo),
		).Scan(&id); err != nil {
			return summary, fmt.Errorf("upsert coach %q: %w", coach.User, err)
		}
		coachIDs[coach.User] = id
		summary.Coaches++
	}

	for _, program := range catalog.Programs {
		var programID int64
		query := `
			INSERT INTO programs (
				slug, name, description, difficulty, duration_weeks, is_custom,
				category_id, coach_id, created_by, thumbnail
			)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
			ON CONFLICT (slug) DO UPDATE SET
				name = EXCLUDED.name,
				description = EXCLUDED.description,
				difficulty = EXCLUDED.difficulty,
				duration_weeks = EXCLUDED.duration_weeks,
				is_custom = EXCLUDED.is_custom,
				category_id = EXCLUDED.category_id,
				coach_id = EXCLUDED.coach_id,
				created_by = EXCLUDED.created_by,
				thumbnail = EXCLUDED.thumbnail
			RETURNING id
		`
		if err := db.QueryRow(ctx, query,
			program.Slug,
			jsonb(program.Name),
			jsonb(program.Description),
			string(program.Difficulty),
			program.DurationWeeks,
			program.IsCustom,
			lookup(categoryIDs, program.Category),
			lookup(coachIDs, program.Coach),
			userIDs[program.CreatedBy],
			nullable(program.Thumbnail),
		).Scan(&programID); err != nil {
			return summary, fmt.Errorf("upsert program %q: %w", program.Slug, err)
		}
		summary.Programs++

		if _, err := db.Exec(ctx, `DELETE FROM program_sessions WHERE program_id = $1`, programID); err != nil {
			return summary, fmt.Errorf("clear sessions for program %q: %w", program.Slug, err)
		}

		for _, session := range program.Sessions {
			var sessionID int64
			query := `
				INSERT INTO program_sessions (program_id, day_number, name)
				VALUES ($1, $2, $3)
				RETURNING id
			`
			if err := db.QueryRow(ctx, query, programID, session.Day, jsonb(session.Name)).Scan(&sessionID); err != nil {
				return summary, fmt.Errorf("insert program %q day %d: %w", program.Slug, session.Day, err)
			}
			summary.Sessions++

			for _, item := range session.Exercises {
				query := `
					INSERT INTO session_exercises (session_id, exercise_id, sets, reps, sort_order)
					VALUES ($1, $2, $3, $4, $5)
				`
				if _, err := db.Exec(ctx, query,
					sessionID,
					exerciseIDs[item.Exercise],
					item.Sets,
					item.Reps,
					item.Order,
				); err != nil {
					return summary, fmt.Errorf(
						"insert exercise %q into program %q day %d: %w",
						item.Exercise, program.Slug, session.Day, err,
					)
				}
				summary.SessionExercises++
			}
		}
	}

	return summary, nil
}

// jsonb encodes localized content for a JSONB column. Missing content is
// stored as an empty object.
func jsonb(value any) string {
	data, err := json.Marshal(value)
	if err != nil || string(data) == "null" {
		return "{}"
	}
	return string(data)
}

func nullable(value string) *string {
	if value == "" {
		return nil
	}
	return &value
}

func lookup(ids map[string]int64, key string) *int64 {
	if key == "" {
		return nil
	}
	id, ok := ids[key]
	if !ok {
		return nil
	}
	return &id
}
