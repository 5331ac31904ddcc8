package services

import (
	"github.com/PY-Dev20/traint-5x5/internal/i18n"
	"github.com/PY-Dev20/traint-5x5/internal/models"
)

// ProjectExercise resolves an exercise to a single locale. Missing
// translations degrade to empty values; it never fails.
func ProjectExercise(exercise models.Exercise, locale i18n.Locale) models.ExerciseView {
	targets := make([]string, len(exercise.TargetMuscles))
	copy(targets, exercise.TargetMuscles)

	return models.ExerciseView{
		ID:            exercise.ID,
		Name:          exercise.Name.Resolve(locale),
		Description:   exercise.Description.Resolve(locale),
		Instructions:  exercise.Instructions.Resolve(locale),
		Category:      exercise.Category.Resolve(locale),
		Difficulty:    string(exercise.Difficulty),
		DemoVideoURL:  exercise.DemoVideoURL,
		TargetMuscles: targets,
		MainMuscle:    exercise.MainMuscle,
		Equipment:     exercise.Equipment,
		Mechanics:     exercise.Mechanics,
	}
}

func projectCoach(coach models.Coach, locale i18n.Locale, photoURL *string) *models.CoachView {
	return &models.CoachView{
		ID:              coach.ID,
		Bio:             coach.Bio.Resolve(locale),
		Specialties:     coach.Specialties.Resolve(locale),
		ExperienceYears: coach.ExperienceYears,
		IsFeatured:      coach.IsFeatured,
		PhotoURL:        photoURL,
	}
}
