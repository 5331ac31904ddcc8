package models

import (
	"time"

	"github.com/PY-Dev20/traint-5x5/internal/i18n"
)

type Program struct {
	ID            int64
	Name          i18n.LocalizedText
	Description   i18n.LocalizedText
	Difficulty    Difficulty
	DurationWeeks int
	IsCustom      bool
	CategoryID    *int64
	CoachID       *int64
	CreatedBy     int64
	Thumbnail     *string
}

type ProgramSession struct {
	ID        int64
	ProgramID int64
	DayNumber int
	Name      i18n.LocalizedText
}

type SessionExercise struct {
	ID         int64
	SessionID  int64
	ExerciseID int64
	Sets       int
	Reps       int
	Order      int
}

type UserPlan struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"user"`
	ProgramID int64     `json:"program"`
	CreatedAt time.Time `json:"created_at"`
}

// ProgramView is the locale-resolved program. Sessions is only populated
// for detail views; list views leave it nil.
type ProgramView struct {
	ID            int64         `json:"id"`
	Name          string        `json:"name"`
	Description   string        `json:"description"`
	Difficulty    string        `json:"difficulty"`
	DurationWeeks int           `json:"duration_weeks"`
	Thumbnail     *string       `json:"thumbnail"`
	Category      *CategoryView `json:"category"`
	Coach         *CoachView    `json:"coach"`
	Sessions      []SessionView `json:"sessions,omitempty"`
}

type SessionView struct {
	ID        int64                 `json:"id"`
	DayNumber int                   `json:"day_number"`
	Name      string                `json:"name"`
	Exercises []SessionExerciseView `json:"exercises"`
}

type SessionExerciseView struct {
	ID           int64        `json:"id"`
	Exercise     ExerciseView `json:"exercise"`
	ExerciseName string       `json:"exercise_name"`
	Sets         int          `json:"sets"`
	Reps         int          `json:"reps"`
	Order        int          `json:"order"`
}
