package models

import "github.com/PY-Dev20/traint-5x5/internal/i18n"

type Difficulty string

const (
	DifficultyBeginner     Difficulty = "beginner"
	DifficultyIntermediate Difficulty = "intermediate"
	DifficultyAdvanced     Difficulty = "advanced"
)

func (d Difficulty) Valid() bool {
	switch d {
	case DifficultyBeginner, DifficultyIntermediate, DifficultyAdvanced:
		return true
	default:
		return false
	}
}

type Exercise struct {
	ID            int64
	Name          i18n.LocalizedText
	Description   i18n.LocalizedText
	Category      i18n.LocalizedText
	Instructions  i18n.LocalizedList
	Difficulty    Difficulty
	TargetMuscles []string
	MainMuscle    string
	Equipment     string
	Mechanics     string
	DemoVideoURL  *string
}

type ExerciseView struct {
	ID            int64    `json:"id"`
	Name          string   `json:"name"`
	Description   string   `json:"description"`
	Instructions  []string `json:"instructions"`
	Category      string   `json:"category"`
	Difficulty    string   `json:"difficulty"`
	DemoVideoURL  *string  `json:"demo_video_url"`
	TargetMuscles []string `json:"target_muscles"`
	MainMuscle    string   `json:"main_muscle"`
	Equipment     string   `json:"equipment"`
	Mechanics     string   `json:"mechanics"`
}
