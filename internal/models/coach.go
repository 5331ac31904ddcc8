package models

import "github.com/PY-Dev20/traint-5x5/internal/i18n"

type Coach struct {
	ID              int64
	UserID          int64
	Bio             i18n.LocalizedText
	Specialties     i18n.LocalizedList
	ExperienceYears int
	IsFeatured      bool
	Photo           *string
}

type CoachView struct {
	ID              int64    `json:"id"`
	Bio             string   `json:"bio"`
	Specialties     []string `json:"specialties"`
	ExperienceYears int      `json:"experience_years"`
	IsFeatured      bool     `json:"is_featured"`
	PhotoURL        *string  `json:"photo"`
}

type ProgramCategory struct {
	ID   int64
	Name i18n.LocalizedText
}

type CategoryView struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}
