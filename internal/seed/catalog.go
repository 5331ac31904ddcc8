package seed

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/PY-Dev20/traint-5x5/internal/i18n"
	"github.com/PY-Dev20/traint-5x5/internal/models"
	"gopkg.in/yaml.v3"
)

// Catalog is the YAML document loaded by `traintctl seed`. Rows reference
// each other by slug (exercises, categories, programs) or by email (users).
type Catalog struct {
	Users      []User     `yaml:"users"`
	Categories []Category `yaml:"categories"`
	Exercises  []Exercise `yaml:"exercises"`
	Coaches    []Coach    `yaml:"coaches"`
	Programs   []Program  `yaml:"programs"`
}

type User struct {
	Email string `yaml:"email"`
	Role  string `yaml:"role"`
}

type Category struct {
	Slug string             `yaml:"slug"`
	Name i18n.LocalizedText `yaml:"name"`
}

type Exercise struct {
	Slug          string             `yaml:"slug"`
	Name          i18n.LocalizedText `yaml:"name"`
	Description   i18n.LocalizedText `yaml:"description"`
	Category      i18n.LocalizedText `yaml:"category"`
	Instructions  i18n.LocalizedList `yaml:"instructions"`
	Difficulty    models.Difficulty  `yaml:"difficulty"`
	TargetMuscles []string           `yaml:"target_muscles"`
	MainMuscle    string             `yaml:"main_muscle"`
	Equipment     string             `yaml:"equipment"`
	Mechanics     string             `yaml:"mechanics"`
	DemoVideoURL  string             `yaml:"demo_video_url"`
}

type Coach struct {
	User            string             `yaml:"user"`
	Bio             i18n.LocalizedText `yaml:"bio"`
	Specialties     i18n.LocalizedList `yaml:"specialties"`
	ExperienceYears int                `yaml:"experience_years"`
	IsFeatured      bool               `yaml:"is_featured"`
	Photo           string             `yaml:"photo"`
}

type Program struct {
	Slug          string             `yaml:"slug"`
	Name          i18n.LocalizedText `yaml:"name"`
	Description   i18n.LocalizedText `yaml:"description"`
	Difficulty    models.Difficulty  `yaml:"difficulty"`
	DurationWeeks int                `yaml:"duration_weeks"`
	IsCustom      bool               `yaml:"is_custom"`
	Category      string             `yaml:"category"`
	Coach         string             `yaml:"coach"`
	CreatedBy     string             `yaml:"created_by"`
	Thumbnail     string             `yaml:"thumbnail"`
	Sessions      []Session          `yaml:"sessions"`
}

type Session struct {
	Day       int                `yaml:"day"`
	Name      i18n.LocalizedText `yaml:"name"`
	Exercises []SessionExercise  `yaml:"exercises"`
}

// SessionExercise takes its order from its position in the list when Order
// is omitted.
type SessionExercise struct {
	Exercise string `yaml:"exercise"`
	Sets     int    `yaml:"sets"`
	Reps     int    `yaml:"reps"`
	Order    int    `yaml:"order"`
}

func LoadFile(path string) (*Catalog, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open seed file: %w", err)
	}
	defer file.Close()
	return Parse(file)
}

func Parse(r io.Reader) (*Catalog, error) {
	decoder := yaml.NewDecoder(r)
	decoder.KnownFields(true)

	var catalog Catalog
	if err := decoder.Decode(&catalog); err != nil {
		if errors.Is(err, io.EOF) {
			return &catalog, nil
		}
		return nil, fmt.Errorf("decode seed file: %w", err)
	}
	catalog.normalize()
	if err := catalog.Validate(); err != nil {
		return nil, err
	}
	return &catalog, nil
}

func (c *Catalog) normalize() {
	for i := range c.Users {
		c.Users[i].Email = strings.ToLower(strings.TrimSpace(c.Users[i].Email))
		if c.Users[i].Role == "" {
			c.Users[i].Role = "user"
		}
	}
	for i := range c.Coaches {
		c.Coaches[i].User = strings.ToLower(strings.TrimSpace(c.Coaches[i].User))
	}
	for i := range c.Programs {
		program := &c.Programs[i]
		program.Coach = strings.ToLower(strings.TrimSpace(program.Coach))
		program.CreatedBy = strings.ToLower(strings.TrimSpace(program.CreatedBy))
		for j := range program.Sessions {
			for k := range program.Sessions[j].Exercises {
				if program.Sessions[j].Exercises[k].Order == 0 {
					program.Sessions[j].Exercises[k].Order = k + 1
				}
			}
		}
	}
}

// Validate checks the invariants the catalog tables enforce so a bad file is
// rejected before anything is written.
func (c *Catalog) Validate() error {
	var errs []error
	fail := func(format string, args ...any) {
		errs = append(errs, fmt.Errorf(format, args...))
	}

	users := make(map[string]struct{}, len(c.Users))
	for _, user := range c.Users {
		if user.Email == "" {
			fail("user: email is required")
			continue
		}
		if _, dup := users[user.Email]; dup {
			fail("user %q: duplicate email", user.Email)
		}
		users[user.Email] = struct{}{}
		switch user.Role {
		case "user", "coach", "admin":
		default:
			fail("user %q: unknown role %q", user.Email, user.Role)
		}
	}

	categories := make(map[string]struct{}, len(c.Categories))
	for _, category := range c.Categories {
		if category.Slug == "" {
			fail("category: slug is required")
			continue
		}
		if _, dup := categories[category.Slug]; dup {
			fail("category %q: duplicate slug", category.Slug)
		}
		categories[category.Slug] = struct{}{}
	}

	exercises := make(map[string]struct{}, len(c.Exercises))
	for _, exercise := range c.Exercises {
		if exercise.Slug == "" {
			fail("exercise: slug is required")
			continue
		}
		if _, dup := exercises[exercise.Slug]; dup {
			fail("exercise %q: duplicate slug", exercise.Slug)
		}
		exercises[exercise.Slug] = struct{}{}
		if !exercise.Difficulty.Valid() {
			fail("exercise %q: invalid difficulty %q", exercise.Slug, exercise.Difficulty)
		}
	}

	coaches := make(map[string]struct{}, len(c.Coaches))
	for _, coach := range c.Coaches {
		if _, ok := users[coach.User]; !ok {
			fail("coach %q: unknown user", coach.User)
		}
		if _, dup := coaches[coach.User]; dup {
			fail("coach %q: duplicate coach", coach.User)
		}
		coaches[coach.User] = struct{}{}
		if coach.ExperienceYears < 0 {
			fail("coach %q: experience_years must not be negative", coach.User)
		}
	}

	programs := make(map[string]struct{}, len(c.Programs))
	for _, program := range c.Programs {
		if program.Slug == "" {
			fail("program: slug is required")
			continue
		}
		if _, dup := programs[program.Slug]; dup {
			fail("program %q: duplicate slug", program.Slug)
		}
		programs[program.Slug] = struct{}{}

		if !program.Difficulty.Valid() {
			fail("program %q: invalid difficulty %q", program.Slug, program.Difficulty)
		}
		if program.DurationWeeks <= 0 {
			fail("program %q: duration_weeks must be greater than 0", program.Slug)
		}
		if _, ok := users[program.CreatedBy]; !ok {
			fail("program %q: unknown created_by user %q", program.Slug, program.CreatedBy)
		}
		if program.Category != "" {
			if _, ok := categories[program.Category]; !ok {
				fail("program %q: unknown category %q", program.Slug, program.Category)
			}
		}
		if program.Coach != "" {
			if _, ok := coaches[program.Coach]; !ok {
				fail("program %q: unknown coach %q", program.Slug, program.Coach)
			}
		}

		days := make(map[int]struct{}, len(program.Sessions))
		for _, session := range program.Sessions {
			if session.Day <= 0 {
				fail("program %q: session day must be greater than 0", program.Slug)
			}
			if _, dup := days[session.Day]; dup {
				fail("program %q: duplicate session day %d", program.Slug, session.Day)
			}
			days[session.Day] = struct{}{}

			orders := make(map[int]struct{}, len(session.Exercises))
			for _, item := range session.Exercises {
				if _, ok := exercises[item.Exercise]; !ok {
					fail("program %q day %d: unknown exercise %q", program.Slug, session.Day, item.Exercise)
				}
				if item.Sets <= 0 || item.Reps <= 0 {
					fail("program %q day %d: sets and reps must be greater than 0", program.Slug, session.Day)
				}
				if item.Order <= 0 {
					fail("program %q day %d: order must be greater than 0", program.Slug, session.Day)
				}
				if _, dup := orders[item.Order]; dup {
					fail("program %q day %d: duplicate order %d", program.Slug, session.Day, item.Order)
				}
				orders[item.Order] = struct{}{}
			}
		}
	}

	return errors.Join(errs...)
}
