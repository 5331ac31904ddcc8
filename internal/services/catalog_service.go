package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/PY-Dev20/traint-5x5/internal/cache"
	"github.com/PY-Dev20/traint-5x5/internal/i18n"
	"github.com/PY-Dev20/traint-5x5/internal/models"
	"github.com/jackc/pgx/v5"
)

type exerciseStore interface {
	List(ctx context.Context) ([]models.Exercise, error)
	GetByID(ctx context.Context, id int64) (*models.Exercise, error)
}

type programStore interface {
	ListByCustom(ctx context.Context, custom bool) ([]models.Program, error)
	GetByID(ctx context.Context, id int64) (*models.Program, error)
}

type userPlanStore interface {
	Upsert(ctx context.Context, userID, programID int64) (*models.UserPlan, bool, error)
}

type programComposer interface {
	Compose(ctx context.Context, program *models.Program, locale i18n.Locale, includeSessions bool) (*models.ProgramView, error)
}

// ViewCache stores rendered views. *cache.ViewCache satisfies it.
type ViewCache interface {
	Get(ctx context.Context, key string, dest any) bool
	Set(ctx context.Context, key string, value any)
}

type CatalogService struct {
	exercises exerciseStore
	programs  programStore
	plans     userPlanStore
	composer  programComposer
	cache     ViewCache
	logger    *slog.Logger
}

// NewCatalogService wires the catalog read paths and enrollment. views may be
// nil, in which case every read goes to storage.
func NewCatalogService(
	exercises exerciseStore,
	programs programStore,
	plans userPlanStore,
	composer programComposer,
	views ViewCache,
	logger *slog.Logger,
) *CatalogService {
	if logger == nil {
		logger = slog.Default()
	}
	return &CatalogService{
		exercises: exercises,
		programs:  programs,
		plans:     plans,
		composer:  composer,
		cache:     views,
		logger:    logger,
	}
}

func (s *CatalogService) ListExercises(ctx context.Context, locale i18n.Locale) ([]models.ExerciseView, error) {
	key := cache.ExerciseListKey(locale)
	var cached []models.ExerciseView
	if s.cacheGet(ctx, key, &cached) {
		return cached, nil
	}

	exercises, err := s.exercises.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list exercises: %w", err)
	}

	views := make([]models.ExerciseView, 0, len(exercises))
	for _, exercise := range exercises {
		views = append(views, ProjectExercise(exercise, locale))
	}
	s.cacheSet(ctx, key, views)
	return views, nil
}

func (s *CatalogService) GetExercise(ctx context.Context, exerciseID int64, locale i18n.Locale) (*models.ExerciseView, error) {
	if exerciseID <= 0 {
		return nil, ErrExerciseNotFound
	}

	key := cache.ExerciseKey(exerciseID, locale)
	var cached models.ExerciseView
	if s.cacheGet(ctx, key, &cached) {
		return &cached, nil
	}

	exercise, err := s.exercises.GetByID(ctx, exerciseID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrExerciseNotFound
		}
		return nil, fmt.Errorf("get exercise %d: %w", exerciseID, err)
	}

	view := ProjectExercise(*exercise, locale)
	s.cacheSet(ctx, key, view)
	return &view, nil
}

// ListPrograms returns every non-custom program without its session tree.
func (s *CatalogService) ListPrograms(ctx context.Context, locale i18n.Locale) ([]models.ProgramView, error) {
	key := cache.ProgramListKey(locale)
	var cached []models.ProgramView
	if s.cacheGet(ctx, key, &cached) {
		return cached, nil
	}

	programs, err := s.programs.ListByCustom(ctx, false)
	if err != nil {
		return nil, fmt.Errorf("list programs: %w", err)
	}

	views := make([]models.ProgramView, 0, len(programs))
	for i := range programs {
		if programs[i].IsCustom {
			continue
		}
		view, err := s.composer.Compose(ctx, &programs[i], locale, false)
		if err != nil {
			return nil, err
		}
		views = append(views, *view)
	}
	s.cacheSet(ctx, key, views)
	return views, nil
}

// GetProgram returns the full program tree. Custom programs are private and
// read as not found.
func (s *CatalogService) GetProgram(ctx context.Context, programID int64, locale i18n.Locale) (*models.ProgramView, error) {
	if programID <= 0 {
		return nil, ErrProgramNotFound
	}

	key := cache.ProgramKey(programID, locale)
	var cached models.ProgramView
	if s.cacheGet(ctx, key, &cached) {
		return &cached, nil
	}

	program, err := s.programs.GetByID(ctx, programID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrProgramNotFound
		}
		return nil, fmt.Errorf("get program %d: %w", programID, err)
	}
	if program.IsCustom {
		return nil, ErrProgramNotFound
	}

	view, err := s.composer.Compose(ctx, program, locale, true)
	if err != nil {
		return nil, err
	}
	s.cacheSet(ctx, key, view)
	return view, nil
}

// Enroll records that userID follows programID. Repeating the call returns
// the existing plan with created set to false.
func (s *CatalogService) Enroll(ctx context.Context, userID, programID int64) (*models.UserPlan, bool, error) {
	if userID <= 0 {
		return nil, false, ErrInvalidInput
	}
	if programID <= 0 {
		return nil, false, NewValidationError("program", "Ensure this value is greater than 0.")
	}

	program, err := s.programs.GetByID(ctx, programID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, false, NewValidationError(
				"program",
				fmt.Sprintf("Invalid pk \"%d\" - object does not exist.", programID),
			)
		}
		return nil, false, fmt.Errorf("get program %d: %w", programID, err)
	}
	if program.IsCustom && program.CreatedBy != userID {
		return nil, false, NewValidationError("program", "Program is not available for enrollment.")
	}

	plan, created, err := s.plans.Upsert(ctx, userID, programID)
	if err != nil {
		return nil, false, fmt.Errorf("enroll user %d in program %d: %w", userID, programID, err)
	}
	if created {
		s.logger.Info("user enrolled in program", "user_id", userID, "program_id", programID, "plan_id", plan.ID)
	}
	return plan, created, nil
}

func (s *CatalogService) cacheGet(ctx context.Context, key string, dest any) bool {
	if s.cache == nil {
		return false
	}
	return s.cache.Get(ctx, key, dest)
}

func (s *CatalogService) cacheSet(ctx context.Context, key string, value any) {
	if s.cache == nil {
		return
	}
	s.cache.Set(ctx, key, value)
}
