package services

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"strings"

	"github.com/PY-Dev20/traint-5x5/internal/i18n"
	"github.com/PY-Dev20/traint-5x5/internal/media"
	"github.com/PY-Dev20/traint-5x5/internal/models"
	"github.com/jackc/pgx/v5"
	"golang.org/x/sync/errgroup"
)

const maxSessionFanOut = 8

type sessionReader interface {
	ListByProgramID(ctx context.Context, programID int64) ([]models.ProgramSession, error)
	ListExercises(ctx context.Context, sessionID int64) ([]models.SessionExercise, error)
}

type exerciseBatchReader interface {
	GetByIDs(ctx context.Context, ids []int64) (map[int64]models.Exercise, error)
}

type coachReader interface {
	GetByID(ctx context.Context, coachID int64) (*models.Coach, error)
}

type categoryReader interface {
	GetByID(ctx context.Context, categoryID int64) (*models.ProgramCategory, error)
}

// ProgramComposer builds locale-resolved program trees. Ordering comes from
// dayNumber and order with id as the tie-break, never from storage order.
type ProgramComposer struct {
	sessions   sessionReader
	exercises  exerciseBatchReader
	coaches    coachReader
	categories categoryReader
	media      media.Resolver
	logger     *slog.Logger
}

func NewProgramComposer(
	sessions sessionReader,
	exercises exerciseBatchReader,
	coaches coachReader,
	categories categoryReader,
	resolver media.Resolver,
	logger *slog.Logger,
) *ProgramComposer {
	if logger == nil {
		logger = slog.Default()
	}
	return &ProgramComposer{
		sessions:   sessions,
		exercises:  exercises,
		coaches:    coaches,
		categories: categories,
		media:      resolver,
		logger:     logger,
	}
}

func (c *ProgramComposer) Compose(
	ctx context.Context,
	program *models.Program,
	locale i18n.Locale,
	includeSessions bool,
) (*models.ProgramView, error) {
	if program == nil {
		return nil, ErrProgramNotFound
	}

	view := &models.ProgramView{
		ID:            program.ID,
		Name:          program.Name.Resolve(locale),
		Description:   program.Description.Resolve(locale),
		Difficulty:    string(program.Difficulty),
		DurationWeeks: program.DurationWeeks,
		Thumbnail:     c.publicURL(program.Thumbnail, "program_id", program.ID),
	}
	if !includeSessions {
		return view, nil
	}

	var (
		sessions []models.SessionView
		coach    *models.CoachView
		category *models.CategoryView
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		composed, err := c.composeSessions(gctx, program.ID, locale)
		sessions = composed
		return err
	})
	if program.CoachID != nil && c.coaches != nil {
		g.Go(func() error {
			composed, err := c.composeCoach(gctx, *program.CoachID, locale)
			coach = composed
			return err
		})
	}
	if program.CategoryID != nil && c.categories != nil {
		g.Go(func() error {
			composed, err := c.composeCategory(gctx, *program.CategoryID, locale)
			category = composed
			return err
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	view.Sessions = sessions
	view.Coach = coach
	view.Category = category
	return view, nil
}

func (c *ProgramComposer) composeSessions(
	ctx context.Context,
	programID int64,
	locale i18n.Locale,
) ([]models.SessionView, error) {
	sessions, err := c.sessions.ListByProgramID(ctx, programID)
	if err != nil {
		return nil, fmt.Errorf("list sessions for program %d: %w", programID, err)
	}
	sortSessions(sessions)

	items := make([][]models.SessionExercise, len(sessions))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxSessionFanOut)
	for i := range sessions {
		i := i // per-iteration copy; go.mod targets go1.21 (pre-1.22 loopvar semantics)
		g.Go(func() error {
			rows, err := c.sessions.ListExercises(gctx, sessions[i].ID)
			if err != nil {
				return fmt.Errorf("list exercises for session %d: %w", sessions[i].ID, err)
			}
			sortSessionExercises(rows)
			items[i] = rows
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	exercises, err := c.exercises.GetByIDs(ctx, referencedExerciseIDs(items))
	if err != nil {
		return nil, fmt.Errorf("load exercises for program %d: %w", programID, err)
	}

	views := make([]models.SessionView, 0, len(sessions))
	for i, session := range sessions {
		sessionView := models.SessionView{
			ID:        session.ID,
			DayNumber: session.DayNumber,
			Name:      session.Name.ResolveOr(locale, fmt.Sprintf("Day %d", session.DayNumber)),
			Exercises: make([]models.SessionExerciseView, 0, len(items[i])),
		}
		for _, item := range items[i] {
			exercise, ok := exercises[item.ExerciseID]
			if !ok {
				c.logger.Warn("skipping session exercise with missing exercise",
					"program_id", programID,
					"session_id", session.ID,
					"session_exercise_id", item.ID,
					"exercise_id", item.ExerciseID,
				)
				continue
			}
			exerciseView := ProjectExercise(exercise, locale)
			sessionView.Exercises = append(sessionView.Exercises, models.SessionExerciseView{
				ID:           item.ID,
				Exercise:     exerciseView,
				ExerciseName: exerciseView.Name,
				Sets:         item.Sets,
				Reps:         item.Reps,
				Order:        item.Order,
			})
		}
		views = append(views, sessionView)
	}
	return views, nil
}

func (c *ProgramComposer) composeCoach(ctx context.Context, coachID int64, locale i18n.Locale) (*models.CoachView, error) {
	coach, err := c.coaches.GetByID(ctx, coachID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			c.logger.Warn("program references missing coach", "coach_id", coachID)
			return nil, nil
		}
		return nil, fmt.Errorf("get coach %d: %w", coachID, err)
	}
	return projectCoach(*coach, locale, c.publicURL(coach.Photo, "coach_id", coach.ID)), nil
}

func (c *ProgramComposer) composeCategory(
	ctx context.Context,
	categoryID int64,
	locale i18n.Locale,
) (*models.CategoryView, error) {
	category, err := c.categories.GetByID(ctx, categoryID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			c.logger.Warn("program references missing category", "category_id", categoryID)
			return nil, nil
		}
		return nil, fmt.Errorf("get category %d: %w", categoryID, err)
	}
	return &models.CategoryView{ID: category.ID, Name: category.Name.Resolve(locale)}, nil
}

// publicURL resolves a stored media reference. An unresolvable reference is
// logged and rendered as null rather than failing the view.
func (c *ProgramComposer) publicURL(ref *string, ownerKey string, ownerID int64) *string {
	if ref == nil || strings.TrimSpace(*ref) == "" {
		return nil
	}
	if c.media == nil {
		value := *ref
		return &value
	}
	url, err := c.media.PublicURL(*ref)
	if err != nil {
		c.logger.Warn("unable to resolve media url", ownerKey, ownerID, "ref", *ref, "error", err)
		return nil
	}
	return &url
}

func sortSessions(sessions []models.ProgramSession) {
	slices.SortFunc(sessions, func(a, b models.ProgramSession) int {
		if byDay := cmp.Compare(a.DayNumber, b.DayNumber); byDay != 0 {
			return byDay
		}
		return cmp.Compare(a.ID, b.ID)
	})
}

func sortSessionExercises(items []models.SessionExercise) {
	slices.SortFunc(items, func(a, b models.SessionExercise) int {
		if byOrder := cmp.Compare(a.Order, b.Order); byOrder != 0 {
			return byOrder
		}
		return cmp.Compare(a.ID, b.ID)
	})
}

func referencedExerciseIDs(items [][]models.SessionExercise) []int64 {
	seen := make(map[int64]struct{})
	ids := make([]int64, 0)
	for _, rows := range items {
		for _, row := range rows {
			if _, ok := seen[row.ExerciseID]; ok {
				continue
			}
			seen[row.ExerciseID] = struct{}{}
			ids = append(ids, row.ExerciseID)
		}
	}
	slices.Sort(ids)
	return ids
}
