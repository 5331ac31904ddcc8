package services

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"strings"
	"sync"
	"testing"

	"github.com/PY-Dev20/traint-5x5/internal/i18n"
	"github.com/PY-Dev20/traint-5x5/internal/models"
	"github.com/jackc/pgx/v5"
)

type stubSessionReader struct {
	sessions    []models.ProgramSession
	sessionsErr error
	exercises   map[int64][]models.SessionExercise
	itemsErr    error
}

func (r *stubSessionReader) ListByProgramID(_ context.Context, _ int64) ([]models.ProgramSession, error) {
	out := make([]models.ProgramSession, len(r.sessions))
	copy(out, r.sessions)
	return out, r.sessionsErr
}

func (r *stubSessionReader) ListExercises(_ context.Context, sessionID int64) ([]models.SessionExercise, error) {
	if r.itemsErr != nil {
		return nil, r.itemsErr
	}
	rows := r.exercises[sessionID]
	out := make([]models.SessionExercise, len(rows))
	copy(out, rows)
	return out, nil
}

type stubExerciseBatch struct {
	mu        sync.Mutex
	exercises map[int64]models.Exercise
	calls     int
	lastIDs   []int64
}

func (r *stubExerciseBatch) GetByIDs(_ context.Context, ids []int64) (map[int64]models.Exercise, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls++
	r.lastIDs = ids
	out := make(map[int64]models.Exercise)
	for _, id := range ids {
		if exercise, ok := r.exercises[id]; ok {
			out[id] = exercise
		}
	}
	return out, nil
}

type stubCoachReader struct {
	coach *models.Coach
	err   error
}

func (r *stubCoachReader) GetByID(_ context.Context, _ int64) (*models.Coach, error) {
	return r.coach, r.err
}

type stubCategoryReader struct {
	category *models.ProgramCategory
	err      error
}

func (r *stubCategoryReader) GetByID(_ context.Context, _ int64) (*models.ProgramCategory, error) {
	return r.category, r.err
}

type stubResolver struct {
	prefix string
	err    error
}

func (r stubResolver) PublicURL(ref string) (string, error) {
	if r.err != nil {
		return "", r.err
	}
	return r.prefix + ref, nil
}

func namedExercise(id int64, name string) models.Exercise {
	return models.Exercise{
		ID:         id,
		Name:       i18n.LocalizedText{i18n.English: name},
		Difficulty: models.DifficultyIntermediate,
	}
}

func newTestComposer(sessions *stubSessionReader, exercises *stubExerciseBatch) (*ProgramComposer, *bytes.Buffer) {
	var logs bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&logs, nil))
	return NewProgramComposer(sessions, exercises, nil, nil, stubResolver{prefix: "https://media.test/"}, logger), &logs
}

func TestComposeOrdersSessionsByDayNumber(t *testing.T) {
	sessions := &stubSessionReader{
		sessions: []models.ProgramSession{
			{ID: 10, ProgramID: 1, DayNumber: 2, Name: i18n.LocalizedText{i18n.English: "Pull"}},
			{ID: 11, ProgramID: 1, DayNumber: 1, Name: i18n.LocalizedText{i18n.English: "Push"}},
		},
	}
	composer, _ := newTestComposer(sessions, &stubExerciseBatch{})

	view, err := composer.Compose(context.Background(), &models.Program{ID: 1}, i18n.English, true)
	if err != nil {
		t.Fatalf("Compose: %v", err)
	}
	if len(view.Sessions) != 2 {
		t.Fatalf("expected 2 sessions, got %d", len(view.Sessions))
	}
	if view.Sessions[0].DayNumber != 1 || view.Sessions[1].DayNumber != 2 {
		t.Fatalf("unexpected order: day %d, day %d", view.Sessions[0].DayNumber, view.Sessions[1].DayNumber)
	}
	if view.Sessions[0].Name != "Push" {
		t.Fatalf("expected Push first, got %q", view.Sessions[0].Name)
	}
}

func TestComposeOrderingIgnoresStorageOrder(t *testing.T) {
	base := []models.ProgramSession{
		{ID: 1, DayNumber: 1},
		{ID: 2, DayNumber: 2},
		{ID: 3, DayNumber: 3},
	}
	items := []models.SessionExercise{
		{ID: 100, SessionID: 1, ExerciseID: 1, Order: 1},
		{ID: 101, SessionID: 1, ExerciseID: 2, Order: 2},
		{ID: 102, SessionID: 1, ExerciseID: 3, Order: 3},
	}
	exercises := &stubExerciseBatch{exercises: map[int64]models.Exercise{
		1: namedExercise(1, "Squat"),
		2: namedExercise(2, "Bench"),
		3: namedExercise(3, "Row"),
	}}

	for _, sessionPerm := range permutations(len(base)) {
		for _, itemPerm := range permutations(len(items)) {
			shuffledSessions := make([]models.ProgramSession, len(base))
			for i, idx := range sessionPerm {
				shuffledSessions[i] = base[idx]
			}
			shuffledItems := make([]models.SessionExercise, len(items))
			for i, idx := range itemPerm {
				shuffledItems[i] = items[idx]
			}

			composer, _ := newTestComposer(&stubSessionReader{
				sessions:  shuffledSessions,
				exercises: map[int64][]models.SessionExercise{1: shuffledItems},
			}, exercises)

			view, err := composer.Compose(context.Background(), &models.Program{ID: 1}, i18n.English, true)
			if err != nil {
				t.Fatalf("Compose: %v", err)
			}
			for i, session := range view.Sessions {
				if session.DayNumber != i+1 {
					t.Fatalf("perm %v: session %d has day %d", sessionPerm, i, session.DayNumber)
				}
			}
			got := view.Sessions[0].Exercises
			if len(got) != 3 || got[0].Order != 1 || got[1].Order != 2 || got[2].Order != 3 {
				t.Fatalf("perm %v: unexpected exercise order %+v", itemPerm, got)
			}
		}
	}
}

func TestComposeBreaksTiesByID(t *testing.T) {
	sessions := &stubSessionReader{
		sessions: []models.ProgramSession{
			{ID: 9, DayNumber: 1, Name: i18n.LocalizedText{i18n.English: "B"}},
			{ID: 4, DayNumber: 1, Name: i18n.LocalizedText{i18n.English: "A"}},
		},
		exercises: map[int64][]models.SessionExercise{
			4: {
				{ID: 21, SessionID: 4, ExerciseID: 1, Order: 1},
				{ID: 20, SessionID: 4, ExerciseID: 2, Order: 1},
			},
		},
	}
	exercises := &stubExerciseBatch{exercises: map[int64]models.Exercise{
		1: namedExercise(1, "Squat"),
		2: namedExercise(2, "Lunge"),
	}}
	composer, _ := newTestComposer(sessions, exercises)

	view, err := composer.Compose(context.Background(), &models.Program{ID: 1}, i18n.English, true)
	if err != nil {
		t.Fatalf("Compose: %v", err)
	}
	if view.Sessions[0].ID != 4 || view.Sessions[1].ID != 9 {
		t.Fatalf("expected session 4 before 9, got %d then %d", view.Sessions[0].ID, view.Sessions[1].ID)
	}
	first := view.Sessions[0].Exercises
	if first[0].ID != 20 || first[1].ID != 21 {
		t.Fatalf("expected item 20 before 21, got %d then %d", first[0].ID, first[1].ID)
	}
	if first[0].ExerciseName != "Lunge" {
		t.Fatalf("expected exercise name Lunge, got %q", first[0].ExerciseName)
	}
}

func TestComposeSkipsDanglingExerciseReference(t *testing.T) {
	sessions := &stubSessionReader{
		sessions: []models.ProgramSession{{ID: 1, DayNumber: 1}},
		exercises: map[int64][]models.SessionExercise{
			1: {
				{ID: 30, SessionID: 1, ExerciseID: 5, Sets: 5, Reps: 5, Order: 1},
				{ID: 31, SessionID: 1, ExerciseID: 404, Sets: 3, Reps: 8, Order: 2},
			},
		},
	}
	exercises := &stubExerciseBatch{exercises: map[int64]models.Exercise{5: namedExercise(5, "Deadlift")}}
	composer, logs := newTestComposer(sessions, exercises)

	view, err := composer.Compose(context.Background(), &models.Program{ID: 7}, i18n.French, true)
	if err != nil {
		t.Fatalf("Compose: %v", err)
	}
	items := view.Sessions[0].Exercises
	if len(items) != 1 || items[0].Exercise.ID != 5 {
		t.Fatalf("expected only exercise 5, got %+v", items)
	}
	if items[0].Sets != 5 || items[0].Reps != 5 {
		t.Fatalf("unexpected prescription %+v", items[0])
	}
	if !strings.Contains(logs.String(), "exercise_id=404") {
		t.Fatalf("expected dangling reference to be logged, got %q", logs.String())
	}
	if exercises.calls != 1 {
		t.Fatalf("expected a single batched exercise lookup, got %d", exercises.calls)
	}
}

func TestComposeSessionNameFallsBackToDayNumber(t *testing.T) {
	sessions := &stubSessionReader{
		sessions: []models.ProgramSession{{ID: 1, DayNumber: 3}},
	}
	composer, _ := newTestComposer(sessions, &stubExerciseBatch{})

	view, err := composer.Compose(context.Background(), &models.Program{ID: 1}, i18n.Arabic, true)
	if err != nil {
		t.Fatalf("Compose: %v", err)
	}
	if view.Sessions[0].Name != "Day 3" {
		t.Fatalf("expected Day 3, got %q", view.Sessions[0].Name)
	}
	if view.Sessions[0].Exercises == nil {
		t.Fatalf("expected empty, non-nil exercise list")
	}
}

func TestComposeWithoutSessionsSkipsTree(t *testing.T) {
	sessions := &stubSessionReader{sessionsErr: errors.New("must not be called")}
	composer, _ := newTestComposer(sessions, &stubExerciseBatch{})

	program := &models.Program{
		ID:            3,
		Name:          i18n.LocalizedText{i18n.English: "Starter", i18n.French: "Débutant"},
		DurationWeeks: 4,
		Difficulty:    models.DifficultyBeginner,
	}
	view, err := composer.Compose(context.Background(), program, i18n.French, false)
	if err != nil {
		t.Fatalf("Compose: %v", err)
	}
	if view.Name != "Débutant" || view.DurationWeeks != 4 || view.Difficulty != "beginner" {
		t.Fatalf("unexpected view %+v", view)
	}
	if view.Sessions != nil || view.Thumbnail != nil {
		t.Fatalf("expected no sessions and no thumbnail, got %+v", view)
	}
}

func TestComposeResolvesThumbnail(t *testing.T) {
	composer, _ := newTestComposer(&stubSessionReader{}, &stubExerciseBatch{})

	thumb := "programs/starter.png"
	view, err := composer.Compose(context.Background(), &models.Program{ID: 1, Thumbnail: &thumb}, i18n.English, false)
	if err != nil {
		t.Fatalf("Compose: %v", err)
	}
	if view.Thumbnail == nil || *view.Thumbnail != "https://media.test/programs/starter.png" {
		t.Fatalf("unexpected thumbnail %v", view.Thumbnail)
	}

	empty := ""
	view, err = composer.Compose(context.Background(), &models.Program{ID: 1, Thumbnail: &empty}, i18n.English, false)
	if err != nil {
		t.Fatalf("Compose: %v", err)
	}
	if view.Thumbnail != nil {
		t.Fatalf("expected nil thumbnail for empty reference")
	}

	var logs bytes.Buffer
	failing := NewProgramComposer(&stubSessionReader{}, &stubExerciseBatch{}, nil, nil,
		stubResolver{err: errors.New("bad ref")}, slog.New(slog.NewTextHandler(&logs, nil)))
	view, err = failing.Compose(context.Background(), &models.Program{ID: 1, Thumbnail: &thumb}, i18n.English, false)
	if err != nil {
		t.Fatalf("Compose: %v", err)
	}
	if view.Thumbnail != nil {
		t.Fatalf("expected nil thumbnail when resolution fails")
	}
	if !strings.Contains(logs.String(), "unable to resolve media url") {
		t.Fatalf("expected resolution failure to be logged")
	}
}

func TestComposeIncludesCoachAndCategory(t *testing.T) {
	photo := "coaches/sara.jpg"
	coaches := &stubCoachReader{coach: &models.Coach{
		ID:              2,
		Bio:             i18n.LocalizedText{i18n.English: "Strength coach", i18n.French: "Coach de force"},
		Specialties:     i18n.LocalizedList{i18n.English: {"powerlifting"}},
		ExperienceYears: 8,
		IsFeatured:      true,
		Photo:           &photo,
	}}
	categories := &stubCategoryReader{category: &models.ProgramCategory{
		ID:   6,
		Name: i18n.LocalizedText{i18n.English: "Strength", i18n.French: "Force"},
	}}
	composer := NewProgramComposer(&stubSessionReader{}, &stubExerciseBatch{}, coaches, categories,
		stubResolver{prefix: "https://media.test/"}, slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil)))

	coachID, categoryID := int64(2), int64(6)
	view, err := composer.Compose(context.Background(), &models.Program{ID: 1, CoachID: &coachID, CategoryID: &categoryID}, i18n.French, true)
	if err != nil {
		t.Fatalf("Compose: %v", err)
	}
	if view.Coach == nil || view.Coach.Bio != "Coach de force" || view.Coach.Specialties[0] != "powerlifting" {
		t.Fatalf("unexpected coach %+v", view.Coach)
	}
	if view.Coach.PhotoURL == nil || *view.Coach.PhotoURL != "https://media.test/coaches/sara.jpg" {
		t.Fatalf("unexpected coach photo %v", view.Coach.PhotoURL)
	}
	if view.Category == nil || view.Category.Name != "Force" {
		t.Fatalf("unexpected category %+v", view.Category)
	}
}

func TestComposeToleratesMissingCoach(t *testing.T) {
	coaches := &stubCoachReader{err: pgx.ErrNoRows}
	composer := NewProgramComposer(&stubSessionReader{}, &stubExerciseBatch{}, coaches, nil,
		nil, slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil)))

	coachID := int64(99)
	view, err := composer.Compose(context.Background(), &models.Program{ID: 1, CoachID: &coachID}, i18n.English, true)
	if err != nil {
		t.Fatalf("Compose: %v", err)
	}
	if view.Coach != nil {
		t.Fatalf("expected nil coach, got %+v", view.Coach)
	}
}

func TestComposePropagatesStorageErrors(t *testing.T) {
	storageErr := errors.New("connection reset")
	composer, _ := newTestComposer(&stubSessionReader{
		sessions: []models.ProgramSession{{ID: 1, DayNumber: 1}},
		itemsErr: storageErr,
	}, &stubExerciseBatch{})

	_, err := composer.Compose(context.Background(), &models.Program{ID: 1}, i18n.English, true)
	if !errors.Is(err, storageErr) {
		t.Fatalf("expected storage error, got %v", err)
	}
}

func permutations(n int) [][]int {
	if n == 0 {
		return [][]int{{}}
	}
	var out [][]int
	for _, perm := range permutations(n - 1) {
		for pos := 0; pos <= len(perm); pos++ {
			next := make([]int, 0, n)
			next = append(next, perm[:pos]...)
			next = append(next, n-1)
			next = append(next, perm[pos:]...)
			out = append(out, next)
		}
	}
	return out
}
