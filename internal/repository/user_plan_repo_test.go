package repository

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

type stubRow struct {
	values []any
	err    error
}

func (r stubRow) Scan(dest ...any) error {
	if r.err != nil {
		return r.err
	}
	for i := range dest {
		switch target := dest[i].(type) {
		case *int64:
			*target = r.values[i].(int64)
		case *time.Time:
			*target = r.values[i].(time.Time)
		default:
			return errors.New("unsupported scan target")
		}
	}
	return nil
}

type stubDBTX struct {
	queries    []string
	queryRowFn func(query string, args ...any) stubRow
}

func (db *stubDBTX) Exec(_ context.Context, _ string, _ ...any) (pgconn.CommandTag, error) {
	return pgconn.CommandTag{}, nil
}

func (db *stubDBTX) Query(_ context.Context, _ string, _ ...any) (pgx.Rows, error) {
	return nil, errors.New("not implemented")
}

func (db *stubDBTX) QueryRow(_ context.Context, query string, args ...any) pgx.Row {
	db.queries = append(db.queries, query)
	return db.queryRowFn(query, args...)
}

var testTime = time.Date(2030, 1, 2, 3, 4, 5, 0, time.UTC)

func TestUserPlanRepositoryUpsertInsertsNewPlan(t *testing.T) {
	db := &stubDBTX{
		queryRowFn: func(query string, args ...any) stubRow {
			if strings.Contains(query, "INSERT INTO user_plans") {
				return stubRow{values: []any{int64(5), args[0], args[1], testTime}}
			}
			return stubRow{err: errors.New("unexpected query")}
		},
	}
	repo := NewUserPlanRepository(db)

	plan, created, err := repo.Upsert(context.Background(), 42, 7)
	if err != nil {
		t.Fatalf("Upsert: %v", err)
	}
	if !created {
		t.Fatalf("expected created plan")
	}
	if plan.ID != 5 || plan.UserID != 42 || plan.ProgramID != 7 {
		t.Fatalf("unexpected plan: %+v", plan)
	}
	if len(db.queries) != 1 {
		t.Fatalf("expected a single query, got %d", len(db.queries))
	}
	if !strings.Contains(db.queries[0], "ON CONFLICT (user_id, program_id) DO NOTHING") {
		t.Fatalf("expected conflict-tolerant insert, got %q", db.queries[0])
	}
}

func TestUserPlanRepositoryUpsertReturnsExistingPlan(t *testing.T) {
	db := &stubDBTX{
		queryRowFn: func(query string, args ...any) stubRow {
			if strings.Contains(query, "INSERT INTO user_plans") {
				return stubRow{err: pgx.ErrNoRows}
			}
			if strings.Contains(query, "FROM user_plans") {
				return stubRow{values: []any{int64(3), args[0], args[1], testTime}}
			}
			return stubRow{err: errors.New("unexpected query")}
		},
	}
	repo := NewUserPlanRepository(db)

	plan, created, err := repo.Upsert(context.Background(), 42, 7)
	if err != nil {
		t.Fatalf("Upsert: %v", err)
	}
	if created {
		t.Fatalf("expected existing plan to be reported as not created")
	}
	if plan.ID != 3 {
		t.Fatalf("expected existing plan id 3, got %d", plan.ID)
	}
}

func TestUserPlanRepositoryUpsertPropagatesInsertFailure(t *testing.T) {
	insertErr := errors.New("connection reset")
	db := &stubDBTX{
		queryRowFn: func(query string, args ...any) stubRow {
			return stubRow{err: insertErr}
		},
	}
	repo := NewUserPlanRepository(db)

	_, _, err := repo.Upsert(context.Background(), 42, 7)
	if !errors.Is(err, insertErr) {
		t.Fatalf("expected insert error, got %v", err)
	}
	if len(db.queries) != 1 {
		t.Fatalf("expected no follow-up select, got %d queries", len(db.queries))
	}
}
