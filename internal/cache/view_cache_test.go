package cache

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/PY-Dev20/traint-5x5/internal/i18n"
	"github.com/redis/go-redis/v9"
)

func TestKeys(t *testing.T) {
	if got := ProgramKey(7, i18n.French); got != "catalog:program:7:fr" {
		t.Fatalf("unexpected program key %q", got)
	}
	if got := ProgramListKey(i18n.Arabic); got != "catalog:programs:ar" {
		t.Fatalf("unexpected program list key %q", got)
	}
	if got := ExerciseKey(3, i18n.English); got != "catalog:exercise:3:en" {
		t.Fatalf("unexpected exercise key %q", got)
	}
	if got := ExerciseListKey(i18n.English); got != "catalog:exercises:en" {
		t.Fatalf("unexpected exercise list key %q", got)
	}
}

func TestNilViewCacheIsANoop(t *testing.T) {
	var cache *ViewCache
	var dest map[string]any

	if cache.Get(context.Background(), "catalog:x", &dest) {
		t.Fatalf("nil cache must miss")
	}
	cache.Set(context.Background(), "catalog:x", map[string]int{"a": 1})
	if n, err := cache.Flush(context.Background()); n != 0 || err != nil {
		t.Fatalf("unexpected flush result %d, %v", n, err)
	}
}

func TestViewCacheTreatsRedisFailureAsMiss(t *testing.T) {
	client := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		MaxRetries:  -1,
		DialTimeout: 100 * time.Millisecond,
	})
	t.Cleanup(func() { _ = client.Close() })

	var logs bytes.Buffer
	cache := NewViewCache(client, time.Minute, slog.New(slog.NewTextHandler(&logs, nil)))

	var dest map[string]any
	if cache.Get(context.Background(), ProgramKey(1, i18n.English), &dest) {
		t.Fatalf("expected miss when redis is unreachable")
	}
	cache.Set(context.Background(), ProgramKey(1, i18n.English), map[string]int{"id": 1})

	if !strings.Contains(logs.String(), "catalog cache read failed") {
		t.Fatalf("expected read failure to be logged, got %q", logs.String())
	}
	if !strings.Contains(logs.String(), "catalog cache write failed") {
		t.Fatalf("expected write failure to be logged, got %q", logs.String())
	}
}
