package gateway

import (
	"context"
	"testing"
	"time"

	"github.com/playperu/quizmaster/internal/session"
)

func TestRegistry(t *testing.T) {
	r := NewRegistry()
	ctrl := session.New(nil)

	id := r.NewID()
	if id == "" || id == r.NewID() {
		t.Fatalf("NewID should return distinct non-empty ids")
	}

	r.Add(id, ctrl)
	got, ok := r.Get(id)
	if !ok || got != ctrl {
		t.Fatalf("Get(%q) = %v, %v", id, got, ok)
	}
	if _, ok := r.Get("other"); ok {
		t.Errorf("Get of unknown id should fail")
	}

	if !r.Remove(id) {
		t.Errorf("Remove should report an existing session")
	}
	if r.Remove(id) {
		t.Errorf("second Remove should report false")
	}
	if r.Len() != 0 {
		t.Errorf("Len = %d, want 0", r.Len())
	}
}

func TestRegistrySweep(t *testing.T) {
	now := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	r := NewRegistry()
	r.now = func() time.Time { return now }

	r.Add("old", session.New(nil))
	r.Add("touched", session.New(nil))

	now = now.Add(90 * time.Minute)
	r.Get("touched")

	now = now.Add(45 * time.Minute)
	evicted := r.Sweep(time.Hour)

	if len(evicted) != 1 || evicted[0] != "old" {
		t.Fatalf("evicted = %v, want [old]", evicted)
	}
	if _, ok := r.Get("touched"); !ok {
		t.Errorf("recently used session was evicted")
	}
}

func TestEvictIdleDropsSubscribers(t *testing.T) {
	g := New(nil, discardLogger(), WithSessionTTL(time.Minute))
	now := time.Now()
	g.sessions.now = func() time.Time { return now }

	g.sessions.Add("s1", session.New(nil))
	ch := g.broker.Subscribe("s1")

	now = now.Add(2 * time.Minute)
	g.evictIdle()

	if g.sessions.Len() != 0 {
		t.Errorf("expected session to be evicted")
	}
	if _, ok := <-ch; ok {
		t.Errorf("expected subscriber channel to be closed")
	}
}

func TestRunWithTinySessionTTL(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	g := New(nil, discardLogger(), WithSessionTTL(3*time.Nanosecond))
	if err := g.Run(ctx); err != nil {
		t.Errorf("Run: %v", err)
	}
}
