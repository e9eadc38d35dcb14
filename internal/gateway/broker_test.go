package gateway

import (
	"testing"

	"github.com/playperu/quizmaster/internal/session"
)

func TestBrokerPublish(t *testing.T) {
	b := NewBroker()
	a := b.Subscribe("s1")
	other := b.Subscribe("s2")

	b.Publish("s1", session.Event{Kind: session.EventAnswered})

	select {
	case e := <-a:
		if e.Kind != session.EventAnswered {
			t.Errorf("kind = %q, want %q", e.Kind, session.EventAnswered)
		}
	default:
		t.Fatal("expected event on s1 subscriber")
	}
	select {
	case e := <-other:
		t.Errorf("s2 subscriber got %+v", e)
	default:
	}

	b.Unsubscribe("s1", a)
	b.Publish("s1", session.Event{Kind: session.EventAdvanced})
	if _, ok := <-a; ok {
		t.Errorf("expected closed channel after Unsubscribe")
	}
}

func TestBrokerDropsSlowSubscribers(t *testing.T) {
	b := NewBroker()
	ch := b.Subscribe("s1")

	for range cap(ch) + 5 {
		b.Publish("s1", session.Event{Kind: session.EventAdvanced})
	}
	if len(ch) != cap(ch) {
		t.Errorf("len = %d, want %d", len(ch), cap(ch))
	}
}

func TestBrokerDrop(t *testing.T) {
	b := NewBroker()
	ch := b.Subscribe("s1")

	b.Drop("s1")
	if _, ok := <-ch; ok {
		t.Fatal("expected closed channel after Drop")
	}

	// The stream handler still unsubscribes on exit.
	b.Unsubscribe("s1", ch)
	b.Publish("s1", session.Event{})
}
