package gateway

import (
	"sync"

	"github.com/playperu/quizmaster/internal/session"
)

// Broker is an in-process pub/sub for session events, keyed by session id.
type Broker struct {
	mu   sync.RWMutex
	subs map[string]map[chan session.Event]struct{}
}

func NewBroker() *Broker {
	return &Broker{
		subs: make(map[string]map[chan session.Event]struct{}),
	}
}

// Subscribe returns a channel that receives the session's events. The
// channel is closed when the session is dropped.
func (b *Broker) Subscribe(sessionID string) chan session.Event {
	ch := make(chan session.Event, 16)
	b.mu.Lock()
	if b.subs[sessionID] == nil {
		b.subs[sessionID] = make(map[chan session.Event]struct{})
	}
	b.subs[sessionID][ch] = struct{}{}
	b.mu.Unlock()
	return ch
}

// Unsubscribe removes ch from the session's subscribers. It is a no-op
// when the session was already dropped.
func (b *Broker) Unsubscribe(sessionID string, ch chan session.Event) {
	b.mu.Lock()
	if _, ok := b.subs[sessionID][ch]; ok {
		delete(b.subs[sessionID], ch)
		close(ch)
	}
	if len(b.subs[sessionID]) == 0 {
		delete(b.subs, sessionID)
	}
	b.mu.Unlock()
}

// Publish sends an event to all subscribers of the session.
func (b *Broker) Publish(sessionID string, event session.Event) {
	b.mu.RLock()
	for ch := range b.subs[sessionID] {
		select {
		case ch <- event:
		default:
			// Drop if subscriber is slow.
		}
	}
	b.mu.RUnlock()
}

// Drop closes and removes every subscriber of the session.
func (b *Broker) Drop(sessionID string) {
	b.mu.Lock()
	for ch := range b.subs[sessionID] {
		close(ch)
	}
	delete(b.subs, sessionID)
	b.mu.Unlock()
}
