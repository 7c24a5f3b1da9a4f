package admin

import (
	"sync"

	"github.com/google/uuid"
)

// Feed is an in-process change feed keyed by user. Activity-state writes
// publish the user ID; dashboard subscriptions wake up and re-derive that
// user's view. Notifications coalesce: a subscriber that has not drained
// its channel yet receives at most one pending signal.
type Feed struct {
	mu   sync.Mutex
	subs map[uuid.UUID]map[*subscription]struct{}
}

type subscription struct {
	ch chan struct{}
}

// NewFeed creates an empty change feed.
func NewFeed() *Feed {
	return &Feed{subs: make(map[uuid.UUID]map[*subscription]struct{})}
}

// Publish signals every subscriber watching the user. Never blocks.
func (f *Feed) Publish(userID uuid.UUID) {
	f.mu.Lock()
	defer f.mu.Unlock()

	for sub := range f.subs[userID] {
		select {
		case sub.ch <- struct{}{}:
		default: // a signal is already pending
		}
	}
}

// Subscribe attaches a watcher for one user. The returned channel carries
// coalesced change signals; the detach function must be called when the
// watcher goes away, after which the channel is closed.
func (f *Feed) Subscribe(userID uuid.UUID) (<-chan struct{}, func()) {
	sub := &subscription{ch: make(chan struct{}, 1)}

	f.mu.Lock()
	if f.subs[userID] == nil {
		f.subs[userID] = make(map[*subscription]struct{})
	}
	f.subs[userID][sub] = struct{}{}
	f.mu.Unlock()

	detach := func() {
		f.mu.Lock()
		defer f.mu.Unlock()

		if set, ok := f.subs[userID]; ok {
			if _, attached := set[sub]; attached {
				delete(set, sub)
				close(sub.ch)
				if len(set) == 0 {
					delete(f.subs, userID)
				}
			}
		}
	}
	return sub.ch, detach
}
