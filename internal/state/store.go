package state

import (
	"sync"
	"time"

	"github.com/five82/flipclock/internal/countdown"
)

// Snapshot is the latest countdown view shared with HTTP clients.
type Snapshot struct {
	ID        string          `json:"id"`
	Caption   string          `json:"caption,omitempty"`
	Target    time.Time       `json:"target"`
	State     string          `json:"state"`
	Remaining countdown.Delta `json:"remaining"`
	Digits    string          `json:"digits"`
	Summary   string          `json:"summary"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// Expired reports whether the countdown reached its target.
func (s Snapshot) Expired() bool {
	return s.State == countdown.Expired.String()
}

// FromCountdown converts a countdown snapshot into its shared view.
func FromCountdown(c countdown.Snapshot) Snapshot {
	return Snapshot{
		ID:        c.ID,
		Caption:   c.Caption,
		Target:    c.Target,
		State:     c.State.String(),
		Remaining: c.Delta,
		Digits:    c.Digits.String(),
		Summary:   c.Summary,
		UpdatedAt: c.At,
	}
}

const subscriberBuffer = 16

// Store holds the latest snapshot and fans updates out to subscribers.
type Store struct {
	mu       sync.RWMutex
	snapshot Snapshot
	has      bool
	subs     map[int]chan Snapshot
	nextID   int
}

// Update replaces the stored snapshot and offers it to every subscriber.
// Subscribers that are not keeping up miss the update.
func (s *Store) Update(snap Snapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.snapshot = snap
	s.has = true
	for _, ch := range s.subs {
		select {
		case ch <- snap:
		default:
		}
	}
}

// Snapshot returns the current snapshot and whether one was ever stored.
func (s *Store) Snapshot() (Snapshot, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshot, s.has
}

// Subscribe returns a channel of future updates and a function that
// unsubscribes and closes it.
func (s *Store) Subscribe() (<-chan Snapshot, func()) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.subs == nil {
		s.subs = make(map[int]chan Snapshot)
	}
	id := s.nextID
	s.nextID++
	ch := make(chan Snapshot, subscriberBuffer)
	s.subs[id] = ch

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			s.mu.Lock()
			defer s.mu.Unlock()
			delete(s.subs, id)
			close(ch)
		})
	}
}

// Subscribers returns the number of live subscriptions.
func (s *Store) Subscribers() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.subs)
}
