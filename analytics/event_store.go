package analytics

import (
	"sync"

	"github.com/rs/zerolog"

	"quotepulse/api/models"
)

// DefaultCapacity bounds the retained log when no explicit cap is configured.
const DefaultCapacity = 1000

// EventStore is a bounded, append-only log of analytics events. Appending
// past capacity evicts the oldest entries first. One store instance is the
// single designated writer for its persisted snapshot; in-process callers
// are serialized by the mutex.
type EventStore struct {
	mu       sync.Mutex
	capacity int
	events   []models.AnalyticsEvent
	persist  Persistence
	degraded bool
	log      zerolog.Logger
}

// NewEventStore builds the store and restores the persisted snapshot when a
// persistence layer is configured. A snapshot that cannot be loaded degrades
// to an empty log and marks the store degraded.
func NewEventStore(capacity int, persist Persistence, logger zerolog.Logger) *EventStore {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	s := &EventStore{
		capacity: capacity,
		persist:  persist,
		log:      logger,
	}
	if persist != nil {
		events, err := persist.Load()
		if err != nil {
			s.degraded = true
			logger.Warn().Err(err).Msg("analytics snapshot unreadable, starting with empty log")
		} else if len(events) > capacity {
			s.events = append(s.events, events[len(events)-capacity:]...)
		} else {
			s.events = append(s.events, events...)
		}
	}
	return s
}

// Append adds an event to the tail, evicting from the head when the log
// exceeds capacity, then snapshots best-effort.
func (s *EventStore) Append(event models.AnalyticsEvent) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.events = append(s.events, event)
	if len(s.events) > s.capacity {
		overflow := len(s.events) - s.capacity
		kept := make([]models.AnalyticsEvent, s.capacity)
		copy(kept, s.events[overflow:])
		s.events = kept
	}
	s.save()
}

// All returns a copy of the retained log in append order.
func (s *EventStore) All() []models.AnalyticsEvent {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]models.AnalyticsEvent, len(s.events))
	copy(out, s.events)
	return out
}

func (s *EventStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.events)
}

// Clear erases one user's events, or the whole log when userID is empty.
// Other users' events are untouched by a scoped erase.
func (s *EventStore) Clear(userID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if userID == "" {
		s.events = nil
	} else {
		kept := s.events[:0]
		for _, e := range s.events {
			if e.UserID != userID {
				kept = append(kept, e)
			}
		}
		s.events = kept
	}
	s.save()
}

// Degraded reports whether any persistence operation has failed since the
// store was built; insight snapshots surface it as their status.
func (s *EventStore) Degraded() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.degraded
}

// Flush writes a final snapshot; used at shutdown.
func (s *EventStore) Flush() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.save()
}

// save persists the current log best-effort. Callers must hold the mutex.
// Failures are logged and dropped; the write is lost, not queued.
func (s *EventStore) save() {
	if s.persist == nil {
		return
	}
	if err := s.persist.Save(s.events); err != nil {
		s.degraded = true
		s.log.Warn().Err(err).Int("events", len(s.events)).Msg("analytics snapshot write dropped")
	}
}
