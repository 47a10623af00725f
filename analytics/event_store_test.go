package analytics

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"quotepulse/api/models"
)

func storeEvent(id, userID string) models.AnalyticsEvent {
	return models.AnalyticsEvent{
		EventID:   id,
		UserID:    userID,
		EventType: models.EventQuoteView,
		SessionID: "session-" + userID,
	}
}

func TestEventStoreEvictsOldestFirst(t *testing.T) {
	s := NewEventStore(5, nil, zerolog.Nop())
	for i := 0; i < 8; i++ {
		s.Append(storeEvent(fmt.Sprintf("e%d", i), "u1"))
	}

	events := s.All()
	require.Len(t, events, 5)
	for i, e := range events {
		assert.Equal(t, fmt.Sprintf("e%d", i+3), e.EventID)
	}
}

func TestEventStoreCapacityAtScale(t *testing.T) {
	s := NewEventStore(1000, nil, zerolog.Nop())
	for i := 0; i < 1001; i++ {
		s.Append(storeEvent(fmt.Sprintf("e%d", i), "u1"))
	}

	require.Equal(t, 1000, s.Len())
	for _, e := range s.All() {
		assert.NotEqual(t, "e0", e.EventID, "the very first event must have been evicted")
	}
}

func TestEventStoreClearScopedToUser(t *testing.T) {
	s := NewEventStore(100, nil, zerolog.Nop())
	for i := 0; i < 4; i++ {
		s.Append(storeEvent(fmt.Sprintf("a%d", i), "alice"))
	}
	for i := 0; i < 3; i++ {
		s.Append(storeEvent(fmt.Sprintf("b%d", i), "bob"))
	}

	s.Clear("alice")

	events := s.All()
	require.Len(t, events, 3)
	for _, e := range events {
		assert.Equal(t, "bob", e.UserID)
	}

	s.Clear("")
	assert.Equal(t, 0, s.Len())
}

func TestEventStoreSnapshotRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "events.json")
	snap := NewFileSnapshot(path)

	s := NewEventStore(10, snap, zerolog.Nop())
	s.Append(storeEvent("e1", "u1"))
	s.Append(storeEvent("e2", "u2"))
	assert.False(t, s.Degraded())

	restored := NewEventStore(10, NewFileSnapshot(path), zerolog.Nop())
	require.Equal(t, 2, restored.Len())
	assert.Equal(t, "e1", restored.All()[0].EventID)
	assert.False(t, restored.Degraded())
}

func TestEventStoreCorruptedSnapshotDegradesToEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "events.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))

	s := NewEventStore(10, NewFileSnapshot(path), zerolog.Nop())
	assert.Equal(t, 0, s.Len())
	assert.True(t, s.Degraded())
}

func TestEventStoreSnapshotTruncatedToCapacity(t *testing.T) {
	path := filepath.Join(t.TempDir(), "events.json")
	snap := NewFileSnapshot(path)
	var events []models.AnalyticsEvent
	for i := 0; i < 20; i++ {
		events = append(events, storeEvent(fmt.Sprintf("e%d", i), "u1"))
	}
	require.NoError(t, snap.Save(events))

	s := NewEventStore(10, snap, zerolog.Nop())
	require.Equal(t, 10, s.Len())
	assert.Equal(t, "e10", s.All()[0].EventID)
}
