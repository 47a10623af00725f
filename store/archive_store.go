// Package store holds the persistence-facing stores: the Postgres user
// store and the ClickHouse archive that mirrors analytics events beyond the
// bounded in-memory log.
package store

import (
	"context"
	"fmt"

	gojson "github.com/goccy/go-json"

	"quotepulse/api/database"
	"quotepulse/api/models"
)

// ArchiveStore mirrors appended events into ClickHouse so history survives
// the in-memory retention cap. Writes are best-effort; the engine logs and
// drops failures.
type ArchiveStore struct {
	DB *database.ClickHouseClient
}

func NewArchiveStore(chClient *database.ClickHouseClient) *ArchiveStore {
	return &ArchiveStore{DB: chClient}
}

// Archive inserts one event. Column order must match the analytics_events
// table schema.
func (s *ArchiveStore) Archive(ctx context.Context, event models.AnalyticsEvent) error {
	batch, err := s.DB.Conn.PrepareBatch(ctx, `
		INSERT INTO analytics_events (
			event_id, event_type, user_id, session_id, timestamp,
			platform, screen_size, language, country, event_data
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare archive insert: %w", err)
	}

	payload := []byte("{}")
	if len(event.EventData) > 0 {
		if payload, err = gojson.Marshal(event.EventData); err != nil {
			return fmt.Errorf("failed to encode event payload: %w", err)
		}
	}
	country := ""
	if event.Location != nil {
		country = event.Location.Country
	}

	if err := batch.Append(
		event.EventID,
		event.EventType,
		event.UserID,
		event.SessionID,
		event.Timestamp,
		event.Device.Platform,
		event.Device.ScreenSize,
		event.Device.Language,
		country,
		string(payload),
	); err != nil {
		return fmt.Errorf("failed to append event to archive batch: %w", err)
	}
	if err := batch.Send(); err != nil {
		return fmt.Errorf("failed to send archive batch: %w", err)
	}
	return nil
}
