package analytics

import (
	"fmt"
	"os"

	gojson "github.com/goccy/go-json"

	"quotepulse/api/models"
)

// Persistence saves and restores the retained event log. Implementations are
// best-effort: the store logs failures and carries on, it never retries and
// never surfaces them to callers.
type Persistence interface {
	Save(events []models.AnalyticsEvent) error
	Load() ([]models.AnalyticsEvent, error)
}

// snapshotRecord is the single namespaced record holding the capped,
// ordered event list.
type snapshotRecord struct {
	Version int                     `json:"version"`
	Events  []models.AnalyticsEvent `json:"events"`
}

// FileSnapshot persists the log as one JSON document on local disk.
type FileSnapshot struct {
	path string
}

func NewFileSnapshot(path string) *FileSnapshot {
	return &FileSnapshot{path: path}
}

func (f *FileSnapshot) Save(events []models.AnalyticsEvent) error {
	data, err := gojson.Marshal(snapshotRecord{Version: 1, Events: events})
	if err != nil {
		return fmt.Errorf("failed to encode analytics snapshot: %w", err)
	}
	if err := os.WriteFile(f.path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write analytics snapshot: %w", err)
	}
	return nil
}

// Load returns a nil slice when no snapshot exists yet. A snapshot that
// cannot be decoded is reported as an error; the store degrades it to an
// empty log.
func (f *FileSnapshot) Load() ([]models.AnalyticsEvent, error) {
	data, err := os.ReadFile(f.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read analytics snapshot: %w", err)
	}
	var rec snapshotRecord
	if err := gojson.Unmarshal(data, &rec); err != nil {
		return nil, fmt.Errorf("corrupted analytics snapshot: %w", err)
	}
	return rec.Events, nil
}
