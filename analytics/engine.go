package analytics

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"quotepulse/api/models"
)

// Archiver mirrors appended events to a durable sink outside the bounded
// log, best-effort. Failures are logged and dropped, never retried.
type Archiver interface {
	Archive(ctx context.Context, event models.AnalyticsEvent) error
}

// Engine is the analytics service: event ingestion plus on-demand insight
// snapshots. It is constructed once, injected where needed, and closed at
// shutdown; it holds the process's single event log writer.
type Engine struct {
	store   *EventStore
	archive Archiver
	geo     GeoProvider
	log     zerolog.Logger
	now     func() time.Time
}

// NewEngine wires the engine. archive may be nil when no durable sink is
// configured.
func NewEngine(store *EventStore, archive Archiver, logger zerolog.Logger) *Engine {
	return &Engine{
		store:   store,
		archive: archive,
		geo:     EventLocationProvider{},
		log:     logger,
		now:     time.Now,
	}
}

// SetGeoProvider swaps the geographic integration point.
func (e *Engine) SetGeoProvider(p GeoProvider) {
	if p != nil {
		e.geo = p
	}
}

// Close flushes a final snapshot of the retained log.
func (e *Engine) Close() {
	e.store.Flush()
}

// TrackContext carries the caller-side metadata stamped onto each event.
type TrackContext struct {
	UserID    string
	SessionID string
	Device    models.DeviceInfo
	Location  *models.LocationData
}

// Track records one user action. It never fails from the caller's point of
// view: unknown event types and persistence trouble are logged and the
// event is dropped, not queued or retried.
func (e *Engine) Track(ctx context.Context, eventType string, eventData map[string]any, tc TrackContext) {
	if !models.IsValidEventType(eventType) {
		e.log.Warn().Str("eventType", eventType).Msg("dropping event of unknown type")
		return
	}
	event := models.AnalyticsEvent{
		EventID:   uuid.New().String(),
		UserID:    tc.UserID,
		EventType: eventType,
		EventData: eventData,
		Timestamp: e.now().UTC(),
		SessionID: tc.SessionID,
		Device:    tc.Device,
		Location:  tc.Location,
	}
	e.store.Append(event)
	if e.archive != nil {
		if err := e.archive.Archive(ctx, event); err != nil {
			e.log.Warn().Err(err).Str("eventId", event.EventID).Msg("event archive write dropped")
		}
	}
}

// GenerateUserInsights computes a fresh behavioral profile for one user over
// the given window. It never fails; an unknown range falls back to 30d and
// the snapshot is flagged degraded.
func (e *Engine) GenerateUserInsights(userID string, timeRange TimeRange) models.UserInsights {
	now := e.now().UTC()
	status := e.baseStatus()
	if !timeRange.Valid() {
		status.Degraded = true
		status.Notes = append(status.Notes, fmt.Sprintf("unknown time range %q, using %s", timeRange, DefaultRange))
		timeRange = DefaultRange
	}

	var events []models.AnalyticsEvent
	for _, ev := range e.store.All() {
		if ev.UserID == userID && timeRange.Contains(ev.Timestamp, now) {
			events = append(events, ev)
		}
	}

	prefs := buildUserPreferences(events)
	return models.UserInsights{
		UserID:          userID,
		GeneratedAt:     now,
		TimeRange:       string(timeRange),
		Stats:           buildUserStats(events),
		Preferences:     prefs,
		Recommendations: buildUserRecommendations(prefs),
		Status:          status,
	}
}

// GenerateAppInsights computes the aggregate report across all users. The
// prior adjacent window of equal length feeds retention and growth figures.
func (e *Engine) GenerateAppInsights(timeRange TimeRange) models.AppInsights {
	now := e.now().UTC()
	status := e.baseStatus()
	if !timeRange.Valid() {
		status.Degraded = true
		status.Notes = append(status.Notes, fmt.Sprintf("unknown time range %q, using %s", timeRange, DefaultRange))
		timeRange = DefaultRange
	}

	var current, prior []models.AnalyticsEvent
	for _, ev := range e.store.All() {
		switch {
		case timeRange.Contains(ev.Timestamp, now):
			current = append(current, ev)
		case timeRange.ContainsPrior(ev.Timestamp, now):
			prior = append(prior, ev)
		}
	}

	geographic := buildAppGeographic(e.geo, current)
	if !geographic.Resolved && len(current) > 0 {
		status.Notes = append(status.Notes, "geographic distribution not computed: no location data")
	}
	return models.AppInsights{
		GeneratedAt: now,
		TimeRange:   string(timeRange),
		Overview:    buildAppOverview(current, prior),
		Popular:     buildAppPopular(current, prior),
		Trends:      buildAppTrends(current, prior),
		Geographic:  geographic,
		Status:      status,
	}
}

// ClearAnalyticsData erases one user's events, or everything when userID is
// empty. Used for data-deletion compliance.
func (e *Engine) ClearAnalyticsData(userID string) {
	e.store.Clear(userID)
	e.log.Info().Str("userId", userID).Msg("analytics data cleared")
}

// ExportAnalyticsData serializes the retained log, optionally scoped to one
// user, as CSV (fixed column order with a header row) or JSON.
func (e *Engine) ExportAnalyticsData(userID, format string) (string, error) {
	events := e.store.All()
	if userID != "" {
		scoped := events[:0]
		for _, ev := range events {
			if ev.UserID == userID {
				scoped = append(scoped, ev)
			}
		}
		events = scoped
	}
	switch format {
	case FormatCSV:
		return exportCSV(events)
	case FormatJSON:
		return exportJSON(events)
	default:
		return "", fmt.Errorf("unsupported export format %q", format)
	}
}

// EventCount reports the retained log length.
func (e *Engine) EventCount() int {
	return e.store.Len()
}

func (e *Engine) baseStatus() models.InsightStatus {
	if e.store.Degraded() {
		return models.InsightStatus{
			Degraded: true,
			Notes:    []string{"event log persistence degraded; insights may be based on incomplete data"},
		}
	}
	return models.InsightStatus{}
}
