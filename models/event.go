package models

import "time"

// Event types form a closed set; anything else is rejected at the ingest boundary.
const (
	EventQuoteView         = "quote_view"
	EventQuoteShare        = "quote_share"
	EventQuoteFavorite     = "quote_favorite"
	EventCategorySelect    = "category_select"
	EventSearch            = "search"
	EventUserLogin         = "user_login"
	EventUserRegister      = "user_register"
	EventCommunityJoin     = "community_join"
	EventQuoteCreate       = "quote_create"
	EventSessionVisibility = "session_visibility"
	EventSessionEnd        = "session_end"
)

var knownEventTypes = map[string]struct{}{
	EventQuoteView:         {},
	EventQuoteShare:        {},
	EventQuoteFavorite:     {},
	EventCategorySelect:    {},
	EventSearch:            {},
	EventUserLogin:         {},
	EventUserRegister:      {},
	EventCommunityJoin:     {},
	EventQuoteCreate:       {},
	EventSessionVisibility: {},
	EventSessionEnd:        {},
}

func IsValidEventType(eventType string) bool {
	_, ok := knownEventTypes[eventType]
	return ok
}

// DeviceInfo is a snapshot of the client taken at record time.
type DeviceInfo struct {
	Platform   string `json:"platform"`
	ScreenSize string `json:"screenSize,omitempty"`
	Language   string `json:"language,omitempty"`
}

// LocationData is whatever location context the client volunteered. Real
// IP-based resolution is an external integration and never happens here.
type LocationData struct {
	Country string `json:"country"`
	Region  string `json:"region,omitempty"`
	City    string `json:"city,omitempty"`
}

// AnalyticsEvent represents a single recorded user action. Events are
// immutable once appended; the payload is an open key-value bag whose shape
// varies by event type and is the system's sole extensibility point.
type AnalyticsEvent struct {
	EventID   string         `json:"eventId"`
	UserID    string         `json:"userId,omitempty"`
	EventType string         `json:"eventType"`
	EventData map[string]any `json:"eventData,omitempty"`
	Timestamp time.Time      `json:"timestamp"`
	SessionID string         `json:"sessionId"`
	Device    DeviceInfo     `json:"deviceInfo"`
	Location  *LocationData  `json:"locationData,omitempty"`
}

// StringField reads an optional string payload field.
func (e AnalyticsEvent) StringField(key string) (string, bool) {
	v, ok := e.EventData[key]
	if !ok {
		return "", false
	}
	s, ok := v.(string)
	if !ok || s == "" {
		return "", false
	}
	return s, true
}

// NumberField reads an optional numeric payload field. JSON decoding yields
// float64, but events built in-process may carry int values.
func (e AnalyticsEvent) NumberField(key string) (float64, bool) {
	v, ok := e.EventData[key]
	if !ok {
		return 0, false
	}
	switch n := v.(type) {
	case float64:
		return n, true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	default:
		return 0, false
	}
}
