package analytics

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"quotepulse/api/models"
)

func appEvent(userID, eventType string, ts time.Time, data map[string]any) models.AnalyticsEvent {
	e := models.AnalyticsEvent{
		EventID:   "e",
		UserID:    userID,
		EventType: eventType,
		EventData: data,
		Timestamp: ts,
	}
	if userID != "" {
		e.SessionID = "session-" + userID
	}
	return e
}

func TestAppOverviewCountsAndExplicitDurations(t *testing.T) {
	current := []models.AnalyticsEvent{
		appEvent("u1", models.EventQuoteView, testNow, map[string]any{"duration": 100}),
		appEvent("u1", models.EventQuoteShare, testNow, nil),
		appEvent("u2", models.EventQuoteFavorite, testNow, map[string]any{"duration": 200}),
		appEvent("u2", models.EventUserRegister, testNow, nil),
		appEvent("", models.EventSearch, testNow, nil), // anonymous, not a user
	}

	overview := buildAppOverview(current, nil)
	assert.Equal(t, 2, overview.TotalUsers)
	assert.Equal(t, 2, overview.TotalSessions)
	assert.Equal(t, 1, overview.NewUsers)
	assert.Equal(t, 1, overview.QuotesViewed)
	assert.Equal(t, 1, overview.QuotesShared)
	assert.Equal(t, 1, overview.QuotesFavorited)
	// Only the two explicit durations participate; no 300s substitution.
	assert.InDelta(t, 150, overview.AvgSessionDuration, 0.001)
	assert.Zero(t, overview.RetentionRate, "no prior window data means no retention figure")
}

func TestAppOverviewRetentionFromAdjacentWindows(t *testing.T) {
	prior := []models.AnalyticsEvent{
		appEvent("u1", models.EventQuoteView, testNow.AddDate(0, 0, -35), nil),
		appEvent("u2", models.EventQuoteView, testNow.AddDate(0, 0, -35), nil),
	}
	current := []models.AnalyticsEvent{
		appEvent("u1", models.EventQuoteView, testNow, nil),
		appEvent("u3", models.EventQuoteView, testNow, nil),
	}

	overview := buildAppOverview(current, prior)
	// u1 of {u1, u2} returned.
	assert.InDelta(t, 50, overview.RetentionRate, 0.001)
}

func TestAppPopularRanksAndGenuineGrowth(t *testing.T) {
	current := []models.AnalyticsEvent{
		appEvent("u1", models.EventQuoteView, testNow, map[string]any{"quoteId": "q1", "author": "Rumi"}),
		appEvent("u2", models.EventQuoteView, testNow, map[string]any{"quoteId": "q1", "author": "Rumi"}),
		appEvent("u1", models.EventQuoteView, testNow, map[string]any{"quoteId": "q2", "author": "Mark Twain"}),
		appEvent("u1", models.EventQuoteShare, testNow, map[string]any{"quoteId": "q1"}),
		appEvent("u1", models.EventCategorySelect, testNow, map[string]any{"category": "wisdom"}),
		appEvent("u2", models.EventCategorySelect, testNow, map[string]any{"category": "wisdom"}),
		appEvent("u2", models.EventCategorySelect, testNow, map[string]any{"category": "humor"}),
		appEvent("u1", models.EventSearch, testNow, map[string]any{"query": "hope"}),
	}
	prior := []models.AnalyticsEvent{
		appEvent("u1", models.EventCategorySelect, testNow.AddDate(0, 0, -31), map[string]any{"category": "wisdom"}),
	}

	popular := buildAppPopular(current, prior)

	require.Len(t, popular.TopQuotes, 2)
	assert.Equal(t, models.QuoteStat{QuoteID: "q1", Views: 2, Shares: 1}, popular.TopQuotes[0])
	assert.Equal(t, models.QuoteStat{QuoteID: "q2", Views: 1, Shares: 0}, popular.TopQuotes[1])

	require.Len(t, popular.TopCategories, 2)
	assert.Equal(t, "wisdom", popular.TopCategories[0].Name)
	assert.InDelta(t, 100, popular.TopCategories[0].Growth, 0.001, "2 vs 1 in the prior window")
	assert.Equal(t, "humor", popular.TopCategories[1].Name)
	assert.InDelta(t, 100, popular.TopCategories[1].Growth, 0.001, "new entries report 100")

	require.Len(t, popular.TopAuthors, 2)
	assert.Equal(t, "Rumi", popular.TopAuthors[0].Name)
	require.Len(t, popular.TopSearchTerms, 1)
	assert.Equal(t, "hope", popular.TopSearchTerms[0].Name)
}

func TestAppTrendsSeriesAscendingByDate(t *testing.T) {
	current := []models.AnalyticsEvent{
		appEvent("u1", models.EventQuoteView, testNow.AddDate(0, 0, -2), nil),
		appEvent("u2", models.EventQuoteView, testNow.AddDate(0, 0, -2), nil),
		appEvent("u1", models.EventQuoteCreate, testNow.AddDate(0, 0, -1), nil),
		appEvent("u1", models.EventQuoteView, testNow, nil),
	}

	trends := buildAppTrends(current, nil)

	require.Len(t, trends.DailyActiveUsers, 3)
	assert.Equal(t, 2, trends.DailyActiveUsers[0].Value)
	assert.Equal(t, 1, trends.DailyActiveUsers[1].Value)
	for i := 1; i < len(trends.DailyActiveUsers); i++ {
		assert.Less(t, trends.DailyActiveUsers[i-1].Date, trends.DailyActiveUsers[i].Date)
	}

	require.Len(t, trends.ContentCreation, 1)
	assert.Equal(t, testNow.AddDate(0, 0, -1).Format(dayFormat), trends.ContentCreation[0].Date)

	require.Len(t, trends.Engagement, 3)
	assert.Equal(t, 2, trends.Engagement[0].Value)
}

func TestAppGeographicFromEventLocations(t *testing.T) {
	loc := func(country string) *models.LocationData { return &models.LocationData{Country: country} }
	current := []models.AnalyticsEvent{
		{EventType: models.EventQuoteView, Timestamp: testNow, Location: loc("US")},
		{EventType: models.EventQuoteView, Timestamp: testNow, Location: loc("US")},
		{EventType: models.EventQuoteView, Timestamp: testNow, Location: loc("DE")},
		{EventType: models.EventQuoteView, Timestamp: testNow},
	}

	geo := buildAppGeographic(EventLocationProvider{}, current)
	require.True(t, geo.Resolved)
	require.Len(t, geo.Distribution, 2)
	assert.Equal(t, models.GeoCount{Country: "US", Count: 2, Percentage: 67}, geo.Distribution[0])
	assert.Equal(t, models.GeoCount{Country: "DE", Count: 1, Percentage: 33}, geo.Distribution[1])
}

func TestAppGeographicUnresolvedWithoutLocationData(t *testing.T) {
	geo := buildAppGeographic(EventLocationProvider{}, []models.AnalyticsEvent{
		{EventType: models.EventQuoteView, Timestamp: testNow},
	})
	assert.False(t, geo.Resolved)
	assert.Empty(t, geo.Distribution)
}
