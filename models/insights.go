package models

import "time"

// InsightStatus makes degraded results observable instead of silently hiding
// them. Insight calls never fail; when underlying data was incomplete the
// snapshot says so here.
type InsightStatus struct {
	Degraded bool     `json:"degraded"`
	Notes    []string `json:"notes,omitempty"`
}

type CategoryRank struct {
	Category   string `json:"category"`
	Count      int    `json:"count"`
	Percentage int    `json:"percentage"`
}

type AuthorRank struct {
	Author     string `json:"author"`
	Count      int    `json:"count"`
	Percentage int    `json:"percentage"`
}

type UserStats struct {
	TotalSessions      int      `json:"totalSessions"`
	QuotesViewed       int      `json:"quotesViewed"`
	FavoriteQuotes     int      `json:"favoriteQuotes"`
	QuotesShared       int      `json:"quotesShared"`
	CategoriesExplored []string `json:"categoriesExplored"`
	ActiveHours        []int    `json:"activeHours"`
	ActiveDays         []string `json:"activeDays"`
	AvgSessionDuration float64  `json:"avgSessionDuration"`
}

type PeakActivity struct {
	Hour int    `json:"hour"`
	Day  string `json:"day"`
}

// MoodPoint classifies one calendar day of activity by event volume.
type MoodPoint struct {
	Date   string `json:"date"`
	Mood   string `json:"mood"`
	Events int    `json:"events"`
}

type UserPreferences struct {
	FavoriteCategories   []CategoryRank `json:"favoriteCategories"`
	FavoriteAuthors      []AuthorRank   `json:"favoriteAuthors"`
	PeakActivity         PeakActivity   `json:"peakActivity"`
	PreferredQuoteLength string         `json:"preferredQuoteLength"`
	MoodTrend            []MoodPoint    `json:"moodTrend"`
}

type UserRecommendations struct {
	SuggestedCategories []string `json:"suggestedCategories"`
	SuggestedAuthors    []string `json:"suggestedAuthors"`
}

// UserInsights is a derived, immutable snapshot for one user. It is computed
// fresh on every call and never stored.
type UserInsights struct {
	UserID          string              `json:"userId"`
	GeneratedAt     time.Time           `json:"generatedAt"`
	TimeRange       string              `json:"timeRange"`
	Stats           UserStats           `json:"stats"`
	Preferences     UserPreferences     `json:"preferences"`
	Recommendations UserRecommendations `json:"recommendations"`
	Status          InsightStatus       `json:"status"`
}

type AppOverview struct {
	TotalUsers         int     `json:"totalUsers"`
	TotalSessions      int     `json:"totalSessions"`
	NewUsers           int     `json:"newUsers"`
	QuotesViewed       int     `json:"quotesViewed"`
	QuotesShared       int     `json:"quotesShared"`
	QuotesFavorited    int     `json:"quotesFavorited"`
	AvgSessionDuration float64 `json:"avgSessionDuration"`
	RetentionRate      float64 `json:"retentionRate"`
}

type QuoteStat struct {
	QuoteID string `json:"quoteId"`
	Views   int    `json:"views"`
	Shares  int    `json:"shares"`
}

// TrendItem pairs a ranked count with its period-over-period growth, in
// percent, against the prior adjacent window of equal length.
type TrendItem struct {
	Name   string  `json:"name"`
	Count  int     `json:"count"`
	Growth float64 `json:"growth"`
}

type AppPopular struct {
	TopQuotes      []QuoteStat `json:"topQuotes"`
	TopCategories  []TrendItem `json:"topCategories"`
	TopAuthors     []TrendItem `json:"topAuthors"`
	TopSearchTerms []TrendItem `json:"topSearchTerms"`
}

type SeriesPoint struct {
	Date  string `json:"date"`
	Value int    `json:"value"`
}

type AppTrends struct {
	DailyActiveUsers []SeriesPoint `json:"dailyActiveUsers"`
	Engagement       []SeriesPoint `json:"engagement"`
	ContentCreation  []SeriesPoint `json:"contentCreation"`
	CategoryGrowth   []TrendItem   `json:"categoryGrowth"`
}

type GeoCount struct {
	Country    string `json:"country"`
	Count      int    `json:"count"`
	Percentage int    `json:"percentage"`
}

// AppGeographic is fed by an external-data integration point; Resolved is
// false when no location could be attributed.
type AppGeographic struct {
	Distribution []GeoCount `json:"distribution"`
	Resolved     bool       `json:"resolved"`
}

// AppInsights is the aggregate report across all users, computed fresh on
// every call.
type AppInsights struct {
	GeneratedAt time.Time     `json:"generatedAt"`
	TimeRange   string        `json:"timeRange"`
	Overview    AppOverview   `json:"overview"`
	Popular     AppPopular    `json:"popular"`
	Trends      AppTrends     `json:"trends"`
	Geographic  AppGeographic `json:"geographic"`
	Status      InsightStatus `json:"status"`
}
