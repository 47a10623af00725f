package analytics

import (
	"sort"

	"quotepulse/api/models"
)

// Missing duration payloads count as a five minute session in the per-user
// average. The app-wide average deliberately does not substitute.
const defaultSessionDuration = 300

const defaultPeakDay = "Monday"

const defaultQuoteLength = "medium"

// Mood classification thresholds on daily event volume.
const (
	moodPositiveAbove     = 10
	moodNegativeAtOrBelow = 5
)

// buildUserStats computes volume and activity metrics from one user's
// time-filtered events, in stored order.
func buildUserStats(events []models.AnalyticsEvent) models.UserStats {
	stats := models.UserStats{
		TotalSessions:  distinctSessions(events),
		QuotesViewed:   countType(events, models.EventQuoteView),
		FavoriteQuotes: countType(events, models.EventQuoteFavorite),
		QuotesShared:   countType(events, models.EventQuoteShare),
	}

	categories := newCounter[string]()
	hours := make(map[int]struct{})
	days := newCounter[string]()
	totalDuration := 0.0
	for _, e := range events {
		if e.EventType == models.EventCategorySelect {
			if category, ok := e.StringField("category"); ok {
				categories.add(category)
			}
		}
		hours[e.Timestamp.Hour()] = struct{}{}
		days.add(e.Timestamp.Weekday().String())
		if d, ok := e.NumberField("duration"); ok {
			totalDuration += d
		} else {
			totalDuration += defaultSessionDuration
		}
	}

	stats.CategoriesExplored = append([]string{}, categories.order...)
	stats.ActiveHours = make([]int, 0, len(hours))
	for h := range hours {
		stats.ActiveHours = append(stats.ActiveHours, h)
	}
	sort.Ints(stats.ActiveHours)
	stats.ActiveDays = append([]string{}, days.order...)
	if stats.TotalSessions > 0 {
		stats.AvgSessionDuration = totalDuration / float64(stats.TotalSessions)
	}
	return stats
}

// buildUserPreferences derives ranked categories/authors, peak activity,
// preferred quote length and the mood trend.
func buildUserPreferences(events []models.AnalyticsEvent) models.UserPreferences {
	categories := newCounter[string]()
	authors := newCounter[string]()
	peakHours := newCounter[int]()
	peakDays := newCounter[string]()
	lengths := newCounter[string]()
	for _, e := range events {
		switch e.EventType {
		case models.EventCategorySelect:
			if category, ok := e.StringField("category"); ok {
				categories.add(category)
			}
		case models.EventQuoteView:
			if author, ok := e.StringField("author"); ok {
				authors.add(author)
			}
			if length, ok := e.StringField("quoteLength"); ok {
				lengths.add(length)
			}
		}
		peakHours.add(e.Timestamp.Hour())
		peakDays.add(e.Timestamp.Weekday().String())
	}

	prefs := models.UserPreferences{
		FavoriteCategories:   make([]models.CategoryRank, 0),
		FavoriteAuthors:      make([]models.AuthorRank, 0),
		PreferredQuoteLength: lengths.mode(defaultQuoteLength),
		PeakActivity: models.PeakActivity{
			Hour: peakHours.mode(0),
			Day:  peakDays.mode(defaultPeakDay),
		},
		MoodTrend: buildMoodTrend(events),
	}
	for _, r := range categories.top(5) {
		prefs.FavoriteCategories = append(prefs.FavoriteCategories, models.CategoryRank{
			Category: r.Key, Count: r.Count, Percentage: r.Percentage,
		})
	}
	for _, r := range authors.top(5) {
		prefs.FavoriteAuthors = append(prefs.FavoriteAuthors, models.AuthorRank{
			Author: r.Key, Count: r.Count, Percentage: r.Percentage,
		})
	}
	return prefs
}

// buildMoodTrend classifies the most recent 7 distinct calendar days present
// in the filtered events, ascending by date with no duplicates.
func buildMoodTrend(events []models.AnalyticsEvent) []models.MoodPoint {
	byDay := make(map[string]int)
	for _, e := range events {
		byDay[e.Timestamp.Format(dayFormat)]++
	}
	dates := make([]string, 0, len(byDay))
	for d := range byDay {
		dates = append(dates, d)
	}
	sort.Strings(dates)
	if len(dates) > 7 {
		dates = dates[len(dates)-7:]
	}
	trend := make([]models.MoodPoint, 0, len(dates))
	for _, d := range dates {
		trend = append(trend, models.MoodPoint{
			Date:   d,
			Mood:   classifyMood(byDay[d]),
			Events: byDay[d],
		})
	}
	return trend
}

func classifyMood(eventCount int) string {
	switch {
	case eventCount > moodPositiveAbove:
		return "positive"
	case eventCount <= moodNegativeAtOrBelow:
		return "negative"
	default:
		return "neutral"
	}
}

// buildUserRecommendations suggests adjacent categories and authors based on
// the user's top preferences.
func buildUserRecommendations(prefs models.UserPreferences) models.UserRecommendations {
	categoryKeys := make([]string, 0, 3)
	for i, r := range prefs.FavoriteCategories {
		if i == 3 {
			break
		}
		categoryKeys = append(categoryKeys, r.Category)
	}
	authorKeys := make([]string, 0, 3)
	for i, r := range prefs.FavoriteAuthors {
		if i == 3 {
			break
		}
		authorKeys = append(authorKeys, r.Author)
	}
	return models.UserRecommendations{
		SuggestedCategories: suggestFrom(relatedCategories, categoryKeys, 5),
		SuggestedAuthors:    suggestFrom(relatedAuthors, authorKeys, 5),
	}
}
