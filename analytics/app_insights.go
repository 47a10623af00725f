package analytics

import (
	"sort"

	"quotepulse/api/models"
)

const topItemLimit = 10

// buildAppOverview computes totals and averages across all users for the
// current window. The prior adjacent window feeds the retention rate:
// distinct users active in both windows over distinct users in the prior
// one.
func buildAppOverview(current, prior []models.AnalyticsEvent) models.AppOverview {
	overview := models.AppOverview{
		TotalUsers:      len(distinctUsers(current)),
		TotalSessions:   distinctSessions(current),
		NewUsers:        countType(current, models.EventUserRegister),
		QuotesViewed:    countType(current, models.EventQuoteView),
		QuotesShared:    countType(current, models.EventQuoteShare),
		QuotesFavorited: countType(current, models.EventQuoteFavorite),
	}

	// Only events that explicitly carry a duration participate; no default
	// substitution here, unlike the per-user average.
	totalDuration, withDuration := 0.0, 0
	for _, e := range current {
		if d, ok := e.NumberField("duration"); ok {
			totalDuration += d
			withDuration++
		}
	}
	if withDuration > 0 {
		overview.AvgSessionDuration = totalDuration / float64(withDuration)
	}

	priorUsers := distinctUsers(prior)
	if len(priorUsers) > 0 {
		returning := 0
		for u := range distinctUsers(current) {
			if _, ok := priorUsers[u]; ok {
				returning++
			}
		}
		overview.RetentionRate = float64(returning) / float64(len(priorUsers)) * 100
	}
	return overview
}

// buildAppPopular ranks the top quotes, categories, authors and search terms
// in the current window. Growth figures are period-over-period deltas
// against the prior adjacent window.
func buildAppPopular(current, prior []models.AnalyticsEvent) models.AppPopular {
	views := newCounter[string]()
	shares := make(map[string]int)
	categories := newCounter[string]()
	authors := newCounter[string]()
	terms := newCounter[string]()
	for _, e := range current {
		switch e.EventType {
		case models.EventQuoteView:
			if id, ok := e.StringField("quoteId"); ok {
				views.add(id)
			}
			if author, ok := e.StringField("author"); ok {
				authors.add(author)
			}
		case models.EventQuoteShare:
			if id, ok := e.StringField("quoteId"); ok {
				shares[id]++
			}
		case models.EventCategorySelect:
			if category, ok := e.StringField("category"); ok {
				categories.add(category)
			}
		case models.EventSearch:
			if q, ok := e.StringField("query"); ok {
				terms.add(q)
			}
		}
	}

	priorCategories := payloadCounts(prior, models.EventCategorySelect, "category")
	priorAuthors := payloadCounts(prior, models.EventQuoteView, "author")
	priorTerms := payloadCounts(prior, models.EventSearch, "query")

	popular := models.AppPopular{
		TopQuotes:      make([]models.QuoteStat, 0, topItemLimit),
		TopCategories:  trendItems(categories, priorCategories),
		TopAuthors:     trendItems(authors, priorAuthors),
		TopSearchTerms: trendItems(terms, priorTerms),
	}
	for _, r := range views.top(topItemLimit) {
		popular.TopQuotes = append(popular.TopQuotes, models.QuoteStat{
			QuoteID: r.Key,
			Views:   r.Count,
			Shares:  shares[r.Key],
		})
	}
	return popular
}

// buildAppTrends derives every series from the event log itself: daily
// active users, events per day, quote creations per day, and category
// growth against the prior window.
func buildAppTrends(current, prior []models.AnalyticsEvent) models.AppTrends {
	usersByDay := make(map[string]map[string]struct{})
	eventsByDay := make(map[string]int)
	creationsByDay := make(map[string]int)
	for _, e := range current {
		day := e.Timestamp.Format(dayFormat)
		eventsByDay[day]++
		if e.EventType == models.EventQuoteCreate {
			creationsByDay[day]++
		}
		if e.UserID != "" {
			if usersByDay[day] == nil {
				usersByDay[day] = make(map[string]struct{})
			}
			usersByDay[day][e.UserID] = struct{}{}
		}
	}

	dau := make(map[string]int, len(usersByDay))
	for day, users := range usersByDay {
		dau[day] = len(users)
	}

	categories := newCounter[string]()
	for _, e := range current {
		if e.EventType == models.EventCategorySelect {
			if category, ok := e.StringField("category"); ok {
				categories.add(category)
			}
		}
	}
	return models.AppTrends{
		DailyActiveUsers: perDaySeries(dau),
		Engagement:       perDaySeries(eventsByDay),
		ContentCreation:  perDaySeries(creationsByDay),
		CategoryGrowth:   trendItems(categories, payloadCounts(prior, models.EventCategorySelect, "category")),
	}
}

// payloadCounts tallies a payload field across events of one type.
func payloadCounts(events []models.AnalyticsEvent, eventType, field string) map[string]int {
	counts := make(map[string]int)
	for _, e := range events {
		if e.EventType != eventType {
			continue
		}
		if v, ok := e.StringField(field); ok {
			counts[v]++
		}
	}
	return counts
}

func trendItems(c *counter[string], prior map[string]int) []models.TrendItem {
	items := make([]models.TrendItem, 0, topItemLimit)
	for _, r := range c.top(topItemLimit) {
		items = append(items, models.TrendItem{
			Name:   r.Key,
			Count:  r.Count,
			Growth: growthPct(r.Count, prior[r.Key]),
		})
	}
	return items
}

// buildAppGeographic ranks the distribution produced by the geo provider.
func buildAppGeographic(provider GeoProvider, current []models.AnalyticsEvent) models.AppGeographic {
	counts := provider.Distribution(current)
	if len(counts) == 0 {
		return models.AppGeographic{Distribution: []models.GeoCount{}, Resolved: false}
	}
	total := 0
	for _, n := range counts {
		total += n
	}
	countries := make([]string, 0, len(counts))
	for country := range counts {
		countries = append(countries, country)
	}
	sort.Slice(countries, func(i, j int) bool {
		if counts[countries[i]] != counts[countries[j]] {
			return counts[countries[i]] > counts[countries[j]]
		}
		return countries[i] < countries[j]
	})
	distribution := make([]models.GeoCount, 0, len(countries))
	for _, country := range countries {
		distribution = append(distribution, models.GeoCount{
			Country:    country,
			Count:      counts[country],
			Percentage: roundPct(counts[country], total),
		})
	}
	return models.AppGeographic{Distribution: distribution, Resolved: true}
}
