package analytics

import (
	"math"
	"sort"

	"quotepulse/api/models"
)

// counter tallies occurrences while remembering first-seen order, which is
// the documented tie-break for mode and ranking: when counts are equal, the
// value encountered first in stored event order wins.
type counter[K comparable] struct {
	counts map[K]int
	order  []K
	total  int
}

func newCounter[K comparable]() *counter[K] {
	return &counter[K]{counts: make(map[K]int)}
}

func (c *counter[K]) add(key K) {
	if _, seen := c.counts[key]; !seen {
		c.order = append(c.order, key)
	}
	c.counts[key]++
	c.total++
}

// mode returns the most frequent key, or def when nothing was counted.
func (c *counter[K]) mode(def K) K {
	best := def
	bestCount := 0
	for _, key := range c.order {
		if c.counts[key] > bestCount {
			best = key
			bestCount = c.counts[key]
		}
	}
	return best
}

type ranked[K comparable] struct {
	Key        K
	Count      int
	Percentage int
}

// top returns up to n keys by count descending. Percentages are of the
// group total, rounded; an empty counter yields an empty slice.
func (c *counter[K]) top(n int) []ranked[K] {
	if c.total == 0 {
		return nil
	}
	firstSeen := make(map[K]int, len(c.order))
	for i, key := range c.order {
		firstSeen[key] = i
	}
	keys := make([]K, len(c.order))
	copy(keys, c.order)
	sort.SliceStable(keys, func(i, j int) bool {
		if c.counts[keys[i]] != c.counts[keys[j]] {
			return c.counts[keys[i]] > c.counts[keys[j]]
		}
		return firstSeen[keys[i]] < firstSeen[keys[j]]
	})
	if len(keys) > n {
		keys = keys[:n]
	}
	out := make([]ranked[K], 0, len(keys))
	for _, key := range keys {
		out = append(out, ranked[K]{
			Key:        key,
			Count:      c.counts[key],
			Percentage: roundPct(c.counts[key], c.total),
		})
	}
	return out
}

func roundPct(count, total int) int {
	if total == 0 {
		return 0
	}
	return int(math.Round(float64(count) / float64(total) * 100))
}

// growthPct is the period-over-period delta in percent. A prior count of
// zero reports 100 when anything happened this period, otherwise 0.
func growthPct(current, prior int) float64 {
	if prior == 0 {
		if current > 0 {
			return 100
		}
		return 0
	}
	return float64(current-prior) / float64(prior) * 100
}

// distinctSessions counts unique session ids across events.
func distinctSessions(events []models.AnalyticsEvent) int {
	seen := make(map[string]struct{})
	for _, e := range events {
		if e.SessionID != "" {
			seen[e.SessionID] = struct{}{}
		}
	}
	return len(seen)
}

// distinctUsers counts unique non-empty user ids across events.
func distinctUsers(events []models.AnalyticsEvent) map[string]struct{} {
	seen := make(map[string]struct{})
	for _, e := range events {
		if e.UserID != "" {
			seen[e.UserID] = struct{}{}
		}
	}
	return seen
}

func countType(events []models.AnalyticsEvent, eventType string) int {
	n := 0
	for _, e := range events {
		if e.EventType == eventType {
			n++
		}
	}
	return n
}

const dayFormat = "2006-01-02"

// perDaySeries turns a date-keyed tally into an ascending series.
func perDaySeries(byDay map[string]int) []models.SeriesPoint {
	dates := make([]string, 0, len(byDay))
	for d := range byDay {
		dates = append(dates, d)
	}
	sort.Strings(dates)
	series := make([]models.SeriesPoint, 0, len(dates))
	for _, d := range dates {
		series = append(series, models.SeriesPoint{Date: d, Value: byDay[d]})
	}
	return series
}
