// Package analytics implements the behavioral-analytics engine: a bounded
// in-memory event log plus on-demand per-user and app-wide insight snapshots
// computed over sliding time windows.
package analytics

import "time"

// TimeRange is a named sliding window scoping which events are aggregated.
type TimeRange string

const (
	RangeWeek    TimeRange = "7d"
	RangeMonth   TimeRange = "30d"
	RangeQuarter TimeRange = "90d"
	RangeYear    TimeRange = "1y"
)

// DefaultRange is applied when a caller passes an unknown range; the result
// is still produced, flagged degraded.
const DefaultRange = RangeMonth

var rangeDays = map[TimeRange]int{
	RangeWeek:    7,
	RangeMonth:   30,
	RangeQuarter: 90,
	RangeYear:    365,
}

func (r TimeRange) Valid() bool {
	_, ok := rangeDays[r]
	return ok
}

// Cutoff returns the inclusive lower bound of the window ending at now.
func (r TimeRange) Cutoff(now time.Time) time.Time {
	days := rangeDays[r]
	return now.AddDate(0, 0, -days)
}

// Contains reports whether ts falls within the window [now-days, now]. The
// boundary is inclusive, so windows nest: anything within 7d is within
// 30d, 90d and 1y as well.
func (r TimeRange) Contains(ts, now time.Time) bool {
	return !ts.Before(r.Cutoff(now))
}

// ContainsPrior reports whether ts falls within the adjacent window of equal
// length immediately before the current one: [now-2*days, now-days).
// Period-over-period growth compares these two windows.
func (r TimeRange) ContainsPrior(ts, now time.Time) bool {
	cut := r.Cutoff(now)
	return ts.Before(cut) && !ts.Before(r.Cutoff(cut))
}

// IsWithinRange tests membership against the window ending at the current
// instant.
func IsWithinRange(ts time.Time, r TimeRange) bool {
	return r.Contains(ts, time.Now().UTC())
}
