package analytics

import "quotepulse/api/models"

// GeoProvider is the external-data integration point for geographic
// attribution. Real IP-based resolution lives outside this process; the
// default provider only reads the location snapshot already on events.
type GeoProvider interface {
	Distribution(events []models.AnalyticsEvent) map[string]int
}

// EventLocationProvider attributes events to the country the client
// volunteered at record time. Events without location data are skipped, and
// an all-skipped window leaves the geographic report unresolved.
type EventLocationProvider struct{}

func (EventLocationProvider) Distribution(events []models.AnalyticsEvent) map[string]int {
	counts := make(map[string]int)
	for _, e := range events {
		if e.Location != nil && e.Location.Country != "" {
			counts[e.Location.Country]++
		}
	}
	return counts
}
