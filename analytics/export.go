package analytics

import (
	"encoding/csv"
	"fmt"
	"strings"
	"time"

	gojson "github.com/goccy/go-json"

	"quotepulse/api/models"
)

const (
	FormatCSV  = "csv"
	FormatJSON = "json"
)

// csvColumns is the fixed export column order.
var csvColumns = []string{"timestamp", "eventType", "userId", "sessionId", "platform", "payload"}

// exportCSV renders events as one header row plus one row per event.
func exportCSV(events []models.AnalyticsEvent) (string, error) {
	var sb strings.Builder
	w := csv.NewWriter(&sb)
	if err := w.Write(csvColumns); err != nil {
		return "", fmt.Errorf("failed to write export header: %w", err)
	}
	for _, e := range events {
		payload := ""
		if len(e.EventData) > 0 {
			data, err := gojson.Marshal(e.EventData)
			if err != nil {
				return "", fmt.Errorf("failed to encode payload for event %s: %w", e.EventID, err)
			}
			payload = string(data)
		}
		row := []string{
			e.Timestamp.Format(time.RFC3339),
			e.EventType,
			e.UserID,
			e.SessionID,
			e.Device.Platform,
			payload,
		}
		if err := w.Write(row); err != nil {
			return "", fmt.Errorf("failed to write export row: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return "", fmt.Errorf("failed to flush export: %w", err)
	}
	return sb.String(), nil
}

func exportJSON(events []models.AnalyticsEvent) (string, error) {
	data, err := gojson.MarshalIndent(events, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to encode export: %w", err)
	}
	return string(data), nil
}
