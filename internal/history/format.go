package history

import (
	"fmt"
	"math"
	"time"
)

// FormatDate renders a stored RFC3339 timestamp for display; unparseable
// input is returned unchanged.
func FormatDate(dateTaken string) string {
	t, err := time.Parse(time.RFC3339, dateTaken)
	if err != nil {
		return dateTaken
	}
	return t.Local().Format("Jan 2, 2006 15:04")
}

// FormatTimeSpent renders a minutes value for display.
func FormatTimeSpent(minutes float64) string {
	if minutes <= 0 {
		return "N/A"
	}
	if minutes < 1 {
		return "< 1 min"
	}
	if minutes < 60 {
		return fmt.Sprintf("%d min", int(math.Round(minutes)))
	}
	hours := int(minutes) / 60
	remaining := int(math.Round(math.Mod(minutes, 60)))
	return fmt.Sprintf("%dh %dm", hours, remaining)
}
