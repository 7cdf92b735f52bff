package timeutil

import (
	"fmt"
	"time"
)

// FormatClock formats a duration the way video players do, truncated to whole
// seconds. Hours are only included when non-zero.
//
//	FormatClock(65 * time.Second) // 1:05
//	FormatClock(time.Hour + 2*time.Minute + 3*time.Second) // 1:02:03
func FormatClock(duration time.Duration) string {
	if duration < 0 {
		duration = 0
	}

	seconds := int64(duration / time.Second)
	hours := seconds / 3600
	minutes := (seconds % 3600) / 60
	seconds = seconds % 60

	if hours > 0 {
		return fmt.Sprintf("%d:%02d:%02d", hours, minutes, seconds)
	}
	return fmt.Sprintf("%d:%02d", minutes, seconds)
}
