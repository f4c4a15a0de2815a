package ui

import (
	"fmt"
	"time"
)

// RelativeTime renders how long ago t was, relative to now, in coarse
// human buckets: "just now", "N min ago", "1 hour ago", "N hours ago",
// "yesterday", "N days ago", "N months ago". Timestamps in the future
// render as "just now".
func RelativeTime(t, now time.Time) string {
	diff := now.Sub(t)
	if diff < 0 {
		diff = 0
	}

	days := int(diff.Hours() / 24)
	// Seconds within the final partial day.
	secs := int(diff.Seconds()) - days*86400

	switch {
	case days > 30:
		return fmt.Sprintf("%d months ago", days/30)
	case days > 1:
		return fmt.Sprintf("%d days ago", days)
	case days == 1:
		return "yesterday"
	case secs > 3600:
		if hours := secs / 3600; hours > 1 {
			return fmt.Sprintf("%d hours ago", hours)
		}
		return "1 hour ago"
	case secs > 60:
		return fmt.Sprintf("%d min ago", secs/60)
	default:
		return "just now"
	}
}
