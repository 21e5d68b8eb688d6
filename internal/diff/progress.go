package diff

import (
	"fmt"
	"time"
)

// ReverseComparison replaces the progress phrase when the result report is
// older than the source.
const ReverseComparison = "That’s the difference :)"

// ProgressText describes the time between two snapshots as
// "Progress in {d} day(s) {h} hour(s)". Sub-hour remainders are truncated.
func ProgressText(from, to time.Time) string {
	if from.IsZero() || to.IsZero() {
		return ""
	}
	if to.Before(from) {
		return ReverseComparison
	}
	return "Progress in " + span(to.Sub(from))
}

func span(d time.Duration) string {
	totalHours := int64(d / time.Hour)
	days := totalHours / 24
	hours := totalHours % 24

	switch {
	case days > 0 && hours > 0:
		return fmt.Sprintf("%d %s %d %s", days, plural(days, "day"), hours, plural(hours, "hour"))
	case days > 0:
		return fmt.Sprintf("%d %s", days, plural(days, "day"))
	default:
		return fmt.Sprintf("%d %s", hours, plural(hours, "hour"))
	}
}

func plural(n int64, word string) string {
	if n == 1 {
		return word
	}
	return word + "s"
}
