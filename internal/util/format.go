package util

import (
	"fmt"
	"time"
)

// FormatNumber formats a count with K/M suffix for readability.
// Examples: 500 -> "500", 1250 -> "1.2K", 1500000 -> "1.5M"
func FormatNumber(n int) string {
	if n < 1000 {
		return fmt.Sprintf("%d", n)
	}
	if n < 1000000 {
		return fmt.Sprintf("%.1fK", float64(n)/1000)
	}
	return fmt.Sprintf("%.1fM", float64(n)/1000000)
}

// FormatPercent renders a probability in [0,1] as a whole percentage.
func FormatPercent(p float64) string {
	return fmt.Sprintf("%.0f%%", p*100)
}

// FormatDateHuman formats a time as "Jan 2, 2006". The zero time renders
// as an empty string.
func FormatDateHuman(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format("Jan 2, 2006")
}
