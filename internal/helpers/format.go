package helpers

import (
	"fmt"
	"strings"
	"time"
)

// FormatCount renders a counter compactly for KPI tiles: 950 stays 950,
// 1200 becomes 1.2k, 3400000 becomes 3.4M.
func FormatCount(n int64) string {
	switch {
	case n >= 1_000_000_000:
		return trimZero(fmt.Sprintf("%.1f", float64(n)/1_000_000_000)) + "B"
	case n >= 1_000_000:
		return trimZero(fmt.Sprintf("%.1f", float64(n)/1_000_000)) + "M"
	case n >= 1_000:
		return trimZero(fmt.Sprintf("%.1f", float64(n)/1_000)) + "k"
	default:
		return fmt.Sprintf("%d", n)
	}
}

func trimZero(s string) string {
	return strings.TrimSuffix(s, ".0")
}

// FormatRelative renders a timestamp as a coarse relative age for the
// activity feed ("just now", "5m ago", "3h ago", "2d ago").
func FormatRelative(t time.Time, now time.Time) string {
	if t.IsZero() {
		return ""
	}
	d := now.Sub(t)
	switch {
	case d < time.Minute:
		return "just now"
	case d < time.Hour:
		return fmt.Sprintf("%dm ago", int(d.Minutes()))
	case d < 24*time.Hour:
		return fmt.Sprintf("%dh ago", int(d.Hours()))
	default:
		return fmt.Sprintf("%dd ago", int(d.Hours()/24))
	}
}

// BarPercent scales a count against the series maximum for chart bars.
// Returns 0 when the maximum is zero so empty days render as empty bars.
func BarPercent(count, max int64) int {
	if max <= 0 || count <= 0 {
		return 0
	}
	pct := int(count * 100 / max)
	if pct < 1 {
		pct = 1
	}
	return pct
}
