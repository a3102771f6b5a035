package helpers

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFormatCount(t *testing.T) {
	cases := []struct {
		in   int64
		want string
	}{
		{0, "0"},
		{950, "950"},
		{1000, "1k"},
		{1200, "1.2k"},
		{45600, "45.6k"},
		{3400000, "3.4M"},
		{2000000000, "2B"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, FormatCount(tc.in), "FormatCount(%d)", tc.in)
	}
}

func TestFormatRelative(t *testing.T) {
	now := time.Date(2026, 8, 31, 12, 0, 0, 0, time.UTC)

	assert.Equal(t, "", FormatRelative(time.Time{}, now))
	assert.Equal(t, "just now", FormatRelative(now.Add(-30*time.Second), now))
	assert.Equal(t, "5m ago", FormatRelative(now.Add(-5*time.Minute), now))
	assert.Equal(t, "3h ago", FormatRelative(now.Add(-3*time.Hour), now))
	assert.Equal(t, "2d ago", FormatRelative(now.Add(-49*time.Hour), now))
}

func TestBarPercent(t *testing.T) {
	assert.Equal(t, 0, BarPercent(0, 100))
	assert.Equal(t, 0, BarPercent(10, 0))
	assert.Equal(t, 50, BarPercent(50, 100))
	assert.Equal(t, 100, BarPercent(100, 100))
	// Tiny but non-zero counts stay visible.
	assert.Equal(t, 1, BarPercent(1, 10000))
}
