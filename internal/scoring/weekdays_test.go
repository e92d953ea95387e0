package scoring

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDistinctWeekdays(t *testing.T) {
	ny, err := time.LoadLocation("America/New_York")
	assert.NoError(t, err)

	tests := []struct {
		name     string
		start    time.Time
		end      time.Time
		expected []string
	}{
		{
			name:     "single day",
			start:    time.Date(2025, 4, 26, 18, 0, 0, 0, ny),
			end:      time.Date(2025, 4, 26, 21, 0, 0, 0, ny),
			expected: []string{"Saturday"},
		},
		{
			name:     "friday through sunday",
			start:    time.Date(2025, 9, 12, 10, 0, 0, 0, ny),
			end:      time.Date(2025, 9, 14, 17, 0, 0, 0, ny),
			expected: []string{"Friday", "Saturday", "Sunday"},
		},
		{
			name:     "full week collapses to seven distinct days",
			start:    time.Date(2025, 6, 1, 0, 0, 0, 0, ny),
			end:      time.Date(2025, 6, 14, 0, 0, 0, 0, ny),
			expected: []string{"Sunday", "Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday"},
		},
		{
			name:     "end before start",
			start:    time.Date(2025, 6, 2, 0, 0, 0, 0, ny),
			end:      time.Date(2025, 6, 1, 0, 0, 0, 0, ny),
			expected: nil,
		},
		{
			name:     "same calendar day different times",
			start:    time.Date(2025, 6, 2, 9, 0, 0, 0, ny),
			end:      time.Date(2025, 6, 2, 23, 59, 0, 0, ny),
			expected: []string{"Monday"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, DistinctWeekdays(tt.start, tt.end))
		})
	}
}

func TestDistinctWeekdaysCapsRunawayRanges(t *testing.T) {
	start := time.Date(2000, 1, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2100, 1, 1, 0, 0, 0, 0, time.UTC)

	days := DistinctWeekdays(start, end)
	assert.Len(t, days, 7)
}
