package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHaversineMiles(t *testing.T) {
	tests := []struct {
		name                   string
		lat1, lon1, lat2, lon2 float64
		expected               float64
		tolerance              float64
	}{
		{
			name: "same point",
			lat1: 40.7128, lon1: -74.0060,
			lat2: 40.7128, lon2: -74.0060,
			expected:  0,
			tolerance: 0.0001,
		},
		{
			name: "new york to philadelphia",
			lat1: 40.7128, lon1: -74.0060,
			lat2: 39.9526, lon2: -75.1652,
			expected:  80.5,
			tolerance: 1.5,
		},
		{
			name: "new york to los angeles",
			lat1: 40.7128, lon1: -74.0060,
			lat2: 34.0522, lon2: -118.2437,
			expected:  2445,
			tolerance: 10,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := HaversineMiles(tt.lat1, tt.lon1, tt.lat2, tt.lon2)
			assert.InDelta(t, tt.expected, d, tt.tolerance)
		})
	}
}

func TestHaversineMilesSymmetric(t *testing.T) {
	forward := HaversineMiles(40.7128, -74.0060, 41.8781, -87.6298)
	reverse := HaversineMiles(41.8781, -87.6298, 40.7128, -74.0060)
	assert.InDelta(t, forward, reverse, 0.0001)
}
