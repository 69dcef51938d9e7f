package domain

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestReplyRate(t *testing.T) {
	tests := []struct {
		name      string
		replies   int64
		contacted int64
		expected  float64
	}{
		{"zero contacted", 5, 0, 0},
		{"negative contacted", 5, -3, 0},
		{"no replies", 0, 100, 0},
		{"simple", 25, 1000, 2.5},
		{"rounded to two decimals", 1, 3, 33.33},
		{"rounded up", 2, 3, 66.67},
		{"everyone replied", 10, 10, 100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ReplyRate(tt.replies, tt.contacted)
			assert.Equal(t, tt.expected, got)
			assert.False(t, math.IsNaN(got))
			assert.GreaterOrEqual(t, got, 0.0)
		})
	}
}

func TestPositiveReplyRate(t *testing.T) {
	assert.Equal(t, 0.0, PositiveReplyRate(3, 0))
	assert.Equal(t, 0.0, PositiveReplyRate(-1, 10))
	assert.Equal(t, 12.5, PositiveReplyRate(1, 8))
	assert.Equal(t, 14.29, PositiveReplyRate(1, 7))
}

func TestRound(t *testing.T) {
	assert.Equal(t, 1.2, Round(1.24, 1))
	assert.Equal(t, 1.3, Round(1.25, 1))
	assert.Equal(t, 0.0, Round(math.NaN(), 2))
	assert.Equal(t, 0.0, Round(math.Inf(1), 2))
}

func TestAutoReplyRatio(t *testing.T) {
	assert.Equal(t, "0:0", AutoReplyRatio(0, 0))
	assert.Equal(t, "0:0", AutoReplyRatio(5, 5))
	assert.Equal(t, "0.0:1", AutoReplyRatio(0, 10))
	assert.Equal(t, "1.0:1", AutoReplyRatio(5, 10))
	assert.Equal(t, "0.5:1", AutoReplyRatio(2, 6))
}
