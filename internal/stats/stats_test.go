package stats

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCategorize(t *testing.T) {
	tests := []struct {
		tag  string
		want Category
	}{
		{"cat", Broad},
		{"funny cat", Standard},
		{"funny cat video", LongTail},
		{"how to train a cat fast", LongTail},
		{"  spaced   out  ", Standard},
		{"tab\tseparated", Standard},
	}

	for _, tt := range tests {
		t.Run(tt.tag, func(t *testing.T) {
			assert.Equal(t, tt.want, Categorize(tt.tag))
		})
	}
}

func TestCompute(t *testing.T) {
	s := Compute([]string{"cat", "funny cat video", "how to train a cat fast"})

	assert.Equal(t, 1, s.Broad)
	assert.Equal(t, 0, s.Standard)
	assert.Equal(t, 2, s.LongTail)
	assert.Equal(t, 3, s.Count)

	s = Compute([]string{"cat", "funny cat", "funny cat video"})
	assert.Equal(t, 1, s.Broad)
	assert.Equal(t, 1, s.Standard)
	assert.Equal(t, 1, s.LongTail)
	assert.Equal(t, s.Count, s.Broad+s.Standard+s.LongTail)
}

func TestCompute_AverageLength(t *testing.T) {
	s := Compute([]string{"ab", "abcd"})

	assert.InDelta(t, 3.0, s.AverageLength, 1e-9)
	assert.Equal(t, "3.0 chars", s.FormatAverage())
}

func TestCompute_AverageCountsRunes(t *testing.T) {
	s := Compute([]string{"café", "日本"})

	assert.InDelta(t, 3.0, s.AverageLength, 1e-9)
}

func TestCompute_Empty(t *testing.T) {
	s := Compute(nil)

	assert.True(t, s.Empty())
	assert.Equal(t, Stats{}, s)
	assert.Equal(t, "0.0 chars", s.FormatAverage())
}

func TestSlices(t *testing.T) {
	s := Compute([]string{"a", "b", "c d", "e f g"})

	slices := s.Slices()
	require.Len(t, slices, 3)
	assert.Equal(t, Slice{Category: Broad, Name: "Broad", Value: 2, Color: "#ef4444"}, slices[0])
	assert.Equal(t, Slice{Category: Standard, Name: "Standard", Value: 1, Color: "#3b82f6"}, slices[1])
	assert.Equal(t, Slice{Category: LongTail, Name: "Long-tail", Value: 1, Color: "#10b981"}, slices[2])
	assert.InDelta(t, 50.0, slices[0].Percent(s.Count), 1e-9)
	assert.Zero(t, slices[0].Percent(0))
}
