package epidemic

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDescribe(t *testing.T) {
	stats := Describe([]float64{1, 2, 3, 4, 5})

	assert.Equal(t, 5, stats.Count)
	assert.Equal(t, 3.0, stats.Mean)
	assert.InDelta(t, math.Sqrt(2.5), stats.Std, 1e-9)
	assert.Equal(t, 1.0, stats.Min)
	assert.Equal(t, 5.0, stats.Max)
	assert.Equal(t, 3.0, stats.Median)
	assert.Equal(t, 2.0, stats.Q1)
	assert.Equal(t, 4.0, stats.Q3)
	assert.Equal(t, 15.0, stats.Sum)
}

func TestDescribeQuantileInterpolation(t *testing.T) {
	stats := Describe([]float64{4, 1, 3, 2})

	assert.InDelta(t, 1.75, stats.Q1, 1e-9)
	assert.InDelta(t, 2.5, stats.Median, 1e-9)
	assert.InDelta(t, 3.25, stats.Q3, 1e-9)
}

func TestDescribeEdgeCases(t *testing.T) {
	// Empty input is a zero-valued result, not an error.
	assert.Equal(t, Stats{}, Describe(nil))

	// A single value has no sample deviation.
	one := Describe([]float64{42})
	assert.Equal(t, 1, one.Count)
	assert.Equal(t, 42.0, one.Mean)
	assert.Equal(t, 0.0, one.Std)
	assert.Equal(t, 42.0, one.Median)
}

func TestPeak(t *testing.T) {
	s, err := BuildSeries([]RawObservation{
		{Date: "1/22/20", Cases: 100},
		{Date: "1/23/20", Cases: 400},
		{Date: "1/24/20", Cases: 500},
		{Date: "1/25/20", Cases: 800},
		{Date: "1/26/20", Cases: 900},
	})
	require.NoError(t, err)

	peak := s.Peak(ColumnNewCases)
	assert.Equal(t, 300.0, peak.Value)
	assert.Equal(t, s.At(1).Date, peak.Date)
}

func TestPeakPicksFirstMaximum(t *testing.T) {
	s, err := BuildSeries([]RawObservation{
		{Date: "1/22/20", Cases: 0},
		{Date: "1/23/20", Cases: 200},
		{Date: "1/24/20", Cases: 400},
		{Date: "1/25/20", Cases: 600},
	})
	require.NoError(t, err)

	// New cases are 0, 200, 200, 200; the earliest maximum wins.
	peak := s.Peak(ColumnNewCases)
	assert.Equal(t, 200.0, peak.Value)
	assert.Equal(t, s.At(1).Date, peak.Date)
}

func TestPeakEmptyOrUnknown(t *testing.T) {
	empty := NewSeries(nil)
	assert.Equal(t, PeakInfo{}, empty.Peak(ColumnNewCases))

	s, err := BuildSeries([]RawObservation{{Date: "1/22/20", Cases: 10}})
	require.NoError(t, err)
	assert.Equal(t, PeakInfo{}, s.Peak(Column("bogus")))
}
