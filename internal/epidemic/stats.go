package epidemic

import (
	"math"
	"sort"
	"time"
)

// Stats holds descriptive statistics over one column. A zero Count means
// the column was empty or unknown; the other fields are then meaningless.
type Stats struct {
	Count  int     `json:"count"`
	Mean   float64 `json:"mean"`
	Std    float64 `json:"std"`
	Min    float64 `json:"min"`
	Max    float64 `json:"max"`
	Median float64 `json:"median"`
	Q1     float64 `json:"q1"`
	Q3     float64 `json:"q3"`
	Sum    float64 `json:"sum"`
}

// Describe computes count, mean, sample standard deviation, min, max,
// median, quartiles and sum. An empty input returns a zero-valued Stats,
// not an error.
func Describe(values []float64) Stats {
	n := len(values)
	if n == 0 {
		return Stats{}
	}

	sorted := make([]float64, n)
	copy(sorted, values)
	sort.Float64s(sorted)

	var sum float64
	for _, v := range sorted {
		sum += v
	}
	avg := sum / float64(n)

	var sqDiff float64
	for _, v := range sorted {
		d := v - avg
		sqDiff += d * d
	}
	std := 0.0
	if n > 1 {
		std = math.Sqrt(sqDiff / float64(n-1))
	}

	return Stats{
		Count:  n,
		Mean:   avg,
		Std:    std,
		Min:    sorted[0],
		Max:    sorted[n-1],
		Median: quantile(sorted, 0.5),
		Q1:     quantile(sorted, 0.25),
		Q3:     quantile(sorted, 0.75),
		Sum:    sum,
	}
}

// quantile linearly interpolates the q-th quantile of a sorted slice.
func quantile(sorted []float64, q float64) float64 {
	n := len(sorted)
	if n == 0 {
		return 0
	}
	if n == 1 {
		return sorted[0]
	}

	pos := q * float64(n-1)
	lo := int(math.Floor(pos))
	hi := lo + 1
	if hi >= n {
		return sorted[n-1]
	}
	frac := pos - float64(lo)
	return sorted[lo] + frac*(sorted[hi]-sorted[lo])
}

// PeakInfo locates the maximum of a column. A zero Date marks an empty
// series or unknown column.
type PeakInfo struct {
	Date  time.Time `json:"date"`
	Value float64   `json:"value"`
}

// Peak returns the date and value of the first maximum of the column.
func (s *Series) Peak(c Column) PeakInfo {
	values := s.Column(c)
	if len(values) == 0 {
		return PeakInfo{}
	}

	best := 0
	for i, v := range values {
		if v > values[best] {
			best = i
		}
	}

	return PeakInfo{
		Date:  s.obs[best].Date,
		Value: values[best],
	}
}
