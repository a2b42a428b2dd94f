package epidemic

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSampleHistoryShape(t *testing.T) {
	s := SampleHistory()
	require.Equal(t, 365, s.Len())

	first, ok := s.First()
	require.True(t, ok)
	assert.Equal(t, time.Date(2020, time.March, 1, 0, 0, 0, 0, time.UTC), first.Date)

	obs := s.Observations()
	for i, o := range obs {
		assert.GreaterOrEqual(t, o.NewCases, int64(1), "daily cases are clipped to at least 1")
		if i > 0 {
			assert.True(t, o.Date.After(obs[i-1].Date))
			assert.GreaterOrEqual(t, o.Cases, obs[i-1].Cases, "cumulative cases never decrease")
		}
	}
}

func TestSampleHistoryIsDeterministic(t *testing.T) {
	a := SampleHistory()
	b := SampleHistory()

	// Reseeding identically reproduces the series byte for byte.
	assert.Equal(t, a.Observations(), b.Observations())

	first, _ := a.First()
	again, _ := b.First()
	assert.Equal(t, first, again)
}

func TestSimulateProvinces(t *testing.T) {
	rows := SimulateProvinces(6_800_000)
	require.Len(t, rows, 34)

	var total int64
	for _, r := range rows {
		total += r.Cases
		assert.Equal(t, maxInt64(0, r.Cases-r.Deaths-r.Recovered), r.Active,
			"%s: active must equal max(0, cases-deaths-recovered)", r.Province)
		assert.Greater(t, r.Population, int64(0))
		assert.NotZero(t, r.Lat)
		assert.NotZero(t, r.Lon)
	}
	assert.Greater(t, total, int64(0))

	// Sorted by cases, descending.
	for i := 1; i < len(rows); i++ {
		assert.GreaterOrEqual(t, rows[i-1].Cases, rows[i].Cases)
	}
}

func TestSimulateProvincesIsDeterministic(t *testing.T) {
	assert.Equal(t, SimulateProvinces(1_000_000), SimulateProvinces(1_000_000))
}

func TestSampleVaccinations(t *testing.T) {
	records := SampleVaccinations()
	require.Len(t, records, 730)

	assert.Equal(t, time.Date(2021, time.January, 13, 0, 0, 0, 0, time.UTC), records[0].Date)

	for i, r := range records {
		assert.GreaterOrEqual(t, r.Daily, int64(0))
		if i > 0 {
			assert.GreaterOrEqual(t, r.Total, records[i-1].Total)
		}
	}

	assert.Equal(t, SampleVaccinations(), records)
}

func TestFallbackSnapshotIsFlagged(t *testing.T) {
	snap := FallbackSnapshot()
	assert.True(t, snap.IsFallback)
	assert.Greater(t, snap.Cases, int64(0))
	assert.Equal(t, snap.Cases-snap.Deaths-snap.Recovered, snap.Active)
}

func maxInt64(a, b int64) int64 {
	if a > b {
		return a
	}
	return b
}
