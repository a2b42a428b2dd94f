package export

import (
	"bytes"
	"encoding/csv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"covidboard/internal/epidemic"
)

func TestWriteHistory(t *testing.T) {
	series, err := epidemic.BuildSeries([]epidemic.RawObservation{
		{Date: "1/22/20", Cases: 100, Deaths: 5, Recovered: 10},
		{Date: "1/23/20", Cases: 180, Deaths: 9, Recovered: 30},
	})
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, WriteHistory(&buf, series))

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 3)

	assert.Equal(t, []string{
		"Tanggal", "Kasus Kumulatif", "Kematian Kumulatif",
		"Sembuh Kumulatif", "Kasus Baru", "Kematian Baru",
	}, records[0])

	// Dates render day/month/year; deltas are the store's clamped values.
	assert.Equal(t, []string{"22/01/2020", "100", "5", "10", "0", "0"}, records[1])
	assert.Equal(t, []string{"23/01/2020", "180", "9", "30", "80", "4"}, records[2])
}

func TestWriteHistoryEmptySeries(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteHistory(&buf, epidemic.NewSeries(nil)))

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 1, "only the header remains for an empty range")
}
