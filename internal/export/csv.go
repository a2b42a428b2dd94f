// Package export renders the daily series for download. The column order
// and headers are fixed; the values are the already-clamped, validated
// numbers from the series, so this layer does no computation of its own.
package export

import (
	"encoding/csv"
	"io"
	"strconv"

	"covidboard/internal/epidemic"
)

const exportDateLayout = "02/01/2006"

// historyHeader keeps the human-readable Indonesian headers of the
// original dashboard export.
var historyHeader = []string{
	"Tanggal",
	"Kasus Kumulatif",
	"Kematian Kumulatif",
	"Sembuh Kumulatif",
	"Kasus Baru",
	"Kematian Baru",
}

// WriteHistory writes the series as CSV: one row per day, dates formatted
// day/month/year.
func WriteHistory(w io.Writer, series *epidemic.Series) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(historyHeader); err != nil {
		return err
	}

	for _, o := range series.Observations() {
		record := []string{
			o.Date.Format(exportDateLayout),
			strconv.FormatInt(o.Cases, 10),
			strconv.FormatInt(o.Deaths, 10),
			strconv.FormatInt(o.Recovered, 10),
			strconv.FormatInt(o.NewCases, 10),
			strconv.FormatInt(o.NewDeaths, 10),
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}
