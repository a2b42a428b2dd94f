package epidemic

import (
	"time"
)

// Column names a derivable numeric column of the daily time series.
type Column string

const (
	ColumnCases        Column = "cases"
	ColumnDeaths       Column = "deaths"
	ColumnRecovered    Column = "recovered"
	ColumnNewCases     Column = "new_cases"
	ColumnNewDeaths    Column = "new_deaths"
	ColumnNewRecovered Column = "new_recovered"
)

// Trend classifies the short-term direction of a series.
type Trend string

const (
	TrendRising  Trend = "rising"
	TrendFalling Trend = "falling"
	TrendStable  Trend = "stable"
)

// Observation is one day of the national time series. Cases, Deaths and
// Recovered are cumulative totals; the New* fields are per-day deltas
// clamped at zero so upstream back-corrections never show up as negative
// daily counts.
type Observation struct {
	Date         time.Time `json:"date"`
	Cases        int64     `json:"cases"`
	Deaths       int64     `json:"deaths"`
	Recovered    int64     `json:"recovered"`
	NewCases     int64     `json:"newCases"`
	NewDeaths    int64     `json:"newDeaths"`
	NewRecovered int64     `json:"newRecovered"`
}

// Snapshot holds the current national totals. IsFallback marks totals that
// did not come live from the data source; callers must surface that to end
// users.
type Snapshot struct {
	Cases            int64     `json:"cases"`
	Deaths           int64     `json:"deaths"`
	Recovered        int64     `json:"recovered"`
	Active           int64     `json:"active"`
	Critical         int64     `json:"critical"`
	Tests            int64     `json:"tests"`
	Population       int64     `json:"population"`
	CasesPerMillion  float64   `json:"casesPerMillion"`
	DeathsPerMillion float64   `json:"deathsPerMillion"`
	UpdatedAt        time.Time `json:"updatedAt"`
	IsFallback       bool      `json:"isFallback"`
}

// ProvinceRow is one province of the simulated geographic breakdown. No
// public per-province source exists, so these rows are always synthetic;
// the Simulated flag on ProvinceReport must never be dropped.
type ProvinceRow struct {
	Province     string  `json:"province"`
	Cases        int64   `json:"cases"`
	Deaths       int64   `json:"deaths"`
	Recovered    int64   `json:"recovered"`
	Active       int64   `json:"active"`
	Population   int64   `json:"population"`
	CasesPer100K float64 `json:"casesPer100k"`
	Lat          float64 `json:"lat"`
	Lon          float64 `json:"lon"`
}

// VaccinationRecord is one day of the vaccination timeline.
type VaccinationRecord struct {
	Date  time.Time `json:"date"`
	Total int64     `json:"total"`
	Daily int64     `json:"daily"`
}

// HistoryResult is the outcome of loading the historical series. Fallback
// is true when the series came from the seeded generator instead of the
// live source.
type HistoryResult struct {
	Series   *Series `json:"-"`
	Fallback bool    `json:"fallback"`
}

// ProvinceReport carries the simulated province breakdown together with the
// national total it was distributed from.
type ProvinceReport struct {
	Rows       []ProvinceRow `json:"rows"`
	TotalCases int64         `json:"totalCases"`
	Simulated  bool          `json:"simulated"`
}

// VaccinationResult is the outcome of loading the vaccination timeline.
type VaccinationResult struct {
	Records  []VaccinationRecord `json:"records"`
	Fallback bool                `json:"fallback"`
}
