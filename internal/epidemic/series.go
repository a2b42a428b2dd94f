package epidemic

import (
	"errors"
	"sort"
	"time"
)

// ErrEmptyData is returned when ingestion produced zero valid observations.
// Callers recover by switching to the seeded sample generator.
var ErrEmptyData = errors.New("no valid observations in source data")

// rawDateLayout matches the source's month/day/2-digit-year date keys,
// e.g. "1/22/20".
const rawDateLayout = "1/2/06"

// RawObservation is one unvalidated row as delivered by the data source.
type RawObservation struct {
	Date      string
	Cases     int64
	Deaths    int64
	Recovered int64
}

// Series is an immutable, date-ordered daily time series. It is built once
// per load; filtering produces a new Series and never mutates in place, so
// concurrent readers need no locking.
type Series struct {
	obs []Observation
}

// BuildSeries parses, sorts and derives the daily series from raw source
// rows. Rows with unparsable dates are dropped silently: partial upstream
// data degrades gracefully instead of aborting the load. Returns
// ErrEmptyData when no row survives.
func BuildSeries(raw []RawObservation) (*Series, error) {
	obs := make([]Observation, 0, len(raw))
	for _, r := range raw {
		dt, err := time.Parse(rawDateLayout, r.Date)
		if err != nil {
			continue
		}
		obs = append(obs, Observation{
			Date:      dt.UTC(),
			Cases:     r.Cases,
			Deaths:    r.Deaths,
			Recovered: r.Recovered,
		})
	}

	if len(obs) == 0 {
		return nil, ErrEmptyData
	}

	sort.SliceStable(obs, func(i, j int) bool {
		return obs[i].Date.Before(obs[j].Date)
	})

	deriveDeltas(obs)

	return &Series{obs: obs}, nil
}

// NewSeries wraps already-derived observations, assumed sorted by date.
// Used by the sample generator, which produces its daily columns directly.
func NewSeries(obs []Observation) *Series {
	return &Series{obs: obs}
}

// deriveDeltas fills the New* columns as max(0, current-previous). The
// first row's deltas are 0: there is no prior value to diff against.
func deriveDeltas(obs []Observation) {
	for i := range obs {
		if i == 0 {
			continue
		}
		obs[i].NewCases = clampDelta(obs[i].Cases - obs[i-1].Cases)
		obs[i].NewDeaths = clampDelta(obs[i].Deaths - obs[i-1].Deaths)
		obs[i].NewRecovered = clampDelta(obs[i].Recovered - obs[i-1].Recovered)
	}
}

func clampDelta(d int64) int64 {
	if d < 0 {
		return 0
	}
	return d
}

// Len returns the number of observations.
func (s *Series) Len() int {
	return len(s.obs)
}

// Observations returns a copy of the rows so callers cannot mutate the
// series.
func (s *Series) Observations() []Observation {
	out := make([]Observation, len(s.obs))
	copy(out, s.obs)
	return out
}

// At returns the observation at index i.
func (s *Series) At(i int) Observation {
	return s.obs[i]
}

// First returns the earliest observation, or false on an empty series.
func (s *Series) First() (Observation, bool) {
	if len(s.obs) == 0 {
		return Observation{}, false
	}
	return s.obs[0], true
}

// Last returns the latest observation, or false on an empty series.
func (s *Series) Last() (Observation, bool) {
	if len(s.obs) == 0 {
		return Observation{}, false
	}
	return s.obs[len(s.obs)-1], true
}

// FilterByDateRange returns the inclusive sub-series between start and end.
// A nil bound means unbounded on that side. An empty result is a valid
// empty series, not an error.
func (s *Series) FilterByDateRange(start, end *time.Time) *Series {
	out := make([]Observation, 0, len(s.obs))
	for _, o := range s.obs {
		if start != nil && o.Date.Before(*start) {
			continue
		}
		if end != nil && o.Date.After(*end) {
			continue
		}
		out = append(out, o)
	}
	return &Series{obs: out}
}

// Column extracts a named column as float64 values, in date order. An
// unknown column yields nil; consumers treat that as an empty, non-fatal
// result.
func (s *Series) Column(c Column) []float64 {
	pick := columnGetter(c)
	if pick == nil {
		return nil
	}
	out := make([]float64, len(s.obs))
	for i, o := range s.obs {
		out[i] = float64(pick(o))
	}
	return out
}

func columnGetter(c Column) func(Observation) int64 {
	switch c {
	case ColumnCases:
		return func(o Observation) int64 { return o.Cases }
	case ColumnDeaths:
		return func(o Observation) int64 { return o.Deaths }
	case ColumnRecovered:
		return func(o Observation) int64 { return o.Recovered }
	case ColumnNewCases:
		return func(o Observation) int64 { return o.NewCases }
	case ColumnNewDeaths:
		return func(o Observation) int64 { return o.NewDeaths }
	case ColumnNewRecovered:
		return func(o Observation) int64 { return o.NewRecovered }
	default:
		return nil
	}
}
