package epidemic

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"covidboard/internal/store"
)

// Service sits between the HTTP layer and the data source. Every load
// returns a result carrying an explicit fallback flag instead of an error:
// when the source fails or delivers nothing usable, the service logs the
// cause and substitutes the seeded simulation, so handlers always have
// something to render.
type Service struct {
	source Source
	bucket time.Duration

	history      *store.Cache[HistoryResult]
	summary      *store.Cache[Snapshot]
	vaccinations *store.Cache[VaccinationResult]

	log zerolog.Logger
}

// NewService creates a Service caching results for cacheMaxAge per
// (source, time-bucket) key.
func NewService(source Source, cacheMaxAge time.Duration, log zerolog.Logger) *Service {
	return &Service{
		source:       source,
		bucket:       cacheMaxAge,
		history:      store.NewCache[HistoryResult](cacheMaxAge),
		summary:      store.NewCache[Snapshot](cacheMaxAge),
		vaccinations: store.NewCache[VaccinationResult](cacheMaxAge),
		log:          log,
	}
}

func (s *Service) cacheKey(kind string) string {
	return store.BucketKey(s.source.Name()+"/"+kind, time.Now(), s.bucket)
}

// Summary returns the current national totals, falling back to the last
// known snapshot when the source is unavailable.
func (s *Service) Summary(ctx context.Context) Snapshot {
	key := s.cacheKey("summary")
	if snap, ok := s.summary.Get(key); ok {
		return snap
	}

	snap, err := s.source.FetchCurrent(ctx)
	if err != nil {
		s.log.Warn().Err(err).Str("source", s.source.Name()).
			Msg("current totals unavailable, using fallback snapshot")
		snap = FallbackSnapshot()
	}

	s.summary.Put(key, snap)
	return snap
}

// History returns the historical daily series, built from the source or,
// when the source fails or yields no valid rows, from the seeded sample
// generator.
func (s *Service) History(ctx context.Context) HistoryResult {
	key := s.cacheKey("history")
	if res, ok := s.history.Get(key); ok {
		return res
	}

	res := s.loadHistory(ctx)
	s.history.Put(key, res)
	return res
}

func (s *Service) loadHistory(ctx context.Context) HistoryResult {
	raw, err := s.source.FetchHistory(ctx)
	if err != nil {
		s.log.Warn().Err(err).Str("source", s.source.Name()).
			Msg("historical data unavailable, using sample series")
		return HistoryResult{Series: SampleHistory(), Fallback: true}
	}

	series, err := BuildSeries(raw)
	if err != nil {
		s.log.Warn().Err(err).Int("raw_rows", len(raw)).
			Msg("no usable historical rows, using sample series")
		return HistoryResult{Series: SampleHistory(), Fallback: true}
	}

	s.log.Debug().Int("rows", series.Len()).Msg("historical series loaded")
	return HistoryResult{Series: series, Fallback: false}
}

// Provinces returns the simulated per-province breakdown, distributed from
// the current national total. The report is always marked simulated: no
// real per-province source exists.
func (s *Service) Provinces(ctx context.Context) ProvinceReport {
	snap := s.Summary(ctx)
	return ProvinceReport{
		Rows:       SimulateProvinces(snap.Cases),
		TotalCases: snap.Cases,
		Simulated:  true,
	}
}

// Vaccinations returns the vaccination timeline with the same fallback
// contract as History.
func (s *Service) Vaccinations(ctx context.Context) VaccinationResult {
	key := s.cacheKey("vaccinations")
	if res, ok := s.vaccinations.Get(key); ok {
		return res
	}

	records, err := s.source.FetchVaccinations(ctx)
	if err != nil || len(records) == 0 {
		if err != nil {
			s.log.Warn().Err(err).Str("source", s.source.Name()).
				Msg("vaccination data unavailable, using sample timeline")
		}
		res := VaccinationResult{Records: SampleVaccinations(), Fallback: true}
		s.vaccinations.Put(key, res)
		return res
	}

	res := VaccinationResult{Records: records, Fallback: false}
	s.vaccinations.Put(key, res)
	return res
}

// Refresh warms the caches; the scheduler calls this so request paths
// mostly avoid the network.
func (s *Service) Refresh(ctx context.Context) {
	snap := s.Summary(ctx)
	hist := s.History(ctx)
	s.log.Info().
		Bool("summary_fallback", snap.IsFallback).
		Bool("history_fallback", hist.Fallback).
		Int("history_rows", hist.Series.Len()).
		Msg("data refresh complete")
}
