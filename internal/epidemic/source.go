package epidemic

import (
	"context"
)

// Source abstracts the external COVID data API. Implementations are
// expected to handle their own transport resilience (retries, circuit
// breaking); the service above them only decides between live data and the
// seeded simulation.
type Source interface {
	Name() string

	// FetchCurrent returns the current national totals.
	FetchCurrent(ctx context.Context) (Snapshot, error)

	// FetchHistory returns the raw historical rows, keyed by source-format
	// date strings. An empty result is valid and handled downstream.
	FetchHistory(ctx context.Context) ([]RawObservation, error)

	// FetchVaccinations returns the vaccination timeline.
	FetchVaccinations(ctx context.Context) ([]VaccinationRecord, error)
}
