package providers

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/sony/gobreaker"

	"covidboard/internal/epidemic"
)

// DefaultBaseURL is the public disease.sh COVID-19 API root.
const DefaultBaseURL = "https://disease.sh/v3/covid-19"

const country = "indonesia"

// vaccineDateLayout matches the vaccine timeline's date strings, which use
// the same month/day/2-digit-year format as the historical endpoint.
const vaccineDateLayout = "1/2/06"

// DiseaseShProvider implements epidemic.Source against the disease.sh API.
type DiseaseShProvider struct {
	name    string
	baseURL string
	httpCfg HTTPClientConfig
	circuit *gobreaker.CircuitBreaker
}

// NewDiseaseShProvider creates a provider with the default resilience
// settings: three retries with exponential backoff behind a circuit
// breaker.
func NewDiseaseShProvider(client *http.Client, baseURL string) *DiseaseShProvider {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	cb := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "diseasesh",
		MaxRequests: 5,
		Interval:    1 * time.Minute,
		Timeout:     2 * time.Minute,
	})

	return &DiseaseShProvider{
		name:    "disease.sh",
		baseURL: baseURL,
		httpCfg: HTTPClientConfig{
			Client: client,
			Backoff: BackoffConfig{
				MaxRetries:      3,
				InitialInterval: 500 * time.Millisecond,
				MaxInterval:     5 * time.Second,
			},
		},
		circuit: cb,
	}
}

func (p *DiseaseShProvider) Name() string {
	return p.name
}

// FetchCurrent loads the current national totals.
func (p *DiseaseShProvider) FetchCurrent(ctx context.Context) (epidemic.Snapshot, error) {
	var payload struct {
		Updated             int64   `json:"updated"`
		Cases               int64   `json:"cases"`
		Deaths              int64   `json:"deaths"`
		Recovered           int64   `json:"recovered"`
		Active              int64   `json:"active"`
		Critical            int64   `json:"critical"`
		Tests               int64   `json:"tests"`
		Population          int64   `json:"population"`
		CasesPerOneMillion  float64 `json:"casesPerOneMillion"`
		DeathsPerOneMillion float64 `json:"deathsPerOneMillion"`
	}

	url := fmt.Sprintf("%s/countries/%s", p.baseURL, country)
	if err := fetchJSON(ctx, p.httpCfg, p.circuit, url, &payload); err != nil {
		return epidemic.Snapshot{}, err
	}

	updated := time.Now().UTC()
	if payload.Updated > 0 {
		updated = time.UnixMilli(payload.Updated).UTC()
	}

	return epidemic.Snapshot{
		Cases:            payload.Cases,
		Deaths:           payload.Deaths,
		Recovered:        payload.Recovered,
		Active:           payload.Active,
		Critical:         payload.Critical,
		Tests:            payload.Tests,
		Population:       payload.Population,
		CasesPerMillion:  payload.CasesPerOneMillion,
		DeathsPerMillion: payload.DeathsPerOneMillion,
		UpdatedAt:        updated,
		IsFallback:       false,
	}, nil
}

// FetchHistory loads the full historical timeline. The API keys cumulative
// counts by "M/D/YY" date strings; rows are returned unordered and
// unvalidated, since BuildSeries owns parsing and sorting.
func (p *DiseaseShProvider) FetchHistory(ctx context.Context) ([]epidemic.RawObservation, error) {
	var payload struct {
		Timeline struct {
			Cases     map[string]int64 `json:"cases"`
			Deaths    map[string]int64 `json:"deaths"`
			Recovered map[string]int64 `json:"recovered"`
		} `json:"timeline"`
	}

	url := fmt.Sprintf("%s/historical/%s?lastdays=all", p.baseURL, country)
	if err := fetchJSON(ctx, p.httpCfg, p.circuit, url, &payload); err != nil {
		return nil, err
	}

	rows := make([]epidemic.RawObservation, 0, len(payload.Timeline.Cases))
	for date, cases := range payload.Timeline.Cases {
		rows = append(rows, epidemic.RawObservation{
			Date:      date,
			Cases:     cases,
			Deaths:    payload.Timeline.Deaths[date],
			Recovered: payload.Timeline.Recovered[date],
		})
	}

	return rows, nil
}

// FetchVaccinations loads the vaccination rollout timeline.
func (p *DiseaseShProvider) FetchVaccinations(ctx context.Context) ([]epidemic.VaccinationRecord, error) {
	var payload struct {
		Timeline []struct {
			Date  string `json:"date"`
			Total int64  `json:"total"`
			Daily int64  `json:"daily"`
		} `json:"timeline"`
	}

	url := fmt.Sprintf("%s/vaccine/coverage/countries/%s?lastdays=all", p.baseURL, country)
	if err := fetchJSON(ctx, p.httpCfg, p.circuit, url, &payload); err != nil {
		return nil, err
	}

	records := make([]epidemic.VaccinationRecord, 0, len(payload.Timeline))
	for _, item := range payload.Timeline {
		dt, err := time.Parse(vaccineDateLayout, item.Date)
		if err != nil {
			continue
		}
		records = append(records, epidemic.VaccinationRecord{
			Date:  dt.UTC(),
			Total: item.Total,
			Daily: item.Daily,
		})
	}

	return records, nil
}
