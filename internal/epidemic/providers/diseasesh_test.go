package providers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/sony/gobreaker"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"covidboard/internal/epidemic"
)

func newTestBreaker() *gobreaker.CircuitBreaker {
	return gobreaker.NewCircuitBreaker(gobreaker.Settings{Name: "test"})
}

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	mux := http.NewServeMux()
	mux.HandleFunc("/countries/indonesia", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"updated": 1684000000000,
			"cases": 6829221, "deaths": 162063, "recovered": 6647104,
			"active": 20054, "critical": 3, "tests": 114158919,
			"population": 279134505,
			"casesPerOneMillion": 24466, "deathsPerOneMillion": 581
		}`))
	})
	mux.HandleFunc("/historical/indonesia", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"timeline": {
				"cases":     {"3/2/20": 2, "3/3/20": 2, "3/4/20": 6},
				"deaths":    {"3/2/20": 0, "3/3/20": 0, "3/4/20": 1},
				"recovered": {"3/2/20": 0, "3/3/20": 1, "3/4/20": 1}
			}
		}`))
	})
	mux.HandleFunc("/vaccine/coverage/countries/indonesia", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"timeline": [
				{"date": "1/13/21", "total": 0, "daily": 0},
				{"date": "1/14/21", "total": 50000, "daily": 50000},
				{"date": "bogus", "total": 1, "daily": 1}
			]
		}`))
	})

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func TestFetchCurrent(t *testing.T) {
	srv := newTestServer(t)
	p := NewDiseaseShProvider(srv.Client(), srv.URL)

	snap, err := p.FetchCurrent(context.Background())
	require.NoError(t, err)

	assert.Equal(t, int64(6829221), snap.Cases)
	assert.Equal(t, int64(162063), snap.Deaths)
	assert.Equal(t, int64(20054), snap.Active)
	assert.Equal(t, 24466.0, snap.CasesPerMillion)
	assert.False(t, snap.IsFallback, "live data must not carry the fallback flag")
	assert.Equal(t, time.UnixMilli(1684000000000).UTC(), snap.UpdatedAt)
}

func TestFetchHistoryFeedsSeries(t *testing.T) {
	srv := newTestServer(t)
	p := NewDiseaseShProvider(srv.Client(), srv.URL)

	rows, err := p.FetchHistory(context.Background())
	require.NoError(t, err)
	require.Len(t, rows, 3)

	series, err := epidemic.BuildSeries(rows)
	require.NoError(t, err)
	require.Equal(t, 3, series.Len())

	last, _ := series.Last()
	assert.Equal(t, int64(6), last.Cases)
	assert.Equal(t, int64(4), last.NewCases)
	assert.Equal(t, int64(1), last.NewDeaths)
}

func TestFetchVaccinationsDropsBadDates(t *testing.T) {
	srv := newTestServer(t)
	p := NewDiseaseShProvider(srv.Client(), srv.URL)

	records, err := p.FetchVaccinations(context.Background())
	require.NoError(t, err)
	require.Len(t, records, 2)

	assert.Equal(t, time.Date(2021, 1, 13, 0, 0, 0, 0, time.UTC), records[0].Date)
	assert.Equal(t, int64(50000), records[1].Total)
}

func TestFetchErrorsPropagate(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	t.Cleanup(srv.Close)

	p := &DiseaseShProvider{
		name:    "disease.sh",
		baseURL: srv.URL,
		httpCfg: HTTPClientConfig{
			Client: srv.Client(),
			Backoff: BackoffConfig{
				MaxRetries:      0,
				InitialInterval: time.Millisecond,
			},
		},
		circuit: newTestBreaker(),
	}

	_, err := p.FetchCurrent(context.Background())
	assert.Error(t, err)

	_, err = p.FetchHistory(context.Background())
	assert.Error(t, err)
}
