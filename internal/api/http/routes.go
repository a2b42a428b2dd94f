package httpapi

import (
	"bytes"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"covidboard/internal/epidemic"
	"covidboard/internal/export"
)

var validate = validator.New()

const queryDateLayout = "2006-01-02"

// RegisterRoutes wires the HTTP handlers into the Fiber app.
func RegisterRoutes(app *fiber.App, service *epidemic.Service) {
	v1 := app.Group("/api/v1/covid")

	v1.Get("/summary", func(c *fiber.Ctx) error {
		return c.JSON(service.Summary(c.Context()))
	})

	v1.Get("/history", func(c *fiber.Ctx) error {
		var req rangeQuery
		if err := req.bind(c); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		res := service.History(c.Context())
		series := res.Series.FilterByDateRange(req.From, req.To)

		return c.JSON(fiber.Map{
			"fallback": res.Fallback,
			"rows":     series.Observations(),
		})
	})

	v1.Get("/metrics", func(c *fiber.Ctx) error {
		var req metricsQuery
		if err := req.bind(c); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		snap := service.Summary(c.Context())
		hist := service.History(c.Context())
		series := hist.Series.FilterByDateRange(req.From, req.To)

		resp, err := buildMetrics(snap, series, req)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		resp.SummaryFallback = snap.IsFallback
		resp.HistoryFallback = hist.Fallback

		return c.JSON(resp)
	})

	v1.Get("/provinces", func(c *fiber.Ctx) error {
		return c.JSON(service.Provinces(c.Context()))
	})

	v1.Get("/vaccinations", func(c *fiber.Ctx) error {
		return c.JSON(service.Vaccinations(c.Context()))
	})

	v1.Get("/projection", func(c *fiber.Ctx) error {
		var req projectionQuery
		if err := req.bind(c); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		daily := epidemic.ProjectCases(req.Initial, req.Growth, req.Days)

		var total float64
		for _, v := range daily {
			total += v
		}

		resp := fiber.Map{
			"daily":     daily,
			"finalDay":  daily[len(daily)-1],
			"totalNew":  total,
			"days":      req.Days,
			"growthPct": req.Growth,
		}
		if dt, ok := epidemic.DoublingTimeFromGrowth(req.Growth); ok {
			resp["doublingTimeDays"] = dt
		}

		return c.JSON(resp)
	})

	v1.Get("/export.csv", func(c *fiber.Ctx) error {
		var req rangeQuery
		if err := req.bind(c); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		res := service.History(c.Context())
		series := res.Series.FilterByDateRange(req.From, req.To)

		var buf bytes.Buffer
		if err := export.WriteHistory(&buf, series); err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "failed to render csv")
		}

		filename := fmt.Sprintf("covid19_indonesia_%s.csv", time.Now().Format("20060102"))
		c.Set(fiber.HeaderContentType, "text/csv; charset=utf-8")
		c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+filename+`"`)
		// Fallback data is flagged in a header since CSV has no envelope.
		c.Set("X-Data-Fallback", strconv.FormatBool(res.Fallback))

		return c.Send(buf.Bytes())
	})
}

// metricsResponse bundles every derived metric the dashboard renders.
type metricsResponse struct {
	SummaryFallback bool `json:"summaryFallback"`
	HistoryFallback bool `json:"historyFallback"`
	Rows            int  `json:"rows"`

	CaseFatalityRate      float64 `json:"caseFatalityRate"`
	RecoveryRate          float64 `json:"recoveryRate"`
	ActiveRate            float64 `json:"activeRate"`
	R0                    float64 `json:"r0"`
	HerdImmunityThreshold float64 `json:"herdImmunityThreshold"`

	// DoublingTimeDays is omitted when undefined (shrinking or flat cases).
	DoublingTimeDays *float64       `json:"doublingTimeDays,omitempty"`
	Trend            epidemic.Trend `json:"trend"`

	NewCaseStats  epidemic.Stats    `json:"newCaseStats"`
	PeakNewCases  epidemic.PeakInfo `json:"peakNewCases"`
	PeakNewDeaths epidemic.PeakInfo `json:"peakNewDeaths"`

	Window                 int       `json:"window"`
	RollingAverageNewCases []float64 `json:"rollingAverageNewCases"`
}

func buildMetrics(snap epidemic.Snapshot, series *epidemic.Series, req metricsQuery) (*metricsResponse, error) {
	newCases := series.Column(epidemic.ColumnNewCases)
	cumulative := series.Column(epidemic.ColumnCases)

	rolling, err := epidemic.RollingAverage(newCases, req.Window)
	if err != nil {
		return nil, err
	}

	r0 := epidemic.R0Estimate(newCases, req.Generation)

	resp := &metricsResponse{
		Rows:                   series.Len(),
		CaseFatalityRate:       epidemic.CaseFatalityRate(snap.Deaths, snap.Cases),
		RecoveryRate:           epidemic.RecoveryRate(snap.Recovered, snap.Cases),
		ActiveRate:             epidemic.ActiveRate(snap.Active, snap.Cases),
		R0:                     r0,
		HerdImmunityThreshold:  epidemic.HerdImmunityThreshold(r0),
		Trend:                  epidemic.TrendDirection(newCases, 7),
		NewCaseStats:           epidemic.Describe(newCases),
		PeakNewCases:           series.Peak(epidemic.ColumnNewCases),
		PeakNewDeaths:          series.Peak(epidemic.ColumnNewDeaths),
		Window:                 req.Window,
		RollingAverageNewCases: rolling,
	}

	if dt, ok := epidemic.DoublingTime(cumulative); ok {
		resp.DoublingTimeDays = &dt
	}

	return resp, nil
}

// rangeQuery holds the optional inclusive date range shared by the history
// and export endpoints.
type rangeQuery struct {
	From *time.Time
	To   *time.Time
}

func (r *rangeQuery) bind(c *fiber.Ctx) error {
	from, err := parseDateParam(c.Query("from"))
	if err != nil {
		return err
	}
	to, err := parseDateParam(c.Query("to"))
	if err != nil {
		return err
	}
	if from != nil && to != nil && to.Before(*from) {
		return errors.New("to must not be before from")
	}
	r.From = from
	r.To = to
	return nil
}

func parseDateParam(s string) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	dt, err := time.Parse(queryDateLayout, s)
	if err != nil {
		return nil, fmt.Errorf("invalid date %q; use YYYY-MM-DD", s)
	}
	dt = dt.UTC()
	return &dt, nil
}

// metricsQuery holds parameters of the metrics endpoint.
type metricsQuery struct {
	From *time.Time
	To   *time.Time

	Window     int `validate:"gte=1,lte=60"`
	Generation int `validate:"gte=1,lte=14"`
}

func (m *metricsQuery) bind(c *fiber.Ctx) error {
	var rq rangeQuery
	if err := rq.bind(c); err != nil {
		return err
	}
	m.From = rq.From
	m.To = rq.To

	m.Window = c.QueryInt("window", 7)
	m.Generation = c.QueryInt("generation", epidemic.DefaultGenerationTime)

	return validate.Struct(m)
}

// projectionQuery holds parameters of the exponential projection
// calculator.
type projectionQuery struct {
	Initial float64 `validate:"gte=1"`
	Growth  float64 `validate:"gte=-20,lte=50"`
	Days    int     `validate:"gte=1,lte=365"`
}

func (p *projectionQuery) bind(c *fiber.Ctx) error {
	initial, err := strconv.ParseFloat(c.Query("initial", "1000"), 64)
	if err != nil {
		return errors.New("initial must be a number")
	}
	growth, err := strconv.ParseFloat(c.Query("growth", "5"), 64)
	if err != nil {
		return errors.New("growth must be a number")
	}

	p.Initial = initial
	p.Growth = growth
	p.Days = c.QueryInt("days", 30)

	return validate.Struct(p)
}
