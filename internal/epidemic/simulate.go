package epidemic

import (
	"math"
	"math/rand"
	"sort"
	"strings"
	"time"
)

// Everything in this file generates SIMULATED data. The generators are
// seeded with a fixed value so repeated runs are byte-for-byte
// reproducible; they encode no real epidemiological inference and exist
// only so the dashboard degrades to something plausible when the live
// source is unavailable.

const (
	simSeed = 42

	sampleHistoryDays = 365
	simDeathRatio     = 0.025
	simRecoveryRatio  = 0.85

	sampleVaccinationDays = 730
	simMaxVaccinated      = 200_000_000
)

var sampleHistoryStart = time.Date(2020, time.March, 1, 0, 0, 0, 0, time.UTC)

var sampleVaccinationStart = time.Date(2021, time.January, 13, 0, 0, 0, 0, time.UTC)

// SampleHistory generates 365 days of a Gaussian-shaped daily case curve
// with additive noise, and cumulative deaths and recoveries at fixed
// fractions of cumulative cases.
func SampleHistory() *Series {
	r := rand.New(rand.NewSource(simSeed))

	obs := make([]Observation, sampleHistoryDays)
	var cumulative int64
	for d := 0; d < sampleHistoryDays; d++ {
		base := 100 * math.Exp(-math.Pow(float64(d)-150, 2)/5000)
		noise := r.NormFloat64() * 10

		daily := int64(base + noise)
		if daily < 1 {
			daily = 1
		}
		cumulative += daily

		obs[d] = Observation{
			Date:         sampleHistoryStart.AddDate(0, 0, d),
			Cases:        cumulative,
			Deaths:       int64(float64(cumulative) * simDeathRatio),
			Recovered:    int64(float64(cumulative) * simRecoveryRatio),
			NewCases:     daily,
			NewDeaths:    int64(float64(daily) * simDeathRatio),
			NewRecovered: int64(float64(daily) * simRecoveryRatio),
		}
	}

	return NewSeries(obs)
}

// FallbackSnapshot returns the last known national totals, flagged so the
// caller can tell clients the numbers are not live.
func FallbackSnapshot() Snapshot {
	return Snapshot{
		Cases:            6_829_221,
		Deaths:           162_063,
		Recovered:        6_647_104,
		Active:           20_054,
		Critical:         0,
		Tests:            114_158_919,
		Population:       279_134_505,
		CasesPerMillion:  24_466,
		DeathsPerMillion: 581,
		UpdatedAt:        time.Now().UTC(),
		IsFallback:       true,
	}
}

// SampleVaccinations generates a sigmoid-shaped vaccination rollout of 730
// days with additive noise on the daily doses.
func SampleVaccinations() []VaccinationRecord {
	r := rand.New(rand.NewSource(simSeed))

	prev := 0.0
	records := make([]VaccinationRecord, sampleVaccinationDays)
	var total int64
	for d := 0; d < sampleVaccinationDays; d++ {
		cum := simMaxVaccinated / (1 + math.Exp(-0.015*(float64(d)-300)))
		daily := int64(cum - prev + r.NormFloat64()*10_000)
		prev = cum
		if daily < 0 {
			daily = 0
		}
		total += daily

		records[d] = VaccinationRecord{
			Date:  sampleVaccinationStart.AddDate(0, 0, d),
			Total: total,
			Daily: daily,
		}
	}

	return records
}

// provinceProfile fixes each province's population (millions) and centroid.
// The order matters: the generator consumes randomness per province, so a
// stable order keeps the output reproducible.
type provinceProfile struct {
	name       string
	population float64
	lat, lon   float64
}

var provinceProfiles = []provinceProfile{
	{"Aceh", 5.37, 4.695135, 96.749397},
	{"Sumatera Utara", 14.80, 2.115355, 99.545097},
	{"Sumatera Barat", 5.53, -0.739940, 100.800000},
	{"Riau", 6.39, 1.598780, 101.245830},
	{"Jambi", 3.62, -1.589980, 103.620000},
	{"Sumatera Selatan", 8.47, -3.319440, 104.914440},
	{"Bengkulu", 2.01, -3.800000, 102.266670},
	{"Lampung", 9.01, -4.558580, 105.406670},
	{"Kep. Bangka Belitung", 1.52, -2.741050, 106.440580},
	{"Kep. Riau", 2.14, 3.945640, 108.142860},
	{"DKI Jakarta", 10.56, -6.211544, 106.845172},
	{"Jawa Barat", 49.32, -7.090911, 107.668887},
	{"Jawa Tengah", 36.74, -7.150975, 110.140259},
	{"DI Yogyakarta", 3.88, -7.797068, 110.370529},
	{"Jawa Timur", 40.67, -7.536064, 112.238402},
	{"Banten", 12.69, -6.405817, 106.064018},
	{"Bali", 4.32, -8.340930, 115.091950},
	{"Nusa Tenggara Barat", 5.32, -8.652930, 117.361640},
	{"Nusa Tenggara Timur", 5.46, -8.657380, 121.079370},
	{"Kalimantan Barat", 5.41, -0.278790, 111.475290},
	{"Kalimantan Tengah", 2.66, -1.681490, 113.382350},
	{"Kalimantan Selatan", 4.30, -3.092640, 115.283460},
	{"Kalimantan Timur", 3.77, 1.693110, 116.419390},
	{"Kalimantan Utara", 0.70, 3.073200, 116.041300},
	{"Sulawesi Utara", 2.62, 0.624690, 123.975000},
	{"Sulawesi Tengah", 3.06, -1.430530, 121.445450},
	{"Sulawesi Selatan", 9.07, -3.669570, 119.974290},
	{"Sulawesi Tenggara", 2.62, -4.144850, 122.174600},
	{"Gorontalo", 1.20, 0.696360, 122.455630},
	{"Sulawesi Barat", 1.42, -2.844130, 119.232070},
	{"Maluku", 1.85, -3.238460, 130.145270},
	{"Maluku Utara", 1.28, 1.570850, 127.808760},
	{"Papua Barat", 1.13, -1.336020, 133.174050},
	{"Papua", 4.30, -4.269280, 138.080610},
}

// SimulateProvinces distributes a national case total across provinces by
// population weight with bounded random multipliers. Jakarta and the Java
// provinces get a boosted multiplier to mimic their higher density. Rows
// come back sorted by cases, descending.
func SimulateProvinces(totalCases int64) []ProvinceRow {
	r := rand.New(rand.NewSource(simSeed))

	var totalPop float64
	for _, p := range provinceProfiles {
		totalPop += p.population
	}

	rows := make([]ProvinceRow, 0, len(provinceProfiles))
	for _, p := range provinceProfiles {
		baseRatio := p.population / totalPop
		noise := uniform(r, 0.5, 1.5)

		if strings.Contains(p.name, "Jakarta") || strings.Contains(p.name, "Jawa") {
			noise *= 1.3
		}

		cases := int64(float64(totalCases) * baseRatio * noise)
		deaths := int64(float64(cases) * uniform(r, 0.015, 0.030))
		recovered := int64(float64(cases) * uniform(r, 0.90, 0.98))
		active := cases - deaths - recovered
		if active < 0 {
			active = 0
		}

		rows = append(rows, ProvinceRow{
			Province:     p.name,
			Cases:        cases,
			Deaths:       deaths,
			Recovered:    recovered,
			Active:       active,
			Population:   int64(p.population * 1_000_000),
			CasesPer100K: math.Round(float64(cases)/(p.population*10)*100) / 100,
			Lat:          p.lat,
			Lon:          p.lon,
		})
	}

	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].Cases > rows[j].Cases
	})
	return rows
}

func uniform(r *rand.Rand, lo, hi float64) float64 {
	return lo + r.Float64()*(hi-lo)
}
