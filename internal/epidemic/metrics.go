package epidemic

import (
	"errors"
	"math"
)

// ErrInvalidWindow is returned when a rolling computation is asked for a
// non-positive window. Unlike the zero-denominator fallbacks below, this is
// a programming error at the call site and is rejected, not clamped.
var ErrInvalidWindow = errors.New("rolling window must be at least 1")

// DefaultGenerationTime is the assumed mean serial interval, in days, used
// by the R0 estimate.
const DefaultGenerationTime = 5

// doublingLookbackDays is the fixed window the doubling-time estimate
// looks back over.
const doublingLookbackDays = 14

// trendBand is the relative change beyond which a series counts as rising
// or falling rather than stable.
const trendBand = 0.1

// CaseFatalityRate returns (deaths/cases)*100. Zero cases yields 0, not an
// error: a metric must always render something.
func CaseFatalityRate(deaths, cases int64) float64 {
	if cases == 0 {
		return 0
	}
	return float64(deaths) / float64(cases) * 100
}

// RecoveryRate returns (recovered/cases)*100, 0 when cases is 0.
func RecoveryRate(recovered, cases int64) float64 {
	if cases == 0 {
		return 0
	}
	return float64(recovered) / float64(cases) * 100
}

// ActiveRate returns (active/cases)*100, 0 when cases is 0.
func ActiveRate(active, cases int64) float64 {
	if cases == 0 {
		return 0
	}
	return float64(active) / float64(cases) * 100
}

// RollingAverage computes a simple trailing moving average. Near the start
// of the series the average runs over however many points are available,
// so the output has the same length as the input and contains no NaNs.
func RollingAverage(values []float64, window int) ([]float64, error) {
	if window < 1 {
		return nil, ErrInvalidWindow
	}

	out := make([]float64, len(values))
	var sum float64
	for i, v := range values {
		sum += v
		if i >= window {
			sum -= values[i-window]
		}
		n := i + 1
		if n > window {
			n = window
		}
		out[i] = sum / float64(n)
	}
	return out, nil
}

// R0Estimate estimates the basic reproduction number from a daily
// new-cases series using the growth-ratio method: the mean of the last
// generationTime points over the mean of the generationTime points before
// them. The result is clamped to the plausible [0.1, 10] range. Series
// shorter than two generations, or a non-positive earlier mean, yield the
// neutral value 1.0.
func R0Estimate(values []float64, generationTime int) float64 {
	if generationTime <= 0 {
		generationTime = DefaultGenerationTime
	}
	if len(values) < generationTime*2 {
		return 1.0
	}

	recent := values[len(values)-generationTime*2:]
	previousAvg := mean(recent[:generationTime])
	currentAvg := mean(recent[generationTime:])

	if previousAvg <= 0 {
		return 1.0
	}

	r0 := currentAvg / previousAvg

	return math.Max(0.1, math.Min(10.0, r0))
}

// DoublingTime estimates how many days cumulative cases take to double,
// from the growth over the last 14 days. Returns false when the series is
// too short, the window start is non-positive, or cases did not grow.
func DoublingTime(cumulative []float64) (float64, bool) {
	if len(cumulative) < doublingLookbackDays {
		return 0, false
	}

	recent := cumulative[len(cumulative)-doublingLookbackDays:]
	start := recent[0]
	end := recent[len(recent)-1]

	if start <= 0 || end <= start {
		return 0, false
	}

	growth := math.Pow(end/start, 1.0/float64(doublingLookbackDays)) - 1

	if growth <= 0 {
		return 0, false
	}

	return math.Log(2) / math.Log(1+growth), true
}

// DoublingTimeFromGrowth converts a daily growth rate in percent to a
// doubling time in days. Returns false for non-positive growth.
func DoublingTimeFromGrowth(growthRatePct float64) (float64, bool) {
	if growthRatePct <= 0 {
		return 0, false
	}
	return math.Log(2) / math.Log(1+growthRatePct/100), true
}

// HerdImmunityThreshold returns the percentage of the population that needs
// immunity to halt sustained spread, (1 - 1/r0)*100. Not meaningful for
// r0 <= 1, which yields 0.
func HerdImmunityThreshold(r0 float64) float64 {
	if r0 <= 1 {
		return 0
	}
	return (1 - 1/r0) * 100
}

// TrendDirection compares the mean of the last `days` values against the
// mean of the `days` values before them. Changes beyond +-10% classify as
// rising or falling; everything else, including series too short to
// compare, is stable.
func TrendDirection(values []float64, days int) Trend {
	if days <= 0 {
		days = 7
	}
	if len(values) < days*2 {
		return TrendStable
	}

	recent := values[len(values)-days*2:]
	firstHalf := mean(recent[:days])
	secondHalf := mean(recent[days:])

	if firstHalf == 0 {
		return TrendStable
	}

	change := (secondHalf - firstHalf) / firstHalf

	switch {
	case change > trendBand:
		return TrendRising
	case change < -trendBand:
		return TrendFalling
	default:
		return TrendStable
	}
}

// ProjectCases extrapolates daily cases under simple exponential growth:
// cases(t) = initial * (1+g)^t. The returned slice has days+1 entries,
// starting at day 0. This is a what-if calculator, not a forecast.
func ProjectCases(initial, growthRatePct float64, days int) []float64 {
	if days < 0 {
		days = 0
	}
	g := 1 + growthRatePct/100
	out := make([]float64, days+1)
	for t := range out {
		out[t] = initial * math.Pow(g, float64(t))
	}
	return out
}

func mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	var sum float64
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}
