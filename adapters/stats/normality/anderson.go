package normality

import (
	"context"
	"math"
	"sort"

	"gonum.org/v1/gonum/stat/distuv"

	"statcheck/domain/sample"
	"statcheck/domain/verdict"
	"statcheck/internal/errors"
)

// AndersonDarling tests normality with the Anderson-Darling A² statistic for
// the case where mean and variance are estimated from the sample.
//
// Unlike the classical critical-value interpretation, the result carries a
// p-value from the small-sample adjusted statistic A*² = A²(1 + 0.75/n +
// 2.25/n²) (D'Agostino & Stephens 1986), so the uniform verdict rule
// (p < alpha) applies. The Stephens critical values at the 15/10/5/2.5/1%
// levels are reported in the metadata for readers used to that form.
type AndersonDarling struct{}

// NewAndersonDarling creates an Anderson-Darling normality test.
func NewAndersonDarling() *AndersonDarling {
	return &AndersonDarling{}
}

func (t *AndersonDarling) Name() string { return "anderson" }

func (t *AndersonDarling) Description() string {
	return "Anderson-Darling normality test, sensitive to tail departures"
}

func (t *AndersonDarling) Null() verdict.Hypothesis { return verdict.NullNormal }

// Stephens (1974) critical values for the normal case with estimated
// parameters, before the finite-sample adjustment.
var (
	andersonLevels    = []float64{0.15, 0.10, 0.05, 0.025, 0.01}
	andersonCriticals = []float64{0.576, 0.656, 0.787, 0.918, 1.092}
)

// Run computes A² and its p-value.
func (t *AndersonDarling) Run(ctx context.Context, x []float64, alpha float64) (verdict.TestResult, error) {
	if err := sample.CheckContinuous(x, 8); err != nil {
		return verdict.TestResult{}, err
	}

	n := len(x)
	sorted := make([]float64, n)
	copy(sorted, x)
	sort.Float64s(sorted)

	prof := sample.Profile(x)
	if prof.StdDev == 0 {
		return verdict.TestResult{}, errors.ValidationError("sample variance is zero")
	}

	a2 := 0.0
	fn := float64(n)
	for i := 0; i < n; i++ {
		zLo := (sorted[i] - prof.Mean) / prof.StdDev
		zHi := (sorted[n-1-i] - prof.Mean) / prof.StdDev
		cdfLo := distuv.UnitNormal.CDF(zLo)
		srvHi := distuv.UnitNormal.Survival(zHi)
		if cdfLo <= 0 || srvHi <= 0 {
			// Clamp extreme tail values so the logs stay finite
			cdfLo = math.Max(cdfLo, 1e-300)
			srvHi = math.Max(srvHi, 1e-300)
		}
		a2 += (2*float64(i) + 1) * (math.Log(cdfLo) + math.Log(srvHi))
	}
	a2 = -fn - a2/fn

	p := andersonPValue(a2, n)

	// Critical values scaled for sample size, matching the usual tables
	adj := 1 + 4/fn - 25/(fn*fn)
	criticals := make(map[string]float64, len(andersonLevels))
	for i, level := range andersonLevels {
		criticals[formatLevel(level)] = andersonCriticals[i] / adj
	}

	result := verdict.NewTestResult(t.Name(), t.Null(), a2, p, alpha, n)
	result.Description = normalityDescription(t.Name(), result)
	result.Metadata = map[string]interface{}{
		"critical_values":     criticals,
		"significance_levels": andersonLevels,
		"summary":             prof,
	}
	return result, nil
}

// andersonPValue converts A² into a p-value via the adjusted statistic
// interpolation formulas from D'Agostino & Stephens (1986), table 4.9.
func andersonPValue(a2 float64, n int) float64 {
	fn := float64(n)
	a := a2 * (1 + 0.75/fn + 2.25/(fn*fn))

	switch {
	case a >= 0.6:
		return math.Exp(1.2937 - 5.709*a + 0.0186*a*a)
	case a > 0.34:
		return math.Exp(0.9177 - 4.279*a - 1.38*a*a)
	case a > 0.2:
		return 1 - math.Exp(-8.318+42.796*a-59.938*a*a)
	default:
		return 1 - math.Exp(-13.436+101.14*a-223.73*a*a)
	}
}

func formatLevel(level float64) string {
	switch level {
	case 0.15:
		return "15%"
	case 0.10:
		return "10%"
	case 0.05:
		return "5%"
	case 0.025:
		return "2.5%"
	default:
		return "1%"
	}
}
