package normality

import (
	"context"
	"math"

	"gonum.org/v1/gonum/stat/distuv"

	"statcheck/domain/sample"
	"statcheck/domain/verdict"
	"statcheck/internal/errors"
)

// DAgostino tests normality with D'Agostino and Pearson's K² omnibus
// statistic, combining a skewness z-test and a kurtosis z-test. K² follows
// a chi-squared distribution with 2 degrees of freedom under the null.
type DAgostino struct{}

// NewDAgostino creates a D'Agostino K² test.
func NewDAgostino() *DAgostino {
	return &DAgostino{}
}

func (t *DAgostino) Name() string { return "dagostino" }

func (t *DAgostino) Description() string {
	return "D'Agostino K² omnibus normality test based on skewness and kurtosis"
}

func (t *DAgostino) Null() verdict.Hypothesis { return verdict.NullNormal }

// Run computes K² and its p-value. The skewness and kurtosis
// transformations require at least 8 observations.
func (t *DAgostino) Run(ctx context.Context, x []float64, alpha float64) (verdict.TestResult, error) {
	if err := sample.CheckContinuous(x, 8); err != nil {
		return verdict.TestResult{}, err
	}

	z1, err := skewnessZ(x)
	if err != nil {
		return verdict.TestResult{}, err
	}
	z2, err := kurtosisZ(x)
	if err != nil {
		return verdict.TestResult{}, err
	}

	k2 := z1*z1 + z2*z2
	p := distuv.ChiSquared{K: 2}.Survival(k2)

	result := verdict.NewTestResult(t.Name(), t.Null(), k2, p, alpha, len(x))
	result.Description = normalityDescription(t.Name(), result)
	result.Metadata = map[string]interface{}{
		"skewness_z": z1,
		"kurtosis_z": z2,
		"summary":    sample.Profile(x),
	}
	return result, nil
}

// moments returns the 2nd, 3rd and 4th central moments of the sample.
func moments(x []float64) (mean, m2, m3, m4 float64) {
	n := float64(len(x))
	for _, v := range x {
		mean += v
	}
	mean /= n
	for _, v := range x {
		d := v - mean
		m2 += d * d
		m3 += d * d * d
		m4 += d * d * d * d
	}
	m2 /= n
	m3 /= n
	m4 /= n
	return mean, m2, m3, m4
}

// skewnessZ is the D'Agostino (1970) transformation of sample skewness to an
// approximately standard normal variate.
func skewnessZ(x []float64) (float64, error) {
	n := float64(len(x))
	_, m2, m3, _ := moments(x)
	if m2 == 0 {
		return 0, errors.ValidationError("sample variance is zero")
	}
	b1 := m3 / math.Pow(m2, 1.5)

	y := b1 * math.Sqrt((n+1)*(n+3)/(6*(n-2)))
	beta2 := 3 * (n*n + 27*n - 70) * (n + 1) * (n + 3) /
		((n - 2) * (n + 5) * (n + 7) * (n + 9))
	w2 := -1 + math.Sqrt(2*(beta2-1))
	delta := 1 / math.Sqrt(math.Log(math.Sqrt(w2)))
	a := math.Sqrt(2 / (w2 - 1))
	if y == 0 {
		return 0, nil
	}
	return delta * math.Log(y/a+math.Sqrt(y/a*y/a+1)), nil
}

// kurtosisZ is the Anscombe-Glynn (1983) transformation of sample kurtosis
// to an approximately standard normal variate.
func kurtosisZ(x []float64) (float64, error) {
	n := float64(len(x))
	_, m2, _, m4 := moments(x)
	if m2 == 0 {
		return 0, errors.ValidationError("sample variance is zero")
	}
	b2 := m4 / (m2 * m2)

	e := 3 * (n - 1) / (n + 1)
	variance := 24 * n * (n - 2) * (n - 3) / ((n + 1) * (n + 1) * (n + 3) * (n + 5))
	xStd := (b2 - e) / math.Sqrt(variance)

	sqrtBeta1 := 6 * (n*n - 5*n + 2) / ((n + 7) * (n + 9)) *
		math.Sqrt(6*(n+3)*(n+5)/(n*(n-2)*(n-3)))
	a := 6 + 8/sqrtBeta1*(2/sqrtBeta1+math.Sqrt(1+4/(sqrtBeta1*sqrtBeta1)))

	denom := 1 + xStd*math.Sqrt(2/(a-4))
	if denom == 0 {
		return 0, errors.InternalError("kurtosis transformation undefined for this sample")
	}
	// Negative denominators occur for extremely platykurtic samples; the
	// transform continues through sign(denom)*cbrt(.../|denom|)
	term := math.Cbrt((1 - 2/a) / math.Abs(denom))
	if denom < 0 {
		term = -term
	}
	return ((1 - 2/(9*a)) - term) / math.Sqrt(2/(9*a)), nil
}
