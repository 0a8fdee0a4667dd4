package normality

import (
	"context"
	"fmt"
	"math"
	"sort"

	"gonum.org/v1/gonum/stat/distuv"

	"statcheck/domain/sample"
	"statcheck/domain/verdict"
	"statcheck/internal"
	"statcheck/internal/errors"
)

// ShapiroWilk tests the null hypothesis that a sample comes from a normal
// distribution using the Shapiro-Wilk W statistic (Royston's AS R94
// formulation, valid for 3 <= n <= 5000).
type ShapiroWilk struct {
	// MaxN is the sample size above which the W approximation degrades;
	// results for larger samples carry a warning in the metadata.
	MaxN int
}

// NewShapiroWilk creates a Shapiro-Wilk test with the conventional 5000
// sample ceiling.
func NewShapiroWilk() *ShapiroWilk {
	return &ShapiroWilk{MaxN: 5000}
}

func (t *ShapiroWilk) Name() string { return "shapiro" }

func (t *ShapiroWilk) Description() string {
	return "Shapiro-Wilk normality test, suited to samples below 5000 points"
}

func (t *ShapiroWilk) Null() verdict.Hypothesis { return verdict.NullNormal }

// Run computes the W statistic and its p-value for the sample.
func (t *ShapiroWilk) Run(ctx context.Context, x []float64, alpha float64) (verdict.TestResult, error) {
	if err := sample.CheckContinuous(x, 3); err != nil {
		return verdict.TestResult{}, err
	}

	sorted := make([]float64, len(x))
	copy(sorted, x)
	sort.Float64s(sorted)

	w, pw, err := swilk(sorted)
	if err != nil {
		return verdict.TestResult{}, errors.Wrap(err, "shapiro-wilk computation failed")
	}

	result := verdict.NewTestResult(t.Name(), t.Null(), w, pw, alpha, len(x))
	result.Description = normalityDescription(t.Name(), result)
	result.Metadata = map[string]interface{}{
		"summary": sample.Profile(x),
	}
	if t.MaxN > 0 && len(x) > t.MaxN {
		const warnFmt = "sample size %d exceeds %d; W approximation degrades, prefer the dagostino test"
		internal.DefaultLogger.Warn(warnFmt, len(x), t.MaxN)
		result.Metadata["warning"] = fmt.Sprintf(warnFmt, len(x), t.MaxN)
	}
	return result, nil
}

// Polynomial coefficients from Royston (1995), Applied Statistics algorithm
// AS R94.
var (
	swilkC1 = []float64{0, 0.221157, -0.147981, -2.071190, 4.434685, -2.706056}
	swilkC2 = []float64{0, 0.042981, -0.293762, -1.752461, 5.682633, -3.582633}
	swilkC3 = []float64{0.5440, -0.39978, 0.025054, -6.714e-4}
	swilkC4 = []float64{1.3822, -0.77857, 0.062767, -0.0020322}
	swilkC5 = []float64{-1.5861, -0.31082, -0.083751, 0.0038915}
	swilkC6 = []float64{-0.4803, -0.082676, 0.0030302}
	swilkG  = []float64{-2.273, 0.459}
)

// swilk computes the Shapiro-Wilk W statistic and p-value for a sample
// sorted in ascending order. Direct port of AS R94 for complete
// (uncensored) samples.
func swilk(x []float64) (w, pw float64, err error) {
	n := len(x)
	if n < 3 {
		return 0, 0, errors.ValidationError("shapiro-wilk requires at least 3 observations")
	}

	an := float64(n)
	nn2 := n / 2
	a := make([]float64, nn2+1) // 1-based, as in the original algorithm

	if n == 3 {
		a[1] = math.Sqrt(0.5)
	} else {
		an25 := an + 0.25
		summ2 := 0.0
		for i := 1; i <= nn2; i++ {
			a[i] = distuv.UnitNormal.Quantile((float64(i) - 0.375) / an25)
			summ2 += a[i] * a[i]
		}
		summ2 *= 2
		ssumm2 := math.Sqrt(summ2)
		rsn := 1 / math.Sqrt(an)
		a1 := poly(swilkC1, rsn) - a[1]/ssumm2

		// Normalize the coefficients
		var i1 int
		var fac float64
		if n > 5 {
			i1 = 3
			a2 := -a[2]/ssumm2 + poly(swilkC2, rsn)
			fac = math.Sqrt((summ2 - 2*a[1]*a[1] - 2*a[2]*a[2]) /
				(1 - 2*a1*a1 - 2*a2*a2))
			a[2] = a2
		} else {
			i1 = 2
			fac = math.Sqrt((summ2 - 2*a[1]*a[1]) / (1 - 2*a1*a1))
		}
		a[1] = a1
		for i := i1; i <= nn2; i++ {
			a[i] /= -fac
		}
	}

	rng := x[n-1] - x[0]
	if rng < math.SmallestNonzeroFloat64*100 {
		return 0, 0, errors.ValidationError("all observations are identical")
	}

	// Scaled sample and signed coefficient sums
	xx := x[0] / rng
	sx := xx
	sa := -a[1]
	for i, j := 1, n-1; i < n; j-- {
		xi := x[i] / rng
		if xx-xi > 1e-13 {
			return 0, 0, errors.InternalError("sample not sorted ascending")
		}
		sx += xi
		i++
		if i != j {
			sa += float64(sign(i-j)) * a[imin(i, j)]
		}
		xx = xi
	}

	// W statistic as squared correlation between data and coefficients
	sa /= float64(n)
	sx /= float64(n)
	ssa, ssx, sax := 0.0, 0.0, 0.0
	for i, j := 0, n-1; i < n; i, j = i+1, j-1 {
		var asa float64
		if i != j {
			asa = float64(sign(i-j))*a[1+imin(i, j)] - sa
		} else {
			asa = -sa
		}
		xsx := x[i]/rng - sx
		ssa += asa * asa
		ssx += xsx * xsx
		sax += asa * xsx
	}

	ssassx := math.Sqrt(ssa * ssx)
	w1 := (ssassx - sax) * (ssassx + sax) / (ssa * ssx)
	w = 1 - w1

	// Significance level of W
	if n == 3 {
		const pi6 = 1.90985931710274   // 6/pi
		const stqr = 1.04719755119660  // asin(sqrt(3/4))
		pw = pi6 * (math.Asin(math.Sqrt(w)) - stqr)
		if pw < 0 {
			pw = 0
		}
		if pw > 1 {
			pw = 1
		}
		return w, pw, nil
	}

	y := math.Log(w1)
	logN := math.Log(an)
	var m, s float64
	if n <= 11 {
		gamma := poly(swilkG, an)
		if y >= gamma {
			return w, 1e-99, nil // extreme departure from normality
		}
		y = -math.Log(gamma - y)
		m = poly(swilkC3, an)
		s = math.Exp(poly(swilkC4, an))
	} else {
		m = poly(swilkC5, logN)
		s = math.Exp(poly(swilkC6, logN))
	}

	pw = distuv.UnitNormal.Survival((y - m) / s)
	return w, pw, nil
}

// poly evaluates c[0] + c[1]*x + c[2]*x^2 + ... via Horner's rule.
func poly(c []float64, x float64) float64 {
	res := 0.0
	for i := len(c) - 1; i >= 0; i-- {
		res = res*x + c[i]
	}
	return res
}

func sign(x int) int {
	if x < 0 {
		return -1
	}
	if x > 0 {
		return 1
	}
	return 0
}

func imin(a, b int) int {
	if a < b {
		return a
	}
	return b
}
