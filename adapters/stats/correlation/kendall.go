package correlation

import (
	"context"
	"math"
	"sort"

	"gonum.org/v1/gonum/stat/distuv"

	"statcheck/domain/sample"
	"statcheck/domain/verdict"
)

// Kendall measures ordinal association with Kendall's tau-b, which corrects
// for ties in either variable.
type Kendall struct{}

// NewKendall creates a Kendall tau correlation test.
func NewKendall() *Kendall {
	return &Kendall{}
}

func (t *Kendall) Name() string { return "kendall" }

func (t *Kendall) Description() string {
	return "Kendall tau-b rank correlation for ordinal association"
}

func (t *Kendall) Null() verdict.Hypothesis { return verdict.NullUncorrelated }

// Run computes tau-b and a two-tailed p-value from the normal approximation
// of the concordance statistic with tie corrections.
func (t *Kendall) Run(ctx context.Context, x, y []float64, alpha float64) (verdict.TestResult, error) {
	if err := sample.CheckPaired(x, y, 3); err != nil {
		return verdict.TestResult{}, err
	}

	n := len(x)
	var concordant, discordant float64
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			dx := sign64(x[i] - x[j])
			dy := sign64(y[i] - y[j])
			prod := dx * dy
			if prod > 0 {
				concordant++
			} else if prod < 0 {
				discordant++
			}
		}
	}
	s := concordant - discordant

	n0 := float64(n*(n-1)) / 2
	tx := tieCounts(x)
	ty := tieCounts(y)

	denom := math.Sqrt((n0 - tx.pairs) * (n0 - ty.pairs))
	if denom == 0 {
		// One of the variables is constant; no ordering information
		result := verdict.NewTestResult(t.Name(), t.Null(), 0, 1, alpha, n)
		result.Description = correlationDescription(result)
		return result, nil
	}
	tau := clampCoefficient(s / denom)

	p := kendallPValue(s, n, tx, ty)

	result := verdict.NewTestResult(t.Name(), t.Null(), tau, p, alpha, n)
	result.Description = correlationDescription(result)
	result.Metadata = map[string]interface{}{
		"concordant": concordant,
		"discordant": discordant,
	}
	return result, nil
}

// tieSums aggregates tie-group statistics needed for the tau-b variance.
type tieSums struct {
	pairs  float64 // sum t(t-1)/2
	v      float64 // sum t(t-1)(2t+5)
	first  float64 // sum t(t-1)
	second float64 // sum t(t-1)(t-2)
}

func tieCounts(data []float64) tieSums {
	sorted := make([]float64, len(data))
	copy(sorted, data)
	sort.Float64s(sorted)

	var sums tieSums
	i := 0
	for i < len(sorted) {
		j := i + 1
		for j < len(sorted) && sorted[j] == sorted[i] {
			j++
		}
		t := float64(j - i)
		if t > 1 {
			sums.pairs += t * (t - 1) / 2
			sums.v += t * (t - 1) * (2*t + 5)
			sums.first += t * (t - 1)
			sums.second += t * (t - 1) * (t - 2)
		}
		i = j
	}
	return sums
}

// kendallPValue uses the normal approximation on S with the tie-corrected
// variance (Kendall 1970).
func kendallPValue(s float64, n int, tx, ty tieSums) float64 {
	fn := float64(n)
	v0 := fn * (fn - 1) * (2*fn + 5)
	variance := (v0-tx.v-ty.v)/18 +
		tx.first*ty.first/(2*fn*(fn-1)) +
		tx.second*ty.second/(9*fn*(fn-1)*(fn-2))
	if variance <= 0 {
		return 1.0
	}
	z := s / math.Sqrt(variance)
	return 2 * distuv.UnitNormal.Survival(math.Abs(z))
}

func sign64(v float64) float64 {
	if v > 0 {
		return 1
	}
	if v < 0 {
		return -1
	}
	return 0
}
