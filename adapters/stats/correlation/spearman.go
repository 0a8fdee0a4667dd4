package correlation

import (
	"context"

	"gonum.org/v1/gonum/stat"

	"statcheck/domain/sample"
	"statcheck/domain/verdict"
)

// Spearman measures the strength and direction of a monotonic relationship
// using rank correlation, robust to outliers and non-normality.
type Spearman struct{}

// NewSpearman creates a Spearman rank correlation test.
func NewSpearman() *Spearman {
	return &Spearman{}
}

func (t *Spearman) Name() string { return "spearman" }

func (t *Spearman) Description() string {
	return "Spearman rank correlation for monotonic relationships"
}

func (t *Spearman) Null() verdict.Hypothesis { return verdict.NullUncorrelated }

// Run computes rho as the Pearson correlation of the tie-averaged ranks,
// with a two-tailed p-value from the t approximation.
func (t *Spearman) Run(ctx context.Context, x, y []float64, alpha float64) (verdict.TestResult, error) {
	if err := sample.CheckPaired(x, y, 3); err != nil {
		return verdict.TestResult{}, err
	}
	if err := sample.CheckNonConstant(x); err != nil {
		return verdict.TestResult{}, err
	}
	if err := sample.CheckNonConstant(y); err != nil {
		return verdict.TestResult{}, err
	}

	rho := clampCoefficient(stat.Correlation(rank(x), rank(y), nil))
	p := correlationPValue(rho, len(x))

	result := verdict.NewTestResult(t.Name(), t.Null(), rho, p, alpha, len(x))
	result.Description = correlationDescription(result)
	return result, nil
}
