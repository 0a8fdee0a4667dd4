package correlation

import (
	"context"

	"gonum.org/v1/gonum/stat"

	"statcheck/domain/sample"
	"statcheck/domain/verdict"
)

// Pearson measures the strength and direction of a linear relationship
// between two continuous variables.
type Pearson struct{}

// NewPearson creates a Pearson correlation test.
func NewPearson() *Pearson {
	return &Pearson{}
}

func (t *Pearson) Name() string { return "pearson" }

func (t *Pearson) Description() string {
	return "Pearson product-moment correlation for linear relationships"
}

func (t *Pearson) Null() verdict.Hypothesis { return verdict.NullUncorrelated }

// Run computes the correlation coefficient r and its two-tailed p-value.
func (t *Pearson) Run(ctx context.Context, x, y []float64, alpha float64) (verdict.TestResult, error) {
	if err := sample.CheckPaired(x, y, 3); err != nil {
		return verdict.TestResult{}, err
	}
	if err := sample.CheckNonConstant(x); err != nil {
		return verdict.TestResult{}, err
	}
	if err := sample.CheckNonConstant(y); err != nil {
		return verdict.TestResult{}, err
	}

	r := clampCoefficient(stat.Correlation(x, y, nil))
	p := correlationPValue(r, len(x))

	result := verdict.NewTestResult(t.Name(), t.Null(), r, p, alpha, len(x))
	result.Description = correlationDescription(result)
	return result, nil
}
