package correlation

import (
	"context"

	"gonum.org/v1/gonum/stat"

	"statcheck/domain/sample"
	"statcheck/domain/verdict"
)

// PointBiserial correlates a dichotomous grouping variable with a continuous
// variable. Numerically identical to Pearson on a 0/1 indicator; it exists
// as a named shortcut with the extra dichotomy validation.
type PointBiserial struct{}

// NewPointBiserial creates a point-biserial correlation test.
func NewPointBiserial() *PointBiserial {
	return &PointBiserial{}
}

func (t *PointBiserial) Name() string { return "pointbiserial" }

func (t *PointBiserial) Description() string {
	return "Point-biserial correlation between a dichotomous and a continuous variable"
}

func (t *PointBiserial) Null() verdict.Hypothesis { return verdict.NullUncorrelated }

// Run computes r between the grouping variable x (exactly two levels) and
// the continuous variable y.
func (t *PointBiserial) Run(ctx context.Context, x, y []float64, alpha float64) (verdict.TestResult, error) {
	if err := sample.CheckPaired(x, y, 3); err != nil {
		return verdict.TestResult{}, err
	}
	if err := sample.CheckDichotomous(x); err != nil {
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
