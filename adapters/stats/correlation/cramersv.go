package correlation

import (
	"context"
	"fmt"
	"math"

	"gonum.org/v1/gonum/stat/distuv"

	"statcheck/domain/sample"
	"statcheck/domain/verdict"
	"statcheck/internal/errors"
)

// CramersV measures the degree of association between two categorical
// variables via a chi-square test of independence on their contingency
// table. The reported statistic is V = sqrt(chi2 / (n * min(r-1, c-1))).
type CramersV struct{}

// NewCramersV creates a Cramér's V association test.
func NewCramersV() *CramersV {
	return &CramersV{}
}

func (t *CramersV) Name() string { return "cramersv" }

func (t *CramersV) Description() string {
	return "Cramér's V association between two categorical variables"
}

func (t *CramersV) Null() verdict.Hypothesis { return verdict.NullIndependent }

// Run computes V, the chi-square p-value and an effect-size label. A Yates
// continuity correction is applied for 2x2 tables, matching the usual
// contingency-test convention.
func (t *CramersV) Run(ctx context.Context, a, b []string, alpha float64) (verdict.TestResult, error) {
	if err := sample.CheckPairedCategorical(a, b, 2); err != nil {
		return verdict.TestResult{}, err
	}

	table, rowLabels, colLabels := crosstab(a, b)
	if len(rowLabels) < 2 || len(colLabels) < 2 {
		return verdict.TestResult{}, errors.ValidationError("contingency table needs at least two levels per variable")
	}

	chi2, dof, err := chiSquare(table)
	if err != nil {
		return verdict.TestResult{}, err
	}
	p := distuv.ChiSquared{K: float64(dof)}.Survival(chi2)

	n := float64(len(a))
	dof0 := math.Min(float64(len(rowLabels)), float64(len(colLabels))) - 1
	v := math.Sqrt(chi2 / (n * dof0))

	result := verdict.NewTestResult(t.Name(), t.Null(), v, p, alpha, len(a))
	if result.Significant {
		result.EffectLabel = effectLabel(v, int(dof0))
		result.Description = fmt.Sprintf("Reject H0: the two variables are associated with p=%.4f (%s effect, V=%.2f, dof=%d)",
			result.PValue, result.EffectLabel, v, int(dof0))
	} else {
		result.Description = fmt.Sprintf("Fail to reject H0: no association between the two variables (V=%.2f, p=%.4f)", v, result.PValue)
	}
	result.Metadata = map[string]interface{}{
		"chi_square":      chi2,
		"degrees_freedom": dof,
		"table_rows":      len(rowLabels),
		"table_cols":      len(colLabels),
	}
	return result, nil
}

// crosstab builds a contingency table of label co-occurrence counts.
func crosstab(a, b []string) ([][]float64, []string, []string) {
	rowIdx := make(map[string]int)
	colIdx := make(map[string]int)
	var rowLabels, colLabels []string

	for i := range a {
		if _, ok := rowIdx[a[i]]; !ok {
			rowIdx[a[i]] = len(rowLabels)
			rowLabels = append(rowLabels, a[i])
		}
		if _, ok := colIdx[b[i]]; !ok {
			colIdx[b[i]] = len(colLabels)
			colLabels = append(colLabels, b[i])
		}
	}

	table := make([][]float64, len(rowLabels))
	for i := range table {
		table[i] = make([]float64, len(colLabels))
	}
	for i := range a {
		table[rowIdx[a[i]]][colIdx[b[i]]]++
	}
	return table, rowLabels, colLabels
}

// chiSquare computes the chi-square statistic of independence for a
// contingency table, with Yates continuity correction when dof is 1.
func chiSquare(table [][]float64) (chi2 float64, dof int, err error) {
	rows := len(table)
	cols := len(table[0])

	rowTotals := make([]float64, rows)
	colTotals := make([]float64, cols)
	total := 0.0
	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			rowTotals[i] += table[i][j]
			colTotals[j] += table[i][j]
			total += table[i][j]
		}
	}
	if total == 0 {
		return 0, 0, errors.ValidationError("contingency table is empty")
	}

	dof = (rows - 1) * (cols - 1)
	yates := dof == 1

	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			expected := rowTotals[i] * colTotals[j] / total
			if expected == 0 {
				return 0, 0, errors.ValidationError("contingency table has a zero expected frequency")
			}
			diff := math.Abs(table[i][j] - expected)
			if yates {
				diff -= 0.5
				if diff < 0 {
					diff = 0
				}
			}
			chi2 += diff * diff / expected
		}
	}
	return chi2, dof, nil
}

// effectLabel applies the conventional V thresholds, which depend on the
// smaller table dimension.
func effectLabel(v float64, dof0 int) verdict.EffectLabel {
	var small, medium float64
	switch dof0 {
	case 1:
		small, medium = 0.3, 0.5
	case 2:
		small, medium = 0.21, 0.35
	case 3:
		small, medium = 0.17, 0.29
	default:
		small, medium = 0.15, 0.25
	}
	switch {
	case v < small:
		return verdict.EffectSmall
	case v < medium:
		return verdict.EffectMedium
	default:
		return verdict.EffectLarge
	}
}
