package normality

import (
	"context"
	"math"
	"testing"

	"statcheck/domain/verdict"
	"statcheck/internal/errors"
)

// fly wing lengths in mm are normally distributed
// via http://www.seattlecentral.edu/qelp/sets/057/057.html
var wings = []float64{
	43, 48, 45, 48, 45, 39, 47, 43, 37, 46, 38, 47, 53, 43, 42, 44,
	51, 42, 48, 42, 36, 46, 44, 41, 50, 47, 47, 44, 45, 46, 46, 40,
	49, 40, 42, 45, 41, 51, 45, 44, 38, 50, 51, 41, 46, 49, 48, 47,
	40, 42, 44, 45, 47, 42, 45, 46, 47, 42, 46, 47, 39, 45, 40, 50,
	49, 52, 48, 45, 45, 54, 50, 41, 46, 48, 43, 43, 53, 41, 51, 46,
	41, 48, 43, 47, 43, 48, 43, 44, 50, 44, 52, 49, 44, 46, 55, 50,
	49, 44, 49, 49,
}

// exponentialGrid is a deterministic, heavily right-skewed sample no
// normality test should accept.
func exponentialGrid(n int) []float64 {
	x := make([]float64, n)
	for i := range x {
		x[i] = math.Exp(float64(i) / 10.0)
	}
	return x
}

func TestShapiroWilk_NormalData(t *testing.T) {
	test := NewShapiroWilk()
	result, err := test.Run(context.Background(), wings, 0.05)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Reference: W=0.992807, p=0.876118 for this dataset
	if math.Abs(result.Statistic-0.992807) > 0.001 {
		t.Errorf("W = %f, want about 0.9928", result.Statistic)
	}
	if math.Abs(result.PValue-0.876118) > 0.01 {
		t.Errorf("p = %f, want about 0.876", result.PValue)
	}
	if result.Significant {
		t.Error("normal data should not reject the null")
	}
	if result.Null != verdict.NullNormal {
		t.Errorf("unexpected null hypothesis: %s", result.Null)
	}
	t.Logf("wings: W=%f p=%f", result.Statistic, result.PValue)
}

func TestShapiroWilk_SkewedData(t *testing.T) {
	test := NewShapiroWilk()
	result, err := test.Run(context.Background(), exponentialGrid(100), 0.05)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !result.Significant {
		t.Errorf("skewed data should reject the null, got p=%f", result.PValue)
	}
	if result.PValue > 0.001 {
		t.Errorf("p = %f, want near zero for an exponential grid", result.PValue)
	}
}

func TestShapiroWilk_TinySample(t *testing.T) {
	test := NewShapiroWilk()

	// The n=3 branch uses the exact distribution of W
	result, err := test.Run(context.Background(), []float64{1, 2, 3}, 0.05)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Statistic < 0.99 {
		t.Errorf("W = %f, want about 1 for three equally spaced points", result.Statistic)
	}
	if result.Significant {
		t.Error("three points should never reject the null")
	}

	if _, err := test.Run(context.Background(), []float64{1, 2}, 0.05); err == nil {
		t.Error("expected error for n < 3")
	}
}

func TestShapiroWilk_IdenticalValues(t *testing.T) {
	test := NewShapiroWilk()
	_, err := test.Run(context.Background(), []float64{5, 5, 5, 5, 5}, 0.05)
	if err == nil {
		t.Fatal("expected error for zero-range sample")
	}
	if errors.GetCode(err) != errors.CodeValidationError {
		t.Errorf("unexpected error code: %s", errors.GetCode(err))
	}
}

func TestShapiroWilk_LargeSampleWarning(t *testing.T) {
	test := &ShapiroWilk{MaxN: 50}
	result, err := test.Run(context.Background(), wings, 0.05)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := result.Metadata["warning"]; !ok {
		t.Error("expected a warning for samples above MaxN")
	}
}

func TestDAgostino_NormalData(t *testing.T) {
	test := NewDAgostino()
	result, err := test.Run(context.Background(), wings, 0.05)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if result.Significant {
		t.Errorf("normal data should not reject the null, got p=%f", result.PValue)
	}
	if result.Statistic < 0 || result.Statistic > 6 {
		t.Errorf("K² = %f, want a small value for near-normal data", result.Statistic)
	}
	if _, ok := result.Metadata["skewness_z"]; !ok {
		t.Error("expected skewness_z in metadata")
	}
	if _, ok := result.Metadata["kurtosis_z"]; !ok {
		t.Error("expected kurtosis_z in metadata")
	}
	t.Logf("wings: K²=%f p=%f", result.Statistic, result.PValue)
}

func TestDAgostino_SkewedData(t *testing.T) {
	test := NewDAgostino()
	result, err := test.Run(context.Background(), exponentialGrid(50), 0.05)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !result.Significant {
		t.Errorf("skewed data should reject the null, got p=%f", result.PValue)
	}
}

func TestDAgostino_BimodalSample(t *testing.T) {
	test := NewDAgostino()
	// A balanced two-point sample is as platykurtic as data gets; the
	// kurtosis transform's denominator goes negative here and the test must
	// still produce a verdict.
	x := make([]float64, 100)
	for i := 50; i < 100; i++ {
		x[i] = 1
	}

	result, err := test.Run(context.Background(), x, 0.05)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !result.Significant {
		t.Errorf("bimodal data should reject the null, got p=%f", result.PValue)
	}
}

func TestDAgostino_MinimumSampleSize(t *testing.T) {
	test := NewDAgostino()
	_, err := test.Run(context.Background(), []float64{1, 2, 3, 4, 5, 6, 7}, 0.05)
	if err == nil {
		t.Fatal("expected error for n < 8")
	}
	if errors.GetCode(err) != errors.CodeValidationError {
		t.Errorf("unexpected error code: %s", errors.GetCode(err))
	}
}

func TestAndersonDarling_NormalData(t *testing.T) {
	test := NewAndersonDarling()
	result, err := test.Run(context.Background(), wings, 0.05)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if result.Significant {
		t.Errorf("normal data should not reject the null, got p=%f", result.PValue)
	}
	if result.Statistic > 0.576 {
		t.Errorf("A² = %f, should sit below the 15%% critical value for this data", result.Statistic)
	}

	criticals, ok := result.Metadata["critical_values"].(map[string]float64)
	if !ok {
		t.Fatal("expected critical_values in metadata")
	}
	if len(criticals) != 5 {
		t.Errorf("expected 5 critical values, got %d", len(criticals))
	}
	if criticals["1%"] <= criticals["5%"] {
		t.Error("critical values should grow as the level shrinks")
	}
	t.Logf("wings: A²=%f p=%f", result.Statistic, result.PValue)
}

func TestAndersonDarling_SkewedData(t *testing.T) {
	test := NewAndersonDarling()
	result, err := test.Run(context.Background(), exponentialGrid(100), 0.05)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !result.Significant {
		t.Errorf("skewed data should reject the null, got p=%f", result.PValue)
	}
}

func TestNormality_RejectsMissingValues(t *testing.T) {
	ctx := context.Background()
	withNaN := append([]float64{}, wings...)
	withNaN[3] = math.NaN()

	tests := []interface {
		Run(ctx context.Context, x []float64, alpha float64) (verdict.TestResult, error)
	}{
		NewShapiroWilk(),
		NewDAgostino(),
		NewAndersonDarling(),
	}
	for _, test := range tests {
		if _, err := test.Run(ctx, withNaN, 0.05); err == nil {
			t.Errorf("%T accepted a sample with NaN", test)
		}
	}
}
