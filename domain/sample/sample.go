package sample

import (
	"math"

	"statcheck/internal/errors"
)

// CheckContinuous validates a continuous sample: it must hold at least minN
// values, all of them finite. NaN entries are treated as missing values and
// rejected outright; the wrapped tests cannot handle them.
func CheckContinuous(x []float64, minN int) error {
	if len(x) == 0 {
		return errors.ValidationError("sample is empty")
	}
	if len(x) < minN {
		return errors.ValidationErrorf("sample size %d below minimum %d", len(x), minN)
	}
	for i, v := range x {
		if math.IsNaN(v) {
			return errors.ValidationErrorf("sample contains missing value at index %d", i)
		}
		if math.IsInf(v, 0) {
			return errors.ValidationErrorf("sample contains non-finite value at index %d", i)
		}
	}
	return nil
}

// CheckPaired validates two continuous samples of equal length.
func CheckPaired(x, y []float64, minN int) error {
	if len(x) != len(y) {
		return errors.ValidationErrorf("paired samples have mismatched lengths %d and %d", len(x), len(y))
	}
	if err := CheckContinuous(x, minN); err != nil {
		return err
	}
	return CheckContinuous(y, minN)
}

// CheckNonConstant rejects a sample whose values are all identical; a
// correlation coefficient is undefined at zero variance.
func CheckNonConstant(x []float64) error {
	for _, v := range x {
		if v != x[0] {
			return nil
		}
	}
	return errors.ValidationError("sample is constant (zero variance)")
}

// CheckDichotomous validates that a sample carries exactly two distinct
// levels, as required for the grouping variable of a point-biserial test.
func CheckDichotomous(x []float64) error {
	if err := CheckContinuous(x, 2); err != nil {
		return err
	}
	levels := make(map[float64]struct{}, 2)
	for _, v := range x {
		levels[v] = struct{}{}
		if len(levels) > 2 {
			return errors.ValidationError("grouping variable must be dichotomous (exactly two levels)")
		}
	}
	if len(levels) < 2 {
		return errors.ValidationError("grouping variable has a single level")
	}
	return nil
}

// CheckCategorical validates a categorical sample of string labels.
func CheckCategorical(labels []string, minN int) error {
	if len(labels) == 0 {
		return errors.ValidationError("categorical sample is empty")
	}
	if len(labels) < minN {
		return errors.ValidationErrorf("categorical sample size %d below minimum %d", len(labels), minN)
	}
	for i, l := range labels {
		if l == "" {
			return errors.ValidationErrorf("categorical sample contains missing label at index %d", i)
		}
	}
	return nil
}

// CheckPairedCategorical validates two categorical samples of equal length.
func CheckPairedCategorical(a, b []string, minN int) error {
	if len(a) != len(b) {
		return errors.ValidationErrorf("paired samples have mismatched lengths %d and %d", len(a), len(b))
	}
	if err := CheckCategorical(a, minN); err != nil {
		return err
	}
	return CheckCategorical(b, minN)
}

// UniqueRatio returns the share of distinct labels in a categorical sample.
// The matrix sweep uses it to decide whether a column is genuinely
// categorical (ratio below the configured threshold).
func UniqueRatio(labels []string) float64 {
	if len(labels) == 0 {
		return 0
	}
	seen := make(map[string]struct{}, len(labels))
	for _, l := range labels {
		seen[l] = struct{}{}
	}
	return float64(len(seen)) / float64(len(labels))
}
