// Package correlation wraps correlation and association hypothesis tests
// behind a uniform result surface. All tests share the null hypothesis that
// the two variables are unrelated.
package correlation

import (
	"fmt"
	"math"
	"sort"

	"gonum.org/v1/gonum/stat/distuv"

	"statcheck/domain/verdict"
)

// correlationPValue computes the two-tailed p-value for a correlation
// coefficient via the Student's t transformation with n-2 degrees of freedom.
func correlationPValue(r float64, n int) float64 {
	if n < 3 {
		return 1.0
	}
	if 1-r*r <= 0 {
		return 0.0 // perfect correlation
	}
	df := float64(n - 2)
	tStat := r * math.Sqrt(df/(1-r*r))
	tDist := distuv.StudentsT{Mu: 0, Sigma: 1, Nu: df}
	return 2 * tDist.Survival(math.Abs(tStat))
}

// clampCoefficient keeps a coefficient in [-1, 1] against floating point
// drift in the summation.
func clampCoefficient(r float64) float64 {
	if r > 1 {
		return 1
	}
	if r < -1 {
		return -1
	}
	return r
}

// correlationDescription renders the verdict the way an analyst reads it.
func correlationDescription(r verdict.TestResult) string {
	if r.Significant {
		return fmt.Sprintf("Reject H0: the two variables are correlated (%s coefficient=%.4f, p=%.4f)", r.TestName, r.Statistic, r.PValue)
	}
	return fmt.Sprintf("Fail to reject H0: the two variables are uncorrelated (%s coefficient=%.4f, p=%.4f)", r.TestName, r.Statistic, r.PValue)
}

// rank converts values to ranks, averaging ties.
func rank(data []float64) []float64 {
	n := len(data)
	idx := make([]int, n)
	for i := range idx {
		idx[i] = i
	}
	sort.Slice(idx, func(a, b int) bool { return data[idx[a]] < data[idx[b]] })

	ranks := make([]float64, n)
	i := 0
	for i < n {
		j := i + 1
		for j < n && data[idx[j]] == data[idx[i]] {
			j++
		}
		// Average rank across the tie group
		avg := float64(i+1) + float64(j-i-1)/2.0
		for k := i; k < j; k++ {
			ranks[idx[k]] = avg
		}
		i = j
	}
	return ranks
}
