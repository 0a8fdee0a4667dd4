// Package normality wraps normality hypothesis tests behind a uniform
// result surface. All tests share the null hypothesis that the population
// is normally distributed.
package normality

import (
	"fmt"

	"statcheck/domain/verdict"
)

// normalityDescription renders the verdict the way an analyst reads it.
func normalityDescription(testName string, r verdict.TestResult) string {
	if r.Significant {
		return fmt.Sprintf("Reject H0: the distribution is NOT normally distributed (%s statistic=%.4f, p=%.4f)", testName, r.Statistic, r.PValue)
	}
	return fmt.Sprintf("Fail to reject H0: the distribution is normally distributed (%s statistic=%.4f, p=%.4f)", testName, r.Statistic, r.PValue)
}
