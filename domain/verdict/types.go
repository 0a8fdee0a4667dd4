package verdict

// DefaultAlpha is the significance level used when the caller does not
// configure one.
const DefaultAlpha = 0.05

// Hypothesis names the null hypothesis a test evaluates
type Hypothesis string

const (
	NullNormal       Hypothesis = "the population is normally distributed"
	NullUncorrelated Hypothesis = "the two variables are not correlated"
	NullIndependent  Hypothesis = "the two variables are not associated"
)

// EffectLabel classifies effect size magnitude
type EffectLabel string

const (
	EffectNone   EffectLabel = ""
	EffectSmall  EffectLabel = "small"
	EffectMedium EffectLabel = "medium"
	EffectLarge  EffectLabel = "large"
)

// TestResult contains the outcome of a single hypothesis test invocation.
// It is produced by one call and consumed immediately; there is no identity
// or lifecycle beyond that.
type TestResult struct {
	TestName    string                 `json:"test_name"`
	Null        Hypothesis             `json:"null_hypothesis"`
	Statistic   float64                `json:"statistic"`
	PValue      float64                `json:"p_value"`
	Alpha       float64                `json:"alpha"`
	Significant bool                   `json:"significant"` // true iff PValue < Alpha
	SampleSize  int                    `json:"sample_size"`
	EffectLabel EffectLabel            `json:"effect_label,omitempty"`
	Description string                 `json:"description"`
	Metadata    map[string]interface{} `json:"metadata,omitempty"`
}

// NewTestResult builds a result record and applies the significance verdict.
// The p-value is clamped to [0, 1] so downstream consumers never see an
// out-of-range value from a numerical edge case.
func NewTestResult(testName string, null Hypothesis, statistic, pValue, alpha float64, sampleSize int) TestResult {
	if pValue < 0 {
		pValue = 0
	}
	if pValue > 1 {
		pValue = 1
	}
	return TestResult{
		TestName:    testName,
		Null:        null,
		Statistic:   statistic,
		PValue:      pValue,
		Alpha:       alpha,
		Significant: pValue < alpha,
		SampleSize:  sampleSize,
	}
}

// RejectsNull reports whether the null hypothesis is rejected at Alpha.
func (r TestResult) RejectsNull() bool {
	return r.Significant
}
