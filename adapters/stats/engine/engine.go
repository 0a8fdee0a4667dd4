// Package engine dispatches hypothesis tests by name through one uniform
// call surface.
package engine

import (
	"context"
	"sort"

	"statcheck/adapters/stats/correlation"
	"statcheck/adapters/stats/normality"
	"statcheck/domain/verdict"
	"statcheck/internal/errors"
)

// NormalityTest is a single-sample test against the normal null.
type NormalityTest interface {
	Name() string
	Description() string
	Null() verdict.Hypothesis
	Run(ctx context.Context, x []float64, alpha float64) (verdict.TestResult, error)
}

// PairedTest is a two-sample correlation test on continuous data.
type PairedTest interface {
	Name() string
	Description() string
	Null() verdict.Hypothesis
	Run(ctx context.Context, x, y []float64, alpha float64) (verdict.TestResult, error)
}

// CategoricalTest is a two-sample association test on categorical labels.
type CategoricalTest interface {
	Name() string
	Description() string
	Null() verdict.Hypothesis
	Run(ctx context.Context, a, b []string, alpha float64) (verdict.TestResult, error)
}

// Engine holds the registered tests and the configured significance level.
type Engine struct {
	alpha       float64
	normality   map[string]NormalityTest
	paired      map[string]PairedTest
	categorical map[string]CategoricalTest
}

// New creates an engine with every supported test registered. A
// non-positive alpha falls back to the conventional 0.05.
func New(alpha float64) *Engine {
	if alpha <= 0 || alpha >= 1 {
		alpha = verdict.DefaultAlpha
	}
	e := &Engine{
		alpha:       alpha,
		normality:   make(map[string]NormalityTest),
		paired:      make(map[string]PairedTest),
		categorical: make(map[string]CategoricalTest),
	}

	for _, t := range []NormalityTest{
		normality.NewShapiroWilk(),
		normality.NewDAgostino(),
		normality.NewAndersonDarling(),
	} {
		e.normality[t.Name()] = t
	}
	for _, t := range []PairedTest{
		correlation.NewPearson(),
		correlation.NewSpearman(),
		correlation.NewKendall(),
		correlation.NewPointBiserial(),
	} {
		e.paired[t.Name()] = t
	}
	cv := correlation.NewCramersV()
	e.categorical[cv.Name()] = cv

	return e
}

// SetShapiroMaxN overrides the Shapiro-Wilk warning ceiling.
func (e *Engine) SetShapiroMaxN(n int) {
	if t, ok := e.normality["shapiro"].(*normality.ShapiroWilk); ok && n > 0 {
		t.MaxN = n
	}
}

// Alpha returns the configured significance level.
func (e *Engine) Alpha() float64 {
	return e.alpha
}

// Normality runs the named normality test on a single continuous sample.
func (e *Engine) Normality(ctx context.Context, name string, x []float64) (verdict.TestResult, error) {
	t, ok := e.normality[name]
	if !ok {
		return verdict.TestResult{}, errors.UnknownTest(name)
	}
	return t.Run(ctx, x, e.alpha)
}

// Correlation runs the named correlation test on two continuous samples.
func (e *Engine) Correlation(ctx context.Context, name string, x, y []float64) (verdict.TestResult, error) {
	t, ok := e.paired[name]
	if !ok {
		return verdict.TestResult{}, errors.UnknownTest(name)
	}
	return t.Run(ctx, x, y, e.alpha)
}

// Association runs the named categorical association test on two label
// samples.
func (e *Engine) Association(ctx context.Context, name string, a, b []string) (verdict.TestResult, error) {
	t, ok := e.categorical[name]
	if !ok {
		return verdict.TestResult{}, errors.UnknownTest(name)
	}
	return t.Run(ctx, a, b, e.alpha)
}

// ListNormalityTests returns the registered normality test names.
func (e *Engine) ListNormalityTests() []string {
	names := make([]string, 0, len(e.normality))
	for name := range e.normality {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ListCorrelationTests returns the registered correlation and association
// test names.
func (e *Engine) ListCorrelationTests() []string {
	names := make([]string, 0, len(e.paired)+len(e.categorical))
	for name := range e.paired {
		names = append(names, name)
	}
	for name := range e.categorical {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
