package engine

import (
	"context"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"statcheck/domain/sample"
	"statcheck/internal"
	"statcheck/internal/errors"
)

// MatrixRequest asks for a symmetric matrix of test coefficients over all
// column pairs of a dataset.
type MatrixRequest struct {
	Test    string
	Columns []string
	// Numeric holds the column data for the continuous correlation tests.
	Numeric map[string][]float64
	// Labels holds the column data for cramersv.
	Labels map[string][]string
	// CategoricalThreshold is the maximum unique/count ratio for a column
	// to be accepted as categorical (cramersv only). Zero means the 0.05
	// default.
	CategoricalThreshold float64
}

// MatrixResult is the outcome of a pairwise sweep.
type MatrixResult struct {
	SweepID      string      `json:"sweep_id"`
	Test         string      `json:"test"`
	Alpha        float64     `json:"alpha"`
	Columns      []string    `json:"columns"`
	Coefficients [][]float64 `json:"coefficients"`
	PValues      [][]float64 `json:"p_values"`
	Comparisons  int         `json:"comparisons"`
	RuntimeMs    int64       `json:"runtime_ms"`
}

// Matrix computes the symmetric coefficient matrix for the requested test
// over every column pair. Pairs run concurrently; each cell is written by
// exactly one goroutine.
func (e *Engine) Matrix(ctx context.Context, req MatrixRequest) (*MatrixResult, error) {
	if len(req.Columns) < 2 {
		return nil, errors.ValidationError("matrix sweep needs at least two columns")
	}

	categorical := false
	if _, ok := e.categorical[req.Test]; ok {
		categorical = true
	} else if _, ok := e.paired[req.Test]; !ok {
		return nil, errors.UnknownTest(req.Test)
	}

	if categorical {
		if err := e.checkCategoricalColumns(req); err != nil {
			return nil, err
		}
	} else {
		for _, col := range req.Columns {
			if _, ok := req.Numeric[col]; !ok {
				return nil, errors.ValidationErrorf("column %q has no numeric data", col)
			}
		}
	}

	k := len(req.Columns)
	result := &MatrixResult{
		SweepID:      uuid.NewString(),
		Test:         req.Test,
		Alpha:        e.alpha,
		Columns:      req.Columns,
		Coefficients: make([][]float64, k),
		PValues:      make([][]float64, k),
	}
	for i := range result.Coefficients {
		result.Coefficients[i] = make([]float64, k)
		result.PValues[i] = make([]float64, k)
	}

	internal.DefaultLogger.Info("matrix sweep %s: test=%s columns=%d", result.SweepID, req.Test, k)
	start := time.Now()

	g, gctx := errgroup.WithContext(ctx)
	for i := 0; i < k; i++ {
		for j := i; j < k; j++ {
			i, j := i, j
			g.Go(func() error {
				var coeff, p float64
				var err error
				if categorical {
					res, runErr := e.Association(gctx, req.Test, req.Labels[req.Columns[i]], req.Labels[req.Columns[j]])
					coeff, p, err = res.Statistic, res.PValue, runErr
				} else {
					res, runErr := e.Correlation(gctx, req.Test, req.Numeric[req.Columns[i]], req.Numeric[req.Columns[j]])
					coeff, p, err = res.Statistic, res.PValue, runErr
				}
				if err != nil {
					return errors.Wrapf(err, "pair (%s, %s)", req.Columns[i], req.Columns[j])
				}
				result.Coefficients[i][j] = coeff
				result.Coefficients[j][i] = coeff
				result.PValues[i][j] = p
				result.PValues[j][i] = p
				return nil
			})
		}
	}
	if err := g.Wait(); err != nil {
		internal.DefaultLogger.Error("matrix sweep %s failed: %v", result.SweepID, err)
		return nil, err
	}

	result.Comparisons = k * (k + 1) / 2
	result.RuntimeMs = time.Since(start).Milliseconds()
	internal.DefaultLogger.Info("matrix sweep %s: %d comparisons in %dms", result.SweepID, result.Comparisons, result.RuntimeMs)
	return result, nil
}

// checkCategoricalColumns rejects columns that look continuous before a
// cramersv sweep; the test is only meaningful on categorical data.
func (e *Engine) checkCategoricalColumns(req MatrixRequest) error {
	threshold := req.CategoricalThreshold
	if threshold <= 0 {
		threshold = 0.05
	}
	for _, col := range req.Columns {
		labels, ok := req.Labels[col]
		if !ok {
			return errors.ValidationErrorf("column %q has no label data", col)
		}
		if ratio := sample.UniqueRatio(labels); ratio >= threshold {
			return errors.ValidationErrorf(
				"column %q looks continuous (unique ratio %.3f >= %.3f); cramersv only works for categorical data",
				col, ratio, threshold)
		}
	}
	return nil
}
