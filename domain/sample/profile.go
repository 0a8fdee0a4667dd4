package sample

import (
	"github.com/montanaflynn/stats"
)

// SummaryStats describes a continuous sample for result metadata and reports
type SummaryStats struct {
	Mean   float64 `json:"mean"`
	StdDev float64 `json:"std_dev"`
	Min    float64 `json:"min"`
	Max    float64 `json:"max"`
	Median float64 `json:"median"`
	Q25    float64 `json:"q25"`
	Q75    float64 `json:"q75"`
}

// Profile computes summary statistics for a continuous sample.
// The caller is expected to have validated the sample first.
func Profile(data []float64) SummaryStats {
	mean, _ := stats.Mean(data)
	stdDev, _ := stats.StandardDeviationSample(data)
	min, _ := stats.Min(data)
	max, _ := stats.Max(data)
	median, _ := stats.Median(data)
	q25, _ := stats.Percentile(data, 25)
	q75, _ := stats.Percentile(data, 75)

	return SummaryStats{
		Mean:   mean,
		StdDev: stdDev,
		Min:    min,
		Max:    max,
		Median: median,
		Q25:    q25,
		Q75:    q75,
	}
}
