package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"statcheck/adapters/dataset"
	"statcheck/adapters/stats/engine"
	"statcheck/internal/config"
	"statcheck/internal/report"
)

func main() {
	// A missing .env is fine; the config falls back to defaults
	_ = godotenv.Load()

	rootCmd := &cobra.Command{
		Use:   "statcheck",
		Short: "Uniform dispatch over normality and correlation hypothesis tests",
	}

	rootCmd.AddCommand(
		newNormalityCmd(),
		newCorrelationCmd(),
		newMatrixCmd(),
		newTestsCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newEngine(alphaFlag float64) (*engine.Engine, *config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, err
	}
	alpha := cfg.Stats.Alpha
	if alphaFlag > 0 {
		alpha = alphaFlag
	}
	eng := engine.New(alpha)
	eng.SetShapiroMaxN(cfg.Stats.ShapiroMaxN)
	return eng, cfg, nil
}

func newNormalityCmd() *cobra.Command {
	var test string
	var alpha float64

	cmd := &cobra.Command{
		Use:   "normality [data-file] [column]",
		Short: "Run a normality test on one continuous column",
		Long: `Run a normality test on a continuous column of a CSV or XLSX file.

H0: the population is normally distributed.

Example: statcheck normality measurements.csv wing_length --test shapiro --alpha 0.05`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			eng, _, err := newEngine(alpha)
			if err != nil {
				return err
			}

			ds, err := dataset.NewReader(args[0]).ReadData()
			if err != nil {
				return err
			}
			x, err := ds.NumericColumn(args[1])
			if err != nil {
				return err
			}

			result, err := eng.Normality(cmd.Context(), test, x)
			if err != nil {
				return err
			}
			fmt.Println(report.ResultMarkdown(result))
			return nil
		},
	}

	cmd.Flags().StringVar(&test, "test", "dagostino", "Normality test: shapiro|dagostino|anderson")
	cmd.Flags().Float64Var(&alpha, "alpha", 0, "Significance level (default from config, 0.05)")
	return cmd
}

func newCorrelationCmd() *cobra.Command {
	var test string
	var alpha float64

	cmd := &cobra.Command{
		Use:   "correlation [data-file] [column-x] [column-y]",
		Short: "Run a correlation or association test on two columns",
		Long: `Run a correlation test on two columns of a CSV or XLSX file.

H0: the two variables are not correlated (not associated, for cramersv).
cramersv treats both columns as categorical labels; the others require
continuous data.

Example: statcheck correlation survey.csv height weight --test spearman`,
		Args: cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			eng, _, err := newEngine(alpha)
			if err != nil {
				return err
			}

			ds, err := dataset.NewReader(args[0]).ReadData()
			if err != nil {
				return err
			}

			if test == "cramersv" {
				a, err := ds.LabelColumn(args[1])
				if err != nil {
					return err
				}
				b, err := ds.LabelColumn(args[2])
				if err != nil {
					return err
				}
				result, err := eng.Association(cmd.Context(), test, a, b)
				if err != nil {
					return err
				}
				fmt.Println(report.ResultMarkdown(result))
				return nil
			}

			x, err := ds.NumericColumn(args[1])
			if err != nil {
				return err
			}
			y, err := ds.NumericColumn(args[2])
			if err != nil {
				return err
			}
			result, err := eng.Correlation(cmd.Context(), test, x, y)
			if err != nil {
				return err
			}
			fmt.Println(report.ResultMarkdown(result))
			return nil
		},
	}

	cmd.Flags().StringVar(&test, "test", "pearson", "Test: pearson|spearman|kendall|pointbiserial|cramersv")
	cmd.Flags().Float64Var(&alpha, "alpha", 0, "Significance level (default from config, 0.05)")
	return cmd
}

func newMatrixCmd() *cobra.Command {
	var test string
	var alpha float64
	var heatmapFile string
	var reportFile string

	cmd := &cobra.Command{
		Use:   "matrix [data-file] [columns...]",
		Short: "Compute a symmetric coefficient matrix over column pairs",
		Long: `Compute the symmetric matrix of test coefficients over all pairs of the
named columns (all columns when none are named), export it as an XLSX
heatmap, and optionally render an HTML report.

Example: statcheck matrix survey.csv height weight age --test spearman --heatmap matrix.xlsx`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			eng, cfg, err := newEngine(alpha)
			if err != nil {
				return err
			}

			ds, err := dataset.NewReader(args[0]).ReadData()
			if err != nil {
				return err
			}

			columns := args[1:]
			if len(columns) == 0 {
				columns = ds.Headers
			}

			req := engine.MatrixRequest{
				Test:                 test,
				Columns:              columns,
				CategoricalThreshold: cfg.Stats.CategoricalThreshold,
			}
			if test == "cramersv" {
				req.Labels = make(map[string][]string, len(columns))
				for _, col := range columns {
					labels, err := ds.LabelColumn(col)
					if err != nil {
						return err
					}
					req.Labels[col] = labels
				}
			} else {
				req.Numeric = make(map[string][]float64, len(columns))
				for _, col := range columns {
					values, err := ds.NumericColumn(col)
					if err != nil {
						return err
					}
					req.Numeric[col] = values
				}
			}

			result, err := eng.Matrix(cmd.Context(), req)
			if err != nil {
				return err
			}

			md := report.MatrixMarkdown(result)
			fmt.Println(md)

			out := heatmapFile
			if out == "" {
				out = cfg.Output.HeatmapFile
			}
			if err := dataset.WriteHeatmap(out, result); err != nil {
				return err
			}
			fmt.Printf("Heatmap written to %s\n", out)

			if reportFile == "" {
				reportFile = cfg.Output.ReportFile
			}
			if reportFile != "" {
				if err := os.WriteFile(reportFile, report.RenderHTML(md), 0644); err != nil {
					return err
				}
				fmt.Printf("Report written to %s\n", reportFile)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&test, "test", "pearson", "Test: pearson|spearman|kendall|pointbiserial|cramersv")
	cmd.Flags().Float64Var(&alpha, "alpha", 0, "Significance level (default from config, 0.05)")
	cmd.Flags().StringVar(&heatmapFile, "heatmap", "", "Heatmap XLSX output path")
	cmd.Flags().StringVar(&reportFile, "report", "", "HTML report output path")
	return cmd
}

func newTestsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "tests",
		Short: "List available tests",
		RunE: func(cmd *cobra.Command, args []string) error {
			eng, _, err := newEngine(0)
			if err != nil {
				return err
			}
			fmt.Println("normality:")
			for _, name := range eng.ListNormalityTests() {
				fmt.Printf("  %s\n", name)
			}
			fmt.Println("correlation:")
			for _, name := range eng.ListCorrelationTests() {
				fmt.Printf("  %s\n", name)
			}
			return nil
		},
	}
}
