// Package report renders test results as markdown and HTML.
package report

import (
	"fmt"
	"strings"

	"github.com/gomarkdown/markdown"
	"github.com/gomarkdown/markdown/html"
	"github.com/gomarkdown/markdown/parser"

	"statcheck/adapters/stats/engine"
	"statcheck/domain/verdict"
)

// ResultMarkdown renders a single test result as a markdown fragment.
func ResultMarkdown(r verdict.TestResult) string {
	var b strings.Builder
	fmt.Fprintf(&b, "## %s\n\n", r.TestName)
	fmt.Fprintf(&b, "H0: %s\n\n", r.Null)
	fmt.Fprintf(&b, "| statistic | p-value | alpha | significant | n |\n")
	fmt.Fprintf(&b, "|---|---|---|---|---|\n")
	fmt.Fprintf(&b, "| %.6f | %.6f | %.3g | %t | %d |\n\n", r.Statistic, r.PValue, r.Alpha, r.Significant, r.SampleSize)
	if r.EffectLabel != verdict.EffectNone {
		fmt.Fprintf(&b, "Effect size: %s\n\n", r.EffectLabel)
	}
	fmt.Fprintf(&b, "%s\n", r.Description)
	return b.String()
}

// MatrixMarkdown renders a matrix sweep as a markdown table of
// coefficients.
func MatrixMarkdown(m *engine.MatrixResult) string {
	var b strings.Builder
	fmt.Fprintf(&b, "## %s coefficient matrix\n\n", m.Test)
	fmt.Fprintf(&b, "Sweep %s: %d comparisons at alpha=%.2g in %dms\n\n", m.SweepID, m.Comparisons, m.Alpha, m.RuntimeMs)

	fmt.Fprintf(&b, "| |")
	for _, col := range m.Columns {
		fmt.Fprintf(&b, " %s |", col)
	}
	fmt.Fprintf(&b, "\n|---|")
	for range m.Columns {
		fmt.Fprintf(&b, "---|")
	}
	fmt.Fprintf(&b, "\n")
	for i, col := range m.Columns {
		fmt.Fprintf(&b, "| **%s** |", col)
		for j := range m.Columns {
			fmt.Fprintf(&b, " %.2f |", m.Coefficients[i][j])
		}
		fmt.Fprintf(&b, "\n")
	}
	return b.String()
}

// RenderHTML converts a markdown report into a standalone HTML document.
func RenderHTML(md string) []byte {
	p := parser.NewWithExtensions(parser.CommonExtensions | parser.Tables)
	renderer := html.NewRenderer(html.RendererOptions{
		Flags: html.CommonFlags | html.CompletePage,
		Title: "statcheck report",
	})
	return markdown.ToHTML([]byte(md), p, renderer)
}
