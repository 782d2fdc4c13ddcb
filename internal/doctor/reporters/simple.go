// Package reporters provides output formatting for doctor check results
package reporters

import (
	"fmt"
	"io"
	"strings"

	"github.com/smykla-skalski/ccbridge/internal/doctor"
)

// header is printed before any results.
const header = "Checking ccbridge health..."

// categoryOrder defines the display order for categories
var categoryOrder = []doctor.Category{
	doctor.CategoryTools,
	doctor.CategorySession,
	doctor.CategoryConfig,
	doctor.CategoryServer,
	doctor.CategoryHook,
	doctor.CategoryLog,
}

// categoryNames maps categories to display names
var categoryNames = map[doctor.Category]string{
	doctor.CategoryTools:   "Tools",
	doctor.CategorySession: "Session",
	doctor.CategoryConfig:  "Configuration",
	doctor.CategoryServer:  "Control Server",
	doctor.CategoryHook:    "Hook Registration",
	doctor.CategoryLog:     "Logging",
}

// SimpleReporter provides checklist-style output without colors or tables
type SimpleReporter struct {
	out io.Writer
}

// NewSimpleReporter creates a new SimpleReporter writing to out
func NewSimpleReporter(out io.Writer) *SimpleReporter {
	return &SimpleReporter{out: out}
}

// Report outputs the results in a simple checklist format
func (r *SimpleReporter) Report(results []doctor.CheckResult, verbose bool) {
	fmt.Fprintln(r.out, header)
	fmt.Fprintln(r.out)

	for _, g := range GroupResultsByCategory(results) {
		fmt.Fprintf(r.out, "%s:\n", getCategoryName(g.Category))

		for _, result := range g.Results {
			r.printResult(result, verbose)
		}

		fmt.Fprintln(r.out)
	}

	errorCount, warningCount, passedCount := countResults(results)

	fmt.Fprintf(r.out, "Summary: %d error(s), %d warning(s), %d passed\n",
		errorCount, warningCount, passedCount)
}

// getCategoryName returns the display name for a category
func getCategoryName(category doctor.Category) string {
	if name, ok := categoryNames[category]; ok {
		return name
	}

	s := string(category)
	if s == "" {
		return "Other"
	}

	return strings.ToUpper(s[:1]) + s[1:]
}

func (r *SimpleReporter) printResult(result doctor.CheckResult, verbose bool) {
	fmt.Fprintf(r.out, "  %s %s", StatusIcon(result), result.Name)

	if result.Message != "" {
		fmt.Fprintf(r.out, " - %s", shortenPath(result.Message))
	}

	fmt.Fprintln(r.out)

	if verbose {
		for _, detail := range result.Details {
			fmt.Fprintf(r.out, "     %s\n", shortenPath(detail))
		}
	}

	if result.HasFix() && result.Status == doctor.StatusFail {
		fmt.Fprintln(r.out, "     -> Run: ccbridge doctor --fix")
	}
}

// countResults counts errors, warnings, and passed checks
func countResults(results []doctor.CheckResult) (errors, warnings, passed int) {
	for _, result := range results {
		switch {
		case result.IsPassed():
			passed++
		case result.IsError():
			errors++
		case result.IsWarning():
			warnings++
		}
	}

	return errors, warnings, passed
}
