package doctor

import (
	"context"
	"fmt"
	"io"

	"github.com/cockroachdb/errors"

	"github.com/smykla-skalski/ccbridge/pkg/logger"
)

// ErrChecksFailed is returned when at least one error-severity check failed.
var ErrChecksFailed = errors.New("health checks failed")

// Runner orchestrates health checks and fixes
type Runner struct {
	registry *Registry
	reporter Reporter
	out      io.Writer
	logger   logger.Logger
}

// RunOptions configures the doctor run behavior
type RunOptions struct {
	// Verbose enables detailed output
	Verbose bool

	// AutoFix applies available fixes (--fix flag)
	AutoFix bool

	// Categories filters checks by category
	Categories []Category
}

// NewRunner creates a new Runner. Fix suggestions are written to out.
func NewRunner(
	registry *Registry,
	reporter Reporter,
	out io.Writer,
	logger logger.Logger,
) *Runner {
	return &Runner{
		registry: registry,
		reporter: reporter,
		out:      out,
		logger:   logger,
	}
}

// Run executes health checks and applies fixes if requested
func (r *Runner) Run(ctx context.Context, opts RunOptions) error {
	r.logger.Info("starting doctor run", "verbose", opts.Verbose, "autoFix", opts.AutoFix)

	results := r.registry.RunCategories(ctx, opts.Categories)

	r.logger.Info("checks completed", "total", len(results))

	r.reporter.Report(results, opts.Verbose)

	fixable := collectFixableResults(results)
	if len(fixable) == 0 {
		return r.determineExitError(results)
	}

	if !opts.AutoFix {
		r.suggestFixes(fixable)

		return r.determineExitError(results)
	}

	if err := r.applyFixes(ctx, fixable); err != nil {
		return errors.Wrap(err, "failed to apply fixes")
	}

	r.logger.Info("re-running failed checks after fixes")

	rerun := r.rerunChecks(ctx, fixable)
	r.reporter.Report(rerun, opts.Verbose)

	return r.determineExitError(combineResults(results, rerun))
}

// collectFixableResults returns results that have errors and fixes available
func collectFixableResults(results []CheckResult) []CheckResult {
	var fixable []CheckResult

	for _, result := range results {
		if result.IsError() && result.HasFix() {
			fixable = append(fixable, result)
		}
	}

	return fixable
}

// applyFixes applies each distinct fixer once
func (r *Runner) applyFixes(ctx context.Context, results []CheckResult) error {
	applied := make(map[string]bool)

	for _, result := range results {
		if applied[result.FixID] {
			continue
		}

		fixer, ok := r.registry.GetFixer(result.FixID)
		if !ok {
			r.logger.Error("fixer not found", "fixID", result.FixID)
			continue
		}

		r.logger.Info("applying fix", "check", result.Name, "fixer", fixer.ID())

		if err := fixer.Fix(ctx); err != nil {
			return errors.Wrapf(err, "failed to fix %q", result.Name)
		}

		applied[result.FixID] = true

		r.logger.Info("fix applied successfully", "check", result.Name)
	}

	return nil
}

// suggestFixes prints suggested fixes to the user
func (r *Runner) suggestFixes(results []CheckResult) {
	fmt.Fprintln(r.out, "\nSuggested fixes:")

	for _, result := range results {
		fixer, ok := r.registry.GetFixer(result.FixID)
		if !ok {
			continue
		}

		fmt.Fprintf(r.out, "  - %s: %s\n", result.Name, fixer.Description())
	}

	fmt.Fprintln(r.out, "\nRun 'ccbridge doctor --fix' to apply fixes automatically")
}

// rerunChecks re-runs the checks that produced the given results
func (r *Runner) rerunChecks(ctx context.Context, results []CheckResult) []CheckResult {
	names := make(map[string]bool, len(results))
	for _, result := range results {
		names[result.Name] = true
	}

	var checkers []HealthChecker

	for _, c := range r.registry.Checkers() {
		if names[c.Name()] {
			checkers = append(checkers, c)
		}
	}

	return RunCheckers(ctx, checkers)
}

// combineResults replaces original results with their rerun counterparts
func combineResults(original, rerun []CheckResult) []CheckResult {
	rerunMap := make(map[string]CheckResult, len(rerun))
	for _, result := range rerun {
		rerunMap[result.Name] = result
	}

	combined := make([]CheckResult, 0, len(original))

	for _, result := range original {
		if rerunResult, ok := rerunMap[result.Name]; ok {
			combined = append(combined, rerunResult)
		} else {
			combined = append(combined, result)
		}
	}

	return combined
}

// determineExitError determines if an error should be returned based on results
func (r *Runner) determineExitError(results []CheckResult) error {
	errorCount := 0
	warningCount := 0

	for _, result := range results {
		if result.IsError() {
			errorCount++
		} else if result.IsWarning() {
			warningCount++
		}
	}

	r.logger.Info("final status",
		"errors", errorCount,
		"warnings", warningCount,
		"total", len(results),
	)

	if errorCount > 0 {
		return errors.Wrapf(ErrChecksFailed, "%d error(s)", errorCount)
	}

	return nil
}
