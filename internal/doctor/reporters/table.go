package reporters

import (
	"bytes"
	"fmt"
	"os"
	"slices"
	"strings"
	"unicode/utf8"

	"github.com/charmbracelet/lipgloss"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/renderer"
	"github.com/olekukonko/tablewriter/tw"

	"github.com/smykla-skalski/ccbridge/internal/color"
	"github.com/smykla-skalski/ccbridge/internal/doctor"
)

// resultColumn is the index of the message column.
const resultColumn = 2

// boxChars are the StyleRounded border characters dimmed by dimBorders.
var boxChars = []string{"╭", "╮", "╰", "╯", "│", "─", "┬", "┴", "├", "┤", "┼"}

// StatusIcon returns a single-width icon for a result. Failures are told
// apart by severity.
func StatusIcon(r doctor.CheckResult) string {
	switch {
	case r.IsPassed():
		return "✓"
	case r.IsSkipped():
		return "-"
	case r.IsError():
		return "✗"
	case r.IsWarning():
		return "!"
	case r.Status == doctor.StatusFail:
		return "i"
	default:
		return "?"
	}
}

func iconStyle(r doctor.CheckResult, theme color.Theme) lipgloss.Style {
	switch {
	case r.IsPassed():
		return theme.Pass
	case r.IsSkipped():
		return theme.Skip
	case r.IsError():
		return theme.Fail
	default:
		return theme.Warning
	}
}

// RenderTable renders results as one table with a merged header row per
// category. Verbose mode lists details under the message in the same cell.
// A positive width is the terminal width; the result column wraps to fit it.
func RenderTable(results []doctor.CheckResult, verbose bool, width int, theme color.Theme) string {
	groups := GroupResultsByCategory(results)
	if len(groups) == 0 {
		return ""
	}

	opts := []tablewriter.Option{
		tablewriter.WithRenderer(renderer.NewBlueprint(tw.Rendition{
			Symbols: tw.NewSymbols(tw.StyleRounded),
		})),
		tablewriter.WithPadding(tw.Padding{Left: " ", Right: " "}),
		tablewriter.WithConfig(tablewriter.NewConfigBuilder().
			WithTrimSpace(tw.Off).
			Row().Merging().WithMode(tw.MergeHorizontal).Build().
			Formatting().WithAutoWrap(tw.WrapNormal).Build().
			Build().Build()),
	}

	if resultW := resultColumnWidth(width, results); resultW > 0 {
		opts = append(opts, tablewriter.WithColumnWidths(tw.Mapper[int, int]{resultColumn: resultW}))
	}

	var buf bytes.Buffer

	t := tablewriter.NewTable(&buf, opts...)
	t.Header([]string{"", "Check", "Result"})

	for _, g := range groups {
		title := theme.Header.Render(getCategoryName(g.Category))
		_ = t.Append([]string{"", title, title})

		for _, r := range g.Results {
			_ = t.Append(resultRow(r, verbose, theme))
		}
	}

	_ = t.Render()

	return dimBorders(strings.TrimRight(buf.String(), "\n"), theme)
}

// resultColumnWidth returns the cell width left for the result column once
// the icon and check columns and the four borders are placed, or 0 when
// width is unknown or leaves less than minResultWidth.
func resultColumnWidth(width int, results []doctor.CheckResult) int {
	const (
		minResultWidth = 20
		iconCell       = 3
		cellPadding    = 2
		borders        = 4
	)

	if width <= 0 {
		return 0
	}

	nameW := len("Check")
	for _, r := range results {
		nameW = max(nameW, utf8.RuneCountInString(r.Name))
	}

	resultW := width - borders - iconCell - (nameW + cellPadding)
	if resultW < minResultWidth {
		return 0
	}

	return resultW
}

// resultRow returns the icon, name and result cells for r.
func resultRow(r doctor.CheckResult, verbose bool, theme color.Theme) []string {
	lines := []string{shortenPath(r.Message)}
	if r.HasFix() && r.Status == doctor.StatusFail {
		lines[0] += " (fixable)"
	}

	if verbose {
		for _, detail := range r.Details {
			lines = append(lines, theme.Muted.Render(shortenPath(detail)))
		}
	}

	return []string{
		iconStyle(r, theme).Render(StatusIcon(r)),
		theme.CheckName.Render(r.Name),
		strings.Join(lines, "\n"),
	}
}

func dimBorders(s string, theme color.Theme) string {
	for _, ch := range boxChars {
		s = strings.ReplaceAll(s, ch, theme.Muted.Render(ch))
	}

	return s
}

// RenderSummary returns the summary line, coloring non-zero counts.
func RenderSummary(results []doctor.CheckResult, theme color.Theme) string {
	errs, warnings, passed := countResults(results)

	parts := []string{
		styleCount(errs, "error(s)", theme.Fail),
		styleCount(warnings, "warning(s)", theme.Warning),
		theme.Pass.Render(fmt.Sprintf("%d passed", passed)),
	}

	if skipped := countSkipped(results); skipped > 0 {
		parts = append(parts, theme.Skip.Render(fmt.Sprintf("%d skipped", skipped)))
	}

	return "Summary: " + strings.Join(parts, ", ")
}

func styleCount(n int, label string, style lipgloss.Style) string {
	text := fmt.Sprintf("%d %s", n, label)
	if n == 0 {
		return text
	}

	return style.Render(text)
}

func countSkipped(results []doctor.CheckResult) int {
	n := 0

	for _, r := range results {
		if r.IsSkipped() {
			n++
		}
	}

	return n
}

type categoryGroup struct {
	Category doctor.Category
	Results  []doctor.CheckResult
}

// GroupResultsByCategory groups results in categoryOrder, keeping the order
// checks were registered in. Unknown categories follow in order of first
// appearance.
func GroupResultsByCategory(results []doctor.CheckResult) []categoryGroup {
	byCategory := make(map[doctor.Category][]doctor.CheckResult)
	order := slices.Clone(categoryOrder)

	for _, r := range results {
		if !slices.Contains(order, r.Category) {
			order = append(order, r.Category)
		}

		byCategory[r.Category] = append(byCategory[r.Category], r)
	}

	var groups []categoryGroup

	for _, cat := range order {
		if rs := byCategory[cat]; len(rs) > 0 {
			groups = append(groups, categoryGroup{Category: cat, Results: rs})
		}
	}

	return groups
}

var homeDir, _ = os.UserHomeDir()

// shortenPath replaces the user's home directory with ~.
func shortenPath(s string) string {
	if homeDir == "" {
		return s
	}

	return strings.ReplaceAll(s, homeDir, "~")
}
