package reporters

import (
	"fmt"
	"io"

	"github.com/smykla-skalski/ccbridge/internal/color"
	"github.com/smykla-skalski/ccbridge/internal/doctor"
)

// TableReporter renders results as a bordered table with a colored summary.
type TableReporter struct {
	out   io.Writer
	theme color.Theme
	width int
}

// NewTableReporter creates a TableReporter. width is the terminal width used
// to size columns; 0 lets the table size itself.
func NewTableReporter(out io.Writer, theme color.Theme, width int) *TableReporter {
	return &TableReporter{out: out, theme: theme, width: width}
}

// Report renders results as a table followed by the summary line.
func (r *TableReporter) Report(results []doctor.CheckResult, verbose bool) {
	fmt.Fprintln(r.out, header)
	fmt.Fprintln(r.out)

	if tbl := RenderTable(results, verbose, r.width, r.theme); tbl != "" {
		fmt.Fprintln(r.out, tbl)
		fmt.Fprintln(r.out)
	}

	fmt.Fprintln(r.out, RenderSummary(results, r.theme))
}
