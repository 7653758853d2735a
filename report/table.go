// Package report renders the measurement matrix produced by the
// benchmark engine: a markdown throughput table, per-metric CSV files,
// and optional HTML charts. It consumes the matrix read-only; all
// formatting and file-naming policy lives here, outside the engines.
package report

import (
	"fmt"
	"io"
	"strconv"

	"github.com/olekukonko/tablewriter"

	"github.com/cwbudde/fftbench"
)

// Table writes the MFlops matrix as a markdown table, one row per size
// and one column per kind and backend. Unmeasured cells render as n/a.
func Table(w io.Writer, m *fftbench.Matrix, kinds []fftbench.Kind) {
	header := []string{"input len"}
	for _, kind := range kinds {
		for _, d := range m.Backends {
			header = append(header, fmt.Sprintf("%s %s", kind.String(), d.Display))
		}
	}

	t := tablewriter.NewWriter(w)
	t.SetHeader(header)
	t.SetAutoFormatHeaders(false)
	t.SetAutoWrapText(false)
	t.SetBorders(tablewriter.Border{Left: true, Top: false, Right: true, Bottom: false})
	t.SetCenterSeparator("|")

	for i, n := range m.Sizes {
		row := []string{strconv.Itoa(n)}

		for _, kind := range kinds {
			cells := m.Row(kind, i).Cells
			for j := range cells {
				if cells[j].Measured {
					row = append(row, fmt.Sprintf("%.0f", cells[j].Metric(fftbench.MetricMFlops)))
				} else {
					row = append(row, "n/a")
				}
			}
		}

		t.Append(row)
	}

	t.Render()
	fmt.Fprintln(w, " (numbers are given in MFlops)")
}
