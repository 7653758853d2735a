package report

import (
	"fmt"
	"os"
	"strconv"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/pkg/errors"

	"github.com/cwbudde/fftbench"
)

// Chart builds an HTML line chart of throughput versus transform size
// for one kind, with one series per backend. Unmeasured cells plot as
// zero so that gaps in a backend's coverage stay visible.
func Chart(m *fftbench.Matrix, kind fftbench.Kind) *charts.Line {
	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{
			Title:    fmt.Sprintf("%s transform throughput", kind.Label()),
			Subtitle: "MFlops per input length",
		}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithXAxisOpts(opts.XAxis{Name: "input len"}),
		charts.WithYAxisOpts(opts.YAxis{Name: "MFlops"}),
	)

	axis := make([]string, len(m.Sizes))
	for i, n := range m.Sizes {
		axis[i] = strconv.Itoa(n)
	}

	line.SetXAxis(axis)

	for j, d := range m.Backends {
		data := make([]opts.LineData, len(m.Sizes))

		for i := range m.Sizes {
			cell := &m.Row(kind, i).Cells[j]

			var v float64
			if cell.Measured {
				v = cell.Metric(fftbench.MetricMFlops)
			}

			data[i] = opts.LineData{Value: v}
		}

		line.AddSeries(d.Display, data)
	}

	return line
}

// WriteChart renders the throughput chart for one kind to an HTML file
// and returns its path.
func WriteChart(path string, m *fftbench.Matrix, kind fftbench.Kind) error {
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrapf(err, "report: creating %s", path)
	}
	defer f.Close()

	return errors.Wrapf(Chart(m, kind).Render(f), "report: rendering %s", path)
}
