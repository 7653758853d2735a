package report

import (
	"encoding/csv"
	"fmt"
	"math"
	"os"
	"path/filepath"

	"github.com/pkg/errors"

	"github.com/cwbudde/fftbench"
)

// WriteCSV exports one metric of one transform kind to
// <dir>/<kind>-<catalogue>-<metric>.csv and returns the file path.
// Backends without a single measured cell for the kind are omitted, and
// sizes with no measured cell are skipped.
func WriteCSV(dir, catalogue string, m *fftbench.Matrix, kind fftbench.Kind, metric fftbench.MetricKind) (string, error) {
	name := fmt.Sprintf("%s-%s-%s.csv", kind, catalogue, metric.FilePart())
	path := filepath.Join(dir, name)

	f, err := os.Create(path)
	if err != nil {
		return "", errors.Wrapf(err, "report: creating %s", path)
	}
	defer f.Close()

	have := measuredBackends(m, kind)

	w := csv.NewWriter(f)

	header := []string{"size", "log2"}
	for j, d := range m.Backends {
		if have[j] {
			header = append(header, d.Name)
		}
	}

	if err := w.Write(header); err != nil {
		return "", errors.Wrapf(err, "report: writing %s", path)
	}

	for i, n := range m.Sizes {
		row := m.Row(kind, i)
		if !anyMeasured(row) {
			continue
		}

		record := []string{
			fmt.Sprintf("%d", n),
			fmt.Sprintf("%.3f", math.Log2(float64(n))),
		}

		for j := range row.Cells {
			if have[j] {
				record = append(record, fmt.Sprintf("%f", row.Cells[j].Metric(metric)))
			}
		}

		if err := w.Write(record); err != nil {
			return "", errors.Wrapf(err, "report: writing %s", path)
		}
	}

	w.Flush()

	return path, errors.Wrapf(w.Error(), "report: flushing %s", path)
}

// WriteAll exports the default-saved metric set for each kind and
// returns the written paths.
func WriteAll(dir, catalogue string, m *fftbench.Matrix, kinds []fftbench.Kind) ([]string, error) {
	var paths []string

	for _, kind := range kinds {
		for _, metric := range fftbench.AllMetrics() {
			if !metric.Saved() {
				continue
			}

			path, err := WriteCSV(dir, catalogue, m, kind, metric)
			if err != nil {
				return paths, err
			}

			paths = append(paths, path)
		}
	}

	return paths, nil
}

func measuredBackends(m *fftbench.Matrix, kind fftbench.Kind) []bool {
	have := make([]bool, len(m.Backends))

	for i := range m.Sizes {
		row := m.Row(kind, i)
		for j := range row.Cells {
			if row.Cells[j].Measured {
				have[j] = true
			}
		}
	}

	return have
}

func anyMeasured(row *fftbench.Row) bool {
	for j := range row.Cells {
		if row.Cells[j].Measured {
			return true
		}
	}

	return false
}
