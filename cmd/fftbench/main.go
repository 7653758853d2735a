// Command fftbench validates every registered FFT backend against the
// reference transform and benchmarks them across a catalogue of sizes,
// exporting the results as a markdown table, CSV files, and optional
// HTML charts.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"golang.org/x/sys/cpu"

	"github.com/cwbudde/fftbench"
	"github.com/cwbudde/fftbench/internal/align"
	"github.com/cwbudde/fftbench/report"

	_ "github.com/cwbudde/fftbench/backends/dft"
	_ "github.com/cwbudde/fftbench/backends/fftpack"
	_ "github.com/cwbudde/fftbench/backends/pack"
)

type options struct {
	realOnly     bool
	cplxOnly     bool
	nonPow2      bool
	noTable      bool
	charts       bool
	skipValidate bool
	fullEffort   bool
	outDir       string
	seed         int64
	verbose      bool
}

func main() {
	var o options

	root := &cobra.Command{
		Use:           "fftbench",
		Short:         "validate and benchmark interchangeable FFT backends",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(&o)
		},
	}

	root.Flags().BoolVar(&o.realOnly, "real", false, "process only real transforms")
	root.Flags().BoolVar(&o.cplxOnly, "cplx", false, "process only complex transforms")
	root.Flags().BoolVar(&o.nonPow2, "non-pow2", false, "benchmark the non-power-of-two catalogue")
	root.Flags().BoolVar(&o.noTable, "no-table", false, "suppress the stdout result table")
	root.Flags().BoolVar(&o.charts, "charts", false, "write HTML throughput charts")
	root.Flags().BoolVar(&o.skipValidate, "skip-validate", false, "benchmark without validating first")
	root.Flags().BoolVar(&o.fullEffort, "full-effort", false, "spend extra setup effort per plan")
	root.Flags().StringVar(&o.outDir, "out-dir", ".", "directory for CSV and chart output")
	root.Flags().Int64Var(&o.seed, "seed", 1, "seed for the validation input generator")
	root.Flags().BoolVarP(&o.verbose, "verbose", "v", false, "enable debug logging")

	if err := root.Execute(); err != nil {
		logrus.WithError(err).Error("fftbench failed")
		os.Exit(1)
	}
}

func run(o *options) error {
	log := logrus.New()
	log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	if o.verbose {
		log.SetLevel(logrus.DebugLevel)
	}

	if o.realOnly && o.cplxOnly {
		return fmt.Errorf("--real and --cplx are mutually exclusive")
	}

	kinds := []fftbench.Kind{fftbench.KindReal, fftbench.KindComplex}
	switch {
	case o.realOnly:
		kinds = kinds[:1]
	case o.cplxOnly:
		kinds = kinds[1:]
	}

	logCPUFeatures(log)

	if err := alignmentSweep(); err != nil {
		return err
	}

	h := fftbench.NewHarness(fftbench.DefaultRegistry, fftbench.Options{FullEffort: o.fullEffort}, log)
	h.Seed = o.seed

	if len(h.Backends) == 0 {
		return fftbench.ErrNoBackends
	}

	for _, d := range h.Backends {
		log.WithFields(logrus.Fields{
			"backend":   d.Name,
			"candidate": d.Candidate,
			"reference": d.Reference,
		}).Debug("registered")
	}

	if !o.skipValidate {
		for _, kind := range kinds {
			if err := h.Validate(kind); err != nil {
				return err
			}

			log.WithField("kind", kind.String()).Info("validation passed")
		}
	}

	if err := os.MkdirAll(o.outDir, 0o755); err != nil {
		return err
	}

	sizes := fftbench.BenchmarkSizesPow2()
	catalogue := "pow2"

	if o.nonPow2 {
		sizes = fftbench.BenchmarkSizesNonPow2()
		catalogue = "non2"
	}

	matrix := fftbench.NewMatrix(h.Backends, sizes)

	for _, kind := range kinds {
		t0 := time.Now()

		iterCal, err := h.Calibrate(kind)
		if err != nil {
			return err
		}

		log.WithFields(logrus.Fields{
			"kind":    kind.String(),
			"iterCal": fmt.Sprintf("%.0f", iterCal),
			"took":    time.Since(t0).Round(time.Millisecond),
		}).Info("calibrated")

		for i, n := range sizes {
			row, err := h.BenchmarkSize(n, kind, iterCal)
			if err != nil {
				return err
			}

			matrix.SetRow(kind, i, row)
			log.WithFields(logrus.Fields{
				"kind": kind.String(),
				"n":    n,
			}).Debug("benchmarked")
		}
	}

	if !o.noTable {
		report.Table(os.Stdout, matrix, kinds)
	}

	paths, err := report.WriteAll(o.outDir, catalogue, matrix, kinds)
	if err != nil {
		return err
	}

	for _, p := range paths {
		log.WithField("file", p).Debug("wrote csv")
	}

	if o.charts {
		for _, kind := range kinds {
			path := filepath.Join(o.outDir, fmt.Sprintf("%s-%s-mflops.html", kind, catalogue))
			if err := report.WriteChart(path, matrix, kind); err != nil {
				return err
			}

			log.WithField("file", path).Info("wrote chart")
		}
	}

	return nil
}

// alignmentSweep allocates and touches buffers of every small length to
// confirm the aligned allocator yields usable, boundary-aligned slices
// before any of them back a timed loop.
func alignmentSweep() error {
	for n := 1; n <= 2048; n++ {
		buf, backing := align.Float32(n)
		if len(buf) != n || backing == nil {
			return fmt.Errorf("aligned alloc of %d floats failed", n)
		}

		for k := range buf {
			buf[k] = float32(k)
		}
	}

	return nil
}

func logCPUFeatures(log *logrus.Logger) {
	log.WithFields(logrus.Fields{
		"sse2":   cpu.X86.HasSSE2,
		"avx":    cpu.X86.HasAVX,
		"avx2":   cpu.X86.HasAVX2,
		"avx512": cpu.X86.HasAVX512F,
		"neon":   cpu.ARM64.HasASIMD,
	}).Debug("cpu features")
}
