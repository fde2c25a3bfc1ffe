// Command sim-stats steps a simulation headlessly, plots one of its stats
// as an ASCII chart and optionally saves the final frame as a PNG.
package main

import (
	"errors"
	"flag"
	"fmt"
	"image/png"
	"io"
	"log"
	"log/slog"
	"maps"
	"os"
	"slices"
	"strings"

	"github.com/guptarohit/asciigraph"

	"canvas-sims/internal/app"
	"canvas-sims/internal/core"
	"canvas-sims/internal/render"
	_ "canvas-sims/internal/sims/all"
)

type options struct {
	cfg    *app.Config
	steps  int
	metric string
	height int
	width  int
	png    string
}

func main() {
	if err := run(os.Args[1:], os.Stdout, os.Stderr); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			os.Exit(2)
		}
		log.Fatal(err)
	}
}

func run(args []string, stdout, stderr io.Writer) error {
	opts := options{cfg: app.NewConfig()}
	fs := flag.NewFlagSet("sim-stats", flag.ContinueOnError)
	fs.SetOutput(stderr)
	opts.cfg.Bind(fs)
	fs.IntVar(&opts.steps, "steps", 500, "ticks to simulate")
	fs.StringVar(&opts.metric, "metric", "", "stat to plot (default: first reported)")
	fs.IntVar(&opts.height, "height", 12, "chart height in rows")
	fs.IntVar(&opts.width, "width", 0, "chart width in columns (0 keeps one column per tick)")
	fs.StringVar(&opts.png, "png", "", "write the final frame to this PNG file")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if opts.steps <= 0 {
		return fmt.Errorf("steps must be positive, got %d", opts.steps)
	}

	closer, err := opts.cfg.SetupLogging(stderr)
	if err != nil {
		return err
	}
	defer closer.Close()

	sim, _, err := opts.cfg.Build()
	if err != nil {
		return err
	}
	stats, ok := sim.(core.StatsProvider)
	if !ok {
		return fmt.Errorf("sim %q reports no stats", sim.Name())
	}
	if opts.metric == "" {
		opts.metric = defaultMetric(stats.Stats())
	}

	size := sim.Size()
	canvas := render.NewPixelCanvas(size.W, size.H)
	series := make([]float64, 0, opts.steps)
	last := map[string]float64{}
	for i := 0; i < opts.steps; i++ {
		if err := sim.Step(); err != nil {
			return fmt.Errorf("tick %d: %w", i, err)
		}
		if opts.png != "" {
			sim.Draw(canvas)
		}
		last = stats.Stats()
		v, ok := last[opts.metric]
		if !ok {
			return fmt.Errorf("sim %q has no stat %q (have %s)", sim.Name(), opts.metric, strings.Join(sortedKeys(last), ", "))
		}
		series = append(series, v)
	}
	slog.Info("simulated", "sim", sim.Name(), "steps", opts.steps, "metric", opts.metric)

	plotOpts := []asciigraph.Option{
		asciigraph.Height(opts.height),
		asciigraph.Caption(fmt.Sprintf("%s %s over %d ticks", sim.Name(), opts.metric, opts.steps)),
	}
	if opts.width > 0 {
		plotOpts = append(plotOpts, asciigraph.Width(opts.width))
	}
	fmt.Fprintln(stdout, asciigraph.Plot(series, plotOpts...))
	fmt.Fprintln(stdout)
	for _, k := range sortedKeys(last) {
		fmt.Fprintf(stdout, "%-12s %12.4f\n", k, last[k])
	}

	if opts.png != "" {
		if err := writePNG(opts.png, canvas); err != nil {
			return err
		}
		slog.Info("frame saved", "file", opts.png)
	}
	return nil
}

func defaultMetric(stats map[string]float64) string {
	keys := sortedKeys(stats)
	for _, k := range keys {
		if k != "tick" {
			return k
		}
	}
	return "tick"
}

func sortedKeys(m map[string]float64) []string {
	return slices.Sorted(maps.Keys(m))
}

func writePNG(path string, canvas *render.PixelCanvas) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := png.Encode(f, canvas.Image()); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
