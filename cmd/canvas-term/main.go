// Command canvas-term runs a simulation in the terminal, two canvas rows per
// text row.
package main

import (
	"context"
	"flag"
	"io"
	"log"
	"os/signal"
	"syscall"

	"github.com/gdamore/tcell/v2"

	"canvas-sims/internal/app"
	"canvas-sims/internal/core"
	_ "canvas-sims/internal/sims/all"
	"canvas-sims/internal/term"
)

func main() {
	cfg := app.NewConfig()
	cfg.Bind(flag.CommandLine)
	fps := flag.Int("fps", 30, "terminal redraws per second")
	status := flag.Bool("status", true, "show a status line with sim stats")
	flag.Parse()

	// Logging to stderr would tear the screen; without -log-file logs are dropped.
	closer, err := cfg.SetupLogging(io.Discard)
	if err != nil {
		log.Fatal(err)
	}
	defer closer.Close()

	sim, _, err := cfg.Build()
	if err != nil {
		log.Fatal(err)
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		log.Fatal(err)
	}
	if err := screen.Init(); err != nil {
		log.Fatal(err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	err = term.Run(ctx, screen, sim, term.Options{
		TPS:    cfg.TPS,
		FPS:    *fps,
		Seed:   cfg.Seed,
		Status: *status,
		Logger: core.Logger(sim.Name()),
	})
	screen.Fini()
	if err != nil {
		log.Fatal(err)
	}
}
