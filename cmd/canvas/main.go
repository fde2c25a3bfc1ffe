//go:build ebiten

package main

import (
	"errors"
	"flag"
	"log"
	"os"

	"canvas-sims/internal/app"
	_ "canvas-sims/internal/sims/all"

	"github.com/hajimehoshi/ebiten/v2"
)

func main() {
	cfg := app.NewConfig()
	cfg.Bind(flag.CommandLine)
	flag.Parse()

	closer, err := cfg.SetupLogging(os.Stderr)
	if err != nil {
		log.Fatal(err)
	}
	defer closer.Close()

	sim, simCfg, err := cfg.Build()
	if err != nil {
		log.Fatal(err)
	}

	game := app.New(sim, simCfg, cfg.Scale, cfg.Seed, cfg.HUDWidth)

	ebiten.SetWindowTitle("canvas-sims — " + sim.Name())
	ebiten.SetTPS(cfg.TPS)
	ebiten.SetWindowSize(game.Layout(0, 0))

	if err := ebiten.RunGame(game); err != nil && !errors.Is(err, ebiten.Termination) {
		log.Fatal(err)
	}
}
