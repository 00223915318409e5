//go:build ebiten

package main

import (
	"errors"
	"flag"
	"log"

	"mad-cat/internal/app"
	"mad-cat/internal/core"
	_ "mad-cat/internal/sims/life"

	"github.com/hajimehoshi/ebiten/v2"
)

func main() {
	cfg := app.NewConfig()
	cfg.Bind(flag.CommandLine)
	flag.Parse()

	factory, ok := core.Sims()[cfg.Sim]
	if !ok {
		log.Fatalf("unknown sim %q", cfg.Sim)
	}
	simCfg, err := cfg.SimConfig()
	if err != nil {
		log.Fatal(err)
	}

	sim := factory(simCfg)
	sim.Reset(cfg.Seed)

	game := app.New(sim, cfg.Scale, cfg.Speed, cfg.Seed)
	size := sim.Size()

	ebiten.SetWindowTitle("mad-cat - " + sim.Name())
	ebiten.SetTPS(cfg.TPS)
	ebiten.SetWindowSize(size.W*cfg.Scale, size.H*cfg.Scale)

	if err := ebiten.RunGame(game); err != nil && !errors.Is(err, ebiten.Termination) {
		log.Fatal(err)
	}
}
