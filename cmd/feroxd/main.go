// Command feroxd wires a world config into a running engine and serves its
// snapshots/commands over the demo websocket transport, the same
// flag-plus-yaml-config-plus-blocking-serve shape as the teacher's main.go.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"

	"github.com/wokuno/ferox/internal/config"
	"github.com/wokuno/ferox/internal/engine"
	"github.com/wokuno/ferox/internal/snapshot"
	"github.com/wokuno/ferox/internal/transport"
)

var (
	configPath = flag.String("config", "./config.yaml", "path to world config yaml")
	addr       = flag.String("addr", ":8080", "http listen address")
	workers    = flag.Int("workers", 0, "override worker pool size (0 keeps config value)")
)

func main() {
	flag.Parse()
	if err := runApp(); err != nil {
		log.Fatal(err)
	}
}

func runApp() error {
	cfg, err := config.FromYaml(*configPath)
	if err != nil {
		log.Printf("feroxd: %v, falling back to defaults", err)
		cfg = config.Default()
	}
	if *workers > 0 {
		cfg.Workers = *workers
	}

	appCtx, appCancel := context.WithCancel(context.Background())
	defer appCancel()

	tickCtx, tickCancel, err := cfg.WithTickDeadline(appCtx)
	if err != nil {
		return fmt.Errorf("feroxd: tick deadline: %w", err)
	}
	defer tickCancel()

	world, err := engine.New(engine.Config{
		Width:              cfg.Width,
		Height:             cfg.Height,
		InitialColonyCount: cfg.InitialColonyCount,
		Workers:            cfg.Workers,
		Seed:               cfg.Seed,

		ForcedSpawnThreshold:         cfg.ForcedSpawnThreshold,
		SoftSpawnThreshold:           cfg.SoftSpawnThreshold,
		DynamicSpawnBaseChance:       cfg.DynamicSpawnBaseChance,
		DynamicSpawnEmptyRatioWeight: cfg.DynamicSpawnEmptyRatioWeight,
		BaseMutationChance:           cfg.BaseMutationChance,
		SpeciationThreshold:          cfg.SpeciationThreshold,
		SpeciationMinSize:            cfg.SpeciationMinSize,
		SpeciationShare:              cfg.SpeciationShare,
	}, log.Default())
	if err != nil {
		return fmt.Errorf("feroxd: constructing world: %w", err)
	}

	hub := transport.NewHub(world.Commands, cfg.Width, cfg.Height)

	errCh := make(chan error, 2)
	go func() {
		errCh <- world.Run(tickCtx, func(w *engine.World) {
			hub.Publish(buildSnapshot(w))
		})
	}()
	go func() {
		errCh <- hub.Serve(appCtx, *addr)
	}()

	return <-errCh
}

func buildSnapshot(w *engine.World) snapshot.Snapshot {
	colonies := w.Colonies.All()
	sources := make([]snapshot.ColonySource, 0, len(colonies))
	for _, c := range colonies {
		sources = append(sources, snapshot.ColonySource{
			ID:             c.ID,
			Name:           c.Name,
			Active:         c.Active,
			CellCount:      c.CellCount,
			MaxCellCount:   c.MaxCellCount,
			LastPopulation: c.LastPopulation,
			Color:          c.Color,
			ShapeSeed:      c.ShapeSeed,
			WobblePhase:    c.WobblePhase,
			ShapeEvolution: c.ShapeEvolution,
			Centroid:       c.Centroid,
			Genome:         c.Genome,
		})
	}

	return snapshot.Build(w.Width, w.Height, w.Tick, w.Paused, w.SpeedMultiplier, sources, nil, false)
}
