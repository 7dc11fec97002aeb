// Package engine wires the grid, colony table, environmental fields, worker
// pool, and genome algebra together into the per-tick simulation (C6/C7 plus
// the scheduler glue). World owns everything; tickOnce drives one full pass:
// command intake, the parallel age/spread phases, then the fixed-order
// serial phases.
package engine

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/wokuno/ferox/internal/colony"
	"github.com/wokuno/ferox/internal/command"
	"github.com/wokuno/ferox/internal/fields"
	"github.com/wokuno/ferox/internal/genome"
	"github.com/wokuno/ferox/internal/grid"
	"github.com/wokuno/ferox/internal/rng"
	"github.com/wokuno/ferox/internal/workerpool"
)

// ErrInvalidConfig is wrapped by the error New returns when the requested
// dimensions or worker count are non-positive.
var ErrInvalidConfig = errors.New("engine: invalid config")

// Config configures a new World, per spec §6 "Configuration at world
// creation". The *Threshold/*Chance/*Share fields retune the dynamic-spawn
// and mutation/speciation pressure described qualitatively in spec.md §4.7;
// a zero value for any of them falls back to the documented default so
// existing callers (tests, a config file predating these fields) keep the
// original fixed-constant behavior.
type Config struct {
	Width, Height      int
	InitialColonyCount int
	Workers            int
	Seed               int64

	// ForcedSpawnThreshold: below this many active colonies, spawn a fresh
	// genesis colony unconditionally every tick. SoftSpawnThreshold: at or
	// above this many, never spawn dynamically regardless of chance.
	ForcedSpawnThreshold int
	SoftSpawnThreshold   int
	// DynamicSpawnBaseChance / DynamicSpawnEmptyRatioWeight shape the
	// probabilistic spawn roll between the two thresholds:
	// chance = base + weight*emptyCellRatio.
	DynamicSpawnBaseChance       float64
	DynamicSpawnEmptyRatioWeight float64

	// BaseMutationChance is the per-tick, per-colony mutation roll before
	// stress/size scaling. SpeciationThreshold is the genome distance past
	// which a mutation speciates instead of applying in place.
	// SpeciationMinSize is the minimum colony size eligible to speciate.
	// SpeciationShare is the fraction of cells peeled into the new colony.
	BaseMutationChance  float64
	SpeciationThreshold float64
	SpeciationMinSize   int32
	SpeciationShare     float64
}

const (
	defaultForcedSpawnThreshold         = 4
	defaultSoftSpawnThreshold           = 10
	defaultDynamicSpawnBaseChance       = 0.02
	defaultDynamicSpawnEmptyRatioWeight = 0.2

	defaultBaseMutationChance  = 0.01
	defaultSpeciationThreshold = 0.35
	defaultSpeciationMinSize   = 20
	defaultSpeciationShare     = 0.2
)

// withDefaults fills in zero-valued tunables with their documented
// defaults, leaving any value the caller did set untouched.
func (cfg Config) withDefaults() Config {
	if cfg.ForcedSpawnThreshold == 0 {
		cfg.ForcedSpawnThreshold = defaultForcedSpawnThreshold
	}
	if cfg.SoftSpawnThreshold == 0 {
		cfg.SoftSpawnThreshold = defaultSoftSpawnThreshold
	}
	if cfg.DynamicSpawnBaseChance == 0 {
		cfg.DynamicSpawnBaseChance = defaultDynamicSpawnBaseChance
	}
	if cfg.DynamicSpawnEmptyRatioWeight == 0 {
		cfg.DynamicSpawnEmptyRatioWeight = defaultDynamicSpawnEmptyRatioWeight
	}
	if cfg.BaseMutationChance == 0 {
		cfg.BaseMutationChance = defaultBaseMutationChance
	}
	if cfg.SpeciationThreshold == 0 {
		cfg.SpeciationThreshold = defaultSpeciationThreshold
	}
	if cfg.SpeciationMinSize == 0 {
		cfg.SpeciationMinSize = defaultSpeciationMinSize
	}
	if cfg.SpeciationShare == 0 {
		cfg.SpeciationShare = defaultSpeciationShare
	}
	return cfg
}

// World owns the full simulation: the double-buffered grid, the colony
// table, environmental fields, the command queue, and the worker pool. It is
// the sole submitter to, and sole waiter on, its worker pool; there is no
// nested task submission.
type World struct {
	RunID uuid.UUID

	Width, Height int
	Grid          *grid.Grid
	Colonies      *colony.Table
	Fields        *fields.Fields
	Commands      *command.Queue
	pool          *workerpool.Pool

	cfg Config

	// WorldRNG drives every serial-phase random decision (spawn site
	// selection, mutation rolls, combat noise). It is single-writer: only
	// the tick goroutine ever touches it.
	WorldRNG rng.Source

	// workerRNGs holds one xorshift stream per worker, touched only by that
	// worker's in-flight region task (spec §4.6 "Per-worker RNG").
	workerRNGs []*rng.Xorshift64

	Tick            uint64
	Paused          bool
	SpeedMultiplier float64
	selectedColony  int32

	logger Logger
}

// Logger is the minimal logging surface World needs; *log.Logger satisfies
// it, as does any structured logger exposing a Printf-style method.
type Logger interface {
	Printf(format string, args ...interface{})
}

type discardLogger struct{}

func (discardLogger) Printf(string, ...interface{}) {}

// New constructs a World and seeds it with InitialColonyCount genesis
// colonies at random empty cells. Construction fails atomically on invalid
// config; no partial world is left behind per spec §7 InvalidArgument.
func New(cfg Config, logger Logger) (*World, error) {
	if cfg.Width <= 0 || cfg.Height <= 0 || cfg.Workers <= 0 {
		return nil, fmt.Errorf("%w: width=%d height=%d workers=%d", ErrInvalidConfig, cfg.Width, cfg.Height, cfg.Workers)
	}
	if logger == nil {
		logger = discardLogger{}
	}
	cfg = cfg.withDefaults()

	w := &World{
		RunID:           uuid.New(),
		Width:           cfg.Width,
		Height:          cfg.Height,
		Grid:            grid.New(cfg.Width, cfg.Height),
		Colonies:        colony.NewTable(),
		Fields:          fields.New(cfg.Width, cfg.Height),
		Commands:        command.NewQueue(),
		pool:            workerpool.New(cfg.Workers),
		cfg:             cfg,
		WorldRNG:        rng.NewMathRand(cfg.Seed),
		SpeedMultiplier: 1.0,
		logger:          logger,
	}

	w.workerRNGs = make([]*rng.Xorshift64, cfg.Workers)
	for i := range w.workerRNGs {
		w.workerRNGs[i] = rng.NewXorshift64(uint64(cfg.Seed)*2654435761 + uint64(i) + 1)
	}

	for i := 0; i < cfg.InitialColonyCount; i++ {
		if err := w.spawnGenesisColony(); err != nil {
			logger.Printf("engine: genesis colony %d failed: %v", i, err)
		}
	}

	return w, nil
}

// regionCount returns R per spec §4.6: 4 when workers > 4, else 2.
func (w *World) regionCount() int {
	if w.cfg.Workers > 4 {
		return 4
	}
	return 2
}

// spawnGenesisColony seeds one fresh colony with a random genome at a random
// empty cell, retrying a bounded number of times if the grid is crowded.
func (w *World) spawnGenesisColony() error {
	const maxAttempts = 64
	for attempt := 0; attempt < maxAttempts; attempt++ {
		x := w.WorldRNG.Intn(w.Width)
		y := w.WorldRNG.Intn(w.Height)
		cell := w.Grid.Get(x, y)
		if cell == nil || !cell.Empty() {
			continue
		}
		return w.seedColonyAt(x, y, "", 0)
	}
	return fmt.Errorf("engine: no empty cell found for genesis colony after %d attempts", maxAttempts)
}

// seedColonyAt creates a colony and claims (x,y) for it. parentID of 0 means
// a genesis colony; a non-zero name is used verbatim, otherwise a
// placeholder derived from the colony id is assigned (name generation
// proper is an external collaborator per spec §1).
func (w *World) seedColonyAt(x, y int, name string, parentID int32) error {
	cell := w.Grid.Get(x, y)
	if cell == nil || !cell.Empty() {
		return fmt.Errorf("engine: cell (%d,%d) is not empty", x, y)
	}

	g := genome.RandomInit(w.WorldRNG)
	c, err := w.Colonies.Add(name, g, parentID)
	if err != nil {
		return err
	}
	if name == "" {
		c.Name = fmt.Sprintf("colony-%d", c.ID)
	}
	c.Color = g.BodyColor
	c.ShapeSeed = uint64(c.ID)*0x9e3779b97f4a7c15 + uint64(w.cfg.Seed)
	c.Centroid = [2]float64{float64(x), float64(y)} // refreshed every tick by computeCentroids

	if !cell.TryClaim(0, c.ID) {
		w.Colonies.Deactivate(c)
		return fmt.Errorf("engine: lost race claiming (%d,%d)", x, y)
	}
	cell.Age.Store(0)
	c.CellCount = 1
	c.MaxCellCount = 1
	stats := w.Colonies.Stats(c.ID)
	stats.CellCount.Store(1)
	stats.MaxCellCount.Store(1)
	return nil
}

// Run drives ticks until ctx is canceled, publishing snapshots via onTick
// after every tick (including paused ticks, per spec §4.10). onTick may be
// nil.
func (w *World) Run(ctx context.Context, onTick func(*World)) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}
		if err := w.tickOnce(ctx); err != nil {
			return err
		}
		if onTick != nil {
			onTick(w)
		}
	}
}
