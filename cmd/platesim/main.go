// Command platesim builds a hex mesh, generates crust, and partitions it into
// tectonic plates for one or more seeds.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"golang.org/x/sync/errgroup"

	"github.com/talgya/plategraph/internal/api"
	"github.com/talgya/plategraph/internal/config"
	"github.com/talgya/plategraph/internal/persistence"
	"github.com/talgya/plategraph/internal/tectonics"
	"github.com/talgya/plategraph/internal/world"
)

const ConfigPath = "config/platesim.yaml"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx); err != nil {
		slog.Error("fatal", "err", err)
		os.Exit(1)
	}
}

// trial is the outcome of one synthesis.
type trial struct {
	seed       int64
	graph      *tectonics.PlateGraph
	separation float64
}

func run(ctx context.Context) error {
	cfgPath := ConfigPath
	if p := os.Getenv("PLATESIM_CONFIG"); p != "" {
		cfgPath = p
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel(cfg.LogLevel),
	})))
	slog.Info("platesim starting", "width", cfg.Width, "height", cfg.Height, "seed", cfg.Seed, "trials", cfg.Trials)

	mesh, err := world.NewHexMesh(cfg.Width, cfg.Height)
	if err != nil {
		return fmt.Errorf("building mesh: %w", err)
	}
	crust := world.GenerateCrust(mesh, cfg.Crust)
	slog.Info("crust generated",
		"cells", mesh.CellCount,
		"continental", fmt.Sprintf("%.1f%%", world.ContinentalShare(crust)*100),
	)

	trials, err := runTrials(ctx, mesh, crust, cfg)
	if err != nil {
		return err
	}

	met := 0
	for _, tr := range trials {
		report(tr, mesh)
		if tr.separation >= tr.graph.MinSeparation {
			met++
		}
	}
	slog.Info("trials complete", "runs", len(trials), "separation_met", met)

	if cfg.DatabasePath == "" {
		return nil
	}
	if err := os.MkdirAll(filepath.Dir(cfg.DatabasePath), 0755); err != nil {
		return fmt.Errorf("creating data dir: %w", err)
	}
	db, err := persistence.Open(cfg.DatabasePath)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer db.Close()

	for _, tr := range trials {
		id, err := db.SaveRun(tr.seed, tr.graph)
		if err != nil {
			return fmt.Errorf("saving seed %d: %w", tr.seed, err)
		}
		slog.Debug("run saved", "id", id, "seed", tr.seed)
	}
	slog.Info("runs saved", "path", cfg.DatabasePath, "count", len(trials))

	if cfg.APIPort == 0 {
		return nil
	}
	return api.NewServer(db, cfg.APIPort).Run(ctx)
}

// runTrials synthesizes consecutive seeds in parallel. The mesh and crust
// are shared read-only; results keep seed order.
func runTrials(ctx context.Context, mesh *world.Mesh, crust *world.Crust, cfg config.PlateSim) ([]trial, error) {
	out := make([]trial, cfg.Trials)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(cfg.Workers)
	for i := range out {
		seed := cfg.Seed + int64(i)
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			pg, err := tectonics.Synthesize(mesh, crust, seed, cfg.Tectonics)
			if err != nil {
				return fmt.Errorf("seed %d: %w", seed, err)
			}
			out[i] = trial{
				seed:       seed,
				graph:      pg,
				separation: tectonics.SeedSeparation(pg, mesh),
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("synthesis: %w", err)
	}
	return out, nil
}

func report(tr trial, mesh *world.Mesh) {
	g := tr.graph
	sizes := g.Sizes()
	smallest, largest := mesh.CellCount, 0
	for _, s := range sizes {
		smallest = min(smallest, s)
		largest = max(largest, s)
	}

	byType := map[tectonics.BoundaryType]int{}
	for _, b := range tectonics.Boundaries(g, mesh) {
		byType[b.Type]++
	}

	slog.Info("plates",
		"seed", tr.seed,
		"plates", len(g.Plates),
		"tectonic", g.CountRole(tectonics.RoleTectonic),
		"caps", g.CountRole(tectonics.RolePolarCap),
		"micro", g.CountRole(tectonics.RolePolarMicroplate),
		"smallest", smallest,
		"largest", largest,
		"convergent", byType[tectonics.Convergent],
		"divergent", byType[tectonics.Divergent],
		"transform", byType[tectonics.Transform],
		"separation", fmt.Sprintf("%.2f", tr.separation),
		"min_separation", fmt.Sprintf("%.2f", g.MinSeparation),
	)
}

func logLevel(name string) slog.Level {
	switch name {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
