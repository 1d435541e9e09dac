// Command soulfield runs the autonomous entity world simulation.
package main

import (
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"math/rand"
	"os"
	"os/signal"
	"path/filepath"
	"sort"
	"syscall"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/talgya/soulfield/internal/collective"
	"github.com/talgya/soulfield/internal/config"
	"github.com/talgya/soulfield/internal/material"
	"github.com/talgya/soulfield/internal/persistence"
	"github.com/talgya/soulfield/internal/weather"
	"github.com/talgya/soulfield/internal/world"
)

func main() {
	var (
		seed         = flag.Int64("seed", 42, "world seed")
		tuningPath   = flag.String("tuning", "configs/tuning.yaml", "tuning YAML (defaults used when missing)")
		materialsDir = flag.String("materials", "configs/materials", "directory of material descriptor JSON files")
		dbPath       = flag.String("db", "data/soulfield.db", "SQLite database path")
		population   = flag.Int("population", 24, "entities to spawn in a fresh world")
		spawnSpread  = flag.Float64("spread", 400, "spawn area half-width in world units")
		dt           = flag.Float64("dt", 1.0, "simulated seconds per tick")
		tickRate     = flag.Duration("tick-rate", 100*time.Millisecond, "wall-clock time per tick")
		weatherEvery = flag.Uint64("weather-every", 60, "ticks between weather broadcasts (0 disables)")
		reportEvery  = flag.Uint64("report-every", 300, "ticks between status reports")
		saveEvery    = flag.Uint64("save-every", 1800, "ticks between auto-saves")
		keepSaves    = flag.Int("keep-saves", 8, "auto-save snapshots to retain")
	)
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	slog.Info("SOULFIELD — Entity World Simulation")

	// ── Tuning ────────────────────────────────────────────────────────
	tuning := config.Default()
	if _, err := os.Stat(*tuningPath); err == nil {
		loaded, err := config.Load(*tuningPath)
		if err != nil {
			slog.Error("failed to load tuning", "path", *tuningPath, "error", err)
			os.Exit(1)
		}
		tuning = loaded
		slog.Info("tuning loaded", "path", *tuningPath)
	} else {
		slog.Info("no tuning file, using defaults", "path", *tuningPath)
	}

	// ── Materials ─────────────────────────────────────────────────────
	materials, err := material.LoadDir(*materialsDir)
	if err != nil {
		slog.Error("failed to load materials", "dir", *materialsDir, "error", err)
		os.Exit(1)
	}
	if len(materials) == 0 {
		slog.Error("no material descriptors found", "dir", *materialsDir)
		os.Exit(1)
	}
	for id, m := range materials {
		slog.Info("material", "id", id, "ontology", m.HasOntology())
	}

	// ── Database ──────────────────────────────────────────────────────
	os.MkdirAll(filepath.Dir(*dbPath), 0755)
	store, err := persistence.Open(*dbPath)
	if err != nil {
		slog.Error("failed to open database", "error", err)
		os.Exit(1)
	}
	defer store.Close()
	slog.Info("database opened", "path", *dbPath)

	// ── Load or Generate World State ─────────────────────────────────
	w := world.New(world.Options{
		Seed:            *seed,
		Ontology:        true,
		ClimateCoupling: tuning.ClimateCoupling > 0,
		Tuning:          tuning,
	})

	snap, err := store.LoadLatest()
	switch {
	case err == nil:
		if err := w.Restore(snap, materials); err != nil {
			slog.Error("failed to restore world", "error", err)
			os.Exit(1)
		}
		slog.Info("world state restored",
			"entities", len(w.Entities()),
			"tick", w.TickCount(),
			"world_time", fmt.Sprintf("%.0fs", w.WorldTime()),
		)
	case errors.Is(err, persistence.ErrNoSnapshot):
		slog.Info("no saved state found, generating new world...")
		if err := populateWorld(w, materials, *population, *spawnSpread, *seed); err != nil {
			slog.Error("failed to populate world", "error", err)
			os.Exit(1)
		}
		if err := store.SaveSnapshot(w.Snapshot()); err != nil {
			slog.Error("initial save failed", "error", err)
		}
	default:
		slog.Error("failed to load snapshot", "error", err)
		os.Exit(1)
	}

	if err := store.SaveMeta("seed", fmt.Sprintf("%d", *seed)); err != nil {
		slog.Warn("failed to save seed metadata", "error", err)
	}

	slog.Info("world ready",
		"entities", humanize.Comma(int64(len(w.Entities()))),
		"materials", len(materials),
		"climate", collective.DescribeClimate(w.EmotionalClimate()),
	)

	// ── Run ───────────────────────────────────────────────────────────
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	fmt.Printf("\nSoulfield is alive: %d entities.\n", len(w.Entities()))
	if w.TickCount() > 0 {
		fmt.Printf("Resuming from tick %s\n", humanize.Comma(int64(w.TickCount())))
	}
	fmt.Println("Starting simulation... (Ctrl+C to stop)")

	ticker := time.NewTicker(*tickRate)
	defer ticker.Stop()

	sky := weather.NewGenerator(*seed)
	var savedEvents int
loop:
	for {
		select {
		case sig := <-sigCh:
			slog.Info("received signal, shutting down", "signal", sig)
			break loop
		case <-ticker.C:
			if *weatherEvery > 0 && w.TickCount()%*weatherEvery == 0 {
				conditions := sky.At(w.WorldTime())
				w.BroadcastContext(conditions.Context())
				slog.Debug("weather", "conditions", conditions.Description())
			}
			w.Tick(*dt)

			tick := w.TickCount()
			if *reportEvery > 0 && tick%*reportEvery == 0 {
				report(w)
			}
			if *saveEvery > 0 && tick%*saveEvery == 0 {
				if err := store.SaveSnapshot(w.Snapshot()); err != nil {
					slog.Error("auto-save failed", "error", err)
				}
				if events := w.Events(); len(events) > savedEvents {
					if err := store.SaveEvents(events[savedEvents:]); err != nil {
						slog.Error("event save failed", "error", err)
					} else {
						savedEvents = len(events)
					}
				}
				if err := store.PruneSnapshots(*keepSaves); err != nil {
					slog.Error("snapshot prune failed", "error", err)
				}
			}
		}
	}

	// Final save on shutdown.
	slog.Info("final save...")
	if err := store.SaveSnapshot(w.Snapshot()); err != nil {
		slog.Error("final save failed", "error", err)
	}
	if events := w.Events(); len(events) > savedEvents {
		if err := store.SaveEvents(events[savedEvents:]); err != nil {
			slog.Error("final event save failed", "error", err)
		}
	}

	fmt.Println("Simulation stopped. World state saved.")
}

// populateWorld spawns a fresh population spread over the world plane.
// Placement uses its own RNG stream so the world's internal stream stays
// a pure function of the seed and the tick sequence.
func populateWorld(w *world.World, materials material.Map, population int, spread float64, seed int64) error {
	ids := make([]string, 0, len(materials))
	for id := range materials {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	rng := rand.New(rand.NewSource(seed + 400))
	for i := 0; i < population; i++ {
		mat := materials[ids[i%len(ids)]]
		x := (rng.Float64()*2 - 1) * spread
		y := (rng.Float64()*2 - 1) * spread
		if _, err := w.Spawn(mat, x, y); err != nil {
			return fmt.Errorf("spawn %s: %w", mat.ID, err)
		}
	}

	// A fresh world gets a shared water table and a local food source so
	// declared needs have something to draw from.
	if _, err := w.AddResourceField(world.ResourceFieldConfig{
		ID: "water-table", Resource: "water", Distribution: world.DistGradient,
		Intensity: 0.8, RegenerationRate: 0.01, DepletionRate: 0.002,
	}); err != nil {
		return err
	}
	if _, err := w.AddResourceField(world.ResourceFieldConfig{
		ID: "grove", Resource: "food", Distribution: world.DistArea,
		X: spread / 2, Y: spread / 2, Radius: spread / 4,
		Intensity: 0.6, RegenerationRate: 0.008, DepletionRate: 0.001,
	}); err != nil {
		return err
	}
	return nil
}

func report(w *world.World) {
	stats := w.Stats()
	climate := w.EmotionalClimate()
	slog.Info("status",
		"tick", humanize.Comma(int64(w.TickCount())),
		"world_time", fmt.Sprintf("%.0fs", w.WorldTime()),
		"population", stats.Population,
		"critical_needs", stats.CriticalCount,
		"mean_speed", fmt.Sprintf("%.2f", stats.MeanSpeed),
		"mean_valence", fmt.Sprintf("%.2f", stats.MeanValence),
		"climate", collective.DescribeClimate(climate),
	)
}
