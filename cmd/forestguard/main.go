package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"golang.org/x/sync/errgroup"

	"github.com/udisondev/forestguard/internal/ai"
	"github.com/udisondev/forestguard/internal/config"
	"github.com/udisondev/forestguard/internal/data"
	"github.com/udisondev/forestguard/internal/db"
	"github.com/udisondev/forestguard/internal/loot"
	"github.com/udisondev/forestguard/internal/model"
	"github.com/udisondev/forestguard/internal/sim"
	"github.com/udisondev/forestguard/internal/spawn"
	"github.com/udisondev/forestguard/internal/telemetry"
	"github.com/udisondev/forestguard/internal/world"
)

const ConfigPath = "config/forestguard.yaml"

// statsInterval is how often battle stats are logged in realtime mode.
const statsInterval = 5 * time.Second

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		slog.Info("shutting down", "signal", sig)
		cancel()
	}()

	if err := run(ctx); err != nil {
		slog.Error("fatal", "err", err)
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	// .env is optional (database credentials, OTEL_* exporter settings)
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("loading .env: %w", err)
	}

	cfgPath := ConfigPath
	if p := os.Getenv("FORESTGUARD_CONFIG"); p != "" {
		cfgPath = p
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	logLevel := parseLogLevel(cfg.LogLevel)
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel,
	})))
	ai.EnableDebugLogging(logLevel == slog.LevelDebug)

	slog.Info("forestguard starting",
		"log_level", cfg.LogLevel,
		"archetypes", cfg.Archetypes.Source,
		"realtime", cfg.Realtime,
		"tick_interval", cfg.TickInterval)

	tracer := telemetry.NoopTracer()
	if cfg.Telemetry.Enabled {
		shutdown, err := telemetry.Setup(ctx, cfg.Telemetry.SampleRatio)
		if err != nil {
			slog.Warn("telemetry disabled", "err", err)
		} else {
			defer func() {
				shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				if err := shutdown(shutdownCtx); err != nil {
					slog.Warn("telemetry shutdown", "err", err)
				}
			}()
			tracer = telemetry.Tracer("battle")
		}
	}

	catalog, err := loadCatalog(ctx, cfg)
	if err != nil {
		return err
	}

	w := world.New()
	ticks := ai.NewTickManager()
	timeline := sim.NewTimeline()
	projectiles := spawn.NewProjectilePool(cfg.ProjectileCapacity)
	ledger := &loot.Ledger{}

	seed := cfg.Seed
	if seed == 0 {
		seed = rand.Uint64()
	}
	slog.Info("loot rng seeded", "seed", seed)

	manager := spawn.NewManager(catalog, w, ticks, spawn.Options{
		Projectiles: projectiles,
		Animators:   timeline,
		Loot:        ledger,
		Rand:        rand.New(rand.NewPCG(seed, seed)),
		Tracer:      tracer,
	})

	for _, d := range cfg.Lane.Defenders {
		if _, err := manager.Spawn(ctx, d.Archetype, model.NewVec2(d.X, d.Y), 0); err != nil {
			return fmt.Errorf("placing defender %s: %w", d.Archetype, err)
		}
	}

	waves := make([]spawn.Wave, 0, len(cfg.Lane.Waves))
	for _, we := range cfg.Lane.Waves {
		waves = append(waves, spawn.Wave{
			Archetype: we.Archetype,
			Count:     we.Count,
			Delay:     we.Delay,
			Interval:  we.Interval,
			Position:  model.NewVec2(we.X, we.Y),
			Direction: we.Direction,
		})
	}

	battle := sim.New(sim.Deps{
		World:       w,
		Ticks:       ticks,
		Timeline:    timeline,
		Manager:     manager,
		Waves:       spawn.NewWaveScheduler(manager, waves),
		Projectiles: projectiles,
		Tracer:      tracer,
	})

	outcome, err := runBattle(ctx, cfg, battle)
	if err != nil {
		return err
	}

	slog.Info("battle over", "outcome", outcome, "loot", ledger.Totals())
	return nil
}

// loadCatalog loads archetypes from the configured source.
func loadCatalog(ctx context.Context, cfg config.Simulation) (*data.Catalog, error) {
	switch cfg.Archetypes.Source {
	case config.SourceFile:
		return data.LoadFile(cfg.Archetypes.Path)

	case config.SourceDatabase:
		return loadCatalogFromDB(ctx, cfg)

	default:
		return data.LoadEmbedded()
	}
}

func loadCatalogFromDB(ctx context.Context, cfg config.Simulation) (*data.Catalog, error) {
	dsn := cfg.Database.DSN()

	database, err := db.New(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("connecting to database: %w", err)
	}
	defer database.Close()
	slog.Info("database connected")

	if err := db.RunMigrations(ctx, dsn); err != nil {
		return nil, fmt.Errorf("running migrations: %w", err)
	}
	slog.Info("database migrations applied")

	repo := db.NewArchetypeRepository(database.Pool())

	if cfg.Archetypes.Seed {
		n, err := repo.Count(ctx)
		if err != nil {
			return nil, err
		}
		if n == 0 {
			embedded, err := data.EmbeddedArchetypes()
			if err != nil {
				return nil, err
			}
			if err := repo.SaveAll(ctx, embedded); err != nil {
				return nil, fmt.Errorf("seeding archetypes: %w", err)
			}
			slog.Info("archetypes seeded", "count", len(embedded))
		}
	}

	return data.Load(ctx, repo)
}

// runBattle runs the simulation to completion. In realtime mode a reporter
// goroutine logs battle stats alongside the tick loop.
func runBattle(ctx context.Context, cfg config.Simulation, battle *sim.Simulation) (sim.Outcome, error) {
	if !cfg.Realtime {
		outcome, err := battle.RunSteps(ctx, cfg.TickInterval.Seconds(), cfg.MaxSteps)
		if errors.Is(err, sim.ErrStepLimit) {
			slog.Warn("battle undecided", "max_steps", cfg.MaxSteps)
			return outcome, nil
		}
		return outcome, err
	}

	g, gctx := errgroup.WithContext(ctx)
	done := make(chan struct{})

	g.Go(func() error {
		defer close(done)
		return battle.Run(gctx, cfg.TickInterval)
	})

	g.Go(func() error {
		ticker := time.NewTicker(statsInterval)
		defer ticker.Stop()
		for {
			select {
			case <-done:
				return nil
			case <-gctx.Done():
				return nil
			case <-ticker.C:
				snap := battle.Stats()
				slog.Info("battle stats",
					"steps", snap.Steps,
					"elapsed", snap.Elapsed,
					"players", snap.Players,
					"enemies", snap.Enemies,
					"projectiles", snap.Projectiles)
			}
		}
	})

	if err := g.Wait(); err != nil {
		return sim.OutcomeRunning, fmt.Errorf("running battle: %w", err)
	}
	return battle.Outcome(), nil
}

// parseLogLevel converts string log level to slog.Level.
// Defaults to Info if invalid or empty.
func parseLogLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
