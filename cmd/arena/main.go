package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/magefree/arena-go/internal/config"
	"github.com/magefree/arena-go/internal/deck"
	"github.com/magefree/arena-go/internal/game"
	"github.com/magefree/arena-go/internal/game/rules"
	"github.com/magefree/arena-go/internal/input"
	"github.com/magefree/arena-go/internal/output"
	"github.com/magefree/arena-go/internal/repository"
	"github.com/magefree/arena-go/internal/watch"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	configPath = flag.String("config", "config/arena.yaml", "path to configuration file")
	inputPath  = flag.String("input", "", "simulation document (overrides simulation.input)")
	outputPath = flag.String("output", "", "result file, stdout when empty (overrides simulation.output)")
	watchInput = flag.Bool("watch", false, "rerun whenever the input file changes")
	logEvents  = flag.Bool("events", false, "log every game event at debug level")
	replayID   = flag.String("replay", "", "print the saved replay of a match id and exit")
	version    = "dev" // set via ldflags during build
)

func main() {
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}
	applyFlags(cfg)

	logger, err := initLogger(cfg.Logging)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	if *replayID != "" {
		store := game.NewReplayStore(logger, cfg.Simulation.ReplayDir)
		if err := showReplay(store, *replayID, logger); err != nil {
			logger.Fatal("failed to read replay", zap.Error(err))
		}
		return
	}

	if cfg.Simulation.Input == "" {
		logger.Fatal("no input document: pass -input or set simulation.input")
	}

	logger.Info("starting arena simulator",
		zap.String("version", version),
		zap.String("config", *configPath),
		zap.String("input", cfg.Simulation.Input),
	)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		sig := <-sigChan
		logger.Info("received shutdown signal", zap.String("signal", sig.String()))
		cancel()
	}()

	sim := &simulation{cfg: cfg.Simulation, logger: logger}

	if cfg.Database.Enabled {
		db, err := repository.NewDB(ctx, cfg.Database, logger)
		if err != nil {
			logger.Fatal("failed to connect to database", zap.Error(err))
		}
		defer db.Close()

		catalog, err := repository.NewDeckRepository(db).LoadCatalog(ctx)
		if err != nil {
			logger.Fatal("failed to load deck catalog", zap.Error(err))
		}
		sim.catalog = catalog
		logger.Info("loaded deck catalog from database", zap.Int("decks", catalog.Size()))
	}

	if cfg.Simulation.RecordReplays {
		sim.replays = game.NewReplayStore(logger, cfg.Simulation.ReplayDir)
	}
	if *logEvents {
		sim.events = rules.NewEventBus()
		sim.events.Subscribe(func(e rules.Event) {
			logger.Debug("game event",
				zap.String("match_id", e.MatchID),
				zap.String("type", string(e.Type)),
				zap.String("player", e.Player.String()),
				zap.String("card", e.CardName),
				zap.Int("row", e.Row),
				zap.Int("amount", e.Amount),
				zap.Int("round", e.Round),
			)
		})
	}

	if err := sim.run(ctx); err != nil {
		if !cfg.Simulation.Watch {
			logger.Fatal("simulation failed", zap.Error(err))
		}
		logger.Error("simulation failed", zap.Error(err))
	}

	if cfg.Simulation.Watch {
		w := watch.New(cfg.Simulation.Input, cfg.Simulation.WatchDebounce, logger, sim.run)
		if err := w.Run(ctx); err != nil {
			logger.Fatal("watcher failed", zap.Error(err))
		}
	}

	logger.Info("arena simulator stopped")
}

func applyFlags(cfg *config.Config) {
	if *inputPath != "" {
		cfg.Simulation.Input = *inputPath
	}
	if *outputPath != "" {
		cfg.Simulation.Output = *outputPath
	}
	if *watchInput {
		cfg.Simulation.Watch = true
	}
}

// simulation runs the configured input document end to end.
type simulation struct {
	cfg     config.SimulationConfig
	logger  *zap.Logger
	catalog *deck.Catalog
	replays *game.ReplayStore
	events  *rules.EventBus
}

func (s *simulation) run(ctx context.Context) error {
	start := time.Now()

	doc, err := input.Load(s.cfg.Input)
	if err != nil {
		return err
	}

	catalog := doc.Catalog()
	if s.catalog != nil {
		catalog = s.catalog
	}

	var opts []game.RunnerOption
	if s.replays != nil {
		opts = append(opts, game.WithReplays(s.replays))
	}
	if s.events != nil {
		opts = append(opts, game.WithEvents(s.events))
	}
	runner := game.NewRunner(s.logger, catalog, opts...)

	results, err := runner.RunAll(ctx, doc.GamesToRun())
	if err != nil {
		return err
	}

	if s.cfg.Output == "" {
		err = output.Write(os.Stdout, results)
	} else {
		err = output.WriteFile(s.cfg.Output, results)
	}
	if err != nil {
		return err
	}

	stats := runner.Stats()
	s.logger.Info("simulation finished",
		zap.Int("games_played", stats.GamesPlayed),
		zap.Int("player_one_wins", stats.PlayerOneWins),
		zap.Int("player_two_wins", stats.PlayerTwoWins),
		zap.Int("records", len(results)),
		zap.Duration("elapsed", time.Since(start)),
	)
	return nil
}

// showReplay loads a saved replay, which verifies its checksum, and logs
// one line per recorded state.
func showReplay(store *game.ReplayStore, matchID string, logger *zap.Logger) error {
	replay, err := store.Load(matchID)
	if err != nil {
		return err
	}
	for _, state := range replay.States {
		sum, err := state.ComputeChecksum()
		if err != nil {
			return err
		}
		logger.Info("replay state",
			zap.Int("sequence", state.Sequence),
			zap.String("command", string(state.Command)),
			zap.Int("round", state.Round),
			zap.Bool("over", state.Over),
			zap.String("checksum", sum.Hash),
		)
	}
	logger.Info("replay verified",
		zap.String("match_id", replay.MatchID),
		zap.Int("states", replay.Size()),
	)
	return nil
}

// initLogger initializes the zap logger based on configuration
func initLogger(cfg config.LoggingConfig) (*zap.Logger, error) {
	var level zapcore.Level
	switch cfg.Level {
	case "debug":
		level = zapcore.DebugLevel
	case "info":
		level = zapcore.InfoLevel
	case "warn":
		level = zapcore.WarnLevel
	case "error":
		level = zapcore.ErrorLevel
	default:
		level = zapcore.InfoLevel
	}

	var zapCfg zap.Config
	if cfg.Format == "json" {
		zapCfg = zap.NewProductionConfig()
	} else {
		zapCfg = zap.NewDevelopmentConfig()
		zapCfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}

	zapCfg.Level = zap.NewAtomicLevelAt(level)
	// Results go to stdout; keep logs off it.
	zapCfg.OutputPaths = []string{"stderr"}

	return zapCfg.Build()
}
