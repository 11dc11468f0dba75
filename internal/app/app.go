// Package app wires configuration, logging, telemetry and a scenario into
// a ready-to-start battle for the entry points.
package app

import (
	"context"
	"errors"
	"io"
	"io/fs"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel/trace"

	"github.com/mitchelldurbincs/GridTactics/internal/config"
	"github.com/mitchelldurbincs/GridTactics/internal/game/battle"
	"github.com/mitchelldurbincs/GridTactics/internal/game/events"
	"github.com/mitchelldurbincs/GridTactics/internal/game/events/subscribers"
	"github.com/mitchelldurbincs/GridTactics/internal/game/timing"
	"github.com/mitchelldurbincs/GridTactics/internal/game/units"
	"github.com/mitchelldurbincs/GridTactics/internal/scenario"
	"github.com/mitchelldurbincs/GridTactics/internal/telemetry"
)

// LoadEnv loads .env files into the process environment. Missing files are
// not an error; variables already set win.
func LoadEnv(files ...string) error {
	if err := godotenv.Load(files...); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	return nil
}

// NewLogger builds the root logger from the log section of the config.
// The level is applied globally so that WatchLogLevel can change it for
// every derived logger.
func NewLogger(cfg config.LogConfig, out io.Writer) zerolog.Logger {
	zerolog.SetGlobalLevel((&config.Config{Log: cfg}).LogLevel())

	if cfg.Format == "json" {
		return zerolog.New(out).With().Timestamp().Logger()
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: out, TimeFormat: time.RFC3339}).
		With().Timestamp().Logger()
}

// SetupTracer returns the battle tracer. With telemetry disabled, or when
// the exporter cannot be built, it is a no-op tracer and shutdown does
// nothing.
func SetupTracer(ctx context.Context, cfg config.TelemetryConfig, logger zerolog.Logger) (trace.Tracer, func(context.Context) error) {
	noShutdown := func(context.Context) error { return nil }
	if !cfg.Enabled {
		return telemetry.NoopTracer(), noShutdown
	}

	shutdown, err := telemetry.Setup(ctx, cfg.ServiceName)
	if err != nil {
		logger.Warn().Err(err).Msg("Telemetry setup failed, running without tracing")
		return telemetry.NoopTracer(), noShutdown
	}
	logger.Info().Str("service", cfg.ServiceName).Msg("Telemetry enabled")
	return telemetry.Tracer("battle"), shutdown
}

// Options are the per-client pieces of a battle
type Options struct {
	Logger    zerolog.Logger
	Tracer    trace.Tracer
	Scheduler *timing.Scheduler
	// Presenter animates units. Nil uses a ScheduledPresenter driven by
	// the animation durations.
	Presenter units.Presenter
	// LogEvents subscribes a logging subscriber to the battle bus
	LogEvents bool
}

// NewBattle loads the configured scenario and builds an unstarted battle
func NewBattle(ctx context.Context, cfg *config.Config, opts Options) (*battle.Battle, *scenario.Scenario, error) {
	sc, err := scenario.Load(cfg.Battle.Scenario)
	if err != nil {
		return nil, nil, err
	}

	if opts.Scheduler == nil {
		opts.Scheduler = timing.NewScheduler()
	}
	if opts.Presenter == nil {
		opts.Presenter = units.NewScheduledPresenter(
			opts.Scheduler,
			cfg.Animation.MoveDuration,
			cfg.Animation.AttackDuration+cfg.Animation.ImpactDuration,
		)
	}

	bus := events.NewEventBus(opts.Logger)
	if opts.LogEvents {
		ls := subscribers.NewLoggerSubscriber("battle-log", opts.Logger, zerolog.DebugLevel)
		ls.SetDevMode(zerolog.GlobalLevel() <= zerolog.TraceLevel)
		bus.Subscribe(ls)
	}

	b, err := battle.New(ctx, battle.Config{
		Setup:          sc.Setup,
		Logger:         opts.Logger,
		Bus:            bus,
		Scheduler:      opts.Scheduler,
		Presenter:      opts.Presenter,
		Tracer:         opts.Tracer,
		CreateMapDelay: cfg.Battle.CreateMapDelay,
		MaxHistory:     cfg.Battle.MaxHistory,
	})
	if err != nil {
		return nil, nil, err
	}

	opts.Logger.Info().
		Str("scenario", sc.Name).
		Str("battle_id", b.ID()).
		Strs("subscribers", bus.SubscriberIDs()).
		Msg("Battle ready")
	return b, sc, nil
}

// WatchLogLevel hot-applies log.level changes from the config file
func WatchLogLevel(logger zerolog.Logger) {
	config.WatchConfig(func(c *config.Config, err error) {
		applyLogLevel(logger, c, err)
	})
	logger.Info().Str("file", config.ConfigFilePath()).Msg("Watching config file")
}

func applyLogLevel(logger zerolog.Logger, c *config.Config, err error) {
	if err != nil {
		logger.Warn().Err(err).Msg("Ignoring invalid config change")
		return
	}
	if level := c.LogLevel(); level != zerolog.GlobalLevel() {
		zerolog.SetGlobalLevel(level)
		logger.Info().Str("level", level.String()).Msg("Log level updated")
	}
}
