package main

import (
	"context"
	"flag"
	"os"

	"github.com/rs/zerolog/log"

	"github.com/mitchelldurbincs/GridTactics/internal/app"
	"github.com/mitchelldurbincs/GridTactics/internal/config"
	"github.com/mitchelldurbincs/GridTactics/internal/ui"
	"github.com/mitchelldurbincs/GridTactics/internal/ui/anim"
)

func main() {
	// Command line flags
	configPath := flag.String("config", "", "Path to config file")
	env := flag.String("env", "", "Environment overlay (loads config.<env>.yaml)")
	scenarioPath := flag.String("scenario", "", "Scenario file (empty to use config default)")
	watch := flag.Bool("watch-config", false, "Hot-reload log level from the config file")
	flag.Parse()

	if err := app.LoadEnv(); err != nil {
		log.Warn().Err(err).Msg(".env file not loaded")
	}

	// Initialize configuration
	if err := config.Init(*configPath); err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize config")
	}
	if err := config.LoadEnvironmentConfig(*env); err != nil {
		log.Fatal().Err(err).Msg("Failed to load environment config")
	}
	cfg := config.Get()
	if *scenarioPath != "" {
		cfg.Battle.Scenario = *scenarioPath
	}

	logger := app.NewLogger(cfg.Log, os.Stdout)
	if *watch {
		app.WatchLogLevel(logger)
	}

	ctx := context.Background()
	tracer, shutdown := app.SetupTracer(ctx, cfg.Telemetry, logger)
	defer func() {
		if err := shutdown(ctx); err != nil {
			logger.Error().Err(err).Msg("Error shutting down telemetry")
		}
	}()

	presenter := anim.NewPresenter(logger, anim.Durations{
		Move:   cfg.Animation.MoveDuration,
		Attack: cfg.Animation.AttackDuration,
		Impact: cfg.Animation.ImpactDuration,
	})

	b, sc, err := app.NewBattle(ctx, cfg, app.Options{
		Logger:    logger,
		Tracer:    tracer,
		Presenter: presenter,
		LogEvents: true,
	})
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to create battle")
	}

	logger.Info().
		Str("scenario", sc.Name).
		Int("tile_size", cfg.UI.TileSize).
		Msg("Starting graphical client")

	if err := ui.NewGame(b, presenter, cfg.UI, logger).Run(); err != nil {
		logger.Fatal().Err(err).Msg("Game error")
	}
}
