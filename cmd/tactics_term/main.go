package main

import (
	"context"
	"flag"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog/log"

	"github.com/mitchelldurbincs/GridTactics/internal/app"
	"github.com/mitchelldurbincs/GridTactics/internal/config"
	"github.com/mitchelldurbincs/GridTactics/internal/term"
)

func main() {
	// Command line flags
	configPath := flag.String("config", "", "Path to config file")
	env := flag.String("env", "", "Environment overlay (loads config.<env>.yaml)")
	scenarioPath := flag.String("scenario", "", "Scenario file (empty to use config default)")
	logFile := flag.String("log-file", "grid-tactics.log", "Log destination; the terminal is owned by the board (empty to discard)")
	tick := flag.Duration("tick", term.DefaultTick, "Battle update interval")
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

	var out io.Writer = io.Discard
	if *logFile != "" {
		f, err := os.OpenFile(*logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			log.Fatal().Err(err).Str("path", *logFile).Msg("Failed to open log file")
		}
		defer f.Close()
		out = f
	}
	logger := app.NewLogger(cfg.Log, out)

	// Setup graceful shutdown
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	tracer, shutdown := app.SetupTracer(ctx, cfg.Telemetry, logger)
	defer func() {
		if err := shutdown(context.Background()); err != nil {
			logger.Error().Err(err).Msg("Error shutting down telemetry")
		}
	}()

	b, sc, err := app.NewBattle(ctx, cfg, app.Options{
		Logger:    logger,
		Tracer:    tracer,
		LogEvents: true,
	})
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to create battle")
	}

	screen, err := term.NewScreen()
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to initialize terminal")
	}

	logger.Info().Str("scenario", sc.Name).Msg("Starting terminal client")
	if err := term.NewClient(screen, b, *tick, logger).Run(ctx); err != nil && ctx.Err() == nil {
		logger.Error().Err(err).Msg("Terminal client error")
	}
	logger.Info().Str("outcome", b.Outcome().String()).Int("turn", b.Turn()).Msg("Battle finished")
}
