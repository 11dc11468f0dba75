package app

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mitchelldurbincs/GridTactics/internal/config"
	"github.com/mitchelldurbincs/GridTactics/internal/game/states"
	"github.com/mitchelldurbincs/GridTactics/internal/game/timing"
	"github.com/mitchelldurbincs/GridTactics/internal/testutil"
)

func restoreGlobalLevel(t *testing.T) {
	prev := zerolog.GlobalLevel()
	t.Cleanup(func() { zerolog.SetGlobalLevel(prev) })
}

func defaults(t *testing.T) *config.Config {
	t.Helper()
	require.NoError(t, config.Init(filepath.Join(t.TempDir(), "missing.yaml")))
	return config.Get()
}

func TestLoadEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("GT_TEST_FROM_DOTENV=yes\n"), 0o644))
	t.Setenv("GT_TEST_FROM_DOTENV", "")
	require.NoError(t, os.Unsetenv("GT_TEST_FROM_DOTENV"))

	require.NoError(t, LoadEnv(path))
	assert.Equal(t, "yes", os.Getenv("GT_TEST_FROM_DOTENV"))

	assert.NoError(t, LoadEnv(filepath.Join(t.TempDir(), "absent.env")), "missing file is fine")
}

func TestNewLogger_JSON(t *testing.T) {
	restoreGlobalLevel(t)

	var buf bytes.Buffer
	logger := NewLogger(config.LogConfig{Level: "warn", Format: "json"}, &buf)
	assert.Equal(t, zerolog.WarnLevel, zerolog.GlobalLevel())

	logger.Info().Msg("hidden")
	logger.Warn().Str("k", "v").Msg("shown")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &entry))
	assert.Equal(t, "shown", entry["message"])
	assert.Equal(t, "v", entry["k"])
	assert.Contains(t, entry, "time")
}

func TestNewLogger_Console(t *testing.T) {
	restoreGlobalLevel(t)

	var buf bytes.Buffer
	logger := NewLogger(config.LogConfig{Level: "info", Format: "console"}, &buf)
	logger.Info().Msg("hello")
	assert.Contains(t, buf.String(), "hello")
	assert.NotContains(t, buf.String(), "{")
}

func TestApplyLogLevel(t *testing.T) {
	restoreGlobalLevel(t)
	zerolog.SetGlobalLevel(zerolog.InfoLevel)

	var buf bytes.Buffer
	logger := zerolog.New(&buf)

	applyLogLevel(logger, &config.Config{Log: config.LogConfig{Level: "debug"}}, nil)
	assert.Equal(t, zerolog.DebugLevel, zerolog.GlobalLevel())
	assert.Contains(t, buf.String(), "Log level updated")

	buf.Reset()
	applyLogLevel(logger, &config.Config{Log: config.LogConfig{Level: "error"}}, errors.New("bad file"))
	assert.Equal(t, zerolog.DebugLevel, zerolog.GlobalLevel(), "invalid reload keeps the level")
	assert.Contains(t, buf.String(), "Ignoring invalid config change")
}

func TestSetupTracer_Disabled(t *testing.T) {
	tracer, shutdown := SetupTracer(context.Background(), config.TelemetryConfig{}, zerolog.Nop())
	require.NotNil(t, tracer)
	assert.NoError(t, shutdown(context.Background()))

	_, span := tracer.Start(context.Background(), "noop")
	assert.False(t, span.IsRecording())
	span.End()
}

func TestNewBattle_DefaultScenario(t *testing.T) {
	cfg := defaults(t)
	sched := timing.NewScheduler()

	b, sc, err := NewBattle(context.Background(), cfg, Options{
		Logger:    zerolog.Nop(),
		Scheduler: sched,
		LogEvents: true,
	})
	require.NoError(t, err)
	assert.Equal(t, "Crypt Entrance", sc.Name)
	assert.Same(t, sched, b.Scheduler())
	assert.NotEmpty(t, b.ID())

	b.Start()
	phase, _ := b.Phase()
	assert.Equal(t, states.PhaseCreateMap, phase)

	b.Update(cfg.Battle.CreateMapDelay)
	assert.Equal(t, 1, b.Turn())
}

func TestNewBattle_PresenterAndMissingScenario(t *testing.T) {
	cfg := defaults(t)
	presenter := testutil.NewRecordingPresenter()

	b, _, err := NewBattle(context.Background(), cfg, Options{Logger: zerolog.Nop(), Presenter: presenter})
	require.NoError(t, err)
	b.Start()
	b.Update(time.Hour)
	_, started := b.Phase()
	assert.True(t, started)

	broken := *cfg
	broken.Battle.Scenario = filepath.Join(t.TempDir(), "nope.yaml")
	_, _, err = NewBattle(context.Background(), &broken, Options{Logger: zerolog.Nop()})
	assert.ErrorIs(t, err, os.ErrNotExist)
}
