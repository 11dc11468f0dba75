package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog"
	"github.com/spf13/viper"
)

// Config holds all configuration for the application
type Config struct {
	Battle    BattleConfig    `mapstructure:"battle"`
	Animation AnimationConfig `mapstructure:"animation"`
	Log       LogConfig       `mapstructure:"log"`
	UI        UIConfig        `mapstructure:"ui"`
	Telemetry TelemetryConfig `mapstructure:"telemetry"`
}

// BattleConfig holds battle setup and state machine settings
type BattleConfig struct {
	// Scenario is a YAML scenario path; empty uses the embedded default
	Scenario       string        `mapstructure:"scenario"`
	CreateMapDelay time.Duration `mapstructure:"create_map_delay"`
	MaxHistory     int           `mapstructure:"max_history"`
}

// AnimationConfig holds presenter timings
type AnimationConfig struct {
	MoveDuration   time.Duration `mapstructure:"move_duration"`
	AttackDuration time.Duration `mapstructure:"attack_duration"`
	ImpactDuration time.Duration `mapstructure:"impact_duration"`
}

// LogConfig holds logger settings
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// UIConfig holds UI/client configuration
type UIConfig struct {
	Window   WindowConfig `mapstructure:"window"`
	TileSize int          `mapstructure:"tile_size"`
	TPS      int          `mapstructure:"tps"`
}

// WindowConfig holds window settings
type WindowConfig struct {
	Width  int    `mapstructure:"width"`
	Height int    `mapstructure:"height"`
	Title  string `mapstructure:"title"`
}

// TelemetryConfig holds OpenTelemetry settings. The exporter itself is
// configured through the standard OTEL_* environment variables.
type TelemetryConfig struct {
	Enabled     bool   `mapstructure:"enabled"`
	ServiceName string `mapstructure:"service_name"`
}

var (
	// Global config instance
	cfg *Config
	v   *viper.Viper
)

// setViperDefaults sets all default values using Viper's SetDefault
func setViperDefaults(v *viper.Viper) {
	v.SetDefault("battle.scenario", "")
	v.SetDefault("battle.create_map_delay", "1s")
	v.SetDefault("battle.max_history", 1000)

	v.SetDefault("animation.move_duration", "250ms")
	v.SetDefault("animation.attack_duration", "200ms")
	v.SetDefault("animation.impact_duration", "200ms")

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "console")

	v.SetDefault("ui.window.width", 840)
	v.SetDefault("ui.window.height", 480)
	v.SetDefault("ui.window.title", "Grid Tactics")
	v.SetDefault("ui.tile_size", 40)
	v.SetDefault("ui.tps", 60)

	v.SetDefault("telemetry.enabled", false)
	v.SetDefault("telemetry.service_name", "grid-tactics")
}

// Init initializes the configuration
func Init(configPath string) error {
	v = viper.New()

	setViperDefaults(v)

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
		v.AddConfigPath("/etc/grid-tactics")
	}

	v.SetEnvPrefix("GT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil && !isNotFound(err) {
		return fmt.Errorf("error reading config file: %w", err)
	}

	cfg = &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return fmt.Errorf("unable to decode config into struct: %w", err)
	}

	if err := Validate(cfg); err != nil {
		return fmt.Errorf("config validation failed: %w", err)
	}

	return nil
}

// Get returns the global config instance
func Get() *Config {
	if cfg == nil {
		if err := Init(""); err != nil {
			panic("failed to initialize config with defaults: " + err.Error())
		}
	}
	return cfg
}

// LoadEnvironmentConfig merges config.<env>.yaml from the working directory
// over the loaded config. A missing overlay is not an error. The merged
// result is validated before it replaces the current config, and the watched
// config file stays the base file.
func LoadEnvironmentConfig(env string) error {
	if env == "" {
		return nil
	}

	envFile := fmt.Sprintf("config.%s.yaml", env)
	f, err := os.Open(envFile)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("error opening environment config %s: %w", envFile, err)
	}
	defer f.Close()

	v.SetConfigType("yaml")
	if err := v.MergeConfig(f); err != nil {
		return fmt.Errorf("error merging environment config %s: %w", envFile, err)
	}

	next := &Config{}
	if err := v.Unmarshal(next); err != nil {
		return fmt.Errorf("unable to decode merged config into struct: %w", err)
	}
	if err := Validate(next); err != nil {
		return fmt.Errorf("environment config %s: %w", envFile, err)
	}
	cfg = next

	return nil
}

// ConfigFilePath returns the path of the loaded config file
func ConfigFilePath() string {
	return v.ConfigFileUsed()
}

// WatchConfig enables hot-reloading of config file. onChange receives the
// reloaded config; a file that fails validation is reported through the
// error argument and the previous config stays in effect.
func WatchConfig(onChange func(*Config, error)) {
	v.OnConfigChange(func(e fsnotify.Event) {
		next := &Config{}
		if err := v.Unmarshal(next); err != nil {
			if onChange != nil {
				onChange(cfg, fmt.Errorf("reload %s: %w", e.Name, err))
			}
			return
		}
		if err := Validate(next); err != nil {
			if onChange != nil {
				onChange(cfg, fmt.Errorf("reload %s: %w", e.Name, err))
			}
			return
		}
		cfg = next
		if onChange != nil {
			onChange(cfg, nil)
		}
	})
	v.WatchConfig()
}

func isNotFound(err error) bool {
	var notFound viper.ConfigFileNotFoundError
	return errors.As(err, &notFound) || errors.Is(err, fs.ErrNotExist)
}

// LogLevel parses the configured log level
func (c *Config) LogLevel() zerolog.Level {
	level, err := zerolog.ParseLevel(strings.ToLower(c.Log.Level))
	if err != nil || level == zerolog.NoLevel {
		return zerolog.InfoLevel
	}
	return level
}

// Validate validates the configuration values
func Validate(c *Config) error {
	if c.Battle.CreateMapDelay < 0 {
		return fmt.Errorf("battle.create_map_delay must be non-negative")
	}
	if c.Battle.MaxHistory <= 0 {
		return fmt.Errorf("battle.max_history must be positive")
	}

	if c.Animation.MoveDuration <= 0 {
		return fmt.Errorf("animation.move_duration must be positive")
	}
	if c.Animation.AttackDuration <= 0 {
		return fmt.Errorf("animation.attack_duration must be positive")
	}
	if c.Animation.ImpactDuration < 0 {
		return fmt.Errorf("animation.impact_duration must be non-negative")
	}

	if _, err := zerolog.ParseLevel(strings.ToLower(c.Log.Level)); err != nil {
		return fmt.Errorf("log.level %q is not a valid level", c.Log.Level)
	}
	switch c.Log.Format {
	case "console", "json":
	default:
		return fmt.Errorf("log.format must be console or json, got %q", c.Log.Format)
	}

	if c.UI.Window.Width <= 0 || c.UI.Window.Height <= 0 {
		return fmt.Errorf("ui.window dimensions must be positive")
	}
	if c.UI.TileSize <= 0 {
		return fmt.Errorf("ui.tile_size must be positive")
	}
	if c.UI.TPS <= 0 {
		return fmt.Errorf("ui.tps must be positive")
	}

	if c.Telemetry.Enabled && c.Telemetry.ServiceName == "" {
		return fmt.Errorf("telemetry.service_name is required when telemetry is enabled")
	}

	return nil
}
