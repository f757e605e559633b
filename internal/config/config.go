// Package config loads user settings from config.yaml, a .env file and
// DAYCHECK_* environment variables.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/gookit/validate"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/julianstephens/daycheck/internal/constants"
	apperrors "github.com/julianstephens/daycheck/internal/errors"
	"github.com/julianstephens/daycheck/internal/stats"
	"github.com/julianstephens/daycheck/internal/utils"
)

type LoggingSettings struct {
	Debug bool `mapstructure:"debug" yaml:"debug"`
}

type StatsSettings struct {
	WindowDays    int `mapstructure:"windowDays" yaml:"windowDays" validate:"required|min:1|max:365"`
	TopWords      int `mapstructure:"topWords" yaml:"topWords" validate:"required|min:1|max:100"`
	RecentEntries int `mapstructure:"recentEntries" yaml:"recentEntries" validate:"required|min:1|max:100"`
}

// Settings are the user-tunable options of the application
type Settings struct {
	Timezone string          `mapstructure:"timezone" yaml:"timezone"`
	Logging  LoggingSettings `mapstructure:"logging" yaml:"logging"`
	Stats    StatsSettings   `mapstructure:"stats" yaml:"stats"`

	// Path is the settings file that was read, empty when none existed
	Path string `mapstructure:"-" yaml:"-"`
}

// StatsOptions converts the settings into statistics options
func (s Settings) StatsOptions() stats.Options {
	return stats.Options{
		WindowDays:    s.Stats.WindowDays,
		TopWords:      s.Stats.TopWords,
		RecentEntries: s.Stats.RecentEntries,
	}
}

// Options locates the inputs of Load
type Options struct {
	// ConfigDir holds config.yaml
	ConfigDir string
	// EnvFile is loaded into the environment when it exists. Variables
	// already set in the environment win.
	EnvFile string
}

var envBindings = map[string]string{
	"timezone":            constants.EnvPrefix + "_TIMEZONE",
	"logging.debug":       constants.EnvPrefix + "_DEBUG",
	"stats.windowDays":    constants.EnvPrefix + "_STATS_WINDOW_DAYS",
	"stats.topWords":      constants.EnvPrefix + "_STATS_TOP_WORDS",
	"stats.recentEntries": constants.EnvPrefix + "_STATS_RECENT_ENTRIES",
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("timezone", constants.DefaultTimezone)
	v.SetDefault("logging.debug", false)
	v.SetDefault("stats.windowDays", constants.DefaultWindowDays)
	v.SetDefault("stats.topWords", constants.DefaultTopWords)
	v.SetDefault("stats.recentEntries", constants.DefaultRecentEntries)
}

// Default returns the settings used when nothing is configured
func Default() Settings {
	return Settings{
		Timezone: constants.DefaultTimezone,
		Stats: StatsSettings{
			WindowDays:    constants.DefaultWindowDays,
			TopWords:      constants.DefaultTopWords,
			RecentEntries: constants.DefaultRecentEntries,
		},
	}
}

// SettingsPath returns the location of config.yaml under dir
func SettingsPath(dir string) string {
	return filepath.Join(dir, constants.SettingsFileName)
}

// Load reads the settings. A missing config.yaml or .env is not an error;
// defaults fill whatever is unset.
func Load(opts Options) (Settings, error) {
	if opts.EnvFile != "" {
		if err := godotenv.Load(opts.EnvFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Settings{}, fmt.Errorf("failed to load %s: %w", opts.EnvFile, err)
		}
	}

	v := viper.New()
	setDefaults(v)
	for key, env := range envBindings {
		if err := v.BindEnv(key, env); err != nil {
			return Settings{}, fmt.Errorf("failed to bind %s: %w", env, err)
		}
	}

	var path string
	if opts.ConfigDir != "" {
		candidate := SettingsPath(opts.ConfigDir)
		if _, err := os.Stat(candidate); err == nil {
			v.SetConfigFile(candidate)
			v.SetConfigType("yaml")
			if err := v.ReadInConfig(); err != nil {
				return Settings{}, fmt.Errorf("failed to read %s: %w", candidate, err)
			}
			path = candidate
		}
	}

	var s Settings
	if err := v.Unmarshal(&s); err != nil {
		return Settings{}, fmt.Errorf("unable to decode settings: %w", err)
	}
	s.Path = path

	if err := Validate(s); err != nil {
		return Settings{}, err
	}
	return s, nil
}

// Validate checks value ranges and the timezone name
func Validate(s Settings) error {
	v := validate.Struct(&s.Stats)
	if !v.Validate() {
		return &apperrors.ValidationError{Field: "stats settings", Reason: v.Errors.One()}
	}
	if !utils.ValidateTimezone(s.Timezone) {
		return &apperrors.ValidationError{Field: "timezone", Reason: fmt.Sprintf("unknown timezone %q", s.Timezone)}
	}
	return nil
}

// WriteDefault writes a config.yaml holding the default settings unless one
// already exists, and returns its path.
func WriteDefault(dir string) (string, error) {
	path := SettingsPath(dir)
	if _, err := os.Stat(path); err == nil {
		return path, nil
	}
	if err := os.MkdirAll(dir, 0700); err != nil {
		return "", fmt.Errorf("failed to create config directory: %w", err)
	}

	v := viper.New()
	setDefaults(v)
	v.SetConfigType("yaml")
	if err := v.WriteConfigAs(path); err != nil {
		return "", fmt.Errorf("failed to write %s: %w", path, err)
	}
	return path, nil
}

// ConnectionFromEnv returns the PostgreSQL connection string set through
// the environment, if any.
func ConnectionFromEnv() string {
	return os.Getenv(constants.EnvDBConnection)
}
