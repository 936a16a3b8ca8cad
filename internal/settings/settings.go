// Package settings loads CLI settings from defaults, an optional YAML file and STYLEKIT_*
// environment variables.
package settings

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"

	stylekiterrors "github.com/alexisbeaulieu97/stylekit/pkg/errors"
)

const (
	// AppName names the config and cache directories.
	AppName = "stylekit"
	// EnvPrefix prefixes environment overrides, e.g. STYLEKIT_LOG_LEVEL.
	EnvPrefix = "STYLEKIT"
	// ConfigEnv points at an explicit settings file.
	ConfigEnv = "STYLEKIT_CONFIG"
)

// Settings holds CLI preferences.
type Settings struct {
	LogLevel string        `mapstructure:"log_level" validate:"oneof=trace debug info warn error"`
	Format   string        `mapstructure:"format" validate:"oneof=html tree"`
	CacheDir string        `mapstructure:"cache_dir" validate:"required"`
	Watch    WatchSettings `mapstructure:"watch"`
	// File is the settings file that was read, empty when none was found.
	File string `mapstructure:"-"`
}

// WatchSettings configures the watch command.
type WatchSettings struct {
	Debounce time.Duration `mapstructure:"debounce" validate:"min=0"`
}

// Load reads settings. An explicit path, or STYLEKIT_CONFIG, must exist; the default
// ~/.config/stylekit/config.yaml is optional.
func Load(path string) (Settings, error) {
	v := viper.New()

	home, _ := os.UserHomeDir()
	v.SetDefault("log_level", "info")
	v.SetDefault("format", "html")
	v.SetDefault("cache_dir", filepath.Join(home, ".cache", AppName))
	v.SetDefault("watch.debounce", "300ms")

	v.SetConfigType("yaml")

	if path == "" {
		path = os.Getenv(ConfigEnv)
	}
	explicit := path != ""
	if explicit {
		v.SetConfigFile(path)
	} else {
		v.AddConfigPath(filepath.Join(home, ".config", AppName))
		v.SetConfigName("config")
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if explicit || !errors.As(err, &notFound) {
			return Settings{}, stylekiterrors.NewParseError(path, 0, err)
		}
	}

	var s Settings
	if err := v.Unmarshal(&s); err != nil {
		return Settings{}, fmt.Errorf("unmarshal settings: %w", err)
	}
	s.File = v.ConfigFileUsed()
	s.LogLevel = strings.ToLower(s.LogLevel)
	s.Format = strings.ToLower(s.Format)

	if err := validator.New().Struct(s); err != nil {
		var fieldErrs validator.ValidationErrors
		if errors.As(err, &fieldErrs) {
			fe := fieldErrs[0]
			return Settings{}, stylekiterrors.NewValidationError(strings.ToLower(fe.Field()), fmt.Sprintf("invalid value %v", fe.Value()), err)
		}
		return Settings{}, stylekiterrors.NewValidationError("settings", err.Error(), err)
	}
	return s, nil
}

// Default returns the built-in settings.
func Default() Settings {
	home, _ := os.UserHomeDir()
	return Settings{
		LogLevel: "info",
		Format:   "html",
		CacheDir: filepath.Join(home, ".cache", AppName),
		Watch:    WatchSettings{Debounce: 300 * time.Millisecond},
	}
}
