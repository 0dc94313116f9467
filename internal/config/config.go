package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"maps"
	"reflect"
	"strings"
	"time"

	"github.com/aretw0/unshell/internal/logging"
	"github.com/aretw0/unshell/pkg/adapters/process"
	"github.com/go-playground/validator/v10"
	"github.com/mitchellh/mapstructure"
	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"
)

// DefaultFile is read from the working directory when no path is given.
const DefaultFile = "unshell.yaml"

// EnvPrefix prefixes every environment override, e.g. UNSHELL_LOG_LEVEL.
const EnvPrefix = "UNSHELL_"

// Config is the explicit runtime configuration handed to the engine.
type Config struct {
	Shell       string            `mapstructure:"shell" yaml:"shell" validate:"required"`
	Dir         string            `mapstructure:"dir" yaml:"dir"`
	Env         map[string]string `mapstructure:"env" yaml:"env"`
	Timeout     time.Duration     `mapstructure:"timeout" yaml:"timeout" validate:"gte=0"`
	LogLevel    string            `mapstructure:"log_level" yaml:"log_level" validate:"oneof=debug info warn error"`
	LogFormat   string            `mapstructure:"log_format" yaml:"log_format" validate:"oneof=text json"`
	Color       string            `mapstructure:"color" yaml:"color" validate:"oneof=auto always never"`
	MetricsAddr string            `mapstructure:"metrics_addr" yaml:"metrics_addr" validate:"omitempty,hostname_port"`
}

func defaults() map[string]any {
	return map[string]any{
		"shell":      "/bin/sh -c",
		"log_level":  "info",
		"log_format": "text",
		"color":      "auto",
	}
}

// Default returns the configuration used when nothing is configured.
func Default() *Config {
	cfg, _ := decode(defaults())
	return cfg
}

// Load builds the configuration from defaults, the YAML file at path and
// UNSHELL_* variables found in environ, in increasing precedence.
// A missing file is only an error when path was given explicitly.
func Load(fsys afero.Fs, path string, environ []string) (*Config, error) {
	raw := defaults()

	explicit := path != ""
	if !explicit {
		path = DefaultFile
	}
	data, err := afero.ReadFile(fsys, path)
	switch {
	case err == nil:
		var fileValues map[string]any
		if err := yaml.Unmarshal(data, &fileValues); err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", path, err)
		}
		maps.Copy(raw, fileValues)
	case errors.Is(err, fs.ErrNotExist) && !explicit:
		// nothing configured
	default:
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	applyEnv(raw, environ)

	cfg, err := decode(raw)
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// envKeys holds the scalar keys UNSHELL_<KEY> may set. env is a map and is
// only reachable through UNSHELL_ENV_<NAME>.
var envKeys = func() map[string]bool {
	keys := map[string]bool{}
	t := reflect.TypeFor[Config]()
	for i := range t.NumField() {
		tag, _, _ := strings.Cut(t.Field(i).Tag.Get("mapstructure"), ",")
		if tag != "" && tag != "env" {
			keys[tag] = true
		}
	}
	return keys
}()

// applyEnv overlays UNSHELL_<KEY> variables. UNSHELL_ENV_<NAME> sets env[NAME].
// Variables naming no configuration key are ignored.
func applyEnv(raw map[string]any, environ []string) {
	for _, kv := range environ {
		key, value, ok := strings.Cut(kv, "=")
		if !ok || !strings.HasPrefix(key, EnvPrefix) {
			continue
		}
		name := strings.TrimPrefix(key, EnvPrefix)
		if extra, found := strings.CutPrefix(name, "ENV_"); found {
			if extra == "" {
				continue
			}
			env, _ := raw["env"].(map[string]any)
			if env == nil {
				env = map[string]any{}
			}
			env[extra] = value
			raw["env"] = env
			continue
		}
		if field := strings.ToLower(name); envKeys[field] {
			raw[field] = value
		}
	}
}

func decode(raw map[string]any) (*Config, error) {
	var cfg Config
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		DecodeHook:       mapstructure.StringToTimeDurationHookFunc(),
		WeaklyTypedInput: true,
		ErrorUnused:      true,
		Result:           &cfg,
	})
	if err != nil {
		return nil, err
	}
	if err := decoder.Decode(raw); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return &cfg, nil
}

var validate = validator.New()

// Validate checks field constraints. Call it again after applying flag overrides.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

// ShellConfig returns the process adapter view of the configuration.
func (c *Config) ShellConfig() process.ShellConfig {
	return process.ShellConfig{Shell: c.Shell, Dir: c.Dir, Env: c.Env}
}

// SlogLevel returns the configured log level.
func (c *Config) SlogLevel() slog.Level {
	level, err := logging.ParseLevel(c.LogLevel)
	if err != nil {
		return slog.LevelInfo
	}
	return level
}
