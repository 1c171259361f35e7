// Package config loads the seqtrace configuration from YAML with environment
// overrides and validates it.
//
// Precedence, lowest first: built-in defaults, the YAML file, SEQTRACE_*
// environment variables, command-line flags (applied by the caller).
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/katalvlaran/seqtrace/fogsaa"
	"github.com/katalvlaran/seqtrace/tracker"
)

// ErrInvalid wraps every validation failure.
var ErrInvalid = errors.New("config: invalid")

var validate = validator.New()

// Config is the full application configuration.
type Config struct {
	Store StoreConfig       `yaml:"store"`
	Score fogsaa.ScoreModel `yaml:"score"`
	Trace TraceConfig       `yaml:"trace"`
	Log   LogConfig         `yaml:"log"`
}

// StoreConfig locates the database.
type StoreConfig struct {
	Path       string `yaml:"path" validate:"required_unless=InMemory true"`
	InMemory   bool   `yaml:"in_memory"`
	SyncWrites bool   `yaml:"sync_writes"`
}

// TraceConfig tunes spread inference. Workers = 0 means one per CPU;
// MaxExpansions = 0 means no cap.
type TraceConfig struct {
	WindowDays    int `yaml:"window_days" validate:"gte=1"`
	Workers       int `yaml:"workers" validate:"gte=0"`
	MaxExpansions int `yaml:"max_expansions" validate:"gte=0"`
}

// LogConfig selects level and output format.
type LogConfig struct {
	Level  string `yaml:"level" validate:"oneof=debug info warn error"`
	Format string `yaml:"format" validate:"oneof=text json"`
}

// Default returns the configuration used when no file exists.
func Default() Config {
	return Config{
		Store: StoreConfig{Path: "seqtrace-data"},
		Score: fogsaa.DefaultScoreModel(),
		Trace: TraceConfig{WindowDays: tracker.DefaultWindowDays},
		Log:   LogConfig{Level: "info", Format: "text"},
	}
}

// Load reads path over the defaults, applies environment overrides and
// validates the result. A missing file is not an error; an empty path skips
// the file entirely. Unknown YAML keys are rejected.
func Load(path string) (Config, error) {
	cfg := Default()
	if path != "" {
		if err := loadFile(path, &cfg); err != nil {
			return Config{}, err
		}
	}
	if err := loadEnv(&cfg); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

func loadFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}

		return fmt.Errorf("config: read %s: %w", path, err)
	}

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("config: parse %s: %w", path, err)
	}

	return nil
}

func loadEnv(cfg *Config) error {
	if v := os.Getenv("SEQTRACE_STORE_PATH"); v != "" {
		cfg.Store.Path = v
	}
	if v := os.Getenv("SEQTRACE_LOG_LEVEL"); v != "" {
		cfg.Log.Level = strings.ToLower(v)
	}
	if v := os.Getenv("SEQTRACE_WINDOW_DAYS"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%w: SEQTRACE_WINDOW_DAYS=%q", ErrInvalid, v)
		}
		cfg.Trace.WindowDays = n
	}
	if v := os.Getenv("SEQTRACE_WORKERS"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%w: SEQTRACE_WORKERS=%q", ErrInvalid, v)
		}
		cfg.Trace.Workers = n
	}

	return nil
}

// Validate checks struct constraints and the score model.
func (c Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	if err := c.Score.Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalid, err)
	}

	return nil
}

// SlogLevel maps Level to a slog level; unknown names fall back to info.
func (l LogConfig) SlogLevel() slog.Level {
	switch l.Level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// NewLogger builds a logger writing to w in the configured format.
func (l LogConfig) NewLogger(w io.Writer) *slog.Logger {
	opts := &slog.HandlerOptions{Level: l.SlogLevel()}
	if l.Format == "json" {
		return slog.New(slog.NewJSONHandler(w, opts))
	}

	return slog.New(slog.NewTextHandler(w, opts))
}
