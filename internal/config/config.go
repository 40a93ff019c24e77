package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	toml "github.com/pelletier/go-toml/v2"

	"github.com/five82/leadflow/internal/pipeline"
)

// Config captures everything LeadFlow reads at startup.
type Config struct {
	Endpoint       string
	DefaultQuery   string
	DefaultLimit   int
	RequestTimeout time.Duration
	ExportDir      string
	LogFile        string
}

const (
	defaultConfigPath = "~/.config/leadflow/config.toml"
	defaultExportDir  = "~/.local/share/leadflow/exports"
	defaultLogFile    = "~/.local/share/leadflow/leadflow.log"
	defaultQuery      = "technology companies in South Loop Chicago"

	// MinLimit and MaxLimit bound the number of businesses per run.
	MinLimit = 1
	MaxLimit = 25
	// DefaultLimit is used when no limit is configured or the input is unusable.
	DefaultLimit = 10
)

// Environment variables consulted after the config file.
const (
	EnvEndpoint  = "LEADFLOW_ENDPOINT"
	EnvLogFile   = "LEADFLOW_LOG_FILE"
	EnvExportDir = "LEADFLOW_EXPORT_DIR"
)

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Endpoint:     pipeline.DefaultEndpoint,
		DefaultQuery: defaultQuery,
		DefaultLimit: DefaultLimit,
		ExportDir:    mustExpand(defaultExportDir),
		LogFile:      mustExpand(defaultLogFile),
	}
}

// Load locates and parses the config file, falling back to defaults when it
// is missing, then applies environment overrides (.env is read first).
func Load(path string) (Config, error) {
	resolved, err := resolvePath(path)
	if err != nil {
		return Config{}, err
	}

	cfg := Default()

	data, err := os.ReadFile(resolved)
	switch {
	case err == nil:
		if err := cfg.merge(data); err != nil {
			return Config{}, err
		}
	case errors.Is(err, os.ErrNotExist):
	default:
		return Config{}, fmt.Errorf("read config: %w", err)
	}

	_ = godotenv.Load()
	cfg.applyEnv()

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Parse reads configuration from r on top of the defaults. It does not
// consult the environment.
func Parse(r io.Reader) (Config, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}
	cfg := Default()
	if err := cfg.merge(data); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c *Config) merge(data []byte) error {
	var raw struct {
		Endpoint       string  `toml:"endpoint"`
		DefaultQuery   string  `toml:"default_query"`
		DefaultLimit   int     `toml:"default_limit"`
		RequestTimeout string  `toml:"request_timeout"`
		ExportDir      string  `toml:"export_dir"`
		LogFile        *string `toml:"log_file"`
	}
	if err := toml.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("parse config: %w", err)
	}

	if v := strings.TrimSpace(raw.Endpoint); v != "" {
		c.Endpoint = v
	}
	if v := strings.TrimSpace(raw.DefaultQuery); v != "" {
		c.DefaultQuery = v
	}
	if raw.DefaultLimit != 0 {
		c.DefaultLimit = ClampLimit(raw.DefaultLimit)
	}
	if v := strings.TrimSpace(raw.RequestTimeout); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("parse request_timeout %q: %w", v, err)
		}
		c.RequestTimeout = d
	}
	if v := strings.TrimSpace(raw.ExportDir); v != "" {
		c.ExportDir = mustExpand(v)
	}
	// An explicitly empty log_file disables the diagnostic log.
	if raw.LogFile != nil {
		c.LogFile = ""
		if v := strings.TrimSpace(*raw.LogFile); v != "" {
			c.LogFile = mustExpand(v)
		}
	}
	return nil
}

func (c *Config) applyEnv() {
	if v := strings.TrimSpace(os.Getenv(EnvEndpoint)); v != "" {
		c.Endpoint = v
	}
	if v := strings.TrimSpace(os.Getenv(EnvLogFile)); v != "" {
		c.LogFile = mustExpand(v)
	}
	if v := strings.TrimSpace(os.Getenv(EnvExportDir)); v != "" {
		c.ExportDir = mustExpand(v)
	}
}

// Validate checks the values that cannot be defaulted silently.
func (c Config) Validate() error {
	if _, err := pipeline.ParseEndpoint(c.Endpoint); err != nil {
		return fmt.Errorf("invalid endpoint: %w", err)
	}
	if c.RequestTimeout < 0 {
		return fmt.Errorf("request_timeout must not be negative")
	}
	if c.DefaultLimit < MinLimit || c.DefaultLimit > MaxLimit {
		return fmt.Errorf("default_limit must be between %d and %d", MinLimit, MaxLimit)
	}
	return nil
}

// ClampLimit forces n into [MinLimit, MaxLimit].
func ClampLimit(n int) int {
	if n < MinLimit {
		return MinLimit
	}
	if n > MaxLimit {
		return MaxLimit
	}
	return n
}

// DefaultPath returns the default config file location.
func DefaultPath() string {
	return defaultConfigPath
}

// ExpandPath resolves ~ and relative segments into an absolute path.
func ExpandPath(path string) (string, error) {
	return expandPath(path)
}

func resolvePath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return expandPath(defaultConfigPath)
	}
	return expandPath(path)
}

func mustExpand(path string) string {
	expanded, err := expandPath(path)
	if err != nil {
		return path
	}
	return expanded
}

func expandPath(path string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return "", fmt.Errorf("path is empty")
	}
	if strings.HasPrefix(trimmed, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		trimmed = filepath.Join(home, strings.TrimPrefix(trimmed, "~"))
	}
	return filepath.Abs(trimmed)
}
