// Package config loads footprint's application settings. Values are layered:
// built-in defaults, then the config file ($FOOTPRINT_HOME/config.yaml, or
// ~/.footprint/config.yaml), then FOOTPRINT_ environment variables using "__"
// as the section separator (FOOTPRINT_CALCULATOR__REGION).
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	yamlv3 "gopkg.in/yaml.v3"

	"github.com/rshade/footprint/internal/factors"
	"github.com/rshade/footprint/internal/greenops"
)

const (
	// EnvPrefix prefixes every environment override.
	EnvPrefix = "FOOTPRINT_"

	// EnvHome overrides the configuration directory.
	EnvHome = "FOOTPRINT_HOME"

	// DirName is the configuration directory created under the home directory.
	DirName = ".footprint"

	// FileName is the configuration file inside the configuration directory.
	FileName = "config.yaml"
)

// Output formats accepted by Output.DefaultFormat.
const (
	FormatTable  = "table"
	FormatJSON   = "json"
	FormatNDJSON = "ndjson"
)

// ErrInvalidConfig is wrapped by every Validate failure.
var ErrInvalidConfig = errors.New("invalid configuration")

// Config holds the application settings.
type Config struct {
	Output     OutputConfig     `yaml:"output"`
	Logging    LoggingConfig    `yaml:"logging"`
	Calculator CalculatorConfig `yaml:"calculator"`
	Server     ServerConfig     `yaml:"server"`

	configPath string
}

// OutputConfig controls result rendering.
type OutputConfig struct {
	DefaultFormat string `yaml:"default_format"`
}

// LoggingConfig controls the zerolog logger. An empty File logs to stderr.
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
	File   string `yaml:"file"`
}

// CalculatorConfig holds the defaults used when a caller leaves a field out.
type CalculatorConfig struct {
	Region      string `yaml:"region"`
	Diet        string `yaml:"diet"`
	FactorsFile string `yaml:"factors_file"`
	Rounding    string `yaml:"rounding"`
}

// ServerConfig configures `footprint serve`.
type ServerConfig struct {
	Addr            string        `yaml:"addr"`
	RateLimit       float64       `yaml:"rate_limit"`
	Burst           int           `yaml:"burst"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
}

// Defaults returns the built-in configuration.
func Defaults() *Config {
	return &Config{
		Output: OutputConfig{DefaultFormat: FormatTable},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
		Calculator: CalculatorConfig{
			Region:   "United Arab Emirates",
			Diet:     string(factors.DietMixed),
			Rounding: string(greenops.RoundHalfUp),
		},
		Server: ServerConfig{
			Addr:            ":8080",
			RateLimit:       10,
			Burst:           20,
			ShutdownTimeout: 10 * time.Second,
		},
	}
}

// GetConfigDir returns the configuration directory: $FOOTPRINT_HOME when set,
// otherwise ~/.footprint.
func GetConfigDir() (string, error) {
	if home := os.Getenv(EnvHome); home != "" {
		return home, nil
	}
	userHome, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolving home directory: %w", err)
	}
	return filepath.Join(userHome, DirName), nil
}

// DefaultPath returns the path of the configuration file inside GetConfigDir.
func DefaultPath() (string, error) {
	dir, err := GetConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, FileName), nil
}

// New loads the configuration from DefaultPath. A missing or unreadable file
// yields the defaults with environment overrides applied. Callers that need
// to report why the file was skipped use LoadDefault.
func New() *Config {
	cfg, _ := LoadDefault()
	return cfg
}

// LoadDefault loads the configuration from DefaultPath. It always returns a
// usable configuration: when the file or the environment cannot be read the
// result falls back to the defaults, and the returned error says why.
func LoadDefault() (*Config, error) {
	path, err := DefaultPath()
	if err != nil {
		cfg := Defaults()
		return cfg, errors.Join(err, applyEnv(cfg))
	}
	cfg, err := Load(path)
	if err != nil {
		cfg = Defaults()
		err = errors.Join(err, applyEnv(cfg))
	}
	cfg.configPath = path
	return cfg, err
}

// Load reads path (.yaml, .yml or .json) over the defaults and applies
// environment overrides. A path that does not exist is not an error. The
// result is not validated; call Validate.
func Load(path string) (*Config, error) {
	k := koanf.New(".")

	if path != "" {
		if _, err := os.Stat(path); err == nil {
			parser, perr := parserFor(path)
			if perr != nil {
				return nil, perr
			}
			if err = k.Load(file.Provider(path), parser); err != nil {
				return nil, fmt.Errorf("loading config %s: %w", path, err)
			}
		} else if !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("cannot access config path %s: %w", path, err)
		}
	}

	if err := k.Load(envProvider(), nil); err != nil {
		return nil, fmt.Errorf("loading environment overrides: %w", err)
	}

	cfg := Defaults()
	if err := k.UnmarshalWithConf("", cfg, koanf.UnmarshalConf{Tag: "yaml"}); err != nil {
		return nil, fmt.Errorf("decoding config: %w", err)
	}
	cfg.configPath = path
	return cfg, nil
}

func parserFor(path string) (koanf.Parser, error) {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		return yaml.Parser(), nil
	case ".json":
		return json.Parser(), nil
	default:
		return nil, fmt.Errorf("unsupported config format: %s", ext)
	}
}

// envProvider maps FOOTPRINT_SECTION__KEY to section.key.
func envProvider() *env.Env {
	return env.Provider(EnvPrefix, ".", func(s string) string {
		s = strings.TrimPrefix(strings.ToLower(s), strings.ToLower(EnvPrefix))
		return strings.ReplaceAll(s, "__", ".")
	})
}

func applyEnv(cfg *Config) error {
	k := koanf.New(".")
	if err := k.Load(envProvider(), nil); err != nil {
		return fmt.Errorf("loading environment overrides: %w", err)
	}
	if err := k.UnmarshalWithConf("", cfg, koanf.UnmarshalConf{Tag: "yaml"}); err != nil {
		return fmt.Errorf("decoding environment overrides: %w", err)
	}
	return nil
}

// ConfigPath returns the file the configuration was loaded from or will be
// saved to.
func (c *Config) ConfigPath() string {
	return c.configPath
}

// SetConfigPath sets the file Save writes to.
func (c *Config) SetConfigPath(path string) {
	c.configPath = path
}

// Save writes the configuration as YAML to ConfigPath, creating the parent
// directory when needed.
func (c *Config) Save() error {
	if c.configPath == "" {
		path, err := DefaultPath()
		if err != nil {
			return err
		}
		c.configPath = path
	}

	data, err := yamlv3.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err = os.MkdirAll(filepath.Dir(c.configPath), 0o700); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	if err = os.WriteFile(c.configPath, data, 0o600); err != nil {
		return fmt.Errorf("writing config %s: %w", c.configPath, err)
	}
	return nil
}

// Validate checks every setting and reports all problems at once.
func (c *Config) Validate() error {
	var errs []error

	switch c.Output.DefaultFormat {
	case FormatTable, FormatJSON, FormatNDJSON:
	default:
		errs = append(errs, fmt.Errorf("output.default_format %q must be one of table, json, ndjson",
			c.Output.DefaultFormat))
	}

	switch strings.ToLower(c.Logging.Level) {
	case "trace", "debug", "info", "warn", "error", "fatal", "panic", "disabled":
	default:
		errs = append(errs, fmt.Errorf("logging.level %q is not a valid level", c.Logging.Level))
	}

	switch c.Logging.Format {
	case "json", "console":
	default:
		errs = append(errs, fmt.Errorf("logging.format %q must be json or console", c.Logging.Format))
	}

	if _, err := greenops.ParseRoundingMode(c.Calculator.Rounding); err != nil {
		errs = append(errs, fmt.Errorf("calculator.rounding: %w", err))
	}
	if c.Calculator.Diet != "" {
		if _, err := greenops.ParseDietType(c.Calculator.Diet); err != nil {
			errs = append(errs, fmt.Errorf("calculator.diet: %w", err))
		}
	}

	if c.Server.Addr == "" {
		errs = append(errs, errors.New("server.addr must not be empty"))
	}
	if c.Server.RateLimit <= 0 {
		errs = append(errs, fmt.Errorf("server.rate_limit must be positive, got %g", c.Server.RateLimit))
	}
	if c.Server.Burst <= 0 {
		errs = append(errs, fmt.Errorf("server.burst must be positive, got %d", c.Server.Burst))
	}
	if c.Server.ShutdownTimeout <= 0 {
		errs = append(errs, fmt.Errorf("server.shutdown_timeout must be positive, got %s", c.Server.ShutdownTimeout))
	}

	if len(errs) > 0 {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, errors.Join(errs...))
	}
	return nil
}

// EnsureLogDir creates the parent directory of the configured log file. It
// does nothing when logging goes to stderr.
func (c *Config) EnsureLogDir() error {
	return c.Logging.EnsureLogDir()
}

// EnsureLogDir creates the parent directory of File, if set.
func (lc *LoggingConfig) EnsureLogDir() error {
	if lc.File == "" {
		return nil
	}
	logDir := filepath.Dir(lc.File)
	if err := os.MkdirAll(logDir, 0o700); err != nil {
		return fmt.Errorf("failed to create log directory %q: %w", logDir, err)
	}
	return nil
}
