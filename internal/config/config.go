package config

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"slices"

	"gopkg.in/yaml.v3"
)

// Config represents the complete configuration for strictjson
type Config struct {
	Input   InputConfig   `yaml:"input"`
	Output  OutputConfig  `yaml:"output"`
	Logging LoggingConfig `yaml:"logging"`
	// Jobs limits how many inputs are processed at once. Zero means one
	// per available CPU.
	Jobs int `yaml:"jobs"`
}

// InputConfig controls how inputs are read
type InputConfig struct {
	FromTokens bool `yaml:"from_tokens"`
}

// OutputConfig controls what is written for each input
type OutputConfig struct {
	Tokens          bool `yaml:"tokens"`
	Depth           int  `yaml:"depth"`
	TrailingNewline bool `yaml:"trailing_newline"`
}

// LoggingConfig controls diagnostics written to stderr
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
	Color  bool   `yaml:"color"`
}

// Accepted logging settings
var (
	LogLevels  = []string{"debug", "info", "warn", "error"}
	LogFormats = []string{"logfmt", "json"}
)

// configNames are the file names FindConfigFile looks for, in order.
var configNames = []string{".strictjson.yml", ".strictjson.yaml", "strictjson.yml", "strictjson.yaml"}

// NewConfig creates a new Config with default values
func NewConfig() *Config {
	return &Config{
		Output: OutputConfig{
			TrailingNewline: true,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "logfmt",
			Color:  true,
		},
	}
}

// LoadConfig loads configuration from a YAML file
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	// Start with defaults
	cfg := NewConfig()

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config file %s: %w", path, err)
	}
	return cfg, nil
}

// FindConfigFile searches for a config file in current directory and parents
func FindConfigFile() string {
	currentDir, err := os.Getwd()
	if err != nil {
		return ""
	}
	return findConfigFrom(currentDir)
}

func findConfigFrom(dir string) string {
	for {
		for _, name := range configNames {
			configPath := filepath.Join(dir, name)
			if _, err := os.Stat(configPath); err == nil {
				return configPath
			}
		}

		parentDir := filepath.Dir(dir)
		if parentDir == dir {
			// Reached root directory
			return ""
		}
		dir = parentDir
	}
}

// Validate reports the first setting that is out of range.
func (c *Config) Validate() error {
	if !slices.Contains(LogLevels, c.Logging.Level) {
		return fmt.Errorf("unknown log level %q (want one of %v)", c.Logging.Level, LogLevels)
	}
	if !slices.Contains(LogFormats, c.Logging.Format) {
		return fmt.Errorf("unknown log format %q (want one of %v)", c.Logging.Format, LogFormats)
	}
	if c.Output.Depth < 0 {
		return fmt.Errorf("output depth must not be negative, got %d", c.Output.Depth)
	}
	if c.Jobs < 0 {
		return fmt.Errorf("jobs must not be negative, got %d", c.Jobs)
	}
	return nil
}

// Workers returns the number of inputs to process concurrently.
func (c *Config) Workers() int {
	if c.Jobs > 0 {
		return c.Jobs
	}
	return runtime.GOMAXPROCS(0)
}

// Overrides carries command-line settings. Boolean flags can only switch a
// setting on; zero or negative numbers and empty strings leave the file
// value alone.
type Overrides struct {
	FromTokens bool
	Tokens     bool
	Depth      int // negative keeps the configured depth
	Jobs       int
	Debug      bool
	LogFormat  string
	NoColor    bool
}

// Apply returns a copy of c with o applied.
func (c *Config) Apply(o Overrides) *Config {
	merged := *c

	if o.FromTokens {
		merged.Input.FromTokens = true
	}
	if o.Tokens {
		merged.Output.Tokens = true
	}
	if o.Depth >= 0 {
		merged.Output.Depth = o.Depth
	}
	if o.Jobs > 0 {
		merged.Jobs = o.Jobs
	}
	if o.Debug {
		merged.Logging.Level = "debug"
	}
	if o.LogFormat != "" {
		merged.Logging.Format = o.LogFormat
	}
	if o.NoColor {
		merged.Logging.Color = false
	}
	return &merged
}

// LoadConfigWithCLI loads the config file at configPath, or the nearest
// one found by FindConfigFile when configPath is empty, and applies the
// command-line overrides on top.
func LoadConfigWithCLI(configPath string, o Overrides) (*Config, error) {
	cfg := NewConfig()

	if configPath == "" {
		configPath = FindConfigFile()
	}
	if configPath != "" {
		fileConfig, err := LoadConfig(configPath)
		if err != nil {
			return nil, err
		}
		cfg = fileConfig
	}

	cfg = cfg.Apply(o)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
