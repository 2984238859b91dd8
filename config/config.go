// Package config loads the library's settings.
//
// Configuration comes from a single YAML file named by the --config flag or
// the BABEL_CONFIG environment variable. There is no discovery; with neither
// set, Default is used as is.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/Redundancy/go-babel/layout"
	"github.com/Redundancy/go-babel/params"
	"gopkg.in/yaml.v3"
)

// EnvVar names the environment variable holding the config file path
const EnvVar = "BABEL_CONFIG"

type Config struct {
	// Params is the parameter store path; the extension picks the format
	Params string `yaml:"params"`

	// Bookmarks is an sqlite database path. Empty keeps bookmarks in memory.
	Bookmarks string `yaml:"bookmarks"`

	Layout   layout.Layout  `yaml:"layout"`
	Generate GenerateConfig `yaml:"generate"`
	Server   ServerConfig   `yaml:"server"`
	Log      LogConfig      `yaml:"log"`
}

type GenerateConfig struct {
	MaxAttempts int `yaml:"max_attempts"`
}

type ServerConfig struct {
	Listen string `yaml:"listen"`
}

type LogConfig struct {
	// Level is one of debug, info, warn or error
	Level string `yaml:"level"`
	// Format is text or json
	Format string `yaml:"format"`
}

func Default() *Config {
	return &Config{
		Params: "numbers",
		Layout: layout.Default,
		Generate: GenerateConfig{
			MaxAttempts: params.DefaultMaxAttempts,
		},
		Server: ServerConfig{
			Listen: ":3000",
		},
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

// Load reads path, or the file named by BABEL_CONFIG when path is empty.
// Values missing from the file keep their defaults.
func Load(path string) (*Config, error) {
	if path == "" {
		path = os.Getenv(EnvVar)
	}

	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}

	if err := cfg.decode(data); err != nil {
		return nil, fmt.Errorf("config: %s: %w", path, err)
	}

	return cfg, nil
}

func (c *Config) decode(data []byte) error {
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)

	err := decoder.Decode(c)
	if errors.Is(err, io.EOF) {
		return nil
	}
	return err
}

func (c *Config) Validate() error {
	var errs []error

	if c.Params == "" {
		errs = append(errs, fmt.Errorf("params is required"))
	}

	if err := c.Layout.Validate(); err != nil {
		errs = append(errs, err)
	}

	if c.Generate.MaxAttempts < 1 {
		errs = append(errs, fmt.Errorf("generate.max_attempts must be at least 1"))
	}

	if c.Server.Listen == "" {
		errs = append(errs, fmt.Errorf("server.listen is required"))
	}

	if _, err := ParseLevel(c.Log.Level); err != nil {
		errs = append(errs, err)
	}

	if c.Log.Format != "text" && c.Log.Format != "json" {
		errs = append(errs, fmt.Errorf("log.format must be one of: [text json]"))
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}
	return nil
}

func ParseLevel(name string) (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.ToUpper(name))); err != nil {
		return 0, fmt.Errorf("log.level must be one of: [debug info warn error]")
	}
	return level, nil
}

// NewLogger builds the logger the configuration describes, writing to w
func (l LogConfig) NewLogger(w io.Writer) (*slog.Logger, error) {
	level, err := ParseLevel(l.Level)
	if err != nil {
		return nil, err
	}

	options := &slog.HandlerOptions{Level: level}

	switch l.Format {
	case "json":
		return slog.New(slog.NewJSONHandler(w, options)), nil
	case "text", "":
		return slog.New(slog.NewTextHandler(w, options)), nil
	default:
		return nil, fmt.Errorf("log.format must be one of: [text json]")
	}
}
