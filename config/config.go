// Package config holds the generator configuration read from YAML.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/wippyai/bebytes"
	"github.com/wippyai/bebytes/codegen"
	"github.com/wippyai/bebytes/errors"
	"github.com/wippyai/bebytes/ir"
)

// Config represents the generator configuration
type Config struct {
	Package   string  `yaml:"package"`
	Output    string  `yaml:"output"`
	Endian    string  `yaml:"endian"`
	RawEncode bool    `yaml:"raw_encode"`
	Logging   Logging `yaml:"logging"`
}

// Logging contains logging configuration
type Logging struct {
	Level       string `yaml:"level"`
	Development bool   `yaml:"development"`
}

// DefaultConfig returns a default configuration
func DefaultConfig() *Config {
	return &Config{
		Package:   "wire",
		Output:    "-",
		Endian:    "be",
		RawEncode: true,
		Logging: Logging{
			Level: "info",
		},
	}
}

// Load reads the configuration at path. Keys missing from the file keep
// their default values.
func Load(path string) (*Config, error) {
	if !filepath.IsAbs(path) {
		abs, err := filepath.Abs(path)
		if err != nil {
			return nil, errors.Wrap(errors.PhaseConfig, errors.KindInvalidInput, err, "invalid config path")
		}
		path = abs
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(errors.PhaseConfig, errors.KindInvalidInput, err, "read config file")
	}

	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, errors.Wrap(errors.PhaseConfig, errors.KindInvalidInput, err, "parse config file")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Save writes the configuration to path.
func Save(cfg *Config, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return errors.Wrap(errors.PhaseConfig, errors.KindInvalidInput, err, "create config directory")
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return errors.Wrap(errors.PhaseConfig, errors.KindInternal, err, "marshal config")
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return errors.Wrap(errors.PhaseConfig, errors.KindInvalidInput, err, "write config file")
	}
	return nil
}

// Validate reports every invalid setting at once.
func (c *Config) Validate() error {
	var errs errors.List
	if !ir.IsIdent(c.Package) {
		errs.Add(errors.New(errors.PhaseConfig, errors.KindInvalidInput).
			Path("package").Value(c.Package).Detail("not a Go identifier").Build())
	}
	if c.Output == "" {
		errs.Add(errors.New(errors.PhaseConfig, errors.KindInvalidInput).
			Path("output").Detail("empty output path, use - for stdout").Build())
	}
	if _, err := ParseEndian(c.Endian); err != nil {
		errs.Add(errors.New(errors.PhaseConfig, errors.KindInvalidInput).
			Path("endian").Value(c.Endian).Detail("want be or le").Build())
	}
	if _, err := zap.ParseAtomicLevel(c.Logging.Level); err != nil {
		errs.Add(errors.New(errors.PhaseConfig, errors.KindInvalidInput).
			Path("logging", "level").Value(c.Logging.Level).Cause(err).Build())
	}
	return errs.Err()
}

// Options returns the emitter options for a description named source.
func (c *Config) Options(source string) codegen.Options {
	return codegen.Options{
		Package:   c.Package,
		Source:    source,
		RawEncode: c.RawEncode,
	}
}

// ByteOrder returns the configured default endianness.
func (c *Config) ByteOrder() bebytes.Endian {
	e, _ := ParseEndian(c.Endian)
	return e
}

// NewLogger builds a zap logger at the configured level. Development
// loggers write human-readable console output.
func (c *Config) NewLogger() (*zap.Logger, error) {
	level, err := zap.ParseAtomicLevel(c.Logging.Level)
	if err != nil {
		return nil, errors.Wrap(errors.PhaseConfig, errors.KindInvalidInput, err, "logging level")
	}
	zc := zap.NewProductionConfig()
	if c.Logging.Development {
		zc = zap.NewDevelopmentConfig()
	}
	zc.Level = level
	return zc.Build()
}

// ParseEndian accepts be, le and their long spellings.
func ParseEndian(s string) (bebytes.Endian, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "be", "big", "big-endian", "":
		return bebytes.BigEndian, nil
	case "le", "little", "little-endian":
		return bebytes.LittleEndian, nil
	}
	return bebytes.BigEndian, fmt.Errorf("unknown endianness %q", s)
}
