package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"opal/bloom"
	"opal/internal/common"
)

// Config holds the settings shared by the opal binaries.
type Config struct {
	// Capacity and ErrorRate size filters created by "new" without arguments.
	Capacity  int     `yaml:"capacity"`
	ErrorRate float64 `yaml:"error_rate"`
	Hasher    string  `yaml:"hasher"`
	Family    string  `yaml:"family"`
	// Functions fixes k and sizes m from Capacity alone. Zero derives k
	// from ErrorRate.
	Functions   int    `yaml:"functions"`
	HistoryFile string `yaml:"history_file"`
	Quiet       bool   `yaml:"quiet"`
}

// DefaultConfig returns the built-in settings.
func DefaultConfig() Config {
	return Config{
		Capacity:    1000,
		ErrorRate:   0.01,
		Hasher:      bloom.Murmur3.Name(),
		Family:      bloom.DefaultFamilyKind,
		HistoryFile: defaultHistoryFile(),
	}
}

func defaultHistoryFile() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".opal_history"
	}
	return filepath.Join(home, ".opal_history")
}

// Load reads a YAML file over DefaultConfig and validates the result.
// Keys missing from the file keep their default values.
func Load(path string) (Config, error) {
	cfg := DefaultConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, common.Wrapf(common.KindConfiguration, "config.Load", err, "read %s", path)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, common.Wrapf(common.KindParse, "config.Load", err, "parse %s", path)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	common.Debugf("config: loaded %s", path)
	return cfg, nil
}

// Validate checks that the settings describe a filter the library can build.
func (c Config) Validate() error {
	const op = "config.Validate"
	if c.Capacity <= 0 {
		return common.Errorf(common.KindConfiguration, op, "capacity must be positive, got %d", c.Capacity)
	}
	if c.Functions < 0 {
		return common.Errorf(common.KindConfiguration, op, "functions must not be negative, got %d", c.Functions)
	}
	if c.Functions == 0 && !(c.ErrorRate > 0 && c.ErrorRate < 1) {
		return common.Errorf(common.KindConfiguration, op, "error_rate must be in (0, 1), got %v", c.ErrorRate)
	}
	if _, err := bloom.HasherByName(c.Hasher); err != nil {
		return common.Wrapf(common.KindConfiguration, op, err, "hasher")
	}
	if !knownFamily(c.Family) {
		return common.Errorf(common.KindConfiguration, op, "unknown family %q, have %v", c.Family, bloom.FamilyKinds())
	}
	return nil
}

func knownFamily(kind string) bool {
	for _, k := range bloom.FamilyKinds() {
		if k == kind {
			return true
		}
	}
	return false
}

// NewFilter builds an empty filter from the settings. A positive capacity
// or errorRate overrides the configured value.
func (c Config) NewFilter(capacity int, errorRate float64) (*bloom.Filter, error) {
	if capacity > 0 {
		c.Capacity = capacity
	}
	if errorRate > 0 {
		c.ErrorRate = errorRate
		c.Functions = 0
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	hasher, err := bloom.HasherByName(c.Hasher)
	if err != nil {
		return nil, err
	}

	if c.Functions > 0 {
		family, err := bloom.NewFamily(c.Family, c.Functions)
		if err != nil {
			return nil, err
		}
		return bloom.NewWithFamily(c.Capacity, family, bloom.WithHasher(hasher))
	}

	_, k, err := bloom.OptimalParams(c.Capacity, c.ErrorRate)
	if err != nil {
		return nil, err
	}
	family, err := bloom.NewFamily(c.Family, k)
	if err != nil {
		return nil, err
	}
	return bloom.New(c.Capacity, c.ErrorRate, bloom.WithFamily(family), bloom.WithHasher(hasher))
}

func (c Config) String() string {
	if c.Functions > 0 {
		return fmt.Sprintf("capacity=%d functions=%d hasher=%s family=%s", c.Capacity, c.Functions, c.Hasher, c.Family)
	}
	return fmt.Sprintf("capacity=%d error_rate=%v hasher=%s family=%s", c.Capacity, c.ErrorRate, c.Hasher, c.Family)
}
