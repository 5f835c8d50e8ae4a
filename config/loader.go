package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/c360/prioflow/errors"
)

// Loader reads configuration files. The format is chosen by file extension:
// .json, or .yaml/.yml.
type Loader struct{}

// NewLoader creates a configuration loader.
func NewLoader() *Loader {
	return &Loader{}
}

// LoadFile reads, parses and validates a configuration file. Fields absent
// from the file keep their defaults.
func (l *Loader) LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.WrapFatal(err, "Loader", "LoadFile", "read config file")
	}

	cfg := Default()

	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		if err := json.Unmarshal(data, cfg); err != nil {
			return nil, errors.WrapInvalid(err, "Loader", "LoadFile", "parse JSON config")
		}
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, errors.WrapInvalid(err, "Loader", "LoadFile", "parse YAML config")
		}
	default:
		return nil, errors.WrapInvalid(
			fmt.Errorf("unsupported config extension %q", filepath.Ext(path)),
			"Loader", "LoadFile", "format detection")
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}
