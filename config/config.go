// SPDX-License-Identifier: MIT

// Package config loads the dataset description used by the rangerdata tool.
//
// A config names the input file, the storage backend, the dependent
// (target) columns and optional permutation settings:
//
//	file: train.csv
//	backend: sparse
//	dependent: [y]
//	validate_nan_inf: true
//	permutation_seed: 42
//	no_split: [id]
package config

import (
	"bytes"
	"fmt"
	"math/rand/v2"
	"os"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/tfcyoo/rangerts-ars/data"
)

// configValidate is shared; validator caches struct metadata.
var configValidate = validator.New()

// Config describes how to load one dataset.
type Config struct {
	// File is the path of the delimited input table.
	File string `yaml:"file" validate:"required"`

	// Backend selects "dense" (default) or "sparse" storage.
	Backend string `yaml:"backend" validate:"omitempty,oneof=dense sparse"`

	// Dependent lists target column names, in y-column order.
	Dependent []string `yaml:"dependent" validate:"unique,dive,required"`

	// ValidateNaNInf rejects non-finite cells while loading.
	ValidateNaNInf bool `yaml:"validate_nan_inf"`

	// PermutationSeed, when set, draws permuted sample ids after loading.
	PermutationSeed *uint64 `yaml:"permutation_seed"`

	// NoSplit names feature columns excluded from permuted duplication.
	NoSplit []string `yaml:"no_split" validate:"unique,dive,required"`
}

// Load reads and validates a YAML config file.
func Load(path string) (*Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: read %s: %w", path, err)
	}

	return Parse(raw)
}

// Parse decodes and validates YAML bytes. Unknown keys are rejected.
func Parse(raw []byte) (*Config, error) {
	var c Config
	dec := yaml.NewDecoder(bytes.NewReader(raw))
	dec.KnownFields(true)
	if err := dec.Decode(&c); err != nil {
		return nil, fmt.Errorf("config: decode: %w", err)
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}

	return &c, nil
}

// Validate checks struct constraints.
func (c *Config) Validate() error {
	if err := configValidate.Struct(c); err != nil {
		return fmt.Errorf("config: invalid: %w", err)
	}

	return nil
}

// DataBackend maps Backend to a data.Backend.
func (c *Config) DataBackend() (data.Backend, error) {
	return data.ParseBackend(c.Backend)
}

// DataOptions returns the data options implied by the config.
func (c *Config) DataOptions() []data.Option {
	var opts []data.Option
	if c.ValidateNaNInf {
		opts = append(opts, data.WithValidateNaNInf())
	}

	return opts
}

// Open loads the configured file and applies the permutation settings.
func (c *Config) Open() (*data.Data, error) {
	backend, err := c.DataBackend()
	if err != nil {
		return nil, err
	}
	d, err := data.LoadFile(c.File, backend, c.Dependent, c.DataOptions()...)
	if err != nil {
		return nil, err
	}
	if len(c.NoSplit) > 0 {
		cols := make([]int, 0, len(c.NoSplit))
		for _, name := range c.NoSplit {
			id, err := d.VariableID(name)
			if err != nil {
				return nil, fmt.Errorf("config: no_split %q: %w", name, err)
			}
			cols = append(cols, id)
		}
		if err = d.SetNoSplitVariables(cols); err != nil {
			return nil, err
		}
	}
	if c.PermutationSeed != nil {
		seed := *c.PermutationSeed
		d.PermuteSampleIDs(rand.New(rand.NewPCG(seed, seed)))
	}

	return d, nil
}
