// Package config loads scaffold job files. A job file is YAML with one
// section per procedure; keys left out keep their defaults.
//
//	strut:
//	  dir: ./paths
//	  bevel_type: CIRCLE
//	porosity:
//	  resolution: 40
//	  max_duration: 30s
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/latticefab/scaffold/porosity"
	"github.com/latticefab/scaffold/strut"
	"gopkg.in/yaml.v3"
)

// Config is a scaffold job.
type Config struct {
	Strut    strut.Config    `yaml:"strut"`
	Porosity porosity.Config `yaml:"porosity"`
}

// Default returns a job with every procedure at its default settings.
func Default() Config {
	return Config{
		Strut:    strut.DefaultConfig(),
		Porosity: porosity.DefaultConfig(),
	}
}

// Load reads the job file at path over the defaults. An empty path
// returns the defaults.
func Load(path string) (Config, error) {
	if path == "" {
		return Default(), nil
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return Config{}, err
	}
	cfg, err := Decode(bytes.NewReader(b))
	if err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Decode reads a job from r over the defaults and validates it. Unknown
// keys are rejected.
func Decode(r io.Reader) (Config, error) {
	cfg := Default()
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks both sections.
func (c Config) Validate() error {
	if err := c.Strut.Validate(); err != nil {
		return fmt.Errorf("strut: %w", err)
	}
	if err := c.Porosity.Validate(); err != nil {
		return fmt.Errorf("porosity: %w", err)
	}
	return nil
}

// Write encodes c as YAML.
func (c Config) Write(w io.Writer) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(c); err != nil {
		return err
	}
	return enc.Close()
}
