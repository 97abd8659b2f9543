// Package config holds the fixture generation profile: what to generate
// and where to write it. Profiles can be loaded from YAML.
package config

import (
	"bytes"
	"io"
	"io/ioutil"

	"github.com/pkg/errors"
	"github.com/ppanyukov/tsdb-fixture-gen/pkg/intervals"
	"github.com/ppanyukov/tsdb-fixture-gen/pkg/randval"
	"github.com/ppanyukov/tsdb-fixture-gen/pkg/series"
	"gopkg.in/yaml.v3"
)

// Config is the full profile for both generators.
type Config struct {
	Points    PointsConfig    `yaml:"points"`
	Intervals IntervalsConfig `yaml:"intervals"`
}

// PointsConfig configures the point series fixture.
type PointsConfig struct {
	Output    string                 `yaml:"output"`
	Generator series.GeneratorConfig `yaml:"generator"`

	// ValueKind is one of randval.KindUniform, KindGauge or KindCounter.
	ValueKind string         `yaml:"valueKind"`
	Values    randval.Config `yaml:"values"`

	// Sample is how many leading points to print after writing.
	Sample int `yaml:"sample"`
}

// IntervalsConfig configures the query interval fixture.
type IntervalsConfig struct {
	Output    string                    `yaml:"output"`
	Generator intervals.GeneratorConfig `yaml:"generator"`

	// RandSeed seeds endpoint sampling, `0` means seed from current time.
	RandSeed int64 `yaml:"randSeed"`
}

// Default returns the reference profile.
func Default() Config {
	return Config{
		Points: PointsConfig{
			Output:    "assets/test_data.csv",
			Generator: series.DefaultGeneratorConfig(),
			ValueKind: randval.KindUniform,
			Values:    randval.DefaultConfig(),
			Sample:    5,
		},
		Intervals: IntervalsConfig{
			Output:    "assets/intervals.csv",
			Generator: intervals.DefaultGeneratorConfig(),
		},
	}
}

// Validate checks both sections.
func (c Config) Validate() error {
	if err := c.Points.Validate(); err != nil {
		return errors.Wrap(err, "points")
	}
	if err := c.Intervals.Validate(); err != nil {
		return errors.Wrap(err, "intervals")
	}
	return nil
}

func (c PointsConfig) Validate() error {
	if c.Output == "" {
		return errors.New("output path is empty")
	}
	if c.Sample < 0 {
		return errors.Errorf("sample size %d is negative", c.Sample)
	}
	if err := c.Generator.Validate(); err != nil {
		return err
	}
	switch c.ValueKind {
	case randval.KindUniform, randval.KindGauge, randval.KindCounter:
	default:
		return errors.Errorf("unknown value kind %q", c.ValueKind)
	}
	return c.Values.Validate()
}

func (c IntervalsConfig) Validate() error {
	if c.Output == "" {
		return errors.New("output path is empty")
	}
	return c.Generator.Validate()
}

// Parse overlays YAML onto the reference profile. Keys missing from
// the YAML keep their default values; unknown keys are an error.
func Parse(b []byte) (Config, error) {
	c := Default()

	dec := yaml.NewDecoder(bytes.NewReader(b))
	dec.KnownFields(true)
	if err := dec.Decode(&c); err != nil && err != io.EOF {
		return Config{}, errors.Wrap(err, "parse yaml")
	}

	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

// LoadFile reads a YAML profile from path.
func LoadFile(path string) (Config, error) {
	b, err := ioutil.ReadFile(path)
	if err != nil {
		return Config{}, errors.Wrap(err, "read config file")
	}

	c, err := Parse(b)
	if err != nil {
		return Config{}, errors.Wrapf(err, "load %s", path)
	}
	return c, nil
}
