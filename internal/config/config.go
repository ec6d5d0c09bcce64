// Package config loads the YAML configuration of the hachtel command.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"slices"

	"gopkg.in/yaml.v3"

	"github.com/katalvlaran/hachtel/cases"
	"github.com/katalvlaran/hachtel/estimator"
	"github.com/katalvlaran/hachtel/internal/logging"
)

// ErrInvalid is wrapped by every validation failure.
var ErrInvalid = errors.New("config: invalid")

// Config is the command configuration.
type Config struct {
	// Solver holds the estimator tunables.
	Solver SolverConfig `yaml:"solver"`

	// Logging configures the command logger.
	Logging logging.Config `yaml:"logging"`

	// Case selects and parameterizes the fixture to estimate.
	Case CaseConfig `yaml:"case"`

	// Hypotheses, when present, are solved concurrently instead of a single run.
	Hypotheses []HypothesisConfig `yaml:"hypotheses,omitempty"`
}

// SolverConfig mirrors estimator.Options.
type SolverConfig struct {
	MaxIterations   int     `yaml:"max_iterations"`
	Tolerance       float64 `yaml:"tolerance"`
	SuspectVariance float64 `yaml:"suspect_variance"`
	StatusThreshold float64 `yaml:"status_threshold"`
	ConditionGate   float64 `yaml:"condition_gate"`
	Parallelism     int     `yaml:"parallelism"`
}

// CaseConfig names a case from the cases registry.
type CaseConfig struct {
	Name      string  `yaml:"name"`
	Size      int     `yaml:"size"`
	Seed      int64   `yaml:"seed"`
	Spread    float64 `yaml:"spread"`
	Variance  float64 `yaml:"variance"`
	Amplitude float64 `yaml:"amplitude"`

	// Flip lists branches whose assumed status is inverted before estimation.
	Flip []string `yaml:"flip,omitempty"`

	// Suspect lists branches whose status rows are relaxed.
	Suspect []string `yaml:"suspect,omitempty"`
}

// HypothesisConfig is one alternative assumption: the case assumption with
// Flip inverted, plus extra suspects.
type HypothesisConfig struct {
	Name    string   `yaml:"name"`
	Flip    []string `yaml:"flip,omitempty"`
	Suspect []string `yaml:"suspect,omitempty"`
}

// Default returns the built-in configuration: the demonstration case solved
// with the estimator defaults.
func Default() *Config {
	d := estimator.DefaultOptions()
	p := cases.DefaultParams()

	return &Config{
		Solver: SolverConfig{
			MaxIterations:   d.MaxIterations,
			Tolerance:       d.Tolerance,
			SuspectVariance: d.SuspectVariance,
			StatusThreshold: d.StatusThreshold,
			ConditionGate:   d.ConditionGate,
			Parallelism:     d.Parallelism,
		},
		Logging: logging.DefaultConfig(),
		Case: CaseConfig{
			Name:      "demo",
			Size:      p.Size,
			Seed:      p.Seed,
			Spread:    p.Spread,
			Variance:  p.Variance,
			Amplitude: p.Amplitude,
		},
	}
}

// Load reads the YAML file at path over the defaults. A missing file yields
// the defaults; unknown keys are rejected.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Default(), nil
		}
		return nil, fmt.Errorf("config: read %s: %w", path, err)
	}

	cfg, err := Parse(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("config: %s: %w", path, err)
	}

	return cfg, nil
}

// Parse decodes YAML from r over the defaults and validates the result.
func Parse(r io.Reader) (*Config, error) {
	cfg := Default()
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("decode: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate reports every invalid field at once.
func (c *Config) Validate() error {
	var errs []error
	bad := func(field string, v any) {
		errs = append(errs, fmt.Errorf("%w: %s=%v", ErrInvalid, field, v))
	}

	s := c.Solver
	if s.MaxIterations < 1 {
		bad("solver.max_iterations", s.MaxIterations)
	}
	if !(s.Tolerance > 0) {
		bad("solver.tolerance", s.Tolerance)
	}
	if !(s.SuspectVariance > 0) {
		bad("solver.suspect_variance", s.SuspectVariance)
	}
	if !(s.StatusThreshold > 0 && s.StatusThreshold < 1) {
		bad("solver.status_threshold", s.StatusThreshold)
	}
	if !(s.ConditionGate >= 1) {
		bad("solver.condition_gate", s.ConditionGate)
	}
	if s.Parallelism < 1 {
		bad("solver.parallelism", s.Parallelism)
	}

	if !slices.Contains(cases.Names(), c.Case.Name) {
		bad("case.name", c.Case.Name)
	}
	if c.Case.Amplitude < 0 {
		bad("case.amplitude", c.Case.Amplitude)
	}

	seen := make(map[string]bool, len(c.Hypotheses))
	for i, h := range c.Hypotheses {
		if h.Name == "" || seen[h.Name] {
			bad(fmt.Sprintf("hypotheses[%d].name", i), fmt.Sprintf("%q", h.Name))
		}
		seen[h.Name] = true
	}

	if err := c.Logging.Validate(); err != nil {
		errs = append(errs, fmt.Errorf("%w: logging: %w", ErrInvalid, err))
	}

	return errors.Join(errs...)
}

// Options converts the solver section and suspects into estimator options.
func (c *Config) Options() []estimator.Option {
	s := c.Solver

	return []estimator.Option{
		estimator.WithMaxIterations(s.MaxIterations),
		estimator.WithTolerance(s.Tolerance),
		estimator.WithSuspectVariance(s.SuspectVariance),
		estimator.WithStatusThreshold(s.StatusThreshold),
		estimator.WithConditionGate(s.ConditionGate),
		estimator.WithParallelism(s.Parallelism),
		estimator.WithSuspectBranches(c.Case.Suspect...),
	}
}

// Params converts the case section into generator parameters.
func (c *Config) Params() cases.Params {
	return cases.Params{
		Size:      c.Case.Size,
		Seed:      c.Case.Seed,
		Spread:    c.Case.Spread,
		Variance:  c.Case.Variance,
		Amplitude: c.Case.Amplitude,
	}
}

// Save writes c as YAML to path.
func (c *Config) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("config: encode: %w", err)
	}

	return os.WriteFile(path, data, 0o644)
}
