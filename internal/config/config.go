package config

import (
	"fmt"
	"math"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/chaosmap/internal/analysis"
	"github.com/san-kum/chaosmap/internal/dynamo"
	"github.com/san-kum/chaosmap/internal/maps"
)

const (
	DefaultTrials    = 50000
	DefaultP4        = 0.5
	DefaultTransient = 50
	DefaultAveraging = 1000
	DefaultOutput    = "chaoticPoints.txt"
	DefaultMap       = "guillot"
	DefaultLogLevel  = "info"
)

// Range is a closed sampling interval. Min == Max pins the parameter.
// In YAML it is written as a two-element sequence, [min, max].
type Range struct {
	Min float64
	Max float64
}

func (r Range) Pinned() bool { return r.Min == r.Max }

func (r Range) Width() float64 { return r.Max - r.Min }

func (r Range) String() string { return fmt.Sprintf("[%g, %g]", r.Min, r.Max) }

func (r Range) validate(name string) error {
	for _, v := range []float64{r.Min, r.Max} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("%s range %s is not finite: %w", name, r, dynamo.ErrInvalidConfig)
		}
	}
	if r.Min > r.Max {
		return fmt.Errorf("%s range %s is reversed: %w", name, r, dynamo.ErrInvalidConfig)
	}
	return nil
}

func (r Range) MarshalYAML() (interface{}, error) {
	node := &yaml.Node{Kind: yaml.SequenceNode, Style: yaml.FlowStyle}
	for _, v := range []float64{r.Min, r.Max} {
		var item yaml.Node
		if err := item.Encode(v); err != nil {
			return nil, err
		}
		node.Content = append(node.Content, &item)
	}
	return node, nil
}

// UnmarshalYAML accepts [min, max], {min: .., max: ..} or a single scalar,
// which pins the parameter.
func (r *Range) UnmarshalYAML(value *yaml.Node) error {
	switch value.Kind {
	case yaml.SequenceNode:
		var pair []float64
		if err := value.Decode(&pair); err != nil {
			return err
		}
		if len(pair) != 2 {
			return fmt.Errorf("line %d: range needs two values, got %d", value.Line, len(pair))
		}
		r.Min, r.Max = pair[0], pair[1]
	case yaml.MappingNode:
		var m struct {
			Min float64 `yaml:"min"`
			Max float64 `yaml:"max"`
		}
		if err := value.Decode(&m); err != nil {
			return err
		}
		r.Min, r.Max = m.Min, m.Max
	case yaml.ScalarNode:
		var v float64
		if err := value.Decode(&v); err != nil {
			return err
		}
		r.Min, r.Max = v, v
	default:
		return fmt.Errorf("line %d: cannot decode range", value.Line)
	}
	return nil
}

type Config struct {
	Map            string  `yaml:"map"`
	Trials         int     `yaml:"trials"`
	Seed           int64   `yaml:"seed"`
	P1             Range   `yaml:"p1"`
	P2             Range   `yaml:"p2"`
	P3             Range   `yaml:"p3"`
	P4             float64 `yaml:"p4"`
	X0             float64 `yaml:"x0"`
	Window         string  `yaml:"window,omitempty"`
	Transient      int     `yaml:"transient"`
	Averaging      int     `yaml:"averaging"`
	DerivativeStep float64 `yaml:"derivative_step"`
	Workers        int     `yaml:"workers"`
	Output         string  `yaml:"output"`
	LogLevel       string  `yaml:"log_level"`
}

// DefaultConfig reproduces the reference sampling run.
func DefaultConfig() *Config {
	return &Config{
		Map:            DefaultMap,
		Trials:         DefaultTrials,
		P1:             Range{0, 0.4},
		P2:             Range{20, 40},
		P3:             Range{0, 2},
		P4:             DefaultP4,
		Transient:      DefaultTransient,
		Averaging:      DefaultAveraging,
		DerivativeStep: analysis.DefaultStep,
		Output:         DefaultOutput,
		LogLevel:       DefaultLogLevel,
	}
}

func Load(path string) (*Config, error) {
	return LoadOver(path, DefaultConfig())
}

// LoadOver reads path on top of a copy of base; keys absent from the file
// keep the base values.
func LoadOver(path string, base *Config) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := base.Clone()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Clone returns an independent copy.
func (c *Config) Clone() *Config {
	cp := *c
	return &cp
}

// EstimatorWindow resolves the named window preset, falling back to the
// explicit transient and averaging counts when no preset is named.
func (c *Config) EstimatorWindow() (analysis.Window, error) {
	if c.Window == "" {
		return analysis.Window{Transient: c.Transient, Averaging: c.Averaging}, nil
	}
	w, ok := WindowPresets[c.Window]
	if !ok {
		return analysis.Window{}, fmt.Errorf("unknown window %q (available: %v): %w", c.Window, ListWindows(), dynamo.ErrInvalidConfig)
	}
	return w, nil
}

// Estimator builds the Lyapunov estimator described by the config.
func (c *Config) Estimator() (*analysis.Estimator, error) {
	w, err := c.EstimatorWindow()
	if err != nil {
		return nil, err
	}
	return analysis.NewEstimator(c.DerivativeStep, w), nil
}

func (c *Config) Validate() error {
	if c.Trials <= 0 {
		return fmt.Errorf("trials must be positive, got %d: %w", c.Trials, dynamo.ErrInvalidConfig)
	}
	if c.Workers < 0 {
		return fmt.Errorf("workers must be non-negative, got %d: %w", c.Workers, dynamo.ErrInvalidConfig)
	}
	for _, r := range []struct {
		name string
		r    Range
	}{{"p1", c.P1}, {"p2", c.P2}, {"p3", c.P3}} {
		if err := r.r.validate(r.name); err != nil {
			return err
		}
	}
	if c.P4 == 0 || math.IsNaN(c.P4) || math.IsInf(c.P4, 0) {
		return fmt.Errorf("p4 must be finite and non-zero, got %g: %w", c.P4, dynamo.ErrInvalidConfig)
	}
	if !(c.X0 >= 0) || math.IsInf(c.X0, 0) {
		return fmt.Errorf("x0 must be finite and non-negative, got %g: %w", c.X0, dynamo.ErrInvalidConfig)
	}
	if !(c.DerivativeStep > 0) || math.IsInf(c.DerivativeStep, 0) {
		return fmt.Errorf("derivative_step must be positive, got %g: %w", c.DerivativeStep, dynamo.ErrInvalidConfig)
	}
	if _, err := maps.Get(c.Map); err != nil {
		return fmt.Errorf("%v: %w", err, dynamo.ErrInvalidConfig)
	}
	w, err := c.EstimatorWindow()
	if err != nil {
		return err
	}
	if err := w.Validate(); err != nil {
		return err
	}
	if c.Output == "" {
		return fmt.Errorf("output path is empty: %w", dynamo.ErrInvalidConfig)
	}
	return nil
}
