// Package automation runs campaigns: scripted sequences of sampling runs
// described in a YAML file.
package automation

import (
	"context"
	"fmt"
	"os"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/san-kum/chaosmap/internal/config"
	"github.com/san-kum/chaosmap/internal/sampler"
	"github.com/san-kum/chaosmap/internal/store"
)

// Campaign is a named list of sampling steps.
//
//	name: family-comparison
//	steps:
//	  - name: guillot
//	    preset: reference
//	    config: {trials: 5000, output: guillot.txt}
//	  - name: pierrehumbert
//	    preset: pierrehumbert
type Campaign struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
	Steps       []Step `yaml:"steps"`
}

// Step starts from a preset (the default config when empty) and applies
// the keys given under config on top of it.
type Step struct {
	Name   string    `yaml:"name"`
	Preset string    `yaml:"preset"`
	Config yaml.Node `yaml:"config"`
}

type StepResult struct {
	Name   string
	Config *config.Config
	Stats  sampler.Stats
	Rows   int
}

// LoadCampaign loads a campaign from a YAML file.
func LoadCampaign(path string) (*Campaign, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var c Campaign
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if len(c.Steps) == 0 {
		return nil, fmt.Errorf("campaign %q has no steps", c.Name)
	}
	return &c, nil
}

// Resolve builds and validates the config of a step.
func (s *Step) Resolve() (*config.Config, error) {
	cfg := config.DefaultConfig()
	if s.Preset != "" {
		if cfg = config.GetPreset(s.Preset); cfg == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", s.Preset, config.ListPresets())
		}
	}
	if s.Config.Kind != 0 {
		if err := s.Config.Decode(cfg); err != nil {
			return nil, err
		}
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Resolve validates every step before anything runs.
func (c *Campaign) Resolve() ([]*config.Config, error) {
	cfgs := make([]*config.Config, len(c.Steps))
	for i := range c.Steps {
		cfg, err := c.Steps[i].Resolve()
		if err != nil {
			return nil, fmt.Errorf("step %d (%s): %w", i+1, c.Steps[i].Name, err)
		}
		cfgs[i] = cfg
	}
	return cfgs, nil
}

// RunCampaign executes the steps in order, writing each step's table to its
// configured output. It stops at the first failing step and returns the
// results completed so far.
func RunCampaign(ctx context.Context, c *Campaign, logger *zap.Logger) ([]StepResult, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	cfgs, err := c.Resolve()
	if err != nil {
		return nil, err
	}

	results := make([]StepResult, 0, len(cfgs))
	for i, cfg := range cfgs {
		name := c.Steps[i].Name
		if name == "" {
			name = fmt.Sprintf("step-%d", i+1)
		}
		stepLog := logger.With(zap.String("campaign", c.Name), zap.String("step", name))
		stepLog.Info("step started", zap.Int("index", i+1), zap.Int("of", len(cfgs)))

		s, err := sampler.New(cfg, sampler.WithLogger(stepLog))
		if err != nil {
			return results, fmt.Errorf("step %d (%s): %w", i+1, name, err)
		}
		res, err := s.Run(ctx)
		if err != nil {
			return results, fmt.Errorf("step %d (%s) run: %w", i+1, name, err)
		}
		if err := store.WriteTable(cfg.Output, res.Records); err != nil {
			return results, fmt.Errorf("step %d (%s) write: %w", i+1, name, err)
		}

		results = append(results, StepResult{Name: name, Config: cfg, Stats: res.Stats, Rows: len(res.Records)})
	}
	return results, nil
}
