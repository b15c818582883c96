package config

import (
	"sort"

	"github.com/san-kum/chaosmap/internal/analysis"
)

// WindowPresets are the estimation windows used by the sampling driver
// (short) and by the single-orbit diagnostics (long).
var WindowPresets = map[string]analysis.Window{
	"short": analysis.ShortWindow,
	"long":  analysis.LongWindow,
}

// Presets are complete run configurations.
var Presets = map[string]*Config{
	"reference": DefaultConfig(),
	"slice": {
		Map: DefaultMap, Trials: 1000,
		P1: Range{0, 0.4}, P2: Range{38, 38}, P3: Range{0.6, 0.6}, P4: DefaultP4,
		Transient: DefaultTransient, Averaging: DefaultAveraging,
		DerivativeStep: analysis.DefaultStep, Output: "slicePoints.txt", LogLevel: DefaultLogLevel,
	},
	"pierrehumbert": {
		Map: "pierrehumbert", Trials: DefaultTrials,
		P1: Range{0, 0.4}, P2: Range{20, 40}, P3: Range{0, 2}, P4: DefaultP4,
		Transient: DefaultTransient, Averaging: DefaultAveraging,
		DerivativeStep: analysis.DefaultStep, Output: "pierrehumbertPoints.txt", LogLevel: DefaultLogLevel,
	},
	"long": {
		Map: DefaultMap, Trials: 5000,
		P1: Range{0, 0.4}, P2: Range{20, 40}, P3: Range{0, 2}, P4: DefaultP4,
		Window:         "long",
		DerivativeStep: analysis.DefaultStep, Output: "chaoticPointsLong.txt", LogLevel: DefaultLogLevel,
	},
}

// GetPreset returns a copy of the named preset, or nil.
func GetPreset(name string) *Config {
	cfg, ok := Presets[name]
	if !ok {
		return nil
	}
	return cfg.Clone()
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func ListWindows() []string {
	names := make([]string, 0, len(WindowPresets))
	for name := range WindowPresets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
