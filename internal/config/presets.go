package config

import "sort"

var Presets = map[string]map[string]*Config{
	"exp": {
		"demo": {
			Integrand: "exp", A: 0, B: 1, N: 10_000_000,
			Convergence: ConvergenceConfig{StartN: 4, Levels: 8},
		},
		"quick": {
			Integrand: "exp", A: 0, B: 1, N: 100,
			Convergence: ConvergenceConfig{StartN: 4, Levels: 6},
		},
		"reverse": {
			Integrand: "exp", A: 1, B: 0, N: 100,
			Convergence: ConvergenceConfig{StartN: 4, Levels: 6},
		},
		"degenerate": {
			Integrand: "exp", A: 2, B: 2, N: 5,
			Convergence: ConvergenceConfig{StartN: 1, Levels: 1},
		},
	},
	"sin": {
		"half": {
			Integrand: "sin", A: 0, B: 3.141592653589793, N: 1000,
			Convergence: ConvergenceConfig{StartN: 4, Levels: 8},
		},
	},
	"poly": {
		"cubic": {
			Integrand: "poly", A: -1, B: 1, N: 1,
			Params:      map[string]float64{"c0": 1, "c1": 1, "c2": 1, "c3": 1},
			Convergence: ConvergenceConfig{StartN: 1, Levels: 4},
		},
	},
	"gauss": {
		"bell": {
			Integrand: "gauss", A: -3, B: 3, N: 500,
			Convergence: ConvergenceConfig{StartN: 8, Levels: 8},
		},
	},
}

// GetPreset returns a copy of the named preset, or nil if it does not exist.
func GetPreset(integrand, preset string) *Config {
	byName, ok := Presets[integrand]
	if !ok {
		return nil
	}
	cfg, ok := byName[preset]
	if !ok {
		return nil
	}
	return cfg.Clone()
}

func ListPresets(integrand string) []string {
	byName, ok := Presets[integrand]
	if !ok {
		return nil
	}
	names := make([]string, 0, len(byName))
	for name := range byName {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
