package config

import "sort"

// Presets are named variations on DefaultConfig.
var Presets = map[string]func(*Config){
	"default": func(c *Config) {},
	"front": func(c *Config) {
		c.Camera.Position = [3]float64{0, 1, 8}
		c.Camera.Target = [3]float64{0, 1, 0}
	},
	"loose": func(c *Config) {
		c.Limits.Shoulder, c.Limits.Elbow = 150, 120
		c.Smoothing = 0.25
	},
	"stiff": func(c *Config) {
		c.Limits.Shoulder, c.Limits.Elbow = 45, 30
		c.Smoothing = 0.05
	},
	"cone": func(c *Config) {
		c.Constraint = "cone"
	},
	"classic": func(c *Config) {
		c.Rotator = "delta"
		c.Policy = "ignore"
	},
}

func GetPreset(name string) *Config {
	apply, ok := Presets[name]
	if !ok {
		return nil
	}
	cfg := DefaultConfig()
	apply(cfg)
	return cfg
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
