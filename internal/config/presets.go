package config

var Presets = map[string]map[string]*Config{
	"classic": {
		"bubble": {
			Algorithm: "bubble", Direction: "asc", Mode: "normal", Size: 20, Distribution: "random",
		},
		"insertion-nearly-sorted": {
			Algorithm: "insertion", Direction: "asc", Mode: "normal", Size: 40, Distribution: "nearly-sorted",
		},
		"selection-reversed": {
			Algorithm: "selection", Direction: "asc", Mode: "normal", Size: 30, Distribution: "reversed",
		},
	},
	"race": {
		"bubble-vs-selection": {
			Algorithm: "bubble", Contender: "selection", Direction: "asc", Mode: "normal", Size: 10, Distribution: "random",
		},
		"quick-vs-merge": {
			Algorithm: "quick", Contender: "merge", Direction: "asc", Mode: "turbo", Size: 100, Distribution: "random",
		},
		"heap-vs-timsort": {
			Algorithm: "heap", Contender: "timsort", Direction: "desc", Mode: "turbo", Size: 80, Distribution: "random",
		},
		"counting-vs-radix": {
			Algorithm: "counting", Contender: "radix", Direction: "asc", Mode: "turbo", Size: 100, Distribution: "few-unique",
		},
	},
	"stress": {
		"quick-sorted": {
			Algorithm: "quick", Direction: "asc", Mode: "turbo", Size: 100, Distribution: "sorted",
		},
		"bogo": {
			Algorithm: "bogo", Direction: "asc", Mode: "turbo", Size: 10, Distribution: "random",
		},
	},
}

// GetPreset returns a copy of the named preset with unset fields taken
// from DefaultConfig.
func GetPreset(group, preset string) *Config {
	groupPresets, ok := Presets[group]
	if !ok {
		return nil
	}
	p, ok := groupPresets[preset]
	if !ok {
		return nil
	}
	cfg := DefaultConfig()
	cfg.Algorithm = p.Algorithm
	cfg.Contender = p.Contender
	if p.Direction != "" {
		cfg.Direction = p.Direction
	}
	if p.Mode != "" {
		cfg.Mode = p.Mode
	}
	if p.Size > 0 {
		cfg.Size = p.Size
	}
	if p.Distribution != "" {
		cfg.Distribution = p.Distribution
	}
	if p.Speed > 0 {
		cfg.Speed = p.Speed
	}
	return cfg
}

func ListPresets(group string) []string {
	groupPresets, ok := Presets[group]
	if !ok {
		return nil
	}
	names := make([]string, 0, len(groupPresets))
	for name := range groupPresets {
		names = append(names, name)
	}
	return names
}

func ListGroups() []string {
	groups := make([]string, 0, len(Presets))
	for name := range Presets {
		groups = append(groups, name)
	}
	return groups
}
