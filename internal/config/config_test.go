package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Algorithm != "merge" {
		t.Errorf("expected algorithm merge, got %s", cfg.Algorithm)
	}
	if cfg.Size != 50 {
		t.Errorf("expected size 50, got %d", cfg.Size)
	}
	if cfg.Speed != 100 {
		t.Errorf("expected speed 100, got %d", cfg.Speed)
	}
	if cfg.Playback.MaxDelay != 2*time.Second {
		t.Errorf("expected max delay 2s, got %s", cfg.Playback.MaxDelay)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should validate: %v", err)
	}
}

func TestSaveLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sortviz.yaml")

	cfg := DefaultConfig()
	cfg.Algorithm = "quick"
	cfg.Contender = "heap"
	cfg.Seed = 42
	cfg.Playback.TurboInterval = 8 * time.Millisecond

	if err := Save(path, cfg); err != nil {
		t.Fatalf("save failed: %v", err)
	}
	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if *loaded != *cfg {
		t.Errorf("round trip mismatch:\n got %+v\nwant %+v", loaded, cfg)
	}
}

func TestLoad_PartialFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "partial.yaml")
	data := "algorithm: radix\nplayback:\n  turbo_interval: 30ms\n"
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if cfg.Algorithm != "radix" {
		t.Errorf("expected radix, got %s", cfg.Algorithm)
	}
	if cfg.Playback.TurboInterval != 30*time.Millisecond {
		t.Errorf("expected 30ms, got %s", cfg.Playback.TurboInterval)
	}
	if cfg.Size != 50 {
		t.Errorf("missing keys should keep defaults, got size %d", cfg.Size)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"algorithm", func(c *Config) { c.Algorithm = "sleep" }},
		{"contender", func(c *Config) { c.Contender = "stooge" }},
		{"direction", func(c *Config) { c.Direction = "sideways" }},
		{"mode", func(c *Config) { c.Mode = "warp" }},
		{"distribution", func(c *Config) { c.Distribution = "gaussian" }},
		{"size", func(c *Config) { c.Size = 0 }},
		{"size below range", func(c *Config) { c.Size = 5 }},
		{"size above range", func(c *Config) { c.Size = 1_000_000 }},
		{"speed bounds", func(c *Config) { c.Playback.MinSpeed, c.Playback.MaxSpeed = 50, 10 }},
		{"delay bounds", func(c *Config) { c.Playback.MinDelay = 5 * time.Second }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			if err := cfg.Validate(); err == nil {
				t.Errorf("expected validation error for %s", tt.name)
			}
		})
	}
}

func TestPlaybackOptions(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Speed = 150
	cfg.Seed = 9

	opts := cfg.PlaybackOptions()
	if opts.Speed != 150 {
		t.Errorf("expected speed 150, got %d", opts.Speed)
	}
	if opts.Engine.Seed != 9 {
		t.Errorf("expected seed 9, got %d", opts.Engine.Seed)
	}
	if opts.Engine.TurboTicks != 80 || opts.Engine.TurboFloor != 10 {
		t.Errorf("unexpected turbo settings %+v", opts.Engine)
	}
}

func TestGetPreset(t *testing.T) {
	cfg := GetPreset("race", "bubble-vs-selection")
	if cfg == nil {
		t.Fatal("expected preset, got nil")
	}
	if cfg.Contender != "selection" {
		t.Errorf("expected contender selection, got %s", cfg.Contender)
	}
	if cfg.Speed != 100 {
		t.Errorf("expected default speed, got %d", cfg.Speed)
	}

	cfg.Algorithm = "bogo"
	if again := GetPreset("race", "bubble-vs-selection"); again.Algorithm != "bubble" {
		t.Error("GetPreset should return a copy")
	}
}

func TestGetPreset_NotFound(t *testing.T) {
	if cfg := GetPreset("race", "nonexistent"); cfg != nil {
		t.Error("expected nil for nonexistent preset")
	}
	if cfg := GetPreset("nonexistent", "bubble"); cfg != nil {
		t.Error("expected nil for nonexistent group")
	}
}

func TestPresetsValidate(t *testing.T) {
	for _, group := range ListGroups() {
		for _, name := range ListPresets(group) {
			if err := GetPreset(group, name).Validate(); err != nil {
				t.Errorf("preset %s/%s: %v", group, name, err)
			}
		}
	}
}

func TestListPresets(t *testing.T) {
	if presets := ListPresets("race"); len(presets) != 4 {
		t.Errorf("expected 4 race presets, got %d", len(presets))
	}
	if presets := ListPresets("nonexistent"); presets != nil {
		t.Error("expected nil for nonexistent group")
	}
}
