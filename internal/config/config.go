package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/shekel18/Sorting-Algorithm-Visualiser/internal/algorithms"
	"github.com/shekel18/Sorting-Algorithm-Visualiser/internal/dataset"
	"github.com/shekel18/Sorting-Algorithm-Visualiser/internal/playback"
	"github.com/shekel18/Sorting-Algorithm-Visualiser/internal/replay"
	"github.com/shekel18/Sorting-Algorithm-Visualiser/internal/sorting"
)

const (
	DefaultAlgorithm    = "merge"
	DefaultDirection    = "asc"
	DefaultMode         = "normal"
	DefaultDistribution = "random"
)

type Config struct {
	Algorithm    string         `yaml:"algorithm"`
	Contender    string         `yaml:"contender,omitempty"`
	Direction    string         `yaml:"direction"`
	Mode         string         `yaml:"mode"`
	Size         int            `yaml:"size"`
	Distribution string         `yaml:"distribution"`
	Speed        int            `yaml:"speed"`
	Seed         int64          `yaml:"seed"`
	Playback     PlaybackConfig `yaml:"playback"`
}

type PlaybackConfig struct {
	MinDelay      time.Duration `yaml:"min_delay"`
	MaxDelay      time.Duration `yaml:"max_delay"`
	MinSpeed      int           `yaml:"min_speed"`
	MaxSpeed      int           `yaml:"max_speed"`
	TurboTicks    int           `yaml:"turbo_ticks"`
	TurboFloor    int           `yaml:"turbo_floor"`
	TurboInterval time.Duration `yaml:"turbo_interval"`
}

func DefaultConfig() *Config {
	return &Config{
		Algorithm:    DefaultAlgorithm,
		Direction:    DefaultDirection,
		Mode:         DefaultMode,
		Size:         dataset.DefaultSize,
		Distribution: DefaultDistribution,
		Speed:        playback.DefaultSpeed,
		Playback: PlaybackConfig{
			MinDelay:      playback.DefaultMinDelay,
			MaxDelay:      playback.DefaultMaxDelay,
			MinSpeed:      playback.DefaultMinSpeed,
			MaxSpeed:      playback.DefaultMaxSpeed,
			TurboTicks:    replay.DefaultTurboTicks,
			TurboFloor:    replay.DefaultTurboFloor,
			TurboInterval: playback.DefaultTurboInterval,
		},
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
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

// Validate checks every field that names something or bounds something.
func (c *Config) Validate() error {
	if _, err := algorithms.Parse(c.Algorithm); err != nil {
		return fmt.Errorf("algorithm: %w", err)
	}
	if c.Contender != "" {
		if _, err := algorithms.Parse(c.Contender); err != nil {
			return fmt.Errorf("contender: %w", err)
		}
	}
	if _, err := sorting.ParseDirection(c.Direction); err != nil {
		return fmt.Errorf("direction: %w", err)
	}
	if _, err := replay.ParseMode(c.Mode); err != nil {
		return fmt.Errorf("mode: %w", err)
	}
	if _, err := dataset.ParseDistribution(c.Distribution); err != nil {
		return fmt.Errorf("distribution: %w", err)
	}
	if c.Size < dataset.MinSize || c.Size > dataset.MaxSize {
		return fmt.Errorf("size: %w: %d outside %d..%d", sorting.ErrInvalidValue, c.Size, dataset.MinSize, dataset.MaxSize)
	}
	p := c.Playback
	if p.MinSpeed > 0 && p.MaxSpeed > 0 && p.MinSpeed >= p.MaxSpeed {
		return fmt.Errorf("playback: min_speed %d must be below max_speed %d", p.MinSpeed, p.MaxSpeed)
	}
	if p.MinDelay > 0 && p.MaxDelay > 0 && p.MinDelay > p.MaxDelay {
		return fmt.Errorf("playback: min_delay %s exceeds max_delay %s", p.MinDelay, p.MaxDelay)
	}
	return nil
}

// PlaybackOptions converts the playback section into controller options.
func (c *Config) PlaybackOptions() playback.Options {
	return playback.Options{
		MinDelay:      c.Playback.MinDelay,
		MaxDelay:      c.Playback.MaxDelay,
		MinSpeed:      c.Playback.MinSpeed,
		MaxSpeed:      c.Playback.MaxSpeed,
		Speed:         c.Speed,
		TurboInterval: c.Playback.TurboInterval,
		Engine: replay.Config{
			TurboTicks: c.Playback.TurboTicks,
			TurboFloor: c.Playback.TurboFloor,
			Seed:       c.Seed,
		},
	}
}
