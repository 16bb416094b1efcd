package playback

import (
	"math"
	"time"

	"github.com/shekel18/Sorting-Algorithm-Visualiser/internal/replay"
)

const (
	DefaultMinDelay      = time.Millisecond
	DefaultMaxDelay      = 2000 * time.Millisecond
	DefaultMinSpeed      = 1
	DefaultMaxSpeed      = 200
	DefaultSpeed         = 100
	DefaultTurboInterval = 16 * time.Millisecond
)

type Options struct {
	MinDelay      time.Duration
	MaxDelay      time.Duration
	MinSpeed      int
	MaxSpeed      int
	Speed         int
	TurboInterval time.Duration
	Engine        replay.Config
}

func DefaultOptions() Options {
	return Options{
		MinDelay:      DefaultMinDelay,
		MaxDelay:      DefaultMaxDelay,
		MinSpeed:      DefaultMinSpeed,
		MaxSpeed:      DefaultMaxSpeed,
		Speed:         DefaultSpeed,
		TurboInterval: DefaultTurboInterval,
		Engine:        replay.DefaultConfig(),
	}
}

// normalize fills zero fields with defaults and orders the bounds.
func (o Options) normalize() Options {
	d := DefaultOptions()
	if o.MinDelay <= 0 {
		o.MinDelay = d.MinDelay
	}
	if o.MaxDelay <= 0 {
		o.MaxDelay = d.MaxDelay
	}
	if o.MinDelay > o.MaxDelay {
		o.MinDelay, o.MaxDelay = o.MaxDelay, o.MinDelay
	}
	if o.MinSpeed <= 0 {
		o.MinSpeed = d.MinSpeed
	}
	if o.MaxSpeed <= o.MinSpeed {
		o.MaxSpeed = max(d.MaxSpeed, o.MinSpeed+1)
	}
	if o.Speed == 0 {
		o.Speed = d.Speed
	}
	o.Speed = o.ClampSpeed(o.Speed)
	if o.TurboInterval <= 0 {
		o.TurboInterval = d.TurboInterval
	}
	return o
}

func (o Options) ClampSpeed(speed int) int {
	return min(max(speed, o.MinSpeed), o.MaxSpeed)
}

// Delay maps a speed setting onto the pause between two normal-mode
// steps. The mapping is exponential: MinSpeed yields MaxDelay, MaxSpeed
// yields MinDelay, and each speed increment shortens the delay by the
// same factor.
func (o Options) Delay(speed int) time.Duration {
	speed = o.ClampSpeed(speed)
	lo, hi := float64(o.MinDelay), float64(o.MaxDelay)
	factor := math.Pow(lo/hi, 1/float64(o.MaxSpeed-o.MinSpeed))
	scale := hi / math.Pow(factor, float64(o.MinSpeed))
	return time.Duration(math.Round(scale * math.Pow(factor, float64(speed))))
}
