// Package simulator moves the balloons of a round and reports boundary
// crossings. It knows nothing about scoring.
package simulator

import (
	"errors"
	"time"
)

// Motion tunes balloon flight. Heights are in play-area units (for the
// terminal client, logical sub-pixels); speeds are percent per TickInterval.
type Motion struct {
	TickInterval   time.Duration `yaml:"tick_interval"`    // Cadence Speed is expressed against
	SpeedMin       float64       `yaml:"speed_min"`        // Lower bound of the per-balloon speed band
	SpeedMax       float64       `yaml:"speed_max"`        // Upper bound of the per-balloon speed band
	Amplitude      float64       `yaml:"amplitude"`        // Lateral wiggle, percent of width
	Period         time.Duration `yaml:"period"`           // Wiggle period constant
	BalloonHeight  float64       `yaml:"balloon_height"`   // Balloon body height
	PlayAreaHeight float64       `yaml:"play_area_height"` // Play area height in the same unit
	RemoveAt       float64       `yaml:"remove_at"`        // Crossed balloons are dropped at this height
	Grace          time.Duration `yaml:"grace"`            // Popped balloons linger this long
}

// DefaultMotion matches the classic pace: about 0.4% every 50ms.
func DefaultMotion() Motion {
	return Motion{
		TickInterval:   50 * time.Millisecond,
		SpeedMin:       0.35,
		SpeedMax:       0.45,
		Amplitude:      2,
		Period:         time.Second,
		BalloonHeight:  10,
		PlayAreaHeight: 80,
		RemoveAt:       110,
		Grace:          300 * time.Millisecond,
	}
}

// Validate reports settings that would stall or break the flight model.
func (m Motion) Validate() error {
	switch {
	case m.TickInterval <= 0:
		return errors.New("motion: tick_interval must be positive")
	case m.SpeedMin <= 0 || m.SpeedMax < m.SpeedMin:
		return errors.New("motion: speed band must be positive and speed_min <= speed_max")
	case m.PlayAreaHeight <= 0:
		return errors.New("motion: play_area_height must be positive")
	case m.BalloonHeight < 0:
		return errors.New("motion: balloon_height must not be negative")
	case m.RemoveAt < 100:
		return errors.New("motion: remove_at must be at least 100")
	case m.Grace < 0:
		return errors.New("motion: grace must not be negative")
	}
	return nil
}

// margin converts the balloon height into percent of the play area.
func (m Motion) margin() float64 {
	if m.PlayAreaHeight <= 0 {
		return 0
	}
	return m.BalloonHeight / m.PlayAreaHeight * 100
}
