package game

import (
	"errors"
	"fmt"
	"time"

	"github.com/tomz197/balloons/internal/simulator"
)

// ScoringPolicy sets the points for each outcome. Scores are not clamped
// and may go negative.
type ScoringPolicy struct {
	CorrectValue     int  `yaml:"correct"`            // Added for popping the answer
	IncorrectValue   int  `yaml:"incorrect"`          // Added for popping a distractor
	MissValue        int  `yaml:"miss"`               // Added once per round when a balloon escapes
	FirstAttemptOnly bool `yaml:"first_attempt_only"` // Correct pops after a wrong one score nothing
}

// TimerPolicy configures the optional countdown.
type TimerPolicy struct {
	Enabled        bool `yaml:"enabled"`
	StartSeconds   int  `yaml:"start_seconds"`
	TimeBonusOnEnd bool `yaml:"time_bonus_on_end"` // Adds one point per second played at game over
}

// Delays holds the one-shot transition delays.
type Delays struct {
	Round        time.Duration `yaml:"round"`         // Correct pop to next round
	Miss         time.Duration `yaml:"miss"`          // Miss to next round
	MessageClear time.Duration `yaml:"message_clear"` // Incorrect notice lifetime
}

// Settings bundles everything an Engine needs besides the catalog.
type Settings struct {
	Category    string           `yaml:"category"`
	OptionCount int              `yaml:"option_count"`
	Scoring     ScoringPolicy    `yaml:"scoring"`
	Timer       TimerPolicy      `yaml:"timer"`
	Delays      Delays           `yaml:"delays"`
	Motion      simulator.Motion `yaml:"motion"`
}

// DefaultSettings returns the standard game: five options from the ritual
// vocabulary, a point per first-try answer, a point off per miss and a
// sixty second clock.
func DefaultSettings() Settings {
	return Settings{
		Category:    "Ritual and Religion",
		OptionCount: 5,
		Scoring: ScoringPolicy{
			CorrectValue:     1,
			IncorrectValue:   0,
			MissValue:        -1,
			FirstAttemptOnly: true,
		},
		Timer: TimerPolicy{
			Enabled:      true,
			StartSeconds: 60,
		},
		Delays: Delays{
			Round:        2 * time.Second,
			Miss:         2 * time.Second,
			MessageClear: 1500 * time.Millisecond,
		},
		Motion: simulator.DefaultMotion(),
	}
}

// Validate checks the settings for values the engine cannot run with.
func (s Settings) Validate() error {
	if s.Category == "" {
		return errors.New("category must not be empty")
	}
	if s.OptionCount < 1 {
		return fmt.Errorf("option_count must be at least 1, got %d", s.OptionCount)
	}
	if s.Timer.Enabled && s.Timer.StartSeconds <= 0 {
		return fmt.Errorf("timer.start_seconds must be positive, got %d", s.Timer.StartSeconds)
	}
	if s.Delays.Round < 0 || s.Delays.Miss < 0 || s.Delays.MessageClear < 0 {
		return errors.New("delays must not be negative")
	}
	return s.Motion.Validate()
}
