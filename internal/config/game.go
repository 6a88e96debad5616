package config

import (
	"io"

	"github.com/charmbracelet/log"

	"github.com/tomz197/balloons/internal/game"
	"github.com/tomz197/balloons/internal/quiz"
	"github.com/tomz197/balloons/internal/vocab"
)

// Environment variables read by every entry point.
const (
	EnvVocab        = "BALLOONS_VOCAB"         // CSV path, built-in list if empty
	EnvScriptColumn = "BALLOONS_SCRIPT_COLUMN" // CSV column holding the prompt script
	EnvSettings     = "BALLOONS_SETTINGS"      // YAML settings path, defaults if empty
	EnvLogLevel     = "BALLOONS_LOG_LEVEL"     // debug, info, warn, error
)

// Game is what a server needs before it can host games.
type Game struct {
	Catalog  *vocab.Catalog
	Settings game.Settings
}

// LoadGame loads the vocabulary and settings named by the environment.
func LoadGame() (Game, error) {
	settings, err := LoadSettings(GetEnv(EnvSettings, ""))
	if err != nil {
		return Game{}, err
	}
	catalog, err := vocab.Load(GetEnv(EnvVocab, ""), GetEnv(EnvScriptColumn, vocab.DefaultScriptColumn))
	if err != nil {
		return Game{}, err
	}
	if len(catalog.InCategory(settings.Category)) == 0 {
		return Game{}, &quiz.EmptyCatalogError{Category: settings.Category}
	}
	return Game{Catalog: catalog, Settings: settings}, nil
}

// NewLogger creates a logger writing to w at the level named by
// BALLOONS_LOG_LEVEL, or fallback when unset or invalid.
func NewLogger(w io.Writer, fallback log.Level) *log.Logger {
	logger := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Level:           fallback,
	})
	if name := GetEnv(EnvLogLevel, ""); name != "" {
		level, err := log.ParseLevel(name)
		if err != nil {
			logger.Warn("invalid log level, keeping default", "value", name, "default", fallback)
		} else {
			logger.SetLevel(level)
		}
	}
	return logger
}
