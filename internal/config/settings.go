package config

import (
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/tomz197/balloons/internal/game"
)

// LoadSettings reads game settings from a YAML file. Keys missing from the
// file keep their default values. An empty path returns the defaults.
func LoadSettings(path string) (game.Settings, error) {
	if path == "" {
		return game.DefaultSettings(), nil
	}
	f, err := os.Open(path)
	if err != nil {
		return game.Settings{}, fmt.Errorf("open settings: %w", err)
	}
	defer f.Close()

	settings, err := DecodeSettings(f)
	if err != nil {
		return game.Settings{}, fmt.Errorf("settings %s: %w", path, err)
	}
	return settings, nil
}

// DecodeSettings decodes YAML settings over game.DefaultSettings and
// validates the result. Unknown keys are rejected.
func DecodeSettings(r io.Reader) (game.Settings, error) {
	settings := game.DefaultSettings()
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&settings); err != nil && !errors.Is(err, io.EOF) {
		return game.Settings{}, fmt.Errorf("decode: %w", err)
	}
	if err := settings.Validate(); err != nil {
		return game.Settings{}, fmt.Errorf("invalid: %w", err)
	}
	return settings, nil
}
