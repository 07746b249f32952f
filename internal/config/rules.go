package config

import (
	"errors"
	"fmt"
	"io"
	"os"

	"docoutline/internal/outline"

	"gopkg.in/yaml.v3"
)

// LoadRules reads classifier rule overrides from a YAML file and layers
// them over the built-in defaults. An empty path means defaults only.
func LoadRules(path string) (outline.Config, error) {
	rules := outline.DefaultConfig()
	if path == "" {
		return rules, nil
	}

	f, err := os.Open(path)
	if err != nil {
		return rules, fmt.Errorf("open rules file: %w", err)
	}
	defer f.Close()

	dec := yaml.NewDecoder(f)
	dec.KnownFields(true) // a typoed rule name should fail, not silently no-op
	if err := dec.Decode(&rules); err != nil {
		if errors.Is(err, io.EOF) {
			return rules, nil // empty file keeps defaults
		}
		return outline.DefaultConfig(), fmt.Errorf("parse rules file %s: %w", path, err)
	}
	return rules, nil
}
