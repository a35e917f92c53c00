package config

import (
	"fmt"

	"gopkg.in/ini.v1"
)

// LoadOverrides applies an ini file on top of the defaults. Keys use
// snake_case field names grouped by section, e.g.
//
//	[locomotion]
//	max_walk_speed = 2.4
//	arms_free = true
//
// Sections and keys that are absent leave the current values untouched.
func LoadOverrides(source interface{}) error {
	f, err := ini.LoadSources(ini.LoadOptions{
		SkipUnrecognizableLines: true,
	}, source)
	if err != nil {
		return fmt.Errorf("config: load overrides: %w", err)
	}
	f.NameMapper = ini.TitleUnderscore

	sections := []struct {
		name   string
		target interface{}
	}{
		{"locomotion", &Locomotion},
		{"motor", &Motor},
		{"lean", &Lean},
		{"fly", &Fly},
		{"awareness", &Awareness},
		{"actions", &Actions},
		{"footsteps", &Footsteps},
		{"terrain", &Terrain},
		{"storage", &Storage},
	}
	for _, s := range sections {
		if !f.HasSection(s.name) {
			continue
		}
		if err := f.Section(s.name).MapTo(s.target); err != nil {
			return fmt.Errorf("config: section %s: %w", s.name, err)
		}
	}
	return nil
}
