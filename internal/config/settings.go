package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// SettingsFileName is looked up in the working directory.
const SettingsFileName = "sigil.yaml"

// SettingsEnvVar names a settings file, overriding the working directory lookup.
const SettingsEnvVar = "SIGIL_CONFIG"

// Color modes
const (
	ColorAuto   = "auto"
	ColorAlways = "always"
	ColorNever  = "never"
)

// Settings configures the command line front-end.
type Settings struct {
	// Prompt is shown by the REPL before each input.
	Prompt string `yaml:"prompt,omitempty"`

	// ContinuationPrompt is shown while an unfinished input is continued.
	ContinuationPrompt string `yaml:"continuation_prompt,omitempty"`

	// Color is one of auto, always, never. Auto colors only terminals.
	Color string `yaml:"color,omitempty"`

	// Trace logs function calls, method calls and class definitions.
	Trace bool `yaml:"trace,omitempty"`

	// Preload lists scripts evaluated into the root environment first.
	// Relative paths are resolved against the settings file.
	Preload []string `yaml:"preload,omitempty"`
}

// DefaultSettings is used when no settings file exists.
func DefaultSettings() *Settings {
	s := &Settings{}
	s.setDefaults()
	return s
}

// LoadSettings reads and validates the settings file at path.
func LoadSettings(path string) (*Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading settings %s: %w", path, err)
	}
	s, err := ParseSettings(data, path)
	if err != nil {
		return nil, err
	}
	dir := filepath.Dir(path)
	for i, p := range s.Preload {
		if !filepath.IsAbs(p) {
			s.Preload[i] = filepath.Join(dir, p)
		}
	}
	return s, nil
}

// ParseSettings parses settings from bytes.
// The path argument is used only for error messages.
func ParseSettings(data []byte, path string) (*Settings, error) {
	var s Settings
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	s.setDefaults()
	if err := s.validate(path); err != nil {
		return nil, err
	}
	return &s, nil
}

// FindSettings returns the settings file to use: explicit if set, else
// $SIGIL_CONFIG, else sigil.yaml in dir. An empty path means none was found.
func FindSettings(explicit, dir string) (string, error) {
	if explicit != "" {
		return explicit, nil
	}
	if env := os.Getenv(SettingsEnvVar); env != "" {
		return env, nil
	}
	candidate := filepath.Join(dir, SettingsFileName)
	if _, err := os.Stat(candidate); err == nil {
		return candidate, nil
	} else if !os.IsNotExist(err) {
		return "", fmt.Errorf("checking %s: %w", candidate, err)
	}
	return "", nil
}

// ResolveSettings finds and loads the settings, falling back to defaults.
func ResolveSettings(explicit, dir string) (*Settings, error) {
	path, err := FindSettings(explicit, dir)
	if err != nil {
		return nil, err
	}
	if path == "" {
		return DefaultSettings(), nil
	}
	return LoadSettings(path)
}

func (s *Settings) validate(path string) error {
	switch s.Color {
	case ColorAuto, ColorAlways, ColorNever:
	default:
		return fmt.Errorf("%s: invalid color %q (want %s, %s or %s)", path, s.Color, ColorAuto, ColorAlways, ColorNever)
	}
	return nil
}

func (s *Settings) setDefaults() {
	if s.Prompt == "" {
		s.Prompt = "sigil> "
	}
	if s.ContinuationPrompt == "" {
		s.ContinuationPrompt = "   ... "
	}
	if s.Color == "" {
		s.Color = ColorAuto
	}
}
