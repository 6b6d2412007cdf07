// Package config loads service settings from the environment and optional
// persona overrides from YAML. The simulator ships with built-in persona
// presets; a config file only needs the fields it wants to change.
package config

import (
	"fmt"
	"os"

	yaml "gopkg.in/yaml.v2"

	"github.com/wealthsim/persona-finance/internal/simulate"
)

// Service holds the runtime settings for the API server.
type Service struct {
	Port              string
	GeminiAPIKey      string
	PersonaConfigPath string
}

// FromEnv reads service settings from the environment. Missing values get
// defaults; an absent API key only disables the oracle, it is not an error.
func FromEnv() Service {
	svc := Service{
		Port:              os.Getenv("PORT"),
		GeminiAPIKey:      os.Getenv("GEMINI_API_KEY"),
		PersonaConfigPath: os.Getenv("PERSONA_CONFIG"),
	}
	if svc.Port == "" {
		svc.Port = "8080"
	}
	return svc
}

// OracleEnabled reports whether an oracle API key is configured.
func (s Service) OracleEnabled() bool {
	return s.GeminiAPIKey != ""
}

// LoadPersonas returns the built-in persona presets, overlaid with any
// overrides from the YAML file at path. An empty path returns the presets
// unchanged. Override entries replace the whole preset for that persona id;
// new ids add personas.
func LoadPersonas(path string) (map[string]simulate.PersonaConfig, error) {
	personas := simulate.Presets()
	if path == "" {
		return personas, nil
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("LoadPersonas: read %s: %w", path, err)
	}

	var overrides map[string]simulate.PersonaConfig
	if err := yaml.Unmarshal(raw, &overrides); err != nil {
		return nil, fmt.Errorf("LoadPersonas: parse %s: %w", path, err)
	}

	for id, cfg := range overrides {
		personas[id] = cfg
	}
	return personas, nil
}
