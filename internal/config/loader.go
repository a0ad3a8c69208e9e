package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// LoadSand loads the sandbox configuration.
// Search order: customPath -> ~/.sandfall/configs/sand.yaml -> ./configs/sand.yaml -> embedded default
func LoadSand(customPath string) (SandConfig, error) {
	// Fields missing from a file keep their default values
	cfg := DefaultSandConfig()

	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return cfg, fmt.Errorf("config: failed to read %s: %w", customPath, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("config: failed to parse %s: %w", customPath, err)
		}
		return cfg, cfg.Validate()
	}

	// Try user config directory
	if userCfgPath := userConfigPath("sand.yaml"); userCfgPath != "" {
		if c, ok := tryLoad(userCfgPath); ok {
			return c, nil
		}
	}

	// Try local configs directory
	if c, ok := tryLoad(filepath.Join("configs", "sand.yaml")); ok {
		return c, nil
	}

	// Use embedded default YAML
	if err := yaml.Unmarshal(defaultSandYAML, &cfg); err != nil {
		return DefaultSandConfig(), nil // Fallback to hardcoded if embed fails
	}
	return cfg, nil
}

// tryLoad reads an optional config file. Unreadable or invalid files are
// skipped so the next location in the search order is used.
func tryLoad(path string) (SandConfig, bool) {
	data, err := os.ReadFile(path)
	if err != nil {
		return SandConfig{}, false
	}
	cfg := DefaultSandConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return SandConfig{}, false
	}
	if cfg.Validate() != nil {
		return SandConfig{}, false
	}
	return cfg, true
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".sandfall", "configs", filename)
}
