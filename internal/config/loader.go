package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"
)

const configFileName = "t2048.yaml"

// LoadT2048 loads the 2048 configuration.
// Search order: customPath -> ~/.t2048/configs/t2048.yaml -> ./configs/t2048.yaml -> embedded default.
// Environment variables override file values, and the result is validated.
func LoadT2048(customPath string) (T2048Config, error) {
	cfg, err := readT2048(customPath)
	if err != nil {
		return cfg, err
	}

	if err := env.Parse(&cfg); err != nil {
		return cfg, fmt.Errorf("config: parse env: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func readT2048(customPath string) (T2048Config, error) {
	// Start from defaults so partial files keep sensible values
	cfg := DefaultT2048Config()

	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return cfg, fmt.Errorf("config: failed to read %s: %w", customPath, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("config: failed to parse %s: %w", customPath, err)
		}
		return cfg, nil
	}

	for _, path := range []string{userConfigPath(configFileName), filepath.Join("configs", configFileName)} {
		if path == "" {
			continue
		}
		data, err := os.ReadFile(path)
		if err != nil {
			continue
		}
		fileCfg := cfg
		if err := yaml.Unmarshal(data, &fileCfg); err == nil {
			return fileCfg, nil
		}
	}

	fileCfg := cfg
	if err := yaml.Unmarshal(defaultT2048YAML, &fileCfg); err != nil {
		return cfg, nil // Fallback to hardcoded if embed fails
	}
	return fileCfg, nil
}

// userConfigPath returns the path to a user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".t2048", "configs", filename)
}
