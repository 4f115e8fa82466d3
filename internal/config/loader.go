package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// For mocking in tests
var osUserHomeDir = os.UserHomeDir
var osGetwd = os.Getwd

const (
	userConfigDir    = ".config/pravdactl"
	projectConfigDir = ".pravdactl"
	configFileName   = "config.yaml"
)

// LoadConfig loads the pravdactl configuration by layering default, user,
// and project settings. Both config files are optional.
func LoadConfig() (Config, error) {
	config := GetDefaultConfig()

	userConfigPath, err := getUserConfigPath()
	if err != nil {
		// User config is optional, keep going with defaults.
		fmt.Fprintf(os.Stderr, "Warning: Could not determine user config path: %v\n", err)
	} else {
		if _, err := os.Stat(userConfigPath); !os.IsNotExist(err) {
			userConfig, err := loadConfigFromFile(userConfigPath)
			if err != nil {
				return Config{}, fmt.Errorf("error loading user config from %s: %w", userConfigPath, err)
			}
			config = mergeConfigs(config, userConfig)
		}
	}

	projectConfigPath, err := getProjectConfigPath()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: Could not determine project config path: %v\n", err)
	} else {
		if _, err := os.Stat(projectConfigPath); !os.IsNotExist(err) {
			projectConfig, err := loadConfigFromFile(projectConfigPath)
			if err != nil {
				return Config{}, fmt.Errorf("error loading project config from %s: %w", projectConfigPath, err)
			}
			config = mergeConfigs(config, projectConfig)
		}
	}

	return config, nil
}

var getUserConfigPath = func() (string, error) {
	homeDir, err := osUserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(homeDir, userConfigDir, configFileName), nil
}

var getProjectConfigPath = func() (string, error) {
	wd, err := osGetwd()
	if err != nil {
		return "", err
	}
	return filepath.Join(wd, projectConfigDir, configFileName), nil
}

// loadConfigFromFile loads a Config from a YAML file.
func loadConfigFromFile(filePath string) (Config, error) {
	var config Config
	data, err := os.ReadFile(filePath)
	if err != nil {
		return Config{}, err
	}
	err = yaml.Unmarshal(data, &config)
	if err != nil {
		return Config{}, err
	}
	return config, nil
}

// mergeConfigs merges 'overlay' config into 'base' config. Scalar fields of
// the overlay win when set; tunnels are merged by name, overlay replacing
// base entries with the same name.
func mergeConfigs(base, overlay Config) Config {
	merged := base

	if overlay.Cluster.KubeContext != "" {
		merged.Cluster.KubeContext = overlay.Cluster.KubeContext
	}
	if overlay.Cluster.Namespace != "" {
		merged.Cluster.Namespace = overlay.Cluster.Namespace
	}
	if overlay.Cluster.ManifestDir != "" {
		merged.Cluster.ManifestDir = overlay.Cluster.ManifestDir
	}
	if overlay.Cluster.ReadinessTimeout != 0 {
		merged.Cluster.ReadinessTimeout = overlay.Cluster.ReadinessTimeout
	}

	if len(overlay.Tunnels) > 0 {
		byName := make(map[string]int, len(merged.Tunnels))
		for i, t := range merged.Tunnels {
			byName[t.Name] = i
		}
		for _, t := range overlay.Tunnels {
			if i, ok := byName[t.Name]; ok {
				merged.Tunnels[i] = t
			} else {
				merged.Tunnels = append(merged.Tunnels, t)
			}
		}
	}

	if overlay.Validation.APITunnel != "" {
		merged.Validation.APITunnel = overlay.Validation.APITunnel
	}
	if overlay.Validation.FrontendTunnel != "" {
		merged.Validation.FrontendTunnel = overlay.Validation.FrontendTunnel
	}
	if overlay.Validation.NewsLimit != 0 {
		merged.Validation.NewsLimit = overlay.Validation.NewsLimit
	}
	if overlay.Validation.NewsCategory != "" {
		merged.Validation.NewsCategory = overlay.Validation.NewsCategory
	}
	if overlay.Validation.TransformStyle != "" {
		merged.Validation.TransformStyle = overlay.Validation.TransformStyle
	}
	if overlay.Validation.MinContentLength != 0 {
		merged.Validation.MinContentLength = overlay.Validation.MinContentLength
	}
	if overlay.Validation.RequestTimeout != 0 {
		merged.Validation.RequestTimeout = overlay.Validation.RequestTimeout
	}

	return merged
}
