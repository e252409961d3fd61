// Package config implements application configuration loading and management.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// LoadConfig loads the configuration from a YAML file and validates it.
// A missing default config file is not an error: defaults are used instead.
func LoadConfig(filePath string) (*Config, error) {
	cfg := Defaults()

	loadPath := filePath
	if loadPath == "" {
		loadPath = DefaultConfigFilePath
	}

	fileBytes, err := os.ReadFile(loadPath)
	if err != nil {
		if os.IsNotExist(err) && (filePath == "" || filePath == DefaultConfigFilePath) {
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config file '%s': %w", loadPath, err)
	}

	if err := applyYAML(cfg, fileBytes); err != nil {
		return nil, fmt.Errorf("failed to parse config file '%s': %w", loadPath, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config file '%s': %w", loadPath, err)
	}

	return cfg, nil
}

// applyYAML overlays the sections present in data onto cfg.
func applyYAML(cfg *Config, data []byte) error {
	type partialConfig struct {
		Logger    *LoggerConfig    `yaml:"logger"`
		ETHClient *ETHClientConfig `yaml:"eth_client"`
		Lifecycle *LifecycleConfig `yaml:"lifecycle"`
		Files     *FilesConfig     `yaml:"files"`
	}
	var pCfg partialConfig

	if err := yaml.Unmarshal(data, &pCfg); err != nil {
		return err
	}

	if pCfg.Logger != nil {
		if pCfg.Logger.Level != "" {
			cfg.Logger.Level = pCfg.Logger.Level
		}
		if pCfg.Logger.Format != "" {
			cfg.Logger.Format = pCfg.Logger.Format
		}
	}
	if pCfg.ETHClient != nil {
		if pCfg.ETHClient.NodeURL != "" {
			cfg.ETHClient.NodeURL = pCfg.ETHClient.NodeURL
		}
		if pCfg.ETHClient.ClientTimeoutSeconds > 0 {
			cfg.ETHClient.ClientTimeoutSeconds = pCfg.ETHClient.ClientTimeoutSeconds
		}
	}
	if pCfg.Lifecycle != nil {
		if pCfg.Lifecycle.ReceiptPollIntervalMillis > 0 {
			cfg.Lifecycle.ReceiptPollIntervalMillis = pCfg.Lifecycle.ReceiptPollIntervalMillis
		}
		cfg.Lifecycle.WaitTimeoutSeconds = pCfg.Lifecycle.WaitTimeoutSeconds
		if pCfg.Lifecycle.EventDecoding != "" {
			cfg.Lifecycle.EventDecoding = pCfg.Lifecycle.EventDecoding
		}
		cfg.Lifecycle.ABIPath = pCfg.Lifecycle.ABIPath
	}
	if pCfg.Files != nil {
		if pCfg.Files.OutputDir != "" {
			cfg.Files.OutputDir = pCfg.Files.OutputDir
		}
		if pCfg.Files.BatchFile != "" {
			cfg.Files.BatchFile = pCfg.Files.BatchFile
		}
	}

	return nil
}
