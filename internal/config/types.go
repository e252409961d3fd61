package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
)

// Default config values.
const (
	DefaultLoggerLevel               = LogLevelInfo
	DefaultLoggerFormat              = LogFormatText
	DefaultEthNodeURL                = "http://localhost:8545"
	DefaultEthClientTimeoutSeconds   = 20
	DefaultConfigFilePath            = "config.yml"
	DefaultReceiptPollIntervalMillis = 1000
	DefaultWaitTimeoutSeconds        = 0 // 0 waits until the context is cancelled
	DefaultEventDecoding             = EventDecodingRawLog
	DefaultOutputDir                 = "output"
	DefaultBatchFileName             = "presigned_txs.txt"

	defaultConfigKeyPrefixLifecycle = "lifecycle"
	defaultConfigKeyPrefixEthClient = "eth_client"
)

// LogLevel defines the type for logger levels.
type LogLevel string

// LogFormat defines the type for logger output formats.
type LogFormat string

// EventDecoding selects how receipt events are located.
type EventDecoding string

// Defines the supported logger levels.
const (
	LogLevelDebug LogLevel = "debug"
	LogLevelInfo  LogLevel = "info"
	LogLevelWarn  LogLevel = "warn"
	LogLevelError LogLevel = "error"
)

// Defines the supported logger output formats.
const (
	LogFormatJSON LogFormat = "json"
	LogFormatText LogFormat = "text"
)

// Defines the supported event decoding modes.
const (
	// EventDecodingRawLog decodes raw receipt logs with a contract ABI.
	EventDecodingRawLog EventDecoding = "raw_log"
	// EventDecodingPreDecoded scans an event list that was classified upstream.
	EventDecodingPreDecoded EventDecoding = "pre_decoded"
)

// Config holds all configuration for the application.
type Config struct {
	Logger    LoggerConfig    `yaml:"logger"`
	ETHClient ETHClientConfig `yaml:"eth_client"`
	Lifecycle LifecycleConfig `yaml:"lifecycle"`
	Files     FilesConfig     `yaml:"files"`
}

// LoggerConfig holds all configuration related to logging.
type LoggerConfig struct {
	Level  LogLevel  `yaml:"level"`
	Format LogFormat `yaml:"format"`
}

// ETHClientConfig holds all configuration related to the Ethereum client.
type ETHClientConfig struct {
	NodeURL              string `yaml:"node_url"`
	ClientTimeoutSeconds int    `yaml:"client_timeout_seconds"`
}

// LifecycleConfig holds configuration for submitting and awaiting transactions.
type LifecycleConfig struct {
	ReceiptPollIntervalMillis int           `yaml:"receipt_poll_interval_ms"`
	WaitTimeoutSeconds        int           `yaml:"wait_timeout_seconds"`
	EventDecoding             EventDecoding `yaml:"event_decoding"`
	ABIPath                   string        `yaml:"abi_path"`
}

// FilesConfig holds locations used by the file helpers.
type FilesConfig struct {
	OutputDir string `yaml:"output_dir"`
	BatchFile string `yaml:"batch_file"`
}

// Defaults returns a Config populated with default values.
func Defaults() *Config {
	return &Config{
		Logger: LoggerConfig{
			Level:  DefaultLoggerLevel,
			Format: DefaultLoggerFormat,
		},
		ETHClient: ETHClientConfig{
			NodeURL:              DefaultEthNodeURL,
			ClientTimeoutSeconds: DefaultEthClientTimeoutSeconds,
		},
		Lifecycle: LifecycleConfig{
			ReceiptPollIntervalMillis: DefaultReceiptPollIntervalMillis,
			WaitTimeoutSeconds:        DefaultWaitTimeoutSeconds,
			EventDecoding:             DefaultEventDecoding,
		},
		Files: FilesConfig{
			OutputDir: DefaultOutputDir,
			BatchFile: DefaultBatchFileName,
		},
	}
}

// Validate checks if the configuration values are valid.
func (c *Config) Validate() error {
	validLogLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLogLevels[strings.ToLower(string(c.Logger.Level))] {
		return fmt.Errorf(
			"invalid logger level (config key: logger.level): '%s', must be one of: debug, info, warn, error",
			c.Logger.Level,
		)
	}
	validFormats := map[string]bool{"json": true, "text": true}
	if !validFormats[strings.ToLower(string(c.Logger.Format))] {
		return fmt.Errorf(
			"invalid logger format (config key: logger.format): '%s', must be one of: json, text",
			c.Logger.Format,
		)
	}

	if c.ETHClient.NodeURL == "" {
		return fmt.Errorf("ethereum node URL (config key: %s.node_url) cannot be empty", defaultConfigKeyPrefixEthClient)
	}
	if strings.HasPrefix(c.ETHClient.NodeURL, "/") || strings.HasPrefix(c.ETHClient.NodeURL, "\\\\.\\pipe\\") {
		if _, err := os.Stat(c.ETHClient.NodeURL); os.IsNotExist(err) {
			fmt.Fprintf(os.Stderr, "Warning: eth_client.node_url ('%s') appears to be a local path but was not found.\n", c.ETHClient.NodeURL)
		}
	}
	if c.ETHClient.ClientTimeoutSeconds <= 0 {
		return fmt.Errorf(
			"ethereum client timeout seconds (config key: %s.client_timeout_seconds) must be greater than 0",
			defaultConfigKeyPrefixEthClient,
		)
	}

	if c.Lifecycle.ReceiptPollIntervalMillis <= 0 {
		return fmt.Errorf(
			"receipt poll interval (config key: %s.receipt_poll_interval_ms) must be greater than 0",
			defaultConfigKeyPrefixLifecycle,
		)
	}
	if c.Lifecycle.WaitTimeoutSeconds < 0 {
		return fmt.Errorf(
			"wait timeout seconds (config key: %s.wait_timeout_seconds) cannot be negative",
			defaultConfigKeyPrefixLifecycle,
		)
	}
	switch c.Lifecycle.EventDecoding {
	case EventDecodingRawLog, EventDecodingPreDecoded:
	default:
		return fmt.Errorf(
			"invalid event decoding (config key: %s.event_decoding): '%s', must be one of: raw_log, pre_decoded",
			defaultConfigKeyPrefixLifecycle,
			c.Lifecycle.EventDecoding,
		)
	}

	if c.Files.BatchFile == "" {
		return errors.New("batch file name (config key: files.batch_file) cannot be empty")
	}

	return nil
}
