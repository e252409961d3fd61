package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"evm_tx_toolkit/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadConfig_Overlay(t *testing.T) {
	path := writeConfig(t, `
logger:
  level: debug
eth_client:
  node_url: http://node:8545
lifecycle:
  wait_timeout_seconds: 30
  event_decoding: pre_decoded
  abi_path: ./erc20.json
files:
  batch_file: batch.txt
`)

	cfg, err := config.LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, config.LogLevelDebug, cfg.Logger.Level)
	assert.Equal(t, config.DefaultLoggerFormat, cfg.Logger.Format)
	assert.Equal(t, "http://node:8545", cfg.ETHClient.NodeURL)
	assert.Equal(t, config.DefaultEthClientTimeoutSeconds, cfg.ETHClient.ClientTimeoutSeconds)
	assert.Equal(t, 30, cfg.Lifecycle.WaitTimeoutSeconds)
	assert.Equal(t, config.DefaultReceiptPollIntervalMillis, cfg.Lifecycle.ReceiptPollIntervalMillis)
	assert.Equal(t, config.EventDecodingPreDecoded, cfg.Lifecycle.EventDecoding)
	assert.Equal(t, "./erc20.json", cfg.Lifecycle.ABIPath)
	assert.Equal(t, config.DefaultOutputDir, cfg.Files.OutputDir)
	assert.Equal(t, "batch.txt", cfg.Files.BatchFile)
}

func TestLoadConfig_MissingDefaultFileUsesDefaults(t *testing.T) {
	t.Chdir(t.TempDir())

	cfg, err := config.LoadConfig("")
	require.NoError(t, err)
	assert.Equal(t, config.Defaults(), cfg)
}

func TestLoadConfig_MissingExplicitFile(t *testing.T) {
	_, err := config.LoadConfig(filepath.Join(t.TempDir(), "absent.yml"))
	assert.Error(t, err)
}

func TestLoadConfig_InvalidValues(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{
			name:    "Unknown log level",
			content: "logger:\n  level: verbose\n",
		},
		{
			name:    "Unknown event decoding",
			content: "lifecycle:\n  event_decoding: guess\n",
		},
		{
			name:    "Negative wait timeout",
			content: "lifecycle:\n  wait_timeout_seconds: -1\n",
		},
		{
			name:    "Malformed yaml",
			content: "logger: [\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := config.LoadConfig(writeConfig(t, tt.content))
			assert.Error(t, err)
		})
	}
}

func TestConfig_Validate_Defaults(t *testing.T) {
	assert.NoError(t, config.Defaults().Validate())
}
