package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"evm_tx_toolkit/internal/adapters/evm"
	"evm_tx_toolkit/internal/adapters/rpc"
	"evm_tx_toolkit/internal/config"
	"evm_tx_toolkit/internal/core/lifecycle"
	"evm_tx_toolkit/internal/logger"
	"evm_tx_toolkit/internal/utils"
)

// privateKeyEnv names the environment variable read when --key is not given.
const privateKeyEnv = "TXTOOL_PRIVATE_KEY"

// app carries the state shared by all commands.
type app struct {
	configPath string

	cfg    *config.Config
	logger logger.AppLogger
	fs     afero.Fs
}

func newApp() *app {
	return &app{fs: utils.DefaultFs}
}

func newRootCmd(a *app) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "txtool",
		Short:         "EVM transaction lifecycle toolkit",
		Long:          `txtool submits transactions to an EVM JSON-RPC node, awaits their receipts and extracts status and event data.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.init(cmd)
		},
	}

	rootCmd.PersistentFlags().StringVar(&a.configPath, "config", "", "Path to YAML configuration file (default: config.yml)")

	rootCmd.AddCommand(
		newStatusCmd(a),
		newEventCmd(a),
		newSendCmd(a),
		newPresignCmd(a),
		newSendBatchCmd(a),
		newRPCCmd(a),
		newFilesCmd(a),
	)

	return rootCmd
}

func (a *app) init(cmd *cobra.Command) error {
	cfg, err := config.LoadConfig(a.configPath)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	a.cfg = cfg

	appLogger, err := logger.NewAppLogger(cfg.Logger, cmd.ErrOrStderr())
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	a.logger = appLogger

	configFile := a.configPath
	if configFile == "" {
		configFile = config.DefaultConfigFilePath + " (default)"
	}
	a.logger.Debug("Configuration loaded successfully", "configFile", configFile)
	return nil
}

// waitContext bounds ctx by the configured wait timeout, if any.
func (a *app) waitContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if a.cfg.Lifecycle.WaitTimeoutSeconds > 0 {
		return context.WithTimeout(ctx, time.Duration(a.cfg.Lifecycle.WaitTimeoutSeconds)*time.Second)
	}
	return context.WithCancel(ctx)
}

func (a *app) clientTimeout() time.Duration {
	return time.Duration(a.cfg.ETHClient.ClientTimeoutSeconds) * time.Second
}

func (a *app) pollInterval() time.Duration {
	return time.Duration(a.cfg.Lifecycle.ReceiptPollIntervalMillis) * time.Millisecond
}

func (a *app) dialNode(ctx context.Context) (*evm.Client, error) {
	node, err := evm.Dial(ctx, a.cfg.ETHClient.NodeURL, a.clientTimeout())
	if err != nil {
		return nil, err
	}
	a.logger.Debug("Connected to node", "url", a.cfg.ETHClient.NodeURL)
	return node, nil
}

func (a *app) rpcSession() *rpc.Session {
	return rpc.StartRPC(a.cfg.ETHClient.NodeURL, &http.Client{Timeout: a.clientTimeout()})
}

func (a *app) newHelper(out io.Writer) (*lifecycle.Helper, error) {
	return lifecycle.NewHelper(a.logger, out)
}

// loadABI reads the contract ABI at abiPath, falling back to the configured path.
// It returns nil when neither is set.
func (a *app) loadABI(abiPath string) (*abi.ABI, error) {
	if abiPath == "" {
		abiPath = a.cfg.Lifecycle.ABIPath
	}
	if abiPath == "" {
		return nil, nil
	}

	content, err := utils.ReadFile(a.fs, abiPath)
	if err != nil {
		return nil, err
	}
	contract, err := lifecycle.ParseABI(strings.NewReader(content))
	if err != nil {
		return nil, err
	}
	return &contract, nil
}

// newDecoder builds the configured log decoder. abiPath overrides the configured ABI file.
func (a *app) newDecoder(abiPath string) (lifecycle.LogDecoder, error) {
	contract, err := a.loadABI(abiPath)
	if err != nil {
		return nil, err
	}
	return lifecycle.NewLogDecoder(a.cfg.Lifecycle.EventDecoding, contract)
}

func (a *app) privateKey(flagValue string) (string, error) {
	if flagValue != "" {
		return flagValue, nil
	}
	if key := os.Getenv(privateKeyEnv); key != "" {
		return key, nil
	}
	return "", errors.New("private key required: use --key or " + privateKeyEnv)
}
