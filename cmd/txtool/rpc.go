package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"evm_tx_toolkit/internal/adapters/rpc"
)

func newRPCCmd(a *app) *cobra.Command {
	var strict bool

	cmd := &cobra.Command{
		Use:   "rpc <method> [param]...",
		Short: "Issue a raw JSON-RPC request and print its result",
		Long: `Issue a JSON-RPC 2.0 request to the configured node and print the result.
Each param is sent as JSON when it parses as JSON, otherwise as a string.
Failures print an empty line unless --strict is set.

Examples:
  txtool rpc eth_blockNumber
  txtool rpc eth_getBlockByNumber latest false`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			session := a.rpcSession()
			method, params := args[0], parseParams(args[1:])

			if !strict {
				fmt.Fprintln(cmd.OutOrStdout(), session.RequestOrEmpty(cmd.Context(), method, params))
				return nil
			}

			result, err := session.Request(cmd.Context(), method, params)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), rpc.ResultText(result))
			return nil
		},
	}

	cmd.Flags().BoolVar(&strict, "strict", false, "Fail on transport and RPC errors instead of printing an empty result")

	return cmd
}

func parseParams(args []string) []any {
	params := make([]any, 0, len(args))
	for _, arg := range args {
		var value any
		if err := json.Unmarshal([]byte(arg), &value); err == nil {
			params = append(params, value)
			continue
		}
		params = append(params, arg)
	}
	return params
}
