package main

import (
	"fmt"
	"math/big"
	"sort"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/fatih/color"

	"evm_tx_toolkit/internal/core/domain"
)

// formatValue renders a decoded event payload for the terminal.
func formatValue(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case common.Address:
		return val.Hex()
	case common.Hash:
		return val.Hex()
	case *big.Int:
		return val.String()
	case []byte:
		return hexutil.Encode(val)
	case map[string]any:
		keys := make([]string, 0, len(val))
		for key := range val {
			keys = append(keys, key)
		}
		sort.Strings(keys)
		parts := make([]string, 0, len(keys))
		for _, key := range keys {
			parts = append(parts, key+"="+formatValue(val[key]))
		}
		return strings.Join(parts, " ")
	default:
		return fmt.Sprint(val)
	}
}

// colorStatus highlights a status line by outcome.
func colorStatus(summary domain.StatusSummary) string {
	switch {
	case summary.IsUnknown():
		return color.YellowString("%s", summary.String())
	case summary.Status == "1":
		return color.GreenString("%s", summary.String())
	default:
		return color.RedString("%s", summary.String())
	}
}
