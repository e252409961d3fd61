// Package utils provides file, timing and hex helpers shared by the command line tool.
package utils

import (
	"fmt"
	"strconv"
	"strings"
)

// HexToUint64 converts a hex string (e.g., "0x1a") to uint64.
func HexToUint64(hexStr string) (uint64, error) {
	cleaned := strings.TrimPrefix(strings.ToLower(hexStr), "0x")
	if cleaned == "" {
		return 0, fmt.Errorf("empty hex string")
	}
	return strconv.ParseUint(cleaned, 16, 64)
}

// ParseQuantity reads a number given either as 0x-prefixed hex or as decimal.
func ParseQuantity(s string) (uint64, error) {
	trimmed := strings.TrimSpace(s)
	if strings.HasPrefix(trimmed, "0x") || strings.HasPrefix(trimmed, "0X") {
		return HexToUint64(trimmed)
	}
	return strconv.ParseUint(trimmed, 10, 64)
}
