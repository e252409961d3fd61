package domain

import (
	"math/big"
)

// TxRequest describes a transaction to be populated and signed.
// Zero-valued optional fields are filled from the node by the signer.
type TxRequest struct {
	To    Address
	Value WeiValue
	Data  []byte

	Nonce    *uint64
	GasLimit uint64
	GasPrice *big.Int
	ChainID  *big.Int
}

// NewTxRequest is a simple constructor for a value transfer or contract call.
func NewTxRequest(to Address, value WeiValue, data []byte) TxRequest {
	return TxRequest{
		To:    to,
		Value: value,
		Data:  data,
	}
}

// IsContractCreation reports whether the request has no recipient.
func (r TxRequest) IsContractCreation() bool {
	return r.To.IsZero()
}
