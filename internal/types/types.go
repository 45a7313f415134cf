package types

import (
	"math/big"

	"github.com/ethereum/go-ethereum/common"
)

// AmountString formats an amount for storage; nil is zero
func AmountString(amount *big.Int) string {
	if amount == nil {
		return "0"
	}
	return amount.String()
}

// ParseStoredAmount parses an amount read back from storage; malformed values read as zero
func ParseStoredAmount(s string) *big.Int {
	amount, ok := new(big.Int).SetString(s, 10)
	if !ok {
		return new(big.Int)
	}
	return amount
}

// AddressString formats an identity for storage (EIP-55 checksummed hex)
func AddressString(addr common.Address) string {
	return addr.Hex()
}

// ParseStoredAddress parses an identity read back from storage
func ParseStoredAddress(s string) common.Address {
	return common.HexToAddress(s)
}

// CloneAmount returns a copy of amount so callers cannot alias internal state
func CloneAmount(amount *big.Int) *big.Int {
	if amount == nil {
		return nil
	}
	return new(big.Int).Set(amount)
}
