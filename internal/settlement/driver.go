package settlement

import (
	"context"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
)

// PayoutKind labels what a payout pays for
type PayoutKind string

const (
	PayoutKindRoyalty    PayoutKind = "royalty"
	PayoutKindProceeds   PayoutKind = "proceeds"
	PayoutKindListingFee PayoutKind = "listing_fee"
)

// Payout is one outbound transfer of an instruction
type Payout struct {
	Recipient common.Address
	Amount    *big.Int
	Kind      PayoutKind
}

// Instruction is a set of payouts funded by a single payer that must settle as a unit
type Instruction struct {
	// Reference identifies the operation that produced the instruction, e.g. "sale:1:2"
	Reference string
	Payer     common.Address
	Payouts   []Payout
}

// Driver moves funds for the marketplace.
//
// Settle either completes every payout of the instruction or none of them. A failure is
// reported as an error wrapping domain.ErrSettlementFailed. Settle may run code controlled
// by a recipient; that code receives ctx and may call back into the marketplace with it.
//
//go:generate mockgen -source=driver.go -destination=../mocks/settlement_driver.go -package=mocks -mock_names=Driver=MockSettlementDriver
type Driver interface {
	Settle(ctx context.Context, instruction Instruction) error
	// Refund returns every payout of a settled instruction to its payer. It runs no
	// recipient code and is used to undo an operation after it has settled.
	Refund(ctx context.Context, instruction Instruction) error
}
