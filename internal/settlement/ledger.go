package settlement

import (
	"context"
	"fmt"
	"math/big"
	"sync"

	"github.com/ethereum/go-ethereum/common"
	"go.uber.org/zap"

	"github.com/feral-file/ff-marketplace/internal/domain"
	"github.com/feral-file/ff-marketplace/internal/logger"
)

// ReceiveHook is invoked after a payout has been credited to its recipient.
// Returning an error rejects the payout and aborts the whole instruction.
type ReceiveHook func(ctx context.Context, payout Payout) error

// Ledger is an in-process Driver that keeps cumulative receipts per identity.
// Recipients may register a hook to observe, react to, or reject incoming payouts.
type Ledger struct {
	mu       sync.Mutex
	received map[common.Address]*big.Int
	hooks    map[common.Address]ReceiveHook
}

// NewLedger creates an empty settlement ledger
func NewLedger() *Ledger {
	return &Ledger{
		received: make(map[common.Address]*big.Int),
		hooks:    make(map[common.Address]ReceiveHook),
	}
}

// RegisterReceiver installs hook for recipient, replacing any previous one. A nil hook removes it.
func (l *Ledger) RegisterReceiver(recipient common.Address, hook ReceiveHook) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if hook == nil {
		delete(l.hooks, recipient)
		return
	}
	l.hooks[recipient] = hook
}

// Received returns the cumulative amount credited to an identity
func (l *Ledger) Received(identity common.Address) *big.Int {
	l.mu.Lock()
	defer l.mu.Unlock()

	if amount, ok := l.received[identity]; ok {
		return new(big.Int).Set(amount)
	}
	return new(big.Int)
}

// Settle credits every non-zero payout in order. Hooks run without the ledger lock held so
// they can re-enter the marketplace. If a hook rejects its payout, every credit of the
// instruction is reversed.
func (l *Ledger) Settle(ctx context.Context, instruction Instruction) error {
	var credited []Payout
	for _, payout := range instruction.Payouts {
		if payout.Amount == nil || payout.Amount.Sign() == 0 {
			continue
		}
		if payout.Amount.Sign() < 0 {
			l.reverse(credited)
			return fmt.Errorf("%w: negative %s payout to %s", domain.ErrSettlementFailed, payout.Kind, payout.Recipient.Hex())
		}

		hook := l.credit(payout)
		credited = append(credited, payout)

		if hook == nil {
			continue
		}
		if err := hook(ctx, payout); err != nil {
			l.reverse(credited)
			logger.WarnCtx(ctx, "Payout rejected by recipient",
				zap.String("reference", instruction.Reference),
				zap.String("recipient", payout.Recipient.Hex()),
				zap.String("kind", string(payout.Kind)),
				zap.Error(err),
			)
			return fmt.Errorf("%w: %s payout to %s rejected: %w", domain.ErrSettlementFailed, payout.Kind, payout.Recipient.Hex(), err)
		}
	}

	logger.DebugCtx(ctx, "Instruction settled",
		zap.String("reference", instruction.Reference),
		zap.String("payer", instruction.Payer.Hex()),
		zap.Int("payouts", len(credited)),
	)

	return nil
}

// Refund debits every non-zero payout of a settled instruction from its recipient
func (l *Ledger) Refund(ctx context.Context, instruction Instruction) error {
	var refunded []Payout
	for _, payout := range instruction.Payouts {
		if payout.Amount != nil && payout.Amount.Sign() > 0 {
			refunded = append(refunded, payout)
		}
	}
	l.reverse(refunded)

	logger.DebugCtx(ctx, "Instruction refunded",
		zap.String("reference", instruction.Reference),
		zap.String("payer", instruction.Payer.Hex()),
		zap.Int("payouts", len(refunded)),
	)

	return nil
}

func (l *Ledger) credit(payout Payout) ReceiveHook {
	l.mu.Lock()
	defer l.mu.Unlock()

	balance, ok := l.received[payout.Recipient]
	if !ok {
		balance = new(big.Int)
		l.received[payout.Recipient] = balance
	}
	balance.Add(balance, payout.Amount)

	return l.hooks[payout.Recipient]
}

func (l *Ledger) reverse(credited []Payout) {
	l.mu.Lock()
	defer l.mu.Unlock()

	for _, payout := range credited {
		balance, ok := l.received[payout.Recipient]
		if !ok {
			balance = new(big.Int)
			l.received[payout.Recipient] = balance
		}
		balance.Sub(balance, payout.Amount)
	}
}
