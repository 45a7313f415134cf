package sale

import (
	"context"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"go.uber.org/zap"

	"github.com/feral-file/ff-marketplace/internal/adapter"
	"github.com/feral-file/ff-marketplace/internal/domain"
	"github.com/feral-file/ff-marketplace/internal/escrow"
	"github.com/feral-file/ff-marketplace/internal/guard"
	"github.com/feral-file/ff-marketplace/internal/ledger"
	"github.com/feral-file/ff-marketplace/internal/logger"
	"github.com/feral-file/ff-marketplace/internal/registry"
	"github.com/feral-file/ff-marketplace/internal/settlement"
	"github.com/feral-file/ff-marketplace/internal/store"
	"github.com/feral-file/ff-marketplace/internal/types"
)

// Engine executes purchases of listed assets
type Engine interface {
	// ExecuteSale buys a listed asset for exactly its ask price. Ownership, listing and
	// history are updated before any funds move; if the royalty or the proceeds cannot be
	// paid, every effect of the sale is undone, including writes made reentrantly while it
	// was settling.
	ExecuteSale(ctx context.Context, id domain.AssetID, buyer common.Address, payment *big.Int) (*domain.SaleRecord, error)
}

type engine struct {
	store      store.Store
	registry   registry.Registry
	escrow     escrow.Escrow
	ledger     ledger.Ledger
	settlement settlement.Driver
	guard      *guard.Guard
	clock      adapter.Clock
}

// NewEngine creates a new sale engine
func NewEngine(
	st store.Store,
	reg registry.Registry,
	esc escrow.Escrow,
	led ledger.Ledger,
	driver settlement.Driver,
	g *guard.Guard,
	clock adapter.Clock,
) Engine {
	return &engine{
		store:      st,
		registry:   reg,
		escrow:     esc,
		ledger:     led,
		settlement: driver,
		guard:      g,
		clock:      clock,
	}
}

// applied is what a committed sale changed, kept so it can be undone
type applied struct {
	record  *domain.SaleRecord
	listing *domain.Listing
}

func (e *engine) ExecuteSale(ctx context.Context, id domain.AssetID, buyer common.Address, payment *big.Int) (_ *domain.SaleRecord, err error) {
	ctx, release, err := e.guard.Enter(ctx, id)
	if err != nil {
		return nil, err
	}
	defer release.Done(&err)

	var sale applied
	err = e.store.Transaction(ctx, func(tx store.Store) error {
		var err error
		sale, err = e.apply(ctx, tx, id, buyer, payment)
		return err
	})
	if err != nil {
		logger.DebugCtx(ctx, "Sale rejected",
			zap.Stringer("asset_id", id),
			zap.String("buyer", buyer.Hex()),
			zap.Error(err),
		)
		return nil, err
	}
	guard.Compensate(ctx, func(ctx context.Context) error {
		return e.unwind(ctx, sale)
	})

	record := sale.record
	instruction := settlement.Instruction{
		Reference: fmt.Sprintf("sale:%s:%d", id, record.Sequence),
		Payer:     buyer,
	}
	if record.Royalty.Sign() > 0 {
		instruction.Payouts = append(instruction.Payouts, settlement.Payout{
			Recipient: record.RoyaltyRecipient,
			Amount:    record.Royalty,
			Kind:      settlement.PayoutKindRoyalty,
		})
	}
	if record.SellerProceeds.Sign() > 0 {
		instruction.Payouts = append(instruction.Payouts, settlement.Payout{
			Recipient: record.Seller,
			Amount:    record.SellerProceeds,
			Kind:      settlement.PayoutKindProceeds,
		})
	}

	if err := e.settlement.Settle(ctx, instruction); err != nil {
		logger.WarnCtx(ctx, "Sale settlement failed, unwinding sale",
			zap.Stringer("asset_id", id),
			zap.Uint64("sequence", record.Sequence),
			zap.Error(err),
		)
		return nil, err
	}
	guard.Compensate(ctx, func(ctx context.Context) error {
		return e.settlement.Refund(ctx, instruction)
	})

	logger.InfoCtx(ctx, "Asset sold",
		zap.Stringer("asset_id", id),
		zap.Uint64("sequence", record.Sequence),
		zap.String("seller", record.Seller.Hex()),
		zap.String("buyer", buyer.Hex()),
		zap.Stringer("price", record.Price),
		zap.Stringer("royalty", record.Royalty),
	)

	return record, nil
}

// apply validates the purchase and records all of its effects inside tx
func (e *engine) apply(ctx context.Context, tx store.Store, id domain.AssetID, buyer common.Address, payment *big.Int) (applied, error) {
	reg := e.registry.WithStore(tx)
	esc := e.escrow.WithStore(tx)

	forSale, err := esc.IsForSale(ctx, id)
	if err != nil {
		return applied{}, err
	}
	if !forSale {
		return applied{}, fmt.Errorf("asset %s: %w", id, domain.ErrNotListed)
	}

	price, err := esc.PriceOf(ctx, id)
	if err != nil {
		return applied{}, err
	}
	if !domain.AmountEqual(payment, price) {
		return applied{}, fmt.Errorf("payment %s, ask price %s: %w", types.AmountString(payment), price, domain.ErrPaymentMismatch)
	}

	creator, err := reg.CreatorOf(ctx, id)
	if err != nil {
		return applied{}, err
	}
	rate, err := reg.RoyaltyRateOf(ctx, id)
	if err != nil {
		return applied{}, err
	}
	royalty := rate.Apply(price)

	listing, err := esc.CloseListing(ctx, id)
	if err != nil {
		return applied{}, err
	}
	if err := reg.TransferOwnership(ctx, id, buyer); err != nil {
		return applied{}, err
	}

	record, err := e.ledger.WithStore(tx).Append(ctx, domain.SaleRecord{
		AssetID:          id,
		Seller:           listing.Seller,
		Buyer:            buyer,
		Price:            types.CloneAmount(price),
		Royalty:          royalty,
		SellerProceeds:   new(big.Int).Sub(price, royalty),
		RoyaltyRecipient: creator,
		Timestamp:        e.clock.Now(),
	})
	if err != nil {
		return applied{}, err
	}

	return applied{record: record, listing: listing}, nil
}

// unwind restores the listing, custody and history as they were before the sale
func (e *engine) unwind(ctx context.Context, sale applied) error {
	err := e.store.Transaction(ctx, func(tx store.Store) error {
		if err := e.ledger.WithStore(tx).Revert(ctx, sale.record.AssetID, sale.record.Sequence); err != nil {
			return fmt.Errorf("failed to revert sale record: %w", err)
		}
		if err := e.escrow.WithStore(tx).RestoreListing(ctx, sale.listing); err != nil {
			return fmt.Errorf("failed to restore listing: %w", err)
		}
		return nil
	})
	if err != nil {
		logger.ErrorCtx(ctx, err,
			zap.Stringer("asset_id", sale.record.AssetID),
			zap.Uint64("sequence", sale.record.Sequence),
		)
		return err
	}
	return nil
}
