package escrow

import (
	"context"
	"errors"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"go.uber.org/zap"

	"github.com/feral-file/ff-marketplace/internal/adapter"
	"github.com/feral-file/ff-marketplace/internal/domain"
	"github.com/feral-file/ff-marketplace/internal/guard"
	"github.com/feral-file/ff-marketplace/internal/logger"
	"github.com/feral-file/ff-marketplace/internal/registry"
	"github.com/feral-file/ff-marketplace/internal/settlement"
	"github.com/feral-file/ff-marketplace/internal/store"
	"github.com/feral-file/ff-marketplace/internal/store/schema"
	"github.com/feral-file/ff-marketplace/internal/types"
)

// Config holds the escrow configuration
type Config struct {
	// Custody is the marketplace identity that owns listed assets
	Custody common.Address
	// Operator receives listing fees
	Operator common.Address
	// ListingFee is the flat fee a seller pays to list, independent of the ask price
	ListingFee *big.Int
}

// Escrow manages the for-sale state of assets and the custody that comes with it
type Escrow interface {
	// List places an asset owned by seller into custody at askPrice; feePaid must equal the listing fee
	List(ctx context.Context, id domain.AssetID, seller common.Address, askPrice, feePaid *big.Int) error
	// Cancel returns a listed asset to its seller; the listing fee is not refunded
	Cancel(ctx context.Context, id domain.AssetID, caller common.Address) error

	PriceOf(ctx context.Context, id domain.AssetID) (*big.Int, error)
	IsForSale(ctx context.Context, id domain.AssetID) (bool, error)
	SellerOf(ctx context.Context, id domain.AssetID) (common.Address, error)

	// CloseListing removes the listing of a sold asset and returns it
	CloseListing(ctx context.Context, id domain.AssetID) (*domain.Listing, error)
	// RestoreListing puts back a listing removed by CloseListing, with the asset in custody
	RestoreListing(ctx context.Context, listing *domain.Listing) error

	Custody() common.Address
	ListingFee() *big.Int

	// WithStore returns an escrow bound to tx
	WithStore(tx store.Store) Escrow
}

type escrow struct {
	store      store.Store
	registry   registry.Registry
	settlement settlement.Driver
	guard      *guard.Guard
	clock      adapter.Clock
	config     Config
}

// NewEscrow creates a new listing escrow
func NewEscrow(st store.Store, reg registry.Registry, driver settlement.Driver, g *guard.Guard, clock adapter.Clock, cfg Config) Escrow {
	if cfg.ListingFee == nil {
		cfg.ListingFee = domain.MustParseAmount(domain.DEFAULT_LISTING_FEE_WEI)
	}
	return &escrow{
		store:      st,
		registry:   reg,
		settlement: driver,
		guard:      g,
		clock:      clock,
		config:     cfg,
	}
}

func (e *escrow) WithStore(tx store.Store) Escrow {
	bound := *e
	bound.store = tx
	bound.registry = e.registry.WithStore(tx)
	return &bound
}

func (e *escrow) Custody() common.Address {
	return e.config.Custody
}

func (e *escrow) ListingFee() *big.Int {
	return new(big.Int).Set(e.config.ListingFee)
}

// List places an asset into custody and collects the listing fee
func (e *escrow) List(ctx context.Context, id domain.AssetID, seller common.Address, askPrice, feePaid *big.Int) (err error) {
	ctx, release, err := e.guard.Enter(ctx, id)
	if err != nil {
		return err
	}
	defer release.Done(&err)

	listing := &domain.Listing{
		AssetID:  id,
		Seller:   seller,
		Price:    types.CloneAmount(askPrice),
		FeePaid:  types.CloneAmount(feePaid),
		ListedAt: e.clock.Now().UTC(),
	}

	err = e.store.Transaction(ctx, func(tx store.Store) error {
		bound := e.WithStore(tx).(*escrow)
		if err := bound.validateListing(ctx, listing); err != nil {
			return err
		}
		return bound.open(ctx, listing)
	})
	if err != nil {
		logger.DebugCtx(ctx, "Listing rejected",
			zap.Stringer("asset_id", id),
			zap.String("seller", seller.Hex()),
			zap.Error(err),
		)
		return err
	}
	guard.Compensate(ctx, func(ctx context.Context) error {
		return e.unwindListing(ctx, listing)
	})

	instruction := settlement.Instruction{
		Reference: fmt.Sprintf("listing:%s", id),
		Payer:     seller,
		Payouts: []settlement.Payout{
			{Recipient: e.config.Operator, Amount: e.ListingFee(), Kind: settlement.PayoutKindListingFee},
		},
	}
	if err := e.settlement.Settle(ctx, instruction); err != nil {
		logger.WarnCtx(ctx, "Listing fee collection failed, unwinding listing",
			zap.Stringer("asset_id", id),
			zap.Error(err),
		)
		return err
	}
	guard.Compensate(ctx, func(ctx context.Context) error {
		return e.settlement.Refund(ctx, instruction)
	})

	logger.InfoCtx(ctx, "Asset listed",
		zap.Stringer("asset_id", id),
		zap.String("seller", seller.Hex()),
		zap.Stringer("price", askPrice),
	)

	return nil
}

// validateListing checks, in order: ownership, ask price, existing listing, fee
func (e *escrow) validateListing(ctx context.Context, listing *domain.Listing) error {
	owner, err := e.registry.OwnerOf(ctx, listing.AssetID)
	if err != nil {
		return err
	}
	if owner != listing.Seller {
		return fmt.Errorf("%s does not own asset %s: %w", listing.Seller.Hex(), listing.AssetID, domain.ErrUnauthorized)
	}

	if listing.Price == nil || listing.Price.Sign() <= 0 {
		return fmt.Errorf("ask price must be positive: %w", domain.ErrInvalidPrice)
	}

	existing, err := e.store.GetListing(ctx, uint64(listing.AssetID))
	if err != nil {
		return fmt.Errorf("failed to get listing: %w", err)
	}
	if existing != nil {
		return fmt.Errorf("asset %s: %w", listing.AssetID, domain.ErrAlreadyListed)
	}

	if !domain.AmountEqual(listing.FeePaid, e.config.ListingFee) {
		return fmt.Errorf("listing fee paid %s, required %s: %w",
			types.AmountString(listing.FeePaid), e.config.ListingFee, domain.ErrPaymentMismatch)
	}

	return nil
}

func (e *escrow) open(ctx context.Context, listing *domain.Listing) error {
	if err := e.store.SaveListing(ctx, listingToSchema(listing)); err != nil {
		return fmt.Errorf("failed to save listing: %w", err)
	}
	return e.registry.TransferOwnership(ctx, listing.AssetID, e.config.Custody)
}

// unwindListing closes listing and hands the asset back to its seller
func (e *escrow) unwindListing(ctx context.Context, listing *domain.Listing) error {
	err := e.store.Transaction(ctx, func(tx store.Store) error {
		if err := tx.DeleteListing(ctx, uint64(listing.AssetID)); err != nil {
			return fmt.Errorf("failed to delete listing: %w", err)
		}
		return e.registry.WithStore(tx).TransferOwnership(ctx, listing.AssetID, listing.Seller)
	})
	if err != nil {
		logger.ErrorCtx(ctx, err, zap.Stringer("asset_id", listing.AssetID))
		return fmt.Errorf("failed to unwind listing of asset %s: %w", listing.AssetID, err)
	}
	return nil
}

// Cancel returns custody to the seller and clears the listing
func (e *escrow) Cancel(ctx context.Context, id domain.AssetID, caller common.Address) (err error) {
	ctx, release, err := e.guard.Enter(ctx, id)
	if err != nil {
		return err
	}
	defer release.Done(&err)

	var listing *domain.Listing
	err = e.store.Transaction(ctx, func(tx store.Store) error {
		bound := e.WithStore(tx).(*escrow)
		var err error
		listing, err = bound.listing(ctx, id)
		if err != nil {
			return err
		}
		if listing.Seller != caller {
			return fmt.Errorf("%s is not the seller of asset %s: %w", caller.Hex(), id, domain.ErrUnauthorized)
		}
		if err := tx.DeleteListing(ctx, uint64(id)); err != nil {
			return fmt.Errorf("failed to delete listing: %w", err)
		}
		return bound.registry.TransferOwnership(ctx, id, listing.Seller)
	})
	if err != nil {
		logger.DebugCtx(ctx, "Cancel rejected",
			zap.Stringer("asset_id", id),
			zap.String("caller", caller.Hex()),
			zap.Error(err),
		)
		return err
	}
	guard.Compensate(ctx, func(ctx context.Context) error {
		if err := e.store.Transaction(ctx, func(tx store.Store) error {
			return e.WithStore(tx).RestoreListing(ctx, listing)
		}); err != nil {
			logger.ErrorCtx(ctx, err, zap.Stringer("asset_id", id))
			return fmt.Errorf("failed to restore listing of asset %s: %w", id, err)
		}
		return nil
	})

	logger.InfoCtx(ctx, "Listing cancelled",
		zap.Stringer("asset_id", id),
		zap.String("seller", caller.Hex()),
	)

	return nil
}

func (e *escrow) PriceOf(ctx context.Context, id domain.AssetID) (*big.Int, error) {
	listing, err := e.listing(ctx, id)
	if err != nil {
		return nil, err
	}
	return listing.Price, nil
}

func (e *escrow) IsForSale(ctx context.Context, id domain.AssetID) (bool, error) {
	_, err := e.listing(ctx, id)
	if errors.Is(err, domain.ErrNotListed) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func (e *escrow) SellerOf(ctx context.Context, id domain.AssetID) (common.Address, error) {
	listing, err := e.listing(ctx, id)
	if err != nil {
		return common.Address{}, err
	}
	return listing.Seller, nil
}

func (e *escrow) CloseListing(ctx context.Context, id domain.AssetID) (*domain.Listing, error) {
	listing, err := e.listing(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := e.store.DeleteListing(ctx, uint64(id)); err != nil {
		return nil, fmt.Errorf("failed to delete listing: %w", err)
	}
	return listing, nil
}

func (e *escrow) RestoreListing(ctx context.Context, listing *domain.Listing) error {
	if err := e.store.SaveListing(ctx, listingToSchema(listing)); err != nil {
		return fmt.Errorf("failed to save listing: %w", err)
	}
	return e.registry.TransferOwnership(ctx, listing.AssetID, e.config.Custody)
}

// listing loads the listing of a known asset; ErrUnknownAsset if never minted, ErrNotListed if owned
func (e *escrow) listing(ctx context.Context, id domain.AssetID) (*domain.Listing, error) {
	asset, err := e.store.GetAssetByID(ctx, uint64(id))
	if err != nil {
		return nil, fmt.Errorf("failed to get asset %s: %w", id, err)
	}
	if asset == nil {
		return nil, fmt.Errorf("asset %s: %w", id, domain.ErrUnknownAsset)
	}
	if asset.Listing == nil {
		return nil, fmt.Errorf("asset %s: %w", id, domain.ErrNotListed)
	}
	return listingFromSchema(asset.Listing), nil
}

func listingToSchema(listing *domain.Listing) *schema.Listing {
	return &schema.Listing{
		AssetID:  uint64(listing.AssetID),
		Seller:   types.AddressString(listing.Seller),
		Price:    types.AmountString(listing.Price),
		FeePaid:  types.AmountString(listing.FeePaid),
		ListedAt: listing.ListedAt,
	}
}

func listingFromSchema(l *schema.Listing) *domain.Listing {
	return &domain.Listing{
		AssetID:  domain.AssetID(l.AssetID),
		Seller:   types.ParseStoredAddress(l.Seller),
		Price:    types.ParseStoredAmount(l.Price),
		FeePaid:  types.ParseStoredAmount(l.FeePaid),
		ListedAt: l.ListedAt,
	}
}
