package registry

import (
	"context"
	"fmt"

	"github.com/ethereum/go-ethereum/common"
	"go.uber.org/zap"

	"github.com/feral-file/ff-marketplace/internal/adapter"
	"github.com/feral-file/ff-marketplace/internal/domain"
	"github.com/feral-file/ff-marketplace/internal/guard"
	"github.com/feral-file/ff-marketplace/internal/logger"
	"github.com/feral-file/ff-marketplace/internal/store"
	"github.com/feral-file/ff-marketplace/internal/store/schema"
	"github.com/feral-file/ff-marketplace/internal/types"
)

// Registry owns asset identity, content reference, current owner and royalty terms
type Registry interface {
	// Mint allocates the next asset id with owner = creator and a permanent royalty rate
	Mint(ctx context.Context, contentRef string, creator common.Address, royaltyRate domain.RoyaltyRate) (domain.AssetID, error)
	// TransferOwnership overwrites the owner of an asset.
	// There is no authorization check here; escrow and sale authorize before calling it.
	TransferOwnership(ctx context.Context, id domain.AssetID, newOwner common.Address) error

	OwnerOf(ctx context.Context, id domain.AssetID) (common.Address, error)
	CreatorOf(ctx context.Context, id domain.AssetID) (common.Address, error)
	RoyaltyRateOf(ctx context.Context, id domain.AssetID) (domain.RoyaltyRate, error)
	ContentRefOf(ctx context.Context, id domain.AssetID) (string, error)

	// Asset returns a snapshot of an asset including its listing state
	Asset(ctx context.Context, id domain.AssetID) (*domain.Asset, error)
	// BalanceOf counts the assets currently owned by an identity
	BalanceOf(ctx context.Context, owner common.Address) (uint64, error)

	// WithStore returns a registry bound to tx, used by callers that mutate several
	// components inside one store transaction
	WithStore(tx store.Store) Registry
}

type registry struct {
	store store.Store
	guard *guard.Guard
	clock adapter.Clock
}

// NewRegistry creates a new asset registry
func NewRegistry(st store.Store, g *guard.Guard, clock adapter.Clock) Registry {
	return &registry{
		store: st,
		guard: g,
		clock: clock,
	}
}

func (r *registry) WithStore(tx store.Store) Registry {
	return &registry{
		store: tx,
		guard: r.guard,
		clock: r.clock,
	}
}

// Mint allocates the next asset id
func (r *registry) Mint(ctx context.Context, contentRef string, creator common.Address, royaltyRate domain.RoyaltyRate) (_ domain.AssetID, err error) {
	if !royaltyRate.Valid() {
		logger.DebugCtx(ctx, "Mint rejected",
			zap.String("creator", creator.Hex()),
			zap.Uint32("royalty_rate", uint32(royaltyRate)),
		)
		return 0, fmt.Errorf("royalty rate %d must be below %d: %w", royaltyRate, domain.RoyaltyRateDenominator, domain.ErrInvalidRoyalty)
	}

	ctx, release, err := r.guard.Enter(ctx)
	if err != nil {
		return 0, err
	}
	defer release.Done(&err)

	asset, err := r.store.CreateAsset(ctx, store.CreateAssetInput{
		ContentRef:  contentRef,
		Creator:     types.AddressString(creator),
		RoyaltyRate: uint32(royaltyRate),
		CreatedAt:   r.clock.Now().UTC(),
	})
	if err != nil {
		return 0, fmt.Errorf("failed to create asset: %w", err)
	}
	guard.Compensate(ctx, func(ctx context.Context) error {
		logger.WarnCtx(ctx, "Undoing mint", zap.Uint64("asset_id", asset.ID))
		return r.store.DeleteAsset(ctx, asset.ID)
	})

	logger.InfoCtx(ctx, "Asset minted",
		zap.Uint64("asset_id", asset.ID),
		zap.String("creator", asset.Creator),
		zap.Stringer("royalty_rate", royaltyRate),
	)

	return domain.AssetID(asset.ID), nil
}

// TransferOwnership overwrites the owner of an asset
func (r *registry) TransferOwnership(ctx context.Context, id domain.AssetID, newOwner common.Address) error {
	if _, err := r.load(ctx, id); err != nil {
		return err
	}

	if err := r.store.UpdateAssetOwner(ctx, uint64(id), types.AddressString(newOwner), r.clock.Now().UTC()); err != nil {
		return fmt.Errorf("failed to update owner of asset %s: %w", id, err)
	}
	return nil
}

func (r *registry) OwnerOf(ctx context.Context, id domain.AssetID) (common.Address, error) {
	asset, err := r.load(ctx, id)
	if err != nil {
		return common.Address{}, err
	}
	return types.ParseStoredAddress(asset.Owner), nil
}

func (r *registry) CreatorOf(ctx context.Context, id domain.AssetID) (common.Address, error) {
	asset, err := r.load(ctx, id)
	if err != nil {
		return common.Address{}, err
	}
	return types.ParseStoredAddress(asset.Creator), nil
}

func (r *registry) RoyaltyRateOf(ctx context.Context, id domain.AssetID) (domain.RoyaltyRate, error) {
	asset, err := r.load(ctx, id)
	if err != nil {
		return 0, err
	}
	return domain.RoyaltyRate(asset.RoyaltyRate), nil
}

func (r *registry) ContentRefOf(ctx context.Context, id domain.AssetID) (string, error) {
	asset, err := r.load(ctx, id)
	if err != nil {
		return "", err
	}
	return asset.ContentRef, nil
}

func (r *registry) Asset(ctx context.Context, id domain.AssetID) (*domain.Asset, error) {
	asset, err := r.load(ctx, id)
	if err != nil {
		return nil, err
	}
	return types.AssetFromSchema(asset), nil
}

func (r *registry) BalanceOf(ctx context.Context, owner common.Address) (uint64, error) {
	count, err := r.store.CountAssetsByOwner(ctx, types.AddressString(owner))
	if err != nil {
		return 0, fmt.Errorf("failed to count assets: %w", err)
	}
	return count, nil
}

func (r *registry) load(ctx context.Context, id domain.AssetID) (*schema.Asset, error) {
	asset, err := r.store.GetAssetByID(ctx, uint64(id))
	if err != nil {
		return nil, fmt.Errorf("failed to get asset %s: %w", id, err)
	}
	if asset == nil {
		return nil, fmt.Errorf("asset %s: %w", id, domain.ErrUnknownAsset)
	}
	return asset, nil
}
