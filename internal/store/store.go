package store

import (
	"context"
	"time"

	"github.com/feral-file/ff-marketplace/internal/store/schema"
)

// CreateAssetInput is the input for CreateAsset
type CreateAssetInput struct {
	ContentRef  string
	Creator     string
	RoyaltyRate uint32
	CreatedAt   time.Time
}

// CreateSaleRecordInput is the input for CreateSaleRecord
type CreateSaleRecordInput struct {
	AssetID          uint64
	Sequence         uint64
	Seller           string
	Buyer            string
	Price            string
	Royalty          string
	SellerProceeds   string
	RoyaltyRecipient string
	Receipt          string
	Body             []byte
	Timestamp        time.Time
}

// Store defines the interface for the marketplace tables: assets, listings and sale records.
// Lookups return (nil, nil) when the row does not exist.
type Store interface {
	// CreateAsset inserts a new asset and allocates its id
	CreateAsset(ctx context.Context, input CreateAssetInput) (*schema.Asset, error)
	// GetAssetByID retrieves an asset with its listing (if any)
	GetAssetByID(ctx context.Context, id uint64) (*schema.Asset, error)
	// GetAssets retrieves all assets with their listings, ordered by id
	GetAssets(ctx context.Context) ([]*schema.Asset, error)
	// CountAssetsByOwner counts the assets currently owned by an identity
	CountAssetsByOwner(ctx context.Context, owner string) (uint64, error)
	// DeleteAsset removes an asset that has no listing and no sale records; only used to
	// undo a mint whose enclosing operation failed
	DeleteAsset(ctx context.Context, id uint64) error
	// UpdateAssetOwner overwrites the owner of an asset
	UpdateAssetOwner(ctx context.Context, id uint64, owner string, updatedAt time.Time) error

	// GetListing retrieves the listing of an asset
	GetListing(ctx context.Context, assetID uint64) (*schema.Listing, error)
	// SaveListing creates or replaces the listing of an asset
	SaveListing(ctx context.Context, listing *schema.Listing) error
	// DeleteListing removes the listing of an asset
	DeleteListing(ctx context.Context, assetID uint64) error

	// GetLastSaleSequence returns the highest sale sequence of an asset, 0 if never sold
	GetLastSaleSequence(ctx context.Context, assetID uint64) (uint64, error)
	// CreateSaleRecord appends a sale record
	CreateSaleRecord(ctx context.Context, input CreateSaleRecordInput) (*schema.SaleRecord, error)
	// DeleteSaleRecord removes a sale record; only used to unwind a sale whose settlement failed
	DeleteSaleRecord(ctx context.Context, assetID uint64, sequence uint64) error
	// GetSaleRecords retrieves the sale records of an asset ordered by sequence
	GetSaleRecords(ctx context.Context, assetID uint64) ([]*schema.SaleRecord, error)

	// Transaction runs fn against a transactional view of the store.
	// Changes made through tx become visible atomically when fn returns nil and are discarded otherwise.
	Transaction(ctx context.Context, fn func(tx Store) error) error
}
