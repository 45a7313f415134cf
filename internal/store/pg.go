package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/feral-file/ff-marketplace/internal/store/schema"
)

type pgStore struct {
	db *gorm.DB
}

// NewPGStore creates a new PostgreSQL store instance
func NewPGStore(db *gorm.DB) Store {
	return &pgStore{db: db}
}

// AutoMigrate creates or updates the marketplace tables
func AutoMigrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&schema.Asset{}, &schema.Listing{}, &schema.SaleRecord{}); err != nil {
		return fmt.Errorf("failed to migrate schema: %w", err)
	}
	return nil
}

// ConfigureConnectionPool configures the connection pool settings for a GORM database connection.
// Zero values fall back to the defaults of NormalizeConnectionPoolSettings.
func ConfigureConnectionPool(db *gorm.DB, maxOpenConns, maxIdleConns int, connMaxLifetime, connMaxIdleTime time.Duration) error {
	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	maxOpenConns, maxIdleConns, connMaxLifetime, connMaxIdleTime =
		NormalizeConnectionPoolSettings(maxOpenConns, maxIdleConns, connMaxLifetime, connMaxIdleTime)

	sqlDB.SetMaxOpenConns(maxOpenConns)
	sqlDB.SetMaxIdleConns(maxIdleConns)
	sqlDB.SetConnMaxLifetime(connMaxLifetime)
	sqlDB.SetConnMaxIdleTime(connMaxIdleTime)

	return nil
}

// NormalizeConnectionPoolSettings applies defaults and clamps pool settings into safe values.
//
// Defaults (when zero):
//   - MaxOpenConns: 10
//   - MaxIdleConns: 2
//   - ConnMaxLifetime: 30 minutes
//   - ConnMaxIdleTime: 5 minutes
//
// Writes are serialized by the marketplace, so the pool mostly serves concurrent reads.
func NormalizeConnectionPoolSettings(maxOpenConns, maxIdleConns int, connMaxLifetime, connMaxIdleTime time.Duration) (int, int, time.Duration, time.Duration) {
	if maxOpenConns <= 0 {
		maxOpenConns = 10
	}
	if maxIdleConns <= 0 {
		maxIdleConns = 2
	}
	if connMaxLifetime <= 0 {
		connMaxLifetime = 30 * time.Minute
	}
	if connMaxIdleTime <= 0 {
		connMaxIdleTime = 5 * time.Minute
	}

	maxIdleConns = min(maxIdleConns, maxOpenConns)

	return maxOpenConns, maxIdleConns, connMaxLifetime, connMaxIdleTime
}

// CreateAsset inserts a new asset and allocates its id
func (s *pgStore) CreateAsset(ctx context.Context, input CreateAssetInput) (*schema.Asset, error) {
	asset := schema.Asset{
		ContentRef:  input.ContentRef,
		Creator:     input.Creator,
		Owner:       input.Creator,
		RoyaltyRate: input.RoyaltyRate,
		CreatedAt:   input.CreatedAt,
		UpdatedAt:   input.CreatedAt,
	}
	if err := s.db.WithContext(ctx).Create(&asset).Error; err != nil {
		return nil, fmt.Errorf("failed to create asset: %w", err)
	}
	return &asset, nil
}

// DeleteAsset removes an asset row
func (s *pgStore) DeleteAsset(ctx context.Context, id uint64) error {
	err := s.db.WithContext(ctx).Where("id = ?", id).Delete(&schema.Asset{}).Error
	if err != nil {
		return fmt.Errorf("failed to delete asset: %w", err)
	}
	return nil
}

// GetAssetByID retrieves an asset with its listing (if any)
func (s *pgStore) GetAssetByID(ctx context.Context, id uint64) (*schema.Asset, error) {
	var asset schema.Asset
	err := s.db.WithContext(ctx).Preload("Listing").Where("id = ?", id).First(&asset).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get asset: %w", err)
	}
	return &asset, nil
}

// GetAssets retrieves all assets with their listings, ordered by id
func (s *pgStore) GetAssets(ctx context.Context) ([]*schema.Asset, error) {
	var assets []*schema.Asset
	err := s.db.WithContext(ctx).Preload("Listing").Order("id ASC").Find(&assets).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get assets: %w", err)
	}
	return assets, nil
}

// CountAssetsByOwner counts the assets currently owned by an identity
func (s *pgStore) CountAssetsByOwner(ctx context.Context, owner string) (uint64, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&schema.Asset{}).Where("owner = ?", owner).Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("failed to count assets by owner: %w", err)
	}
	return uint64(count), nil //nolint:gosec,G115 // count is never negative
}

// UpdateAssetOwner overwrites the owner of an asset
func (s *pgStore) UpdateAssetOwner(ctx context.Context, id uint64, owner string, updatedAt time.Time) error {
	result := s.db.WithContext(ctx).Model(&schema.Asset{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"owner":      owner,
			"updated_at": updatedAt,
		})
	if result.Error != nil {
		return fmt.Errorf("failed to update asset owner: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("failed to update asset owner: asset %d not found", id)
	}
	return nil
}

// GetListing retrieves the listing of an asset
func (s *pgStore) GetListing(ctx context.Context, assetID uint64) (*schema.Listing, error) {
	var listing schema.Listing
	err := s.db.WithContext(ctx).Where("asset_id = ?", assetID).First(&listing).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get listing: %w", err)
	}
	return &listing, nil
}

// SaveListing creates or replaces the listing of an asset
func (s *pgStore) SaveListing(ctx context.Context, listing *schema.Listing) error {
	err := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "asset_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"seller", "price", "fee_paid", "listed_at"}),
	}).Create(listing).Error
	if err != nil {
		return fmt.Errorf("failed to save listing: %w", err)
	}
	return nil
}

// DeleteListing removes the listing of an asset
func (s *pgStore) DeleteListing(ctx context.Context, assetID uint64) error {
	err := s.db.WithContext(ctx).Where("asset_id = ?", assetID).Delete(&schema.Listing{}).Error
	if err != nil {
		return fmt.Errorf("failed to delete listing: %w", err)
	}
	return nil
}

// GetLastSaleSequence returns the highest sale sequence of an asset, 0 if never sold
func (s *pgStore) GetLastSaleSequence(ctx context.Context, assetID uint64) (uint64, error) {
	var seq uint64
	err := s.db.WithContext(ctx).Model(&schema.SaleRecord{}).
		Where("asset_id = ?", assetID).
		Select("COALESCE(MAX(sequence), 0)").
		Scan(&seq).Error
	if err != nil {
		return 0, fmt.Errorf("failed to get last sale sequence: %w", err)
	}
	return seq, nil
}

// CreateSaleRecord appends a sale record
func (s *pgStore) CreateSaleRecord(ctx context.Context, input CreateSaleRecordInput) (*schema.SaleRecord, error) {
	record := schema.SaleRecord{
		AssetID:          input.AssetID,
		Sequence:         input.Sequence,
		Seller:           input.Seller,
		Buyer:            input.Buyer,
		Price:            input.Price,
		Royalty:          input.Royalty,
		SellerProceeds:   input.SellerProceeds,
		RoyaltyRecipient: input.RoyaltyRecipient,
		Receipt:          input.Receipt,
		Body:             input.Body,
		Timestamp:        input.Timestamp,
	}
	if err := s.db.WithContext(ctx).Create(&record).Error; err != nil {
		return nil, fmt.Errorf("failed to create sale record: %w", err)
	}
	return &record, nil
}

// DeleteSaleRecord removes a sale record
func (s *pgStore) DeleteSaleRecord(ctx context.Context, assetID uint64, sequence uint64) error {
	err := s.db.WithContext(ctx).
		Where("asset_id = ? AND sequence = ?", assetID, sequence).
		Delete(&schema.SaleRecord{}).Error
	if err != nil {
		return fmt.Errorf("failed to delete sale record: %w", err)
	}
	return nil
}

// GetSaleRecords retrieves the sale records of an asset ordered by sequence
func (s *pgStore) GetSaleRecords(ctx context.Context, assetID uint64) ([]*schema.SaleRecord, error) {
	var records []*schema.SaleRecord
	err := s.db.WithContext(ctx).
		Where("asset_id = ?", assetID).
		Order("sequence ASC").
		Find(&records).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get sale records: %w", err)
	}
	return records, nil
}

// Transaction runs fn inside a database transaction; nested calls use savepoints
func (s *pgStore) Transaction(ctx context.Context, fn func(tx Store) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&pgStore{db: tx})
	})
}
