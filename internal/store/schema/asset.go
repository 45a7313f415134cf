package schema

import (
	"time"
)

// Asset represents the assets table - one row per minted asset, never deleted
type Asset struct {
	// ID is the asset id, allocated monotonically at mint and never reused
	ID uint64 `gorm:"column:id;primaryKey;autoIncrement"`
	// ContentRef is the opaque content reference (URI) supplied at mint
	ContentRef string `gorm:"column:content_ref;not null;type:text"`
	// Creator is the minting identity; fixed for the lifetime of the asset
	Creator string `gorm:"column:creator;not null;type:text;index:idx_assets_creator"`
	// Owner is the current owner; equals the custody identity while listed
	Owner string `gorm:"column:owner;not null;type:text;index:idx_assets_owner"`
	// RoyaltyRate is the royalty in basis points, immutable after mint
	RoyaltyRate uint32 `gorm:"column:royalty_rate;not null"`
	// CreatedAt is the mint timestamp
	CreatedAt time.Time `gorm:"column:created_at;not null;type:timestamptz"`
	// UpdatedAt is the timestamp of the last ownership change
	UpdatedAt time.Time `gorm:"column:updated_at;not null;type:timestamptz"`

	// Associations
	Listing     *Listing     `gorm:"foreignKey:AssetID;constraint:OnDelete:CASCADE"`
	SaleRecords []SaleRecord `gorm:"foreignKey:AssetID;constraint:OnDelete:CASCADE"`
}

// TableName specifies the table name for the Asset model
func (Asset) TableName() string {
	return "assets"
}
