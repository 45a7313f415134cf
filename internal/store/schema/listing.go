package schema

import (
	"time"
)

// Listing represents the listings table - a row exists only while the asset is for sale
type Listing struct {
	// AssetID references the listed asset
	AssetID uint64 `gorm:"column:asset_id;primaryKey"`
	// Seller is the identity that listed the asset and receives the proceeds
	Seller string `gorm:"column:seller;not null;type:text;index:idx_listings_seller"`
	// Price is the ask price in wei (numeric(78,0) to hold any uint256)
	Price string `gorm:"column:price;not null;type:numeric(78,0)"`
	// FeePaid is the listing fee collected from the seller
	FeePaid string `gorm:"column:fee_paid;not null;type:numeric(78,0)"`
	// ListedAt is when the listing was created
	ListedAt time.Time `gorm:"column:listed_at;not null;type:timestamptz"`
}

// TableName specifies the table name for the Listing model
func (Listing) TableName() string {
	return "listings"
}
