package schema

import (
	"time"

	"gorm.io/datatypes"
)

// SaleRecord represents the sale_records table - append-only history of completed sales
type SaleRecord struct {
	// ID is the internal database primary key
	ID uint64 `gorm:"column:id;primaryKey;autoIncrement"`
	// AssetID references the sold asset
	AssetID uint64 `gorm:"column:asset_id;not null;uniqueIndex:idx_sale_records_asset_sequence,priority:1"`
	// Sequence is the per-asset sale number, starting at 1
	Sequence uint64 `gorm:"column:sequence;not null;uniqueIndex:idx_sale_records_asset_sequence,priority:2"`
	// Seller is the listing seller
	Seller string `gorm:"column:seller;not null;type:text"`
	// Buyer is the new owner
	Buyer string `gorm:"column:buyer;not null;type:text"`
	// Price is the sale price in wei
	Price string `gorm:"column:price;not null;type:numeric(78,0)"`
	// Royalty is the amount paid to the creator
	Royalty string `gorm:"column:royalty;not null;type:numeric(78,0)"`
	// SellerProceeds is the amount paid to the seller (price - royalty)
	SellerProceeds string `gorm:"column:seller_proceeds;not null;type:numeric(78,0)"`
	// RoyaltyRecipient is the creator at the time of sale
	RoyaltyRecipient string `gorm:"column:royalty_recipient;not null;type:text"`
	// Receipt is the keccak256 digest of Body
	Receipt string `gorm:"column:receipt;not null;type:text"`
	// Body is the canonical JSON the receipt was computed over
	Body datatypes.JSON `gorm:"column:body;type:jsonb"`
	// Timestamp is when the sale completed
	Timestamp time.Time `gorm:"column:timestamp;not null;type:timestamptz"`
}

// TableName specifies the table name for the SaleRecord model
func (SaleRecord) TableName() string {
	return "sale_records"
}
