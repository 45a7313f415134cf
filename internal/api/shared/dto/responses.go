package dto

import (
	"time"

	"github.com/feral-file/ff-marketplace/internal/domain"
	"github.com/feral-file/ff-marketplace/internal/types"
)

// AssetResponse represents an asset in API responses
type AssetResponse struct {
	ID          uint64    `json:"id"`
	ContentRef  string    `json:"content_ref"`
	Creator     string    `json:"creator"`
	Owner       string    `json:"owner"`
	RoyaltyRate uint32    `json:"royalty_rate"`
	ForSale     bool      `json:"for_sale"`
	Price       *string   `json:"price,omitempty"`
	Seller      *string   `json:"seller,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

// AssetListResponse represents a page of assets
type AssetListResponse struct {
	Assets     []*AssetResponse `json:"assets"`
	Total      int              `json:"total"`
	NextOffset *int             `json:"next_offset,omitempty"`
}

// SaleRecordResponse represents a sale history entry in API responses
type SaleRecordResponse struct {
	AssetID          uint64    `json:"asset_id"`
	Sequence         uint64    `json:"sequence"`
	Seller           string    `json:"seller"`
	Buyer            string    `json:"buyer"`
	Price            string    `json:"price"`
	Royalty          string    `json:"royalty"`
	SellerProceeds   string    `json:"seller_proceeds"`
	RoyaltyRecipient string    `json:"royalty_recipient"`
	Timestamp        time.Time `json:"timestamp"`
	Receipt          string    `json:"receipt"`
}

// SaleHistoryResponse represents a page of an asset's sale history
type SaleHistoryResponse struct {
	AssetID    uint64                `json:"asset_id"`
	Records    []*SaleRecordResponse `json:"records"`
	Total      int                   `json:"total"`
	NextOffset *int                  `json:"next_offset,omitempty"`
}

// BalanceResponse represents the number of assets an identity owns
type BalanceResponse struct {
	Address string `json:"address"`
	Balance uint64 `json:"balance"`
}

// MarketplaceInfoResponse describes marketplace-wide parameters
type MarketplaceInfoResponse struct {
	ListingFee             string `json:"listing_fee"`
	RoyaltyRateDenominator uint32 `json:"royalty_rate_denominator"`
}

// MapAssetToDTO maps a domain asset to its API representation
func MapAssetToDTO(asset *domain.Asset) *AssetResponse {
	if asset == nil {
		return nil
	}

	resp := &AssetResponse{
		ID:          uint64(asset.ID),
		ContentRef:  asset.ContentRef,
		Creator:     types.AddressString(asset.Creator),
		Owner:       types.AddressString(asset.Owner),
		RoyaltyRate: uint32(asset.RoyaltyRate),
		ForSale:     asset.ForSale,
		CreatedAt:   asset.CreatedAt,
	}

	if asset.ForSale {
		price := types.AmountString(asset.Price)
		seller := types.AddressString(asset.Seller)
		resp.Price = &price
		resp.Seller = &seller
	}

	return resp
}

// MapSaleRecordToDTO maps a domain sale record to its API representation
func MapSaleRecordToDTO(record *domain.SaleRecord) *SaleRecordResponse {
	if record == nil {
		return nil
	}

	return &SaleRecordResponse{
		AssetID:          uint64(record.AssetID),
		Sequence:         record.Sequence,
		Seller:           types.AddressString(record.Seller),
		Buyer:            types.AddressString(record.Buyer),
		Price:            types.AmountString(record.Price),
		Royalty:          types.AmountString(record.Royalty),
		SellerProceeds:   types.AmountString(record.SellerProceeds),
		RoyaltyRecipient: types.AddressString(record.RoyaltyRecipient),
		Timestamp:        record.Timestamp,
		Receipt:          record.Receipt.Hex(),
	}
}
