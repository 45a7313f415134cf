package types

import (
	"github.com/ethereum/go-ethereum/common"

	"github.com/feral-file/ff-marketplace/internal/domain"
	"github.com/feral-file/ff-marketplace/internal/store/schema"
)

// AssetFromSchema converts a stored asset (with its listing, if any) into a domain snapshot
func AssetFromSchema(a *schema.Asset) *domain.Asset {
	if a == nil {
		return nil
	}

	asset := &domain.Asset{
		ID:          domain.AssetID(a.ID),
		ContentRef:  a.ContentRef,
		Creator:     ParseStoredAddress(a.Creator),
		Owner:       ParseStoredAddress(a.Owner),
		RoyaltyRate: domain.RoyaltyRate(a.RoyaltyRate),
		CreatedAt:   a.CreatedAt,
	}
	if a.Listing != nil {
		asset.ForSale = true
		asset.Price = ParseStoredAmount(a.Listing.Price)
		asset.Seller = ParseStoredAddress(a.Listing.Seller)
	}
	return asset
}

// SaleRecordFromSchema converts a stored sale record into its domain form
func SaleRecordFromSchema(r *schema.SaleRecord) *domain.SaleRecord {
	if r == nil {
		return nil
	}

	return &domain.SaleRecord{
		AssetID:          domain.AssetID(r.AssetID),
		Sequence:         r.Sequence,
		Seller:           ParseStoredAddress(r.Seller),
		Buyer:            ParseStoredAddress(r.Buyer),
		Price:            ParseStoredAmount(r.Price),
		Royalty:          ParseStoredAmount(r.Royalty),
		SellerProceeds:   ParseStoredAmount(r.SellerProceeds),
		RoyaltyRecipient: ParseStoredAddress(r.RoyaltyRecipient),
		Timestamp:        r.Timestamp,
		Receipt:          common.HexToHash(r.Receipt),
	}
}
