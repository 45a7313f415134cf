package executor

import (
	"context"

	"github.com/ethereum/go-ethereum/common"

	"github.com/feral-file/ff-marketplace/internal/api/shared/dto"
	apierrors "github.com/feral-file/ff-marketplace/internal/api/shared/errors"
	"github.com/feral-file/ff-marketplace/internal/api/shared/types"
	"github.com/feral-file/ff-marketplace/internal/domain"
	"github.com/feral-file/ff-marketplace/internal/marketplace"
	internalTypes "github.com/feral-file/ff-marketplace/internal/types"
)

// Executor is the interface for the API executor.
// It validates transport input, calls the marketplace and shapes DTOs; every error it
// returns is an *apierrors.APIError.
//
//go:generate mockgen -source=executor.go -destination=../../../mocks/mock_api_executor.go -package=mocks -mock_names=Executor=MockAPIExecutor
type Executor interface {
	// GetAsset retrieves a single asset
	GetAsset(ctx context.Context, id domain.AssetID) (*dto.AssetResponse, error)

	// ListAssets retrieves assets in id order with optional filters
	ListAssets(ctx context.Context, owner *common.Address, forSale *bool, limit int, offset int) (*dto.AssetListResponse, error)

	// GetSaleHistory retrieves the sale history of an asset
	GetSaleHistory(ctx context.Context, id domain.AssetID, limit int, offset int, order types.Order) (*dto.SaleHistoryResponse, error)

	// GetBalance counts the assets an identity owns
	GetBalance(ctx context.Context, address common.Address) (*dto.BalanceResponse, error)

	// GetMarketplaceInfo returns marketplace-wide parameters
	GetMarketplaceInfo(ctx context.Context) *dto.MarketplaceInfoResponse

	// Mint creates an asset on behalf of caller
	Mint(ctx context.Context, caller common.Address, req *dto.MintRequest) (*dto.AssetResponse, error)

	// List places an asset into custody on behalf of caller
	List(ctx context.Context, caller common.Address, id domain.AssetID, req *dto.ListRequest) (*dto.AssetResponse, error)

	// Cancel withdraws a listing on behalf of caller
	Cancel(ctx context.Context, caller common.Address, id domain.AssetID) (*dto.AssetResponse, error)

	// Purchase buys a listed asset on behalf of caller
	Purchase(ctx context.Context, caller common.Address, id domain.AssetID, req *dto.PurchaseRequest) (*dto.SaleRecordResponse, error)
}

type executor struct {
	marketplace marketplace.Service
}

func NewExecutor(svc marketplace.Service) Executor {
	return &executor{marketplace: svc}
}

func (e *executor) GetAsset(ctx context.Context, id domain.AssetID) (*dto.AssetResponse, error) {
	asset, err := e.marketplace.Asset(ctx, id)
	if err != nil {
		return nil, apierrors.FromDomain(err, "Failed to get asset")
	}

	return dto.MapAssetToDTO(asset), nil
}

func (e *executor) ListAssets(ctx context.Context, owner *common.Address, forSale *bool, limit int, offset int) (*dto.AssetListResponse, error) {
	assets, err := e.marketplace.AllAssets(ctx)
	if err != nil {
		return nil, apierrors.FromDomain(err, "Failed to list assets")
	}

	filtered := make([]*domain.Asset, 0, len(assets))
	for _, asset := range assets {
		if owner != nil && asset.Owner != *owner {
			continue
		}
		if forSale != nil && asset.ForSale != *forSale {
			continue
		}
		filtered = append(filtered, asset)
	}

	page, next := paginate(len(filtered), limit, offset)
	resp := &dto.AssetListResponse{
		Assets:     make([]*dto.AssetResponse, 0, page.end-page.start),
		Total:      len(filtered),
		NextOffset: next,
	}
	for _, asset := range filtered[page.start:page.end] {
		resp.Assets = append(resp.Assets, dto.MapAssetToDTO(asset))
	}

	return resp, nil
}

func (e *executor) GetSaleHistory(ctx context.Context, id domain.AssetID, limit int, offset int, order types.Order) (*dto.SaleHistoryResponse, error) {
	records, err := e.marketplace.HistoryOf(ctx, id)
	if err != nil {
		return nil, apierrors.FromDomain(err, "Failed to get sale history")
	}

	if order.Desc() {
		reversed := make([]*domain.SaleRecord, len(records))
		for i, record := range records {
			reversed[len(records)-1-i] = record
		}
		records = reversed
	}

	page, next := paginate(len(records), limit, offset)
	resp := &dto.SaleHistoryResponse{
		AssetID:    uint64(id),
		Records:    make([]*dto.SaleRecordResponse, 0, page.end-page.start),
		Total:      len(records),
		NextOffset: next,
	}
	for _, record := range records[page.start:page.end] {
		resp.Records = append(resp.Records, dto.MapSaleRecordToDTO(record))
	}

	return resp, nil
}

func (e *executor) GetBalance(ctx context.Context, address common.Address) (*dto.BalanceResponse, error) {
	balance, err := e.marketplace.BalanceOf(ctx, address)
	if err != nil {
		return nil, apierrors.FromDomain(err, "Failed to get balance")
	}

	return &dto.BalanceResponse{
		Address: internalTypes.AddressString(address),
		Balance: balance,
	}, nil
}

func (e *executor) GetMarketplaceInfo(ctx context.Context) *dto.MarketplaceInfoResponse {
	return &dto.MarketplaceInfoResponse{
		ListingFee:             internalTypes.AmountString(e.marketplace.ListingFee()),
		RoyaltyRateDenominator: domain.RoyaltyRateDenominator,
	}
}

func (e *executor) Mint(ctx context.Context, caller common.Address, req *dto.MintRequest) (*dto.AssetResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	asset, err := e.marketplace.Mint(ctx, caller, req.ContentRef, domain.RoyaltyRate(req.RoyaltyRate))
	if err != nil {
		return nil, apierrors.FromDomain(err, "Failed to mint asset")
	}

	return dto.MapAssetToDTO(asset), nil
}

func (e *executor) List(ctx context.Context, caller common.Address, id domain.AssetID, req *dto.ListRequest) (*dto.AssetResponse, error) {
	price, feePaid, err := req.Amounts()
	if err != nil {
		return nil, err
	}

	if err := e.marketplace.List(ctx, caller, id, price, feePaid); err != nil {
		return nil, apierrors.FromDomain(err, "Failed to list asset")
	}

	return e.GetAsset(ctx, id)
}

func (e *executor) Cancel(ctx context.Context, caller common.Address, id domain.AssetID) (*dto.AssetResponse, error) {
	if err := e.marketplace.Cancel(ctx, caller, id); err != nil {
		return nil, apierrors.FromDomain(err, "Failed to cancel listing")
	}

	return e.GetAsset(ctx, id)
}

func (e *executor) Purchase(ctx context.Context, caller common.Address, id domain.AssetID, req *dto.PurchaseRequest) (*dto.SaleRecordResponse, error) {
	payment, err := req.Amount()
	if err != nil {
		return nil, err
	}

	record, err := e.marketplace.Buy(ctx, caller, id, payment)
	if err != nil {
		return nil, apierrors.FromDomain(err, "Failed to purchase asset")
	}

	return dto.MapSaleRecordToDTO(record), nil
}

type window struct {
	start int
	end   int
}

// paginate clamps [offset, offset+limit) to total and returns the offset of the next page,
// if any
func paginate(total, limit, offset int) (window, *int) {
	start := min(max(offset, 0), total)
	end := total
	if limit > 0 {
		end = min(start+limit, total)
	}

	var next *int
	if end < total {
		next = &end
	}
	return window{start: start, end: end}, next
}
