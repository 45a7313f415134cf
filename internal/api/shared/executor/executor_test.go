package executor

import (
	"context"
	"fmt"
	"math/big"
	"net/http"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/feral-file/ff-marketplace/internal/api/shared/dto"
	apierrors "github.com/feral-file/ff-marketplace/internal/api/shared/errors"
	"github.com/feral-file/ff-marketplace/internal/api/shared/types"
	"github.com/feral-file/ff-marketplace/internal/domain"
	"github.com/feral-file/ff-marketplace/internal/mocks"
)

var (
	alice   = common.HexToAddress("0x1111111111111111111111111111111111111111")
	bob     = common.HexToAddress("0x2222222222222222222222222222222222222222")
	custody = common.HexToAddress("0x9999999999999999999999999999999999999999")
)

func setupExecutor(t *testing.T) (*mocks.MockMarketplaceService, Executor) {
	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)

	svc := mocks.NewMockMarketplaceService(ctrl)
	return svc, NewExecutor(svc)
}

func testAsset(id domain.AssetID, owner common.Address, forSale bool) *domain.Asset {
	asset := &domain.Asset{
		ID:          id,
		ContentRef:  fmt.Sprintf("ipfs://asset-%d", id),
		Creator:     alice,
		Owner:       owner,
		RoyaltyRate: 1000,
		CreatedAt:   time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC),
	}
	if forSale {
		asset.ForSale = true
		asset.Owner = custody
		asset.Seller = owner
		asset.Price = big.NewInt(5000)
	}
	return asset
}

func requireAPIError(t *testing.T, err error, code apierrors.ErrorCode) *apierrors.APIError {
	t.Helper()
	require.Error(t, err)
	apiErr, ok := err.(*apierrors.APIError)
	require.True(t, ok, "expected *APIError, got %T", err)
	assert.Equal(t, code, apiErr.Code)
	return apiErr
}

func TestGetAsset(t *testing.T) {
	ctx := context.Background()
	svc, exec := setupExecutor(t)

	svc.EXPECT().Asset(ctx, domain.AssetID(1)).Return(testAsset(1, alice, true), nil)

	resp, err := exec.GetAsset(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, uint64(1), resp.ID)
	assert.Equal(t, custody.Hex(), resp.Owner)
	assert.True(t, resp.ForSale)
	require.NotNil(t, resp.Price)
	assert.Equal(t, "5000", *resp.Price)
	require.NotNil(t, resp.Seller)
	assert.Equal(t, alice.Hex(), *resp.Seller)
}

func TestGetAsset_Unknown(t *testing.T) {
	ctx := context.Background()
	svc, exec := setupExecutor(t)

	svc.EXPECT().Asset(ctx, domain.AssetID(9)).Return(nil, fmt.Errorf("asset 9: %w", domain.ErrUnknownAsset))

	_, err := exec.GetAsset(ctx, 9)
	requireAPIError(t, err, apierrors.ErrCodeNotFound)
}

func TestListAssets_FiltersAndPaginates(t *testing.T) {
	ctx := context.Background()
	svc, exec := setupExecutor(t)

	assets := []*domain.Asset{
		testAsset(1, alice, false),
		testAsset(2, bob, false),
		testAsset(3, alice, true),
		testAsset(4, alice, false),
		testAsset(5, alice, false),
	}
	svc.EXPECT().AllAssets(ctx).Return(assets, nil).Times(3)

	owner := alice
	resp, err := exec.ListAssets(ctx, &owner, nil, 2, 0)
	require.NoError(t, err)
	assert.Equal(t, 3, resp.Total)
	require.Len(t, resp.Assets, 2)
	assert.Equal(t, uint64(1), resp.Assets[0].ID)
	assert.Equal(t, uint64(4), resp.Assets[1].ID)
	require.NotNil(t, resp.NextOffset)
	assert.Equal(t, 2, *resp.NextOffset)

	resp, err = exec.ListAssets(ctx, &owner, nil, 2, 2)
	require.NoError(t, err)
	require.Len(t, resp.Assets, 1)
	assert.Equal(t, uint64(5), resp.Assets[0].ID)
	assert.Nil(t, resp.NextOffset)

	forSale := true
	resp, err = exec.ListAssets(ctx, nil, &forSale, 20, 0)
	require.NoError(t, err)
	require.Len(t, resp.Assets, 1)
	assert.Equal(t, uint64(3), resp.Assets[0].ID)
}

func TestListAssets_OffsetBeyondTotal(t *testing.T) {
	ctx := context.Background()
	svc, exec := setupExecutor(t)

	svc.EXPECT().AllAssets(ctx).Return([]*domain.Asset{testAsset(1, alice, false)}, nil)

	resp, err := exec.ListAssets(ctx, nil, nil, 20, 40)
	require.NoError(t, err)
	assert.Equal(t, 1, resp.Total)
	assert.Empty(t, resp.Assets)
	assert.NotNil(t, resp.Assets)
	assert.Nil(t, resp.NextOffset)
}

func TestGetSaleHistory_Order(t *testing.T) {
	ctx := context.Background()
	svc, exec := setupExecutor(t)

	records := []*domain.SaleRecord{
		{AssetID: 1, Sequence: 1, Seller: alice, Buyer: bob, Price: big.NewInt(100), Royalty: big.NewInt(10), SellerProceeds: big.NewInt(90), RoyaltyRecipient: alice},
		{AssetID: 1, Sequence: 2, Seller: bob, Buyer: alice, Price: big.NewInt(200), Royalty: big.NewInt(20), SellerProceeds: big.NewInt(180), RoyaltyRecipient: alice},
	}
	svc.EXPECT().HistoryOf(ctx, domain.AssetID(1)).Return(records, nil).Times(2)

	resp, err := exec.GetSaleHistory(ctx, 1, 20, 0, types.OrderAsc)
	require.NoError(t, err)
	require.Len(t, resp.Records, 2)
	assert.Equal(t, uint64(1), resp.Records[0].Sequence)
	assert.Equal(t, "90", resp.Records[0].SellerProceeds)

	resp, err = exec.GetSaleHistory(ctx, 1, 1, 0, types.OrderDesc)
	require.NoError(t, err)
	require.Len(t, resp.Records, 1)
	assert.Equal(t, uint64(2), resp.Records[0].Sequence)
	assert.Equal(t, 2, resp.Total)
	require.NotNil(t, resp.NextOffset)

	// the stored history order is untouched
	assert.Equal(t, uint64(1), records[0].Sequence)
}

func TestGetBalance(t *testing.T) {
	ctx := context.Background()
	svc, exec := setupExecutor(t)

	svc.EXPECT().BalanceOf(ctx, bob).Return(uint64(3), nil)

	resp, err := exec.GetBalance(ctx, bob)
	require.NoError(t, err)
	assert.Equal(t, bob.Hex(), resp.Address)
	assert.Equal(t, uint64(3), resp.Balance)
}

func TestGetMarketplaceInfo(t *testing.T) {
	svc, exec := setupExecutor(t)

	svc.EXPECT().ListingFee().Return(domain.MustParseAmount(domain.DEFAULT_LISTING_FEE_WEI))

	resp := exec.GetMarketplaceInfo(context.Background())
	assert.Equal(t, domain.DEFAULT_LISTING_FEE_WEI, resp.ListingFee)
	assert.Equal(t, uint32(domain.RoyaltyRateDenominator), resp.RoyaltyRateDenominator)
}

func TestMint(t *testing.T) {
	ctx := context.Background()
	svc, exec := setupExecutor(t)

	svc.EXPECT().Mint(ctx, alice, "ipfs://asset-1", domain.RoyaltyRate(1000)).Return(testAsset(1, alice, false), nil)

	resp, err := exec.Mint(ctx, alice, &dto.MintRequest{ContentRef: "  ipfs://asset-1 ", RoyaltyRate: 1000})
	require.NoError(t, err)
	assert.Equal(t, alice.Hex(), resp.Creator)
	assert.False(t, resp.ForSale)
	assert.Nil(t, resp.Price)
}

func TestMint_InvalidRoyaltyIsReportedByRegistry(t *testing.T) {
	svc, exec := setupExecutor(t)

	svc.EXPECT().Mint(gomock.Any(), alice, "x", domain.RoyaltyRate(10000)).
		Return(nil, fmt.Errorf("royalty rate 10000 must be below 10000: %w", domain.ErrInvalidRoyalty))

	_, err := exec.Mint(context.Background(), alice, &dto.MintRequest{ContentRef: "x", RoyaltyRate: 10000})
	apiErr := requireAPIError(t, err, apierrors.ErrCodeValidationFailed)
	assert.Equal(t, http.StatusUnprocessableEntity, apiErr.HTTPStatus())
	assert.Contains(t, apiErr.Details, domain.ErrInvalidRoyalty.Error())
}

func TestList(t *testing.T) {
	ctx := context.Background()
	svc, exec := setupExecutor(t)

	fee := domain.MustParseAmount(domain.DEFAULT_LISTING_FEE_WEI)
	gomock.InOrder(
		svc.EXPECT().List(ctx, alice, domain.AssetID(1), big.NewInt(5000), fee).Return(nil),
		svc.EXPECT().Asset(ctx, domain.AssetID(1)).Return(testAsset(1, alice, true), nil),
	)

	resp, err := exec.List(ctx, alice, 1, &dto.ListRequest{Price: "5000", FeePaid: domain.DEFAULT_LISTING_FEE_WEI})
	require.NoError(t, err)
	assert.True(t, resp.ForSale)
}

func TestList_Rejections(t *testing.T) {
	tests := []struct {
		name    string
		req     *dto.ListRequest
		svcErr  error
		errCode apierrors.ErrorCode
	}{
		{name: "missing price", req: &dto.ListRequest{FeePaid: "1"}, errCode: apierrors.ErrCodeValidationFailed},
		{name: "malformed fee", req: &dto.ListRequest{Price: "5", FeePaid: "0x10"}, errCode: apierrors.ErrCodeValidationFailed},
		{name: "negative price", req: &dto.ListRequest{Price: "-5", FeePaid: "1"}, svcErr: domain.ErrInvalidPrice, errCode: apierrors.ErrCodeValidationFailed},
		{name: "not owner", req: &dto.ListRequest{Price: "5", FeePaid: "1"}, svcErr: domain.ErrUnauthorized, errCode: apierrors.ErrCodeForbidden},
		{name: "already listed", req: &dto.ListRequest{Price: "5", FeePaid: "1"}, svcErr: domain.ErrAlreadyListed, errCode: apierrors.ErrCodeConflict},
		{name: "wrong fee", req: &dto.ListRequest{Price: "5", FeePaid: "1"}, svcErr: domain.ErrPaymentMismatch, errCode: apierrors.ErrCodePaymentMismatch},
		{name: "zero price", req: &dto.ListRequest{Price: "0", FeePaid: "1"}, svcErr: domain.ErrInvalidPrice, errCode: apierrors.ErrCodeValidationFailed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, exec := setupExecutor(t)
			if tt.svcErr != nil {
				svc.EXPECT().List(gomock.Any(), alice, domain.AssetID(1), gomock.Any(), gomock.Any()).Return(tt.svcErr)
			}

			_, err := exec.List(context.Background(), alice, 1, tt.req)
			requireAPIError(t, err, tt.errCode)
		})
	}
}

func TestCancel(t *testing.T) {
	ctx := context.Background()
	svc, exec := setupExecutor(t)

	gomock.InOrder(
		svc.EXPECT().Cancel(ctx, alice, domain.AssetID(1)).Return(nil),
		svc.EXPECT().Asset(ctx, domain.AssetID(1)).Return(testAsset(1, alice, false), nil),
	)

	resp, err := exec.Cancel(ctx, alice, 1)
	require.NoError(t, err)
	assert.Equal(t, alice.Hex(), resp.Owner)
	assert.False(t, resp.ForSale)
}

func TestPurchase(t *testing.T) {
	ctx := context.Background()
	svc, exec := setupExecutor(t)

	record := &domain.SaleRecord{
		AssetID:          1,
		Sequence:         1,
		Seller:           alice,
		Buyer:            bob,
		Price:            big.NewInt(5000),
		Royalty:          big.NewInt(0),
		SellerProceeds:   big.NewInt(5000),
		RoyaltyRecipient: alice,
		Receipt:          common.HexToHash("0x01"),
	}
	svc.EXPECT().Buy(ctx, bob, domain.AssetID(1), big.NewInt(5000)).Return(record, nil)

	resp, err := exec.Purchase(ctx, bob, 1, &dto.PurchaseRequest{Payment: "5000"})
	require.NoError(t, err)
	assert.Equal(t, bob.Hex(), resp.Buyer)
	assert.Equal(t, "5000", resp.SellerProceeds)
	assert.Equal(t, record.Receipt.Hex(), resp.Receipt)
}

func TestPurchase_SettlementFailure(t *testing.T) {
	ctx := context.Background()
	svc, exec := setupExecutor(t)

	svc.EXPECT().Buy(ctx, bob, domain.AssetID(1), big.NewInt(5000)).
		Return(nil, fmt.Errorf("%w: proceeds payout rejected", domain.ErrSettlementFailed))

	_, err := exec.Purchase(ctx, bob, 1, &dto.PurchaseRequest{Payment: "5000"})
	requireAPIError(t, err, apierrors.ErrCodeSettlementFailed)
}

func TestPaginate(t *testing.T) {
	w, next := paginate(10, 0, 3)
	assert.Equal(t, window{start: 3, end: 10}, w)
	assert.Nil(t, next)

	w, next = paginate(10, 4, -1)
	assert.Equal(t, window{start: 0, end: 4}, w)
	require.NotNil(t, next)
	assert.Equal(t, 4, *next)
}
