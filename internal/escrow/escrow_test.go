package escrow_test

import (
	"context"
	"errors"
	"math/big"
	"os"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/feral-file/ff-marketplace/internal/domain"
	"github.com/feral-file/ff-marketplace/internal/escrow"
	"github.com/feral-file/ff-marketplace/internal/guard"
	"github.com/feral-file/ff-marketplace/internal/logger"
	"github.com/feral-file/ff-marketplace/internal/mocks"
	"github.com/feral-file/ff-marketplace/internal/registry"
	"github.com/feral-file/ff-marketplace/internal/settlement"
	"github.com/feral-file/ff-marketplace/internal/store"
)

var (
	creator  = common.HexToAddress("0x1111111111111111111111111111111111111111")
	stranger = common.HexToAddress("0x2222222222222222222222222222222222222222")
	custody  = common.HexToAddress("0x9999999999999999999999999999999999999999")
	operator = common.HexToAddress("0x8888888888888888888888888888888888888888")

	listingFee = domain.MustParseAmount(domain.DEFAULT_LISTING_FEE_WEI)
	askPrice   = domain.MustParseAmount("30000000000000000")
)

func TestMain(m *testing.M) {
	if err := logger.Initialize(logger.Config{Debug: false}); err != nil {
		panic(err)
	}
	os.Exit(m.Run())
}

type testEscrowMocks struct {
	ctrl     *gomock.Controller
	clock    *mocks.MockClock
	store    store.Store
	ledger   *settlement.Ledger
	registry registry.Registry
	escrow   escrow.Escrow
}

func setupTestEscrow(t *testing.T, driver settlement.Driver) *testEscrowMocks {
	ctrl := gomock.NewController(t)
	tm := &testEscrowMocks{
		ctrl:   ctrl,
		clock:  mocks.NewMockClock(ctrl),
		store:  store.NewMemoryStore(),
		ledger: settlement.NewLedger(),
	}
	tm.clock.EXPECT().Now().Return(time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)).AnyTimes()
	if driver == nil {
		driver = tm.ledger
	}

	g := guard.New()
	tm.registry = registry.NewRegistry(tm.store, g, tm.clock)
	tm.escrow = escrow.NewEscrow(tm.store, tm.registry, driver, g, tm.clock, escrow.Config{
		Custody:    custody,
		Operator:   operator,
		ListingFee: listingFee,
	})
	return tm
}

func (tm *testEscrowMocks) mint(t *testing.T) domain.AssetID {
	id, err := tm.registry.Mint(context.Background(), "URI", creator, 1000)
	require.NoError(t, err)
	return id
}

func TestEscrow_List(t *testing.T) {
	tm := setupTestEscrow(t, nil)
	defer tm.ctrl.Finish()
	ctx := context.Background()
	id := tm.mint(t)

	require.NoError(t, tm.escrow.List(ctx, id, creator, askPrice, listingFee))

	forSale, err := tm.escrow.IsForSale(ctx, id)
	require.NoError(t, err)
	assert.True(t, forSale)

	price, err := tm.escrow.PriceOf(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, 0, price.Cmp(askPrice))

	seller, err := tm.escrow.SellerOf(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, creator, seller)

	owner, err := tm.registry.OwnerOf(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, custody, owner)

	assert.Equal(t, 0, tm.ledger.Received(operator).Cmp(listingFee))
}

func TestEscrow_ListRejections(t *testing.T) {
	tests := []struct {
		name        string
		seller      common.Address
		price       *big.Int
		fee         *big.Int
		listFirst   bool
		expectedErr error
	}{
		{
			name:        "not the owner",
			seller:      stranger,
			price:       askPrice,
			fee:         listingFee,
			expectedErr: domain.ErrUnauthorized,
		},
		{
			name:        "zero price",
			seller:      creator,
			price:       big.NewInt(0),
			fee:         listingFee,
			expectedErr: domain.ErrInvalidPrice,
		},
		{
			name:        "nil price",
			seller:      creator,
			price:       nil,
			fee:         listingFee,
			expectedErr: domain.ErrInvalidPrice,
		},
		{
			name:        "underpaid fee",
			seller:      creator,
			price:       askPrice,
			fee:         new(big.Int).Sub(listingFee, big.NewInt(1)),
			expectedErr: domain.ErrPaymentMismatch,
		},
		{
			name:        "overpaid fee",
			seller:      creator,
			price:       askPrice,
			fee:         new(big.Int).Add(listingFee, big.NewInt(1)),
			expectedErr: domain.ErrPaymentMismatch,
		},
		{
			name:        "fee scaled with price",
			seller:      creator,
			price:       big.NewInt(1500),
			fee:         big.NewInt(15),
			expectedErr: domain.ErrPaymentMismatch,
		},
		{
			// custody now owns the asset, so the former owner is no longer authorized
			name:        "already listed by seller",
			seller:      creator,
			price:       askPrice,
			fee:         listingFee,
			listFirst:   true,
			expectedErr: domain.ErrUnauthorized,
		},
		{
			name:        "already listed by custody",
			seller:      custody,
			price:       askPrice,
			fee:         listingFee,
			listFirst:   true,
			expectedErr: domain.ErrAlreadyListed,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tm := setupTestEscrow(t, nil)
			defer tm.ctrl.Finish()
			ctx := context.Background()
			id := tm.mint(t)

			if tt.listFirst {
				require.NoError(t, tm.escrow.List(ctx, id, creator, askPrice, listingFee))
			}
			before, err := tm.registry.Asset(ctx, id)
			require.NoError(t, err)

			err = tm.escrow.List(ctx, id, tt.seller, tt.price, tt.fee)
			assert.ErrorIs(t, err, tt.expectedErr)

			after, err := tm.registry.Asset(ctx, id)
			require.NoError(t, err)
			assert.Equal(t, before, after)
		})
	}
}

func TestEscrow_ListUnknownAsset(t *testing.T) {
	tm := setupTestEscrow(t, nil)
	defer tm.ctrl.Finish()

	err := tm.escrow.List(context.Background(), 7, creator, askPrice, listingFee)
	assert.ErrorIs(t, err, domain.ErrUnknownAsset)
}

func TestEscrow_ListFeeCollectionFailureUnwinds(t *testing.T) {
	ctrl := gomock.NewController(t)
	driver := mocks.NewMockSettlementDriver(ctrl)
	tm := setupTestEscrow(t, driver)
	defer tm.ctrl.Finish()
	ctx := context.Background()
	id := tm.mint(t)

	driver.
		EXPECT().
		Settle(gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, instruction settlement.Instruction) error {
			assert.Equal(t, creator, instruction.Payer)
			require.Len(t, instruction.Payouts, 1)
			assert.Equal(t, operator, instruction.Payouts[0].Recipient)
			assert.Equal(t, settlement.PayoutKindListingFee, instruction.Payouts[0].Kind)
			return errors.Join(domain.ErrSettlementFailed, errors.New("operator unreachable"))
		})

	err := tm.escrow.List(ctx, id, creator, askPrice, listingFee)
	assert.ErrorIs(t, err, domain.ErrSettlementFailed)

	forSale, err := tm.escrow.IsForSale(ctx, id)
	require.NoError(t, err)
	assert.False(t, forSale)

	owner, err := tm.registry.OwnerOf(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, creator, owner)
}

func TestEscrow_Cancel(t *testing.T) {
	tm := setupTestEscrow(t, nil)
	defer tm.ctrl.Finish()
	ctx := context.Background()
	id := tm.mint(t)

	err := tm.escrow.Cancel(ctx, id, creator)
	assert.ErrorIs(t, err, domain.ErrNotListed)

	require.NoError(t, tm.escrow.List(ctx, id, creator, askPrice, listingFee))

	err = tm.escrow.Cancel(ctx, id, stranger)
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	require.NoError(t, tm.escrow.Cancel(ctx, id, creator))

	forSale, err := tm.escrow.IsForSale(ctx, id)
	require.NoError(t, err)
	assert.False(t, forSale)

	owner, err := tm.registry.OwnerOf(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, creator, owner)

	// the fee stays with the operator
	assert.Equal(t, 0, tm.ledger.Received(operator).Cmp(listingFee))

	// relisting charges the fee again
	require.NoError(t, tm.escrow.List(ctx, id, creator, askPrice, listingFee))
	assert.Equal(t, 0, tm.ledger.Received(operator).Cmp(new(big.Int).Mul(listingFee, big.NewInt(2))))
}

func TestEscrow_Lookups(t *testing.T) {
	tm := setupTestEscrow(t, nil)
	defer tm.ctrl.Finish()
	ctx := context.Background()
	id := tm.mint(t)

	forSale, err := tm.escrow.IsForSale(ctx, id)
	require.NoError(t, err)
	assert.False(t, forSale)

	_, err = tm.escrow.PriceOf(ctx, id)
	assert.ErrorIs(t, err, domain.ErrNotListed)
	_, err = tm.escrow.SellerOf(ctx, id)
	assert.ErrorIs(t, err, domain.ErrNotListed)

	_, err = tm.escrow.IsForSale(ctx, 99)
	assert.ErrorIs(t, err, domain.ErrUnknownAsset)

	assert.Equal(t, custody, tm.escrow.Custody())
	assert.Equal(t, 0, tm.escrow.ListingFee().Cmp(listingFee))
}

func TestEscrow_CloseAndRestoreListing(t *testing.T) {
	tm := setupTestEscrow(t, nil)
	defer tm.ctrl.Finish()
	ctx := context.Background()
	id := tm.mint(t)
	require.NoError(t, tm.escrow.List(ctx, id, creator, askPrice, listingFee))

	closed, err := tm.escrow.CloseListing(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, creator, closed.Seller)

	forSale, err := tm.escrow.IsForSale(ctx, id)
	require.NoError(t, err)
	assert.False(t, forSale)

	require.NoError(t, tm.escrow.RestoreListing(ctx, closed))

	seller, err := tm.escrow.SellerOf(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, creator, seller)
}

func TestNewEscrow_DefaultListingFee(t *testing.T) {
	e := escrow.NewEscrow(store.NewMemoryStore(), nil, nil, guard.New(), nil, escrow.Config{Custody: custody})
	assert.Equal(t, domain.DEFAULT_LISTING_FEE_WEI, e.ListingFee().String())
}
