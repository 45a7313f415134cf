package store

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/feral-file/ff-marketplace/internal/store/schema"
)

// =============================================================================
// Test Data Builders
// =============================================================================

const (
	testCreator = "0x1111111111111111111111111111111111111111"
	testBuyer   = "0x2222222222222222222222222222222222222222"
	testCustody = "0x9999999999999999999999999999999999999999"
)

// buildTestAsset creates a test asset input
func buildTestAsset(contentRef string) CreateAssetInput {
	return CreateAssetInput{
		ContentRef:  contentRef,
		Creator:     testCreator,
		RoyaltyRate: 1000,
		CreatedAt:   time.Now().UTC().Truncate(time.Microsecond),
	}
}

// buildTestSaleRecord creates a test sale record input
func buildTestSaleRecord(assetID uint64, sequence uint64, price string) CreateSaleRecordInput {
	return CreateSaleRecordInput{
		AssetID:          assetID,
		Sequence:         sequence,
		Seller:           testCreator,
		Buyer:            testBuyer,
		Price:            price,
		Royalty:          "0",
		SellerProceeds:   price,
		RoyaltyRecipient: testCreator,
		Receipt:          fmt.Sprintf("0xreceipt%d%d", assetID, sequence),
		Body:             []byte(fmt.Sprintf(`{"asset_id":%d,"sequence":%d}`, assetID, sequence)),
		Timestamp:        time.Now().UTC().Truncate(time.Microsecond),
	}
}

// =============================================================================
// Test: Assets
// =============================================================================

func testAssets(t *testing.T, store Store) {
	ctx := context.Background()

	t.Run("create asset sets owner to creator and allocates increasing ids", func(t *testing.T) {
		a1, err := store.CreateAsset(ctx, buildTestAsset("ipfs://a1"))
		require.NoError(t, err)
		a2, err := store.CreateAsset(ctx, buildTestAsset("ipfs://a2"))
		require.NoError(t, err)

		assert.Greater(t, a2.ID, a1.ID)
		assert.Equal(t, testCreator, a1.Owner)
		assert.Equal(t, testCreator, a1.Creator)
		assert.Equal(t, uint32(1000), a1.RoyaltyRate)

		got, err := store.GetAssetByID(ctx, a1.ID)
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, "ipfs://a1", got.ContentRef)
		assert.Nil(t, got.Listing)
	})

	t.Run("unknown asset returns nil without error", func(t *testing.T) {
		got, err := store.GetAssetByID(ctx, 1<<40)
		require.NoError(t, err)
		assert.Nil(t, got)
	})

	t.Run("update owner and count by owner", func(t *testing.T) {
		asset, err := store.CreateAsset(ctx, buildTestAsset("ipfs://owned"))
		require.NoError(t, err)

		before, err := store.CountAssetsByOwner(ctx, testBuyer)
		require.NoError(t, err)

		err = store.UpdateAssetOwner(ctx, asset.ID, testBuyer, time.Now().UTC())
		require.NoError(t, err)

		after, err := store.CountAssetsByOwner(ctx, testBuyer)
		require.NoError(t, err)
		assert.Equal(t, before+1, after)

		got, err := store.GetAssetByID(ctx, asset.ID)
		require.NoError(t, err)
		assert.Equal(t, testBuyer, got.Owner)
		assert.Equal(t, testCreator, got.Creator)
	})

	t.Run("update owner of unknown asset fails", func(t *testing.T) {
		err := store.UpdateAssetOwner(ctx, 1<<40, testBuyer, time.Now().UTC())
		assert.Error(t, err)
	})

	t.Run("delete asset removes it without reusing its id", func(t *testing.T) {
		asset, err := store.CreateAsset(ctx, buildTestAsset("ipfs://undone"))
		require.NoError(t, err)

		require.NoError(t, store.DeleteAsset(ctx, asset.ID))

		got, err := store.GetAssetByID(ctx, asset.ID)
		require.NoError(t, err)
		assert.Nil(t, got)

		next, err := store.CreateAsset(ctx, buildTestAsset("ipfs://next"))
		require.NoError(t, err)
		assert.Greater(t, next.ID, asset.ID)
	})

	t.Run("get assets is ordered by id and carries listings", func(t *testing.T) {
		a1, err := store.CreateAsset(ctx, buildTestAsset("ipfs://list-1"))
		require.NoError(t, err)
		a2, err := store.CreateAsset(ctx, buildTestAsset("ipfs://list-2"))
		require.NoError(t, err)
		require.NoError(t, store.SaveListing(ctx, &schema.Listing{
			AssetID:  a2.ID,
			Seller:   testCreator,
			Price:    "30000000000000000",
			FeePaid:  "10000000000000000",
			ListedAt: time.Now().UTC(),
		}))

		assets, err := store.GetAssets(ctx)
		require.NoError(t, err)
		for i := 1; i < len(assets); i++ {
			assert.Less(t, assets[i-1].ID, assets[i].ID)
		}

		byID := make(map[uint64]*schema.Asset)
		for _, a := range assets {
			byID[a.ID] = a
		}
		require.Contains(t, byID, a1.ID)
		require.Contains(t, byID, a2.ID)
		assert.Nil(t, byID[a1.ID].Listing)
		require.NotNil(t, byID[a2.ID].Listing)
		assert.Equal(t, "30000000000000000", byID[a2.ID].Listing.Price)
	})
}

// =============================================================================
// Test: Listings
// =============================================================================

func testListings(t *testing.T, store Store) {
	ctx := context.Background()

	t.Run("save, replace and delete listing", func(t *testing.T) {
		asset, err := store.CreateAsset(ctx, buildTestAsset("ipfs://listing"))
		require.NoError(t, err)

		listing, err := store.GetListing(ctx, asset.ID)
		require.NoError(t, err)
		assert.Nil(t, listing)

		require.NoError(t, store.SaveListing(ctx, &schema.Listing{
			AssetID:  asset.ID,
			Seller:   testCreator,
			Price:    "1500",
			FeePaid:  "10",
			ListedAt: time.Now().UTC(),
		}))
		require.NoError(t, store.SaveListing(ctx, &schema.Listing{
			AssetID:  asset.ID,
			Seller:   testBuyer,
			Price:    "2000",
			FeePaid:  "10",
			ListedAt: time.Now().UTC(),
		}))

		listing, err = store.GetListing(ctx, asset.ID)
		require.NoError(t, err)
		require.NotNil(t, listing)
		assert.Equal(t, testBuyer, listing.Seller)
		assert.Equal(t, "2000", listing.Price)

		require.NoError(t, store.DeleteListing(ctx, asset.ID))
		listing, err = store.GetListing(ctx, asset.ID)
		require.NoError(t, err)
		assert.Nil(t, listing)
	})

	t.Run("deleting a missing listing is a no-op", func(t *testing.T) {
		asset, err := store.CreateAsset(ctx, buildTestAsset("ipfs://no-listing"))
		require.NoError(t, err)
		assert.NoError(t, store.DeleteListing(ctx, asset.ID))
	})
}

// =============================================================================
// Test: SaleRecords
// =============================================================================

func testSaleRecords(t *testing.T, store Store) {
	ctx := context.Background()

	t.Run("records are returned in sequence order", func(t *testing.T) {
		asset, err := store.CreateAsset(ctx, buildTestAsset("ipfs://sold"))
		require.NoError(t, err)

		seq, err := store.GetLastSaleSequence(ctx, asset.ID)
		require.NoError(t, err)
		assert.Equal(t, uint64(0), seq)

		records, err := store.GetSaleRecords(ctx, asset.ID)
		require.NoError(t, err)
		assert.Empty(t, records)

		_, err = store.CreateSaleRecord(ctx, buildTestSaleRecord(asset.ID, 1, "1500"))
		require.NoError(t, err)
		_, err = store.CreateSaleRecord(ctx, buildTestSaleRecord(asset.ID, 2, "2000"))
		require.NoError(t, err)

		seq, err = store.GetLastSaleSequence(ctx, asset.ID)
		require.NoError(t, err)
		assert.Equal(t, uint64(2), seq)

		records, err = store.GetSaleRecords(ctx, asset.ID)
		require.NoError(t, err)
		require.Len(t, records, 2)
		assert.Equal(t, uint64(1), records[0].Sequence)
		assert.Equal(t, "1500", records[0].Price)
		assert.Equal(t, uint64(2), records[1].Sequence)
		assert.Equal(t, "2000", records[1].Price)
		assert.Equal(t, fmt.Sprintf("0xreceipt%d1", asset.ID), records[0].Receipt)
	})

	t.Run("duplicate sequence is rejected", func(t *testing.T) {
		asset, err := store.CreateAsset(ctx, buildTestAsset("ipfs://dup"))
		require.NoError(t, err)

		err = store.Transaction(ctx, func(tx Store) error {
			if _, err := tx.CreateSaleRecord(ctx, buildTestSaleRecord(asset.ID, 1, "1")); err != nil {
				return err
			}
			_, err := tx.CreateSaleRecord(ctx, buildTestSaleRecord(asset.ID, 1, "2"))
			return err
		})
		assert.Error(t, err)

		records, err := store.GetSaleRecords(ctx, asset.ID)
		require.NoError(t, err)
		assert.Empty(t, records)
	})

	t.Run("delete sale record", func(t *testing.T) {
		asset, err := store.CreateAsset(ctx, buildTestAsset("ipfs://unwind"))
		require.NoError(t, err)
		_, err = store.CreateSaleRecord(ctx, buildTestSaleRecord(asset.ID, 1, "1500"))
		require.NoError(t, err)

		require.NoError(t, store.DeleteSaleRecord(ctx, asset.ID, 1))

		records, err := store.GetSaleRecords(ctx, asset.ID)
		require.NoError(t, err)
		assert.Empty(t, records)
	})
}

// =============================================================================
// Test: Transaction
// =============================================================================

func testTransaction(t *testing.T, store Store) {
	ctx := context.Background()

	t.Run("committed changes are visible together", func(t *testing.T) {
		asset, err := store.CreateAsset(ctx, buildTestAsset("ipfs://tx-commit"))
		require.NoError(t, err)

		err = store.Transaction(ctx, func(tx Store) error {
			if err := tx.UpdateAssetOwner(ctx, asset.ID, testCustody, time.Now().UTC()); err != nil {
				return err
			}
			return tx.SaveListing(ctx, &schema.Listing{
				AssetID:  asset.ID,
				Seller:   testCreator,
				Price:    "42",
				FeePaid:  "1",
				ListedAt: time.Now().UTC(),
			})
		})
		require.NoError(t, err)

		got, err := store.GetAssetByID(ctx, asset.ID)
		require.NoError(t, err)
		assert.Equal(t, testCustody, got.Owner)
		require.NotNil(t, got.Listing)
		assert.Equal(t, "42", got.Listing.Price)
	})

	t.Run("failed transaction leaves no trace", func(t *testing.T) {
		asset, err := store.CreateAsset(ctx, buildTestAsset("ipfs://tx-rollback"))
		require.NoError(t, err)

		boom := errors.New("boom")
		err = store.Transaction(ctx, func(tx Store) error {
			if err := tx.UpdateAssetOwner(ctx, asset.ID, testBuyer, time.Now().UTC()); err != nil {
				return err
			}
			if _, err := tx.CreateSaleRecord(ctx, buildTestSaleRecord(asset.ID, 1, "7")); err != nil {
				return err
			}
			return boom
		})
		assert.ErrorIs(t, err, boom)

		got, err := store.GetAssetByID(ctx, asset.ID)
		require.NoError(t, err)
		assert.Equal(t, testCreator, got.Owner)

		records, err := store.GetSaleRecords(ctx, asset.ID)
		require.NoError(t, err)
		assert.Empty(t, records)
	})

	t.Run("reads inside a transaction see its own writes", func(t *testing.T) {
		asset, err := store.CreateAsset(ctx, buildTestAsset("ipfs://tx-read"))
		require.NoError(t, err)

		err = store.Transaction(ctx, func(tx Store) error {
			if _, err := tx.CreateSaleRecord(ctx, buildTestSaleRecord(asset.ID, 1, "9")); err != nil {
				return err
			}
			seq, err := tx.GetLastSaleSequence(ctx, asset.ID)
			if err != nil {
				return err
			}
			assert.Equal(t, uint64(1), seq)
			return nil
		})
		require.NoError(t, err)
	})
}

// RunStoreTests runs the shared store test suite against a Store implementation
func RunStoreTests(t *testing.T, initDB func(t *testing.T) Store, cleanupDB func(t *testing.T)) {
	tests := []struct {
		name string
		fn   func(*testing.T, Store)
	}{
		{"Assets", testAssets},
		{"Listings", testListings},
		{"SaleRecords", testSaleRecords},
		{"Transaction", testTransaction},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := initDB(t)
			defer cleanupDB(t)
			tt.fn(t, store)
		})
	}
}
