package store

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStore(t *testing.T) {
	RunStoreTests(t,
		func(t *testing.T) Store { return NewMemoryStore() },
		func(t *testing.T) {},
	)
}

func TestMemoryStore_FirstAssetIDIsOne(t *testing.T) {
	s := NewMemoryStore()
	asset, err := s.CreateAsset(context.Background(), buildTestAsset("URI"))
	require.NoError(t, err)
	assert.Equal(t, uint64(1), asset.ID)
}

func TestMemoryStore_IDsNotReusedAfterRollback(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	_ = s.Transaction(ctx, func(tx Store) error {
		_, err := tx.CreateAsset(ctx, buildTestAsset("discarded"))
		require.NoError(t, err)
		return assert.AnError
	})

	asset, err := s.CreateAsset(ctx, buildTestAsset("kept"))
	require.NoError(t, err)
	assert.Equal(t, uint64(2), asset.ID)

	assets, err := s.GetAssets(ctx)
	require.NoError(t, err)
	require.Len(t, assets, 1)
	assert.Equal(t, "kept", assets[0].ContentRef)
}

func TestMemoryStore_ReturnedRowsAreCopies(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	asset, err := s.CreateAsset(ctx, buildTestAsset("URI"))
	require.NoError(t, err)
	asset.Owner = testBuyer

	got, err := s.GetAssetByID(ctx, asset.ID)
	require.NoError(t, err)
	assert.Equal(t, testCreator, got.Owner)
}

func TestMemoryStore_ConcurrentReadsDuringTransaction(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	asset, err := s.CreateAsset(ctx, buildTestAsset("URI"))
	require.NoError(t, err)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 50; j++ {
				got, err := s.GetAssetByID(ctx, asset.ID)
				assert.NoError(t, err)
				assert.Contains(t, []string{testCreator, testBuyer}, got.Owner)
				records, err := s.GetSaleRecords(ctx, asset.ID)
				assert.NoError(t, err)
				assert.LessOrEqual(t, len(records), 1)
			}
		}()
	}

	err = s.Transaction(ctx, func(tx Store) error {
		if _, err := tx.CreateSaleRecord(ctx, buildTestSaleRecord(asset.ID, 1, "5")); err != nil {
			return err
		}
		return tx.UpdateAssetOwner(ctx, asset.ID, testBuyer, time.Now().UTC())
	})
	require.NoError(t, err)
	wg.Wait()
}
