package store

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"github.com/feral-file/ff-marketplace/internal/store/schema"
)

// memoryState holds the tables of the in-memory store
type memoryState struct {
	assets   map[uint64]schema.Asset
	listings map[uint64]schema.Listing
	records  map[uint64][]schema.SaleRecord
}

func newMemoryState() *memoryState {
	return &memoryState{
		assets:   make(map[uint64]schema.Asset),
		listings: make(map[uint64]schema.Listing),
		records:  make(map[uint64][]schema.SaleRecord),
	}
}

func (st *memoryState) clone() *memoryState {
	c := newMemoryState()
	for id, a := range st.assets {
		c.assets[id] = a
	}
	for id, l := range st.listings {
		c.listings[id] = l
	}
	for id, rs := range st.records {
		c.records[id] = append([]schema.SaleRecord(nil), rs...)
	}
	return c
}

// memoryAllocator hands out ids; ids are never reused, even when a transaction is discarded
type memoryAllocator struct {
	assetID  atomic.Uint64
	recordID atomic.Uint64
}

type memoryStore struct {
	mu    *sync.RWMutex
	state *memoryState
	ids   *memoryAllocator
	// inTx is true for transactional views; the root lock is already held by the caller
	inTx bool
}

// NewMemoryStore creates a store that keeps all tables in process memory.
// Tables are durable for the lifetime of the process.
func NewMemoryStore() Store {
	return &memoryStore{
		mu:    &sync.RWMutex{},
		state: newMemoryState(),
		ids:   &memoryAllocator{},
	}
}

func (s *memoryStore) read(fn func(st *memoryState)) {
	if !s.inTx {
		s.mu.RLock()
		defer s.mu.RUnlock()
	}
	fn(s.state)
}

func (s *memoryStore) write(fn func(st *memoryState) error) error {
	if !s.inTx {
		s.mu.Lock()
		defer s.mu.Unlock()
	}
	return fn(s.state)
}

func withListing(a schema.Asset, st *memoryState) *schema.Asset {
	if l, ok := st.listings[a.ID]; ok {
		a.Listing = &l
	}
	return &a
}

// CreateAsset inserts a new asset and allocates its id
func (s *memoryStore) CreateAsset(ctx context.Context, input CreateAssetInput) (*schema.Asset, error) {
	var created schema.Asset
	err := s.write(func(st *memoryState) error {
		created = schema.Asset{
			ID:          s.ids.assetID.Add(1),
			ContentRef:  input.ContentRef,
			Creator:     input.Creator,
			Owner:       input.Creator,
			RoyaltyRate: input.RoyaltyRate,
			CreatedAt:   input.CreatedAt,
			UpdatedAt:   input.CreatedAt,
		}
		st.assets[created.ID] = created
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &created, nil
}

// DeleteAsset removes an asset; the id is not handed out again
func (s *memoryStore) DeleteAsset(ctx context.Context, id uint64) error {
	return s.write(func(st *memoryState) error {
		if _, ok := st.listings[id]; ok {
			return fmt.Errorf("failed to delete asset: asset %d is listed", id)
		}
		if len(st.records[id]) > 0 {
			return fmt.Errorf("failed to delete asset: asset %d has sale records", id)
		}
		delete(st.assets, id)
		return nil
	})
}

// GetAssetByID retrieves an asset with its listing (if any)
func (s *memoryStore) GetAssetByID(ctx context.Context, id uint64) (*schema.Asset, error) {
	var asset *schema.Asset
	s.read(func(st *memoryState) {
		if a, ok := st.assets[id]; ok {
			asset = withListing(a, st)
		}
	})
	return asset, nil
}

// GetAssets retrieves all assets with their listings, ordered by id
func (s *memoryStore) GetAssets(ctx context.Context) ([]*schema.Asset, error) {
	var assets []*schema.Asset
	s.read(func(st *memoryState) {
		assets = make([]*schema.Asset, 0, len(st.assets))
		for _, a := range st.assets {
			assets = append(assets, withListing(a, st))
		}
	})
	sort.Slice(assets, func(i, j int) bool { return assets[i].ID < assets[j].ID })
	return assets, nil
}

// CountAssetsByOwner counts the assets currently owned by an identity
func (s *memoryStore) CountAssetsByOwner(ctx context.Context, owner string) (uint64, error) {
	var count uint64
	s.read(func(st *memoryState) {
		for _, a := range st.assets {
			if a.Owner == owner {
				count++
			}
		}
	})
	return count, nil
}

// UpdateAssetOwner overwrites the owner of an asset
func (s *memoryStore) UpdateAssetOwner(ctx context.Context, id uint64, owner string, updatedAt time.Time) error {
	return s.write(func(st *memoryState) error {
		a, ok := st.assets[id]
		if !ok {
			return fmt.Errorf("failed to update asset owner: asset %d not found", id)
		}
		a.Owner = owner
		a.UpdatedAt = updatedAt
		st.assets[id] = a
		return nil
	})
}

// GetListing retrieves the listing of an asset
func (s *memoryStore) GetListing(ctx context.Context, assetID uint64) (*schema.Listing, error) {
	var listing *schema.Listing
	s.read(func(st *memoryState) {
		if l, ok := st.listings[assetID]; ok {
			listing = &l
		}
	})
	return listing, nil
}

// SaveListing creates or replaces the listing of an asset
func (s *memoryStore) SaveListing(ctx context.Context, listing *schema.Listing) error {
	return s.write(func(st *memoryState) error {
		if _, ok := st.assets[listing.AssetID]; !ok {
			return fmt.Errorf("failed to save listing: asset %d not found", listing.AssetID)
		}
		st.listings[listing.AssetID] = *listing
		return nil
	})
}

// DeleteListing removes the listing of an asset
func (s *memoryStore) DeleteListing(ctx context.Context, assetID uint64) error {
	return s.write(func(st *memoryState) error {
		delete(st.listings, assetID)
		return nil
	})
}

// GetLastSaleSequence returns the highest sale sequence of an asset, 0 if never sold
func (s *memoryStore) GetLastSaleSequence(ctx context.Context, assetID uint64) (uint64, error) {
	var seq uint64
	s.read(func(st *memoryState) {
		if rs := st.records[assetID]; len(rs) > 0 {
			seq = rs[len(rs)-1].Sequence
		}
	})
	return seq, nil
}

// CreateSaleRecord appends a sale record
func (s *memoryStore) CreateSaleRecord(ctx context.Context, input CreateSaleRecordInput) (*schema.SaleRecord, error) {
	var created schema.SaleRecord
	err := s.write(func(st *memoryState) error {
		if _, ok := st.assets[input.AssetID]; !ok {
			return fmt.Errorf("failed to create sale record: asset %d not found", input.AssetID)
		}
		rs := st.records[input.AssetID]
		if len(rs) > 0 && rs[len(rs)-1].Sequence >= input.Sequence {
			return fmt.Errorf("failed to create sale record: sequence %d is not after %d", input.Sequence, rs[len(rs)-1].Sequence)
		}
		created = schema.SaleRecord{
			ID:               s.ids.recordID.Add(1),
			AssetID:          input.AssetID,
			Sequence:         input.Sequence,
			Seller:           input.Seller,
			Buyer:            input.Buyer,
			Price:            input.Price,
			Royalty:          input.Royalty,
			SellerProceeds:   input.SellerProceeds,
			RoyaltyRecipient: input.RoyaltyRecipient,
			Receipt:          input.Receipt,
			Body:             append([]byte(nil), input.Body...),
			Timestamp:        input.Timestamp,
		}
		st.records[input.AssetID] = append(rs, created)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &created, nil
}

// DeleteSaleRecord removes a sale record
func (s *memoryStore) DeleteSaleRecord(ctx context.Context, assetID uint64, sequence uint64) error {
	return s.write(func(st *memoryState) error {
		rs := st.records[assetID]
		for i := range rs {
			if rs[i].Sequence == sequence {
				st.records[assetID] = append(rs[:i:i], rs[i+1:]...)
				return nil
			}
		}
		return nil
	})
}

// GetSaleRecords retrieves the sale records of an asset ordered by sequence
func (s *memoryStore) GetSaleRecords(ctx context.Context, assetID uint64) ([]*schema.SaleRecord, error) {
	var records []*schema.SaleRecord
	s.read(func(st *memoryState) {
		rs := st.records[assetID]
		records = make([]*schema.SaleRecord, 0, len(rs))
		for i := range rs {
			r := rs[i]
			records = append(records, &r)
		}
	})
	return records, nil
}

// Transaction runs fn against a private copy of the tables and swaps it in on success
func (s *memoryStore) Transaction(ctx context.Context, fn func(tx Store) error) error {
	if !s.inTx {
		s.mu.Lock()
		defer s.mu.Unlock()
	}

	staged := s.state.clone()
	tx := &memoryStore{
		mu:    s.mu,
		state: staged,
		ids:   s.ids,
		inTx:  true,
	}
	if err := fn(tx); err != nil {
		return err
	}

	*s.state = *staged
	return nil
}
