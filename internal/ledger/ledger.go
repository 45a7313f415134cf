package ledger

import (
	"context"
	"fmt"
	"time"

	"github.com/ethereum/go-ethereum/crypto"

	"github.com/feral-file/ff-marketplace/internal/adapter"
	"github.com/feral-file/ff-marketplace/internal/domain"
	"github.com/feral-file/ff-marketplace/internal/store"
	"github.com/feral-file/ff-marketplace/internal/types"
)

// Ledger is the append-only sale history of every asset
type Ledger interface {
	// Append assigns the next sequence number of the asset, seals the record with its receipt
	// and stores it. Only the sale engine appends, inside its store transaction.
	Append(ctx context.Context, record domain.SaleRecord) (*domain.SaleRecord, error)
	// Revert removes the latest record of an asset when the sale that produced it could not settle
	Revert(ctx context.Context, id domain.AssetID, sequence uint64) error

	// HistoryOf returns the sale records of an asset, oldest first
	HistoryOf(ctx context.Context, id domain.AssetID) ([]*domain.SaleRecord, error)
	// AllAssets returns a snapshot of every asset in id order
	AllAssets(ctx context.Context) ([]*domain.Asset, error)

	// WithStore returns a ledger bound to tx
	WithStore(tx store.Store) Ledger
}

// receiptBody is the canonical form a receipt digest is computed over
type receiptBody struct {
	AssetID          uint64 `json:"asset_id"`
	Sequence         uint64 `json:"sequence"`
	Seller           string `json:"seller"`
	Buyer            string `json:"buyer"`
	Price            string `json:"price"`
	Royalty          string `json:"royalty"`
	SellerProceeds   string `json:"seller_proceeds"`
	RoyaltyRecipient string `json:"royalty_recipient"`
	Timestamp        string `json:"timestamp"`
}

type ledger struct {
	store store.Store
	json  adapter.JSON
	jcs   adapter.JCS
}

// NewLedger creates a new sale history ledger
func NewLedger(st store.Store, jsonAdapter adapter.JSON, jcsAdapter adapter.JCS) Ledger {
	return &ledger{
		store: st,
		json:  jsonAdapter,
		jcs:   jcsAdapter,
	}
}

func (l *ledger) WithStore(tx store.Store) Ledger {
	return &ledger{
		store: tx,
		json:  l.json,
		jcs:   l.jcs,
	}
}

func (l *ledger) Append(ctx context.Context, record domain.SaleRecord) (*domain.SaleRecord, error) {
	if !record.Balanced() {
		return nil, fmt.Errorf("sale record of asset %s does not balance: royalty %s + proceeds %s != price %s",
			record.AssetID, types.AmountString(record.Royalty), types.AmountString(record.SellerProceeds), types.AmountString(record.Price))
	}

	last, err := l.store.GetLastSaleSequence(ctx, uint64(record.AssetID))
	if err != nil {
		return nil, fmt.Errorf("failed to get last sale sequence: %w", err)
	}
	record.Sequence = last + 1
	// timestamptz keeps microseconds; truncate so a stored record verifies against its receipt
	record.Timestamp = record.Timestamp.UTC().Truncate(time.Microsecond)

	body, err := l.canonicalBody(&record)
	if err != nil {
		return nil, err
	}
	record.Receipt = crypto.Keccak256Hash(body)

	_, err = l.store.CreateSaleRecord(ctx, store.CreateSaleRecordInput{
		AssetID:          uint64(record.AssetID),
		Sequence:         record.Sequence,
		Seller:           types.AddressString(record.Seller),
		Buyer:            types.AddressString(record.Buyer),
		Price:            types.AmountString(record.Price),
		Royalty:          types.AmountString(record.Royalty),
		SellerProceeds:   types.AmountString(record.SellerProceeds),
		RoyaltyRecipient: types.AddressString(record.RoyaltyRecipient),
		Receipt:          record.Receipt.Hex(),
		Body:             body,
		Timestamp:        record.Timestamp,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create sale record: %w", err)
	}

	return &record, nil
}

// canonicalBody renders the RFC 8785 canonical JSON of a record
func (l *ledger) canonicalBody(record *domain.SaleRecord) ([]byte, error) {
	raw, err := l.json.Marshal(receiptBody{
		AssetID:          uint64(record.AssetID),
		Sequence:         record.Sequence,
		Seller:           types.AddressString(record.Seller),
		Buyer:            types.AddressString(record.Buyer),
		Price:            types.AmountString(record.Price),
		Royalty:          types.AmountString(record.Royalty),
		SellerProceeds:   types.AmountString(record.SellerProceeds),
		RoyaltyRecipient: types.AddressString(record.RoyaltyRecipient),
		Timestamp:        record.Timestamp.UTC().Format(time.RFC3339Nano),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal receipt body: %w", err)
	}

	canonical, err := l.jcs.Transform(raw)
	if err != nil {
		return nil, fmt.Errorf("failed to canonicalize receipt body: %w", err)
	}
	return canonical, nil
}

func (l *ledger) Revert(ctx context.Context, id domain.AssetID, sequence uint64) error {
	last, err := l.store.GetLastSaleSequence(ctx, uint64(id))
	if err != nil {
		return fmt.Errorf("failed to get last sale sequence: %w", err)
	}
	if last != sequence {
		return fmt.Errorf("cannot revert sale %d of asset %s: latest is %d", sequence, id, last)
	}
	if err := l.store.DeleteSaleRecord(ctx, uint64(id), sequence); err != nil {
		return fmt.Errorf("failed to delete sale record: %w", err)
	}
	return nil
}

func (l *ledger) HistoryOf(ctx context.Context, id domain.AssetID) ([]*domain.SaleRecord, error) {
	asset, err := l.store.GetAssetByID(ctx, uint64(id))
	if err != nil {
		return nil, fmt.Errorf("failed to get asset %s: %w", id, err)
	}
	if asset == nil {
		return nil, fmt.Errorf("asset %s: %w", id, domain.ErrUnknownAsset)
	}

	rows, err := l.store.GetSaleRecords(ctx, uint64(id))
	if err != nil {
		return nil, fmt.Errorf("failed to get sale records: %w", err)
	}

	history := make([]*domain.SaleRecord, 0, len(rows))
	for _, row := range rows {
		history = append(history, types.SaleRecordFromSchema(row))
	}
	return history, nil
}

func (l *ledger) AllAssets(ctx context.Context) ([]*domain.Asset, error) {
	rows, err := l.store.GetAssets(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get assets: %w", err)
	}

	assets := make([]*domain.Asset, 0, len(rows))
	for _, row := range rows {
		assets = append(assets, types.AssetFromSchema(row))
	}
	return assets, nil
}

// VerifyReceipt recomputes the digest of a stored record
func VerifyReceipt(record *domain.SaleRecord, jsonAdapter adapter.JSON, jcsAdapter adapter.JCS) (bool, error) {
	l := &ledger{json: jsonAdapter, jcs: jcsAdapter}
	body, err := l.canonicalBody(record)
	if err != nil {
		return false, err
	}
	return crypto.Keccak256Hash(body) == record.Receipt, nil
}
