package domain

import "time"

// EventType represents the type of marketplace event
type EventType string

const (
	EventTypeMinted   EventType = "asset.minted"
	EventTypeListed   EventType = "asset.listed"
	EventTypeUnlisted EventType = "asset.unlisted"
	EventTypeSold     EventType = "asset.sold"
)

// MarketEvent is the normalized notification published after a committed state change
type MarketEvent struct {
	ID        string    `json:"id"`                  // ULID
	Type      EventType `json:"type"`                // asset.minted, asset.listed, ...
	AssetID   AssetID   `json:"asset_id"`            // subject asset
	Actor     string    `json:"actor"`               // caller that triggered the change
	Owner     string    `json:"owner"`               // owner after the change
	Price     string    `json:"price,omitempty"`     // ask or sale price in wei
	Royalty   string    `json:"royalty,omitempty"`   // royalty paid (sold only)
	Sequence  uint64    `json:"sequence,omitempty"`  // sale sequence (sold only)
	Receipt   string    `json:"receipt,omitempty"`   // sale receipt digest (sold only)
	Timestamp time.Time `json:"timestamp"`
}
