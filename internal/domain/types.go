package domain

import (
	"fmt"
	"math/big"
	"strconv"
	"time"

	"github.com/ethereum/go-ethereum/common"
)

// AssetID is the marketplace-wide identifier of an asset, allocated at mint and never reused
type AssetID uint64

// String returns the decimal representation of the asset id
func (id AssetID) String() string {
	return strconv.FormatUint(uint64(id), 10)
}

// ParseAssetID parses a decimal asset id
func ParseAssetID(s string) (AssetID, error) {
	id, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid asset id %q: %w", s, err)
	}
	if id == 0 {
		return 0, fmt.Errorf("invalid asset id %q: must be positive", s)
	}
	return AssetID(id), nil
}

// RoyaltyRate is a fixed-point fraction expressed in basis points (rate / 10000)
type RoyaltyRate uint32

// Valid reports whether the rate lies in [0, 1)
func (r RoyaltyRate) Valid() bool {
	return r < RoyaltyRateDenominator
}

// Apply returns floor(price * rate). The result is never larger than price.
func (r RoyaltyRate) Apply(price *big.Int) *big.Int {
	if price == nil || price.Sign() <= 0 || r == 0 {
		return new(big.Int)
	}
	royalty := new(big.Int).Mul(price, big.NewInt(int64(r)))
	return royalty.Quo(royalty, big.NewInt(RoyaltyRateDenominator))
}

// String renders the rate as a percentage, e.g. "2.5%"
func (r RoyaltyRate) String() string {
	return strconv.FormatFloat(float64(r)/100, 'f', -1, 64) + "%"
}

// Asset is a point-in-time snapshot of an asset
type Asset struct {
	ID          AssetID
	ContentRef  string
	Creator     common.Address
	Owner       common.Address
	RoyaltyRate RoyaltyRate
	ForSale     bool
	// Price is the current ask, only meaningful while ForSale
	Price *big.Int
	// Seller is the pending counterparty, only meaningful while ForSale
	Seller    common.Address
	CreatedAt time.Time
}

// SaleRecord is an immutable entry of an asset's sale history
type SaleRecord struct {
	AssetID          AssetID
	Sequence         uint64
	Seller           common.Address
	Buyer            common.Address
	Price            *big.Int
	Royalty          *big.Int
	SellerProceeds   *big.Int
	RoyaltyRecipient common.Address
	Timestamp        time.Time
	// Receipt is the keccak256 digest of the record's canonical JSON body
	Receipt common.Hash
}

// Balanced reports whether royalty and seller proceeds add up to the sale price
func (r *SaleRecord) Balanced() bool {
	if r.Price == nil || r.Royalty == nil || r.SellerProceeds == nil {
		return false
	}
	sum := new(big.Int).Add(r.Royalty, r.SellerProceeds)
	return sum.Cmp(r.Price) == 0
}

// IsAddress checks if a string is a valid hex identity
func IsAddress(s string) bool {
	return common.IsHexAddress(s)
}

// ParseAddress parses a hex identity and rejects the zero address
func ParseAddress(s string) (common.Address, error) {
	if !common.IsHexAddress(s) {
		return common.Address{}, fmt.Errorf("invalid address %q", s)
	}
	addr := common.HexToAddress(s)
	if addr == (common.Address{}) {
		return common.Address{}, fmt.Errorf("invalid address %q: zero address", s)
	}
	return addr, nil
}

// ParseAmount parses a non-negative decimal amount in the smallest settlement unit
func ParseAmount(s string) (*big.Int, error) {
	amount, ok := new(big.Int).SetString(s, 10)
	if !ok {
		return nil, fmt.Errorf("invalid amount %q", s)
	}
	if amount.Sign() < 0 {
		return nil, fmt.Errorf("invalid amount %q: negative", s)
	}
	return amount, nil
}

// MustParseAmount is ParseAmount for constants; it panics on malformed input
func MustParseAmount(s string) *big.Int {
	amount, err := ParseAmount(s)
	if err != nil {
		panic(err)
	}
	return amount
}

// AmountEqual compares two amounts, treating nil as zero
func AmountEqual(a, b *big.Int) bool {
	if a == nil {
		a = new(big.Int)
	}
	if b == nil {
		b = new(big.Int)
	}
	return a.Cmp(b) == 0
}

// Listing is the escrow side record of a for-sale asset
type Listing struct {
	AssetID AssetID
	// Seller is the owner that placed the asset into custody
	Seller   common.Address
	Price    *big.Int
	FeePaid  *big.Int
	ListedAt time.Time
}
