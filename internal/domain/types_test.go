package domain

import (
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseAssetID(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected AssetID
		wantErr  bool
	}{
		{name: "first asset", input: "1", expected: 1},
		{name: "large id", input: "18446744073709551615", expected: AssetID(^uint64(0))},
		{name: "zero is never allocated", input: "0", wantErr: true},
		{name: "negative", input: "-1", wantErr: true},
		{name: "not a number", input: "abc", wantErr: true},
		{name: "empty", input: "", wantErr: true},
		{name: "overflow", input: "18446744073709551616", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id, err := ParseAssetID(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, id)
			assert.Equal(t, tt.input, id.String())
		})
	}
}

func TestRoyaltyRate_Valid(t *testing.T) {
	assert.True(t, RoyaltyRate(0).Valid())
	assert.True(t, RoyaltyRate(9999).Valid())
	assert.False(t, RoyaltyRate(10000).Valid())
	assert.False(t, RoyaltyRate(^uint32(0)).Valid())
}

func TestRoyaltyRate_Apply(t *testing.T) {
	tests := []struct {
		name     string
		rate     RoyaltyRate
		price    *big.Int
		expected *big.Int
	}{
		{name: "ten percent", rate: 1000, price: big.NewInt(1000), expected: big.NewInt(100)},
		{name: "thirty percent", rate: 3000, price: big.NewInt(1000), expected: big.NewInt(300)},
		{name: "zero rate", rate: 0, price: big.NewInt(1000), expected: big.NewInt(0)},
		{name: "floor truncation", rate: 1000, price: big.NewInt(999), expected: big.NewInt(99)},
		{name: "tiny price rounds to zero", rate: 9999, price: big.NewInt(1), expected: big.NewInt(0)},
		{name: "highest rate", rate: 9999, price: big.NewInt(10000), expected: big.NewInt(9999)},
		{name: "nil price", rate: 1000, price: nil, expected: big.NewInt(0)},
		{name: "negative price", rate: 1000, price: big.NewInt(-5), expected: big.NewInt(0)},
		{
			name:     "beyond 64 bits",
			rate:     250,
			price:    MustParseAmount("100000000000000000000000000000"),
			expected: MustParseAmount("2500000000000000000000000000"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.rate.Apply(tt.price)
			assert.Equal(t, 0, tt.expected.Cmp(got), "expected %s, got %s", tt.expected, got)
			if tt.price != nil && tt.price.Sign() > 0 {
				assert.LessOrEqual(t, got.Cmp(tt.price), 0)
			}
		})
	}
}

func TestRoyaltyRate_ApplyDoesNotMutatePrice(t *testing.T) {
	price := big.NewInt(12345)
	RoyaltyRate(1000).Apply(price)
	assert.Equal(t, int64(12345), price.Int64())
}

func TestRoyaltyRate_String(t *testing.T) {
	assert.Equal(t, "10%", RoyaltyRate(1000).String())
	assert.Equal(t, "2.5%", RoyaltyRate(250).String())
	assert.Equal(t, "0%", RoyaltyRate(0).String())
	assert.Equal(t, "99.99%", RoyaltyRate(9999).String())
}

func TestSaleRecord_Balanced(t *testing.T) {
	record := &SaleRecord{Price: big.NewInt(100), Royalty: big.NewInt(10), SellerProceeds: big.NewInt(90)}
	assert.True(t, record.Balanced())

	record.SellerProceeds = big.NewInt(91)
	assert.False(t, record.Balanced())

	record.Royalty = nil
	assert.False(t, record.Balanced())
}

func TestParseAddress(t *testing.T) {
	addr, err := ParseAddress("0x1111111111111111111111111111111111111111")
	require.NoError(t, err)
	assert.Equal(t, common.HexToAddress("0x1111111111111111111111111111111111111111"), addr)

	// lower-case input parses to the same identity
	lower, err := ParseAddress("0xabcdefabcdefabcdefabcdefabcdefabcdefabcd")
	require.NoError(t, err)
	upper, err := ParseAddress("0xABCDEFABCDEFABCDEFABCDEFABCDEFABCDEFABCD")
	require.NoError(t, err)
	assert.Equal(t, lower, upper)

	_, err = ParseAddress(ETHEREUM_ZERO_ADDRESS)
	assert.Error(t, err)

	_, err = ParseAddress("0x1234")
	assert.Error(t, err)

	_, err = ParseAddress("")
	assert.Error(t, err)

	assert.True(t, IsAddress("0x1111111111111111111111111111111111111111"))
	assert.False(t, IsAddress("tz1abc"))
}

func TestParseAmount(t *testing.T) {
	amount, err := ParseAmount(DEFAULT_LISTING_FEE_WEI)
	require.NoError(t, err)
	assert.Equal(t, DEFAULT_LISTING_FEE_WEI, amount.String())

	zero, err := ParseAmount("0")
	require.NoError(t, err)
	assert.Equal(t, 0, zero.Sign())

	for _, bad := range []string{"", "-1", "1.5", "0x10", "1e18", " 1"} {
		_, err := ParseAmount(bad)
		assert.Error(t, err, bad)
	}

	assert.Panics(t, func() { MustParseAmount("nope") })
}

func TestAmountEqual(t *testing.T) {
	assert.True(t, AmountEqual(nil, nil))
	assert.True(t, AmountEqual(nil, big.NewInt(0)))
	assert.True(t, AmountEqual(big.NewInt(7), MustParseAmount("7")))
	assert.False(t, AmountEqual(big.NewInt(7), big.NewInt(8)))
	assert.False(t, AmountEqual(nil, big.NewInt(1)))
}
