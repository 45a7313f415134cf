package domain

const (
	// RoyaltyRateDenominator is the fixed-point scale of RoyaltyRate (basis points)
	RoyaltyRateDenominator = 10_000

	// DEFAULT_LISTING_FEE_WEI is 0.01 of the settlement unit
	DEFAULT_LISTING_FEE_WEI = "10000000000000000"

	// ETHEREUM_ZERO_ADDRESS is the zero identity
	ETHEREUM_ZERO_ADDRESS = "0x0000000000000000000000000000000000000000"
)
