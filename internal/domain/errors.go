package domain

import "errors"

var (
	// ErrUnknownAsset is returned when an asset id was never minted
	ErrUnknownAsset = errors.New("unknown asset")

	// ErrUnauthorized is returned when the caller is not the party required by the operation
	ErrUnauthorized = errors.New("unauthorized")

	// ErrAlreadyListed is returned when listing an asset that is already for sale
	ErrAlreadyListed = errors.New("asset already listed")

	// ErrNotListed is returned when buying or cancelling an asset that is not for sale
	ErrNotListed = errors.New("asset not listed")

	// ErrInvalidPrice is returned when an ask price is not positive
	ErrInvalidPrice = errors.New("invalid price")

	// ErrInvalidRoyalty is returned when a royalty rate is outside [0, 1)
	ErrInvalidRoyalty = errors.New("invalid royalty rate")

	// ErrPaymentMismatch is returned when a paid fee or price differs from the required amount
	ErrPaymentMismatch = errors.New("payment mismatch")

	// ErrReentrancyViolation is returned when a nested call mutates an asset that an outer,
	// not yet committed call is still mutating
	ErrReentrancyViolation = errors.New("reentrancy violation")

	// ErrSettlementFailed is returned when a fund transfer could not complete
	ErrSettlementFailed = errors.New("settlement failed")
)
