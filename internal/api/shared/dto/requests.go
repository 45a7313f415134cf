package dto

import (
	"fmt"
	"math/big"
	"strings"

	"github.com/feral-file/ff-marketplace/internal/api/shared/constants"
	apierrors "github.com/feral-file/ff-marketplace/internal/api/shared/errors"
)

// MintRequest represents the request body for minting an asset.
// RoyaltyRate is expressed in basis points; its range is checked by the registry.
type MintRequest struct {
	ContentRef  string `json:"content_ref"`
	RoyaltyRate uint32 `json:"royalty_rate"`
}

// Validate validates the request body
func (r *MintRequest) Validate() error {
	r.ContentRef = strings.TrimSpace(r.ContentRef)
	if len(r.ContentRef) > constants.MAX_CONTENT_REF_LENGTH {
		return apierrors.NewValidationError(fmt.Sprintf("content_ref exceeds %d bytes", constants.MAX_CONTENT_REF_LENGTH))
	}

	return nil
}

// ListRequest represents the request body for listing an asset.
// Amounts are decimal strings in the smallest settlement unit.
type ListRequest struct {
	Price   string `json:"price"`
	FeePaid string `json:"fee_paid"`
}

// Amounts parses and validates the ask price and the paid listing fee
func (r *ListRequest) Amounts() (*big.Int, *big.Int, error) {
	price, err := parseAmount("price", r.Price)
	if err != nil {
		return nil, nil, err
	}

	feePaid, err := parseAmount("fee_paid", r.FeePaid)
	if err != nil {
		return nil, nil, err
	}

	return price, feePaid, nil
}

// PurchaseRequest represents the request body for buying a listed asset
type PurchaseRequest struct {
	Payment string `json:"payment"`
}

// Amount parses and validates the payment
func (r *PurchaseRequest) Amount() (*big.Int, error) {
	return parseAmount("payment", r.Payment)
}

func parseAmount(field, value string) (*big.Int, error) {
	if value == "" {
		return nil, apierrors.NewValidationError(fmt.Sprintf("%s is required", field))
	}

	// sign and range checks belong to the marketplace, which reports them as domain errors
	amount, ok := new(big.Int).SetString(value, 10)
	if !ok {
		return nil, apierrors.NewValidationError(fmt.Sprintf("%s: invalid amount %q", field, value))
	}

	return amount, nil
}
