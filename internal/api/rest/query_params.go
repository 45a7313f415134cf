package rest

import (
	"fmt"
	"strconv"

	"github.com/ethereum/go-ethereum/common"
	"github.com/gin-gonic/gin"

	"github.com/feral-file/ff-marketplace/internal/api/shared/constants"
	"github.com/feral-file/ff-marketplace/internal/api/shared/types"
	"github.com/feral-file/ff-marketplace/internal/domain"
)

// ListAssetsQueryParams holds query parameters for GET /assets
type ListAssetsQueryParams struct {
	// Filters
	Owner   string `form:"owner"`
	ForSale string `form:"for_sale"`

	// Pagination
	Limit  int `form:"limit,default=20"`
	Offset int `form:"offset,default=0"`
}

// Filters returns the parsed owner and for-sale filters; nil means unfiltered
func (p *ListAssetsQueryParams) Filters() (*common.Address, *bool, error) {
	var owner *common.Address
	if p.Owner != "" {
		addr, err := domain.ParseAddress(p.Owner)
		if err != nil {
			return nil, nil, fmt.Errorf("owner: %w", err)
		}
		owner = &addr
	}

	var forSale *bool
	if p.ForSale != "" {
		v, err := strconv.ParseBool(p.ForSale)
		if err != nil {
			return nil, nil, fmt.Errorf("for_sale must be a boolean")
		}
		forSale = &v
	}

	return owner, forSale, nil
}

// SaleHistoryQueryParams holds query parameters for GET /assets/:id/history
type SaleHistoryQueryParams struct {
	Limit  int         `form:"limit,default=20"`
	Offset int         `form:"offset,default=0"`
	Order  types.Order `form:"order,default=asc"`
}

// ParseListAssetsQuery parses query parameters for GET /assets
func ParseListAssetsQuery(c *gin.Context) (*ListAssetsQueryParams, error) {
	var params ListAssetsQueryParams
	if err := c.ShouldBindQuery(&params); err != nil {
		return nil, err
	}

	params.Limit = capLimit(params.Limit, constants.DEFAULT_ASSETS_LIMIT)
	if params.Offset < 0 {
		params.Offset = constants.DEFAULT_OFFSET
	}

	return &params, nil
}

// ParseSaleHistoryQuery parses query parameters for GET /assets/:id/history
func ParseSaleHistoryQuery(c *gin.Context) (*SaleHistoryQueryParams, error) {
	var params SaleHistoryQueryParams
	if err := c.ShouldBindQuery(&params); err != nil {
		return nil, err
	}

	params.Limit = capLimit(params.Limit, constants.DEFAULT_HISTORY_LIMIT)
	if params.Offset < 0 {
		params.Offset = constants.DEFAULT_OFFSET
	}

	// Validate order
	if !params.Order.Valid() {
		params.Order = constants.DEFAULT_HISTORY_ORDER
	}

	return &params, nil
}

func capLimit(limit, fallback int) int {
	if limit <= 0 {
		return fallback
	}
	if limit > constants.MAX_PAGE_SIZE {
		return constants.MAX_PAGE_SIZE
	}
	return limit
}
