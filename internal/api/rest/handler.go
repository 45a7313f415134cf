package rest

import (
	"net/http"

	"github.com/ethereum/go-ethereum/common"
	"github.com/gin-gonic/gin"

	"github.com/feral-file/ff-marketplace/internal/api/middleware"
	"github.com/feral-file/ff-marketplace/internal/api/shared/dto"
	"github.com/feral-file/ff-marketplace/internal/api/shared/executor"
	"github.com/feral-file/ff-marketplace/internal/domain"
)

// Handler defines the interface for REST API handlers
// This interface allows for easy mocking and testing
type Handler interface {
	// GetAsset retrieves a single asset
	// GET /api/v1/assets/:id
	GetAsset(c *gin.Context)

	// ListAssets retrieves assets in id order
	// GET /api/v1/assets?owner=<address>&for_sale=<bool>&limit=<limit>&offset=<offset>
	ListAssets(c *gin.Context)

	// GetSaleHistory retrieves the sale history of an asset
	// GET /api/v1/assets/:id/history?limit=<limit>&offset=<offset>&order=<asc|desc>
	GetSaleHistory(c *gin.Context)

	// GetBalance counts the assets an identity owns
	// GET /api/v1/accounts/:address/balance
	GetBalance(c *gin.Context)

	// GetMarketplaceInfo returns the listing fee and royalty scale
	// GET /api/v1/marketplace
	GetMarketplaceInfo(c *gin.Context)

	// MintAsset mints an asset owned and created by the caller (requires authentication)
	// POST /api/v1/assets
	MintAsset(c *gin.Context)

	// ListAsset places the caller's asset into custody for sale (requires authentication)
	// POST /api/v1/assets/:id/listing
	ListAsset(c *gin.Context)

	// CancelListing withdraws the caller's listing (requires authentication)
	// DELETE /api/v1/assets/:id/listing
	CancelListing(c *gin.Context)

	// PurchaseAsset buys a listed asset for the caller (requires authentication)
	// POST /api/v1/assets/:id/purchase
	PurchaseAsset(c *gin.Context)

	// HealthCheck returns the health status of the API
	// GET /health
	HealthCheck(c *gin.Context)
}

// handler implements the Handler interface
type handler struct {
	executor executor.Executor
}

// NewHandler creates a new REST API handler using the shared executor
func NewHandler(exec executor.Executor) Handler {
	return &handler{
		executor: exec,
	}
}

// GetAsset retrieves a single asset by id
func (h *handler) GetAsset(c *gin.Context) {
	id, ok := assetIDParam(c)
	if !ok {
		return
	}

	asset, err := h.executor.GetAsset(c.Request.Context(), id)
	if err != nil {
		respondError(c, err, "Failed to get asset")
		return
	}

	c.JSON(http.StatusOK, asset)
}

// ListAssets retrieves assets with optional filters
func (h *handler) ListAssets(c *gin.Context) {
	// Parse query parameters
	queryParams, err := ParseListAssetsQuery(c)
	if err != nil {
		respondValidationError(c, err.Error())
		return
	}

	owner, forSale, err := queryParams.Filters()
	if err != nil {
		respondValidationError(c, err.Error())
		return
	}

	response, err := h.executor.ListAssets(c.Request.Context(), owner, forSale, queryParams.Limit, queryParams.Offset)
	if err != nil {
		respondError(c, err, "Failed to list assets")
		return
	}

	c.JSON(http.StatusOK, response)
}

// GetSaleHistory retrieves the sale history of an asset
func (h *handler) GetSaleHistory(c *gin.Context) {
	id, ok := assetIDParam(c)
	if !ok {
		return
	}

	queryParams, err := ParseSaleHistoryQuery(c)
	if err != nil {
		respondValidationError(c, err.Error())
		return
	}

	response, err := h.executor.GetSaleHistory(c.Request.Context(), id, queryParams.Limit, queryParams.Offset, queryParams.Order)
	if err != nil {
		respondError(c, err, "Failed to get sale history")
		return
	}

	c.JSON(http.StatusOK, response)
}

// GetBalance counts the assets an identity owns
func (h *handler) GetBalance(c *gin.Context) {
	address, err := domain.ParseAddress(c.Param("address"))
	if err != nil {
		respondBadRequest(c, "Invalid address", err.Error())
		return
	}

	response, err := h.executor.GetBalance(c.Request.Context(), address)
	if err != nil {
		respondError(c, err, "Failed to get balance")
		return
	}

	c.JSON(http.StatusOK, response)
}

// GetMarketplaceInfo returns marketplace-wide parameters
func (h *handler) GetMarketplaceInfo(c *gin.Context) {
	c.JSON(http.StatusOK, h.executor.GetMarketplaceInfo(c.Request.Context()))
}

// MintAsset mints an asset for the authenticated caller
func (h *handler) MintAsset(c *gin.Context) {
	caller, ok := callerFromContext(c)
	if !ok {
		return
	}

	var req dto.MintRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "Invalid request body", err.Error())
		return
	}

	asset, err := h.executor.Mint(c.Request.Context(), caller, &req)
	if err != nil {
		respondError(c, err, "Failed to mint asset")
		return
	}

	c.JSON(http.StatusCreated, asset)
}

// ListAsset lists the caller's asset for sale
func (h *handler) ListAsset(c *gin.Context) {
	caller, ok := callerFromContext(c)
	if !ok {
		return
	}

	id, ok := assetIDParam(c)
	if !ok {
		return
	}

	var req dto.ListRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "Invalid request body", err.Error())
		return
	}

	asset, err := h.executor.List(c.Request.Context(), caller, id, &req)
	if err != nil {
		respondError(c, err, "Failed to list asset")
		return
	}

	c.JSON(http.StatusOK, asset)
}

// CancelListing withdraws the caller's listing
func (h *handler) CancelListing(c *gin.Context) {
	caller, ok := callerFromContext(c)
	if !ok {
		return
	}

	id, ok := assetIDParam(c)
	if !ok {
		return
	}

	asset, err := h.executor.Cancel(c.Request.Context(), caller, id)
	if err != nil {
		respondError(c, err, "Failed to cancel listing")
		return
	}

	c.JSON(http.StatusOK, asset)
}

// PurchaseAsset buys a listed asset for the authenticated caller
func (h *handler) PurchaseAsset(c *gin.Context) {
	caller, ok := callerFromContext(c)
	if !ok {
		return
	}

	id, ok := assetIDParam(c)
	if !ok {
		return
	}

	var req dto.PurchaseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "Invalid request body", err.Error())
		return
	}

	record, err := h.executor.Purchase(c.Request.Context(), caller, id, &req)
	if err != nil {
		respondError(c, err, "Failed to purchase asset")
		return
	}

	c.JSON(http.StatusOK, record)
}

// HealthCheck returns the health status of the API
func (h *handler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"service": "ff-marketplace-api",
	})
}

func assetIDParam(c *gin.Context) (domain.AssetID, bool) {
	id, err := domain.ParseAssetID(c.Param("id"))
	if err != nil {
		respondBadRequest(c, "Invalid asset id", err.Error())
		return 0, false
	}
	return id, true
}

func callerFromContext(c *gin.Context) (common.Address, bool) {
	caller, ok := middleware.CallerFromContext(c)
	if !ok {
		respondUnauthorized(c, "Caller identity is required")
		return common.Address{}, false
	}
	return caller, true
}
