package handler

import (
	warehouseapp "github.com/NehaS05/NYRApi-sub000/internal/application/warehouse"
	"github.com/NehaS05/NYRApi-sub000/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
)

// WarehouseStockHandler handles /warehouse-stock endpoints
type WarehouseStockHandler struct {
	BaseHandler
	stockService *warehouseapp.StockService
}

// NewWarehouseStockHandler creates a new WarehouseStockHandler
func NewWarehouseStockHandler(stockService *warehouseapp.StockService) *WarehouseStockHandler {
	return &WarehouseStockHandler{stockService: stockService}
}

// Receive handles POST /warehouse-stock. Receiving into an existing
// (warehouse, product, variant) key adds to its quantity.
func (h *WarehouseStockHandler) Receive(c *gin.Context) {
	tenantID, ok := h.tenantID(c)
	if !ok {
		return
	}

	var req warehouseapp.ReceiveStockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.ValidationError(c, err)
		return
	}

	stock, err := h.stockService.ReceiveStock(c.Request.Context(), tenantID, middleware.GetUserID(c), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, stock)
}

// List handles GET /warehouse-stock?warehouseId=
func (h *WarehouseStockHandler) List(c *gin.Context) {
	tenantID, ok := h.tenantID(c)
	if !ok {
		return
	}

	var filter warehouseapp.StockListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.ValidationError(c, err)
		return
	}
	if filter.WarehouseID, ok = h.requiredQueryID(c, "warehouseId"); !ok {
		return
	}

	stock, total, err := h.stockService.ListStock(c.Request.Context(), tenantID, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, stock, total, filter.Page, filter.PageSize)
}

// GetByID handles GET /warehouse-stock/:id
func (h *WarehouseStockHandler) GetByID(c *gin.Context) {
	tenantID, ok := h.tenantID(c)
	if !ok {
		return
	}
	id, ok := h.pathID(c, "id")
	if !ok {
		return
	}

	stock, err := h.stockService.GetStock(c.Request.Context(), tenantID, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, stock)
}

// Deactivate handles POST /warehouse-stock/:id/deactivate
func (h *WarehouseStockHandler) Deactivate(c *gin.Context) {
	tenantID, ok := h.tenantID(c)
	if !ok {
		return
	}
	id, ok := h.pathID(c, "id")
	if !ok {
		return
	}

	stock, err := h.stockService.DeactivateStock(c.Request.Context(), tenantID, id, middleware.GetUserID(c))
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, stock)
}

// VanTransferHandler handles /van-inventory endpoints
type VanTransferHandler struct {
	BaseHandler
	transferService *warehouseapp.VanTransferService
}

// NewVanTransferHandler creates a new VanTransferHandler
func NewVanTransferHandler(transferService *warehouseapp.VanTransferService) *VanTransferHandler {
	return &VanTransferHandler{transferService: transferService}
}

// Create handles POST /van-inventory. Any failing line rejects the whole
// batch with 400 and leaves warehouse stock untouched.
func (h *VanTransferHandler) Create(c *gin.Context) {
	tenantID, ok := h.tenantID(c)
	if !ok {
		return
	}

	var req warehouseapp.CreateTransferRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.ValidationError(c, err)
		return
	}

	transfer, err := h.transferService.CreateTransfer(c.Request.Context(), tenantID, middleware.GetUserID(c), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, transfer)
}

// List handles GET /van-inventory
func (h *VanTransferHandler) List(c *gin.Context) {
	tenantID, ok := h.tenantID(c)
	if !ok {
		return
	}

	var filter warehouseapp.TransferListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.ValidationError(c, err)
		return
	}
	if filter.VanID, ok = h.queryID(c, "vanId"); !ok {
		return
	}

	transfers, total, err := h.transferService.ListTransfers(c.Request.Context(), tenantID, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, transfers, total, filter.Page, filter.PageSize)
}

// GetByID handles GET /van-inventory/:id
func (h *VanTransferHandler) GetByID(c *gin.Context) {
	tenantID, ok := h.tenantID(c)
	if !ok {
		return
	}
	id, ok := h.pathID(c, "id")
	if !ok {
		return
	}

	transfer, err := h.transferService.GetTransfer(c.Request.Context(), tenantID, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, transfer)
}

// UpdateStatus handles PUT /van-inventory/:id/status
func (h *VanTransferHandler) UpdateStatus(c *gin.Context) {
	tenantID, ok := h.tenantID(c)
	if !ok {
		return
	}
	id, ok := h.pathID(c, "id")
	if !ok {
		return
	}

	var req warehouseapp.UpdateTransferStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.ValidationError(c, err)
		return
	}

	transfer, err := h.transferService.UpdateTransferStatus(c.Request.Context(), tenantID, id, middleware.GetUserID(c), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, transfer)
}

// InTransit handles GET /van-inventory/vans/:vanId/in-transit
func (h *VanTransferHandler) InTransit(c *gin.Context) {
	tenantID, ok := h.tenantID(c)
	if !ok {
		return
	}
	vanID, ok := h.pathID(c, "vanId")
	if !ok {
		return
	}

	items, err := h.transferService.InTransitForVan(c.Request.Context(), tenantID, vanID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, items)
}
