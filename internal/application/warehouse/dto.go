package warehouse

import (
	"time"

	"github.com/NehaS05/NYRApi-sub000/internal/domain/ledger"
	"github.com/NehaS05/NYRApi-sub000/internal/domain/warehouse"
	"github.com/google/uuid"
)

// CreateTransferItem is one requested line of a van transfer
type CreateTransferItem struct {
	ProductID          uuid.UUID  `json:"productId" binding:"required"`
	ProductVariationID *uuid.UUID `json:"productVariationId"`
	Quantity           int64      `json:"quantity" binding:"required,gt=0"`
}

// CreateTransferRequest moves goods from a warehouse into a van
type CreateTransferRequest struct {
	VanID       uuid.UUID            `json:"vanId" binding:"required"`
	WarehouseID uuid.UUID            `json:"warehouseId" binding:"required"`
	LocationID  *uuid.UUID           `json:"locationId"`
	DriverName  string               `json:"driverName" binding:"max=200"`
	Items       []CreateTransferItem `json:"items" binding:"required,min=1,dive"`
}

// UpdateTransferStatusRequest changes the tracking status of a batch
type UpdateTransferStatusRequest struct {
	Status       string     `json:"status" binding:"required,van_transfer_status"`
	DeliveryDate *time.Time `json:"deliveryDate"`
	DriverName   *string    `json:"driverName" binding:"omitempty,max=200"`
}

// TransferListFilter filters van transfer listings
type TransferListFilter struct {
	VanID    *uuid.UUID `form:"-"`
	Page     int        `form:"page" binding:"omitempty,min=1"`
	PageSize int        `form:"pageSize" binding:"omitempty,min=1,max=100"`
}

// TransferItemResponse is one line of a van transfer
type TransferItemResponse struct {
	ID                 uuid.UUID  `json:"id"`
	ProductID          uuid.UUID  `json:"productId"`
	ProductVariationID *uuid.UUID `json:"productVariationId,omitempty"`
	Quantity           int64      `json:"quantity"`
}

// TransferResponse is a van transfer batch in API responses
type TransferResponse struct {
	ID           uuid.UUID              `json:"id"`
	VanID        uuid.UUID              `json:"vanId"`
	WarehouseID  uuid.UUID              `json:"warehouseId"`
	LocationID   *uuid.UUID             `json:"locationId,omitempty"`
	TransferDate time.Time              `json:"transferDate"`
	DeliveryDate *time.Time             `json:"deliveryDate,omitempty"`
	DriverName   string                 `json:"driverName"`
	Status       string                 `json:"status"`
	Items        []TransferItemResponse `json:"items"`
	CreatedAt    time.Time              `json:"createdAt"`
	UpdatedAt    time.Time              `json:"updatedAt"`
}

// ToTransferResponse converts a batch to its response
func ToTransferResponse(b *warehouse.VanTransferBatch) TransferResponse {
	items := make([]TransferItemResponse, 0, len(b.Items))
	for _, item := range b.Items {
		items = append(items, TransferItemResponse{
			ID:                 item.ID,
			ProductID:          item.ProductID,
			ProductVariationID: ledger.VariantPtr(item.VariantID),
			Quantity:           item.Quantity,
		})
	}
	return TransferResponse{
		ID:           b.ID,
		VanID:        b.VanID,
		WarehouseID:  b.WarehouseID,
		LocationID:   b.LocationID,
		TransferDate: b.TransferDate,
		DeliveryDate: b.DeliveryDate,
		DriverName:   b.DriverName,
		Status:       string(b.Status),
		Items:        items,
		CreatedAt:    b.CreatedAt,
		UpdatedAt:    b.UpdatedAt,
	}
}

// InTransitResponse is the van-in-transit quantity of one product variant
type InTransitResponse struct {
	ProductID          uuid.UUID  `json:"productId"`
	ProductVariationID *uuid.UUID `json:"productVariationId,omitempty"`
	Quantity           int64      `json:"quantity"`
}

// ReceiveStockRequest adds units to a warehouse
type ReceiveStockRequest struct {
	WarehouseID        uuid.UUID  `json:"warehouseId" binding:"required"`
	ProductID          uuid.UUID  `json:"productId" binding:"required"`
	ProductVariationID *uuid.UUID `json:"productVariationId"`
	Quantity           int64      `json:"quantity" binding:"required,gt=0"`
	Notes              string     `json:"notes" binding:"max=2000"`
}

// StockListFilter filters warehouse stock listings. WarehouseID is parsed from
// the query by the HTTP layer.
type StockListFilter struct {
	WarehouseID uuid.UUID `form:"-"`
	Page        int       `form:"page" binding:"omitempty,min=1"`
	PageSize    int       `form:"pageSize" binding:"omitempty,min=1,max=100"`
}

// StockResponse is a warehouse stock entry in API responses
type StockResponse struct {
	ID                 uuid.UUID  `json:"id"`
	WarehouseID        uuid.UUID  `json:"warehouseId"`
	ProductID          uuid.UUID  `json:"productId"`
	ProductVariationID *uuid.UUID `json:"productVariationId,omitempty"`
	Quantity           int64      `json:"quantity"`
	Notes              string     `json:"notes"`
	IsActive           bool       `json:"isActive"`
	UpdatedAt          time.Time  `json:"updatedAt"`
}

// ToStockResponse converts a stock entry to its response
func ToStockResponse(e *warehouse.StockEntry) StockResponse {
	return StockResponse{
		ID:                 e.ID,
		WarehouseID:        e.WarehouseID,
		ProductID:          e.ProductID,
		ProductVariationID: ledger.VariantPtr(e.VariantID),
		Quantity:           e.Quantity,
		Notes:              e.Notes,
		IsActive:           e.IsActive,
		UpdatedAt:          e.UpdatedAt,
	}
}
