package location

import (
	"time"

	"github.com/NehaS05/NYRApi-sub000/internal/domain/ledger"
	"github.com/NehaS05/NYRApi-sub000/internal/domain/location"
	"github.com/google/uuid"
)

// ListFilter filters per-location listings. LocationID is parsed from the
// query by the HTTP layer.
type ListFilter struct {
	LocationID uuid.UUID `form:"-"`
	ActiveOnly bool      `form:"activeOnly"`
	Page       int       `form:"page" binding:"omitempty,min=1"`
	PageSize   int       `form:"pageSize" binding:"omitempty,min=1,max=100"`
}

// CreateOnHandRequest records stock found at a location
type CreateOnHandRequest struct {
	LocationID       uuid.UUID  `json:"locationId" binding:"required"`
	ProductID        uuid.UUID  `json:"productId" binding:"required"`
	ProductVariantID *uuid.UUID `json:"productVariantId"`
	VariationName    string     `json:"variationName" binding:"max=200"`
	Quantity         int64      `json:"quantity" binding:"gte=0"`
	CreatedBy        uuid.UUID  `json:"createdBy"`
}

// UpdateOnHandRequest overwrites an on-hand entry
type UpdateOnHandRequest struct {
	ProductID        uuid.UUID  `json:"productId" binding:"required"`
	ProductVariantID *uuid.UUID `json:"productVariantId"`
	VariationName    string     `json:"variationName" binding:"max=200"`
	Quantity         int64      `json:"quantity" binding:"gte=0"`
	UpdatedBy        uuid.UUID  `json:"updatedBy"`
}

// AdjustQuantityRequest applies a signed change to an on-hand entry
type AdjustQuantityRequest struct {
	QuantityChange int64     `json:"quantityChange"`
	UserID         uuid.UUID `json:"userId"`
}

// OnHandResponse is an on-hand entry in API responses
type OnHandResponse struct {
	ID               uuid.UUID  `json:"id"`
	LocationID       uuid.UUID  `json:"locationId"`
	ProductID        uuid.UUID  `json:"productId"`
	ProductVariantID *uuid.UUID `json:"productVariantId,omitempty"`
	VariationName    string     `json:"variationName,omitempty"`
	Quantity         int64      `json:"quantity"`
	IsActive         bool       `json:"isActive"`
	CreatedBy        *uuid.UUID `json:"createdBy,omitempty"`
	UpdatedBy        *uuid.UUID `json:"updatedBy,omitempty"`
	UpdatedAt        time.Time  `json:"updatedAt"`
}

// ToOnHandResponse converts an entry to its response
func ToOnHandResponse(e *location.OnHandEntry) OnHandResponse {
	return OnHandResponse{
		ID:               e.ID,
		LocationID:       e.LocationID,
		ProductID:        e.ProductID,
		ProductVariantID: ledger.VariantPtr(e.VariantID),
		VariationName:    e.VariantName,
		Quantity:         e.Quantity,
		IsActive:         e.IsActive,
		CreatedBy:        e.CreatedBy,
		UpdatedBy:        e.UpdatedBy,
		UpdatedAt:        e.UpdatedAt,
	}
}

// CreateOutwardRequest scans goods out of a location
type CreateOutwardRequest struct {
	LocationID       uuid.UUID  `json:"locationId" binding:"required"`
	ProductID        uuid.UUID  `json:"productId" binding:"required"`
	ProductVariantID *uuid.UUID `json:"productVariantId"`
	VariationName    string     `json:"variationName" binding:"max=200"`
	Quantity         int64      `json:"quantity" binding:"required,gt=0"`
	CreatedBy        uuid.UUID  `json:"createdBy"`
}

// RemoveOutwardRequest is the body of DELETE /outward-inventory/{id}.
// A nil or zero ProductID addresses an unlisted entry instead of an outward one.
type RemoveOutwardRequest struct {
	UserID    uuid.UUID  `json:"userId"`
	ProductID *uuid.UUID `json:"productId"`
}

// TargetsUnlisted reports whether the request addresses the unlisted ledger
func (r RemoveOutwardRequest) TargetsUnlisted() bool {
	return r.ProductID == nil || *r.ProductID == uuid.Nil
}

// OutwardResponse is an outward entry in API responses
type OutwardResponse struct {
	ID               uuid.UUID  `json:"id"`
	LocationID       uuid.UUID  `json:"locationId"`
	ProductID        uuid.UUID  `json:"productId"`
	ProductVariantID *uuid.UUID `json:"productVariantId,omitempty"`
	VariationName    string     `json:"variationName,omitempty"`
	Quantity         int64      `json:"quantity"`
	IsActive         bool       `json:"isActive"`
	CreatedBy        *uuid.UUID `json:"createdBy,omitempty"`
	UpdatedBy        *uuid.UUID `json:"updatedBy,omitempty"`
	CreatedAt        time.Time  `json:"createdAt"`
	UpdatedAt        time.Time  `json:"updatedAt"`
}

// ToOutwardResponse converts an entry to its response
func ToOutwardResponse(e *location.OutwardEntry) OutwardResponse {
	return OutwardResponse{
		ID:               e.ID,
		LocationID:       e.LocationID,
		ProductID:        e.ProductID,
		ProductVariantID: ledger.VariantPtr(e.VariantID),
		VariationName:    e.VariantName,
		Quantity:         e.Quantity,
		IsActive:         e.IsActive,
		CreatedBy:        e.CreatedBy,
		UpdatedBy:        e.UpdatedBy,
		CreatedAt:        e.CreatedAt,
		UpdatedAt:        e.UpdatedAt,
	}
}

// CreateUnlistedRequest records goods scanned by barcode only
type CreateUnlistedRequest struct {
	Barcode    string    `json:"barcode" binding:"required,max=100"`
	LocationID uuid.UUID `json:"locationId" binding:"required"`
	Quantity   int64     `json:"quantity" binding:"required,gt=0"`
	CreatedBy  uuid.UUID `json:"createdBy"`
}

// UnlistedResponse is an unlisted entry in API responses
type UnlistedResponse struct {
	ID         uuid.UUID  `json:"id"`
	Barcode    string     `json:"barcode"`
	LocationID uuid.UUID  `json:"locationId"`
	Quantity   int64      `json:"quantity"`
	CreatedBy  *uuid.UUID `json:"createdBy,omitempty"`
	UpdatedBy  *uuid.UUID `json:"updatedBy,omitempty"`
	UpdatedAt  time.Time  `json:"updatedDate"`
}

// ToUnlistedResponse converts an entry to its response
func ToUnlistedResponse(e *location.UnlistedEntry) UnlistedResponse {
	return UnlistedResponse{
		ID:         e.ID,
		Barcode:    e.Barcode,
		LocationID: e.LocationID,
		Quantity:   e.Quantity,
		CreatedBy:  e.CreatedBy,
		UpdatedBy:  e.UpdatedBy,
		UpdatedAt:  e.UpdatedAt,
	}
}
