package handler

import (
	"errors"
	"io"

	locationapp "github.com/NehaS05/NYRApi-sub000/internal/application/location"
	"github.com/NehaS05/NYRApi-sub000/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
)

// OnHandHandler handles /inventory endpoints, the per-location on-hand ledger
type OnHandHandler struct {
	BaseHandler
	onHandService *locationapp.OnHandService
}

// NewOnHandHandler creates a new OnHandHandler
func NewOnHandHandler(onHandService *locationapp.OnHandService) *OnHandHandler {
	return &OnHandHandler{onHandService: onHandService}
}

// Create handles POST /inventory
func (h *OnHandHandler) Create(c *gin.Context) {
	tenantID, ok := h.tenantID(c)
	if !ok {
		return
	}

	var req locationapp.CreateOnHandRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.ValidationError(c, err)
		return
	}
	req.CreatedBy = actingUser(c, req.CreatedBy)

	entry, err := h.onHandService.Create(c.Request.Context(), tenantID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, entry)
}

// Update handles PUT /inventory/:id
func (h *OnHandHandler) Update(c *gin.Context) {
	tenantID, ok := h.tenantID(c)
	if !ok {
		return
	}
	id, ok := h.pathID(c, "id")
	if !ok {
		return
	}

	var req locationapp.UpdateOnHandRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.ValidationError(c, err)
		return
	}
	req.UpdatedBy = actingUser(c, req.UpdatedBy)

	entry, err := h.onHandService.Update(c.Request.Context(), tenantID, id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, entry)
}

// AdjustQuantity handles POST /inventory/:id/adjust-quantity with a signed change
func (h *OnHandHandler) AdjustQuantity(c *gin.Context) {
	tenantID, ok := h.tenantID(c)
	if !ok {
		return
	}
	id, ok := h.pathID(c, "id")
	if !ok {
		return
	}

	var req locationapp.AdjustQuantityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.ValidationError(c, err)
		return
	}
	req.UserID = actingUser(c, req.UserID)

	entry, err := h.onHandService.AdjustQuantity(c.Request.Context(), tenantID, id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, entry)
}

// GetByID handles GET /inventory/:id
func (h *OnHandHandler) GetByID(c *gin.Context) {
	tenantID, ok := h.tenantID(c)
	if !ok {
		return
	}
	id, ok := h.pathID(c, "id")
	if !ok {
		return
	}

	entry, err := h.onHandService.Get(c.Request.Context(), tenantID, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, entry)
}

// List handles GET /inventory?locationId=
func (h *OnHandHandler) List(c *gin.Context) {
	tenantID, ok := h.tenantID(c)
	if !ok {
		return
	}

	var filter locationapp.ListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.ValidationError(c, err)
		return
	}
	if filter.LocationID, ok = h.requiredQueryID(c, "locationId"); !ok {
		return
	}

	entries, total, err := h.onHandService.ListByLocation(c.Request.Context(), tenantID, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, entries, total, filter.Page, filter.PageSize)
}

// Deactivate handles POST /inventory/:id/deactivate
func (h *OnHandHandler) Deactivate(c *gin.Context) {
	tenantID, ok := h.tenantID(c)
	if !ok {
		return
	}
	id, ok := h.pathID(c, "id")
	if !ok {
		return
	}

	entry, err := h.onHandService.Deactivate(c.Request.Context(), tenantID, id, middleware.GetUserID(c))
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, entry)
}

// OutwardHandler handles /outward-inventory and /unlisted-inventory endpoints
type OutwardHandler struct {
	BaseHandler
	outwardService  *locationapp.OutwardService
	unlistedService *locationapp.UnlistedService
}

// NewOutwardHandler creates a new OutwardHandler
func NewOutwardHandler(outwardService *locationapp.OutwardService, unlistedService *locationapp.UnlistedService) *OutwardHandler {
	return &OutwardHandler{outwardService: outwardService, unlistedService: unlistedService}
}

// Create handles POST /outward-inventory. The on-hand entry with the same
// key is decremented in the same transaction.
func (h *OutwardHandler) Create(c *gin.Context) {
	tenantID, ok := h.tenantID(c)
	if !ok {
		return
	}

	var req locationapp.CreateOutwardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.ValidationError(c, err)
		return
	}
	req.CreatedBy = actingUser(c, req.CreatedBy)

	entry, err := h.outwardService.Create(c.Request.Context(), tenantID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, entry)
}

// List handles GET /outward-inventory?locationId=
func (h *OutwardHandler) List(c *gin.Context) {
	tenantID, ok := h.tenantID(c)
	if !ok {
		return
	}

	var filter locationapp.ListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.ValidationError(c, err)
		return
	}
	if filter.LocationID, ok = h.requiredQueryID(c, "locationId"); !ok {
		return
	}

	entries, total, err := h.outwardService.ListByLocation(c.Request.Context(), tenantID, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, entries, total, filter.Page, filter.PageSize)
}

// GetByID handles GET /outward-inventory/:id
func (h *OutwardHandler) GetByID(c *gin.Context) {
	tenantID, ok := h.tenantID(c)
	if !ok {
		return
	}
	id, ok := h.pathID(c, "id")
	if !ok {
		return
	}

	entry, err := h.outwardService.Get(c.Request.Context(), tenantID, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, entry)
}

// Deactivate handles POST /outward-inventory/:id/deactivate. Unlike Delete
// it leaves the on-hand quantity as it is.
func (h *OutwardHandler) Deactivate(c *gin.Context) {
	tenantID, ok := h.tenantID(c)
	if !ok {
		return
	}
	id, ok := h.pathID(c, "id")
	if !ok {
		return
	}

	entry, err := h.outwardService.Deactivate(c.Request.Context(), tenantID, id, middleware.GetUserID(c))
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, entry)
}

// Delete handles DELETE /outward-inventory/:id. A body without productId
// (or with the nil UUID) removes an unlisted entry; otherwise the outward
// entry is soft deleted and its quantity restored to on-hand.
func (h *OutwardHandler) Delete(c *gin.Context) {
	tenantID, ok := h.tenantID(c)
	if !ok {
		return
	}
	id, ok := h.pathID(c, "id")
	if !ok {
		return
	}

	var req locationapp.RemoveOutwardRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		h.ValidationError(c, err)
		return
	}
	userID := actingUser(c, req.UserID)

	if req.TargetsUnlisted() {
		if err := h.unlistedService.Delete(c.Request.Context(), tenantID, id, userID); err != nil {
			h.HandleError(c, err)
			return
		}
		h.NoContent(c)
		return
	}

	entry, err := h.outwardService.Delete(c.Request.Context(), tenantID, id, userID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, entry)
}

// CreateUnlisted handles POST /unlisted-inventory
func (h *OutwardHandler) CreateUnlisted(c *gin.Context) {
	tenantID, ok := h.tenantID(c)
	if !ok {
		return
	}

	var req locationapp.CreateUnlistedRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.ValidationError(c, err)
		return
	}
	req.CreatedBy = actingUser(c, req.CreatedBy)

	entry, err := h.unlistedService.Create(c.Request.Context(), tenantID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, entry)
}

// ListUnlisted handles GET /unlisted-inventory?locationId=
func (h *OutwardHandler) ListUnlisted(c *gin.Context) {
	tenantID, ok := h.tenantID(c)
	if !ok {
		return
	}

	var filter locationapp.ListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.ValidationError(c, err)
		return
	}
	if filter.LocationID, ok = h.requiredQueryID(c, "locationId"); !ok {
		return
	}

	entries, total, err := h.unlistedService.ListByLocation(c.Request.Context(), tenantID, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, entries, total, filter.Page, filter.PageSize)
}
