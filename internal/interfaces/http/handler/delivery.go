package handler

import (
	"net/http"

	deliveryapp "github.com/NehaS05/NYRApi-sub000/internal/application/delivery"
	"github.com/NehaS05/NYRApi-sub000/internal/interfaces/http/dto"
	"github.com/NehaS05/NYRApi-sub000/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
)

// RequestHandler handles /restock-requests and /followup-requests endpoints
type RequestHandler struct {
	BaseHandler
	requestService *deliveryapp.RequestService
}

// NewRequestHandler creates a new RequestHandler
func NewRequestHandler(requestService *deliveryapp.RequestService) *RequestHandler {
	return &RequestHandler{requestService: requestService}
}

// CreateRestock handles POST /restock-requests
func (h *RequestHandler) CreateRestock(c *gin.Context) {
	tenantID, ok := h.tenantID(c)
	if !ok {
		return
	}

	var req deliveryapp.CreateRestockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.ValidationError(c, err)
		return
	}

	restock, err := h.requestService.CreateRestockRequest(c.Request.Context(), tenantID, middleware.GetUserID(c), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, restock)
}

// ListRestock handles GET /restock-requests
func (h *RequestHandler) ListRestock(c *gin.Context) {
	tenantID, ok := h.tenantID(c)
	if !ok {
		return
	}

	var filter deliveryapp.RequestListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.ValidationError(c, err)
		return
	}
	if filter.LocationID, ok = h.queryID(c, "locationId"); !ok {
		return
	}

	requests, total, err := h.requestService.ListRestockRequests(c.Request.Context(), tenantID, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, requests, total, filter.Page, filter.PageSize)
}

// GetRestock handles GET /restock-requests/:id
func (h *RequestHandler) GetRestock(c *gin.Context) {
	tenantID, ok := h.tenantID(c)
	if !ok {
		return
	}
	id, ok := h.pathID(c, "id")
	if !ok {
		return
	}

	restock, err := h.requestService.GetRestockRequest(c.Request.Context(), tenantID, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, restock)
}

// CreateFollowup handles POST /followup-requests
func (h *RequestHandler) CreateFollowup(c *gin.Context) {
	tenantID, ok := h.tenantID(c)
	if !ok {
		return
	}

	var req deliveryapp.CreateFollowupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.ValidationError(c, err)
		return
	}

	followup, err := h.requestService.CreateFollowupRequest(c.Request.Context(), tenantID, middleware.GetUserID(c), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, followup)
}

// ListFollowup handles GET /followup-requests
func (h *RequestHandler) ListFollowup(c *gin.Context) {
	tenantID, ok := h.tenantID(c)
	if !ok {
		return
	}

	var filter deliveryapp.RequestListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.ValidationError(c, err)
		return
	}
	if filter.LocationID, ok = h.queryID(c, "locationId"); !ok {
		return
	}

	requests, total, err := h.requestService.ListFollowupRequests(c.Request.Context(), tenantID, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, requests, total, filter.Page, filter.PageSize)
}

// GetFollowup handles GET /followup-requests/:id
func (h *RequestHandler) GetFollowup(c *gin.Context) {
	tenantID, ok := h.tenantID(c)
	if !ok {
		return
	}
	id, ok := h.pathID(c, "id")
	if !ok {
		return
	}

	followup, err := h.requestService.GetFollowupRequest(c.Request.Context(), tenantID, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, followup)
}

// RouteHandler handles /routes and /route-stops endpoints
type RouteHandler struct {
	BaseHandler
	routeService *deliveryapp.RouteService
	stopService  *deliveryapp.RouteStopService
}

// NewRouteHandler creates a new RouteHandler
func NewRouteHandler(routeService *deliveryapp.RouteService, stopService *deliveryapp.RouteStopService) *RouteHandler {
	return &RouteHandler{routeService: routeService, stopService: stopService}
}

// Create handles POST /routes. Generated delivery passcodes appear only in
// this response.
func (h *RouteHandler) Create(c *gin.Context) {
	tenantID, ok := h.tenantID(c)
	if !ok {
		return
	}

	var req deliveryapp.CreateRouteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.ValidationError(c, err)
		return
	}

	route, err := h.routeService.CreateRoute(c.Request.Context(), tenantID, middleware.GetUserID(c), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, route)
}

// List handles GET /routes
func (h *RouteHandler) List(c *gin.Context) {
	tenantID, ok := h.tenantID(c)
	if !ok {
		return
	}

	var filter deliveryapp.RouteListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.ValidationError(c, err)
		return
	}
	if filter.DriverID, ok = h.queryID(c, "driverId"); !ok {
		return
	}

	routes, total, err := h.routeService.ListRoutes(c.Request.Context(), tenantID, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, routes, total, filter.Page, filter.PageSize)
}

// GetByID handles GET /routes/:id
func (h *RouteHandler) GetByID(c *gin.Context) {
	tenantID, ok := h.tenantID(c)
	if !ok {
		return
	}
	id, ok := h.pathID(c, "id")
	if !ok {
		return
	}

	route, err := h.routeService.GetRoute(c.Request.Context(), tenantID, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, route)
}

// Optimize handles POST /routes/:id/optimize
func (h *RouteHandler) Optimize(c *gin.Context) {
	tenantID, ok := h.tenantID(c)
	if !ok {
		return
	}
	id, ok := h.pathID(c, "id")
	if !ok {
		return
	}

	route, err := h.routeService.OptimizeRoute(c.Request.Context(), tenantID, id, middleware.GetUserID(c))
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, route)
}

// UpdateStopStatus handles PUT /route-stops/:id/status. Completing a stop
// that carries a passcode needs deliveryOTP in the body.
func (h *RouteHandler) UpdateStopStatus(c *gin.Context) {
	tenantID, ok := h.tenantID(c)
	if !ok {
		return
	}
	id, ok := h.pathID(c, "id")
	if !ok {
		return
	}

	var req deliveryapp.UpdateStopStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.ValidationError(c, err)
		return
	}

	stop, err := h.stopService.UpdateStopStatus(c.Request.Context(), tenantID, id, middleware.GetUserID(c), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, stop)
}

// VerifyOTP handles POST /route-stops/:id/verify-otp. A wrong passcode
// answers 400 and still carries {message, isValid:false} in data.
func (h *RouteHandler) VerifyOTP(c *gin.Context) {
	tenantID, ok := h.tenantID(c)
	if !ok {
		return
	}
	id, ok := h.pathID(c, "id")
	if !ok {
		return
	}

	var req deliveryapp.VerifyOTPRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.ValidationError(c, err)
		return
	}

	result, err := h.stopService.VerifyOTP(c.Request.Context(), tenantID, id, req)
	if err != nil {
		translated := dto.TranslateError(err)
		if translated.Status != http.StatusBadRequest {
			h.HandleError(c, err)
			return
		}
		resp := dto.NewErrorResponseWithRequestID(translated.Code, translated.Message, middleware.GetRequestID(c))
		resp.Data = deliveryapp.VerifyOTPResponse{Message: translated.Message, IsValid: false}
		c.JSON(http.StatusBadRequest, resp)
		return
	}

	h.Success(c, result)
}
