package delivery

import (
	"time"

	"github.com/NehaS05/NYRApi-sub000/internal/domain/delivery"
	"github.com/NehaS05/NYRApi-sub000/internal/domain/ledger"
	"github.com/google/uuid"
)

// CreateRestockItem is one line of a new restock request
type CreateRestockItem struct {
	ProductID        uuid.UUID  `json:"productId" binding:"required"`
	ProductVariantID *uuid.UUID `json:"productVariantId"`
	Quantity         int64      `json:"quantity" binding:"required,gt=0"`
}

// CreateRestockRequest opens a restock request for a customer location
type CreateRestockRequest struct {
	CustomerID  uuid.UUID           `json:"customerId" binding:"required"`
	LocationID  uuid.UUID           `json:"locationId" binding:"required"`
	RequestDate *time.Time          `json:"requestDate"`
	Items       []CreateRestockItem `json:"items" binding:"required,min=1,dive"`
}

// CreateFollowupRequest opens a follow-up visit request
type CreateFollowupRequest struct {
	CustomerID   uuid.UUID  `json:"customerId" binding:"required"`
	LocationID   uuid.UUID  `json:"locationId" binding:"required"`
	FollowupDate *time.Time `json:"followupDate"`
	Notes        string     `json:"notes" binding:"max=2000"`
}

// RequestListFilter filters request listings
type RequestListFilter struct {
	LocationID *uuid.UUID `form:"-"`
	Status     string     `form:"status"`
	Page       int        `form:"page" binding:"omitempty,min=1"`
	PageSize   int        `form:"pageSize" binding:"omitempty,min=1,max=100"`
}

// RestockItemResponse is one restock line in API responses
type RestockItemResponse struct {
	ID                uuid.UUID  `json:"id"`
	ProductID         uuid.UUID  `json:"productId"`
	ProductVariantID  *uuid.UUID `json:"productVariantId,omitempty"`
	Quantity          int64      `json:"quantity"`
	DeliveredQuantity *int64     `json:"deliveredQuantity,omitempty"`
}

// RestockResponse is a restock request in API responses
type RestockResponse struct {
	ID             uuid.UUID             `json:"id"`
	CustomerID     uuid.UUID             `json:"customerId"`
	LocationID     uuid.UUID             `json:"locationId"`
	RequestDate    time.Time             `json:"requestDate"`
	Status         string                `json:"status"`
	MaterializedAt *time.Time            `json:"materializedAt,omitempty"`
	Items          []RestockItemResponse `json:"items"`
	CreatedAt      time.Time             `json:"createdAt"`
	UpdatedAt      time.Time             `json:"updatedAt"`
}

// ToRestockResponse converts a restock request to its response
func ToRestockResponse(r *delivery.RestockRequest) RestockResponse {
	items := make([]RestockItemResponse, 0, len(r.Items))
	for _, it := range r.Items {
		items = append(items, RestockItemResponse{
			ID:                it.ID,
			ProductID:         it.ProductID,
			ProductVariantID:  ledger.VariantPtr(it.VariantID),
			Quantity:          it.Quantity,
			DeliveredQuantity: it.DeliveredQuantity,
		})
	}
	return RestockResponse{
		ID:             r.ID,
		CustomerID:     r.CustomerID,
		LocationID:     r.LocationID,
		RequestDate:    r.RequestDate,
		Status:         string(r.Status),
		MaterializedAt: r.MaterializedAt,
		Items:          items,
		CreatedAt:      r.CreatedAt,
		UpdatedAt:      r.UpdatedAt,
	}
}

// FollowupResponse is a follow-up request in API responses
type FollowupResponse struct {
	ID           uuid.UUID `json:"id"`
	CustomerID   uuid.UUID `json:"customerId"`
	LocationID   uuid.UUID `json:"locationId"`
	FollowupDate time.Time `json:"followupDate"`
	Notes        string    `json:"notes,omitempty"`
	Status       string    `json:"status"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// ToFollowupResponse converts a follow-up request to its response
func ToFollowupResponse(r *delivery.FollowupRequest) FollowupResponse {
	return FollowupResponse{
		ID:           r.ID,
		CustomerID:   r.CustomerID,
		LocationID:   r.LocationID,
		FollowupDate: r.FollowupDate,
		Notes:        r.Notes,
		Status:       string(r.Status),
		CreatedAt:    r.CreatedAt,
		UpdatedAt:    r.UpdatedAt,
	}
}

// CreateRouteStop is one stop of a new route
type CreateRouteStop struct {
	LocationID        uuid.UUID  `json:"locationId" binding:"required"`
	CustomerID        *uuid.UUID `json:"customerId"`
	Address           string     `json:"address" binding:"max=500"`
	RestockRequestID  *uuid.UUID `json:"restockRequestId"`
	FollowupRequestID *uuid.UUID `json:"followupRequestId"`
	DeliveryOTP       string     `json:"deliveryOtp" binding:"omitempty,numeric,max=12"`
	RequireOTP        bool       `json:"requireOtp"`
}

// CreateRouteRequest plans a driver's route
type CreateRouteRequest struct {
	DriverID     uuid.UUID         `json:"driverId" binding:"required"`
	DeliveryDate time.Time         `json:"deliveryDate" binding:"required"`
	Stops        []CreateRouteStop `json:"stops" binding:"required,min=1,dive"`
}

// RouteListFilter filters route listings
type RouteListFilter struct {
	DriverID     *uuid.UUID `form:"-"`
	DeliveryDate *time.Time `form:"deliveryDate" time_format:"2006-01-02"`
	Page         int        `form:"page" binding:"omitempty,min=1"`
	PageSize     int        `form:"pageSize" binding:"omitempty,min=1,max=100"`
}

// UpdateStopStatusRequest is the body of PUT /route-stops/{id}/status
type UpdateStopStatusRequest struct {
	Status      string  `json:"status" binding:"required,stop_status"`
	DeliveryOTP *string `json:"deliveryOTP"`
}

// VerifyOTPRequest is the body of POST /route-stops/{id}/verify-otp
type VerifyOTPRequest struct {
	OTP string `json:"otp" binding:"required"`
}

// VerifyOTPResponse reports the result of an OTP pre-check
type VerifyOTPResponse struct {
	Message string `json:"message"`
	IsValid bool   `json:"isValid"`
}

// RouteStopResponse is a route stop in API responses
type RouteStopResponse struct {
	ID                uuid.UUID  `json:"id"`
	RouteID           uuid.UUID  `json:"routeId"`
	StopOrder         int        `json:"stopOrder"`
	LocationID        uuid.UUID  `json:"locationId"`
	CustomerID        *uuid.UUID `json:"customerId,omitempty"`
	Address           string     `json:"address"`
	Status            string     `json:"status"`
	CompletedAt       *time.Time `json:"completedAt,omitempty"`
	RequiresOTP       bool       `json:"requiresOtp"`
	RestockRequestID  *uuid.UUID `json:"restockRequestId,omitempty"`
	FollowupRequestID *uuid.UUID `json:"followupRequestId,omitempty"`
}

// ToRouteStopResponse converts a stop to its response. The OTP itself is never returned.
func ToRouteStopResponse(s *delivery.RouteStop) RouteStopResponse {
	return RouteStopResponse{
		ID:                s.ID,
		RouteID:           s.RouteID,
		StopOrder:         s.StopOrder,
		LocationID:        s.LocationID,
		CustomerID:        s.CustomerID,
		Address:           s.Address,
		Status:            string(s.Status),
		CompletedAt:       s.CompletedAt,
		RequiresOTP:       s.RequiresOTP(),
		RestockRequestID:  s.RestockRequestID,
		FollowupRequestID: s.FollowupRequestID,
	}
}

// RouteResponse is a route with its stops in API responses
type RouteResponse struct {
	ID           uuid.UUID           `json:"id"`
	DriverID     uuid.UUID           `json:"driverId"`
	DeliveryDate time.Time           `json:"deliveryDate"`
	Status       string              `json:"status"`
	Stops        []RouteStopResponse `json:"stops"`
	CreatedAt    time.Time           `json:"createdAt"`
	UpdatedAt    time.Time           `json:"updatedAt"`
}

// ToRouteResponse converts a route to its response with stops in stop order
func ToRouteResponse(r *delivery.Route) RouteResponse {
	r.SortStops()
	stops := make([]RouteStopResponse, 0, len(r.Stops))
	for i := range r.Stops {
		stops = append(stops, ToRouteStopResponse(&r.Stops[i]))
	}
	return RouteResponse{
		ID:           r.ID,
		DriverID:     r.DriverID,
		DeliveryDate: r.DeliveryDate,
		Status:       string(r.Status),
		Stops:        stops,
		CreatedAt:    r.CreatedAt,
		UpdatedAt:    r.UpdatedAt,
	}
}

// CreatedRouteResponse is returned once, on route creation, and carries the
// generated passcodes so they can be handed to the customers.
type CreatedRouteResponse struct {
	RouteResponse
	DeliveryOTPs map[uuid.UUID]string `json:"deliveryOtps,omitempty"`
}
