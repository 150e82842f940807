package delivery

import (
	"time"

	"github.com/NehaS05/NYRApi-sub000/internal/domain/ledger"
	"github.com/NehaS05/NYRApi-sub000/internal/domain/shared"
	"github.com/google/uuid"
)

// Aggregate types
const (
	AggregateTypeRestockRequest  = "RestockRequest"
	AggregateTypeFollowupRequest = "FollowupRequest"
)

// RestockRequestItem is one product line a customer asked to be restocked
type RestockRequestItem struct {
	ID                uuid.UUID `gorm:"type:uuid;primaryKey"`
	RequestID         uuid.UUID `gorm:"type:uuid;not null;index"`
	ProductID         uuid.UUID `gorm:"type:uuid;not null"`
	VariantID         uuid.UUID `gorm:"type:uuid;not null"`
	Quantity          int64     `gorm:"not null"`
	DeliveredQuantity *int64
}

// TableName returns the table name for GORM
func (RestockRequestItem) TableName() string {
	return "restock_request_items"
}

// RestockLine is the input for one item of a new restock request
type RestockLine struct {
	ProductID uuid.UUID
	VariantID *uuid.UUID
	Quantity  int64
}

// RestockRequest asks for goods to be delivered to a customer location
type RestockRequest struct {
	shared.TenantAggregateRoot
	CustomerID     uuid.UUID            `gorm:"type:uuid;not null;index"`
	LocationID     uuid.UUID            `gorm:"type:uuid;not null;index"`
	RequestDate    time.Time            `gorm:"not null"`
	Status         RequestStatus        `gorm:"type:varchar(30);not null"`
	MaterializedAt *time.Time           `gorm:""`
	Items          []RestockRequestItem `gorm:"foreignKey:RequestID;references:ID"`
}

// TableName returns the table name for GORM
func (RestockRequest) TableName() string {
	return "restock_requests"
}

// NewRestockRequest creates a restock request in its initial status
func NewRestockRequest(tenantID, customerID, locationID uuid.UUID, requestDate time.Time, lines []RestockLine, createdBy uuid.UUID) (*RestockRequest, error) {
	if customerID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_CUSTOMER", "Customer ID cannot be empty")
	}
	if locationID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_LOCATION", "Location ID cannot be empty")
	}
	if len(lines) == 0 {
		return nil, shared.NewDomainError("EMPTY_REQUEST", "A restock request needs at least one item")
	}
	req := &RestockRequest{
		TenantAggregateRoot: shared.NewTenantAggregateRootWithCreator(tenantID, createdBy),
		CustomerID:          customerID,
		LocationID:          locationID,
		RequestDate:         requestDate,
		Status:              RequestKindRestock.InitialStatus(),
	}
	for _, line := range lines {
		if line.ProductID == uuid.Nil {
			return nil, shared.NewDomainError("INVALID_PRODUCT", "Product ID cannot be empty")
		}
		if err := ledger.ValidateDelta(line.Quantity); err != nil {
			return nil, err
		}
		req.Items = append(req.Items, RestockRequestItem{
			ID:        uuid.New(),
			RequestID: req.ID,
			ProductID: line.ProductID,
			VariantID: ledger.VariantOrNil(line.VariantID),
			Quantity:  line.Quantity,
		})
	}
	return req, nil
}

// ApplyStopStatus projects the attached stop's status onto this request.
// Returns true if the request status changed.
func (r *RestockRequest) ApplyStopStatus(stop StopStatus, userID uuid.UUID) bool {
	next := MapStopStatus(RequestKindRestock, stop, r.Status)
	if next == r.Status {
		return false
	}
	from := r.Status
	r.Status = next
	r.Touch(userID)
	r.AddDomainEvent(NewRequestStatusChangedEvent(AggregateTypeRestockRequest, r.ID, r.TenantID, from, next))
	return true
}

// NeedsMaterialization reports whether the request has been delivered and
// its items have not yet been added to the location's on-hand stock.
func (r *RestockRequest) NeedsMaterialization() bool {
	return r.Status == RequestStatusDelivered && r.MaterializedAt == nil
}

// MarkMaterialized records that every item landed in on-hand stock
func (r *RestockRequest) MarkMaterialized(now time.Time) {
	t := now
	r.MaterializedAt = &t
	for i := range r.Items {
		delivered := r.Items[i].Quantity
		r.Items[i].DeliveredQuantity = &delivered
	}
}

// FollowupRequest asks for a visit to a customer location without goods
type FollowupRequest struct {
	shared.TenantAggregateRoot
	CustomerID   uuid.UUID     `gorm:"type:uuid;not null;index"`
	LocationID   uuid.UUID     `gorm:"type:uuid;not null;index"`
	FollowupDate time.Time     `gorm:"not null"`
	Notes        string        `gorm:"type:text"`
	Status       RequestStatus `gorm:"type:varchar(30);not null"`
}

// TableName returns the table name for GORM
func (FollowupRequest) TableName() string {
	return "followup_requests"
}

// NewFollowupRequest creates a follow-up request in its initial status
func NewFollowupRequest(tenantID, customerID, locationID uuid.UUID, followupDate time.Time, notes string, createdBy uuid.UUID) (*FollowupRequest, error) {
	if customerID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_CUSTOMER", "Customer ID cannot be empty")
	}
	if locationID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_LOCATION", "Location ID cannot be empty")
	}
	return &FollowupRequest{
		TenantAggregateRoot: shared.NewTenantAggregateRootWithCreator(tenantID, createdBy),
		CustomerID:          customerID,
		LocationID:          locationID,
		FollowupDate:        followupDate,
		Notes:               notes,
		Status:              RequestKindFollowup.InitialStatus(),
	}, nil
}

// ApplyStopStatus projects the attached stop's status onto this request.
// Returns true if the request status changed.
func (r *FollowupRequest) ApplyStopStatus(stop StopStatus, userID uuid.UUID) bool {
	next := MapStopStatus(RequestKindFollowup, stop, r.Status)
	if next == r.Status {
		return false
	}
	from := r.Status
	r.Status = next
	r.Touch(userID)
	r.AddDomainEvent(NewRequestStatusChangedEvent(AggregateTypeFollowupRequest, r.ID, r.TenantID, from, next))
	return true
}
