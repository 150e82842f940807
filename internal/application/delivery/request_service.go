package delivery

import (
	"context"
	"time"

	"github.com/NehaS05/NYRApi-sub000/internal/domain/delivery"
	"github.com/NehaS05/NYRApi-sub000/internal/domain/reference"
	"github.com/NehaS05/NYRApi-sub000/internal/domain/shared"
	"github.com/google/uuid"
)

// RequestService creates and reads restock and follow-up requests.
// Their status afterwards is driven by the route stops they are attached to.
type RequestService struct {
	restockRepo  delivery.RestockRequestRepository
	followupRepo delivery.FollowupRequestRepository
	directory    reference.Directory
	now          func() time.Time
}

// NewRequestService creates a new RequestService
func NewRequestService(
	restockRepo delivery.RestockRequestRepository,
	followupRepo delivery.FollowupRequestRepository,
	directory reference.Directory,
) *RequestService {
	return &RequestService{
		restockRepo:  restockRepo,
		followupRepo: followupRepo,
		directory:    directory,
		now:          time.Now,
	}
}

// CreateRestockRequest records a restock request in "Restock Request" status
func (s *RequestService) CreateRestockRequest(ctx context.Context, tenantID, userID uuid.UUID, req CreateRestockRequest) (*RestockResponse, error) {
	if err := reference.Require(ctx, s.directory, tenantID,
		reference.Check{Kind: reference.KindCustomer, ID: req.CustomerID},
		reference.Check{Kind: reference.KindLocation, ID: req.LocationID},
	); err != nil {
		return nil, err
	}

	lines := make([]delivery.RestockLine, 0, len(req.Items))
	for _, item := range req.Items {
		if err := reference.RequireVariant(ctx, s.directory, tenantID, item.ProductID, item.ProductVariantID); err != nil {
			return nil, err
		}
		lines = append(lines, delivery.RestockLine{
			ProductID: item.ProductID,
			VariantID: item.ProductVariantID,
			Quantity:  item.Quantity,
		})
	}

	requestDate := s.now()
	if req.RequestDate != nil {
		requestDate = *req.RequestDate
	}
	restock, err := delivery.NewRestockRequest(tenantID, req.CustomerID, req.LocationID, requestDate, lines, userID)
	if err != nil {
		return nil, err
	}
	if err := s.restockRepo.Create(ctx, restock); err != nil {
		return nil, err
	}

	resp := ToRestockResponse(restock)
	return &resp, nil
}

// GetRestockRequest returns a restock request with its items
func (s *RequestService) GetRestockRequest(ctx context.Context, tenantID, id uuid.UUID) (*RestockResponse, error) {
	restock, err := s.restockRepo.FindByIDForTenant(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}
	resp := ToRestockResponse(restock)
	return &resp, nil
}

// ListRestockRequests returns a page of restock requests
func (s *RequestService) ListRestockRequests(ctx context.Context, tenantID uuid.UUID, filter RequestListFilter) ([]RestockResponse, int64, error) {
	f, err := toRequestFilter(filter, "request_date")
	if err != nil {
		return nil, 0, err
	}
	requests, total, err := s.restockRepo.FindAllForTenant(ctx, tenantID, f)
	if err != nil {
		return nil, 0, err
	}
	out := make([]RestockResponse, 0, len(requests))
	for i := range requests {
		out = append(out, ToRestockResponse(&requests[i]))
	}
	return out, total, nil
}

// CreateFollowupRequest records a follow-up request in "Followup Requested" status
func (s *RequestService) CreateFollowupRequest(ctx context.Context, tenantID, userID uuid.UUID, req CreateFollowupRequest) (*FollowupResponse, error) {
	if err := reference.Require(ctx, s.directory, tenantID,
		reference.Check{Kind: reference.KindCustomer, ID: req.CustomerID},
		reference.Check{Kind: reference.KindLocation, ID: req.LocationID},
	); err != nil {
		return nil, err
	}

	followupDate := s.now()
	if req.FollowupDate != nil {
		followupDate = *req.FollowupDate
	}
	followup, err := delivery.NewFollowupRequest(tenantID, req.CustomerID, req.LocationID, followupDate, req.Notes, userID)
	if err != nil {
		return nil, err
	}
	if err := s.followupRepo.Create(ctx, followup); err != nil {
		return nil, err
	}

	resp := ToFollowupResponse(followup)
	return &resp, nil
}

// GetFollowupRequest returns a follow-up request
func (s *RequestService) GetFollowupRequest(ctx context.Context, tenantID, id uuid.UUID) (*FollowupResponse, error) {
	followup, err := s.followupRepo.FindByIDForTenant(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}
	resp := ToFollowupResponse(followup)
	return &resp, nil
}

// ListFollowupRequests returns a page of follow-up requests
func (s *RequestService) ListFollowupRequests(ctx context.Context, tenantID uuid.UUID, filter RequestListFilter) ([]FollowupResponse, int64, error) {
	f, err := toRequestFilter(filter, "followup_date")
	if err != nil {
		return nil, 0, err
	}
	requests, total, err := s.followupRepo.FindAllForTenant(ctx, tenantID, f)
	if err != nil {
		return nil, 0, err
	}
	out := make([]FollowupResponse, 0, len(requests))
	for i := range requests {
		out = append(out, ToFollowupResponse(&requests[i]))
	}
	return out, total, nil
}

func toRequestFilter(filter RequestListFilter, orderBy string) (delivery.RequestFilter, error) {
	f := delivery.RequestFilter{
		Filter:     shared.Filter{Page: filter.Page, PageSize: filter.PageSize, OrderBy: orderBy, OrderDir: "desc"}.Normalize(),
		LocationID: filter.LocationID,
	}
	if filter.Status != "" {
		status, err := delivery.ParseRequestStatus(filter.Status)
		if err != nil {
			return f, err
		}
		f.Status = &status
	}
	return f, nil
}
