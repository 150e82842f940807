package location

import (
	"context"

	"github.com/NehaS05/NYRApi-sub000/internal/domain/location"
	"github.com/NehaS05/NYRApi-sub000/internal/domain/reference"
	"github.com/NehaS05/NYRApi-sub000/internal/domain/shared"
	"github.com/google/uuid"
)

// UnlistedService records goods scanned at a location that are not in the catalog
type UnlistedService struct {
	unlistedRepo   location.UnlistedRepository
	directory      reference.Directory
	eventPublisher shared.EventPublisher
}

// NewUnlistedService creates a new UnlistedService
func NewUnlistedService(unlistedRepo location.UnlistedRepository, directory reference.Directory) *UnlistedService {
	return &UnlistedService{unlistedRepo: unlistedRepo, directory: directory}
}

// SetEventPublisher sets the event publisher for publishing domain events
func (s *UnlistedService) SetEventPublisher(publisher shared.EventPublisher) {
	s.eventPublisher = publisher
}

// Create adds a scan. A second scan of the same barcode at the same location
// is merged into the existing row.
func (s *UnlistedService) Create(ctx context.Context, tenantID uuid.UUID, req CreateUnlistedRequest) (*UnlistedResponse, error) {
	if err := reference.Require(ctx, s.directory, tenantID,
		reference.Check{Kind: reference.KindLocation, ID: req.LocationID},
		reference.Check{Kind: reference.KindUser, ID: req.CreatedBy},
	); err != nil {
		return nil, err
	}

	entry, err := location.NewUnlistedEntry(tenantID, req.Barcode, req.LocationID, req.Quantity, req.CreatedBy)
	if err != nil {
		return nil, err
	}
	stored, err := s.unlistedRepo.AddOrCreate(ctx, entry)
	if err != nil {
		return nil, err
	}

	if s.eventPublisher != nil {
		_ = s.eventPublisher.Publish(ctx, location.NewUnlistedRecordedEvent(stored, req.Quantity))
	}
	resp := ToUnlistedResponse(stored)
	return &resp, nil
}

// Delete removes the row permanently. Nothing is restored.
func (s *UnlistedService) Delete(ctx context.Context, tenantID, id, userID uuid.UUID) error {
	if err := reference.Require(ctx, s.directory, tenantID, reference.Check{Kind: reference.KindUser, ID: userID}); err != nil {
		return err
	}
	entry, err := s.unlistedRepo.FindByIDForTenant(ctx, tenantID, id)
	if err != nil {
		return err
	}
	if err := s.unlistedRepo.Delete(ctx, tenantID, id); err != nil {
		return err
	}
	if s.eventPublisher != nil {
		_ = s.eventPublisher.Publish(ctx, location.NewUnlistedDeletedEvent(entry))
	}
	return nil
}

// ListByLocation returns a page of unlisted entries at a location
func (s *UnlistedService) ListByLocation(ctx context.Context, tenantID uuid.UUID, filter ListFilter) ([]UnlistedResponse, int64, error) {
	f := shared.Filter{Page: filter.Page, PageSize: filter.PageSize, OrderBy: "updated_at", OrderDir: "desc"}.Normalize()
	entries, total, err := s.unlistedRepo.FindByLocation(ctx, tenantID, filter.LocationID, f)
	if err != nil {
		return nil, 0, err
	}
	out := make([]UnlistedResponse, 0, len(entries))
	for i := range entries {
		out = append(out, ToUnlistedResponse(&entries[i]))
	}
	return out, total, nil
}
