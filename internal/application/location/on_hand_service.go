package location

import (
	"context"

	"github.com/NehaS05/NYRApi-sub000/internal/domain/ledger"
	"github.com/NehaS05/NYRApi-sub000/internal/domain/location"
	"github.com/NehaS05/NYRApi-sub000/internal/domain/reference"
	"github.com/NehaS05/NYRApi-sub000/internal/domain/shared"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// OnHandService manages the stock currently held at delivery locations
type OnHandService struct {
	onHandRepo     location.OnHandRepository
	directory      reference.Directory
	eventPublisher shared.EventPublisher
	logger         *zap.Logger
}

// NewOnHandService creates a new OnHandService
func NewOnHandService(onHandRepo location.OnHandRepository, directory reference.Directory) *OnHandService {
	return &OnHandService{onHandRepo: onHandRepo, directory: directory, logger: zap.NewNop()}
}

// SetEventPublisher sets the event publisher for publishing domain events
func (s *OnHandService) SetEventPublisher(publisher shared.EventPublisher) {
	s.eventPublisher = publisher
}

// SetLogger sets the service logger
func (s *OnHandService) SetLogger(logger *zap.Logger) {
	if logger != nil {
		s.logger = logger
	}
}

func (s *OnHandService) publishDomainEvents(ctx context.Context, entry *location.OnHandEntry) {
	if s.eventPublisher != nil {
		if events := entry.GetDomainEvents(); len(events) > 0 {
			_ = s.eventPublisher.Publish(ctx, events...)
		}
	}
	entry.ClearDomainEvents()
}

// Create records stock at a location. The (location, product, variant) key must be unused.
func (s *OnHandService) Create(ctx context.Context, tenantID uuid.UUID, req CreateOnHandRequest) (*OnHandResponse, error) {
	if err := reference.Require(ctx, s.directory, tenantID,
		reference.Check{Kind: reference.KindLocation, ID: req.LocationID},
		reference.Check{Kind: reference.KindUser, ID: req.CreatedBy},
	); err != nil {
		return nil, err
	}
	if err := reference.RequireVariant(ctx, s.directory, tenantID, req.ProductID, req.ProductVariantID); err != nil {
		return nil, err
	}

	variantID := ledger.VariantOrNil(req.ProductVariantID)
	exists, err := s.onHandRepo.ExistsByKey(ctx, tenantID, req.LocationID, req.ProductID, variantID, uuid.Nil)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, shared.ErrDuplicateEntry
	}

	entry, err := location.NewOnHandEntry(tenantID, req.LocationID, req.ProductID, req.ProductVariantID, req.VariationName, req.Quantity, req.CreatedBy)
	if err != nil {
		return nil, err
	}
	if err := s.onHandRepo.Create(ctx, entry); err != nil {
		return nil, err
	}

	resp := ToOnHandResponse(entry)
	return &resp, nil
}

// Update overwrites an entry, re-checking key uniqueness when the product or variant changes
func (s *OnHandService) Update(ctx context.Context, tenantID, id uuid.UUID, req UpdateOnHandRequest) (*OnHandResponse, error) {
	if err := reference.Require(ctx, s.directory, tenantID, reference.Check{Kind: reference.KindUser, ID: req.UpdatedBy}); err != nil {
		return nil, err
	}
	if err := reference.RequireVariant(ctx, s.directory, tenantID, req.ProductID, req.ProductVariantID); err != nil {
		return nil, err
	}

	entry, err := s.onHandRepo.FindByIDForTenant(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}

	variantID := ledger.VariantOrNil(req.ProductVariantID)
	if entry.ProductID != req.ProductID || entry.VariantID != variantID {
		exists, err := s.onHandRepo.ExistsByKey(ctx, tenantID, entry.LocationID, req.ProductID, variantID, entry.ID)
		if err != nil {
			return nil, err
		}
		if exists {
			return nil, shared.ErrDuplicateEntry
		}
	}

	if err := entry.Update(req.ProductID, req.ProductVariantID, req.VariationName, req.Quantity, req.UpdatedBy); err != nil {
		return nil, err
	}
	if err := s.onHandRepo.SaveWithLock(ctx, entry); err != nil {
		return nil, err
	}

	resp := ToOnHandResponse(entry)
	return &resp, nil
}

// AdjustQuantity applies a signed change. The result may not go below zero.
func (s *OnHandService) AdjustQuantity(ctx context.Context, tenantID, id uuid.UUID, req AdjustQuantityRequest) (*OnHandResponse, error) {
	if err := reference.Require(ctx, s.directory, tenantID, reference.Check{Kind: reference.KindUser, ID: req.UserID}); err != nil {
		return nil, err
	}

	entry, err := s.onHandRepo.FindByIDForTenant(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}
	if err := entry.AdjustQuantity(req.QuantityChange, req.UserID); err != nil {
		s.logger.Warn("on-hand adjustment rejected",
			zap.String("tenant_id", tenantID.String()),
			zap.String("key", entry.Key().String()),
			zap.Int64("quantity", entry.Quantity),
			zap.Int64("change", req.QuantityChange),
		)
		return nil, err
	}
	if err := s.onHandRepo.SaveWithLock(ctx, entry); err != nil {
		return nil, err
	}
	s.publishDomainEvents(ctx, entry)

	resp := ToOnHandResponse(entry)
	return &resp, nil
}

// Get returns a single entry
func (s *OnHandService) Get(ctx context.Context, tenantID, id uuid.UUID) (*OnHandResponse, error) {
	entry, err := s.onHandRepo.FindByIDForTenant(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}
	resp := ToOnHandResponse(entry)
	return &resp, nil
}

// ListByLocation returns a page of the active entries at a location
func (s *OnHandService) ListByLocation(ctx context.Context, tenantID uuid.UUID, filter ListFilter) ([]OnHandResponse, int64, error) {
	f := shared.Filter{Page: filter.Page, PageSize: filter.PageSize, OrderBy: "updated_at", OrderDir: "desc"}.Normalize()
	entries, total, err := s.onHandRepo.FindByLocation(ctx, tenantID, filter.LocationID, f)
	if err != nil {
		return nil, 0, err
	}
	out := make([]OnHandResponse, 0, len(entries))
	for i := range entries {
		out = append(out, ToOnHandResponse(&entries[i]))
	}
	return out, total, nil
}

// Deactivate hides an entry without changing its quantity
func (s *OnHandService) Deactivate(ctx context.Context, tenantID, id, userID uuid.UUID) (*OnHandResponse, error) {
	entry, err := s.onHandRepo.FindByIDForTenant(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}
	if entry.IsActive {
		entry.Deactivate(userID)
		if err := s.onHandRepo.SaveWithLock(ctx, entry); err != nil {
			return nil, err
		}
	}
	resp := ToOnHandResponse(entry)
	return &resp, nil
}
