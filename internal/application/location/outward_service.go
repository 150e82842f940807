package location

import (
	"context"
	"errors"

	"github.com/NehaS05/NYRApi-sub000/internal/domain/ledger"
	"github.com/NehaS05/NYRApi-sub000/internal/domain/location"
	"github.com/NehaS05/NYRApi-sub000/internal/domain/reference"
	"github.com/NehaS05/NYRApi-sub000/internal/domain/shared"
	"github.com/NehaS05/NYRApi-sub000/internal/infrastructure/telemetry"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// CodeNoMatchingInventory is returned when an outward scan has no on-hand entry to draw from
const CodeNoMatchingInventory = "NO_MATCHING_INVENTORY"

// OutwardService records deductions from location stock and their reversal
type OutwardService struct {
	outwardRepo    location.OutwardRepository
	directory      reference.Directory
	txScope        TransactionScope
	eventPublisher shared.EventPublisher
	logger         *zap.Logger
}

// NewOutwardService creates a new OutwardService
func NewOutwardService(outwardRepo location.OutwardRepository, directory reference.Directory, txScope TransactionScope) *OutwardService {
	return &OutwardService{
		outwardRepo: outwardRepo,
		directory:   directory,
		txScope:     txScope,
		logger:      zap.NewNop(),
	}
}

// SetEventPublisher sets the event publisher for publishing domain events
func (s *OutwardService) SetEventPublisher(publisher shared.EventPublisher) {
	s.eventPublisher = publisher
}

// SetLogger sets the service logger
func (s *OutwardService) SetLogger(logger *zap.Logger) {
	if logger != nil {
		s.logger = logger
	}
}

func (s *OutwardService) publishDomainEvents(ctx context.Context, entry *location.OutwardEntry) {
	if s.eventPublisher != nil {
		if events := entry.GetDomainEvents(); len(events) > 0 {
			_ = s.eventPublisher.Publish(ctx, events...)
		}
	}
	entry.ClearDomainEvents()
}

// Create records an outward scan and subtracts it from the matching on-hand entry
func (s *OutwardService) Create(ctx context.Context, tenantID uuid.UUID, req CreateOutwardRequest) (_ *OutwardResponse, err error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "outward", "create",
		telemetry.UUIDAttr(telemetry.SpanAttrTenantID, tenantID),
		telemetry.UUIDAttr(telemetry.SpanAttrLocationID, req.LocationID),
		telemetry.SpanAttrQuantity.Int64(req.Quantity),
	)
	defer func() { telemetry.EndSpan(span, err) }()

	if err := reference.Require(ctx, s.directory, tenantID,
		reference.Check{Kind: reference.KindLocation, ID: req.LocationID},
		reference.Check{Kind: reference.KindUser, ID: req.CreatedBy},
	); err != nil {
		return nil, err
	}
	if err := reference.RequireVariant(ctx, s.directory, tenantID, req.ProductID, req.ProductVariantID); err != nil {
		return nil, err
	}

	entry, err := location.NewOutwardEntry(tenantID, req.LocationID, req.ProductID, req.ProductVariantID, req.VariationName, req.Quantity, req.CreatedBy)
	if err != nil {
		return nil, err
	}

	err = s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		key := entry.SourceKey()
		onHand, err := repos.OnHandRepo().FindByKey(ctx, tenantID, key.OwnerID, key.ProductID, key.VariantID)
		if err != nil {
			if errors.Is(err, shared.ErrNotFound) {
				return shared.NewDomainError(CodeNoMatchingInventory, "No matching inventory found for this product at the location")
			}
			return err
		}
		if err := onHand.CanSupply(entry.Quantity); err != nil {
			return err
		}
		if err := repos.OutwardRepo().Create(ctx, entry); err != nil {
			return err
		}
		return repos.OnHandRepo().Decrement(ctx, tenantID, onHand.ID, entry.Quantity, req.CreatedBy)
	})
	if err != nil {
		if errors.Is(err, ledger.ErrInsufficientQuantity) {
			s.logger.Warn("outward scan rejected",
				zap.String("tenant_id", tenantID.String()),
				zap.String("key", entry.SourceKey().String()),
				zap.Int64("quantity", entry.Quantity),
				zap.Error(err),
			)
		}
		return nil, err
	}

	s.publishDomainEvents(ctx, entry)
	resp := ToOutwardResponse(entry)
	return &resp, nil
}

// Delete deactivates the entry and gives its quantity back to the on-hand
// entry it was taken from. Deleting an inactive entry succeeds without
// touching stock.
func (s *OutwardService) Delete(ctx context.Context, tenantID, id, userID uuid.UUID) (*OutwardResponse, error) {
	return s.remove(ctx, tenantID, id, userID, location.RemoveWithRestore)
}

// Deactivate marks the entry inactive without restoring any quantity
func (s *OutwardService) Deactivate(ctx context.Context, tenantID, id, userID uuid.UUID) (*OutwardResponse, error) {
	return s.remove(ctx, tenantID, id, userID, location.RemoveWithoutRestore)
}

func (s *OutwardService) remove(ctx context.Context, tenantID, id, userID uuid.UUID, mode location.RemoveMode) (_ *OutwardResponse, err error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "outward", "remove",
		telemetry.UUIDAttr(telemetry.SpanAttrTenantID, tenantID),
		telemetry.UUIDAttr(telemetry.SpanAttrEntryID, id),
		telemetry.SpanAttrMode.String(mode.String()),
	)
	defer func() { telemetry.EndSpan(span, err) }()

	if err := reference.Require(ctx, s.directory, tenantID, reference.Check{Kind: reference.KindUser, ID: userID}); err != nil {
		return nil, err
	}

	var entry *location.OutwardEntry
	var restored int64
	err = s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		var err error
		entry, err = repos.OutwardRepo().FindByIDForTenant(ctx, tenantID, id)
		if err != nil {
			return err
		}
		wasActive := entry.IsActive
		restore, err := entry.Remove(mode, userID)
		if err != nil {
			return err
		}
		if !wasActive {
			return nil
		}

		flipped, err := repos.OutwardRepo().MarkInactive(ctx, tenantID, entry.ID, userID)
		if err != nil {
			return err
		}
		if !flipped || restore == 0 {
			return nil
		}

		key := entry.SourceKey()
		target, err := location.NewOnHandEntry(tenantID, key.OwnerID, key.ProductID, ledger.VariantPtr(key.VariantID), entry.VariantName, 0, userID)
		if err != nil {
			return err
		}
		if _, err := repos.OnHandRepo().AddOrCreate(ctx, target, restore); err != nil {
			return err
		}
		restored = restore
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("outward entry removed",
		zap.String("tenant_id", tenantID.String()),
		zap.String("outward_id", id.String()),
		zap.String("mode", mode.String()),
		zap.Int64("restored", restored),
	)
	s.publishDomainEvents(ctx, entry)
	resp := ToOutwardResponse(entry)
	return &resp, nil
}

// Get returns a single entry
func (s *OutwardService) Get(ctx context.Context, tenantID, id uuid.UUID) (*OutwardResponse, error) {
	entry, err := s.outwardRepo.FindByIDForTenant(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}
	resp := ToOutwardResponse(entry)
	return &resp, nil
}

// ListByLocation returns a page of outward entries at a location
func (s *OutwardService) ListByLocation(ctx context.Context, tenantID uuid.UUID, filter ListFilter) ([]OutwardResponse, int64, error) {
	f := shared.Filter{Page: filter.Page, PageSize: filter.PageSize, OrderBy: "created_at", OrderDir: "desc"}.Normalize()
	entries, total, err := s.outwardRepo.FindByLocation(ctx, tenantID, filter.LocationID, filter.ActiveOnly, f)
	if err != nil {
		return nil, 0, err
	}
	out := make([]OutwardResponse, 0, len(entries))
	for i := range entries {
		out = append(out, ToOutwardResponse(&entries[i]))
	}
	return out, total, nil
}
