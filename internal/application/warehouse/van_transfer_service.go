package warehouse

import (
	"context"
	"errors"
	"sort"

	"github.com/NehaS05/NYRApi-sub000/internal/domain/ledger"
	"github.com/NehaS05/NYRApi-sub000/internal/domain/reference"
	"github.com/NehaS05/NYRApi-sub000/internal/domain/shared"
	"github.com/NehaS05/NYRApi-sub000/internal/domain/warehouse"
	"github.com/NehaS05/NYRApi-sub000/internal/infrastructure/telemetry"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// CodeNotFoundInWarehouse is returned when a transfer line has no stock entry
const CodeNotFoundInWarehouse = "NOT_FOUND_IN_WAREHOUSE"

// VanTransferService moves goods from warehouses into vans
type VanTransferService struct {
	transferRepo   warehouse.VanTransferRepository
	directory      reference.Directory
	txScope        TransactionScope
	eventPublisher shared.EventPublisher
	logger         *zap.Logger
}

// NewVanTransferService creates a new VanTransferService
func NewVanTransferService(
	transferRepo warehouse.VanTransferRepository,
	directory reference.Directory,
	txScope TransactionScope,
) *VanTransferService {
	return &VanTransferService{
		transferRepo: transferRepo,
		directory:    directory,
		txScope:      txScope,
		logger:       zap.NewNop(),
	}
}

// SetEventPublisher sets the event publisher for publishing domain events
func (s *VanTransferService) SetEventPublisher(publisher shared.EventPublisher) {
	s.eventPublisher = publisher
}

// SetLogger sets the service logger
func (s *VanTransferService) SetLogger(logger *zap.Logger) {
	if logger != nil {
		s.logger = logger
	}
}

func (s *VanTransferService) publish(ctx context.Context, batch *warehouse.VanTransferBatch) {
	if s.eventPublisher == nil {
		batch.ClearDomainEvents()
		return
	}
	if events := batch.GetDomainEvents(); len(events) > 0 {
		_ = s.eventPublisher.Publish(ctx, events...)
	}
	batch.ClearDomainEvents()
}

// CreateTransfer validates every line, then decrements warehouse stock for
// all of them and records the batch in one transaction. A failing line
// rejects the whole batch before anything is decremented.
func (s *VanTransferService) CreateTransfer(ctx context.Context, tenantID, userID uuid.UUID, req CreateTransferRequest) (_ *TransferResponse, err error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "van_transfer", "create",
		telemetry.UUIDAttr(telemetry.SpanAttrTenantID, tenantID))
	defer func() { telemetry.EndSpan(span, err) }()

	checks := []reference.Check{
		{Kind: reference.KindVan, ID: req.VanID},
		{Kind: reference.KindWarehouse, ID: req.WarehouseID},
	}
	if req.LocationID != nil {
		checks = append(checks, reference.Check{Kind: reference.KindLocation, ID: *req.LocationID})
	}
	if err = reference.Require(ctx, s.directory, tenantID, checks...); err != nil {
		return nil, err
	}

	lines := make([]warehouse.TransferLine, 0, len(req.Items))
	for _, item := range req.Items {
		if err := reference.RequireVariant(ctx, s.directory, tenantID, item.ProductID, item.ProductVariationID); err != nil {
			return nil, err
		}
		lines = append(lines, warehouse.TransferLine{
			ProductID: item.ProductID,
			VariantID: item.ProductVariationID,
			Quantity:  item.Quantity,
		})
	}

	batch, err := warehouse.NewVanTransferBatch(tenantID, req.VanID, req.WarehouseID, req.LocationID, lines, userID)
	if err != nil {
		return nil, err
	}
	batch.DriverName = req.DriverName

	demand := batch.DemandByKey()
	keys := make([]ledger.Key, 0, len(demand))
	for key := range demand {
		keys = append(keys, key)
	}
	// Rows are always touched in key order.
	sort.Slice(keys, func(i, j int) bool { return keys[i].String() < keys[j].String() })

	err = s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		entries := make([]*warehouse.StockEntry, len(keys))
		for i, key := range keys {
			entry, err := repos.StockRepo().FindByKey(ctx, tenantID, key.OwnerID, key.ProductID, key.VariantID)
			if err != nil {
				if errors.Is(err, shared.ErrNotFound) {
					return shared.NewDomainErrorf(CodeNotFoundInWarehouse,
						"Product %s is not stocked in warehouse %s", key.ProductID, key.OwnerID)
				}
				return err
			}
			if err := entry.CanSupply(demand[key]); err != nil {
				return err
			}
			entries[i] = entry
		}

		for i, entry := range entries {
			if err := repos.StockRepo().Decrement(ctx, tenantID, entry.ID, demand[keys[i]], userID); err != nil {
				return err
			}
		}
		return repos.TransferRepo().Create(ctx, batch)
	})
	if err != nil {
		if errors.Is(err, ledger.ErrInsufficientQuantity) {
			s.logger.Warn("van transfer rejected",
				zap.String("tenant_id", tenantID.String()),
				zap.String("van_id", req.VanID.String()),
				zap.Error(err),
			)
		}
		return nil, err
	}

	s.logger.Info("van transfer created",
		zap.String("tenant_id", tenantID.String()),
		zap.String("batch_id", batch.ID.String()),
		zap.String("van_id", batch.VanID.String()),
		zap.Int64("quantity", batch.TotalQuantity()),
	)
	s.publish(ctx, batch)

	resp := ToTransferResponse(batch)
	return &resp, nil
}

// UpdateTransferStatus changes the tracking status and delivery metadata of a batch.
// Stock is not touched.
func (s *VanTransferService) UpdateTransferStatus(ctx context.Context, tenantID, id, userID uuid.UUID, req UpdateTransferStatusRequest) (*TransferResponse, error) {
	batch, err := s.transferRepo.FindByIDForTenant(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}
	if err := batch.UpdateStatus(warehouse.TransferStatus(req.Status), req.DeliveryDate, req.DriverName, userID); err != nil {
		return nil, err
	}
	if err := s.transferRepo.Save(ctx, batch); err != nil {
		return nil, err
	}
	s.publish(ctx, batch)

	resp := ToTransferResponse(batch)
	return &resp, nil
}

// GetTransfer returns one batch with its items
func (s *VanTransferService) GetTransfer(ctx context.Context, tenantID, id uuid.UUID) (*TransferResponse, error) {
	batch, err := s.transferRepo.FindByIDForTenant(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}
	resp := ToTransferResponse(batch)
	return &resp, nil
}

// ListTransfers returns a page of batches, optionally for one van
func (s *VanTransferService) ListTransfers(ctx context.Context, tenantID uuid.UUID, filter TransferListFilter) ([]TransferResponse, int64, error) {
	f := shared.Filter{Page: filter.Page, PageSize: filter.PageSize, OrderBy: "transfer_date", OrderDir: "desc"}.Normalize()
	batches, total, err := s.transferRepo.FindAllForTenant(ctx, tenantID, filter.VanID, f)
	if err != nil {
		return nil, 0, err
	}
	out := make([]TransferResponse, 0, len(batches))
	for i := range batches {
		out = append(out, ToTransferResponse(&batches[i]))
	}
	return out, total, nil
}

// InTransitForVan sums what is still on the van across pending and in-transit batches
func (s *VanTransferService) InTransitForVan(ctx context.Context, tenantID, vanID uuid.UUID) ([]InTransitResponse, error) {
	lines, err := s.transferRepo.SumInTransitForVan(ctx, tenantID, vanID)
	if err != nil {
		return nil, err
	}
	out := make([]InTransitResponse, 0, len(lines))
	for _, line := range lines {
		out = append(out, InTransitResponse{
			ProductID:          line.ProductID,
			ProductVariationID: ledger.VariantPtr(line.VariantID),
			Quantity:           line.Quantity,
		})
	}
	return out, nil
}
