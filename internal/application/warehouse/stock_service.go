package warehouse

import (
	"context"

	"github.com/NehaS05/NYRApi-sub000/internal/domain/reference"
	"github.com/NehaS05/NYRApi-sub000/internal/domain/shared"
	"github.com/NehaS05/NYRApi-sub000/internal/domain/warehouse"
	"github.com/google/uuid"
)

// StockService manages warehouse stock entries
type StockService struct {
	stockRepo      warehouse.StockRepository
	directory      reference.Directory
	eventPublisher shared.EventPublisher
}

// NewStockService creates a new StockService
func NewStockService(stockRepo warehouse.StockRepository, directory reference.Directory) *StockService {
	return &StockService{stockRepo: stockRepo, directory: directory}
}

// SetEventPublisher sets the event publisher for publishing domain events
func (s *StockService) SetEventPublisher(publisher shared.EventPublisher) {
	s.eventPublisher = publisher
}

// ReceiveStock adds replenished units, creating the entry on first receipt
func (s *StockService) ReceiveStock(ctx context.Context, tenantID, userID uuid.UUID, req ReceiveStockRequest) (*StockResponse, error) {
	if err := reference.Require(ctx, s.directory, tenantID, reference.Check{Kind: reference.KindWarehouse, ID: req.WarehouseID}); err != nil {
		return nil, err
	}
	if err := reference.RequireVariant(ctx, s.directory, tenantID, req.ProductID, req.ProductVariationID); err != nil {
		return nil, err
	}

	entry, err := warehouse.NewStockEntry(tenantID, req.WarehouseID, req.ProductID, req.ProductVariationID, userID)
	if err != nil {
		return nil, err
	}
	entry.Notes = req.Notes

	stored, err := s.stockRepo.AddOrCreate(ctx, entry, req.Quantity)
	if err != nil {
		return nil, err
	}

	if s.eventPublisher != nil {
		_ = s.eventPublisher.Publish(ctx, warehouse.NewStockReceivedEvent(stored, req.Quantity))
	}

	resp := ToStockResponse(stored)
	return &resp, nil
}

// GetStock returns a single entry
func (s *StockService) GetStock(ctx context.Context, tenantID, id uuid.UUID) (*StockResponse, error) {
	entry, err := s.stockRepo.FindByIDForTenant(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}
	resp := ToStockResponse(entry)
	return &resp, nil
}

// ListStock returns a page of a warehouse's entries
func (s *StockService) ListStock(ctx context.Context, tenantID uuid.UUID, filter StockListFilter) ([]StockResponse, int64, error) {
	f := shared.Filter{Page: filter.Page, PageSize: filter.PageSize, OrderBy: "updated_at", OrderDir: "desc"}.Normalize()
	entries, total, err := s.stockRepo.FindByWarehouse(ctx, tenantID, filter.WarehouseID, f)
	if err != nil {
		return nil, 0, err
	}
	out := make([]StockResponse, 0, len(entries))
	for i := range entries {
		out = append(out, ToStockResponse(&entries[i]))
	}
	return out, total, nil
}

// DeactivateStock hides an entry. Warehouse entries are never deleted.
func (s *StockService) DeactivateStock(ctx context.Context, tenantID, id, userID uuid.UUID) (*StockResponse, error) {
	entry, err := s.stockRepo.FindByIDForTenant(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}
	entry.Deactivate(userID)
	if err := s.stockRepo.Save(ctx, entry); err != nil {
		return nil, err
	}
	resp := ToStockResponse(entry)
	return &resp, nil
}
