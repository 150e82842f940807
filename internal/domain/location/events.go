package location

import (
	"github.com/NehaS05/NYRApi-sub000/internal/domain/ledger"
	"github.com/NehaS05/NYRApi-sub000/internal/domain/shared"
	"github.com/google/uuid"
)

// Event types
const (
	EventTypeOnHandAdjusted     = "OnHandAdjusted"
	EventTypeOnHandMaterialized = "OnHandMaterialized"
	EventTypeOutwardRecorded    = "OutwardRecorded"
	EventTypeOutwardRemoved     = "OutwardRemoved"
	EventTypeUnlistedRecorded   = "UnlistedRecorded"
	EventTypeUnlistedDeleted    = "UnlistedDeleted"
)

// OnHandAdjustedEvent is raised by a manual quantity correction
type OnHandAdjustedEvent struct {
	shared.BaseDomainEvent
	LocationID uuid.UUID `json:"location_id"`
	Delta      int64     `json:"delta"`
	Quantity   int64     `json:"quantity"`
}

// NewOnHandAdjustedEvent creates an OnHandAdjustedEvent
func NewOnHandAdjustedEvent(e *OnHandEntry, delta int64) *OnHandAdjustedEvent {
	return &OnHandAdjustedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeOnHandAdjusted, AggregateTypeOnHand, e.ID, e.TenantID),
		LocationID:      e.LocationID,
		Delta:           delta,
		Quantity:        e.Quantity,
	}
}

// Movements implements shared.LedgerMovement
func (e *OnHandAdjustedEvent) Movements() []shared.Movement {
	if e.Delta == 0 {
		return nil
	}
	if e.Delta > 0 {
		return []shared.Movement{{Pool: ledger.PoolLocationOnHand.String(), Direction: "in", Units: e.Delta}}
	}
	return []shared.Movement{{Pool: ledger.PoolLocationOnHand.String(), Direction: "out", Units: -e.Delta}}
}

// OnHandMaterializedEvent is raised when a delivered restock lands at a location
type OnHandMaterializedEvent struct {
	shared.BaseDomainEvent
	LocationID uuid.UUID `json:"location_id"`
	ProductID  uuid.UUID `json:"product_id"`
	VariantID  uuid.UUID `json:"variant_id"`
	Quantity   int64     `json:"quantity"`
	StopID     uuid.UUID `json:"stop_id"`
}

// NewOnHandMaterializedEvent creates an OnHandMaterializedEvent
func NewOnHandMaterializedEvent(e *OnHandEntry, quantity int64, stopID uuid.UUID) *OnHandMaterializedEvent {
	return &OnHandMaterializedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeOnHandMaterialized, AggregateTypeOnHand, e.ID, e.TenantID),
		LocationID:      e.LocationID,
		ProductID:       e.ProductID,
		VariantID:       e.VariantID,
		Quantity:        quantity,
		StopID:          stopID,
	}
}

// Movements implements shared.LedgerMovement
func (e *OnHandMaterializedEvent) Movements() []shared.Movement {
	return []shared.Movement{
		{Pool: ledger.PoolVanInTransit.String(), Direction: "out", Units: e.Quantity},
		{Pool: ledger.PoolLocationOnHand.String(), Direction: "in", Units: e.Quantity},
	}
}

// OutwardRecordedEvent is raised when goods are scanned out of a location
type OutwardRecordedEvent struct {
	shared.BaseDomainEvent
	LocationID uuid.UUID `json:"location_id"`
	ProductID  uuid.UUID `json:"product_id"`
	Quantity   int64     `json:"quantity"`
}

// NewOutwardRecordedEvent creates an OutwardRecordedEvent
func NewOutwardRecordedEvent(e *OutwardEntry) *OutwardRecordedEvent {
	return &OutwardRecordedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeOutwardRecorded, AggregateTypeOutward, e.ID, e.TenantID),
		LocationID:      e.LocationID,
		ProductID:       e.ProductID,
		Quantity:        e.Quantity,
	}
}

// Movements implements shared.LedgerMovement
func (e *OutwardRecordedEvent) Movements() []shared.Movement {
	return []shared.Movement{
		{Pool: ledger.PoolLocationOnHand.String(), Direction: "out", Units: e.Quantity},
		{Pool: ledger.PoolOutward.String(), Direction: "in", Units: e.Quantity},
	}
}

// OutwardRemovedEvent is raised when an outward entry is deleted or deactivated
type OutwardRemovedEvent struct {
	shared.BaseDomainEvent
	Mode     string `json:"mode"`
	Restored int64  `json:"restored"`
}

// NewOutwardRemovedEvent creates an OutwardRemovedEvent
func NewOutwardRemovedEvent(e *OutwardEntry, mode RemoveMode, restored int64) *OutwardRemovedEvent {
	return &OutwardRemovedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeOutwardRemoved, AggregateTypeOutward, e.ID, e.TenantID),
		Mode:            mode.String(),
		Restored:        restored,
	}
}

// Movements implements shared.LedgerMovement
func (e *OutwardRemovedEvent) Movements() []shared.Movement {
	if e.Restored == 0 {
		return nil
	}
	return []shared.Movement{
		{Pool: ledger.PoolOutward.String(), Direction: "out", Units: e.Restored},
		{Pool: ledger.PoolLocationOnHand.String(), Direction: "in", Units: e.Restored},
	}
}

// UnlistedRecordedEvent is raised when an unlisted barcode is scanned
type UnlistedRecordedEvent struct {
	shared.BaseDomainEvent
	Barcode    string    `json:"barcode"`
	LocationID uuid.UUID `json:"location_id"`
	Added      int64     `json:"added"`
	Quantity   int64     `json:"quantity"`
}

// NewUnlistedRecordedEvent creates an UnlistedRecordedEvent
func NewUnlistedRecordedEvent(e *UnlistedEntry, added int64) *UnlistedRecordedEvent {
	return &UnlistedRecordedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeUnlistedRecorded, AggregateTypeUnlisted, e.ID, e.TenantID),
		Barcode:         e.Barcode,
		LocationID:      e.LocationID,
		Added:           added,
		Quantity:        e.Quantity,
	}
}

// Movements implements shared.LedgerMovement
func (e *UnlistedRecordedEvent) Movements() []shared.Movement {
	return []shared.Movement{{Pool: ledger.PoolUnlisted.String(), Direction: "in", Units: e.Added}}
}

// UnlistedDeletedEvent is raised when an unlisted row is removed
type UnlistedDeletedEvent struct {
	shared.BaseDomainEvent
	Quantity int64 `json:"quantity"`
}

// NewUnlistedDeletedEvent creates an UnlistedDeletedEvent
func NewUnlistedDeletedEvent(e *UnlistedEntry) *UnlistedDeletedEvent {
	return &UnlistedDeletedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeUnlistedDeleted, AggregateTypeUnlisted, e.ID, e.TenantID),
		Quantity:        e.Quantity,
	}
}

// Movements implements shared.LedgerMovement
func (e *UnlistedDeletedEvent) Movements() []shared.Movement {
	return []shared.Movement{{Pool: ledger.PoolUnlisted.String(), Direction: "out", Units: e.Quantity}}
}
