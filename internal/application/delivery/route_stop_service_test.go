package delivery

import (
	"context"
	"testing"
	"time"

	"github.com/NehaS05/NYRApi-sub000/internal/domain/delivery"
	"github.com/NehaS05/NYRApi-sub000/internal/domain/location"
	"github.com/NehaS05/NYRApi-sub000/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stopFixture struct {
	store      *memStore
	publisher  *MockEventPublisher
	routes     *RouteService
	stops      *RouteStopService
	requests   *RequestService
	tenantID   uuid.UUID
	userID     uuid.UUID
	driverID   uuid.UUID
	customerID uuid.UUID
	locationID uuid.UUID
	now        time.Time
}

func newStopFixture() *stopFixture {
	f := &stopFixture{
		store:      newMemStore(),
		publisher:  &MockEventPublisher{},
		tenantID:   uuid.New(),
		userID:     uuid.New(),
		driverID:   uuid.New(),
		customerID: uuid.New(),
		locationID: uuid.New(),
		now:        time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC),
	}
	repos := f.store.repositories()
	scope := NewNoOpTransactionScope(repos)
	dir := newFakeDirectory()
	f.routes = NewRouteService(repos.Routes, repos.Restocks, repos.Followups, dir, scope)
	f.requests = NewRequestService(repos.Restocks, repos.Followups, dir)
	f.stops = NewRouteStopService(repos.Stops, scope)
	f.stops.SetEventPublisher(f.publisher)
	f.stops.now = func() time.Time { return f.now }
	return f
}

func (f *stopFixture) restock(t *testing.T, items ...CreateRestockItem) *RestockResponse {
	t.Helper()
	resp, err := f.requests.CreateRestockRequest(context.Background(), f.tenantID, f.userID, CreateRestockRequest{
		CustomerID: f.customerID,
		LocationID: f.locationID,
		Items:      items,
	})
	require.NoError(t, err)
	return resp
}

func (f *stopFixture) followup(t *testing.T) *FollowupResponse {
	t.Helper()
	resp, err := f.requests.CreateFollowupRequest(context.Background(), f.tenantID, f.userID, CreateFollowupRequest{
		CustomerID: f.customerID,
		LocationID: f.locationID,
	})
	require.NoError(t, err)
	return resp
}

func (f *stopFixture) route(t *testing.T, stops ...CreateRouteStop) *CreatedRouteResponse {
	t.Helper()
	resp, err := f.routes.CreateRoute(context.Background(), f.tenantID, f.userID, CreateRouteRequest{
		DriverID:     f.driverID,
		DeliveryDate: f.now,
		Stops:        stops,
	})
	require.NoError(t, err)
	return resp
}

func (f *stopFixture) onHandAt(productID uuid.UUID) (location.OnHandEntry, bool) {
	return memOnHand{f.store}.byKey(f.tenantID, f.locationID, productID, uuid.Nil)
}

func (f *stopFixture) setStatus(stopID uuid.UUID, status string, otp *string) (*RouteStopResponse, error) {
	return f.stops.UpdateStopStatus(context.Background(), f.tenantID, stopID, f.userID, UpdateStopStatusRequest{Status: status, DeliveryOTP: otp})
}

func strPtr(s string) *string { return &s }

func TestRouteStopService_CompletionMaterializesRestock(t *testing.T) {
	f := newStopFixture()
	productA, productB := uuid.New(), uuid.New()

	// productA is already stocked at the location
	existing, err := location.NewOnHandEntry(f.tenantID, f.locationID, productA, nil, "", 4, f.userID)
	require.NoError(t, err)
	f.store.onHand[existing.ID] = *existing

	restock := f.restock(t,
		CreateRestockItem{ProductID: productA, Quantity: 6},
		CreateRestockItem{ProductID: productB, Quantity: 3},
	)
	route := f.route(t, CreateRouteStop{LocationID: f.locationID, RestockRequestID: &restock.ID})
	stopID := route.Stops[0].ID

	resp, err := f.setStatus(stopID, "Completed", nil)
	require.NoError(t, err)
	assert.Equal(t, "Completed", resp.Status)
	require.NotNil(t, resp.CompletedAt)
	assert.Equal(t, f.now, *resp.CompletedAt)

	a, ok := f.onHandAt(productA)
	require.True(t, ok)
	assert.Equal(t, int64(10), a.Quantity)

	b, ok := f.onHandAt(productB)
	require.True(t, ok)
	assert.Equal(t, int64(3), b.Quantity)
	require.NotNil(t, b.CreatedBy)
	assert.Equal(t, f.driverID, *b.CreatedBy)

	stored := f.store.restocks[restock.ID]
	assert.Equal(t, delivery.RequestStatusDelivered, stored.Status)
	require.NotNil(t, stored.MaterializedAt)
	for _, item := range stored.Items {
		require.NotNil(t, item.DeliveredQuantity)
		assert.Equal(t, item.Quantity, *item.DeliveredQuantity)
	}

	assert.Equal(t, delivery.RouteStatusInProgress, f.store.routes[route.ID].Status)
	assert.Len(t, f.publisher.GetEventsByType(location.EventTypeOnHandMaterialized), 2)
	assert.Len(t, f.publisher.GetEventsByType(delivery.EventTypeRouteStarted), 1)

	// a second hand-over status does not add the goods again
	_, err = f.setStatus(stopID, "Delivered", nil)
	require.NoError(t, err)
	a, _ = f.onHandAt(productA)
	assert.Equal(t, int64(10), a.Quantity)
	assert.Len(t, f.publisher.GetEventsByType(location.EventTypeOnHandMaterialized), 2)
	assert.Len(t, f.publisher.GetEventsByType(delivery.EventTypeRouteStarted), 1)
}

func TestRouteStopService_RequestStatusProjection(t *testing.T) {
	tests := []struct {
		stop     string
		restock  delivery.RequestStatus
		followup delivery.RequestStatus
	}{
		{"In Progress", delivery.RequestStatusInTransit, delivery.RequestStatusInTransit},
		{"Not Delivered", delivery.RequestStatusRestockRequested, delivery.RequestStatusFollowupRequested},
		{"Skipped", delivery.RequestStatusInTransit, delivery.RequestStatusInTransit},
		{"Pending", delivery.RequestStatusInTransit, delivery.RequestStatusInTransit},
		{"Delivered", delivery.RequestStatusDelivered, delivery.RequestStatusDelivered},
	}

	for _, tt := range tests {
		t.Run(tt.stop, func(t *testing.T) {
			f := newStopFixture()
			restock := f.restock(t, CreateRestockItem{ProductID: uuid.New(), Quantity: 1})
			followup := f.followup(t)
			route := f.route(t, CreateRouteStop{
				LocationID:        f.locationID,
				RestockRequestID:  &restock.ID,
				FollowupRequestID: &followup.ID,
			})
			stopID := route.Stops[0].ID

			// move both requests off their initial status first
			_, err := f.setStatus(stopID, "In Progress", nil)
			require.NoError(t, err)

			_, err = f.setStatus(stopID, tt.stop, nil)
			require.NoError(t, err)

			assert.Equal(t, tt.restock, f.store.restocks[restock.ID].Status)
			assert.Equal(t, tt.followup, f.store.followups[followup.ID].Status)
		})
	}
}

func TestRouteStopService_OTPGate(t *testing.T) {
	f := newStopFixture()
	product := uuid.New()
	restock := f.restock(t, CreateRestockItem{ProductID: product, Quantity: 2})
	route := f.route(t, CreateRouteStop{LocationID: f.locationID, RestockRequestID: &restock.ID, DeliveryOTP: "4821"})
	stopID := route.Stops[0].ID
	assert.Equal(t, "4821", route.DeliveryOTPs[stopID])
	assert.True(t, route.Stops[0].RequiresOTP)

	_, err := f.setStatus(stopID, "Completed", nil)
	assert.ErrorIs(t, err, delivery.ErrOTPRequired)

	_, err = f.setStatus(stopID, "Delivered", strPtr("0000"))
	assert.ErrorIs(t, err, delivery.ErrOTPMismatch)

	stop := f.store.stops[stopID]
	assert.Equal(t, delivery.StopStatusPending, stop.Status)
	assert.Nil(t, stop.CompletedAt)
	assert.Equal(t, delivery.RouteStatusNotStarted, f.store.routes[route.ID].Status)
	_, stocked := f.onHandAt(product)
	assert.False(t, stocked)

	// non hand-over statuses are not gated
	_, err = f.setStatus(stopID, "In Progress", nil)
	require.NoError(t, err)

	resp, err := f.setStatus(stopID, "Completed", strPtr(" 4821 "))
	require.NoError(t, err)
	assert.Equal(t, "Completed", resp.Status)
	entry, stocked := f.onHandAt(product)
	require.True(t, stocked)
	assert.Equal(t, int64(2), entry.Quantity)
}

func TestRouteStopService_CompletedAtKeptOnLaterStatus(t *testing.T) {
	f := newStopFixture()
	route := f.route(t, CreateRouteStop{LocationID: f.locationID})
	stopID := route.Stops[0].ID

	_, err := f.setStatus(stopID, "Delivered", nil)
	require.NoError(t, err)

	f.now = f.now.Add(time.Hour)
	resp, err := f.setStatus(stopID, "Not Delivered", nil)
	require.NoError(t, err)
	require.NotNil(t, resp.CompletedAt)
	assert.Equal(t, f.now.Add(-time.Hour), *resp.CompletedAt)
}

func TestRouteStopService_RejectsUnknownStatus(t *testing.T) {
	f := newStopFixture()
	route := f.route(t, CreateRouteStop{LocationID: f.locationID})

	_, err := f.setStatus(route.Stops[0].ID, "Teleported", nil)
	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "INVALID_STATUS", domainErr.Code)
}

func TestRouteStopService_CaseInsensitiveStatus(t *testing.T) {
	f := newStopFixture()
	route := f.route(t, CreateRouteStop{LocationID: f.locationID})

	resp, err := f.setStatus(route.Stops[0].ID, "in progress", nil)
	require.NoError(t, err)
	assert.Equal(t, "In Progress", resp.Status)
}

func TestRouteStopService_VerifyOTP(t *testing.T) {
	f := newStopFixture()
	route := f.route(t,
		CreateRouteStop{LocationID: f.locationID, DeliveryOTP: "1234"},
		CreateRouteStop{LocationID: f.locationID},
	)
	ctx := context.Background()

	resp, err := f.stops.VerifyOTP(ctx, f.tenantID, route.Stops[0].ID, VerifyOTPRequest{OTP: "1234"})
	require.NoError(t, err)
	assert.True(t, resp.IsValid)

	_, err = f.stops.VerifyOTP(ctx, f.tenantID, route.Stops[0].ID, VerifyOTPRequest{OTP: "9999"})
	assert.ErrorIs(t, err, delivery.ErrInvalidOTP)

	_, err = f.stops.VerifyOTP(ctx, f.tenantID, route.Stops[1].ID, VerifyOTPRequest{OTP: "1234"})
	assert.ErrorIs(t, err, delivery.ErrNoOTPRequired)

	assert.Equal(t, delivery.StopStatusPending, f.store.stops[route.Stops[0].ID].Status)
}
