package handler

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"testing"

	deliveryapp "github.com/NehaS05/NYRApi-sub000/internal/application/delivery"
	locationapp "github.com/NehaS05/NYRApi-sub000/internal/application/location"
	warehouseapp "github.com/NehaS05/NYRApi-sub000/internal/application/warehouse"
	"github.com/NehaS05/NYRApi-sub000/internal/domain/reference"
	"github.com/NehaS05/NYRApi-sub000/internal/infrastructure/persistence"
	"github.com/NehaS05/NYRApi-sub000/internal/interfaces/http/dto"
	"github.com/NehaS05/NYRApi-sub000/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func init() {
	gin.SetMode(gin.TestMode)
	if err := middleware.SetupValidator(); err != nil {
		panic(err)
	}
}

// testEnv is the whole field stock API over an in-memory database
type testEnv struct {
	t        *testing.T
	db       *gorm.DB
	router   *gin.Engine
	tenantID uuid.UUID
	userID   uuid.UUID
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:                 gormlogger.Default.LogMode(gormlogger.Silent),
		SkipDefaultTransaction: true,
		TranslateError:         true,
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })
	require.NoError(t, persistence.AutoMigrate(db))

	directory := persistence.NewGormReferenceDirectory(db)
	stockRepo := persistence.NewGormWarehouseStockRepository(db)
	transferRepo := persistence.NewGormVanTransferRepository(db)
	onHandRepo := persistence.NewGormOnHandRepository(db)
	outwardRepo := persistence.NewGormOutwardRepository(db)
	unlistedRepo := persistence.NewGormUnlistedRepository(db)
	restockRepo := persistence.NewGormRestockRequestRepository(db)
	followupRepo := persistence.NewGormFollowupRequestRepository(db)
	routeRepo := persistence.NewGormRouteRepository(db)
	stopRepo := persistence.NewGormRouteStopRepository(db)
	deliveryTx := persistence.NewDeliveryTransactionScope(db)

	stockHandler := NewWarehouseStockHandler(warehouseapp.NewStockService(stockRepo, directory))
	transferHandler := NewVanTransferHandler(warehouseapp.NewVanTransferService(transferRepo, directory, persistence.NewWarehouseTransactionScope(db)))
	onHandHandler := NewOnHandHandler(locationapp.NewOnHandService(onHandRepo, directory))
	outwardHandler := NewOutwardHandler(
		locationapp.NewOutwardService(outwardRepo, directory, persistence.NewLocationTransactionScope(db)),
		locationapp.NewUnlistedService(unlistedRepo, directory),
	)
	requestHandler := NewRequestHandler(deliveryapp.NewRequestService(restockRepo, followupRepo, directory))
	routeHandler := NewRouteHandler(
		deliveryapp.NewRouteService(routeRepo, restockRepo, followupRepo, directory, deliveryTx),
		deliveryapp.NewRouteStopService(stopRepo, deliveryTx),
	)

	env := &testEnv{t: t, db: db, tenantID: uuid.New()}
	env.userID = env.seed(reference.KindUser)

	router := gin.New()
	router.Use(middleware.RequestID())
	router.Use(middleware.Tenant(middleware.TenantMiddlewareConfig{DefaultTenantID: env.tenantID}))
	api := router.Group("/api/v1")

	api.POST("/warehouse-stock", stockHandler.Receive)
	api.GET("/warehouse-stock", stockHandler.List)
	api.GET("/warehouse-stock/:id", stockHandler.GetByID)
	api.POST("/warehouse-stock/:id/deactivate", stockHandler.Deactivate)

	api.POST("/van-inventory", transferHandler.Create)
	api.GET("/van-inventory", transferHandler.List)
	api.GET("/van-inventory/:id", transferHandler.GetByID)
	api.PUT("/van-inventory/:id/status", transferHandler.UpdateStatus)
	api.GET("/van-inventory/vans/:vanId/in-transit", transferHandler.InTransit)

	api.POST("/inventory", onHandHandler.Create)
	api.GET("/inventory", onHandHandler.List)
	api.GET("/inventory/:id", onHandHandler.GetByID)
	api.PUT("/inventory/:id", onHandHandler.Update)
	api.POST("/inventory/:id/adjust-quantity", onHandHandler.AdjustQuantity)
	api.POST("/inventory/:id/deactivate", onHandHandler.Deactivate)

	api.POST("/outward-inventory", outwardHandler.Create)
	api.GET("/outward-inventory", outwardHandler.List)
	api.GET("/outward-inventory/:id", outwardHandler.GetByID)
	api.POST("/outward-inventory/:id/deactivate", outwardHandler.Deactivate)
	api.DELETE("/outward-inventory/:id", outwardHandler.Delete)
	api.POST("/unlisted-inventory", outwardHandler.CreateUnlisted)
	api.GET("/unlisted-inventory", outwardHandler.ListUnlisted)

	api.POST("/restock-requests", requestHandler.CreateRestock)
	api.GET("/restock-requests", requestHandler.ListRestock)
	api.GET("/restock-requests/:id", requestHandler.GetRestock)
	api.POST("/followup-requests", requestHandler.CreateFollowup)
	api.GET("/followup-requests", requestHandler.ListFollowup)
	api.GET("/followup-requests/:id", requestHandler.GetFollowup)

	api.POST("/routes", routeHandler.Create)
	api.GET("/routes", routeHandler.List)
	api.GET("/routes/:id", routeHandler.GetByID)
	api.POST("/routes/:id/optimize", routeHandler.Optimize)
	api.PUT("/route-stops/:id/status", routeHandler.UpdateStopStatus)
	api.POST("/route-stops/:id/verify-otp", routeHandler.VerifyOTP)

	env.router = router
	return env
}

// seed inserts an active master data record of kind and returns its id
func (e *testEnv) seed(kind reference.Kind) uuid.UUID {
	e.t.Helper()
	rec := persistence.ReferenceRecord{ID: uuid.New(), TenantID: e.tenantID, Name: string(kind), IsActive: true}
	require.NoError(e.t, e.db.Table(persistence.ReferenceTables[kind]).Create(&rec).Error)
	return rec.ID
}

// do sends a request as the environment's user and returns the recorder
func (e *testEnv) do(method, path string, body any) *httptest.ResponseRecorder {
	e.t.Helper()

	var payload bytes.Buffer
	if body != nil {
		require.NoError(e.t, json.NewEncoder(&payload).Encode(body))
	}
	req := httptest.NewRequest(method, path, &payload)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(middleware.UserHeader, e.userID.String())

	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

// apiResponse is the response envelope with data left raw
type apiResponse struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   *dto.ErrorInfo  `json:"error"`
	Meta    *dto.Meta       `json:"meta"`
}

// decode unmarshals the envelope and, when out is non-nil, its data
func decode(t *testing.T, w *httptest.ResponseRecorder, out any) apiResponse {
	t.Helper()

	var resp apiResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp), w.Body.String())
	if out != nil {
		require.NoError(t, json.Unmarshal(resp.Data, out), w.Body.String())
	}
	return resp
}

// requireStatus fails with the body when the status differs
func requireStatus(t *testing.T, want int, w *httptest.ResponseRecorder) {
	t.Helper()
	require.Equal(t, want, w.Code, w.Body.String())
}
