package router

import (
	"net/http"
	"net/http/httptest"
	"sort"
	"testing"

	"github.com/NehaS05/NYRApi-sub000/internal/interfaces/http/handler"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func TestNewRouter(t *testing.T) {
	r := NewRouter(gin.New())
	assert.Equal(t, "v1", r.apiVersion)
	assert.Empty(t, r.registrars)

	r = NewRouter(gin.New(), WithAPIVersion("v2"))
	assert.Equal(t, "v2", r.apiVersion)
}

func TestRouterSetup(t *testing.T) {
	engine := gin.New()
	var apiHits int
	r := NewRouter(engine, WithAPIMiddleware(func(c *gin.Context) {
		apiHits++
		c.Next()
	}))

	r.Register(NewDomainGroup("ping", "/ping").GET("", func(c *gin.Context) {
		c.String(http.StatusOK, "pong")
	}))
	engine.GET("/outside", func(c *gin.Context) { c.Status(http.StatusNoContent) })
	r.Setup()

	w := httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/ping", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "pong", w.Body.String())

	w = httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/outside", nil))
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, 1, apiHits, "api middleware is scoped to the api group")
}

func TestDomainGroup(t *testing.T) {
	var order []string
	g := NewDomainGroup("things", "/things").
		Use(func(c *gin.Context) {
			order = append(order, "group")
			c.Next()
		}).
		GET("/:id", func(c *gin.Context) { order = append(order, "get") }).
		POST("", func(c *gin.Context) { c.Status(http.StatusCreated) }).
		PUT("/:id", func(c *gin.Context) { c.Status(http.StatusOK) }).
		DELETE("/:id", func(c *gin.Context) { c.Status(http.StatusNoContent) })

	assert.Equal(t, "things", g.Name())
	assert.Equal(t, "/things", g.Prefix())

	engine := gin.New()
	g.RegisterRoutes(engine.Group(""))

	tests := []struct {
		method string
		path   string
		status int
	}{
		{http.MethodGet, "/things/1", http.StatusOK},
		{http.MethodPost, "/things", http.StatusCreated},
		{http.MethodPut, "/things/1", http.StatusOK},
		{http.MethodDelete, "/things/1", http.StatusNoContent},
	}
	for _, tt := range tests {
		w := httptest.NewRecorder()
		engine.ServeHTTP(w, httptest.NewRequest(tt.method, tt.path, nil))
		assert.Equal(t, tt.status, w.Code, tt.method+" "+tt.path)
	}
	assert.Equal(t, []string{"group", "get", "group", "group", "group"}, order)
}

func TestFieldStockGroups(t *testing.T) {
	engine := gin.New()
	NewRouter(engine).Register(FieldStockGroups(Handlers{
		WarehouseStock: &handler.WarehouseStockHandler{},
		VanTransfer:    &handler.VanTransferHandler{},
		OnHand:         &handler.OnHandHandler{},
		Outward:        &handler.OutwardHandler{},
		Requests:       &handler.RequestHandler{},
		Routes:         &handler.RouteHandler{},
	})...).Setup()
	RegisterSystemRoutes(engine, handler.NewSystemHandler("fieldstock", "test"))

	var got []string
	for _, route := range engine.Routes() {
		got = append(got, route.Method+" "+route.Path)
	}
	sort.Strings(got)

	want := []string{
		"DELETE /api/v1/outward-inventory/:id",
		"GET /api/v1/followup-requests",
		"GET /api/v1/followup-requests/:id",
		"GET /api/v1/inventory",
		"GET /api/v1/inventory/:id",
		"GET /api/v1/outward-inventory",
		"GET /api/v1/outward-inventory/:id",
		"GET /api/v1/restock-requests",
		"GET /api/v1/restock-requests/:id",
		"GET /api/v1/routes",
		"GET /api/v1/routes/:id",
		"GET /api/v1/unlisted-inventory",
		"GET /api/v1/van-inventory",
		"GET /api/v1/van-inventory/:id",
		"GET /api/v1/van-inventory/vans/:vanId/in-transit",
		"GET /api/v1/warehouse-stock",
		"GET /api/v1/warehouse-stock/:id",
		"GET /health",
		"GET /ready",
		"POST /api/v1/followup-requests",
		"POST /api/v1/inventory",
		"POST /api/v1/inventory/:id/adjust-quantity",
		"POST /api/v1/inventory/:id/deactivate",
		"POST /api/v1/outward-inventory",
		"POST /api/v1/outward-inventory/:id/deactivate",
		"POST /api/v1/restock-requests",
		"POST /api/v1/route-stops/:id/verify-otp",
		"POST /api/v1/routes",
		"POST /api/v1/routes/:id/optimize",
		"POST /api/v1/unlisted-inventory",
		"POST /api/v1/van-inventory",
		"POST /api/v1/warehouse-stock",
		"POST /api/v1/warehouse-stock/:id/deactivate",
		"PUT /api/v1/inventory/:id",
		"PUT /api/v1/route-stops/:id/status",
		"PUT /api/v1/van-inventory/:id/status",
	}
	require.Equal(t, want, got)
}
