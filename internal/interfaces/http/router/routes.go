package router

import (
	"github.com/NehaS05/NYRApi-sub000/internal/interfaces/http/handler"
	"github.com/gin-gonic/gin"
)

// Handlers are the field stock API handlers
type Handlers struct {
	WarehouseStock *handler.WarehouseStockHandler
	VanTransfer    *handler.VanTransferHandler
	OnHand         *handler.OnHandHandler
	Outward        *handler.OutwardHandler
	Requests       *handler.RequestHandler
	Routes         *handler.RouteHandler
}

// FieldStockGroups returns the route groups of the versioned API
func FieldStockGroups(h Handlers) []RouteRegistrar {
	warehouseStock := NewDomainGroup("warehouse-stock", "/warehouse-stock").
		POST("", h.WarehouseStock.Receive).
		GET("", h.WarehouseStock.List).
		GET("/:id", h.WarehouseStock.GetByID).
		POST("/:id/deactivate", h.WarehouseStock.Deactivate)

	vanInventory := NewDomainGroup("van-inventory", "/van-inventory").
		POST("", h.VanTransfer.Create).
		GET("", h.VanTransfer.List).
		GET("/:id", h.VanTransfer.GetByID).
		PUT("/:id/status", h.VanTransfer.UpdateStatus).
		GET("/vans/:vanId/in-transit", h.VanTransfer.InTransit)

	inventory := NewDomainGroup("inventory", "/inventory").
		POST("", h.OnHand.Create).
		GET("", h.OnHand.List).
		GET("/:id", h.OnHand.GetByID).
		PUT("/:id", h.OnHand.Update).
		POST("/:id/adjust-quantity", h.OnHand.AdjustQuantity).
		POST("/:id/deactivate", h.OnHand.Deactivate)

	outward := NewDomainGroup("outward-inventory", "/outward-inventory").
		POST("", h.Outward.Create).
		GET("", h.Outward.List).
		GET("/:id", h.Outward.GetByID).
		POST("/:id/deactivate", h.Outward.Deactivate).
		DELETE("/:id", h.Outward.Delete)

	unlisted := NewDomainGroup("unlisted-inventory", "/unlisted-inventory").
		POST("", h.Outward.CreateUnlisted).
		GET("", h.Outward.ListUnlisted)

	restock := NewDomainGroup("restock-requests", "/restock-requests").
		POST("", h.Requests.CreateRestock).
		GET("", h.Requests.ListRestock).
		GET("/:id", h.Requests.GetRestock)

	followup := NewDomainGroup("followup-requests", "/followup-requests").
		POST("", h.Requests.CreateFollowup).
		GET("", h.Requests.ListFollowup).
		GET("/:id", h.Requests.GetFollowup)

	routes := NewDomainGroup("routes", "/routes").
		POST("", h.Routes.Create).
		GET("", h.Routes.List).
		GET("/:id", h.Routes.GetByID).
		POST("/:id/optimize", h.Routes.Optimize)

	stops := NewDomainGroup("route-stops", "/route-stops").
		PUT("/:id/status", h.Routes.UpdateStopStatus).
		POST("/:id/verify-otp", h.Routes.VerifyOTP)

	return []RouteRegistrar{
		warehouseStock, vanInventory, inventory, outward, unlisted,
		restock, followup, routes, stops,
	}
}

// RegisterSystemRoutes mounts the probes at the engine root
func RegisterSystemRoutes(engine *gin.Engine, h *handler.SystemHandler) {
	engine.GET("/health", h.Health)
	engine.GET("/ready", h.Ready)
}
