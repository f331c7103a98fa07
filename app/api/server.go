// Package api exposes the ledger over HTTP for the desktop UI. Handlers are
// thin: bind the request, call the service, map the error.
package api

import (
	"errors"
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"QuickSales/app/services"
)

// Server bundles the services behind the HTTP surface
type Server struct {
	inventory *services.InventoryService
	sales     *services.SalesService
	customers *services.CustomerService
	backup    *services.BackupService
	insight   *services.InsightService
	sync      *services.SyncEngine
}

// NewServer creates the HTTP server facade
func NewServer(
	inventory *services.InventoryService,
	sales *services.SalesService,
	customers *services.CustomerService,
	backup *services.BackupService,
	insight *services.InsightService,
	sync *services.SyncEngine,
) *Server {
	return &Server{
		inventory: inventory,
		sales:     sales,
		customers: customers,
		backup:    backup,
		insight:   insight,
		sync:      sync,
	}
}

// Router builds the gin engine with all routes registered
func (s *Server) Router() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(cors.Default())

	api := r.Group("/api")
	{
		api.GET("/materials", s.listMaterials)
		api.POST("/materials", s.createMaterial)
		api.PUT("/materials/:id", s.updateMaterial)
		api.DELETE("/materials/:id", s.deleteMaterial)

		api.GET("/purchases", s.listPurchases)
		api.POST("/purchases", s.recordPurchase)

		api.GET("/products", s.listProducts)
		api.POST("/products", s.createProduct)
		api.PUT("/products/:id", s.updateProduct)
		api.DELETE("/products/:id", s.deleteProduct)
		api.POST("/products/:id/produce", s.produce)
		api.GET("/production-logs", s.listProductionLogs)

		api.GET("/orders", s.listOrders)
		api.POST("/orders", s.createOrder)
		api.GET("/orders/availability", s.orderAvailability)
		api.GET("/orders/:id", s.getOrder)
		api.PUT("/orders/:id", s.updateOrder)
		api.PUT("/orders/:id/status", s.updateOrderStatus)
		api.POST("/orders/archive", s.archiveOrders)

		api.GET("/customers", s.listCustomers)
		api.POST("/customers", s.createCustomer)
		api.PUT("/customers/:id", s.updateCustomer)
		api.DELETE("/customers/:id", s.deleteCustomer)
		api.GET("/customers/:id/stats", s.customerStats)

		api.GET("/sync/status", s.syncStatus)
		api.POST("/sync/reconnect", s.syncReconnect)
		api.PUT("/sync/config", s.syncConfigure)

		api.GET("/insights", s.salesInsight)

		api.GET("/backup", s.exportBackup)
		api.POST("/backup/restore", s.restoreBackup)
	}

	return r
}

// respondError maps service errors to HTTP statuses
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, services.ErrInsufficientStock),
		errors.Is(err, services.ErrOrderFinalized),
		errors.Is(err, services.ErrInvalidTransition):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, services.ErrEmptyCart),
		errors.Is(err, services.ErrEmptyPurchase),
		errors.Is(err, services.ErrEmptyRecipe),
		errors.Is(err, services.ErrInvalidQuantity),
		errors.Is(err, services.ErrInvalidInput),
		errors.Is(err, services.ErrInvalidBackup):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}
