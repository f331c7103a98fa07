package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"QuickSales/app/models"
	"QuickSales/app/services"
)

type materialRequest struct {
	Name          string  `json:"name" binding:"required"`
	Unit          string  `json:"unit"`
	Stock         float64 `json:"stock"`
	PurchasePrice float64 `json:"purchasePrice"`
}

func (s *Server) listMaterials(c *gin.Context) {
	c.JSON(http.StatusOK, s.inventory.GetAllMaterials())
}

func (s *Server) createMaterial(c *gin.Context) {
	var req materialRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	material, err := s.inventory.CreateMaterial(req.Name, req.Unit, req.Stock, req.PurchasePrice)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, material)
}

func (s *Server) updateMaterial(c *gin.Context) {
	var req materialRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	material := models.Material{
		ID:            c.Param("id"),
		Name:          req.Name,
		Unit:          req.Unit,
		Stock:         req.Stock,
		PurchasePrice: req.PurchasePrice,
	}
	if err := s.inventory.UpdateMaterial(material); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, material)
}

func (s *Server) deleteMaterial(c *gin.Context) {
	if err := s.inventory.DeleteMaterial(c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

type purchaseRequest struct {
	Supplier string                           `json:"supplier" binding:"required"`
	Lines    map[string]services.PurchaseLine `json:"lines" binding:"required"`
}

func (s *Server) listPurchases(c *gin.Context) {
	c.JSON(http.StatusOK, s.inventory.GetAllPurchases())
}

func (s *Server) recordPurchase(c *gin.Context) {
	var req purchaseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	purchase, err := s.inventory.RecordPurchase(req.Supplier, req.Lines)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, purchase)
}

type createProductRequest struct {
	Name      string              `json:"name" binding:"required"`
	Unit      string              `json:"unit"`
	SalePrice float64             `json:"salePrice"`
	Recipe    []models.RecipeItem `json:"recipe" binding:"required"`
}

type updateProductRequest struct {
	Name      string  `json:"name" binding:"required"`
	Unit      string  `json:"unit"`
	Stock     float64 `json:"stock"`
	SalePrice float64 `json:"salePrice"`
}

func (s *Server) listProducts(c *gin.Context) {
	c.JSON(http.StatusOK, s.inventory.GetAllProducts())
}

func (s *Server) createProduct(c *gin.Context) {
	var req createProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	product, err := s.inventory.CreateProduct(req.Name, req.Unit, req.SalePrice, req.Recipe)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, product)
}

func (s *Server) updateProduct(c *gin.Context) {
	var req updateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	product := models.Product{
		ID:        c.Param("id"),
		Name:      req.Name,
		Unit:      req.Unit,
		Stock:     req.Stock,
		SalePrice: req.SalePrice,
	}
	if err := s.inventory.UpdateProduct(product); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusOK)
}

func (s *Server) deleteProduct(c *gin.Context) {
	if err := s.inventory.DeleteProduct(c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

type produceRequest struct {
	Quantity int `json:"quantity" binding:"required"`
}

func (s *Server) produce(c *gin.Context) {
	var req produceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := s.inventory.Produce(c.Param("id"), req.Quantity); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusOK)
}

func (s *Server) listProductionLogs(c *gin.Context) {
	c.JSON(http.StatusOK, s.inventory.GetProductionLogs())
}
