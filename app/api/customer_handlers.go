package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"QuickSales/app/models"
)

type customerRequest struct {
	Name    string              `json:"name" binding:"required"`
	Phone   string              `json:"phone"`
	Address string              `json:"address"`
	Type    models.CustomerType `json:"type"`
	Notes   string              `json:"notes"`
}

func (s *Server) listCustomers(c *gin.Context) {
	c.JSON(http.StatusOK, s.customers.GetAllCustomers())
}

func (s *Server) createCustomer(c *gin.Context) {
	var req customerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	customer, err := s.customers.CreateCustomer(req.Name, req.Phone, req.Address, req.Type, req.Notes)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, customer)
}

func (s *Server) updateCustomer(c *gin.Context) {
	var req customerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	customer := models.Customer{
		ID:      c.Param("id"),
		Name:    req.Name,
		Phone:   req.Phone,
		Address: req.Address,
		Type:    req.Type,
		Notes:   req.Notes,
	}
	if customer.Type == "" {
		customer.Type = models.CustomerTypeRetail
	}
	if err := s.customers.UpdateCustomer(customer); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, customer)
}

func (s *Server) deleteCustomer(c *gin.Context) {
	if err := s.customers.DeleteCustomer(c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (s *Server) customerStats(c *gin.Context) {
	stats, err := s.customers.GetCustomerStats(c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}
