package api

import (
	"context"
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	zlog "github.com/rs/zerolog/log"

	"QuickSales/app/config"
	"QuickSales/app/database"
)

func (s *Server) syncStatus(c *gin.Context) {
	status, lastErr := s.sync.Status()
	c.JSON(http.StatusOK, gin.H{"status": status, "lastError": lastErr})
}

// syncReconnect reruns the startup pull against the current remote
func (s *Server) syncReconnect(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 30*time.Second)
	defer cancel()
	s.sync.Bootstrap(ctx)

	status, lastErr := s.sync.Status()
	c.JSON(http.StatusOK, gin.H{"status": status, "lastError": lastErr})
}

type syncConfigRequest struct {
	URL       string `json:"url" binding:"required"`
	AccessKey string `json:"accessKey"`
}

// syncConfigure persists a new remote endpoint, rebuilds the client and
// reruns the startup pull against it
func (s *Server) syncConfigure(c *gin.Context) {
	var req syncConfigRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if _, err := config.SetRemote(req.URL, req.AccessKey); err != nil {
		respondError(c, err)
		return
	}

	remote, err := database.ConnectRemote(database.BuildRemoteDSN(req.URL, req.AccessKey))
	if err != nil {
		// The endpoint is saved but unreachable; fall back to offline
		zlog.Warn().Err(err).Msg("new remote endpoint unreachable")
		ctx, cancel := context.WithTimeout(c.Request.Context(), 30*time.Second)
		defer cancel()
		s.sync.Reconfigure(ctx, nil)
		status, lastErr := s.sync.Status()
		c.JSON(http.StatusOK, gin.H{"status": status, "lastError": lastErr})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 30*time.Second)
	defer cancel()
	s.sync.Reconfigure(ctx, remote)

	status, lastErr := s.sync.Status()
	c.JSON(http.StatusOK, gin.H{"status": status, "lastError": lastErr})
}

func (s *Server) salesInsight(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 30*time.Second)
	defer cancel()

	insight := s.insight.GetSalesInsight(ctx)
	if insight == nil {
		c.JSON(http.StatusOK, gin.H{"available": false})
		return
	}
	c.JSON(http.StatusOK, gin.H{"available": true, "insight": insight})
}

func (s *Server) exportBackup(c *gin.Context) {
	data, err := s.backup.Export()
	if err != nil {
		respondError(c, err)
		return
	}
	c.Header("Content-Disposition", `attachment; filename="quicksales-backup.json"`)
	c.Data(http.StatusOK, "application/json", data)
}

func (s *Server) restoreBackup(c *gin.Context) {
	data, err := io.ReadAll(c.Request.Body)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := s.backup.Import(data); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusOK)
}
