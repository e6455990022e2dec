package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/ojmarte/construction-api/internal/health"
)

// StatusReporter exposes the storage health as seen by the background monitor.
type StatusReporter interface {
	Status() health.StorageStatus
}

// HealthHandler serves the liveness and readiness endpoints.
type HealthHandler struct {
	storage StatusReporter
}

// NewHealthHandler constructs the health handler. A nil reporter means the
// service is always ready.
func NewHealthHandler(storage StatusReporter) *HealthHandler {
	return &HealthHandler{storage: storage}
}

// Live answers as long as the process serves HTTP.
func (h *HealthHandler) Live(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// Ready reports 503 while the storage backend is unreachable.
func (h *HealthHandler) Ready(c *gin.Context) {
	if h.storage == nil {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
		return
	}

	status := h.storage.Status()
	body := gin.H{"checked_at": status.CheckedAt.UTC().Format(time.RFC3339)}
	if !status.Healthy {
		body["status"] = "unavailable"
		if status.Err != nil {
			body["error"] = "storage unreachable"
		}
		c.JSON(http.StatusServiceUnavailable, body)
		return
	}

	body["status"] = "ok"
	c.JSON(http.StatusOK, body)
}
