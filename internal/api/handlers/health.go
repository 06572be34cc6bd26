package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"sinkdns/internal/api/models"
)

// Health returns server health status.
func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, models.StatusResponse{Status: "ok"})
}
