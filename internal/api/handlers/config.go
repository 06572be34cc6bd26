package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// GetConfig returns the current configuration with secrets redacted.
// The configuration is immutable for the process lifetime, so there are
// no write endpoints.
func (h *Handler) GetConfig(c *gin.Context) {
	redacted := *h.cfg
	redacted.API.APIKey = ""
	c.JSON(http.StatusOK, redacted)
}
