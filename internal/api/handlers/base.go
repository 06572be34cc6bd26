// Package handlers implements the management API endpoint handlers.
//
// Endpoints:
//   - GET /api/v1/health - Health check status
//   - GET /api/v1/stats - Runtime, host, and DNS outcome statistics
//   - GET /api/v1/config - Current configuration (secrets redacted)
//
// All endpoints except /health support optional API key authentication via
// the X-API-Key header.
package handlers

import (
	"log/slog"
	"sync"
	"time"

	"sinkdns/internal/config"
)

// DNSStatsSnapshot contains a point-in-time snapshot of responder statistics.
type DNSStatsSnapshot struct {
	QueriesTotal   uint64
	Answered       uint64
	NotImplemented uint64
	Dropped        uint64
	AvgLatencyMs   float64
}

// DNSStatsFunc is a function that returns responder statistics.
type DNSStatsFunc func() DNSStatsSnapshot

// Handler contains dependencies for API handlers.
type Handler struct {
	cfg       *config.Config
	logger    *slog.Logger
	startTime time.Time

	// Runtime components (set after the server starts)
	dnsStatsFunc DNSStatsFunc
	mu           sync.RWMutex
}

// New creates a new Handler with the given configuration.
func New(cfg *config.Config, logger *slog.Logger) *Handler {
	return &Handler{
		cfg:       cfg,
		logger:    logger,
		startTime: time.Now(),
	}
}

// SetDNSStatsFunc sets the function used to retrieve responder statistics.
func (h *Handler) SetDNSStatsFunc(fn DNSStatsFunc) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.dnsStatsFunc = fn
}

// GetDNSStatsFunc retrieves the responder statistics function.
func (h *Handler) GetDNSStatsFunc() DNSStatsFunc {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.dnsStatsFunc
}
