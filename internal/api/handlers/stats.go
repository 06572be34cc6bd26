package handlers

import (
	"net/http"
	"runtime"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shirou/gopsutil/v3/host"
	"github.com/shirou/gopsutil/v3/mem"

	"sinkdns/internal/api/models"
)

// Stats returns runtime statistics: process memory and goroutines, host
// memory and uptime, and the responder's per-outcome query counters.
func (h *Handler) Stats(c *gin.Context) {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)

	uptime := time.Since(h.startTime)

	resp := models.ServerStatsResponse{
		Uptime:        uptime.Round(time.Second).String(),
		UptimeSeconds: int64(uptime.Seconds()),
		StartTime:     h.startTime,
		GoRoutines:    runtime.NumGoroutine(),
		MemoryAllocMB: float64(m.Alloc) / 1024 / 1024,
		NumCPU:        runtime.NumCPU(),
		Host:          hostStats(),
	}

	if fn := h.GetDNSStatsFunc(); fn != nil {
		snap := fn()
		resp.DNSStats = models.DNSStatsResponse{
			QueriesTotal:   snap.QueriesTotal,
			Answered:       snap.Answered,
			NotImplemented: snap.NotImplemented,
			Dropped:        snap.Dropped,
			AvgLatencyMs:   snap.AvgLatencyMs,
		}
	}

	c.JSON(http.StatusOK, resp)
}

// hostStats gathers host-level numbers; nil when the platform does not
// expose them.
func hostStats() *models.HostStats {
	vm, err := mem.VirtualMemory()
	if err != nil {
		return nil
	}
	stats := &models.HostStats{
		MemoryUsedPercent: vm.UsedPercent,
		MemoryTotalMB:     float64(vm.Total) / 1024 / 1024,
	}
	if up, err := host.Uptime(); err == nil {
		stats.UptimeSeconds = up
	}
	return stats
}
