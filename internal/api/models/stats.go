package models

import "time"

// ServerStatsResponse contains server runtime statistics.
type ServerStatsResponse struct {
	Uptime        string           `json:"uptime"`
	UptimeSeconds int64            `json:"uptime_seconds"`
	StartTime     time.Time        `json:"start_time"`
	GoRoutines    int              `json:"goroutines"`
	MemoryAllocMB float64          `json:"memory_alloc_mb"`
	NumCPU        int              `json:"num_cpu"`
	Host          *HostStats       `json:"host,omitempty"`
	DNSStats      DNSStatsResponse `json:"dns"`
}

// HostStats contains host-level statistics, when available.
type HostStats struct {
	MemoryUsedPercent float64 `json:"memory_used_percent"`
	MemoryTotalMB     float64 `json:"memory_total_mb"`
	UptimeSeconds     uint64  `json:"uptime_seconds"`
}

// DNSStatsResponse contains per-outcome DNS query statistics.
type DNSStatsResponse struct {
	QueriesTotal   uint64  `json:"queries_total"`
	Answered       uint64  `json:"answered"`
	NotImplemented uint64  `json:"not_implemented"`
	Dropped        uint64  `json:"dropped"`
	AvgLatencyMs   float64 `json:"avg_latency_ms"`
}
