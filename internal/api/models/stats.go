package models

import "time"

// ServerStatsResponse contains API process runtime statistics.
type ServerStatsResponse struct {
	Uptime        string        `json:"uptime"`
	UptimeSeconds int64         `json:"uptime_seconds"`
	StartTime     time.Time     `json:"start_time"`
	GoRoutines    int           `json:"goroutines"`
	MemoryAllocMB float64       `json:"memory_alloc_mb"`
	NumCPU        int           `json:"num_cpu"`
	Process       *ProcessStats `json:"process,omitempty"`
	System        *SystemStats  `json:"system,omitempty"`
}

// ProcessStats is sampled from the OS for the API process.
type ProcessStats struct {
	PID        int32   `json:"pid"`
	RSSMB      float64 `json:"rss_mb"`
	CPUPercent float64 `json:"cpu_percent"`
	NumThreads int32   `json:"num_threads"`
}

// SystemStats describes the host the API runs on.
type SystemStats struct {
	MemoryTotalMB     float64 `json:"memory_total_mb"`
	MemoryUsedPercent float64 `json:"memory_used_percent"`
}
