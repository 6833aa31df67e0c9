package handlers

import (
	"context"
	"net/http"
	"os"
	"runtime"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jroosing/zoneinv/internal/api/models"
	"github.com/jroosing/zoneinv/internal/auth"
	"github.com/shirou/gopsutil/v3/mem"
	"github.com/shirou/gopsutil/v3/process"
)

// Health godoc
// @Summary Health check
// @Description Returns ok when the API and its document store are reachable
// @Tags system
// @Produce json
// @Success 200 {object} models.StatusResponse
// @Failure 503 {object} models.StatusResponse
// @Router /health [get]
func (h *Handler) Health(c *gin.Context) {
	if h.store != nil {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()
		if err := h.store.Ping(ctx); err != nil {
			h.logger.Warn("document store unreachable", "err", err)
			c.JSON(http.StatusServiceUnavailable, models.StatusResponse{Status: "store unavailable"})
			return
		}
	}
	c.JSON(http.StatusOK, models.StatusResponse{Status: "ok"})
}

// Stats godoc
// @Summary Server statistics
// @Description Returns runtime statistics including memory, goroutines and process metrics
// @Tags system
// @Produce json
// @Success 200 {object} models.ServerStatsResponse
// @Security OAuth2Password
// @Router /stats [get]
func (h *Handler) Stats(c *gin.Context, _ *auth.User) {
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
		Process:       processStats(c.Request.Context()),
	}

	if vm, err := mem.VirtualMemoryWithContext(c.Request.Context()); err == nil {
		resp.System = &models.SystemStats{
			MemoryTotalMB:     float64(vm.Total) / 1024 / 1024,
			MemoryUsedPercent: vm.UsedPercent,
		}
	}

	c.JSON(http.StatusOK, resp)
}

// processStats samples the current process; nil if the platform refuses.
func processStats(ctx context.Context) *models.ProcessStats {
	pid := int32(os.Getpid())
	p, err := process.NewProcessWithContext(ctx, pid)
	if err != nil {
		return nil
	}
	stats := &models.ProcessStats{PID: pid}
	if mi, err := p.MemoryInfoWithContext(ctx); err == nil {
		stats.RSSMB = float64(mi.RSS) / 1024 / 1024
	}
	if cpu, err := p.CPUPercentWithContext(ctx); err == nil {
		stats.CPUPercent = cpu
	}
	if n, err := p.NumThreadsWithContext(ctx); err == nil {
		stats.NumThreads = n
	}
	return stats
}
