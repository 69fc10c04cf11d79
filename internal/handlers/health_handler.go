package handlers

import (
	"net/http"
	"time"

	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/disk"
	"github.com/shirou/gopsutil/v3/mem"

	"invoice-desk/internal/health"
	"invoice-desk/pkg/utils"
)

type HealthHandler struct {
	checker *health.HealthChecker
}

func NewHealthHandler(checker *health.HealthChecker) *HealthHandler {
	return &HealthHandler{checker: checker}
}

// BasicHealth - for Kubernetes liveness probe
func (h *HealthHandler) BasicHealth(w http.ResponseWriter, r *http.Request) {
	utils.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// ReadinessHealth - for Kubernetes readiness probe
func (h *HealthHandler) ReadinessHealth(w http.ResponseWriter, r *http.Request) {
	status := h.checker.CheckBasic()

	code := http.StatusOK
	if status.Status != "healthy" {
		code = http.StatusServiceUnavailable
	}

	utils.JSON(w, code, status)
}

// DetailedHealth - for monitoring dashboard, includes host resource stats
func (h *HealthHandler) DetailedHealth(w http.ResponseWriter, r *http.Request) {
	status := h.checker.CheckBasic()

	cpuPercents, _ := cpu.Percent(time.Second, false)
	cpuUsage := 0.0
	if len(cpuPercents) > 0 {
		cpuUsage = cpuPercents[0]
	}

	memStats, _ := mem.VirtualMemory()
	diskStats, _ := disk.Usage("/")

	system := map[string]interface{}{"cpu_percent": cpuUsage}
	if memStats != nil {
		system["memory_percent"] = memStats.UsedPercent
		system["memory_total_mb"] = memStats.Total / 1024 / 1024
	}
	if diskStats != nil {
		system["disk_percent"] = diskStats.UsedPercent
	}

	utils.JSON(w, http.StatusOK, map[string]interface{}{
		"status":      status.Status,
		"invoice_api": status.InvoiceAPI,
		"system":      system,
	})
}
