package server

import (
	"net/http"
	"os"
	"runtime"
	"time"

	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/mem"
)

// SystemStatusResponse reports process and host health for the ops dashboard
type SystemStatusResponse struct {
	Status        string  `json:"status"`
	UptimeSeconds int64   `json:"uptime_seconds"`
	CPUPercent    float64 `json:"cpu_percent"`
	MemoryPercent float64 `json:"memory_percent"`
	Goroutines    int     `json:"goroutines"`
	DatabasePath  string  `json:"database_path"`
	DatabaseBytes int64   `json:"database_bytes"`
}

// handleSystemStatus handles system status requests
func (s *Server) handleSystemStatus(w http.ResponseWriter, r *http.Request) {
	cpuAvg, memPercent := s.systemUsage()

	response := SystemStatusResponse{
		Status:        "running",
		UptimeSeconds: int64(time.Since(s.started).Seconds()),
		CPUPercent:    cpuAvg,
		MemoryPercent: memPercent,
		Goroutines:    runtime.NumGoroutine(),
		DatabasePath:  s.db.Path(),
	}

	if info, err := os.Stat(s.db.Path()); err == nil {
		response.DatabaseBytes = info.Size()
	}

	if err := s.db.Conn().Ping(); err != nil {
		s.log.Error().Err(err).Msg("Database ping failed")
		response.Status = "degraded"
	}

	s.writeJSON(w, http.StatusOK, response)
}

// systemUsage samples CPU and memory utilisation. Failures degrade to zero
// rather than failing the status endpoint.
func (s *Server) systemUsage() (cpuAvg, memPercent float64) {
	cpuPercent, err := cpu.Percent(100*time.Millisecond, false)
	if err != nil {
		s.log.Warn().Err(err).Msg("Failed to get CPU percentage")
	} else if len(cpuPercent) > 0 {
		cpuAvg = cpuPercent[0]
	}

	memStat, err := mem.VirtualMemory()
	if err != nil {
		s.log.Warn().Err(err).Msg("Failed to get memory statistics")
		return cpuAvg, 0
	}

	return cpuAvg, memStat.UsedPercent
}
