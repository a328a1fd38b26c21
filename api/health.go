package api

import (
	"context"
	"net/http"
	"sync"
	"time"

	"goRaceServer/config"
	"goRaceServer/db"
	"goRaceServer/state"
)

/* =========================
   HEALTH CHECK
========================= */

// HealthResponse represents the health check response
type HealthResponse struct {
	Status   string `json:"status"`
	Postgres string `json:"postgres"`
	Redis    string `json:"redis"`
	Uptime   string `json:"uptime"`
}

var healthCache struct {
	mu        sync.Mutex
	response  HealthResponse
	checkedAt time.Time
}

// HandleHealthCheck handles GET /api/health
// The probe result is cached briefly so monitoring polls don't hammer the
// databases.
func HandleHealthCheck(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		sendError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	healthCache.mu.Lock()
	defer healthCache.mu.Unlock()

	now := time.Now()
	if now.Sub(healthCache.checkedAt) >= config.HealthCacheTTL {
		resp := HealthResponse{
			Status:   "ok",
			Postgres: "ok",
			Redis:    "ok",
			Uptime:   now.Sub(state.Server.ServerStartTime).Round(time.Second).String(),
		}

		ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
		defer cancel()

		if err := db.HealthCheckPostgres(ctx); err != nil {
			resp.Status = "degraded"
			resp.Postgres = err.Error()
		}
		if err := db.HealthCheck(ctx); err != nil {
			resp.Status = "degraded"
			resp.Redis = err.Error()
		}

		healthCache.response = resp
		healthCache.checkedAt = now
	}

	status := http.StatusOK
	if healthCache.response.Status != "ok" {
		status = http.StatusServiceUnavailable
	}
	sendJSON(w, status, healthCache.response)
}
