package api

import (
	"log"
	"net/http"
	"strconv"

	"goRaceServer/db"
)

/* =========================
   RESPONSE TYPES
========================= */

// LeaderboardResponse represents one page of the leaderboard
type LeaderboardResponse struct {
	Success     bool                  `json:"success"`
	Leaderboard []db.LeaderboardEntry `json:"leaderboard"`
	Page        int                   `json:"page"`
	Limit       int                   `json:"limit"`
	Cached      bool                  `json:"cached"`
}

/* =========================
   LEADERBOARD ENDPOINT
========================= */

// HandleGetLeaderboard handles GET /api/leaderboard
// Query params: page (default 1), limit (default 20, max 100). Pages are
// served from the Redis cache when fresh.
func HandleGetLeaderboard(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		sendError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	page := 1
	if s := r.URL.Query().Get("page"); s != "" {
		if v, err := strconv.Atoi(s); err == nil && v > 0 {
			page = v
		}
	}
	limit := 20
	if s := r.URL.Query().Get("limit"); s != "" {
		if v, err := strconv.Atoi(s); err == nil && v > 0 && v <= 100 {
			limit = v
		}
	}

	ctx := r.Context()

	cached, err := db.GetCachedLeaderboardPage(ctx, page, limit)
	if err != nil {
		log.Printf("⚠️  Leaderboard cache read failed: %v", err)
	}
	if cached != nil {
		sendJSON(w, http.StatusOK, LeaderboardResponse{
			Success:     true,
			Leaderboard: cached,
			Page:        page,
			Limit:       limit,
			Cached:      true,
		})
		return
	}

	entries, err := db.GetLeaderboard(ctx, limit, (page-1)*limit)
	if err != nil {
		log.Printf("❌ Failed to get leaderboard: %v", err)
		sendError(w, http.StatusInternalServerError, "Failed to retrieve leaderboard")
		return
	}

	if err := db.CacheLeaderboardPage(ctx, page, limit, entries); err != nil {
		log.Printf("⚠️  Leaderboard cache write failed: %v", err)
	}

	sendJSON(w, http.StatusOK, LeaderboardResponse{
		Success:     true,
		Leaderboard: entries,
		Page:        page,
		Limit:       limit,
	})

	log.Printf("📋 Retrieved leaderboard page %d with %d entries", page, len(entries))
}
