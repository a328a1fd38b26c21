package api

import (
	"encoding/json"
	"log"
	"math/rand"
	"net/http"
	"time"

	"goRaceServer/config"
	"goRaceServer/db"
	"goRaceServer/game"
	"goRaceServer/state"
)

/* =========================
   RESPONSE TYPES
========================= */

// GameDataResponse is the authoritative player state sent to the client
type GameDataResponse struct {
	Success  bool           `json:"success"`
	GameData *game.GameData `json:"gameData"`
	Event    *game.Event    `json:"activeEvent,omitempty"`
}

// SaveRequest represents the client's full-state save submission
type SaveRequest struct {
	GameData *game.GameData `json:"gameData"`
}

/* =========================
   PLAYER STATE ENDPOINTS
========================= */

// HandleGetGameData handles GET /api/game/data
// Returns the stored state after applying fuel regeneration and, when the
// rolling 24h window has passed, a daily task reset.
func HandleGetGameData(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		sendError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	ctx := r.Context()
	now := time.Now()

	user, err := db.GetUserByID(ctx, userIDFrom(r))
	if err != nil {
		log.Printf("❌ Failed to load user: %v", err)
		sendError(w, http.StatusInternalServerError, "Failed to load game data")
		return
	}
	if user == nil {
		sendError(w, http.StatusNotFound, "User not found")
		return
	}

	changed := user.GameData.RegenerateAllFuel(now)
	if user.GameData.NeedsTaskReset(now) {
		user.GameData.ResetDailyTasks(now, rand.New(rand.NewSource(now.UnixNano())))
		changed = true
	}

	if changed {
		if err := db.SaveGameData(ctx, user.ID, user.GameData); err != nil {
			log.Printf("⚠️  Failed to persist regenerated state: %v", err)
		}
	}

	sendJSON(w, http.StatusOK, GameDataResponse{
		Success:  true,
		GameData: user.GameData,
		Event:    state.Server.Events.Current(now),
	})
}

// HandleSaveGame handles POST /api/game/save
// The submitted document is validated structurally; implausible deltas
// against the stored state are logged and counted, but the save is still
// applied (detection is advisory, review happens offline).
func HandleSaveGame(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		sendError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	var req SaveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		sendError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.GameData == nil {
		sendError(w, http.StatusBadRequest, "gameData is required")
		return
	}

	ctx := r.Context()
	now := time.Now()

	// Validation sees the document exactly as submitted. Defaults are
	// filled only afterwards, so clamping can never mask an out-of-range
	// field.
	if err := game.ValidateGameData(req.GameData); err != nil {
		sendError(w, http.StatusBadRequest, err.Error())
		return
	}
	game.Normalize(req.GameData, now)

	user, err := db.GetUserByID(ctx, userIDFrom(r))
	if err != nil {
		log.Printf("❌ Failed to load user: %v", err)
		sendError(w, http.StatusInternalServerError, "Failed to save game data")
		return
	}
	if user == nil {
		sendError(w, http.StatusNotFound, "User not found")
		return
	}

	cfg := config.LoadAntiCheat()
	if flags := game.DetectCheating(user.GameData, req.GameData, cfg); len(flags) > 0 {
		for _, flag := range flags {
			if err := db.LogSuspiciousActivity(ctx, user.ID, user.Username, flag, map[string]interface{}{
				"oldMoney": user.GameData.Money,
				"newMoney": req.GameData.Money,
				"oldLevel": user.GameData.Level,
				"newLevel": req.GameData.Level,
			}); err != nil {
				log.Printf("⚠️  Failed to log suspicious activity: %v", err)
			}
		}
		if _, err := db.IncrementSuspicion(ctx, user.ID, len(flags), cfg.SuspicionThreshold); err != nil {
			log.Printf("⚠️  Failed to increment suspicion: %v", err)
		}
	}

	if err := db.SaveGameData(ctx, user.ID, req.GameData); err != nil {
		log.Printf("❌ Failed to save game data: %v", err)
		sendError(w, http.StatusInternalServerError, "Failed to save game data")
		return
	}

	sendJSON(w, http.StatusOK, map[string]bool{"success": true})
}
