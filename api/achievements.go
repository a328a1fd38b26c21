package api

import (
	"encoding/json"
	"log"
	"net/http"
	"time"

	"goRaceServer/db"
)

/* =========================
   REQUEST TYPES
========================= */

// UnlockAchievementRequest represents a single achievement unlock
type UnlockAchievementRequest struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

// UnlockBatchRequest represents a batch of achievement unlocks
type UnlockBatchRequest struct {
	Achievements []UnlockAchievementRequest `json:"achievements"`
}

/* =========================
   ACHIEVEMENT ENDPOINTS
========================= */

// HandleGetAchievements handles GET /api/game/achievements
func HandleGetAchievements(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		sendError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	user, err := db.GetUserByID(r.Context(), userIDFrom(r))
	if err != nil {
		log.Printf("❌ Failed to load user: %v", err)
		sendError(w, http.StatusInternalServerError, "Failed to get achievements")
		return
	}
	if user == nil {
		sendError(w, http.StatusNotFound, "User not found")
		return
	}

	sendJSON(w, http.StatusOK, map[string]interface{}{
		"success":      true,
		"total":        len(user.GameData.Achievements),
		"achievements": user.GameData.Achievements,
	})
}

// HandleUnlockAchievement handles POST /api/game/unlock-achievement
// Unlocking an already-unlocked ID is not an error, just a no-op.
func HandleUnlockAchievement(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		sendError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	var req UnlockAchievementRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		sendError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.ID == "" || req.Name == "" {
		sendError(w, http.StatusBadRequest, "Achievement id and name are required")
		return
	}

	ctx := r.Context()
	user, err := db.GetUserByID(ctx, userIDFrom(r))
	if err != nil {
		log.Printf("❌ Failed to load user: %v", err)
		sendError(w, http.StatusInternalServerError, "Failed to unlock achievement")
		return
	}
	if user == nil {
		sendError(w, http.StatusNotFound, "User not found")
		return
	}

	unlocked := user.GameData.UnlockAchievement(req.ID, req.Name, req.Description, time.Now())
	if unlocked {
		if err := db.SaveGameData(ctx, user.ID, user.GameData); err != nil {
			log.Printf("❌ Failed to save achievement: %v", err)
			sendError(w, http.StatusInternalServerError, "Failed to unlock achievement")
			return
		}
		log.Printf("🏆 Achievement: user %s unlocked %q", user.Username, req.Name)
	}

	sendJSON(w, http.StatusOK, map[string]interface{}{
		"success":      true,
		"unlocked":     unlocked,
		"achievements": user.GameData.Achievements,
	})
}

// HandleUnlockAchievementsBatch handles POST /api/game/unlock-achievements-batch
func HandleUnlockAchievementsBatch(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		sendError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	var req UnlockBatchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		sendError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if len(req.Achievements) == 0 {
		sendError(w, http.StatusBadRequest, "No achievements provided")
		return
	}

	ctx := r.Context()
	user, err := db.GetUserByID(ctx, userIDFrom(r))
	if err != nil {
		log.Printf("❌ Failed to load user: %v", err)
		sendError(w, http.StatusInternalServerError, "Failed to unlock achievements")
		return
	}
	if user == nil {
		sendError(w, http.StatusNotFound, "User not found")
		return
	}

	now := time.Now()
	newlyUnlocked := 0
	for _, a := range req.Achievements {
		if a.ID == "" || a.Name == "" {
			continue
		}
		if user.GameData.UnlockAchievement(a.ID, a.Name, a.Description, now) {
			newlyUnlocked++
		}
	}

	if newlyUnlocked > 0 {
		if err := db.SaveGameData(ctx, user.ID, user.GameData); err != nil {
			log.Printf("❌ Failed to save achievements: %v", err)
			sendError(w, http.StatusInternalServerError, "Failed to unlock achievements")
			return
		}
		log.Printf("🏆 Achievements: user %s unlocked %d new", user.Username, newlyUnlocked)
	}

	sendJSON(w, http.StatusOK, map[string]interface{}{
		"success":      true,
		"unlocked":     newlyUnlocked,
		"achievements": user.GameData.Achievements,
	})
}
