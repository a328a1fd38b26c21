package api

import (
	"encoding/json"
	"errors"
	"log"
	"math/rand"
	"net/http"
	"time"

	"goRaceServer/db"
	"goRaceServer/game"
)

/* =========================
   REQUEST/RESPONSE TYPES
========================= */

// ClaimTaskRequest represents the claim-daily-task request
type ClaimTaskRequest struct {
	TaskID string `json:"taskId"`
}

// ClaimTaskResponse reports the claim and the authoritative state
type ClaimTaskResponse struct {
	Success    bool             `json:"success"`
	Claim      game.TaskClaim   `json:"claim"`
	Money      int              `json:"money"`
	DailyTasks *game.DailyTasks `json:"dailyTasks"`
}

// TaskProgressRequest represents the update-task-progress request
type TaskProgressRequest struct {
	StatType string `json:"statType"`
	Amount   int    `json:"amount"`
}

/* =========================
   DAILY TASK ENDPOINTS
========================= */

// HandleClaimTask handles POST /api/game/claim-daily-task
func HandleClaimTask(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		sendError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	var req ClaimTaskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		sendError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	ctx := r.Context()
	now := time.Now()

	user, err := db.GetUserByID(ctx, userIDFrom(r))
	if err != nil {
		log.Printf("❌ Failed to load user: %v", err)
		sendError(w, http.StatusInternalServerError, "Failed to claim task")
		return
	}
	if user == nil {
		sendError(w, http.StatusNotFound, "User not found")
		return
	}
	data := user.GameData

	// An expired cycle is regenerated before claiming, so stale task IDs
	// fail with not-found instead of paying out. The fresh cycle is saved
	// right away so a failed claim does not reroll it.
	if data.NeedsTaskReset(now) {
		data.ResetDailyTasks(now, rand.New(rand.NewSource(now.UnixNano())))
		if err := db.SaveGameData(ctx, user.ID, data); err != nil {
			log.Printf("❌ Failed to save task reset: %v", err)
			sendError(w, http.StatusInternalServerError, "Failed to claim task")
			return
		}
	}

	claim, err := data.ClaimTaskReward(req.TaskID)
	if err != nil {
		switch {
		case errors.Is(err, game.ErrTaskClaimed):
			sendError(w, http.StatusConflict, err.Error())
		case errors.Is(err, game.ErrTaskNotFound), errors.Is(err, game.ErrNoDailyTasks):
			sendError(w, http.StatusNotFound, err.Error())
		default:
			sendError(w, http.StatusBadRequest, err.Error())
		}
		return
	}

	if err := db.SaveGameData(ctx, user.ID, data); err != nil {
		log.Printf("❌ Failed to save task claim: %v", err)
		sendError(w, http.StatusInternalServerError, "Failed to claim task")
		return
	}

	sendJSON(w, http.StatusOK, ClaimTaskResponse{
		Success:    true,
		Claim:      claim,
		Money:      data.Money,
		DailyTasks: data.DailyTasks,
	})

	log.Printf("📋 Task claim: user %s claimed %q for %d (+%d bonus)",
		user.Username, claim.TaskName, claim.Reward, claim.BonusReward)
}

// HandleUpdateTaskProgress handles POST /api/game/update-task-progress
// Only the session-counter stats accept a client-supplied amount; the
// cumulative stats re-derive from lifetime counters, so the amount is
// ignored for them.
func HandleUpdateTaskProgress(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		sendError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	var req TaskProgressRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		sendError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	switch req.StatType {
	case game.TaskStatTotalRaces, game.TaskStatWins, game.TaskStatMoneyEarned,
		game.TaskStatFuelSpent, game.TaskStatUpgradesBought:
	default:
		sendError(w, http.StatusBadRequest, "Unknown stat type")
		return
	}
	if req.Amount < 0 {
		sendError(w, http.StatusBadRequest, "Amount must be non-negative")
		return
	}

	ctx := r.Context()
	now := time.Now()

	user, err := db.GetUserByID(ctx, userIDFrom(r))
	if err != nil {
		log.Printf("❌ Failed to load user: %v", err)
		sendError(w, http.StatusInternalServerError, "Failed to update task progress")
		return
	}
	if user == nil {
		sendError(w, http.StatusNotFound, "User not found")
		return
	}
	data := user.GameData

	changed := false
	if data.NeedsTaskReset(now) {
		data.ResetDailyTasks(now, rand.New(rand.NewSource(now.UnixNano())))
		changed = true
	}
	if data.UpdateTaskProgress(req.StatType, req.Amount) {
		changed = true
	}

	if changed {
		if err := db.SaveGameData(ctx, user.ID, data); err != nil {
			log.Printf("❌ Failed to save task progress: %v", err)
			sendError(w, http.StatusInternalServerError, "Failed to update task progress")
			return
		}
	}

	sendJSON(w, http.StatusOK, map[string]interface{}{
		"success":    true,
		"dailyTasks": data.DailyTasks,
	})
}
