package api

import (
	"encoding/json"
	"log"
	"net/http"
	"strings"
	"time"

	"goRaceServer/config"
	"goRaceServer/db"
	"goRaceServer/game"
	"goRaceServer/state"
)

/* =========================
   REQUEST/RESPONSE TYPES
========================= */

// UpgradeRequest represents the buy-upgrade request
type UpgradeRequest struct {
	CarIndex    int    `json:"carIndex"`
	UpgradeType string `json:"upgradeType"`
}

// UpgradeResponse reports the purchase and the authoritative state
type UpgradeResponse struct {
	Success    bool             `json:"success"`
	Cost       int              `json:"cost"`
	NewLevel   int              `json:"newLevel"`
	Money      int              `json:"money"`
	DailyTasks *game.DailyTasks `json:"dailyTasks,omitempty"`
}

// BuyCarRequest represents the buy-car request
type BuyCarRequest struct {
	CarID int `json:"carId"`
}

// BuyCarResponse reports the purchase and the authoritative state
type BuyCarResponse struct {
	Success bool      `json:"success"`
	Car     *game.Car `json:"car"`
	Money   int       `json:"money"`
}

/* =========================
   SHOP ENDPOINTS
========================= */

// HandleBuyUpgrade handles POST /api/game/buy-upgrade
// An active upgrade_discount event lowers the price before the funds check.
func HandleBuyUpgrade(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		sendError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	var req UpgradeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		sendError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	ctx := r.Context()
	now := time.Now()

	user, err := db.GetUserByID(ctx, userIDFrom(r))
	if err != nil {
		log.Printf("❌ Failed to load user: %v", err)
		sendError(w, http.StatusInternalServerError, "Failed to buy upgrade")
		return
	}
	if user == nil {
		sendError(w, http.StatusNotFound, "User not found")
		return
	}
	data := user.GameData

	if req.CarIndex < 0 || req.CarIndex >= len(data.Cars) {
		sendError(w, http.StatusBadRequest, "Invalid car index")
		return
	}
	car := &data.Cars[req.CarIndex]

	level, ok := car.Upgrades.Level(req.UpgradeType)
	if !ok {
		sendError(w, http.StatusBadRequest, "Unknown upgrade type")
		return
	}
	if level >= game.MaxUpgradeLevel(car) {
		sendError(w, http.StatusBadRequest, "Max upgrade level reached")
		return
	}

	cost, err := game.UpgradeCost(req.UpgradeType, level)
	if err != nil {
		sendError(w, http.StatusBadRequest, err.Error())
		return
	}
	cost = game.ApplyUpgradeDiscount(state.Server.Events.Current(now), cost)

	if data.Money < cost {
		sendError(w, http.StatusBadRequest, "Insufficient funds")
		return
	}

	data.Money -= cost
	data.Stats.MoneySpent += cost
	car.Upgrades.SetLevel(req.UpgradeType, level+1)
	data.UpdateTaskProgress(game.TaskStatUpgradesBought, 1)

	if err := db.SaveGameData(ctx, user.ID, data); err != nil {
		log.Printf("❌ Failed to save upgrade: %v", err)
		sendError(w, http.StatusInternalServerError, "Failed to buy upgrade")
		return
	}

	sendJSON(w, http.StatusOK, UpgradeResponse{
		Success:    true,
		Cost:       cost,
		NewLevel:   level + 1,
		Money:      data.Money,
		DailyTasks: data.DailyTasks,
	})

	log.Printf("🔧 Upgrade: user %s bought %s L%d for %d", user.Username, req.UpgradeType, level+1, cost)
}

// HandleBuyCar handles POST /api/game/buy-car
func HandleBuyCar(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		sendError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	var req BuyCarRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		sendError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	spec := config.FindCarSpec(req.CarID)
	if spec == nil {
		sendError(w, http.StatusNotFound, "Car not found in catalog")
		return
	}

	ctx := r.Context()
	now := time.Now()

	user, err := db.GetUserByID(ctx, userIDFrom(r))
	if err != nil {
		log.Printf("❌ Failed to load user: %v", err)
		sendError(w, http.StatusInternalServerError, "Failed to buy car")
		return
	}
	if user == nil {
		sendError(w, http.StatusNotFound, "User not found")
		return
	}
	data := user.GameData

	check := game.CanPurchase(data, spec.ID, spec.Price)
	if !check.Allowed {
		status := http.StatusBadRequest
		if strings.Contains(check.Reason, "already owned") {
			status = http.StatusConflict
		}
		sendError(w, status, check.Reason)
		return
	}

	data.Money -= spec.Price
	data.Stats.MoneySpent += spec.Price
	data.Cars = append(data.Cars, game.Car{
		ID:             spec.ID,
		Name:           spec.Name,
		Power:          spec.Power,
		Speed:          spec.Speed,
		Handling:       spec.Handling,
		Acceleration:   spec.Acceleration,
		Price:          spec.Price,
		Owned:          true,
		Fuel:           config.DefaultMaxFuel,
		MaxFuel:        config.DefaultMaxFuel,
		LastFuelUpdate: now,
	})

	if err := db.SaveGameData(ctx, user.ID, data); err != nil {
		log.Printf("❌ Failed to save car purchase: %v", err)
		sendError(w, http.StatusInternalServerError, "Failed to buy car")
		return
	}

	bought := &data.Cars[len(data.Cars)-1]
	sendJSON(w, http.StatusOK, BuyCarResponse{
		Success: true,
		Car:     bought,
		Money:   data.Money,
	})

	log.Printf("🚗 Purchase: user %s bought %s for %d", user.Username, spec.Name, spec.Price)
}
