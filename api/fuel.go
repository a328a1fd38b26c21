package api

import (
	"log"
	"net/http"
	"time"

	"goRaceServer/db"
	"goRaceServer/game"
)

/* =========================
   RESPONSE TYPES
========================= */

// CarFuelStatus is one car's fuel state with its regeneration countdown
type CarFuelStatus struct {
	CarID            int    `json:"carId"`
	CarName          string `json:"carName"`
	Fuel             int    `json:"fuel"`
	MaxFuel          int    `json:"maxFuel"`
	RegenTimeMinutes int    `json:"regenTimeMinutes"`
}

/* =========================
   FUEL ENDPOINTS
========================= */

// HandleFuelStatus handles GET /api/game/fuel-status
func HandleFuelStatus(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		sendError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	ctx := r.Context()
	now := time.Now()

	user, err := db.GetUserByID(ctx, userIDFrom(r))
	if err != nil {
		log.Printf("❌ Failed to load user: %v", err)
		sendError(w, http.StatusInternalServerError, "Failed to get fuel status")
		return
	}
	if user == nil {
		sendError(w, http.StatusNotFound, "User not found")
		return
	}

	if user.GameData.RegenerateAllFuel(now) {
		if err := db.SaveGameData(ctx, user.ID, user.GameData); err != nil {
			log.Printf("⚠️  Failed to persist regenerated fuel: %v", err)
		}
	}

	status := make([]CarFuelStatus, 0, len(user.GameData.Cars))
	for i := range user.GameData.Cars {
		car := &user.GameData.Cars[i]
		status = append(status, CarFuelStatus{
			CarID:            car.ID,
			CarName:          car.Name,
			Fuel:             car.Fuel,
			MaxFuel:          car.MaxFuel,
			RegenTimeMinutes: game.FuelRegenETA(car, now),
		})
	}

	sendJSON(w, http.StatusOK, map[string]interface{}{
		"success":    true,
		"fuelStatus": status,
	})
}

// HandleRegenerateFuel handles POST /api/game/regenerate-fuel
// Applies regeneration to every owned car; saves only when something changed.
func HandleRegenerateFuel(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		sendError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	ctx := r.Context()
	now := time.Now()

	user, err := db.GetUserByID(ctx, userIDFrom(r))
	if err != nil {
		log.Printf("❌ Failed to load user: %v", err)
		sendError(w, http.StatusInternalServerError, "Failed to regenerate fuel")
		return
	}
	if user == nil {
		sendError(w, http.StatusNotFound, "User not found")
		return
	}

	if user.GameData.RegenerateAllFuel(now) {
		if err := db.SaveGameData(ctx, user.ID, user.GameData); err != nil {
			log.Printf("❌ Failed to persist regenerated fuel: %v", err)
			sendError(w, http.StatusInternalServerError, "Failed to regenerate fuel")
			return
		}
	}

	cars := make([]map[string]interface{}, 0, len(user.GameData.Cars))
	for i := range user.GameData.Cars {
		car := &user.GameData.Cars[i]
		cars = append(cars, map[string]interface{}{
			"id":      car.ID,
			"fuel":    car.Fuel,
			"maxFuel": car.MaxFuel,
		})
	}

	sendJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"cars":    cars,
	})
}
