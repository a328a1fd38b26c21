package api

import (
	"encoding/json"
	"log"
	"net/http"
	"time"

	"goRaceServer/crypto"
	"goRaceServer/db"
	"goRaceServer/game"
	"goRaceServer/state"
)

/* =========================
   REQUEST/RESPONSE TYPES
========================= */

// OpponentsResponse lists the roster the player can race against
type OpponentsResponse struct {
	Success   bool            `json:"success"`
	Opponents []game.Opponent `json:"opponents"`
	Fuel      int             `json:"fuel"`
	MaxFuel   int             `json:"maxFuel"`
}

// RaceRequest represents the run-race request
type RaceRequest struct {
	OpponentIndex int    `json:"opponentIndex"`
	RaceType      string `json:"raceType"`
	BetAmount     int    `json:"betAmount"`
}

// RaceResponse is the fully resolved race plus the authoritative
// post-race player state
type RaceResponse struct {
	Success    bool                `json:"success"`
	Outcome    game.RaceOutcome    `json:"outcome"`
	Seed       string              `json:"seed"`
	SeedHash   string              `json:"seedHash"`
	LevelUp    *game.LevelUpResult `json:"levelUp,omitempty"`
	Money      int                 `json:"money"`
	Level      int                 `json:"level"`
	Experience int                 `json:"experience"`
	Rating     int                 `json:"rating"`
	Fuel       int                 `json:"fuel"`
	MaxFuel    int                 `json:"maxFuel"`
	DailyTasks *game.DailyTasks    `json:"dailyTasks,omitempty"`
}

/* =========================
   RACE ENDPOINTS
========================= */

// HandleGetOpponents handles GET /api/game/opponents
// The roster is a pure function of player level, so the index a client
// sends back to HandleRunRace refers to the same opponent.
func HandleGetOpponents(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		sendError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	ctx := r.Context()
	now := time.Now()

	user, err := db.GetUserByID(ctx, userIDFrom(r))
	if err != nil {
		log.Printf("❌ Failed to load user: %v", err)
		sendError(w, http.StatusInternalServerError, "Failed to load opponents")
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

	car := &user.GameData.Cars[user.GameData.CurrentCar]
	sendJSON(w, http.StatusOK, OpponentsResponse{
		Success:   true,
		Opponents: game.GenerateOpponents(user.GameData.Level),
		Fuel:      car.Fuel,
		MaxFuel:   car.MaxFuel,
	})
}

// HandleRunRace handles POST /api/game/race
// Resolves the race server-side from a committed random seed, charges fuel
// and the bet, and applies reward, XP, rating, skill gain and task progress
// in one save.
func HandleRunRace(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		sendError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	var req RaceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		sendError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	raceType, ok := game.RaceTypes[req.RaceType]
	if req.RaceType == "" {
		raceType = game.RaceTypes["classic"]
	} else if !ok {
		sendError(w, http.StatusBadRequest, "Unknown race type")
		return
	}

	if req.BetAmount < 0 {
		sendError(w, http.StatusBadRequest, "Bet amount must be non-negative")
		return
	}

	ctx := r.Context()
	now := time.Now()

	user, err := db.GetUserByID(ctx, userIDFrom(r))
	if err != nil {
		log.Printf("❌ Failed to load user: %v", err)
		sendError(w, http.StatusInternalServerError, "Failed to run race")
		return
	}
	if user == nil {
		sendError(w, http.StatusNotFound, "User not found")
		return
	}
	data := user.GameData

	opponents := game.GenerateOpponents(data.Level)
	if req.OpponentIndex < 0 || req.OpponentIndex >= len(opponents) {
		sendError(w, http.StatusBadRequest, "Invalid opponent index")
		return
	}
	opponent := opponents[req.OpponentIndex]

	if req.BetAmount > data.Money {
		sendError(w, http.StatusBadRequest, "Insufficient funds for bet")
		return
	}

	car := &data.Cars[data.CurrentCar]
	game.RegenerateFuel(car, now)

	event := state.Server.Events.Current(now)

	// The seed fully determines the jitter and nitro rolls, so the outcome
	// can be re-derived from it.
	seed, seedHash := crypto.GenerateRaceSeed()
	rng := game.NewSeededRNG(seed)

	outcome := game.ResolveRaceOutcome(car, &data.Skills, opponent, raceType, event, req.BetAmount, rng)

	if car.Fuel < outcome.FuelCost {
		sendJSON(w, http.StatusBadRequest, map[string]interface{}{
			"success":          false,
			"error":            "Not enough fuel",
			"currentFuel":      car.Fuel,
			"requiredFuel":     outcome.FuelCost,
			"regenTimeMinutes": game.FuelRegenETA(car, now),
		})
		return
	}
	game.SpendFuel(car, outcome.FuelCost, now)

	// Settle money. A won bet pays back double the stake.
	data.Money -= req.BetAmount
	data.Stats.TotalRaces++
	if outcome.Won {
		winnings := outcome.Reward + req.BetAmount*2
		data.Money += winnings
		data.Stats.Wins++
		data.Stats.MoneyEarned += winnings
	} else {
		data.Stats.Losses++
		data.Stats.MoneySpent += req.BetAmount
	}

	data.Rating += game.RatingDelta(outcome.Won, opponent.Difficulty)
	if data.Rating < 0 {
		data.Rating = 0
	}

	var levelUp *game.LevelUpResult
	if result := data.AddExperience(outcome.XPGained); result.LeveledUp {
		levelUp = &result
	}

	if outcome.SkillGained != "" {
		data.Skills.Increment(outcome.SkillGained)
	}

	data.UpdateTaskProgress(game.TaskStatTotalRaces, 1)
	data.UpdateTaskProgress(game.TaskStatFuelSpent, outcome.FuelCost)
	if outcome.Won {
		data.UpdateTaskProgress(game.TaskStatWins, 1)
		data.UpdateTaskProgress(game.TaskStatMoneyEarned, 0)
	}

	if err := db.SaveGameData(ctx, user.ID, data); err != nil {
		log.Printf("❌ Failed to save race result: %v", err)
		sendError(w, http.StatusInternalServerError, "Failed to save race result")
		return
	}

	sendJSON(w, http.StatusOK, RaceResponse{
		Success:    true,
		Outcome:    outcome,
		Seed:       seed,
		SeedHash:   seedHash,
		LevelUp:    levelUp,
		Money:      data.Money,
		Level:      data.Level,
		Experience: data.Experience,
		Rating:     data.Rating,
		Fuel:       car.Fuel,
		MaxFuel:    car.MaxFuel,
		DailyTasks: data.DailyTasks,
	})

	log.Printf("🏁 Race: user %s vs %s (%.2f) won=%v reward=%d xp=%d",
		user.Username, opponent.DifficultyClass, opponent.Difficulty, outcome.Won, outcome.Reward, outcome.XPGained)
}
