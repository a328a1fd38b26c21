package api

import (
	"encoding/json"
	"log"
	"math"
	"net/http"

	"goRaceServer/db"
	"goRaceServer/game"
)

/* =========================
   RANKS
========================= */

// Rank is the display tier derived from a player's rating.
type Rank struct {
	Name  string `json:"name"`
	Icon  string `json:"icon"`
	Color string `json:"color"`
}

// RankFor maps a rating to its display tier.
func RankFor(rating int) Rank {
	switch {
	case rating >= 2500:
		return Rank{Name: "Master", Icon: "👑", Color: "#FF4444"}
	case rating >= 2000:
		return Rank{Name: "Gold", Icon: "🥇", Color: "#FFD700"}
	case rating >= 1500:
		return Rank{Name: "Silver", Icon: "🥈", Color: "#C0C0C0"}
	case rating >= 1000:
		return Rank{Name: "Bronze", Icon: "🥉", Color: "#CD7F32"}
	default:
		return Rank{Name: "Novice", Icon: "🔰", Color: "#888888"}
	}
}

/* =========================
   PROFILE ENDPOINTS
========================= */

// HandleProfileStats handles GET /api/game/profile-stats
func HandleProfileStats(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		sendError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	user, err := db.GetUserByID(r.Context(), userIDFrom(r))
	if err != nil {
		log.Printf("❌ Failed to load user: %v", err)
		sendError(w, http.StatusInternalServerError, "Failed to get profile stats")
		return
	}
	if user == nil {
		sendError(w, http.StatusNotFound, "User not found")
		return
	}
	data := user.GameData

	winRate := 0
	avgMoneyPerRace := 0
	if data.Stats.TotalRaces > 0 {
		winRate = int(math.Round(float64(data.Stats.Wins) / float64(data.Stats.TotalRaces) * 100))
		avgMoneyPerRace = int(math.Round(float64(data.Stats.MoneyEarned) / float64(data.Stats.TotalRaces)))
	}

	sendJSON(w, http.StatusOK, map[string]interface{}{
		"success":    true,
		"username":   user.Username,
		"level":      data.Level,
		"experience": data.Experience,
		"money":      data.Money,
		"rating":     data.Rating,
		"rank":       RankFor(data.Rating),
		"stats": map[string]interface{}{
			"totalRaces":          data.Stats.TotalRaces,
			"wins":                data.Stats.Wins,
			"losses":              data.Stats.Losses,
			"moneyEarned":         data.Stats.MoneyEarned,
			"moneySpent":          data.Stats.MoneySpent,
			"winRate":             winRate,
			"averageMoneyPerRace": avgMoneyPerRace,
		},
		"achievements": map[string]interface{}{
			"total": len(data.Achievements),
			"list":  data.Achievements,
		},
		"cars": map[string]interface{}{
			"owned":   len(data.Cars),
			"current": data.CurrentCar,
		},
		"skills":    data.Skills,
		"createdAt": user.CreatedAt,
		"lastLogin": user.LastLogin,
	})
}

// RatingUpdateRequest represents the update-rating request
type RatingUpdateRequest struct {
	RatingChange int    `json:"ratingChange"`
	Reason       string `json:"reason"`
}

// HandleUpdateRating handles POST /api/game/update-rating
// Races already adjust rating server-side; this endpoint covers out-of-race
// adjustments (tournaments, penalties). The floor stays at zero.
func HandleUpdateRating(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		sendError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	var req RatingUpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		sendError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	ctx := r.Context()
	user, err := db.GetUserByID(ctx, userIDFrom(r))
	if err != nil {
		log.Printf("❌ Failed to load user: %v", err)
		sendError(w, http.StatusInternalServerError, "Failed to update rating")
		return
	}
	if user == nil {
		sendError(w, http.StatusNotFound, "User not found")
		return
	}

	oldRating := user.GameData.Rating
	user.GameData.Rating = oldRating + req.RatingChange
	if user.GameData.Rating < 0 {
		user.GameData.Rating = 0
	}

	if err := db.SaveGameData(ctx, user.ID, user.GameData); err != nil {
		log.Printf("❌ Failed to save rating: %v", err)
		sendError(w, http.StatusInternalServerError, "Failed to update rating")
		return
	}

	sendJSON(w, http.StatusOK, map[string]interface{}{
		"success":   true,
		"oldRating": oldRating,
		"newRating": user.GameData.Rating,
		"change":    req.RatingChange,
		"rank":      RankFor(user.GameData.Rating),
	})
}

// ExperienceRequest represents the add-experience request
type ExperienceRequest struct {
	Amount int    `json:"amount"`
	Source string `json:"source"`
}

// HandleAddExperience handles POST /api/game/add-experience
// Credits XP from non-race sources and resolves any level-ups, including
// the level-up money reward and car tier unlocks.
func HandleAddExperience(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		sendError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	var req ExperienceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		sendError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Amount <= 0 {
		sendError(w, http.StatusBadRequest, "Amount must be positive")
		return
	}

	ctx := r.Context()
	user, err := db.GetUserByID(ctx, userIDFrom(r))
	if err != nil {
		log.Printf("❌ Failed to load user: %v", err)
		sendError(w, http.StatusInternalServerError, "Failed to add experience")
		return
	}
	if user == nil {
		sendError(w, http.StatusNotFound, "User not found")
		return
	}

	result := user.GameData.AddExperience(req.Amount)

	if err := db.SaveGameData(ctx, user.ID, user.GameData); err != nil {
		log.Printf("❌ Failed to save experience: %v", err)
		sendError(w, http.StatusInternalServerError, "Failed to add experience")
		return
	}

	var levelUp *game.LevelUpResult
	if result.LeveledUp {
		levelUp = &result
		log.Printf("✨ Level up: user %s reached level %d (+%d reward)", user.Username, result.NewLevel, result.Reward)
	}

	sendJSON(w, http.StatusOK, map[string]interface{}{
		"success":    true,
		"experience": user.GameData.Experience,
		"level":      user.GameData.Level,
		"money":      user.GameData.Money,
		"levelUp":    levelUp,
	})
}
