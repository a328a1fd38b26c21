package api

import (
	"encoding/json"
	"log"
	"net/http"
	"time"

	"goRaceServer/config"
	"goRaceServer/db"
	"goRaceServer/game"

	"golang.org/x/crypto/bcrypt"
)

/* =========================
   REQUEST/RESPONSE TYPES
========================= */

// AuthRequest represents a register or login request
type AuthRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// AuthResponse represents a successful register or login
type AuthResponse struct {
	Success  bool           `json:"success"`
	Token    string         `json:"token"`
	UserID   int            `json:"userId"`
	Username string         `json:"username"`
	GameData *game.GameData `json:"gameData"`
}

/* =========================
   AUTH ENDPOINTS
========================= */

// HandleRegister handles POST /api/auth/register
func HandleRegister(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		sendError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	var req AuthRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		sendError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if len(req.Username) < config.MinUsernameLen || len(req.Username) > config.MaxUsernameLen {
		sendError(w, http.StatusBadRequest, "Username must be 3-20 characters")
		return
	}
	if len(req.Password) < 6 {
		sendError(w, http.StatusBadRequest, "Password must be at least 6 characters")
		return
	}

	ctx := r.Context()

	existing, err := db.GetUserByUsername(ctx, req.Username)
	if err != nil {
		log.Printf("❌ Failed to check username: %v", err)
		sendError(w, http.StatusInternalServerError, "Registration failed")
		return
	}
	if existing != nil {
		sendError(w, http.StatusConflict, "Username already taken")
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		log.Printf("❌ Failed to hash password: %v", err)
		sendError(w, http.StatusInternalServerError, "Registration failed")
		return
	}

	gameData := game.NewGameData(time.Now())
	user, err := db.CreateUser(ctx, req.Username, string(hash), gameData)
	if err != nil {
		log.Printf("❌ Failed to create user: %v", err)
		sendError(w, http.StatusInternalServerError, "Registration failed")
		return
	}

	token, err := IssueToken(user.ID)
	if err != nil {
		log.Printf("❌ Failed to issue token: %v", err)
		sendError(w, http.StatusInternalServerError, "Registration failed")
		return
	}

	sendJSON(w, http.StatusCreated, AuthResponse{
		Success:  true,
		Token:    token,
		UserID:   user.ID,
		Username: user.Username,
		GameData: user.GameData,
	})

	log.Printf("✅ Registered user %s (id %d)", user.Username, user.ID)
}

// HandleLogin handles POST /api/auth/login
func HandleLogin(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		sendError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	var req AuthRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		sendError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	ctx := r.Context()

	user, err := db.GetUserByUsername(ctx, req.Username)
	if err != nil {
		log.Printf("❌ Failed to look up user: %v", err)
		sendError(w, http.StatusInternalServerError, "Login failed")
		return
	}
	if user == nil {
		sendError(w, http.StatusUnauthorized, "Invalid username or password")
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		sendError(w, http.StatusUnauthorized, "Invalid username or password")
		return
	}

	if err := db.UpdateLastLogin(ctx, user.ID); err != nil {
		log.Printf("⚠️  Failed to update last login: %v", err)
	}

	token, err := IssueToken(user.ID)
	if err != nil {
		log.Printf("❌ Failed to issue token: %v", err)
		sendError(w, http.StatusInternalServerError, "Login failed")
		return
	}

	sendJSON(w, http.StatusOK, AuthResponse{
		Success:  true,
		Token:    token,
		UserID:   user.ID,
		Username: user.Username,
		GameData: user.GameData,
	})

	log.Printf("✅ User %s logged in", user.Username)
}
