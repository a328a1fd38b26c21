package main

import (
	"context"
	"log"
	"net/http"

	"goRaceServer/api"
	"goRaceServer/config"
	"goRaceServer/db"
	"goRaceServer/events"
	"goRaceServer/ws"

	"github.com/joho/godotenv"
)

func main() {
	// Load .env file
	if err := godotenv.Load(); err != nil {
		log.Println("⚠️  Warning: .env file not found, using environment variables")
	} else {
		log.Println("✅ Loaded environment variables from .env")
	}

	// Initialize database connections
	if err := db.InitPostgres(); err != nil {
		log.Fatalf("❌ PostgreSQL initialization failed: %v", err)
	}
	defer db.ClosePostgres()

	if err := db.InitRedis(); err != nil {
		log.Printf("⚠️  Warning: Redis initialization failed: %v", err)
		log.Println("   Leaderboard caching and rate limiting will be disabled")
	}
	defer db.CloseRedis()

	// Start the global event scheduler after DB is ready
	scheduler := events.NewScheduler(ws.AnnounceEvent)
	if err := scheduler.Bootstrap(context.Background()); err != nil {
		log.Printf("⚠️  Warning: event scheduler bootstrap failed: %v", err)
	}
	go scheduler.Run(context.Background())

	// WebSocket endpoints
	http.HandleFunc("/ws/chat", ws.HandleChatWS)

	// Auth endpoints (strict rate limit)
	http.HandleFunc("/api/auth/register", api.CORS(
		api.RateLimit("auth", config.AuthLimitWindow, config.AuthLimitMax, api.HandleRegister)))
	http.HandleFunc("/api/auth/login", api.CORS(
		api.RateLimit("auth", config.AuthLimitWindow, config.AuthLimitMax, api.HandleLogin)))

	// Player state (no-cache headers, save limiter on writes)
	http.HandleFunc("/api/game/data", api.CORS(api.NoStore(api.RequireAuth(
		api.RateLimit("general", config.GeneralLimitWindow, config.GeneralLimitMax, api.HandleGetGameData)))))
	http.HandleFunc("/api/game/save", api.CORS(api.NoStore(api.RequireAuth(
		api.RateLimit("save", config.SaveLimitWindow, config.SaveLimitMax, api.HandleSaveGame)))))

	// Game actions
	http.HandleFunc("/api/game/opponents", gameAction(api.HandleGetOpponents))
	http.HandleFunc("/api/game/race", gameAction(api.HandleRunRace))
	http.HandleFunc("/api/game/buy-upgrade", gameAction(api.HandleBuyUpgrade))
	http.HandleFunc("/api/game/buy-car", gameAction(api.HandleBuyCar))
	http.HandleFunc("/api/game/claim-daily-task", gameAction(api.HandleClaimTask))
	http.HandleFunc("/api/game/update-task-progress", gameAction(api.HandleUpdateTaskProgress))
	http.HandleFunc("/api/game/regenerate-fuel", gameAction(api.HandleRegenerateFuel))
	http.HandleFunc("/api/game/add-experience", gameAction(api.HandleAddExperience))
	http.HandleFunc("/api/game/update-rating", gameAction(api.HandleUpdateRating))
	http.HandleFunc("/api/game/unlock-achievement", gameAction(api.HandleUnlockAchievement))
	http.HandleFunc("/api/game/unlock-achievements-batch", gameAction(api.HandleUnlockAchievementsBatch))

	// Reads
	http.HandleFunc("/api/game/fuel-status", authedRead(api.HandleFuelStatus))
	http.HandleFunc("/api/game/achievements", authedRead(api.HandleGetAchievements))
	http.HandleFunc("/api/game/profile-stats", authedRead(api.HandleProfileStats))
	http.HandleFunc("/api/game/current-event", api.CORS(
		api.RateLimit("general", config.GeneralLimitWindow, config.GeneralLimitMax, api.HandleGetCurrentEvent)))
	http.HandleFunc("/api/leaderboard", api.CORS(
		api.RateLimit("general", config.GeneralLimitWindow, config.GeneralLimitMax, api.HandleGetLeaderboard)))
	http.HandleFunc("/api/chat/history", api.CORS(
		api.RateLimit("general", config.GeneralLimitWindow, config.GeneralLimitMax, api.HandleChatHistory)))

	// News
	http.HandleFunc("/api/news", api.CORS(
		api.RateLimit("general", config.GeneralLimitWindow, config.GeneralLimitMax, api.HandleGetNews)))
	http.HandleFunc("/api/news/unread-count", authedRead(api.HandleUnreadNewsCount))
	http.HandleFunc("/api/news/mark-read", authedRead(api.HandleMarkNewsRead))

	// Health
	http.HandleFunc("/api/health", api.CORS(api.HandleHealthCheck))

	addr := config.ServerHost + ":" + config.ServerPort
	server := &http.Server{
		Addr:         addr,
		ReadTimeout:  config.ReadTimeout,
		WriteTimeout: config.WriteTimeout,
	}

	log.Printf("🚀 Server starting on %s", addr)
	log.Println("")
	log.Println("📡 WebSocket Endpoints:")
	log.Println("   ws://localhost:8080/ws/chat?token=<jwt> - Global chat + event announcements")
	log.Println("")
	log.Println("🔌 API Endpoints:")
	log.Println("   POST /api/auth/register - Create account")
	log.Println("   POST /api/auth/login - Login, returns JWT")
	log.Println("   GET  /api/game/data - Player state (fuel regen + task reset applied)")
	log.Println("   POST /api/game/save - Full-state save (validated, anti-cheat screened)")
	log.Println("   GET  /api/game/opponents - Opponent roster for player level")
	log.Println("   POST /api/game/race - Run a race server-side")
	log.Println("   POST /api/game/buy-upgrade - Buy a car upgrade")
	log.Println("   POST /api/game/buy-car - Buy a catalog car")
	log.Println("   POST /api/game/claim-daily-task - Claim a completed daily task")
	log.Println("   GET  /api/game/current-event - Active global event")
	log.Println("   GET  /api/leaderboard - Paged leaderboard (Redis cached)")
	log.Println("   GET  /api/health - Health check (Redis + PostgreSQL)")
	log.Println("")

	if err := server.ListenAndServe(); err != nil {
		log.Fatal("❌ Server error:", err)
	}
}

// gameAction wraps a mutating game handler with the standard middleware:
// CORS, no-cache headers, auth and the action rate limit.
func gameAction(handler http.HandlerFunc) http.HandlerFunc {
	return api.CORS(api.NoStore(api.RequireAuth(
		api.RateLimit("action", config.ActionLimitWindow, config.ActionLimitMax, handler))))
}

// authedRead wraps a read-only authenticated handler with CORS, auth and
// the general rate limit.
func authedRead(handler http.HandlerFunc) http.HandlerFunc {
	return api.CORS(api.RequireAuth(
		api.RateLimit("general", config.GeneralLimitWindow, config.GeneralLimitMax, handler)))
}
