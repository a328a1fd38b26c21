package main

import (
	"context"
	"fmt"
	"log"
	"math/rand"
	"os"
	"time"

	"goRaceServer/db"
	"goRaceServer/game"

	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"
)

func main() {
	// Load env
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env not found")
	}

	if os.Getenv("DATABASE_URL") == "" {
		log.Fatal("DATABASE_URL not set")
	}

	// Init postgres
	if err := db.InitPostgres(); err != nil {
		log.Fatalf("Failed to init postgres: %v", err)
	}
	defer db.ClosePostgres()

	ctx := context.Background()
	now := time.Now()
	rng := rand.New(rand.NewSource(now.UnixNano()))

	// Demo accounts spread across the progression curve
	testPlayers := []struct {
		username string
		level    int
		money    int
		races    int
		winRate  float64
	}{
		{"speedking", 28, 340000, 820, 0.68},
		{"driftqueen", 22, 125000, 540, 0.61},
		{"nightrider", 18, 78000, 390, 0.55},
		{"turbotom", 14, 41000, 260, 0.52},
		{"gearhead", 11, 22000, 180, 0.49},
		{"rookie_rick", 7, 9500, 95, 0.44},
		{"sundaydriver", 5, 4200, 48, 0.40},
		{"slowpoke", 2, 1800, 12, 0.25},
	}

	hash, err := bcrypt.GenerateFromPassword([]byte("demo1234"), bcrypt.DefaultCost)
	if err != nil {
		log.Fatalf("Failed to hash demo password: %v", err)
	}

	fmt.Println("Seeding demo players...")

	for _, p := range testPlayers {
		// Delete existing
		db.PostgresPool.Exec(ctx, "DELETE FROM users WHERE username = $1", p.username)

		data := game.NewGameData(now)
		data.Level = p.level
		data.Experience = game.RequiredXP(p.level) + rng.Intn(500)
		data.Money = p.money
		data.Stats.TotalRaces = p.races
		data.Stats.Wins = int(float64(p.races) * p.winRate)
		data.Stats.Losses = p.races - data.Stats.Wins
		data.Stats.MoneyEarned = p.money + p.races*150
		data.Rating = 800 + p.level*60 + rng.Intn(200)
		for _, tier := range game.TierUnlocks(0, p.level) {
			data.AddCarTier(tier)
		}

		user, err := db.CreateUser(ctx, p.username, string(hash), data)
		if err != nil {
			log.Printf("Failed to insert %s: %v", p.username, err)
		} else {
			fmt.Printf("  %s -> level %d, %d races, id %d\n", p.username, p.level, p.races, user.ID)
		}
	}

	fmt.Println("\nDone! Testing leaderboard...")

	// Verify
	entries, err := db.GetLeaderboard(ctx, 20, 0)
	if err != nil {
		log.Fatalf("Failed to get leaderboard: %v", err)
	}

	fmt.Printf("\nLeaderboard (%d entries):\n", len(entries))
	for _, e := range entries {
		fmt.Printf("  #%d %-14s L%-3d %7d$ %.0f%% wins\n", e.Position, e.Username, e.Level, e.Money, e.WinRate)
	}
}
