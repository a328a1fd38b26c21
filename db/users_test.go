package db

import (
	"context"
	"os"
	"testing"
	"time"

	"goRaceServer/game"

	"github.com/joho/godotenv"
)

func TestUsers(t *testing.T) {
	// Load env
	_ = godotenv.Load("../.env")

	// Check DATABASE_URL
	if os.Getenv("DATABASE_URL") == "" {
		t.Skip("DATABASE_URL not set")
	}

	// Init postgres
	if err := InitPostgres(); err != nil {
		t.Fatalf("Failed to init postgres: %v", err)
	}
	defer ClosePostgres()

	ctx := context.Background()
	testUsername := "test_user_db_suite"

	// Cleanup before test
	_, _ = PostgresPool.Exec(ctx, "DELETE FROM users WHERE username = $1", testUsername)

	var userID int

	t.Run("CreateUser", func(t *testing.T) {
		data := game.NewGameData(time.Now())
		user, err := CreateUser(ctx, testUsername, "fake-hash", data)
		if err != nil {
			t.Fatalf("CreateUser failed: %v", err)
		}
		if user.ID == 0 {
			t.Fatal("expected a user ID")
		}
		userID = user.ID
		t.Logf("Created user id %d", userID)
	})

	t.Run("GetUserByUsername", func(t *testing.T) {
		user, err := GetUserByUsername(ctx, testUsername)
		if err != nil {
			t.Fatalf("GetUserByUsername failed: %v", err)
		}
		if user == nil {
			t.Fatal("expected user, got nil")
		}
		if user.GameData.Money != 1000 {
			t.Errorf("expected starting money 1000, got %d", user.GameData.Money)
		}
		if len(user.GameData.Cars) != 1 {
			t.Errorf("expected starter car, got %d cars", len(user.GameData.Cars))
		}
	})

	t.Run("GetUserByUsername_Absent", func(t *testing.T) {
		user, err := GetUserByUsername(ctx, "no_such_user_xyz")
		if err != nil {
			t.Fatalf("lookup failed: %v", err)
		}
		if user != nil {
			t.Errorf("expected nil for absent user, got %+v", user)
		}
	})

	t.Run("SaveGameData", func(t *testing.T) {
		user, _ := GetUserByID(ctx, userID)
		user.GameData.Money = 5555
		user.GameData.Stats.TotalRaces = 7

		if err := SaveGameData(ctx, userID, user.GameData); err != nil {
			t.Fatalf("SaveGameData failed: %v", err)
		}

		reloaded, _ := GetUserByID(ctx, userID)
		if reloaded.GameData.Money != 5555 || reloaded.GameData.Stats.TotalRaces != 7 {
			t.Errorf("save did not round-trip: money=%d races=%d",
				reloaded.GameData.Money, reloaded.GameData.Stats.TotalRaces)
		}
	})

	t.Run("IncrementSuspicion", func(t *testing.T) {
		count, err := IncrementSuspicion(ctx, userID, 3, 10)
		if err != nil {
			t.Fatalf("IncrementSuspicion failed: %v", err)
		}
		if count != 3 {
			t.Errorf("expected count 3, got %d", count)
		}

		// Crossing the threshold must set the review flag
		count, err = IncrementSuspicion(ctx, userID, 7, 10)
		if err != nil {
			t.Fatalf("IncrementSuspicion failed: %v", err)
		}
		if count != 10 {
			t.Errorf("expected count 10, got %d", count)
		}
		user, _ := GetUserByID(ctx, userID)
		if !user.Flagged {
			t.Error("user not flagged at threshold")
		}
	})

	t.Run("Leaderboard", func(t *testing.T) {
		entries, err := GetLeaderboard(ctx, 10, 0)
		if err != nil {
			t.Fatalf("GetLeaderboard failed: %v", err)
		}
		t.Logf("Leaderboard (%d entries):", len(entries))
		for _, e := range entries {
			t.Logf("  #%d %s L%d", e.Position, e.Username, e.Level)
		}
		for i := 1; i < len(entries); i++ {
			if entries[i].Level > entries[i-1].Level {
				t.Error("leaderboard not sorted by level DESC")
				break
			}
		}
	})

	// Cleanup
	PostgresPool.Exec(ctx, "DELETE FROM users WHERE username = $1", testUsername)
	t.Log("Test cleanup complete")
}
