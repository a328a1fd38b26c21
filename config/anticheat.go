package config

import (
	"os"
	"strconv"
)

/* =========================
   ANTI-CHEAT THRESHOLDS
========================= */

// AntiCheatConfig holds the differential save-analysis thresholds.
// Every value can be overridden from the environment so balance changes
// don't require a redeploy.
type AntiCheatConfig struct {
	// Max plausible money gain in a single save
	MaxMoneyDeltaPerSave int

	// Max plausible level gain in a single save
	MaxLevelDeltaPerSave int

	// Minimum money that must have been spent per new car appearing in a save
	MinSpendPerNewCar int

	// Win-rate screening: flag above MaxWinRate once totalRaces > WinRateMinRaces
	MaxWinRate      float64
	WinRateMinRaces int

	// Suspicion counter value at which the player record is flagged for review
	SuspicionThreshold int
}

// DefaultAntiCheat returns the shipped threshold set.
func DefaultAntiCheat() AntiCheatConfig {
	return AntiCheatConfig{
		MaxMoneyDeltaPerSave: 1500000,
		MaxLevelDeltaPerSave: 3,
		MinSpendPerNewCar:    1000,
		MaxWinRate:           0.95,
		WinRateMinRaces:      20,
		SuspicionThreshold:   10,
	}
}

// LoadAntiCheat builds the threshold set from environment overrides.
func LoadAntiCheat() AntiCheatConfig {
	cfg := DefaultAntiCheat()
	cfg.MaxMoneyDeltaPerSave = envInt("ANTICHEAT_MAX_MONEY_DELTA", cfg.MaxMoneyDeltaPerSave)
	cfg.MaxLevelDeltaPerSave = envInt("ANTICHEAT_MAX_LEVEL_DELTA", cfg.MaxLevelDeltaPerSave)
	cfg.MinSpendPerNewCar = envInt("ANTICHEAT_MIN_SPEND_PER_CAR", cfg.MinSpendPerNewCar)
	cfg.MaxWinRate = envFloat("ANTICHEAT_MAX_WIN_RATE", cfg.MaxWinRate)
	cfg.WinRateMinRaces = envInt("ANTICHEAT_WIN_RATE_MIN_RACES", cfg.WinRateMinRaces)
	cfg.SuspicionThreshold = envInt("ANTICHEAT_SUSPICION_THRESHOLD", cfg.SuspicionThreshold)
	return cfg
}

func envInt(key string, fallback int) int {
	if s := os.Getenv(key); s != "" {
		if v, err := strconv.Atoi(s); err == nil {
			return v
		}
	}
	return fallback
}

func envFloat(key string, fallback float64) float64 {
	if s := os.Getenv(key); s != "" {
		if v, err := strconv.ParseFloat(s, 64); err == nil {
			return v
		}
	}
	return fallback
}
