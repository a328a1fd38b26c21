package game

import (
	"fmt"

	"goRaceServer/config"
)

// DetectCheating compares a submitted save against the currently stored
// state and returns the implausible deltas it finds. Detection is advisory:
// flags are logged and counted against the player, but the save is still
// applied. Thresholds come from configuration, not code.
func DetectCheating(old, new *GameData, cfg config.AntiCheatConfig) []string {
	var flags []string

	if delta := new.Money - old.Money; delta > cfg.MaxMoneyDeltaPerSave {
		flags = append(flags, fmt.Sprintf("money jumped by %d in one save (limit %d)", delta, cfg.MaxMoneyDeltaPerSave))
	}

	if delta := new.Level - old.Level; delta > cfg.MaxLevelDeltaPerSave {
		flags = append(flags, fmt.Sprintf("level jumped by %d in one save (limit %d)", delta, cfg.MaxLevelDeltaPerSave))
	}

	// Lifetime counters only move forward.
	if new.Stats.TotalRaces < old.Stats.TotalRaces {
		flags = append(flags, fmt.Sprintf("totalRaces regressed from %d to %d", old.Stats.TotalRaces, new.Stats.TotalRaces))
	}
	if new.Stats.Wins < old.Stats.Wins {
		flags = append(flags, fmt.Sprintf("wins regressed from %d to %d", old.Stats.Wins, new.Stats.Wins))
	}

	// New cars must be paid for.
	if newCars := len(new.Cars) - len(old.Cars); newCars > 0 {
		moneySpent := old.Money - new.Money
		if moneySpent < cfg.MinSpendPerNewCar*newCars {
			flags = append(flags, fmt.Sprintf("%d new car(s) appeared with only %d money spent", newCars, moneySpent))
		}
	}

	// Skills never shrink.
	skillPairs := []struct {
		name     string
		old, new int
	}{
		{"driving", old.Skills.Driving, new.Skills.Driving},
		{"speed", old.Skills.Speed, new.Skills.Speed},
		{"reaction", old.Skills.Reaction, new.Skills.Reaction},
		{"technique", old.Skills.Technique, new.Skills.Technique},
	}
	for _, p := range skillPairs {
		if p.new < p.old {
			flags = append(flags, fmt.Sprintf("skill %s regressed from %d to %d", p.name, p.old, p.new))
		}
	}

	// Screen implausible win rates once the sample is big enough.
	if new.Stats.TotalRaces > cfg.WinRateMinRaces {
		winRate := float64(new.Stats.Wins) / float64(new.Stats.TotalRaces)
		if winRate > cfg.MaxWinRate {
			flags = append(flags, fmt.Sprintf("win rate %.1f%% over %d races", winRate*100, new.Stats.TotalRaces))
		}
	}

	return flags
}
