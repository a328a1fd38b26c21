package game

import (
	"strings"
	"testing"
	"time"

	"goRaceServer/config"
)

func TestDetectCheating(t *testing.T) {
	cfg := config.DefaultAntiCheat()

	base := func() *GameData {
		g := NewGameData(time.Now())
		g.Money = 50000
		g.Level = 10
		g.Stats = Stats{TotalRaces: 100, Wins: 55, Losses: 45, MoneyEarned: 80000, MoneySpent: 30000}
		g.Skills = Skills{Driving: 5, Speed: 4, Reaction: 3, Technique: 3}
		return g
	}

	clone := func(g *GameData) *GameData {
		copied := *g
		copied.Cars = append([]Car(nil), g.Cars...)
		return &copied
	}

	t.Run("CleanSaveNoFlags", func(t *testing.T) {
		old := base()
		new := clone(old)
		new.Money += 2000
		new.Stats.TotalRaces += 3
		new.Stats.Wins += 2
		new.Stats.Losses += 1

		if flags := DetectCheating(old, new, cfg); len(flags) != 0 {
			t.Errorf("clean save flagged: %v", flags)
		}
	})

	t.Run("MoneyJump", func(t *testing.T) {
		old := base()
		new := clone(old)
		new.Money += cfg.MaxMoneyDeltaPerSave + 1

		flags := DetectCheating(old, new, cfg)
		if len(flags) != 1 || !strings.Contains(flags[0], "money jumped") {
			t.Errorf("expected one money flag, got %v", flags)
		}
	})

	t.Run("MoneyJumpAtLimitPasses", func(t *testing.T) {
		old := base()
		new := clone(old)
		new.Money += cfg.MaxMoneyDeltaPerSave

		if flags := DetectCheating(old, new, cfg); len(flags) != 0 {
			t.Errorf("delta exactly at limit flagged: %v", flags)
		}
	})

	t.Run("LevelJump", func(t *testing.T) {
		old := base()
		new := clone(old)
		new.Level += cfg.MaxLevelDeltaPerSave + 1

		flags := DetectCheating(old, new, cfg)
		if len(flags) != 1 || !strings.Contains(flags[0], "level jumped") {
			t.Errorf("expected one level flag, got %v", flags)
		}
	})

	t.Run("CounterRegression", func(t *testing.T) {
		old := base()
		new := clone(old)
		new.Stats.TotalRaces = old.Stats.TotalRaces - 1
		new.Stats.Wins = old.Stats.Wins - 1

		flags := DetectCheating(old, new, cfg)
		if len(flags) != 2 {
			t.Errorf("expected regression flags for races and wins, got %v", flags)
		}
	})

	t.Run("NewCarWithoutSpend", func(t *testing.T) {
		old := base()
		new := clone(old)
		new.Cars = append(new.Cars, Car{ID: 3, Name: "Nissen Silva", Price: 14000})

		flags := DetectCheating(old, new, cfg)
		if len(flags) != 1 || !strings.Contains(flags[0], "new car") {
			t.Errorf("expected new-car flag, got %v", flags)
		}
	})

	t.Run("NewCarPaidForPasses", func(t *testing.T) {
		old := base()
		new := clone(old)
		new.Cars = append(new.Cars, Car{ID: 3, Name: "Nissen Silva", Price: 14000})
		new.Money = old.Money - 14000

		if flags := DetectCheating(old, new, cfg); len(flags) != 0 {
			t.Errorf("paid purchase flagged: %v", flags)
		}
	})

	t.Run("SkillRegression", func(t *testing.T) {
		old := base()
		new := clone(old)
		new.Skills.Driving = old.Skills.Driving - 1

		flags := DetectCheating(old, new, cfg)
		if len(flags) != 1 || !strings.Contains(flags[0], "skill driving regressed") {
			t.Errorf("expected skill flag, got %v", flags)
		}
	})

	t.Run("ImplausibleWinRate", func(t *testing.T) {
		old := base()
		new := clone(old)
		new.Stats.TotalRaces = 100
		new.Stats.Wins = 99
		new.Stats.Losses = 1

		flags := DetectCheating(old, new, cfg)
		found := false
		for _, f := range flags {
			if strings.Contains(f, "win rate") {
				found = true
			}
		}
		if !found {
			t.Errorf("99%% win rate not flagged: %v", flags)
		}
	})

	t.Run("SmallSampleWinRateIgnored", func(t *testing.T) {
		old := NewGameData(time.Now())
		new := NewGameData(time.Now())
		new.Stats.TotalRaces = 10
		new.Stats.Wins = 10

		for _, f := range DetectCheating(old, new, cfg) {
			if strings.Contains(f, "win rate") {
				t.Errorf("win rate flagged below the sample floor: %v", f)
			}
		}
	})
}
