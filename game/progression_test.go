package game

import (
	"testing"
	"time"
)

func TestRequiredXP(t *testing.T) {
	t.Run("KnownValues", func(t *testing.T) {
		cases := []struct {
			level int
			want  int
		}{
			{1, 100},
			{2, 150},
			{3, 225},
			{4, 337},
			{5, 506},
		}
		for _, c := range cases {
			if got := RequiredXP(c.level); got != c.want {
				t.Errorf("RequiredXP(%d) = %d, want %d", c.level, got, c.want)
			}
		}
	})

	t.Run("StrictlyIncreasing", func(t *testing.T) {
		prev := RequiredXP(1)
		for level := 2; level <= 100; level++ {
			cur := RequiredXP(level)
			if cur <= prev {
				t.Fatalf("RequiredXP(%d) = %d, not greater than RequiredXP(%d) = %d", level, cur, level-1, prev)
			}
			prev = cur
		}
	})
}

func TestCheckLevelUp(t *testing.T) {
	t.Run("NoLevelUp", func(t *testing.T) {
		result := CheckLevelUp(1, 100)
		if result.LeveledUp {
			t.Errorf("expected no level up at 100 XP, got level %d", result.NewLevel)
		}
	})

	t.Run("SingleLevel", func(t *testing.T) {
		result := CheckLevelUp(1, 150)
		if !result.LeveledUp || result.NewLevel != 2 {
			t.Fatalf("expected level 2, got %+v", result)
		}
		if result.Reward != 1000 {
			t.Errorf("expected reward 1000 (500*2), got %d", result.Reward)
		}
	})

	t.Run("MultiLevel", func(t *testing.T) {
		// 506 XP meets RequiredXP for levels 2..5 (150, 225, 337, 506)
		result := CheckLevelUp(1, 506)
		if result.NewLevel != 5 {
			t.Fatalf("expected level 5 at 506 XP, got %d", result.NewLevel)
		}
		wantReward := 500*2 + 500*3 + 500*4 + 500*5
		if result.Reward != wantReward {
			t.Errorf("expected cumulative reward %d, got %d", wantReward, result.Reward)
		}
	})

	t.Run("Idempotent", func(t *testing.T) {
		first := CheckLevelUp(1, 506)
		second := CheckLevelUp(first.NewLevel, 506)
		if second.LeveledUp {
			t.Errorf("second call granted another level up: %+v", second)
		}
		if second.Reward != 0 {
			t.Errorf("second call granted reward %d", second.Reward)
		}
	})

	t.Run("CapsAtMaxLevel", func(t *testing.T) {
		result := CheckLevelUp(99, 1<<60)
		if result.NewLevel != 100 {
			t.Errorf("expected cap at 100, got %d", result.NewLevel)
		}
	})
}

func TestTierUnlocks(t *testing.T) {
	t.Run("CrossingMilestones", func(t *testing.T) {
		got := TierUnlocks(4, 11)
		want := []int{5, 10}
		if len(got) != len(want) {
			t.Fatalf("TierUnlocks(4, 11) = %v, want %v", got, want)
		}
		for i := range want {
			if got[i] != want[i] {
				t.Errorf("TierUnlocks(4, 11)[%d] = %d, want %d", i, got[i], want[i])
			}
		}
	})

	t.Run("NoCrossing", func(t *testing.T) {
		if got := TierUnlocks(5, 9); len(got) != 0 {
			t.Errorf("TierUnlocks(5, 9) = %v, want empty", got)
		}
	})
}

func TestAddCarTier(t *testing.T) {
	g := NewGameData(time.Now())

	if !g.AddCarTier(5) {
		t.Error("first AddCarTier(5) should succeed")
	}
	if g.AddCarTier(5) {
		t.Error("duplicate AddCarTier(5) should be a no-op")
	}
	if len(g.UnlockedCarTiers) != 2 { // starter tier 1 + tier 5
		t.Errorf("expected 2 tiers, got %v", g.UnlockedCarTiers)
	}
}

func TestAddExperience(t *testing.T) {
	t.Run("AppliesRewardOnce", func(t *testing.T) {
		g := NewGameData(time.Now())
		moneyBefore := g.Money

		result := g.AddExperience(150)
		if !result.LeveledUp || g.Level != 2 {
			t.Fatalf("expected level 2, got %+v level=%d", result, g.Level)
		}
		if g.Money != moneyBefore+1000 {
			t.Errorf("expected money %d, got %d", moneyBefore+1000, g.Money)
		}

		// A zero-XP follow-up must not pay again.
		again := g.AddExperience(0)
		if again.LeveledUp || g.Money != moneyBefore+1000 {
			t.Errorf("reward applied twice: %+v money=%d", again, g.Money)
		}
	})

	t.Run("UnlocksTiers", func(t *testing.T) {
		g := NewGameData(time.Now())
		g.AddExperience(RequiredXP(6))
		if g.Level < 5 {
			t.Fatalf("expected at least level 5, got %d", g.Level)
		}
		found := false
		for _, tier := range g.UnlockedCarTiers {
			if tier == 5 {
				found = true
			}
		}
		if !found {
			t.Errorf("tier 5 not unlocked: %v", g.UnlockedCarTiers)
		}
	})
}

func TestFuel(t *testing.T) {
	now := time.Now()

	newCar := func(fuel int, last time.Time) *Car {
		return &Car{Fuel: fuel, MaxFuel: 30, LastFuelUpdate: last}
	}

	t.Run("RegeneratesOnePerTenMinutes", func(t *testing.T) {
		car := newCar(10, now.Add(-35*time.Minute))
		granted := RegenerateFuel(car, now)
		if granted != 3 || car.Fuel != 13 {
			t.Errorf("expected 3 units granted, got %d (fuel %d)", granted, car.Fuel)
		}
		if !car.LastFuelUpdate.Equal(now) {
			t.Error("LastFuelUpdate should move when fuel was granted")
		}
	})

	t.Run("CapsAtMaxFuel", func(t *testing.T) {
		car := newCar(29, now.Add(-120*time.Minute))
		granted := RegenerateFuel(car, now)
		if granted != 1 || car.Fuel != 30 {
			t.Errorf("expected cap at 30, got fuel %d (granted %d)", car.Fuel, granted)
		}
	})

	t.Run("FullTankNoOp", func(t *testing.T) {
		last := now.Add(-time.Hour)
		car := newCar(30, last)
		if granted := RegenerateFuel(car, now); granted != 0 {
			t.Errorf("full tank granted %d", granted)
		}
		if !car.LastFuelUpdate.Equal(last) {
			t.Error("LastFuelUpdate moved on a full tank")
		}
	})

	t.Run("ClockDoesNotDriftBelowOneUnit", func(t *testing.T) {
		last := now.Add(-9 * time.Minute)
		car := newCar(10, last)
		if granted := RegenerateFuel(car, now); granted != 0 {
			t.Errorf("granted %d after 9 minutes", granted)
		}
		if !car.LastFuelUpdate.Equal(last) {
			t.Error("LastFuelUpdate moved without a granted unit")
		}
	})

	t.Run("SpendFuelShortfall", func(t *testing.T) {
		last := now.Add(-time.Minute)
		car := newCar(4, last)
		if SpendFuel(car, 5, now) {
			t.Fatal("spend should fail with 4 < 5")
		}
		if car.Fuel != 4 || !car.LastFuelUpdate.Equal(last) {
			t.Error("failed spend mutated the car")
		}
	})

	t.Run("SpendFuelSuccess", func(t *testing.T) {
		car := newCar(10, now.Add(-time.Minute))
		if !SpendFuel(car, 5, now) {
			t.Fatal("spend should succeed")
		}
		if car.Fuel != 5 {
			t.Errorf("expected fuel 5, got %d", car.Fuel)
		}
	})

	t.Run("RegenETA", func(t *testing.T) {
		car := newCar(10, now.Add(-7*time.Minute))
		if eta := FuelRegenETA(car, now); eta != 3 {
			t.Errorf("expected ETA 3 minutes, got %d", eta)
		}
		full := newCar(30, now)
		if eta := FuelRegenETA(full, now); eta != 0 {
			t.Errorf("expected ETA 0 for full tank, got %d", eta)
		}
	})
}

func TestUpgrades(t *testing.T) {
	t.Run("CostGrowth", func(t *testing.T) {
		cost0, err := UpgradeCost("engine", 0)
		if err != nil || cost0 != 500 {
			t.Fatalf("engine L0->L1 cost = %d (%v), want 500", cost0, err)
		}
		cost1, _ := UpgradeCost("engine", 1)
		if cost1 != 1250 { // floor(500 * 2.5)
			t.Errorf("engine L1->L2 cost = %d, want 1250", cost1)
		}
	})

	t.Run("UnknownType", func(t *testing.T) {
		if _, err := UpgradeCost("spoiler", 0); err == nil {
			t.Error("expected error for unknown upgrade type")
		}
	})

	t.Run("MaxLevelByPrice", func(t *testing.T) {
		cases := []struct {
			price int
			want  int
		}{
			{0, 5},
			{8000, 5},
			{8001, 7},
			{35000, 7},
			{35001, 10},
		}
		for _, c := range cases {
			car := &Car{Price: c.price}
			if got := MaxUpgradeLevel(car); got != c.want {
				t.Errorf("MaxUpgradeLevel(price=%d) = %d, want %d", c.price, got, c.want)
			}
		}
	})

	t.Run("MaxLevelBeforeFunds", func(t *testing.T) {
		car := &Car{Price: 5000}
		car.Upgrades.Engine = 5
		check := CanUpgrade(car, "engine", 0)
		if check.Allowed {
			t.Fatal("upgrade past max level allowed")
		}
		if check.Reason != "max upgrade level reached" {
			t.Errorf("wrong blocker reported: %q", check.Reason)
		}
	})

	t.Run("InsufficientFunds", func(t *testing.T) {
		car := &Car{Price: 5000}
		check := CanUpgrade(car, "turbo", 100)
		if check.Allowed {
			t.Fatal("upgrade allowed without funds")
		}
		if check.Cost != 300 {
			t.Errorf("expected cost 300 in verdict, got %d", check.Cost)
		}
	})

	t.Run("Allowed", func(t *testing.T) {
		car := &Car{Price: 5000}
		check := CanUpgrade(car, "tires", 1000)
		if !check.Allowed || check.Cost != 200 {
			t.Errorf("expected allowed at cost 200, got %+v", check)
		}
	})
}

func TestCarPurchase(t *testing.T) {
	t.Run("RequiredLevelSteps", func(t *testing.T) {
		cases := []struct {
			price int
			want  int
		}{
			{0, 1},
			{5000, 1},
			{5001, 5},
			{15000, 5},
			{30000, 10},
			{50000, 15},
			{80000, 20},
			{150000, 25},
			{150001, 30},
		}
		for _, c := range cases {
			if got := CarRequiredLevel(c.price); got != c.want {
				t.Errorf("CarRequiredLevel(%d) = %d, want %d", c.price, got, c.want)
			}
		}
	})

	t.Run("AlreadyOwned", func(t *testing.T) {
		g := NewGameData(time.Now())
		check := CanPurchase(g, 0, 0) // starter car ID
		if check.Allowed {
			t.Error("buying an owned car allowed")
		}
	})

	t.Run("LevelGate", func(t *testing.T) {
		g := NewGameData(time.Now())
		g.Money = 1000000
		check := CanPurchase(g, 7, 120000)
		if check.Allowed {
			t.Fatal("level 1 player allowed a level-25 car")
		}
		if check.RequiredLevel != 25 {
			t.Errorf("expected required level 25, got %d", check.RequiredLevel)
		}
	})

	t.Run("FundsGate", func(t *testing.T) {
		g := NewGameData(time.Now())
		g.Level = 10
		g.Money = 100
		if check := CanPurchase(g, 3, 14000); check.Allowed {
			t.Error("purchase allowed without funds")
		}
	})

	t.Run("Allowed", func(t *testing.T) {
		g := NewGameData(time.Now())
		g.Level = 5
		g.Money = 20000
		if check := CanPurchase(g, 3, 14000); !check.Allowed {
			t.Errorf("valid purchase rejected: %+v", check)
		}
	})
}
