package game

import (
	"fmt"
	"math"
	"testing"
)

func testCar() *Car {
	return &Car{
		ID: 3, Name: "Nissen Silva",
		Power: 100, Speed: 100, Handling: 100, Acceleration: 100,
		Price: 14000, Fuel: 30, MaxFuel: 30,
	}
}

func testSkills() *Skills {
	return &Skills{Driving: 1, Speed: 1, Reaction: 1, Technique: 1}
}

func TestCarPower(t *testing.T) {
	car := testCar()
	if got := CarPower(car); got != 100 {
		t.Errorf("CarPower = %f, want 100", got)
	}

	car.Upgrades.Engine = 3
	car.Upgrades.Tires = 2
	if got := CarPower(car); got != 110 { // 100 + 2*5
		t.Errorf("CarPower with upgrades = %f, want 110", got)
	}
}

func TestSkillMultiplier(t *testing.T) {
	skills := &Skills{Driving: 10, Speed: 10, Reaction: 10, Technique: 10}
	want := 1 + 10*0.002 + 10*0.002 + 10*0.0015 + 10*0.0015
	got := SkillMultiplier(skills)
	if math.Abs(got-want) > 1e-9 {
		t.Errorf("SkillMultiplier = %.10f, want %.10f", got, want)
	}
}

func TestResolveRace(t *testing.T) {
	t.Run("DeterministicFromSeed", func(t *testing.T) {
		car := testCar()
		skills := testSkills()

		first := ResolveRace(car, skills, 1.0, NewSeededRNG("race-seed-1"))
		second := ResolveRace(car, skills, 1.0, NewSeededRNG("race-seed-1"))

		if first != second {
			t.Errorf("same seed produced different results:\n%+v\n%+v", first, second)
		}
	})

	t.Run("DifferentSeedsDiffer", func(t *testing.T) {
		car := testCar()
		skills := testSkills()

		a := ResolveRace(car, skills, 1.0, NewSeededRNG("seed-a"))
		b := ResolveRace(car, skills, 1.0, NewSeededRNG("seed-b"))
		if a.PlayerTime == b.PlayerTime && a.OpponentTime == b.OpponentTime {
			t.Error("different seeds produced identical times")
		}
	})

	t.Run("StrongCarAlwaysBeatsEasyOpponent", func(t *testing.T) {
		// Player efficiency ~100 vs opponent 60*0.8 = 48: outside any
		// jitter overlap, so the result holds for every seed.
		car := testCar()
		skills := testSkills()

		for i := 0; i < 200; i++ {
			result := ResolveRace(car, skills, 0.8, NewSeededRNG(fmt.Sprintf("seed-%d", i)))
			if !result.Won {
				t.Fatalf("seed %d: strong car lost to easy opponent: %+v", i, result)
			}
		}
	})

	t.Run("WeakCarAlwaysLosesToExtremeOpponent", func(t *testing.T) {
		car := &Car{Power: 40, Speed: 40, Handling: 40, Acceleration: 40, Price: 0}
		skills := testSkills()

		for i := 0; i < 200; i++ {
			result := ResolveRace(car, skills, 2.0, NewSeededRNG(fmt.Sprintf("seed-%d", i)))
			if result.Won {
				t.Fatalf("seed %d: weak car beat extreme opponent: %+v", i, result)
			}
		}
	})

	t.Run("NitroOnlyWithPart", func(t *testing.T) {
		car := testCar()
		skills := testSkills()

		for i := 0; i < 100; i++ {
			result := ResolveRace(car, skills, 1.0, NewSeededRNG(fmt.Sprintf("seed-%d", i)))
			if result.NitroActivated {
				t.Fatalf("seed %d: nitro activated without the part", i)
			}
		}

		car.SpecialParts.Nitro = true
		activated := 0
		for i := 0; i < 1000; i++ {
			result := ResolveRace(car, skills, 1.0, NewSeededRNG(fmt.Sprintf("seed-%d", i)))
			if result.NitroActivated {
				activated++
			}
		}
		// 30% chance, 1000 samples
		if activated < 200 || activated > 400 {
			t.Errorf("nitro activation rate off: %d/1000", activated)
		}
	})
}

func TestXPGain(t *testing.T) {
	cases := []struct {
		won        bool
		difficulty float64
		bet        int
		want       int
	}{
		{true, 1.0, 0, 80},    // 50 + 30
		{false, 1.0, 0, 50},   // 20 + 30
		{true, 1.5, 250, 97},  // 50 + 45 + 2
		{false, 0.8, 1000, 54}, // 20 + 24 + 10
	}
	for _, c := range cases {
		if got := XPGain(c.won, c.difficulty, c.bet); got != c.want {
			t.Errorf("XPGain(%v, %.1f, %d) = %d, want %d", c.won, c.difficulty, c.bet, got, c.want)
		}
	}
}

func TestResolveRaceOutcome(t *testing.T) {
	opponent := Opponent{Difficulty: 0.8, Reward: 400, DifficultyClass: "easy", FuelCost: 5}

	winOutcome := func(raceType RaceType, event *Event) RaceOutcome {
		// Strong car guarantees the win for any seed.
		return ResolveRaceOutcome(testCar(), testSkills(), opponent, raceType, event, 0, NewSeededRNG("outcome-seed"))
	}

	t.Run("ClassicBaseline", func(t *testing.T) {
		outcome := winOutcome(RaceTypes["classic"], nil)
		if !outcome.Won {
			t.Fatal("expected a win")
		}
		if outcome.Reward != 400 {
			t.Errorf("reward = %d, want 400", outcome.Reward)
		}
		if outcome.FuelCost != 5 {
			t.Errorf("fuel cost = %d, want 5", outcome.FuelCost)
		}
		if outcome.XPGained != 74 { // 50 + floor(0.8*30) = 74
			t.Errorf("xp = %d, want 74", outcome.XPGained)
		}
	})

	t.Run("DriftModifiers", func(t *testing.T) {
		outcome := winOutcome(RaceTypes["drift"], nil)
		if outcome.FuelCost != 4 { // ceil(5 * 0.8)
			t.Errorf("fuel cost = %d, want 4", outcome.FuelCost)
		}
		if outcome.Reward != 480 { // floor(400 * 1.2)
			t.Errorf("reward = %d, want 480", outcome.Reward)
		}
		if outcome.XPGained != 111 { // floor(74 * 1.5)
			t.Errorf("xp = %d, want 111", outcome.XPGained)
		}
	})

	t.Run("EnduranceModifiers", func(t *testing.T) {
		outcome := winOutcome(RaceTypes["endurance"], nil)
		if outcome.FuelCost != 10 || outcome.Reward != 800 || outcome.XPGained != 185 {
			t.Errorf("endurance outcome off: fuel=%d reward=%d xp=%d", outcome.FuelCost, outcome.Reward, outcome.XPGained)
		}
	})

	t.Run("DoubleRewardsEvent", func(t *testing.T) {
		event := &Event{Type: EventDoubleRewards, Multiplier: 2, IsActive: true}
		outcome := winOutcome(RaceTypes["classic"], event)
		if outcome.Reward != 800 {
			t.Errorf("reward = %d, want 800 under double_rewards", outcome.Reward)
		}
	})

	t.Run("BonusXPEvent", func(t *testing.T) {
		event := &Event{Type: EventBonusXP, Multiplier: 2, IsActive: true}
		outcome := winOutcome(RaceTypes["classic"], event)
		if outcome.XPGained != 148 {
			t.Errorf("xp = %d, want 148 under bonus_xp", outcome.XPGained)
		}
	})

	t.Run("FreeFuelEvent", func(t *testing.T) {
		event := &Event{Type: EventFreeFuel, IsActive: true}
		outcome := winOutcome(RaceTypes["endurance"], event)
		if outcome.FuelCost != 0 {
			t.Errorf("fuel cost = %d, want 0 under free_fuel", outcome.FuelCost)
		}
	})

	t.Run("UpgradeDiscountDoesNotTouchRaces", func(t *testing.T) {
		event := &Event{Type: EventUpgradeDiscount, Discount: 0.5, IsActive: true}
		outcome := winOutcome(RaceTypes["classic"], event)
		if outcome.Reward != 400 || outcome.FuelCost != 5 || outcome.XPGained != 74 {
			t.Errorf("upgrade_discount changed a race outcome: %+v", outcome)
		}
	})

	t.Run("RewardOnlyOnWin", func(t *testing.T) {
		weak := &Car{Power: 40, Speed: 40, Handling: 40, Acceleration: 40}
		hard := Opponent{Difficulty: 2.0, Reward: 800, DifficultyClass: "extreme", FuelCost: 13}
		outcome := ResolveRaceOutcome(weak, testSkills(), hard, RaceTypes["classic"], nil, 0, NewSeededRNG("loss-seed"))
		if outcome.Won {
			t.Fatal("expected a loss")
		}
		if outcome.Reward != 0 {
			t.Errorf("loss paid reward %d", outcome.Reward)
		}
	})
}

func TestApplyUpgradeDiscount(t *testing.T) {
	event := &Event{Type: EventUpgradeDiscount, Discount: 0.5, IsActive: true}

	if got := ApplyUpgradeDiscount(event, 500); got != 250 {
		t.Errorf("discounted cost = %d, want 250", got)
	}
	if got := ApplyUpgradeDiscount(nil, 500); got != 500 {
		t.Errorf("no event changed cost to %d", got)
	}
	other := &Event{Type: EventFreeFuel, IsActive: true}
	if got := ApplyUpgradeDiscount(other, 500); got != 500 {
		t.Errorf("unrelated event changed cost to %d", got)
	}
}

func TestRollSkillGain(t *testing.T) {
	t.Run("GainedSkillIsValid", func(t *testing.T) {
		valid := map[string]bool{}
		for _, name := range SkillNames {
			valid[name] = true
		}

		gains := 0
		for i := 0; i < 1000; i++ {
			skill, ok := RollSkillGain(true, 1.0, RaceTypes["classic"], NewSeededRNG(fmt.Sprintf("skill-%d", i)))
			if !ok {
				continue
			}
			gains++
			if !valid[skill] {
				t.Fatalf("unknown skill gained: %q", skill)
			}
		}
		// Chance is 0.10 + 1.0*0.02 = 0.12 for a classic win
		if gains < 60 || gains > 190 {
			t.Errorf("gain rate off: %d/1000", gains)
		}
	})

	t.Run("Deterministic", func(t *testing.T) {
		s1, ok1 := RollSkillGain(true, 1.5, RaceTypes["drift"], NewSeededRNG("fixed"))
		s2, ok2 := RollSkillGain(true, 1.5, RaceTypes["drift"], NewSeededRNG("fixed"))
		if s1 != s2 || ok1 != ok2 {
			t.Errorf("same seed gave %q/%v and %q/%v", s1, ok1, s2, ok2)
		}
	})
}

func TestRatingDelta(t *testing.T) {
	if got := RatingDelta(true, 1.3); got != 32 { // floor(25*1.3)
		t.Errorf("win delta = %d, want 32", got)
	}
	if got := RatingDelta(false, 1.3); got != -15 {
		t.Errorf("loss delta = %d, want -15", got)
	}
}
