package game

import (
	"math"
	"testing"
)

func TestGenerateOpponents(t *testing.T) {
	t.Run("RosterShape", func(t *testing.T) {
		opponents := GenerateOpponents(10)
		if len(opponents) != 4 {
			t.Fatalf("expected 4 opponents, got %d", len(opponents))
		}

		wantClasses := []string{"easy", "medium", "hard", "extreme"}
		for i, want := range wantClasses {
			if opponents[i].DifficultyClass != want {
				t.Errorf("opponent %d class = %q, want %q", i, opponents[i].DifficultyClass, want)
			}
		}
	})

	t.Run("DifficultyStrictlyIncreasing", func(t *testing.T) {
		for _, level := range []int{1, 5, 10, 25, 50, 100} {
			opponents := GenerateOpponents(level)
			for i := 1; i < len(opponents); i++ {
				if opponents[i].Difficulty <= opponents[i-1].Difficulty {
					t.Errorf("level %d: difficulty not increasing at slot %d: %v", level, i, opponents)
				}
			}
		}
	})

	t.Run("KnownValuesAtLevel10", func(t *testing.T) {
		// base difficulty 0.7 + 10*0.02 = 0.9, base reward 200 + 1000 = 1200
		opponents := GenerateOpponents(10)

		cases := []struct {
			difficulty float64
			reward     int
		}{
			{0.72, 950},  // round2(0.9*0.8), floor(1200*0.8/50)*50
			{0.9, 1200},  // floor(1200*1.0/50)*50
			{1.17, 1800}, // floor(1200*1.5/50)*50
			{1.44, 2400}, // floor(1200*2.0/50)*50
		}
		for i, c := range cases {
			if math.Abs(opponents[i].Difficulty-c.difficulty) > 1e-9 {
				t.Errorf("opponent %d difficulty = %v, want %v", i, opponents[i].Difficulty, c.difficulty)
			}
			if opponents[i].Reward != c.reward {
				t.Errorf("opponent %d reward = %d, want %d", i, opponents[i].Reward, c.reward)
			}
		}
	})

	t.Run("RewardsAreMultiplesOf50", func(t *testing.T) {
		for level := 1; level <= 100; level += 7 {
			for _, o := range GenerateOpponents(level) {
				if o.Reward%50 != 0 {
					t.Errorf("level %d: reward %d not a multiple of 50", level, o.Reward)
				}
			}
		}
	})

	t.Run("StableBetweenCalls", func(t *testing.T) {
		// The race handler trusts the index from the listing response.
		a := GenerateOpponents(17)
		b := GenerateOpponents(17)
		for i := range a {
			if a[i] != b[i] {
				t.Fatalf("roster changed between calls at slot %d: %+v vs %+v", i, a[i], b[i])
			}
		}
	})
}

func TestFuelCostFor(t *testing.T) {
	cases := []struct {
		difficulty float64
		want       int
	}{
		{0.72, 5},  // base
		{0.99, 5},  // just under first tier
		{1.0, 8},   // ceil(5*1.5)
		{1.39, 8},  //
		{1.4, 10},  // 5*2
		{1.79, 10}, //
		{1.8, 13},  // ceil(5*2.5)
		{2.5, 13},  //
	}
	for _, c := range cases {
		if got := FuelCostFor(c.difficulty); got != c.want {
			t.Errorf("FuelCostFor(%.2f) = %d, want %d", c.difficulty, got, c.want)
		}
	}
}
