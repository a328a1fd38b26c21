package game

import (
	"errors"
	"math/rand"
	"testing"
	"time"
)

func taskTestData(now time.Time) *GameData {
	g := NewGameData(now)
	g.ResetDailyTasks(now, rand.New(rand.NewSource(42)))
	return g
}

func findTask(g *GameData, stat string) *DailyTask {
	for i := range g.DailyTasks.Tasks {
		if g.DailyTasks.Tasks[i].TrackStat == stat {
			return &g.DailyTasks.Tasks[i]
		}
	}
	return nil
}

func TestResetDailyTasks(t *testing.T) {
	now := time.Now()

	t.Run("PicksThreeDistinct", func(t *testing.T) {
		for seed := int64(0); seed < 50; seed++ {
			g := NewGameData(now)
			g.ResetDailyTasks(now, rand.New(rand.NewSource(seed)))

			if len(g.DailyTasks.Tasks) != 3 {
				t.Fatalf("seed %d: expected 3 tasks, got %d", seed, len(g.DailyTasks.Tasks))
			}
			seen := map[string]bool{}
			for _, task := range g.DailyTasks.Tasks {
				if seen[task.ID] {
					t.Fatalf("seed %d: duplicate task %s", seed, task.ID)
				}
				seen[task.ID] = true
			}
		}
	})

	t.Run("SnapshotsBaseline", func(t *testing.T) {
		g := NewGameData(now)
		g.Stats = Stats{TotalRaces: 40, Wins: 25, MoneyEarned: 9000}
		g.ResetDailyTasks(now, rand.New(rand.NewSource(1)))

		base := g.DailyTasks.Baseline
		if base.TotalRaces != 40 || base.Wins != 25 || base.MoneyEarned != 9000 {
			t.Errorf("baseline not snapshotted: %+v", base)
		}
		if base.FuelSpent != 0 || base.UpgradesBought != 0 {
			t.Errorf("session counters not zeroed: %+v", base)
		}
	})

	t.Run("ReplacesPreviousCycle", func(t *testing.T) {
		g := taskTestData(now)
		g.DailyTasks.ClaimedCount = 2
		g.DailyTasks.BonusClaimed = true

		g.ResetDailyTasks(now.Add(25*time.Hour), rand.New(rand.NewSource(7)))
		if g.DailyTasks.ClaimedCount != 0 || g.DailyTasks.BonusClaimed {
			t.Errorf("cycle state carried over: %+v", g.DailyTasks)
		}
	})
}

func TestNeedsTaskReset(t *testing.T) {
	now := time.Now()

	t.Run("NoCycleYet", func(t *testing.T) {
		g := NewGameData(now)
		if !g.NeedsTaskReset(now) {
			t.Error("fresh account should need a cycle")
		}
	})

	t.Run("RollingWindow", func(t *testing.T) {
		g := taskTestData(now)
		if g.NeedsTaskReset(now.Add(23 * time.Hour)) {
			t.Error("reset requested inside the 24h window")
		}
		if !g.NeedsTaskReset(now.Add(24 * time.Hour)) {
			t.Error("reset not requested after the 24h window")
		}
	})
}

func TestUpdateTaskProgress(t *testing.T) {
	now := time.Now()

	t.Run("CumulativeStatDerivesFromLifetime", func(t *testing.T) {
		var g *GameData
		var task *DailyTask
		for seed := int64(0); seed < 20; seed++ {
			candidate := NewGameData(now)
			candidate.Stats.TotalRaces = 100
			candidate.ResetDailyTasks(now, rand.New(rand.NewSource(seed)))
			if found := findTask(candidate, TaskStatTotalRaces); found != nil {
				g, task = candidate, found
				break
			}
		}
		if g == nil {
			t.Fatal("no seed drew the totalRaces task")
		}

		g.Stats.TotalRaces = 103
		g.UpdateTaskProgress(TaskStatTotalRaces, 1)
		if task.Progress != 3 {
			t.Errorf("progress = %d, want 3 (lifetime - baseline)", task.Progress)
		}
	})

	t.Run("SessionStatAccumulates", func(t *testing.T) {
		var g *GameData
		var task *DailyTask
		for seed := int64(0); seed < 20; seed++ {
			candidate := NewGameData(now)
			candidate.ResetDailyTasks(now, rand.New(rand.NewSource(seed)))
			if found := findTask(candidate, TaskStatFuelSpent); found != nil {
				g, task = candidate, found
				break
			}
		}
		if g == nil {
			t.Fatal("no seed drew the fuelSpent task")
		}

		g.UpdateTaskProgress(TaskStatFuelSpent, 8)
		g.UpdateTaskProgress(TaskStatFuelSpent, 8)
		if task.Progress != 16 {
			t.Errorf("progress = %d, want 16", task.Progress)
		}

		g.UpdateTaskProgress(TaskStatFuelSpent, 100)
		if task.Progress != task.Required {
			t.Errorf("progress = %d, want clamp at %d", task.Progress, task.Required)
		}
		if !task.Completed {
			t.Error("task not completed at required progress")
		}
	})

	t.Run("NoCycleIsNoOp", func(t *testing.T) {
		g := NewGameData(now)
		if g.UpdateTaskProgress(TaskStatWins, 1) {
			t.Error("progress reported without a cycle")
		}
	})
}

func TestClaimTaskReward(t *testing.T) {
	now := time.Now()

	completeAll := func(g *GameData) {
		for i := range g.DailyTasks.Tasks {
			g.DailyTasks.Tasks[i].Progress = g.DailyTasks.Tasks[i].Required
			g.DailyTasks.Tasks[i].Completed = true
		}
	}

	t.Run("ClaimCreditsReward", func(t *testing.T) {
		g := taskTestData(now)
		completeAll(g)
		task := g.DailyTasks.Tasks[0]
		moneyBefore := g.Money

		claim, err := g.ClaimTaskReward(task.ID)
		if err != nil {
			t.Fatalf("claim failed: %v", err)
		}
		if claim.Reward != task.Reward {
			t.Errorf("claim reward = %d, want %d", claim.Reward, task.Reward)
		}
		if g.Money != moneyBefore+task.Reward {
			t.Errorf("money = %d, want %d", g.Money, moneyBefore+task.Reward)
		}
	})

	t.Run("UncompletedTask", func(t *testing.T) {
		g := taskTestData(now)
		_, err := g.ClaimTaskReward(g.DailyTasks.Tasks[0].ID)
		if !errors.Is(err, ErrTaskNotCompleted) {
			t.Errorf("expected ErrTaskNotCompleted, got %v", err)
		}
	})

	t.Run("DoubleClaim", func(t *testing.T) {
		g := taskTestData(now)
		completeAll(g)
		id := g.DailyTasks.Tasks[0].ID

		if _, err := g.ClaimTaskReward(id); err != nil {
			t.Fatalf("first claim failed: %v", err)
		}
		if _, err := g.ClaimTaskReward(id); !errors.Is(err, ErrTaskClaimed) {
			t.Errorf("expected ErrTaskClaimed, got %v", err)
		}
	})

	t.Run("UnknownTask", func(t *testing.T) {
		g := taskTestData(now)
		if _, err := g.ClaimTaskReward("daily_nonsense"); !errors.Is(err, ErrTaskNotFound) {
			t.Errorf("expected ErrTaskNotFound, got %v", err)
		}
	})

	t.Run("NoCycle", func(t *testing.T) {
		g := NewGameData(now)
		if _, err := g.ClaimTaskReward("daily_races"); !errors.Is(err, ErrNoDailyTasks) {
			t.Errorf("expected ErrNoDailyTasks, got %v", err)
		}
	})

	t.Run("BonusExactlyOnce", func(t *testing.T) {
		g := taskTestData(now)
		completeAll(g)
		moneyBefore := g.Money

		totalRewards := 0
		bonusCount := 0
		for _, task := range g.DailyTasks.Tasks {
			claim, err := g.ClaimTaskReward(task.ID)
			if err != nil {
				t.Fatalf("claim %s failed: %v", task.ID, err)
			}
			totalRewards += claim.Reward
			if claim.BonusReward > 0 {
				bonusCount++
				if claim.BonusReward != 1000 {
					t.Errorf("bonus = %d, want 1000", claim.BonusReward)
				}
			}
		}

		if bonusCount != 1 {
			t.Errorf("bonus granted %d times", bonusCount)
		}
		if g.Money != moneyBefore+totalRewards+1000 {
			t.Errorf("money = %d, want %d", g.Money, moneyBefore+totalRewards+1000)
		}
	})
}
