package game

import (
	"errors"
	"math/rand"
	"time"

	"goRaceServer/config"
)

// Task stat identifiers. The first three are cumulative lifetime counters
// (progress = lifetime - baseline); fuelSpent and upgradesBought are
// session counters that accumulate inside the cycle.
const (
	TaskStatTotalRaces     = "totalRaces"
	TaskStatWins           = "wins"
	TaskStatMoneyEarned    = "moneyEarned"
	TaskStatFuelSpent      = "fuelSpent"
	TaskStatUpgradesBought = "upgradesBought"
)

// Daily task claim errors.
var (
	ErrTaskNotFound     = errors.New("task not found")
	ErrTaskNotCompleted = errors.New("task not completed yet")
	ErrTaskClaimed      = errors.New("task reward already claimed")
	ErrNoDailyTasks     = errors.New("no daily tasks generated")
)

// TaskTemplate is one entry of the fixed daily-task catalog.
type TaskTemplate struct {
	ID          string
	Name        string
	Description string
	TrackStat   string
	Required    int
	Reward      int
}

// TaskCatalog holds the five templates a daily cycle draws from.
var TaskCatalog = []TaskTemplate{
	{ID: "daily_races", Name: "Road Warrior", Description: "Finish 5 races", TrackStat: TaskStatTotalRaces, Required: 5, Reward: 500},
	{ID: "daily_wins", Name: "Podium Finish", Description: "Win 3 races", TrackStat: TaskStatWins, Required: 3, Reward: 800},
	{ID: "daily_fuel", Name: "Burning Rubber", Description: "Spend 20 fuel", TrackStat: TaskStatFuelSpent, Required: 20, Reward: 600},
	{ID: "daily_upgrades", Name: "Garage Time", Description: "Buy 2 upgrades", TrackStat: TaskStatUpgradesBought, Required: 2, Reward: 700},
	{ID: "daily_earnings", Name: "Money Maker", Description: "Earn $2000", TrackStat: TaskStatMoneyEarned, Required: 2000, Reward: 1000},
}

// NeedsTaskReset reports whether the daily cycle must be regenerated: no
// cycle yet, or the rolling 24h window since generation has passed.
func (g *GameData) NeedsTaskReset(now time.Time) bool {
	if g.DailyTasks == nil {
		return true
	}
	return now.Sub(g.DailyTasks.GeneratedAt) >= config.DailyTaskResetWindow
}

// ResetDailyTasks draws config.DailyTaskCount distinct templates and
// snapshots the player's lifetime counters as the cycle baseline.
func (g *GameData) ResetDailyTasks(now time.Time, rng *rand.Rand) {
	picks := rng.Perm(len(TaskCatalog))[:config.DailyTaskCount]

	tasks := make([]DailyTask, 0, config.DailyTaskCount)
	for _, idx := range picks {
		tpl := TaskCatalog[idx]
		tasks = append(tasks, DailyTask{
			ID:          tpl.ID,
			Name:        tpl.Name,
			Description: tpl.Description,
			TrackStat:   tpl.TrackStat,
			Required:    tpl.Required,
			Reward:      tpl.Reward,
		})
	}

	g.DailyTasks = &DailyTasks{
		Tasks:       tasks,
		GeneratedAt: now,
		Baseline: DailyBaseline{
			TotalRaces:  g.Stats.TotalRaces,
			Wins:        g.Stats.Wins,
			MoneyEarned: g.Stats.MoneyEarned,
		},
	}
}

// UpdateTaskProgress advances every task tracking the given stat. For
// cumulative stats the progress is derived from the lifetime counter minus
// the cycle baseline; session stats accumulate by amount. Returns true when
// any task changed.
func (g *GameData) UpdateTaskProgress(statType string, amount int) bool {
	if g.DailyTasks == nil {
		return false
	}

	// Session counters accumulate on the baseline first, so progress for
	// every task tracking them reads from one place.
	switch statType {
	case TaskStatFuelSpent:
		g.DailyTasks.Baseline.FuelSpent += amount
	case TaskStatUpgradesBought:
		g.DailyTasks.Baseline.UpgradesBought += amount
	}

	changed := false
	for i := range g.DailyTasks.Tasks {
		task := &g.DailyTasks.Tasks[i]
		if task.TrackStat != statType || task.Completed {
			continue
		}

		progress := g.taskProgress(statType)
		if progress > task.Required {
			progress = task.Required
		}
		if progress != task.Progress {
			task.Progress = progress
			changed = true
		}
		if task.Progress >= task.Required {
			task.Completed = true
			changed = true
		}
	}
	return changed
}

func (g *GameData) taskProgress(statType string) int {
	base := &g.DailyTasks.Baseline
	switch statType {
	case TaskStatTotalRaces:
		return g.Stats.TotalRaces - base.TotalRaces
	case TaskStatWins:
		return g.Stats.Wins - base.Wins
	case TaskStatMoneyEarned:
		return g.Stats.MoneyEarned - base.MoneyEarned
	case TaskStatFuelSpent:
		return base.FuelSpent
	case TaskStatUpgradesBought:
		return base.UpgradesBought
	}
	return 0
}

// TaskClaim reports a successful reward claim.
type TaskClaim struct {
	TaskName    string `json:"taskName"`
	Reward      int    `json:"reward"`
	BonusReward int    `json:"bonusReward"`
}

// ClaimTaskReward credits a completed task's reward. The all-tasks bonus is
// granted exactly once per cycle, with the claim that completes the set.
func (g *GameData) ClaimTaskReward(taskID string) (TaskClaim, error) {
	if g.DailyTasks == nil {
		return TaskClaim{}, ErrNoDailyTasks
	}

	for i := range g.DailyTasks.Tasks {
		task := &g.DailyTasks.Tasks[i]
		if task.ID != taskID {
			continue
		}

		if !task.Completed {
			return TaskClaim{}, ErrTaskNotCompleted
		}
		if task.Claimed {
			return TaskClaim{}, ErrTaskClaimed
		}

		task.Claimed = true
		g.DailyTasks.ClaimedCount++
		g.Money += task.Reward

		claim := TaskClaim{TaskName: task.Name, Reward: task.Reward}
		if g.DailyTasks.ClaimedCount >= len(g.DailyTasks.Tasks) && !g.DailyTasks.BonusClaimed {
			g.DailyTasks.BonusClaimed = true
			g.Money += config.DailyTaskAllClaimedBonus
			claim.BonusReward = config.DailyTaskAllClaimedBonus
		}
		return claim, nil
	}

	return TaskClaim{}, ErrTaskNotFound
}
