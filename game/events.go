package game

import (
	"math"
	"time"
)

// ActiveAt reports whether the event window covers the given instant. An
// expired-but-unswept event is never treated as active.
func (e *Event) ActiveAt(now time.Time) bool {
	return e.IsActive && !e.StartTime.After(now) && !e.EndTime.Before(now)
}

// ApplyEventEffect layers the active global event onto a resolved race.
// double_rewards doubles the reward on a win, bonus_xp multiplies XP,
// free_fuel zeroes the fuel actually charged. upgrade_discount touches
// races not at all (see ApplyUpgradeDiscount).
func ApplyEventEffect(event *Event, outcome *RaceOutcome) {
	if event == nil {
		return
	}

	switch event.Type {
	case EventDoubleRewards:
		if outcome.Won {
			outcome.Reward = int(math.Floor(float64(outcome.Reward) * event.Multiplier))
		}
	case EventBonusXP:
		outcome.XPGained = int(math.Floor(float64(outcome.XPGained) * event.Multiplier))
	case EventFreeFuel:
		outcome.FuelCost = 0
	}
}

// ApplyUpgradeDiscount discounts an upgrade cost during an upgrade_discount
// event; any other (or no) event leaves the cost unchanged.
func ApplyUpgradeDiscount(event *Event, cost int) int {
	if event == nil || event.Type != EventUpgradeDiscount {
		return cost
	}
	return int(math.Floor(float64(cost) * event.Discount))
}

// EventTemplate seeds a randomly spawned event.
type EventTemplate struct {
	Type        string
	Title       string
	Description string
	Icon        string
	Multiplier  float64
	Discount    float64
}

// EventCatalog lists every event the scheduler can spawn.
var EventCatalog = []EventTemplate{
	{
		Type:        EventDoubleRewards,
		Title:       "💰 Double rewards!",
		Description: "Earn x2 money for every race win!",
		Icon:        "💰",
		Multiplier:  2,
	},
	{
		Type:        EventUpgradeDiscount,
		Title:       "🔧 Upgrade sale!",
		Description: "50% off all car upgrades!",
		Icon:        "🔧",
		Discount:    0.5,
	},
	{
		Type:        EventFreeFuel,
		Title:       "⛽ Free fuel!",
		Description: "Races cost no fuel!",
		Icon:        "⛽",
	},
	{
		Type:        EventBonusXP,
		Title:       "⭐ Double XP!",
		Description: "Earn x2 experience for every race!",
		Icon:        "⭐",
		Multiplier:  2,
	},
}
