package game

import (
	"fmt"
	"math"
	"time"

	"goRaceServer/config"
)

// RequiredXP returns the total experience needed to hold the given level.
func RequiredXP(level int) int {
	return int(math.Floor(config.XPBase * math.Pow(config.XPGrowth, float64(level-1))))
}

// CheckLevelUp walks the XP curve from the current level and reports how many
// levels the given experience supports. Pure: calling it again with the same
// inputs after the caller has applied NewLevel yields LeveledUp=false, so
// rewards cannot be granted twice.
func CheckLevelUp(level, xp int) LevelUpResult {
	newLevel := level
	totalReward := 0

	for newLevel < config.MaxLevel && xp >= RequiredXP(newLevel+1) {
		newLevel++
		totalReward += config.LevelUpReward * newLevel
	}

	return LevelUpResult{
		NewLevel:  newLevel,
		LeveledUp: newLevel > level,
		Reward:    totalReward,
	}
}

// TierUnlocks returns the car-tier milestones crossed when moving from
// oldLevel to newLevel.
func TierUnlocks(oldLevel, newLevel int) []int {
	var unlocked []int
	for _, milestone := range config.CarTierMilestones {
		if oldLevel < milestone && newLevel >= milestone {
			unlocked = append(unlocked, milestone)
		}
	}
	return unlocked
}

// AddCarTier adds a tier to the unlocked set. Set semantics: duplicates are
// ignored.
func (g *GameData) AddCarTier(tier int) bool {
	for _, t := range g.UnlockedCarTiers {
		if t == tier {
			return false
		}
	}
	g.UnlockedCarTiers = append(g.UnlockedCarTiers, tier)
	return true
}

// AddExperience credits XP, resolves level-ups, applies the level-up money
// reward and tier unlocks, and returns the result.
func (g *GameData) AddExperience(amount int) LevelUpResult {
	g.Experience += amount

	result := CheckLevelUp(g.Level, g.Experience)
	if result.LeveledUp {
		for _, tier := range TierUnlocks(g.Level, result.NewLevel) {
			g.AddCarTier(tier)
		}
		g.Level = result.NewLevel
		g.Money += result.Reward
	}
	return result
}

// RegenerateFuel grants 1 fuel per config.FuelRegenMinutes elapsed since the
// car's last update, capped at MaxFuel. LastFuelUpdate moves only when at
// least one unit was granted, so repeated zero-effect calls don't drift the
// regeneration clock.
func RegenerateFuel(car *Car, now time.Time) int {
	if car.Fuel >= car.MaxFuel {
		return 0
	}

	minutesPassed := int(now.Sub(car.LastFuelUpdate).Minutes())
	regenerated := minutesPassed / config.FuelRegenMinutes
	if regenerated <= 0 {
		return 0
	}

	granted := regenerated
	if car.Fuel+granted > car.MaxFuel {
		granted = car.MaxFuel - car.Fuel
	}
	car.Fuel += granted
	car.LastFuelUpdate = now
	return granted
}

// SpendFuel deducts fuel for a race. Returns false without mutation when the
// car doesn't hold enough.
func SpendFuel(car *Car, amount int, now time.Time) bool {
	if car.Fuel < amount {
		return false
	}
	car.Fuel -= amount
	car.LastFuelUpdate = now
	return true
}

// FuelRegenETA returns whole minutes until the next fuel unit, or 0 when the
// tank is full.
func FuelRegenETA(car *Car, now time.Time) int {
	if car.Fuel >= car.MaxFuel {
		return 0
	}

	minutesPassed := now.Sub(car.LastFuelUpdate).Minutes()
	remaining := float64(config.FuelRegenMinutes) - math.Mod(minutesPassed, float64(config.FuelRegenMinutes))
	return int(math.Ceil(remaining))
}

// RegenerateAllFuel runs fuel regeneration for every car the player owns and
// reports whether anything changed.
func (g *GameData) RegenerateAllFuel(now time.Time) bool {
	changed := false
	for i := range g.Cars {
		if RegenerateFuel(&g.Cars[i], now) > 0 {
			changed = true
		}
	}
	return changed
}

// MaxUpgradeLevel returns the upgrade cap for a car, tiered by price.
func MaxUpgradeLevel(car *Car) int {
	switch {
	case car.Price <= config.UpgradeTierBudgetPrice:
		return config.UpgradeMaxLevelBudget
	case car.Price <= config.UpgradeTierMidPrice:
		return config.UpgradeMaxLevelMid
	default:
		return config.UpgradeMaxLevelTop
	}
}

// UpgradeCost returns the price of raising the named upgrade from
// currentLevel to currentLevel+1.
func UpgradeCost(upgradeType string, currentLevel int) (int, error) {
	base, ok := config.UpgradeBaseCosts[upgradeType]
	if !ok {
		return 0, fmt.Errorf("unknown upgrade type: %s", upgradeType)
	}
	mult := config.UpgradeCostMultipliers[upgradeType]
	return int(math.Floor(float64(base) * math.Pow(mult, float64(currentLevel)))), nil
}

// UpgradeCheck is the verdict of CanUpgrade.
type UpgradeCheck struct {
	Allowed bool
	Cost    int
	Reason  string
}

// CanUpgrade verifies an upgrade purchase without mutating anything. Max
// level is checked before funds, so the reason names the true blocker.
func CanUpgrade(car *Car, upgradeType string, money int) UpgradeCheck {
	level, ok := car.Upgrades.Level(upgradeType)
	if !ok {
		return UpgradeCheck{Reason: "unknown upgrade type"}
	}

	if level >= MaxUpgradeLevel(car) {
		return UpgradeCheck{Reason: "max upgrade level reached"}
	}

	cost, err := UpgradeCost(upgradeType, level)
	if err != nil {
		return UpgradeCheck{Reason: err.Error()}
	}

	if money < cost {
		return UpgradeCheck{Cost: cost, Reason: fmt.Sprintf("insufficient funds: need %d, have %d", cost, money)}
	}

	return UpgradeCheck{Allowed: true, Cost: cost}
}

// CarRequiredLevel is the player level needed to buy a car of the given
// price. A step function of the price.
func CarRequiredLevel(price int) int {
	switch {
	case price <= 5000:
		return 1
	case price <= 15000:
		return 5
	case price <= 30000:
		return 10
	case price <= 50000:
		return 15
	case price <= 80000:
		return 20
	case price <= 150000:
		return 25
	default:
		return 30
	}
}

// PurchaseCheck is the verdict of CanPurchase.
type PurchaseCheck struct {
	Allowed       bool
	RequiredLevel int
	Reason        string
}

// CanPurchase verifies a car purchase: level gate, funds, and no duplicate
// ownership of the same catalog ID.
func CanPurchase(g *GameData, carID, price int) PurchaseCheck {
	for i := range g.Cars {
		if g.Cars[i].ID == carID {
			return PurchaseCheck{Reason: "car already owned"}
		}
	}

	required := CarRequiredLevel(price)
	if g.Level < required {
		return PurchaseCheck{RequiredLevel: required, Reason: fmt.Sprintf("requires level %d", required)}
	}

	if g.Money < price {
		return PurchaseCheck{RequiredLevel: required, Reason: fmt.Sprintf("insufficient funds: need %d, have %d", price, g.Money)}
	}

	return PurchaseCheck{Allowed: true, RequiredLevel: required}
}

// UnlockAchievement appends an achievement if the ID is new. Returns false
// when it was already unlocked.
func (g *GameData) UnlockAchievement(id, name, description string, now time.Time) bool {
	for i := range g.Achievements {
		if g.Achievements[i].ID == id {
			return false
		}
	}
	g.Achievements = append(g.Achievements, Achievement{
		ID:          id,
		Name:        name,
		Description: description,
		UnlockedAt:  now,
	})
	return true
}
