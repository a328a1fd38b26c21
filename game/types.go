package game

import (
	"time"
)

// Upgrades are the per-car upgrade levels. Keys mirror the client's shop.
type Upgrades struct {
	Engine       int `json:"engine"`
	Turbo        int `json:"turbo"`
	Tires        int `json:"tires"`
	Suspension   int `json:"suspension"`
	Transmission int `json:"transmission"`
}

// UpgradeTypes is the canonical ordering of upgrade slots.
var UpgradeTypes = []string{"engine", "turbo", "tires", "suspension", "transmission"}

// Level returns the level of the named upgrade slot.
func (u *Upgrades) Level(upgradeType string) (int, bool) {
	switch upgradeType {
	case "engine":
		return u.Engine, true
	case "turbo":
		return u.Turbo, true
	case "tires":
		return u.Tires, true
	case "suspension":
		return u.Suspension, true
	case "transmission":
		return u.Transmission, true
	}
	return 0, false
}

// SetLevel sets the level of the named upgrade slot.
func (u *Upgrades) SetLevel(upgradeType string, level int) bool {
	switch upgradeType {
	case "engine":
		u.Engine = level
	case "turbo":
		u.Turbo = level
	case "tires":
		u.Tires = level
	case "suspension":
		u.Suspension = level
	case "transmission":
		u.Transmission = level
	default:
		return false
	}
	return true
}

// Sum returns the total of all upgrade levels.
func (u *Upgrades) Sum() int {
	return u.Engine + u.Turbo + u.Tires + u.Suspension + u.Transmission
}

// SpecialParts are one-off boolean car parts.
type SpecialParts struct {
	Nitro    bool `json:"nitro"`
	BodyKit  bool `json:"bodyKit"`
	ECUTune  bool `json:"ecuTune"`
	FuelTank bool `json:"fuelTank"`
}

// Car is one vehicle owned by a player. Stats are in [0,200]; fuel never
// exceeds MaxFuel. Cars are created on purchase (or as the starter car) and
// are never deleted.
type Car struct {
	ID             int          `json:"id"`
	Name           string       `json:"name"`
	Power          int          `json:"power"`
	Speed          int          `json:"speed"`
	Handling       int          `json:"handling"`
	Acceleration   int          `json:"acceleration"`
	Price          int          `json:"price"`
	Owned          bool         `json:"owned"`
	Fuel           int          `json:"fuel"`
	MaxFuel        int          `json:"maxFuel"`
	LastFuelUpdate time.Time    `json:"lastFuelUpdate"`
	Upgrades       Upgrades     `json:"upgrades"`
	SpecialParts   SpecialParts `json:"specialParts"`
}

// Skills are the player's named skill levels, each >= 1 and uncapped.
type Skills struct {
	Driving   int `json:"driving"`
	Speed     int `json:"speed"`
	Reaction  int `json:"reaction"`
	Technique int `json:"technique"`
}

// SkillNames is the canonical ordering used for random skill-gain rolls.
var SkillNames = []string{"driving", "speed", "reaction", "technique"}

// Increment bumps the named skill by one.
func (s *Skills) Increment(name string) bool {
	switch name {
	case "driving":
		s.Driving++
	case "speed":
		s.Speed++
	case "reaction":
		s.Reaction++
	case "technique":
		s.Technique++
	default:
		return false
	}
	return true
}

// Stats are lifetime counters. Invariants: Wins <= TotalRaces and
// Wins+Losses <= TotalRaces.
type Stats struct {
	TotalRaces  int `json:"totalRaces"`
	Wins        int `json:"wins"`
	Losses      int `json:"losses"`
	MoneyEarned int `json:"moneyEarned"`
	MoneySpent  int `json:"moneySpent"`
}

// Achievement is a unique unlocked achievement.
type Achievement struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	UnlockedAt  time.Time `json:"unlockedAt"`
}

// DailyTask is one objective in the current daily cycle.
type DailyTask struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	TrackStat   string `json:"trackStat"`
	Required    int    `json:"required"`
	Reward      int    `json:"reward"`
	Progress    int    `json:"progress"`
	Completed   bool   `json:"completed"`
	Claimed     bool   `json:"claimed"`
}

// DailyBaseline snapshots lifetime counters at cycle start. Cumulative stats
// derive progress as lifetime_now - baseline; fuelSpent and upgradesBought
// are session counters that accumulate directly.
type DailyBaseline struct {
	TotalRaces     int `json:"totalRaces"`
	Wins           int `json:"wins"`
	MoneyEarned    int `json:"moneyEarned"`
	FuelSpent      int `json:"fuelSpent"`
	UpgradesBought int `json:"upgradesBought"`
}

// DailyTasks is the player's current daily cycle.
type DailyTasks struct {
	Tasks        []DailyTask   `json:"tasks"`
	GeneratedAt  time.Time     `json:"generatedAt"`
	Baseline     DailyBaseline `json:"baseline"`
	ClaimedCount int           `json:"claimedCount"`
	BonusClaimed bool          `json:"bonusClaimed"`
}

// GameData is the full persisted game state of one player. It is stored as a
// single JSONB document; Normalize migrates older documents on load.
type GameData struct {
	Version          int           `json:"version"`
	Money            int           `json:"money"`
	Level            int           `json:"level"`
	Experience       int           `json:"experience"`
	Rating           int           `json:"rating"`
	CurrentCar       int           `json:"currentCar"`
	Skills           Skills        `json:"skills"`
	Stats            Stats         `json:"stats"`
	Cars             []Car         `json:"cars"`
	Achievements     []Achievement `json:"achievements"`
	UnlockedCarTiers []int         `json:"unlockedCarTiers"`
	DailyTasks       *DailyTasks   `json:"dailyTasks,omitempty"`
}

// Event is a time-boxed economy-wide modifier. At most one is active.
type Event struct {
	ID          int       `json:"id"`
	Type        string    `json:"type"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Icon        string    `json:"icon"`
	Multiplier  float64   `json:"multiplier"`
	Discount    float64   `json:"discount"`
	StartTime   time.Time `json:"startTime"`
	EndTime     time.Time `json:"endTime"`
	IsActive    bool      `json:"isActive"`
}

// Event types.
const (
	EventDoubleRewards   = "double_rewards"
	EventUpgradeDiscount = "upgrade_discount"
	EventFreeFuel        = "free_fuel"
	EventBonusXP         = "bonus_xp"
)

// Opponent is one roster entry produced by GenerateOpponents.
type Opponent struct {
	Difficulty      float64 `json:"difficulty"`
	Reward          int     `json:"reward"`
	DifficultyClass string  `json:"difficultyClass"`
	FuelCost        int     `json:"fuelCost"`
}

// RaceType scales fuel cost, reward and XP for a race variant.
type RaceType struct {
	Name       string  `json:"name"`
	FuelMult   float64 `json:"fuelMult"`
	RewardMult float64 `json:"rewardMult"`
	XPMult     float64 `json:"xpMult"`
}

// RaceTypes maps race variant names to their modifiers. "classic" is the
// default when a request names no type.
var RaceTypes = map[string]RaceType{
	"classic":   {Name: "classic", FuelMult: 1.0, RewardMult: 1.0, XPMult: 1.0},
	"drift":     {Name: "drift", FuelMult: 0.8, RewardMult: 1.2, XPMult: 1.5},
	"sprint":    {Name: "sprint", FuelMult: 0.5, RewardMult: 0.7, XPMult: 0.8},
	"endurance": {Name: "endurance", FuelMult: 2.0, RewardMult: 2.0, XPMult: 2.5},
}

// RaceResult is the raw outcome of ResolveRace, before race-type and event
// modifiers are applied.
type RaceResult struct {
	Won            bool    `json:"won"`
	PlayerTime     float64 `json:"playerTime"`
	OpponentTime   float64 `json:"opponentTime"`
	NitroActivated bool    `json:"nitroActivated"`
}

// RaceOutcome is the fully resolved race: result plus the reward, XP and
// fuel cost actually charged after race-type and event effects.
type RaceOutcome struct {
	RaceResult
	Reward      int    `json:"reward"`
	XPGained    int    `json:"xpGained"`
	FuelCost    int    `json:"fuelCost"`
	SkillGained string `json:"skillGained,omitempty"`
}

// LevelUpResult reports the outcome of CheckLevelUp. The caller applies
// Reward to the player's money exactly once.
type LevelUpResult struct {
	NewLevel  int  `json:"newLevel"`
	LeveledUp bool `json:"leveledUp"`
	Reward    int  `json:"reward"`
}
