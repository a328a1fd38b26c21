package config

import (
	"time"
)

/* =========================
   PROGRESSION - XP & LEVELS
========================= */

const (
	// XP curve: requiredXP(level) = floor(XPBase * XPGrowth^(level-1))
	XPBase   = 100.0
	XPGrowth = 1.5

	// Money reward per level gained: LevelUpReward * newLevel
	LevelUpReward = 500

	MinLevel = 1
	MaxLevel = 100

	// Base XP per race
	RaceXPWin  = 50
	RaceXPLoss = 20

	// Bonus XP: floor(difficulty * XPDifficultyBonus) + floor(bet / XPBetDivisor)
	XPDifficultyBonus = 30
	XPBetDivisor      = 100
)

// CarTierMilestones are the levels that unlock a new car tier (once each).
var CarTierMilestones = []int{5, 10, 15, 20, 25, 30}

/* =========================
   FUEL
========================= */

const (
	DefaultMaxFuel = 30

	// Minutes of wall-clock time per regenerated fuel unit
	FuelRegenMinutes = 10

	// Base fuel cost per race, scaled by difficulty tier
	BaseFuelCost = 5
)

/* =========================
   UPGRADES
========================= */

// Upgrade cost: floor(base * multiplier^currentLevel)
var (
	UpgradeBaseCosts = map[string]int{
		"engine":       500,
		"turbo":        300,
		"tires":        200,
		"suspension":   400,
		"transmission": 600,
	}

	UpgradeCostMultipliers = map[string]float64{
		"engine":       2.5,
		"turbo":        2.3,
		"tires":        2.2,
		"suspension":   2.4,
		"transmission": 2.5,
	}
)

const (
	// Max upgrade level is tiered by car price
	UpgradeTierBudgetPrice = 8000
	UpgradeTierMidPrice    = 35000

	UpgradeMaxLevelBudget = 5
	UpgradeMaxLevelMid    = 7
	UpgradeMaxLevelTop    = 10

	// Each upgrade level adds this much to effective car power
	UpgradePowerBonus = 2
)

/* =========================
   RACE RESOLUTION
========================= */

const (
	TrackBaseTime = 60.0

	// Opponent efficiency = OpponentEfficiencyBase * difficulty
	OpponentEfficiencyBase = 60.0

	// Per-side uniform jitter on race time: U(JitterMin, JitterMin+JitterSpread)
	JitterMin    = 0.95
	JitterSpread = 0.10

	// Nitro special part
	NitroChance     = 0.30
	NitroMultiplier = 1.2

	// Skill multiplier coefficients
	SkillDrivingCoef   = 0.002
	SkillSpeedCoef     = 0.002
	SkillReactionCoef  = 0.0015
	SkillTechniqueCoef = 0.0015
)

// Skill gain roll after a race: one random skill +1 when the roll passes.
// Chance = base (win/loss) + difficulty*SkillGainDifficultyCoef, scaled by the
// race type XP multiplier, clamped to SkillGainMaxChance.
const (
	SkillGainBaseWin        = 0.10
	SkillGainBaseLoss       = 0.05
	SkillGainDifficultyCoef = 0.02
	SkillGainMaxChance      = 0.50
)

/* =========================
   RATING
========================= */

const (
	DefaultRating = 1000

	// Rating delta per race: win +floor(RatingWinBase*difficulty), loss -RatingLossBase
	RatingWinBase  = 25
	RatingLossBase = 15
)

/* =========================
   GLOBAL EVENTS
========================= */

const (
	// Scheduler tick interval
	EventCheckInterval = 1 * time.Minute

	// Minimum gap between the end of one event and the creation of the next
	EventCooldown = 2 * time.Hour

	// Chance per tick (after cooldown) to spawn a new event
	EventSpawnChance = 0.30

	// Event lifetime
	EventDuration = 2 * time.Hour

	DefaultEventMultiplier = 2.0
	DefaultEventDiscount   = 0.5
)

/* =========================
   DAILY TASKS
========================= */

const (
	// Tasks per cycle, drawn from the template catalog without duplicates
	DailyTaskCount = 3

	// Rolling window from generation time
	DailyTaskResetWindow = 24 * time.Hour

	// One-time bonus when all tasks in a cycle have been claimed
	DailyTaskAllClaimedBonus = 1000
)

/* =========================
   NEW PLAYER DEFAULTS
========================= */

const (
	StartingMoney = 1000
	StartingLevel = 1

	// Current game-state document schema version, see game.Normalize
	GameDataVersion = 2
)

/* =========================
   REDIS TTL & KEY PATTERNS
========================= */

const (
	// Leaderboard page cache
	// Key: leaderboard:{page}:{limit}
	LeaderboardCacheTTL = 1 * time.Minute
	RedisLeaderboardKey = "leaderboard:%d:%d"

	// Active global event mirror
	// Key: event:current
	EventCacheTTL = 1 * time.Minute
	RedisEventKey = "event:current"

	// Rate limit counters
	// Key: ratelimit:{scope}:{ip}
	RedisRateLimitKey = "ratelimit:%s:%s"
)

/* =========================
   POSTGRESQL CONFIGURATION
========================= */

const (
	// Connection pool settings
	MaxOpenConns    = 25
	MinIdleConns    = 5
	ConnMaxLifetime = 5 * time.Minute
)

/* =========================
   API CONFIGURATION
========================= */

const (
	// Server settings
	ServerPort = "8080"
	ServerHost = "0.0.0.0"

	// JWT token lifetime
	TokenLifetime = 7 * 24 * time.Hour

	// Username constraints
	MinUsernameLen = 3
	MaxUsernameLen = 20

	// Reads are quick; saves tolerate slow clients (see saveProtection)
	ReadTimeout  = 15 * time.Second
	WriteTimeout = 45 * time.Second

	// Health check response cache
	HealthCacheTTL = 10 * time.Second
)

/* =========================
   RATE LIMITING
========================= */

const (
	// Auth endpoints: 5 attempts / 15 minutes
	AuthLimitWindow = 15 * time.Minute
	AuthLimitMax    = 5

	// Game saves: 20 / minute
	SaveLimitWindow = 1 * time.Minute
	SaveLimitMax    = 20

	// Game actions (races, purchases): 30 / 5 minutes
	ActionLimitWindow = 5 * time.Minute
	ActionLimitMax    = 30

	// Everything else: 200 / 15 minutes
	GeneralLimitWindow = 15 * time.Minute
	GeneralLimitMax    = 200

	// Chat messages: 10 / minute
	ChatLimitWindow = 1 * time.Minute
	ChatLimitMax    = 10
)

/* =========================
   WEBSOCKET CONFIGURATION
========================= */

const (
	WSReadBufferSize  = 1024
	WSWriteBufferSize = 1024

	MaxChatMessageLen  = 500
	ChatHistoryLimit   = 50
	ChatSendBufferSize = 256
)
