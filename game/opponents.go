package game

import (
	"math"

	"goRaceServer/config"
)

type difficultyClass struct {
	name       string
	diffMult   float64
	rewardMult float64
}

// The four roster slots, easiest first.
var difficultyClasses = []difficultyClass{
	{name: "easy", diffMult: 0.8, rewardMult: 0.8},
	{name: "medium", diffMult: 1.0, rewardMult: 1.0},
	{name: "hard", diffMult: 1.3, rewardMult: 1.5},
	{name: "extreme", diffMult: 1.6, rewardMult: 2.0},
}

// GenerateOpponents derives the fixed 4-opponent roster for a player level.
// No randomness: the listing endpoint and the race endpoint call this same
// function, so an opponent index stays valid between the two requests.
func GenerateOpponents(playerLevel int) []Opponent {
	opponents := make([]Opponent, 0, len(difficultyClasses))

	baseDifficulty := 0.7 + float64(playerLevel)*0.02
	baseReward := 200 + playerLevel*100

	for _, class := range difficultyClasses {
		difficulty := math.Round(baseDifficulty*class.diffMult*100) / 100
		reward := int(math.Floor(float64(baseReward)*class.rewardMult/50)) * 50

		opponents = append(opponents, Opponent{
			Difficulty:      difficulty,
			Reward:          reward,
			DifficultyClass: class.name,
			FuelCost:        FuelCostFor(difficulty),
		})
	}

	return opponents
}

// FuelCostFor returns the fuel cost tier for an opponent difficulty.
func FuelCostFor(difficulty float64) int {
	multiplier := 1.0
	switch {
	case difficulty >= 1.8:
		multiplier = 2.5
	case difficulty >= 1.4:
		multiplier = 2.0
	case difficulty >= 1.0:
		multiplier = 1.5
	}
	return int(math.Ceil(config.BaseFuelCost * multiplier))
}
