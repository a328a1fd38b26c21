package game

import (
	"math"
	"math/rand"

	"goRaceServer/config"
)

// CarPower is the effective power of a car: the average of its four core
// stats plus a flat bonus per upgrade level.
func CarPower(car *Car) float64 {
	base := float64(car.Power+car.Speed+car.Handling+car.Acceleration) / 4.0
	return base + float64(config.UpgradePowerBonus*car.Upgrades.Sum())
}

// SkillMultiplier converts the owner's skills into an efficiency multiplier.
func SkillMultiplier(skills *Skills) float64 {
	return 1 +
		float64(skills.Driving)*config.SkillDrivingCoef +
		float64(skills.Speed)*config.SkillSpeedCoef +
		float64(skills.Reaction)*config.SkillReactionCoef +
		float64(skills.Technique)*config.SkillTechniqueCoef
}

// ResolveRace computes a race outcome from car, skills and opponent
// difficulty. The RNG is injected so a race seed fully determines the result:
// nitro roll first, then player jitter, then opponent jitter.
func ResolveRace(car *Car, skills *Skills, difficulty float64, rng *rand.Rand) RaceResult {
	efficiency := CarPower(car) * SkillMultiplier(skills)

	nitroActivated := false
	if car.SpecialParts.Nitro && rng.Float64() < config.NitroChance {
		efficiency *= config.NitroMultiplier
		nitroActivated = true
	}

	opponentEfficiency := config.OpponentEfficiencyBase * difficulty

	playerJitter := config.JitterMin + rng.Float64()*config.JitterSpread
	opponentJitter := config.JitterMin + rng.Float64()*config.JitterSpread

	playerTime := config.TrackBaseTime * (100 / efficiency) * playerJitter
	opponentTime := config.TrackBaseTime * (100 / opponentEfficiency) * opponentJitter

	return RaceResult{
		Won:            playerTime < opponentTime,
		PlayerTime:     playerTime,
		OpponentTime:   opponentTime,
		NitroActivated: nitroActivated,
	}
}

// XPGain is the base experience for a race before race-type and event
// multipliers.
func XPGain(won bool, difficulty float64, betAmount int) int {
	baseXP := config.RaceXPLoss
	if won {
		baseXP = config.RaceXPWin
	}
	return baseXP + int(math.Floor(difficulty*config.XPDifficultyBonus)) + betAmount/config.XPBetDivisor
}

// ResolveRaceOutcome runs the full pipeline: raw result, reward and XP,
// race-type modifiers, then event effects. The opponent's reward and fuel
// cost come from the shared roster so listing and racing agree.
func ResolveRaceOutcome(car *Car, skills *Skills, opponent Opponent, raceType RaceType, event *Event, betAmount int, rng *rand.Rand) RaceOutcome {
	result := ResolveRace(car, skills, opponent.Difficulty, rng)

	outcome := RaceOutcome{RaceResult: result}

	// Race-type modifiers apply before event effects.
	outcome.FuelCost = int(math.Ceil(float64(opponent.FuelCost) * raceType.FuelMult))
	if result.Won {
		outcome.Reward = int(math.Floor(float64(opponent.Reward) * raceType.RewardMult))
	}
	outcome.XPGained = int(math.Floor(float64(XPGain(result.Won, opponent.Difficulty, betAmount)) * raceType.XPMult))

	ApplyEventEffect(event, &outcome)

	if skill, ok := RollSkillGain(result.Won, opponent.Difficulty, raceType, rng); ok {
		outcome.SkillGained = skill
	}

	return outcome
}

// RollSkillGain decides whether a race grants a skill point, and which skill
// gets it. Chance is configuration (config.SkillGain*): base by result, a
// difficulty term, scaled by the race type's XP multiplier.
func RollSkillGain(won bool, difficulty float64, raceType RaceType, rng *rand.Rand) (string, bool) {
	base := config.SkillGainBaseLoss
	if won {
		base = config.SkillGainBaseWin
	}

	chance := (base + difficulty*config.SkillGainDifficultyCoef) * raceType.XPMult
	if chance > config.SkillGainMaxChance {
		chance = config.SkillGainMaxChance
	}

	if rng.Float64() >= chance {
		return "", false
	}
	return SkillNames[rng.Intn(len(SkillNames))], true
}

// RatingDelta is the rating change for a race result.
func RatingDelta(won bool, difficulty float64) int {
	if won {
		return int(math.Floor(config.RatingWinBase * difficulty))
	}
	return -config.RatingLossBase
}
