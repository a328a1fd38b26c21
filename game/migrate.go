package game

import (
	"time"

	"goRaceServer/config"
)

// NewGameData builds the document for a fresh account: starting money,
// level 1, and the free starter car (catalog ID 0, pre-owned).
func NewGameData(now time.Time) *GameData {
	starter := config.CarCatalog[0]

	return &GameData{
		Version:    config.GameDataVersion,
		Money:      config.StartingMoney,
		Level:      config.StartingLevel,
		Experience: 0,
		Rating:     config.DefaultRating,
		CurrentCar: 0,
		Skills:     Skills{Driving: 1, Speed: 1, Reaction: 1, Technique: 1},
		Cars: []Car{
			{
				ID:             starter.ID,
				Name:           starter.Name,
				Power:          starter.Power,
				Speed:          starter.Speed,
				Handling:       starter.Handling,
				Acceleration:   starter.Acceleration,
				Price:          starter.Price,
				Owned:          true,
				Fuel:           config.DefaultMaxFuel,
				MaxFuel:        config.DefaultMaxFuel,
				LastFuelUpdate: now,
			},
		},
		UnlockedCarTiers: []int{1},
	}
}

// Normalize migrates a loaded document to the current schema version,
// filling defaults for fields older clients never sent. Applied on every
// load so the rest of the code never checks for absent optional fields.
func Normalize(g *GameData, now time.Time) {
	if g.Rating == 0 {
		g.Rating = config.DefaultRating
	}

	if g.Skills.Driving < 1 {
		g.Skills.Driving = 1
	}
	if g.Skills.Speed < 1 {
		g.Skills.Speed = 1
	}
	if g.Skills.Reaction < 1 {
		g.Skills.Reaction = 1
	}
	if g.Skills.Technique < 1 {
		g.Skills.Technique = 1
	}

	for i := range g.Cars {
		car := &g.Cars[i]
		if car.MaxFuel == 0 {
			car.MaxFuel = config.DefaultMaxFuel
		}
		if car.Fuel > car.MaxFuel {
			car.Fuel = car.MaxFuel
		}
		if car.LastFuelUpdate.IsZero() {
			car.LastFuelUpdate = now
		}
	}

	if len(g.UnlockedCarTiers) == 0 {
		g.UnlockedCarTiers = []int{1}
	}

	if g.CurrentCar < 0 || g.CurrentCar >= len(g.Cars) {
		g.CurrentCar = 0
	}

	g.Version = config.GameDataVersion
}
