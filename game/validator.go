package game

import (
	"fmt"
)

// ValidationError is a field-level structural rejection of a save payload.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

func invalid(field, format string, args ...interface{}) *ValidationError {
	return &ValidationError{Field: field, Reason: fmt.Sprintf(format, args...)}
}

// ValidateGameData is the structural gate applied to every incoming save.
// Any violation rejects the whole document; nothing is persisted partially.
// Skills have no upper bound by design.
func ValidateGameData(g *GameData) error {
	if g == nil {
		return invalid("gameData", "missing document")
	}

	if g.Money < 0 {
		return invalid("money", "must be non-negative, got %d", g.Money)
	}

	if g.Level < 1 || g.Level > 100 {
		return invalid("level", "must be in [1,100], got %d", g.Level)
	}

	if g.Experience < 0 {
		return invalid("experience", "must be non-negative, got %d", g.Experience)
	}

	if g.CurrentCar < 0 {
		return invalid("currentCar", "index must be non-negative, got %d", g.CurrentCar)
	}

	if len(g.Cars) == 0 {
		return invalid("cars", "player must own at least one car")
	}

	for i := range g.Cars {
		if err := validateCar(&g.Cars[i], i); err != nil {
			return err
		}
	}

	if err := validateSkills(&g.Skills); err != nil {
		return err
	}

	if err := validateStats(&g.Stats); err != nil {
		return err
	}

	return nil
}

func validateCar(car *Car, index int) error {
	stats := []struct {
		name  string
		value int
	}{
		{"power", car.Power},
		{"speed", car.Speed},
		{"handling", car.Handling},
		{"acceleration", car.Acceleration},
	}
	for _, s := range stats {
		if s.value < 0 || s.value > 200 {
			return invalid(fmt.Sprintf("cars[%d].%s", index, s.name), "must be in [0,200], got %d", s.value)
		}
	}

	for _, upgradeType := range UpgradeTypes {
		level, _ := car.Upgrades.Level(upgradeType)
		if level < 0 || level > 10 {
			return invalid(fmt.Sprintf("cars[%d].upgrades.%s", index, upgradeType), "must be in [0,10], got %d", level)
		}
	}

	maxFuel := car.MaxFuel
	if maxFuel == 0 {
		maxFuel = 30
	}
	if car.Fuel < 0 || car.Fuel > maxFuel {
		return invalid(fmt.Sprintf("cars[%d].fuel", index), "must be in [0,%d], got %d", maxFuel, car.Fuel)
	}

	return nil
}

func validateSkills(skills *Skills) error {
	checks := []struct {
		name  string
		value int
	}{
		{"driving", skills.Driving},
		{"speed", skills.Speed},
		{"reaction", skills.Reaction},
		{"technique", skills.Technique},
	}
	for _, c := range checks {
		if c.value < 1 {
			return invalid("skills."+c.name, "must be at least 1, got %d", c.value)
		}
	}
	return nil
}

func validateStats(stats *Stats) error {
	checks := []struct {
		name  string
		value int
	}{
		{"totalRaces", stats.TotalRaces},
		{"wins", stats.Wins},
		{"losses", stats.Losses},
		{"moneyEarned", stats.MoneyEarned},
		{"moneySpent", stats.MoneySpent},
	}
	for _, c := range checks {
		if c.value < 0 {
			return invalid("stats."+c.name, "must be non-negative, got %d", c.value)
		}
	}

	if stats.Wins > stats.TotalRaces {
		return invalid("stats.wins", "wins (%d) exceed total races (%d)", stats.Wins, stats.TotalRaces)
	}

	if stats.Wins+stats.Losses > stats.TotalRaces {
		return invalid("stats", "wins+losses (%d) exceed total races (%d)", stats.Wins+stats.Losses, stats.TotalRaces)
	}

	return nil
}
