package loyalty

import (
	"fmt"
	"math"
)

// Tier is one membership level of the static tier ladder.
type Tier struct {
	Name     string   // Tier display name.
	Min      int64    // Inclusive lower point bound.
	Max      int64    // Inclusive upper point bound, math.MaxInt64 for the top tier.
	Benefits []string // Benefit lines shown on the profile page.
}

// tiers is the static ladder. Ranges are contiguous and cover every
// non-negative balance, which validateTiers asserts at init.
var tiers = []Tier{
	{
		Name: "Bronze",
		Min:  0,
		Max:  99,
		Benefits: []string{
			"Earn 2 points per item ordered",
			"Birthday greeting",
		},
	},
	{
		Name: "Silver",
		Min:  100,
		Max:  299,
		Benefits: []string{
			"All Bronze benefits",
			"Free topping once a month",
			"Priority event registration",
		},
	},
	{
		Name: "Gold",
		Min:  300,
		Max:  599,
		Benefits: []string{
			"All Silver benefits",
			"5% discount on every order",
			"Free drink on your birthday",
		},
	},
	{
		Name: "Platinum",
		Min:  600,
		Max:  math.MaxInt64,
		Benefits: []string{
			"All Gold benefits",
			"10% discount on every order",
			"Free table reservation priority",
		},
	},
}

func init() {
	if err := validateTiers(tiers); err != nil {
		panic(err)
	}
}

// validateTiers asserts the ladder starts at zero, is contiguous and ends
// open-ended. A broken table is a programming error, not a runtime state.
func validateTiers(table []Tier) error {
	if len(table) == 0 {
		return fmt.Errorf("loyalty: empty tier table")
	}
	if table[0].Min != 0 {
		return fmt.Errorf("loyalty: tier table must start at 0, got %d", table[0].Min)
	}
	for i, t := range table {
		if t.Max < t.Min {
			return fmt.Errorf("loyalty: tier %q has max %d below min %d", t.Name, t.Max, t.Min)
		}
		if i > 0 && t.Min != table[i-1].Max+1 {
			return fmt.Errorf("loyalty: gap between tiers %q and %q", table[i-1].Name, t.Name)
		}
	}
	if table[len(table)-1].Max != math.MaxInt64 {
		return fmt.Errorf("loyalty: top tier %q must be open-ended", table[len(table)-1].Name)
	}
	return nil
}

// Tiers returns the full ladder for display.
func Tiers() []Tier {
	out := make([]Tier, len(tiers))
	copy(out, tiers)
	return out
}

// TierOf maps a point balance to its tier and the progress percentage toward
// the next tier. Progress is 0 at the top tier and clamped to [0,100].
// A negative input maps to the bottom tier.
func TierOf(points int64) (Tier, float64) {
	if points < 0 {
		points = 0
	}
	for i, t := range tiers {
		if points < t.Min || points > t.Max {
			continue
		}
		if i == len(tiers)-1 {
			return t, 0
		}
		span := float64(t.Max - t.Min)
		progress := float64(points-t.Min) / span * 100
		if progress < 0 {
			progress = 0
		}
		if progress > 100 {
			progress = 100
		}
		return t, progress
	}
	// Unreachable while validateTiers holds.
	panic(fmt.Sprintf("loyalty: no tier for balance %d", points))
}
