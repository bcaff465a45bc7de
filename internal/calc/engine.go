// engine/internal/calc/engine.go
package calc

import (
	"math"
	"strconv"
	"strings"

	"jobinfo-engine/internal/currency"
)

// Allowance is one editable allowance row. Amounts are in whatever
// currency the calculator is currently displaying.
type Allowance struct {
	Name   string  `json:"name"`
	Key    string  `json:"key"`
	Amount float64 `json:"amount"`
}

// State holds the calculator's current inputs for the active job view.
type State struct {
	Basic            float64     `json:"basic"`
	Allowances       []Allowance `json:"allowances"`
	YearsOfService   float64     `json:"yearsOfService"`
	NightsWorked     float64     `json:"nightsWorked"`
	HasFuneralPolicy bool        `json:"hasFuneralPolicy"`
	PolicyCoverage   float64     `json:"policyCoverage"`
	CoffinCost       float64     `json:"coffinCost"`
}

// Rates are the bonus and benefit multipliers. The shipped defaults are
// 1% of basic per year of service, 1% per night worked, and a 50% share
// of the coffin cost when no funeral policy exists.
type Rates struct {
	ServiceBonusPerYear float64 `yaml:"service_bonus_per_year" json:"serviceBonusPerYear"`
	NightBonusPerNight  float64 `yaml:"night_bonus_per_night" json:"nightBonusPerNight"`
	UninsuredShare      float64 `yaml:"uninsured_share" json:"uninsuredShare"`
}

func DefaultRates() Rates {
	return Rates{
		ServiceBonusPerYear: 0.01,
		NightBonusPerNight:  0.01,
		UninsuredShare:      0.5,
	}
}

// DefaultAllowances returns the two allowance rows every fresh job view
// starts with, in base-currency amounts.
func DefaultAllowances() []Allowance {
	return []Allowance{
		{Name: "Housing", Key: "housing", Amount: 150},
		{Name: "Transport", Key: "transport", Amount: 80},
	}
}

// Breakdown is everything derived from a State; it carries no state of
// its own and is recomputed on every input change.
type Breakdown struct {
	AllowancesTotal float64 `json:"allowancesTotal"`
	GrandTotal      float64 `json:"grandTotal"`
	ServiceBonus    float64 `json:"serviceBonus"`
	NightBonus      float64 `json:"nightBonus"`
	FuneralOwed     float64 `json:"funeralOwed"`
}

// Derive computes the full breakdown for a state. Pure: the state is not
// modified.
func Derive(s State, r Rates) Breakdown {
	basic := Num(s.Basic)

	var allowances float64
	for _, a := range s.Allowances {
		allowances += Num(a.Amount)
	}

	var owed float64
	coffin := Num(s.CoffinCost)
	if s.HasFuneralPolicy {
		owed = coffin - Num(s.PolicyCoverage)
		if owed < 0 {
			owed = 0
		}
	} else {
		owed = coffin * r.UninsuredShare
	}

	return Breakdown{
		AllowancesTotal: allowances,
		GrandTotal:      basic + allowances,
		ServiceBonus:    basic * r.ServiceBonusPerYear * Num(s.YearsOfService),
		NightBonus:      basic * r.NightBonusPerNight * Num(s.NightsWorked),
		FuneralOwed:     owed,
	}
}

// ConvertInputs converts every monetary field in place from the old
// display currency to the new one. This deliberately chains conversions
// on user-edited values instead of recomputing from a stored base
// amount; salary-table rows take the always-from-base path instead.
func ConvertInputs(s *State, conv currency.Converter, from, to string) {
	s.Basic = conv.Convert(s.Basic, from, to)
	for i := range s.Allowances {
		s.Allowances[i].Amount = conv.Convert(s.Allowances[i].Amount, from, to)
	}
	s.CoffinCost = conv.Convert(s.CoffinCost, from, to)
	s.PolicyCoverage = conv.Convert(s.PolicyCoverage, from, to)
}

// Num coerces NaN and infinities to 0, the calculator-wide "parse or
// zero" rule for malformed amounts.
func Num(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}

// ParseNumber parses a numeric form value, degrading to 0 instead of
// failing.
func ParseNumber(s string) float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0
	}
	return Num(v)
}
