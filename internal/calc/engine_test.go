package calc

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"jobinfo-engine/internal/currency"
)

func TestDeriveTotals(t *testing.T) {
	s := State{
		Basic: 1000,
		Allowances: []Allowance{
			{Name: "Housing", Key: "housing", Amount: 150},
			{Name: "Transport", Key: "transport", Amount: 80},
		},
	}
	b := Derive(s, DefaultRates())

	assert.InDelta(t, 230, b.AllowancesTotal, 1e-9)
	assert.InDelta(t, 1230, b.GrandTotal, 1e-9)
}

func TestDeriveBonuses(t *testing.T) {
	s := State{Basic: 1000, YearsOfService: 7, NightsWorked: 12}
	b := Derive(s, DefaultRates())

	assert.InDelta(t, 70, b.ServiceBonus, 1e-9)
	assert.InDelta(t, 120, b.NightBonus, 1e-9)
}

func TestDeriveFuneralBenefit(t *testing.T) {
	tests := []struct {
		name     string
		policy   bool
		coverage float64
		coffin   float64
		want     float64
	}{
		{"no policy pays half", false, 0, 1000, 500},
		{"no policy ignores coverage", false, 9999, 1000, 500},
		{"coverage exceeds cost", true, 1200, 1000, 0},
		{"coverage equals cost", true, 1000, 1000, 0},
		{"coverage shortfall", true, 300, 1000, 700},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := State{
				HasFuneralPolicy: tt.policy,
				PolicyCoverage:   tt.coverage,
				CoffinCost:       tt.coffin,
			}
			b := Derive(s, DefaultRates())
			assert.InDelta(t, tt.want, b.FuneralOwed, 1e-9)
		})
	}
}

func TestDeriveCoercesMalformedAmounts(t *testing.T) {
	s := State{
		Basic:      math.NaN(),
		Allowances: []Allowance{{Amount: math.Inf(1)}, {Amount: 80}},
	}
	b := Derive(s, DefaultRates())

	assert.InDelta(t, 80, b.AllowancesTotal, 1e-9)
	assert.InDelta(t, 80, b.GrandTotal, 1e-9)
}

func TestConvertInputsChainsConversions(t *testing.T) {
	conv := currency.Converter{Rate: 13}
	s := State{
		Basic:          100,
		Allowances:     []Allowance{{Key: "housing", Amount: 150}},
		CoffinCost:     1000,
		PolicyCoverage: 300,
	}

	ConvertInputs(&s, conv, "USD", "ZWL")
	assert.InDelta(t, 1300, s.Basic, 1e-9)
	assert.InDelta(t, 1950, s.Allowances[0].Amount, 1e-9)
	assert.InDelta(t, 13000, s.CoffinCost, 1e-9)
	assert.InDelta(t, 3900, s.PolicyCoverage, 1e-9)

	// Round trip returns to the starting values within float tolerance.
	ConvertInputs(&s, conv, "ZWL", "USD")
	assert.InDelta(t, 100, s.Basic, 1e-9)
	assert.InDelta(t, 150, s.Allowances[0].Amount, 1e-9)
}

func TestParseNumber(t *testing.T) {
	assert.Equal(t, 12.5, ParseNumber(" 12.5 "))
	assert.Equal(t, 0.0, ParseNumber("abc"))
	assert.Equal(t, 0.0, ParseNumber(""))
	assert.Equal(t, 0.0, ParseNumber("NaN"))
}
