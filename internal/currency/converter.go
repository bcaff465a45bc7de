// engine/internal/currency/converter.go
package currency

import (
	"math"
	"strconv"
	"strings"

	"github.com/dustin/go-humanize"
)

const (
	// Base is the currency all stored salary and allowance amounts are
	// recorded in.
	Base = "USD"

	// Secondary is the only currency with a supported cross-rate.
	Secondary = "ZWL"

	// DefaultRate is the USD->ZWL rate used until the user supplies one,
	// and the fallback when a supplied rate does not parse.
	DefaultRate = 13
)

// Converter converts amounts between currency codes at a fixed USD->ZWL
// rate. Any pair without a supported cross-rate passes through unchanged;
// that is deliberate, not an error.
type Converter struct {
	Rate float64
}

func NewConverter() Converter {
	return Converter{Rate: DefaultRate}
}

// Convert moves an amount between currencies. Same-code pairs and
// unsupported pairs return the amount as-is; NaN and infinities coerce
// to 0 the way unparseable form input does.
func (c Converter) Convert(amount float64, from, to string) float64 {
	if math.IsNaN(amount) || math.IsInf(amount, 0) {
		amount = 0
	}
	if from == to {
		return amount
	}
	switch {
	case from == Base && to == Secondary:
		return amount * c.Rate
	case from == Secondary && to == Base:
		return amount / c.Rate
	}
	return amount
}

// ParseRate parses a user-entered exchange rate. Anything that does not
// parse to a positive number falls back to DefaultRate, never to the
// previously active rate.
func ParseRate(input string) float64 {
	return ParseRateOr(input, DefaultRate)
}

func ParseRateOr(input string, fallback float64) float64 {
	r, err := strconv.ParseFloat(strings.TrimSpace(input), 64)
	if err != nil || math.IsNaN(r) || math.IsInf(r, 0) || r <= 0 {
		return fallback
	}
	return r
}

// Symbol returns the display symbol for a currency code. Unknown codes
// render as the code followed by a space.
func Symbol(code string) string {
	switch code {
	case "USD":
		return "$"
	case "EUR":
		return "€"
	case "GBP":
		return "£"
	case "ZWL":
		return "ZWL"
	}
	return code + " "
}

// FormatMoney renders an amount with grouped thousands and at most two
// fraction digits. Non-finite input renders as an em dash, matching the
// placeholder shown for missing amounts.
func FormatMoney(amount float64) string {
	if math.IsNaN(amount) || math.IsInf(amount, 0) {
		return "—"
	}
	return humanize.CommafWithDigits(amount, 2)
}
