package currency

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConvert(t *testing.T) {
	c := Converter{Rate: 13}

	tests := []struct {
		name   string
		amount float64
		from   string
		to     string
		want   float64
	}{
		{"usd to zwl", 100, "USD", "ZWL", 1300},
		{"zwl to usd", 1300, "ZWL", "USD", 100},
		{"identity same code", 250, "USD", "USD", 250},
		{"unsupported pair passthrough", 42, "EUR", "GBP", 42},
		{"unsupported to base passthrough", 42, "EUR", "USD", 42},
		{"nan coerces to zero", math.NaN(), "USD", "ZWL", 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, c.Convert(tt.amount, tt.from, tt.to), 1e-9)
		})
	}
}

func TestConvertRoundTrip(t *testing.T) {
	c := Converter{Rate: 13}
	got := c.Convert(c.Convert(100, "USD", "ZWL"), "ZWL", "USD")
	assert.InDelta(t, 100, got, 1e-9)
}

func TestParseRate(t *testing.T) {
	assert.Equal(t, 25.5, ParseRate(" 25.5 "))
	assert.Equal(t, float64(DefaultRate), ParseRate("abc"))
	assert.Equal(t, float64(DefaultRate), ParseRate(""))
	assert.Equal(t, float64(DefaultRate), ParseRate("-2"))
	assert.Equal(t, float64(DefaultRate), ParseRate("0"))
}

func TestSymbol(t *testing.T) {
	assert.Equal(t, "$", Symbol("USD"))
	assert.Equal(t, "€", Symbol("EUR"))
	assert.Equal(t, "£", Symbol("GBP"))
	assert.Equal(t, "ZWL", Symbol("ZWL"))
	assert.Equal(t, "ZAR ", Symbol("ZAR"))
}

func TestFormatMoney(t *testing.T) {
	assert.Equal(t, "1,300", FormatMoney(1300))
	assert.Equal(t, "1,234.5", FormatMoney(1234.5))
	assert.Equal(t, "—", FormatMoney(math.NaN()))
}
