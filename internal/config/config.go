// engine/internal/config/config.go
package config

import (
	"os"

	"gopkg.in/yaml.v3"

	"jobinfo-engine/internal/calc"
)

// AllowanceDefault seeds one allowance row whenever the calculator
// resets. Amounts are in the base currency.
type AllowanceDefault struct {
	Name   string  `yaml:"name" json:"name"`
	Key    string  `yaml:"key" json:"key"`
	Amount float64 `yaml:"amount" json:"amount"`
}

type Config struct {
	App struct {
		Port    int    `yaml:"port" json:"port"`
		DataDir string `yaml:"data_dir" json:"data_dir"`
	} `yaml:"app" json:"app"`

	Catalog struct {
		Jobs     string `yaml:"jobs" json:"jobs"`
		Sectors  string `yaml:"sectors" json:"sectors"`
		Salaries string `yaml:"salaries" json:"salaries"`
		Terms    string `yaml:"terms" json:"terms"`
	} `yaml:"catalog" json:"catalog"`

	Currency struct {
		Base        string  `yaml:"base" json:"base"`
		Secondary   string  `yaml:"secondary" json:"secondary"`
		DefaultRate float64 `yaml:"default_rate" json:"default_rate"`
	} `yaml:"currency" json:"currency"`

	Calculator struct {
		Allowances []AllowanceDefault `yaml:"allowances" json:"allowances"`
		Rates      calc.Rates         `yaml:"rates" json:"rates"`
	} `yaml:"calculator" json:"calculator"`

	API struct {
		RequestsPerSecond float64 `yaml:"requests_per_second" json:"requests_per_second"`
		Burst             int     `yaml:"burst" json:"burst"`
	} `yaml:"api" json:"api"`
}

func Load(path string) (Config, error) {
	var cfg Config
	b, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	err = yaml.Unmarshal(b, &cfg)
	return cfg, err
}

// DefaultAllowances converts the configured allowance seeds into
// calculator rows, falling back to the built-in pair when none are
// configured.
func (c Config) DefaultAllowances() []calc.Allowance {
	if len(c.Calculator.Allowances) == 0 {
		return calc.DefaultAllowances()
	}
	out := make([]calc.Allowance, 0, len(c.Calculator.Allowances))
	for _, a := range c.Calculator.Allowances {
		out = append(out, calc.Allowance{Name: a.Name, Key: a.Key, Amount: a.Amount})
	}
	return out
}

// Rates returns the configured bonus rates, with zero-value configs
// falling back to the shipped defaults.
func (c Config) Rates() calc.Rates {
	r := c.Calculator.Rates
	if r == (calc.Rates{}) {
		return calc.DefaultRates()
	}
	return r
}
