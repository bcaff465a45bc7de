package config

import (
	"fmt"
	"strings"
)

type Validation struct {
	Errors   []string `json:"errors"`
	Warnings []string `json:"warnings"`
}

func (v *Validation) addErr(format string, args ...any) {
	v.Errors = append(v.Errors, fmt.Sprintf(format, args...))
}
func (v *Validation) addWarn(format string, args ...any) {
	v.Warnings = append(v.Warnings, fmt.Sprintf(format, args...))
}
func (v Validation) OK() bool { return len(v.Errors) == 0 }

// NormalizeAndValidate returns a normalized copy of the config along
// with everything wrong or suspicious about it.
func NormalizeAndValidate(cfg Config) (Config, Validation) {
	var out = cfg
	var res Validation

	out.Currency.Base = strings.ToUpper(strings.TrimSpace(out.Currency.Base))
	out.Currency.Secondary = strings.ToUpper(strings.TrimSpace(out.Currency.Secondary))

	// Drop allowance seeds with no usable key, dedupe the rest.
	seen := map[string]bool{}
	var allowances []AllowanceDefault
	for _, a := range out.Calculator.Allowances {
		a.Name = strings.TrimSpace(a.Name)
		a.Key = strings.ToLower(strings.TrimSpace(a.Key))
		if a.Key == "" {
			res.addWarn("calculator.allowances entry %q has no key; dropped", a.Name)
			continue
		}
		if seen[a.Key] {
			res.addWarn("calculator.allowances has duplicate key %q; first wins", a.Key)
			continue
		}
		seen[a.Key] = true
		allowances = append(allowances, a)
	}
	out.Calculator.Allowances = allowances

	// ---- Validation rules ----

	if out.App.Port <= 0 || out.App.Port > 65535 {
		res.addErr("app.port must be 1..65535")
	}

	for name, path := range map[string]string{
		"catalog.jobs":     out.Catalog.Jobs,
		"catalog.sectors":  out.Catalog.Sectors,
		"catalog.salaries": out.Catalog.Salaries,
		"catalog.terms":    out.Catalog.Terms,
	} {
		if strings.TrimSpace(path) == "" {
			res.addErr("%s is required", name)
		}
	}

	if out.Currency.Base == "" {
		res.addErr("currency.base is required")
	}
	if out.Currency.Secondary == "" {
		res.addErr("currency.secondary is required")
	}
	if out.Currency.Base != "" && out.Currency.Base == out.Currency.Secondary {
		res.addErr("currency.base and currency.secondary must differ")
	}
	if out.Currency.DefaultRate <= 0 {
		res.addErr("currency.default_rate must be > 0")
	}
	if out.Currency.Base != "" && out.Currency.Base != "USD" {
		res.addWarn("currency.base %q has no supported cross-rate; conversion will pass amounts through", out.Currency.Base)
	}
	if out.Currency.Secondary != "" && out.Currency.Secondary != "ZWL" {
		res.addWarn("currency.secondary %q has no supported cross-rate; conversion will pass amounts through", out.Currency.Secondary)
	}

	for _, a := range out.Calculator.Allowances {
		if a.Amount < 0 {
			res.addErr("calculator.allowances[%s].amount must be >= 0", a.Key)
		}
	}
	r := out.Calculator.Rates
	if r.ServiceBonusPerYear < 0 || r.NightBonusPerNight < 0 || r.UninsuredShare < 0 {
		res.addErr("calculator.rates must all be >= 0")
	}
	if r.UninsuredShare > 1 {
		res.addWarn("calculator.rates.uninsured_share is above 1; the uninsured owe more than the coffin costs")
	}

	if out.API.RequestsPerSecond < 0 {
		res.addErr("api.requests_per_second must be >= 0")
	}
	if out.API.Burst < 0 {
		res.addErr("api.burst must be >= 0")
	}

	return out, res
}
