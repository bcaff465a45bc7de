// engine/internal/session/session.go
package session

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"sync"

	"jobinfo-engine/internal/calc"
	"jobinfo-engine/internal/catalog"
	"jobinfo-engine/internal/currency"
	"jobinfo-engine/internal/resolve"
	"jobinfo-engine/internal/sector"
	"jobinfo-engine/internal/store"
)

var (
	ErrNoActiveJob   = errors.New("no active job")
	ErrUnknownJob    = errors.New("unknown job id")
	ErrUnknownSector = errors.New("unknown sector")
	ErrUnknownField  = errors.New("unknown calculator field")
	ErrUnknownOffer  = errors.New("unknown institution")
)

// Settings are the session's fixed policy knobs, taken from config at
// startup.
type Settings struct {
	BaseCurrency      string
	SecondaryCurrency string
	DefaultRate       float64
	DefaultAllowances []calc.Allowance // base-currency amounts
	Rates             calc.Rates
}

// Session owns all mutable per-user state: the active job, the display
// currency and exchange rate, the calculator inputs, and the persisted
// last search/sector. Exactly one command mutates it at a time.
type Session struct {
	mu       sync.Mutex
	cat      *catalog.Catalog
	res      resolve.Resolver
	db       *sql.DB // nil disables persistence
	settings Settings

	cur         string
	conv        currency.Converter
	hasJob      bool
	job         catalog.JobRecord
	institution string
	state       calc.State

	lastSearch string
	lastSector string
}

func New(cat *catalog.Catalog, db *sql.DB, settings Settings) *Session {
	if settings.BaseCurrency == "" {
		settings.BaseCurrency = currency.Base
	}
	if settings.SecondaryCurrency == "" {
		settings.SecondaryCurrency = currency.Secondary
	}
	if settings.DefaultRate <= 0 {
		settings.DefaultRate = currency.DefaultRate
	}
	if len(settings.DefaultAllowances) == 0 {
		settings.DefaultAllowances = calc.DefaultAllowances()
	}
	if settings.Rates == (calc.Rates{}) {
		settings.Rates = calc.DefaultRates()
	}
	return &Session{
		cat:      cat,
		res:      resolve.Resolver{Cat: cat},
		db:       db,
		settings: settings,
		cur:      settings.BaseCurrency,
		conv:     currency.Converter{Rate: settings.DefaultRate},
	}
}

// Restore loads the persisted last search and last sector. Called once
// at startup, before the session serves commands.
func (s *Session) Restore(ctx context.Context) error {
	if s.db == nil {
		return nil
	}
	lastSearch, err := store.GetState(ctx, s.db, store.KeyLastSearch)
	if err != nil {
		return err
	}
	lastSector, err := store.GetState(ctx, s.db, store.KeyLastSector)
	if err != nil {
		return err
	}
	s.mu.Lock()
	s.lastSearch = lastSearch
	s.lastSector = lastSector
	s.mu.Unlock()
	return nil
}

// SalaryRow is one institution's offer, displayed in the session
// currency. Base always holds the stored base-currency amount so a
// currency switch reconverts from it instead of chaining.
type SalaryRow struct {
	Institution string  `json:"institution"`
	Base        float64 `json:"base"`
	Display     float64 `json:"display"`
	Text        string  `json:"text"`
}

// JobView is the full payload for the job detail screen.
type JobView struct {
	Job         catalog.JobRecord `json:"job"`
	SalaryRows  []SalaryRow       `json:"salaryRows"`
	Institution string            `json:"institution"`
	Currency    string            `json:"currency"`
	Symbol      string            `json:"symbol"`
	Rate        float64           `json:"rate"`
	Calculator  calc.State        `json:"calculator"`
	Breakdown   calc.Breakdown    `json:"breakdown"`
}

// NotFound is the recovery payload when a query resolves to nothing.
type NotFound struct {
	Query       string   `json:"query"`
	Message     string   `json:"message"`
	Suggestions []string `json:"suggestions"`
	Sectors     []string `json:"sectors"`
}

// SearchResult carries exactly one of Job or NotFound.
type SearchResult struct {
	Job      *JobView  `json:"job,omitempty"`
	NotFound *NotFound `json:"notFound,omitempty"`
}

// SectorView is the payload for a sector browse screen.
type SectorView struct {
	Name  string              `json:"name"`
	Desc  string              `json:"desc"`
	Range *sector.Range       `json:"range,omitempty"`
	Jobs  []catalog.JobRecord `json:"jobs"`
}

// Snapshot is the observable session state.
type Snapshot struct {
	Currency   string   `json:"currency"`
	Symbol     string   `json:"symbol"`
	Rate       float64  `json:"rate"`
	LastSearch string   `json:"lastSearch"`
	LastSector string   `json:"lastSector"`
	Job        *JobView `json:"job,omitempty"`
}

// Search resolves a query. A hit activates the job (full calculator
// reset) and persists the canonical title as the last search; a miss
// returns suggestions plus the sector list as the recovery path. The
// returned error is a persistence failure only; the result is valid
// either way.
func (s *Session) Search(ctx context.Context, query string) (SearchResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	job, ok := s.res.Find(query)
	if !ok {
		return SearchResult{NotFound: s.notFoundLocked(query)}, nil
	}

	s.activateJobLocked(job)
	s.lastSearch = job.Title()
	err := s.persistLocked(ctx, store.KeyLastSearch, s.lastSearch)
	view := s.jobViewLocked()
	return SearchResult{Job: &view}, err
}

// SelectJob activates a job by id, as the sector browse screen does.
func (s *Session) SelectJob(ctx context.Context, id string) (JobView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	job, ok := s.cat.JobByID(id)
	if !ok {
		return JobView{}, fmt.Errorf("%w: %s", ErrUnknownJob, id)
	}
	s.activateJobLocked(job)
	s.lastSearch = job.Title()
	if err := s.persistLocked(ctx, store.KeyLastSearch, s.lastSearch); err != nil {
		return s.jobViewLocked(), err
	}
	return s.jobViewLocked(), nil
}

// SelectSector returns a sector view and persists the choice.
func (s *Session) SelectSector(ctx context.Context, name string) (SectorView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sec, ok := s.cat.Sector(name)
	if !ok {
		return SectorView{}, fmt.Errorf("%w: %s", ErrUnknownSector, name)
	}

	view := SectorView{
		Name: sec.Name,
		Desc: sec.Desc,
		Jobs: sector.JobsFor(s.cat, name),
	}
	if r, ok := sector.SalaryRange(s.cat, name); ok {
		view.Range = &r
	}

	s.lastSector = name
	return view, s.persistLocked(ctx, store.KeyLastSector, name)
}

// SelectInstitution resets the basic salary to the named institution's
// base amount, converted to the display currency.
func (s *Session) SelectInstitution(name string) (JobView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.hasJob {
		return JobView{}, ErrNoActiveJob
	}
	table, _ := s.cat.SalaryTable(s.job.Grade)
	for _, offer := range table.Offers {
		if offer.Institution == name {
			s.institution = name
			s.state.Basic = s.conv.Convert(offer.Amount, s.settings.BaseCurrency, s.cur)
			return s.jobViewLocked(), nil
		}
	}
	return JobView{}, fmt.Errorf("%w: %s", ErrUnknownOffer, name)
}

// UpdateField sets one calculator input and returns the rederived
// breakdown. Numeric fields parse or degrade to zero; the policy flag
// accepts yes/no style values.
func (s *Session) UpdateField(field, value string) (calc.Breakdown, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.hasJob {
		return calc.Breakdown{}, ErrNoActiveJob
	}

	switch {
	case field == "basic":
		s.state.Basic = calc.ParseNumber(value)
	case field == "years_of_service":
		s.state.YearsOfService = calc.ParseNumber(value)
	case field == "nights_worked":
		s.state.NightsWorked = calc.ParseNumber(value)
	case field == "coffin_cost":
		s.state.CoffinCost = calc.ParseNumber(value)
	case field == "policy_coverage":
		s.state.PolicyCoverage = calc.ParseNumber(value)
	case field == "has_policy":
		v := strings.ToLower(strings.TrimSpace(value))
		s.state.HasFuneralPolicy = v == "yes" || v == "true" || v == "1"
	case strings.HasPrefix(field, "allowance:"):
		key := strings.TrimPrefix(field, "allowance:")
		found := false
		for i := range s.state.Allowances {
			if s.state.Allowances[i].Key == key {
				s.state.Allowances[i].Amount = calc.ParseNumber(value)
				found = true
				break
			}
		}
		if !found {
			return calc.Breakdown{}, fmt.Errorf("%w: %s", ErrUnknownField, field)
		}
	default:
		return calc.Breakdown{}, fmt.Errorf("%w: %s", ErrUnknownField, field)
	}

	return calc.Derive(s.state, s.settings.Rates), nil
}

var allowanceKeyRe = regexp.MustCompile(`[^a-z0-9]+`)

// AddAllowance appends a zero-amount allowance row named by the user.
func (s *Session) AddAllowance(name string) (calc.State, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.hasJob {
		return calc.State{}, ErrNoActiveJob
	}

	key := allowanceKeyRe.ReplaceAllString(strings.ToLower(name), "-")
	key = strings.Trim(key, "-")
	if len(key) > 20 {
		key = key[:20]
	}
	if key == "" {
		key = "custom"
	}
	s.state.Allowances = append(s.state.Allowances, calc.Allowance{Name: name, Key: key})
	return s.state, nil
}

// ResetCalculator puts the basic salary back to the selected
// institution's amount and restores the default allowance rows. Other
// inputs keep their values.
func (s *Session) ResetCalculator() (JobView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.hasJob {
		return JobView{}, ErrNoActiveJob
	}

	table, _ := s.cat.SalaryTable(s.job.Grade)
	for _, offer := range table.Offers {
		if offer.Institution == s.institution {
			s.state.Basic = s.conv.Convert(offer.Amount, s.settings.BaseCurrency, s.cur)
			break
		}
	}
	s.state.Allowances = s.defaultAllowancesLocked()
	return s.jobViewLocked(), nil
}

// SwitchCurrency changes the display currency. Switching to the
// secondary currency reads the supplied exchange rate, falling back to
// the fixed default when it does not parse. Every user-edited monetary
// input is converted in place from the old currency to the new one;
// salary rows are instead reconverted from their stored base amounts
// when the view is rebuilt.
func (s *Session) SwitchCurrency(code, rateInput string) (JobView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	code = strings.ToUpper(strings.TrimSpace(code))
	if code == "" {
		code = s.cur
	}

	if code == s.settings.SecondaryCurrency {
		s.conv.Rate = currency.ParseRateOr(rateInput, s.settings.DefaultRate)
	}

	old := s.cur
	s.cur = code
	if s.hasJob {
		calc.ConvertInputs(&s.state, s.conv, old, code)
	}
	return s.jobViewLocked(), nil
}

// State returns the observable session state.
func (s *Session) State() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap := Snapshot{
		Currency:   s.cur,
		Symbol:     currency.Symbol(s.cur),
		Rate:       s.conv.Rate,
		LastSearch: s.lastSearch,
		LastSector: s.lastSector,
	}
	if s.hasJob {
		view := s.jobViewLocked()
		snap.Job = &view
	}
	return snap
}

// Resolver exposes the session's resolver for read-only queries
// (suggestions, autocomplete) that need no locking.
func (s *Session) Resolver() resolve.Resolver {
	return s.res
}

// activateJobLocked makes a record the current job and fully resets the
// calculator: basic from the grade's first institution, default
// allowances, everything else zeroed.
func (s *Session) activateJobLocked(job catalog.JobRecord) {
	s.hasJob = true
	s.job = job

	s.state = calc.State{Allowances: s.defaultAllowancesLocked()}
	s.institution = ""
	if table, ok := s.cat.SalaryTable(job.Grade); ok {
		if first, ok := table.First(); ok {
			s.institution = first.Institution
			s.state.Basic = s.conv.Convert(first.Amount, s.settings.BaseCurrency, s.cur)
		}
	}
}

func (s *Session) defaultAllowancesLocked() []calc.Allowance {
	out := make([]calc.Allowance, len(s.settings.DefaultAllowances))
	for i, a := range s.settings.DefaultAllowances {
		a.Amount = s.conv.Convert(a.Amount, s.settings.BaseCurrency, s.cur)
		out[i] = a
	}
	return out
}

func (s *Session) jobViewLocked() JobView {
	view := JobView{
		Job:         s.job,
		Institution: s.institution,
		Currency:    s.cur,
		Symbol:      currency.Symbol(s.cur),
		Rate:        s.conv.Rate,
		Calculator:  s.state,
		Breakdown:   calc.Derive(s.state, s.settings.Rates),
	}
	table, _ := s.cat.SalaryTable(s.job.Grade)
	for _, offer := range table.Offers {
		display := s.conv.Convert(offer.Amount, s.settings.BaseCurrency, s.cur)
		view.SalaryRows = append(view.SalaryRows, SalaryRow{
			Institution: offer.Institution,
			Base:        offer.Amount,
			Display:     display,
			Text:        currency.Symbol(s.cur) + " " + currency.FormatMoney(display),
		})
	}
	return view
}

func (s *Session) notFoundLocked(query string) *NotFound {
	msg := "We couldn't find an exact job title match."
	if len(query) > 2 && len(s.res.Autocomplete(query)) == 0 {
		msg += " No jobs matched your keyword."
	}
	msg += " Try a simpler keyword or browse jobs by sector:"

	nf := &NotFound{
		Query:       query,
		Message:     msg,
		Suggestions: s.res.Suggest(query, resolve.DefaultSuggestions),
	}
	for _, sec := range s.cat.Sectors() {
		nf.Sectors = append(nf.Sectors, sec.Name)
	}
	return nf
}

func (s *Session) persistLocked(ctx context.Context, key, value string) error {
	if s.db == nil {
		return nil
	}
	return store.SetState(ctx, s.db, key, value)
}
