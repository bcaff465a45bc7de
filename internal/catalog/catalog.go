package catalog

import "sort"

// Catalog is the immutable reference data for a session: job records,
// sector groupings, salary tables and glossary terms, with lookup indexes
// built once at load time.
type Catalog struct {
	jobs     []JobRecord
	sectors  []Sector
	salaries map[string]SalaryTable
	terms    []Term

	byID     map[string]int // job id -> position in jobs
	byTitle  map[string]int // exact title -> first record with it
	sectorBy map[string]int // sector name -> position in sectors
	titles   []string       // every title, catalog order
}

// New builds an indexed catalog from already-decoded documents. Load is
// the usual entry point; New exists for callers that assemble reference
// data themselves.
func New(jobs []JobRecord, sectors []Sector, salaries map[string]SalaryTable, terms []Term) *Catalog {
	return newCatalog(jobs, sectors, salaries, terms)
}

func newCatalog(jobs []JobRecord, sectors []Sector, salaries map[string]SalaryTable, terms []Term) *Catalog {
	c := &Catalog{
		jobs:     jobs,
		sectors:  sectors,
		salaries: salaries,
		terms:    terms,
		byID:     make(map[string]int, len(jobs)),
		byTitle:  make(map[string]int),
		sectorBy: make(map[string]int, len(sectors)),
	}
	for i, j := range jobs {
		if _, ok := c.byID[j.ID]; !ok {
			c.byID[j.ID] = i
		}
		for _, t := range j.Titles {
			c.titles = append(c.titles, t)
			if _, ok := c.byTitle[t]; !ok {
				c.byTitle[t] = i
			}
		}
	}
	for i, s := range sectors {
		if _, ok := c.sectorBy[s.Name]; !ok {
			c.sectorBy[s.Name] = i
		}
	}
	return c
}

// Jobs returns every record in catalog order.
func (c *Catalog) Jobs() []JobRecord {
	return c.jobs
}

func (c *Catalog) JobByID(id string) (JobRecord, bool) {
	i, ok := c.byID[id]
	if !ok {
		return JobRecord{}, false
	}
	return c.jobs[i], true
}

// JobByTitle resolves an exact title string to the first catalog record
// carrying it. Sector membership joins on exact titles; fuzzy and
// case-insensitive matching live in the resolver.
func (c *Catalog) JobByTitle(title string) (JobRecord, bool) {
	i, ok := c.byTitle[title]
	if !ok {
		return JobRecord{}, false
	}
	return c.jobs[i], true
}

// Titles returns every title of every job, in catalog order. Aliases of
// the same record appear individually.
func (c *Catalog) Titles() []string {
	return c.titles
}

func (c *Catalog) Sectors() []Sector {
	return c.sectors
}

func (c *Catalog) Sector(name string) (Sector, bool) {
	i, ok := c.sectorBy[name]
	if !ok {
		return Sector{}, false
	}
	return c.sectors[i], true
}

func (c *Catalog) SalaryTable(grade string) (SalaryTable, bool) {
	t, ok := c.salaries[grade]
	return t, ok
}

func (c *Catalog) Terms() []Term {
	return c.terms
}

// Popular returns the n records with the most title aliases, most first.
// Ties keep catalog order.
func (c *Catalog) Popular(n int) []JobRecord {
	out := make([]JobRecord, len(c.jobs))
	copy(out, c.jobs)
	sort.SliceStable(out, func(a, b int) bool {
		return len(out[a].Titles) > len(out[b].Titles)
	})
	if len(out) > n {
		out = out[:n]
	}
	return out
}

// Recent returns the last n catalog records, newest (last ingested) first.
func (c *Catalog) Recent(n int) []JobRecord {
	start := len(c.jobs) - n
	if start < 0 {
		start = 0
	}
	tail := c.jobs[start:]
	out := make([]JobRecord, 0, len(tail))
	for i := len(tail) - 1; i >= 0; i-- {
		out = append(out, tail[i])
	}
	return out
}
