// engine/internal/sector/aggregate.go
package sector

import "jobinfo-engine/internal/catalog"

// Range is the min/max salary observed across every institution amount
// of every job in a sector, in the base currency.
type Range struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// SalaryRange aggregates a sector's salary range. Titles that resolve to
// no record are skipped silently; an unknown sector, an empty sector, or
// a sector whose titles all fail to resolve yields no range.
func SalaryRange(cat *catalog.Catalog, name string) (Range, bool) {
	s, ok := cat.Sector(name)
	if !ok {
		return Range{}, false
	}

	var r Range
	found := false
	for _, title := range s.Jobs {
		job, ok := cat.JobByTitle(title)
		if !ok {
			continue
		}
		table, ok := cat.SalaryTable(job.Grade)
		if !ok {
			continue
		}
		for _, offer := range table.Offers {
			if !found || offer.Amount < r.Min {
				r.Min = offer.Amount
			}
			if !found || offer.Amount > r.Max {
				r.Max = offer.Amount
			}
			found = true
		}
	}
	if !found {
		return Range{}, false
	}
	return r, true
}

// JobsFor returns every record with at least one title in the sector's
// title set, in catalog order. A record matching through several titles
// appears once.
func JobsFor(cat *catalog.Catalog, name string) []catalog.JobRecord {
	s, ok := cat.Sector(name)
	if !ok {
		return nil
	}

	titles := make(map[string]struct{}, len(s.Jobs))
	for _, t := range s.Jobs {
		titles[t] = struct{}{}
	}

	var out []catalog.JobRecord
	for _, job := range cat.Jobs() {
		for _, t := range job.Titles {
			if _, ok := titles[t]; ok {
				out = append(out, job)
				break
			}
		}
	}
	return out
}
