// engine/internal/resolve/resolver.go
package resolve

import (
	"sort"
	"strings"

	"jobinfo-engine/internal/catalog"
	"jobinfo-engine/internal/textutil"
)

const (
	// FuzzyThreshold is the minimum word-overlap score the fallback pass
	// accepts before giving up on a query.
	FuzzyThreshold = 0.5

	DefaultSuggestions = 4
	AutocompleteLimit  = 8
)

// Resolver matches free-text queries against the catalog's job titles.
type Resolver struct {
	Cat *catalog.Catalog
}

// Find resolves a query to a job record. First pass walks the catalog in
// order and matches any title that equals, contains, or is contained in
// the normalized query; the first record wins. If nothing matches, a
// fuzzy pass scores every title by word overlap (shared words / title
// words) and returns the best record when it clears FuzzyThreshold.
// Earlier titles keep ties.
func (r Resolver) Find(query string) (catalog.JobRecord, bool) {
	q := textutil.Normalize(query)
	if q == "" {
		return catalog.JobRecord{}, false
	}

	for _, job := range r.Cat.Jobs() {
		for _, title := range job.Titles {
			t := textutil.Normalize(title)
			if t == q || strings.Contains(t, q) || strings.Contains(q, t) {
				return job, true
			}
		}
	}

	queryWords := textutil.WordSet(q)
	var best catalog.JobRecord
	bestScore := 0.0
	found := false
	for _, job := range r.Cat.Jobs() {
		for _, title := range job.Titles {
			s := overlapScore(title, queryWords)
			if s > bestScore {
				bestScore = s
				best = job
				found = true
			}
		}
	}
	if !found || bestScore < FuzzyThreshold {
		return catalog.JobRecord{}, false
	}
	return best, true
}

// overlapScore is the share of a title's distinct words that also appear
// in the query's word set. The denominator never drops below 1.
func overlapScore(title string, queryWords map[string]struct{}) float64 {
	titleWords := textutil.WordSet(title)
	hits := 0
	for w := range titleWords {
		if _, ok := queryWords[w]; ok {
			hits++
		}
	}
	denom := len(titleWords)
	if denom < 1 {
		denom = 1
	}
	return float64(hits) / float64(denom)
}

// Suggest ranks every title against the query and returns the top max
// title strings. A title scores 2 when it and the query contain each
// other in either direction, plus 1 per title word appearing as a
// substring of the whole query. Duplicate title strings keep their best
// score; equal scores keep first-seen order.
func (r Resolver) Suggest(query string, max int) []string {
	if max <= 0 {
		max = DefaultSuggestions
	}
	q := textutil.Normalize(query)

	type candidate struct {
		title string
		score int
	}
	var cands []candidate
	seen := map[string]int{} // title -> index in cands

	for _, job := range r.Cat.Jobs() {
		for _, title := range job.Titles {
			n := textutil.Normalize(title)
			score := 0
			if strings.Contains(n, q) || strings.Contains(q, n) {
				score = 2
			}
			for _, w := range textutil.Words(n) {
				if strings.Contains(q, w) {
					score++
				}
			}
			if i, ok := seen[title]; ok {
				if score > cands[i].score {
					cands[i].score = score
				}
				continue
			}
			seen[title] = len(cands)
			cands = append(cands, candidate{title: title, score: score})
		}
	}

	sort.SliceStable(cands, func(a, b int) bool {
		return cands[a].score > cands[b].score
	})

	out := make([]string, 0, max)
	for _, c := range cands {
		if len(out) == max {
			break
		}
		out = append(out, c.title)
	}
	return out
}

// Autocomplete lists titles whose normalized form contains the normalized
// query, in catalog order, capped at AutocompleteLimit.
func (r Resolver) Autocomplete(query string) []string {
	if query == "" {
		return nil
	}
	q := textutil.Normalize(query)
	var out []string
	for _, title := range r.Cat.Titles() {
		if strings.Contains(textutil.Normalize(title), q) {
			out = append(out, title)
			if len(out) == AutocompleteLimit {
				break
			}
		}
	}
	return out
}
