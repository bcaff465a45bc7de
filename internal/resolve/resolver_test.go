package resolve

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jobinfo-engine/internal/catalog"
)

func testResolver() Resolver {
	jobs := []catalog.JobRecord{
		{ID: "j1", Titles: []string{"Data Entry Clerk"}, Grade: "A"},
		{ID: "j2", Titles: []string{"Registered Nurse", "Nurse"}, Grade: "C"},
		{ID: "j3", Titles: []string{"Nursery School Teacher"}, Grade: "B"},
		{ID: "j4", Titles: []string{"Clerk"}, Grade: "A"},
	}
	return Resolver{Cat: catalog.New(jobs, nil, nil, nil)}
}

func TestFindExactTitle(t *testing.T) {
	r := testResolver()

	job, ok := r.Find("  Data ENTRY clerk ")
	require.True(t, ok)
	assert.Equal(t, "j1", job.ID)
}

func TestFindSubstringFirstCatalogOrderWins(t *testing.T) {
	r := testResolver()

	// "nurse" appears in titles on both j2 and j3; j2 is earlier.
	job, ok := r.Find("nurse")
	require.True(t, ok)
	assert.Equal(t, "j2", job.ID)

	// Superstring match: the query contains j4's whole title "Clerk" and
	// no earlier record matches in either direction.
	job, ok = r.Find("clerk filing")
	require.True(t, ok)
	assert.Equal(t, "j4", job.ID)
}

func TestFindEmptyQuery(t *testing.T) {
	r := testResolver()

	_, ok := r.Find("")
	assert.False(t, ok)
	_, ok = r.Find("   \t ")
	assert.False(t, ok)
}

func TestFindFuzzyFallback(t *testing.T) {
	jobs := []catalog.JobRecord{
		{ID: "j1", Titles: []string{"Data Entry Clerk"}},
	}
	r := Resolver{Cat: catalog.New(jobs, nil, nil, nil)}

	// Force the fuzzy pass with queries that are not substrings either way.
	// "data entry x" vs "Data Entry Clerk": overlap 2/3 >= 0.5.
	job, ok := r.Find("data entry x")
	require.True(t, ok)
	assert.Equal(t, "j1", job.ID)

	// "entry x y": overlap 1/3 < 0.5.
	_, ok = r.Find("entry x y")
	assert.False(t, ok)
}

func TestFindFuzzyTieKeepsFirst(t *testing.T) {
	jobs := []catalog.JobRecord{
		{ID: "j1", Titles: []string{"Stores Clerk Junior"}},
		{ID: "j2", Titles: []string{"Stores Clerk Senior"}},
	}
	r := Resolver{Cat: catalog.New(jobs, nil, nil, nil)}

	// Both titles score 2/3 against the query; neither pass-1 direction
	// matches. A later equal score must not displace the first best.
	job, ok := r.Find("stores clerk x")
	require.True(t, ok)
	assert.Equal(t, "j1", job.ID)
}

func TestSuggestRanking(t *testing.T) {
	jobs := []catalog.JobRecord{
		{ID: "j1", Titles: []string{"Boiler Maker"}},
		{ID: "j2", Titles: []string{"Boiler Attendant"}},
		{ID: "j3", Titles: []string{"Fitter"}},
	}
	r := Resolver{Cat: catalog.New(jobs, nil, nil, nil)}

	// Query "boiler maker": "Boiler Maker" gets 2 (containment) + 2 word
	// hits = 4; "Boiler Attendant" gets 0 + 1 = 1; "Fitter" gets 0.
	got := r.Suggest("boiler maker", 4)
	assert.Equal(t, []string{"Boiler Maker", "Boiler Attendant", "Fitter"}, got)
}

func TestSuggestStableOrderAndCap(t *testing.T) {
	jobs := []catalog.JobRecord{
		{ID: "j1", Titles: []string{"Welder"}},
		{ID: "j2", Titles: []string{"Plumber"}},
		{ID: "j3", Titles: []string{"Carpenter"}},
	}
	r := Resolver{Cat: catalog.New(jobs, nil, nil, nil)}

	// Nothing matches: all scores equal, first-seen order preserved.
	got := r.Suggest("zzz", 2)
	assert.Equal(t, []string{"Welder", "Plumber"}, got)
}

func TestSuggestDedupesByBestScore(t *testing.T) {
	jobs := []catalog.JobRecord{
		{ID: "j1", Titles: []string{"Nurse", "Matron"}},
		{ID: "j2", Titles: []string{"Nurse"}},
	}
	r := Resolver{Cat: catalog.New(jobs, nil, nil, nil)}

	got := r.Suggest("nurse", 4)
	assert.Equal(t, []string{"Nurse", "Matron"}, got)
}

func TestAutocomplete(t *testing.T) {
	r := testResolver()

	assert.Equal(t, []string{"Registered Nurse", "Nurse", "Nursery School Teacher"}, r.Autocomplete("nurs"))
	assert.Nil(t, r.Autocomplete(""))
}

func TestAutocompleteCap(t *testing.T) {
	var jobs []catalog.JobRecord
	for i := 0; i < 12; i++ {
		jobs = append(jobs, catalog.JobRecord{
			ID:     string(rune('a' + i)),
			Titles: []string{"Clerk Grade " + string(rune('A'+i))},
		})
	}
	r := Resolver{Cat: catalog.New(jobs, nil, nil, nil)}
	assert.Len(t, r.Autocomplete("clerk"), AutocompleteLimit)
}
