package catalog

import (
	"fmt"
	"os"

	json "github.com/goccy/go-json"
	"golang.org/x/sync/errgroup"
)

// Paths names the four catalog documents.
type Paths struct {
	Jobs     string
	Sectors  string
	Salaries string
	Terms    string
}

// Load reads all four documents in parallel and builds the indexed
// catalog. Any read or parse failure fails the whole load; there is no
// partial-catalog mode.
func Load(p Paths) (*Catalog, error) {
	var (
		jobs     []JobRecord
		sectors  sectorList
		salaries map[string]SalaryTable
		terms    termList
	)

	var g errgroup.Group
	g.Go(func() error { return readDoc(p.Jobs, &jobs) })
	g.Go(func() error { return readDoc(p.Sectors, &sectors) })
	g.Go(func() error { return readDoc(p.Salaries, &salaries) })
	g.Go(func() error { return readDoc(p.Terms, &terms) })
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return newCatalog(jobs, sectors, salaries, terms), nil
}

func readDoc(path string, v any) error {
	b, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}
	if err := json.Unmarshal(b, v); err != nil {
		return fmt.Errorf("parse %s: %w", path, err)
	}
	return nil
}
