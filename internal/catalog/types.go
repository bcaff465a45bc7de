package catalog

import (
	"bytes"
	"fmt"

	json "github.com/goccy/go-json"
)

// JobRecord is one entry of the jobs document. Titles[0] is the canonical
// display name; the remaining titles are search aliases for the same record.
type JobRecord struct {
	ID               string   `json:"id"`
	Titles           []string `json:"titles"`
	Description      string   `json:"description"`
	Industry         string   `json:"industry"`
	YearsExperience  string   `json:"yearsExperience"`
	Grade            string   `json:"grade"`
	Qualifications   []string `json:"qualifications"`
	Skills           []string `json:"skills"`
	Employers        []string `json:"employers"`
	Responsibilities []string `json:"responsibilities"`
}

// Title returns the canonical display name.
func (j JobRecord) Title() string {
	if len(j.Titles) == 0 {
		return ""
	}
	return j.Titles[0]
}

// Offer is one institution's amount for a grade, in the base currency.
type Offer struct {
	Institution string  `json:"institution"`
	Amount      float64 `json:"amount"`
}

// SalaryTable keeps the institutions of a grade in document order. The
// first offer seeds the calculator's basic salary, so order matters and a
// plain map would lose it.
type SalaryTable struct {
	Offers []Offer
}

func (t SalaryTable) First() (Offer, bool) {
	if len(t.Offers) == 0 {
		return Offer{}, false
	}
	return t.Offers[0], true
}

func (t *SalaryTable) UnmarshalJSON(b []byte) error {
	dec := json.NewDecoder(bytes.NewReader(b))
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return fmt.Errorf("salary table: expected object, got %v", tok)
	}
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return err
		}
		inst, _ := keyTok.(string)
		var amount float64
		if err := dec.Decode(&amount); err != nil {
			return fmt.Errorf("salary table %q: %w", inst, err)
		}
		t.Offers = append(t.Offers, Offer{Institution: inst, Amount: amount})
	}
	_, err = dec.Token()
	return err
}

func (t SalaryTable) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.Offers)
}

// Sector is one entry of the sector document. Jobs holds title strings,
// not record ids; membership is resolved by exact title lookup.
type Sector struct {
	Name string   `json:"name"`
	Desc string   `json:"desc"`
	Jobs []string `json:"jobs"`
}

// sectorList decodes the sector document object while preserving the
// order its keys appear in.
type sectorList []Sector

func (sl *sectorList) UnmarshalJSON(b []byte) error {
	dec := json.NewDecoder(bytes.NewReader(b))
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return fmt.Errorf("sector document: expected object, got %v", tok)
	}
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return err
		}
		name, _ := keyTok.(string)
		var body struct {
			Desc string   `json:"desc"`
			Jobs []string `json:"jobs"`
		}
		if err := dec.Decode(&body); err != nil {
			return fmt.Errorf("sector %q: %w", name, err)
		}
		*sl = append(*sl, Sector{Name: name, Desc: body.Desc, Jobs: body.Jobs})
	}
	_, err = dec.Token()
	return err
}

// Term is one glossary entry.
type Term struct {
	Term       string `json:"term"`
	Definition string `json:"definition"`
}

type termList []Term

func (tl *termList) UnmarshalJSON(b []byte) error {
	dec := json.NewDecoder(bytes.NewReader(b))
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return fmt.Errorf("terms document: expected object, got %v", tok)
	}
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return err
		}
		term, _ := keyTok.(string)
		var def string
		if err := dec.Decode(&def); err != nil {
			return fmt.Errorf("term %q: %w", term, err)
		}
		*tl = append(*tl, Term{Term: term, Definition: def})
	}
	_, err = dec.Token()
	return err
}
