package catalog

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const jobsDoc = `[
  {"id":"j1","titles":["Primary School Teacher","Teacher"],"description":"Teaches.","industry":"Education","yearsExperience":"2-5","grade":"B","qualifications":["Diploma"],"skills":["Lesson planning"],"employers":["Ministry of Education"],"responsibilities":["Teach classes"]},
  {"id":"j2","titles":["Registered Nurse","Nurse","Staff Nurse"],"description":"Cares.","industry":"Health","yearsExperience":"1-3","grade":"C","qualifications":["Diploma in Nursing"],"skills":["Patient care"],"employers":["Public hospitals"],"responsibilities":["Ward rounds"]},
  {"id":"j3","titles":["Teacher"],"description":"Alias clash.","industry":"Education","yearsExperience":"1","grade":"B","qualifications":[],"skills":[],"employers":[],"responsibilities":[]}
]`

const sectorsDoc = `{
  "Education": {"desc": "Schools and colleges.", "jobs": ["Primary School Teacher"]},
  "Health": {"desc": "Hospitals and clinics.", "jobs": ["Registered Nurse"]}
}`

const salariesDoc = `{
  "B": {"Government": 310, "Private Schools": 420, "Mission Schools": 280},
  "C": {"Public Hospitals": 350}
}`

const termsDoc = `{
  "Grade": "Pay-scale classification.",
  "Institution": "Employer entity in the salary table."
}`

func writeFixtures(t *testing.T) Paths {
	t.Helper()
	dir := t.TempDir()
	files := map[string]string{
		"job-info.json": jobsDoc,
		"sector.json":   sectorsDoc,
		"salaries.json": salariesDoc,
		"terms.json":    termsDoc,
	}
	for name, body := range files {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(body), 0o644))
	}
	return Paths{
		Jobs:     filepath.Join(dir, "job-info.json"),
		Sectors:  filepath.Join(dir, "sector.json"),
		Salaries: filepath.Join(dir, "salaries.json"),
		Terms:    filepath.Join(dir, "terms.json"),
	}
}

func loadFixture(t *testing.T) *Catalog {
	t.Helper()
	cat, err := Load(writeFixtures(t))
	require.NoError(t, err)
	return cat
}

func TestLoadMissingDocumentFails(t *testing.T) {
	p := writeFixtures(t)
	p.Salaries = filepath.Join(t.TempDir(), "nope.json")
	_, err := Load(p)
	assert.Error(t, err)
}

func TestSalaryTableKeepsDocumentOrder(t *testing.T) {
	cat := loadFixture(t)

	table, ok := cat.SalaryTable("B")
	require.True(t, ok)
	require.Len(t, table.Offers, 3)
	assert.Equal(t, "Government", table.Offers[0].Institution)
	assert.Equal(t, 310.0, table.Offers[0].Amount)
	assert.Equal(t, "Private Schools", table.Offers[1].Institution)
	assert.Equal(t, "Mission Schools", table.Offers[2].Institution)

	first, ok := table.First()
	require.True(t, ok)
	assert.Equal(t, "Government", first.Institution)
}

func TestSectorsKeepDocumentOrder(t *testing.T) {
	cat := loadFixture(t)

	sectors := cat.Sectors()
	require.Len(t, sectors, 2)
	assert.Equal(t, "Education", sectors[0].Name)
	assert.Equal(t, "Health", sectors[1].Name)

	s, ok := cat.Sector("Health")
	require.True(t, ok)
	assert.Equal(t, "Hospitals and clinics.", s.Desc)

	_, ok = cat.Sector("Mining")
	assert.False(t, ok)
}

func TestJobByTitleFirstRecordWins(t *testing.T) {
	cat := loadFixture(t)

	// "Teacher" aliases both j1 and j3; the first catalog record wins.
	job, ok := cat.JobByTitle("Teacher")
	require.True(t, ok)
	assert.Equal(t, "j1", job.ID)

	// The join is exact, not case-folded.
	_, ok = cat.JobByTitle("TEACHER")
	assert.False(t, ok)

	_, ok = cat.JobByTitle("astronaut")
	assert.False(t, ok)
}

func TestTitlesCatalogOrder(t *testing.T) {
	cat := loadFixture(t)
	assert.Equal(t, []string{
		"Primary School Teacher", "Teacher",
		"Registered Nurse", "Nurse", "Staff Nurse",
		"Teacher",
	}, cat.Titles())
}

func TestPopularAndRecent(t *testing.T) {
	cat := loadFixture(t)

	pop := cat.Popular(2)
	require.Len(t, pop, 2)
	assert.Equal(t, "j2", pop[0].ID) // 3 aliases
	assert.Equal(t, "j1", pop[1].ID) // 2 aliases, catalog order beats j3

	rec := cat.Recent(2)
	require.Len(t, rec, 2)
	assert.Equal(t, "j3", rec[0].ID)
	assert.Equal(t, "j2", rec[1].ID)
}

func TestTermsKeepDocumentOrder(t *testing.T) {
	cat := loadFixture(t)
	terms := cat.Terms()
	require.Len(t, terms, 2)
	assert.Equal(t, "Grade", terms[0].Term)
	assert.Equal(t, "Institution", terms[1].Term)
}
