package search

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/clinicops/clinic-console/internal/clinic"
)

var filterNow = time.Date(2026, time.August, 26, 12, 0, 0, 0, time.UTC)

func intPtr(n int) *int { return &n }

func samplePatients() []clinic.Patient {
	return []clinic.Patient{
		{ID: "p1", FirstName: "Alice", LastName: "Martinez", Email: "alice@example.com", Phone: "+1 555 0100", City: "Austin", State: "TX", Gender: clinic.GenderFemale, DateOfBirth: "1990-03-14"},
		{ID: "p2", FirstName: "Bob", LastName: "Marsh", Email: "bob@clinic.org", Phone: "+1 555 0101", City: "Boston", State: "MA", Gender: clinic.GenderMale, DateOfBirth: "1975-11-02"},
		{ID: "p3", FirstName: "Malin", LastName: "Olsen", Email: "malin@example.com", Phone: "+47 99 88 77", City: "Austin", State: "TX", Gender: clinic.GenderFemale, DateOfBirth: "2001-08-30"},
	}
}

func TestFiltersZeroMatchesEverything(t *testing.T) {
	patients := samplePatients()
	var f Filters
	assert.True(t, f.IsZero())
	assert.Equal(t, patients, f.Apply(patients, filterNow))
}

func TestFiltersTextCaseInsensitiveSubstring(t *testing.T) {
	patients := samplePatients()
	got := Filters{LastName: "mar"}.Apply(patients, filterNow)
	assert.Len(t, got, 2)
	assert.Equal(t, "p1", got[0].ID)
	assert.Equal(t, "p2", got[1].ID)

	got = Filters{City: "AUSTIN"}.Apply(patients, filterNow)
	assert.Len(t, got, 2)
}

func TestFiltersCompositionNarrows(t *testing.T) {
	patients := samplePatients()

	broad := Filters{City: "austin"}
	narrow := broad
	narrow.Gender = clinic.GenderFemale
	narrower := narrow
	narrower.AgeFrom = intPtr(30)

	broadSet := broad.Apply(patients, filterNow)
	narrowSet := narrow.Apply(patients, filterNow)
	narrowerSet := narrower.Apply(patients, filterNow)

	assert.LessOrEqual(t, len(narrowSet), len(broadSet))
	assert.LessOrEqual(t, len(narrowerSet), len(narrowSet))
	for _, p := range narrowerSet {
		assert.Contains(t, broadSet, p, "adding a predicate must only remove records")
	}
	assert.Len(t, narrowerSet, 1)
	assert.Equal(t, "p1", narrowerSet[0].ID)
}

func TestFiltersAgeRangeInclusive(t *testing.T) {
	// p3 born 2001-08-30 turns 25 four days after filterNow, so is 24.
	patients := samplePatients()

	got := Filters{AgeFrom: intPtr(24), AgeTo: intPtr(36)}.Apply(patients, filterNow)
	assert.Len(t, got, 2)
	assert.Equal(t, "p1", got[0].ID)
	assert.Equal(t, "p3", got[1].ID)

	got = Filters{AgeTo: intPtr(24)}.Apply(patients, filterNow)
	assert.Len(t, got, 1)
	assert.Equal(t, "p3", got[0].ID)

	got = Filters{AgeFrom: intPtr(36), AgeTo: intPtr(36)}.Apply(patients, filterNow)
	assert.Len(t, got, 1)
	assert.Equal(t, "p1", got[0].ID)
}

func TestFiltersAgeBoundRejectsBadBirthDate(t *testing.T) {
	p := clinic.Patient{ID: "bad", FirstName: "X", DateOfBirth: "not-a-date"}
	assert.False(t, Filters{AgeFrom: intPtr(0)}.Match(p, filterNow))
	assert.True(t, Filters{FirstName: "x"}.Match(p, filterNow), "text filters ignore the birth date")
}

func TestFiltersPreserveOrder(t *testing.T) {
	patients := samplePatients()
	got := Filters{State: "tx"}.Apply(patients, filterNow)
	assert.Equal(t, []string{"p1", "p3"}, []string{got[0].ID, got[1].ID})
}
