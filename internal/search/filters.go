package search

import (
	"strings"
	"time"

	"github.com/clinicops/clinic-console/internal/clinic"
)

// Filters is a sparse set of optional field predicates. Empty text
// fields and nil age bounds are absent; a record matches only when
// every present predicate matches (AND composition). Text predicates
// are case-insensitive substring tests, gender is an exact match, and
// the age range is inclusive, derived from date_of_birth at evaluation
// time.
type Filters struct {
	FirstName string
	LastName  string
	Email     string
	Phone     string
	City      string
	State     string
	Gender    clinic.Gender
	AgeFrom   *int
	AgeTo     *int
}

// IsZero reports whether no predicate is set.
func (f Filters) IsZero() bool {
	return f.FirstName == "" && f.LastName == "" && f.Email == "" &&
		f.Phone == "" && f.City == "" && f.State == "" &&
		f.Gender == "" && f.AgeFrom == nil && f.AgeTo == nil
}

// Match evaluates every present predicate against the patient. now
// anchors the age computation.
func (f Filters) Match(p clinic.Patient, now time.Time) bool {
	if !containsFold(p.FirstName, f.FirstName) {
		return false
	}
	if !containsFold(p.LastName, f.LastName) {
		return false
	}
	if !containsFold(p.Email, f.Email) {
		return false
	}
	if !containsFold(p.Phone, f.Phone) {
		return false
	}
	if !containsFold(p.City, f.City) {
		return false
	}
	if !containsFold(p.State, f.State) {
		return false
	}
	if f.Gender != "" && p.Gender != f.Gender {
		return false
	}
	if f.AgeFrom != nil || f.AgeTo != nil {
		age, err := p.Age(now)
		if err != nil {
			// An unparseable birth date cannot satisfy an age bound.
			return false
		}
		if f.AgeFrom != nil && age < *f.AgeFrom {
			return false
		}
		if f.AgeTo != nil && age > *f.AgeTo {
			return false
		}
	}
	return true
}

// Apply returns the patients matching the filter, preserving order.
// A zero filter returns the input unchanged.
func (f Filters) Apply(patients []clinic.Patient, now time.Time) []clinic.Patient {
	if f.IsZero() {
		return patients
	}
	out := make([]clinic.Patient, 0, len(patients))
	for _, p := range patients {
		if f.Match(p, now) {
			out = append(out, p)
		}
	}
	return out
}

// containsFold is a case-insensitive substring test; an empty needle
// means the predicate is absent and always matches.
func containsFold(haystack, needle string) bool {
	if needle == "" {
		return true
	}
	return strings.Contains(strings.ToLower(haystack), strings.ToLower(needle))
}
