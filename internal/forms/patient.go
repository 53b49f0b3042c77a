package forms

import (
	"strings"
	"time"

	"github.com/clinicops/clinic-console/internal/clinic"
)

// PatientForm carries the raw input of the create/edit patient screen.
type PatientForm struct {
	FirstName   string
	LastName    string
	DateOfBirth string
	Gender      string
	Email       string
	Phone       string
	Street      string
	City        string
	State       string
	Zip         string
}

// ValidatePatient checks the form and returns one message per failing
// field. Email is optional; everything else except the address block
// is required. now anchors the birth-date bound.
func ValidatePatient(f PatientForm, now time.Time) Errors {
	errs := Errors{}

	if strings.TrimSpace(f.FirstName) == "" {
		errs[FieldFirstName] = "first name is required"
	}
	if strings.TrimSpace(f.LastName) == "" {
		errs[FieldLastName] = "last name is required"
	}

	switch dob := strings.TrimSpace(f.DateOfBirth); {
	case dob == "":
		errs[FieldDateOfBirth] = "date of birth is required"
	default:
		d, err := time.Parse(clinic.DateLayout, dob)
		if err != nil {
			errs[FieldDateOfBirth] = "date of birth must be YYYY-MM-DD"
		} else if d.After(now) {
			errs[FieldDateOfBirth] = "date of birth cannot be in the future"
		}
	}

	if strings.TrimSpace(f.Gender) == "" {
		errs[FieldGender] = "gender is required"
	} else if _, err := clinic.ParseGender(f.Gender); err != nil {
		errs[FieldGender] = "gender must be male, female or other"
	}

	if email := strings.TrimSpace(f.Email); email != "" && !strings.Contains(email, "@") {
		errs[FieldEmail] = "invalid email format"
	}

	switch phone := strings.TrimSpace(f.Phone); {
	case phone == "":
		errs[FieldPhone] = "phone is required"
	case !validPhone(phone):
		errs[FieldPhone] = "phone must contain 8 to 15 digits"
	}

	return errs
}

// Patient builds the domain record from a form that already passed
// validation.
func (f PatientForm) Patient() clinic.Patient {
	gender, _ := clinic.ParseGender(f.Gender)
	return clinic.Patient{
		FirstName:   strings.TrimSpace(f.FirstName),
		LastName:    strings.TrimSpace(f.LastName),
		DateOfBirth: strings.TrimSpace(f.DateOfBirth),
		Gender:      gender,
		Email:       strings.TrimSpace(f.Email),
		Phone:       strings.TrimSpace(f.Phone),
		Street:      strings.TrimSpace(f.Street),
		City:        strings.TrimSpace(f.City),
		State:       strings.TrimSpace(f.State),
		Zip:         strings.TrimSpace(f.Zip),
	}
}

// FormFromPatient pre-fills the edit screen from an existing record.
func FormFromPatient(p clinic.Patient) PatientForm {
	return PatientForm{
		FirstName:   p.FirstName,
		LastName:    p.LastName,
		DateOfBirth: p.DateOfBirth,
		Gender:      string(p.Gender),
		Email:       p.Email,
		Phone:       p.Phone,
		Street:      p.Street,
		City:        p.City,
		State:       p.State,
		Zip:         p.Zip,
	}
}

// validPhone accepts 8 to 15 digits once spaces, dashes, dots,
// parentheses and a leading plus are stripped. Any other character
// fails.
func validPhone(phone string) bool {
	digits := 0
	for i, r := range phone {
		switch {
		case r >= '0' && r <= '9':
			digits++
		case r == '+' && i == 0:
		case r == ' ' || r == '-' || r == '.' || r == '(' || r == ')':
		default:
			return false
		}
	}
	return digits >= 8 && digits <= 15
}
