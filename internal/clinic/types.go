package clinic

import (
	"fmt"
	"strings"
	"time"
)

// DateLayout is the wire format for all date values.
const DateLayout = "2006-01-02"

// Gender is a closed enum; unknown values are rejected at the form
// boundary, not silently passed through.
type Gender string

const (
	GenderMale   Gender = "male"
	GenderFemale Gender = "female"
	GenderOther  Gender = "other"
)

// ParseGender maps a raw string onto the enum.
func ParseGender(raw string) (Gender, error) {
	switch Gender(strings.ToLower(strings.TrimSpace(raw))) {
	case GenderMale:
		return GenderMale, nil
	case GenderFemale:
		return GenderFemale, nil
	case GenderOther:
		return GenderOther, nil
	default:
		return "", fmt.Errorf("clinic: unknown gender %q", raw)
	}
}

// AppointmentStatus is a plain value, not a guarded state machine: any
// screen may PUT a new status without transition checks.
type AppointmentStatus string

const (
	StatusBooked     AppointmentStatus = "Booked"
	StatusInProgress AppointmentStatus = "In Progress"
	StatusCompleted  AppointmentStatus = "Completed"
	StatusCancelled  AppointmentStatus = "Cancelled"
	StatusNoShow     AppointmentStatus = "No Show"
)

// ParseAppointmentStatus maps a raw string onto the enum.
func ParseAppointmentStatus(raw string) (AppointmentStatus, error) {
	for _, s := range AllStatuses() {
		if strings.EqualFold(strings.TrimSpace(raw), string(s)) {
			return s, nil
		}
	}
	return "", fmt.Errorf("clinic: unknown appointment status %q", raw)
}

// AllStatuses returns the statuses in their natural display order. The
// order is presentation metadata only; updates remain any-to-any.
func AllStatuses() []AppointmentStatus {
	return []AppointmentStatus{StatusBooked, StatusInProgress, StatusCompleted, StatusCancelled, StatusNoShow}
}

// Patient mirrors the backend patient record.
type Patient struct {
	ID          string `json:"id"`
	FirstName   string `json:"first_name"`
	LastName    string `json:"last_name"`
	DateOfBirth string `json:"date_of_birth"`
	Gender      Gender `json:"gender"`
	Email       string `json:"email,omitempty"`
	Phone       string `json:"phone"`
	Street      string `json:"street,omitempty"`
	City        string `json:"city,omitempty"`
	State       string `json:"state,omitempty"`
	Zip         string `json:"zip,omitempty"`
}

// FullName renders "First Last" for display.
func (p Patient) FullName() string {
	return strings.TrimSpace(p.FirstName + " " + p.LastName)
}

// Age derives the patient's age in whole years at the given instant.
func (p Patient) Age(now time.Time) (int, error) {
	dob, err := time.Parse(DateLayout, p.DateOfBirth)
	if err != nil {
		return 0, fmt.Errorf("clinic: parse date_of_birth %q: %w", p.DateOfBirth, err)
	}
	years := now.Year() - dob.Year()
	anniversary := dob.AddDate(years, 0, 0)
	if anniversary.After(now) {
		years--
	}
	if years < 0 {
		years = 0
	}
	return years, nil
}

// PatientSummary is the condensed record returned by the summary
// endpoint for dashboards and exports.
type PatientSummary struct {
	TotalPatients     int `json:"total_patients"`
	NewThisMonth      int `json:"new_this_month"`
	UpcomingBookings  int `json:"upcoming_bookings"`
	PatientsSeenToday int `json:"patients_seen_today"`
}

// Appointment mirrors the backend appointment record. Times are
// wall-clock strings in HH:MM:SS form; the backend may append
// fractional seconds, which TrimClock removes for display.
type Appointment struct {
	ID        string            `json:"id"`
	PatientID string            `json:"patient_id"`
	Title     string            `json:"title,omitempty"`
	Date      string            `json:"date"`
	StartTime string            `json:"start_time"`
	EndTime   string            `json:"end_time"`
	TypeID    string            `json:"type_id"`
	Status    AppointmentStatus `json:"status"`
	Notes     string            `json:"notes,omitempty"`
}

// AppointmentType is a bookable service category.
type AppointmentType struct {
	ID              string `json:"id"`
	Name            string `json:"name"`
	DurationMinutes int    `json:"duration_minutes"`
}

// TimeSlot is an available booking window returned by the backend. The
// client never computes availability itself.
type TimeSlot struct {
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
}

// Precondition is a patient's standing medical condition.
type Precondition struct {
	ID        string `json:"id"`
	PatientID string `json:"patient_id"`
	Name      string `json:"name"`
	Date      string `json:"date"`
	Note      string `json:"note,omitempty"`
}

// PatientFile is an attachment's metadata; content lives behind the
// thumbnail/preview/download endpoints.
type PatientFile struct {
	ID          string `json:"id"`
	PatientID   string `json:"patient_id"`
	FileName    string `json:"file_name"`
	FileType    string `json:"file_type"`
	SizeBytes   int64  `json:"size_bytes"`
	Description string `json:"description,omitempty"`
	ObjectName  string `json:"object_name"`
}

// Settings is the clinic-wide profile and display preferences.
type Settings struct {
	OwnerID      string `json:"owner_id"`
	ClinicName   string `json:"clinic_name"`
	Address      string `json:"address,omitempty"`
	Phone        string `json:"phone,omitempty"`
	OpeningTime  string `json:"opening_time,omitempty"`
	ClosingTime  string `json:"closing_time,omitempty"`
	DateFormat   string `json:"date_format,omitempty"`
	TimeFormat   string `json:"time_format,omitempty"`
	ThemeVariant string `json:"theme_variant,omitempty"`
}

// Weather is the dashboard weather widget payload.
type Weather struct {
	Location    string  `json:"location"`
	TempCelsius float64 `json:"temp_celsius"`
	Condition   string  `json:"condition"`
	Icon        string  `json:"icon,omitempty"`
}

// TrimClock normalizes "HH:MM:SS[.ffffff]" to "HH:MM:SS" and tolerates
// bare "HH:MM" input from forms.
func TrimClock(value string) string {
	value = strings.TrimSpace(value)
	if i := strings.IndexByte(value, '.'); i >= 0 {
		value = value[:i]
	}
	if len(value) == 5 && strings.Count(value, ":") == 1 {
		value += ":00"
	}
	return value
}
