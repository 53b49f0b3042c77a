package forms

import (
	"strings"
	"time"

	"github.com/clinicops/clinic-console/internal/clinic"
)

// AppointmentForm carries the raw input of the booking screen.
type AppointmentForm struct {
	PatientID string
	TypeID    string
	Title     string
	Date      string
	StartTime string
	EndTime   string
	Notes     string
}

// ValidateAppointment checks a booking before it is sent. newBooking
// additionally rejects dates in the past; edits of historical records
// keep their original date.
func ValidateAppointment(f AppointmentForm, now time.Time, newBooking bool) Errors {
	errs := Errors{}

	if strings.TrimSpace(f.TypeID) == "" {
		errs[FieldTypeID] = "appointment type is required"
	}

	var date time.Time
	switch d := strings.TrimSpace(f.Date); {
	case d == "":
		errs[FieldDate] = "date is required"
	default:
		var err error
		date, err = time.Parse(clinic.DateLayout, d)
		if err != nil {
			errs[FieldDate] = "date must be YYYY-MM-DD"
		} else if newBooking && date.Before(startOfDay(now)) {
			errs[FieldDate] = "date cannot be in the past"
		}
	}

	start, startErr := parseClock(f.StartTime)
	if startErr != nil {
		errs[FieldStartTime] = "start time must be HH:MM"
	}
	end, endErr := parseClock(f.EndTime)
	switch {
	case endErr != nil:
		errs[FieldEndTime] = "end time must be HH:MM"
	case startErr == nil && !end.After(start):
		errs[FieldEndTime] = "end time must be after start time"
	}

	return errs
}

// Request builds the create/update payload from a form that already
// passed validation.
func (f AppointmentForm) Request() clinic.AppointmentRequest {
	return clinic.AppointmentRequest{
		PatientID: strings.TrimSpace(f.PatientID),
		TypeID:    strings.TrimSpace(f.TypeID),
		Title:     strings.TrimSpace(f.Title),
		Date:      strings.TrimSpace(f.Date),
		StartTime: clinic.TrimClock(f.StartTime),
		EndTime:   clinic.TrimClock(f.EndTime),
		Notes:     strings.TrimSpace(f.Notes),
	}
}

// parseClock accepts HH:MM or HH:MM:SS wall-clock strings.
func parseClock(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if t, err := time.Parse("15:04", s); err == nil {
		return t, nil
	}
	return time.Parse("15:04:05", s)
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
