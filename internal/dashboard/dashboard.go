// Package dashboard assembles the landing screen: today's schedule
// with free gaps filled in, the patient summary numbers, and the
// weather widget.
package dashboard

import (
	"context"
	"sort"
	"time"

	"github.com/clinicops/clinic-console/internal/clinic"
	"github.com/clinicops/clinic-console/pkg/logging"
)

// Working-hour fallbacks when the clinic settings leave them blank.
const (
	defaultOpening = "08:00:00"
	defaultClosing = "18:00:00"
)

// Entry is one row of the day schedule: either a booked appointment or
// a free gap between bookings.
type Entry struct {
	Start       string
	End         string
	Free        bool
	Appointment *clinic.Appointment
}

// Snapshot is everything the landing screen renders. Summary and
// Weather are nil when their fetch failed; the schedule is the part
// worth blocking on.
type Snapshot struct {
	Date     string
	Schedule []Entry
	Summary  *clinic.PatientSummary
	Weather  *clinic.Weather
}

// Service fetches and assembles the dashboard.
type Service struct {
	appointments *clinic.AppointmentService
	patients     *clinic.PatientService
	settings     *clinic.SettingsService
	weather      *clinic.WeatherService
	logger       *logging.Logger
	location     string
	ownerID      string
	now          func() time.Time
}

// Config carries the dashboard's collaborators. Settings, Patients and
// Weather are optional; their widgets simply stay empty. OwnerID keys
// the settings cache.
type Config struct {
	Appointments *clinic.AppointmentService
	Patients     *clinic.PatientService
	Settings     *clinic.SettingsService
	Weather      *clinic.WeatherService
	Location     string
	OwnerID      string
	Logger       *logging.Logger
	Now          func() time.Time
}

func New(cfg Config) *Service {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Default()
	}
	now := cfg.Now
	if now == nil {
		now = time.Now
	}
	return &Service{
		appointments: cfg.Appointments,
		patients:     cfg.Patients,
		settings:     cfg.Settings,
		weather:      cfg.Weather,
		logger:       logger,
		location:     cfg.Location,
		ownerID:      cfg.OwnerID,
		now:          now,
	}
}

// Today loads the dashboard for the current date. The schedule fetch is
// the only fatal failure; summary and weather degrade to empty widgets.
func (s *Service) Today(ctx context.Context) (*Snapshot, error) {
	date := s.now().Format(clinic.DateLayout)

	appts, err := s.appointments.ListByDate(ctx, date)
	if err != nil {
		return nil, err
	}

	opening, closing := defaultOpening, defaultClosing
	if s.settings != nil {
		if st, err := s.settings.Get(ctx, s.ownerID); err != nil {
			s.logger.Warn("dashboard settings unavailable, using default hours", "error", err)
		} else {
			if st.OpeningTime != "" {
				opening = clinic.TrimClock(st.OpeningTime)
			}
			if st.ClosingTime != "" {
				closing = clinic.TrimClock(st.ClosingTime)
			}
		}
	}

	snap := &Snapshot{
		Date:     date,
		Schedule: DaySchedule(appts, opening, closing),
	}

	if s.patients != nil {
		if summary, err := s.patients.Summary(ctx); err != nil {
			s.logger.Warn("dashboard summary unavailable", "error", err)
		} else {
			snap.Summary = summary
		}
	}

	if s.weather != nil {
		if weather, err := s.weather.ByLocation(ctx, s.location); err != nil {
			s.logger.Warn("dashboard weather unavailable", "location", s.location, "error", err)
		} else {
			snap.Weather = weather
		}
	}

	return snap, nil
}

// DaySchedule orders the day's appointments and fills the free time
// between them, bounded by the clinic's working hours. Cancelled
// bookings do not occupy time. Times are HH:MM:SS wall-clock strings,
// which order lexically.
func DaySchedule(appts []clinic.Appointment, opening, closing string) []Entry {
	booked := make([]clinic.Appointment, 0, len(appts))
	for _, a := range appts {
		if a.Status == clinic.StatusCancelled {
			continue
		}
		a.StartTime = clinic.TrimClock(a.StartTime)
		a.EndTime = clinic.TrimClock(a.EndTime)
		booked = append(booked, a)
	}
	sort.Slice(booked, func(i, j int) bool {
		if booked[i].StartTime == booked[j].StartTime {
			return booked[i].EndTime < booked[j].EndTime
		}
		return booked[i].StartTime < booked[j].StartTime
	})

	entries := make([]Entry, 0, 2*len(booked)+1)
	cursor := opening
	for i := range booked {
		a := booked[i]
		if a.StartTime > cursor {
			entries = append(entries, Entry{Start: cursor, End: a.StartTime, Free: true})
		}
		entries = append(entries, Entry{Start: a.StartTime, End: a.EndTime, Appointment: &booked[i]})
		if a.EndTime > cursor {
			cursor = a.EndTime
		}
	}
	if cursor < closing {
		entries = append(entries, Entry{Start: cursor, End: closing, Free: true})
	}
	return entries
}
