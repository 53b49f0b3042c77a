package console

import (
	"context"
	"sort"
	"sync"

	"github.com/clinicops/clinic-console/internal/clinic"
	"github.com/clinicops/clinic-console/pkg/logging"
)

// HistoryController drives the appointment-history tab of the patient
// detail screen.
type HistoryController struct {
	appointments *clinic.AppointmentService
	notifier     *Notifier
	logger       *logging.Logger

	mu        sync.Mutex
	patientID string
	entries   []clinic.Appointment
}

func NewHistoryController(appointments *clinic.AppointmentService, notifier *Notifier, logger *logging.Logger) *HistoryController {
	if logger == nil {
		logger = logging.Default()
	}
	return &HistoryController{
		appointments: appointments,
		notifier:     notifier,
		logger:       logger,
	}
}

// Load fetches one patient's full history, newest first, with clock
// strings trimmed for display.
func (c *HistoryController) Load(ctx context.Context, patientID string) error {
	entries, err := c.appointments.ListByPatient(ctx, patientID)
	if err != nil {
		c.logger.Error("load appointment history failed", "patient_id", patientID, "error", err)
		return err
	}
	for i := range entries {
		entries[i].StartTime = clinic.TrimClock(entries[i].StartTime)
		entries[i].EndTime = clinic.TrimClock(entries[i].EndTime)
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Date == entries[j].Date {
			return entries[i].StartTime > entries[j].StartTime
		}
		return entries[i].Date > entries[j].Date
	})
	c.mu.Lock()
	c.patientID = patientID
	c.entries = entries
	c.mu.Unlock()
	return nil
}

// SetStatus moves one appointment to a new status. Any status can
// follow any other; front desks fix mistakes, so there is no state
// machine here.
func (c *HistoryController) SetStatus(ctx context.Context, appointmentID string, status clinic.AppointmentStatus) error {
	updated, err := c.appointments.UpdateStatus(ctx, appointmentID, status)
	if err != nil {
		c.logger.Error("update appointment status failed", "appointment_id", appointmentID, "error", err)
		c.notifier.Push(LevelError, "could not update status: "+err.Error())
		return err
	}
	updated.StartTime = clinic.TrimClock(updated.StartTime)
	updated.EndTime = clinic.TrimClock(updated.EndTime)
	c.mu.Lock()
	for i := range c.entries {
		if c.entries[i].ID == updated.ID {
			c.entries[i] = *updated
			break
		}
	}
	c.mu.Unlock()
	return nil
}

// Entries returns the loaded history, newest first.
func (c *HistoryController) Entries() []clinic.Appointment {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]clinic.Appointment, len(c.entries))
	copy(out, c.entries)
	return out
}

// StatusOptions lists the selectable statuses in display order.
func (c *HistoryController) StatusOptions() []clinic.AppointmentStatus {
	return clinic.AllStatuses()
}
