package console

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/clinicops/clinic-console/internal/api"
	"github.com/clinicops/clinic-console/internal/clinic"
	"github.com/clinicops/clinic-console/internal/forms"
	"github.com/clinicops/clinic-console/pkg/logging"
)

// BookingController drives the booking screen: pick a type, pick a
// day, pick one of its free slots, then confirm. The backend has the
// final word on slot availability; a conflict comes back as a form
// message rather than a crash.
type BookingController struct {
	types        *clinic.AppointmentTypeService
	appointments *clinic.AppointmentService
	notifier     *Notifier
	logger       *logging.Logger
	now          func() time.Time

	mu       sync.Mutex
	form     forms.AppointmentForm
	errs     forms.Errors
	typeList []clinic.AppointmentType
	slots    []clinic.TimeSlot
	saving   bool
}

// BookingState is the booking screen's render model.
type BookingState struct {
	Form   forms.AppointmentForm
	Errors forms.Errors
	Types  []clinic.AppointmentType
	Slots  []clinic.TimeSlot
	Saving bool
}

func NewBookingController(types *clinic.AppointmentTypeService, appointments *clinic.AppointmentService, notifier *Notifier, logger *logging.Logger) *BookingController {
	if logger == nil {
		logger = logging.Default()
	}
	return &BookingController{
		types:        types,
		appointments: appointments,
		notifier:     notifier,
		logger:       logger,
		now:          time.Now,
		errs:         forms.Errors{},
	}
}

// Open resets the form for one patient and loads the bookable types.
func (c *BookingController) Open(ctx context.Context, patientID string) error {
	list, err := c.types.List(ctx)
	if err != nil {
		c.logger.Error("load appointment types failed", "error", err)
		return err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.form = forms.AppointmentForm{PatientID: patientID}
	c.errs = forms.Errors{}
	c.typeList = list
	c.slots = nil
	return nil
}

// SelectType records the chosen type and, when a date is already
// picked, refreshes its free slots.
func (c *BookingController) SelectType(ctx context.Context, typeID string) error {
	c.mu.Lock()
	c.form.TypeID = typeID
	c.errs.Clear(forms.FieldTypeID)
	date := c.form.Date
	c.mu.Unlock()
	if date == "" {
		return nil
	}
	return c.loadSlots(ctx, typeID, date)
}

// SelectDate records the chosen day and, when a type is already
// picked, refreshes its free slots.
func (c *BookingController) SelectDate(ctx context.Context, date string) error {
	c.mu.Lock()
	c.form.Date = date
	c.errs.Clear(forms.FieldDate)
	typeID := c.form.TypeID
	c.mu.Unlock()
	if typeID == "" {
		return nil
	}
	return c.loadSlots(ctx, typeID, date)
}

func (c *BookingController) loadSlots(ctx context.Context, typeID, date string) error {
	slots, err := c.types.AvailableSlots(ctx, typeID, date)
	if err != nil {
		c.logger.Error("load available slots failed", "type_id", typeID, "date", date, "error", err)
		return err
	}
	c.mu.Lock()
	c.slots = slots
	c.mu.Unlock()
	return nil
}

// SelectSlot copies a free slot's times into the form.
func (c *BookingController) SelectSlot(slot clinic.TimeSlot) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.form.StartTime = slot.StartTime
	c.form.EndTime = slot.EndTime
	c.errs.Clear(forms.FieldStartTime)
	c.errs.Clear(forms.FieldEndTime)
}

// SetTitle records the optional appointment title.
func (c *BookingController) SetTitle(title string) {
	c.mu.Lock()
	c.form.Title = title
	c.mu.Unlock()
}

// SetNotes records the optional notes.
func (c *BookingController) SetNotes(notes string) {
	c.mu.Lock()
	c.form.Notes = notes
	c.mu.Unlock()
}

// Submit validates and books. A backend conflict (the slot was taken
// while the form sat open) lands on the start-time field so the user
// picks another slot.
func (c *BookingController) Submit(ctx context.Context) (*clinic.Appointment, error) {
	c.mu.Lock()
	form := c.form
	c.mu.Unlock()

	errs := forms.ValidateAppointment(form, c.now(), true)
	c.mu.Lock()
	c.errs = errs
	c.mu.Unlock()
	if !errs.Valid() {
		return nil, ErrInvalidForm
	}

	c.setSaving(true)
	defer c.setSaving(false)

	created, err := c.appointments.Create(ctx, form.Request())
	if err != nil {
		var apiErr *api.Error
		if errors.As(err, &apiErr) && apiErr.Status == 409 {
			c.mu.Lock()
			c.errs[forms.FieldStartTime] = apiErr.Message
			c.mu.Unlock()
			// Refresh slots so the stale one disappears.
			if form.TypeID != "" && form.Date != "" {
				_ = c.loadSlots(ctx, form.TypeID, form.Date)
			}
			return nil, ErrInvalidForm
		}
		c.logger.Error("book appointment failed", "patient_id", form.PatientID, "error", err)
		c.notifier.Push(LevelError, "could not book appointment: "+err.Error())
		return nil, err
	}

	c.notifier.Push(LevelSuccess, "appointment booked for "+created.Date)
	return created, nil
}

func (c *BookingController) setSaving(v bool) {
	c.mu.Lock()
	c.saving = v
	c.mu.Unlock()
}

// State returns the current render model.
func (c *BookingController) State() BookingState {
	c.mu.Lock()
	defer c.mu.Unlock()
	errs := forms.Errors{}
	for k, v := range c.errs {
		errs[k] = v
	}
	types := make([]clinic.AppointmentType, len(c.typeList))
	copy(types, c.typeList)
	slots := make([]clinic.TimeSlot, len(c.slots))
	copy(slots, c.slots)
	return BookingState{
		Form:   c.form,
		Errors: errs,
		Types:  types,
		Slots:  slots,
		Saving: c.saving,
	}
}
