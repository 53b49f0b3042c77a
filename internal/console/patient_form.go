package console

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/clinicops/clinic-console/internal/clinic"
	"github.com/clinicops/clinic-console/internal/forms"
	"github.com/clinicops/clinic-console/pkg/logging"
)

// ErrInvalidForm reports that a submit stopped on validation; the
// per-field messages are in the controller state.
var ErrInvalidForm = errors.New("console: form has validation errors")

// PatientFormController drives the create/edit patient screen.
type PatientFormController struct {
	patients *clinic.PatientService
	notifier *Notifier
	logger   *logging.Logger
	now      func() time.Time

	mu        sync.Mutex
	form      forms.PatientForm
	errs      forms.Errors
	editingID string
	saving    bool
}

// PatientFormState is the form screen's render model.
type PatientFormState struct {
	Form    forms.PatientForm
	Errors  forms.Errors
	Editing bool
	Saving  bool
}

func NewPatientFormController(patients *clinic.PatientService, notifier *Notifier, logger *logging.Logger) *PatientFormController {
	if logger == nil {
		logger = logging.Default()
	}
	return &PatientFormController{
		patients: patients,
		notifier: notifier,
		logger:   logger,
		now:      time.Now,
		errs:     forms.Errors{},
	}
}

// BeginCreate resets the form for a new patient.
func (c *PatientFormController) BeginCreate() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.form = forms.PatientForm{}
	c.errs = forms.Errors{}
	c.editingID = ""
}

// BeginEdit pre-fills the form from an existing record.
func (c *PatientFormController) BeginEdit(p clinic.Patient) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.form = forms.FormFromPatient(p)
	c.errs = forms.Errors{}
	c.editingID = p.ID
}

// SetField writes one input and clears its stale validation message,
// so the complaint disappears as soon as the user starts fixing it.
func (c *PatientFormController) SetField(field, value string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	switch field {
	case forms.FieldFirstName:
		c.form.FirstName = value
	case forms.FieldLastName:
		c.form.LastName = value
	case forms.FieldDateOfBirth:
		c.form.DateOfBirth = value
	case forms.FieldGender:
		c.form.Gender = value
	case forms.FieldEmail:
		c.form.Email = value
	case forms.FieldPhone:
		c.form.Phone = value
	case forms.FieldStreet:
		c.form.Street = value
	case forms.FieldCity:
		c.form.City = value
	case forms.FieldState:
		c.form.State = value
	case forms.FieldZip:
		c.form.Zip = value
	default:
		return
	}
	c.errs.Clear(field)
}

// Submit validates and saves. Validation failure returns
// ErrInvalidForm with the messages left in State; backend failures are
// returned and notified.
func (c *PatientFormController) Submit(ctx context.Context) (*clinic.Patient, error) {
	c.mu.Lock()
	form := c.form
	editingID := c.editingID
	c.mu.Unlock()

	errs := forms.ValidatePatient(form, c.now())
	c.mu.Lock()
	c.errs = errs
	c.mu.Unlock()
	if !errs.Valid() {
		return nil, ErrInvalidForm
	}

	c.setSaving(true)
	defer c.setSaving(false)

	req := clinic.PatientRequestFrom(form.Patient())
	var (
		saved *clinic.Patient
		err   error
	)
	if editingID == "" {
		saved, err = c.patients.Create(ctx, req)
	} else {
		saved, err = c.patients.Update(ctx, editingID, req)
	}
	if err != nil {
		c.logger.Error("save patient failed", "patient_id", editingID, "error", err)
		c.notifier.Push(LevelError, "could not save patient: "+err.Error())
		return nil, err
	}

	if editingID == "" {
		c.notifier.Push(LevelSuccess, "patient "+saved.FullName()+" created")
	} else {
		c.notifier.Push(LevelSuccess, "patient "+saved.FullName()+" updated")
	}
	return saved, nil
}

func (c *PatientFormController) setSaving(v bool) {
	c.mu.Lock()
	c.saving = v
	c.mu.Unlock()
}

// State returns the current render model. Errors is a copy; mutating
// it does not touch the controller.
func (c *PatientFormController) State() PatientFormState {
	c.mu.Lock()
	defer c.mu.Unlock()
	errs := forms.Errors{}
	for k, v := range c.errs {
		errs[k] = v
	}
	return PatientFormState{
		Form:    c.form,
		Errors:  errs,
		Editing: c.editingID != "",
		Saving:  c.saving,
	}
}
