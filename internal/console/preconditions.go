package console

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/clinicops/clinic-console/internal/clinic"
	"github.com/clinicops/clinic-console/internal/forms"
	"github.com/clinicops/clinic-console/pkg/logging"
)

// PreconditionsController drives the preconditions tab: the list of a
// patient's standing conditions plus the small add/edit form.
type PreconditionsController struct {
	preconditions *clinic.PreconditionService
	notifier      *Notifier
	logger        *logging.Logger

	mu        sync.Mutex
	patientID string
	entries   []clinic.Precondition
	errs      forms.Errors
}

// Precondition form field names.
const (
	FieldConditionName = "name"
	FieldConditionDate = "date"
)

func NewPreconditionsController(preconditions *clinic.PreconditionService, notifier *Notifier, logger *logging.Logger) *PreconditionsController {
	if logger == nil {
		logger = logging.Default()
	}
	return &PreconditionsController{
		preconditions: preconditions,
		notifier:      notifier,
		logger:        logger,
		errs:          forms.Errors{},
	}
}

// Load fetches one patient's preconditions.
func (c *PreconditionsController) Load(ctx context.Context, patientID string) error {
	entries, err := c.preconditions.ListByPatient(ctx, patientID)
	if err != nil {
		c.logger.Error("load preconditions failed", "patient_id", patientID, "error", err)
		return err
	}
	c.mu.Lock()
	c.patientID = patientID
	c.entries = entries
	c.errs = forms.Errors{}
	c.mu.Unlock()
	return nil
}

func validatePrecondition(req clinic.PreconditionRequest) forms.Errors {
	errs := forms.Errors{}
	if strings.TrimSpace(req.Name) == "" {
		errs[FieldConditionName] = "condition name is required"
	}
	if d := strings.TrimSpace(req.Date); d == "" {
		errs[FieldConditionDate] = "date is required"
	} else if _, err := time.Parse(clinic.DateLayout, d); err != nil {
		errs[FieldConditionDate] = "date must be YYYY-MM-DD"
	}
	return errs
}

// Add validates and records a new condition for the loaded patient.
func (c *PreconditionsController) Add(ctx context.Context, req clinic.PreconditionRequest) error {
	errs := validatePrecondition(req)
	c.mu.Lock()
	c.errs = errs
	patientID := c.patientID
	c.mu.Unlock()
	if !errs.Valid() {
		return ErrInvalidForm
	}
	created, err := c.preconditions.Create(ctx, patientID, req)
	if err != nil {
		c.logger.Error("create precondition failed", "patient_id", patientID, "error", err)
		c.notifier.Push(LevelError, "could not save condition: "+err.Error())
		return err
	}
	c.mu.Lock()
	c.entries = append(c.entries, *created)
	c.mu.Unlock()
	return nil
}

// Update validates and rewrites an existing condition in place.
func (c *PreconditionsController) Update(ctx context.Context, id string, req clinic.PreconditionRequest) error {
	errs := validatePrecondition(req)
	c.mu.Lock()
	c.errs = errs
	patientID := c.patientID
	c.mu.Unlock()
	if !errs.Valid() {
		return ErrInvalidForm
	}
	updated, err := c.preconditions.Update(ctx, patientID, id, req)
	if err != nil {
		c.logger.Error("update precondition failed", "precondition_id", id, "error", err)
		c.notifier.Push(LevelError, "could not save condition: "+err.Error())
		return err
	}
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

// Remove deletes a condition and drops it from the list.
func (c *PreconditionsController) Remove(ctx context.Context, id string) error {
	c.mu.Lock()
	patientID := c.patientID
	c.mu.Unlock()
	if err := c.preconditions.Delete(ctx, patientID, id); err != nil {
		c.logger.Error("delete precondition failed", "precondition_id", id, "error", err)
		c.notifier.Push(LevelError, "could not delete condition: "+err.Error())
		return err
	}
	c.mu.Lock()
	for i := range c.entries {
		if c.entries[i].ID == id {
			c.entries = append(c.entries[:i], c.entries[i+1:]...)
			break
		}
	}
	c.mu.Unlock()
	return nil
}

// Entries returns the loaded conditions.
func (c *PreconditionsController) Entries() []clinic.Precondition {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]clinic.Precondition, len(c.entries))
	copy(out, c.entries)
	return out
}

// Errors returns the last validation result.
func (c *PreconditionsController) Errors() forms.Errors {
	c.mu.Lock()
	defer c.mu.Unlock()
	errs := forms.Errors{}
	for k, v := range c.errs {
		errs[k] = v
	}
	return errs
}
