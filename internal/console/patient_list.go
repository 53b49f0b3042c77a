package console

import (
	"context"
	"sync"

	"github.com/clinicops/clinic-console/internal/clinic"
	"github.com/clinicops/clinic-console/internal/search"
	"github.com/clinicops/clinic-console/pkg/logging"
)

// PatientListController drives the patient overview screen: the
// search box, filters, pagination and the delete confirmation flow.
type PatientListController struct {
	pipeline *search.Pipeline
	patients *clinic.PatientService
	notifier *Notifier
	logger   *logging.Logger

	mu            sync.Mutex
	pendingDelete string
}

// PatientListState is the list screen's render model.
type PatientListState struct {
	search.Snapshot
	PendingDelete string
}

func NewPatientListController(patients *clinic.PatientService, pipeline *search.Pipeline, notifier *Notifier, logger *logging.Logger) *PatientListController {
	if logger == nil {
		logger = logging.Default()
	}
	return &PatientListController{
		pipeline: pipeline,
		patients: patients,
		notifier: notifier,
		logger:   logger,
	}
}

// Open performs the initial load.
func (c *PatientListController) Open(ctx context.Context) {
	c.pipeline.Refresh(ctx)
}

// Search feeds a keystroke into the debounced pipeline.
func (c *PatientListController) Search(ctx context.Context, term string) {
	c.pipeline.SetQuery(ctx, term)
}

func (c *PatientListController) GoToPage(ctx context.Context, page int) {
	c.pipeline.SetPage(ctx, page)
}

func (c *PatientListController) ChangePageSize(ctx context.Context, size int) {
	c.pipeline.SetPageSize(ctx, size)
}

func (c *PatientListController) ApplyFilters(ctx context.Context, f search.Filters) {
	c.pipeline.SetFilters(ctx, f)
}

// RequestDelete arms the confirmation dialog for one patient. Nothing
// is removed until ConfirmDelete.
func (c *PatientListController) RequestDelete(patientID string) {
	c.mu.Lock()
	c.pendingDelete = patientID
	c.mu.Unlock()
}

// CancelDelete disarms the confirmation dialog.
func (c *PatientListController) CancelDelete() {
	c.mu.Lock()
	c.pendingDelete = ""
	c.mu.Unlock()
}

// ConfirmDelete removes the armed patient and reloads the current
// page. Without an armed patient it is a no-op.
func (c *PatientListController) ConfirmDelete(ctx context.Context) {
	c.mu.Lock()
	id := c.pendingDelete
	c.pendingDelete = ""
	c.mu.Unlock()
	if id == "" {
		return
	}
	if err := c.patients.Delete(ctx, id); err != nil {
		c.logger.Error("delete patient failed", "patient_id", id, "error", err)
		c.notifier.Push(LevelError, "could not delete patient: "+err.Error())
		return
	}
	c.notifier.Push(LevelSuccess, "patient deleted")
	c.pipeline.Refresh(ctx)
}

// RecordSaved refreshes the list after the form screen created or
// updated a patient, so the new record shows without a manual reload.
func (c *PatientListController) RecordSaved(ctx context.Context) {
	c.pipeline.Refresh(ctx)
}

// State returns the current render model.
func (c *PatientListController) State() PatientListState {
	c.mu.Lock()
	pending := c.pendingDelete
	c.mu.Unlock()
	return PatientListState{
		Snapshot:      c.pipeline.Snapshot(),
		PendingDelete: pending,
	}
}

// Close stops the pipeline's pending work.
func (c *PatientListController) Close() {
	c.pipeline.Stop()
}
