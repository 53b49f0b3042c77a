package console

import (
	"context"
	"sync"

	"github.com/clinicops/clinic-console/internal/clinic"
	"github.com/clinicops/clinic-console/pkg/logging"
)

// DetailTab names one tab of the patient detail screen.
type DetailTab string

const (
	TabHistory       DetailTab = "history"
	TabPreconditions DetailTab = "preconditions"
	TabFiles         DetailTab = "files"
)

// PatientDetailController drives the detail screen: the patient header
// plus three lazily loaded tabs. Each tab's data loads on first visit
// and stays until the screen is reopened for another patient.
type PatientDetailController struct {
	patients      *clinic.PatientService
	History       *HistoryController
	Preconditions *PreconditionsController
	Files         *FilesController
	logger        *logging.Logger

	mu      sync.Mutex
	patient *clinic.Patient
	tab     DetailTab
	loaded  map[DetailTab]bool
}

func NewPatientDetailController(
	patients *clinic.PatientService,
	history *HistoryController,
	preconditions *PreconditionsController,
	files *FilesController,
	logger *logging.Logger,
) *PatientDetailController {
	if logger == nil {
		logger = logging.Default()
	}
	return &PatientDetailController{
		patients:      patients,
		History:       history,
		Preconditions: preconditions,
		Files:         files,
		logger:        logger,
		tab:           TabHistory,
		loaded:        map[DetailTab]bool{},
	}
}

// Open loads the patient header and the default history tab.
func (c *PatientDetailController) Open(ctx context.Context, patientID string) error {
	patient, err := c.patients.Get(ctx, patientID)
	if err != nil {
		c.logger.Error("load patient failed", "patient_id", patientID, "error", err)
		return err
	}
	c.mu.Lock()
	c.patient = patient
	c.tab = TabHistory
	c.loaded = map[DetailTab]bool{}
	c.mu.Unlock()
	return c.SelectTab(ctx, TabHistory)
}

// SelectTab switches tabs, loading the tab's data on first visit.
func (c *PatientDetailController) SelectTab(ctx context.Context, tab DetailTab) error {
	c.mu.Lock()
	if c.patient == nil {
		c.mu.Unlock()
		return nil
	}
	patientID := c.patient.ID
	alreadyLoaded := c.loaded[tab]
	c.tab = tab
	c.mu.Unlock()

	if alreadyLoaded {
		return nil
	}

	var err error
	switch tab {
	case TabHistory:
		err = c.History.Load(ctx, patientID)
	case TabPreconditions:
		err = c.Preconditions.Load(ctx, patientID)
	case TabFiles:
		err = c.Files.Load(ctx, patientID)
	}
	if err != nil {
		return err
	}
	c.mu.Lock()
	c.loaded[tab] = true
	c.mu.Unlock()
	return nil
}

// Patient returns the loaded header record, nil before Open.
func (c *PatientDetailController) Patient() *clinic.Patient {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.patient == nil {
		return nil
	}
	p := *c.patient
	return &p
}

// Tab returns the active tab.
func (c *PatientDetailController) Tab() DetailTab {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.tab
}
