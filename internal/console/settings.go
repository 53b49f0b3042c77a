package console

import (
	"context"
	"strings"
	"sync"

	"github.com/clinicops/clinic-console/internal/clinic"
	"github.com/clinicops/clinic-console/internal/forms"
	"github.com/clinicops/clinic-console/pkg/logging"
)

// SettingsController drives the clinic settings screen. The selectable
// date formats and theme variants come from the backend so new options
// never require a client release.
type SettingsController struct {
	settings *clinic.SettingsService
	notifier *Notifier
	logger   *logging.Logger
	ownerID  string

	mu          sync.Mutex
	current     *clinic.Settings
	dateFormats []string
	themes      []string
	errs        forms.Errors
}

// Settings form field names.
const (
	FieldClinicName  = "clinic_name"
	FieldOpeningTime = "opening_time"
	FieldClosingTime = "closing_time"
)

func NewSettingsController(settings *clinic.SettingsService, ownerID string, notifier *Notifier, logger *logging.Logger) *SettingsController {
	if logger == nil {
		logger = logging.Default()
	}
	return &SettingsController{
		settings: settings,
		notifier: notifier,
		logger:   logger,
		ownerID:  ownerID,
		errs:     forms.Errors{},
	}
}

// Open loads the current settings and the selectable option lists.
// Option-list failures degrade to empty dropdowns.
func (c *SettingsController) Open(ctx context.Context) error {
	current, err := c.settings.Get(ctx, c.ownerID)
	if err != nil {
		c.logger.Error("load settings failed", "owner_id", c.ownerID, "error", err)
		return err
	}

	dateFormats, err := c.settings.FieldValues(ctx, "date_format")
	if err != nil {
		c.logger.Warn("date format options unavailable", "error", err)
	}
	themes, err := c.settings.FieldValues(ctx, "theme_variant")
	if err != nil {
		c.logger.Warn("theme options unavailable", "error", err)
	}

	c.mu.Lock()
	c.current = current
	c.dateFormats = dateFormats
	c.themes = themes
	c.errs = forms.Errors{}
	c.mu.Unlock()
	return nil
}

// Save validates and writes the settings, refreshing the cached copy.
func (c *SettingsController) Save(ctx context.Context, req clinic.SettingsRequest) error {
	errs := forms.Errors{}
	if strings.TrimSpace(req.ClinicName) == "" {
		errs[FieldClinicName] = "clinic name is required"
	}
	if req.OpeningTime != "" && req.ClosingTime != "" &&
		clinic.TrimClock(req.ClosingTime) <= clinic.TrimClock(req.OpeningTime) {
		errs[FieldClosingTime] = "closing time must be after opening time"
	}
	c.mu.Lock()
	c.errs = errs
	c.mu.Unlock()
	if !errs.Valid() {
		return ErrInvalidForm
	}

	updated, err := c.settings.Update(ctx, c.ownerID, req)
	if err != nil {
		c.logger.Error("save settings failed", "owner_id", c.ownerID, "error", err)
		c.notifier.Push(LevelError, "could not save settings: "+err.Error())
		return err
	}
	c.mu.Lock()
	c.current = updated
	c.mu.Unlock()
	c.notifier.Push(LevelSuccess, "settings saved")
	return nil
}

// Current returns the loaded settings, nil before Open.
func (c *SettingsController) Current() *clinic.Settings {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.current == nil {
		return nil
	}
	s := *c.current
	return &s
}

// DateFormats returns the selectable date formats.
func (c *SettingsController) DateFormats() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]string(nil), c.dateFormats...)
}

// Themes returns the selectable theme variants.
func (c *SettingsController) Themes() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]string(nil), c.themes...)
}

// Errors returns the last validation result.
func (c *SettingsController) Errors() forms.Errors {
	c.mu.Lock()
	defer c.mu.Unlock()
	errs := forms.Errors{}
	for k, v := range c.errs {
		errs[k] = v
	}
	return errs
}
