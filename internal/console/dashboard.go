package console

import (
	"context"
	"sync"

	"github.com/clinicops/clinic-console/internal/clinic"
	"github.com/clinicops/clinic-console/internal/dashboard"
	"github.com/clinicops/clinic-console/pkg/logging"
)

// DashboardController drives the landing screen. It checks backend
// health before loading so a dead backend shows one clear banner
// instead of a pile of widget errors.
type DashboardController struct {
	service *dashboard.Service
	weather *clinic.WeatherService
	logger  *logging.Logger

	mu      sync.Mutex
	snap    *dashboard.Snapshot
	healthy bool
	errMsg  string
}

// DashboardState is the landing screen's render model.
type DashboardState struct {
	Snapshot *dashboard.Snapshot
	Healthy  bool
	Err      string
}

func NewDashboardController(service *dashboard.Service, weather *clinic.WeatherService, logger *logging.Logger) *DashboardController {
	if logger == nil {
		logger = logging.Default()
	}
	return &DashboardController{
		service: service,
		weather: weather,
		logger:  logger,
	}
}

// Refresh probes backend health and reloads the dashboard. The health
// probe bounds its own timeout, so a hung backend cannot freeze the
// landing screen.
func (c *DashboardController) Refresh(ctx context.Context) {
	if err := c.weather.Health(ctx); err != nil {
		c.logger.Warn("backend health check failed", "error", err)
		c.mu.Lock()
		c.healthy = false
		c.errMsg = "backend unreachable"
		c.mu.Unlock()
		return
	}

	snap, err := c.service.Today(ctx)
	c.mu.Lock()
	defer c.mu.Unlock()
	c.healthy = true
	if err != nil {
		c.errMsg = err.Error()
		return
	}
	c.errMsg = ""
	c.snap = snap
}

// State returns the current render model.
func (c *DashboardController) State() DashboardState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return DashboardState{
		Snapshot: c.snap,
		Healthy:  c.healthy,
		Err:      c.errMsg,
	}
}
