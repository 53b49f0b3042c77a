package clinic

import (
	"context"
	"net/url"
	"time"

	"github.com/clinicops/clinic-console/internal/api"
	"github.com/clinicops/clinic-console/pkg/logging"
)

const defaultHealthTimeout = 5 * time.Second

// WeatherService wraps the weather widget endpoint and the backend
// health probe.
type WeatherService struct {
	client        *api.Client
	healthTimeout time.Duration
	logger        *logging.Logger
}

func NewWeatherService(client *api.Client, healthTimeout time.Duration, logger *logging.Logger) *WeatherService {
	if healthTimeout <= 0 {
		healthTimeout = defaultHealthTimeout
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &WeatherService{client: client, healthTimeout: healthTimeout, logger: logger}
}

// ByLocation fetches current conditions for a location string.
func (s *WeatherService) ByLocation(ctx context.Context, location string) (*Weather, error) {
	q := url.Values{}
	q.Set("location", location)
	var out Weather
	if err := s.client.Get(ctx, "/weather", q, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Health probes the backend with a fixed timeout. This is the one call
// that bounds its own wait; everything else inherits the caller's
// context.
func (s *WeatherService) Health(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, s.healthTimeout)
	defer cancel()

	var out struct {
		Status string `json:"status"`
	}
	if err := s.client.Get(ctx, "/health", nil, &out); err != nil {
		return err
	}
	return nil
}
