package clinic

import (
	"context"
	"net/url"

	"github.com/clinicops/clinic-console/internal/api"
	"github.com/clinicops/clinic-console/internal/cache"
	"github.com/clinicops/clinic-console/pkg/logging"
)

// SettingsRequest is the payload for updating clinic settings.
type SettingsRequest struct {
	ClinicName   string `json:"clinic_name"`
	Address      string `json:"address,omitempty"`
	Phone        string `json:"phone,omitempty"`
	OpeningTime  string `json:"opening_time,omitempty"`
	ClosingTime  string `json:"closing_time,omitempty"`
	DateFormat   string `json:"date_format,omitempty"`
	TimeFormat   string `json:"time_format,omitempty"`
	ThemeVariant string `json:"theme_variant,omitempty"`
}

// SettingsService wraps the settings endpoints with an owner-keyed TTL
// cache in front of Get. The cache is injected; pass nil to go to the
// backend every time.
type SettingsService struct {
	client *api.Client
	cache  cache.Cache[Settings]
	logger *logging.Logger
}

func NewSettingsService(client *api.Client, c cache.Cache[Settings], logger *logging.Logger) *SettingsService {
	if logger == nil {
		logger = logging.Default()
	}
	return &SettingsService{client: client, cache: c, logger: logger}
}

// Get returns the settings for the owner, from cache when fresh.
func (s *SettingsService) Get(ctx context.Context, ownerID string) (*Settings, error) {
	if s.cache != nil {
		if cached, ok, err := s.cache.Get(ctx, ownerID); err == nil && ok {
			return &cached, nil
		} else if err != nil {
			// Cache trouble must not block the screen; fall through.
			s.logger.Warn("settings cache read failed", "owner_id", ownerID, "error", err)
		}
	}
	return s.Refresh(ctx, ownerID)
}

// Refresh bypasses the cache, fetches from the backend, and repopulates.
func (s *SettingsService) Refresh(ctx context.Context, ownerID string) (*Settings, error) {
	var out Settings
	if err := s.client.Get(ctx, "/settings", nil, &out); err != nil {
		return nil, err
	}
	if out.OwnerID == "" {
		out.OwnerID = ownerID
	}
	s.store(ctx, ownerID, out)
	return &out, nil
}

// Update replaces the settings and refreshes the cached copy.
func (s *SettingsService) Update(ctx context.Context, ownerID string, req SettingsRequest) (*Settings, error) {
	var out Settings
	if err := s.client.Put(ctx, "/settings", req, &out); err != nil {
		return nil, err
	}
	s.store(ctx, ownerID, out)
	return &out, nil
}

// Invalidate drops the cached settings for the owner.
func (s *SettingsService) Invalidate(ctx context.Context, ownerID string) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Delete(ctx, ownerID); err != nil {
		s.logger.Warn("settings cache invalidate failed", "owner_id", ownerID, "error", err)
	}
}

// FieldValues fetches the allowed values for an enumerated settings
// field (date formats, theme variants).
func (s *SettingsService) FieldValues(ctx context.Context, field string) ([]string, error) {
	q := url.Values{}
	q.Set("field", field)
	var out []string
	if err := s.client.Get(ctx, "/settings/field-values", q, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *SettingsService) store(ctx context.Context, ownerID string, value Settings) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Set(ctx, ownerID, value); err != nil {
		s.logger.Warn("settings cache write failed", "owner_id", ownerID, "error", err)
	}
}
