package clinic

import (
	"context"
	"fmt"
	"net/url"

	"github.com/clinicops/clinic-console/internal/api"
	"github.com/clinicops/clinic-console/pkg/logging"
)

// AppointmentTypeRequest is the payload for creating or updating a type.
type AppointmentTypeRequest struct {
	Name            string `json:"name"`
	DurationMinutes int    `json:"duration_minutes"`
}

// AppointmentTypeService wraps the appointment-type endpoints,
// including the available-slots lookup used by the booking form.
type AppointmentTypeService struct {
	client *api.Client
	logger *logging.Logger
}

func NewAppointmentTypeService(client *api.Client, logger *logging.Logger) *AppointmentTypeService {
	if logger == nil {
		logger = logging.Default()
	}
	return &AppointmentTypeService{client: client, logger: logger}
}

// List fetches all appointment types.
func (s *AppointmentTypeService) List(ctx context.Context) ([]AppointmentType, error) {
	var out []AppointmentType
	if err := s.client.Get(ctx, "/appointment-types", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Get fetches a single type by id.
func (s *AppointmentTypeService) Get(ctx context.Context, id string) (*AppointmentType, error) {
	var out AppointmentType
	if err := s.client.Get(ctx, "/appointment-types/"+id, nil, &out); err != nil {
		return nil, err
	}
	if out.ID == "" {
		return nil, fmt.Errorf("clinic: appointment type response missing id")
	}
	return &out, nil
}

// Create adds a new appointment type.
func (s *AppointmentTypeService) Create(ctx context.Context, req AppointmentTypeRequest) (*AppointmentType, error) {
	var out AppointmentType
	if err := s.client.Post(ctx, "/appointment-types", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Update replaces an appointment type.
func (s *AppointmentTypeService) Update(ctx context.Context, id string, req AppointmentTypeRequest) (*AppointmentType, error) {
	var out AppointmentType
	if err := s.client.Put(ctx, "/appointment-types/"+id, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Delete removes an appointment type.
func (s *AppointmentTypeService) Delete(ctx context.Context, id string) error {
	return s.client.Delete(ctx, "/appointment-types/"+id)
}

// AvailableSlots asks the backend for conflict-free windows for a type
// on a date. The client renders whatever comes back; it never computes
// availability locally.
func (s *AppointmentTypeService) AvailableSlots(ctx context.Context, typeID, date string) ([]TimeSlot, error) {
	q := url.Values{}
	q.Set("date", date)
	var out []TimeSlot
	if err := s.client.Get(ctx, "/appointment-types/"+typeID+"/available-slots", q, &out); err != nil {
		return nil, err
	}
	for i := range out {
		out[i].StartTime = TrimClock(out[i].StartTime)
		out[i].EndTime = TrimClock(out[i].EndTime)
	}
	return out, nil
}
