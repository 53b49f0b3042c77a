package clinic

import (
	"context"
	"fmt"

	"github.com/clinicops/clinic-console/internal/api"
	"github.com/clinicops/clinic-console/pkg/logging"
)

// AppointmentRequest is the payload for creating or updating an
// appointment. Times are normalized to HH:MM:SS before sending.
type AppointmentRequest struct {
	PatientID string            `json:"patient_id"`
	Title     string            `json:"title,omitempty"`
	Date      string            `json:"date"`
	StartTime string            `json:"start_time"`
	EndTime   string            `json:"end_time"`
	TypeID    string            `json:"type_id"`
	Status    AppointmentStatus `json:"status,omitempty"`
	Notes     string            `json:"notes,omitempty"`
}

func (r AppointmentRequest) normalized() AppointmentRequest {
	r.StartTime = TrimClock(r.StartTime)
	r.EndTime = TrimClock(r.EndTime)
	return r
}

// AppointmentService wraps the appointment resource endpoints.
type AppointmentService struct {
	client *api.Client
	logger *logging.Logger
}

func NewAppointmentService(client *api.Client, logger *logging.Logger) *AppointmentService {
	if logger == nil {
		logger = logging.Default()
	}
	return &AppointmentService{client: client, logger: logger}
}

// List fetches one offset/limit page of appointments.
func (s *AppointmentService) List(ctx context.Context, offset, limit int) (*api.List[Appointment], error) {
	return api.GetList[Appointment](ctx, s.client, "/appointments", api.ListQuery{Offset: offset, Limit: limit})
}

// ListByPatient fetches every appointment for one patient, most pages
// of history are small enough that the backend returns them whole.
func (s *AppointmentService) ListByPatient(ctx context.Context, patientID string) ([]Appointment, error) {
	var out []Appointment
	if err := s.client.Get(ctx, "/patients/"+patientID+"/appointments", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// ListByDate fetches every appointment on one YYYY-MM-DD day.
func (s *AppointmentService) ListByDate(ctx context.Context, date string) ([]Appointment, error) {
	list, err := api.GetList[Appointment](ctx, s.client, "/appointments", api.ListQuery{Limit: maxDayAppointments, Date: date})
	if err != nil {
		return nil, err
	}
	return list.Data, nil
}

// maxDayAppointments bounds a single day's schedule fetch.
const maxDayAppointments = 200

// Get fetches a single appointment by id.
func (s *AppointmentService) Get(ctx context.Context, id string) (*Appointment, error) {
	var out Appointment
	if err := s.client.Get(ctx, "/appointments/"+id, nil, &out); err != nil {
		return nil, err
	}
	if out.ID == "" {
		return nil, fmt.Errorf("clinic: appointment response missing id")
	}
	return &out, nil
}

// Create books a new appointment. Slot conflicts are the backend's
// call; they surface here as an *api.Error.
func (s *AppointmentService) Create(ctx context.Context, req AppointmentRequest) (*Appointment, error) {
	var out Appointment
	if err := s.client.Post(ctx, "/appointments", req.normalized(), &out); err != nil {
		return nil, err
	}
	if out.ID == "" {
		return nil, fmt.Errorf("clinic: create appointment response missing id")
	}
	s.logger.Info("appointment created", "appointment_id", out.ID, "patient_id", out.PatientID)
	return &out, nil
}

// Update replaces an appointment record.
func (s *AppointmentService) Update(ctx context.Context, id string, req AppointmentRequest) (*Appointment, error) {
	var out Appointment
	if err := s.client.Put(ctx, "/appointments/"+id, req.normalized(), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateStatus sets the appointment status. Any status may follow any
// other; the backend owns whatever policy exists.
func (s *AppointmentService) UpdateStatus(ctx context.Context, id string, status AppointmentStatus) (*Appointment, error) {
	body := struct {
		Status AppointmentStatus `json:"status"`
	}{Status: status}
	var out Appointment
	if err := s.client.Put(ctx, "/appointments/"+id+"/status", body, &out); err != nil {
		return nil, err
	}
	s.logger.Info("appointment status updated", "appointment_id", id, "status", status)
	return &out, nil
}

// Delete removes an appointment.
func (s *AppointmentService) Delete(ctx context.Context, id string) error {
	return s.client.Delete(ctx, "/appointments/"+id)
}
