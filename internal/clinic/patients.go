package clinic

import (
	"context"
	"fmt"
	"strings"

	"github.com/clinicops/clinic-console/internal/api"
	"github.com/clinicops/clinic-console/pkg/logging"
)

// PatientRequest is the payload for creating or updating a patient.
// Optional fields carry omitempty so an absent email is omitted from
// the body rather than sent as an empty string.
type PatientRequest struct {
	FirstName   string `json:"first_name"`
	LastName    string `json:"last_name"`
	DateOfBirth string `json:"date_of_birth,omitempty"`
	Gender      Gender `json:"gender,omitempty"`
	Email       string `json:"email,omitempty"`
	Phone       string `json:"phone"`
	Street      string `json:"street,omitempty"`
	City        string `json:"city,omitempty"`
	State       string `json:"state,omitempty"`
	Zip         string `json:"zip,omitempty"`
}

// PatientRequestFrom builds an update payload from an existing record.
func PatientRequestFrom(p Patient) PatientRequest {
	return PatientRequest{
		FirstName:   p.FirstName,
		LastName:    p.LastName,
		DateOfBirth: p.DateOfBirth,
		Gender:      p.Gender,
		Email:       p.Email,
		Phone:       p.Phone,
		Street:      p.Street,
		City:        p.City,
		State:       p.State,
		Zip:         p.Zip,
	}
}

// PatientService wraps the patient resource endpoints.
type PatientService struct {
	client *api.Client
	logger *logging.Logger
}

func NewPatientService(client *api.Client, logger *logging.Logger) *PatientService {
	if logger == nil {
		logger = logging.Default()
	}
	return &PatientService{client: client, logger: logger}
}

// List fetches one offset/limit page of patients.
func (s *PatientService) List(ctx context.Context, offset, limit int) (*api.List[Patient], error) {
	return api.GetList[Patient](ctx, s.client, "/patients", api.ListQuery{Offset: offset, Limit: limit})
}

// Search fetches one page of patients matching the free-text term.
func (s *PatientService) Search(ctx context.Context, term string, offset, limit int) (*api.List[Patient], error) {
	term = strings.TrimSpace(term)
	if term == "" {
		return s.List(ctx, offset, limit)
	}
	return api.GetList[Patient](ctx, s.client, "/patients/search", api.ListQuery{Offset: offset, Limit: limit, Term: term})
}

// Get fetches a single patient by id.
func (s *PatientService) Get(ctx context.Context, id string) (*Patient, error) {
	var out Patient
	if err := s.client.Get(ctx, "/patients/"+id, nil, &out); err != nil {
		return nil, err
	}
	if out.ID == "" {
		return nil, fmt.Errorf("clinic: patient response missing id")
	}
	return &out, nil
}

// Create posts a new patient and returns the server-assigned record.
func (s *PatientService) Create(ctx context.Context, req PatientRequest) (*Patient, error) {
	var out Patient
	if err := s.client.Post(ctx, "/patients", req, &out); err != nil {
		return nil, err
	}
	if out.ID == "" {
		return nil, fmt.Errorf("clinic: create patient response missing id")
	}
	s.logger.Info("patient created", "patient_id", out.ID)
	return &out, nil
}

// Update replaces a patient record.
func (s *PatientService) Update(ctx context.Context, id string, req PatientRequest) (*Patient, error) {
	var out Patient
	if err := s.client.Put(ctx, "/patients/"+id, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Delete removes a patient record.
func (s *PatientService) Delete(ctx context.Context, id string) error {
	if err := s.client.Delete(ctx, "/patients/"+id); err != nil {
		return err
	}
	s.logger.Info("patient deleted", "patient_id", id)
	return nil
}

// Summary fetches aggregate patient counts for the dashboard.
func (s *PatientService) Summary(ctx context.Context) (*PatientSummary, error) {
	var out PatientSummary
	if err := s.client.Get(ctx, "/patients/summary", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ExportCSV downloads the full patient list as CSV bytes.
func (s *PatientService) ExportCSV(ctx context.Context) ([]byte, error) {
	data, contentType, err := s.client.GetBinary(ctx, "/patients/export", nil)
	if err != nil {
		return nil, err
	}
	if !strings.Contains(contentType, "csv") && !strings.Contains(contentType, "text/plain") {
		return nil, fmt.Errorf("clinic: unexpected export content type %q", contentType)
	}
	return data, nil
}
