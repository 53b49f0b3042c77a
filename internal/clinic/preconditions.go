package clinic

import (
	"context"
	"fmt"

	"github.com/clinicops/clinic-console/internal/api"
	"github.com/clinicops/clinic-console/pkg/logging"
)

// PreconditionRequest is the payload for creating or updating a
// precondition. The dedicated REST resource is the single source of
// truth; preconditions are never embedded on the patient record or
// given client-generated ids.
type PreconditionRequest struct {
	Name string `json:"name"`
	Date string `json:"date"`
	Note string `json:"note,omitempty"`
}

// PreconditionService wraps the precondition endpoints.
type PreconditionService struct {
	client *api.Client
	logger *logging.Logger
}

func NewPreconditionService(client *api.Client, logger *logging.Logger) *PreconditionService {
	if logger == nil {
		logger = logging.Default()
	}
	return &PreconditionService{client: client, logger: logger}
}

// ListByPatient fetches all preconditions for one patient.
func (s *PreconditionService) ListByPatient(ctx context.Context, patientID string) ([]Precondition, error) {
	var out []Precondition
	if err := s.client.Get(ctx, "/patients/"+patientID+"/preconditions", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Create adds a precondition to a patient.
func (s *PreconditionService) Create(ctx context.Context, patientID string, req PreconditionRequest) (*Precondition, error) {
	var out Precondition
	if err := s.client.Post(ctx, "/patients/"+patientID+"/preconditions", req, &out); err != nil {
		return nil, err
	}
	if out.ID == "" {
		return nil, fmt.Errorf("clinic: create precondition response missing id")
	}
	return &out, nil
}

// Update replaces a precondition.
func (s *PreconditionService) Update(ctx context.Context, patientID, id string, req PreconditionRequest) (*Precondition, error) {
	var out Precondition
	if err := s.client.Put(ctx, "/patients/"+patientID+"/preconditions/"+id, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Delete removes a precondition.
func (s *PreconditionService) Delete(ctx context.Context, patientID, id string) error {
	return s.client.Delete(ctx, "/patients/"+patientID+"/preconditions/"+id)
}
