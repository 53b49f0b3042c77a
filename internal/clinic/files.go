package clinic

import (
	"context"
	"fmt"
	"io"
	"net/url"

	"github.com/clinicops/clinic-console/internal/api"
	"github.com/clinicops/clinic-console/pkg/logging"
)

// FileContent is binary file data with its reported content type.
type FileContent struct {
	Data        []byte
	ContentType string
}

// FileService wraps the patient-file endpoints. Metadata travels as
// JSON; content moves through the binary thumbnail/preview/download
// endpoints, and uploads are multipart/form-data.
type FileService struct {
	client *api.Client
	logger *logging.Logger
}

func NewFileService(client *api.Client, logger *logging.Logger) *FileService {
	if logger == nil {
		logger = logging.Default()
	}
	return &FileService{client: client, logger: logger}
}

// List fetches file metadata for one patient.
func (s *FileService) List(ctx context.Context, patientID string) ([]PatientFile, error) {
	var out []PatientFile
	if err := s.client.Get(ctx, "/patients/"+patientID+"/files", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Upload sends a file with an optional description.
func (s *FileService) Upload(ctx context.Context, patientID, fileName, description string, content io.Reader) (*PatientFile, error) {
	fields := map[string]string{}
	if description != "" {
		fields["description"] = description
	}
	var out PatientFile
	err := s.client.PostMultipart(ctx, "/patients/"+patientID+"/files", fields, "file", fileName, content, &out)
	if err != nil {
		return nil, err
	}
	if out.ID == "" {
		return nil, fmt.Errorf("clinic: upload response missing id")
	}
	s.logger.Info("file uploaded", "patient_id", patientID, "file_id", out.ID, "file_name", fileName)
	return &out, nil
}

// Thumbnail fetches the reduced preview image for a file.
func (s *FileService) Thumbnail(ctx context.Context, patientID, fileID string) (*FileContent, error) {
	return s.binary(ctx, "/patients/"+patientID+"/files/"+fileID+"/thumbnail")
}

// Preview fetches the inline-viewable rendition of a file.
func (s *FileService) Preview(ctx context.Context, patientID, fileID string) (*FileContent, error) {
	return s.binary(ctx, "/patients/"+patientID+"/files/"+fileID+"/preview")
}

// Download fetches the original file content.
func (s *FileService) Download(ctx context.Context, patientID, fileID string) (*FileContent, error) {
	return s.binary(ctx, "/patients/"+patientID+"/files/"+fileID+"/download")
}

// DownloadURL constructs the direct link to a file's content, for
// handing to anything that fetches on its own.
func (s *FileService) DownloadURL(patientID, fileID string) string {
	return s.client.URL("/patients/"+patientID+"/files/"+fileID+"/download", url.Values{})
}

// UpdateDescription changes only the file's description.
func (s *FileService) UpdateDescription(ctx context.Context, patientID, fileID, description string) (*PatientFile, error) {
	body := struct {
		Description string `json:"description"`
	}{Description: description}
	var out PatientFile
	if err := s.client.Put(ctx, "/patients/"+patientID+"/files/"+fileID+"/description", body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Delete removes a file and its stored object.
func (s *FileService) Delete(ctx context.Context, patientID, fileID string) error {
	return s.client.Delete(ctx, "/patients/"+patientID+"/files/"+fileID)
}

func (s *FileService) binary(ctx context.Context, path string) (*FileContent, error) {
	data, contentType, err := s.client.GetBinary(ctx, path, nil)
	if err != nil {
		return nil, err
	}
	return &FileContent{Data: data, ContentType: contentType}, nil
}
