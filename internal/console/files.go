package console

import (
	"context"
	"io"
	"strings"
	"sync"

	"github.com/clinicops/clinic-console/internal/clinic"
	"github.com/clinicops/clinic-console/pkg/logging"
)

// FilesController drives the files tab: the attachment list, uploads,
// description edits and downloads.
type FilesController struct {
	files    *clinic.FileService
	notifier *Notifier
	logger   *logging.Logger

	mu        sync.Mutex
	patientID string
	entries   []clinic.PatientFile
}

func NewFilesController(files *clinic.FileService, notifier *Notifier, logger *logging.Logger) *FilesController {
	if logger == nil {
		logger = logging.Default()
	}
	return &FilesController{
		files:    files,
		notifier: notifier,
		logger:   logger,
	}
}

// Load fetches one patient's attachment list.
func (c *FilesController) Load(ctx context.Context, patientID string) error {
	entries, err := c.files.List(ctx, patientID)
	if err != nil {
		c.logger.Error("load patient files failed", "patient_id", patientID, "error", err)
		return err
	}
	c.mu.Lock()
	c.patientID = patientID
	c.entries = entries
	c.mu.Unlock()
	return nil
}

// Upload sends one attachment and appends it to the list.
func (c *FilesController) Upload(ctx context.Context, fileName, description string, content io.Reader) (*clinic.PatientFile, error) {
	if strings.TrimSpace(fileName) == "" {
		c.notifier.Push(LevelError, "file name is required")
		return nil, ErrInvalidForm
	}
	c.mu.Lock()
	patientID := c.patientID
	c.mu.Unlock()
	uploaded, err := c.files.Upload(ctx, patientID, fileName, description, content)
	if err != nil {
		c.logger.Error("upload file failed", "patient_id", patientID, "file", fileName, "error", err)
		c.notifier.Push(LevelError, "could not upload "+fileName+": "+err.Error())
		return nil, err
	}
	c.mu.Lock()
	c.entries = append(c.entries, *uploaded)
	c.mu.Unlock()
	c.notifier.Push(LevelSuccess, fileName+" uploaded")
	return uploaded, nil
}

// SetDescription rewrites one attachment's description.
func (c *FilesController) SetDescription(ctx context.Context, fileID, description string) error {
	c.mu.Lock()
	patientID := c.patientID
	c.mu.Unlock()
	updated, err := c.files.UpdateDescription(ctx, patientID, fileID, description)
	if err != nil {
		c.logger.Error("update file description failed", "file_id", fileID, "error", err)
		c.notifier.Push(LevelError, "could not update description: "+err.Error())
		return err
	}
	c.mu.Lock()
	for i := range c.entries {
		if c.entries[i].ID == updated.ID {
			c.entries[i] = *updated
			break
		}
	}
	c.mu.Unlock()
	return nil
}

// Remove deletes an attachment and drops it from the list.
func (c *FilesController) Remove(ctx context.Context, fileID string) error {
	c.mu.Lock()
	patientID := c.patientID
	c.mu.Unlock()
	if err := c.files.Delete(ctx, patientID, fileID); err != nil {
		c.logger.Error("delete file failed", "file_id", fileID, "error", err)
		c.notifier.Push(LevelError, "could not delete file: "+err.Error())
		return err
	}
	c.mu.Lock()
	for i := range c.entries {
		if c.entries[i].ID == fileID {
			c.entries = append(c.entries[:i], c.entries[i+1:]...)
			break
		}
	}
	c.mu.Unlock()
	return nil
}

// Thumbnail fetches the small preview image for the list view.
func (c *FilesController) Thumbnail(ctx context.Context, fileID string) (*clinic.FileContent, error) {
	c.mu.Lock()
	patientID := c.patientID
	c.mu.Unlock()
	return c.files.Thumbnail(ctx, patientID, fileID)
}

// Preview fetches the full-size preview.
func (c *FilesController) Preview(ctx context.Context, fileID string) (*clinic.FileContent, error) {
	c.mu.Lock()
	patientID := c.patientID
	c.mu.Unlock()
	return c.files.Preview(ctx, patientID, fileID)
}

// Download fetches the original bytes.
func (c *FilesController) Download(ctx context.Context, fileID string) (*clinic.FileContent, error) {
	c.mu.Lock()
	patientID := c.patientID
	c.mu.Unlock()
	return c.files.Download(ctx, patientID, fileID)
}

// Entries returns the loaded attachment list.
func (c *FilesController) Entries() []clinic.PatientFile {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]clinic.PatientFile, len(c.entries))
	copy(out, c.entries)
	return out
}
