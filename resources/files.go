package resources

import (
	"context"
	"fmt"
	"time"

	"github.com/quodohq/quodo-go/api"
)

// File is a registered attachment. LocalCreatedAt is the client-recorded
// creation timestamp captured before the upload began, not a server time.
type File struct {
	ID             int64     `json:"id"`
	TaskID         int64     `json:"task_id"`
	UploadID       string    `json:"upload_id"`
	Name           string    `json:"name"`
	Size           int64     `json:"size"`
	ContentType    string    `json:"content_type"`
	ContentURL     string    `json:"content_url"`
	LocalCreatedAt time.Time `json:"local_created_at"`
	CreatedAt      time.Time `json:"created_at"`
}

// FilesService ...
type FilesService struct {
	client *api.Client
}

// List returns the files attached to a task.
func (s *FilesService) List(ctx context.Context, taskID int64) ([]File, error) {
	var files []File
	if err := s.client.GetInto(ctx, fmt.Sprintf("tasks/%d/files", taskID), nil, &files); err != nil {
		return nil, err
	}
	return files, nil
}

// Get returns a single file.
func (s *FilesService) Get(ctx context.Context, fileID int64) (*File, error) {
	var file File
	if err := s.client.GetInto(ctx, fmt.Sprintf("files/%d", fileID), nil, &file); err != nil {
		return nil, err
	}
	return &file, nil
}

// Delete removes a file.
func (s *FilesService) Delete(ctx context.Context, fileID int64) error {
	return deleteResource(ctx, s.client, fmt.Sprintf("files/%d", fileID))
}
