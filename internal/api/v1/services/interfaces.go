package services

import (
	"context"
	"io"

	"speech2text/internal/api/v1/dto"
)

// UploadInput is one uploaded audio file. Body is read only after the
// placeholder row exists.
type UploadInput struct {
	Filename    string
	ContentType string
	Size        int64
	Body        io.Reader
}

// TranscriptService defines the transcript operations behind the HTTP API
type TranscriptService interface {
	Upload(ctx context.Context, in UploadInput) (*dto.UploadResponse, error)
	Get(ctx context.Context, id int64) (*dto.TranscriptResponse, error)
	// List never fails; backend errors are logged and yield an empty list.
	List(ctx context.Context) []dto.TranscriptResponse
	Delete(ctx context.Context, id int64) error
	Export(ctx context.Context, w io.Writer) error
}
