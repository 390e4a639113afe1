package dto

import (
	"time"

	"github.com/samber/lo"

	"speech2text/internal/app/model"
)

// TranscriptURI binds the {id} path segment
type TranscriptURI struct {
	ID int64 `uri:"id"`
}

// UploadResponse is returned after a successful upload-and-transcribe
type UploadResponse struct {
	TranscriptID int64  `json:"transcript_id" example:"42"`
	Status       string `json:"status" example:"completed"`
	Text         string `json:"text" example:"Hello and welcome to the show."`
	Message      string `json:"message" example:"Transcription completed successfully"`
}

// TranscriptResponse represents a stored transcript in API responses
type TranscriptResponse struct {
	ID        int64     `json:"id" example:"42"`
	Text      string    `json:"text" example:"Hello and welcome to the show."`
	Status    string    `json:"status" example:"completed" enums:"processing,completed,error"`
	CreatedAt time.Time `json:"created_at"`
	AudioURL  *string   `json:"audio_url"`
}

// MessageResponse carries a single human-readable message
type MessageResponse struct {
	Message string `json:"message" example:"Transcript deleted successfully"`
}

// HealthResponse is the static liveness payload
type HealthResponse struct {
	Status  string `json:"status" example:"ok"`
	Message string `json:"message" example:"Speech-to-Text API is running"`
}

// ToTranscriptResponse converts a stored row to its API shape
func ToTranscriptResponse(t *model.Transcript) TranscriptResponse {
	return TranscriptResponse{
		ID:        t.ID,
		Text:      t.Text,
		Status:    string(t.Status),
		CreatedAt: t.CreatedAt,
		AudioURL:  t.AudioURL,
	}
}

// ToTranscriptResponses converts rows, preserving order. Never returns nil.
func ToTranscriptResponses(rows []model.Transcript) []TranscriptResponse {
	if len(rows) == 0 {
		return []TranscriptResponse{}
	}
	return lo.Map(rows, func(t model.Transcript, _ int) TranscriptResponse {
		return ToTranscriptResponse(&t)
	})
}
