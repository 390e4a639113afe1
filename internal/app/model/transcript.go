package model

import "time"

// TranscriptStatus is the lifecycle state of a transcript row.
type TranscriptStatus string

const (
	StatusProcessing TranscriptStatus = "processing"
	StatusCompleted  TranscriptStatus = "completed"
	StatusError      TranscriptStatus = "error"
)

// NoSpeechDetected replaces an empty vendor transcript.
const NoSpeechDetected = "No speech detected"

// Valid reports whether s is one of the known statuses.
func (s TranscriptStatus) Valid() bool {
	switch s {
	case StatusProcessing, StatusCompleted, StatusError:
		return true
	}
	return false
}

// Terminal reports whether no further transition is allowed.
func (s TranscriptStatus) Terminal() bool {
	return s == StatusCompleted || s == StatusError
}

// CanTransitionTo reports whether a row in status s may move to next.
// Only processing -> completed and processing -> error are allowed.
func (s TranscriptStatus) CanTransitionTo(next TranscriptStatus) bool {
	return s == StatusProcessing && next.Terminal()
}

// Transcript is one transcription job as stored in the transcripts table.
type Transcript struct {
	ID        int64            `json:"id"`
	Text      string           `json:"text"`
	Status    TranscriptStatus `json:"status"`
	CreatedAt time.Time        `json:"created_at"`
	AudioURL  *string          `json:"audio_url"`
}

// TranscriptUpdate carries the fields written by the single post-vendor update.
type TranscriptUpdate struct {
	Text     string
	Status   TranscriptStatus
	AudioURL *string
}
