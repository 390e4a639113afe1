package provider

import (
	"fmt"
	"time"
)

// Options are the recognition settings sent with every request
type Options struct {
	Model       string `json:"model"`
	Language    string `json:"language"`
	Punctuate   bool   `json:"punctuate"`
	Diarize     bool   `json:"diarize"`
	SmartFormat bool   `json:"smart_format"`
	Utterances  bool   `json:"utterances"`
}

// DefaultOptions returns the fixed configuration used for every upload.
func DefaultOptions() Options {
	return Options{
		Model:       "nova-2",
		Language:    "en",
		Punctuate:   true,
		Diarize:     true,
		SmartFormat: true,
		Utterances:  false,
	}
}

// TranscriptionRequest carries the in-memory audio for a single vendor call
type TranscriptionRequest struct {
	Audio    []byte
	MimeType string
	Filename string
	Options  Options
}

// TranscriptionResponse is the vendor-neutral result of a transcription
type TranscriptionResponse struct {
	// Text is channel 0, alternative 0. It may be empty.
	Text       string              `json:"text"`
	Confidence float64             `json:"confidence,omitempty"`
	Words      []TranscriptionWord `json:"words,omitempty"`
	Duration   time.Duration       `json:"duration,omitempty"`

	RequestID      string        `json:"request_id,omitempty"`
	ModelUsed      string        `json:"model_used,omitempty"`
	ProcessingTime time.Duration `json:"processing_time,omitempty"`
}

// TranscriptionWord is one recognised word with timing
type TranscriptionWord struct {
	Word           string  `json:"word"`
	PunctuatedWord string  `json:"punctuated_word,omitempty"`
	Start          float64 `json:"start"`
	End            float64 `json:"end"`
	Confidence     float64 `json:"confidence,omitempty"`
	Speaker        *int    `json:"speaker,omitempty"`
}

// TranscriptionError is returned by vendor adapters
type TranscriptionError struct {
	Code       string `json:"code"`
	Message    string `json:"message"`
	Provider   string `json:"provider"`
	StatusCode int    `json:"status_code,omitempty"`
	Retryable  bool   `json:"retryable"`
}

func (e *TranscriptionError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("%s: %s (status %d)", e.Provider, e.Message, e.StatusCode)
	}
	return fmt.Sprintf("%s: %s", e.Provider, e.Message)
}
