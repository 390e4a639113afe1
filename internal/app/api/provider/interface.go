package provider

import "context"

// Transcriber sends audio to a speech-to-text vendor. One call per upload;
// implementations must not retry.
type Transcriber interface {
	Name() string
	Transcribe(ctx context.Context, req *TranscriptionRequest) (*TranscriptionResponse, error)
}
