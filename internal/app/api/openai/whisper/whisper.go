package whisper

import (
	"bytes"
	"context"
	"fmt"
	"mime"
	"time"

	"github.com/sashabaranov/go-openai"

	"speech2text/internal/app/api/provider"
)

const providerName = "openai"

// RemoteTranscriber implements provider.Transcriber using the OpenAI
// audio transcription API.
type RemoteTranscriber struct {
	client *openai.Client
}

// NewRemoteTranscriber creates a new RemoteTranscriber instance.
func NewRemoteTranscriber(client *openai.Client) *RemoteTranscriber {
	return &RemoteTranscriber{client: client}
}

// Name implements provider.Transcriber
func (rt *RemoteTranscriber) Name() string {
	return providerName
}

// Transcribe uploads the audio buffer to OpenAI. Only the language option
// applies; punctuation and formatting are always on for whisper-1.
func (rt *RemoteTranscriber) Transcribe(ctx context.Context, req *provider.TranscriptionRequest) (*provider.TranscriptionResponse, error) {
	startTime := time.Now()

	if len(req.Audio) == 0 {
		return nil, &provider.TranscriptionError{
			Code:     "invalid_input",
			Message:  "audio payload is empty",
			Provider: providerName,
		}
	}

	audioReq := openai.AudioRequest{
		Model:    openai.Whisper1,
		FilePath: uploadName(req),
		Reader:   bytes.NewReader(req.Audio),
		Language: req.Options.Language,
		Format:   openai.AudioResponseFormatVerboseJSON,
	}

	resp, err := rt.client.CreateTranscription(ctx, audioReq)
	if err != nil {
		return nil, convertError(err)
	}

	return &provider.TranscriptionResponse{
		Text:           resp.Text,
		Duration:       time.Duration(resp.Duration * float64(time.Second)),
		ModelUsed:      openai.Whisper1,
		ProcessingTime: time.Since(startTime),
	}, nil
}

// uploadName picks a filename whose extension OpenAI can use to detect the format.
func uploadName(req *provider.TranscriptionRequest) string {
	if req.Filename != "" {
		return req.Filename
	}
	if exts, _ := mime.ExtensionsByType(req.MimeType); len(exts) > 0 {
		return "audio" + exts[0]
	}
	return "audio.mp3"
}

func convertError(err error) error {
	te := &provider.TranscriptionError{
		Code:     "unknown_error",
		Message:  fmt.Sprintf("createTranscription failed: %s", err),
		Provider: providerName,
	}

	switch e := err.(type) {
	case *openai.APIError:
		te.StatusCode = e.HTTPStatusCode
	case *openai.RequestError:
		te.StatusCode = e.HTTPStatusCode
	default:
		te.Code = "network_error"
		te.Retryable = true
		return te
	}

	switch {
	case te.StatusCode == 401 || te.StatusCode == 403:
		te.Code = "authentication_failed"
	case te.StatusCode == 429:
		te.Code = "rate_limit_exceeded"
		te.Retryable = true
	case te.StatusCode == 413:
		te.Code = "file_too_large"
	case te.StatusCode == 400:
		te.Code = "invalid_request"
	case te.StatusCode >= 500:
		te.Code = "server_error"
		te.Retryable = true
	}

	return te
}
