package testutil

import (
	"context"
	"sync"

	"speech2text/internal/app/api/provider"
)

// MockTranscriber is a scripted provider.Transcriber
type MockTranscriber struct {
	mu sync.Mutex

	ProviderName string
	Response     *provider.TranscriptionResponse
	Err          error
	// Block, when set, holds Transcribe until it is closed
	Block chan struct{}

	Requests []*provider.TranscriptionRequest
	// ContextErrs records ctx.Err() as seen when each call returned
	ContextErrs []error
}

// NewMockTranscriber returns a transcriber that answers with text
func NewMockTranscriber(text string) *MockTranscriber {
	return &MockTranscriber{
		ProviderName: "mock",
		Response:     &provider.TranscriptionResponse{Text: text, Confidence: 0.99},
	}
}

// NewFailingTranscriber returns a transcriber that always fails with err
func NewFailingTranscriber(err error) *MockTranscriber {
	return &MockTranscriber{ProviderName: "mock", Err: err}
}

func (m *MockTranscriber) Name() string {
	return m.ProviderName
}

func (m *MockTranscriber) Transcribe(ctx context.Context, req *provider.TranscriptionRequest) (*provider.TranscriptionResponse, error) {
	if m.Block != nil {
		<-m.Block
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	m.Requests = append(m.Requests, req)
	m.ContextErrs = append(m.ContextErrs, ctx.Err())

	if m.Err != nil {
		return nil, m.Err
	}
	resp := *m.Response
	return &resp, nil
}

// CallCount returns how many times Transcribe ran
func (m *MockTranscriber) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Requests)
}
