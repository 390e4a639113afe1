package provider

import (
	"context"
	stderrors "errors"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "speech2text/internal/app/errors"
	"speech2text/internal/app/metrics"
	"speech2text/internal/config"
)

type stubTranscriber struct {
	name string
	resp *TranscriptionResponse
	err  error
}

func (s *stubTranscriber) Name() string { return s.name }

func (s *stubTranscriber) Transcribe(ctx context.Context, req *TranscriptionRequest) (*TranscriptionResponse, error) {
	return s.resp, s.err
}

func TestNew_Registered(t *testing.T) {
	Register("stub", func(cfg config.TranscriptionConfig) (Transcriber, error) {
		return &stubTranscriber{name: "stub"}, nil
	})

	tr, err := New(config.TranscriptionConfig{Provider: "stub"})
	require.NoError(t, err)
	assert.Equal(t, "stub", tr.Name())
	assert.Contains(t, Registered(), "stub")
}

func TestNew_Unknown(t *testing.T) {
	_, err := New(config.TranscriptionConfig{Provider: "nope"})
	require.Error(t, err)
	assert.True(t, stderrors.Is(err, apperrors.ErrProviderNotFound))
}

func TestNew_CreatorError(t *testing.T) {
	Register("broken", func(cfg config.TranscriptionConfig) (Transcriber, error) {
		return nil, apperrors.ErrMissingAPIKey
	})

	_, err := New(config.TranscriptionConfig{Provider: "broken"})
	require.Error(t, err)
	assert.True(t, stderrors.Is(err, apperrors.ErrMissingAPIKey))
	assert.Contains(t, err.Error(), "create broken transcriber")
}

func TestDefaultOptions(t *testing.T) {
	opts := DefaultOptions()
	assert.Equal(t, "nova-2", opts.Model)
	assert.Equal(t, "en", opts.Language)
	assert.True(t, opts.Punctuate)
	assert.True(t, opts.Diarize)
	assert.True(t, opts.SmartFormat)
	assert.False(t, opts.Utterances)
}

func TestInstrument(t *testing.T) {
	m := metrics.NewNop()

	ok := Instrument(&stubTranscriber{name: "stub", resp: &TranscriptionResponse{Text: "hi"}}, m)
	resp, err := ok.Transcribe(context.Background(), &TranscriptionRequest{})
	require.NoError(t, err)
	assert.Equal(t, "hi", resp.Text)
	assert.Equal(t, "stub", ok.Name())

	failing := Instrument(&stubTranscriber{name: "stub", err: &TranscriptionError{Code: "rate_limit_exceeded", Provider: "stub"}}, m)
	_, err = failing.Transcribe(context.Background(), &TranscriptionRequest{})
	require.Error(t, err)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.VendorRequests.WithLabelValues("stub", "success")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.VendorRequests.WithLabelValues("stub", "rate_limit_exceeded")))
}

func TestInstrument_NilMetrics(t *testing.T) {
	s := &stubTranscriber{name: "stub"}
	assert.Same(t, Transcriber(s), Instrument(s, nil))
}

func TestTranscriptionError_Error(t *testing.T) {
	err := &TranscriptionError{Provider: "deepgram", Message: "bad key", StatusCode: 401}
	assert.Equal(t, "deepgram: bad key (status 401)", err.Error())

	err = &TranscriptionError{Provider: "deepgram", Message: "network down"}
	assert.Equal(t, "deepgram: network down", err.Error())
}
