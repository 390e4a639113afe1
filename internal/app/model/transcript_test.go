package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTranscriptStatus_CanTransitionTo(t *testing.T) {
	tests := []struct {
		from, to TranscriptStatus
		allowed  bool
	}{
		{StatusProcessing, StatusCompleted, true},
		{StatusProcessing, StatusError, true},
		{StatusProcessing, StatusProcessing, false},
		{StatusCompleted, StatusError, false},
		{StatusCompleted, StatusProcessing, false},
		{StatusError, StatusCompleted, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.from)+"->"+string(tt.to), func(t *testing.T) {
			assert.Equal(t, tt.allowed, tt.from.CanTransitionTo(tt.to))
		})
	}
}

func TestTranscriptStatus_Valid(t *testing.T) {
	assert.True(t, StatusProcessing.Valid())
	assert.True(t, StatusCompleted.Valid())
	assert.True(t, StatusError.Valid())
	assert.False(t, TranscriptStatus("failed").Valid())
	assert.False(t, TranscriptStatus("").Valid())
}
