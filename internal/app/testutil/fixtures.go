// Package testutil holds in-memory fakes and fixtures shared by package tests.
package testutil

import (
	"time"

	"speech2text/internal/app/model"
)

// SampleTranscripts returns three rows, oldest first, covering every status
func SampleTranscripts() []model.Transcript {
	audio := "http://archive.test/audio/1-meeting.wav"
	return []model.Transcript{
		{
			ID:        1,
			Text:      "Welcome to the weekly sync. Let's start with the roadmap.",
			Status:    model.StatusCompleted,
			CreatedAt: time.Date(2024, 1, 15, 10, 30, 0, 0, time.UTC),
			AudioURL:  &audio,
		},
		{
			ID:        2,
			Text:      "Transcription error: deepgram: Deepgram API key is invalid or missing (status 401)",
			Status:    model.StatusError,
			CreatedAt: time.Date(2024, 1, 16, 14, 45, 0, 0, time.UTC),
		},
		{
			ID:        3,
			Text:      "",
			Status:    model.StatusProcessing,
			CreatedAt: time.Date(2024, 1, 17, 9, 15, 0, 0, time.UTC),
		},
	}
}
