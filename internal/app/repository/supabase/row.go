package supabase

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"

	apperrors "speech2text/internal/app/errors"
	"speech2text/internal/app/model"
)

// Layouts PostgREST uses for timestamptz and timestamp columns
var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
}

// timestamp accepts created_at with or without a zone. A value without a
// zone comes from a plain timestamp column and is read as UTC.
type timestamp time.Time

func (ts *timestamp) UnmarshalJSON(data []byte) error {
	if bytes.Equal(data, []byte("null")) {
		*ts = timestamp{}
		return nil
	}

	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("created_at: %w", err)
	}

	for _, layout := range timestampLayouts {
		if t, err := time.ParseInLocation(layout, raw, time.UTC); err == nil {
			*ts = timestamp(t)
			return nil
		}
	}
	return fmt.Errorf("created_at: unrecognised timestamp %q", raw)
}

// row is one transcripts record as PostgREST returns it
type row struct {
	ID        int64                  `json:"id"`
	Text      string                 `json:"text"`
	Status    model.TranscriptStatus `json:"status"`
	CreatedAt timestamp              `json:"created_at"`
	AudioURL  *string                `json:"audio_url"`
}

func (r row) transcript() (model.Transcript, error) {
	if !r.Status.Valid() {
		return model.Transcript{}, apperrors.Wrapf(apperrors.ErrResponseInvalid, "transcript %d has unknown status %q", r.ID, r.Status)
	}
	return model.Transcript{
		ID:        r.ID,
		Text:      r.Text,
		Status:    r.Status,
		CreatedAt: time.Time(r.CreatedAt),
		AudioURL:  r.AudioURL,
	}, nil
}

func transcripts(rows []row) ([]model.Transcript, error) {
	out := make([]model.Transcript, 0, len(rows))
	for _, r := range rows {
		t, err := r.transcript()
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, nil
}
