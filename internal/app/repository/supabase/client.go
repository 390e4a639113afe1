package supabase

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	apperrors "speech2text/internal/app/errors"
	"speech2text/internal/app/model"
)

// Config configures access to a Supabase project's REST API
type Config struct {
	URL     string
	Key     string
	Table   string
	Timeout time.Duration
}

// Store implements repository.TranscriptDAO over the PostgREST API that
// Supabase exposes at /rest/v1.
type Store struct {
	endpoint string
	key      string
	client   *http.Client
}

// APIError is a PostgREST error response
type APIError struct {
	StatusCode int    `json:"-"`
	Code       string `json:"code"`
	Message    string `json:"message"`
	Details    string `json:"details"`
	Hint       string `json:"hint"`
}

func (e *APIError) Error() string {
	msg := fmt.Sprintf("supabase: %s (status %d", e.Message, e.StatusCode)
	if e.Code != "" {
		msg += ", code " + e.Code
	}
	return msg + ")"
}

// NewStore creates a Supabase-backed transcript store
func NewStore(config Config) (*Store, error) {
	if config.URL == "" {
		return nil, apperrors.RequiredField("SUPABASE_URL")
	}
	if config.Key == "" {
		return nil, apperrors.RequiredField("SUPABASE_KEY")
	}
	if config.Table == "" {
		config.Table = "transcripts"
	}
	if config.Timeout == 0 {
		config.Timeout = 30 * time.Second
	}

	base, err := url.Parse(strings.TrimRight(config.URL, "/"))
	if err != nil || base.Scheme == "" || base.Host == "" {
		return nil, apperrors.Wrapf(apperrors.ErrInvalidConfig, "SUPABASE_URL %q is not an absolute URL", config.URL)
	}

	return &Store{
		endpoint: base.String() + "/rest/v1/" + config.Table,
		key:      config.Key,
		client:   &http.Client{Timeout: config.Timeout},
	}, nil
}

// Close implements repository.TranscriptDAO
func (s *Store) Close() error {
	s.client.CloseIdleConnections()
	return nil
}

// CreatePlaceholder inserts an empty processing row
func (s *Store) CreatePlaceholder(ctx context.Context) (int64, error) {
	body := map[string]interface{}{
		"text":   "",
		"status": model.StatusProcessing,
	}

	var rows []row
	if err := s.do(ctx, http.MethodPost, nil, body, &rows); err != nil {
		return 0, apperrors.Mark(apperrors.ErrInsertFailed, err)
	}
	if len(rows) == 0 || rows[0].ID == 0 {
		return 0, apperrors.Wrap(apperrors.ErrInsertFailed, "no row returned")
	}

	return rows[0].ID, nil
}

// Update writes the final text and status of a row that is still processing
func (s *Store) Update(ctx context.Context, id int64, update model.TranscriptUpdate) error {
	if !model.StatusProcessing.CanTransitionTo(update.Status) {
		return apperrors.Wrapf(apperrors.ErrInvalidTransition, "processing -> %s", update.Status)
	}

	body := map[string]interface{}{
		"text":   update.Text,
		"status": update.Status,
	}
	if update.AudioURL != nil {
		body["audio_url"] = *update.AudioURL
	}

	query := url.Values{}
	query.Set("id", "eq."+strconv.FormatInt(id, 10))
	query.Set("status", "eq."+string(model.StatusProcessing))

	var rows []row
	if err := s.do(ctx, http.MethodPatch, query, body, &rows); err != nil {
		return apperrors.Mark(apperrors.ErrUpdateFailed, err)
	}
	if len(rows) == 0 {
		return apperrors.Wrapf(apperrors.ErrUpdateFailed, "transcript %d is missing or no longer processing", id)
	}

	return nil
}

// GetByID retrieves one transcript
func (s *Store) GetByID(ctx context.Context, id int64) (*model.Transcript, error) {
	query := url.Values{}
	query.Set("select", "*")
	query.Set("id", "eq."+strconv.FormatInt(id, 10))

	var rows []row
	if err := s.do(ctx, http.MethodGet, query, nil, &rows); err != nil {
		return nil, apperrors.Mark(apperrors.ErrQueryFailed, err)
	}
	if len(rows) == 0 {
		return nil, apperrors.NotFound(id)
	}

	t, err := rows[0].transcript()
	if err != nil {
		return nil, apperrors.Mark(apperrors.ErrQueryFailed, err)
	}
	return &t, nil
}

// List retrieves all transcripts, newest first
func (s *Store) List(ctx context.Context) ([]model.Transcript, error) {
	query := url.Values{}
	query.Set("select", "*")
	query.Set("order", "created_at.desc,id.desc")

	var rows []row
	if err := s.do(ctx, http.MethodGet, query, nil, &rows); err != nil {
		return nil, apperrors.Mark(apperrors.ErrQueryFailed, err)
	}

	out, err := transcripts(rows)
	if err != nil {
		return nil, apperrors.Mark(apperrors.ErrQueryFailed, err)
	}
	return out, nil
}

// Delete removes one transcript. The deleted rows are requested back so an
// absent id can be told apart from a successful delete.
func (s *Store) Delete(ctx context.Context, id int64) error {
	query := url.Values{}
	query.Set("id", "eq."+strconv.FormatInt(id, 10))

	var rows []row
	if err := s.do(ctx, http.MethodDelete, query, nil, &rows); err != nil {
		return apperrors.Mark(apperrors.ErrDeleteFailed, err)
	}
	if len(rows) == 0 {
		return apperrors.NotFound(id)
	}

	return nil
}

func (s *Store) do(ctx context.Context, method string, query url.Values, body interface{}, out interface{}) error {
	endpoint := s.endpoint
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}

	req.Header.Set("apikey", s.key)
	req.Header.Set("Authorization", "Bearer "+s.key)
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if method != http.MethodGet {
		req.Header.Set("Prefer", "return=representation")
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return apperrors.Mark(apperrors.ErrRequestFailed, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return apperrors.Mark(apperrors.ErrResponseInvalid, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		apiErr := &APIError{StatusCode: resp.StatusCode}
		if json.Unmarshal(data, apiErr) != nil || apiErr.Message == "" {
			apiErr.Message = strings.TrimSpace(string(data))
			if apiErr.Message == "" {
				apiErr.Message = http.StatusText(resp.StatusCode)
			}
		}
		return apiErr
	}

	if out == nil || len(bytes.TrimSpace(data)) == 0 {
		return nil
	}

	if err := json.Unmarshal(data, out); err != nil {
		return apperrors.Mark(apperrors.ErrResponseInvalid, err)
	}

	return nil
}
