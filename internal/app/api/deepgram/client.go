package deepgram

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

	"speech2text/internal/app/api/provider"
	apperrors "speech2text/internal/app/errors"
)

const (
	providerName   = "deepgram"
	defaultBaseURL = "https://api.deepgram.com"
)

// Config configures the Deepgram pre-recorded transcription client
type Config struct {
	APIKey  string
	BaseURL string
	// Timeout of zero means the call may run as long as the vendor needs.
	Timeout time.Duration
}

// Client calls Deepgram's pre-recorded /v1/listen endpoint
type Client struct {
	config Config
	client *http.Client
}

// ListenResponse is the subset of the /v1/listen response we read
type ListenResponse struct {
	Metadata struct {
		RequestID string  `json:"request_id"`
		Duration  float64 `json:"duration"`
		Channels  int     `json:"channels"`
	} `json:"metadata"`
	Results *struct {
		Channels []Channel `json:"channels"`
	} `json:"results"`
}

// Channel holds the alternatives recognised for one audio channel
type Channel struct {
	Alternatives []Alternative `json:"alternatives"`
}

// Alternative is one candidate transcript
type Alternative struct {
	Transcript string  `json:"transcript"`
	Confidence float64 `json:"confidence"`
	Words      []Word  `json:"words"`
}

// Word carries word-level timing and, with diarization, the speaker index
type Word struct {
	Word           string  `json:"word"`
	Start          float64 `json:"start"`
	End            float64 `json:"end"`
	Confidence     float64 `json:"confidence"`
	Speaker        *int    `json:"speaker,omitempty"`
	PunctuatedWord string  `json:"punctuated_word,omitempty"`
}

type errorBody struct {
	ErrCode string `json:"err_code"`
	ErrMsg  string `json:"err_msg"`
}

// NewClient creates a Deepgram client
func NewClient(config Config) *Client {
	if config.BaseURL == "" {
		config.BaseURL = defaultBaseURL
	}
	config.BaseURL = strings.TrimRight(config.BaseURL, "/")

	return &Client{
		config: config,
		client: &http.Client{Timeout: config.Timeout},
	}
}

// Name implements provider.Transcriber
func (c *Client) Name() string {
	return providerName
}

// Transcribe sends the audio buffer to Deepgram and returns the first
// channel's first alternative.
func (c *Client) Transcribe(ctx context.Context, req *provider.TranscriptionRequest) (*provider.TranscriptionResponse, error) {
	startTime := time.Now()

	if len(req.Audio) == 0 {
		return nil, &provider.TranscriptionError{
			Code:     "invalid_input",
			Message:  apperrors.ErrEmptyAudio.Error(),
			Provider: providerName,
		}
	}

	opts := req.Options
	if opts.Model == "" {
		opts = provider.DefaultOptions()
	}

	httpReq, err := c.createHTTPRequest(ctx, req, opts)
	if err != nil {
		return nil, err
	}

	resp, err := c.client.Do(httpReq)
	if err != nil {
		return nil, &provider.TranscriptionError{
			Code:      "network_error",
			Message:   fmt.Sprintf("failed to call Deepgram API: %v", err),
			Provider:  providerName,
			Retryable: true,
		}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, handleHTTPError(resp)
	}

	var listen ListenResponse
	if err := json.NewDecoder(resp.Body).Decode(&listen); err != nil {
		return nil, &provider.TranscriptionError{
			Code:     "response_parse_error",
			Message:  fmt.Sprintf("failed to parse API response: %v", err),
			Provider: providerName,
		}
	}

	response := &provider.TranscriptionResponse{
		RequestID:      listen.Metadata.RequestID,
		Duration:       time.Duration(listen.Metadata.Duration * float64(time.Second)),
		ModelUsed:      opts.Model,
		ProcessingTime: time.Since(startTime),
	}

	if alt, ok := listen.firstAlternative(); ok {
		response.Text = alt.Transcript
		response.Confidence = alt.Confidence
		response.Words = convertWords(alt.Words)
	}

	return response, nil
}

func (r *ListenResponse) firstAlternative() (Alternative, bool) {
	if r.Results == nil || len(r.Results.Channels) == 0 {
		return Alternative{}, false
	}
	channel := r.Results.Channels[0]
	if len(channel.Alternatives) == 0 {
		return Alternative{}, false
	}
	return channel.Alternatives[0], true
}

func (c *Client) createHTTPRequest(ctx context.Context, req *provider.TranscriptionRequest, opts provider.Options) (*http.Request, error) {
	query := url.Values{}
	query.Set("model", opts.Model)
	if opts.Language != "" {
		query.Set("language", opts.Language)
	}
	query.Set("punctuate", strconv.FormatBool(opts.Punctuate))
	query.Set("diarize", strconv.FormatBool(opts.Diarize))
	query.Set("smart_format", strconv.FormatBool(opts.SmartFormat))
	query.Set("utterances", strconv.FormatBool(opts.Utterances))

	endpoint := fmt.Sprintf("%s/v1/listen?%s", c.config.BaseURL, query.Encode())
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(req.Audio))
	if err != nil {
		return nil, &provider.TranscriptionError{
			Code:     "request_creation_error",
			Message:  fmt.Sprintf("failed to create HTTP request: %v", err),
			Provider: providerName,
		}
	}

	contentType := req.MimeType
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	httpReq.Header.Set("Content-Type", contentType)
	httpReq.Header.Set("Authorization", "Token "+c.config.APIKey)
	httpReq.Header.Set("Accept", "application/json")
	httpReq.Header.Set("User-Agent", "speech2text/1.0")

	return httpReq, nil
}

func handleHTTPError(resp *http.Response) error {
	body, _ := io.ReadAll(io.LimitReader(resp.Body, 64*1024))

	message := strings.TrimSpace(string(body))
	var parsed errorBody
	if json.Unmarshal(body, &parsed) == nil && parsed.ErrMsg != "" {
		message = parsed.ErrMsg
	}

	te := &provider.TranscriptionError{
		Message:    message,
		Provider:   providerName,
		StatusCode: resp.StatusCode,
	}

	switch resp.StatusCode {
	case http.StatusUnauthorized, http.StatusForbidden:
		te.Code = "authentication_failed"
		if te.Message == "" {
			te.Message = "Deepgram API key is invalid or missing"
		}
	case http.StatusPaymentRequired:
		te.Code = "insufficient_credits"
	case http.StatusTooManyRequests:
		te.Code = "rate_limit_exceeded"
		te.Retryable = true
	case http.StatusRequestEntityTooLarge:
		te.Code = "file_too_large"
	case http.StatusBadRequest, http.StatusUnsupportedMediaType:
		te.Code = "invalid_request"
	case http.StatusInternalServerError, http.StatusBadGateway, http.StatusServiceUnavailable, http.StatusGatewayTimeout:
		te.Code = "server_error"
		te.Retryable = true
	default:
		te.Code = "unknown_error"
	}

	if te.Message == "" {
		te.Message = http.StatusText(resp.StatusCode)
	}

	return te
}

func convertWords(words []Word) []provider.TranscriptionWord {
	if len(words) == 0 {
		return nil
	}

	out := make([]provider.TranscriptionWord, len(words))
	for i, w := range words {
		out[i] = provider.TranscriptionWord{
			Word:           w.Word,
			PunctuatedWord: w.PunctuatedWord,
			Start:          w.Start,
			End:            w.End,
			Confidence:     w.Confidence,
			Speaker:        w.Speaker,
		}
	}
	return out
}
