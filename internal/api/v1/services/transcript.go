package services

import (
	"bytes"
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"go.uber.org/zap"

	"speech2text/internal/api/errors"
	"speech2text/internal/api/v1/dto"
	"speech2text/internal/app/api/provider"
	apperrors "speech2text/internal/app/errors"
	"speech2text/internal/app/export"
	"speech2text/internal/app/metrics"
	"speech2text/internal/app/model"
	"speech2text/internal/app/repository"
	"speech2text/internal/app/storage"
)

const (
	msgNotAudio         = "File must be an audio file"
	msgDatabaseError    = "Database error"
	msgNotFound         = "Transcript not found"
	msgFetchFailed      = "Failed to fetch transcript"
	msgDeleteFailed     = "Failed to delete transcript"
	msgExportFailed     = "Failed to export transcripts"
	msgCompleted        = "Transcription completed successfully"
	transcriptionFailed = "Transcription failed: "
	transcriptionError  = "Transcription error: "
	previewLength       = 100
)

// TranscriptServiceImpl implements TranscriptService
type TranscriptServiceImpl struct {
	store       repository.TranscriptDAO
	transcriber provider.Transcriber
	archive     storage.Archive
	metrics     *metrics.Metrics
	logger      *zap.Logger
	options     provider.Options
}

// NewTranscriptService creates a new transcript service. archive may be nil
// to disable audio archival.
func NewTranscriptService(
	store repository.TranscriptDAO,
	transcriber provider.Transcriber,
	archive storage.Archive,
	m *metrics.Metrics,
	logger *zap.Logger,
) *TranscriptServiceImpl {
	if m == nil {
		m = metrics.NewNop()
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	return &TranscriptServiceImpl{
		store:       store,
		transcriber: transcriber,
		archive:     archive,
		metrics:     m,
		logger:      logger,
		options:     provider.DefaultOptions(),
	}
}

// Upload creates a placeholder row, transcribes the audio and stores the
// result. Once the content type is accepted the work runs detached from
// the caller's cancellation, so a dropped client cannot strand the row in
// processing.
func (s *TranscriptServiceImpl) Upload(ctx context.Context, in UploadInput) (*dto.UploadResponse, error) {
	if !strings.HasPrefix(in.ContentType, "audio/") {
		return nil, errors.NewBadRequestError(msgNotAudio)
	}

	ctx = context.WithoutCancel(ctx)

	id, err := s.store.CreatePlaceholder(ctx)
	if err == nil && id == 0 {
		err = apperrors.Wrap(apperrors.ErrInsertFailed, "no id returned")
	}
	if err != nil {
		s.logger.Error("Database error", zap.Error(err))
		return nil, errors.NewInternalError(msgDatabaseError)
	}
	s.logger.Info("Created transcript record", zap.Int64("transcript_id", id))

	update, err := s.transcribe(ctx, id, in)
	if err == nil {
		err = s.store.Update(ctx, id, update)
	}
	if err != nil {
		s.recordFailure(ctx, id, err)
		return nil, errors.NewInternalError(transcriptionFailed + err.Error())
	}

	s.metrics.TranscriptOutcomes.WithLabelValues(string(model.StatusCompleted)).Inc()

	return &dto.UploadResponse{
		TranscriptID: id,
		Status:       string(model.StatusCompleted),
		Text:         update.Text,
		Message:      msgCompleted,
	}, nil
}

func (s *TranscriptServiceImpl) transcribe(ctx context.Context, id int64, in UploadInput) (model.TranscriptUpdate, error) {
	if in.Body == nil {
		return model.TranscriptUpdate{}, apperrors.ErrEmptyAudio
	}

	audio, err := readAudio(in)
	if err != nil {
		return model.TranscriptUpdate{}, fmt.Errorf("read upload: %w", err)
	}
	s.logger.Info("Audio file received",
		zap.Int64("transcript_id", id),
		zap.String("filename", in.Filename),
		zap.Int64("declared_bytes", in.Size),
		zap.Int("size_bytes", len(audio)),
	)
	s.metrics.AudioBytes.Observe(float64(len(audio)))

	update := model.TranscriptUpdate{Status: model.StatusCompleted}

	if s.archive != nil {
		url, err := s.archive.Put(ctx, in.Filename, in.ContentType, audio)
		if err != nil {
			s.logger.Warn("Audio archive failed", zap.Int64("transcript_id", id), zap.Error(err))
		} else {
			update.AudioURL = &url
		}
	}

	s.logger.Info("Starting transcription", zap.Int64("transcript_id", id), zap.String("provider", s.transcriber.Name()))

	resp, err := s.transcriber.Transcribe(ctx, &provider.TranscriptionRequest{
		Audio:    audio,
		MimeType: in.ContentType,
		Filename: in.Filename,
		Options:  s.options,
	})
	if err != nil {
		return model.TranscriptUpdate{}, err
	}

	update.Text = resp.Text
	if update.Text == "" {
		update.Text = model.NoSpeechDetected
	}

	s.logger.Info("Transcription completed",
		zap.Int64("transcript_id", id),
		zap.String("preview", preview(update.Text)),
		zap.Float64("confidence", resp.Confidence),
		zap.Duration("processing_time", resp.ProcessingTime),
	)
	if ce := s.logger.Check(zap.DebugLevel, "Word"); ce != nil {
		for _, w := range resp.Words {
			s.logger.Debug("Word",
				zap.Int64("transcript_id", id),
				zap.String("word", w.Word),
				zap.Float64("start", w.Start),
				zap.Float64("end", w.End),
				zap.Float64("confidence", w.Confidence),
			)
		}
	}

	return update, nil
}

// recordFailure marks the row as errored. Its own failure is logged only.
func (s *TranscriptServiceImpl) recordFailure(ctx context.Context, id int64, cause error) {
	s.logger.Error("Transcription failed", zap.Int64("transcript_id", id), zap.Error(cause))
	s.metrics.TranscriptOutcomes.WithLabelValues(string(model.StatusError)).Inc()

	err := s.store.Update(ctx, id, model.TranscriptUpdate{
		Text:   transcriptionError + cause.Error(),
		Status: model.StatusError,
	})
	if err != nil {
		s.logger.Warn("Failed to record transcription error", zap.Int64("transcript_id", id), zap.Error(err))
	}
}

// Get retrieves a transcript by ID
func (s *TranscriptServiceImpl) Get(ctx context.Context, id int64) (*dto.TranscriptResponse, error) {
	t, err := s.store.GetByID(ctx, id)
	if err != nil {
		if stderrors.Is(err, apperrors.ErrNotFound) {
			return nil, errors.NewNotFoundError(msgNotFound)
		}
		s.logger.Error("Error fetching transcript", zap.Int64("transcript_id", id), zap.Error(err))
		return nil, errors.NewInternalError(msgFetchFailed)
	}

	resp := dto.ToTranscriptResponse(t)
	return &resp, nil
}

// List returns every transcript, newest first. A backend failure is logged
// and reported as an empty list, unlike Get which surfaces it.
func (s *TranscriptServiceImpl) List(ctx context.Context) []dto.TranscriptResponse {
	rows, err := s.store.List(ctx)
	if err != nil {
		s.logger.Warn("Error fetching transcripts; returning empty list", zap.Error(err))
		return []dto.TranscriptResponse{}
	}
	return dto.ToTranscriptResponses(rows)
}

// Delete removes a transcript by ID
func (s *TranscriptServiceImpl) Delete(ctx context.Context, id int64) error {
	if err := s.store.Delete(ctx, id); err != nil {
		if stderrors.Is(err, apperrors.ErrNotFound) {
			return errors.NewNotFoundError(msgNotFound)
		}
		s.logger.Error("Error deleting transcript", zap.Int64("transcript_id", id), zap.Error(err))
		return errors.NewInternalError(msgDeleteFailed)
	}

	s.logger.Info("Deleted transcript", zap.Int64("transcript_id", id))
	return nil
}

// Export writes every transcript to w as an xlsx workbook
func (s *TranscriptServiceImpl) Export(ctx context.Context, w io.Writer) error {
	rows, err := s.store.List(ctx)
	if err != nil {
		s.logger.Error("Error exporting transcripts", zap.Error(err))
		return errors.NewInternalError(msgExportFailed)
	}

	if err := export.Write(rows, w); err != nil {
		s.logger.Error("Error writing workbook", zap.Error(err))
		return errors.NewInternalError(msgExportFailed)
	}
	return nil
}

// readAudio buffers the upload, sizing the buffer from the declared part
// size when there is one. The handler caps the request body, so Size is
// bounded.
func readAudio(in UploadInput) ([]byte, error) {
	if in.Size <= 0 {
		return io.ReadAll(in.Body)
	}

	buf := bytes.NewBuffer(make([]byte, 0, in.Size))
	if _, err := buf.ReadFrom(in.Body); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func preview(text string) string {
	if utf8.RuneCountInString(text) <= previewLength {
		return text
	}
	return string([]rune(text)[:previewLength]) + "..."
}
