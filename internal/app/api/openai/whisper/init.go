package whisper

import (
	"speech2text/internal/app/api/openai"
	"speech2text/internal/app/api/provider"
	apperrors "speech2text/internal/app/errors"
	"speech2text/internal/config"
)

func init() {
	provider.Register(config.ProviderOpenAI, createOpenAITranscriber)
}

func createOpenAITranscriber(cfg config.TranscriptionConfig) (provider.Transcriber, error) {
	if cfg.OpenAIAPIKey == "" {
		return nil, apperrors.Wrap(apperrors.ErrMissingAPIKey, "OPENAI_API_KEY")
	}
	return NewRemoteTranscriber(openai.NewClient(cfg.OpenAIAPIKey, cfg.OpenAIBaseURL, cfg.Timeout())), nil
}
