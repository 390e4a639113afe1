package deepgram

import (
	"speech2text/internal/app/api/provider"
	apperrors "speech2text/internal/app/errors"
	"speech2text/internal/config"
)

func init() {
	provider.Register(config.ProviderDeepgram, createDeepgramTranscriber)
}

func createDeepgramTranscriber(cfg config.TranscriptionConfig) (provider.Transcriber, error) {
	if cfg.DeepgramAPIKey == "" {
		return nil, apperrors.Wrap(apperrors.ErrMissingAPIKey, "DEEPGRAM_API_KEY")
	}

	return NewClient(Config{
		APIKey:  cfg.DeepgramAPIKey,
		BaseURL: cfg.DeepgramBaseURL,
		Timeout: cfg.Timeout(),
	}), nil
}
