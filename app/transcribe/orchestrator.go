package transcribe

import (
	"context"
	"log/slog"
	"strings"

	"github.com/peekpost/peekpost/app/apperr"
	"github.com/peekpost/peekpost/app/cfg"
)

type Backend interface {
	Transcribe(ctx context.Context, apiKey string, audioPath string) (string, error)
}

var _ Backend = (*DeepgramClient)(nil)

// Orchestrator walks the credential pool in order and returns the first
// non-empty transcript. Attempts are sequential on purpose: parallel calls
// would multiply billed usage on a backend that often succeeds on the
// first key.
type Orchestrator struct {
	backend Backend
	pool    []string
}

func NewOrchestrator(backend Backend) *Orchestrator {
	c := cfg.Get()

	return &Orchestrator{
		backend: backend,
		pool:    BuildCredentialPool(c.DeepgramAPIKey, c.DeepgramAPIKeys, c.DeepgramAPIKeyBatch),
	}
}

func (o *Orchestrator) Run(ctx context.Context, audioPath string) (string, error) {
	if len(o.pool) == 0 {
		return "", apperr.New(apperr.KindTranscriptionFailed, "No transcription credentials configured")
	}

	for i, key := range o.pool {
		transcript, err := o.backend.Transcribe(ctx, key, audioPath)
		if err != nil {
			slog.Warn("Transcription attempt failed", "credential_index", i, "error", err)
			continue
		}

		transcript = strings.TrimSpace(transcript)
		if transcript == "" {
			slog.Warn("Transcription attempt returned empty transcript", "credential_index", i)
			continue
		}

		slog.Info("Transcription succeeded", "credential_index", i, "length", len(transcript))
		return transcript, nil
	}

	return "", apperr.New(apperr.KindTranscriptionFailed, "All transcription credentials exhausted")
}
