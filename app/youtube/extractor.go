package youtube

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/peekpost/peekpost/app/apperr"
	"github.com/peekpost/peekpost/app/cfg"
)

const (
	metadataTimeout = 30 * time.Second
	downloadTimeout = 60 * time.Second

	// Placeholder when the extractor reports no title at all.
	defaultTitle = "Untitled Video"
)

// Metadata is the stable metadata envelope for one video.
type Metadata struct {
	VideoID         string   `json:"video_id"`
	Title           string   `json:"title"`
	DurationSeconds *float64 `json:"duration_seconds,omitempty"`
	ThumbnailURL    *string  `json:"thumbnail_url,omitempty"`
}

// Extractor fetches metadata without downloading media.
type Extractor struct {
	runner *Runner
}

func NewExtractor() *Extractor {
	return &Extractor{runner: NewRunner(cfg.Get().YtdlpPath)}
}

func (e *Extractor) GetMetadata(ctx context.Context, rawURL string) (*Metadata, error) {
	normalized, err := NormalizeURL(rawURL)
	if err != nil {
		return nil, err
	}

	timeoutCtx, cancel := context.WithTimeout(ctx, metadataTimeout)
	defer cancel()

	args := []string{
		"--dump-single-json",
		"--skip-download",
		"--no-playlist",
		"--no-warnings",
		"--socket-timeout", "30",
		normalized,
	}

	stdout, stderr, err := e.runner.run(timeoutCtx, args...)
	if err != nil {
		return nil, classifyExecFailure(timeoutCtx, "Metadata extraction", normalized, args, stderr, err)
	}

	var info struct {
		ID        string   `json:"id"`
		Title     string   `json:"title"`
		Duration  *float64 `json:"duration"`
		Thumbnail *string  `json:"thumbnail"`
	}
	if err := json.Unmarshal(bytesTrim(stdout), &info); err != nil {
		return nil, apperr.Wrap(apperr.KindExtraction, "Failed to parse extractor output", err)
	}

	meta := &Metadata{
		VideoID:         info.ID,
		Title:           info.Title,
		DurationSeconds: info.Duration,
		ThumbnailURL:    info.Thumbnail,
	}
	if strings.TrimSpace(meta.Title) == "" {
		meta.Title = defaultTitle
	}

	slog.Info("Metadata extracted", "video_id", meta.VideoID, "title", meta.Title)

	return meta, nil
}

func bytesTrim(b []byte) []byte {
	return []byte(strings.TrimSpace(string(b)))
}

// classifyExecFailure maps yt-dlp failure output onto the closed error
// kinds: content removed/private/blocked, unusable URL, timeout, or a
// generic extraction failure.
func classifyExecFailure(ctx context.Context, operation string, url string, args []string, stderr []byte, cause error) error {
	if errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return apperr.Newf(apperr.KindTimeout, "%s timed out", operation)
	}

	wrapped := wrapExecError("yt-dlp", args, stderr, cause)
	message := strings.ToLower(string(stderr))

	for _, marker := range []string{
		"video unavailable",
		"private video",
		"has been removed",
		"not available in your country",
		"account associated with this video has been terminated",
	} {
		if strings.Contains(message, marker) {
			return apperr.Wrap(apperr.KindContentUnavailable, "Video unavailable, private, or region-blocked", wrapped)
		}
	}

	for _, marker := range []string{
		"is not a valid url",
		"unsupported url",
	} {
		if strings.Contains(message, marker) {
			return apperr.Wrap(apperr.KindInvalidURL, "Unsupported or invalid URL", wrapped)
		}
	}

	return apperr.Wrap(apperr.KindExtraction, operation+" failed", wrapped)
}
