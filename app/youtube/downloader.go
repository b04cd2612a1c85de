package youtube

import (
	"context"
	"log/slog"
	"path/filepath"

	"github.com/peekpost/peekpost/app/apperr"
	"github.com/peekpost/peekpost/app/cfg"
)

// Downloader fetches the audio track of a video as mp3 into a caller-owned
// directory. The caller is responsible for removing the directory.
type Downloader struct {
	runner *Runner
}

func NewDownloader() *Downloader {
	return &Downloader{runner: NewRunner(cfg.Get().YtdlpPath)}
}

func (d *Downloader) DownloadAudio(ctx context.Context, rawURL string, destDir string) (string, error) {
	normalized, err := NormalizeURL(rawURL)
	if err != nil {
		return "", err
	}

	timeoutCtx, cancel := context.WithTimeout(ctx, downloadTimeout)
	defer cancel()

	tmpl := filepath.Join(destDir, "%(id)s.%(ext)s")
	args := []string{
		"-x",
		"--audio-format", "mp3",
		"--no-playlist",
		"--no-warnings",
		"-o", tmpl,
		normalized,
	}

	_, stderr, err := d.runner.run(timeoutCtx, args...)
	if err != nil {
		return "", classifyExecFailure(timeoutCtx, "Audio download", normalized, args, stderr, err)
	}

	matches, err := filepath.Glob(filepath.Join(destDir, "*.mp3"))
	if err != nil || len(matches) == 0 {
		return "", apperr.New(apperr.KindExtraction, "Audio download produced no file")
	}

	slog.Info("Audio downloaded", "url", normalized, "path", matches[0])

	return matches[0], nil
}
