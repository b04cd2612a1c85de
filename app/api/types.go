package api

import (
	"context"

	"github.com/peekpost/peekpost/app/instagram"
	"github.com/peekpost/peekpost/app/transcribe"
	"github.com/peekpost/peekpost/app/youtube"
)

type ReelScraper interface {
	Run(ctx context.Context, url string) (*instagram.Post, error)
}

type MetadataExtractor interface {
	GetMetadata(ctx context.Context, url string) (*youtube.Metadata, error)
}

type AudioDownloader interface {
	DownloadAudio(ctx context.Context, url string, destDir string) (string, error)
}

type Transcriber interface {
	Run(ctx context.Context, audioPath string) (string, error)
}

var _ ReelScraper = (*instagram.Scraper)(nil)
var _ MetadataExtractor = (*youtube.Extractor)(nil)
var _ AudioDownloader = (*youtube.Downloader)(nil)
var _ Transcriber = (*transcribe.Orchestrator)(nil)

type Handler struct {
	scraper     ReelScraper
	extractor   MetadataExtractor
	downloader  AudioDownloader
	transcriber Transcriber
}
