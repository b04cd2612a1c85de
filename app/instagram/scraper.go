package instagram

import (
	"context"
	"log/slog"
)

type rawFetcher interface {
	FetchRaw(ctx context.Context, shortcode string) ([]byte, error)
}

var _ rawFetcher = (*Client)(nil)

// Scraper ties the pipeline together: URL -> shortcode -> raw fetch ->
// normalized post.
type Scraper struct {
	client     rawFetcher
	normalizer *Normalizer
}

func NewScraper(client *Client) *Scraper {
	return &Scraper{
		client:     client,
		normalizer: NewNormalizer(),
	}
}

func (s *Scraper) Run(ctx context.Context, rawURL string) (*Post, error) {
	shortcode, err := ExtractShortcode(rawURL)
	if err != nil {
		return nil, err
	}

	data, err := s.client.FetchRaw(ctx, shortcode)
	if err != nil {
		return nil, err
	}

	post, err := s.normalizer.Run(data)
	if err != nil {
		return nil, err
	}

	slog.Info("Reel scraped",
		"shortcode", shortcode,
		"videos", len(post.VideoURLs),
		"thumbnails", len(post.ThumbnailURLs),
		"has_audio_url", post.AudioURL != nil)

	return post, nil
}
