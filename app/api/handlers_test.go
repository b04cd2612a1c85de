package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/peekpost/peekpost/app/apperr"
	"github.com/peekpost/peekpost/app/instagram"
	"github.com/peekpost/peekpost/app/youtube"
)

type stubScraper struct {
	post *instagram.Post
	err  error
}

func (s *stubScraper) Run(_ context.Context, _ string) (*instagram.Post, error) {
	return s.post, s.err
}

type stubExtractor struct {
	meta *youtube.Metadata
	err  error
}

func (s *stubExtractor) GetMetadata(_ context.Context, _ string) (*youtube.Metadata, error) {
	return s.meta, s.err
}

type stubDownloader struct {
	err error
}

func (s *stubDownloader) DownloadAudio(_ context.Context, _ string, destDir string) (string, error) {
	if s.err != nil {
		return "", s.err
	}
	path := filepath.Join(destDir, "dQw4w9WgXcQ.mp3")
	if err := os.WriteFile(path, []byte("mp3 bytes"), 0644); err != nil {
		return "", err
	}
	return path, nil
}

type stubTranscriber struct {
	transcript string
	err        error
}

func (s *stubTranscriber) Run(_ context.Context, _ string) (string, error) {
	return s.transcript, s.err
}

func newTestServer(h *Handler) *httptest.Server {
	return httptest.NewServer(NewServer(h))
}

func postJSON(t *testing.T, url string, body string) (*http.Response, map[string]any) {
	t.Helper()

	resp, err := http.Post(url, "application/json", strings.NewReader(body))
	if err != nil {
		t.Fatalf("Expected request to succeed, got error: %v", err)
	}
	defer resp.Body.Close()

	var decoded map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		t.Fatalf("Expected JSON response body, got decode error: %v", err)
	}

	return resp, decoded
}

func TestGetReel(t *testing.T) {
	post := &instagram.Post{
		VideoURLs:     []string{"https://cdn.example.com/v720.mp4"},
		ThumbnailURLs: []string{"https://cdn.example.com/t720.jpg"},
	}
	post.PostInfo.HasAudio = true

	srv := newTestServer(NewHandler(&stubScraper{post: post}, &stubExtractor{}, &stubDownloader{}, &stubTranscriber{}))
	defer srv.Close()

	resp, body := postJSON(t, srv.URL+"/api/reel", `{"url": "https://www.instagram.com/reel/ABC123/"}`)

	if resp.StatusCode != http.StatusOK {
		t.Errorf("Expected status 200, got %d", resp.StatusCode)
	}

	if body["success"] != true {
		t.Errorf("Expected success true, got %v", body["success"])
	}

	data, ok := body["data"].(map[string]any)
	if !ok {
		t.Fatalf("Expected data object, got %v", body["data"])
	}

	urls, ok := data["video_urls"].([]any)
	if !ok || len(urls) != 1 {
		t.Errorf("Expected one video URL, got %v", data["video_urls"])
	}
}

func TestGetReelMissingURL(t *testing.T) {
	srv := newTestServer(NewHandler(&stubScraper{}, &stubExtractor{}, &stubDownloader{}, &stubTranscriber{}))
	defer srv.Close()

	cases := []string{
		`{}`,
		`{"url": ""}`,
		`not json`,
	}

	for _, body := range cases {
		resp, decoded := postJSON(t, srv.URL+"/api/reel", body)

		if resp.StatusCode != http.StatusBadRequest {
			t.Errorf("Expected status 400 for body %q, got %d", body, resp.StatusCode)
		}

		if decoded["error"] != "Missing 'url' in request body" {
			t.Errorf("Expected missing-url error for body %q, got %v", body, decoded["error"])
		}
	}
}

func TestGetReelErrorMapping(t *testing.T) {
	cases := []struct {
		name           string
		err            error
		expectedStatus int
		expectedError  string
	}{
		{
			name:           "rate limited",
			err:            apperr.New(apperr.KindRateLimited, "Rate limited. Try again later."),
			expectedStatus: http.StatusBadRequest,
			expectedError:  "Rate limited. Try again later.",
		},
		{
			name:           "not found",
			err:            apperr.New(apperr.KindContentUnavailable, "Reel not found or private."),
			expectedStatus: http.StatusBadRequest,
			expectedError:  "Reel not found or private.",
		},
		{
			name:           "timeout",
			err:            apperr.New(apperr.KindTimeout, "Request timeout"),
			expectedStatus: http.StatusBadRequest,
			expectedError:  "Request timeout",
		},
		{
			name:           "internal",
			err:            apperr.New(apperr.KindInternal, "Something broke"),
			expectedStatus: http.StatusInternalServerError,
			expectedError:  "Something broke",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			srv := newTestServer(NewHandler(&stubScraper{err: tc.err}, &stubExtractor{}, &stubDownloader{}, &stubTranscriber{}))
			defer srv.Close()

			resp, body := postJSON(t, srv.URL+"/api/reel", `{"url": "https://www.instagram.com/reel/ABC123/"}`)

			if resp.StatusCode != tc.expectedStatus {
				t.Errorf("Expected status %d, got %d", tc.expectedStatus, resp.StatusCode)
			}

			if body["error"] != tc.expectedError {
				t.Errorf("Expected error %q, got %v", tc.expectedError, body["error"])
			}
		})
	}
}

func TestExtractYouTube(t *testing.T) {
	duration := 213
	thumb := "https://i.ytimg.com/vi/dQw4w9WgXcQ/hq720.jpg"
	meta := &youtube.Metadata{
		VideoID:         "dQw4w9WgXcQ",
		Title:           "Test Video",
		DurationSeconds: &duration,
		ThumbnailURL:    &thumb,
	}

	srv := newTestServer(NewHandler(&stubScraper{}, &stubExtractor{meta: meta}, &stubDownloader{}, &stubTranscriber{}))
	defer srv.Close()

	resp, body := postJSON(t, srv.URL+"/api/youtube/extract", `{"url": "https://youtu.be/dQw4w9WgXcQ"}`)

	if resp.StatusCode != http.StatusOK {
		t.Errorf("Expected status 200, got %d", resp.StatusCode)
	}

	data, ok := body["data"].(map[string]any)
	if !ok {
		t.Fatalf("Expected data object, got %v", body["data"])
	}

	if data["video_id"] != "dQw4w9WgXcQ" {
		t.Errorf("Expected video_id dQw4w9WgXcQ, got %v", data["video_id"])
	}

	if data["title"] != "Test Video" {
		t.Errorf("Expected title Test Video, got %v", data["title"])
	}
}

func TestExtractYouTubeUnavailable(t *testing.T) {
	err := apperr.New(apperr.KindContentUnavailable, "Video unavailable")
	srv := newTestServer(NewHandler(&stubScraper{}, &stubExtractor{err: err}, &stubDownloader{}, &stubTranscriber{}))
	defer srv.Close()

	resp, body := postJSON(t, srv.URL+"/api/youtube/extract", `{"url": "https://youtu.be/dQw4w9WgXcQ"}`)

	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("Expected status 400, got %d", resp.StatusCode)
	}

	if body["error"] != "Video unavailable" {
		t.Errorf("Expected unavailable error, got %v", body["error"])
	}
}

func TestDownloadYouTubeAudio(t *testing.T) {
	srv := newTestServer(NewHandler(&stubScraper{}, &stubExtractor{}, &stubDownloader{}, &stubTranscriber{}))
	defer srv.Close()

	resp, err := http.Post(srv.URL+"/api/youtube/download-audio", "application/json",
		strings.NewReader(`{"url": "https://youtu.be/dQw4w9WgXcQ"}`))
	if err != nil {
		t.Fatalf("Expected request to succeed, got error: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Errorf("Expected status 200, got %d", resp.StatusCode)
	}

	if ct := resp.Header.Get("Content-Type"); ct != "audio/mpeg" {
		t.Errorf("Expected Content-Type audio/mpeg, got %q", ct)
	}

	disposition := resp.Header.Get("Content-Disposition")
	if !strings.Contains(disposition, "attachment") || !strings.Contains(disposition, "audio_") ||
		!strings.Contains(disposition, ".mp3") {
		t.Errorf("Expected timestamped mp3 attachment disposition, got %q", disposition)
	}
}

func TestTranscribeYouTube(t *testing.T) {
	srv := newTestServer(NewHandler(&stubScraper{}, &stubExtractor{}, &stubDownloader{},
		&stubTranscriber{transcript: "hello world"}))
	defer srv.Close()

	resp, body := postJSON(t, srv.URL+"/api/youtube/transcribe", `{"url": "https://youtu.be/dQw4w9WgXcQ"}`)

	if resp.StatusCode != http.StatusOK {
		t.Errorf("Expected status 200, got %d", resp.StatusCode)
	}

	if body["success"] != true {
		t.Errorf("Expected success true, got %v", body["success"])
	}

	if body["transcript"] != "hello world" {
		t.Errorf("Expected transcript hello world, got %v", body["transcript"])
	}
}

func TestTranscribeYouTubeFailure(t *testing.T) {
	err := apperr.New(apperr.KindTranscriptionFailed, "All transcription credentials exhausted")
	srv := newTestServer(NewHandler(&stubScraper{}, &stubExtractor{}, &stubDownloader{},
		&stubTranscriber{err: err}))
	defer srv.Close()

	resp, body := postJSON(t, srv.URL+"/api/youtube/transcribe", `{"url": "https://youtu.be/dQw4w9WgXcQ"}`)

	if resp.StatusCode != http.StatusInternalServerError {
		t.Errorf("Expected status 500, got %d", resp.StatusCode)
	}

	if body["success"] != false {
		t.Errorf("Expected success false, got %v", body["success"])
	}

	if body["error"] != "All transcription credentials exhausted" {
		t.Errorf("Expected exhaustion error, got %v", body["error"])
	}
}

func TestTranscribeYouTubeDownloadFailure(t *testing.T) {
	err := apperr.New(apperr.KindContentUnavailable, "Video unavailable")
	srv := newTestServer(NewHandler(&stubScraper{}, &stubExtractor{}, &stubDownloader{err: err},
		&stubTranscriber{transcript: "never reached"}))
	defer srv.Close()

	resp, body := postJSON(t, srv.URL+"/api/youtube/transcribe", `{"url": "https://youtu.be/dQw4w9WgXcQ"}`)

	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("Expected status 400, got %d", resp.StatusCode)
	}

	if body["error"] != "Video unavailable" {
		t.Errorf("Expected download error, got %v", body["error"])
	}
}

func TestGetHealth(t *testing.T) {
	srv := newTestServer(NewHandler(&stubScraper{}, &stubExtractor{}, &stubDownloader{}, &stubTranscriber{}))
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/api/health")
	if err != nil {
		t.Fatalf("Expected request to succeed, got error: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Errorf("Expected status 200, got %d", resp.StatusCode)
	}

	var body map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("Expected JSON response body, got decode error: %v", err)
	}

	if body["status"] != "healthy" {
		t.Errorf("Expected status healthy, got %v", body["status"])
	}
}
