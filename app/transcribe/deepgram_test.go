package transcribe

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeTestAudio(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "audio.mp3")
	if err := os.WriteFile(path, []byte("mp3data"), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestDeepgramTranscribe(t *testing.T) {
	var gotAuth, gotContentType, gotQuery string

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotContentType = r.Header.Get("Content-Type")
		gotQuery = r.URL.RawQuery
		w.Write([]byte(`{"results": {"channels": [{"alternatives": [{"transcript": "hello there"}]}]}}`))
	}))
	defer server.Close()

	client := &DeepgramClient{listenURL: server.URL, http: &http.Client{Timeout: time.Second}}

	transcript, err := client.Transcribe(context.Background(), "secret-key", writeTestAudio(t))
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}

	if transcript != "hello there" {
		t.Errorf("Expected transcript 'hello there', got %q", transcript)
	}
	if gotAuth != "Token secret-key" {
		t.Errorf("Expected token auth header, got %q", gotAuth)
	}
	if gotContentType != "audio/mpeg" {
		t.Errorf("Expected audio/mpeg content type, got %q", gotContentType)
	}
	if gotQuery != "punctuate=true" {
		t.Errorf("Expected punctuate=true query, got %q", gotQuery)
	}
}

func TestDeepgramTranscribeBackendError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"err_msg": "invalid credentials"}`))
	}))
	defer server.Close()

	client := &DeepgramClient{listenURL: server.URL, http: &http.Client{Timeout: time.Second}}

	_, err := client.Transcribe(context.Background(), "bad-key", writeTestAudio(t))
	if err == nil {
		t.Fatal("Expected error for non-2xx status")
	}
}

func TestDeepgramTranscribeNoAlternatives(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"results": {"channels": []}}`))
	}))
	defer server.Close()

	client := &DeepgramClient{listenURL: server.URL, http: &http.Client{Timeout: time.Second}}

	_, err := client.Transcribe(context.Background(), "key", writeTestAudio(t))
	if err == nil {
		t.Fatal("Expected error when response carries no alternatives")
	}
}

func TestDeepgramTranscribeMissingFile(t *testing.T) {
	client := NewDeepgramClient()

	_, err := client.Transcribe(context.Background(), "key", "/nonexistent/audio.mp3")
	if err == nil {
		t.Fatal("Expected error for missing audio file")
	}
}
