package transcribe

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"
)

const defaultListenURL = "https://api.deepgram.com/v1/listen"

// DeepgramClient calls the prerecorded transcription endpoint with
// punctuation enabled. The API key is passed per call so one client can
// serve the whole credential pool.
type DeepgramClient struct {
	listenURL string
	http      *http.Client
}

func NewDeepgramClient() *DeepgramClient {
	return &DeepgramClient{
		listenURL: defaultListenURL,
		http: &http.Client{
			Timeout: 60 * time.Second,
		},
	}
}

type listenResponse struct {
	Results struct {
		Channels []struct {
			Alternatives []struct {
				Transcript string `json:"transcript"`
			} `json:"alternatives"`
		} `json:"channels"`
	} `json:"results"`
}

func (c *DeepgramClient) Transcribe(ctx context.Context, apiKey string, audioPath string) (string, error) {
	audio, err := os.Open(audioPath)
	if err != nil {
		return "", fmt.Errorf("failed to open audio file: %w", err)
	}
	defer audio.Close()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.listenURL+"?punctuate=true", audio)
	if err != nil {
		return "", err
	}
	req.Header.Set("Authorization", "Token "+apiKey)
	req.Header.Set("Content-Type", "audio/mpeg")

	resp, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("transcription request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 16*1024))
		return "", fmt.Errorf("transcription backend status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var out listenResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("failed to decode transcription response: %w", err)
	}

	if len(out.Results.Channels) == 0 || len(out.Results.Channels[0].Alternatives) == 0 {
		return "", fmt.Errorf("transcription response carries no alternatives")
	}

	return out.Results.Channels[0].Alternatives[0].Transcript, nil
}
