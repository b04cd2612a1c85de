package cfg

import (
	"cmp"
	"fmt"
	"time"

	"github.com/jessevdk/go-flags"
)

// Version is set at build time via -ldflags
var Version = "dev"

func GetVersion() string {
	return cmp.Or(Version, "unknown")
}

type rawCfg struct {
	// Application configuration
	Port      string `long:"port" env:"PORT" default:"8080" description:"HTTP server port"`
	UserAgent string `long:"user-agent" env:"USER_AGENT" default:"Mozilla/5.0 (Windows NT 10.0; Win64; x64)" description:"User agent string for upstream HTTP requests"`

	// Instagram upstream constants
	InstagramDocID     string `long:"instagram-doc-id" env:"INSTAGRAM_DOC_ID" default:"24368985919464652" description:"GraphQL document ID for the shortcode web info query"`
	InstagramAppID     string `long:"instagram-app-id" env:"INSTAGRAM_APP_ID" default:"936619743392459" description:"x-ig-app-id header value"`
	InstagramCSRFToken string `long:"instagram-csrf-token" env:"INSTAGRAM_CSRF_TOKEN" default:"UNzTaJyJwVBCzd50o74UbpC7nrEdNWMd" description:"x-csrftoken header value"`

	// YouTube extraction
	YtdlpPath string `long:"ytdlp-path" env:"YTDLP_PATH" default:"yt-dlp" description:"Path to the yt-dlp executable"`

	// Transcription credentials
	DeepgramAPIKey      string `long:"deepgram-api-key" env:"DEEPGRAM_API_KEY" description:"Primary Deepgram API key"`
	DeepgramAPIKey1     string `long:"deepgram-api-key-1" env:"DEEPGRAM_API_KEY_1" description:"Fallback Deepgram API key #1"`
	DeepgramAPIKey2     string `long:"deepgram-api-key-2" env:"DEEPGRAM_API_KEY_2" description:"Fallback Deepgram API key #2"`
	DeepgramAPIKey3     string `long:"deepgram-api-key-3" env:"DEEPGRAM_API_KEY_3" description:"Fallback Deepgram API key #3"`
	DeepgramAPIKey4     string `long:"deepgram-api-key-4" env:"DEEPGRAM_API_KEY_4" description:"Fallback Deepgram API key #4"`
	DeepgramAPIKey5     string `long:"deepgram-api-key-5" env:"DEEPGRAM_API_KEY_5" description:"Fallback Deepgram API key #5"`
	DeepgramAPIKeyBatch string `long:"deepgram-api-keys" env:"DEEPGRAM_API_KEYS" description:"Comma-separated batch of Deepgram API keys"`

	// Monitoring
	SentryDSN string `long:"sentry-dsn" env:"SENTRY_DSN" description:"Sentry DSN for error reporting (optional)"`

	// Application metadata
	Timezone string `long:"timezone" env:"TZ" default:"UTC" description:"Timezone for timestamps (e.g., UTC, America/New_York)"`
	Debug    bool   `long:"debug" env:"DEBUG" description:"Enable debug logging"`
}

var globalCfg *Cfg

func Load() (*Cfg, error) {
	var raw rawCfg

	parser := flags.NewParser(&raw, flags.Default)

	if _, err := parser.Parse(); err != nil {
		if flagsErr, ok := err.(*flags.Error); ok {
			if flagsErr.Type == flags.ErrHelp {
				return nil, nil
			}
		}
		return nil, fmt.Errorf("failed to parse configuration: %w", err)
	}

	cfg := &Cfg{
		Port:               raw.Port,
		UserAgent:          raw.UserAgent,
		InstagramDocID:     raw.InstagramDocID,
		InstagramAppID:     raw.InstagramAppID,
		InstagramCSRFToken: raw.InstagramCSRFToken,
		YtdlpPath:          raw.YtdlpPath,
		DeepgramAPIKey:     raw.DeepgramAPIKey,
		DeepgramAPIKeys: []string{
			raw.DeepgramAPIKey1,
			raw.DeepgramAPIKey2,
			raw.DeepgramAPIKey3,
			raw.DeepgramAPIKey4,
			raw.DeepgramAPIKey5,
		},
		DeepgramAPIKeyBatch: raw.DeepgramAPIKeyBatch,
		SentryDSN:           raw.SentryDSN,
		Timezone:            raw.Timezone,
		Debug:               raw.Debug,
		Version:             GetVersion(),
	}

	if err := applyTimezone(cfg.Timezone); err != nil {
		fmt.Printf("Warning: Invalid timezone '%s', using system default: %v\n", cfg.Timezone, err)
	}

	globalCfg = cfg

	return cfg, nil
}

func Get() *Cfg {
	if globalCfg == nil {
		panic("configuration not loaded - call cfg.Load() first")
	}
	return globalCfg
}

func applyTimezone(timezone string) error {
	if timezone != "" {
		if loc, err := time.LoadLocation(timezone); err != nil {
			return err
		} else {
			time.Local = loc
		}
	}
	return nil
}
