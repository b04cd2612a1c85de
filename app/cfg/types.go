package cfg

type Cfg struct {
	// Application configuration
	Port      string
	UserAgent string

	// Instagram upstream constants (they rot, so they stay overridable)
	InstagramDocID     string
	InstagramAppID     string
	InstagramCSRFToken string

	// YouTube extraction
	YtdlpPath string

	// Transcription credentials
	DeepgramAPIKey      string
	DeepgramAPIKeys     []string
	DeepgramAPIKeyBatch string

	// Monitoring
	SentryDSN string

	// Application metadata
	Timezone string
	Debug    bool
	Version  string
}
