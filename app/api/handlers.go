package api

import (
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/peekpost/peekpost/app/apperr"
	"github.com/peekpost/peekpost/app/monitor"
)

func NewHandler(scraper ReelScraper, extractor MetadataExtractor,
	downloader AudioDownloader, transcriber Transcriber) *Handler {
	return &Handler{
		scraper:     scraper,
		extractor:   extractor,
		downloader:  downloader,
		transcriber: transcriber,
	}
}

type urlRequest struct {
	URL string `json:"url"`
}

func bindURL(c *gin.Context) (string, bool) {
	var req urlRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.URL == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing 'url' in request body"})
		return "", false
	}
	return req.URL, true
}

// statusForKind maps error kinds onto HTTP statuses: client, content,
// rate-limit, and upstream-shape problems are the caller's 400; everything
// unanticipated is a 500.
func statusForKind(kind apperr.Kind) int {
	switch kind {
	case apperr.KindInvalidURL,
		apperr.KindMalformedResponse,
		apperr.KindContentUnavailable,
		apperr.KindRateLimited,
		apperr.KindTimeout,
		apperr.KindExtraction:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func (h *Handler) reportError(c *gin.Context, requestURL string, err error) {
	monitor.Notify(err, requestURL)
	c.JSON(statusForKind(apperr.KindOf(err)), gin.H{"error": apperr.UserMessage(err)})
}

func (h *Handler) GetReel(c *gin.Context) {
	url, ok := bindURL(c)
	if !ok {
		return
	}

	post, err := h.scraper.Run(c.Request.Context(), url)
	if err != nil {
		h.reportError(c, url, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": post})
}

func (h *Handler) ExtractYouTube(c *gin.Context) {
	url, ok := bindURL(c)
	if !ok {
		return
	}

	meta, err := h.extractor.GetMetadata(c.Request.Context(), url)
	if err != nil {
		h.reportError(c, url, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": meta})
}

func (h *Handler) DownloadYouTubeAudio(c *gin.Context) {
	url, ok := bindURL(c)
	if !ok {
		return
	}

	destDir, err := os.MkdirTemp("", "peekpost-audio-*")
	if err != nil {
		h.reportError(c, url, apperr.Wrap(apperr.KindInternal, "Failed to create temporary directory", err))
		return
	}
	defer os.RemoveAll(destDir)

	path, err := h.downloader.DownloadAudio(c.Request.Context(), url, destDir)
	if err != nil {
		h.reportError(c, url, err)
		return
	}

	filename := fmt.Sprintf("audio_%s.mp3", time.Now().Format("20060102_150405"))
	c.Header("Content-Type", "audio/mpeg")
	c.FileAttachment(path, filename)
}

func (h *Handler) TranscribeYouTube(c *gin.Context) {
	url, ok := bindURL(c)
	if !ok {
		return
	}

	destDir, err := os.MkdirTemp("", "peekpost-audio-*")
	if err != nil {
		h.reportError(c, url, apperr.Wrap(apperr.KindInternal, "Failed to create temporary directory", err))
		return
	}
	// Removal is best-effort on both success and failure paths.
	defer os.RemoveAll(destDir)

	path, err := h.downloader.DownloadAudio(c.Request.Context(), url, destDir)
	if err != nil {
		h.reportError(c, url, err)
		return
	}

	transcript, err := h.transcriber.Run(c.Request.Context(), path)
	if err != nil {
		monitor.Notify(err, url)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": apperr.UserMessage(err)})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "transcript": transcript})
}

func (h *Handler) GetHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "healthy", "service": "PeekPost API"})
}

// DebugSentry raises a deliberate error so the monitoring pipeline can be
// verified end to end.
func (h *Handler) DebugSentry(c *gin.Context) {
	err := apperr.New(apperr.KindInternal, "Deliberate debug error")
	monitor.Notify(err, c.Request.URL.String())
	c.JSON(http.StatusInternalServerError, gin.H{"error": err.Message})
}
