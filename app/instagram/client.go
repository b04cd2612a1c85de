package instagram

import (
	"context"
	"errors"
	"io"
	"net/http"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/peekpost/peekpost/app/apperr"
	"github.com/peekpost/peekpost/app/cfg"
)

const (
	graphqlEndpoint = "https://www.instagram.com/graphql/query"
	fetchTimeout    = 10 * time.Second
)

// Client posts shortcode queries to the Instagram GraphQL endpoint. A
// process-wide limiter keeps outbound calls polite; upstream throttles
// aggressively and a 429 burns the request anyway.
type Client struct {
	httpClient *http.Client
	limiter    *rate.Limiter
	endpoint   string
	userAgent  string
	docID      string
	appID      string
	csrfToken  string
}

func NewClient() *Client {
	c := cfg.Get()

	return &Client{
		httpClient: &http.Client{Timeout: fetchTimeout},
		limiter:    rate.NewLimiter(rate.Every(2*time.Second), 3),
		endpoint:   graphqlEndpoint,
		userAgent:  c.UserAgent,
		docID:      c.InstagramDocID,
		appID:      c.InstagramAppID,
		csrfToken:  c.InstagramCSRFToken,
	}
}

// FetchRaw retrieves the raw GraphQL response body for a shortcode.
func (c *Client) FetchRaw(ctx context.Context, shortcode string) ([]byte, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, apperr.Wrap(apperr.KindInternal, "Rate limiter interrupted", err)
	}

	timeoutCtx, cancel := context.WithTimeout(ctx, fetchTimeout)
	defer cancel()

	payload := BuildQueryPayload(shortcode, c.docID)

	req, err := http.NewRequestWithContext(timeoutCtx, http.MethodPost, c.endpoint, strings.NewReader(payload))
	if err != nil {
		return nil, apperr.Wrap(apperr.KindInternal, "Failed to create upstream request", err)
	}

	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("X-CSRFToken", c.csrfToken)
	req.Header.Set("X-IG-App-ID", c.appID)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if isTimeout(err) {
			return nil, apperr.Wrap(apperr.KindTimeout, "Request timeout", err)
		}
		return nil, apperr.Wrap(apperr.KindExtraction, "Upstream request failed", err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
		// fall through to body read
	case http.StatusTooManyRequests:
		return nil, apperr.New(apperr.KindRateLimited, "Rate limited. Try again later.")
	case http.StatusNotFound:
		return nil, apperr.New(apperr.KindContentUnavailable, "Reel not found or private.")
	default:
		return nil, apperr.Newf(apperr.KindExtraction, "Unexpected upstream status %d", resp.StatusCode)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, apperr.Wrap(apperr.KindExtraction, "Failed to read upstream response", err)
	}

	return data, nil
}

func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr interface{ Timeout() bool }
	return errors.As(err, &netErr) && netErr.Timeout()
}
