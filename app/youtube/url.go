package youtube

import (
	"net/url"
	"strings"

	"github.com/peekpost/peekpost/app/apperr"
)

// NormalizeURL converts any recognized YouTube URL form (watch, shorts,
// embed, live, youtu.be) into the canonical https://www.youtube.com/watch?v=<id>
// form the extractor is fed with.
func NormalizeURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", apperr.New(apperr.KindInvalidURL, "Missing URL")
	}

	u, err := url.Parse(raw)
	if err != nil || u.Scheme == "" {
		u, err = url.Parse("https://" + raw)
		if err != nil {
			return "", apperr.Wrap(apperr.KindInvalidURL, "Invalid YouTube URL", err)
		}
	}

	id := extractVideoID(u)
	if id == "" {
		return "", apperr.New(apperr.KindInvalidURL, "Invalid YouTube URL")
	}

	return "https://www.youtube.com/watch?v=" + url.QueryEscape(id), nil
}

func extractVideoID(u *url.URL) string {
	host := strings.ToLower(u.Hostname())
	host = strings.TrimPrefix(host, "www.")
	host = strings.TrimPrefix(host, "m.")

	if host == "youtu.be" {
		return firstPathSegment(u.Path)
	}

	if host != "youtube.com" {
		return ""
	}

	if v := u.Query().Get("v"); v != "" {
		return v
	}

	for _, prefix := range []string{"/shorts/", "/embed/", "/v/", "/live/"} {
		if strings.HasPrefix(u.Path, prefix) {
			return firstPathSegment(strings.TrimPrefix(u.Path, prefix))
		}
	}

	return ""
}

func firstPathSegment(p string) string {
	p = strings.TrimPrefix(p, "/")
	seg, _, _ := strings.Cut(p, "/")
	return strings.TrimSpace(seg)
}
