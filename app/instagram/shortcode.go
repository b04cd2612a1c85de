package instagram

import (
	"regexp"
	"strings"

	"github.com/peekpost/peekpost/app/apperr"
)

// The identifier segment ends at the first '/' or '?' after /reel/ or /p/.
var shortcodePattern = regexp.MustCompile(`instagram\.com/(?:[^/]+/)?(?:reel|p)/([^/?]+)`)

// ExtractShortcode parses an Instagram reel or post URL into its shortcode.
func ExtractShortcode(rawURL string) (string, error) {
	trimmed, _, _ := strings.Cut(rawURL, "?")

	match := shortcodePattern.FindStringSubmatch(trimmed)
	if match == nil {
		return "", apperr.New(apperr.KindInvalidURL, "Invalid Instagram URL")
	}

	return match[1], nil
}
