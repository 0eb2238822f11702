package article

import (
	"net/url"
	"regexp"
	"strings"
)

// wikiPathPattern captures the article title after /wiki/ up to a fragment or query.
var wikiPathPattern = regexp.MustCompile(`/wiki/([^#?]*)`)

// TitleFromURL extracts the article title from a /wiki/<Title> URL. Underscores
// become spaces and percent escapes are decoded.
func TitleFromURL(articleURL string) (string, bool) {
	match := wikiPathPattern.FindStringSubmatch(articleURL)
	if match == nil {
		return "", false
	}

	raw := match[1]
	if decoded, err := url.PathUnescape(raw); err == nil {
		raw = decoded
	}

	title := strings.TrimSpace(strings.ReplaceAll(raw, "_", " "))
	if title == "" {
		return "", false
	}
	return title, true
}
