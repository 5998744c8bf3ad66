package normalize

import (
	"crypto/rand"
	"regexp"
	"strings"
)

const (
	// FallbackSlugBase is used when a title reduces to nothing after
	// stripping, e.g. a title of only punctuation.
	FallbackSlugBase = "event"

	slugSuffixLength   = 5
	slugSuffixAlphabet = "abcdefghijklmnopqrstuvwxyz0123456789"
)

var (
	slugStripRegex    = regexp.MustCompile(`[^a-z0-9\s-]+`)
	slugSpaceRegex    = regexp.MustCompile(`\s+`)
	slugCollapseRegex = regexp.MustCompile(`-{2,}`)
)

// Slugify derives a URL-safe slug from a title: lowercase, trim, strip
// everything outside [a-z0-9\s-], whitespace runs to single hyphens,
// repeated hyphens collapsed, leading and trailing hyphens removed. A title
// that reduces to nothing yields FallbackSlugBase so a slug is never empty.
func Slugify(title string) string {
	s := strings.ToLower(strings.TrimSpace(title))
	s = slugStripRegex.ReplaceAllString(s, "")
	s = slugSpaceRegex.ReplaceAllString(s, "-")
	s = slugCollapseRegex.ReplaceAllString(s, "-")
	s = strings.Trim(s, "-")
	if s == "" {
		return FallbackSlugBase
	}
	return s
}

// SlugSuffix returns a short random alphanumeric string appended to a slug
// on collision.
func SlugSuffix() string {
	b := make([]byte, slugSuffixLength)
	_, _ = rand.Read(b)
	for i := range b {
		b[i] = slugSuffixAlphabet[int(b[i])%len(slugSuffixAlphabet)]
	}
	return string(b)
}
