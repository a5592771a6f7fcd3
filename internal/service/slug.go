package service

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// MaxSlugLength matches the width of the category slug column.
const MaxSlugLength = 31

// ReservedSlug collides with the category creation route.
const ReservedSlug = "create"

var (
	slugStrip    = regexp.MustCompile(`[^\w\s-]`)
	slugCollapse = regexp.MustCompile(`[-\s]+`)
)

// Slugify derives a URL-safe slug from name: accents are folded to ASCII,
// anything but letters, digits, underscores and hyphens is dropped, and runs
// of whitespace or hyphens become a single hyphen.
func Slugify(name string) string {
	var b strings.Builder
	for _, r := range norm.NFKD.String(name) {
		if r < unicode.MaxASCII {
			b.WriteRune(r)
		}
	}
	s := strings.ToLower(b.String())
	s = slugStrip.ReplaceAllString(s, "")
	s = slugCollapse.ReplaceAllString(s, "-")
	s = strings.Trim(s, "-_")
	if len(s) > MaxSlugLength {
		s = strings.TrimRight(s[:MaxSlugLength], "-_")
	}
	return s
}
