package content

import (
	"math"
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"
)

const wordsPerMinute = 200

var (
	slugInvalid     = regexp.MustCompile(`[^a-z0-9\s-]`)
	slugSpaces      = regexp.MustCompile(`\s+`)
	slugDashes      = regexp.MustCompile(`-+`)
	descMarker      = regexp.MustCompile(`\*\*[^*]+:\*\*`)
	descPunctuation = regexp.MustCompile("[#*_~`]")
)

// Slug builds the readable URL segment for a post title. The id stays in the
// path, so the slug is cosmetic and fallback is used when nothing survives.
func Slug(title, fallback string) string {
	s := strings.ToLower(title)
	s = slugInvalid.ReplaceAllString(s, "")
	s = slugSpaces.ReplaceAllString(s, "-")
	s = slugDashes.ReplaceAllString(s, "-")
	s = strings.Trim(s, "-")
	if s == "" {
		return fallback
	}
	return s
}

// Description strips markers and markdown punctuation and cuts the text to limit runes.
func Description(body string, limit int) string {
	_, _, rest := SplitJob(body)
	clean := descMarker.ReplaceAllString(rest, "")
	clean = descPunctuation.ReplaceAllString(clean, "")
	clean = strings.Join(strings.Fields(clean), " ")

	if limit <= 0 || utf8.RuneCountInString(clean) <= limit {
		return clean
	}
	runes := []rune(clean)
	return strings.TrimSpace(string(runes[:limit])) + "..."
}

func ReadingTime(body string) string {
	words := len(strings.Fields(body))
	if words == 0 {
		return "5 min read"
	}
	minutes := int(math.Ceil(float64(words) / wordsPerMinute))
	if minutes < 1 {
		minutes = 1
	}
	return strconv.Itoa(minutes) + " min read"
}
