package markdown

import (
	"math"
	"regexp"
	"strings"
)

const wordsPerMinute = 200

var linkPattern = regexp.MustCompile(`\[([^\]]+)\]\([^)]+\)`)

var markerReplacer = strings.NewReplacer(
	"#", "",
	"**", "",
	"*", "",
	"__", "",
	"_", "",
	"`", "",
)

// Excerpt strips markdown formatting and truncates to maxLength at a
// word boundary, appending an ellipsis when cut.
func Excerpt(content string, maxLength int) string {
	if content == "" {
		return ""
	}

	text := markerReplacer.Replace(content)
	text = linkPattern.ReplaceAllString(text, "$1")
	text = strings.Join(strings.Fields(text), " ")

	runes := []rune(text)
	if len(runes) > maxLength {
		cut := runes[:maxLength]
		if lastSpace := lastIndexRune(cut, ' '); lastSpace > maxLength/2 {
			cut = cut[:lastSpace]
		}
		text = string(cut) + "..."
	}

	return strings.TrimSpace(text)
}

// ReadingTime estimates minutes to read at 200 words per minute.
// Non-empty content always reads as at least one minute.
func ReadingTime(content string) int {
	if content == "" {
		return 0
	}

	words := len(strings.Fields(content))
	minutes := int(math.Round(float64(words) / wordsPerMinute))
	if minutes < 1 {
		minutes = 1
	}
	return minutes
}

func lastIndexRune(runes []rune, target rune) int {
	for i := len(runes) - 1; i >= 0; i-- {
		if runes[i] == target {
			return i
		}
	}
	return -1
}
