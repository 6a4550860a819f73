package util

import (
	_ "embed"
	"encoding/json"
	"regexp"
	"strings"
	"time"

	"github.com/mattn/go-runewidth"
)

//go:embed version.txt
var version string

// Date and time layouts used throughout the store. Both sort
// lexicographically, which the feed queries rely on.
const (
	DateLayout = "2006-01-02"
	TimeLayout = "15:04:05"
)

func GetVersion() string {
	return strings.TrimSpace(version)
}

func FormattedDate(t time.Time) string {
	return t.Format(DateLayout)
}

func FormattedTime(t time.Time) string {
	return t.Format(TimeLayout)
}

var hashtagRegex = regexp.MustCompile(`#\w+`)

// ExtractHashtags returns the hashtags of a text, deduplicated on the
// exact match, in order of first appearance.
func ExtractHashtags(text string) []string {
	matches := hashtagRegex.FindAllString(text, -1)
	if len(matches) == 0 {
		return nil
	}
	seen := make(map[string]bool, len(matches))
	tags := make([]string, 0, len(matches))
	for _, m := range matches {
		if seen[m] {
			continue
		}
		seen[m] = true
		tags = append(tags, m)
	}
	return tags
}

// SplitTerms parses a comma-separated keyword list, trimming blanks.
func SplitTerms(input string) []string {
	parts := strings.Split(input, ",")
	terms := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			terms = append(terms, p)
		}
	}
	return terms
}

// TruncateDisplay shortens s to the given cell width, rune-safe.
func TruncateDisplay(s string, width int) string {
	if width <= 0 {
		return ""
	}
	return runewidth.Truncate(s, width, "…")
}

// PrettyPrint renders a value as indented json for logging.
func PrettyPrint(v any) string {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err.Error()
	}
	return string(out)
}

func Min(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func Max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
