package feed

import (
	"html"
	"regexp"
	"strings"

	"github.com/microcosm-cc/bluemonday"
	"golang.org/x/text/unicode/norm"
)

// MaxBodyLength caps the normalized body so downstream LLM calls stay within
// a sane token budget.
const MaxBodyLength = 3000

var (
	stripPolicy = bluemonday.StrictPolicy()
	whitespace  = regexp.MustCompile(`\s+`)
)

// CleanHTML reduces raw entry markup to plain text: tags stripped, entities
// decoded, runs of whitespace collapsed to single spaces, NFC-normalized.
func CleanHTML(raw string) string {
	text := stripPolicy.Sanitize(raw)
	text = html.UnescapeString(text)
	text = whitespace.ReplaceAllString(text, " ")
	return norm.NFC.String(strings.TrimSpace(text))
}

// Truncate hard-cuts s at limit runes, appending "..." when anything was cut.
func Truncate(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit]) + "..."
}
