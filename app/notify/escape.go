package notify

import "strings"

// markdownReserved is the Telegram MarkdownV2 reserved character set. Every
// one of these must be backslash-escaped in plain text or the API rejects
// the message.
var markdownReserved = []string{
	"_", "*", "[", "]", "(", ")", "~", "`", ">", "#",
	"+", "-", "=", "|", "{", "}", ".", "!",
}

var markdownReplacer = newMarkdownReplacer()

func newMarkdownReplacer() *strings.Replacer {
	pairs := make([]string, 0, len(markdownReserved)*2)
	for _, ch := range markdownReserved {
		pairs = append(pairs, ch, `\`+ch)
	}
	return strings.NewReplacer(pairs...)
}

// EscapeMarkdown escapes all MarkdownV2 reserved characters in s.
func EscapeMarkdown(s string) string {
	return markdownReplacer.Replace(s)
}

var linkURLReplacer = strings.NewReplacer(`\`, `\\`, `)`, `\)`)

// escapeLinkURL escapes the characters MarkdownV2 reserves inside the (...)
// part of an inline link: backslash and closing parenthesis.
func escapeLinkURL(s string) string {
	return linkURLReplacer.Replace(s)
}
