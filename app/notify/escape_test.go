package notify

import (
	"strings"
	"testing"
)

func TestEscapeMarkdown_ReservedCharacters(t *testing.T) {
	input := "a_b*c[d]e(f)g~h`i>j#k+l-m=n|o{p}q.r!s"
	result := EscapeMarkdown(input)

	for _, ch := range markdownReserved {
		if strings.Contains(result, ch) && !strings.Contains(result, `\`+ch) {
			t.Errorf("Expected '%s' to be escaped in '%s'", ch, result)
		}
	}
}

func TestEscapeMarkdown_PlainTextUnchanged(t *testing.T) {
	input := "plain text with spaces and digits 123"
	if result := EscapeMarkdown(input); result != input {
		t.Errorf("Expected plain text to pass through unchanged, got '%s'", result)
	}
}

func TestEscapeMarkdown_Dots(t *testing.T) {
	result := EscapeMarkdown("example.com")

	if result != `example\.com` {
		t.Errorf("Expected 'example\\.com', got '%s'", result)
	}
}

func TestEscapeMarkdown_Empty(t *testing.T) {
	if result := EscapeMarkdown(""); result != "" {
		t.Errorf("Expected empty string, got '%s'", result)
	}
}
