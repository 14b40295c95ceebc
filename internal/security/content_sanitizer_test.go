package security

import (
	"strings"
	"testing"
)

func TestSanitize_RemovesScriptTags(t *testing.T) {
	s := NewContentSanitizer()

	got := s.Sanitize(`<p>Great role</p><script>alert("xss")</script>`)

	if strings.Contains(got, "<script") {
		t.Errorf("script tag not removed: %q", got)
	}
	if !strings.Contains(got, "<p>Great role</p>") {
		t.Errorf("allowed tag was removed: %q", got)
	}
}

func TestSanitize_RemovesEventAttributes(t *testing.T) {
	s := NewContentSanitizer()

	got := s.Sanitize(`<p onclick="steal()">text</p>`)

	if strings.Contains(got, "onclick") {
		t.Errorf("event attribute not removed: %q", got)
	}
}

func TestSanitize_KeepsAllowedFormatting(t *testing.T) {
	s := NewContentSanitizer()

	input := `<ul><li><strong>Go</strong> experience</li><li><em>PostgreSQL</em></li></ul>`
	got := s.Sanitize(input)

	for _, tag := range []string{"<ul>", "<li>", "<strong>", "<em>"} {
		if !strings.Contains(got, tag) {
			t.Errorf("expected %s to be kept in %q", tag, got)
		}
	}
}

func TestSanitize_EmptyInput_ReturnsEmpty(t *testing.T) {
	s := NewContentSanitizer()

	if got := s.Sanitize(""); got != "" {
		t.Errorf("Sanitize(\"\") = %q, want empty", got)
	}
}

func TestSanitize_Idempotent(t *testing.T) {
	s := NewContentSanitizer()

	input := `<p>desc</p><iframe src="https://evil.example"></iframe>`
	once := s.Sanitize(input)
	twice := s.Sanitize(once)

	if once != twice {
		t.Errorf("sanitize not idempotent: %q != %q", once, twice)
	}
}
