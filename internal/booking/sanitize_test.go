package booking

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSanitize(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"trims", "  Olena  ", "Olena"},
		{"strips markup", "<b>Olena</b>", "Olena"},
		{"collapses line breaks", "line one\r\n\r\nline two", "line one line two"},
		{"keeps entities as text", "Tom &amp; Jerry", "Tom & Jerry"},
		{"keeps apostrophes", "O'Brien", "O'Brien"},
		{"keeps cyrillic", "Олена", "Олена"},
		{"drops invalid utf8", "Ol\xffena", "Olena"},
		{"drops control chars", "Ol\x01e\x07na", "Olena"},
		{"empty", "", ""},
		{"only markup", "<i></i>  ", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Sanitize(tt.in))
		})
	}
}

func TestSanitize_RemovesScripts(t *testing.T) {
	got := Sanitize(`<script>alert("x")</script>Olena`)
	assert.NotContains(t, got, "<")
	assert.NotContains(t, got, ">")
	assert.Contains(t, got, "Olena")
}

func TestSanitize_NoLineBreaksSurvive(t *testing.T) {
	inputs := []string{
		"a\nb",
		"a\rb",
		"a\r\n\r\nb",
		"a b",
		"a\u0085b",
		"olena@example.com\r\nBcc: someone@example.com",
		"a&#10;b",
		"a&#13;&#10;b",
	}

	for _, in := range inputs {
		got := Sanitize(in)
		assert.NotContains(t, got, "\r", "input %q", in)
		assert.NotContains(t, got, "\n", "input %q", in)
	}
}

func TestSanitize_Idempotent(t *testing.T) {
	inputs := []string{
		"plain",
		"  padded \t text ",
		"<p>Hello <em>there</em></p>",
		"&lt;b&gt;bold&lt;/b&gt;",
		"&amp;lt;script&amp;gt;alert(1)&amp;lt;/script&amp;gt;",
		"&amp;amp;amp;amp;amp;amp;amp;amp;amp;amp;amp;lt;b&amp;gt;",
		"1 < 2 && 3 > 2",
		"a\r\n\r\nb\n\nc",
		" nbsp ",
		"é",
		"Ol\xffena",
		`"quoted" 'single'`,
		"",
	}

	for _, in := range inputs {
		once := Sanitize(in)
		assert.Equal(t, once, Sanitize(once), "input %q", in)
	}
}

func TestSanitize_DeepEntityNesting(t *testing.T) {
	in := "&" + strings.Repeat("amp;", 20) + "lt;script&gt;x"
	got := Sanitize(in)
	assert.NotContains(t, got, "<")
	assert.Equal(t, got, Sanitize(got))
}

func TestSanitize_NormalizesToNFC(t *testing.T) {
	// "e" + combining acute accent becomes the single rune é.
	assert.Equal(t, "é", Sanitize("é"))
}
