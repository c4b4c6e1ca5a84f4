package richtext

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStrip(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"plain", "hello  world", "hello world"},
		{"inline tags", "<b>Hi</b> there", "Hi there"},
		{"entities", "Tom &amp; Jerry &lt;3", "Tom & Jerry <3"},
		{"block tags split words", "<p>one</p><p>two</p>", "one two"},
		{"line break", "a<br>b", "a b"},
		{"script dropped", "x<script>alert(1)</script>y", "xy"},
		{"empty markup", "<p><br></p>", ""},
		{"nfc", "Poke\u0301mon", "Pok\u00e9mon"},
		{"nested", "<p><a href=\"/x\"><em>link</em></a> text</p>", "link text"},
		{"tag cut off at end", "a <b", "a <b"},
		{"entity after cut tag", "x &amp; <i", "x & <i"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Strip(tt.input))
		})
	}
}

func TestSanitize(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"allowed inline", "<b>Hi</b> <em>there</em>", "<b>Hi</b> <em>there</em>"},
		{"attributes dropped", `<b class="x" onclick="y">Hi</b>`, "<b>Hi</b>"},
		{"unknown tag unwrapped", "<span>Hi</span>", "Hi"},
		{"script removed", "a<script>alert(1)</script>b", "ab"},
		{"text escaped", "1 &lt; 2", "1 &lt; 2"},
		{"safe link", `<a href="https://x.test/a">x</a>`, `<a href="https://x.test/a" rel="noopener noreferrer">x</a>`},
		{"unsafe link", `<a href="javascript:alert(1)">x</a>`, "<a>x</a>"},
		{"br", "a<br/>b", "a<br>b"},
		{"unclosed tag closed", "<b>bold", "<b>bold</b>"},
		{"unclosed link closed", `<a href="https://x">link`, `<a href="https://x" rel="noopener noreferrer">link</a>`},
		{"mismatched end tag dropped", "<i>x</b>", "<i>x</i>"},
		{"stray end tag dropped", "</p>x", "x"},
		{"outer end closes inner", "<b><i>x</b>y", "<b><i>x</i></b>y"},
		{"nested closes in order", "<ul><li>a<li>b</ul>", "<ul><li>a<li>b</li></li></ul>"},
		{"self closing dropped", "a<b/>c", "ac"},
		{"tag cut off escaped", "a <b", "a &lt;b"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Sanitize(tt.input))
		})
	}
}

func TestSafeURL(t *testing.T) {
	assert.True(t, SafeURL("https://example.com"))
	assert.True(t, SafeURL("/uploads/a.png"))
	assert.True(t, SafeURL("mailto:a@b.c"))
	assert.False(t, SafeURL("//evil.test"))
	assert.False(t, SafeURL("javascript:alert(1)"))
	assert.False(t, SafeURL("data:text/html;base64,xx"))
}
