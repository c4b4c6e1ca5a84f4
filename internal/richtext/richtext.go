// Package richtext turns the editors' inline HTML into plain text or a safe HTML subset.
package richtext

import (
	"html"
	"strings"

	nethtml "golang.org/x/net/html"
	"golang.org/x/text/unicode/norm"
)

// blockTags break words apart when stripped so "<p>a</p><p>b</p>" reads "a b".
var blockTags = map[string]bool{
	"p": true, "div": true, "br": true, "li": true, "ul": true, "ol": true,
	"h1": true, "h2": true, "h3": true, "h4": true, "blockquote": true, "tr": true, "td": true,
}

// skipTags have content that is never text.
var skipTags = map[string]bool{"script": true, "style": true, "template": true}

// allowedTags survive Sanitize. Everything else is unwrapped to its text.
var allowedTags = map[string]bool{
	"p": true, "br": true, "b": true, "strong": true, "i": true, "em": true, "u": true,
	"s": true, "a": true, "ul": true, "ol": true, "li": true, "code": true, "mark": true,
}

// Strip removes markup, decodes entities, collapses whitespace and returns NFC text.
func Strip(s string) string {
	if !strings.ContainsAny(s, "<&") {
		return collapse(s)
	}
	var b strings.Builder
	skip := 0
	z := nethtml.NewTokenizer(strings.NewReader(s))
	for {
		tt := z.Next()
		switch tt {
		case nethtml.ErrorToken:
			// A tag cut off by the end of input is kept as text.
			if skip == 0 {
				b.WriteString(html.UnescapeString(string(z.Raw())))
			}
			return collapse(b.String())
		case nethtml.TextToken:
			if skip == 0 {
				b.Write(z.Text())
			}
		case nethtml.StartTagToken, nethtml.SelfClosingTagToken:
			name, _ := z.TagName()
			tag := string(name)
			if skipTags[tag] && tt == nethtml.StartTagToken {
				skip++
			}
			if blockTags[tag] {
				b.WriteByte(' ')
			}
		case nethtml.EndTagToken:
			name, _ := z.TagName()
			tag := string(name)
			if skipTags[tag] && skip > 0 {
				skip--
			}
			if blockTags[tag] {
				b.WriteByte(' ')
			}
		}
	}
}

// Sanitize keeps a small inline allowlist, drops attributes except safe link targets and
// escapes all text. Every emitted tag is balanced: stray end tags are dropped, an end tag
// closes the tags opened inside it, and tags still open at the end are closed. The result
// is safe to embed in an HTML page.
func Sanitize(s string) string {
	var (
		b    strings.Builder
		open []string
	)
	closeFrom := func(i int) {
		for j := len(open) - 1; j >= i; j-- {
			b.WriteString("</" + open[j] + ">")
		}
		open = open[:i]
	}

	skip := 0
	z := nethtml.NewTokenizer(strings.NewReader(s))
	for {
		tt := z.Next()
		switch tt {
		case nethtml.ErrorToken:
			if skip == 0 {
				b.WriteString(html.EscapeString(string(z.Raw())))
			}
			closeFrom(0)
			return norm.NFC.String(strings.TrimSpace(b.String()))
		case nethtml.TextToken:
			if skip == 0 {
				b.WriteString(html.EscapeString(string(z.Text())))
			}
		case nethtml.StartTagToken, nethtml.SelfClosingTagToken:
			name, hasAttr := z.TagName()
			tag := string(name)
			if skipTags[tag] && tt == nethtml.StartTagToken {
				skip++
				continue
			}
			if skip > 0 || !allowedTags[tag] {
				continue
			}
			if tag == "br" {
				b.WriteString("<br>")
				continue
			}
			if tt == nethtml.SelfClosingTagToken {
				continue
			}
			if tag == "a" {
				b.WriteString(openLink(z, hasAttr))
			} else {
				b.WriteString("<" + tag + ">")
			}
			open = append(open, tag)
		case nethtml.EndTagToken:
			name, _ := z.TagName()
			tag := string(name)
			if skipTags[tag] {
				if skip > 0 {
					skip--
				}
				continue
			}
			if skip > 0 {
				continue
			}
			for i := len(open) - 1; i >= 0; i-- {
				if open[i] == tag {
					closeFrom(i)
					break
				}
			}
		}
	}
}

func openLink(z *nethtml.Tokenizer, hasAttr bool) string {
	for hasAttr {
		var key, val []byte
		key, val, hasAttr = z.TagAttr()
		if string(key) == "href" && SafeURL(string(val)) {
			return `<a href="` + html.EscapeString(string(val)) + `" rel="noopener noreferrer">`
		}
	}
	return "<a>"
}

// SafeURL accepts http(s), mailto and site-relative URLs.
func SafeURL(u string) bool {
	u = strings.TrimSpace(strings.ToLower(u))
	switch {
	case strings.HasPrefix(u, "https://"), strings.HasPrefix(u, "http://"),
		strings.HasPrefix(u, "mailto:"):
		return true
	case strings.HasPrefix(u, "/") && !strings.HasPrefix(u, "//"):
		return true
	}
	return false
}

func collapse(s string) string {
	return norm.NFC.String(strings.Join(strings.Fields(s), " "))
}
