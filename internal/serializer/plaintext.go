package serializer

import (
	"strings"

	"content-backend/internal/blocks"
	"content-backend/internal/richtext"
)

// DefaultSummaryLength is the summary size used for article descriptions.
const DefaultSummaryLength = 260

const ellipsis = "…"

// PlainText projects doc to text: one fragment per block that has any, separated by a
// blank line. Markup is stripped; dividers, embeds and the media marker contribute nothing.
func PlainText(doc blocks.Document) string {
	parts := make([]string, 0, len(doc))
	for _, b := range doc {
		if frag := Fragment(b); frag != "" {
			parts = append(parts, frag)
		}
	}
	return strings.Join(parts, "\n\n")
}

// Fragment is the plain text of a single block.
func Fragment(b blocks.Block) string {
	switch b.Kind {
	case blocks.KindHeading:
		if b.Heading != nil {
			return strings.TrimSpace(b.Heading.Text)
		}
	case blocks.KindParagraph:
		if b.Paragraph != nil {
			return richtext.Strip(b.Paragraph.RichText)
		}
	case blocks.KindQuote:
		if b.Quote != nil {
			return richtext.Strip(b.Quote.RichText)
		}
	case blocks.KindImage:
		if b.Image != nil {
			return strings.TrimSpace(b.Image.Caption)
		}
	case blocks.KindCard:
		if b.Card != nil {
			return joinNonEmpty(strings.TrimSpace(b.Card.Title), richtext.Strip(b.Card.Body))
		}
	case blocks.KindGallery:
		if b.Gallery != nil {
			captions := make([]string, 0, len(b.Gallery.Images))
			for _, img := range b.Gallery.Images {
				captions = append(captions, strings.TrimSpace(img.Caption))
			}
			return joinNonEmpty(captions...)
		}
	case blocks.KindDivider, blocks.KindEmbed, blocks.KindMedia:
	}
	return ""
}

// Summary returns the plain text on one line, cut to at most max runes with a trailing
// ellipsis when anything was dropped. max <= 0 uses DefaultSummaryLength.
func Summary(doc blocks.Document, max int) string {
	if max <= 0 {
		max = DefaultSummaryLength
	}
	text := strings.Join(strings.Fields(PlainText(doc)), " ")
	runes := []rune(text)
	if len(runes) <= max {
		return text
	}
	cut := strings.TrimRight(string(runes[:max-1]), " ")
	return cut + ellipsis
}

func joinNonEmpty(parts ...string) string {
	out := parts[:0:0]
	for _, p := range parts {
		if p != "" {
			out = append(out, p)
		}
	}
	return strings.Join(out, " ")
}
