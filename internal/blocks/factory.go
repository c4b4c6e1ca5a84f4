package blocks

import "github.com/google/uuid"

// NewID returns a fresh block identifier.
func NewID() string {
	return uuid.NewString()
}

// New builds a block of the requested kind with editor defaults and a fresh id.
// Unknown kinds produce a Paragraph.
func New(kind Kind) Block {
	b := Block{ID: NewID(), Kind: kind}
	switch kind {
	case KindParagraph:
		b.Paragraph = &ParagraphData{}
	case KindHeading:
		b.Heading = &HeadingData{Level: 2}
	case KindImage:
		b.Image = &ImageData{}
	case KindQuote:
		b.Quote = &QuoteData{}
	case KindCard:
		b.Card = defaultCard()
	case KindGallery:
		b.Gallery = &GalleryData{}
	case KindEmbed:
		b.Embed = &EmbedData{Size: EmbedDefault}
	case KindDivider, KindMedia:
	default:
		b.Kind = KindParagraph
		b.Paragraph = &ParagraphData{}
	}
	return b
}

// NewParagraph is a convenience for a paragraph holding the given rich text.
func NewParagraph(richText string) Block {
	b := New(KindParagraph)
	b.Paragraph.RichText = richText
	return b
}

// NewHeading builds a heading; an unsupported level falls back to 2.
func NewHeading(level int, text string) Block {
	b := New(KindHeading)
	if ValidHeadingLevel(level) {
		b.Heading.Level = level
	}
	b.Heading.Text = text
	return b
}

// NewGalleryImage builds a gallery entry with its own id.
func NewGalleryImage(url, caption string) GalleryImage {
	return GalleryImage{ID: NewID(), URL: url, Caption: caption}
}

// Clone copies b's payload under a new id. Gallery images are re-keyed as well.
func Clone(b Block) Block {
	out := b.deepCopy()
	out.ID = NewID()
	if out.Gallery != nil {
		for i := range out.Gallery.Images {
			out.Gallery.Images[i].ID = NewID()
		}
	}
	return out
}

func defaultCard() *CardData {
	return &CardData{
		LinkLabel:   DefaultLinkLabel,
		Variant:     CardDefault,
		MediaType:   CardMediaNone,
		Layout:      LayoutMediaTop,
		ImageLayout: ImageLayoutRow,
		Width:       WidthNarrow,
	}
}
