package blocks

// MediaPlacement decides where a missing Media marker is placed.
type MediaPlacement string

const (
	// MediaAtEnd appends the marker after all content (text first, media after).
	MediaAtEnd MediaPlacement = "end"
	// MediaAfterFirst places the marker right after the first content block.
	MediaAfterFirst MediaPlacement = "after-first"
)

// LeadingRepair decides how a Media marker found at index 0 is repaired.
type LeadingRepair string

const (
	// MoveMediaToEnd moves the marker behind all content.
	MoveMediaToEnd LeadingRepair = "move-to-end"
	// InsertPlaceholder keeps the marker and puts an empty paragraph in front of it.
	InsertPlaceholder LeadingRepair = "insert-placeholder"
)

func (m MediaPlacement) Valid() bool { return m == MediaAtEnd || m == MediaAfterFirst }

func (r LeadingRepair) Valid() bool { return r == MoveMediaToEnd || r == InsertPlaceholder }

// Policy holds the product decisions Normalize applies when it has to synthesize or move
// the Media marker. The zero value behaves like DefaultPolicy.
type Policy struct {
	MissingMedia MediaPlacement
	LeadingMedia LeadingRepair
}

// DefaultPolicy appends a missing marker and moves a leading marker to the end.
var DefaultPolicy = Policy{
	MissingMedia: MediaAtEnd,
	LeadingMedia: MoveMediaToEnd,
}

// Normalize returns the canonical form of seq under DefaultPolicy.
func Normalize(seq Document) Document {
	return DefaultPolicy.Normalize(seq)
}

// Normalize returns the unique canonical sequence for seq. It never fails, never aliases
// seq, and Normalize(Normalize(s)) equals Normalize(s).
//
//  1. content blocks are copied in order; only the first Media block survives
//  2. a document with no content gets an empty paragraph
//  3. a document with no Media block gets one, placed per MissingMedia
//  4. a Media block at index 0 is repaired per LeadingMedia
//  5. if no content precedes the Media block, an empty paragraph is inserted at index 0
//
// Along the way blocks of unknown kind are dropped, empty or repeated ids are replaced and
// payloads are coerced into range (heading level, card enums, embed size).
func (p Policy) Normalize(seq Document) Document {
	out := make(Document, 0, len(seq)+2)
	seen := make(map[string]struct{}, len(seq))
	hasMedia := false

	for _, b := range seq {
		if !b.Kind.Valid() {
			continue
		}
		if b.IsMedia() {
			if hasMedia {
				continue
			}
			hasMedia = true
		}
		c := canonicalBlock(b)
		if _, dup := seen[c.ID]; dup || c.ID == "" {
			c.ID = NewID()
		}
		seen[c.ID] = struct{}{}
		out = append(out, c)
	}

	if out.ContentCount() == 0 {
		out = append(out, New(KindParagraph))
	}

	if !hasMedia {
		out = p.placeMedia(out, New(KindMedia))
	}

	if out[0].IsMedia() {
		out = p.repairLeading(out)
	}

	if mi := out.MediaIndex(); contentBefore(out, mi) == 0 {
		out = insertAt(out, 0, New(KindParagraph))
	}

	return out
}

func (p Policy) placeMedia(doc Document, media Block) Document {
	if p.MissingMedia == MediaAfterFirst {
		for i, b := range doc {
			if !b.IsMedia() {
				return insertAt(doc, i+1, media)
			}
		}
	}
	return append(doc, media)
}

func (p Policy) repairLeading(doc Document) Document {
	if p.LeadingMedia == InsertPlaceholder {
		return insertAt(doc, 0, New(KindParagraph))
	}
	media := doc[0]
	rest := append(Document(nil), doc[1:]...)
	return append(rest, media)
}

func contentBefore(doc Document, idx int) int {
	n := 0
	for i := 0; i < idx && i < len(doc); i++ {
		if !doc[i].IsMedia() {
			n++
		}
	}
	return n
}

func insertAt(doc Document, idx int, b Block) Document {
	out := make(Document, 0, len(doc)+1)
	out = append(out, doc[:idx]...)
	out = append(out, b)
	return append(out, doc[idx:]...)
}

// canonicalBlock copies b keeping only the payload for its kind, defaulting a missing
// payload and coercing out-of-range fields.
func canonicalBlock(b Block) Block {
	out := Block{ID: b.ID, Kind: b.Kind}
	switch b.Kind {
	case KindParagraph:
		p := ParagraphData{}
		if b.Paragraph != nil {
			p = *b.Paragraph
		}
		out.Paragraph = &p
	case KindHeading:
		h := HeadingData{Level: 2}
		if b.Heading != nil {
			h = *b.Heading
		}
		if !ValidHeadingLevel(h.Level) {
			h.Level = 2
		}
		out.Heading = &h
	case KindImage:
		img := ImageData{}
		if b.Image != nil {
			img = *b.Image
		}
		out.Image = &img
	case KindQuote:
		q := QuoteData{}
		if b.Quote != nil {
			q = *b.Quote
		}
		out.Quote = &q
	case KindCard:
		out.Card = canonicalCard(b.Card)
	case KindGallery:
		out.Gallery = canonicalGallery(b.Gallery)
	case KindEmbed:
		e := EmbedData{Size: EmbedDefault}
		if b.Embed != nil {
			e = *b.Embed
		}
		if !e.Size.Valid() {
			e.Size = EmbedDefault
		}
		out.Embed = &e
	case KindDivider, KindMedia:
	}
	return out
}

func canonicalCard(in *CardData) *CardData {
	if in == nil {
		return defaultCard()
	}
	c := *in
	if !c.Variant.Valid() {
		c.Variant = CardDefault
	}
	if !c.MediaType.Valid() {
		c.MediaType = CardMediaNone
	}
	if !c.Layout.Valid() {
		c.Layout = LayoutMediaTop
	}
	if !c.ImageLayout.Valid() {
		c.ImageLayout = ImageLayoutRow
	}
	if !c.Width.Valid() {
		c.Width = WidthNarrow
	}
	urls := in.ImageURLs
	if len(urls) > MaxCardImages {
		urls = urls[:MaxCardImages]
	}
	if len(urls) == 0 {
		c.ImageURLs = nil
	} else {
		c.ImageURLs = cloneStrings(urls)
	}
	return &c
}

func canonicalGallery(in *GalleryData) *GalleryData {
	if in == nil {
		return &GalleryData{}
	}
	g := *in
	if len(in.Images) == 0 {
		g.Images = nil
		return &g
	}
	g.Images = make([]GalleryImage, len(in.Images))
	seen := make(map[string]struct{}, len(in.Images))
	for i, img := range in.Images {
		if _, dup := seen[img.ID]; dup || img.ID == "" {
			img.ID = NewID()
		}
		seen[img.ID] = struct{}{}
		g.Images[i] = img
	}
	return &g
}
