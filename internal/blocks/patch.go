package blocks

// Patch is a partial payload for UpdateFields. Nil fields are left untouched; a field that
// does not belong to the target block's kind is ignored, as is an out-of-range enum value.
type Patch struct {
	RichText *string `json:"richText,omitempty" yaml:"richText,omitempty"`

	Level *int    `json:"level,omitempty" yaml:"level,omitempty"`
	Text  *string `json:"text,omitempty" yaml:"text,omitempty"`

	URL     *string `json:"url,omitempty" yaml:"url,omitempty"`
	Caption *string `json:"caption,omitempty" yaml:"caption,omitempty"`

	Title       *string        `json:"title,omitempty" yaml:"title,omitempty"`
	Body        *string        `json:"body,omitempty" yaml:"body,omitempty"`
	LinkURL     *string        `json:"linkUrl,omitempty" yaml:"linkUrl,omitempty"`
	LinkLabel   *string        `json:"linkLabel,omitempty" yaml:"linkLabel,omitempty"`
	CardVariant *CardVariant   `json:"variant,omitempty" yaml:"variant,omitempty"`
	MediaType   *CardMediaType `json:"mediaType,omitempty" yaml:"mediaType,omitempty"`
	Layout      *CardLayout    `json:"layout,omitempty" yaml:"layout,omitempty"`
	VideoURL    *string        `json:"videoUrl,omitempty" yaml:"videoUrl,omitempty"`
	// ImageURLs replaces the card image list when non-nil; extra entries past
	// MaxCardImages are dropped.
	ImageURLs   []string     `json:"imageUrls,omitempty" yaml:"imageUrls,omitempty"`
	ImageLayout *ImageLayout `json:"imageLayout,omitempty" yaml:"imageLayout,omitempty"`
	Width       *CardWidth   `json:"width,omitempty" yaml:"width,omitempty"`

	// Images replaces the gallery image list when non-nil. Entries without an id get one.
	Images         []GalleryImage `json:"images,omitempty" yaml:"images,omitempty"`
	WithBackground *bool          `json:"withBackground,omitempty" yaml:"withBackground,omitempty"`

	Size *EmbedSize `json:"size,omitempty" yaml:"size,omitempty"`
}

// apply merges p into a copy of b. The bool is false when no field of p applies to b.
func (p Patch) apply(b Block) (Block, bool) {
	out := b.deepCopy()
	applied := false
	setString := func(dst *string, src *string) {
		if src != nil {
			*dst = *src
			applied = true
		}
	}

	switch b.Kind {
	case KindParagraph:
		if out.Paragraph == nil {
			out.Paragraph = &ParagraphData{}
		}
		setString(&out.Paragraph.RichText, p.RichText)
	case KindQuote:
		if out.Quote == nil {
			out.Quote = &QuoteData{}
		}
		setString(&out.Quote.RichText, p.RichText)
	case KindHeading:
		if out.Heading == nil {
			out.Heading = &HeadingData{Level: 2}
		}
		if p.Level != nil && ValidHeadingLevel(*p.Level) {
			out.Heading.Level = *p.Level
			applied = true
		}
		setString(&out.Heading.Text, p.Text)
	case KindImage:
		if out.Image == nil {
			out.Image = &ImageData{}
		}
		setString(&out.Image.URL, p.URL)
		setString(&out.Image.Caption, p.Caption)
	case KindCard:
		if out.Card == nil {
			out.Card = defaultCard()
		}
		c := out.Card
		setString(&c.Title, p.Title)
		setString(&c.Body, p.Body)
		setString(&c.LinkURL, p.LinkURL)
		setString(&c.LinkLabel, p.LinkLabel)
		setString(&c.VideoURL, p.VideoURL)
		if p.CardVariant != nil && p.CardVariant.Valid() {
			c.Variant = *p.CardVariant
			applied = true
		}
		if p.MediaType != nil && p.MediaType.Valid() {
			c.MediaType = *p.MediaType
			applied = true
		}
		if p.Layout != nil && p.Layout.Valid() {
			c.Layout = *p.Layout
			applied = true
		}
		if p.ImageLayout != nil && p.ImageLayout.Valid() {
			c.ImageLayout = *p.ImageLayout
			applied = true
		}
		if p.Width != nil && p.Width.Valid() {
			c.Width = *p.Width
			applied = true
		}
		if p.ImageURLs != nil {
			urls := p.ImageURLs
			if len(urls) > MaxCardImages {
				urls = urls[:MaxCardImages]
			}
			c.ImageURLs = cloneStrings(urls)
			applied = true
		}
	case KindGallery:
		if out.Gallery == nil {
			out.Gallery = &GalleryData{}
		}
		setString(&out.Gallery.Title, p.Title)
		if p.WithBackground != nil {
			out.Gallery.WithBackground = *p.WithBackground
			applied = true
		}
		if p.Images != nil {
			out.Gallery.Images = make([]GalleryImage, len(p.Images))
			copy(out.Gallery.Images, p.Images)
			applied = true
		}
	case KindEmbed:
		if out.Embed == nil {
			out.Embed = &EmbedData{Size: EmbedDefault}
		}
		setString(&out.Embed.URL, p.URL)
		setString(&out.Embed.Title, p.Title)
		if p.Size != nil && p.Size.Valid() {
			out.Embed.Size = *p.Size
			applied = true
		}
	case KindDivider, KindMedia:
	}
	return out, applied
}
