// Package blocks implements the structured content-block document model used by the
// article and game-review editors.
//
// A Document is an ordered sequence of typed blocks. Every Document a caller can observe
// through this package is canonical: ids are unique, exactly one Media marker exists, it
// never sits at index 0, and content precedes it. Normalize repairs any sequence into that
// shape; Store runs it after every edit.
package blocks

// Kind is the variant tag of a block.
type Kind string

const (
	KindParagraph Kind = "paragraph"
	KindHeading   Kind = "heading"
	KindImage     Kind = "image"
	KindQuote     Kind = "quote"
	KindDivider   Kind = "divider"
	KindCard      Kind = "card"
	KindGallery   Kind = "gallery"
	KindEmbed     Kind = "embed"
	KindMedia     Kind = "media"
)

// Kinds lists every variant. Packages that switch over Kind test against this list.
var Kinds = []Kind{
	KindParagraph,
	KindHeading,
	KindImage,
	KindQuote,
	KindDivider,
	KindCard,
	KindGallery,
	KindEmbed,
	KindMedia,
}

func (k Kind) Valid() bool {
	switch k {
	case KindParagraph, KindHeading, KindImage, KindQuote, KindDivider,
		KindCard, KindGallery, KindEmbed, KindMedia:
		return true
	default:
		return false
	}
}

func (k Kind) String() string { return string(k) }

type CardVariant string

const (
	CardDefault  CardVariant = "default"
	CardCompact  CardVariant = "compact"
	CardFeatured CardVariant = "featured"
)

type CardMediaType string

const (
	CardMediaNone      CardMediaType = "none"
	CardMediaVideo     CardMediaType = "video"
	CardMediaImageGrid CardMediaType = "imageGrid"
)

type CardLayout string

const (
	LayoutMediaTop    CardLayout = "mediaTop"
	LayoutMediaBottom CardLayout = "mediaBottom"
	LayoutMediaLeft   CardLayout = "mediaLeft"
	LayoutMediaRight  CardLayout = "mediaRight"
)

type ImageLayout string

const (
	ImageLayoutRow  ImageLayout = "row"
	ImageLayoutGrid ImageLayout = "grid"
)

type CardWidth string

const (
	WidthNarrow CardWidth = "narrow"
	WidthFull   CardWidth = "full"
)

type EmbedSize string

const (
	EmbedDefault EmbedSize = "default"
	EmbedWide    EmbedSize = "wide"
	EmbedCompact EmbedSize = "compact"
)

const (
	// MaxCardImages caps Card.ImageURLs.
	MaxCardImages = 3
	// DefaultLinkLabel is the label a new card link starts with.
	DefaultLinkLabel = "Learn more"
)

func (v CardVariant) Valid() bool {
	return v == CardDefault || v == CardCompact || v == CardFeatured
}

func (m CardMediaType) Valid() bool {
	return m == CardMediaNone || m == CardMediaVideo || m == CardMediaImageGrid
}

func (l CardLayout) Valid() bool {
	switch l {
	case LayoutMediaTop, LayoutMediaBottom, LayoutMediaLeft, LayoutMediaRight:
		return true
	}
	return false
}

func (l ImageLayout) Valid() bool { return l == ImageLayoutRow || l == ImageLayoutGrid }

func (w CardWidth) Valid() bool { return w == WidthNarrow || w == WidthFull }

func (s EmbedSize) Valid() bool { return s == EmbedDefault || s == EmbedWide || s == EmbedCompact }

// ValidHeadingLevel reports whether level is one the editors allow (h2 or h3).
func ValidHeadingLevel(level int) bool { return level == 2 || level == 3 }

type ParagraphData struct {
	RichText string
}

type HeadingData struct {
	Level int
	Text  string
}

type ImageData struct {
	URL     string
	Caption string
}

type QuoteData struct {
	RichText string
}

type CardData struct {
	Title       string
	Body        string
	LinkURL     string
	LinkLabel   string
	Variant     CardVariant
	MediaType   CardMediaType
	Layout      CardLayout
	VideoURL    string
	ImageURLs   []string
	ImageLayout ImageLayout
	Width       CardWidth
}

type GalleryImage struct {
	ID      string `json:"id,omitempty" yaml:"id,omitempty"`
	URL     string `json:"url" yaml:"url"`
	Caption string `json:"caption,omitempty" yaml:"caption,omitempty"`
}

type GalleryData struct {
	Title          string
	Images         []GalleryImage
	WithBackground bool
}

type EmbedData struct {
	URL   string
	Title string
	Size  EmbedSize
}

// Block is one addressable unit of content. Exactly the payload pointer matching Kind is
// set; Divider and Media carry none.
type Block struct {
	ID   string
	Kind Kind

	Paragraph *ParagraphData
	Heading   *HeadingData
	Image     *ImageData
	Quote     *QuoteData
	Card      *CardData
	Gallery   *GalleryData
	Embed     *EmbedData
}

// IsMedia reports whether b is the media position marker.
func (b Block) IsMedia() bool { return b.Kind == KindMedia }

// Document is an ordered block sequence.
type Document []Block

// Clone returns a deep copy of d with the same ids.
func (d Document) Clone() Document {
	if d == nil {
		return nil
	}
	out := make(Document, len(d))
	for i, b := range d {
		out[i] = b.deepCopy()
	}
	return out
}

// IndexOf returns the position of the block with the given id, or -1.
func (d Document) IndexOf(id string) int {
	for i, b := range d {
		if b.ID == id {
			return i
		}
	}
	return -1
}

// MediaIndex returns the position of the first Media block, or -1.
func (d Document) MediaIndex() int {
	for i, b := range d {
		if b.IsMedia() {
			return i
		}
	}
	return -1
}

// ContentCount counts non-Media blocks.
func (d Document) ContentCount() int {
	n := 0
	for _, b := range d {
		if !b.IsMedia() {
			n++
		}
	}
	return n
}

func (b Block) deepCopy() Block {
	out := Block{ID: b.ID, Kind: b.Kind}
	if b.Paragraph != nil {
		p := *b.Paragraph
		out.Paragraph = &p
	}
	if b.Heading != nil {
		h := *b.Heading
		out.Heading = &h
	}
	if b.Image != nil {
		img := *b.Image
		out.Image = &img
	}
	if b.Quote != nil {
		q := *b.Quote
		out.Quote = &q
	}
	if b.Card != nil {
		c := *b.Card
		c.ImageURLs = cloneStrings(b.Card.ImageURLs)
		out.Card = &c
	}
	if b.Gallery != nil {
		g := *b.Gallery
		if b.Gallery.Images != nil {
			g.Images = make([]GalleryImage, len(b.Gallery.Images))
			copy(g.Images, b.Gallery.Images)
		}
		out.Gallery = &g
	}
	if b.Embed != nil {
		e := *b.Embed
		out.Embed = &e
	}
	return out
}

func cloneStrings(in []string) []string {
	if in == nil {
		return nil
	}
	out := make([]string, len(in))
	copy(out, in)
	return out
}
