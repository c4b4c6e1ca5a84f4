// Package render is the presentation contract shared by the editor preview and the
// published article page. Both surfaces call Document; neither reads block payloads on
// its own.
package render

import (
	"strings"

	"content-backend/internal/blocks"
	"content-backend/internal/models"
	"content-backend/internal/richtext"
)

// Presentation is the view model of one block. Empty means the surface renders nothing
// for it. Exactly the view matching Kind is set, except for dividers which need none.
type Presentation struct {
	BlockID string      `json:"block_id"`
	Kind    blocks.Kind `json:"kind"`
	Empty   bool        `json:"empty,omitempty"`

	Heading   *HeadingView `json:"heading,omitempty"`
	Paragraph *TextView    `json:"paragraph,omitempty"`
	Quote     *TextView    `json:"quote,omitempty"`
	Image     *ImageView   `json:"image,omitempty"`
	Card      *CardView    `json:"card,omitempty"`
	Gallery   *GalleryView `json:"gallery,omitempty"`
	Embed     *EmbedView   `json:"embed,omitempty"`
	Media     *MediaView   `json:"media,omitempty"`
}

type HeadingView struct {
	Level int    `json:"level"`
	Text  string `json:"text"`
}

type TextView struct {
	HTML string `json:"html"`
	Text string `json:"text"`
}

type ImageView struct {
	URL     string `json:"url"`
	Caption string `json:"caption,omitempty"`
}

type CardView struct {
	Title         string   `json:"title,omitempty"`
	BodyHTML      string   `json:"body_html,omitempty"`
	LinkURL       string   `json:"link_url,omitempty"`
	LinkLabel     string   `json:"link_label,omitempty"`
	Variant       string   `json:"variant"`
	Layout        string   `json:"layout"`
	Width         string   `json:"width"`
	MediaType     string   `json:"media_type"`
	VideoEmbedURL string   `json:"video_embed_url,omitempty"`
	ImageURLs     []string `json:"image_urls,omitempty"`
	ImageLayout   string   `json:"image_layout,omitempty"`
}

type GalleryImageView struct {
	ID      string `json:"id"`
	URL     string `json:"url"`
	Caption string `json:"caption,omitempty"`
}

type GalleryView struct {
	Title          string             `json:"title,omitempty"`
	Images         []GalleryImageView `json:"images"`
	WithBackground bool               `json:"with_background"`
}

type EmbedView struct {
	URL      string   `json:"url"`
	EmbedURL string   `json:"embed_url"`
	Provider Provider `json:"provider"`
	Title    string   `json:"title,omitempty"`
	Size     string   `json:"size"`
}

// MediaView is the host-supplied trailer and gallery spliced in at the Media block.
type MediaView struct {
	TrailerURL      string              `json:"trailer_url,omitempty"`
	TrailerEmbedURL string              `json:"trailer_embed_url,omitempty"`
	TrailerProvider Provider            `json:"trailer_provider,omitempty"`
	Gallery         []models.MediaImage `json:"gallery,omitempty"`
}

// Content is the usable media the view shows.
func (v *MediaView) Content() models.MediaContent {
	return models.MediaContent{TrailerURL: v.TrailerURL, Gallery: v.Gallery}
}

// Present projects one block. It is pure: the same block always yields the same view.
// The Media block yields an empty MediaView slot that Document fills from the host.
func Present(b blocks.Block) Presentation {
	p := Presentation{BlockID: b.ID, Kind: b.Kind}
	switch b.Kind {
	case blocks.KindParagraph:
		if b.Paragraph != nil {
			p.Paragraph = textView(b.Paragraph.RichText)
		}
		p.Empty = p.Paragraph == nil
	case blocks.KindQuote:
		if b.Quote != nil {
			p.Quote = textView(b.Quote.RichText)
		}
		p.Empty = p.Quote == nil
	case blocks.KindHeading:
		if h := b.Heading; h != nil && strings.TrimSpace(h.Text) != "" {
			p.Heading = &HeadingView{Level: h.Level, Text: strings.TrimSpace(h.Text)}
		}
		p.Empty = p.Heading == nil
	case blocks.KindImage:
		if img := b.Image; img != nil && usableURL(img.URL) {
			p.Image = &ImageView{URL: img.URL, Caption: strings.TrimSpace(img.Caption)}
		}
		p.Empty = p.Image == nil
	case blocks.KindCard:
		if b.Card != nil {
			p.Card = cardView(b.Card)
		}
		p.Empty = p.Card == nil
	case blocks.KindGallery:
		if b.Gallery != nil {
			p.Gallery = galleryView(b.Gallery)
		}
		p.Empty = p.Gallery == nil
	case blocks.KindEmbed:
		if b.Embed != nil {
			p.Embed = embedView(b.Embed)
		}
		p.Empty = p.Embed == nil
	case blocks.KindDivider:
	case blocks.KindMedia:
		p.Media = &MediaView{}
	default:
		p.Empty = true
	}
	return p
}

// Document renders doc in order, splicing media into the Media block's slot. Every
// surface that displays a document goes through here.
func Document(doc blocks.Document, media models.MediaContent) []Presentation {
	out := make([]Presentation, 0, len(doc))
	for _, b := range doc {
		p := Present(b)
		if p.Kind == blocks.KindMedia {
			p.Media = mediaView(media)
		}
		out = append(out, p)
	}
	return out
}

// Visible drops the presentations a surface would render as nothing.
func Visible(ps []Presentation) []Presentation {
	out := make([]Presentation, 0, len(ps))
	for _, p := range ps {
		if p.Empty {
			continue
		}
		if p.Media != nil && p.Media.Content().Empty() {
			continue
		}
		out = append(out, p)
	}
	return out
}

func textView(richText string) *TextView {
	text := richtext.Strip(richText)
	if text == "" {
		return nil
	}
	return &TextView{HTML: richtext.Sanitize(richText), Text: text}
}

func cardView(c *blocks.CardData) *CardView {
	v := &CardView{
		Title:     strings.TrimSpace(c.Title),
		Variant:   string(c.Variant),
		Layout:    string(c.Layout),
		Width:     string(c.Width),
		MediaType: string(blocks.CardMediaNone),
	}
	if richtext.Strip(c.Body) != "" {
		v.BodyHTML = richtext.Sanitize(c.Body)
	}
	if usableURL(c.LinkURL) {
		v.LinkURL = c.LinkURL
		v.LinkLabel = strings.TrimSpace(c.LinkLabel)
		if v.LinkLabel == "" {
			v.LinkLabel = blocks.DefaultLinkLabel
		}
	}
	switch c.MediaType {
	case blocks.CardMediaVideo:
		if _, embed, ok := ResolveEmbed(c.VideoURL); ok {
			v.MediaType = string(blocks.CardMediaVideo)
			v.VideoEmbedURL = embed
		}
	case blocks.CardMediaImageGrid:
		for _, u := range c.ImageURLs {
			if usableURL(u) {
				v.ImageURLs = append(v.ImageURLs, u)
			}
		}
		if len(v.ImageURLs) > 0 {
			v.MediaType = string(blocks.CardMediaImageGrid)
			v.ImageLayout = string(c.ImageLayout)
		}
	}
	if v.Title == "" && v.BodyHTML == "" && v.LinkURL == "" && v.MediaType == string(blocks.CardMediaNone) {
		return nil
	}
	return v
}

func galleryView(g *blocks.GalleryData) *GalleryView {
	v := &GalleryView{Title: strings.TrimSpace(g.Title), WithBackground: g.WithBackground}
	for _, img := range g.Images {
		if !usableURL(img.URL) {
			continue
		}
		v.Images = append(v.Images, GalleryImageView{ID: img.ID, URL: img.URL, Caption: strings.TrimSpace(img.Caption)})
	}
	if len(v.Images) == 0 {
		return nil
	}
	return v
}

func embedView(e *blocks.EmbedData) *EmbedView {
	provider, embed, ok := ResolveEmbed(e.URL)
	if !ok {
		return nil
	}
	return &EmbedView{
		URL:      strings.TrimSpace(e.URL),
		EmbedURL: embed,
		Provider: provider,
		Title:    strings.TrimSpace(e.Title),
		Size:     string(e.Size),
	}
}

func mediaView(m models.MediaContent) *MediaView {
	v := &MediaView{}
	if provider, embed, ok := ResolveEmbed(m.TrailerURL); ok {
		v.TrailerURL = strings.TrimSpace(m.TrailerURL)
		v.TrailerEmbedURL = embed
		v.TrailerProvider = provider
	}
	for _, img := range m.Gallery {
		if usableURL(img.URL) {
			v.Gallery = append(v.Gallery, models.MediaImage{URL: img.URL, Caption: strings.TrimSpace(img.Caption)})
		}
	}
	return v
}

func usableURL(u string) bool {
	return strings.TrimSpace(u) != "" && richtext.SafeURL(u)
}
