// Package serializer projects block documents to their storage form (lossless, JSON or
// YAML) and to plain text (lossy, for summaries and search).
package serializer

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"

	"gopkg.in/yaml.v3"

	"content-backend/internal/blocks"
)

// Record is one tagged block in the storage form. Type carries the variant; only the
// fields belonging to that variant are populated.
type Record struct {
	ID   string `json:"id,omitempty" yaml:"id,omitempty"`
	Type string `json:"type" yaml:"type"`

	RichText string `json:"richText,omitempty" yaml:"richText,omitempty"`
	Level    int    `json:"level,omitempty" yaml:"level,omitempty"`
	Text     string `json:"text,omitempty" yaml:"text,omitempty"`
	URL      string `json:"url,omitempty" yaml:"url,omitempty"`
	Caption  string `json:"caption,omitempty" yaml:"caption,omitempty"`
	Title    string `json:"title,omitempty" yaml:"title,omitempty"`

	Body        string   `json:"body,omitempty" yaml:"body,omitempty"`
	LinkURL     string   `json:"linkUrl,omitempty" yaml:"linkUrl,omitempty"`
	LinkLabel   string   `json:"linkLabel,omitempty" yaml:"linkLabel,omitempty"`
	Variant     string   `json:"variant,omitempty" yaml:"variant,omitempty"`
	MediaType   string   `json:"mediaType,omitempty" yaml:"mediaType,omitempty"`
	Layout      string   `json:"layout,omitempty" yaml:"layout,omitempty"`
	VideoURL    string   `json:"videoUrl,omitempty" yaml:"videoUrl,omitempty"`
	ImageURLs   []string `json:"imageUrls,omitempty" yaml:"imageUrls,omitempty"`
	ImageLayout string   `json:"imageLayout,omitempty" yaml:"imageLayout,omitempty"`
	Width       string   `json:"width,omitempty" yaml:"width,omitempty"`

	Images         []ImageRecord `json:"images,omitempty" yaml:"images,omitempty"`
	WithBackground bool          `json:"withBackground,omitempty" yaml:"withBackground,omitempty"`

	Size string `json:"size,omitempty" yaml:"size,omitempty"`
}

type ImageRecord struct {
	ID      string `json:"id,omitempty" yaml:"id,omitempty"`
	URL     string `json:"url" yaml:"url"`
	Caption string `json:"caption,omitempty" yaml:"caption,omitempty"`
}

// StorageForm is the ordered record array persisted for a document.
type StorageForm []Record

// Value stores the form as a JSON document column.
func (f StorageForm) Value() (driver.Value, error) {
	if f == nil {
		return "[]", nil
	}
	data, err := json.Marshal(f)
	if err != nil {
		return nil, err
	}
	return string(data), nil
}

// Scan reads a JSON document column.
func (f *StorageForm) Scan(value any) error {
	switch v := value.(type) {
	case nil:
		*f = nil
		return nil
	case []byte:
		return json.Unmarshal(v, f)
	case string:
		return json.Unmarshal([]byte(v), f)
	default:
		return fmt.Errorf("storage form: unsupported column type %T", value)
	}
}

// ToStorageForm converts a document to records, preserving order and every payload field.
func ToStorageForm(doc blocks.Document) StorageForm {
	out := make(StorageForm, 0, len(doc))
	for _, b := range doc {
		if r, ok := toRecord(b); ok {
			out = append(out, r)
		}
	}
	return out
}

// FromStorageForm decodes records and normalizes the result under the default policy.
// Records without an id get a fresh one; records of an unknown type are dropped.
func FromStorageForm(form StorageForm) blocks.Document {
	return FromStorageFormWith(form, blocks.DefaultPolicy)
}

// FromStorageFormWith is FromStorageForm under an explicit media policy.
func FromStorageFormWith(form StorageForm, policy blocks.Policy) blocks.Document {
	return policy.Normalize(Decode(form))
}

// Decode converts records to blocks without normalizing. Use it only to inspect persisted
// data as-is; editing code should go through FromStorageForm.
func Decode(form StorageForm) blocks.Document {
	doc := make(blocks.Document, 0, len(form))
	for _, r := range form {
		if b, ok := fromRecord(r); ok {
			doc = append(doc, b)
		}
	}
	return doc
}

// EncodeJSON marshals the storage form of doc.
func EncodeJSON(doc blocks.Document) ([]byte, error) {
	return json.Marshal(ToStorageForm(doc))
}

// DecodeJSON unmarshals a storage form array. The returned document is normalized.
func DecodeJSON(data []byte) (blocks.Document, error) {
	var form StorageForm
	if err := json.Unmarshal(data, &form); err != nil {
		return nil, fmt.Errorf("decode storage form: %w", err)
	}
	return FromStorageForm(form), nil
}

// ParseJSON and ParseYAML read a storage form without converting it.
func ParseJSON(data []byte) (StorageForm, error) {
	var form StorageForm
	if err := json.Unmarshal(data, &form); err != nil {
		return nil, fmt.Errorf("parse storage form: %w", err)
	}
	return form, nil
}

func ParseYAML(data []byte) (StorageForm, error) {
	var form StorageForm
	if err := yaml.Unmarshal(data, &form); err != nil {
		return nil, fmt.Errorf("parse storage form: %w", err)
	}
	return form, nil
}

// DecodeYAML reads a YAML storage form, as used by hand-written fixtures.
func DecodeYAML(data []byte) (blocks.Document, error) {
	form, err := ParseYAML(data)
	if err != nil {
		return nil, err
	}
	return FromStorageForm(form), nil
}

func toRecord(b blocks.Block) (Record, bool) {
	r := Record{ID: b.ID, Type: string(b.Kind)}
	switch b.Kind {
	case blocks.KindParagraph:
		if b.Paragraph != nil {
			r.RichText = b.Paragraph.RichText
		}
	case blocks.KindQuote:
		if b.Quote != nil {
			r.RichText = b.Quote.RichText
		}
	case blocks.KindHeading:
		if b.Heading != nil {
			r.Level = b.Heading.Level
			r.Text = b.Heading.Text
		}
	case blocks.KindImage:
		if b.Image != nil {
			r.URL = b.Image.URL
			r.Caption = b.Image.Caption
		}
	case blocks.KindCard:
		if c := b.Card; c != nil {
			r.Title = c.Title
			r.Body = c.Body
			r.LinkURL = c.LinkURL
			r.LinkLabel = c.LinkLabel
			r.Variant = string(c.Variant)
			r.MediaType = string(c.MediaType)
			r.Layout = string(c.Layout)
			r.VideoURL = c.VideoURL
			r.ImageLayout = string(c.ImageLayout)
			r.Width = string(c.Width)
			if len(c.ImageURLs) > 0 {
				r.ImageURLs = append([]string(nil), c.ImageURLs...)
			}
		}
	case blocks.KindGallery:
		if g := b.Gallery; g != nil {
			r.Title = g.Title
			r.WithBackground = g.WithBackground
			for _, img := range g.Images {
				r.Images = append(r.Images, ImageRecord{ID: img.ID, URL: img.URL, Caption: img.Caption})
			}
		}
	case blocks.KindEmbed:
		if e := b.Embed; e != nil {
			r.URL = e.URL
			r.Title = e.Title
			r.Size = string(e.Size)
		}
	case blocks.KindDivider, blocks.KindMedia:
	default:
		return Record{}, false
	}
	return r, true
}

func fromRecord(r Record) (blocks.Block, bool) {
	b := blocks.Block{ID: r.ID, Kind: blocks.Kind(r.Type)}
	switch b.Kind {
	case blocks.KindParagraph:
		b.Paragraph = &blocks.ParagraphData{RichText: r.RichText}
	case blocks.KindQuote:
		b.Quote = &blocks.QuoteData{RichText: r.RichText}
	case blocks.KindHeading:
		b.Heading = &blocks.HeadingData{Level: r.Level, Text: r.Text}
	case blocks.KindImage:
		b.Image = &blocks.ImageData{URL: r.URL, Caption: r.Caption}
	case blocks.KindCard:
		b.Card = &blocks.CardData{
			Title:       r.Title,
			Body:        r.Body,
			LinkURL:     r.LinkURL,
			LinkLabel:   r.LinkLabel,
			Variant:     blocks.CardVariant(r.Variant),
			MediaType:   blocks.CardMediaType(r.MediaType),
			Layout:      blocks.CardLayout(r.Layout),
			VideoURL:    r.VideoURL,
			ImageURLs:   append([]string(nil), r.ImageURLs...),
			ImageLayout: blocks.ImageLayout(r.ImageLayout),
			Width:       blocks.CardWidth(r.Width),
		}
	case blocks.KindGallery:
		g := &blocks.GalleryData{Title: r.Title, WithBackground: r.WithBackground}
		for _, img := range r.Images {
			g.Images = append(g.Images, blocks.GalleryImage{ID: img.ID, URL: img.URL, Caption: img.Caption})
		}
		b.Gallery = g
	case blocks.KindEmbed:
		b.Embed = &blocks.EmbedData{URL: r.URL, Title: r.Title, Size: blocks.EmbedSize(r.Size)}
	case blocks.KindDivider, blocks.KindMedia:
	default:
		return blocks.Block{}, false
	}
	return b, true
}
