package blocks

import (
	"errors"
	"fmt"
)

// Invariant violations reported by Validate. Edits never return these; Store silently
// ignores any edit that would produce one.
var (
	ErrDuplicateID          = errors.New("duplicate block id")
	ErrMissingID            = errors.New("block id missing")
	ErrMultipleMedia        = errors.New("more than one media block")
	ErrMediaFirst           = errors.New("media block at index 0")
	ErrNoContentBeforeMedia = errors.New("no content block before media block")
	ErrNoContent            = errors.New("document has no content block")
	ErrMissingMedia         = errors.New("document has no media block")
	ErrUnknownKind          = errors.New("unknown block kind")
	ErrMissingPayload       = errors.New("block payload missing")
)

// Validate reports the first invariant doc violates, or nil when doc is canonical in
// structure. It is a diagnostic; nothing in this package rejects edits with it.
func Validate(doc Document) error {
	seen := make(map[string]int, len(doc))
	media := -1
	content := 0
	for i, b := range doc {
		if !b.Kind.Valid() {
			return fmt.Errorf("block %d (%q): %w", i, b.Kind, ErrUnknownKind)
		}
		if !hasPayload(b) {
			return fmt.Errorf("block %d (%s): %w", i, b.Kind, ErrMissingPayload)
		}
		if b.ID == "" {
			return fmt.Errorf("block %d: %w", i, ErrMissingID)
		}
		if prev, ok := seen[b.ID]; ok {
			return fmt.Errorf("block %d id %q (first at %d): %w", i, b.ID, prev, ErrDuplicateID)
		}
		seen[b.ID] = i
		if b.IsMedia() {
			if media >= 0 {
				return fmt.Errorf("block %d: %w", i, ErrMultipleMedia)
			}
			media = i
			continue
		}
		content++
	}
	switch {
	case content == 0:
		return ErrNoContent
	case media < 0:
		return ErrMissingMedia
	case media == 0:
		return ErrMediaFirst
	case contentBefore(doc, media) == 0:
		return ErrNoContentBeforeMedia
	}
	return nil
}

func hasPayload(b Block) bool {
	switch b.Kind {
	case KindParagraph:
		return b.Paragraph != nil
	case KindHeading:
		return b.Heading != nil
	case KindImage:
		return b.Image != nil
	case KindQuote:
		return b.Quote != nil
	case KindCard:
		return b.Card != nil
	case KindGallery:
		return b.Gallery != nil
	case KindEmbed:
		return b.Embed != nil
	case KindDivider, KindMedia:
		return true
	default:
		return false
	}
}
