package blocks

import (
	"fmt"
	"math/rand"
)

func para(id, text string) Block {
	return Block{ID: id, Kind: KindParagraph, Paragraph: &ParagraphData{RichText: text}}
}

func heading(id string, level int, text string) Block {
	return Block{ID: id, Kind: KindHeading, Heading: &HeadingData{Level: level, Text: text}}
}

func media(id string) Block {
	return Block{ID: id, Kind: KindMedia}
}

func kinds(doc Document) []Kind {
	out := make([]Kind, len(doc))
	for i, b := range doc {
		out[i] = b.Kind
	}
	return out
}

// randomSequence builds an arbitrary, usually invalid, block sequence: repeated and empty
// ids, several media markers, unknown kinds and missing payloads.
func randomSequence(r *rand.Rand) Document {
	pool := append([]Kind{"bogus"}, Kinds...)
	pool = append(pool, KindMedia, KindMedia)
	n := r.Intn(9)
	doc := make(Document, 0, n)
	for i := 0; i < n; i++ {
		var b Block
		if r.Intn(4) == 0 {
			b = Block{Kind: pool[r.Intn(len(pool))]}
		} else {
			b = New(pool[r.Intn(len(pool))])
		}
		switch r.Intn(4) {
		case 0:
			b.ID = ""
		case 1:
			b.ID = fmt.Sprintf("dup-%d", r.Intn(2))
		}
		if b.Kind == KindHeading && b.Heading != nil {
			b.Heading.Level = r.Intn(6)
		}
		if b.Kind == KindCard && b.Card != nil && r.Intn(2) == 0 {
			b.Card.Variant = "huge"
			b.Card.ImageURLs = []string{"1", "2", "3", "4", "5"}
		}
		doc = append(doc, b)
	}
	return doc
}
