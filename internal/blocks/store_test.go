package blocks

import (
	"bytes"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"content-backend/internal/logger"
)

func TestNewStore_Seeded(t *testing.T) {
	s := NewStore()

	doc := s.Blocks()
	assert.Equal(t, []Kind{KindParagraph, KindMedia}, kinds(doc))
	assert.NoError(t, Validate(doc))
}

func TestStore_BlocksReturnsCopy(t *testing.T) {
	s := LoadStore(Document{para("p", "x"), media("m")})

	doc := s.Blocks()
	doc[0].Paragraph.RichText = "mutated"

	got, ok := s.Find("p")
	require.True(t, ok)
	assert.Equal(t, "x", got.Paragraph.RichText)
}

func TestStore_InsertAfter(t *testing.T) {
	s := LoadStore(Document{para("p", "x"), media("m")})

	b, ok := s.InsertAfter("p", KindHeading)

	require.True(t, ok)
	doc := s.Blocks()
	assert.Equal(t, []Kind{KindParagraph, KindHeading, KindMedia}, kinds(doc))
	assert.Equal(t, b.ID, doc[1].ID)
}

func TestStore_InsertAfterMedia(t *testing.T) {
	s := LoadStore(Document{para("p", "x"), media("m")})

	_, ok := s.InsertAfter("m", KindDivider)

	require.True(t, ok)
	assert.Equal(t, []Kind{KindParagraph, KindMedia, KindDivider}, kinds(s.Blocks()))
}

func TestStore_InsertAfterUnknownAnchor(t *testing.T) {
	s := LoadStore(Document{para("p", "x"), media("m")})
	before := s.Blocks()

	_, ok := s.InsertAfter("missing", KindParagraph)

	assert.False(t, ok)
	assert.Equal(t, before, s.Blocks())
}

func TestStore_InsertSecondMediaRefused(t *testing.T) {
	s := LoadStore(Document{para("p", "x"), media("m")})
	before := s.Blocks()

	_, ok := s.InsertAfter("p", KindMedia)

	assert.False(t, ok)
	assert.Equal(t, before, s.Blocks())
}

func TestStore_UpdateFields(t *testing.T) {
	s := LoadStore(Document{heading("h", 2, "old"), media("m")})
	level, text := 3, "new"

	ok := s.UpdateFields("h", Patch{Level: &level, Text: &text})

	require.True(t, ok)
	got, _ := s.Find("h")
	assert.Equal(t, &HeadingData{Level: 3, Text: "new"}, got.Heading)
}

func TestStore_UpdateFieldsRejected(t *testing.T) {
	text := "x"
	bad := 4
	tests := []struct {
		name  string
		id    string
		patch Patch
	}{
		{"missing id", "nope", Patch{Text: &text}},
		{"media block", "m", Patch{Text: &text}},
		{"field for another kind", "h", Patch{RichText: &text}},
		{"out of range level", "h", Patch{Level: &bad}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := LoadStore(Document{heading("h", 2, "old"), media("m")})
			before := s.Blocks()

			assert.False(t, s.UpdateFields(tt.id, tt.patch))
			assert.Equal(t, before, s.Blocks())
		})
	}
}

func TestStore_MoveBlock(t *testing.T) {
	s := LoadStore(Document{para("a", "a"), para("b", "b"), media("m")})

	require.True(t, s.MoveBlock("b", Up))
	assert.Equal(t, "b", s.Blocks()[0].ID)

	require.True(t, s.MoveBlock("b", Down))
	assert.Equal(t, "a", s.Blocks()[0].ID)
}

func TestStore_MoveBlockBoundaries(t *testing.T) {
	s := LoadStore(Document{para("a", "a"), media("m")})
	before := s.Blocks()

	assert.False(t, s.MoveBlock("a", Up))
	assert.False(t, s.MoveBlock("m", Down))
	assert.False(t, s.MoveBlock("missing", Up))
	assert.False(t, s.MoveBlock("a", "sideways"))
	assert.Equal(t, before, s.Blocks())
}

func TestStore_MoveMediaAboveOnlyContentIsRepaired(t *testing.T) {
	s := LoadStore(Document{para("a", "a"), media("m")})

	assert.False(t, s.MoveBlock("m", Up))

	assert.Equal(t, Document{para("a", "a"), media("m")}, s.Blocks())
}

func TestStore_MoveRevertedByNormalizationNotApplied(t *testing.T) {
	var buf bytes.Buffer
	log := logger.NewLogger(&logger.Config{Level: logger.DebugLevel, Output: &buf})
	s := LoadStore(Document{para("a", "a"), media("m")}, WithLogger(log))
	before := s.Blocks()

	assert.False(t, s.MoveBlock("a", Down))
	assert.Equal(t, before, s.Blocks())
	assert.Contains(t, buf.String(), "order restored by normalization")
}

func TestStore_MoveMediaBetweenContent(t *testing.T) {
	s := LoadStore(Document{para("a", "a"), para("b", "b"), media("m")})

	require.True(t, s.MoveBlock("m", Up))

	assert.Equal(t, []string{"a", "m", "b"}, ids(s.Blocks()))
}

func TestStore_DuplicateBlock(t *testing.T) {
	s := LoadStore(Document{para("p", "hello"), media("m")})

	clone, ok := s.DuplicateBlock("p")

	require.True(t, ok)
	doc := s.Blocks()
	require.Len(t, doc, 3)
	assert.Equal(t, "p", doc[0].ID)
	assert.Equal(t, clone.ID, doc[1].ID)
	assert.NotEqual(t, "p", clone.ID)
	assert.Equal(t, "hello", doc[1].Paragraph.RichText)
	assert.Equal(t, KindMedia, doc[2].Kind)
}

func TestStore_DuplicateMediaRejected(t *testing.T) {
	s := LoadStore(Document{para("p", "hello"), media("m")})
	before := s.Blocks()

	_, ok := s.DuplicateBlock("m")

	assert.False(t, ok)
	assert.Equal(t, before, s.Blocks())
}

func TestStore_RemoveBlock(t *testing.T) {
	s := LoadStore(Document{para("a", "a"), para("b", "b"), media("m")})

	require.True(t, s.RemoveBlock("a"))
	assert.Equal(t, []string{"b", "m"}, ids(s.Blocks()))
}

func TestStore_RemoveLastContentRejected(t *testing.T) {
	s := LoadStore(Document{para("a", "a"), media("m")})
	before := s.Blocks()

	assert.False(t, s.RemoveBlock("a"))
	assert.Equal(t, before, s.Blocks())
}

func TestStore_RemoveMediaRejected(t *testing.T) {
	s := LoadStore(Document{para("a", "a"), para("b", "b"), media("m")})
	before := s.Blocks()

	assert.False(t, s.RemoveBlock("m"))
	assert.False(t, s.RemoveBlock("missing"))
	assert.Equal(t, before, s.Blocks())
}

func TestStore_RemoveOnlyContentBeforeMedia(t *testing.T) {
	s := LoadStore(Document{para("a", "a"), media("m"), para("b", "b")})

	require.True(t, s.RemoveBlock("a"))

	assert.Equal(t, []string{"b", "m"}, ids(s.Blocks()))
}

func TestStore_LogsIgnoredEdits(t *testing.T) {
	var buf bytes.Buffer
	l := logger.NewLogger(&logger.Config{Level: logger.DebugLevel, Output: &buf})
	s := NewStore(WithLogger(l))

	s.RemoveBlock(s.Media().ID)

	assert.Contains(t, buf.String(), "block edit ignored")
	assert.Contains(t, buf.String(), "media block cannot be removed")
}

func TestStore_WithPolicy(t *testing.T) {
	p := Policy{MissingMedia: MediaAtEnd, LeadingMedia: InsertPlaceholder}
	s := LoadStore(Document{media("m"), para("a", "a")}, WithPolicy(p))

	assert.Equal(t, []Kind{KindParagraph, KindMedia, KindParagraph}, kinds(s.Blocks()))
}

func TestStore_RandomEditsKeepInvariants(t *testing.T) {
	r := rand.New(rand.NewSource(7))
	s := NewStore()
	variants := append([]Kind{"bogus"}, Kinds...)
	text := "t"

	for i := 0; i < 2000; i++ {
		doc := s.Blocks()
		target := doc[r.Intn(len(doc))].ID
		if r.Intn(10) == 0 {
			target = "missing"
		}
		switch r.Intn(5) {
		case 0:
			s.InsertAfter(target, variants[r.Intn(len(variants))])
		case 1:
			s.UpdateFields(target, Patch{RichText: &text, Text: &text, Title: &text})
		case 2:
			dir := Up
			if r.Intn(2) == 0 {
				dir = Down
			}
			s.MoveBlock(target, dir)
		case 3:
			s.DuplicateBlock(target)
		case 4:
			s.RemoveBlock(target)
		}
		require.NoError(t, Validate(s.Blocks()), "after step %d", i)
	}
}

func ids(doc Document) []string {
	out := make([]string, len(doc))
	for i, b := range doc {
		out[i] = b.ID
	}
	return out
}
