package blocks

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStore_Apply(t *testing.T) {
	s := LoadStore(Document{para("p", "x"), media("m")})

	res := s.Apply(Edit{Op: OpInsertAfter, AnchorID: "p", Kind: KindQuote})
	require.True(t, res.Applied)
	quoteID := res.BlockID

	res = s.Apply(Edit{Op: OpUpdateFields, ID: quoteID, Fields: Patch{RichText: ptr("said")}})
	require.True(t, res.Applied)

	res = s.Apply(Edit{Op: OpMoveBlock, ID: quoteID, Direction: Up})
	require.True(t, res.Applied)
	assert.Equal(t, []string{quoteID, "p", "m"}, ids(s.Blocks()))

	res = s.Apply(Edit{Op: OpDuplicateBlock, ID: "p"})
	require.True(t, res.Applied)
	assert.Len(t, s.Blocks(), 4)

	res = s.Apply(Edit{Op: OpRemoveBlock, ID: res.BlockID})
	require.True(t, res.Applied)
	assert.Len(t, s.Blocks(), 3)

	res = s.Apply(Edit{Op: "split", ID: "p"})
	assert.False(t, res.Applied)
}

func TestEdit_DecodeJSON(t *testing.T) {
	raw := `{"op":"updateFields","id":"c1","fields":{"title":"T","variant":"compact","imageUrls":["a"]}}`

	var e Edit
	require.NoError(t, json.Unmarshal([]byte(raw), &e))

	assert.Equal(t, OpUpdateFields, e.Op)
	require.NotNil(t, e.Fields.Title)
	assert.Equal(t, "T", *e.Fields.Title)
	require.NotNil(t, e.Fields.CardVariant)
	assert.Equal(t, CardCompact, *e.Fields.CardVariant)
	assert.Equal(t, []string{"a"}, e.Fields.ImageURLs)
}
