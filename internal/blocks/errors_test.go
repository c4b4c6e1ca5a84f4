package blocks

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidate(t *testing.T) {
	tests := []struct {
		name string
		doc  Document
		want error
	}{
		{"canonical", Document{para("a", ""), media("m")}, nil},
		{"empty", Document{}, ErrNoContent},
		{"only media", Document{media("m")}, ErrNoContent},
		{"no media", Document{para("a", "")}, ErrMissingMedia},
		{"media first", Document{media("m"), para("a", "")}, ErrMediaFirst},
		{"two media", Document{para("a", ""), media("m"), media("n")}, ErrMultipleMedia},
		{"duplicate id", Document{para("a", ""), para("a", ""), media("m")}, ErrDuplicateID},
		{"empty id", Document{para("", ""), media("m")}, ErrMissingID},
		{"unknown kind", Document{{ID: "x", Kind: "poll"}}, ErrUnknownKind},
		{"missing payload", Document{{ID: "x", Kind: KindHeading}, media("m")}, ErrMissingPayload},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(tt.doc)
			if tt.want == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.want)
		})
	}
}
