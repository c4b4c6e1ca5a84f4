package models

import (
	"time"

	"github.com/google/uuid"

	"content-backend/internal/serializer"
)

type ArticleKind string

const (
	KindArticle ArticleKind = "article"
	KindReview  ArticleKind = "review"
)

type ArticleStatus string

const (
	StatusDraft     ArticleStatus = "draft"
	StatusPublished ArticleStatus = "published"
)

// MediaImage is one entry of the trailer/gallery form edited next to the blocks.
type MediaImage struct {
	URL     string `json:"url" validate:"required,max=2048"`
	Caption string `json:"caption,omitempty" validate:"max=500"`
}

// MediaContent is what the media provider supplies for the Media block position.
// It is stored with the article but never inside the block sequence.
type MediaContent struct {
	TrailerURL string       `json:"trailer_url,omitempty" validate:"omitempty,max=2048"`
	Gallery    []MediaImage `json:"gallery,omitempty" validate:"max=50,dive"`
}

// Empty reports whether there is anything to render at the Media position.
func (m MediaContent) Empty() bool {
	return m.TrailerURL == "" && len(m.Gallery) == 0
}

type Article struct {
	ID     uuid.UUID     `json:"id"`
	Slug   string        `json:"slug"`
	Title  string        `json:"title"`
	Kind   ArticleKind   `json:"kind"`
	Status ArticleStatus `json:"status"`

	// Blocks is the normalized storage form of the document.
	Blocks serializer.StorageForm `json:"blocks"`
	Media  MediaContent           `json:"media"`

	// Summary is the plain-text description derived on save.
	Summary string `json:"summary"`

	Version int `json:"version"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// CreateArticleRequest opens a new editor document.
type CreateArticleRequest struct {
	Title string      `json:"title" validate:"max=200"`
	Kind  ArticleKind `json:"kind" validate:"omitempty,oneof=article review"`
}

// SaveArticleRequest is the save payload of the editor.
type SaveArticleRequest struct {
	Title  string                 `json:"title" validate:"required,max=200"`
	Kind   ArticleKind            `json:"kind" validate:"omitempty,oneof=article review"`
	Status ArticleStatus          `json:"status" validate:"omitempty,oneof=draft published"`
	Blocks serializer.StorageForm `json:"blocks"`
	Media  MediaContent           `json:"media"`
}

// SaveResult is what the persistence collaborator hands back.
type SaveResult struct {
	ID      uuid.UUID `json:"id"`
	Slug    string    `json:"slug"`
	Version int       `json:"version"`
}
