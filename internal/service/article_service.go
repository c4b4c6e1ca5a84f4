package service

import (
	"context"
	"database/sql"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/gosimple/slug"

	"content-backend/internal/blocks"
	"content-backend/internal/logger"
	"content-backend/internal/models"
	"content-backend/internal/serializer"
	"content-backend/internal/validation"
)

// Callers match these with errors.Is.
var (
	ErrArticleNotFound = errors.New("article not found")
)

// Dialect selects the SQL flavour of the connected database.
type Dialect string

const (
	DialectPostgres Dialect = "postgres"
	DialectSQLite   Dialect = "sqlite"
)

const queryTimeout = 5 * time.Second

var (
	//go:embed schema_postgres.sql
	postgresSchema string
	//go:embed schema_sqlite.sql
	sqliteSchema string
)

// ArticleService persists articles and runs the save pipeline: validate, normalize,
// derive summary and slug, bump version.
type ArticleService struct {
	DB      *sql.DB
	Dialect Dialect

	// Policy is the media placement used whenever a document is normalized.
	Policy        blocks.Policy
	SummaryLength int

	Log logger.Logger
}

// EnsureSchema creates the articles table when it does not exist yet.
func (s *ArticleService) EnsureSchema(ctx context.Context) error {
	schema := postgresSchema
	if s.Dialect == DialectSQLite {
		schema = sqliteSchema
	}
	if _, err := s.DB.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("ensure schema: %w", err)
	}
	return nil
}

// Create opens a new article holding the seeded document (one empty paragraph and the
// Media marker).
func (s *ArticleService) Create(ctx context.Context, req models.CreateArticleRequest) (*models.Article, error) {
	if err := validation.Struct(req); err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	kind := req.Kind
	if kind == "" {
		kind = models.KindArticle
	}

	now := time.Now().UTC()
	doc := blocks.NewStore(blocks.WithPolicy(s.Policy)).Blocks()
	a := &models.Article{
		ID:        uuid.New(),
		Title:     strings.TrimSpace(req.Title),
		Kind:      kind,
		Status:    models.StatusDraft,
		Blocks:    serializer.ToStorageForm(doc),
		Summary:   serializer.Summary(doc, s.SummaryLength),
		Version:   1,
		CreatedAt: now,
		UpdatedAt: now,
	}

	var err error
	if a.Slug, err = s.uniqueSlug(ctx, a.Title, a.ID); err != nil {
		return nil, err
	}

	mediaJSON, err := json.Marshal(a.Media)
	if err != nil {
		return nil, err
	}

	query := `
		INSERT INTO articles (id, slug, title, kind, status, blocks, media, summary, version, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`
	_, err = s.DB.ExecContext(ctx, s.rebind(query),
		a.ID, a.Slug, a.Title, a.Kind, a.Status, a.Blocks, string(mediaJSON), a.Summary, a.Version, a.CreatedAt, a.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("create article: %w", err)
	}

	s.log().Info("article created", "id", a.ID, "slug", a.Slug, "kind", a.Kind)
	return a, nil
}

// Get fetches an article. Its blocks are returned in normalized form.
func (s *ArticleService) Get(ctx context.Context, id uuid.UUID) (*models.Article, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	return s.queryOne(ctx, `SELECT `+articleColumns+` FROM articles WHERE id = ?`, id)
}

// GetBySlug fetches a published article. Drafts are reported as not found.
func (s *ArticleService) GetBySlug(ctx context.Context, articleSlug string) (*models.Article, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	return s.queryOne(ctx,
		`SELECT `+articleColumns+` FROM articles WHERE slug = ? AND status = ?`,
		articleSlug, models.StatusPublished)
}

// Save runs the save pipeline and persists the result. Overlapping saves resolve as
// last-write-wins; every save increments the version.
func (s *ArticleService) Save(ctx context.Context, id uuid.UUID, req models.SaveArticleRequest) (*models.SaveResult, error) {
	if err := validation.Struct(req); err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	current, err := s.queryOne(ctx, `SELECT `+articleColumns+` FROM articles WHERE id = ?`, id)
	if err != nil {
		return nil, err
	}

	current.Title = strings.TrimSpace(req.Title)
	if req.Kind != "" {
		current.Kind = req.Kind
	}
	if req.Status != "" {
		current.Status = req.Status
	}
	current.Blocks = req.Blocks
	current.Media = req.Media

	return s.persist(ctx, current)
}

// ApplyEdit runs one editing command against the stored document and saves the result
// when the command applied. Commands that cannot apply leave the article untouched.
func (s *ArticleService) ApplyEdit(ctx context.Context, id uuid.UUID, edit blocks.Edit) (*models.Article, blocks.EditResult, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	a, err := s.queryOne(ctx, `SELECT `+articleColumns+` FROM articles WHERE id = ?`, id)
	if err != nil {
		return nil, blocks.EditResult{}, err
	}

	store := blocks.LoadStore(s.Document(a),
		blocks.WithPolicy(s.Policy),
		blocks.WithLogger(s.log().With("article_id", id)),
	)
	res := store.Apply(edit)
	if !res.Applied {
		return a, res, nil
	}

	a.Blocks = serializer.ToStorageForm(store.Blocks())
	saved, err := s.persist(ctx, a)
	if err != nil {
		return nil, res, err
	}
	a.Slug = saved.Slug
	a.Version = saved.Version
	return a, res, nil
}

// Delete permanently removes an article.
func (s *ArticleService) Delete(ctx context.Context, id uuid.UUID) error {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	result, err := s.DB.ExecContext(ctx, s.rebind(`DELETE FROM articles WHERE id = ?`), id)
	if err != nil {
		return fmt.Errorf("delete article: %w", err)
	}

	rows, _ := result.RowsAffected()
	if rows == 0 {
		return ErrArticleNotFound
	}

	s.log().Info("article deleted", "id", id)
	return nil
}

// Document decodes an article's blocks under the service policy.
func (s *ArticleService) Document(a *models.Article) blocks.Document {
	return serializer.FromStorageFormWith(a.Blocks, s.Policy)
}

func (s *ArticleService) persist(ctx context.Context, a *models.Article) (*models.SaveResult, error) {
	doc := s.Document(a)
	a.Blocks = serializer.ToStorageForm(doc)
	a.Summary = serializer.Summary(doc, s.SummaryLength)
	a.UpdatedAt = time.Now().UTC()

	var err error
	if a.Slug, err = s.uniqueSlug(ctx, a.Title, a.ID); err != nil {
		return nil, err
	}

	mediaJSON, err := json.Marshal(a.Media)
	if err != nil {
		return nil, err
	}

	query := `
		UPDATE articles
		SET slug       = ?,
		    title      = ?,
		    kind       = ?,
		    status     = ?,
		    blocks     = ?,
		    media      = ?,
		    summary    = ?,
		    version    = version + 1,
		    updated_at = ?
		WHERE id = ?
		RETURNING version
	`
	err = s.DB.QueryRowContext(ctx, s.rebind(query),
		a.Slug, a.Title, a.Kind, a.Status, a.Blocks, string(mediaJSON), a.Summary, a.UpdatedAt, a.ID,
	).Scan(&a.Version)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrArticleNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("save article: %w", err)
	}

	s.log().Info("article saved", "id", a.ID, "slug", a.Slug, "version", a.Version, "blocks", len(doc))
	return &models.SaveResult{ID: a.ID, Slug: a.Slug, Version: a.Version}, nil
}

const articleColumns = `id, slug, title, kind, status, blocks, media, summary, version, created_at, updated_at`

func (s *ArticleService) queryOne(ctx context.Context, query string, args ...any) (*models.Article, error) {
	a := &models.Article{}
	var mediaJSON []byte

	err := s.DB.QueryRowContext(ctx, s.rebind(query), args...).Scan(
		&a.ID,
		&a.Slug,
		&a.Title,
		&a.Kind,
		&a.Status,
		&a.Blocks,
		&mediaJSON,
		&a.Summary,
		&a.Version,
		&a.CreatedAt,
		&a.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrArticleNotFound
	}
	if err != nil {
		return nil, err
	}

	if len(mediaJSON) > 0 {
		if err := json.Unmarshal(mediaJSON, &a.Media); err != nil {
			return nil, fmt.Errorf("decode media for %s: %w", a.ID, err)
		}
	}
	a.Blocks = serializer.ToStorageForm(s.Document(a))

	return a, nil
}

// uniqueSlug derives a slug from title, suffixing -2, -3, ... until no other article
// holds it.
func (s *ArticleService) uniqueSlug(ctx context.Context, title string, id uuid.UUID) (string, error) {
	base := slug.Make(title)
	if base == "" {
		base = "untitled"
	}

	candidate := base
	for n := 2; ; n++ {
		var owner uuid.UUID
		err := s.DB.QueryRowContext(ctx, s.rebind(`SELECT id FROM articles WHERE slug = ?`), candidate).Scan(&owner)
		if errors.Is(err, sql.ErrNoRows) || (err == nil && owner == id) {
			return candidate, nil
		}
		if err != nil {
			return "", fmt.Errorf("resolve slug: %w", err)
		}
		candidate = base + "-" + strconv.Itoa(n)
	}
}

// rebind rewrites ? placeholders to $N for postgres.
func (s *ArticleService) rebind(query string) string {
	if s.Dialect == DialectSQLite {
		return query
	}
	var b strings.Builder
	n := 0
	for _, r := range query {
		if r == '?' {
			n++
			b.WriteString("$" + strconv.Itoa(n))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

func (s *ArticleService) log() logger.Logger {
	if s.Log == nil {
		return logger.Nop()
	}
	return s.Log
}
