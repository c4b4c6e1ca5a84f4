package handler

import (
	"encoding/json"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"content-backend/internal/blocks"
	"content-backend/internal/logger"
	"content-backend/internal/models"
	"content-backend/internal/render"
	"content-backend/internal/serializer"
	"content-backend/internal/service"
	"content-backend/internal/storage"
	"content-backend/internal/validation"
)

type ArticleHandler struct {
	Service *service.ArticleService
	Storage storage.Storage
	Log     logger.Logger
}

// Register mounts the editor API on a versioned subrouter.
func (h *ArticleHandler) Register(api *mux.Router) {
	api.Use(h.requestLogger)
	api.HandleFunc("/articles", h.CreateArticle).Methods("POST")
	api.HandleFunc("/articles/by-slug/{slug}", h.GetPublished).Methods("GET")
	api.HandleFunc("/articles/{id}", h.GetArticle).Methods("GET")
	api.HandleFunc("/articles/{id}", h.SaveArticle).Methods("PUT")
	api.HandleFunc("/articles/{id}", h.DeleteArticle).Methods("DELETE")
	api.HandleFunc("/articles/{id}/edits", h.ApplyEdit).Methods("POST")
	api.HandleFunc("/articles/{id}/preview", h.Preview).Methods("GET")
	api.HandleFunc("/articles/{id}/text", h.PlainText).Methods("GET")
	api.HandleFunc("/upload", h.UploadImage).Methods("POST")
}

type editResponse struct {
	Applied bool                   `json:"applied"`
	BlockID string                 `json:"block_id,omitempty"`
	Version int                    `json:"version"`
	Blocks  serializer.StorageForm `json:"blocks"`
}

type pageResponse struct {
	ID      uuid.UUID             `json:"id"`
	Slug    string                `json:"slug"`
	Title   string                `json:"title"`
	Kind    models.ArticleKind    `json:"kind"`
	Summary string                `json:"summary,omitempty"`
	Blocks  []render.Presentation `json:"blocks"`
}

type textResponse struct {
	Text    string `json:"text"`
	Summary string `json:"summary"`
}

func (h *ArticleHandler) CreateArticle(w http.ResponseWriter, r *http.Request) {
	var req models.CreateArticleRequest
	if r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			respondError(w, http.StatusBadRequest, "invalid JSON")
			return
		}
	}

	article, err := h.Service.Create(r.Context(), req)
	if err != nil {
		respondServiceError(w, r, "create", err)
		return
	}

	respondJSON(w, http.StatusCreated, article)
}

func (h *ArticleHandler) GetArticle(w http.ResponseWriter, r *http.Request) {
	id, ok := articleID(w, r)
	if !ok {
		return
	}

	article, err := h.Service.Get(r.Context(), id)
	if err != nil {
		respondServiceError(w, r, "get", err)
		return
	}

	respondJSON(w, http.StatusOK, article)
}

func (h *ArticleHandler) SaveArticle(w http.ResponseWriter, r *http.Request) {
	id, ok := articleID(w, r)
	if !ok {
		return
	}

	var req models.SaveArticleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid JSON")
		return
	}

	result, err := h.Service.Save(r.Context(), id, req)
	if err != nil {
		respondServiceError(w, r, "save", err)
		return
	}

	respondJSON(w, http.StatusOK, result)
}

func (h *ArticleHandler) DeleteArticle(w http.ResponseWriter, r *http.Request) {
	id, ok := articleID(w, r)
	if !ok {
		return
	}

	if err := h.Service.Delete(r.Context(), id); err != nil {
		respondServiceError(w, r, "delete", err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

// ApplyEdit runs one editing command. Commands that cannot apply answer 200 with
// applied=false and the unchanged document.
func (h *ArticleHandler) ApplyEdit(w http.ResponseWriter, r *http.Request) {
	id, ok := articleID(w, r)
	if !ok {
		return
	}

	var edit blocks.Edit
	if err := json.NewDecoder(r.Body).Decode(&edit); err != nil {
		respondError(w, http.StatusBadRequest, "invalid JSON")
		return
	}

	article, res, err := h.Service.ApplyEdit(r.Context(), id, edit)
	if err != nil {
		respondServiceError(w, r, "edit", err)
		return
	}

	respondJSON(w, http.StatusOK, editResponse{
		Applied: res.Applied,
		BlockID: res.BlockID,
		Version: article.Version,
		Blocks:  article.Blocks,
	})
}

// Preview renders every block, empty ones included, as the editor shows them.
func (h *ArticleHandler) Preview(w http.ResponseWriter, r *http.Request) {
	id, ok := articleID(w, r)
	if !ok {
		return
	}

	article, err := h.Service.Get(r.Context(), id)
	if err != nil {
		respondServiceError(w, r, "preview", err)
		return
	}

	respondJSON(w, http.StatusOK, h.page(article, render.Document(h.Service.Document(article), article.Media)))
}

// GetPublished renders a published article the way readers see it.
func (h *ArticleHandler) GetPublished(w http.ResponseWriter, r *http.Request) {
	article, err := h.Service.GetBySlug(r.Context(), mux.Vars(r)["slug"])
	if err != nil {
		respondServiceError(w, r, "published", err)
		return
	}

	presentations := render.Visible(render.Document(h.Service.Document(article), article.Media))
	respondJSON(w, http.StatusOK, h.page(article, presentations))
}

func (h *ArticleHandler) PlainText(w http.ResponseWriter, r *http.Request) {
	id, ok := articleID(w, r)
	if !ok {
		return
	}

	article, err := h.Service.Get(r.Context(), id)
	if err != nil {
		respondServiceError(w, r, "text", err)
		return
	}

	doc := h.Service.Document(article)
	respondJSON(w, http.StatusOK, textResponse{
		Text:    serializer.PlainText(doc),
		Summary: serializer.Summary(doc, h.Service.SummaryLength),
	})
}

func (h *ArticleHandler) UploadImage(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, validation.MaxImageSize+1<<20)
	if err := r.ParseMultipartForm(validation.MaxImageSize); err != nil {
		respondError(w, http.StatusBadRequest, "invalid multipart form")
		return
	}

	file, fileHeader, err := r.FormFile("file")
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid file")
		return
	}
	defer file.Close()

	if err := validation.ValidateImageUpload(fileHeader); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	contentType, err := validation.DetectImageType(file, validation.ContentType(fileHeader))
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	fileURL, err := h.Storage.Upload(r.Context(), file, fileHeader.Filename, contentType)
	if err != nil {
		logger.FromContext(r.Context()).Error("upload failed", "filename", fileHeader.Filename, "error", err)
		respondError(w, http.StatusInternalServerError, "file save failed")
		return
	}

	respondJSON(w, http.StatusCreated, map[string]string{"file_url": fileURL})
}

func (h *ArticleHandler) page(a *models.Article, presentations []render.Presentation) pageResponse {
	return pageResponse{
		ID:      a.ID,
		Slug:    a.Slug,
		Title:   a.Title,
		Kind:    a.Kind,
		Summary: a.Summary,
		Blocks:  presentations,
	}
}

// requestLogger scopes the handler logger to one request and stores it in the context.
func (h *ArticleHandler) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		l := h.log().With("method", r.Method, "path", r.URL.Path, "request_id", uuid.NewString())
		next.ServeHTTP(w, r.WithContext(logger.ContextWithLogger(r.Context(), l)))
	})
}

func (h *ArticleHandler) log() logger.Logger {
	if h.Log == nil {
		return logger.Nop()
	}
	return h.Log
}

func articleID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid article id")
		return uuid.Nil, false
	}
	return id, true
}
