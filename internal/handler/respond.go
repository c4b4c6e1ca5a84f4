package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"content-backend/internal/logger"
	"content-backend/internal/service"
	"content-backend/internal/validation"
)

func respondJSON(w http.ResponseWriter, status int, payload any) {
	response, _ := json.Marshal(payload)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload != nil {
		_, _ = w.Write(response)
	}
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}

// respondServiceError maps service and validation failures to HTTP statuses.
func respondServiceError(w http.ResponseWriter, r *http.Request, op string, err error) {
	var ve *validation.ValidationError
	switch {
	case errors.As(err, &ve):
		respondError(w, http.StatusBadRequest, ve.Error())
	case errors.Is(err, service.ErrArticleNotFound):
		respondError(w, http.StatusNotFound, err.Error())
	default:
		logger.FromContext(r.Context()).Error("request failed", "op", op, "error", err)
		respondError(w, http.StatusInternalServerError, "internal error")
	}
}
