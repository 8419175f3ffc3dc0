package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	appMiddleware "github.com/markdave123-py/Metadoc/internal/api/middlewares"
	"github.com/markdave123-py/Metadoc/internal/core"
	"github.com/markdave123-py/Metadoc/internal/core/storage"
	"github.com/markdave123-py/Metadoc/internal/services"
)

type DocumentHandler struct {
	docs           *services.DocumentService
	maxUploadBytes int64
	logger         *zap.Logger
}

func NewDocumentHandler(docs *services.DocumentService, maxUploadBytes int64, logger *zap.Logger) *DocumentHandler {
	return &DocumentHandler{docs: docs, maxUploadBytes: maxUploadBytes, logger: logger}
}

// UploadDocument stores the uploaded file, derives its metadata and returns it.
func (h *DocumentHandler) UploadDocument(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadBytes)
	if err := r.ParseMultipartForm(h.maxUploadBytes); err != nil {
		http.Error(w, "invalid multipart form", http.StatusBadRequest)
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		http.Error(w, "invalid file", http.StatusBadRequest)
		return
	}
	defer file.Close()

	filename := sanitizeFilename(header.Filename)
	if filename == "" {
		http.Error(w, "invalid file name", http.StatusBadRequest)
		return
	}

	data, err := io.ReadAll(file)
	if err != nil {
		http.Error(w, "could not read upload", http.StatusBadRequest)
		return
	}

	contentType := header.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	userID, _ := appMiddleware.UserIDFromContext(r.Context())

	uploadctx, cancel := context.WithTimeout(r.Context(), 5*time.Minute)
	defer cancel()

	rec, err := h.docs.Upload(uploadctx, userID, filename, contentType, data)
	switch {
	case err == nil:
	case errors.Is(err, core.ErrUnsupportedFormat):
		http.Error(w, "Unsupported file type.", http.StatusUnsupportedMediaType)
		return
	case errors.Is(err, core.ErrDecode), errors.Is(err, core.ErrExtraction):
		http.Error(w, err.Error(), http.StatusUnprocessableEntity)
		return
	case errors.Is(err, core.ErrInvalidName):
		http.Error(w, "invalid file name", http.StatusBadRequest)
		return
	default:
		h.logger.Error("upload failed", zap.String("filename", filename), zap.Error(err))
		http.Error(w, fmt.Sprintf("upload failed: %v", err), http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, rec)
}

func (h *DocumentHandler) GetDocuments(w http.ResponseWriter, r *http.Request) {
	userID, _ := appMiddleware.UserIDFromContext(r.Context())

	documents, err := h.docs.List(r.Context(), userID)
	if err != nil {
		h.logger.Error("list documents failed", zap.Error(err))
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, documents)
}

// GetMetadata returns the stored metadata record of a filename.
func (h *DocumentHandler) GetMetadata(w http.ResponseWriter, r *http.Request) {
	filename := chi.URLParam(r, "filename")
	userID, _ := appMiddleware.UserIDFromContext(r.Context())

	rec, err := h.docs.Get(r.Context(), userID, filename)
	if err != nil {
		h.storeError(w, filename, err)
		return
	}
	writeJSON(w, http.StatusOK, rec)
}

// GetDocument returns one of the caller's documents by ID.
func (h *DocumentHandler) GetDocument(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	userID, _ := appMiddleware.UserIDFromContext(r.Context())

	doc, err := h.docs.GetDocument(r.Context(), userID, id)
	if err != nil {
		h.storeError(w, id, err)
		return
	}
	writeJSON(w, http.StatusOK, doc)
}

// DownloadMetadata serves the stored metadata JSON as an attachment.
func (h *DocumentHandler) DownloadMetadata(w http.ResponseWriter, r *http.Request) {
	filename := chi.URLParam(r, "filename")
	userID, _ := appMiddleware.UserIDFromContext(r.Context())

	raw, err := h.docs.Raw(r.Context(), userID, filename)
	if err != nil {
		h.storeError(w, filename, err)
		return
	}

	name := storage.MetadataFileName(sanitizeFilename(filename))
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", name))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(raw)
}

func (h *DocumentHandler) storeError(w http.ResponseWriter, filename string, err error) {
	switch {
	case errors.Is(err, core.ErrNotFound):
		http.Error(w, "not found", http.StatusNotFound)
		return
	case errors.Is(err, core.ErrInvalidName):
		http.Error(w, "invalid file name", http.StatusBadRequest)
		return
	}
	h.logger.Error("metadata lookup failed", zap.String("filename", filename), zap.Error(err))
	http.Error(w, "metadata lookup failed", http.StatusInternalServerError)
}

// sanitizeFilename drops directory components and leading dots from a
// client-supplied name.
func sanitizeFilename(name string) string {
	name = strings.ReplaceAll(name, "\\", "/")
	name = filepath.Base(name)
	name = strings.TrimLeft(strings.TrimSpace(name), ".")
	if name == "/" {
		return ""
	}
	return strings.ReplaceAll(name, " ", "_")
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
