package http

import (
	"errors"
	"io"
	"log/slog"
	"net/http"
	"path/filepath"

	"thoonsheet-backend/internal/domain"
	"thoonsheet-backend/internal/logger"
	"thoonsheet-backend/internal/storage"

	"github.com/gorilla/mux"
)

// ImageHandler serves receipt image upload and download for transactions.
type ImageHandler struct {
	store       storage.FileStore
	maxFileSize int64
	log         *slog.Logger
}

func NewImageHandler(store storage.FileStore, maxFileSize int64) *ImageHandler {
	return &ImageHandler{
		store:       store,
		maxFileSize: maxFileSize,
		log:         logger.WithService("image"),
	}
}

// Upload accepts a multipart form with an "image" part and returns the
// storage key to reference from a transaction.
func (h *ImageHandler) Upload(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxFileSize)
	if err := r.ParseMultipartForm(h.maxFileSize); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "file too large or malformed form"})
		return
	}

	file, header, err := r.FormFile("image")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "missing image file"})
		return
	}
	defer file.Close()

	key, err := h.store.Save(file, filepath.Ext(header.Filename))
	if err != nil {
		if errors.Is(err, storage.ErrUnsupportedExtension) {
			writeError(w, domain.NewValidationError("image", "image must be a jpg, jpeg, png or gif file"))
			return
		}
		writeError(w, err)
		return
	}

	h.log.Info("image uploaded", "key", key, "size", header.Size)
	writeJSON(w, http.StatusCreated, map[string]string{"image": key})
}

func (h *ImageHandler) Download(w http.ResponseWriter, r *http.Request) {
	key := mux.Vars(r)["key"]

	file, err := h.store.Open(key)
	if err != nil {
		writeJSON(w, http.StatusNotFound, errorResponse{Error: "image not found"})
		return
	}
	defer file.Close()

	contentType := "application/octet-stream"
	switch filepath.Ext(key) {
	case ".jpg", ".jpeg":
		contentType = "image/jpeg"
	case ".png":
		contentType = "image/png"
	case ".gif":
		contentType = "image/gif"
	}
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Cache-Control", "private, max-age=3600")
	if _, err := io.Copy(w, file); err != nil {
		h.log.Error("failed to stream image", "key", key, "error", err)
	}
}
