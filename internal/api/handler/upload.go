package handler

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/NumaanisCoder/LI-backend/internal/api/middleware"
	"github.com/NumaanisCoder/LI-backend/internal/domain/model"
	"github.com/NumaanisCoder/LI-backend/internal/domain/repository"
)

const (
	// multipartOverhead is the allowance for boundaries and part headers on top of
	// the file size ceiling.
	multipartOverhead = 1 << 20
	// multipartMemory is held in memory before parts spill to temporary files.
	multipartMemory = 32 << 20
)

// readUpload parses the whole multipart body and reads field into memory.
// It returns model.ErrMissingFile, model.ErrFileTooLarge or a wrapped
// model.ErrInvalidUpload for client-side problems.
func readUpload(w http.ResponseWriter, r *http.Request, field string, maxBytes int64) (*model.Upload, error) {
	r.Body = http.MaxBytesReader(w, r.Body, maxBytes+multipartOverhead)

	if err := r.ParseMultipartForm(multipartMemory); err != nil {
		var maxErr *http.MaxBytesError
		switch {
		case errors.Is(err, http.ErrNotMultipart):
			return nil, model.ErrMissingFile
		case errors.As(err, &maxErr):
			return nil, model.ErrFileTooLarge
		default:
			return nil, fmt.Errorf("%w: %v", model.ErrInvalidUpload, err)
		}
	}
	defer func() { _ = r.MultipartForm.RemoveAll() }()

	file, header, err := r.FormFile(field)
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) {
			return nil, model.ErrMissingFile
		}
		return nil, fmt.Errorf("%w: %v", model.ErrInvalidUpload, err)
	}
	defer file.Close()

	if header.Size > maxBytes {
		return nil, model.ErrFileTooLarge
	}

	body, err := io.ReadAll(file)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", model.ErrInvalidUpload, err)
	}

	return &model.Upload{
		FileName:    header.Filename,
		ContentType: header.Header.Get("Content-Type"),
		Size:        int64(len(body)),
		Body:        body,
	}, nil
}

// handleError logs err and writes the matching client or dependency error response.
func handleError(w http.ResponseWriter, r *http.Request, logger *slog.Logger, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, model.ErrMissingFile):
		status = http.StatusBadRequest
		Error(w, status, "missing_file", "No file uploaded")
	case errors.Is(err, model.ErrFileTooLarge):
		status = http.StatusBadRequest
		Error(w, status, "file_too_large", "File exceeds the maximum upload size")
	case errors.Is(err, model.ErrInvalidUpload):
		status = http.StatusBadRequest
		Error(w, status, "invalid_upload", err.Error())
	case errors.Is(err, model.ErrEmptyIdentifier):
		status = http.StatusBadRequest
		Error(w, status, "invalid_id", "Identifier is required")
	case errors.Is(err, repository.ErrObjectNotFound):
		status = http.StatusNotFound
		Error(w, status, "not_found", "Audio file not found")
	default:
		Error(w, status, "storage_error", err.Error())
	}

	level := slog.LevelWarn
	if status >= http.StatusInternalServerError {
		level = slog.LevelError
	}
	logger.Log(r.Context(), level, "request failed",
		slog.String("request_id", middleware.GetRequestID(r.Context())),
		slog.String("method", r.Method),
		slog.String("path", r.URL.Path),
		slog.Int("status", status),
		slog.String("error", err.Error()),
	)
}
