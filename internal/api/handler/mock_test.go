package handler

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"testing"

	"github.com/NumaanisCoder/LI-backend/internal/domain/model"
	"github.com/NumaanisCoder/LI-backend/internal/usecase"
)

// Mock AssetService

type mockAssetService struct {
	uploadVideoFn func(ctx context.Context, upload *model.Upload) (*usecase.UploadVideoOutput, error)
	listVideosFn  func(ctx context.Context) ([]model.Asset, error)
	uploadAudioFn func(ctx context.Context, upload *model.Upload) (*usecase.UploadAudioOutput, error)
	listAudioFn   func(ctx context.Context) ([]model.Asset, error)
	getAudioFn    func(ctx context.Context, id string) (*model.Asset, error)
	deleteAudioFn func(ctx context.Context, id string) error
}

func (m *mockAssetService) UploadVideo(ctx context.Context, upload *model.Upload) (*usecase.UploadVideoOutput, error) {
	if m.uploadVideoFn != nil {
		return m.uploadVideoFn(ctx, upload)
	}
	return nil, nil
}

func (m *mockAssetService) ListVideos(ctx context.Context) ([]model.Asset, error) {
	if m.listVideosFn != nil {
		return m.listVideosFn(ctx)
	}
	return nil, nil
}

func (m *mockAssetService) UploadAudio(ctx context.Context, upload *model.Upload) (*usecase.UploadAudioOutput, error) {
	if m.uploadAudioFn != nil {
		return m.uploadAudioFn(ctx, upload)
	}
	return nil, nil
}

func (m *mockAssetService) ListAudio(ctx context.Context) ([]model.Asset, error) {
	if m.listAudioFn != nil {
		return m.listAudioFn(ctx)
	}
	return nil, nil
}

func (m *mockAssetService) GetAudio(ctx context.Context, id string) (*model.Asset, error) {
	if m.getAudioFn != nil {
		return m.getAudioFn(ctx, id)
	}
	return nil, nil
}

func (m *mockAssetService) DeleteAudio(ctx context.Context, id string) error {
	if m.deleteAudioFn != nil {
		return m.deleteAudioFn(ctx, id)
	}
	return nil
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// multipartRequest builds a multipart/form-data request carrying one file part.
// An empty field produces a form with only a text field.
func multipartRequest(t *testing.T, target, field, fileName, contentType string, content []byte) *http.Request {
	t.Helper()

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)

	if field == "" {
		if err := mw.WriteField("title", "no file here"); err != nil {
			t.Fatalf("failed to write field: %v", err)
		}
	} else {
		h := make(textproto.MIMEHeader)
		h.Set("Content-Disposition", `form-data; name="`+field+`"; filename="`+fileName+`"`)
		h.Set("Content-Type", contentType)
		part, err := mw.CreatePart(h)
		if err != nil {
			t.Fatalf("failed to create part: %v", err)
		}
		if _, err := part.Write(content); err != nil {
			t.Fatalf("failed to write part: %v", err)
		}
	}

	if err := mw.Close(); err != nil {
		t.Fatalf("failed to close multipart writer: %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, target, &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}
