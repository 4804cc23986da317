package httpapi

import (
	"bytes"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/riskibarqy/course-marketplace/internal/platform/logging"
	"github.com/riskibarqy/course-marketplace/internal/usecase"
)

// endlessPart streams a multipart file part that never ends on its own and
// counts how much of it the server pulled.
type endlessPart struct {
	prefix io.Reader
	read   int64
	cap    int64
}

func newEndlessPart(capBytes int64) *endlessPart {
	prefix := "--edge\r\n" +
		"Content-Disposition: form-data; name=\"file\"; filename=\"huge.pdf\"\r\n" +
		"Content-Type: application/pdf\r\n\r\n" +
		"%PDF-1.7\n"
	return &endlessPart{prefix: strings.NewReader(prefix), cap: capBytes}
}

func (p *endlessPart) Read(buf []byte) (int, error) {
	if p.read >= p.cap {
		return 0, io.EOF
	}
	n, err := p.prefix.Read(buf)
	if err == io.EOF || n == 0 {
		n = len(buf)
		if remaining := p.cap - p.read; int64(n) > remaining {
			n = int(remaining)
		}
		for i := range buf[:n] {
			buf[i] = 'x'
		}
	}
	p.read += int64(n)
	return n, nil
}

func newUploadHandler(maxPDFBytes int64) *Handler {
	uploads := usecase.NewUploadService(discardStorage{}, usecase.UploadConfig{
		VideoBucket:        "lesson-videos",
		PDFBucket:          "lesson-pdfs",
		ScreenshotBucket:   "payment-screenshots",
		MaxVideoBytes:      1 << 10,
		MaxPDFBytes:        maxPDFBytes,
		MaxScreenshotBytes: 1 << 10,
	})
	return NewHandler(Services{Uploads: uploads}, logging.NewNop())
}

func TestUploadLessonPDF_RejectsOversizedBodyEarly(t *testing.T) {
	t.Parallel()

	handler := newUploadHandler(1 << 10)
	body := newEndlessPart(64 << 20)
	req := httptest.NewRequestWithContext(t.Context(), http.MethodPost, "/v1/upload/pdf", body)
	req.Header.Set("Content-Type", "multipart/form-data; boundary=edge")
	rec := httptest.NewRecorder()

	handler.UploadLessonPDF(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d: %s", rec.Code, rec.Body.String())
	}
	// the cap is the file limit plus form slack; bufio read-ahead adds a little
	if ceiling := int64(1<<10) + multipartSlack + 64<<10; body.read > ceiling {
		t.Fatalf("server read %d bytes, expected at most %d", body.read, ceiling)
	}
}

func TestUploadLessonPDF_AcceptsBodyWithinLimit(t *testing.T) {
	t.Parallel()

	handler := newUploadHandler(1 << 10)
	var form bytes.Buffer
	writer := multipart.NewWriter(&form)
	part, err := writer.CreateFormFile("file", "notes.pdf")
	if err != nil {
		t.Fatalf("create form file: %v", err)
	}
	if _, err := part.Write([]byte("%PDF-1.7\n%âãÏÓ\n")); err != nil {
		t.Fatalf("write part: %v", err)
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("close multipart writer: %v", err)
	}

	req := httptest.NewRequestWithContext(t.Context(), http.MethodPost, "/v1/upload/pdf", &form)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	rec := httptest.NewRecorder()

	handler.UploadLessonPDF(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	if !strings.Contains(rec.Body.String(), "lesson-pdfs") {
		t.Fatalf("expected stored object in response: %s", rec.Body.String())
	}
}
