package usecase

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"strings"
	"time"

	"github.com/gabriel-vasile/mimetype"
)

const sniffLength = 3072

var (
	videoContentTypes = []string{"video/mp4", "video/webm", "video/ogg", "video/quicktime"}
	pdfContentTypes   = []string{"application/pdf"}
)

type UploadConfig struct {
	VideoBucket        string
	PDFBucket          string
	ScreenshotBucket   string
	MaxVideoBytes      int64
	MaxPDFBytes        int64
	MaxScreenshotBytes int64
}

// UploadFile is one multipart file part. Body is rewound after sniffing, so
// it must be seekable; multipart.File satisfies this.
type UploadFile struct {
	FileName string
	Size     int64
	Body     io.ReadSeeker
}

type UploadService struct {
	storage ObjectStorage
	cfg     UploadConfig
	now     func() time.Time
}

func NewUploadService(storage ObjectStorage, cfg UploadConfig) *UploadService {
	return &UploadService{storage: storage, cfg: cfg, now: time.Now}
}

// Limits reports the configured buckets and per-kind size caps.
func (s *UploadService) Limits() UploadConfig {
	return s.cfg
}

func (s *UploadService) UploadLessonVideo(ctx context.Context, file UploadFile) (StoredObject, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.UploadService.UploadLessonVideo")
	defer span.End()

	return s.upload(ctx, file, s.cfg.VideoBucket, s.cfg.MaxVideoBytes, videoContentTypes, s.timestampedKey)
}

func (s *UploadService) UploadLessonPDF(ctx context.Context, file UploadFile) (StoredObject, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.UploadService.UploadLessonPDF")
	defer span.End()

	return s.upload(ctx, file, s.cfg.PDFBucket, s.cfg.MaxPDFBytes, pdfContentTypes, s.timestampedKey)
}

// UploadPaymentScreenshot stores a payment proof image under
// <method>/<user id>-<unix millis><ext>.
func (s *UploadService) UploadPaymentScreenshot(ctx context.Context, method, userID string, file UploadFile) (StoredObject, error) {
	keyFn := func(_ string, ext string) string {
		return fmt.Sprintf("%s/%s-%d%s", method, userID, s.now().UnixMilli(), ext)
	}
	return s.upload(ctx, file, s.cfg.ScreenshotBucket, s.cfg.MaxScreenshotBytes, nil, keyFn)
}

// upload sniffs the file content and stores it. An empty allowed list accepts
// any image type.
func (s *UploadService) upload(
	ctx context.Context,
	file UploadFile,
	bucket string,
	maxBytes int64,
	allowed []string,
	keyFn func(fileName, ext string) string,
) (StoredObject, error) {
	if file.Body == nil || file.Size <= 0 {
		return StoredObject{}, fmt.Errorf("%w: file is required", ErrInvalidInput)
	}
	if maxBytes > 0 && file.Size > maxBytes {
		return StoredObject{}, fmt.Errorf("%w: file exceeds %d bytes", ErrInvalidInput, maxBytes)
	}

	head := make([]byte, sniffLength)
	n, err := io.ReadFull(file.Body, head)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) && !errors.Is(err, io.EOF) {
		return StoredObject{}, fmt.Errorf("read upload head: %w", err)
	}
	head = head[:n]

	detected := mimetype.Detect(head)
	if !acceptsContentType(detected, allowed) {
		return StoredObject{}, fmt.Errorf("%w: unsupported file type %s", ErrInvalidInput, detected.String())
	}
	if _, err := file.Body.Seek(0, io.SeekStart); err != nil {
		return StoredObject{}, fmt.Errorf("rewind upload: %w", err)
	}

	key := keyFn(file.FileName, detected.Extension())
	stored, err := s.storage.Upload(ctx, ObjectUpload{
		Bucket:      bucket,
		Key:         key,
		ContentType: baseContentType(detected.String()),
		Size:        file.Size,
		Body:        file.Body,
	})
	if err != nil {
		return StoredObject{}, fmt.Errorf("upload object: %w", err)
	}
	return stored, nil
}

func (s *UploadService) timestampedKey(fileName, ext string) string {
	return fmt.Sprintf("%d-%s", s.now().UnixMilli(), SanitizeFileName(fileName, ext))
}

func acceptsContentType(detected *mimetype.MIME, allowed []string) bool {
	if len(allowed) == 0 {
		return strings.HasPrefix(detected.String(), "image/")
	}
	for _, candidate := range allowed {
		if detected.Is(candidate) {
			return true
		}
	}
	return false
}

func baseContentType(value string) string {
	if idx := strings.Index(value, ";"); idx >= 0 {
		return strings.TrimSpace(value[:idx])
	}
	return value
}

// SanitizeFileName keeps letters, digits, dots, dashes and underscores of the
// base name. A name that sanitizes to nothing becomes "file"+ext.
func SanitizeFileName(name, ext string) string {
	base := path.Base(strings.ReplaceAll(strings.TrimSpace(name), "\\", "/"))
	var b strings.Builder
	for _, r := range base {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '.', r == '-', r == '_':
			b.WriteRune(r)
		case r == ' ':
			b.WriteRune('-')
		}
	}
	out := strings.Trim(b.String(), ".-")
	if out == "" {
		return "file" + ext
	}
	return out
}
