package s3

import (
	"context"
	"errors"
	"io"
	"net/http"
	"strings"
	"testing"
	"time"

	awss3 "github.com/aws/aws-sdk-go-v2/service/s3"
	smithyhttp "github.com/aws/smithy-go/transport/http"
	"github.com/riskibarqy/course-marketplace/internal/platform/logging"
	"github.com/riskibarqy/course-marketplace/internal/platform/resilience"
	"github.com/riskibarqy/course-marketplace/internal/usecase"
)

type fakePutObject struct {
	calls  int
	body   string
	length int64
	reader io.Reader
	err    error
}

func (f *fakePutObject) PutObject(_ context.Context, params *awss3.PutObjectInput, _ ...func(*awss3.Options)) (*awss3.PutObjectOutput, error) {
	f.calls++
	f.reader = params.Body
	if params.ContentLength != nil {
		f.length = *params.ContentLength
	}
	raw, _ := io.ReadAll(params.Body)
	f.body = string(raw)
	if f.err != nil {
		return nil, f.err
	}
	return &awss3.PutObjectOutput{}, nil
}

func statusError(code int) error {
	return &smithyhttp.ResponseError{
		Response: &smithyhttp.Response{Response: &http.Response{StatusCode: code}},
		Err:      errors.New("storage said no"),
	}
}

func newTestClient(api PutObjectAPI) *Client {
	return NewClientWithAPI(api, ClientConfig{
		Endpoint: "http://storage.local/",
		Logger:   logging.NewNop(),
		CircuitBreaker: resilience.CircuitBreakerConfig{
			Enabled:          true,
			FailureThreshold: 2,
			OpenTimeout:      time.Minute,
			HalfOpenMaxReq:   1,
		},
	})
}

func TestClient_UploadReturnsPublicURL(t *testing.T) {
	t.Parallel()

	api := &fakePutObject{}
	client := newTestClient(api)

	stored, err := client.Upload(t.Context(), usecase.ObjectUpload{
		Bucket:      "lesson-pdfs",
		Key:         "1700000000000-notes v2.pdf",
		ContentType: "application/pdf",
		Body:        strings.NewReader("%PDF-1.7"),
	})
	if err != nil {
		t.Fatalf("upload: %v", err)
	}
	if stored.URL != "http://storage.local/lesson-pdfs/1700000000000-notes%20v2.pdf" {
		t.Fatalf("unexpected url: %s", stored.URL)
	}
	if stored.Size != int64(len("%PDF-1.7")) || api.body != "%PDF-1.7" {
		t.Fatalf("unexpected size or body: %d %q", stored.Size, api.body)
	}
}

func TestClient_UploadStreamsLargeBodies(t *testing.T) {
	t.Parallel()

	api := &fakePutObject{}
	client := newTestClient(api)
	payload := strings.Repeat("v", bufferedUploadLimit+1)
	body := strings.NewReader(payload)

	stored, err := client.Upload(t.Context(), usecase.ObjectUpload{
		Bucket:      "lesson-videos",
		Key:         "lecture.mp4",
		ContentType: "video/mp4",
		Body:        body,
		Size:        int64(len(payload)),
	})
	if err != nil {
		t.Fatalf("upload: %v", err)
	}
	if api.reader != body {
		t.Fatalf("expected the caller's reader to be streamed")
	}
	if api.length != int64(len(payload)) || stored.Size != int64(len(payload)) {
		t.Fatalf("unexpected lengths: content-length=%d stored=%d", api.length, stored.Size)
	}
	if len(api.body) != len(payload) {
		t.Fatalf("expected full body, got %d bytes", len(api.body))
	}
}

func TestClient_UploadMeasuresUnsizedBodies(t *testing.T) {
	t.Parallel()

	api := &fakePutObject{}
	client := newTestClient(api)
	body := strings.NewReader("%PDF-1.7 notes")
	if _, err := body.Seek(5, io.SeekStart); err != nil {
		t.Fatalf("seek: %v", err)
	}

	stored, err := client.Upload(t.Context(), usecase.ObjectUpload{
		Bucket: "lesson-pdfs",
		Key:    "notes.pdf",
		Body:   body,
	})
	if err != nil {
		t.Fatalf("upload: %v", err)
	}
	if api.length != 14 || stored.Size != 14 || api.body != "%PDF-1.7 notes" {
		t.Fatalf("unexpected upload: length=%d size=%d body=%q", api.length, stored.Size, api.body)
	}
}

func TestClient_TransientFailuresOpenBreaker(t *testing.T) {
	t.Parallel()

	api := &fakePutObject{err: statusError(http.StatusServiceUnavailable)}
	client := newTestClient(api)
	upload := func() error {
		_, err := client.Upload(t.Context(), usecase.ObjectUpload{
			Bucket: "payment-screenshots",
			Key:    "instapay/u-1.png",
			Body:   strings.NewReader("png"),
		})
		return err
	}

	for i := 0; i < 2; i++ {
		if err := upload(); !errors.Is(err, usecase.ErrDependencyUnavailable) {
			t.Fatalf("attempt %d: expected dependency unavailable, got %v", i, err)
		}
	}
	if err := upload(); !errors.Is(err, usecase.ErrDependencyUnavailable) {
		t.Fatalf("expected open breaker rejection, got %v", err)
	}
	if api.calls != 2 {
		t.Fatalf("expected breaker to short-circuit the third call, got %d calls", api.calls)
	}
}

func TestClient_ClientErrorsDoNotTripBreaker(t *testing.T) {
	t.Parallel()

	api := &fakePutObject{err: statusError(http.StatusForbidden)}
	client := newTestClient(api)

	for i := 0; i < 3; i++ {
		_, err := client.Upload(t.Context(), usecase.ObjectUpload{
			Bucket: "lesson-videos",
			Key:    "clip.mp4",
			Body:   strings.NewReader("mp4"),
		})
		if err == nil || errors.Is(err, usecase.ErrDependencyUnavailable) {
			t.Fatalf("expected plain error, got %v", err)
		}
	}
	if client.breaker.State() != resilience.CircuitStateClosed {
		t.Fatalf("expected closed breaker, got %s", client.breaker.State())
	}
}
