package s3

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/url"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	awss3 "github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/smithy-go"
	awsmiddleware "github.com/aws/smithy-go/middleware"
	smithyhttp "github.com/aws/smithy-go/transport/http"
	crerr "github.com/cockroachdb/errors"
	"github.com/riskibarqy/course-marketplace/internal/platform/logging"
	"github.com/riskibarqy/course-marketplace/internal/platform/resilience"
	"github.com/riskibarqy/course-marketplace/internal/usecase"
	"github.com/valyala/bytebufferpool"
)

var errStorageTransient = crerr.New("object storage transient failure")

// bufferedUploadLimit is the largest body copied into memory before PutObject.
const bufferedUploadLimit = 1 << 20

// PutObjectAPI is the subset of the S3 client used for uploads.
type PutObjectAPI interface {
	PutObject(ctx context.Context, params *awss3.PutObjectInput, optFns ...func(*awss3.Options)) (*awss3.PutObjectOutput, error)
}

type ClientConfig struct {
	Endpoint       string
	Region         string
	AccessKey      string
	SecretKey      string
	PublicBaseURL  string
	UsePathStyle   bool
	Logger         *logging.Logger
	CircuitBreaker resilience.CircuitBreakerConfig
}

type Client struct {
	api           PutObjectAPI
	publicBaseURL string
	logger        *logging.Logger
	breaker       *resilience.CircuitBreaker
}

// NewClient builds an S3 client for an S3 compatible endpoint.
func NewClient(ctx context.Context, cfg ClientConfig) (*Client, error) {
	opts := []func(*awsconfig.LoadOptions) error{
		awsconfig.WithRegion(cfg.Region),
		awsconfig.WithAPIOptions([]func(*awsmiddleware.Stack) error{removeDisableGzip()}),
	}
	// without static keys the default chain (env, shared config, IAM role) applies
	if cfg.AccessKey != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, ""),
		))
	}
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, crerr.Wrap(err, "load s3 config")
	}

	api := awss3.NewFromConfig(awsCfg, func(o *awss3.Options) {
		if endpoint := strings.TrimSpace(cfg.Endpoint); endpoint != "" {
			o.BaseEndpoint = aws.String(endpoint)
		}
		o.UsePathStyle = cfg.UsePathStyle
	})
	return NewClientWithAPI(api, cfg), nil
}

func NewClientWithAPI(api PutObjectAPI, cfg ClientConfig) *Client {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Default()
	}
	publicBaseURL := strings.TrimRight(strings.TrimSpace(cfg.PublicBaseURL), "/")
	if publicBaseURL == "" {
		publicBaseURL = strings.TrimRight(strings.TrimSpace(cfg.Endpoint), "/")
	}

	return &Client{
		api:           api,
		publicBaseURL: publicBaseURL,
		logger:        logger,
		breaker: resilience.NewCircuitBreaker("object_storage", cfg.CircuitBreaker, func(name string, from, to resilience.CircuitState) {
			logger.Warn("circuit breaker state changed", "breaker", name, "from", from, "to", to)
		}),
	}
}

func (c *Client) Upload(ctx context.Context, object usecase.ObjectUpload) (usecase.StoredObject, error) {
	if strings.TrimSpace(object.Bucket) == "" || strings.TrimSpace(object.Key) == "" {
		return usecase.StoredObject{}, fmt.Errorf("%w: bucket and key are required", usecase.ErrInvalidInput)
	}

	body, size, release, err := uploadBody(object)
	if err != nil {
		return usecase.StoredObject{}, err
	}
	defer release()

	err = c.breaker.Execute(func() error {
		_, putErr := c.api.PutObject(ctx, &awss3.PutObjectInput{
			Bucket:        aws.String(object.Bucket),
			Key:           aws.String(object.Key),
			Body:          body,
			ContentLength: aws.Int64(size),
			ContentType:   aws.String(object.ContentType),
		})
		if putErr != nil {
			return classify(putErr, object.Bucket, object.Key)
		}
		return nil
	}, isTransient)
	switch {
	case err == nil:
	case crerr.Is(err, resilience.ErrCircuitOpen):
		c.logger.WarnContext(ctx, "object storage circuit breaker rejected request", "state", c.breaker.State())
		return usecase.StoredObject{}, fmt.Errorf("%w: object storage is temporarily unavailable", usecase.ErrDependencyUnavailable)
	case isTransient(err):
		c.logger.WarnContext(ctx, "object storage upload failed", "bucket", object.Bucket, "key", object.Key, "error", err)
		return usecase.StoredObject{}, fmt.Errorf("%w: %v", usecase.ErrDependencyUnavailable, err)
	default:
		c.logger.WarnContext(ctx, "object storage rejected upload", "bucket", object.Bucket, "key", object.Key, "error", err)
		return usecase.StoredObject{}, err
	}

	return usecase.StoredObject{
		URL:         c.PublicURL(object.Bucket, object.Key),
		Path:        object.Key,
		Size:        size,
		ContentType: object.ContentType,
	}, nil
}

// PublicURL is the address clients use to fetch a stored object.
func (c *Client) PublicURL(bucket, key string) string {
	segments := strings.Split(key, "/")
	for i, s := range segments {
		segments[i] = url.PathEscape(s)
	}
	return c.publicBaseURL + "/" + url.PathEscape(bucket) + "/" + strings.Join(segments, "/")
}

// uploadBody copies small objects into a pooled buffer and streams larger
// ones straight from the caller's reader.
func uploadBody(object usecase.ObjectUpload) (io.ReadSeeker, int64, func(), error) {
	if object.Body == nil {
		return nil, 0, nil, fmt.Errorf("%w: upload body is required", usecase.ErrInvalidInput)
	}
	size := object.Size
	if size <= 0 {
		end, err := object.Body.Seek(0, io.SeekEnd)
		if err != nil {
			return nil, 0, nil, crerr.Wrap(err, "measure upload body")
		}
		if _, err := object.Body.Seek(0, io.SeekStart); err != nil {
			return nil, 0, nil, crerr.Wrap(err, "rewind upload body")
		}
		size = end
	}
	if size > bufferedUploadLimit {
		return object.Body, size, func() {}, nil
	}

	buf := bytebufferpool.Get()
	n, err := buf.ReadFrom(io.LimitReader(object.Body, size))
	if err != nil {
		bytebufferpool.Put(buf)
		return nil, 0, nil, crerr.Wrap(err, "buffer upload body")
	}
	return bytes.NewReader(buf.B), n, func() { bytebufferpool.Put(buf) }, nil
}

func isTransient(err error) bool {
	return crerr.Is(err, errStorageTransient)
}

// classify marks throttling, server errors and transport failures as
// transient. Other API errors are the caller's fault.
func classify(err error, bucket, key string) error {
	wrapped := crerr.Wrapf(err, "put object %s/%s", bucket, key)
	if crerr.Is(err, context.Canceled) {
		return wrapped
	}

	var respErr *smithyhttp.ResponseError
	if crerr.As(err, &respErr) {
		code := respErr.HTTPStatusCode()
		if code == 429 || code >= 500 {
			return crerr.Mark(wrapped, errStorageTransient)
		}
		return wrapped
	}
	var apiErr smithy.APIError
	if crerr.As(err, &apiErr) {
		return wrapped
	}
	return crerr.Mark(wrapped, errStorageTransient)
}

// removeDisableGzip drops the accept-encoding middleware that breaks request
// signing on some S3 compatible services.
func removeDisableGzip() func(*awsmiddleware.Stack) error {
	return func(stack *awsmiddleware.Stack) error {
		if _, ok := stack.Finalize.Get("DisableAcceptEncodingGzip"); ok {
			_, err := stack.Finalize.Remove("DisableAcceptEncodingGzip")
			return err
		}
		return nil
	}
}
