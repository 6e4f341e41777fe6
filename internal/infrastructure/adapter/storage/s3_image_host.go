package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3/s3manager"
	"github.com/aws/aws-sdk-go/service/s3/s3manager/s3manageriface"
	"github.com/cenkalti/backoff/v4"

	errs "github.com/amirhossein-jamali/headshot-service/internal/domain/error"
	coreport "github.com/amirhossein-jamali/headshot-service/internal/domain/port/core"
	"github.com/amirhossein-jamali/headshot-service/internal/domain/port/gateway"
)

const defaultContentType = "image/png"

// Config holds the S3 bucket settings
type Config struct {
	Bucket          string        `mapstructure:"bucket"`
	Region          string        `mapstructure:"region"`
	AccessKeyID     string        `mapstructure:"access_key_id"`
	SecretAccessKey string        `mapstructure:"secret_access_key"`
	Endpoint        string        `mapstructure:"endpoint"`
	PublicBaseURL   string        `mapstructure:"public_base_url"`
	UploadAttempts  int           `mapstructure:"upload_attempts"`
	RetryDelay      time.Duration `mapstructure:"retry_delay"`
	DownloadTimeout time.Duration `mapstructure:"download_timeout"`
}

// Validate checks the bucket settings
func (c Config) Validate() error {
	if c.Bucket == "" {
		return errors.New("storage bucket is required")
	}
	if c.Region == "" {
		return errors.New("storage region is required")
	}
	if c.UploadAttempts < 1 {
		return fmt.Errorf("upload attempts must be at least 1, got: %d", c.UploadAttempts)
	}
	return nil
}

// S3ImageHost implements gateway.ImageHost by copying images into an S3 bucket
type S3ImageHost struct {
	uploader   s3manageriface.UploaderAPI
	httpClient *http.Client
	config     Config
	logger     coreport.Logger
}

var _ gateway.ImageHost = (*S3ImageHost)(nil)

// NewS3ImageHost creates an image host backed by an AWS session
func NewS3ImageHost(cfg Config, logger coreport.Logger) (*S3ImageHost, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	awsConfig := &aws.Config{Region: aws.String(cfg.Region)}
	if cfg.AccessKeyID != "" {
		awsConfig.Credentials = credentials.NewStaticCredentials(cfg.AccessKeyID, cfg.SecretAccessKey, "")
	}
	if cfg.Endpoint != "" {
		awsConfig.Endpoint = aws.String(cfg.Endpoint)
		awsConfig.S3ForcePathStyle = aws.Bool(true)
	}

	sess, err := session.NewSession(awsConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create AWS session: %w", err)
	}

	return NewS3ImageHostWithUploader(s3manager.NewUploader(sess), &http.Client{Timeout: cfg.DownloadTimeout}, cfg, logger), nil
}

// NewS3ImageHostWithUploader creates an image host around an existing uploader
func NewS3ImageHostWithUploader(uploader s3manageriface.UploaderAPI, httpClient *http.Client, cfg Config, logger coreport.Logger) *S3ImageHost {
	if cfg.UploadAttempts < 1 {
		cfg.UploadAttempts = 1
	}
	return &S3ImageHost{
		uploader:   uploader,
		httpClient: httpClient,
		config:     cfg,
		logger:     logger.With(map[string]any{"component": "s3", "bucket": cfg.Bucket}),
	}
}

// Store copies the image at sourceURL to key, overwriting any previous object.
// The whole copy is retried up to the configured number of attempts.
func (h *S3ImageHost) Store(ctx context.Context, key, sourceURL string) (string, error) {
	var location string
	attempt := 0

	operation := func() error {
		attempt++
		url, err := h.copy(ctx, key, sourceURL)
		if err != nil {
			return err
		}
		location = url
		return nil
	}

	notify := func(err error, next time.Duration) {
		h.logger.Warn("Image upload failed, retrying", map[string]any{
			"key":        key,
			"attempt":    attempt,
			"next_retry": next.String(),
			"error":      err.Error(),
		})
	}

	if err := backoff.RetryNotify(operation, h.newBackOff(ctx), notify); err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return "", ctxErr
		}
		h.logger.Error("Image upload failed", map[string]any{
			"key":      key,
			"attempts": attempt,
			"error":    err.Error(),
		})
		return "", fmt.Errorf("%w: upload %s: %v", errs.ErrExternalService, key, err)
	}

	h.logger.Info("Image stored", map[string]any{"key": key, "url": location})
	return location, nil
}

func (h *S3ImageHost) newBackOff(ctx context.Context) backoff.BackOff {
	delay := h.config.RetryDelay
	if delay <= 0 {
		delay = 500 * time.Millisecond
	}
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = delay
	b.MaxElapsedTime = 0
	return backoff.WithContext(backoff.WithMaxRetries(b, uint64(h.config.UploadAttempts-1)), ctx)
}

// copy downloads the source image and streams it into the bucket
func (h *S3ImageHost) copy(ctx context.Context, key, sourceURL string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, sourceURL, nil)
	if err != nil {
		return "", backoff.Permanent(fmt.Errorf("invalid source url: %w", err))
	}

	resp, err := h.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("download source image: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		_, _ = io.Copy(io.Discard, resp.Body)
		err := fmt.Errorf("download source image: unexpected status %d", resp.StatusCode)
		// the temporary output is gone or forbidden, retrying will not help
		if resp.StatusCode >= 400 && resp.StatusCode < 500 {
			return "", backoff.Permanent(err)
		}
		return "", err
	}

	contentType := resp.Header.Get("Content-Type")
	if !strings.HasPrefix(contentType, "image/") {
		contentType = defaultContentType
	}

	out, err := h.uploader.UploadWithContext(ctx, &s3manager.UploadInput{
		Bucket:      aws.String(h.config.Bucket),
		Key:         aws.String(key),
		Body:        resp.Body,
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("put object: %w", err)
	}

	return h.publicURL(key, out.Location), nil
}

func (h *S3ImageHost) publicURL(key, location string) string {
	if h.config.PublicBaseURL == "" {
		return location
	}
	return strings.TrimRight(h.config.PublicBaseURL, "/") + "/" + key
}
