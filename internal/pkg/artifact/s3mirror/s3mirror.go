// Package s3mirror copies the written artifact to an S3 compatible object storage.
package s3mirror

import (
	"context"
	"net/http"
	"strings"
	"sync"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/sfpd/picklist-dependency/internal/pkg/log"
	"github.com/sfpd/picklist-dependency/internal/pkg/utils/errors"
)

const (
	DefaultRegion = "us-east-1"
	contentType   = "text/csv; charset=utf-8"
)

type Config struct {
	Endpoint  string `configKey:"s3Endpoint" configUsage:"S3 endpoint to mirror the CSV to, for example \"s3.amazonaws.com\"."`
	Bucket    string `configKey:"s3Bucket" configUsage:"S3 bucket name."`
	Prefix    string `configKey:"s3Prefix" configUsage:"Object key prefix."`
	Region    string `configKey:"s3Region" configUsage:"S3 region."`
	AccessKey string `configKey:"s3AccessKey" configUsage:"S3 access key."`
	SecretKey string `configKey:"s3SecretKey" configUsage:"S3 secret key."`
	UseSSL    bool   `configKey:"s3UseSsl" configUsage:"Use HTTPS to connect to the S3 endpoint."`
}

type Mirror struct {
	client   *minio.Client
	bucket   string
	prefix   string
	region   string
	logger   log.Logger
	initOnce sync.Once
	initErr  error
}

type Option func(o *minio.Options)

// WithTransport replaces the HTTP transport of the client.
func WithTransport(transport http.RoundTripper) Option {
	return func(o *minio.Options) {
		o.Transport = transport
	}
}

func DefaultConfig() Config {
	return Config{Region: DefaultRegion, UseSSL: true}
}

// Enabled returns true if the endpoint or the bucket is configured.
func (c Config) Enabled() bool {
	return strings.TrimSpace(c.Endpoint) != "" || strings.TrimSpace(c.Bucket) != ""
}

func (c Config) Validate() error {
	errs := errors.NewMultiError()
	if strings.TrimSpace(c.Endpoint) == "" {
		errs.Append(errors.New("s3 endpoint is required"))
	}
	if strings.TrimSpace(c.Bucket) == "" {
		errs.Append(errors.New("s3 bucket is required"))
	}
	if strings.TrimSpace(c.AccessKey) == "" || strings.TrimSpace(c.SecretKey) == "" {
		errs.Append(errors.New("s3 access key and secret key are required"))
	}
	return errs.ErrorOrNil()
}

func New(cfg Config, logger log.Logger, opts ...Option) (*Mirror, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.PrefixError(err, "invalid artifact mirror configuration")
	}

	region := strings.TrimSpace(cfg.Region)
	if region == "" {
		region = DefaultRegion
	}

	minioOpts := &minio.Options{
		Creds:  credentials.NewStaticV4(strings.TrimSpace(cfg.AccessKey), strings.TrimSpace(cfg.SecretKey), ""),
		Secure: cfg.UseSSL,
		Region: region,
	}
	for _, o := range opts {
		o(minioOpts)
	}

	client, err := minio.New(strings.TrimSpace(cfg.Endpoint), minioOpts)
	if err != nil {
		return nil, errors.PrefixError(err, "cannot create S3 client")
	}

	return &Mirror{
		client: client,
		bucket: strings.TrimSpace(cfg.Bucket),
		prefix: strings.Trim(strings.TrimSpace(cfg.Prefix), "/"),
		region: region,
		logger: logger.WithComponent("artifact.s3"),
	}, nil
}

// Put uploads the content, an existing object is replaced.
func (m *Mirror) Put(ctx context.Context, name string, content string) (string, error) {
	if err := m.ensureBucket(ctx); err != nil {
		return "", errors.PrefixErrorf(err, `cannot check S3 bucket "%s"`, m.bucket)
	}

	key := m.objectKey(name)
	_, err := m.client.PutObject(ctx, m.bucket, key, strings.NewReader(content), int64(len(content)), minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return "", errors.PrefixErrorf(err, `cannot upload "%s" to S3 bucket "%s"`, key, m.bucket)
	}

	location := "s3://" + m.bucket + "/" + key
	m.logger.Debugf(ctx, `Uploaded "%s".`, location)
	return location, nil
}

func (m *Mirror) ensureBucket(ctx context.Context) error {
	m.initOnce.Do(func() {
		exists, err := m.client.BucketExists(ctx, m.bucket)
		if err != nil {
			m.initErr = err
			return
		}
		if !exists {
			m.initErr = errors.Errorf(`bucket "%s" does not exist`, m.bucket)
		}
	})
	return m.initErr
}

func (m *Mirror) objectKey(name string) string {
	name = strings.TrimLeft(strings.TrimSpace(name), "/")
	if m.prefix == "" {
		return name
	}
	return m.prefix + "/" + name
}
