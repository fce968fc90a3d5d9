// Snapshot I/O for local paths, HTTP(S) URLs, and S3 objects.
package db

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/pkg/errors"
)

// S3Config carries optional S3 authentication for snapshot URLs. The
// zero value falls back to the default AWS credential chain.
type S3Config struct {
	AccessKey string
	SecretKey string
	Region    string
	Endpoint  string // custom S3-compatible endpoint
}

type urlScheme string

const (
	schemeLocal urlScheme = "local" // plain path, no scheme
	schemeFile  urlScheme = "file"
	schemeHTTP  urlScheme = "http"
	schemeHTTPS urlScheme = "https"
	schemeS3    urlScheme = "s3"
)

func detectScheme(url string) urlScheme {
	lower := strings.ToLower(url)
	switch {
	case strings.HasPrefix(lower, "s3://"):
		return schemeS3
	case strings.HasPrefix(lower, "https://"):
		return schemeHTTPS
	case strings.HasPrefix(lower, "http://"):
		return schemeHTTP
	case strings.HasPrefix(lower, "file://"):
		return schemeFile
	default:
		return schemeLocal
	}
}

// openSnapshotReader opens a reader for a snapshot URL. HTTP(S) and
// S3 sources are read remotely; everything else is a local file.
func openSnapshotReader(url string, cfg *S3Config) (io.ReadCloser, error) {
	switch scheme := detectScheme(url); scheme {
	case schemeLocal:
		return osOpen(url)
	case schemeFile:
		return osOpen(strings.TrimPrefix(url, "file://"))
	case schemeHTTP, schemeHTTPS:
		return openHTTPReader(url)
	case schemeS3:
		return openS3Reader(url, cfg)
	default:
		return nil, errors.Errorf("unsupported URL scheme: %s", url)
	}
}

// openSnapshotWriter opens a writer for a snapshot URL. HTTP(S)
// targets are not writable.
func openSnapshotWriter(url string, cfg *S3Config) (io.WriteCloser, error) {
	switch scheme := detectScheme(url); scheme {
	case schemeLocal:
		return osCreate(url)
	case schemeFile:
		return osCreate(strings.TrimPrefix(url, "file://"))
	case schemeHTTP, schemeHTTPS:
		return nil, errors.New("HTTP/HTTPS does not support writing")
	case schemeS3:
		return openS3Writer(url, cfg)
	default:
		return nil, errors.Errorf("unsupported URL scheme: %s", url)
	}
}

func openHTTPReader(url string) (io.ReadCloser, error) {
	client := &http.Client{Timeout: 5 * time.Minute}

	resp, err := client.Get(url)
	if err != nil {
		return nil, errors.Wrap(err, "HTTP request failed")
	}
	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return nil, errors.Errorf("HTTP request returned status %d", resp.StatusCode)
	}
	return resp.Body, nil
}

// parseS3URL splits s3://bucket/key into its bucket and key parts.
func parseS3URL(url string) (bucket, key string, err error) {
	parts := strings.SplitN(strings.TrimPrefix(url, "s3://"), "/", 2)
	if len(parts) < 2 || parts[0] == "" || parts[1] == "" {
		return "", "", errors.Errorf("invalid S3 URL: %s", url)
	}
	return parts[0], parts[1], nil
}

func getS3Client(ctx context.Context, cfg *S3Config) (*s3.Client, error) {
	var opts []func(*config.LoadOptions) error
	if cfg != nil && cfg.Region != "" {
		opts = append(opts, config.WithRegion(cfg.Region))
	}
	if cfg != nil && cfg.AccessKey != "" && cfg.SecretKey != "" {
		provider := credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, "")
		opts = append(opts, config.WithCredentialsProvider(provider))
	}

	awsCfg, err := config.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, errors.Wrap(err, "failed to load AWS config")
	}

	var clientOpts []func(*s3.Options)
	if cfg != nil && cfg.Endpoint != "" {
		clientOpts = append(clientOpts, func(o *s3.Options) {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
			o.UsePathStyle = true
		})
	}
	return s3.NewFromConfig(awsCfg, clientOpts...), nil
}

func openS3Reader(url string, cfg *S3Config) (io.ReadCloser, error) {
	bucket, key, err := parseS3URL(url)
	if err != nil {
		return nil, err
	}

	ctx := context.Background()
	client, err := getS3Client(ctx, cfg)
	if err != nil {
		return nil, err
	}

	resp, err := client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to get S3 object")
	}
	return resp.Body, nil
}

// s3Writer buffers writes and uploads the object on Close.
type s3Writer struct {
	ctx    context.Context
	client *s3.Client
	bucket string
	key    string
	buf    bytes.Buffer
	closed bool
}

func (w *s3Writer) Write(p []byte) (int, error) {
	if w.closed {
		return 0, errors.New("writer is closed")
	}
	return w.buf.Write(p)
}

func (w *s3Writer) Close() error {
	if w.closed {
		return nil
	}
	w.closed = true

	_, err := w.client.PutObject(w.ctx, &s3.PutObjectInput{
		Bucket: aws.String(w.bucket),
		Key:    aws.String(w.key),
		Body:   bytes.NewReader(w.buf.Bytes()),
	})
	return errors.Wrap(err, "failed to upload to S3")
}

func openS3Writer(url string, cfg *S3Config) (io.WriteCloser, error) {
	bucket, key, err := parseS3URL(url)
	if err != nil {
		return nil, err
	}

	ctx := context.Background()
	client, err := getS3Client(ctx, cfg)
	if err != nil {
		return nil, err
	}
	return &s3Writer{ctx: ctx, client: client, bucket: bucket, key: key}, nil
}

// Swappable in tests.
var osOpen = func(path string) (io.ReadCloser, error) {
	return os.Open(path)
}

var osCreate = func(path string) (io.WriteCloser, error) {
	return os.Create(path)
}
