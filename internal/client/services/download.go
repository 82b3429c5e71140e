package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"
	"sync"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/dmitrijs2005/uploader/internal/client/client"
	"github.com/dmitrijs2005/uploader/internal/client/models"
	"github.com/dmitrijs2005/uploader/internal/filex"
	"github.com/dmitrijs2005/uploader/internal/logging"
)

// DefaultDownloadDir is created under the working directory when no
// destination is given.
const DefaultDownloadDir = "downloads"

var ErrUnsupportedScheme = errors.New("unsupported url scheme")

// S3Options configures access to s3:// URLs. Empty credentials fall back to
// the default AWS credential chain.
type S3Options struct {
	Region    string
	Endpoint  string
	AccessKey string
	SecretKey string
}

type objectGetter interface {
	GetObject(ctx context.Context, in *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
}

var (
	loadDefaultAWSConfig = config.LoadDefaultConfig

	newS3Client = func(cfg aws.Config, optFns ...func(*s3.Options)) objectGetter {
		return s3.NewFromConfig(cfg, optFns...)
	}
)

// DownloadService saves a record's content to a local file.
type DownloadService interface {
	Download(ctx context.Context, rec models.FileRecord, dest string) (string, error)
}

type downloadService struct {
	http   *http.Client
	s3opts S3Options
	log    logging.Logger

	s3Once sync.Once
	s3     objectGetter
	s3Err  error
}

func NewDownloadService(httpClient *http.Client, opts S3Options, log logging.Logger) DownloadService {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &downloadService{http: httpClient, s3opts: opts, log: log.With("service", "download")}
}

// Download fetches rec.URL into dest and returns the path written. An empty
// dest selects DefaultDownloadDir; an existing directory receives the file
// under the record's filename, suffixed when that name is taken. Any other
// dest is written as given.
func (s *downloadService) Download(ctx context.Context, rec models.FileRecord, dest string) (string, error) {
	u, err := url.Parse(rec.URL)
	if err != nil {
		return "", fmt.Errorf("parse url: %w", err)
	}

	var body io.ReadCloser
	switch u.Scheme {
	case "http", "https":
		body, err = s.openHTTP(ctx, u)
	case "s3":
		body, err = s.openS3(ctx, u)
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedScheme, u.Scheme)
	}
	if err != nil {
		return "", err
	}
	defer body.Close()

	target, err := resolveTarget(rec, u, dest)
	if err != nil {
		return "", err
	}

	if err := writeFile(target, body); err != nil {
		return "", err
	}
	s.log.Info(ctx, "downloaded", "url", rec.URL, "path", target)
	return target, nil
}

func (s *downloadService) openHTTP(ctx context.Context, u *url.URL) (io.ReadCloser, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, err
	}
	resp, err := s.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", client.ErrUnavailable, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		resp.Body.Close()
		return nil, &client.APIError{StatusCode: resp.StatusCode}
	}
	return resp.Body, nil
}

func (s *downloadService) openS3(ctx context.Context, u *url.URL) (io.ReadCloser, error) {
	bucket := u.Host
	key := strings.TrimPrefix(u.Path, "/")
	if bucket == "" || key == "" {
		return nil, fmt.Errorf("s3 url %q: bucket and key are required", u.String())
	}

	c, err := s.s3Client(ctx)
	if err != nil {
		return nil, fmt.Errorf("s3 client: %w", err)
	}

	out, err := c.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return nil, fmt.Errorf("get s3://%s/%s: %w", bucket, key, err)
	}
	return out.Body, nil
}

func (s *downloadService) s3Client(ctx context.Context) (objectGetter, error) {
	s.s3Once.Do(func() {
		opts := []func(*config.LoadOptions) error{}
		if s.s3opts.Region != "" {
			opts = append(opts, config.WithRegion(s.s3opts.Region))
		}
		if s.s3opts.AccessKey != "" {
			opts = append(opts, config.WithCredentialsProvider(
				credentials.NewStaticCredentialsProvider(s.s3opts.AccessKey, s.s3opts.SecretKey, "")))
		}

		cfg, err := loadDefaultAWSConfig(ctx, opts...)
		if err != nil {
			s.s3Err = err
			return
		}

		endpoint := s.s3opts.Endpoint
		s.s3 = newS3Client(cfg, func(o *s3.Options) {
			if endpoint != "" {
				o.BaseEndpoint = aws.String(endpoint)
				o.UsePathStyle = true
			}
		})
	})
	return s.s3, s.s3Err
}

func resolveTarget(rec models.FileRecord, u *url.URL, dest string) (string, error) {
	name := filepath.Base(rec.Filename)
	if rec.Filename == "" || name == "." || name == string(filepath.Separator) {
		name = path.Base(u.Path)
	}
	if name == "" || name == "." || name == "/" {
		name = rec.Key()
	}

	if dest == "" {
		dir, err := filex.EnsureSubdDir(DefaultDownloadDir)
		if err != nil {
			return "", err
		}
		return filex.FreePath(filepath.Join(dir, name))
	}

	if st, err := os.Stat(dest); err == nil && st.IsDir() {
		return filex.FreePath(filepath.Join(dest, name))
	}
	return dest, nil
}

func writeFile(target string, r io.Reader) error {
	f, err := os.Create(target)
	if err != nil {
		return fmt.Errorf("create %s: %w", target, err)
	}
	if _, err := io.Copy(f, r); err != nil {
		_ = f.Close()
		_ = os.Remove(target)
		return fmt.Errorf("write %s: %w", target, err)
	}
	return f.Close()
}
