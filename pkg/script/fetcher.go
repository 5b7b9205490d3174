package script

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	werrors "github.com/vango-dev/widgets/internal/errors"
)

// Fetcher retrieves the source of a script.
type Fetcher interface {
	Fetch(ctx context.Context, rawURL string) ([]byte, error)
}

// FetcherFunc adapts a function to a Fetcher.
type FetcherFunc func(ctx context.Context, rawURL string) ([]byte, error)

// Fetch calls f.
func (f FetcherFunc) Fetch(ctx context.Context, rawURL string) ([]byte, error) {
	return f(ctx, rawURL)
}

// HTTPFetcher fetches http and https URLs.
type HTTPFetcher struct {
	// Client defaults to http.DefaultClient.
	Client *http.Client
}

// Fetch issues a GET and fails on any non-2xx status.
func (h HTTPFetcher) Fetch(ctx context.Context, rawURL string) ([]byte, error) {
	client := h.Client
	if client == nil {
		client = http.DefaultClient
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, err
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("GET %s: %s", rawURL, resp.Status)
	}
	return io.ReadAll(resp.Body)
}

// ObjectGetter is the part of *s3.Client used by S3Fetcher.
type ObjectGetter interface {
	GetObject(ctx context.Context, in *s3.GetObjectInput, opts ...func(*s3.Options)) (*s3.GetObjectOutput, error)
}

// S3Fetcher fetches s3://bucket/key URLs.
type S3Fetcher struct {
	Client ObjectGetter
}

// NewS3Fetcher returns a fetcher for public buckets in region. A non-empty
// endpoint selects an S3-compatible store and path-style addressing.
func NewS3Fetcher(region, endpoint string) *S3Fetcher {
	opts := s3.Options{
		Region:      region,
		Credentials: aws.AnonymousCredentials{},
	}
	if endpoint != "" {
		opts.BaseEndpoint = aws.String(endpoint)
		opts.UsePathStyle = true
	}
	return &S3Fetcher{Client: s3.New(opts)}
}

// Fetch reads the object named by rawURL.
func (f *S3Fetcher) Fetch(ctx context.Context, rawURL string) ([]byte, error) {
	bucket, key, err := parseS3URL(rawURL)
	if err != nil {
		return nil, err
	}
	out, err := f.Client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return nil, fmt.Errorf("s3 get %s: %w", rawURL, err)
	}
	defer out.Body.Close()
	return io.ReadAll(out.Body)
}

func parseS3URL(rawURL string) (bucket, key string, err error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", "", err
	}
	key = strings.TrimPrefix(u.Path, "/")
	if u.Scheme != "s3" || u.Host == "" || key == "" {
		return "", "", werrors.New("S002").WithDetailf("%q is not an s3://bucket/key URL", rawURL)
	}
	return u.Host, key, nil
}

// MuxFetcher dispatches on the URL scheme. Relative URLs use the "" entry.
type MuxFetcher map[string]Fetcher

// Fetch routes rawURL to the fetcher registered for its scheme.
func (m MuxFetcher) Fetch(ctx context.Context, rawURL string) ([]byte, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return nil, err
	}
	f, ok := m[strings.ToLower(u.Scheme)]
	if !ok || f == nil {
		return nil, werrors.New("S002").WithDetailf("no fetcher for scheme %q", u.Scheme)
	}
	return f.Fetch(ctx, rawURL)
}

// DefaultFetcher handles http, https and anonymous s3 in us-east-1.
func DefaultFetcher() MuxFetcher {
	h := HTTPFetcher{}
	return MuxFetcher{
		"http":  h,
		"https": h,
		"s3":    NewS3Fetcher("us-east-1", ""),
	}
}
